// Copyright 2021 - 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package moerr

import (
	"context"
	"fmt"
	"io"
)

const MySQLDefaultSqlState = "HY000"

const (
	// 0 - 99 is OK.  They do not contain info, and are special handled
	// using a static instance, no alloc.
	Ok              uint16 = 0
	OkStopCurrRecur uint16 = 1
	OkExpectedEOF   uint16 = 2 // Expected End Of File

	OkMax uint16 = 99

	// Group 1: Internal errors
	ErrStart        uint16 = 20100
	ErrInternal     uint16 = 20101
	ErrNYI          uint16 = 20102
	ErrNotSupported uint16 = 20105

	// Group 3: invalid input
	ErrBadConfig    uint16 = 20300
	ErrInvalidInput uint16 = 20301

	// Group 4: unexpected state and io errors
	ErrInvalidState  uint16 = 20400
	ErrUnexpectedEOF uint16 = 20407

	// Group 10: external catalog
	ErrUnsupportedCatalogStmt uint16 = 21001
	ErrResourceNotExists      uint16 = 21002
	ErrCatalogTypeConflict    uint16 = 21003
	ErrMissingCatalogType     uint16 = 21004
	ErrUnknownCatalogType     uint16 = 21005
	ErrTestCatalogForbidden   uint16 = 21006
	ErrCatalogAlreadyExists   uint16 = 21007
	ErrNoSuchCatalog          uint16 = 21008
	ErrMissingCatalogProperty uint16 = 21009

	// ErrEnd, the max value of MOErrorCode
	ErrEnd uint16 = 65535
)

type moErrorMsgItem struct {
	mysqlCode        uint16
	sqlStates        []string
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]moErrorMsgItem{
	// OK code not in this table.  They do not have a mysql code, as
	// they are OK -- should not leak back to client.

	// Group 1: Internal errors
	ErrStart:        {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "internal error: error code start"},
	ErrInternal:     {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "internal error: %s"},
	ErrNYI:          {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "%s is not yet implemented"},
	ErrNotSupported: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "not supported: %s"},

	// Group 3: invalid input
	ErrBadConfig:    {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "invalid configuration: %s"},
	ErrInvalidInput: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "invalid input: %s"},

	// Group 4: unexpected state or file io error
	ErrInvalidState:  {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "invalid state %s"},
	ErrUnexpectedEOF: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "unexpected end of file %s"},

	// Group 10: external catalog
	ErrUnsupportedCatalogStmt: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "unknown stmt for catalog manager: %s"},
	ErrResourceNotExists:      {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "resource doesn't exist: %s"},
	ErrCatalogTypeConflict:    {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "can not set 'type' when creating catalog with resource %s"},
	ErrMissingCatalogType:     {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "missing property 'type' in properties"},
	ErrUnknownCatalogType:     {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "unknown catalog type: %s"},
	ErrTestCatalogForbidden:   {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "test catalog is only for unit test"},
	ErrCatalogAlreadyExists:   {ER_DB_CREATE_EXISTS, []string{MySQLDefaultSqlState}, "catalog %s already exists"},
	ErrNoSuchCatalog:          {ER_BAD_DB_ERROR, []string{MySQLDefaultSqlState}, "unknown catalog %s"},
	ErrMissingCatalogProperty: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "missing property '%s' for %s catalog"},

	// Group End: max value of MOErrorCode
	ErrEnd: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "internal error: end of errcode code"},
}

func newError(ctx context.Context, code uint16, args ...any) *Error {
	var err *Error
	item, has := errorMsgRefer[code]
	if !has {
		panic(NewInternalError(ctx, "not exist MOErrorCode: %d", code))
	}
	if len(args) == 0 {
		err = &Error{
			code:      code,
			mysqlCode: item.mysqlCode,
			message:   item.errorMsgOrFormat,
			sqlState:  item.sqlStates[0],
		}
	} else {
		err = &Error{
			code:      code,
			mysqlCode: item.mysqlCode,
			message:   fmt.Sprintf(item.errorMsgOrFormat, args...),
			sqlState:  item.sqlStates[0],
		}
	}
	return err
}

type Error struct {
	code      uint16
	mysqlCode uint16
	message   string
	sqlState  string
	detail    string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Detail() string {
	return e.detail
}

func (e *Error) Display() string {
	if len(e.detail) == 0 {
		return e.message
	}
	return fmt.Sprintf("%s: %s", e.message, e.detail)
}

// WithDetail attaches extra text shown by Display but not by Error.
func (e *Error) WithDetail(detail string) *Error {
	e.detail = detail
	return e
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) MySQLCode() uint16 {
	return e.mysqlCode
}

func (e *Error) SqlState() string {
	return e.sqlState
}

func (e *Error) Succeeded() bool {
	return e.code < OkMax
}

func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}

	me, ok := e.(*Error)
	if !ok {
		// This is not a moerr
		return false
	}
	return me.code == rc
}

func DowncastError(e error) *Error {
	if err, ok := e.(*Error); ok {
		return err
	}
	return newError(Context(), ErrInternal, fmt.Sprintf("downcast error failed: %v", e))
}

// ConvertPanicError converts a runtime panic to internal error.
func ConvertPanicError(ctx context.Context, v interface{}) *Error {
	if e, ok := v.(*Error); ok {
		return e
	}
	return newError(ctx, ErrInternal, fmt.Sprintf("panic %v", v))
}

// ConvertGoError converts a go error into mo error.
// Note here we must return error, because nil error
// is the same as nil *Error -- Go strangeness.
func ConvertGoError(ctx context.Context, err error) error {
	// nil is nil
	if err == nil {
		return err
	}

	// already a moerr, return it as is
	if _, ok := err.(*Error); ok {
		return err
	}

	// Convert a few well known os/go error.
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// if io.EOF reaches here, we believe it is not expected.
		return NewUnexpectedEOF(ctx, err.Error())
	}

	return NewInternalError(ctx, "convert go error to mo error %v", err)
}

var errOkStopCurrRecur = Error{OkStopCurrRecur, 0, "StopCurrRecur", "00000", ""}
var errOkExpectedEOF = Error{OkExpectedEOF, 0, "ExpectedEOF", "00000", ""}

func GetOkStopCurrRecur() *Error {
	return &errOkStopCurrRecur
}

func GetOkExpectedEOF() *Error {
	return &errOkExpectedEOF
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInternal, xmsg)
}

func NewNYI(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNYI, xmsg)
}

func NewNotSupported(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrNotSupported, xmsg)
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrBadConfig, xmsg)
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidInput, xmsg)
}

func NewInvalidState(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidState, xmsg)
}

func NewUnexpectedEOF(ctx context.Context, f string) *Error {
	return newError(ctx, ErrUnexpectedEOF, f)
}

func NewUnsupportedCatalogStmt(ctx context.Context, stmt string) *Error {
	return newError(ctx, ErrUnsupportedCatalogStmt, stmt)
}

func NewResourceNotExists(ctx context.Context, name string) *Error {
	return newError(ctx, ErrResourceNotExists, name)
}

func NewCatalogTypeConflict(ctx context.Context, resource string) *Error {
	return newError(ctx, ErrCatalogTypeConflict, resource)
}

func NewMissingCatalogType(ctx context.Context) *Error {
	return newError(ctx, ErrMissingCatalogType)
}

func NewUnknownCatalogType(ctx context.Context, typ string) *Error {
	return newError(ctx, ErrUnknownCatalogType, typ)
}

func NewTestCatalogForbidden(ctx context.Context) *Error {
	return newError(ctx, ErrTestCatalogForbidden)
}

func NewCatalogAlreadyExists(ctx context.Context, name string) *Error {
	return newError(ctx, ErrCatalogAlreadyExists, name)
}

func NewNoSuchCatalog(ctx context.Context, name string) *Error {
	return newError(ctx, ErrNoSuchCatalog, name)
}

func NewMissingCatalogProperty(ctx context.Context, prop, typ string) *Error {
	return newError(ctx, ErrMissingCatalogProperty, prop, typ)
}

func Context() context.Context {
	return context.Background()
}
