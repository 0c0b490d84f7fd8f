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
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCatalogErrors tests the external catalog error group
func TestCatalogErrors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		err      *Error
		code     uint16
		contains string
	}{
		{
			name:     "unsupported stmt",
			err:      NewUnsupportedCatalogStmt(ctx, "tree.Select"),
			code:     ErrUnsupportedCatalogStmt,
			contains: "tree.Select",
		},
		{
			name:     "resource not exists",
			err:      NewResourceNotExists(ctx, "r1"),
			code:     ErrResourceNotExists,
			contains: "resource doesn't exist: r1",
		},
		{
			name:     "type conflict",
			err:      NewCatalogTypeConflict(ctx, "r1"),
			code:     ErrCatalogTypeConflict,
			contains: "can not set 'type'",
		},
		{
			name:     "missing type",
			err:      NewMissingCatalogType(ctx),
			code:     ErrMissingCatalogType,
			contains: "missing property 'type'",
		},
		{
			name:     "unknown type",
			err:      NewUnknownCatalogType(ctx, "kafka"),
			code:     ErrUnknownCatalogType,
			contains: "kafka",
		},
		{
			name:     "test catalog",
			err:      NewTestCatalogForbidden(ctx),
			code:     ErrTestCatalogForbidden,
			contains: "only for unit test",
		},
		{
			name:     "already exists",
			err:      NewCatalogAlreadyExists(ctx, "hive"),
			code:     ErrCatalogAlreadyExists,
			contains: "catalog hive already exists",
		},
		{
			name:     "no such catalog",
			err:      NewNoSuchCatalog(ctx, "hive"),
			code:     ErrNoSuchCatalog,
			contains: "unknown catalog hive",
		},
		{
			name:     "missing property",
			err:      NewMissingCatalogProperty(ctx, "hosts", "es"),
			code:     ErrMissingCatalogProperty,
			contains: "missing property 'hosts' for es catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, IsMoErrCode(tt.err, tt.code))
			assert.Contains(t, tt.err.Error(), tt.contains)
			assert.Equal(t, MySQLDefaultSqlState, tt.err.SqlState())
		})
	}
}

func TestIsMoErrCode(t *testing.T) {
	require.True(t, IsMoErrCode(nil, Ok))
	require.False(t, IsMoErrCode(nil, ErrInternal))
	require.False(t, IsMoErrCode(errors.New("x"), ErrInternal))
	require.True(t, IsMoErrCode(NewInternalError(context.TODO(), "x %d", 1), ErrInternal))
	require.Equal(t, ER_BAD_DB_ERROR, NewNoSuchCatalog(context.TODO(), "c").MySQLCode())
}

func TestConvertGoError(t *testing.T) {
	ctx := context.TODO()
	require.Nil(t, ConvertGoError(ctx, nil))

	mo := NewInvalidInput(ctx, "bad")
	require.Equal(t, error(mo), ConvertGoError(ctx, mo))

	require.True(t, IsMoErrCode(ConvertGoError(ctx, io.EOF), ErrUnexpectedEOF))
	require.True(t, IsMoErrCode(ConvertGoError(ctx, errors.New("boom")), ErrInternal))
}

func TestDisplay(t *testing.T) {
	err := NewInvalidInput(context.TODO(), "bad value")
	require.Equal(t, "invalid input: bad value", err.Display())
	err.WithDetail("column a")
	require.Equal(t, "invalid input: bad value: column a", err.Display())
	require.Equal(t, "invalid input: bad value", err.Error())
}

func TestNewErrorPanicOnUnknownCode(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		require.True(t, IsMoErrCode(r.(*Error), ErrInternal))
	}()
	_ = newError(context.TODO(), 12345)
}
