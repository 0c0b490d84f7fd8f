// Copyright 2023 Matrix Origin
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
package plan

import (
	"strconv"
	"strings"

	"github.com/matrixorigin/extcatalog/pkg/container/types"
)

type LiteralKind uint8

const (
	LiteralNull LiteralKind = iota
	LiteralBool
	LiteralInt
	LiteralFloat
	LiteralDecimal
	LiteralString
	LiteralDatetime
	LiteralJson
	// LiteralMaxValue is the MAXVALUE bound of range partitions.
	LiteralMaxValue
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNull:
		return "null"
	case LiteralBool:
		return "bool"
	case LiteralInt:
		return "int"
	case LiteralFloat:
		return "float"
	case LiteralDecimal:
		return "decimal"
	case LiteralString:
		return "string"
	case LiteralDatetime:
		return "datetime"
	case LiteralJson:
		return "json"
	case LiteralMaxValue:
		return "maxvalue"
	}
	return "unknown"
}

// Literal is a constant. Only the field matching Kind is meaningful.
type Literal struct {
	Kind     LiteralKind
	Bool     bool
	Int      int64
	Float    float64
	Decimal  types.Decimal
	Str      string
	Datetime types.Datetime
}

func NewNullLiteral() *Literal {
	return &Literal{Kind: LiteralNull}
}

func NewBoolLiteral(v bool) *Literal {
	return &Literal{Kind: LiteralBool, Bool: v}
}

func NewIntLiteral(v int64) *Literal {
	return &Literal{Kind: LiteralInt, Int: v}
}

func NewFloatLiteral(v float64) *Literal {
	return &Literal{Kind: LiteralFloat, Float: v}
}

func NewDecimalLiteral(v types.Decimal) *Literal {
	return &Literal{Kind: LiteralDecimal, Decimal: v}
}

func NewStringLiteral(v string) *Literal {
	return &Literal{Kind: LiteralString, Str: v}
}

func NewDatetimeLiteral(v types.Datetime) *Literal {
	return &Literal{Kind: LiteralDatetime, Datetime: v}
}

func NewJsonLiteral(v string) *Literal {
	return &Literal{Kind: LiteralJson, Str: v}
}

func NewMaxValueLiteral() *Literal {
	return &Literal{Kind: LiteralMaxValue}
}

func (l *Literal) IsNull() bool {
	return l.Kind == LiteralNull
}

func (l *Literal) String() string {
	switch l.Kind {
	case LiteralNull:
		return "null"
	case LiteralBool:
		return strconv.FormatBool(l.Bool)
	case LiteralInt:
		return strconv.FormatInt(l.Int, 10)
	case LiteralFloat:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	case LiteralDecimal:
		return l.Decimal.String()
	case LiteralString:
		return "'" + strings.ReplaceAll(l.Str, "'", "''") + "'"
	case LiteralDatetime:
		return "'" + l.Datetime.String() + "'"
	case LiteralJson:
		return "json '" + l.Str + "'"
	case LiteralMaxValue:
		return "maxvalue"
	}
	return "?"
}
