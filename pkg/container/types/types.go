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
package types

import "fmt"

// T is the id of a column or literal type.
type T uint8

const (
	T_any T = iota
	T_bool
	T_int64
	T_float64
	T_decimal128
	T_varchar
	T_datetime
	T_json
)

type Type struct {
	Oid T
	// Width is the precision of decimals and the length of strings.
	Width int32
	Scale int32
}

func New(oid T, width, scale int32) Type {
	return Type{Oid: oid, Width: width, Scale: scale}
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_bool:
		return "BOOL"
	case T_int64:
		return "BIGINT"
	case T_float64:
		return "DOUBLE"
	case T_decimal128:
		return "DECIMAL"
	case T_varchar:
		return "VARCHAR"
	case T_datetime:
		return "DATETIME"
	case T_json:
		return "JSON"
	}
	return fmt.Sprintf("unexpected type: %d", t)
}

func (t Type) String() string {
	switch t.Oid {
	case T_decimal128:
		return fmt.Sprintf("DECIMAL(%d,%d)", t.Width, t.Scale)
	case T_varchar:
		if t.Width > 0 {
			return fmt.Sprintf("VARCHAR(%d)", t.Width)
		}
	}
	return t.Oid.String()
}
