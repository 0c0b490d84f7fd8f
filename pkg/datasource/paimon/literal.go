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
package paimon

import (
	"github.com/matrixorigin/extcatalog/pkg/sql/plan"
)

// ExtractLiteral returns the value of lit as the predicate layer expects it:
// bool, int64, float64, types.Decimal, string, or epoch milliseconds for
// datetimes. A null literal yields (nil, true). ok is false for literals
// that can not be pushed down, including datetimes with a fractional second
// since the millisecond value would not compare like the literal.
func (t *Translator) ExtractLiteral(lit *plan.Literal) (value any, ok bool) {
	switch lit.Kind {
	case plan.LiteralNull:
		return nil, true
	case plan.LiteralBool:
		return lit.Bool, true
	case plan.LiteralInt:
		return lit.Int, true
	case plan.LiteralFloat:
		return lit.Float, true
	case plan.LiteralDecimal:
		return lit.Decimal, true
	case plan.LiteralString:
		return lit.Str, true
	case plan.LiteralDatetime:
		if lit.Datetime.MicroSecond != 0 {
			return nil, false
		}
		ms, err := lit.Datetime.UnixMilli(t.loc)
		if err != nil {
			return nil, false
		}
		return ms, true
	}
	return nil, false
}
