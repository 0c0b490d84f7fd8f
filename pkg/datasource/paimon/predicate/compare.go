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
package predicate

import (
	"github.com/matrixorigin/extcatalog/pkg/container/types"
	"golang.org/x/exp/constraints"
)

func compareOrdered[T constraints.Ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compare orders two non null values. ok is false when the values are not
// comparable, in which case no comparison predicate holds.
func compare(a, b any) (c int, ok bool) {
	a, b = normalize(a), normalize(b)
	switch x := a.(type) {
	case int64:
		switch y := b.(type) {
		case int64:
			return compareOrdered(x, y), true
		case float64:
			return compareOrdered(float64(x), y), true
		case types.Decimal:
			return types.DecimalFromInt64(x).Compare(y), true
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return compareOrdered(x, y), true
		case int64:
			return compareOrdered(x, float64(y)), true
		case types.Decimal:
			return compareOrdered(x, y.Float64()), true
		}
	case types.Decimal:
		switch y := b.(type) {
		case types.Decimal:
			return x.Compare(y), true
		case int64:
			return x.Compare(types.DecimalFromInt64(y)), true
		case float64:
			return compareOrdered(x.Float64(), y), true
		}
	case string:
		if y, is := b.(string); is {
			return compareOrdered(x, y), true
		}
	case bool:
		if y, is := b.(bool); is {
			return compareOrdered(boolToInt(x), boolToInt(y)), true
		}
	}
	return 0, false
}

func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
