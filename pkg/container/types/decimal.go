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

import (
	"context"
	"math/big"
	"strings"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
)

const MaxDecimalPrecision = 38

var bigTen = big.NewInt(10)

// Decimal is an exact decimal number: unscaled * 10^-Scale.
// Precision is the number of significant digits the value was declared with.
type Decimal struct {
	unscaled  *big.Int
	Precision int32
	Scale     int32
}

// ParseDecimal parses s into a decimal of the given precision and scale.
// Extra fraction digits are rounded half away from zero. A precision of zero
// means the precision and scale are taken from the text itself.
func ParseDecimal(s string, precision, scale int32) (Decimal, error) {
	ctx := context.TODO()
	str := strings.TrimSpace(s)
	neg := false
	if len(str) > 0 && (str[0] == '-' || str[0] == '+') {
		neg = str[0] == '-'
		str = str[1:]
	}
	intPart, fracPart, _ := strings.Cut(str, ".")
	if len(intPart) == 0 && len(fracPart) == 0 {
		return Decimal{}, moerr.NewInvalidInput(ctx, "invalid decimal '%s'", s)
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return Decimal{}, moerr.NewInvalidInput(ctx, "invalid decimal '%s'", s)
	}
	if precision == 0 {
		scale = int32(len(fracPart))
		precision = int32(len(strings.TrimLeft(intPart, "0"))) + scale
		if precision == 0 {
			precision = 1
		}
	}
	if scale < 0 || scale > precision || precision > MaxDecimalPrecision {
		return Decimal{}, moerr.NewInvalidInput(ctx, "invalid decimal type (%d,%d)", precision, scale)
	}

	roundUp := false
	if int32(len(fracPart)) > scale {
		roundUp = fracPart[scale] >= '5'
		fracPart = fracPart[:scale]
	} else {
		fracPart += strings.Repeat("0", int(scale)-len(fracPart))
	}
	digits := intPart + fracPart
	if digits == "" {
		digits = "0"
	}
	v, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Decimal{}, moerr.NewInvalidInput(ctx, "invalid decimal '%s'", s)
	}
	if roundUp {
		v.Add(v, big.NewInt(1))
	}
	if numDigits(v) > precision {
		return Decimal{}, moerr.NewInvalidInput(ctx, "decimal '%s' out of range for (%d,%d)", s, precision, scale)
	}
	if neg {
		v.Neg(v)
	}
	return Decimal{unscaled: v, Precision: precision, Scale: scale}, nil
}

// MustDecimal is ParseDecimal with the type taken from the text, panicking on error.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s, 0, 0)
	if err != nil {
		panic(err)
	}
	return d
}

func DecimalFromInt64(v int64) Decimal {
	u := big.NewInt(v)
	p := numDigits(u)
	if p == 0 {
		p = 1
	}
	return Decimal{unscaled: u, Precision: p, Scale: 0}
}

func (d Decimal) Unscaled() *big.Int {
	if d.unscaled == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(d.unscaled)
}

func (d Decimal) Sign() int {
	if d.unscaled == nil {
		return 0
	}
	return d.unscaled.Sign()
}

// Compare compares the numeric values of d and o, ignoring their declared types.
func (d Decimal) Compare(o Decimal) int {
	a, b := d.Unscaled(), o.Unscaled()
	switch {
	case d.Scale < o.Scale:
		a.Mul(a, pow10(o.Scale-d.Scale))
	case d.Scale > o.Scale:
		b.Mul(b, pow10(d.Scale-o.Scale))
	}
	return a.Cmp(b)
}

func (d Decimal) Float64() float64 {
	r := new(big.Rat).SetFrac(d.Unscaled(), pow10(d.Scale))
	f, _ := r.Float64()
	return f
}

func (d Decimal) String() string {
	u := d.Unscaled()
	neg := u.Sign() < 0
	digits := u.Abs(u).String()
	if d.Scale > 0 {
		if pad := int(d.Scale) + 1 - len(digits); pad > 0 {
			digits = strings.Repeat("0", pad) + digits
		}
		cut := len(digits) - int(d.Scale)
		digits = digits[:cut] + "." + digits[cut:]
	}
	if neg {
		return "-" + digits
	}
	return digits
}

func pow10(n int32) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}

func numDigits(v *big.Int) int32 {
	if v.Sign() == 0 {
		return 0
	}
	return int32(len(new(big.Int).Abs(v).String()))
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
