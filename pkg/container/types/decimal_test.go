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
	"testing"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/stretchr/testify/require"
)

func TestParseDecimal(t *testing.T) {
	cases := []struct {
		in        string
		precision int32
		scale     int32
		want      string
	}{
		{"12.5", 0, 0, "12.5"},
		{"-0.05", 0, 0, "-0.05"},
		{"1", 10, 2, "1.00"},
		{"99999.9999999", 12, 6, "100000.000000"},
		{"3.14159", 10, 2, "3.14"},
		{"-2.675", 10, 2, "-2.68"},
		{".5", 0, 0, "0.5"},
		{"007", 0, 0, "7"},
	}
	for _, c := range cases {
		d, err := ParseDecimal(c.in, c.precision, c.scale)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, d.String(), c.in)
	}
}

func TestParseDecimalPreservesType(t *testing.T) {
	d := MustDecimal("123.450")
	require.Equal(t, int32(6), d.Precision)
	require.Equal(t, int32(3), d.Scale)
	require.Equal(t, "123450", d.Unscaled().String())

	d, err := ParseDecimal("1.5", 20, 4)
	require.NoError(t, err)
	require.Equal(t, int32(20), d.Precision)
	require.Equal(t, int32(4), d.Scale)
}

func TestParseDecimalError(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "-", "1e5"} {
		_, err := ParseDecimal(in, 0, 0)
		require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput), in)
	}
	_, err := ParseDecimal("12345", 4, 0)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
	_, err = ParseDecimal("1", 3, 4)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
}

func TestDecimalCompare(t *testing.T) {
	require.Equal(t, 0, MustDecimal("1.50").Compare(MustDecimal("1.5")))
	require.Equal(t, -1, MustDecimal("1.49").Compare(MustDecimal("1.5")))
	require.Equal(t, 1, MustDecimal("-1").Compare(MustDecimal("-1.01")))
	require.Equal(t, 0, DecimalFromInt64(0).Compare(Decimal{}))
	require.Equal(t, 1, DecimalFromInt64(3).Compare(MustDecimal("2.999")))
}

func TestDecimalFloat(t *testing.T) {
	require.Equal(t, 2.25, MustDecimal("2.25").Float64())
	require.Equal(t, -7.0, DecimalFromInt64(-7).Float64())
	require.Equal(t, 0, Decimal{}.Sign())
}
