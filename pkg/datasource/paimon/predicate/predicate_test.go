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
	"testing"

	"github.com/matrixorigin/extcatalog/pkg/container/types"
	"github.com/stretchr/testify/require"
)

func TestLeafTest(t *testing.T) {
	b := NewBuilder()
	row := Row{1: int64(5), 2: "abc", 3: nil, 4: types.MustDecimal("1.25"), 5: 2.5, 6: true}

	cases := []struct {
		p    Predicate
		want bool
	}{
		{b.Equal(1, int64(5)), true},
		{b.Equal(1, 5.0), true},
		{b.NotEqual(1, int64(5)), false},
		{b.LessThan(1, int64(6)), true},
		{b.LessOrEqual(1, int64(5)), true},
		{b.GreaterThan(1, int64(5)), false},
		{b.GreaterOrEqual(2, "abb"), true},
		{b.Equal(4, types.MustDecimal("1.250")), true},
		{b.LessThan(4, int64(2)), true},
		{b.GreaterThan(5, types.MustDecimal("2.4")), true},
		{b.Equal(6, true), true},
		{b.Equal(1, "5"), false},
		{b.NotEqual(1, "5"), false},
		{b.IsNull(3), true},
		{b.IsNull(9), true},
		{b.IsNotNull(1), true},
		{b.Equal(3, int64(1)), false},
		{b.NotEqual(3, int64(1)), false},
		{b.In(1, []any{int64(1), nil, int64(5)}), true},
		{b.In(1, []any{int64(1), nil}), false},
		{b.In(3, []any{nil}), false},
		{b.NotIn(1, []any{int64(1), int64(2)}), true},
		{b.NotIn(1, []any{int64(1), nil}), false},
		{b.NotIn(3, []any{int64(1)}), false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.p.Test(row), c.p.String())
	}
}

func TestCompoundTest(t *testing.T) {
	b := NewBuilder()
	row := Row{1: int64(1), 2: int64(2)}
	p := b.And(b.Equal(1, int64(1)), b.GreaterThan(2, int64(1)))
	require.True(t, p.Test(row))
	require.False(t, b.And(p, b.IsNull(2)).Test(row))
	require.True(t, b.Or(b.IsNull(1), b.Equal(2, int64(2))).Test(row))
	require.False(t, b.Or(b.IsNull(1), b.IsNull(2)).Test(row))
}

func TestBuilderFlattens(t *testing.T) {
	b := NewBuilder()
	p1, p2, p3 := b.Equal(1, int64(1)), b.Equal(2, int64(2)), b.Equal(3, int64(3))
	p := b.And(b.And(p1, p2), p3)
	require.Equal(t, "And([Equal(1, 1), Equal(2, 2), Equal(3, 3)])", p.String())
	require.Same(t, p1, b.Or(p1))
	require.Equal(t, "Or([And([Equal(1, 1), Equal(2, 2)]), Equal(3, 3)])", b.Or(b.And(p1, p2), p3).String())
	require.Equal(t, []int32{1, 2, 3}, FieldIds(p))
}

func TestString(t *testing.T) {
	b := NewBuilder()
	require.Equal(t, "In(3, [1, null, 'x'])", b.In(3, []any{int64(1), nil, "x"}).String())
	require.Equal(t, "IsNull(3)", b.IsNull(3).String())
	require.Equal(t, "LessThan(4, 1.50)", b.LessThan(4, types.MustDecimal("1.50")).String())
}

func TestNegate(t *testing.T) {
	b := NewBuilder()
	p := b.Or(b.LessThan(1, int64(3)), b.In(2, []any{"a"}))
	n, ok := p.Negate()
	require.True(t, ok)
	require.Equal(t, "And([GreaterOrEqual(1, 3), NotIn(2, ['a'])])", n.String())

	for _, row := range []Row{{1: int64(1), 2: "a"}, {1: int64(5), 2: "b"}, {1: int64(3), 2: "a"}} {
		require.NotEqual(t, p.Test(row), n.Test(row))
	}

	nn, ok := b.IsNull(1).Negate()
	require.True(t, ok)
	require.Equal(t, "IsNotNull(1)", nn.String())
}
