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
	"context"
	"testing"
	"time"

	"github.com/matrixorigin/extcatalog/pkg/container/types"
	"github.com/matrixorigin/extcatalog/pkg/datasource/paimon/predicate"
	"github.com/matrixorigin/extcatalog/pkg/sql/plan"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	v2 "github.com/matrixorigin/extcatalog/pkg/util/metric/v2"
)

var (
	intTyp = types.New(types.T_int64, 0, 0)
	colA   = plan.NewColRef("a", intTyp)
	colB   = plan.NewColRef("b", intTyp)
)

func lit(v int64) *plan.Literal { return plan.NewIntLiteral(v) }

func newTestTranslator(opts ...Option) *Translator {
	return NewTranslator(predicate.NewBuilder(), opts...)
}

func toString(p predicate.Predicate) string {
	if p == nil {
		return "<unsupported>"
	}
	return p.String()
}

func TestTranslate(t *testing.T) {
	tr := newTestTranslator()
	ids := map[string]int32{"a": 3}
	convey.Convey("translate filters", t, func() {
		kases := []struct {
			name string
			expr plan.Expr
			want string
		}{
			{"column on the left", plan.NewBinary(plan.EQ, colA, lit(5)), "Equal(3, 5)"},
			{"column on the right", plan.NewBinary(plan.EQ, lit(5), colA), "Equal(3, 5)"},
			{"null safe equal to null", plan.NewBinary(plan.EQ_FOR_NULL, colA, plan.NewNullLiteral()), "IsNull(3)"},
			{"null safe equal to null mirrored", plan.NewBinary(plan.EQ_FOR_NULL, plan.NewNullLiteral(), colA), "IsNull(3)"},
			{"equal to null", plan.NewBinary(plan.EQ, colA, plan.NewNullLiteral()), "<unsupported>"},
			{"less than null", plan.NewBinary(plan.LT, colA, plan.NewNullLiteral()), "<unsupported>"},
			{"null safe equal to value", plan.NewBinary(plan.EQ_FOR_NULL, colA, lit(1)), "Equal(3, 1)"},
			{"in list", plan.NewIn(colA, lit(1), lit(2), lit(3)), "In(3, [1, 2, 3])"},
			{"in list keeps nulls", plan.NewIn(colA, lit(1), plan.NewNullLiteral()), "In(3, [1, null])"},
			{"not in list", plan.NewNotIn(colA, lit(1)), "NotIn(3, [1])"},
			{"in subquery", plan.NewIn(colA, &plan.Subquery{Sql: "select b from t"}), "<unsupported>"},
			{"in with column item", plan.NewIn(colA, lit(1), colB), "<unsupported>"},
			{"in with json item", plan.NewIn(colA, plan.NewJsonLiteral("{}")), "<unsupported>"},
			{"in on literal", plan.NewIn(lit(1), lit(1)), "<unsupported>"},
			{"and with missing field", plan.NewAnd(plan.NewBinary(plan.EQ, colA, lit(1)), plan.NewBinary(plan.GT, colB, lit(2))), "<unsupported>"},
			{"or", plan.NewOr(plan.NewBinary(plan.EQ, colA, lit(1)), plan.NewBinary(plan.GT, colA, lit(2))), "Or([Equal(3, 1), GreaterThan(3, 2)])"},
			{"not", plan.NewNot(plan.NewBinary(plan.EQ, colA, lit(1))), "<unsupported>"},
			{"two columns", plan.NewBinary(plan.EQ, colA, colA), "<unsupported>"},
			{"two literals", plan.NewBinary(plan.EQ, lit(1), lit(1)), "<unsupported>"},
			{"cast of column", plan.NewBinary(plan.LE, plan.NewCast(colA, intTyp), lit(7)), "LessOrEqual(3, 7)"},
			{"cast of literal", plan.NewBinary(plan.LE, colA, plan.NewCast(lit(7), intTyp)), "<unsupported>"},
			{"function", &plan.FuncExpr{Name: "isnull", Args: []plan.Expr{colA}}, "<unsupported>"},
			{"maxvalue", plan.NewBinary(plan.LT, colA, plan.NewMaxValueLiteral()), "<unsupported>"},
			{"bare column", colA, "<unsupported>"},
		}
		for _, kase := range kases {
			convey.So(toString(tr.Translate(kase.expr, ids)), convey.ShouldEqual, kase.want)
		}
	})
}

func TestTranslateMirrorsOperators(t *testing.T) {
	tr := newTestTranslator()
	ids := map[string]int32{"a": 3}
	kases := map[plan.BinaryOp]string{
		plan.LT: "GreaterThan(3, 5)",
		plan.LE: "GreaterOrEqual(3, 5)",
		plan.GT: "LessThan(3, 5)",
		plan.GE: "LessOrEqual(3, 5)",
		plan.NE: "NotEqual(3, 5)",
	}
	for op, want := range kases {
		// 5 op a
		require.Equal(t, want, toString(tr.Translate(plan.NewBinary(op, lit(5), colA), ids)), op.String())
	}
}

func TestTranslateMissingFieldId(t *testing.T) {
	tr := newTestTranslator()
	ids := map[string]int32{"b": 4}
	require.Nil(t, tr.Translate(plan.NewBinary(plan.EQ, colA, lit(1)), ids))
	require.Nil(t, tr.Translate(plan.NewIn(colA, lit(1)), ids))
	require.Nil(t, tr.Translate(plan.NewBinary(plan.EQ_FOR_NULL, colA, plan.NewNullLiteral()), ids))
	require.Nil(t, tr.Translate(plan.NewBinary(plan.EQ, colA, lit(1)), nil))
}

func TestExtractLiteral(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	tr := newTestTranslator(WithLocation(loc))
	require.Same(t, loc, tr.Location())

	dec := types.MustDecimal("12.340")
	kases := []struct {
		lit  *plan.Literal
		want any
		ok   bool
	}{
		{plan.NewBoolLiteral(true), true, true},
		{plan.NewIntLiteral(-9), int64(-9), true},
		{plan.NewFloatLiteral(0.5), 0.5, true},
		{plan.NewDecimalLiteral(dec), dec, true},
		{plan.NewStringLiteral("x"), "x", true},
		{plan.NewDatetimeLiteral(types.FromClock(1970, 1, 1, 8, 0, 1, 0)), int64(1000), true},
		{plan.NewDatetimeLiteral(types.FromClock(2023, 2, 30, 0, 0, 0, 0)), nil, false},
		{plan.NewDatetimeLiteral(types.FromClock(1970, 1, 1, 8, 0, 1, 500000)), nil, false},
		{plan.NewNullLiteral(), nil, true},
		{plan.NewJsonLiteral("{}"), nil, false},
		{plan.NewMaxValueLiteral(), nil, false},
	}
	for _, kase := range kases {
		v, ok := tr.ExtractLiteral(kase.lit)
		require.Equal(t, kase.ok, ok, kase.lit.String())
		require.Equal(t, kase.want, v, kase.lit.String())
	}

	d, _ := tr.ExtractLiteral(plan.NewDecimalLiteral(dec))
	require.Equal(t, int32(3), d.(types.Decimal).Scale)
	require.Equal(t, int32(5), d.(types.Decimal).Precision)
}

func TestTranslateDatetimeLocation(t *testing.T) {
	ts := plan.NewColRef("ts", types.New(types.T_datetime, 0, 0))
	ids := map[string]int32{"ts": 1}
	e := plan.NewBinary(plan.GE, ts, plan.NewDatetimeLiteral(types.FromClock(2024, 1, 1, 0, 0, 0, 0)))

	utc := newTestTranslator(WithLocation(time.UTC)).Translate(e, ids)
	require.Equal(t, "GreaterOrEqual(1, 1704067200000)", toString(utc))

	local := newTestTranslator()
	require.Same(t, time.Local, local.Location())
	require.NotNil(t, local.Translate(e, ids))

	bad := plan.NewBinary(plan.GE, ts, plan.NewDatetimeLiteral(types.FromClock(2024, 13, 1, 0, 0, 0, 0)))
	require.Nil(t, local.Translate(bad, ids))

	// A fractional second does not survive the millisecond conversion, so
	// ts > '...00.5' must not accept a '...00.200' row.
	half := plan.NewDatetimeLiteral(types.FromClock(2024, 1, 1, 0, 0, 0, 500000))
	for _, op := range []plan.BinaryOp{plan.GT, plan.EQ, plan.NE} {
		require.Nil(t, local.Translate(plan.NewBinary(op, ts, half), ids), op.String())
	}
	require.Nil(t, local.Translate(plan.NewIn(ts, half), ids))
}

func TestTranslateTypeMismatch(t *testing.T) {
	tr := newTestTranslator(WithLocation(time.UTC))
	s := plan.NewColRef("s", types.New(types.T_varchar, 10, 0))
	ts := plan.NewColRef("ts", types.New(types.T_datetime, 0, 0))
	flag := plan.NewColRef("f", types.New(types.T_bool, 0, 0))
	d := plan.NewColRef("d", types.New(types.T_decimal128, 10, 2))
	ids := map[string]int32{"a": 1, "s": 2, "ts": 3, "f": 4, "d": 5}
	day := plan.NewDatetimeLiteral(types.FromClock(2024, 1, 1, 0, 0, 0, 0))

	kases := []struct {
		name string
		expr plan.Expr
		want string
	}{
		{"string column with int", plan.NewBinary(plan.NE, s, lit(5)), "<unsupported>"},
		{"string column with string", plan.NewBinary(plan.NE, s, plan.NewStringLiteral("5")), "NotEqual(2, '5')"},
		{"int column with string", plan.NewBinary(plan.EQ, colA, plan.NewStringLiteral("5")), "<unsupported>"},
		{"int column with float", plan.NewBinary(plan.LT, colA, plan.NewFloatLiteral(2.5)), "LessThan(1, 2.5)"},
		{"decimal column with int", plan.NewBinary(plan.GE, d, lit(3)), "GreaterOrEqual(5, 3)"},
		{"datetime column with int", plan.NewBinary(plan.GT, ts, lit(0)), "<unsupported>"},
		{"datetime column with datetime", plan.NewBinary(plan.GT, ts, day), "GreaterThan(3, 1704067200000)"},
		{"int column with datetime", plan.NewBinary(plan.GT, colA, day), "<unsupported>"},
		{"bool column with bool", plan.NewBinary(plan.EQ, flag, plan.NewBoolLiteral(true)), "Equal(4, true)"},
		{"bool column with int", plan.NewBinary(plan.EQ, flag, lit(1)), "<unsupported>"},
		{"in with mixed items", plan.NewIn(s, plan.NewStringLiteral("a"), lit(1)), "<unsupported>"},
		{"not in with mixed items", plan.NewNotIn(colA, lit(1), plan.NewStringLiteral("x")), "<unsupported>"},
		{"null fits any column", plan.NewBinary(plan.EQ_FOR_NULL, s, plan.NewNullLiteral()), "IsNull(2)"},
		{"cast to another type", plan.NewBinary(plan.EQ, plan.NewCast(colA, types.New(types.T_varchar, 0, 0)), plan.NewStringLiteral("5")), "<unsupported>"},
		{"cast that truncates", plan.NewBinary(plan.EQ, plan.NewCast(s, types.New(types.T_varchar, 2, 0)), plan.NewStringLiteral("ab")), "<unsupported>"},
		{"cast that widens", plan.NewBinary(plan.EQ, plan.NewCast(s, types.New(types.T_varchar, 20, 0)), plan.NewStringLiteral("ab")), "Equal(2, 'ab')"},
		{"cast that rounds", plan.NewBinary(plan.EQ, plan.NewCast(d, types.New(types.T_decimal128, 10, 0)), lit(1)), "<unsupported>"},
	}
	for _, kase := range kases {
		require.Equal(t, kase.want, toString(tr.Translate(kase.expr, ids)), kase.name)
	}

	// d = 1.005 on DECIMAL(10,2) matches nothing and must not match 1.01.
	expr, err := plan.BuildFilter(context.TODO(), "d = 1.005", map[string]types.Type{"d": d.Typ})
	require.NoError(t, err)
	p := tr.Translate(expr, ids)
	require.NotNil(t, p)
	require.False(t, p.Test(predicate.Row{5: types.MustDecimal("1.01")}))
	require.False(t, p.Test(predicate.Row{5: types.MustDecimal("1.00")}))
}

func TestTranslateCountsOutcome(t *testing.T) {
	tr := newTestTranslator()
	ids := map[string]int32{"a": 3}
	pushed := testutil.ToFloat64(v2.PushdownPushedCounter)
	unsupported := testutil.ToFloat64(v2.PushdownUnsupportedCounter)
	tr.Translate(plan.NewBinary(plan.EQ, colA, lit(1)), ids)
	tr.Translate(plan.NewNot(colA), ids)
	require.Equal(t, pushed+1, testutil.ToFloat64(v2.PushdownPushedCounter))
	require.Equal(t, unsupported+1, testutil.ToFloat64(v2.PushdownUnsupportedCounter))
}

func TestSplitConjuncts(t *testing.T) {
	tr := newTestTranslator()
	ids := map[string]int32{"a": 3}
	p1 := plan.NewBinary(plan.EQ, colA, lit(1))
	p2 := plan.NewBinary(plan.GT, colB, lit(2))
	p3 := plan.NewIn(colA, lit(1), lit(2))

	pushed, residual := tr.SplitConjuncts([]plan.Expr{plan.NewAnd(p1, p2), p3}, ids)
	require.Equal(t, "And([Equal(3, 1), In(3, [1, 2])])", toString(pushed))
	require.Equal(t, []plan.Expr{p2}, residual)

	pushed, residual = tr.SplitConjuncts([]plan.Expr{p2}, ids)
	require.Nil(t, pushed)
	require.Len(t, residual, 1)

	pushed, residual = tr.SplitConjuncts(nil, ids)
	require.Nil(t, pushed)
	require.Empty(t, residual)
}
