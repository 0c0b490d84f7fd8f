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
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/container/types"
	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/format"
	"github.com/pingcap/tidb/pkg/parser/mysql"
	"github.com/pingcap/tidb/pkg/parser/opcode"
	"github.com/pingcap/tidb/pkg/parser/test_driver"
)

// BuildFilter parses a mysql boolean expression, as it would appear after
// WHERE, and binds its column references against cols.
func BuildFilter(ctx context.Context, sql string, cols map[string]types.Type) (Expr, error) {
	stmt, err := parser.New().ParseOneStmt("select * from t where "+sql, "", "")
	if err != nil {
		return nil, moerr.NewInvalidInput(ctx, "parse filter '%s': %v", sql, err)
	}
	sel, ok := stmt.(*ast.SelectStmt)
	if !ok || sel.Where == nil {
		return nil, moerr.NewInvalidInput(ctx, "not a filter: %s", sql)
	}
	b := &filterBinder{
		ctx:  ctx,
		cols: make(map[string]types.Type, len(cols)),
	}
	for name, typ := range cols {
		b.cols[strings.ToLower(name)] = typ
	}
	return b.bind(sel.Where)
}

type filterBinder struct {
	ctx  context.Context
	cols map[string]types.Type
}

func (b *filterBinder) bind(node ast.ExprNode) (Expr, error) {
	switch e := node.(type) {
	case *ast.ParenthesesExpr:
		return b.bind(e.Expr)
	case *ast.BinaryOperationExpr:
		return b.bindBinary(e)
	case *ast.UnaryOperationExpr:
		return b.bindUnary(e)
	case *ast.PatternInExpr:
		return b.bindIn(e)
	case *ast.IsNullExpr:
		arg, err := b.bind(e.Expr)
		if err != nil {
			return nil, err
		}
		name := "isnull"
		if e.Not {
			name = "isnotnull"
		}
		return &FuncExpr{Name: name, Args: []Expr{arg}}, nil
	case *ast.ColumnNameExpr:
		name := e.Name.Name.L
		typ, ok := b.cols[name]
		if !ok {
			return nil, moerr.NewInvalidInput(b.ctx, "column %s does not exist", name)
		}
		return NewColRef(name, typ), nil
	case *ast.FuncCastExpr:
		arg, err := b.bind(e.Expr)
		if err != nil {
			return nil, err
		}
		return NewCast(arg, castType(e.Tp.GetType(), e.Tp.GetFlen(), e.Tp.GetDecimal())), nil
	case *ast.SubqueryExpr:
		return &Subquery{Sql: restoreText(e.Query)}, nil
	case *ast.ExistsSubqueryExpr:
		sub, err := b.bind(e.Sel)
		if err != nil {
			return nil, err
		}
		return &FuncExpr{Name: "exists", Args: []Expr{sub}}, nil
	case *ast.FuncCallExpr:
		args := make([]Expr, 0, len(e.Args))
		for _, a := range e.Args {
			arg, err := b.bind(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &FuncExpr{Name: e.FnName.L, Args: args}, nil
	case *test_driver.ValueExpr:
		return b.bindValue(e)
	}
	return nil, moerr.NewNYI(b.ctx, "filter expression %s", restoreText(node))
}

func (b *filterBinder) bindBinary(e *ast.BinaryOperationExpr) (Expr, error) {
	left, err := b.bind(e.L)
	if err != nil {
		return nil, err
	}
	right, err := b.bind(e.R)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case opcode.LogicAnd:
		return NewAnd(left, right), nil
	case opcode.LogicOr:
		return NewOr(left, right), nil
	}
	op, ok := comparisonOps[e.Op]
	if !ok {
		return &FuncExpr{Name: e.Op.String(), Args: []Expr{left, right}}, nil
	}
	if col, ok := ColumnOf(left); ok {
		right = coerce(right, col.Typ)
	}
	if col, ok := ColumnOf(right); ok {
		left = coerce(left, col.Typ)
	}
	return NewBinary(op, left, right), nil
}

var comparisonOps = map[opcode.Op]BinaryOp{
	opcode.EQ:     EQ,
	opcode.NE:     NE,
	opcode.LT:     LT,
	opcode.LE:     LE,
	opcode.GT:     GT,
	opcode.GE:     GE,
	opcode.NullEQ: EQ_FOR_NULL,
}

func (b *filterBinder) bindUnary(e *ast.UnaryOperationExpr) (Expr, error) {
	v, err := b.bind(e.V)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case opcode.Not:
		return NewNot(v), nil
	case opcode.Plus:
		return v, nil
	case opcode.Minus:
		if lit, ok := v.(*Literal); ok {
			switch lit.Kind {
			case LiteralInt:
				return NewIntLiteral(-lit.Int), nil
			case LiteralFloat:
				return NewFloatLiteral(-lit.Float), nil
			case LiteralDecimal:
				if d, err := types.ParseDecimal("-"+lit.Decimal.String(), lit.Decimal.Precision, lit.Decimal.Scale); err == nil {
					return NewDecimalLiteral(d), nil
				}
			}
		}
	}
	return &FuncExpr{Name: e.Op.String(), Args: []Expr{v}}, nil
}

func (b *filterBinder) bindIn(e *ast.PatternInExpr) (Expr, error) {
	arg, err := b.bind(e.Expr)
	if err != nil {
		return nil, err
	}
	in := &InPredicate{Arg: arg, NotIn: e.Not}
	if e.Sel != nil {
		sub, err := b.bind(e.Sel)
		if err != nil {
			return nil, err
		}
		in.List = []Expr{sub}
		return in, nil
	}
	col, isCol := ColumnOf(arg)
	for _, item := range e.List {
		v, err := b.bind(item)
		if err != nil {
			return nil, err
		}
		if isCol {
			v = coerce(v, col.Typ)
		}
		in.List = append(in.List, v)
	}
	return in, nil
}

func (b *filterBinder) bindValue(e *test_driver.ValueExpr) (Expr, error) {
	d := e.Datum
	switch d.Kind() {
	case test_driver.KindNull:
		return NewNullLiteral(), nil
	case test_driver.KindInt64:
		return NewIntLiteral(d.GetInt64()), nil
	case test_driver.KindUint64:
		u := d.GetUint64()
		if u > math.MaxInt64 {
			dec, err := types.ParseDecimal(strconv.FormatUint(u, 10), 0, 0)
			if err != nil {
				return nil, err
			}
			return NewDecimalLiteral(dec), nil
		}
		return NewIntLiteral(int64(u)), nil
	case test_driver.KindFloat32:
		return NewFloatLiteral(float64(d.GetFloat32())), nil
	case test_driver.KindFloat64:
		return NewFloatLiteral(d.GetFloat64()), nil
	case test_driver.KindString, test_driver.KindBytes:
		return NewStringLiteral(d.GetString()), nil
	case test_driver.KindMysqlDecimal:
		dec, err := types.ParseDecimal(d.GetMysqlDecimal().String(), 0, 0)
		if err != nil {
			return nil, err
		}
		return NewDecimalLiteral(dec), nil
	}
	return nil, moerr.NewNYI(b.ctx, "literal %s", restoreText(e))
}

// coerce converts a literal to the type of the column it is compared with,
// leaving it untouched when the conversion does not apply.
func coerce(expr Expr, typ types.Type) Expr {
	lit, ok := expr.(*Literal)
	if !ok {
		return expr
	}
	switch typ.Oid {
	case types.T_bool:
		if lit.Kind == LiteralInt && (lit.Int == 0 || lit.Int == 1) {
			return NewBoolLiteral(lit.Int == 1)
		}
	case types.T_float64:
		switch lit.Kind {
		case LiteralInt:
			return NewFloatLiteral(float64(lit.Int))
		case LiteralDecimal:
			return NewFloatLiteral(lit.Decimal.Float64())
		}
	case types.T_decimal128:
		var text string
		switch lit.Kind {
		case LiteralInt:
			text = strconv.FormatInt(lit.Int, 10)
		case LiteralDecimal:
			text = lit.Decimal.String()
		case LiteralString:
			text = lit.Str
		default:
			return expr
		}
		// Only exact conversions; rounding 1.005 to 1.01 would change
		// which rows match.
		exact, err := types.ParseDecimal(text, 0, 0)
		if err != nil {
			return expr
		}
		if d, err := types.ParseDecimal(text, typ.Width, typ.Scale); err == nil && d.Compare(exact) == 0 {
			return NewDecimalLiteral(d)
		}
	case types.T_datetime:
		if lit.Kind == LiteralString {
			if dt, err := types.ParseDatetime(lit.Str); err == nil {
				return NewDatetimeLiteral(dt)
			}
		}
	case types.T_json:
		if lit.Kind == LiteralString {
			return NewJsonLiteral(lit.Str)
		}
	}
	return expr
}

func castType(tp byte, flen, decimal int) types.Type {
	switch tp {
	case mysql.TypeTiny, mysql.TypeShort, mysql.TypeInt24, mysql.TypeLong, mysql.TypeLonglong:
		return types.New(types.T_int64, 0, 0)
	case mysql.TypeFloat, mysql.TypeDouble:
		return types.New(types.T_float64, 0, 0)
	case mysql.TypeNewDecimal:
		if flen <= 0 {
			flen = 10
		}
		if decimal < 0 {
			decimal = 0
		}
		return types.New(types.T_decimal128, int32(flen), int32(decimal))
	case mysql.TypeVarchar, mysql.TypeVarString, mysql.TypeString, mysql.TypeBlob:
		return types.New(types.T_varchar, int32(flen), 0)
	case mysql.TypeDate, mysql.TypeDatetime, mysql.TypeTimestamp:
		return types.New(types.T_datetime, 0, 0)
	case mysql.TypeJSON:
		return types.New(types.T_json, 0, 0)
	}
	return types.New(types.T_any, 0, 0)
}

func restoreText(node ast.Node) string {
	var sb strings.Builder
	if err := node.Restore(format.NewRestoreCtx(format.DefaultRestoreFlags, &sb)); err != nil {
		return "?"
	}
	return sb.String()
}
