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
	"time"

	"github.com/matrixorigin/extcatalog/pkg/container/types"
	"github.com/matrixorigin/extcatalog/pkg/datasource/paimon/predicate"
	"github.com/matrixorigin/extcatalog/pkg/sql/plan"
	v2 "github.com/matrixorigin/extcatalog/pkg/util/metric/v2"
)

// Builder creates field id based predicates. predicate.Builder implements it.
type Builder interface {
	Equal(fieldId int32, literal any) predicate.Predicate
	NotEqual(fieldId int32, literal any) predicate.Predicate
	LessThan(fieldId int32, literal any) predicate.Predicate
	LessOrEqual(fieldId int32, literal any) predicate.Predicate
	GreaterThan(fieldId int32, literal any) predicate.Predicate
	GreaterOrEqual(fieldId int32, literal any) predicate.Predicate
	In(fieldId int32, literals []any) predicate.Predicate
	NotIn(fieldId int32, literals []any) predicate.Predicate
	IsNull(fieldId int32) predicate.Predicate
	And(preds ...predicate.Predicate) predicate.Predicate
	Or(preds ...predicate.Predicate) predicate.Predicate
}

type Option func(*Translator)

// WithLocation sets the location datetime literals are interpreted in.
func WithLocation(loc *time.Location) Option {
	return func(t *Translator) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// Translator converts filter expressions into predicates. It holds no
// mutable state and is safe for concurrent use.
type Translator struct {
	builder Builder
	loc     *time.Location
}

func NewTranslator(builder Builder, opts ...Option) *Translator {
	t := &Translator{
		builder: builder,
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Translator) Location() *time.Location {
	return t.loc
}

// Translate returns the predicate equivalent to expr, or nil when expr can
// not be pushed down without changing its result. fieldIds maps column names
// to field ids.
func (t *Translator) Translate(expr plan.Expr, fieldIds map[string]int32) predicate.Predicate {
	p := t.translate(expr, fieldIds)
	if p == nil {
		v2.PushdownUnsupportedCounter.Inc()
	} else {
		v2.PushdownPushedCounter.Inc()
	}
	return p
}

func (t *Translator) translate(expr plan.Expr, fieldIds map[string]int32) predicate.Predicate {
	switch e := expr.(type) {
	case *plan.CompoundPredicate:
		return t.translateCompound(e, fieldIds)
	case *plan.BinaryPredicate:
		return t.translateComparison(e, fieldIds)
	case *plan.InPredicate:
		return t.translateIn(e, fieldIds)
	}
	return nil
}

func (t *Translator) translateCompound(e *plan.CompoundPredicate, fieldIds map[string]int32) predicate.Predicate {
	if e.Op != plan.AND && e.Op != plan.OR {
		return nil
	}
	if len(e.Children) == 0 {
		return nil
	}
	children := make([]predicate.Predicate, 0, len(e.Children))
	for _, c := range e.Children {
		p := t.translate(c, fieldIds)
		if p == nil {
			return nil
		}
		children = append(children, p)
	}
	if e.Op == plan.AND {
		return t.builder.And(children...)
	}
	return t.builder.Or(children...)
}

func (t *Translator) translateComparison(e *plan.BinaryPredicate, fieldIds map[string]int32) predicate.Predicate {
	operand, col, lit, op, ok := columnAndLiteral(e)
	if !ok {
		return nil
	}
	fieldId, ok := fieldIds[col.Name]
	if !ok {
		return nil
	}
	if !operandFits(operand, col, lit) {
		return nil
	}
	value, ok := t.ExtractLiteral(lit)
	if !ok {
		return nil
	}
	if value == nil {
		if op == plan.EQ_FOR_NULL && lit.IsNull() {
			return t.builder.IsNull(fieldId)
		}
		return nil
	}
	switch op {
	case plan.EQ, plan.EQ_FOR_NULL:
		return t.builder.Equal(fieldId, value)
	case plan.NE:
		return t.builder.NotEqual(fieldId, value)
	case plan.LT:
		return t.builder.LessThan(fieldId, value)
	case plan.LE:
		return t.builder.LessOrEqual(fieldId, value)
	case plan.GT:
		return t.builder.GreaterThan(fieldId, value)
	case plan.GE:
		return t.builder.GreaterOrEqual(fieldId, value)
	}
	return nil
}

// columnAndLiteral normalizes a comparison to "column op literal", mirroring
// the operator when the column is on the right. operand is the column side
// as written, possibly a cast of the column.
func columnAndLiteral(e *plan.BinaryPredicate) (operand plan.Expr, col *plan.ColRef, lit *plan.Literal, op plan.BinaryOp, ok bool) {
	leftCol, leftIsCol := plan.ColumnOf(e.Left)
	rightCol, rightIsCol := plan.ColumnOf(e.Right)
	leftLit, leftIsLit := e.Left.(*plan.Literal)
	rightLit, rightIsLit := e.Right.(*plan.Literal)
	switch {
	case leftIsCol && rightIsLit:
		return e.Left, leftCol, rightLit, e.Op, true
	case rightIsCol && leftIsLit:
		return e.Right, rightCol, leftLit, e.Op.Mirror(), true
	}
	return nil, nil, nil, e.Op, false
}

// operandFits reports whether comparing the stored values of col with lit
// gives the same answer as the filter. The literal must have the column's
// type family, and a cast of the column must not change its values.
func operandFits(operand plan.Expr, col *plan.ColRef, lit *plan.Literal) bool {
	if !literalFits(col.Typ, lit.Kind) {
		return false
	}
	if c, ok := operand.(*plan.CastExpr); ok {
		return castPreserves(col.Typ, c.Typ) && literalFits(c.Typ, lit.Kind)
	}
	return true
}

func literalFits(typ types.Type, kind plan.LiteralKind) bool {
	switch kind {
	case plan.LiteralNull:
		return true
	case plan.LiteralInt, plan.LiteralFloat, plan.LiteralDecimal:
		switch typ.Oid {
		case types.T_int64, types.T_float64, types.T_decimal128:
			return true
		}
	case plan.LiteralBool:
		return typ.Oid == types.T_bool
	case plan.LiteralString:
		return typ.Oid == types.T_varchar
	case plan.LiteralDatetime:
		return typ.Oid == types.T_datetime
	}
	return false
}

// castPreserves reports whether casting from to to keeps every value.
func castPreserves(from, to types.Type) bool {
	if from.Oid != to.Oid {
		return false
	}
	switch to.Oid {
	case types.T_decimal128:
		return to.Scale >= from.Scale && to.Width-to.Scale >= from.Width-from.Scale
	case types.T_varchar:
		return to.Width == 0 || (from.Width > 0 && to.Width >= from.Width)
	}
	return true
}

func (t *Translator) translateIn(e *plan.InPredicate, fieldIds map[string]int32) predicate.Predicate {
	if plan.ContainsSubquery(e) {
		return nil
	}
	col, ok := plan.ColumnOf(e.Arg)
	if !ok {
		return nil
	}
	fieldId, ok := fieldIds[col.Name]
	if !ok {
		return nil
	}
	values := make([]any, 0, len(e.List))
	for _, item := range e.List {
		lit, ok := item.(*plan.Literal)
		if !ok {
			return nil
		}
		if !operandFits(e.Arg, col, lit) {
			return nil
		}
		value, ok := t.ExtractLiteral(lit)
		if !ok {
			return nil
		}
		values = append(values, value)
	}
	if e.NotIn {
		return t.builder.NotIn(fieldId, values)
	}
	return t.builder.In(fieldId, values)
}
