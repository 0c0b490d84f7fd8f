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
	"fmt"
	"strings"

	"github.com/matrixorigin/extcatalog/pkg/container/types"
)

// Expr is a node of a bound filter expression.
type Expr interface {
	fmt.Stringer
	exprNode()
}

type CompoundOp uint8

const (
	AND CompoundOp = iota
	OR
	NOT
)

func (op CompoundOp) String() string {
	switch op {
	case AND:
		return "and"
	case OR:
		return "or"
	case NOT:
		return "not"
	}
	return fmt.Sprintf("compound(%d)", uint8(op))
}

// CompoundPredicate is a logical connective. AND and OR carry two children,
// NOT carries one.
type CompoundPredicate struct {
	Op       CompoundOp
	Children []Expr
}

type BinaryOp uint8

const (
	EQ BinaryOp = iota
	NE
	LT
	LE
	GT
	GE
	// EQ_FOR_NULL is the null safe equality, a <=> b.
	EQ_FOR_NULL
)

func (op BinaryOp) String() string {
	switch op {
	case EQ:
		return "="
	case NE:
		return "!="
	case LT:
		return "<"
	case LE:
		return "<="
	case GT:
		return ">"
	case GE:
		return ">="
	case EQ_FOR_NULL:
		return "<=>"
	}
	return fmt.Sprintf("binary(%d)", uint8(op))
}

// Mirror returns the operator that gives the same result with the operands
// swapped, so that "lit op col" can be rewritten as "col op.Mirror() lit".
func (op BinaryOp) Mirror() BinaryOp {
	switch op {
	case LT:
		return GT
	case LE:
		return GE
	case GT:
		return LT
	case GE:
		return LE
	default:
		return op
	}
}

type BinaryPredicate struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// InPredicate is Arg [NOT] IN (List...).
type InPredicate struct {
	Arg   Expr
	List  []Expr
	NotIn bool
}

type ColRef struct {
	Name string
	Typ  types.Type
}

type CastExpr struct {
	Arg Expr
	Typ types.Type
}

// Subquery is an uncorrelated or correlated subquery, kept as text.
type Subquery struct {
	Sql string
}

// FuncExpr is any function call the filter layer does not model.
type FuncExpr struct {
	Name string
	Args []Expr
}

func (*CompoundPredicate) exprNode() {}
func (*BinaryPredicate) exprNode()   {}
func (*InPredicate) exprNode()       {}
func (*Literal) exprNode()           {}
func (*ColRef) exprNode()            {}
func (*CastExpr) exprNode()          {}
func (*Subquery) exprNode()          {}
func (*FuncExpr) exprNode()          {}

func (e *CompoundPredicate) String() string {
	if e.Op == NOT && len(e.Children) == 1 {
		return "not(" + e.Children[0].String() + ")"
	}
	parts := make([]string, len(e.Children))
	for i, c := range e.Children {
		parts[i] = c.String()
	}
	return "(" + strings.Join(parts, " "+e.Op.String()+" ") + ")"
}

func (e *BinaryPredicate) String() string {
	return e.Left.String() + " " + e.Op.String() + " " + e.Right.String()
}

func (e *InPredicate) String() string {
	parts := make([]string, len(e.List))
	for i, c := range e.List {
		parts[i] = c.String()
	}
	op := " in "
	if e.NotIn {
		op = " not in "
	}
	return e.Arg.String() + op + "(" + strings.Join(parts, ", ") + ")"
}

func (e *ColRef) String() string {
	return e.Name
}

func (e *CastExpr) String() string {
	return "cast(" + e.Arg.String() + " as " + e.Typ.String() + ")"
}

func (e *Subquery) String() string {
	return "(" + e.Sql + ")"
}

func (e *FuncExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, c := range e.Args {
		parts[i] = c.String()
	}
	return e.Name + "(" + strings.Join(parts, ", ") + ")"
}

func NewAnd(left, right Expr) *CompoundPredicate {
	return &CompoundPredicate{Op: AND, Children: []Expr{left, right}}
}

func NewOr(left, right Expr) *CompoundPredicate {
	return &CompoundPredicate{Op: OR, Children: []Expr{left, right}}
}

func NewNot(child Expr) *CompoundPredicate {
	return &CompoundPredicate{Op: NOT, Children: []Expr{child}}
}

func NewBinary(op BinaryOp, left, right Expr) *BinaryPredicate {
	return &BinaryPredicate{Op: op, Left: left, Right: right}
}

func NewIn(arg Expr, list ...Expr) *InPredicate {
	return &InPredicate{Arg: arg, List: list}
}

func NewNotIn(arg Expr, list ...Expr) *InPredicate {
	return &InPredicate{Arg: arg, List: list, NotIn: true}
}

func NewColRef(name string, typ types.Type) *ColRef {
	return &ColRef{Name: name, Typ: typ}
}

func NewCast(arg Expr, typ types.Type) *CastExpr {
	return &CastExpr{Arg: arg, Typ: typ}
}
