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

// Walk visits expr in pre-order. Returning false from fn skips the children
// of the visited node.
func Walk(expr Expr, fn func(Expr) bool) {
	if expr == nil || !fn(expr) {
		return
	}
	switch e := expr.(type) {
	case *CompoundPredicate:
		for _, c := range e.Children {
			Walk(c, fn)
		}
	case *BinaryPredicate:
		Walk(e.Left, fn)
		Walk(e.Right, fn)
	case *InPredicate:
		Walk(e.Arg, fn)
		for _, c := range e.List {
			Walk(c, fn)
		}
	case *CastExpr:
		Walk(e.Arg, fn)
	case *FuncExpr:
		for _, c := range e.Args {
			Walk(c, fn)
		}
	}
}

func ContainsSubquery(expr Expr) bool {
	found := false
	Walk(expr, func(e Expr) bool {
		if _, ok := e.(*Subquery); ok {
			found = true
		}
		return !found
	})
	return found
}

// SplitConjunction flattens nested ANDs into their conjuncts.
func SplitConjunction(expr Expr) []Expr {
	var exprs []Expr
	if c, ok := expr.(*CompoundPredicate); ok && c.Op == AND {
		for _, child := range c.Children {
			exprs = append(exprs, SplitConjunction(child)...)
		}
		return exprs
	}
	return append(exprs, expr)
}

// CombineConjunction is the inverse of SplitConjunction. It returns nil for
// an empty input.
func CombineConjunction(exprs []Expr) Expr {
	if len(exprs) == 0 {
		return nil
	}
	expr := exprs[0]
	for i := 1; i < len(exprs); i++ {
		expr = NewAnd(expr, exprs[i])
	}
	return expr
}

// ColumnOf returns the column referenced by expr, looking through one cast.
func ColumnOf(expr Expr) (*ColRef, bool) {
	switch e := expr.(type) {
	case *ColRef:
		return e, true
	case *CastExpr:
		if col, ok := e.Arg.(*ColRef); ok {
			return col, true
		}
	}
	return nil, false
}
