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
	"fmt"
	"strings"
)

// Row is the value of a record keyed by field id. A missing or nil entry is null.
type Row map[int32]any

// Predicate is a filter over field ids, evaluated by the table reader to skip
// data.
type Predicate interface {
	Test(row Row) bool
	// Negate returns the negation of the predicate, false when it has none.
	Negate() (Predicate, bool)
	String() string
}

type Func uint8

const (
	Equal Func = iota
	NotEqual
	LessThan
	LessOrEqual
	GreaterThan
	GreaterOrEqual
	IsNull
	IsNotNull
	In
	NotIn
)

func (f Func) String() string {
	switch f {
	case Equal:
		return "Equal"
	case NotEqual:
		return "NotEqual"
	case LessThan:
		return "LessThan"
	case LessOrEqual:
		return "LessOrEqual"
	case GreaterThan:
		return "GreaterThan"
	case GreaterOrEqual:
		return "GreaterOrEqual"
	case IsNull:
		return "IsNull"
	case IsNotNull:
		return "IsNotNull"
	case In:
		return "In"
	case NotIn:
		return "NotIn"
	}
	return fmt.Sprintf("Func(%d)", uint8(f))
}

func (f Func) negate() Func {
	switch f {
	case Equal:
		return NotEqual
	case NotEqual:
		return Equal
	case LessThan:
		return GreaterOrEqual
	case LessOrEqual:
		return GreaterThan
	case GreaterThan:
		return LessOrEqual
	case GreaterOrEqual:
		return LessThan
	case IsNull:
		return IsNotNull
	case IsNotNull:
		return IsNull
	case In:
		return NotIn
	}
	return In
}

// LeafPredicate tests a single field against its literals.
type LeafPredicate struct {
	Func     Func
	FieldId  int32
	Literals []any
}

func (p *LeafPredicate) Test(row Row) bool {
	field := row[p.FieldId]
	switch p.Func {
	case IsNull:
		return field == nil
	case IsNotNull:
		return field != nil
	}
	if field == nil {
		return false
	}
	switch p.Func {
	case In:
		for _, lit := range p.Literals {
			if lit == nil {
				continue
			}
			if c, ok := compare(field, lit); ok && c == 0 {
				return true
			}
		}
		return false
	case NotIn:
		for _, lit := range p.Literals {
			if lit == nil {
				return false
			}
			if c, ok := compare(field, lit); !ok || c == 0 {
				return false
			}
		}
		return true
	}
	if len(p.Literals) != 1 || p.Literals[0] == nil {
		return false
	}
	c, ok := compare(field, p.Literals[0])
	if !ok {
		return false
	}
	switch p.Func {
	case Equal:
		return c == 0
	case NotEqual:
		return c != 0
	case LessThan:
		return c < 0
	case LessOrEqual:
		return c <= 0
	case GreaterThan:
		return c > 0
	case GreaterOrEqual:
		return c >= 0
	}
	return false
}

func (p *LeafPredicate) Negate() (Predicate, bool) {
	return &LeafPredicate{
		Func:     p.Func.negate(),
		FieldId:  p.FieldId,
		Literals: p.Literals,
	}, true
}

func (p *LeafPredicate) String() string {
	switch p.Func {
	case IsNull, IsNotNull:
		return fmt.Sprintf("%s(%d)", p.Func, p.FieldId)
	case In, NotIn:
		return fmt.Sprintf("%s(%d, %s)", p.Func, p.FieldId, formatLiterals(p.Literals))
	}
	if len(p.Literals) == 0 {
		return fmt.Sprintf("%s(%d)", p.Func, p.FieldId)
	}
	return fmt.Sprintf("%s(%d, %s)", p.Func, p.FieldId, formatLiteral(p.Literals[0]))
}

type CompoundFunc uint8

const (
	And CompoundFunc = iota
	Or
)

func (f CompoundFunc) String() string {
	if f == And {
		return "And"
	}
	return "Or"
}

type CompoundPredicate struct {
	Func     CompoundFunc
	Children []Predicate
}

func (p *CompoundPredicate) Test(row Row) bool {
	if p.Func == And {
		for _, c := range p.Children {
			if !c.Test(row) {
				return false
			}
		}
		return true
	}
	for _, c := range p.Children {
		if c.Test(row) {
			return true
		}
	}
	return false
}

func (p *CompoundPredicate) Negate() (Predicate, bool) {
	children := make([]Predicate, 0, len(p.Children))
	for _, c := range p.Children {
		n, ok := c.Negate()
		if !ok {
			return nil, false
		}
		children = append(children, n)
	}
	f := Or
	if p.Func == Or {
		f = And
	}
	return &CompoundPredicate{Func: f, Children: children}, true
}

func (p *CompoundPredicate) String() string {
	parts := make([]string, len(p.Children))
	for i, c := range p.Children {
		parts[i] = c.String()
	}
	return p.Func.String() + "([" + strings.Join(parts, ", ") + "])"
}

// FieldIds returns the field ids p references, in first seen order.
func FieldIds(p Predicate) []int32 {
	var ids []int32
	seen := make(map[int32]struct{})
	var walk func(Predicate)
	walk = func(p Predicate) {
		switch x := p.(type) {
		case *LeafPredicate:
			if _, ok := seen[x.FieldId]; !ok {
				seen[x.FieldId] = struct{}{}
				ids = append(ids, x.FieldId)
			}
		case *CompoundPredicate:
			for _, c := range x.Children {
				walk(c)
			}
		}
	}
	walk(p)
	return ids
}

func formatLiterals(lits []any) string {
	parts := make([]string, len(lits))
	for i, l := range lits {
		parts[i] = formatLiteral(l)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return "'" + x + "'"
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
