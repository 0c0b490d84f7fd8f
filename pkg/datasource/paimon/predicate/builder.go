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

// Builder creates predicates over field ids.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) leaf(f Func, fieldId int32, literals ...any) Predicate {
	return &LeafPredicate{Func: f, FieldId: fieldId, Literals: literals}
}

func (b *Builder) Equal(fieldId int32, literal any) Predicate {
	return b.leaf(Equal, fieldId, literal)
}

func (b *Builder) NotEqual(fieldId int32, literal any) Predicate {
	return b.leaf(NotEqual, fieldId, literal)
}

func (b *Builder) LessThan(fieldId int32, literal any) Predicate {
	return b.leaf(LessThan, fieldId, literal)
}

func (b *Builder) LessOrEqual(fieldId int32, literal any) Predicate {
	return b.leaf(LessOrEqual, fieldId, literal)
}

func (b *Builder) GreaterThan(fieldId int32, literal any) Predicate {
	return b.leaf(GreaterThan, fieldId, literal)
}

func (b *Builder) GreaterOrEqual(fieldId int32, literal any) Predicate {
	return b.leaf(GreaterOrEqual, fieldId, literal)
}

func (b *Builder) IsNull(fieldId int32) Predicate {
	return b.leaf(IsNull, fieldId)
}

func (b *Builder) IsNotNull(fieldId int32) Predicate {
	return b.leaf(IsNotNull, fieldId)
}

func (b *Builder) In(fieldId int32, literals []any) Predicate {
	return b.leaf(In, fieldId, literals...)
}

func (b *Builder) NotIn(fieldId int32, literals []any) Predicate {
	return b.leaf(NotIn, fieldId, literals...)
}

// And flattens nested conjunctions. A single predicate is returned as is.
func (b *Builder) And(preds ...Predicate) Predicate {
	return b.compound(And, preds)
}

// Or flattens nested disjunctions. A single predicate is returned as is.
func (b *Builder) Or(preds ...Predicate) Predicate {
	return b.compound(Or, preds)
}

func (b *Builder) compound(f CompoundFunc, preds []Predicate) Predicate {
	children := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if c, ok := p.(*CompoundPredicate); ok && c.Func == f {
			children = append(children, c.Children...)
			continue
		}
		children = append(children, p)
	}
	if len(children) == 1 {
		return children[0]
	}
	return &CompoundPredicate{Func: f, Children: children}
}
