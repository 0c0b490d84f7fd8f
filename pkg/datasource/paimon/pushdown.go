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
	"github.com/matrixorigin/extcatalog/pkg/datasource/paimon/predicate"
	"github.com/matrixorigin/extcatalog/pkg/logutil"
	"github.com/matrixorigin/extcatalog/pkg/sql/plan"
	"go.uber.org/zap"
)

// SplitConjuncts splits the scan filters into their conjuncts and translates
// each one. The translated conjuncts are combined into pushed, nil when none
// translate. The conjuncts that do not translate are returned as residual and
// must still be evaluated on the rows the reader returns.
func (t *Translator) SplitConjuncts(filters []plan.Expr, fieldIds map[string]int32) (pushed predicate.Predicate, residual []plan.Expr) {
	var preds []predicate.Predicate
	for _, filter := range filters {
		for _, conj := range plan.SplitConjunction(filter) {
			if p := t.Translate(conj, fieldIds); p != nil {
				preds = append(preds, p)
				continue
			}
			logutil.Debug("filter not pushed down", zap.String("filter", conj.String()))
			residual = append(residual, conj)
		}
	}
	if len(preds) > 0 {
		pushed = t.builder.And(preds...)
	}
	return pushed, residual
}
