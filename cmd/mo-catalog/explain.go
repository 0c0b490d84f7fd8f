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
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/container/types"
	"github.com/matrixorigin/extcatalog/pkg/datasource/iceberg"
	"github.com/matrixorigin/extcatalog/pkg/datasource/paimon"
	"github.com/matrixorigin/extcatalog/pkg/datasource/paimon/predicate"
	"github.com/matrixorigin/extcatalog/pkg/sql/plan"
)

func explainCommand(a *app) *cobra.Command {
	var schemaFile, format string
	cmd := &cobra.Command{
		Use:   "explain <filter>",
		Short: "Show which part of a filter is pushed down to the table reader",
		Long: `Bind a filter against the columns of a table schema file and translate
it into field id predicates. Conjuncts that can not be translated are
printed as residual filters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			data, err := os.ReadFile(schemaFile)
			if err != nil {
				return moerr.ConvertGoError(ctx, err)
			}
			ids, cols, err := loadSchema(ctx, format, data)
			if err != nil {
				return err
			}
			filter, err := plan.BuildFilter(ctx, args[0], cols)
			if err != nil {
				return err
			}
			loc, err := a.params.Location()
			if err != nil {
				return err
			}
			tr := paimon.NewTranslator(predicate.NewBuilder(), paimon.WithLocation(loc))
			pushed, residual := tr.SplitConjuncts([]plan.Expr{filter}, ids)

			out := cmd.OutOrStdout()
			if pushed == nil {
				_, _ = fmt.Fprintln(out, "pushed: <none>")
			} else {
				_, _ = fmt.Fprintf(out, "pushed: %s\n", pushed)
			}
			for _, e := range residual {
				_, _ = fmt.Fprintf(out, "residual: %s\n", e)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaFile, "schema", "", "table schema file")
	cmd.Flags().StringVar(&format, "format", "paimon", "schema file format: paimon or iceberg")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// loadSchema returns the field ids and column types of a schema file,
// keyed by lower case column name.
func loadSchema(ctx context.Context, format string, data []byte) (map[string]int32, map[string]types.Type, error) {
	var ids map[string]int32
	var cols map[string]types.Type
	switch strings.ToLower(format) {
	case "paimon":
		s, err := paimon.ParseTableSchema(ctx, data)
		if err != nil {
			return nil, nil, err
		}
		if ids, err = s.FieldIds(ctx); err != nil {
			return nil, nil, err
		}
		cols = s.ColumnTypes()
	case "iceberg":
		s, err := iceberg.LoadSchema(ctx, data)
		if err != nil {
			return nil, nil, err
		}
		ids = iceberg.FieldIds(s)
		cols = iceberg.ColumnTypes(s)
	default:
		return nil, nil, moerr.NewInvalidInput(ctx, "unknown schema format %s", format)
	}
	lowered := make(map[string]int32, len(ids))
	for name, id := range ids {
		lowered[strings.ToLower(name)] = id
	}
	return lowered, cols, nil
}
