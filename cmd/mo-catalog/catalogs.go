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
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/extcatalog/pkg/catalog"
	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/config"
	"github.com/matrixorigin/extcatalog/pkg/logutil"
	"github.com/matrixorigin/extcatalog/pkg/sql/parsers/tree"
)

func bootstrapCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the catalogs of the configuration that do not exist yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			mgr, j, err := a.openManager(ctx)
			if err != nil {
				return err
			}
			defer j.Close()
			for _, c := range a.params.Catalogs {
				stmt := tree.NewCreateCatalog(true, tree.Identifier(c.Name), c.Resource, c.Comment, c.Properties)
				if err = mgr.Exec(ctx, stmt); err != nil {
					return err
				}
				logutil.Info("catalog bootstrapped", zap.String("name", c.Name))
			}
			return printCatalogs(cmd.OutOrStdout(), mgr.ListCatalogs())
		},
	}
}

func replayCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay",
		Short: "Rebuild the catalogs from the journal and list them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, j, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer j.Close()
			return printCatalogs(cmd.OutOrStdout(), mgr.ListCatalogs())
		},
	}
}

func dumpCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every record of the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			j, err := a.openJournal(ctx)
			if err != nil {
				return err
			}
			defer j.Close()
			out := cmd.OutOrStdout()
			return j.Replay(ctx, func(seq uint64, log *catalog.CatalogLog) error {
				data, err := log.MarshalBinary()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "%d\t%s\n", seq, data)
				return err
			})
		},
	}
}

func printCatalogs(out io.Writer, cats []catalog.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tTYPE\tRESOURCE\tCOMMENT")
	for _, cat := range cats {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			cat.GetId(), cat.GetName(), cat.GetType(), cat.GetResource(), cat.GetComment())
	}
	return w.Flush()
}

func errUnknownResourceType(ctx context.Context, r config.ResourceParameters) error {
	return moerr.NewBadConfig(ctx, "resource %s has unknown type %s", r.Name, r.Type)
}
