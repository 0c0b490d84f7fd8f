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
	"os"

	"github.com/spf13/cobra"

	"github.com/matrixorigin/extcatalog/pkg/catalog"
	"github.com/matrixorigin/extcatalog/pkg/catalog/journal"
	"github.com/matrixorigin/extcatalog/pkg/config"
	"github.com/matrixorigin/extcatalog/pkg/logutil"
)

var loadParameters = config.LoadParameters

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	configFile string
	params     *config.Parameters
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "mo-catalog",
		Short: "Manage external catalogs and inspect filter pushdown",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.configFile, "cfg", "./mo-catalog.toml", "toml configuration of the catalog service")

	root.AddCommand(
		bootstrapCommand(a),
		replayCommand(a),
		dumpCommand(a),
		explainCommand(a),
	)
	return root
}

func (a *app) setup(ctx context.Context) error {
	params, err := loadParameters(a.configFile)
	if err != nil {
		return err
	}
	if err = params.Validate(ctx); err != nil {
		return err
	}
	logutil.SetupMOLogger(&params.Log)
	a.params = params
	return nil
}

func (a *app) openJournal(ctx context.Context) (*journal.Journal, error) {
	compression, err := a.params.JournalCompression()
	if err != nil {
		return nil, err
	}
	return journal.Open(ctx, a.params.Journal.Dir, journal.WithCompression(compression))
}

func (a *app) newRegistry(ctx context.Context) (*catalog.MemResourceRegistry, error) {
	registry := catalog.NewMemResourceRegistry()
	for _, r := range a.params.Resources {
		typ, ok := catalog.ParseResourceType(r.Type)
		if !ok {
			return nil, errUnknownResourceType(ctx, r)
		}
		if err := registry.Register(ctx, catalog.NewResource(r.Name, typ)); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// openManager rebuilds the catalogs from the journal. The manager writes
// new logs to the returned journal, which the caller closes.
func (a *app) openManager(ctx context.Context) (*catalog.Manager, *journal.Journal, error) {
	registry, err := a.newRegistry(ctx)
	if err != nil {
		return nil, nil, err
	}
	j, err := a.openJournal(ctx)
	if err != nil {
		return nil, nil, err
	}
	factory := catalog.NewFactory(registry, catalog.WithTestCatalog(a.params.EnableTestCatalog))
	mgr := catalog.NewManager(factory, j)
	if err = j.Replay(ctx, func(_ uint64, log *catalog.CatalogLog) error {
		return mgr.Replay(ctx, log)
	}); err != nil {
		_ = j.Close()
		return nil, nil, err
	}
	return mgr, j, nil
}
