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
package catalog

import (
	"context"
	"sync"

	"github.com/google/btree"
	"go.uber.org/zap"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/logutil"
	"github.com/matrixorigin/extcatalog/pkg/sql/parsers/tree"
	v2 "github.com/matrixorigin/extcatalog/pkg/util/metric/v2"
)

// LogWriter persists a CatalogLog before the manager applies it.
type LogWriter interface {
	Append(ctx context.Context, log *CatalogLog) error
}

type nameNode struct {
	name string
	cat  Catalog
}

func (n *nameNode) Less(item btree.Item) bool {
	return n.name < item.(*nameNode).name
}

// Manager owns the catalogs of a service. DDL goes through Exec, which
// writes a CatalogLog and applies it, Replay applies logs read back from
// the journal.
type Manager struct {
	sync.RWMutex
	factory *Factory
	writer  LogWriter
	nextId  uint64
	ids     map[uint64]Catalog
	names   *btree.BTree
}

// NewManager creates a manager holding only the internal catalog. A nil
// writer keeps the logs in memory only.
func NewManager(factory *Factory, writer LogWriter) *Manager {
	m := &Manager{
		factory: factory,
		writer:  writer,
		nextId:  InternalCatalogId + 1,
		ids:     make(map[uint64]Catalog),
		names:   btree.New(8),
	}
	m.addLocked(newInternalCatalog())
	return m
}

func (m *Manager) GetCatalog(name string) (Catalog, bool) {
	m.RLock()
	defer m.RUnlock()
	return m.getByNameLocked(name)
}

func (m *Manager) GetCatalogById(id uint64) (Catalog, bool) {
	m.RLock()
	defer m.RUnlock()
	cat, ok := m.ids[id]
	return cat, ok
}

// ListCatalogs returns all catalogs ordered by name.
func (m *Manager) ListCatalogs() []Catalog {
	m.RLock()
	defer m.RUnlock()
	cats := make([]Catalog, 0, m.names.Len())
	m.names.Ascend(func(item btree.Item) bool {
		cats = append(cats, item.(*nameNode).cat)
		return true
	})
	return cats
}

func (m *Manager) Exec(ctx context.Context, stmt tree.Statement) error {
	m.Lock()
	defer m.Unlock()
	switch st := stmt.(type) {
	case *tree.CreateCatalog:
		return m.createCatalogLocked(ctx, st)
	case *tree.DropCatalog:
		cat, err := m.lookupLocked(ctx, string(st.Name), st.IfExists)
		if cat == nil || err != nil {
			return err
		}
		return m.logAndApplyLocked(ctx, cat.GetId(), stmt)
	case *tree.AlterCatalogProperty:
		cat, err := m.lookupLocked(ctx, string(st.Name), false)
		if err != nil {
			return err
		}
		if _, ok := st.NewProperties[CatalogTypeProp]; ok {
			return moerr.NewInvalidInput(ctx, "can not modify property '%s' of catalog %s", CatalogTypeProp, st.Name)
		}
		return m.logAndApplyLocked(ctx, cat.GetId(), stmt)
	case *tree.AlterCatalogName:
		cat, err := m.lookupLocked(ctx, string(st.Name), false)
		if err != nil {
			return err
		}
		if _, ok := m.getByNameLocked(string(st.NewName)); ok {
			return moerr.NewCatalogAlreadyExists(ctx, string(st.NewName))
		}
		return m.logAndApplyLocked(ctx, cat.GetId(), stmt)
	case *tree.RefreshCatalog:
		cat, err := m.lookupLocked(ctx, string(st.Name), false)
		if err != nil {
			return err
		}
		return m.logAndApplyLocked(ctx, cat.GetId(), stmt)
	}
	return moerr.NewUnsupportedCatalogStmt(ctx, statementName(stmt))
}

func (m *Manager) createCatalogLocked(ctx context.Context, st *tree.CreateCatalog) error {
	name := string(st.Name)
	if name == InternalCatalogName {
		return moerr.NewInvalidInput(ctx, "catalog name %s is reserved", name)
	}
	if _, ok := m.getByNameLocked(name); ok {
		if st.IfNotExists {
			return nil
		}
		return moerr.NewCatalogAlreadyExists(ctx, name)
	}
	log, err := ConstructCatalogLog(ctx, m.nextId, st)
	if err != nil {
		return err
	}
	cat, err := m.factory.ConstructFromLog(ctx, log)
	if err != nil {
		return err
	}
	if err = cat.CheckProperties(ctx); err != nil {
		return err
	}
	if err = m.writeLocked(ctx, log); err != nil {
		return err
	}
	m.addLocked(cat)
	v2.CatalogCreateCounter.Inc()
	return nil
}

// lookupLocked finds a user catalog by name. A missing catalog is an
// error unless ifExists, then both results are nil.
func (m *Manager) lookupLocked(ctx context.Context, name string, ifExists bool) (Catalog, error) {
	if name == InternalCatalogName {
		return nil, moerr.NewInvalidInput(ctx, "catalog %s can not be altered", name)
	}
	cat, ok := m.getByNameLocked(name)
	if !ok {
		if ifExists {
			return nil, nil
		}
		return nil, moerr.NewNoSuchCatalog(ctx, name)
	}
	return cat, nil
}

func (m *Manager) logAndApplyLocked(ctx context.Context, id uint64, stmt tree.Statement) error {
	log, err := ConstructCatalogLog(ctx, id, stmt)
	if err != nil {
		return err
	}
	if err = m.writeLocked(ctx, log); err != nil {
		return err
	}
	return m.replayLocked(ctx, log)
}

func (m *Manager) writeLocked(ctx context.Context, log *CatalogLog) error {
	if m.writer == nil {
		return nil
	}
	return m.writer.Append(ctx, log)
}

// Replay applies a log read back from the journal without writing it.
func (m *Manager) Replay(ctx context.Context, log *CatalogLog) error {
	m.Lock()
	defer m.Unlock()
	if log.Kind == LogCreateCatalog {
		_, idTaken := m.ids[log.CatalogId]
		if _, nameTaken := m.getByNameLocked(log.CatalogName); idTaken || nameTaken {
			return moerr.NewCatalogAlreadyExists(ctx, log.CatalogName)
		}
		cat, err := m.factory.ConstructFromLog(ctx, log)
		if err != nil {
			return err
		}
		m.addLocked(cat)
		v2.CatalogCreateCounter.Inc()
		return nil
	}
	return m.replayLocked(ctx, log)
}

func (m *Manager) replayLocked(ctx context.Context, log *CatalogLog) error {
	if !log.Kind.Valid() {
		return moerr.NewInvalidInput(ctx, "catalog log %d without a valid kind", log.CatalogId)
	}
	cat, ok := m.ids[log.CatalogId]
	if !ok || log.CatalogId == InternalCatalogId {
		return moerr.NewNoSuchCatalog(ctx, log.String())
	}
	switch log.Kind {
	case LogDropCatalog:
		m.names.Delete(&nameNode{name: cat.GetName()})
		delete(m.ids, log.CatalogId)
		v2.CatalogDropCounter.Inc()
	case LogAlterCatalogProps:
		cat.ModifyCatalogProps(log.NewProps)
		if log.Comment != "" {
			cat.SetComment(log.Comment)
		}
		v2.CatalogAlterPropsCounter.Inc()
	case LogAlterCatalogName:
		m.names.Delete(&nameNode{name: cat.GetName()})
		cat.ModifyCatalogName(log.NewCatalogName)
		m.names.ReplaceOrInsert(&nameNode{name: log.NewCatalogName, cat: cat})
		v2.CatalogAlterNameCounter.Inc()
	case LogRefreshCatalog:
		cat.OnRefresh(log.InvalidCache)
		v2.CatalogRefreshCounter.Inc()
	default:
		return moerr.NewInvalidInput(ctx, "unexpected kind %s of catalog log %d", log.Kind, log.CatalogId)
	}
	logutil.Debug("apply catalog log",
		zap.String("kind", log.Kind.String()),
		zap.Uint64("id", log.CatalogId))
	return nil
}

func (m *Manager) getByNameLocked(name string) (Catalog, bool) {
	item := m.names.Get(&nameNode{name: name})
	if item == nil {
		return nil, false
	}
	return item.(*nameNode).cat, true
}

func (m *Manager) addLocked(cat Catalog) {
	m.ids[cat.GetId()] = cat
	m.names.ReplaceOrInsert(&nameNode{name: cat.GetName(), cat: cat})
	if cat.GetId() >= m.nextId {
		m.nextId = cat.GetId() + 1
	}
}
