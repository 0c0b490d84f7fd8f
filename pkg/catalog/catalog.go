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
)

const (
	// CatalogTypeProp names the catalog type when no resource is given.
	CatalogTypeProp = "type"

	InternalCatalogName        = "internal"
	InternalCatalogId   uint64 = 0
)

type Catalog interface {
	GetId() uint64
	GetName() string
	GetType() CatalogType
	// GetResource is the resource the catalog was created from, it
	// never changes after creation.
	GetResource() string
	GetComment() string
	SetComment(comment string)
	// GetProperties returns a copy.
	GetProperties() map[string]string
	ModifyCatalogName(name string)
	// ModifyCatalogProps merges props into the current properties.
	ModifyCatalogProps(props map[string]string)
	OnRefresh(invalidCache bool)
	// CheckProperties validates the properties a new catalog is created
	// with. It is not called when a catalog is rebuilt from its log.
	CheckProperties(ctx context.Context) error
}

// ExternalCatalog holds the state shared by all catalog variants.
type ExternalCatalog struct {
	sync.RWMutex
	id       uint64
	name     string
	typ      CatalogType
	resource string
	comment  string
	props    map[string]string

	refreshGen       uint64
	lastInvalidCache bool
}

func newExternalCatalog(id uint64, name string, typ CatalogType, resource string, props map[string]string) *ExternalCatalog {
	cat := &ExternalCatalog{
		id:       id,
		name:     name,
		typ:      typ,
		resource: resource,
		props:    make(map[string]string, len(props)),
	}
	for k, v := range props {
		cat.props[k] = v
	}
	return cat
}

func (c *ExternalCatalog) GetId() uint64        { return c.id }
func (c *ExternalCatalog) GetType() CatalogType { return c.typ }
func (c *ExternalCatalog) GetResource() string  { return c.resource }

func (c *ExternalCatalog) GetName() string {
	c.RLock()
	defer c.RUnlock()
	return c.name
}

func (c *ExternalCatalog) GetComment() string {
	c.RLock()
	defer c.RUnlock()
	return c.comment
}

func (c *ExternalCatalog) SetComment(comment string) {
	c.Lock()
	defer c.Unlock()
	c.comment = comment
}

func (c *ExternalCatalog) GetProperties() map[string]string {
	c.RLock()
	defer c.RUnlock()
	props := make(map[string]string, len(c.props))
	for k, v := range c.props {
		props[k] = v
	}
	return props
}

// property reads a single property without copying the map.
func (c *ExternalCatalog) property(key string) (string, bool) {
	c.RLock()
	defer c.RUnlock()
	v, ok := c.props[key]
	return v, ok
}

func (c *ExternalCatalog) ModifyCatalogName(name string) {
	c.Lock()
	defer c.Unlock()
	c.name = name
}

func (c *ExternalCatalog) ModifyCatalogProps(props map[string]string) {
	c.Lock()
	defer c.Unlock()
	for k, v := range props {
		c.props[k] = v
	}
}

func (c *ExternalCatalog) OnRefresh(invalidCache bool) {
	c.Lock()
	defer c.Unlock()
	c.refreshGen++
	c.lastInvalidCache = invalidCache
}

// RefreshGeneration counts the refreshes applied to the catalog and
// reports whether the last one invalidated caches.
func (c *ExternalCatalog) RefreshGeneration() (uint64, bool) {
	c.RLock()
	defer c.RUnlock()
	return c.refreshGen, c.lastInvalidCache
}

func (c *ExternalCatalog) CheckProperties(ctx context.Context) error {
	return nil
}

// checkRequired fails on the first key of keys missing or empty in the
// catalog properties.
func (c *ExternalCatalog) checkRequired(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		if v, ok := c.property(key); !ok || v == "" {
			return newMissingProperty(ctx, key, c.typ)
		}
	}
	return nil
}
