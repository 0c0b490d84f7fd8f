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
	"sort"
	"sync"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
)

type Resource interface {
	GetName() string
	GetType() ResourceType
}

// ResourceRegistry resolves the resource named by a CREATE CATALOG ...
// WITH RESOURCE statement.
type ResourceRegistry interface {
	GetResource(name string) (Resource, bool)
}

type resource struct {
	name string
	typ  ResourceType
}

func NewResource(name string, typ ResourceType) Resource {
	return &resource{name: name, typ: typ}
}

func (r *resource) GetName() string       { return r.name }
func (r *resource) GetType() ResourceType { return r.typ }

type MemResourceRegistry struct {
	sync.RWMutex
	resources map[string]Resource
}

func NewMemResourceRegistry() *MemResourceRegistry {
	return &MemResourceRegistry{
		resources: make(map[string]Resource),
	}
}

func (r *MemResourceRegistry) GetResource(name string) (Resource, bool) {
	r.RLock()
	defer r.RUnlock()
	res, ok := r.resources[name]
	return res, ok
}

func (r *MemResourceRegistry) Register(ctx context.Context, res Resource) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.resources[res.GetName()]; ok {
		return moerr.NewInvalidInput(ctx, "resource %s already exists", res.GetName())
	}
	r.resources[res.GetName()] = res
	return nil
}

func (r *MemResourceRegistry) Unregister(name string) {
	r.Lock()
	defer r.Unlock()
	delete(r.resources, name)
}

// Names returns the registered resource names in order.
func (r *MemResourceRegistry) Names() []string {
	r.RLock()
	defer r.RUnlock()
	names := make([]string, 0, len(r.resources))
	for name := range r.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
