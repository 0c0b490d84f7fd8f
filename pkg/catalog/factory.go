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
	"strings"

	"go.uber.org/zap"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/logutil"
	v2 "github.com/matrixorigin/extcatalog/pkg/util/metric/v2"
)

type FactoryOption func(*Factory)

// WithTestCatalog allows logs of type 'test' to be rebuilt.
func WithTestCatalog(enable bool) FactoryOption {
	return func(f *Factory) {
		f.enableTestCatalog = enable
	}
}

// Factory rebuilds catalogs from their CatalogLog.
type Factory struct {
	registry          ResourceRegistry
	enableTestCatalog bool
}

func NewFactory(registry ResourceRegistry, opts ...FactoryOption) *Factory {
	f := &Factory{registry: registry}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) ConstructFromLog(ctx context.Context, log *CatalogLog) (cat Catalog, err error) {
	defer func() {
		if err != nil {
			v2.CatalogConstructErrorCounter.Inc()
			logutil.Debug("construct catalog failed",
				zap.Uint64("id", log.CatalogId),
				zap.String("name", log.CatalogName),
				zap.Error(err))
			return
		}
		v2.CatalogConstructOKCounter.Inc()
		logutil.Debug("construct catalog",
			zap.Uint64("id", log.CatalogId),
			zap.String("name", log.CatalogName),
			zap.String("type", cat.GetType().String()))
	}()
	return f.constructCatalog(ctx, log.CatalogId, log.CatalogName, log.Resource, log.Comment, log.Props)
}

func (f *Factory) constructCatalog(ctx context.Context, id uint64, name, resource, comment string, props map[string]string) (Catalog, error) {
	typ, err := f.catalogType(ctx, resource, props)
	if err != nil {
		return nil, err
	}

	ct, ok := ParseCatalogType(typ)
	if !ok {
		return nil, moerr.NewUnknownCatalogType(ctx, typ)
	}
	var cat Catalog
	switch ct {
	case CatalogHMS:
		cat = NewHMSExternalCatalog(id, name, resource, props)
	case CatalogES:
		cat = NewEsExternalCatalog(id, name, resource, props)
	case CatalogJDBC:
		cat = NewJdbcExternalCatalog(id, name, resource, props)
	case CatalogIceberg:
		if cat, err = NewIcebergExternalCatalog(ctx, id, name, resource, props); err != nil {
			return nil, err
		}
	case CatalogPaimon:
		cat = NewPaimonExternalCatalog(id, name, resource, props)
	case CatalogTest:
		if !f.enableTestCatalog {
			return nil, moerr.NewTestCatalogForbidden(ctx)
		}
		cat = NewTestExternalCatalog(id, name, resource, props)
	}
	if comment != "" {
		cat.SetComment(comment)
	}
	return cat, nil
}

// catalogType takes the type from the resource when one is named,
// otherwise from the 'type' property.
func (f *Factory) catalogType(ctx context.Context, resource string, props map[string]string) (string, error) {
	if resource != "" {
		var res Resource
		ok := false
		if f.registry != nil {
			res, ok = f.registry.GetResource(resource)
		}
		if !ok {
			return "", moerr.NewResourceNotExists(ctx, resource)
		}
		if _, has := props[CatalogTypeProp]; has {
			return "", moerr.NewCatalogTypeConflict(ctx, resource)
		}
		return strings.ToLower(res.GetType().String()), nil
	}
	typ := props[CatalogTypeProp]
	if typ == "" {
		return "", moerr.NewMissingCatalogType(ctx)
	}
	return strings.ToLower(typ), nil
}
