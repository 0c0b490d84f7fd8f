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
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
)

// InternalCatalog is the reserved catalog of the local tables. It is
// created by the manager and never logged.
type InternalCatalog struct {
	*ExternalCatalog
}

func newInternalCatalog() *InternalCatalog {
	return &InternalCatalog{
		ExternalCatalog: newExternalCatalog(InternalCatalogId, InternalCatalogName, CatalogInternal, "", nil),
	}
}

const HMSMetastoreUris = "hive.metastore.uris"

type HMSExternalCatalog struct {
	*ExternalCatalog
}

func NewHMSExternalCatalog(id uint64, name, resource string, props map[string]string) *HMSExternalCatalog {
	return &HMSExternalCatalog{
		ExternalCatalog: newExternalCatalog(id, name, CatalogHMS, resource, props),
	}
}

func (c *HMSExternalCatalog) CheckProperties(ctx context.Context) error {
	if c.resource != "" {
		return nil
	}
	return c.checkRequired(ctx, HMSMetastoreUris)
}

const (
	EsHosts          = "hosts"
	EsSsl            = "ssl"
	EsNodesDiscovery = "nodes_discovery"
	EsDocValueScan   = "doc_value_scan"
)

var esBoolProps = []string{EsSsl, EsNodesDiscovery, EsDocValueScan}

type EsExternalCatalog struct {
	*ExternalCatalog
}

func NewEsExternalCatalog(id uint64, name, resource string, props map[string]string) *EsExternalCatalog {
	return &EsExternalCatalog{
		ExternalCatalog: newExternalCatalog(id, name, CatalogES, resource, props),
	}
}

func (c *EsExternalCatalog) Ssl() bool {
	return c.boolProperty(EsSsl, false)
}

func (c *EsExternalCatalog) NodesDiscovery() bool {
	return c.boolProperty(EsNodesDiscovery, true)
}

func (c *EsExternalCatalog) DocValueScan() bool {
	return c.boolProperty(EsDocValueScan, true)
}

// boolProperty reads a boolean property, falling back to def when it is
// absent or does not parse. Stored values are never rewritten.
func (c *EsExternalCatalog) boolProperty(key string, def bool) bool {
	v, ok := c.property(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return b
}

func (c *EsExternalCatalog) CheckProperties(ctx context.Context) error {
	if c.resource == "" {
		if err := c.checkRequired(ctx, EsHosts); err != nil {
			return err
		}
	}
	for _, key := range esBoolProps {
		if v, ok := c.property(key); ok {
			if _, err := strconv.ParseBool(strings.TrimSpace(v)); err != nil {
				return moerr.NewInvalidInput(ctx, "property %s of es catalog must be a boolean, got %q", key, v)
			}
		}
	}
	return nil
}

const (
	JdbcUrl      = "jdbc_url"
	JdbcUser     = "user"
	JdbcPassword = "password"

	jdbcMysqlPrefix = "jdbc:mysql://"
)

type JdbcExternalCatalog struct {
	*ExternalCatalog
}

func NewJdbcExternalCatalog(id uint64, name, resource string, props map[string]string) *JdbcExternalCatalog {
	return &JdbcExternalCatalog{
		ExternalCatalog: newExternalCatalog(id, name, CatalogJDBC, resource, props),
	}
}

func (c *JdbcExternalCatalog) CheckProperties(ctx context.Context) error {
	if c.resource != "" {
		return nil
	}
	if err := c.checkRequired(ctx, JdbcUrl, JdbcUser); err != nil {
		return err
	}
	_, err := c.DSN(ctx)
	return err
}

// DSN renders a jdbc:mysql url as a go-sql-driver data source name.
// Urls of other drivers are returned unchanged.
func (c *JdbcExternalCatalog) DSN(ctx context.Context) (string, error) {
	raw, _ := c.property(JdbcUrl)
	if !strings.HasPrefix(raw, jdbcMysqlPrefix) {
		return raw, nil
	}
	u, err := url.Parse(strings.TrimPrefix(raw, "jdbc:"))
	if err != nil || u.Host == "" {
		return "", moerr.NewInvalidInput(ctx, "bad jdbc url %s", raw)
	}
	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	cfg.User, _ = c.property(JdbcUser)
	cfg.Passwd, _ = c.property(JdbcPassword)
	if q := u.Query(); len(q) > 0 {
		cfg.Params = make(map[string]string, len(q))
		for k := range q {
			cfg.Params[k] = q.Get(k)
		}
	}
	return cfg.FormatDSN(), nil
}

const IcebergCatalogType = "iceberg.catalog.type"

type IcebergCatalogKind string

const (
	IcebergHMS    IcebergCatalogKind = "hms"
	IcebergRest   IcebergCatalogKind = "rest"
	IcebergGlue   IcebergCatalogKind = "glue"
	IcebergDlf    IcebergCatalogKind = "dlf"
	IcebergHadoop IcebergCatalogKind = "hadoop"
)

type IcebergExternalCatalog struct {
	*ExternalCatalog
	kind IcebergCatalogKind
}

// NewIcebergExternalCatalog picks the sub-kind from iceberg.catalog.type
// and fails when it is missing or unknown.
func NewIcebergExternalCatalog(ctx context.Context, id uint64, name, resource string, props map[string]string) (*IcebergExternalCatalog, error) {
	v, ok := props[IcebergCatalogType]
	if !ok || v == "" {
		return nil, newMissingProperty(ctx, IcebergCatalogType, CatalogIceberg)
	}
	kind := IcebergCatalogKind(strings.ToLower(v))
	switch kind {
	case IcebergHMS, IcebergRest, IcebergGlue, IcebergDlf, IcebergHadoop:
	default:
		return nil, moerr.NewUnknownCatalogType(ctx, IcebergCatalogType+"="+v)
	}
	return &IcebergExternalCatalog{
		ExternalCatalog: newExternalCatalog(id, name, CatalogIceberg, resource, props),
		kind:            kind,
	}, nil
}

func (c *IcebergExternalCatalog) Kind() IcebergCatalogKind {
	return c.kind
}

const PaimonWarehouse = "warehouse"

type PaimonExternalCatalog struct {
	*ExternalCatalog
}

func NewPaimonExternalCatalog(id uint64, name, resource string, props map[string]string) *PaimonExternalCatalog {
	return &PaimonExternalCatalog{
		ExternalCatalog: newExternalCatalog(id, name, CatalogPaimon, resource, props),
	}
}

func (c *PaimonExternalCatalog) CheckProperties(ctx context.Context) error {
	if c.resource != "" {
		return nil
	}
	return c.checkRequired(ctx, PaimonWarehouse)
}

// TestExternalCatalog accepts any properties.
type TestExternalCatalog struct {
	*ExternalCatalog
}

func NewTestExternalCatalog(id uint64, name, resource string, props map[string]string) *TestExternalCatalog {
	return &TestExternalCatalog{
		ExternalCatalog: newExternalCatalog(id, name, CatalogTest, resource, props),
	}
}

func newMissingProperty(ctx context.Context, key string, typ CatalogType) error {
	return moerr.NewMissingCatalogProperty(ctx, key, strings.ToLower(typ.String()))
}
