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
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/sql/parsers/tree"
)

func TestConstructCatalogLog(t *testing.T) {
	ctx := context.TODO()

	log, err := ConstructCatalogLog(ctx, 7, tree.NewCreateCatalog(false, "hms_a", "", "", map[string]string{"type": "hms"}))
	require.NoError(t, err)
	require.Equal(t, &CatalogLog{
		Kind:        LogCreateCatalog,
		CatalogId:   7,
		CatalogName: "hms_a",
		Props:       map[string]string{"type": "hms"},
	}, log)

	log, err = ConstructCatalogLog(ctx, 7, tree.NewCreateCatalog(false, "c", "r1", "cmt", nil))
	require.NoError(t, err)
	require.NotNil(t, log.Props)
	require.Empty(t, log.Props)
	require.Equal(t, "r1", log.Resource)
	require.Equal(t, "cmt", log.Comment)

	log, err = ConstructCatalogLog(ctx, 8, tree.NewDropCatalog(true, "c"))
	require.NoError(t, err)
	require.Equal(t, &CatalogLog{Kind: LogDropCatalog, CatalogId: 8, Props: map[string]string{}}, log)

	log, err = ConstructCatalogLog(ctx, 9, tree.NewAlterCatalogProperty("c", map[string]string{"k": "v"}, ""))
	require.NoError(t, err)
	require.Equal(t, LogAlterCatalogProps, log.Kind)
	require.Equal(t, map[string]string{"k": "v"}, log.NewProps)
	require.Empty(t, log.Comment)

	log, err = ConstructCatalogLog(ctx, 9, tree.NewAlterCatalogProperty("c", map[string]string{}, "new comment"))
	require.NoError(t, err)
	require.Equal(t, "new comment", log.Comment)

	log, err = ConstructCatalogLog(ctx, 10, tree.NewAlterCatalogName("c", "d"))
	require.NoError(t, err)
	require.Equal(t, LogAlterCatalogName, log.Kind)
	require.Equal(t, "d", log.NewCatalogName)
	require.Empty(t, log.CatalogName)

	log, err = ConstructCatalogLog(ctx, 11, tree.NewRefreshCatalog("c", true))
	require.NoError(t, err)
	require.Equal(t, LogRefreshCatalog, log.Kind)
	require.True(t, log.InvalidCache)

	_, err = ConstructCatalogLog(ctx, 12, &tree.ShowCatalogs{})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrUnsupportedCatalogStmt))
	require.Contains(t, err.Error(), "Show Catalogs")
}

func TestCatalogLogCodec(t *testing.T) {
	log := &CatalogLog{
		Kind:         LogRefreshCatalog,
		CatalogId:    3,
		Props:        map[string]string{},
		InvalidCache: true,
	}
	data, err := log.MarshalBinary()
	require.NoError(t, err)
	require.JSONEq(t, `{"kind":5,"catalogId":3,"invalidCache":true}`, string(data))

	var got CatalogLog
	require.NoError(t, got.UnmarshalBinary(data))
	require.Equal(t, *log, got)

	require.NoError(t, got.UnmarshalBinary([]byte(`{"kind":2,"catalogId":4}`)))
	require.NotNil(t, got.Props)
	require.Equal(t, LogDropCatalog, got.Kind)

	require.Error(t, got.UnmarshalBinary([]byte("{")))
}

func TestLogKind(t *testing.T) {
	require.False(t, LogKind(0).Valid())
	require.True(t, LogCreateCatalog.Valid())
	require.True(t, LogRefreshCatalog.Valid())
	require.False(t, LogKind(6).Valid())
	require.Equal(t, "alter-props", LogAlterCatalogProps.String())
	require.Equal(t, "unknown(9)", LogKind(9).String())
}

type roundTripVariant struct {
	typ   CatalogType
	props map[string]string
}

var roundTripVariants = []roundTripVariant{
	{CatalogHMS, map[string]string{CatalogTypeProp: "hms", HMSMetastoreUris: "thrift://127.0.0.1:9083"}},
	{CatalogES, map[string]string{CatalogTypeProp: "es", EsHosts: "http://es:9200"}},
	{CatalogJDBC, map[string]string{CatalogTypeProp: "jdbc", JdbcUrl: "jdbc:mysql://127.0.0.1:3306/db", JdbcUser: "root"}},
	{CatalogIceberg, map[string]string{CatalogTypeProp: "iceberg", IcebergCatalogType: "REST"}},
	{CatalogPaimon, map[string]string{CatalogTypeProp: "paimon", PaimonWarehouse: "s3://bucket/wh"}},
	{CatalogTest, map[string]string{CatalogTypeProp: "test"}},
}

func TestEsLogKeepsProps(t *testing.T) {
	ctx := context.TODO()
	factory := NewFactory(NewMemResourceRegistry())

	props := map[string]string{CatalogTypeProp: "es", EsHosts: "h", EsSsl: "1", EsDocValueScan: " off"}
	log, err := ConstructCatalogLog(ctx, 5, tree.NewCreateCatalog(false, "e", "", "", props))
	require.NoError(t, err)
	cat, err := factory.ConstructFromLog(ctx, log)
	require.NoError(t, err)
	require.Equal(t, props, cat.GetProperties())
	es := cat.(*EsExternalCatalog)
	require.True(t, es.Ssl())
	require.True(t, es.NodesDiscovery())
	require.True(t, es.DocValueScan())
}

func TestCreateLogRoundTrip(t *testing.T) {
	ctx := context.TODO()
	factory := NewFactory(NewMemResourceRegistry(), WithTestCatalog(true))

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("fromLog(constructLog(id, create)) keeps the statement fields", prop.ForAll(
		func(id uint64, name string, comment string, extra map[string]string, variant int, flag string) bool {
			v := roundTripVariants[variant]
			props := make(map[string]string, len(extra)+len(v.props)+1)
			for k, val := range extra {
				props[k] = val
			}
			for k, val := range v.props {
				props[k] = val
			}
			if v.typ == CatalogES {
				props[EsSsl] = flag
				props[EsNodesDiscovery] = flag
			}
			stmt := tree.NewCreateCatalog(false, tree.Identifier(name), "", comment, props)
			log, err := ConstructCatalogLog(ctx, id, stmt)
			if err != nil {
				return false
			}
			data, err := log.MarshalBinary()
			if err != nil {
				return false
			}
			var decoded CatalogLog
			if err = decoded.UnmarshalBinary(data); err != nil {
				return false
			}
			cat, err := factory.ConstructFromLog(ctx, &decoded)
			if err != nil {
				return false
			}
			got := cat.GetProperties()
			if len(got) != len(props) {
				return false
			}
			for k, val := range props {
				if got[k] != val {
					return false
				}
			}
			return cat.GetId() == id &&
				cat.GetName() == name &&
				cat.GetComment() == comment &&
				cat.GetResource() == "" &&
				cat.GetType() == v.typ
		},
		gen.UInt64(),
		gen.Identifier(),
		gen.AlphaString(),
		gen.MapOf(gen.Identifier(), gen.AlphaString()),
		gen.IntRange(0, len(roundTripVariants)-1),
		gen.OneConstOf("1", "0", "t", "F", "TRUE", " false ", "yes"),
	))

	properties.TestingRun(t)
}
