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
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/sql/parsers/tree"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LogKind tells which statement a CatalogLog was built from. The zero
// value is invalid.
type LogKind uint8

const (
	LogCreateCatalog LogKind = iota + 1
	LogDropCatalog
	LogAlterCatalogProps
	LogAlterCatalogName
	LogRefreshCatalog
)

func (k LogKind) String() string {
	switch k {
	case LogCreateCatalog:
		return "create"
	case LogDropCatalog:
		return "drop"
	case LogAlterCatalogProps:
		return "alter-props"
	case LogAlterCatalogName:
		return "alter-name"
	case LogRefreshCatalog:
		return "refresh"
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

func (k LogKind) Valid() bool {
	return k >= LogCreateCatalog && k <= LogRefreshCatalog
}

// CatalogLog is the persisted form of a catalog DDL. Only the fields
// relevant to its Kind are set.
type CatalogLog struct {
	Kind           LogKind           `json:"kind"`
	CatalogId      uint64            `json:"catalogId"`
	CatalogName    string            `json:"catalogName,omitempty"`
	NewCatalogName string            `json:"newCatalogName,omitempty"`
	Resource       string            `json:"resource,omitempty"`
	Comment        string            `json:"comment,omitempty"`
	Props          map[string]string `json:"props,omitempty"`
	NewProps       map[string]string `json:"newProps,omitempty"`
	InvalidCache   bool              `json:"invalidCache,omitempty"`
}

// catalogLog drops the methods of CatalogLog so the codec does not
// recurse into them.
type catalogLog CatalogLog

func (l *CatalogLog) MarshalBinary() ([]byte, error) {
	return json.Marshal((*catalogLog)(l))
}

func (l *CatalogLog) UnmarshalBinary(data []byte) error {
	var v catalogLog
	if err := json.Unmarshal(data, &v); err != nil {
		return moerr.NewInvalidInput(moerr.Context(), "bad catalog log: %v", err)
	}
	if v.Props == nil {
		v.Props = map[string]string{}
	}
	*l = CatalogLog(v)
	return nil
}

func (l *CatalogLog) String() string {
	return fmt.Sprintf("%s catalog %d", l.Kind, l.CatalogId)
}

// ConstructCatalogLog records stmt as a log for catalogId. It does no
// semantic validation.
func ConstructCatalogLog(ctx context.Context, catalogId uint64, stmt tree.Statement) (*CatalogLog, error) {
	log := &CatalogLog{
		CatalogId: catalogId,
		Props:     map[string]string{},
	}
	switch st := stmt.(type) {
	case *tree.CreateCatalog:
		log.Kind = LogCreateCatalog
		log.CatalogName = string(st.Name)
		log.Resource = st.Resource
		log.Comment = st.Comment
		for k, v := range st.Properties {
			log.Props[k] = v
		}
	case *tree.DropCatalog:
		log.Kind = LogDropCatalog
	case *tree.AlterCatalogProperty:
		log.Kind = LogAlterCatalogProps
		log.NewProps = make(map[string]string, len(st.NewProperties))
		for k, v := range st.NewProperties {
			log.NewProps[k] = v
		}
		if st.Comment != "" {
			log.Comment = st.Comment
		}
	case *tree.AlterCatalogName:
		log.Kind = LogAlterCatalogName
		log.NewCatalogName = string(st.NewName)
	case *tree.RefreshCatalog:
		log.Kind = LogRefreshCatalog
		log.InvalidCache = st.InvalidCache
	default:
		return nil, moerr.NewUnsupportedCatalogStmt(ctx, statementName(stmt))
	}
	return log, nil
}

func statementName(stmt tree.Statement) string {
	if stmt == nil {
		return "<nil>"
	}
	return stmt.GetStatementType()
}
