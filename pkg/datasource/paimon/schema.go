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
package paimon

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/container/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DataField is a column of a table schema file.
type DataField struct {
	Id          int32  `json:"id"`
	Name        string `json:"name"`
	Type        any    `json:"type"`
	Description string `json:"description,omitempty"`
}

// TableSchema is the part of a table schema file the reader needs.
type TableSchema struct {
	Id            int64       `json:"id"`
	Fields        []DataField `json:"fields"`
	HighestId     int32       `json:"highestFieldId"`
	PartitionKeys []string    `json:"partitionKeys"`
	PrimaryKeys   []string    `json:"primaryKeys"`
}

func ParseTableSchema(ctx context.Context, data []byte) (*TableSchema, error) {
	var s TableSchema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, moerr.NewInvalidInput(ctx, "bad table schema: %v", err)
	}
	return &s, nil
}

// FieldIds maps every column name of the schema to its field id.
func (s *TableSchema) FieldIds(ctx context.Context) (map[string]int32, error) {
	ids := make(map[string]int32, len(s.Fields))
	for _, f := range s.Fields {
		if _, ok := ids[f.Name]; ok {
			return nil, moerr.NewInvalidInput(ctx, "duplicate field %s in table schema", f.Name)
		}
		ids[f.Name] = f.Id
	}
	return ids, nil
}

// LoadFieldIds reads the field id map from the content of a table schema file.
func LoadFieldIds(ctx context.Context, data []byte) (map[string]int32, error) {
	s, err := ParseTableSchema(ctx, data)
	if err != nil {
		return nil, err
	}
	return s.FieldIds(ctx)
}

// ColumnTypes maps the columns of atomic type to the type filters on them
// are bound with. Row, array and map columns are left out.
func (s *TableSchema) ColumnTypes() map[string]types.Type {
	cols := make(map[string]types.Type, len(s.Fields))
	for _, f := range s.Fields {
		name, ok := f.Type.(string)
		if !ok {
			continue
		}
		cols[f.Name] = dataType(name)
	}
	return cols
}

// dataType reads a type string like "DECIMAL(10, 2) NOT NULL".
func dataType(s string) types.Type {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "NOT NULL"))
	base := s
	if i := strings.IndexByte(s, '('); i >= 0 {
		base = strings.TrimSpace(s[:i])
	}
	switch base {
	case "BOOLEAN":
		return types.New(types.T_bool, 0, 0)
	case "TINYINT", "SMALLINT", "INT", "INTEGER", "BIGINT":
		return types.New(types.T_int64, 0, 0)
	case "FLOAT", "DOUBLE":
		return types.New(types.T_float64, 0, 0)
	case "CHAR", "VARCHAR", "STRING":
		return types.New(types.T_varchar, 0, 0)
	case "DATE", "TIMESTAMP", "TIMESTAMP_LTZ", "TIMESTAMP WITH LOCAL TIME ZONE":
		return types.New(types.T_datetime, 0, 0)
	case "DECIMAL":
		var precision, scale int32
		if _, err := fmt.Sscanf(s[len(base):], "(%d, %d)", &precision, &scale); err != nil {
			return types.New(types.T_decimal128, 10, 0)
		}
		return types.New(types.T_decimal128, precision, scale)
	}
	return types.New(types.T_any, 0, 0)
}
