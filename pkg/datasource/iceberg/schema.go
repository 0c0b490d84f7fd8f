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
package iceberg

import (
	"context"
	"fmt"
	"strings"

	"github.com/apache/iceberg-go"
	jsoniter "github.com/json-iterator/go"
	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/container/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadSchema decodes a schema in the table metadata json form.
func LoadSchema(ctx context.Context, data []byte) (*iceberg.Schema, error) {
	var schema iceberg.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, moerr.NewInvalidInput(ctx, "bad iceberg schema: %v", err)
	}
	return &schema, nil
}

// FieldIds maps the name of every primitive column to its field id. Columns
// nested in structs are named by their dotted path, list and map elements
// are skipped.
func FieldIds(schema *iceberg.Schema) map[string]int32 {
	ids := make(map[string]int32)
	walkFields(schema.Fields(), "", func(name string, f iceberg.NestedField) {
		ids[name] = int32(f.ID)
	})
	return ids
}

// ColumnTypes maps the name of every primitive column to the type filters
// on it are bound with.
func ColumnTypes(schema *iceberg.Schema) map[string]types.Type {
	cols := make(map[string]types.Type)
	walkFields(schema.Fields(), "", func(name string, f iceberg.NestedField) {
		cols[name] = toType(f.Type)
	})
	return cols
}

func walkFields(fields []iceberg.NestedField, prefix string, fn func(string, iceberg.NestedField)) {
	for _, f := range fields {
		name := prefix + f.Name
		switch t := f.Type.(type) {
		case *iceberg.StructType:
			walkFields(t.FieldList, name+".", fn)
		case *iceberg.ListType, *iceberg.MapType:
		default:
			fn(name, f)
		}
	}
}

func toType(t iceberg.Type) types.Type {
	name := t.String()
	switch name {
	case "boolean":
		return types.New(types.T_bool, 0, 0)
	case "int", "long":
		return types.New(types.T_int64, 0, 0)
	case "float", "double":
		return types.New(types.T_float64, 0, 0)
	case "string", "uuid":
		return types.New(types.T_varchar, 0, 0)
	case "date", "timestamp", "timestamptz":
		return types.New(types.T_datetime, 0, 0)
	}
	if strings.HasPrefix(name, "decimal") {
		var precision, scale int32
		if _, err := fmt.Sscanf(name, "decimal(%d, %d)", &precision, &scale); err == nil {
			return types.New(types.T_decimal128, precision, scale)
		}
	}
	return types.New(types.T_any, 0, 0)
}
