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

import "strings"

// CatalogType is the closed set of catalog implementations a log can
// be rebuilt into.
type CatalogType uint8

const (
	CatalogInternal CatalogType = iota
	CatalogHMS
	CatalogES
	CatalogJDBC
	CatalogIceberg
	CatalogPaimon
	CatalogTest
)

var catalogTypeNames = map[CatalogType]string{
	CatalogInternal: "INTERNAL",
	CatalogHMS:      "HMS",
	CatalogES:       "ES",
	CatalogJDBC:     "JDBC",
	CatalogIceberg:  "ICEBERG",
	CatalogPaimon:   "PAIMON",
	CatalogTest:     "TEST",
}

func (t CatalogType) String() string {
	if name, ok := catalogTypeNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseCatalogType maps the lower-cased type property to a type. The
// internal catalog can not be created, so "internal" is rejected.
func ParseCatalogType(s string) (CatalogType, bool) {
	switch s {
	case "hms":
		return CatalogHMS, true
	case "es":
		return CatalogES, true
	case "jdbc":
		return CatalogJDBC, true
	case "iceberg":
		return CatalogIceberg, true
	case "paimon":
		return CatalogPaimon, true
	case "test":
		return CatalogTest, true
	}
	return CatalogInternal, false
}

// ResourceType is the kind of a shared resource a catalog may be
// created from.
type ResourceType uint8

const (
	ResourceHMS ResourceType = iota + 1
	ResourceES
	ResourceJDBC
	ResourceIceberg
	ResourcePaimon
	ResourceS3
	ResourceHDFS
	ResourceSpark
)

var resourceTypeNames = []string{"", "HMS", "ES", "JDBC", "ICEBERG", "PAIMON", "S3", "HDFS", "SPARK"}

func (t ResourceType) String() string {
	if int(t) > 0 && int(t) < len(resourceTypeNames) {
		return resourceTypeNames[t]
	}
	return "UNKNOWN"
}

// ParseResourceType is case insensitive.
func ParseResourceType(s string) (ResourceType, bool) {
	s = strings.ToUpper(s)
	for i := 1; i < len(resourceTypeNames); i++ {
		if resourceTypeNames[i] == s {
			return ResourceType(i), true
		}
	}
	return 0, false
}
