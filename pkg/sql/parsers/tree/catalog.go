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
package tree

// CREATE CATALOG [IF NOT EXISTS] name [WITH RESOURCE r] [COMMENT 'c'] [PROPERTIES (...)]
type CreateCatalog struct {
	statementImpl
	IfNotExists bool
	Name        Identifier
	// Resource is the name of the resource the catalog is created from, may be empty.
	Resource   string
	Comment    string
	Properties map[string]string
}

func NewCreateCatalog(ifNotExists bool, name Identifier, resource, comment string, props map[string]string) *CreateCatalog {
	return &CreateCatalog{
		IfNotExists: ifNotExists,
		Name:        name,
		Resource:    resource,
		Comment:     comment,
		Properties:  props,
	}
}

func (node *CreateCatalog) Format(ctx *FmtCtx) {
	ctx.WriteKeyWord("create catalog ")
	if node.IfNotExists {
		ctx.WriteKeyWord("if not exists ")
	}
	node.Name.Format(ctx)
	if node.Resource != "" {
		ctx.WriteKeyWord(" with resource ")
		ctx.WriteName(node.Resource)
	}
	if node.Comment != "" {
		ctx.WriteKeyWord(" comment ")
		ctx.WriteStringValue(node.Comment)
	}
	if len(node.Properties) > 0 {
		ctx.WriteKeyWord(" properties ")
		ctx.WriteProperties(node.Properties)
	}
}

func (node *CreateCatalog) String() string           { return String(node) }
func (node *CreateCatalog) GetStatementType() string { return "Create Catalog" }
func (node *CreateCatalog) GetQueryType() string     { return QueryTypeDDL }

// DROP CATALOG [IF EXISTS] name
type DropCatalog struct {
	statementImpl
	IfExists bool
	Name     Identifier
}

func NewDropCatalog(ifExists bool, name Identifier) *DropCatalog {
	return &DropCatalog{IfExists: ifExists, Name: name}
}

func (node *DropCatalog) Format(ctx *FmtCtx) {
	ctx.WriteKeyWord("drop catalog ")
	if node.IfExists {
		ctx.WriteKeyWord("if exists ")
	}
	node.Name.Format(ctx)
}

func (node *DropCatalog) String() string           { return String(node) }
func (node *DropCatalog) GetStatementType() string { return "Drop Catalog" }
func (node *DropCatalog) GetQueryType() string     { return QueryTypeDDL }

// ALTER CATALOG name SET PROPERTIES (...) [COMMENT 'c']
type AlterCatalogProperty struct {
	statementImpl
	Name          Identifier
	NewProperties map[string]string
	Comment       string
}

func NewAlterCatalogProperty(name Identifier, props map[string]string, comment string) *AlterCatalogProperty {
	return &AlterCatalogProperty{Name: name, NewProperties: props, Comment: comment}
}

func (node *AlterCatalogProperty) Format(ctx *FmtCtx) {
	ctx.WriteKeyWord("alter catalog ")
	node.Name.Format(ctx)
	ctx.WriteKeyWord(" set properties ")
	ctx.WriteProperties(node.NewProperties)
	if node.Comment != "" {
		ctx.WriteKeyWord(" comment ")
		ctx.WriteStringValue(node.Comment)
	}
}

func (node *AlterCatalogProperty) String() string           { return String(node) }
func (node *AlterCatalogProperty) GetStatementType() string { return "Alter Catalog Property" }
func (node *AlterCatalogProperty) GetQueryType() string     { return QueryTypeDDL }

// ALTER CATALOG name RENAME new_name
type AlterCatalogName struct {
	statementImpl
	Name    Identifier
	NewName Identifier
}

func NewAlterCatalogName(name, newName Identifier) *AlterCatalogName {
	return &AlterCatalogName{Name: name, NewName: newName}
}

func (node *AlterCatalogName) Format(ctx *FmtCtx) {
	ctx.WriteKeyWord("alter catalog ")
	node.Name.Format(ctx)
	ctx.WriteKeyWord(" rename ")
	node.NewName.Format(ctx)
}

func (node *AlterCatalogName) String() string           { return String(node) }
func (node *AlterCatalogName) GetStatementType() string { return "Alter Catalog Name" }
func (node *AlterCatalogName) GetQueryType() string     { return QueryTypeDDL }

const InvalidCacheProperty = "invalid_cache"

// REFRESH CATALOG name [PROPERTIES ('invalid_cache' = 'true|false')]
type RefreshCatalog struct {
	statementImpl
	Name         Identifier
	InvalidCache bool
}

func NewRefreshCatalog(name Identifier, invalidCache bool) *RefreshCatalog {
	return &RefreshCatalog{Name: name, InvalidCache: invalidCache}
}

func (node *RefreshCatalog) Format(ctx *FmtCtx) {
	ctx.WriteKeyWord("refresh catalog ")
	node.Name.Format(ctx)
	ctx.WriteKeyWord(" properties ")
	v := "false"
	if node.InvalidCache {
		v = "true"
	}
	ctx.WriteProperties(map[string]string{InvalidCacheProperty: v})
}

func (node *RefreshCatalog) String() string           { return String(node) }
func (node *RefreshCatalog) GetStatementType() string { return "Refresh Catalog" }
func (node *RefreshCatalog) GetQueryType() string     { return QueryTypeDDL }

// SHOW CATALOGS
type ShowCatalogs struct {
	statementImpl
}

func (node *ShowCatalogs) Format(ctx *FmtCtx) {
	ctx.WriteKeyWord("show catalogs")
}

func (node *ShowCatalogs) String() string           { return String(node) }
func (node *ShowCatalogs) GetStatementType() string { return "Show Catalogs" }
func (node *ShowCatalogs) GetQueryType() string     { return QueryTypeDQL }
