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

import "strings"

// NodeFormatter is implemented by every node that can be written back as sql.
type NodeFormatter interface {
	Format(ctx *FmtCtx)
}

// FmtCtx is the buffer a node is formatted into.
type FmtCtx struct {
	*strings.Builder
	Flags RestoreFlags
}

func NewFmtCtx(flags RestoreFlags) *FmtCtx {
	return &FmtCtx{
		Builder: new(strings.Builder),
		Flags:   flags,
	}
}

// String formats the node with the default flags.
func String(node NodeFormatter) string {
	if node == nil {
		return "<nil>"
	}
	ctx := NewFmtCtx(DefaultRestoreFlags)
	node.Format(ctx)
	return ctx.String()
}
