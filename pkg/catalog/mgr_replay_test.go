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

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
)

func TestReplayLockedRejectsCreate(t *testing.T) {
	ctx := context.TODO()
	m := NewManager(NewFactory(NewMemResourceRegistry(), WithTestCatalog(true)), nil)
	m.addLocked(NewTestExternalCatalog(1, "t", "", nil))

	err := m.replayLocked(ctx, &CatalogLog{Kind: LogCreateCatalog, CatalogId: 1, CatalogName: "t"})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
	require.Contains(t, err.Error(), "unexpected kind create")
	require.NotContains(t, err.Error(), "already exists")
}
