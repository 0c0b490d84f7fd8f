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
package journal

import (
	"context"
	"testing"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/lni/goutils/leaktest"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/extcatalog/pkg/catalog"
	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/compress"
	"github.com/matrixorigin/extcatalog/pkg/sql/parsers/tree"
)

const testDir = "/catalog-journal"

func testLogs() []*catalog.CatalogLog {
	return []*catalog.CatalogLog{
		{Kind: catalog.LogCreateCatalog, CatalogId: 1, CatalogName: "a", Comment: "c", Props: map[string]string{"type": "test"}},
		{Kind: catalog.LogAlterCatalogProps, CatalogId: 1, Props: map[string]string{}, NewProps: map[string]string{"k": "v"}},
		{Kind: catalog.LogRefreshCatalog, CatalogId: 1, Props: map[string]string{}, InvalidCache: true},
		{Kind: catalog.LogDropCatalog, CatalogId: 1, Props: map[string]string{}},
	}
}

func readAll(t *testing.T, j *Journal) ([]uint64, []*catalog.CatalogLog) {
	var seqs []uint64
	var logs []*catalog.CatalogLog
	require.NoError(t, j.Replay(context.TODO(), func(seq uint64, log *catalog.CatalogLog) error {
		seqs = append(seqs, seq)
		logs = append(logs, log)
		return nil
	}))
	return seqs, logs
}

func TestAppendReplay(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.TODO()
	for _, c := range []compress.T{compress.None, compress.Lz4, compress.Snappy} {
		t.Run(c.String(), func(t *testing.T) {
			fs := vfs.NewMem()
			j, err := Open(ctx, testDir, WithFS(fs), WithCompression(c))
			require.NoError(t, err)
			for _, log := range testLogs() {
				require.NoError(t, j.Append(ctx, log))
			}
			seqs, logs := readAll(t, j)
			require.Equal(t, []uint64{1, 2, 3, 4}, seqs)
			require.Equal(t, testLogs(), logs)
			require.NoError(t, j.Close())
			require.NoError(t, j.Close())

			err = j.Append(ctx, testLogs()[0])
			require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidState))
			err = j.Replay(ctx, func(uint64, *catalog.CatalogLog) error { return nil })
			require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidState))
		})
	}
}

func TestReopen(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.TODO()
	fs := vfs.NewMem()

	j, err := Open(ctx, testDir, WithFS(fs), WithCompression(compress.Snappy))
	require.NoError(t, err)
	require.Equal(t, uint64(1), j.NextSeq())
	logs := testLogs()
	require.NoError(t, j.Append(ctx, logs[0]))
	require.NoError(t, j.Append(ctx, logs[1]))
	require.NoError(t, j.Close())

	// records keep their codec when the journal is reopened with another one
	j, err = Open(ctx, testDir, WithFS(fs), WithCompression(compress.Lz4))
	require.NoError(t, err)
	require.Equal(t, uint64(3), j.NextSeq())
	require.NoError(t, j.Append(ctx, logs[2]))
	seqs, got := readAll(t, j)
	require.Equal(t, []uint64{1, 2, 3}, seqs)
	require.Equal(t, logs[:3], got)
	require.NoError(t, j.Close())
}

func TestReplayStops(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.TODO()
	j, err := Open(ctx, testDir, WithFS(vfs.NewMem()))
	require.NoError(t, err)
	defer j.Close()
	for _, log := range testLogs() {
		require.NoError(t, j.Append(ctx, log))
	}

	calls := 0
	err = j.Replay(ctx, func(seq uint64, log *catalog.CatalogLog) error {
		calls++
		if seq == 2 {
			return moerr.NewInternalError(ctx, "stop")
		}
		return nil
	})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))
	require.Equal(t, 2, calls)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	err = j.Replay(canceled, func(uint64, *catalog.CatalogLog) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestDecodeRecord(t *testing.T) {
	ctx := context.TODO()
	_, _, err := decodeRecord(ctx, []byte{1}, []byte{0})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidState))

	_, _, err = decodeRecord(ctx, encodeKey(1), nil)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidState))

	_, _, err = decodeRecord(ctx, encodeKey(1), []byte{99, '{', '}'})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))

	seq, log, err := decodeRecord(ctx, encodeKey(5), append([]byte{byte(compress.None)}, []byte(`{"kind":2,"catalogId":9}`)...))
	require.NoError(t, err)
	require.Equal(t, uint64(5), seq)
	require.Equal(t, catalog.LogDropCatalog, log.Kind)
	require.Equal(t, uint64(9), log.CatalogId)
}

func TestManagerOverJournal(t *testing.T) {
	defer leaktest.AfterTest(t)()
	ctx := context.TODO()
	fs := vfs.NewMem()
	registry := catalog.NewMemResourceRegistry()
	require.NoError(t, registry.Register(ctx, catalog.NewResource("pm", catalog.ResourcePaimon)))
	factory := catalog.NewFactory(registry, catalog.WithTestCatalog(true))

	j, err := Open(ctx, testDir, WithFS(fs))
	require.NoError(t, err)
	m := catalog.NewManager(factory, j)
	require.NoError(t, m.Exec(ctx, tree.NewCreateCatalog(false, "lake", "pm", "paimon lake", nil)))
	require.NoError(t, m.Exec(ctx, tree.NewCreateCatalog(false, "t", "", "", map[string]string{"type": "test"})))
	require.NoError(t, m.Exec(ctx, tree.NewAlterCatalogName("t", "t2")))
	require.NoError(t, m.Exec(ctx, tree.NewAlterCatalogProperty("lake", map[string]string{"warehouse": "s3://wh"}, "")))
	require.NoError(t, j.Close())

	j, err = Open(ctx, testDir, WithFS(fs))
	require.NoError(t, err)
	defer j.Close()
	replayed := catalog.NewManager(factory, j)
	require.NoError(t, j.Replay(ctx, func(_ uint64, log *catalog.CatalogLog) error {
		return replayed.Replay(ctx, log)
	}))

	lake, ok := replayed.GetCatalog("lake")
	require.True(t, ok)
	require.Equal(t, catalog.CatalogPaimon, lake.GetType())
	require.Equal(t, "paimon lake", lake.GetComment())
	require.Equal(t, "s3://wh", lake.GetProperties()["warehouse"])
	t2, ok := replayed.GetCatalog("t2")
	require.True(t, ok)
	require.Equal(t, uint64(2), t2.GetId())
}
