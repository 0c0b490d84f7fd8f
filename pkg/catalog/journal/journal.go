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
	"encoding/binary"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"go.uber.org/zap"

	"github.com/matrixorigin/extcatalog/pkg/catalog"
	"github.com/matrixorigin/extcatalog/pkg/common/moerr"
	"github.com/matrixorigin/extcatalog/pkg/compress"
	"github.com/matrixorigin/extcatalog/pkg/logutil"
	v2 "github.com/matrixorigin/extcatalog/pkg/util/metric/v2"
)

const keySize = 8

type Option func(*Journal)

// WithFS opens the journal on fs instead of the local disk.
func WithFS(fs vfs.FS) Option {
	return func(j *Journal) {
		j.fs = fs
	}
}

// WithCompression sets the codec of newly appended records. Records
// already in the journal keep the codec they were written with.
func WithCompression(t compress.T) Option {
	return func(j *Journal) {
		j.compression = t
	}
}

// Journal is an append only sequence of catalog logs kept in pebble.
// The key of a record is its big endian sequence number, the value is
// a codec tag followed by the compressed log.
type Journal struct {
	sync.Mutex
	dir         string
	fs          vfs.FS
	compression compress.T
	db          *pebble.DB
	nextSeq     uint64
}

var _ catalog.LogWriter = (*Journal)(nil)

func Open(ctx context.Context, dir string, opts ...Option) (*Journal, error) {
	j := &Journal{
		dir:         dir,
		compression: compress.Lz4,
		nextSeq:     1,
	}
	for _, opt := range opts {
		opt(j)
	}
	options := &pebble.Options{
		Logger: pebbleLogger{},
	}
	if j.fs != nil {
		options.FS = j.fs
	}
	db, err := pebble.Open(dir, options)
	if err != nil {
		return nil, moerr.ConvertGoError(ctx, errors.Wrapf(err, "open catalog journal %s", dir))
	}
	j.db = db
	if err = j.recoverSeq(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	logutil.Info("catalog journal opened",
		zap.String("dir", dir),
		zap.String("compression", j.compression.String()),
		zap.Uint64("next-seq", j.nextSeq))
	return j, nil
}

func (j *Journal) recoverSeq(ctx context.Context) error {
	iter, err := j.db.NewIter(nil)
	if err != nil {
		return moerr.ConvertGoError(ctx, errors.Wrap(err, "scan catalog journal"))
	}
	defer iter.Close()
	if iter.Last() {
		key := iter.Key()
		if len(key) != keySize {
			return moerr.NewInvalidState(ctx, "catalog journal key of %d bytes", len(key))
		}
		j.nextSeq = binary.BigEndian.Uint64(key) + 1
	}
	return nil
}

// Append writes log synced as the next record.
func (j *Journal) Append(ctx context.Context, log *catalog.CatalogLog) error {
	start := time.Now()
	defer func() {
		v2.CatalogJournalAppendDurationHistogram.Observe(time.Since(start).Seconds())
	}()

	data, err := log.MarshalBinary()
	if err != nil {
		return err
	}
	payload, err := compress.Compress(j.compression, data)
	if err != nil {
		return moerr.ConvertGoError(ctx, errors.Wrapf(err, "compress catalog log %s", log))
	}
	value := make([]byte, 0, len(payload)+1)
	value = append(value, byte(j.compression))
	value = append(value, payload...)

	j.Lock()
	defer j.Unlock()
	if j.db == nil {
		return j.closedError(ctx)
	}
	key := encodeKey(j.nextSeq)
	if err = j.db.Set(key, value, pebble.Sync); err != nil {
		return moerr.ConvertGoError(ctx, errors.Wrapf(err, "append catalog log %d", j.nextSeq))
	}
	logutil.Debug("catalog log appended",
		zap.Uint64("seq", j.nextSeq),
		zap.String("log", log.String()))
	j.nextSeq++
	return nil
}

// Replay calls fn on every record in sequence order and stops at the
// first error.
func (j *Journal) Replay(ctx context.Context, fn func(seq uint64, log *catalog.CatalogLog) error) error {
	j.Lock()
	db := j.db
	j.Unlock()
	if db == nil {
		return j.closedError(ctx)
	}
	iter, err := db.NewIter(nil)
	if err != nil {
		return moerr.ConvertGoError(ctx, errors.Wrap(err, "scan catalog journal"))
	}
	defer iter.Close()
	for valid := iter.First(); valid; valid = iter.Next() {
		if err = ctx.Err(); err != nil {
			return err
		}
		seq, log, err := decodeRecord(ctx, iter.Key(), iter.Value())
		if err != nil {
			return err
		}
		if err = fn(seq, log); err != nil {
			return err
		}
	}
	if err = iter.Error(); err != nil {
		return moerr.ConvertGoError(ctx, errors.Wrap(err, "scan catalog journal"))
	}
	return nil
}

// NextSeq is the sequence number the next Append writes.
func (j *Journal) NextSeq() uint64 {
	j.Lock()
	defer j.Unlock()
	return j.nextSeq
}

func (j *Journal) Close() error {
	j.Lock()
	defer j.Unlock()
	if j.db == nil {
		return nil
	}
	err := j.db.Close()
	j.db = nil
	return err
}

func (j *Journal) closedError(ctx context.Context) error {
	return moerr.NewInvalidState(ctx, "catalog journal %s is closed", j.dir)
}

func encodeKey(seq uint64) []byte {
	key := make([]byte, keySize)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func decodeRecord(ctx context.Context, key, value []byte) (uint64, *catalog.CatalogLog, error) {
	if len(key) != keySize {
		return 0, nil, moerr.NewInvalidState(ctx, "catalog journal key of %d bytes", len(key))
	}
	seq := binary.BigEndian.Uint64(key)
	if len(value) == 0 {
		return 0, nil, moerr.NewInvalidState(ctx, "empty catalog journal record %d", seq)
	}
	data, err := compress.Decompress(compress.T(value[0]), value[1:])
	if err != nil {
		return 0, nil, moerr.ConvertGoError(ctx, errors.Wrapf(err, "decompress catalog journal record %d", seq))
	}
	log := &catalog.CatalogLog{}
	if err = log.UnmarshalBinary(data); err != nil {
		return 0, nil, err
	}
	return seq, log, nil
}

type pebbleLogger struct{}

func (pebbleLogger) Infof(format string, args ...interface{}) {
	logutil.Debugf("pebble: "+format, args...)
}

func (pebbleLogger) Fatalf(format string, args ...interface{}) {
	logutil.Fatalf("pebble: "+format, args...)
}
