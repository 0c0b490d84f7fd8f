// Copyright 2021 Matrix Origin
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

package compress

import (
	"bytes"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4"
)

// T is the compression algorithm of a block. The value is persisted, do not reorder.
type T uint8

const (
	None T = iota
	Lz4
	Snappy
)

func (t T) String() string {
	switch t {
	case None:
		return "none"
	case Lz4:
		return "lz4"
	case Snappy:
		return "snappy"
	}
	return "unknown"
}

func Parse(s string) (T, bool) {
	switch strings.ToLower(s) {
	case "none", "":
		return None, true
	case "lz4":
		return Lz4, true
	case "snappy":
		return Snappy, true
	}
	return None, false
}

func Compress(t T, src []byte) ([]byte, error) {
	switch t {
	case None:
		return src, nil
	case Lz4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(src); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Snappy:
		return snappy.Encode(nil, src), nil
	}
	return nil, errUnknown(t)
}

func Decompress(t T, src []byte) ([]byte, error) {
	switch t {
	case None:
		return src, nil
	case Lz4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
	case Snappy:
		return snappy.Decode(nil, src)
	}
	return nil, errUnknown(t)
}

type errUnknown T

func (e errUnknown) Error() string {
	return "unknown compression algorithm " + T(e).String()
}
