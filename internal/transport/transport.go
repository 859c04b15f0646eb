// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package transport transparently decompresses a whole o5m/o5c file
// before the decoder reads its first magic byte. The wire format itself
// carries no per-dataset compression envelope (unlike PBF's per-blob
// zlib/lz4/zstd), but files are routinely shipped compressed end to
// end, so this sits at the file-reading edge instead.
package transport

import (
	"bufio"
	"compress/bzip2"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Kind identifies a whole-file compression format.
type Kind int

const (
	// Auto sniffs the stream's magic bytes to pick a Kind.
	Auto Kind = iota

	// None passes the stream through unmodified.
	None

	// Gzip wraps the stream in a gzip reader.
	Gzip

	// Zstd wraps the stream in a zstd reader.
	Zstd

	// LZ4 wraps the stream in an lz4 reader.
	LZ4

	// XZ wraps the stream in an xz reader.
	XZ

	// Bzip2 wraps the stream in a bzip2 reader.
	Bzip2
)

var ErrUnknownCompression = errors.New("transport: unknown compression kind")

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
	xzMagic   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	bzipMagic = []byte{'B', 'Z', 'h'}
)

// Wrap returns a reader that transparently decompresses r according to
// kind. Auto peeks at the stream's leading bytes without consuming them
// from the caller's point of view: the returned reader still sees the
// full, unconsumed stream.
func Wrap(kind Kind, r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 4096)

	if kind == Auto {
		kind = sniff(br)
	}

	switch kind {
	case None:
		return br, nil
	case Gzip:
		return gzip.NewReader(br)
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	case LZ4:
		return lz4.NewReader(br), nil
	case XZ:
		return xz.NewReader(br)
	case Bzip2:
		return bzip2.NewReader(br), nil
	default:
		return nil, ErrUnknownCompression
	}
}

func sniff(br *bufio.Reader) Kind {
	head, _ := br.Peek(6)

	switch {
	case hasPrefix(head, gzipMagic):
		return Gzip
	case hasPrefix(head, zstdMagic):
		return Zstd
	case hasPrefix(head, lz4Magic):
		return LZ4
	case hasPrefix(head, xzMagic):
		return XZ
	case hasPrefix(head, bzipMagic):
		return Bzip2
	default:
		return None
	}
}

func hasPrefix(b, prefix []byte) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == string(prefix)
}
