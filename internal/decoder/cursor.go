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

package decoder

import (
	"bufio"
	"io"

	"github.com/maguro/o5m/internal/varint"
)

// cursor reads bytes off the upstream reader while tracking the
// absolute offset, so that every fatal error can be attributed to a
// position in the stream.
type cursor struct {
	r      *bufio.Reader
	offset int64
}

func newCursor(r io.Reader) *cursor {
	return &cursor{r: bufio.NewReaderSize(r, 64*1024)}
}

// readByte reads a single byte. io.EOF is returned verbatim so callers
// can distinguish "clean end of stream" from a short read mid-dataset.
func (c *cursor) readByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.offset++
	}

	return b, err
}

// readFull reads exactly n bytes, translating a short read into
// ErrPrematureEnd.
func (c *cursor) readFull(n int) ([]byte, error) {
	buf := make([]byte, n)

	read, err := io.ReadFull(c.r, buf)
	c.offset += int64(read)

	if err != nil {
		return nil, fatal(ErrPrematureEnd, c.offset, err.Error())
	}

	return buf, nil
}

// readUvarint reads a base-128 unsigned varint one byte at a time off
// the reader, since the dataset length itself isn't known until this
// varint completes.
func (c *cursor) readUvarint() (uint64, error) {
	var (
		value uint64
		shift uint
	)

	for n := 0; n < 10; n++ {
		b, err := c.readByte()
		if err != nil {
			return 0, fatal(ErrPrematureEnd, c.offset, "short varint")
		}

		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, nil
		}

		shift += 7
	}

	return 0, fatal(ErrVarintOverflow, c.offset, "")
}

// skip discards n bytes without materialising them.
func (c *cursor) skip(n int64) error {
	read, err := io.CopyN(io.Discard, c.r, n)
	c.offset += read

	if err != nil {
		return fatal(ErrPrematureEnd, c.offset, err.Error())
	}

	return nil
}

// sliceUvarint reads a base-128 varint out of an in-memory payload
// slice, reusing the varint package and translating its sentinels into
// the decoder's own fatal kinds.
func sliceUvarint(payload []byte, pos int, baseOffset int64) (uint64, int, error) {
	v, n, err := varint.ReadUvarint(payload[pos:])
	if err != nil {
		return 0, pos, translateVarintErr(err, baseOffset+int64(pos))
	}

	return v, pos + n, nil
}

func sliceSvarint(payload []byte, pos int, baseOffset int64) (int64, int, error) {
	v, n, err := varint.ReadSvarint(payload[pos:])
	if err != nil {
		return 0, pos, translateVarintErr(err, baseOffset+int64(pos))
	}

	return v, pos + n, nil
}

func translateVarintErr(err error, offset int64) error {
	switch {
	case err == varint.ErrOverflow:
		return fatal(ErrVarintOverflow, offset, "")
	default:
		return fatal(ErrPrematureEnd, offset, err.Error())
	}
}
