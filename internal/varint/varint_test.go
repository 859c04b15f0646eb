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

package varint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maguro/o5m/internal/varint"
)

func TestReadUvarint(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		want uint64
		n    int
	}{
		{"zero", []byte{0x00}, 0, 1},
		{"one byte", []byte{0x7f}, 127, 1},
		{"two bytes", []byte{0x80, 0x01}, 128, 2},
		{"trailing garbage ignored", []byte{0x01, 0xff}, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, n, err := varint.ReadUvarint(tc.buf)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.n, n)
		})
	}
}

func TestReadUvarint_ShortInput(t *testing.T) {
	_, _, err := varint.ReadUvarint([]byte{0x80})
	assert.ErrorIs(t, err, varint.ErrShortInput)

	_, _, err = varint.ReadUvarint(nil)
	assert.ErrorIs(t, err, varint.ErrShortInput)
}

func TestReadUvarint_Overflow(t *testing.T) {
	buf := make([]byte, 11)
	for i := range buf {
		buf[i] = 0x80
	}

	_, _, err := varint.ReadUvarint(buf)
	assert.ErrorIs(t, err, varint.ErrOverflow)
}

func TestReadSvarint(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
		want int64
	}{
		{"zero", []byte{0x00}, 0},
		{"minus one", []byte{0x01}, -1},
		{"one", []byte{0x02}, 1},
		{"minus two", []byte{0x03}, -2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, n, err := varint.ReadSvarint(tc.buf)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, 1, n)
		})
	}
}

func TestReadSvarint_PropagatesError(t *testing.T) {
	_, _, err := varint.ReadSvarint([]byte{0x80})
	assert.ErrorIs(t, err, varint.ErrShortInput)
}
