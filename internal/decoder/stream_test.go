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

package decoder_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maguro/o5m/internal/arena"
	"github.com/maguro/o5m/internal/decoder"
	"github.com/maguro/o5m/model"
)

var magic = []byte{0xFF, 0xE0, 0x04, 0x6F, 0x35, 'm', '2'}

func zigzag(v int64) uint64 { return uint64(v<<1) ^ uint64(v>>63) }

func uvarint(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			return out
		}
	}
}

func svarint(v int64) []byte { return uvarint(zigzag(v)) }

func dataset(typeTag byte, payload []byte) []byte {
	return append(append([]byte{typeTag}, uvarint(uint64(len(payload)))...), payload...)
}

func nodeDataset(id int64) []byte {
	payload := append(append(svarint(id), 0x00), append(svarint(0), svarint(0)...)...)
	return dataset(0x10, payload)
}

// TestStream_NeverFlushesAnEmptyBufferMidStream exercises a buffer
// capacity below worstCaseNode, the exact boundary condition under
// which addAndMaybeFlush used to flush a buffer with nothing committed
// to it yet. A caller that trusts EmitFunc's documented "empty buffer
// == end of stream" contract must only ever see a zero-byte buffer as
// the last call.
func TestStream_NeverFlushesAnEmptyBufferMidStream(t *testing.T) {
	var stream []byte
	stream = append(stream, magic...)
	for i := int64(1); i <= 5; i++ {
		stream = append(stream, nodeDataset(i)...)
	}

	st := decoder.NewStream(bytes.NewReader(stream), decoder.Config{
		Mask:       model.AllKinds,
		BufferCap:  48, // below worstCaseNode
		GrowPolicy: arena.GrowByChaining,
	})

	var emitted []*arena.Buffer
	emit := func(buf *arena.Buffer) error {
		emitted = append(emitted, buf)
		return nil
	}

	err := st.Run(func(model.Header) {}, emit)
	require.NoError(t, err)
	require.NotEmpty(t, emitted)

	for i, buf := range emitted {
		if i == len(emitted)-1 {
			assert.Equal(t, 0, buf.Written(), "final buffer must be the empty end-of-stream sentinel")
			continue
		}
		assert.Greater(t, buf.Written(), 0, "buffer %d flushed mid-stream with nothing committed", i)
	}

	var nodeCount int
	for _, buf := range emitted {
		for item := range buf.Iterate() {
			e, err := decoder.DecodeItem(item)
			require.NoError(t, err)
			_, ok := e.(model.Node)
			assert.True(t, ok)
			nodeCount++
		}
	}
	assert.Equal(t, 5, nodeCount)
}
