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

// Package arena implements the packed item buffer the decoder writes
// decoded entities into: a contiguous byte arena of self-describing,
// aligned records with reserve/commit/rollback semantics, bounded or
// auto-growing capacity, and in-place compaction. It is the Go
// realization of osmium::memory::Buffer.
package arena

import (
	"encoding/binary"
	"errors"
	"math/bits"
)

// Align is the byte alignment every committed record is padded to.
const Align = 8

// headerSize is the size of the fixed portion of every record: a 1-byte type tag (with
// the tombstone flag in its high bit) followed by a 3-byte little
// endian payload length.
const headerSize = 4

const tombstoneBit = 0x80

// GrowthPolicy selects what Reserve does when a buffer is full.
type GrowthPolicy int

const (
	// NoGrow fails with ErrBufferFull once capacity is exhausted. Used
	// for externally supplied storage, which the buffer never resizes.
	NoGrow GrowthPolicy = iota

	// GrowInPlace reallocates to the next power of two large enough to
	// hold the request, copying existing bytes.
	GrowInPlace

	// GrowByChaining seals the current contents into a predecessor link
	// and allocates fresh storage of the same capacity.
	GrowByChaining
)

var (
	// ErrBufferFull is returned by Reserve when no growth policy can
	// satisfy the request.
	ErrBufferFull = errors.New("arena: buffer full")

	// ErrLogicViolation is returned when Commit is called while a
	// builder scope is open, or when DetachDeepestPredecessor is called
	// on a buffer with no predecessor to detach. Rollback performs no
	// builder check and returns no error.
	ErrLogicViolation = errors.New("arena: logic violation")
)

// Buffer is a contiguous arena of packed records. The zero value is not
// usable; construct one with New or NewExternal.
type Buffer struct {
	data      []byte
	capacity  int
	written   int
	committed int

	policy      GrowthPolicy
	predecessor *Buffer

	openBuilders int
}

// New allocates an internally managed buffer of the given capacity with
// the given growth policy.
func New(capacity int, policy GrowthPolicy) *Buffer {
	return &Buffer{
		data:     make([]byte, capacity),
		capacity: capacity,
		policy:   policy,
	}
}

// NewExternal wraps caller-supplied storage. External buffers never
// grow: Reserve fails with ErrBufferFull once data is exhausted.
func NewExternal(data []byte) *Buffer {
	return &Buffer{
		data:     data,
		capacity: len(data),
		policy:   NoGrow,
	}
}

// Capacity returns the buffer's current byte capacity.
func (b *Buffer) Capacity() int { return b.capacity }

// Written returns the number of bytes written, including any
// uncommitted tail.
func (b *Buffer) Written() int { return b.written }

// Committed returns the number of committed bytes.
func (b *Buffer) Committed() int { return b.committed }

// HasPredecessor reports whether this buffer has a chained predecessor.
func (b *Buffer) HasPredecessor() bool { return b.predecessor != nil }

// Reserve ensures written+n <= capacity, growing the buffer per its
// policy if necessary, and returns the reserved region. Reserve advances
// written by n; the caller must eventually Commit or Rollback before
// issuing another Reserve.
func (b *Buffer) Reserve(n int) ([]byte, error) {
	if b.written+n > b.capacity {
		if err := b.grow(n); err != nil {
			return nil, err
		}
	}

	start := b.written
	b.written += n

	return b.data[start:b.written], nil
}

func (b *Buffer) grow(n int) error {
	switch b.policy {
	case GrowInPlace:
		newCap := nextPow2(b.written + n)
		newData := make([]byte, newCap)
		copy(newData, b.data[:b.written])
		b.data = newData
		b.capacity = newCap

		return nil

	case GrowByChaining:
		if b.committed == 0 {
			return ErrBufferFull
		}

		pred := &Buffer{
			data:        b.data,
			capacity:    b.capacity,
			written:     b.committed,
			committed:   b.committed,
			policy:      b.policy,
			predecessor: b.predecessor,
		}

		freshCap := b.capacity
		if freshCap < n {
			freshCap = nextPow2(n)
		}

		b.data = make([]byte, freshCap)
		b.capacity = freshCap
		b.written = 0
		b.committed = 0
		b.predecessor = pred

		if b.written+n > b.capacity {
			return ErrBufferFull
		}

		return nil

	default:
		return ErrBufferFull
	}
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}

	return 1 << bits.Len(uint(n-1))
}

// Commit promotes the uncommitted tail written since the last Commit to
// committed status and returns the offset it started at — the identity
// of the record just added. Commit fails with ErrLogicViolation while a
// builder scope is open.
func (b *Buffer) Commit() (int, error) {
	if b.openBuilders > 0 {
		return 0, ErrLogicViolation
	}

	before := b.committed
	b.committed = b.written

	return before, nil
}

// Rollback discards the uncommitted tail.
func (b *Buffer) Rollback() {
	b.written = b.committed
}

// Clear zeroes written and committed, returning the bytes that had been
// committed.
func (b *Buffer) Clear() []byte {
	out := b.data[:b.committed]
	b.written = 0
	b.committed = 0

	return out
}

// PaddedSize rounds n up to the record alignment.
func PaddedSize(n int) int {
	return (n + Align - 1) &^ (Align - 1)
}

// AddItem reserves, writes, and commits a single record consisting of a
// type tag and a payload, padding the payload to Align. It returns the
// committed offset identifying the new record.
func (b *Buffer) AddItem(typeTag byte, payload []byte) (int, error) {
	padded := PaddedSize(headerSize + len(payload))

	region, err := b.Reserve(padded)
	if err != nil {
		return 0, err
	}

	region[0] = typeTag &^ tombstoneBit
	putUint24(region[1:4], len(payload))
	copy(region[headerSize:], payload)

	for i := headerSize + len(payload); i < padded; i++ {
		region[i] = 0
	}

	return b.Commit()
}

// Remove marks the record at offset as removed. It takes effect the
// next time PurgeRemoved runs.
func (b *Buffer) Remove(offset int) {
	b.data[offset] |= tombstoneBit
}

// Removed reports whether the record at offset carries a tombstone.
func (b *Buffer) Removed(offset int) bool {
	return b.data[offset]&tombstoneBit != 0
}

// Item is one committed record yielded by Iterate.
type Item struct {
	Offset  int
	TypeTag byte
	Payload []byte
}

// Iterate walks the committed records in file order, skipping
// tombstoned ones. Offsets and payload slices are valid only until the
// next Reserve.
func (b *Buffer) Iterate() func(yield func(Item) bool) {
	return func(yield func(Item) bool) {
		for off := 0; off < b.committed; {
			tag := b.data[off] &^ tombstoneBit
			length := int(getUint24(b.data[off+1 : off+4]))
			padded := PaddedSize(headerSize + length)

			if b.data[off]&tombstoneBit == 0 {
				item := Item{
					Offset:  off,
					TypeTag: tag,
					Payload: b.data[off+headerSize : off+headerSize+length],
				}
				if !yield(item) {
					return
				}
			}

			off += padded
		}
	}
}

// MovedFunc is invoked by PurgeRemoved for every surviving record whose
// offset changed, in old-offset order.
type MovedFunc func(oldOffset, newOffset int)

// PurgeRemoved compacts the buffer in place, memmove-ing every
// non-tombstoned record down to close gaps left by removed ones.
// Relative order of surviving records is preserved; moved's old/new
// offsets are monotone. After it returns, written == committed == the
// new end of the compacted region.
func (b *Buffer) PurgeRemoved(moved MovedFunc) {
	write := 0

	for read := 0; read < b.committed; {
		length := int(getUint24(b.data[read+1 : read+4]))
		padded := PaddedSize(headerSize + length)
		tombstoned := b.data[read]&tombstoneBit != 0

		if !tombstoned {
			if write != read {
				copy(b.data[write:write+padded], b.data[read:read+padded])
				if moved != nil {
					moved(read, write)
				}
			}

			write += padded
		}

		read += padded
	}

	b.written = write
	b.committed = write
}

// DetachDeepestPredecessor unlinks and returns the deepest link in the
// predecessor chain, so a consumer can drain it independently of the
// buffer still being built.
func (b *Buffer) DetachDeepestPredecessor() (*Buffer, error) {
	if b.predecessor == nil {
		return nil, ErrLogicViolation
	}

	parent := b
	for parent.predecessor.predecessor != nil {
		parent = parent.predecessor
	}

	deepest := parent.predecessor
	parent.predecessor = nil

	return deepest, nil
}

func putUint24(dst []byte, v int) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], uint32(v))
	copy(dst, tmp[:3])
}

func getUint24(src []byte) uint32 {
	var tmp [4]byte
	copy(tmp[:3], src)
	return binary.LittleEndian.Uint32(tmp[:])
}
