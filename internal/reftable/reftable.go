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

// Package reftable implements o5m's FIFO-ring string-interning table:
// a bounded circular dictionary used to compress repeated tag keys and
// values, user names, and relation roles. The geometry (15000 entries
// of up to 256 bytes each) is fixed by the wire format, not configurable.
package reftable

import "errors"

const (
	// Size is the number of slots in the ring.
	Size = 15000

	// MaxEntryLen is the largest string the table will store. Longer
	// strings are still handed back to the caller but never occupy a
	// slot (spec's "oversized interned payload" open question).
	MaxEntryLen = 252

	slotCap = 256
)

// ErrInvalidReference is returned by Get for index 0, an index greater
// than Size, or any lookup against an empty table.
var ErrInvalidReference = errors.New("reftable: invalid reference index")

// Table is a bounded circular dictionary of byte strings. The zero
// value is ready to use; its backing storage is allocated lazily on the
// first Add so that a Table can be relocated (e.g. moved to another
// goroutine) cheaply before first use, per the decoder's concurrency
// model.
type Table struct {
	slots   [][]byte
	current int
	count   int
}

// Clear resets the cursor and entry count. It does not release
// allocated storage, matching the wire format's "reset" dataset, which
// is expected to occur repeatedly within a single long-lived stream.
func (t *Table) Clear() {
	t.current = 0
	t.count = 0
}

// Add copies bytes into the next slot and advances the cursor, if bytes
// is short enough to be interned (len(bytes) <= MaxEntryLen). Strings
// longer than that are silently not inserted; the caller still gets its
// own copy back from wherever it read the bytes, this method is simply
// a no-op for them.
func (t *Table) Add(bytes []byte) {
	if len(bytes) > MaxEntryLen {
		return
	}

	if t.slots == nil {
		t.slots = make([][]byte, Size)
	}

	slot := t.slots[t.current]
	if cap(slot) < len(bytes) {
		slot = make([]byte, 0, slotCap)
	}

	slot = append(slot[:0], bytes...)
	t.slots[t.current] = slot

	t.current = (t.current + 1) % Size
	if t.count < Size {
		t.count++
	}
}

// Get returns the bytes of the index'th most recently inserted entry
// still held by the table (index 1 is the most recent). The returned
// slice is owned by the table; callers that retain the string beyond
// the current decode step must copy it.
func (t *Table) Get(index int) ([]byte, error) {
	if index < 1 || index > Size || t.count == 0 {
		return nil, ErrInvalidReference
	}

	if index > t.count {
		return nil, ErrInvalidReference
	}

	slot := ((t.current-index)%Size + Size) % Size

	return t.slots[slot], nil
}
