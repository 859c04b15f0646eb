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

// Package delta implements the running-value accumulators o5m uses to
// reconstruct absolute ids, timestamps, changesets, and coordinates from
// a stream of per-object differences.
package delta

// Decoder holds a single running value, updated by successive calls to
// Update. The zero value is ready to use.
type Decoder struct {
	value int64
}

// Update adds delta to the running value and returns the new value.
func (d *Decoder) Update(delta int64) int64 {
	d.value += delta
	return d.value
}

// Value returns the current running value without modifying it.
func (d *Decoder) Value() int64 {
	return d.value
}

// Clear resets the running value to zero.
func (d *Decoder) Clear() {
	d.value = 0
}
