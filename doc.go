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

// Package o5m decodes the o5m and o5c OpenStreetMap binary interchange
// formats: a single dedicated goroutine drives the sequential
// varint/delta/reference-table state machine and hands filled
// PackedItemBuffer-style buffers to the caller over a bounded channel,
// one entity per node/way/relation dataset.
//
// A Decoder is constructed with NewDecoder and driven with repeated
// calls to Decode until io.EOF. The stream's Header is available,
// exactly once published, from Header — before the first entity if the
// file carries any, or at clean EOF if it carries none.
package o5m
