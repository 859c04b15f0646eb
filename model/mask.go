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

package model

// EntityMask selects which entity kinds a decoder should materialize.
// Excluded kinds are still parsed enough to advance the cursor, just
// not turned into entities.
type EntityMask uint8

const (
	NodeMask     EntityMask = 1 << iota
	WayMask
	RelationMask
)

// AllKinds selects every entity kind.
const AllKinds EntityMask = NodeMask | WayMask | RelationMask

// Has reports whether the mask includes kind.
func (m EntityMask) Has(kind EntityType) bool {
	switch kind {
	case NODE:
		return m&NodeMask != 0
	case WAY:
		return m&WayMask != 0
	case RELATION:
		return m&RelationMask != 0
	default:
		return false
	}
}

// Empty reports whether the mask selects no entity kinds at all, the
// condition under which decoding may stop early once the header has
// been published.
func (m EntityMask) Empty() bool { return m == 0 }
