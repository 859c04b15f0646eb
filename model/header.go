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

import (
	"time"
)

// Header is the metadata an o5m/o5c stream carries ahead of its first
// entity: an optional bounding box, an optional file timestamp, and the
// has_multiple_versions flag that tells a consumer whether it may see more
// than one version of the same entity id (true for o5c, false for o5m). Options mirrors osmium's generic header key/value bag for
// anything a writer chose to record beyond those three fields.
type Header struct {
	BoundingBox         *BoundingBox      `json:"bounding_box,omitempty"`
	Timestamp           *time.Time        `json:"timestamp,omitempty"`
	HasMultipleVersions bool              `json:"has_multiple_versions"`
	Options             map[string]string `json:"options,omitempty"`
}
