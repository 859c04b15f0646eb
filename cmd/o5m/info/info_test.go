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

package info

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maguro/o5m/model"
)

func TestRenderJSON(t *testing.T) {
	ts, _ := time.Parse(time.RFC3339, "2024-10-28T14:21:30Z")
	s := &summary{
		Header: model.Header{
			BoundingBox: &model.BoundingBox{Left: -0.511482, Right: 0.335437, Top: 51.69344, Bottom: 51.28554},
			Timestamp:   &ts,
		},
		NodeCount:     2729006,
		WayCount:      459055,
		RelationCount: 12833,
	}

	buf := &bytes.Buffer{}
	saved := out
	defer func() { out = saved }()
	out = buf

	renderJSON(s, true)

	var got summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, s.NodeCount, got.NodeCount)
	assert.Equal(t, s.WayCount, got.WayCount)
	assert.Equal(t, s.RelationCount, got.RelationCount)
	assert.Equal(t, s.BoundingBox, got.BoundingBox)
}

func TestRenderTxt(t *testing.T) {
	ts, _ := time.Parse(time.RFC3339, "2024-10-28T14:21:30Z")
	s := &summary{
		Header: model.Header{
			BoundingBox:         &model.BoundingBox{Left: -0.511482, Right: 0.335437, Top: 51.69344, Bottom: 51.28554},
			Timestamp:           &ts,
			HasMultipleVersions: true,
		},
		NodeCount:     2729006,
		WayCount:      459055,
		RelationCount: 12833,
	}

	buf := &bytes.Buffer{}
	saved := out
	defer func() { out = saved }()
	out = buf

	renderTxt(s, true)

	assert.Equal(t, `BoundingBox: [(51.69344, -0.511482) (51.28554, 0.335437)]
Timestamp: 2024-10-28T14:21:30Z
HasMultipleVersions: true
NodeCount: 2,729,006
WayCount: 459,055
RelationCount: 12,833
`, buf.String())
}
