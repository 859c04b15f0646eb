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

package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maguro/o5m/model"
)

func TestHeader_JSON(t *testing.T) {
	ts, _ := time.Parse(time.RFC3339, "2024-10-28T14:21:30Z")
	h := model.Header{
		BoundingBox: &model.BoundingBox{
			Top:    51.69344,
			Left:   -0.511482,
			Bottom: 51.28554,
			Right:  0.335437,
		},
		Timestamp:           &ts,
		HasMultipleVersions: true,
		Options: map[string]string{
			"o5m_timestamp": "2024-10-28T14:21:30Z",
		},
	}

	b, err := json.Marshal(h)
	assert.NoError(t, err)
	assert.Equal(t, `{"bounding_box":{"top":51.69344,"left":-0.511482,"bottom":51.28554,"right":0.335437},"timestamp":"2024-10-28T14:21:30Z","has_multiple_versions":true,"options":{"o5m_timestamp":"2024-10-28T14:21:30Z"}}`, string(b))
}

func TestHeader_JSON_Empty(t *testing.T) {
	b, err := json.Marshal(model.Header{})
	assert.NoError(t, err)
	assert.Equal(t, `{"has_multiple_versions":false}`, string(b))
}
