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

package delta_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maguro/o5m/internal/delta"
)

func TestDecoder_Identity(t *testing.T) {
	var d delta.Decoder
	assert.EqualValues(t, 0, d.Update(0))
}

func TestDecoder_Accumulates(t *testing.T) {
	var d delta.Decoder
	d.Update(5)
	got := d.Update(-2)

	assert.EqualValues(t, 3, got)
	assert.EqualValues(t, 3, d.Value())
}

func TestDecoder_Clear(t *testing.T) {
	var d delta.Decoder
	d.Update(42)
	d.Clear()

	assert.EqualValues(t, 0, d.Value())
	assert.EqualValues(t, 7, d.Update(7))
}
