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

package transport_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maguro/o5m/internal/transport"
)

func TestWrap_NoneIsPassthrough(t *testing.T) {
	src := []byte("\xff\xe0\x04o5m2not compressed")

	r, err := transport.Wrap(transport.Auto, bytes.NewReader(src))
	assert.NoError(t, err)

	got, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestWrap_ExplicitNone(t *testing.T) {
	src := []byte("raw bytes")

	r, err := transport.Wrap(transport.None, bytes.NewReader(src))
	assert.NoError(t, err)

	got, err := io.ReadAll(r)
	assert.NoError(t, err)
	assert.Equal(t, src, got)
}

// TestWrap_SniffsBzip2Magic checks that a stream beginning with bzip2's
// "BZh" magic is routed through the bzip2 decoder rather than treated
// as None (passthrough). bzip2.NewReader never fails at construction,
// so the proof is that reading rejects the garbage payload instead of
// returning it unchanged.
func TestWrap_SniffsBzip2Magic(t *testing.T) {
	src := []byte("BZh9 not a real bzip2 stream")

	r, err := transport.Wrap(transport.Auto, bytes.NewReader(src))
	assert.NoError(t, err)

	got, err := io.ReadAll(r)
	assert.Error(t, err)
	assert.NotEqual(t, src, got)
}
