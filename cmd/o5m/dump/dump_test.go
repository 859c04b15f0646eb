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

package dump

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maguro/o5m/model"
)

func TestParseMask(t *testing.T) {
	mask, err := parseMask("node,way")
	assert.NoError(t, err)
	assert.Equal(t, model.NodeMask|model.WayMask, mask)

	mask, err = parseMask("node,way,relation")
	assert.NoError(t, err)
	assert.Equal(t, model.AllKinds, mask)

	mask, err = parseMask(" Relation ")
	assert.NoError(t, err)
	assert.Equal(t, model.RelationMask, mask)

	_, err = parseMask("node,bogus")
	assert.Error(t, err)

	// An empty --kinds deliberately selects nothing; runDump passes this
	// zero mask straight through o5m.WithEntityMask, which must not be
	// treated as "flag was never set" and widened back to AllKinds.
	mask, err = parseMask("")
	assert.NoError(t, err)
	assert.Equal(t, model.EntityMask(0), mask)
}
