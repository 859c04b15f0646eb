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

package reftable_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maguro/o5m/internal/reftable"
)

func TestTable_EmptyErrors(t *testing.T) {
	var tab reftable.Table

	_, err := tab.Get(1)
	assert.ErrorIs(t, err, reftable.ErrInvalidReference)
}

func TestTable_InvalidIndices(t *testing.T) {
	var tab reftable.Table
	tab.Add([]byte("a"))

	_, err := tab.Get(0)
	assert.ErrorIs(t, err, reftable.ErrInvalidReference)

	_, err = tab.Get(reftable.Size + 1)
	assert.ErrorIs(t, err, reftable.ErrInvalidReference)

	_, err = tab.Get(2)
	assert.ErrorIs(t, err, reftable.ErrInvalidReference)
}

func TestTable_Modularity(t *testing.T) {
	var tab reftable.Table

	for i := 1; i <= 3; i++ {
		tab.Add([]byte(fmt.Sprintf("s%d", i)))
	}

	got, err := tab.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "s3", string(got))

	got, err = tab.Get(2)
	assert.NoError(t, err)
	assert.Equal(t, "s2", string(got))

	got, err = tab.Get(3)
	assert.NoError(t, err)
	assert.Equal(t, "s1", string(got))
}

func TestTable_RingEviction(t *testing.T) {
	var tab reftable.Table

	for i := 1; i <= reftable.Size+1; i++ {
		tab.Add([]byte(fmt.Sprintf("s%d", i)))
	}

	got, err := tab.Get(reftable.Size)
	assert.NoError(t, err)
	assert.Equal(t, "s2", string(got))

	_, err = tab.Get(reftable.Size + 1)
	assert.ErrorIs(t, err, reftable.ErrInvalidReference)
}

func TestTable_OversizedEntryNotInserted(t *testing.T) {
	var tab reftable.Table
	tab.Add([]byte("kept"))

	oversized := make([]byte, reftable.MaxEntryLen+1)
	tab.Add(oversized)

	got, err := tab.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "kept", string(got))
}

func TestTable_Reset(t *testing.T) {
	var tab reftable.Table
	tab.Add([]byte("x"))
	tab.Clear()

	_, err := tab.Get(1)
	assert.ErrorIs(t, err, reftable.ErrInvalidReference)
}
