// Copyright 2025 walteh LLC
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

package bidict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, pairs ...[2]string) *BiDict[string, string] {
	t.Helper()
	d := New[string, string]()
	for _, p := range pairs {
		require.NoError(t, d.Insert(p[0], p[1]))
	}
	return d
}

func TestRemoveByKeyIsSymmetric(t *testing.T) {
	d := build(t, [2]string{"a", "x"}, [2]string{"b", "y"})

	require.NoError(t, d.RemoveByKey("a"))

	assert.Equal(t, []string{"b"}, d.Keys())
	v, err := d.GetByKey("b")
	require.NoError(t, err)
	assert.Equal(t, "y", v)

	_, err = d.GetByValue("x")
	assert.ErrorIs(t, err, ErrValueNotFound)
	_, err = d.GetByKey("a")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, d.Insert("a", "x"), "re-inserting a removed pair must succeed")
	assert.Equal(t, []string{"b", "a"}, d.Keys())
}

func TestRemoveByValue(t *testing.T) {
	d := build(t, [2]string{"a", "x"}, [2]string{"b", "y"})

	require.NoError(t, d.RemoveByValue("y"))
	assert.False(t, d.Has("b"))
	assert.False(t, d.HasValue("y"))
	assert.Equal(t, 1, d.Len())

	assert.ErrorIs(t, d.RemoveByValue("y"), ErrValueNotFound)
	assert.ErrorIs(t, d.RemoveByKey("b"), ErrKeyNotFound)
}

func TestInsertConflicts(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{name: "identical_pair_is_noop", key: "a", value: "x"},
		{name: "key_taken", key: "a", value: "z", wantErr: ErrDuplicateKey},
		{name: "value_taken", key: "c", value: "y", wantErr: ErrDuplicateValue},
		{name: "fresh_pair", key: "c", value: "z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := build(t, [2]string{"a", "x"}, [2]string{"b", "y"})
			before := d.String()

			err := d.Insert(tt.key, tt.value)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, d.String(), "failed insert must not mutate")
				return
			}
			require.NoError(t, err)
			got, err := d.GetByValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.key, got)
		})
	}
}

func TestUnpairedKeys(t *testing.T) {
	d := New[string, string]()
	require.NoError(t, d.InsertKey("a"))
	require.NoError(t, d.InsertKey("b"))
	require.NoError(t, d.InsertKey("a"))

	assert.Equal(t, []string{"a", "b"}, d.Keys())
	_, err := d.GetByKey("a")
	assert.ErrorIs(t, err, ErrNoValue)
	assert.Empty(t, d.Values())

	require.NoError(t, d.Insert("a", "x"))
	v, err := d.GetByKey("a")
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	assert.Equal(t, []string{"a", "b"}, d.Keys(), "pairing keeps insertion position")

	assert.ErrorIs(t, d.InsertKey("a"), ErrDuplicateKey)

	require.NoError(t, d.RemoveByKey("b"))
	assert.Equal(t, "{a: x}", d.String())
}

func TestIterationOrder(t *testing.T) {
	d := build(t, [2]string{"c", "3"}, [2]string{"a", "1"}, [2]string{"b", "2"})

	var keys, values []string
	for k, v := range d.All() {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal(t, []string{"c", "a", "b"}, keys)
	assert.Equal(t, []string{"3", "1", "2"}, values)
	assert.Equal(t, values, d.Values())
}

func TestIterationAllowsRemoval(t *testing.T) {
	d := build(t, [2]string{"a", "1"}, [2]string{"b", "2"}, [2]string{"c", "3"})

	for k := range d.All() {
		if k != "b" {
			require.NoError(t, d.RemoveByKey(k))
		}
	}
	assert.Equal(t, []string{"b"}, d.Keys())
}

func TestCloneAndInverse(t *testing.T) {
	d := build(t, [2]string{"a", "x"}, [2]string{"b", "y"})
	require.NoError(t, d.InsertKey("c"))

	c := d.Clone()
	require.NoError(t, c.RemoveByKey("a"))
	assert.True(t, d.Has("a"), "clone must be independent")

	inv := d.Inverse()
	assert.Equal(t, []string{"x", "y"}, inv.Keys())
	k, err := inv.GetByKey("y")
	require.NoError(t, err)
	assert.Equal(t, "b", k)
	got, err := inv.GetByValue("a")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}
