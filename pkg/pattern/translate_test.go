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

package pattern

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	src := MustCompileSpec("/remote/msg/"+msgPattern, msgSubsets)
	dst := MustCompileSpec("/local/%Y/%m/%d/{0}/ch{1}_%H%M.nat", msgSubsets)

	got, err := Translate("/remote/msg/H-000-MSG3__-MSG3________-WV_073___-000006___-201401231355", src, dst)
	require.NoError(t, err)
	assert.Equal(t, "/local/2014/01/23/WV_073/ch6_1355.nat", got)

	back, err := Translate(got, dst, src)
	require.NoError(t, err)
	assert.Equal(t, "/remote/msg/H-000-MSG3__-MSG3________-WV_073___-000006___-201401231355", back)
}

func TestTranslateRoundTrip(t *testing.T) {
	src := MustCompileSpec(msgPattern, msgSubsets)
	dst := MustCompileSpec("/archive/{0}/%Y%m%d/{1}-%H%M.bin", msgSubsets)

	names, err := src.FilenamesFromTime(time.Date(2014, 1, 23, 13, 55, 0, 0, time.UTC))
	require.NoError(t, err)

	forward, err := TranslateAll(names, src, dst, false)
	require.NoError(t, err)
	require.Len(t, forward, len(names))

	backward, err := TranslateAll(forward, src, dst, true)
	require.NoError(t, err)
	assert.Equal(t, names, backward)

	seen := map[string]bool{}
	for _, f := range forward {
		assert.False(t, seen[f], "translation must be injective: %s", f)
		seen[f] = true
	}
}

func TestTranslateWildcards(t *testing.T) {
	src, err := Compile("/in/{2}/img_%Y%m%d%H%M.png", nil)
	require.NoError(t, err)
	dst, err := Compile("/out/%Y/{2}_%m%d%H%M.png", nil)
	require.NoError(t, err)

	got, err := Translate("/in/station7/img_201401231355.png", src, dst)
	require.NoError(t, err)
	assert.Equal(t, "/out/2014/station7_01231355.png", got)

	orphan, err := Compile("/out/{3}/%Y%m%d%H%M.png", nil)
	require.NoError(t, err)
	_, err = Translate("/in/station7/img_201401231355.png", src, orphan)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranslation)
}

func TestTranslateErrors(t *testing.T) {
	plain := MustCompileSpec("avhrr_%Y%m%d_%H%M00.bz2", "")
	grouped := MustCompileSpec("/out/{0}/avhrr_%Y%m%d_%H%M.bz2", "{A:{1}}")

	tests := []struct {
		name string
		in   string
		from *Pattern
		to   *Pattern
	}{
		{name: "source_does_not_match", in: "nope", from: plain, to: grouped},
		{name: "group_missing_in_source", in: "avhrr_20140225_133400.bz2", from: plain, to: grouped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Translate(tt.in, tt.from, tt.to)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTranslation)
			assert.Empty(t, out)
		})
	}
}

func TestTranslateAllWithoutDestination(t *testing.T) {
	src := MustCompileSpec(msgPattern, msgSubsets)

	got, err := TranslateAll([]string{"x"}, src, nil, false)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = TranslateAll([]string{"x"}, nil, src, true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTranslateAllStopsOnFirstError(t *testing.T) {
	src := MustCompileSpec(msgPattern, msgSubsets)
	dst := MustCompileSpec("/x/{0}_{1}_%Y%m%d%H%M", msgSubsets)

	got, err := TranslateAll([]string{
		"H-000-MSG3__-MSG3________-IR_108___-000001___-201401231355",
		"blabla",
	}, src, dst, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTranslation)
	assert.Nil(t, got)
}
