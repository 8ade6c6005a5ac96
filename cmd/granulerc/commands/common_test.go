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

package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAt(t *testing.T) {
	want := time.Date(2024, 2, 14, 12, 10, 0, 0, time.UTC)

	for _, in := range []string{
		"2024-02-14T12:10:00Z",
		"2024-02-14T12:10:00+01:00",
		"2024-02-14T12:10:00-11:00",
		"2024-02-14T12:10",
		"2024-02-14 12:10",
	} {
		t.Run(in, func(t *testing.T) {
			got, err := parseAt(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got))
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	got, err := parseAt("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), got, time.Minute)

	_, err = parseAt("14/02/2024")
	assert.Error(t, err)
}
