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

package fetch_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/granulerc/gen/mockery"
	"github.com/walteh/granulerc/pkg/access"
	"github.com/walteh/granulerc/pkg/config"
	"github.com/walteh/granulerc/pkg/fetch"
	"github.com/walteh/granulerc/pkg/granule"
	"github.com/walteh/granulerc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const (
	remoteA = "/remote/goes/OR_ABI-L1b-RadF-M6C13_G16_s20240451200.nc"
	remoteB = "/remote/goes/OR_ABI-L1b-RadF-M6C13_G16_s20240451210.nc"
	remoteC = "/remote/goes/OR_ABI-L1b-RadF-M6C13_G16_s20240451220.nc"
	localA  = "/data/goes/2024/0214/C13_202402141200.nc"
	localB  = "/data/goes/2024/0214/C13_202402141210.nc"
	localC  = "/data/goes/2024/0214/C13_202402141220.nc"
)

var at = time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)

func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	console := &bytes.Buffer{}
	ctx := logger.WithContext(context.Background())
	return log.NewContext(ctx, log.New(console)), console
}

func goesFilter(t *testing.T, layer access.Layer) *granule.Filter {
	t.Helper()
	acq, err := config.Definition{
		ConfigName:             "goes-c13",
		FileSourcePattern:      "/remote/goes/OR_ABI-L1b-RadF-M6C13_G16_s%Y%j%H%M.nc",
		FileDestinationPattern: "/data/goes/%Y/%m%d/C13_%Y%m%d%H%M.nc",
		TimeStep:               "00:10:00",
	}.Resolve()
	require.NoError(t, err)

	f, err := granule.New(acq, granule.WithAccessLayer(layer))
	require.NoError(t, err)
	return f
}

func memoryLayer(t *testing.T) (*access.FsLayer, afero.Fs) {
	t.Helper()
	src := afero.NewMemMapFs()
	local := afero.NewMemMapFs()
	for _, name := range []string{remoteA, remoteB, remoteC} {
		require.NoError(t, afero.WriteFile(src, name, []byte(name), 0o644))
	}
	return access.NewFsLayer(src, local), local
}

func TestFetchCopiesNewGranules(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctx, console := testContext(t)
	layer, local := memoryLayer(t)
	require.NoError(t, afero.WriteFile(local, localB, []byte("already here"), 0o644))

	op := fetch.New(goesFilter(t, layer), fetch.WithTime(at), fetch.WithConcurrency(2))
	result, err := op.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, []fetch.Transfer{
		{Source: remoteA, Destination: localA},
		{Source: remoteC, Destination: localC},
	}, result.Copied)
	assert.Empty(t, result.Failed)
	assert.Equal(t, []fetch.Transfer{{Source: remoteB, Destination: localB}}, result.Present)
	assert.Equal(t, 2, result.Total())
	assert.Equal(t, "✨ goes-c13: 2 copied", result.Summary())
	assert.Same(t, result, op.Last())

	data, err := afero.ReadFile(local, localC)
	require.NoError(t, err)
	assert.Equal(t, remoteC, string(data))

	data, err = afero.ReadFile(local, localB)
	require.NoError(t, err)
	assert.Equal(t, "already here", string(data), "present granules are not copied again")

	assert.Contains(t, console.String(), "[checking goes-c13]")
	assert.Contains(t, console.String(), "→ "+localA)
	assert.Regexp(t, `• OR_ABI-L1b-RadF-M6C13_G16_s20240451210\.nc\s+present`, console.String())

	result, err = op.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total())
	assert.Len(t, result.Present, 3)
	assert.Equal(t, "👍 goes-c13: up to date", result.Summary())
}

func TestAsyncFetchesKeepSeparateTotals(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	ctx, console := testContext(t)

	fetches := make([]*fetch.Fetch, 0, 3)
	ops := make([]fetch.Operation, 0, 3)
	for i := 0; i < 3; i++ {
		layer, local := memoryLayer(t)
		for _, dst := range []string{localA, localB, localC}[:i] {
			require.NoError(t, afero.WriteFile(local, dst, []byte("x"), 0o644))
		}
		op := fetch.New(goesFilter(t, layer), fetch.WithTime(at))
		fetches = append(fetches, op)
		ops = append(ops, op)
	}

	require.NoError(t, fetch.NewRunner(true).RunAll(ctx, ops...))

	for i, op := range fetches {
		require.NotNil(t, op.Last())
		assert.Len(t, op.Last().Copied, 3-i)
		assert.Len(t, op.Last().Present, i)
	}
	assert.Equal(t, 3, strings.Count(console.String(), "[checking goes-c13]"))
}

func TestFetchDryRun(t *testing.T) {
	ctx, _ := testContext(t)
	layer, local := memoryLayer(t)

	result, err := fetch.New(goesFilter(t, layer), fetch.WithTime(at), fetch.WithDryRun(true)).Run(ctx)
	require.NoError(t, err)
	assert.Len(t, result.Pending, 3)
	assert.Empty(t, result.Copied)
	assert.Equal(t, "🔍 goes-c13: 3 new granules", result.Summary())

	exists, err := afero.DirExists(local, "/data/goes")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFetchReportsFailures(t *testing.T) {
	ctx, _ := testContext(t)
	boom := errors.New("disk full")

	layer := mockery.NewMockLayer_access(t)
	layer.EXPECT().ListSourceDirectory(mock.Anything, "/remote/goes").Return([]string{remoteA, remoteB}, nil)
	layer.EXPECT().CheckForLocalFile(mock.Anything, mock.Anything).Return(false, nil)
	layer.EXPECT().FileCopy(mock.Anything, remoteA, localA).Return(nil)
	layer.EXPECT().FileCopy(mock.Anything, remoteB, localB).Return(boom)

	result, err := fetch.New(goesFilter(t, layer), fetch.WithTime(at), fetch.WithConcurrency(1)).Run(ctx)
	require.ErrorIs(t, err, fetch.ErrIncomplete)
	assert.Contains(t, err.Error(), "disk full")
	require.NotNil(t, result)
	assert.Len(t, result.Copied, 1)
	require.Len(t, result.Failed, 1)
	assert.ErrorIs(t, result.Failed[0].Err, boom)
	assert.Equal(t, "❌ goes-c13: 1 copied, 1 failed", result.Summary())
}

func TestFetchCheckError(t *testing.T) {
	ctx, _ := testContext(t)
	boom := errors.New("host unreachable")

	layer := mockery.NewMockLayer_access(t)
	layer.EXPECT().ListSourceDirectory(mock.Anything, mock.Anything).Return(nil, boom)

	op := fetch.New(goesFilter(t, layer), fetch.WithTime(at))
	err := op.Execute(ctx)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, op.Last())
}

func TestFormatProgress(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{0, 4, "⏳ Progress: 0/4 (0%)"},
		{1, 4, "⏳ Progress: 1/4 (25%)"},
		{4, 4, "✅ Progress: 4/4 (100%)"},
		{0, 0, "✅ Progress: 0/0 (0%)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fetch.FormatProgress(tt.current, tt.total))
	}
}
