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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type workspace struct {
	dir    string
	config string
}

// newWorkspace lays out a remote archive with two granules of one day and
// a config pointing at it through the local protocol.
func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	pterm.DisableStyling()
	color.NoColor = true

	dir := t.TempDir()
	remote := filepath.Join(dir, "remote", "20240214")
	require.NoError(t, os.MkdirAll(remote, 0755))
	for _, name := range []string{"obs_202402141200.nc", "obs_202402141210.nc", "obs_202402141205.nc", "README"} {
		require.NoError(t, os.WriteFile(filepath.Join(remote, name), []byte(name), 0644))
	}

	config := filepath.Join(dir, "granules.yaml")
	content := `
definitions:
  - config_name: obs
    protocol: local
    file_source_pattern: ` + filepath.Join(dir, "remote", "%Y%m%d", "obs_%Y%m%d%H%M.nc") + `
    file_destination_pattern: ` + filepath.Join(dir, "local", "%Y", "obs_%Y%m%d%H%M.nc") + `
    time_step: "00:10:00"
`
	require.NoError(t, os.WriteFile(config, []byte(content), 0644))

	return &workspace{dir: dir, config: config}
}

func (w *workspace) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", w.config}, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestCheck(t *testing.T) {
	w := newWorkspace(t)

	out, _, err := w.run(t, "check", "--at", "2024-02-14T12:00")
	require.NoError(t, err)

	assert.Contains(t, out, filepath.Join(w.dir, "remote", "20240214", "obs_202402141200.nc"))
	assert.Contains(t, out, filepath.Join(w.dir, "local", "2024", "obs_202402141210.nc"))
	assert.NotContains(t, out, "obs_202402141205.nc", "off-grid granule must be filtered")
	assert.NotContains(t, out, "README")
}

func TestCheckNothingFound(t *testing.T) {
	w := newWorkspace(t)

	out, _, err := w.run(t, "check", "--at", "2024-02-15T12:00")
	require.NoError(t, err)
	assert.Contains(t, out, "no granules found")
}

func TestCheckRejectsConflictingModes(t *testing.T) {
	w := newWorkspace(t)

	_, _, err := w.run(t, "check", "--destination", "--new")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestCheckUnknownAcquisition(t *testing.T) {
	w := newWorkspace(t)

	_, _, err := w.run(t, "check", "-a", "radar", "--at", "2024-02-14T12:00")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "options: obs")
}

func TestFetch(t *testing.T) {
	w := newWorkspace(t)

	_, stderr, err := w.run(t, "fetch", "--at", "2024-02-14T12:00")
	require.NoError(t, err)
	assert.Contains(t, stderr, "obs: 2 copied")

	for _, name := range []string{"obs_202402141200.nc", "obs_202402141210.nc"} {
		data, err := os.ReadFile(filepath.Join(w.dir, "local", "2024", name))
		require.NoError(t, err)
		assert.Equal(t, name, string(data))
	}
	assert.NoFileExists(t, filepath.Join(w.dir, "local", "2024", "obs_202402141205.nc"))

	_, stderr, err = w.run(t, "fetch", "--at", "2024-02-14T12:00")
	require.NoError(t, err)
	assert.Contains(t, stderr, "obs: up to date")
	assert.Equal(t, 2, strings.Count(stderr, "present"))
	assert.Contains(t, stderr, "fetched 1 acquisitions")

	out, _, err := w.run(t, "check", "--destination", "--at", "2024-02-14T12:00")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(w.dir, "local", "2024", "obs_202402141200.nc"))
}

func TestAtKeepsWallClock(t *testing.T) {
	w := newWorkspace(t)

	// 12:00 at -13:00 is 01:00 UTC the next day; the directory stays 20240214
	out, _, err := w.run(t, "check", "--at", "2024-02-14T12:00:00-13:00")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(w.dir, "remote", "20240214", "obs_202402141200.nc"))
}

func TestFetchDryRun(t *testing.T) {
	w := newWorkspace(t)

	_, stderr, err := w.run(t, "fetch", "--dry-run", "--at", "2024-02-14T12:00")
	require.NoError(t, err)
	assert.Contains(t, stderr, "obs: 2 new granules")
	assert.NoDirExists(t, filepath.Join(w.dir, "local"))
}

func TestValidate(t *testing.T) {
	w := newWorkspace(t)
	good := filepath.Join(w.dir, "remote", "20240214", "obs_202402141210.nc")

	out, _, err := w.run(t, "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "2024-02-14T12:10:00Z")

	_, _, err = w.run(t, "validate", good, filepath.Join(w.dir, "remote", "20240214", "obs_202402141205.nc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 names")
}

func TestMissingConfig(t *testing.T) {
	w := &workspace{config: filepath.Join(t.TempDir(), "missing.yaml")}

	_, _, err := w.run(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestBadTime(t *testing.T) {
	w := newWorkspace(t)

	_, _, err := w.run(t, "fetch", "--at", "yesterday")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized time")
}

func TestVersion(t *testing.T) {
	w := newWorkspace(t)

	out, _, err := w.run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "granulerc version info")

	out, _, err = w.run(t, "version", "--json")
	require.NoError(t, err)
	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.NotEmpty(t, info.GoVersion)
}
