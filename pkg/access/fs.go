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

package access

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/granulerc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(config.ProtocolLocal, func(ctx context.Context, server string) (Layer, error) {
		fs := afero.NewOsFs()
		return NewFsLayer(fs, fs), nil
	})
	Register(config.ProtocolMemory, func(ctx context.Context, server string) (Layer, error) {
		fs := afero.NewMemMapFs()
		return NewFsLayer(fs, fs), nil
	})
}

// 💾 FsLayer implements Layer over two afero filesystems.
type FsLayer struct {
	source afero.Fs
	local  afero.Fs
}

// NewFsLayer creates a layer reading from source and writing to local.
func NewFsLayer(source, local afero.Fs) *FsLayer {
	return &FsLayer{source: source, local: local}
}

// Source returns the source filesystem.
func (l *FsLayer) Source() afero.Fs { return l.source }

// Local returns the local filesystem.
func (l *FsLayer) Local() afero.Fs { return l.local }

func (l *FsLayer) ListSourceDirectory(ctx context.Context, dir string) ([]string, error) {
	return listDirectory(ctx, l.source, dir)
}

func (l *FsLayer) ListLocalDirectory(ctx context.Context, dir string) ([]string, error) {
	return listDirectory(ctx, l.local, dir)
}

func (l *FsLayer) CheckForLocalFile(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := afero.Exists(l.local, path)
	if err != nil {
		return false, errors.Errorf("checking %s: %w", path, err)
	}
	return ok, nil
}

// 📥 FileCopy writes to a temporary file beside destination and renames it
// into place, so readers never observe a partial granule.
func (l *FsLayer) FileCopy(ctx context.Context, source, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := l.source.Open(source)
	if err != nil {
		return errors.Errorf("opening source %s: %w", source, err)
	}
	defer in.Close()

	dir := filepath.Dir(destination)
	if err := l.local.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(l.local, dir, "."+filepath.Base(destination)+".*.part")
	if err != nil {
		return errors.Errorf("creating temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		_ = l.local.Remove(tmpName)
		return errors.Errorf("copying %s: %w", source, err)
	}
	if err := tmp.Close(); err != nil {
		_ = l.local.Remove(tmpName)
		return errors.Errorf("closing temporary file: %w", err)
	}
	if err := l.local.Rename(tmpName, destination); err != nil {
		_ = l.local.Remove(tmpName)
		return errors.Errorf("renaming into %s: %w", destination, err)
	}

	zerolog.Ctx(ctx).Debug().Str("source", source).Str("destination", destination).Msg("copied granule")
	return nil
}

// listDirectory lists the regular files of dir. A dir holding glob
// metacharacters is expanded first. Missing directories list as empty.
func listDirectory(ctx context.Context, fs afero.Fs, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dirs := []string{dir}
	if strings.ContainsAny(dir, "*?[{") {
		expanded, err := expandGlob(fs, dir)
		if err != nil {
			return nil, err
		}
		dirs = expanded
	}

	var files []string
	for _, d := range dirs {
		infos, err := afero.ReadDir(fs, d)
		if errors.Is(err, os.ErrNotExist) {
			zerolog.Ctx(ctx).Debug().Str("dir", d).Msg("directory does not exist")
			continue
		}
		if err != nil {
			return nil, errors.Errorf("listing %s: %w", d, err)
		}
		for _, info := range infos {
			if info.Mode().IsRegular() {
				files = append(files, joinDir(d, info.Name()))
			}
		}
	}

	zerolog.Ctx(ctx).Debug().Str("dir", dir).Int("files", len(files)).Msg("listed directory")
	return files, nil
}

// joinDir appends name to dir without cleaning dir, so listed paths keep the
// prefix the pattern was written with. "." lists bare names.
func joinDir(dir, name string) string {
	if dir == "." {
		return name
	}
	return strings.TrimSuffix(dir, "/") + "/" + name
}

// expandGlob returns the directories matching pattern, sorted.
func expandGlob(fs afero.Fs, pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))

	exists, err := afero.DirExists(fs, base)
	if err != nil {
		return nil, errors.Errorf("checking %s: %w", base, err)
	}
	if !exists {
		return nil, nil
	}

	matches, err := doublestar.Glob(afero.NewIOFS(afero.NewBasePathFs(fs, base)), rest)
	if err != nil {
		return nil, errors.Errorf("expanding %s: %w", pattern, err)
	}

	var dirs []string
	for _, m := range matches {
		full := joinDir(base, m)
		if isDir, err := afero.IsDir(fs, full); err == nil && isDir {
			dirs = append(dirs, full)
		}
	}
	slices.Sort(dirs)
	return dirs, nil
}
