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

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*File, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📚 File holds every acquisition definition of one config file.
type File struct {
	Definitions []Definition `json:"definitions" yaml:"definitions" hcl:"definition,block"`
}

// Acquisitions resolves every definition, failing on the first invalid one
// or on a repeated config_name.
func (f *File) Acquisitions() ([]*Acquisition, error) {
	seen := map[string]bool{}
	out := make([]*Acquisition, 0, len(f.Definitions))
	for i, d := range f.Definitions {
		a, err := d.Resolve()
		if err != nil {
			return nil, errors.Errorf("definition %d: %w", i, err)
		}
		if seen[a.Name] {
			return nil, errors.Errorf("%w: config_name %q is used twice", ErrInvalid, a.Name)
		}
		seen[a.Name] = true
		out = append(out, a)
	}
	return out, nil
}

// 🎯 Load reads, parses and validates the configuration at path. The format
// is chosen by extension; a ".granulerc" file may be YAML or HCL.
func Load(ctx context.Context, path string) (*File, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := parse(ctx, path, data)
	if err != nil {
		return nil, err
	}

	if _, err := cfg.Acquisitions(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Int("definitions", len(cfg.Definitions)).Msg("configuration loaded")
	return cfg, nil
}

func parse(ctx context.Context, path string, data []byte) (*File, error) {
	if strings.ToLower(filepath.Ext(path)) == ".granulerc" || filepath.Base(path) == ".granulerc" {
		cfg, yamlErr := (&YAMLParser{}).Parse(ctx, data)
		if yamlErr == nil {
			return cfg, nil
		}
		cfg, hclErr := (&HCLParser{}).Parse(ctx, data)
		if hclErr == nil {
			return cfg, nil
		}
		return nil, errors.Errorf("parsing %s as YAML (%s) or HCL: %w", path, yamlErr.Error(), hclErr)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
