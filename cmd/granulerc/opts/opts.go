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

package opts

import (
	"context"
	"slices"
	"strings"

	"github.com/walteh/granulerc/pkg/config"
	"github.com/walteh/granulerc/pkg/granule"
	"github.com/walteh/granulerc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// RootOpts holds state shared by every command.
type RootOpts struct {
	ConfigFile string
	Debug      bool
	Console    *log.Logger
	Registry   *granule.Registry
}

// 📚 Load reads the config file and registers a filter per acquisition.
func (o *RootOpts) Load(ctx context.Context) error {
	file, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	acqs, err := file.Acquisitions()
	if err != nil {
		return errors.Errorf("resolving acquisitions: %w", err)
	}

	reg := granule.NewRegistry()
	if _, err := reg.AddAll(ctx, acqs); err != nil {
		return errors.Errorf("building filters: %w", err)
	}
	o.Registry = reg
	return nil
}

// 🔍 Select returns the filters named in names, or all filters when names is empty.
func (o *RootOpts) Select(names []string) ([]*granule.Filter, error) {
	if o.Registry == nil {
		return nil, errors.New("config not loaded")
	}
	if len(names) == 0 {
		return o.Registry.Filters(), nil
	}

	out := make([]*granule.Filter, 0, len(names))
	for _, name := range names {
		f, ok := o.Registry.Get(name)
		if !ok {
			known := make([]string, 0, o.Registry.Len())
			for _, f := range o.Registry.Filters() {
				known = append(known, f.Name())
			}
			slices.Sort(known)
			return nil, errors.Errorf("unknown acquisition %q, options: %s", name, strings.Join(known, ", "))
		}
		out = append(out, f)
	}
	return out, nil
}
