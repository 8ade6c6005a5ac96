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

package granule

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/walteh/granulerc/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 📚 Registry builds filters with sequential identifiers and refuses two
// acquisitions with the same name. Acquisitions with the same content under
// different names are accepted with a warning.
type Registry struct {
	mu      sync.Mutex
	next    int
	opts    []Option
	filters []*Filter
	byName  map[string]*Filter
	byHash  map[string][]string
}

// NewRegistry creates a registry applying opts to every filter it builds.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		opts:   opts,
		byName: map[string]*Filter{},
		byHash: map[string][]string{},
	}
}

// 📝 Add builds and registers a filter for acq. Per-call opts apply after the
// registry defaults; the identifier is always assigned by the registry.
func (r *Registry) Add(ctx context.Context, acq *config.Acquisition, opts ...Option) (*Filter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[acq.Name]; ok {
		return nil, errors.Errorf("%w: name %q", ErrDuplicateDefinition, acq.Name)
	}
	hash := acq.Hash()

	all := make([]Option, 0, len(r.opts)+len(opts)+1)
	all = append(all, r.opts...)
	all = append(all, opts...)
	all = append(all, WithID(r.next+1))

	f, err := New(acq, all...)
	if err != nil {
		return nil, err
	}

	r.next++
	r.filters = append(r.filters, f)
	r.byName[acq.Name] = f
	if others := r.byHash[hash]; len(others) > 0 {
		zerolog.Ctx(ctx).Warn().
			Str("acquisition", acq.Name).
			Strs("same_as", others).
			Msg("acquisition duplicates the content of another")
	}
	r.byHash[hash] = append(r.byHash[hash], acq.Name)
	return f, nil
}

// AddAll registers every acquisition, stopping at the first failure.
func (r *Registry) AddAll(ctx context.Context, acqs []*config.Acquisition, opts ...Option) ([]*Filter, error) {
	out := make([]*Filter, 0, len(acqs))
	for _, acq := range acqs {
		f, err := r.Add(ctx, acq, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// Get returns the filter registered under name.
func (r *Registry) Get(name string) (*Filter, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byName[name]
	return f, ok
}

// Filters returns the registered filters in registration order.
func (r *Registry) Filters() []*Filter {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Filter, len(r.filters))
	copy(out, r.filters)
	return out
}

// Len returns the number of registered filters.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.filters)
}
