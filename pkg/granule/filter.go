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
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/granulerc/pkg/access"
	"github.com/walteh/granulerc/pkg/config"
	"github.com/walteh/granulerc/pkg/pattern"
	"github.com/walteh/granulerc/pkg/timegrid"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNoDisplay is returned by Show when the sampling predicate cannot render swaths.
	ErrNoDisplay = errors.New("no display capability")
	// ErrNoAccessLayer is returned by check operations on a filter without an access layer.
	ErrNoAccessLayer = errors.New("no access layer")
	// ErrNoDestination is returned by operations that need a destination pattern.
	ErrNoDestination = errors.New("no destination pattern")
	// ErrDuplicateDefinition is returned when a registry already holds an acquisition.
	ErrDuplicateDefinition = errors.New("duplicate acquisition definition")
)

// 🎯 Filter validates and pairs granules of one acquisition.
type Filter struct {
	id          int
	acq         *config.Acquisition
	source      *pattern.Pattern
	destination *pattern.Pattern
	sampler     SamplingPredicate
	layer       access.Layer
	now         func() time.Time
}

// Option configures a Filter.
type Option func(*Filter)

// WithID sets the identifier reported by the filter.
func WithID(id int) Option {
	return func(f *Filter) { f.id = id }
}

// WithSamplingPredicate sets the predicate consulted by Validate.
func WithSamplingPredicate(p SamplingPredicate) Option {
	return func(f *Filter) { f.sampler = p }
}

// WithAccessLayer sets the layer used by the check operations.
func WithAccessLayer(l access.Layer) Option {
	return func(f *Filter) { f.layer = l }
}

// WithNowFunc sets the clock used by Run.
func WithNowFunc(now func() time.Time) Option {
	return func(f *Filter) { f.now = now }
}

// 🏗️ New compiles the patterns of acq. Without WithAccessLayer, the layer
// registered for the acquisition's protocol is used when one is configured.
func New(acq *config.Acquisition, opts ...Option) (*Filter, error) {
	f := &Filter{acq: acq, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(f)
	}

	src, err := pattern.Compile(acq.SourcePattern, acq.Subsets)
	if err != nil {
		return nil, errors.Errorf("%s: file_source_pattern: %w", acq.Name, err)
	}
	f.source = src

	if acq.DestinationPattern != "" {
		dst, err := pattern.Compile(acq.DestinationPattern, acq.Subsets)
		if err != nil {
			return nil, errors.Errorf("%s: file_destination_pattern: %w", acq.Name, err)
		}
		f.destination = dst
	}

	if f.layer == nil && acq.Protocol != config.ProtocolNone {
		layer, err := access.New(context.Background(), acq.Protocol, acq.Definition.Server)
		if err != nil {
			return nil, errors.Errorf("%s: %w", acq.Name, err)
		}
		f.layer = layer
	}

	return f, nil
}

// ID returns the identifier given at construction.
func (f *Filter) ID() int { return f.id }

// Name returns the acquisition name.
func (f *Filter) Name() string { return f.acq.Name }

// Acquisition returns the resolved definition.
func (f *Filter) Acquisition() *config.Acquisition { return f.acq }

// Source returns the compiled source pattern.
func (f *Filter) Source() *pattern.Pattern { return f.source }

// Destination returns the compiled destination pattern, or nil.
func (f *Filter) Destination() *pattern.Pattern { return f.destination }

// Layer returns the access layer, or nil.
func (f *Filter) Layer() access.Layer { return f.layer }

// ✅ Validate reports whether name is a wanted granule: it matches the source
// pattern, lies on the time grid and is accepted by the sampling predicate.
// Only a failing predicate produces an error.
func (f *Filter) Validate(name string) (bool, error) {
	if !f.source.Validate(name) {
		return false, nil
	}

	t, err := f.source.TimeFromFilename(name)
	if err != nil {
		return false, nil
	}

	if !timegrid.OnGrid(t, f.acq.TimeStep, f.acq.TimeStepOffset) {
		return false, nil
	}

	if f.sampler == nil {
		return true, nil
	}

	ok, err := f.sampler.DoesSwathSampleAOI(f.swathStart(t), f.acq.TimeStep)
	if err != nil {
		return false, errors.Errorf("sampling %s: %w", name, err)
	}
	return ok, nil
}

// swathStart shifts a granule timestamp to the start of its swath.
// time_stamp_alignment is the position of the timestamp within the step,
// 0 for the start and 1 for the end.
func (f *Filter) swathStart(t time.Time) time.Time {
	if f.acq.TimeStampAlignment == 0 {
		return t
	}
	return t.Add(-time.Duration(f.acq.TimeStampAlignment * float64(f.acq.TimeStep)))
}

// 🔍 Filter keeps the valid names in input order and pairs them with their
// destination names. Without a destination pattern every key is unpaired.
func (f *Filter) Filter(names []string) (*Pairs, error) {
	var kept []string
	for _, name := range names {
		ok, err := f.Validate(name)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, name)
		}
	}

	translated, err := f.Translate(kept, false)
	if err != nil {
		return nil, err
	}

	pairs := newPairs(f, false)
	for i, name := range kept {
		if translated == nil {
			err = pairs.InsertKey(name)
		} else {
			err = pairs.Insert(name, translated[i])
		}
		if err != nil {
			return nil, errors.Errorf("pairing %s: %w", name, err)
		}
	}
	return pairs, nil
}

// 🔄 Translate maps source names to destination names, or the reverse. It
// returns nil without error when no destination pattern is configured.
func (f *Filter) Translate(names []string, reverse bool) ([]string, error) {
	if f.destination == nil {
		return nil, nil
	}
	return pattern.TranslateAll(names, f.source, f.destination, reverse)
}

// 📂 CheckSource lists the source directories for t and filters their files.
func (f *Filter) CheckSource(ctx context.Context, t time.Time) (*Pairs, error) {
	if f.layer == nil {
		return nil, errors.Errorf("%w: %s", ErrNoAccessLayer, f.Name())
	}
	logger := zerolog.Ctx(ctx).With().Str("acquisition", f.Name()).Logger()

	var files []string
	for _, dir := range f.source.Directories(t) {
		listed, err := f.layer.ListSourceDirectory(ctx, dir)
		if err != nil {
			return nil, errors.Errorf("listing source %s: %w", dir, err)
		}
		logger.Debug().Str("dir", dir).Int("files", len(listed)).Msg("listed source directory")
		files = append(files, listed...)
	}

	pairs, err := f.Filter(files)
	if err != nil {
		return nil, err
	}
	logger.Debug().Time("at", t).Int("granules", pairs.Len()).Msg("checked source")
	return pairs, nil
}

// 📂 CheckDestination lists the destination directories for t and pairs every
// file valid under the destination pattern with its source name.
func (f *Filter) CheckDestination(ctx context.Context, t time.Time) (*Pairs, error) {
	if f.layer == nil {
		return nil, errors.Errorf("%w: %s", ErrNoAccessLayer, f.Name())
	}
	if f.destination == nil {
		return nil, errors.Errorf("%w: %s", ErrNoDestination, f.Name())
	}
	logger := zerolog.Ctx(ctx).With().Str("acquisition", f.Name()).Logger()

	var files []string
	for _, dir := range f.destination.Directories(t) {
		listed, err := f.layer.ListLocalDirectory(ctx, dir)
		if err != nil {
			return nil, errors.Errorf("listing destination %s: %w", dir, err)
		}
		logger.Debug().Str("dir", dir).Int("files", len(listed)).Msg("listed destination directory")
		for _, name := range listed {
			if f.destination.Validate(name) {
				files = append(files, name)
			}
		}
	}

	sources, err := f.Translate(files, true)
	if err != nil {
		return nil, err
	}

	pairs := newPairs(f, true)
	for i, name := range files {
		if err := pairs.Insert(name, sources[i]); err != nil {
			return nil, errors.Errorf("pairing %s: %w", name, err)
		}
	}
	return pairs, nil
}

// 🆕 CheckNew returns the CheckSource pairs whose destination file is not
// present yet.
func (f *Filter) CheckNew(ctx context.Context, t time.Time) (*Pairs, error) {
	if f.destination == nil {
		return nil, errors.Errorf("%w: %s", ErrNoDestination, f.Name())
	}

	pairs, err := f.CheckSource(ctx, t)
	if err != nil {
		return nil, err
	}

	if _, err := f.RemovePresent(ctx, pairs); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().Str("acquisition", f.Name()).Int("new", pairs.Len()).Msg("checked for new granules")
	return pairs, nil
}

// 🧹 RemovePresent removes from pairs every pair whose destination file is
// present locally and returns the removed pairs. Pairs without a
// destination are kept.
func (f *Filter) RemovePresent(ctx context.Context, pairs *Pairs) (*Pairs, error) {
	if f.layer == nil {
		return nil, errors.Errorf("%w: %s", ErrNoAccessLayer, f.Name())
	}
	if f.destination == nil {
		return nil, errors.Errorf("%w: %s", ErrNoDestination, f.Name())
	}

	present := newPairs(f, pairs.Reverse())
	for key, value := range pairs.All() {
		dst := value
		if pairs.Reverse() {
			dst = key
		}
		if dst == "" {
			continue
		}
		exists, err := f.layer.CheckForLocalFile(ctx, dst)
		if err != nil {
			return nil, errors.Errorf("checking %s: %w", dst, err)
		}
		if !exists {
			continue
		}
		if err := pairs.RemoveByKey(key); err != nil {
			return nil, err
		}
		if err := present.Insert(key, value); err != nil {
			return nil, errors.Errorf("pairing %s: %w", key, err)
		}
	}
	return present, nil
}

// ▶️ Run checks the source at the current time when no names are given, and
// filters names otherwise.
func (f *Filter) Run(ctx context.Context, names ...string) (*Pairs, error) {
	if len(names) == 0 {
		return f.CheckSource(ctx, f.now())
	}
	return f.Filter(names)
}

// 🖼️ Show renders the swaths of names through the predicate's Display capability.
func (f *Filter) Show(ctx context.Context, names []string) error {
	d, ok := f.sampler.(Display)
	if !ok {
		return errors.Errorf("%w: %s", ErrNoDisplay, f.Name())
	}

	starts := make([]time.Time, 0, len(names))
	for _, name := range names {
		t, err := f.source.TimeFromFilename(name)
		if err != nil {
			return err
		}
		starts = append(starts, f.swathStart(t))
	}
	zerolog.Ctx(ctx).Debug().Str("acquisition", f.Name()).Int("swaths", len(starts)).Msg("showing swaths")
	return d.ShowSwath(starts, f.acq.TimeStep)
}

// Get returns the configuration value of key. The key "id" returns the
// filter identifier.
func (f *Filter) Get(key string) (string, error) {
	if key == "id" {
		return strconv.Itoa(f.id), nil
	}
	return f.acq.Get(key)
}

func (f *Filter) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "GranuleFilter:\n   id: %d\n", f.id)
	for _, line := range strings.Split(strings.TrimSuffix(f.acq.Definition.String(), "\n"), "\n") {
		fmt.Fprintf(&b, "   %s\n", line)
	}
	return b.String()
}
