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

// Package fetch copies new granules of an acquisition into their destination.
package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/granulerc/pkg/granule"
	"github.com/walteh/granulerc/pkg/log"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ErrIncomplete is returned when at least one granule failed to copy.
var ErrIncomplete = errors.New("fetch incomplete")

// DefaultConcurrency bounds parallel copies when no limit is configured.
const DefaultConcurrency = 4

// 🎯 Operation is a unit of work executed by a Runner.
type Operation interface {
	Execute(ctx context.Context) error
}

// 📦 Transfer is one source to destination copy.
type Transfer struct {
	Source      string
	Destination string
	Err         error
}

// 📊 Result reports what a fetch did.
type Result struct {
	Acquisition string
	At          time.Time
	Copied      []Transfer
	Failed      []Transfer
	// Pending lists the transfers a dry run would have made.
	Pending []Transfer
	// Present lists the granules already in the destination.
	Present []Transfer
}

// Total returns the number of granules the fetch copied, failed to copy or
// would have copied.
func (r *Result) Total() int {
	return len(r.Copied) + len(r.Failed) + len(r.Pending)
}

// 🛰️ Fetch copies every granule CheckNew reports for one filter.
type Fetch struct {
	filter      *granule.Filter
	at          func() time.Time
	concurrency int
	dryRun      bool

	mu   sync.Mutex
	last *Result
}

// Option configures a Fetch.
type Option func(*Fetch)

// WithTime fixes the time the source directories are expanded for.
func WithTime(t time.Time) Option {
	return func(f *Fetch) { f.at = func() time.Time { return t } }
}

// WithConcurrency bounds the number of parallel copies.
func WithConcurrency(n int) Option {
	return func(f *Fetch) { f.concurrency = n }
}

// WithDryRun reports new granules without copying them.
func WithDryRun(dryRun bool) Option {
	return func(f *Fetch) { f.dryRun = dryRun }
}

func nowUTC() time.Time { return time.Now().UTC() }

// 🏗️ New creates a fetch for filter.
func New(filter *granule.Filter, opts ...Option) *Fetch {
	f := &Fetch{filter: filter, at: nowUTC, concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(f)
	}
	if f.concurrency < 1 {
		f.concurrency = 1
	}
	return f
}

// Execute runs the fetch, discarding the result.
func (f *Fetch) Execute(ctx context.Context) error {
	_, err := f.Run(ctx)
	return err
}

// Last returns the result of the latest run, or nil.
func (f *Fetch) Last() *Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// 📥 Run checks for new granules and copies them. A failed copy does not stop
// the others; the result lists it and the error wraps ErrIncomplete.
func (f *Fetch) Run(ctx context.Context) (*Result, error) {
	at := f.at()
	logger := zerolog.Ctx(ctx).With().Str("acquisition", f.filter.Name()).Logger()
	console := log.FromContext(ctx)

	section := console.StartAcquisition(ctx, log.AcquisitionOperation{
		Name:    f.filter.Name(),
		Pattern: f.filter.Source().String(),
		At:      at,
	})
	defer section.End(ctx)

	pairs, err := f.filter.CheckSource(ctx, at)
	if err != nil {
		return nil, errors.Errorf("checking %s: %w", f.filter.Name(), err)
	}
	present, err := f.filter.RemovePresent(ctx, pairs)
	if err != nil {
		return nil, errors.Errorf("checking %s: %w", f.filter.Name(), err)
	}

	result := &Result{Acquisition: f.filter.Name(), At: at}
	for src, dst := range present.All() {
		section.LogGranule(ctx, log.GranuleOperation{Source: src, Destination: dst, Status: log.StatusPresent})
		result.Present = append(result.Present, Transfer{Source: src, Destination: dst})
	}

	transfers := make([]Transfer, 0, pairs.Len())
	for src, dst := range pairs.All() {
		transfers = append(transfers, Transfer{Source: src, Destination: dst})
	}

	defer func() {
		f.mu.Lock()
		f.last = result
		f.mu.Unlock()
	}()

	if f.dryRun {
		for _, tr := range transfers {
			section.LogGranule(ctx, log.GranuleOperation{Source: tr.Source, Destination: tr.Destination, Status: log.StatusNew})
		}
		result.Pending = transfers
		return result, nil
	}

	layer := f.filter.Layer()
	progress := newProgress(len(transfers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.concurrency)
	for i := range transfers {
		g.Go(func() error {
			tr := &transfers[i]
			if err := gctx.Err(); err != nil {
				tr.Err = err
				return err
			}
			tr.Err = layer.FileCopy(gctx, tr.Source, tr.Destination)

			status := log.StatusCopied
			if tr.Err != nil {
				status = log.StatusFailed
			}
			section.LogGranule(ctx, log.GranuleOperation{Source: tr.Source, Destination: tr.Destination, Status: status, Err: tr.Err})
			logger.Debug().Msg(progress.step())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Errorf("fetching %s: %w", f.filter.Name(), err)
	}

	for _, tr := range transfers {
		if tr.Err != nil {
			result.Failed = append(result.Failed, tr)
		} else {
			result.Copied = append(result.Copied, tr)
		}
	}

	if len(result.Failed) > 0 {
		return result, errors.Errorf("%w: %s: %d of %d granules failed, first: %s",
			ErrIncomplete, f.filter.Name(), len(result.Failed), result.Total(), result.Failed[0].Err.Error())
	}
	return result, nil
}
