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

// Package schedule runs fetch operations on cron schedules.
package schedule

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/walteh/granulerc/pkg/fetch"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidSchedule is returned for unparsable cron specs.
	ErrInvalidSchedule = errors.New("invalid schedule")
	// ErrDuplicateJob is returned when a job name is already scheduled.
	ErrDuplicateJob = errors.New("duplicate job")
	// ErrUnknownJob is returned for job names that are not scheduled.
	ErrUnknownJob = errors.New("unknown job")
)

// parser accepts standard five-field specs, an optional leading seconds field
// and descriptors such as "@hourly" or "@every 5m".
var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ⏰ ParseSpec validates a cron spec.
func ParseSpec(spec string) (cron.Schedule, error) {
	s, err := parser.Parse(spec)
	if err != nil {
		return nil, errors.Errorf("%w: %q: %s", ErrInvalidSchedule, spec, err.Error())
	}
	return s, nil
}

// 📅 Entry describes one scheduled job.
type Entry struct {
	Name string
	Spec string
	Next time.Time
	Prev time.Time
	Runs int64
}

type job struct {
	name string
	spec string
	id   cron.EntryID
	op   fetch.Operation
	runs atomic.Int64
}

// 🗓️ Scheduler runs operations on cron schedules. Overlapping runs of the
// same job are skipped and panics are recovered.
type Scheduler struct {
	ctx  context.Context
	cron *cron.Cron

	mu   sync.Mutex
	jobs map[string]*job
}

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	location *time.Location
}

// WithLocation sets the time zone schedules are interpreted in. The default is UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.location = loc }
}

// 🏗️ New creates a scheduler. Jobs execute with ctx, which also carries the logger.
func New(ctx context.Context, opts ...Option) *Scheduler {
	o := &options{location: time.UTC}
	for _, opt := range opts {
		opt(o)
	}

	logger := cronLogger{zerolog.Ctx(ctx)}
	return &Scheduler{
		ctx: ctx,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(o.location),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		jobs: map[string]*job{},
	}
}

// 📝 Add schedules op under name.
func (s *Scheduler) Add(name, spec string, op fetch.Operation) error {
	schedule, err := ParseSpec(spec)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return errors.Errorf("%w: %s", ErrDuplicateJob, name)
	}

	j := &job{name: name, spec: spec, op: op}
	j.id = s.cron.Schedule(schedule, cron.FuncJob(func() { s.execute(j) }))
	s.jobs[name] = j

	zerolog.Ctx(s.ctx).Debug().Str("job", name).Str("spec", spec).Msg("scheduled job")
	return nil
}

func (s *Scheduler) execute(j *job) {
	j.runs.Add(1)
	logger := zerolog.Ctx(s.ctx).With().Str("job", j.name).Logger()

	start := time.Now()
	if err := j.op.Execute(s.ctx); err != nil {
		logger.Error().Err(err).Dur("took", time.Since(start)).Msg("job failed")
		return
	}
	logger.Debug().Dur("took", time.Since(start)).Msg("job finished")
}

// Remove unschedules name.
func (s *Scheduler) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[name]
	if !ok {
		return errors.Errorf("%w: %s", ErrUnknownJob, name)
	}
	s.cron.Remove(j.id)
	delete(s.jobs, name)
	return nil
}

// ▶️ RunNow executes the operation of name once, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return errors.Errorf("%w: %s", ErrUnknownJob, name)
	}
	j.runs.Add(1)
	return j.op.Execute(ctx)
}

// Entries returns the scheduled jobs sorted by name.
func (s *Scheduler) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, 0, len(s.jobs))
	for _, j := range s.jobs {
		e := s.cron.Entry(j.id)
		out = append(out, Entry{Name: j.name, Spec: j.spec, Next: e.Next, Prev: e.Prev, Runs: j.runs.Load()})
	}
	slices.SortFunc(out, func(a, b Entry) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs or ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return errors.Errorf("waiting for running jobs: %w", ctx.Err())
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	logger *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
