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

package fetch

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes operations
type Runner struct {
	async bool
}

// 🏗️ NewRunner creates a new runner
func NewRunner(async bool) *Runner {
	return &Runner{async: async}
}

// 🏃 Run executes an operation
func (r *Runner) Run(ctx context.Context, op Operation) error {
	if r.async {
		return r.runAsync(ctx, op)
	}
	return r.runSync(ctx, op)
}

// 🏃 RunAll executes every operation, concurrently when the runner is async,
// and returns the first error.
func (r *Runner) RunAll(ctx context.Context, ops ...Operation) error {
	if !r.async {
		for _, op := range ops {
			if err := r.runSync(ctx, op); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	for _, op := range ops {
		g.Go(func() error { return r.runAsync(ctx, op) })
	}
	return g.Wait()
}

// 🔄 runSync runs an operation synchronously
func (r *Runner) runSync(ctx context.Context, op Operation) error {
	return op.Execute(ctx)
}

// ⚡ runAsync runs an operation in its own goroutine, returning early when
// ctx is done.
func (r *Runner) runAsync(ctx context.Context, op Operation) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- op.Execute(ctx)
	}()

	select {
	case <-ctx.Done():
		zerolog.Ctx(ctx).Debug().Msg("operation cancelled")
		return errors.Errorf("operation cancelled: %w", ctx.Err())
	case err := <-errCh:
		if err != nil {
			return errors.Errorf("executing operation: %w", err)
		}
		return nil
	}
}
