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
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/granulerc/pkg/fetch"
	"gitlab.com/tozd/go/errors"
)

type funcOperation func(ctx context.Context) error

func (f funcOperation) Execute(ctx context.Context) error { return f(ctx) }

func TestRunner(t *testing.T) {
	boom := errors.New("boom")

	for _, async := range []bool{false, true} {
		runner := fetch.NewRunner(async)

		var calls atomic.Int32
		ok := funcOperation(func(context.Context) error { calls.Add(1); return nil })
		fail := funcOperation(func(context.Context) error { calls.Add(1); return boom })

		require.NoError(t, runner.Run(context.Background(), ok))
		require.ErrorIs(t, runner.Run(context.Background(), fail), boom)
		require.NoError(t, runner.RunAll(context.Background(), ok, ok, ok))
		require.ErrorIs(t, runner.RunAll(context.Background(), ok, fail), boom)
		assert.Equal(t, int32(7), calls.Load())
	}
}

func TestRunnerAsyncCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	defer close(release)

	blocked := funcOperation(func(context.Context) error {
		<-release
		return nil
	})

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := fetch.NewRunner(true).Run(ctx, blocked)
	require.ErrorIs(t, err, context.Canceled)
}
