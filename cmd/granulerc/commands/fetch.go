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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/granulerc/cmd/granulerc/opts"
	"github.com/walteh/granulerc/pkg/fetch"
	"gitlab.com/tozd/go/errors"
)

func NewFetchCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		at           string
		acquisitions []string
		concurrency  int
		dryRun       bool
		async        bool
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Copy new granules into their destination",
		Long: `Fetch checks every acquisition for granules missing from the destination
and copies them. It will:
1. Expand the source directories for the time
2. Keep the valid granules on the time grid
3. Drop the ones already present locally
4. Copy the rest, a bounded number at a time`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			t, err := parseAt(at)
			if err != nil {
				return err
			}

			if err := opts.Load(ctx); err != nil {
				return err
			}
			filters, err := opts.Select(acquisitions)
			if err != nil {
				return err
			}

			opts.Console.Header("fetching new granules")

			fetches := make([]*fetch.Fetch, 0, len(filters))
			ops := make([]fetch.Operation, 0, len(filters))
			for _, f := range filters {
				op := fetch.New(f, fetch.WithTime(t), fetch.WithConcurrency(concurrency), fetch.WithDryRun(dryRun))
				fetches = append(fetches, op)
				ops = append(ops, op)
			}

			runErr := fetch.NewRunner(async).RunAll(ctx, ops...)

			opts.Console.LogNewline()
			for _, op := range fetches {
				if r := op.Last(); r != nil {
					opts.Console.Info(r.Summary())
				}
			}

			if runErr != nil {
				opts.Console.Errorf("fetch incomplete: %s", runErr.Error())
				return errors.Errorf("fetching: %w", runErr)
			}
			opts.Console.Successf("fetched %d acquisitions", len(filters))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "time to expand directory patterns for (default now)")
	cmd.Flags().StringSliceVarP(&acquisitions, "acquisition", "a", nil, "acquisitions to fetch (default all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", fetch.DefaultConcurrency, "parallel copies per acquisition")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report new granules without copying")
	cmd.Flags().BoolVar(&async, "async", false, "fetch acquisitions concurrently")

	return cmd
}
