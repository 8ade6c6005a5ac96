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
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/granulerc/cmd/granulerc/opts"
	"github.com/walteh/granulerc/pkg/fetch"
	"github.com/walteh/granulerc/pkg/schedule"
)

func NewWatchCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		every        string
		acquisitions []string
		concurrency  int
		immediately  bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Fetch new granules on a schedule",
		Long: `Watch fetches new granules of every acquisition on a cron schedule
until interrupted. The schedule accepts five or six cron fields or a
descriptor such as "@every 5m".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if _, err := schedule.ParseSpec(every); err != nil {
				return err
			}

			if err := opts.Load(ctx); err != nil {
				return err
			}
			filters, err := opts.Select(acquisitions)
			if err != nil {
				return err
			}

			s := schedule.New(ctx)
			for _, f := range filters {
				if err := s.Add(f.Name(), every, fetch.New(f, fetch.WithConcurrency(concurrency))); err != nil {
					return err
				}
			}

			if immediately {
				for _, f := range filters {
					if err := s.RunNow(ctx, f.Name()); err != nil {
						zerolog.Ctx(ctx).Debug().Err(err).Str("acquisition", f.Name()).Msg("initial fetch failed")
						opts.Console.Warningf("initial fetch of %s failed: %s", f.Name(), err.Error())
					}
				}
			}

			s.Start()
			data := pterm.TableData{{"Acquisition", "Schedule", "Next"}}
			for _, e := range s.Entries() {
				data = append(data, []string{e.Name, e.Spec, e.Next.Format(time.RFC3339)})
			}
			if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render(); err != nil {
				return err
			}

			opts.Console.Infof("watching %d acquisitions, interrupt to stop", len(filters))
			<-ctx.Done()

			stopCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			return s.Stop(stopCtx)
		},
	}

	cmd.Flags().StringVar(&every, "every", "@every 5m", "cron schedule")
	cmd.Flags().StringSliceVarP(&acquisitions, "acquisition", "a", nil, "acquisitions to watch (default all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", fetch.DefaultConcurrency, "parallel copies per acquisition")
	cmd.Flags().BoolVar(&immediately, "now", true, "fetch once before the first scheduled run")

	return cmd
}
