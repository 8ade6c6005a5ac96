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
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/granulerc/cmd/granulerc/opts"
	"github.com/walteh/granulerc/pkg/granule"
	"gitlab.com/tozd/go/errors"
)

func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	var (
		at           string
		acquisitions []string
		destination  bool
		onlyNew      bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "List granules available for a time",
		Long: `Check lists the directories of each acquisition for a time and prints
the granules found, paired with their destination names.
By default the source is checked. With --destination the local directories
are checked instead; with --new only granules missing locally are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if destination && onlyNew {
				return errors.New("--destination and --new are mutually exclusive")
			}

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

			data := pterm.TableData{{"Acquisition", "Source", "Destination"}}
			for _, f := range filters {
				var pairs *granule.Pairs
				switch {
				case destination:
					pairs, err = f.CheckDestination(ctx, t)
				case onlyNew:
					pairs, err = f.CheckNew(ctx, t)
				default:
					pairs, err = f.CheckSource(ctx, t)
				}
				if err != nil {
					return errors.Errorf("checking %s: %w", f.Name(), err)
				}

				for key, value := range pairs.All() {
					src, dst := key, value
					if pairs.Reverse() {
						src, dst = value, key
					}
					data = append(data, []string{f.Name(), src, dst})
				}
			}

			if len(data) == 1 {
				pterm.Info.WithWriter(cmd.OutOrStdout()).Println("no granules found for " + t.Format("2006-01-02T15:04:05Z"))
				return nil
			}
			return pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render()
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "time to expand directory patterns for (default now)")
	cmd.Flags().StringSliceVarP(&acquisitions, "acquisition", "a", nil, "acquisitions to check (default all)")
	cmd.Flags().BoolVar(&destination, "destination", false, "check local destination directories")
	cmd.Flags().BoolVar(&onlyNew, "new", false, "show only granules missing locally")

	return cmd
}
