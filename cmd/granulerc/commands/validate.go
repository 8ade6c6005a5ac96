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
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/granulerc/cmd/granulerc/opts"
	"gitlab.com/tozd/go/errors"
)

func NewValidateCmd(opts *opts.RootOpts) *cobra.Command {
	var acquisitions []string

	cmd := &cobra.Command{
		Use:   "validate NAME...",
		Short: "Check filenames against the acquisitions",
		Long: `Validate reports, for every filename, the acquisitions that accept it
along with the decoded time and subset. It fails when a filename is accepted
by no acquisition.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := opts.Load(ctx); err != nil {
				return err
			}
			filters, err := opts.Select(acquisitions)
			if err != nil {
				return err
			}

			data := pterm.TableData{{"File", "Acquisition", "Time", "Subset"}}
			var rejected []string
			for _, name := range args {
				matched := false
				for _, f := range filters {
					ok, err := f.Validate(name)
					if err != nil {
						return err
					}
					if !ok {
						continue
					}
					matched = true

					fields, err := f.Source().Fields(name)
					if err != nil {
						return err
					}
					subset := ""
					if fields.Group != "" {
						subset = fmt.Sprintf("%s:%s", fields.Group, fields.Value)
					}
					data = append(data, []string{name, f.Name(), fields.Time.Format(time.RFC3339), subset})
				}
				if !matched {
					rejected = append(rejected, name)
					data = append(data, []string{name, "-", "-", "-"})
				}
			}

			if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(cmd.OutOrStdout()).Render(); err != nil {
				return err
			}
			if len(rejected) > 0 {
				return errors.Errorf("%d of %d names matched no acquisition", len(rejected), len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&acquisitions, "acquisition", "a", nil, "acquisitions to validate against (default all)")

	return cmd
}
