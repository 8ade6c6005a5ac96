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

package main

import (
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/granulerc/cmd/granulerc/commands"
	"github.com/walteh/granulerc/cmd/granulerc/opts"
	"github.com/walteh/granulerc/pkg/log"
)

// newRootCmd builds the command tree. Each call gets its own options so tests
// can run commands side by side.
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}
	var noColor bool

	cmd := &cobra.Command{
		Use:   "granulerc",
		Short: "Find, validate and fetch time-stamped data granules",
		Long: `granulerc maps filename patterns of periodic data acquisitions onto the
directories that hold them. It lists the granules available for a time,
checks filenames against the acquisitions and copies new granules to their
local destination.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				pterm.DisableStyling()
			}
			logger := setupLogging(cmd, rootOpts.Debug)
			rootOpts.Console = log.New(cmd.ErrOrStderr())

			ctx := logger.WithContext(cmd.Context())
			ctx = log.NewContext(ctx, rootOpts.Console)
			cmd.SetContext(ctx)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config", "c", ".granulerc.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(
		commands.NewCheckCmd(rootOpts),
		commands.NewValidateCmd(rootOpts),
		commands.NewFetchCmd(rootOpts),
		commands.NewWatchCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging(cmd *cobra.Command, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger
}
