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
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/walteh/numswap/cmd/numswap/commands"
	"github.com/walteh/numswap/cmd/numswap/opts"
	"github.com/walteh/numswap/pkg/log"
)

// newRootCmd builds the command tree; out gets user facing output
func newRootCmd(out io.Writer) *cobra.Command {
	ro := &opts.RootOpts{Out: out}

	cmd := &cobra.Command{
		Use:   "numswap",
		Short: "Swap tracking phone numbers into HTML pages",
		Long: `numswap finds phone numbers in HTML pages, even when they are split across
elements, and replaces them with tracking numbers from a config file or a
call-tracking backend. Dialable tel: links are rewritten too.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ro.Console = setupLogging(ro)
			cmd.SetContext(log.NewContext(cmd.Context(), ro.Console))
		},
	}
	cmd.SetOut(out)

	addRootFlags(cmd, ro)

	cmd.AddCommand(
		commands.NewRewriteCmd(ro),
		commands.NewStatusCmd(ro),
		commands.NewFetchCmd(ro),
		commands.NewTagCmd(ro),
		commands.NewCallCmd(ro),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", ".numswap.yaml", "config file path")
	cmd.PersistentFlags().StringVar(&ro.BaseDir, "dir", "", "directory input globs are relative to (default: the config file's directory)")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(ro *opts.RootOpts) *log.Logger {
	level := zerolog.InfoLevel
	if ro.Debug {
		level = zerolog.DebugLevel
	}
	return log.New(ro.Out, level)
}
