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
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/cmd/numswap/opts"
	"github.com/walteh/numswap/pkg/config"
	"github.com/walteh/numswap/pkg/log"
	"github.com/walteh/numswap/pkg/operation"
	"github.com/walteh/numswap/pkg/remote"
)

// NewRewriteCmd creates a new rewrite command
func NewRewriteCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		fetch  bool
		dryRun bool
		backup bool
		output string
		async  bool
	)

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Swap numbers in every configured page",
		Long: `Rewrite swaps replacement numbers into the pages matched by the config.
It will:
1. Load the config and, with --fetch, request a number from the remote
2. Expand the input globs and skip ignored pages
3. Rewrite each page's text and tel: links
4. Write changed pages to the output directory, or in place`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := ro.LoadConfig(ctx); err != nil {
				return err
			}
			cfg := ro.Config
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if cmd.Flags().Changed("async") {
				cfg.Async = async
			}

			var requester remote.NumberRequester
			if fetch {
				if cfg.Remote == nil {
					return errors.New("--fetch needs a remote block in the config")
				}
				requester = newClient(cfg)
			}

			pairs, source, err := operation.ResolvePairs(ctx, cfg, requester)
			if err != nil {
				return errors.Errorf("resolving replacement pairs: %w", err)
			}

			console := ro.Console
			console.Header(cfg.String())
			console.StartRunOperation(ctx, log.RunOperation{
				Inputs: cfg.Inputs,
				Output: cfg.Output,
				Pairs:  len(pairs),
				Source: source,
			})

			op := operation.NewRewriteOperation(operation.Options{
				Config:  cfg,
				Pairs:   pairs,
				Source:  source,
				BaseDir: ro.BaseDir,
				Console: console,
				DryRun:  dryRun,
				Backup:  backup,
			})
			runErr := operation.NewRunner(cfg.Async).Run(ctx, op)

			files := console.EndRunOperation(ctx)
			console.LogNewline()
			if runErr != nil {
				console.Errorf("rewrite finished with errors (%d page(s) processed)", len(files))
				return runErr
			}

			changed := 0
			for _, f := range files {
				if f.Changed {
					changed++
				}
			}
			if dryRun {
				console.Successf("%d of %d page(s) would change", changed, len(files))
			} else {
				console.Successf("%d of %d page(s) changed", changed, len(files))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", false, "request replacement numbers from the configured remote")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing")
	cmd.Flags().BoolVar(&backup, "backup", false, "keep a .bak copy of pages rewritten in place")
	cmd.Flags().StringVarP(&output, "output", "o", "", "override the output directory")
	cmd.Flags().BoolVar(&async, "async", false, "rewrite pages concurrently")

	return cmd
}

// newClient builds a number client for the configured remote
func newClient(cfg *config.Config) *remote.Client {
	return remote.NewClient(cfg.Remote.Host, remote.WithPrefix(cfg.Remote.Prefix))
}
