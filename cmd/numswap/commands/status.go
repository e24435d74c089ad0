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
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/cmd/numswap/opts"
	"github.com/walteh/numswap/pkg/operation"
	"github.com/walteh/numswap/pkg/remote"
	"github.com/walteh/numswap/pkg/status"
)

// ErrNeedsRewrite is returned by status --exit-code when a page would change
var ErrNeedsRewrite = errors.New("pages need rewriting")

// NewStatusCmd creates a new status command
func NewStatusCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		fetch    bool
		exitCode bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report which pages a rewrite would change",
		Long: `Status runs the rewrite without writing anything.
It will:
1. Load the config and resolve the replacement pairs
2. Rewrite every page in memory
3. Compare the result with what is on disk
4. Print a table of pages with their status and counts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := ro.LoadConfig(ctx); err != nil {
				return err
			}
			cfg := ro.Config

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

			needsUpdate, files, checkErr := operation.CheckStatus(ctx, operation.Options{
				Config:  cfg,
				Pairs:   pairs,
				Source:  source,
				BaseDir: ro.BaseDir,
			})

			// failed pages are listed alongside the rest before the error is returned
			if len(files) > 0 || checkErr == nil {
				table, err := renderStatusTable(files)
				if err != nil {
					return err
				}
				fmt.Fprintln(ro.Out, table)
			}
			if checkErr != nil {
				return errors.Errorf("checking status: %w", checkErr)
			}

			if !needsUpdate {
				ro.Console.Success("pages are up to date")
				return nil
			}
			ro.Console.Warning("pages need rewriting")
			if exitCode {
				return ErrNeedsRewrite
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fetch, "fetch", false, "request replacement numbers from the configured remote")
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "fail when any page would change")

	return cmd
}

func renderStatusTable(files []status.FileInfo) (string, error) {
	data := pterm.TableData{{"Page", "Status", "Matches", "Links"}}
	for _, f := range files {
		data = append(data, []string{
			f.Path,
			f.Status.String(),
			strconv.Itoa(f.Matches),
			strconv.Itoa(f.Links),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", errors.Errorf("rendering status table: %w", err)
	}
	return out, nil
}
