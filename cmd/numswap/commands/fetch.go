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
	"github.com/walteh/numswap/pkg/remote"
	"github.com/walteh/numswap/pkg/tags"
)

// NewFetchCmd creates a new fetch command
func NewFetchCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		pageURL       string
		tagList       string
		defaultNumber string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Request a tracking number from the configured remote",
		Long: `Fetch asks the remote in the config for a number and prints it along with
the replacement pairs a rewrite would use. Tags given with --tags are merged
over the configured ones, in the "key1:value1,key2:value2" form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := ro.LoadConfig(ctx); err != nil {
				return err
			}
			cfg := ro.Config
			if cfg.Remote == nil {
				return errors.New("config has no remote block")
			}

			req := remote.NumberRequest{
				CampaignKey:   cfg.Remote.CampaignKey,
				Tags:          cfg.Remote.TagCollection().Merge(tags.Parse(tagList)),
				PageURL:       cfg.Remote.PageURL,
				DefaultNumber: defaultNumber,
			}
			if pageURL != "" {
				req.PageURL = pageURL
			}

			num, err := newClient(cfg).RequestNumber(ctx, req)
			if err != nil {
				return errors.Errorf("fetching number: %w", err)
			}

			out, err := renderNumber(num)
			if err != nil {
				return err
			}
			fmt.Fprintln(ro.Out, out)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "page-url", "", "page the number is requested for (overrides the config)")
	cmd.Flags().StringVar(&tagList, "tags", "", "extra number-matching tags, key1:value1,key2:value2")
	cmd.Flags().StringVar(&defaultNumber, "default-number", "", "number the backend falls back to")

	return cmd
}

func renderNumber(num *remote.Number) (string, error) {
	info := pterm.TableData{
		{"Number", num.Number},
		{"Formatted", num.FormattedNumber},
		{"ID", strconv.FormatInt(num.ID, 10)},
		{"Campaign", num.CampaignKey},
		{"Per visitor", strconv.FormatBool(num.IsPerVisitor)},
		{"Tags", num.TagValues.String()},
	}
	head, err := pterm.DefaultTable.WithData(info).Srender()
	if err != nil {
		return "", errors.Errorf("rendering number: %w", err)
	}

	pairs := pterm.TableData{{"Find", "Replace with"}}
	for _, rn := range num.ReplacementNumbers {
		pairs = append(pairs, []string{rn.Find, rn.ReplaceWith})
	}
	body, err := pterm.DefaultTable.WithHasHeader().WithData(pairs).Srender()
	if err != nil {
		return "", errors.Errorf("rendering replacement numbers: %w", err)
	}

	return head + "\n\n" + body, nil
}
