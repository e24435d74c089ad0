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
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/cmd/numswap/opts"
	"github.com/walteh/numswap/pkg/config"
	"github.com/walteh/numswap/pkg/remote"
	"github.com/walteh/numswap/pkg/tags"
)

// NewTagCmd creates a new tag command
func NewTagCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		pageURL    string
		add        string
		replace    string
		remove     string
		removeKeys string
		clearAll   bool
	)

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Change the tags of the visitor's tracking number",
		Long: `Tag requests the number for the configured remote, then changes the tags
attached to it. Exactly one of --add, --replace, --remove, --remove-keys or
--clear is required. Tag lists use the "key1:value1,key2:value2" form and key
lists are comma separated. Only per-visitor numbers can be tagged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			set := 0
			for _, given := range []bool{add != "", replace != "", remove != "", removeKeys != "", clearAll} {
				if given {
					set++
				}
			}
			if set != 1 {
				return errors.New("exactly one of --add, --replace, --remove, --remove-keys or --clear is required")
			}

			if err := ro.LoadConfig(ctx); err != nil {
				return err
			}
			client, num, err := requestNumber(ctx, ro.Config, pageURL)
			if err != nil {
				return err
			}

			switch {
			case add != "":
				err = client.AddTags(ctx, num, tags.Parse(add))
			case replace != "":
				err = client.ReplaceTags(ctx, num, tags.Parse(replace))
			case remove != "":
				err = client.RemoveTags(ctx, num, tags.Parse(remove))
			case removeKeys != "":
				err = client.RemoveTagsByKeys(ctx, num, splitKeys(removeKeys))
			default:
				err = client.ClearTags(ctx, num)
			}
			if err != nil {
				return errors.Errorf("changing tags of %s: %w", num.Number, err)
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
	cmd.Flags().StringVar(&add, "add", "", "tags to attach, key1:value1,key2:value2")
	cmd.Flags().StringVar(&replace, "replace", "", "tags that replace every current tag")
	cmd.Flags().StringVar(&remove, "remove", "", "tags to detach, key1:value1,key2:value2")
	cmd.Flags().StringVar(&removeKeys, "remove-keys", "", "tag keys to detach, key1,key2")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "detach every tag")

	return cmd
}

// NewCallCmd creates a new call command
func NewCallCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		pageURL string
		dial    string
		tagList string
	)

	cmd := &cobra.Command{
		Use:   "call",
		Short: "Connect the campaign to a visitor's phone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := ro.LoadConfig(ctx); err != nil {
				return err
			}
			client, num, err := requestNumber(ctx, ro.Config, pageURL)
			if err != nil {
				return err
			}

			call, err := client.InitiateCall(ctx, num, dial, tags.Parse(tagList))
			if err != nil {
				return errors.Errorf("calling %s: %w", dial, err)
			}

			fmt.Fprintf(ro.Out, "call %s started on %s\n", call.UUID, num.FormattedNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&pageURL, "page-url", "", "page the number is requested for (overrides the config)")
	cmd.Flags().StringVar(&dial, "dial", "", "visitor phone number to dial")
	cmd.Flags().StringVar(&tagList, "tags", "", "tag values sent with the call, key1:value1,key2:value2")
	_ = cmd.MarkFlagRequired("dial")

	return cmd
}

// requestNumber asks the configured remote for the number the tag and call
// commands act on
func requestNumber(ctx context.Context, cfg *config.Config, pageURL string) (*remote.Client, *remote.Number, error) {
	if cfg.Remote == nil {
		return nil, nil, errors.New("config has no remote block")
	}

	req := remote.NumberRequest{
		CampaignKey: cfg.Remote.CampaignKey,
		Tags:        cfg.Remote.TagCollection(),
		PageURL:     cfg.Remote.PageURL,
	}
	if pageURL != "" {
		req.PageURL = pageURL
	}

	client := newClient(cfg)
	num, err := client.RequestNumber(ctx, req)
	if err != nil {
		return nil, nil, errors.Errorf("fetching number: %w", err)
	}
	return client, num, nil
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
