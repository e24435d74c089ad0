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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/pkg/config"
	"github.com/walteh/numswap/pkg/remote"
	"github.com/walteh/numswap/pkg/swap"
)

const (
	SourceConfig = "config"
	SourceRemote = "remote"
)

// 🔢 ResolvePairs collects the replacement pairs for a run: the configured
// replacements first, then those of a number fetched through requester.
// A nil requester skips the remote even when one is configured.
func ResolvePairs(ctx context.Context, cfg *config.Config, requester remote.NumberRequester) ([]swap.Pair, string, error) {
	logger := zerolog.Ctx(ctx)

	pairs := make([]swap.Pair, 0, len(cfg.Replacements))
	for _, r := range cfg.Replacements {
		pairs = append(pairs, swap.Pair{Find: r.Find, ReplaceWith: r.ReplaceWith})
	}
	source := SourceConfig

	if cfg.Remote == nil || requester == nil {
		return pairs, source, nil
	}

	num, err := requester.RequestNumber(ctx, remote.NumberRequest{
		CampaignKey: cfg.Remote.CampaignKey,
		Tags:        cfg.Remote.TagCollection(),
		PageURL:     cfg.Remote.PageURL,
	})
	if err != nil {
		return nil, "", errors.Errorf("requesting number: %w", err)
	}

	logger.Info().
		Int64("id", num.ID).
		Str("number", num.Number).
		Int("replacements", len(num.ReplacementNumbers)).
		Msg("fetched number")

	for _, rn := range num.ReplacementNumbers {
		pairs = append(pairs, swap.Pair{Find: rn.Find, ReplaceWith: rn.ReplaceWith})
	}

	if len(cfg.Replacements) == 0 {
		source = SourceRemote
	} else {
		source = SourceConfig + "+" + SourceRemote
	}
	return pairs, source, nil
}
