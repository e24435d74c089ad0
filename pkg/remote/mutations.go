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

package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/pkg/tags"
)

// ErrNotPerVisitor is returned when tags are changed on a number that is shared
// between visitors.
var ErrNotPerVisitor = errors.New("tried to change tags of a non per-visitor number")

const (
	pathTag         = "/api/v1/numbers/tag"
	pathReplaceTags = "/api/v1/numbers/replace_tags"
	pathUntag       = "/api/v1/numbers/untag"
	pathUntagKeys   = "/api/v1/numbers/untag/keys"
	pathInitiate    = "/api/v1/numbers/initiate_call"
)

var _ NumberMutator = (*Client)(nil)

// Call is a call started by InitiateCall.
type Call struct {
	UUID string
}

// AddTags attaches tag values to num.
func (c *Client) AddTags(ctx context.Context, num *Number, values tags.Collection) error {
	return c.postTags(ctx, pathTag, num, "tag_values", values)
}

// ReplaceTags swaps every tag value of num for values.
func (c *Client) ReplaceTags(ctx context.Context, num *Number, values tags.Collection) error {
	return c.postTags(ctx, pathReplaceTags, num, "tag_values", values)
}

// RemoveTags detaches the given tag values from num.
func (c *Client) RemoveTags(ctx context.Context, num *Number, values tags.Collection) error {
	return c.postTags(ctx, pathUntag, num, "tag_values", values)
}

// RemoveTagsByKeys detaches every value held under keys.
func (c *Client) RemoveTagsByKeys(ctx context.Context, num *Number, keys []string) error {
	if len(keys) == 0 {
		return errors.New("no tag keys given")
	}
	return c.postTags(ctx, pathUntagKeys, num, "tag_keys", keys)
}

// ClearTags detaches every tag from num.
func (c *Client) ClearTags(ctx context.Context, num *Number) error {
	return c.postTags(ctx, pathUntag, num, "all", "true")
}

// InitiateCall has the campaign target dial the visitor at dial. extra is sent
// alongside as top-level tag values.
func (c *Client) InitiateCall(ctx context.Context, num *Number, dial string, extra tags.Collection) (*Call, error) {
	logger := zerolog.Ctx(ctx)

	if dial == "" {
		return nil, errors.New("number to dial is required")
	}
	if err := c.checkTarget(num); err != nil {
		return nil, err
	}
	if err := extra.Validate(); err != nil {
		return nil, errors.Errorf("validating tags: %w", err)
	}

	payload := []byte("{}")
	if len(extra) > 0 {
		raw, err := json.Marshal(extra)
		if err != nil {
			return nil, errors.Errorf("encoding tags: %w", err)
		}
		payload = raw
	}
	for _, field := range []struct {
		path  string
		value any
	}{
		{"id", num.ID},
		{"campaign_key", num.CampaignKey},
		{"dial", dial},
	} {
		var err error
		if payload, err = sjson.SetBytes(payload, field.path, field.value); err != nil {
			return nil, errors.Errorf("building payload: %w", err)
		}
	}

	logger.Debug().Int64("id", num.ID).Str("dial", dial).Msg("initiating call")

	body, err := c.do(ctx, http.MethodPost, c.url(pathInitiate), payload)
	if err != nil {
		return nil, errors.Errorf("initiating call: %w", err)
	}

	call := &Call{UUID: gjson.GetBytes(body, "call.uuid").String()}
	if call.UUID == "" {
		call.UUID = gjson.GetBytes(body, "uuid").String()
	}
	logger.Info().Str("uuid", call.UUID).Msg("call initiated")

	return call, nil
}

// postTags sends {ids:[id], campaign_key, field: value} to path and refreshes the
// tag values of num from the response when it carries them.
func (c *Client) postTags(ctx context.Context, path string, num *Number, field string, value any) error {
	logger := zerolog.Ctx(ctx)

	if err := c.checkTarget(num); err != nil {
		return err
	}
	if !num.IsPerVisitor {
		return errors.WithStack(ErrNotPerVisitor)
	}
	if values, ok := value.(tags.Collection); ok {
		if len(values) == 0 {
			return errors.New("no tags given")
		}
		if err := values.Validate(); err != nil {
			return errors.Errorf("validating tags: %w", err)
		}
	}

	payload, err := numberPayload(num, field, value)
	if err != nil {
		return err
	}

	logger.Debug().Str("path", path).Int64("id", num.ID).RawJSON("payload", payload).Msg("changing tags")

	body, err := c.do(ctx, http.MethodPost, c.url(path), payload)
	if err != nil {
		return errors.Errorf("posting %s: %w", path, err)
	}

	if tv := gjson.GetBytes(body, "number.tag_values"); tv.IsObject() {
		num.TagValues = tags.Collection{}
		tv.ForEach(func(key, value gjson.Result) bool {
			num.TagValues[key.String()] = value.String()
			return true
		})
	}
	return nil
}

func numberPayload(num *Number, field string, value any) ([]byte, error) {
	payload := []byte("{}")
	for _, f := range []struct {
		path  string
		value any
	}{
		{"ids", []int64{num.ID}},
		{"campaign_key", num.CampaignKey},
		{field, value},
	} {
		var err error
		if payload, err = sjson.SetBytes(payload, f.path, f.value); err != nil {
			return nil, errors.Errorf("building payload: %w", err)
		}
	}
	return payload, nil
}

func (c *Client) checkTarget(num *Number) error {
	if c.host == "" {
		return errors.New("host is required")
	}
	if num == nil {
		return errors.New("number is required")
	}
	if num.CampaignKey == "" {
		return errors.New("number has no campaign key")
	}
	return nil
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("%s://%s%s", c.prefix, c.host, path)
}
