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
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/pkg/tags"
)

// ErrNoNumber is returned when the backend answers without a number.
var ErrNoNumber = errors.New("no number in response")

const (
	// DefaultPrefix is the URL scheme used when none is configured.
	DefaultPrefix = "https"
	resourcePath  = "/api/v1/numbers?"
)

var _ NumberRequester = (*Client)(nil)

// 📞 Client requests numbers over HTTP.
type Client struct {
	host   string
	prefix string
	http   *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPrefix sets the URL scheme ("http" or "https").
func WithPrefix(prefix string) ClientOption {
	return func(c *Client) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient creates a Client for host.
func NewClient(host string, opts ...ClientOption) *Client {
	c := &Client{
		host:   host,
		prefix: DefaultPrefix,
		http:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// requestURL builds the query string. The leading "&" after "?" is what the backend
// has always received.
func (c *Client) requestURL(req NumberRequest) string {
	base := fmt.Sprintf("%s://%s%s", c.prefix, c.host, resourcePath)

	q := url.Values{}
	q.Set("campaign_key", req.CampaignKey)
	if req.DefaultNumber != "" {
		q.Set("default_number", req.DefaultNumber)
	}
	if req.Message != "" {
		q.Set("message", req.Message)
	}
	q.Set("u", base64.StdEncoding.EncodeToString([]byte(req.PageURL)))
	q.Set("st", base64.StdEncoding.EncodeToString([]byte(req.Tags.ScriptTags())))

	return base + "&" + q.Encode()
}

// RequestNumber implements NumberRequester.RequestNumber
func (c *Client) RequestNumber(ctx context.Context, req NumberRequest) (*Number, error) {
	logger := zerolog.Ctx(ctx)

	if req.CampaignKey == "" {
		return nil, errors.New("campaign key is required")
	}
	if c.host == "" {
		return nil, errors.New("host is required")
	}
	if err := req.Tags.Validate(); err != nil {
		return nil, errors.Errorf("validating tags: %w", err)
	}

	target := c.requestURL(req)
	logger.Debug().Str("url", target).Str("campaign_key", req.CampaignKey).Msg("requesting number")

	body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.Errorf("requesting number: %w", err)
	}

	num, err := ParseNumber(body)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("number", num.Number).
		Int("replacements", len(num.ReplacementNumbers)).
		Msg("number assigned")

	return num, nil
}

// do sends one request and returns the body of a 200 response.
func (c *Client) do(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

// ParseNumber decodes the "number" object of a numbers response.
func ParseNumber(body []byte) (*Number, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("response is not valid json")
	}

	raw := gjson.GetBytes(body, "number")
	if !raw.Exists() || raw.Type == gjson.Null || (raw.Type == gjson.String && raw.Str == "") {
		return nil, errors.WithStack(ErrNoNumber)
	}
	if !raw.IsObject() {
		return nil, errors.Errorf("number has unexpected type %s", raw.Type)
	}

	num := &Number{
		ID:              raw.Get("id").Int(),
		CampaignKey:     raw.Get("campaign_key").String(),
		Number:          raw.Get("number").String(),
		FormattedNumber: raw.Get("formatted_number").String(),
		PlainNumber:     raw.Get("plain_number").String(),
		IsPerVisitor:    raw.Get("is_per_visitor").Bool(),
		TagValues:       tags.Collection{},
	}

	raw.Get("tag_values").ForEach(func(key, value gjson.Result) bool {
		num.TagValues[key.String()] = value.String()
		return true
	})

	for _, rn := range raw.Get("replacement_numbers").Array() {
		find := rn.Get("find").String()
		if find == "" {
			continue
		}
		num.ReplacementNumbers = append(num.ReplacementNumbers, ReplacementNumber{
			Find:        find,
			ReplaceWith: rn.Get("replace_with").String(),
		})
	}

	return num, nil
}
