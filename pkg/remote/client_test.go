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
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/numswap/pkg/tags"
)

const numberResponse = `{
	"number": {
		"id": 42,
		"campaign_key": "abc123",
		"number": "+18005550000",
		"formatted_number": "(800) 555-0000",
		"plain_number": "8005550000",
		"is_per_visitor": true,
		"tag_values": {"source": ["web"], "calling_about": "support"},
		"replacement_numbers": [
			{"find": "555-1234", "replace_with": "555-0000"},
			{"find": "", "replace_with": "skipped"},
			{"find": "(555) 123-4567", "replace_with": "(800) 555-0000"}
		]
	}
}`

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(strings.TrimPrefix(srv.URL, "http://"), WithPrefix("http"), WithHTTPClient(srv.Client()))
}

func decode(t *testing.T, s string) string {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err, "decoding base64 param")
	return string(b)
}

func TestClient_RequestNumber(t *testing.T) {
	var gotQuery map[string]string
	var gotRawQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/numbers", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		gotRawQuery = r.URL.RawQuery
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(numberResponse))
	})

	num, err := client.RequestNumber(testContext(t), NumberRequest{
		CampaignKey:   "abc123",
		Tags:          tags.Collection{"source": "web", "calling_about": "support"},
		PageURL:       "https://example.com/landing?x=1",
		DefaultNumber: "8005551111",
	})
	require.NoError(t, err, "request should succeed")

	assert.True(t, strings.HasPrefix(gotRawQuery, "&"), "query should keep the leading ampersand")
	assert.Equal(t, "abc123", gotQuery["campaign_key"])
	assert.Equal(t, "8005551111", gotQuery["default_number"])
	assert.NotContains(t, gotQuery, "message", "unset message should not be sent")
	assert.Equal(t, "https://example.com/landing?x=1", decode(t, gotQuery["u"]))
	assert.Equal(t, "&calling_about=support&source=web", decode(t, gotQuery["st"]))

	assert.Equal(t, int64(42), num.ID)
	assert.Equal(t, "abc123", num.CampaignKey)
	assert.Equal(t, "+18005550000", num.Number)
	assert.Equal(t, "(800) 555-0000", num.FormattedNumber)
	assert.Equal(t, "8005550000", num.PlainNumber)
	assert.True(t, num.IsPerVisitor)
	assert.Equal(t, "support", num.TagValues["calling_about"])
	assert.Equal(t, []ReplacementNumber{
		{Find: "555-1234", ReplaceWith: "555-0000"},
		{Find: "(555) 123-4567", ReplaceWith: "(800) 555-0000"},
	}, num.ReplacementNumbers, "empty finds should be dropped")
}

func TestClient_RequestNumber_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		req       NumberRequest
		wantError string
		wantNoNum bool
	}{
		{
			name:      "missing_campaign_key",
			req:       NumberRequest{},
			wantError: "campaign key is required",
		},
		{
			name:      "invalid_tags",
			req:       NumberRequest{CampaignKey: "k", Tags: tags.Collection{"": "x"}},
			wantError: "validating tags",
		},
		{
			name:      "server_error",
			status:    http.StatusInternalServerError,
			body:      "boom",
			req:       NumberRequest{CampaignKey: "k"},
			wantError: "unexpected status 500: boom",
		},
		{
			name:      "empty_number",
			status:    http.StatusOK,
			body:      `{"number": ""}`,
			req:       NumberRequest{CampaignKey: "k"},
			wantNoNum: true,
		},
		{
			name:      "missing_number",
			status:    http.StatusOK,
			body:      `{"error": "no numbers available"}`,
			req:       NumberRequest{CampaignKey: "k"},
			wantNoNum: true,
		},
		{
			name:      "invalid_json",
			status:    http.StatusOK,
			body:      `{"number":`,
			req:       NumberRequest{CampaignKey: "k"},
			wantError: "not valid json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			num, err := client.RequestNumber(testContext(t), tt.req)
			require.Error(t, err)
			assert.Nil(t, num)
			if tt.wantNoNum {
				assert.ErrorIs(t, err, ErrNoNumber)
				return
			}
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("numbers.example.com", WithPrefix(""))

	got := c.requestURL(NumberRequest{CampaignKey: "k"})
	assert.True(t, strings.HasPrefix(got, "https://numbers.example.com/api/v1/numbers?&"), "got %s", got)
	assert.Contains(t, got, "campaign_key=k")
}
