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

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetParser(t *testing.T) {
	tests := []struct {
		filename string
		want     Parser
	}{
		{filename: "numswap.yaml", want: &YAMLParser{}},
		{filename: "numswap.yml", want: &YAMLParser{}},
		{filename: "numswap.json", want: &JSONParser{}},
		{filename: "NUMSWAP.JSON", want: &JSONParser{}},
		{filename: "numswap.hcl", want: &HCLParser{}},
		{filename: "numswap.toml", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got, "no parser expected")
				return
			}
			assert.IsType(t, tt.want, got, "parser type should match")
		})
	}
}

func TestJSONParser(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError string
		check     func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_config",
			input: `{
				"replacements": [{"find": "555-1234", "replace_with": "555-0000"}],
				"rewrite": {"wrap": "mark", "replace_links": false},
				"inputs": ["*.html"],
				"remote": {"host": "api.example.com", "campaign_key": "k", "tags": {"a": "1"}}
			}`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []Replacement{{Find: "555-1234", ReplaceWith: "555-0000"}}, cfg.Replacements)
				assert.Equal(t, "mark", cfg.Rewrite.Wrap)
				assert.Equal(t, "prose", cfg.Rewrite.Preset)
				assert.False(t, *cfg.Rewrite.ReplaceLinks)
				assert.Equal(t, "https", cfg.Remote.Prefix)
				assert.Equal(t, "1", cfg.Remote.TagCollection()["a"])
			},
		},
		{
			name:      "unknown_field",
			input:     `{"inputs": ["*.html"], "replacements": [{"find": "a", "replace_with": "b"}], "extra": true}`,
			wantError: "unknown field",
		},
		{
			name:      "invalid_json",
			input:     `{"inputs": [`,
			wantError: "parsing JSON",
		},
		{
			name:      "invalid_config",
			input:     `{"replacements": [{"find": "a", "replace_with": "b"}]}`,
			wantError: "inputs is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := (&JSONParser{}).Parse(context.Background(), []byte(tt.input))
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestHCLParser(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantError string
		check     func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid_config",
			input: `
inputs = ["site/**/*.html"]
ignore = ["site/drafts/**"]
output = "dist"
async  = true

replacement {
  find         = "555-1234"
  replace_with = "555-0000"
}

replacement {
  find         = "555-9999"
  replace_with = "555-0001"
}

rewrite {
  portion_mode  = "first"
  replace_links = false
}

remote {
  host         = "api.example.com"
  campaign_key = "abc123"
  tags = {
    source = "web"
  }
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"site/**/*.html"}, cfg.Inputs)
				assert.Equal(t, []string{"site/drafts/**"}, cfg.Ignore)
				assert.Equal(t, "dist", cfg.Output)
				assert.True(t, cfg.Async)
				assert.Equal(t, []Replacement{
					{Find: "555-1234", ReplaceWith: "555-0000"},
					{Find: "555-9999", ReplaceWith: "555-0001"},
				}, cfg.Replacements)
				assert.Equal(t, "first", cfg.Rewrite.PortionMode)
				assert.Equal(t, "prose", cfg.Rewrite.Preset)
				require.NotNil(t, cfg.Rewrite.ReplaceLinks)
				assert.False(t, *cfg.Rewrite.ReplaceLinks)
				require.NotNil(t, cfg.Remote)
				assert.Equal(t, "https", cfg.Remote.Prefix)
				assert.Equal(t, "web", cfg.Remote.Tags["source"])
			},
		},
		{
			name: "minimal_config",
			input: `
inputs = ["index.html"]

replacement {
  find         = "a"
  replace_with = "b"
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Nil(t, cfg.Remote)
				require.NotNil(t, cfg.Rewrite.ReplaceLinks)
				assert.True(t, *cfg.Rewrite.ReplaceLinks)
			},
		},
		{
			name:      "missing_inputs",
			input:     `output = "dist"`,
			wantError: "decoding HCL",
		},
		{
			name:      "syntax_error",
			input:     `inputs = [`,
			wantError: "parsing HCL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := (&HCLParser{}).Parse(context.Background(), []byte(tt.input))
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
