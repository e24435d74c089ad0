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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "numswap.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Create evaluation context
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{},
	}

	// Define HCL schema
	type hclConfig struct {
		Replacements []struct {
			Find        string `hcl:"find"`
			ReplaceWith string `hcl:"replace_with"`
		} `hcl:"replacement,block"`
		Rewrite *struct {
			Preset       string `hcl:"preset,optional"`
			Wrap         string `hcl:"wrap,optional"`
			PortionMode  string `hcl:"portion_mode,optional"`
			ReplaceLinks *bool  `hcl:"replace_links,optional"`
		} `hcl:"rewrite,block"`
		Remote *struct {
			Host        string            `hcl:"host"`
			Prefix      string            `hcl:"prefix,optional"`
			CampaignKey string            `hcl:"campaign_key"`
			PageURL     string            `hcl:"page_url,optional"`
			Tags        map[string]string `hcl:"tags,optional"`
		} `hcl:"remote,block"`
		Inputs []string `hcl:"inputs"`
		Ignore []string `hcl:"ignore,optional"`
		Output string   `hcl:"output,optional"`
		Async  bool     `hcl:"async,optional"`
	}

	// Decode HCL
	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Inputs: hclCfg.Inputs,
		Ignore: hclCfg.Ignore,
		Output: hclCfg.Output,
		Async:  hclCfg.Async,
	}

	for _, r := range hclCfg.Replacements {
		cfg.Replacements = append(cfg.Replacements, Replacement{
			Find:        r.Find,
			ReplaceWith: r.ReplaceWith,
		})
	}

	if rw := hclCfg.Rewrite; rw != nil {
		cfg.Rewrite = RewriteArgs{
			Preset:       rw.Preset,
			Wrap:         rw.Wrap,
			PortionMode:  rw.PortionMode,
			ReplaceLinks: rw.ReplaceLinks,
		}
	}

	if r := hclCfg.Remote; r != nil {
		cfg.Remote = &RemoteArgs{
			Host:        r.Host,
			Prefix:      r.Prefix,
			CampaignKey: r.CampaignKey,
			PageURL:     r.PageURL,
			Tags:        r.Tags,
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}
