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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/pkg/tags"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

const (
	// PresetNone disables the rewriter preset.
	PresetNone         = "none"
	DefaultPreset      = "prose"
	DefaultPortionMode = "retain"
	DefaultPrefix      = "https"
)

// 🔄 Replacement is a number printed on the page and the number that replaces it
type Replacement struct {
	Find        string `json:"find" yaml:"find"`
	ReplaceWith string `json:"replace_with" yaml:"replace_with"`
}

// ✏️ RewriteArgs tunes the DOM rewriter
type RewriteArgs struct {
	Preset       string `json:"preset,omitempty" yaml:"preset,omitempty"`             // rewriter preset, "none" to disable
	Wrap         string `json:"wrap,omitempty" yaml:"wrap,omitempty"`                 // element wrapping each replaced portion
	PortionMode  string `json:"portion_mode,omitempty" yaml:"portion_mode,omitempty"` // "retain" or "first"
	ReplaceLinks *bool  `json:"replace_links,omitempty" yaml:"replace_links,omitempty"`
}

// 📡 RemoteArgs points at the number-request backend
type RemoteArgs struct {
	Host        string            `json:"host" yaml:"host"`
	Prefix      string            `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	CampaignKey string            `json:"campaign_key" yaml:"campaign_key"`
	PageURL     string            `json:"page_url,omitempty" yaml:"page_url,omitempty"`
	Tags        map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Replacements []Replacement `json:"replacements,omitempty" yaml:"replacements,omitempty"`
	Rewrite      RewriteArgs   `json:"rewrite,omitempty" yaml:"rewrite,omitempty"`
	Inputs       []string      `json:"inputs" yaml:"inputs"`
	Ignore       []string      `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Output       string        `json:"output,omitempty" yaml:"output,omitempty"`
	Remote       *RemoteArgs   `json:"remote,omitempty" yaml:"remote,omitempty"`
	Async        bool          `json:"async,omitempty" yaml:"async,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	// Read config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	// Get parser
	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	// Parse config
	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills defaults
func (cfg *Config) Validate() error {
	// Check required fields
	if len(cfg.Inputs) == 0 {
		return errors.Errorf("inputs is required")
	}
	if len(cfg.Replacements) == 0 && cfg.Remote == nil {
		return errors.Errorf("replacements or remote is required")
	}
	for i, r := range cfg.Replacements {
		if r.Find == "" {
			return errors.Errorf("replacements[%d].find is required", i)
		}
	}

	// Rewrite defaults
	if cfg.Rewrite.Preset == "" {
		cfg.Rewrite.Preset = DefaultPreset
	}
	switch cfg.Rewrite.PortionMode {
	case "":
		cfg.Rewrite.PortionMode = DefaultPortionMode
	case "retain", "first":
	default:
		return errors.Errorf("rewrite.portion_mode must be \"retain\" or \"first\", got %q", cfg.Rewrite.PortionMode)
	}
	if cfg.Rewrite.ReplaceLinks == nil {
		replace := true
		cfg.Rewrite.ReplaceLinks = &replace
	}

	// Remote
	if r := cfg.Remote; r != nil {
		if r.Host == "" {
			return errors.Errorf("remote.host is required")
		}
		if r.CampaignKey == "" {
			return errors.Errorf("remote.campaign_key is required")
		}
		switch r.Prefix {
		case "":
			r.Prefix = DefaultPrefix
		case "http", "https":
		default:
			return errors.Errorf("remote.prefix must be \"http\" or \"https\", got %q", r.Prefix)
		}
		if err := r.TagCollection().Validate(); err != nil {
			return errors.Errorf("remote.tags: %w", err)
		}
	}

	// Clean up paths
	if cfg.Output != "" {
		cfg.Output = filepath.Clean(cfg.Output)
	}

	return nil
}

// TagCollection returns the configured tags.
func (r *RemoteArgs) TagCollection() tags.Collection {
	return tags.Collection(r.Tags).Merge(nil)
}

// RewritePreset returns the preset to hand to the rewriter, "" when disabled.
func (cfg *Config) RewritePreset() string {
	if cfg.Rewrite.Preset == PresetNone {
		return ""
	}
	return cfg.Rewrite.Preset
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	output := cfg.Output
	if output == "" {
		output = "(in place)"
	}
	source := fmt.Sprintf("%d replacement(s)", len(cfg.Replacements))
	if cfg.Remote != nil {
		source += fmt.Sprintf(" + %s://%s", cfg.Remote.Prefix, cfg.Remote.Host)
	}
	return fmt.Sprintf("%s [%s] -> %s", strings.Join(cfg.Inputs, ","), source, output)
}
