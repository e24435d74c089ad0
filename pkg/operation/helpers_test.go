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

package operation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/walteh/numswap/pkg/config"
	"github.com/walteh/numswap/pkg/swap"
)

const (
	callPage        = `<html><head></head><body><p>Call 555-1234 now</p><a href="tel:555-1234">call</a></body></html>`
	callPageSwapped = `<html><head></head><body><p>Call 555-9999 now</p><a href="tel:555-9999">call</a></body></html>`
	quietPage       = "<html><head></head><body><p>nothing here</p></body></html>\n"
)

var testPairs = []swap.Pair{{Find: "555-1234", ReplaceWith: "555-9999"}}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t})
	return logger.WithContext(context.Background())
}

// 🧪 writePages creates files under dir, keyed by slash path
func writePages(t *testing.T, dir string, pages map[string]string) {
	t.Helper()
	for name, content := range pages {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func readPage(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

// 🧪 testConfig builds a validated config over the given inputs
func testConfig(t *testing.T, output string, inputs ...string) *config.Config {
	t.Helper()
	cfg := &config.Config{
		Replacements: []config.Replacement{{Find: "555-1234", ReplaceWith: "555-9999"}},
		Inputs:       inputs,
		Output:       output,
	}
	require.NoError(t, cfg.Validate())
	return cfg
}
