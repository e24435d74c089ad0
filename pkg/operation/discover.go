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
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔍 Discover expands the input globs under baseDir and drops ignored files.
// Returned paths are slash separated, relative to baseDir, sorted and unique.
func Discover(ctx context.Context, baseDir string, inputs, ignore []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	fsys := os.DirFS(baseDir)

	seen := make(map[string]bool)
	var files []string
	for _, input := range inputs {
		pattern, err := relPattern(baseDir, input)
		if err != nil {
			return nil, err
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid input pattern: %q", input)
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", input, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", input).Msg("input pattern matched no files")
		}

		for _, m := range matches {
			if seen[m] || shouldIgnore(ctx, ignore, m) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// relPattern turns an input glob into one relative to baseDir.
func relPattern(baseDir, pattern string) (string, error) {
	if !filepath.IsAbs(pattern) {
		return filepath.ToSlash(filepath.Clean(pattern)), nil
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", errors.Errorf("resolving base directory: %w", err)
	}
	rel, err := filepath.Rel(absBase, pattern)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("input %q is outside %s", pattern, baseDir)
	}
	return filepath.ToSlash(rel), nil
}

// 🙈 shouldIgnore reports whether path matches any ignore pattern
func shouldIgnore(ctx context.Context, patterns []string, path string) bool {
	logger := zerolog.Ctx(ctx)
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err != nil {
			logger.Debug().Str("pattern", pattern).Str("path", path).Err(err).Msg("error matching pattern")
			continue
		}
		if matched {
			logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
			return true
		}
	}
	return false
}
