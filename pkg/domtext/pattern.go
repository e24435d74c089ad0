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

package domtext

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🔍 Pattern describes the text to find.
//
// Global patterns yield every match in each text run; non-global patterns yield at
// most the first match per run.
type Pattern struct {
	re     *regexp.Regexp
	global bool
}

// Literal finds every occurrence of s. Metacharacters are escaped.
func Literal(s string) Pattern {
	return Pattern{re: regexp.MustCompile(regexp.QuoteMeta(s)), global: true}
}

// Regexp wraps re. Pass global=false to keep only the first match per text run.
func Regexp(re *regexp.Regexp, global bool) Pattern {
	return Pattern{re: re, global: global}
}

// MustCompile compiles expr as a global pattern and panics on error.
func MustCompile(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr), global: true}
}

// Compile compiles expr as a global pattern.
func Compile(expr string) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, errors.Errorf("compiling pattern %q: %w", expr, err)
	}
	return Pattern{re: re, global: true}, nil
}

// IsZero reports whether the pattern is unset.
func (p Pattern) IsZero() bool {
	return p.re == nil
}

// Global reports whether every match per text run is collected.
func (p Pattern) Global() bool {
	return p.global
}

func (p Pattern) String() string {
	if p.re == nil {
		return ""
	}
	return p.re.String()
}

// find returns submatch byte indexes for text, honoring the global flag.
func (p Pattern) find(text string) [][]int {
	if p.global {
		return p.re.FindAllStringSubmatchIndex(text, -1)
	}
	if loc := p.re.FindStringSubmatchIndex(text); loc != nil {
		return [][]int{loc}
	}
	return nil
}
