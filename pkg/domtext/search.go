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
	"fmt"
)

// 🎯 Match is one occurrence of the pattern inside a single text run.
type Match struct {
	// Index is the position of the match within the invocation.
	Index int
	// StartIndex and EndIndex are byte offsets into the aggregated text.
	StartIndex int
	EndIndex   int
	// Groups holds the full match at 0 followed by capture groups; unmatched groups are "".
	Groups []string
	// Before and After hold the run text around the match.
	Before string
	After  string
}

// Text returns the matched text.
func (m Match) Text() string {
	return m.Groups[0]
}

// Len returns the byte length of the match.
func (m Match) Len() int {
	return m.EndIndex - m.StartIndex
}

type searcher struct {
	pattern Pattern
	offset  int
	matches []Match
}

// search runs the pattern over every leaf of agg in document order.
func (o Options) search(agg aggregate) ([]Match, error) {
	s := &searcher{pattern: o.Find}
	if err := s.walk(agg); err != nil {
		return nil, err
	}
	return s.matches, nil
}

func (s *searcher) walk(agg aggregate) error {
	for _, r := range agg {
		if r.nested {
			if err := s.walk(r.scope); err != nil {
				return err
			}
			continue
		}

		for _, loc := range s.pattern.find(r.text) {
			m, err := s.prepMatch(r.text, loc)
			if err != nil {
				return err
			}
			s.matches = append(s.matches, m)
		}

		s.offset += len(r.text)
	}
	return nil
}

func (s *searcher) prepMatch(text string, loc []int) (Match, error) {
	if loc[0] == loc[1] {
		return Match{}, newConfigurationError("find",
			fmt.Sprintf("pattern %q matched the empty string at offset %d", s.pattern, s.offset+loc[0]),
			ErrZeroLengthMatch)
	}

	groups := make([]string, len(loc)/2)
	for i := range groups {
		if loc[2*i] >= 0 {
			groups[i] = text[loc[2*i]:loc[2*i+1]]
		}
	}

	return Match{
		Index:      len(s.matches),
		StartIndex: s.offset + loc[0],
		EndIndex:   s.offset + loc[1],
		Groups:     groups,
		Before:     text[:loc[0]],
		After:      text[loc[1]:],
	}, nil
}
