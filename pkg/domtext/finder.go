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
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html"
)

// 🏭 Rewriter runs find-and-replace invocations against a fixed preset registry.
type Rewriter struct {
	presets Presets
}

// New returns a Rewriter bound to presets. A nil registry means DefaultPresets.
func New(presets Presets) *Rewriter {
	if presets == nil {
		presets = DefaultPresets()
	}
	return &Rewriter{presets: presets}
}

var defaultRewriter = New(nil)

// FindAndReplace runs opts against root with the default preset registry.
func FindAndReplace(ctx context.Context, root *html.Node, opts Options) (*Finder, error) {
	return defaultRewriter.FindAndReplace(ctx, root, opts)
}

// 🔄 Finder is the handle returned by one invocation. It owns the revert records of
// every match it replaced.
type Finder struct {
	root    *html.Node
	opts    Options
	records []RevertRecord
	found   int
}

type scanState int

const (
	stateScanning scanState = iota
	stateMatchOpen
	stateDone
)

func (s scanState) String() string {
	switch s {
	case stateScanning:
		return "scanning"
	case stateMatchOpen:
		return "match_open"
	default:
		return "done"
	}
}

// FindAndReplace replaces every match of opts.Find under root.
//
// Errors from option resolution, aggregation or search leave the tree untouched and
// return a nil Finder. An error raised while splicing returns the Finder alongside it
// so the matches already committed can still be reverted.
func (r *Rewriter) FindAndReplace(ctx context.Context, root *html.Node, opts Options) (*Finder, error) {
	logger := zerolog.Ctx(ctx)

	if root == nil {
		return nil, newConfigurationError("root", "root node is nil", nil)
	}
	if root.Type != html.ElementNode && root.Type != html.DocumentNode {
		return nil, newConfigurationError("root", "root must be an element or document node", nil)
	}

	resolved, err := opts.resolve(r.presets)
	if err != nil {
		return nil, err
	}

	matches, err := resolved.search(resolved.aggregateText(root))
	if err != nil {
		return nil, err
	}

	f := &Finder{root: root, opts: resolved, found: len(matches)}

	logger.Debug().
		Str("pattern", resolved.Find.String()).
		Str("preset", resolved.Preset).
		Int("matches", len(matches)).
		Msg("searched subtree")

	if len(matches) == 0 {
		return f, nil
	}

	if err := f.processMatches(ctx, matches); err != nil {
		return f, errors.Errorf("replacing matches: %w", err)
	}

	return f, nil
}

// processMatches walks the live tree once, resolving the portions of each queued
// match and splicing it before moving on. Offsets of later matches stay valid because
// the cursor is reset to the end of each spliced match.
func (f *Finder) processMatches(ctx context.Context, queue []Match) error {
	logger := zerolog.Ctx(ctx)

	w := newWalker(f.root, f.opts.includes)
	state := stateScanning
	match, queue := queue[0], queue[1:]

	var (
		atIndex int
		start   Portion
		inner   []Portion
		end     *Portion
	)

	for state != stateDone {
		node := w.next()
		if node == nil {
			logger.Warn().
				Int("unresolved", len(queue)+1).
				Str("state", state.String()).
				Msg("walk ended before every match was placed")
			return nil
		}
		if node.Type != html.TextNode {
			continue
		}

		length := len(node.Data)
		nodeEnd := atIndex + length

		switch state {
		case stateScanning:
			if nodeEnd > match.StartIndex {
				start = Portion{
					Node:         node,
					IndexInNode:  match.StartIndex - atIndex,
					IndexInMatch: 0,
				}
				if nodeEnd >= match.EndIndex {
					start.EndIndexInNode = match.EndIndex - atIndex
					start.IsEnd = true
				} else {
					start.EndIndexInNode = length
				}
				start.Text = node.Data[start.IndexInNode:start.EndIndexInNode]
				state = stateMatchOpen
			}
		case stateMatchOpen:
			p := Portion{
				Node:           node,
				Index:          len(inner) + 1,
				IndexInMatch:   atIndex - match.StartIndex,
				EndIndexInNode: length,
			}
			if nodeEnd >= match.EndIndex {
				p.EndIndexInNode = match.EndIndex - atIndex
				p.IsEnd = true
			}
			p.Text = node.Data[:p.EndIndexInNode]
			if p.IsEnd {
				end = &p
			} else {
				inner = append(inner, p)
			}
		}

		atIndex = nodeEnd

		if state != stateMatchOpen || !(start.IsEnd || end != nil) {
			continue
		}

		last, err := f.replaceMatch(match, start, inner, end)
		if err != nil {
			return errors.Errorf("match %d at %d-%d: %w", match.Index, match.StartIndex, match.EndIndex, err)
		}

		logger.Trace().
			Int("match", match.Index).
			Int("start", match.StartIndex).
			Int("end", match.EndIndex).
			Int("portions", len(inner)+2-boolInt(start.IsEnd)).
			Msg("spliced match")

		atIndex = match.EndIndex
		w.resumeAfter(last)

		start, inner, end = Portion{}, nil, nil
		if len(queue) == 0 {
			state = stateDone
			continue
		}
		match, queue = queue[0], queue[1:]
		state = stateScanning
	}

	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Revert undoes every mutation of this invocation in reverse order. Calling it again
// is a no-op.
func (f *Finder) Revert() {
	for i := len(f.records) - 1; i >= 0; i-- {
		f.records[i].undo()
	}
	f.records = nil
}

// Records returns a copy of the pending revert records in application order.
func (f *Finder) Records() []RevertRecord {
	return append([]RevertRecord(nil), f.records...)
}

// Matches returns the number of matches found by the search.
func (f *Finder) Matches() int {
	return f.found
}

// Replaced returns the number of matches spliced and not yet reverted.
func (f *Finder) Replaced() int {
	return len(f.records)
}

// Options returns the options after preset merge and defaults.
func (f *Finder) Options() Options {
	return f.opts
}
