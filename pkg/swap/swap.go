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

package swap

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html"

	"github.com/walteh/numswap/pkg/domtext"
)

// telHref matches dialable links and click-tracked dialable links.
var telHref = regexp.MustCompile(`^(tel:|clk[a-z]/tel/)(.*)`)

// Pair is one number printed on the page and the number that replaces it.
type Pair struct {
	Find        string
	ReplaceWith string
}

// Options tune how each pair is applied.
type Options struct {
	// Preset, Wrap and PortionMode are handed to the rewriter unchanged
	Preset      string
	Wrap        string
	PortionMode domtext.PortionMode

	// SkipLinks leaves tel: hrefs alone
	SkipLinks bool

	// Rewriter defaults to one using domtext.DefaultPresets
	Rewriter *domtext.Rewriter
}

// Failure records a pair whose text rewrite failed.
type Failure struct {
	Pair Pair
	Err  error
}

// 🔁 Session is the outcome of one Apply call.
type Session struct {
	// Matches counts text matches replaced across all pairs
	Matches int
	// Links counts hrefs rewritten across all pairs
	Links int
	// Failures holds per-pair rewrite errors, in pair order
	Failures []Failure

	undo []func()
}

// Changed reports whether anything in the tree was modified.
func (s *Session) Changed() bool {
	return s.Matches > 0 || s.Links > 0
}

// Err joins every recorded failure, or returns nil.
func (s *Session) Err() error {
	if len(s.Failures) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(s.Failures))
	for _, f := range s.Failures {
		msgs = append(msgs, f.Pair.Find+": "+f.Err.Error())
	}
	return errors.Errorf("%d replacement(s) failed: %s", len(s.Failures), strings.Join(msgs, "; "))
}

// Revert undoes every change of the session in reverse order. Calling it again is a no-op.
func (s *Session) Revert() {
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i]()
	}
	s.undo = nil
	s.Matches = 0
	s.Links = 0
}

// Apply swaps each pair into root.
//
// Text is rewritten under the <body> element (root itself when there is none) and then
// every anchor whose href is "tel:<find>" or "clk?/tel/<find>" is pointed at the
// replacement. A failing pair is logged and recorded; the remaining pairs still run.
func Apply(ctx context.Context, root *html.Node, pairs []Pair, opts Options) *Session {
	logger := zerolog.Ctx(ctx)

	rw := opts.Rewriter
	if rw == nil {
		rw = domtext.New(nil)
	}

	doc := goquery.NewDocumentFromNode(root)
	body := bodyOf(doc, root)

	s := &Session{}
	for _, pair := range pairs {
		f, err := rw.FindAndReplace(ctx, body, domtext.Options{
			Find:        domtext.Literal(pair.Find),
			Replace:     pair.ReplaceWith,
			Wrap:        opts.Wrap,
			PortionMode: opts.PortionMode,
			Preset:      opts.Preset,
		})
		if f != nil {
			s.undo = append(s.undo, f.Revert)
			s.Matches += f.Replaced()
		}
		if err != nil {
			logger.Warn().Err(err).Str("find", pair.Find).Msg("replacing number text")
			s.Failures = append(s.Failures, Failure{Pair: pair, Err: err})
		}

		if opts.SkipLinks {
			continue
		}
		s.Links += s.replaceLinks(doc, pair)
	}

	logger.Debug().
		Int("pairs", len(pairs)).
		Int("matches", s.Matches).
		Int("links", s.Links).
		Int("failures", len(s.Failures)).
		Msg("applied replacement numbers")

	return s
}

func (s *Session) replaceLinks(doc *goquery.Document, pair Pair) int {
	count := 0
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		m := telHref.FindStringSubmatch(href)
		if m == nil || m[2] != pair.Find {
			return
		}
		sel.SetAttr("href", m[1]+pair.ReplaceWith)
		s.undo = append(s.undo, func() { sel.SetAttr("href", href) })
		count++
	})
	return count
}

func bodyOf(doc *goquery.Document, root *html.Node) *html.Node {
	if root.Type == html.ElementNode && root.Data == "body" {
		return root
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return body.Get(0)
	}
	return root
}
