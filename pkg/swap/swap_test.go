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
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/walteh/numswap/pkg/domtext"
)

const page = `<html><head><title>555-1234</title></head><body>` +
	`<p>Call <a href="tel:555-1234">555-<b>1234</b></a></p>` +
	`<a href="clkn/tel/555-1234">x</a><a href="tel:555-9999">y</a><a href="/tel/555-1234">z</a>` +
	`</body></html>`

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.TestWriter{T: t}).WithContext(context.Background())
}

func parse(t *testing.T, src string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, html.Render(&buf, n))
	return buf.String()
}

func TestApply(t *testing.T) {
	doc := parse(t, page)
	before := render(t, doc)

	s := Apply(testContext(t), doc, []Pair{{Find: "555-1234", ReplaceWith: "555-0000"}}, Options{Preset: domtext.PresetProse})

	require.Empty(t, s.Failures)
	assert.NoError(t, s.Err())
	assert.Equal(t, 1, s.Matches, "split number in the paragraph should match once")
	assert.Equal(t, 2, s.Links, "tel: and clk?/tel/ links should be rewritten")
	assert.True(t, s.Changed())

	want := `<html><head><title>555-1234</title></head><body>` +
		`<p>Call <a href="tel:555-0000">555-<b>0000</b></a></p>` +
		`<a href="clkn/tel/555-0000">x</a><a href="tel:555-9999">y</a><a href="/tel/555-1234">z</a>` +
		`</body></html>`
	assert.Equal(t, want, render(t, doc), "head text should be untouched")

	s.Revert()
	assert.Equal(t, before, render(t, doc), "revert should restore text and links")
	assert.False(t, s.Changed())

	s.Revert()
	assert.Equal(t, before, render(t, doc), "second revert should be a no-op")
}

func TestApply_MultiplePairs(t *testing.T) {
	doc := parse(t, `<body><p>555-1234 and (555) 123-9999</p><a href="tel:(555) 123-9999">c</a></body>`)

	s := Apply(testContext(t), doc, []Pair{
		{Find: "555-1234", ReplaceWith: "800-0001"},
		{Find: "(555) 123-9999", ReplaceWith: "(800) 000-0002"},
	}, Options{Preset: domtext.PresetProse, Wrap: "span"})

	require.Empty(t, s.Failures)
	assert.Equal(t, 2, s.Matches)
	assert.Equal(t, 1, s.Links)
	assert.Contains(t, render(t, doc), `<p><span>800-0001</span> and <span>(800) 000-0002</span></p>`)
	assert.Contains(t, render(t, doc), `<a href="tel:(800) 000-0002">c</a>`)
}

func TestApply_FailuresAreNotFatal(t *testing.T) {
	doc := parse(t, `<body><p>555-1234</p></body>`)

	s := Apply(testContext(t), doc, []Pair{
		{Find: "", ReplaceWith: "nothing"},
		{Find: "555-1234", ReplaceWith: "0"},
	}, Options{})

	require.Len(t, s.Failures, 1)
	assert.Equal(t, "", s.Failures[0].Pair.Find)

	var cfgErr *domtext.ConfigurationError
	assert.ErrorAs(t, s.Failures[0].Err, &cfgErr)
	assert.ErrorIs(t, s.Failures[0].Err, domtext.ErrZeroLengthMatch)
	assert.Contains(t, s.Err().Error(), "1 replacement(s) failed")

	assert.Equal(t, 1, s.Matches, "later pairs should still run")
	assert.Contains(t, render(t, doc), "<p>0</p>")
}

func TestApply_SkipLinks(t *testing.T) {
	doc := parse(t, `<body><a href="tel:555-1234">555-1234</a></body>`)

	s := Apply(testContext(t), doc, []Pair{{Find: "555-1234", ReplaceWith: "0"}}, Options{SkipLinks: true})

	assert.Equal(t, 1, s.Matches)
	assert.Equal(t, 0, s.Links)
	assert.Contains(t, render(t, doc), `<a href="tel:555-1234">0</a>`)
}

func TestApply_RootWithoutBody(t *testing.T) {
	doc := parse(t, `<body><div><p>555-1234</p><a href="tel:555-1234">call</a></div></body>`)
	div := doc.FirstChild.LastChild.FirstChild
	require.Equal(t, "div", div.Data)
	div.Parent.RemoveChild(div)

	s := Apply(testContext(t), div, []Pair{{Find: "555-1234", ReplaceWith: "0"}}, Options{Preset: domtext.PresetProse})

	assert.Equal(t, 1, s.Matches)
	assert.Equal(t, 1, s.Links)
	assert.Equal(t, `<div><p>0</p><a href="tel:0">call</a></div>`, render(t, div))
}
