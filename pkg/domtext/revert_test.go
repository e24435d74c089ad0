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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestFinder_Revert(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts Options
	}{
		{
			name: "single_node",
			src:  "<p>Call 555-1234 now</p>",
			opts: Options{Find: Literal("555-1234"), Replace: "000-0000"},
		},
		{
			name: "multi_node_with_surplus",
			src:  "<p>Call 55<i>5-1</i>234 now</p>",
			opts: Options{Find: Literal("555-1234"), Wrap: "mark"},
		},
		{
			name: "many_matches_across_scopes",
			src:  "<div>555-1234 <b>555-</b>1234</div><p>x 555-1234 y 555-1234</p>",
			opts: Options{Find: Literal("555-1234"), Replace: "0", Preset: PresetProse},
		},
		{
			name: "first_mode",
			src:  "<p>555-<b>12</b>34</p>",
			opts: Options{Find: Literal("555-1234"), Replace: "[$&]", PortionMode: PortionModeFirst},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := parseBody(t, tt.src)
			before := innerHTML(t, body)

			f, err := FindAndReplace(testContext(t), body, tt.opts)
			require.NoError(t, err)
			require.Positive(t, f.Replaced(), "at least one match should be replaced")
			require.NotEqual(t, before, innerHTML(t, body), "tree should change")

			f.Revert()
			assert.Equal(t, before, innerHTML(t, body), "revert should restore the tree")
			assert.Empty(t, f.Records(), "records should be cleared")

			f.Revert()
			assert.Equal(t, before, innerHTML(t, body), "second revert should be a no-op")
		})
	}
}

func TestFinder_RevertRestoresNodeIdentity(t *testing.T) {
	body := parseBody(t, "<p>Call 555-<b>1234</b> now</p>")
	p := findElement(body, "p")
	b := findElement(body, "b")
	startText := p.FirstChild
	endText := b.FirstChild

	f, err := FindAndReplace(testContext(t), body, Options{Find: Literal("555-1234"), Replace: "000-0000"})
	require.NoError(t, err)
	require.Nil(t, startText.Parent, "start node should be detached")
	require.Nil(t, endText.Parent, "end node should be detached")

	f.Revert()

	assert.Same(t, startText, p.FirstChild, "start node should be back in place")
	assert.Same(t, endText, b.FirstChild, "end node should be back in place")
	assert.Nil(t, endText.NextSibling, "no leftover fragments after end node")
	assert.Same(t, b, startText.NextSibling, "start node should precede <b>")
}

func TestFinder_PartialRevertAfterSpliceError(t *testing.T) {
	body := parseBody(t, "<p>aa</p><p>aa</p>")
	before := innerHTML(t, body)
	shared := TextNode("x")

	calls := 0
	f, err := FindAndReplace(testContext(t), body, Options{
		Find:   Literal("aa"),
		Preset: PresetProse,
		ReplaceFunc: func(Portion, Match) *html.Node {
			calls++
			return shared
		},
	})
	require.Error(t, err, "second match should reuse an attached node")
	require.NotNil(t, f)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, f.Replaced(), "first match should be committed")

	f.Revert()
	assert.Equal(t, before, innerHTML(t, body), "committed match should revert")
}

func TestFinder_RevertToleratesDetachedFragments(t *testing.T) {
	body := parseBody(t, "<p>Call 555-1234 now</p>")
	before := innerHTML(t, body)

	f, err := FindAndReplace(testContext(t), body, Options{Find: Literal("555-1234"), Replace: "0"})
	require.NoError(t, err)

	p := findElement(body, "p")
	p.RemoveChild(p.FirstChild)

	f.Revert()
	assert.Equal(t, before, innerHTML(t, body))
}
