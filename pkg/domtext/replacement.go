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
	"strconv"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// 🧩 Portion is the part of a match that falls inside one text node.
type Portion struct {
	// Node is the text node holding this portion.
	Node *html.Node
	// Index is the position of the portion within its match.
	Index int
	// Text is the slice of Node.Data covered by the match.
	Text string
	// IndexInMatch is the byte offset of Text from the start of the match.
	IndexInMatch int
	// IndexInNode and EndIndexInNode bound Text within Node.Data.
	IndexInNode    int
	EndIndexInNode int
	// IsEnd marks the last portion of the match.
	IsEnd bool
}

var tokenPattern = regexp.MustCompile("\\$(\\d+|&|`|')")

// TextNode returns a detached text node holding s.
func TextNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// expandTemplate substitutes $&, $`, $' and $n against m.
func expandTemplate(tmpl string, m Match) string {
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(tok string) string {
		switch t := tok[1:]; t {
		case "&":
			return m.Groups[0]
		case "`":
			return m.Before
		case "'":
			return m.After
		default:
			n, err := strconv.Atoi(t)
			if err != nil || n >= len(m.Groups) {
				return ""
			}
			return m.Groups[n]
		}
	})
}

// portionText carves the text for p out of the expanded replacement.
func (o Options) portionText(expanded string, p Portion) string {
	if o.PortionMode == PortionModeFirst {
		if p.IndexInMatch > 0 {
			return ""
		}
		return expanded
	}

	from := runeFloor(expanded, p.IndexInMatch)
	if p.IsEnd {
		return expanded[from:]
	}
	return expanded[from:runeFloor(expanded, p.IndexInMatch+len(p.Text))]
}

// runeFloor clamps i into s and moves it back to the nearest rune start.
func runeFloor(s string, i int) int {
	if i <= 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// portionNode builds the node inserted in place of p.
func (o Options) portionNode(expanded string, p Portion, m Match) *html.Node {
	if o.ReplaceFunc != nil {
		if n := o.ReplaceFunc(p, m); n != nil {
			return n
		}
		return TextNode("")
	}
	if o.ReplaceText != nil {
		return TextNode(o.ReplaceText(p, m))
	}

	text := TextNode(o.portionText(expanded, p))
	if text.Data == "" {
		return text
	}

	wrapper := o.newWrapper()
	if wrapper == nil {
		return text
	}
	wrapper.AppendChild(text)
	return wrapper
}

func (o Options) newWrapper() *html.Node {
	if proto := o.WrapElement; proto != nil {
		clone := &html.Node{
			Type:      proto.Type,
			DataAtom:  proto.DataAtom,
			Data:      proto.Data,
			Namespace: proto.Namespace,
		}
		clone.Attr = append([]html.Attribute(nil), proto.Attr...)
		return clone
	}
	if o.Wrap != "" {
		return &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Lookup([]byte(o.Wrap)),
			Data:     o.Wrap,
		}
	}
	return nil
}
