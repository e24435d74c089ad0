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
	"strings"

	"golang.org/x/net/html"
)

// 📜 aggregate mirrors the logical text runs of a subtree. Each entry is either a
// string leaf or a nested scope; a match never crosses from one leaf into another.
type aggregate []run

type run struct {
	text   string
	scope  aggregate
	nested bool
}

// leaves returns every string leaf in document order.
func (a aggregate) leaves() []string {
	var out []string
	for _, r := range a {
		if r.nested {
			out = append(out, r.scope.leaves()...)
			continue
		}
		out = append(out, r.text)
	}
	return out
}

// String concatenates every leaf. Its length equals the total length of the text
// nodes the walker visits.
func (a aggregate) String() string {
	return strings.Join(a.leaves(), "")
}

// aggregateText builds the aggregate for n. The walk is read-only.
func (o Options) aggregateText(n *html.Node) aggregate {
	switch n.Type {
	case html.TextNode:
		return aggregate{{text: n.Data}}
	case html.ElementNode, html.DocumentNode:
	default:
		return nil
	}

	if !o.includes(n) {
		return nil
	}

	txt := aggregate{{}}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			txt[len(txt)-1].text += c.Data
			continue
		}

		innerText := o.aggregateText(c)

		if o.forcesContext(c) {
			txt = append(txt, run{scope: innerText, nested: true}, run{})
			continue
		}

		if len(innerText) > 0 && !innerText[0].nested {
			txt[len(txt)-1].text += innerText[0].text
			innerText = innerText[1:]
		}
		if len(innerText) > 0 {
			txt = append(txt, run{scope: innerText, nested: true}, run{})
		}
	}

	return txt
}
