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
	"golang.org/x/net/html"
)

// 🚶 walker yields the nodes under root in pre-order from an explicit ancestor stack,
// never descending into elements rejected by include. It tolerates splices of the
// current node's siblings and is not restartable.
type walker struct {
	root    *html.Node
	include func(*html.Node) bool

	cur          *html.Node
	stack        []*html.Node
	skipChildren bool
	done         bool
}

func newWalker(root *html.Node, include func(*html.Node) bool) *walker {
	return &walker{root: root, include: include}
}

// next returns the following node, or nil once the walk has left root.
func (w *walker) next() *html.Node {
	if w.done {
		return nil
	}

	if w.cur == nil {
		w.cur = w.root
		return w.cur
	}

	if !w.skipChildren && w.cur.FirstChild != nil && w.include(w.cur) {
		w.stack = append(w.stack, w.cur)
		w.cur = w.cur.FirstChild
		return w.cur
	}
	w.skipChildren = false

	for len(w.stack) > 0 {
		if w.cur.NextSibling != nil {
			w.cur = w.cur.NextSibling
			return w.cur
		}
		w.cur = w.stack[len(w.stack)-1]
		w.stack = w.stack[:len(w.stack)-1]
	}

	w.done = true
	w.cur = nil
	return nil
}

// resumeAfter makes n the current node without visiting its children. n must share
// the parent of the node last returned by next.
func (w *walker) resumeAfter(n *html.Node) {
	w.cur = n
	w.skipChildren = true
}
