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
	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html"
)

// ✂️ replaceMatch splices the replacement for one resolved match into the tree and
// returns the node the walk should resume after.
func (f *Finder) replaceMatch(m Match, start Portion, inner []Portion, end *Portion) (*html.Node, error) {
	expanded := ""
	if f.opts.ReplaceFunc == nil && f.opts.ReplaceText == nil {
		expanded = expandTemplate(f.opts.Replace, m)
	}

	if start.IsEnd {
		return f.spliceSingle(expanded, m, start)
	}
	return f.spliceMulti(expanded, m, start, inner, *end)
}

func (f *Finder) spliceSingle(expanded string, m Match, p Portion) (*html.Node, error) {
	node := p.Node
	parent := node.Parent

	repl := f.opts.portionNode(expanded, p, m)
	if err := checkDetached(repl); err != nil {
		return nil, err
	}

	var inserted []*html.Node
	if p.IndexInNode > 0 {
		preceding := TextNode(node.Data[:p.IndexInNode])
		parent.InsertBefore(preceding, node)
		inserted = append(inserted, preceding)
	}

	parent.InsertBefore(repl, node)

	if p.EndIndexInNode < len(node.Data) {
		following := TextNode(node.Data[p.EndIndexInNode:])
		parent.InsertBefore(following, node)
		inserted = append(inserted, following)
	}

	parent.RemoveChild(node)

	f.records = append(f.records, RevertRecord{
		MatchIndex: m.Index,
		Steps:      []UndoStep{{Anchor: repl, Removed: node, Inserted: inserted}},
	})

	return repl, nil
}

// spliceMulti replaces every portion of a match that spans several text nodes. The
// start node keeps its text before the match, the end node keeps its text after it,
// and each portion is swapped for its own replacement node.
func (f *Finder) spliceMulti(expanded string, m Match, start Portion, inner []Portion, end Portion) (*html.Node, error) {
	first := f.opts.portionNode(expanded, start, m)
	middle := make([]*html.Node, len(inner))
	for i, p := range inner {
		middle[i] = f.opts.portionNode(expanded, p, m)
	}
	last := f.opts.portionNode(expanded, end, m)

	built := append(append([]*html.Node{first}, middle...), last)
	if err := checkDetached(built...); err != nil {
		return nil, err
	}

	steps := make([]UndoStep, 0, len(inner)+2)

	startNode := start.Node
	var preceding []*html.Node
	if start.IndexInNode > 0 {
		n := TextNode(startNode.Data[:start.IndexInNode])
		startNode.Parent.InsertBefore(n, startNode)
		preceding = append(preceding, n)
	}
	swap(startNode, first)
	steps = append(steps, UndoStep{Anchor: first, Removed: startNode, Inserted: preceding})

	for i, p := range inner {
		swap(p.Node, middle[i])
		steps = append(steps, UndoStep{Anchor: middle[i], Removed: p.Node})
	}

	endNode := end.Node
	parent := endNode.Parent
	parent.InsertBefore(last, endNode)
	var following []*html.Node
	if end.EndIndexInNode < len(endNode.Data) {
		n := TextNode(endNode.Data[end.EndIndexInNode:])
		parent.InsertBefore(n, endNode)
		following = append(following, n)
	}
	parent.RemoveChild(endNode)
	steps = append(steps, UndoStep{Anchor: last, Removed: endNode, Inserted: following})

	f.records = append(f.records, RevertRecord{MatchIndex: m.Index, Steps: steps})

	return last, nil
}

// swap puts repl where old is and detaches old.
func swap(old, repl *html.Node) {
	parent := old.Parent
	parent.InsertBefore(repl, old)
	parent.RemoveChild(old)
}

// checkDetached rejects replacement nodes that are already in a tree or repeated.
func checkDetached(nodes ...*html.Node) error {
	seen := make(map[*html.Node]struct{}, len(nodes))
	for _, n := range nodes {
		if n.Parent != nil || n.PrevSibling != nil || n.NextSibling != nil {
			return errors.Errorf("replacement node <%s> is already attached to a tree", n.Data)
		}
		if _, dup := seen[n]; dup {
			return errors.Errorf("replacement node <%s> returned for more than one portion", n.Data)
		}
		seen[n] = struct{}{}
	}
	return nil
}
