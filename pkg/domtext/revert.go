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

// ↩️ UndoStep describes how to reverse the replacement of one text node: remove the
// Inserted fragments, then put Removed back where Anchor now sits.
type UndoStep struct {
	// Anchor is the replacement node that took the original node's place.
	Anchor *html.Node
	// Removed is the original text node.
	Removed *html.Node
	// Inserted holds the preceding/following text fragments split off Removed.
	Inserted []*html.Node
}

// RevertRecord groups the undo steps of one match in the order they were applied.
type RevertRecord struct {
	MatchIndex int
	Steps      []UndoStep
}

func (s UndoStep) undo() {
	for _, n := range s.Inserted {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}

	parent := s.Anchor.Parent
	if parent == nil {
		return
	}
	parent.InsertBefore(s.Removed, s.Anchor)
	parent.RemoveChild(s.Anchor)
}

func (r RevertRecord) undo() {
	for i := len(r.Steps) - 1; i >= 0; i-- {
		r.Steps[i].undo()
	}
}
