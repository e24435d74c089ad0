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

// 🧱 ElementPredicate classifies an element node.
type ElementPredicate func(el *html.Node) bool

// NonProseElements never contain prose worth matching.
var NonProseElements = map[string]struct{}{
	"br": {}, "hr": {},
	// media / source
	"script": {}, "style": {}, "img": {}, "video": {}, "audio": {}, "canvas": {}, "svg": {}, "map": {}, "object": {},
	// inputs
	"input": {}, "textarea": {}, "select": {}, "option": {}, "optgroup": {}, "button": {},
}

// NonContiguousProseElements break the flow of inline prose.
var NonContiguousProseElements = map[string]struct{}{
	// block
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "dd": {}, "div": {},
	"dl": {}, "fieldset": {}, "figcaption": {}, "figure": {}, "footer": {}, "form": {}, "h1": {}, "h2": {}, "h3": {},
	"h4": {}, "h5": {}, "h6": {}, "header": {}, "hgroup": {}, "hr": {}, "main": {}, "nav": {}, "noscript": {}, "ol": {},
	"output": {}, "p": {}, "pre": {}, "section": {}, "ul": {},
	// misc, not part of continuous inline prose
	"br": {}, "li": {}, "summary": {}, "dt": {}, "details": {}, "rp": {}, "rt": {}, "rtc": {},
	// media / source
	"script": {}, "style": {}, "img": {}, "video": {}, "audio": {}, "canvas": {}, "svg": {}, "map": {}, "object": {},
	// inputs
	"input": {}, "textarea": {}, "select": {}, "option": {}, "optgroup": {}, "button": {},
	// tables
	"table": {}, "tbody": {}, "thead": {}, "th": {}, "tr": {}, "td": {}, "caption": {}, "col": {}, "tfoot": {}, "colgroup": {},
}

func tagName(n *html.Node) string {
	return strings.ToLower(n.Data)
}

// IsProse reports whether el may hold prose, i.e. it is not in NonProseElements.
func IsProse(el *html.Node) bool {
	if el.Type != html.ElementNode {
		return true
	}
	_, ok := NonProseElements[tagName(el)]
	return !ok
}

// IsNonInlineProse reports whether el starts a new text context.
func IsNonInlineProse(el *html.Node) bool {
	if el.Type != html.ElementNode {
		return false
	}
	_, ok := NonContiguousProseElements[tagName(el)]
	return ok
}

// ForceAlways forces a new text context at every element.
func ForceAlways(*html.Node) bool { return true }

// ForceNever never forces a new text context. Use it to opt out of a preset's ForceContext.
func ForceNever(*html.Node) bool { return false }

// ExcludeTags returns a filter rejecting the named elements.
func ExcludeTags(tags ...string) ElementPredicate {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = struct{}{}
	}
	return func(el *html.Node) bool {
		if el.Type != html.ElementNode {
			return true
		}
		_, ok := set[tagName(el)]
		return !ok
	}
}
