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

// 📐 PortionMode controls how replacement text is spread over the portions of a match.
type PortionMode string

const (
	// PortionModeRetain gives each portion the slice of the replacement that lines up
	// with its own slice of the match.
	PortionModeRetain PortionMode = "retain"
	// PortionModeFirst gives the whole replacement to the first portion and nothing to
	// the rest.
	PortionModeFirst PortionMode = "first"
)

// DefaultReplacement is the template used when Options.Replace is empty.
const DefaultReplacement = "$&"

// ReplaceFunc builds the node inserted for one portion. A nil result inserts an
// empty text node. Use ReplaceText for plain text.
type ReplaceFunc func(portion Portion, match Match) *html.Node

// TextFunc returns the text inserted for one portion. The text is never wrapped.
type TextFunc func(portion Portion, match Match) string

// 🔧 Options configures one find-and-replace invocation.
//
// A zero field is "unset" and may be filled in by Preset.
type Options struct {
	// Find is the pattern to search for. Required.
	Find Pattern

	// Replace is a template with $&, $`, $' and $1..$n tokens. Defaults to "$&".
	Replace string

	// ReplaceFunc, when set, takes precedence over ReplaceText, Replace and Wrap.
	ReplaceFunc ReplaceFunc

	// ReplaceText, when set, takes precedence over Replace and Wrap.
	ReplaceText TextFunc

	// Wrap names an element that wraps each replacement text.
	Wrap string

	// WrapElement is a prototype element shallow-cloned for each replacement. It takes
	// precedence over Wrap.
	WrapElement *html.Node

	// FilterElements rejects elements (and their subtrees) from search and replacement.
	FilterElements ElementPredicate

	// ForceContext forces a new text scope at every element it accepts. Use ForceAlways
	// for "every element" and ForceNever to explicitly disable a preset's value.
	ForceContext ElementPredicate

	// PortionMode defaults to PortionModeRetain.
	PortionMode PortionMode

	// Preset names a Presets entry merged into unset fields.
	Preset string
}

// mergePreset fills every unset field of o from preset. Fields set by the caller win.
func (o Options) mergePreset(preset Options) Options {
	if o.Find.IsZero() {
		o.Find = preset.Find
	}
	if o.Replace == "" {
		o.Replace = preset.Replace
	}
	if o.ReplaceFunc == nil {
		o.ReplaceFunc = preset.ReplaceFunc
	}
	if o.ReplaceText == nil {
		o.ReplaceText = preset.ReplaceText
	}
	if o.Wrap == "" {
		o.Wrap = preset.Wrap
	}
	if o.WrapElement == nil {
		o.WrapElement = preset.WrapElement
	}
	if o.FilterElements == nil {
		o.FilterElements = preset.FilterElements
	}
	if o.ForceContext == nil {
		o.ForceContext = preset.ForceContext
	}
	if o.PortionMode == "" {
		o.PortionMode = preset.PortionMode
	}
	return o
}

// resolve merges the named preset, applies defaults and validates the result.
func (o Options) resolve(presets Presets) (Options, error) {
	if o.Preset != "" {
		preset, ok := presets.Lookup(o.Preset)
		if !ok {
			return o, newConfigurationError("preset", o.Preset, ErrUnknownPreset)
		}
		o = o.mergePreset(preset)
	}

	if o.Find.IsZero() {
		return o, newConfigurationError("find", "a pattern is required", nil)
	}

	if o.Replace == "" {
		o.Replace = DefaultReplacement
	}

	switch o.PortionMode {
	case "":
		o.PortionMode = PortionModeRetain
	case PortionModeRetain, PortionModeFirst:
	default:
		return o, newConfigurationError("portion_mode", "must be \"retain\" or \"first\", got "+string(o.PortionMode), nil)
	}

	if o.WrapElement != nil && o.WrapElement.Type != html.ElementNode {
		return o, newConfigurationError("wrap", "wrap element must be an element node", nil)
	}

	return o, nil
}

// includes reports whether el passes the element filter. Non-element nodes always pass.
func (o Options) includes(n *html.Node) bool {
	if n.Type != html.ElementNode || o.FilterElements == nil {
		return true
	}
	return o.FilterElements(n)
}

// forcesContext reports whether el opens a fresh text scope.
func (o Options) forcesContext(n *html.Node) bool {
	return n.Type == html.ElementNode && o.ForceContext != nil && o.ForceContext(n)
}
