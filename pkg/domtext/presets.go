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

// PresetProse is the name of the built-in prose preset.
const PresetProse = "prose"

// 📚 Presets maps preset names to partial option bundles. Treat it as read-only once
// handed to a Rewriter.
type Presets map[string]Options

// DefaultPresets returns a fresh registry holding the built-in presets.
func DefaultPresets() Presets {
	return Presets{
		PresetProse: {
			FilterElements: IsProse,
			ForceContext:   IsNonInlineProse,
		},
	}
}

// Lookup returns the preset registered under name.
func (p Presets) Lookup(name string) (Options, bool) {
	if p == nil {
		return Options{}, false
	}
	opts, ok := p[name]
	return opts, ok
}

// With returns a copy of p with name bound to opts.
func (p Presets) With(name string, opts Options) Presets {
	out := make(Presets, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[name] = opts
	return out
}
