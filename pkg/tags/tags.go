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

package tags

import (
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Collection holds number-matching tags as key/value pairs.
type Collection map[string]string

// Parse reads tags in "key1:value1,key2:value2" form.
//
// An entry without a colon maps to the empty string. Only the text between the first
// and second colon is kept as the value. Blank entries are skipped.
func Parse(s string) Collection {
	out := Collection{}
	for _, entry := range strings.Split(s, ",") {
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		value := ""
		if len(parts) > 1 {
			value = parts[1]
		}
		out[parts[0]] = value
	}
	return out
}

// Keys returns the tag keys in sorted order.
func (c Collection) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ScriptTags encodes the collection as "&k1=v1&k2=v2" in sorted key order.
func (c Collection) ScriptTags() string {
	var b strings.Builder
	for _, k := range c.Keys() {
		b.WriteString("&")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(c[k])
	}
	return b.String()
}

// String renders the collection back in "k1:v1,k2:v2" form.
func (c Collection) String() string {
	parts := make([]string, 0, len(c))
	for _, k := range c.Keys() {
		parts = append(parts, k+":"+c[k])
	}
	return strings.Join(parts, ",")
}

// Validate rejects empty keys and keys or values that would break the script-tag encoding.
func (c Collection) Validate() error {
	for _, k := range c.Keys() {
		if strings.TrimSpace(k) == "" {
			return errors.New("tag key is empty")
		}
		if strings.ContainsAny(k, "&=") {
			return errors.Errorf("tag key %q contains a reserved character", k)
		}
		if strings.Contains(c[k], "&") {
			return errors.Errorf("tag %q: value contains a reserved character", k)
		}
	}
	return nil
}

// Merge returns a new collection with other's entries laid over c.
func (c Collection) Merge(other Collection) Collection {
	out := make(Collection, len(c)+len(other))
	for k, v := range c {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
