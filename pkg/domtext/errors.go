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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrZeroLengthMatch is returned when the pattern matches the empty string.
	ErrZeroLengthMatch = errors.New("cannot handle zero-length matches")

	// ErrUnknownPreset is returned when Options.Preset names no registered preset.
	ErrUnknownPreset = errors.New("unknown preset")
)

// ⚠️ ConfigurationError reports an invalid or unusable option. It is returned before any
// mutation when raised during aggregation or search.
type ConfigurationError struct {
	Option  string
	Message string
	Cause   error
}

func (e *ConfigurationError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
	return fmt.Sprintf("configuration error for %s: %s", e.Option, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

func newConfigurationError(option, message string, cause error) error {
	return errors.WithStack(&ConfigurationError{
		Option:  option,
		Message: message,
		Cause:   cause,
	})
}
