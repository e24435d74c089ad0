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

package opts

import (
	"context"
	"io"
	"path/filepath"

	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/pkg/config"
	"github.com/walteh/numswap/pkg/log"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Flags
	ConfigFile string
	BaseDir    string // defaults to the config file's directory
	Debug      bool

	// Out receives everything meant for the user
	Out     io.Writer
	Console *log.Logger

	// Config is set by LoadConfig
	Config *config.Config
}

// LoadConfig loads and validates the config file named by the flags.
func (o *RootOpts) LoadConfig(ctx context.Context) error {
	cfg, err := config.Load(ctx, o.ConfigFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	o.Config = cfg
	if o.BaseDir == "" {
		o.BaseDir = filepath.Dir(o.ConfigFile)
	}
	return nil
}
