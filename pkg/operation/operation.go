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

package operation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/walteh/numswap/pkg/config"
	"github.com/walteh/numswap/pkg/domtext"
	"github.com/walteh/numswap/pkg/log"
	"github.com/walteh/numswap/pkg/status"
	"github.com/walteh/numswap/pkg/swap"
)

// 🎯 Operation is one unit of work over the configured pages
type Operation interface {
	Execute(ctx context.Context) error
}

// 📋 StatusManager writes pages and records what happened to them
type StatusManager interface {
	status.FileManager
	status.StatusReporter
}

// ⚙️ Options carries everything an operation needs
type Options struct {
	Config    *config.Config
	Pairs     []swap.Pair
	Source    string // where Pairs came from, for display
	BaseDir   string // directory the input globs are relative to
	StatusMgr StatusManager
	Console   *log.Logger // optional
	Runner    *OperationRunner
	DryRun    bool
	Backup    bool // keep a .bak copy of pages rewritten in place
}

// 🧱 BaseOperation holds the shared state of every operation
type BaseOperation struct {
	opts Options
}

// NewBaseOperation fills in defaults for anything opts leaves unset.
func NewBaseOperation(opts Options) BaseOperation {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if opts.StatusMgr == nil {
		dir := opts.BaseDir
		if opts.Config != nil {
			dir = outputDir(opts.BaseDir, opts.Config.Output)
		}
		opts.StatusMgr = status.New(dir, nil)
	}
	if opts.Runner == nil {
		async := opts.Config != nil && opts.Config.Async
		opts.Runner = NewRunner(async)
	}
	return BaseOperation{opts: opts}
}

// Options returns the resolved options.
func (b BaseOperation) Options() Options {
	return b.opts
}

func (b BaseOperation) logFile(ctx context.Context, op log.FileOperation) {
	if b.opts.Console != nil {
		b.opts.Console.LogFileOperation(ctx, op)
		return
	}
	zerolog.Ctx(ctx).Debug().
		Str("path", op.Path).
		Str("status", op.Status).
		Int("matches", op.Matches).
		Int("links", op.Links).
		Msg("file operation")
}

// swapOptions derives the per-page rewrite options from the config.
func swapOptions(cfg *config.Config) swap.Options {
	opts := swap.Options{
		Preset:      cfg.RewritePreset(),
		Wrap:        cfg.Rewrite.Wrap,
		PortionMode: domtext.PortionMode(cfg.Rewrite.PortionMode),
		Rewriter:    domtext.New(nil),
	}
	if cfg.Rewrite.ReplaceLinks != nil {
		opts.SkipLinks = !*cfg.Rewrite.ReplaceLinks
	}
	return opts
}
