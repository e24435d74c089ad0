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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/net/html"

	"github.com/walteh/numswap/pkg/log"
	"github.com/walteh/numswap/pkg/status"
	"github.com/walteh/numswap/pkg/swap"
)

// ✏️ NewRewriteOperation creates an operation that swaps numbers in every input page
func NewRewriteOperation(opts Options) Operation {
	return &rewriteOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

// ✏️ rewriteOperation implements the rewrite operation
type rewriteOperation struct {
	BaseOperation
}

// 🏃 Execute runs the rewrite operation
func (op *rewriteOperation) Execute(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)
	cfg := op.opts.Config
	if cfg == nil {
		return errors.New("config is required")
	}
	if len(op.opts.Pairs) == 0 {
		return errors.New("no replacement pairs")
	}

	files, err := Discover(ctx, op.opts.BaseDir, cfg.Inputs, op.ignorePatterns())
	if err != nil {
		return errors.Errorf("discovering inputs: %w", err)
	}

	logger.Debug().
		Int("pages", len(files)).
		Int("pairs", len(op.opts.Pairs)).
		Str("source", op.opts.Source).
		Bool("dry_run", op.opts.DryRun).
		Msg("rewriting pages")

	mgr := op.opts.StatusMgr
	mgr.StartOperation(ctx, len(files))
	defer mgr.FinishOperation(ctx)

	swapOpts := swapOptions(cfg)

	var failed atomic.Int32
	err = op.opts.Runner.ForEach(ctx, files, func(ctx context.Context, file string) error {
		defer mgr.Increment(ctx)
		if err := op.processFile(ctx, file, swapOpts); err != nil {
			failed.Add(1)
			logger.Error().Err(err).Str("file", file).Msg("rewriting page")
			mgr.TrackFile(ctx, file, status.FileInfo{Path: file, Status: status.StatusFailed, Error: err})
			op.logFile(ctx, log.FileOperation{Path: file, Status: status.StatusFailed.String(), Failed: true, IsDryRun: op.opts.DryRun})
		}
		return nil
	})
	if err != nil {
		return err
	}

	if n := failed.Load(); n > 0 {
		return errors.Errorf("%d of %d page(s) failed", n, len(files))
	}
	return nil
}

// 📄 processFile rewrites a single page
func (op *rewriteOperation) processFile(ctx context.Context, file string, swapOpts swap.Options) error {
	src, err := os.ReadFile(filepath.Join(op.opts.BaseDir, filepath.FromSlash(file)))
	if err != nil {
		return errors.Errorf("reading page: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return errors.Errorf("parsing page: %w", err)
	}

	session := swap.Apply(ctx, doc, op.opts.Pairs, swapOpts)

	// untouched pages keep their original bytes rather than the renderer's normalization
	content := src
	if session.Changed() {
		var buf bytes.Buffer
		if err := html.Render(&buf, doc); err != nil {
			return errors.Errorf("rendering page: %w", err)
		}
		content = buf.Bytes()
	}

	mgr := op.opts.StatusMgr
	fileStatus, err := mgr.Classify(ctx, file, content)
	if err != nil {
		return errors.Errorf("classifying page: %w", err)
	}

	if fileStatus != status.StatusUnchanged && !op.opts.DryRun {
		backedUp := false
		if op.opts.Backup && op.inPlace() {
			if err := mgr.BackupFile(ctx, file); err != nil {
				return errors.Errorf("backing up page: %w", err)
			}
			backedUp = true
		}
		if err := mgr.WriteFile(ctx, file, content); err != nil {
			if backedUp {
				if rerr := mgr.RestoreFile(ctx, file); rerr != nil {
					return errors.Errorf("writing page: %w (restoring backup: %v)", err, rerr)
				}
			}
			return errors.Errorf("writing page: %w", err)
		}
	}

	mgr.TrackFile(ctx, file, status.FileInfo{
		Path:     file,
		Status:   fileStatus,
		Size:     int64(len(content)),
		Checksum: status.Checksum(content),
		Matches:  session.Matches,
		Links:    session.Links,
		Error:    session.Err(),
	})

	op.logFile(ctx, log.FileOperation{
		Path:     file,
		Status:   fileStatus.String(),
		IsNew:    fileStatus == status.StatusNew,
		IsDryRun: op.opts.DryRun,
		Changed:  fileStatus != status.StatusUnchanged,
		Failed:   len(session.Failures) > 0,
		Matches:  session.Matches,
		Links:    session.Links,
	})

	return nil
}

func (op *rewriteOperation) inPlace() bool {
	return op.opts.Config.Output == ""
}

// ignorePatterns adds the output directory to the configured ignores when it
// lives under the base directory, so a second run does not pick up its own output.
func (op *rewriteOperation) ignorePatterns() []string {
	patterns := append([]string(nil), op.opts.Config.Ignore...)
	if op.inPlace() {
		return patterns
	}
	base, err := filepath.Abs(op.opts.BaseDir)
	if err != nil {
		return patterns
	}
	out, err := filepath.Abs(outputDir(op.opts.BaseDir, op.opts.Config.Output))
	if err != nil {
		return patterns
	}
	rel, err := filepath.Rel(base, out)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return patterns
	}
	return append(patterns, filepath.ToSlash(rel)+"/**")
}

// outputDir resolves a relative output directory against baseDir.
func outputDir(baseDir, output string) string {
	if output == "" {
		return baseDir
	}
	if filepath.IsAbs(output) {
		return output
	}
	return filepath.Join(baseDir, output)
}
