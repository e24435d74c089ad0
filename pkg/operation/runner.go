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
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 OperationRunner executes operations and fans out per-file work
type OperationRunner struct {
	async bool
	limit int
}

// 🏗️ NewRunner creates a new runner
func NewRunner(async bool) *OperationRunner {
	return &OperationRunner{
		async: async,
		limit: runtime.NumCPU(),
	}
}

// Async reports whether per-file work runs concurrently.
func (r *OperationRunner) Async() bool {
	return r.async
}

// 🏃 Run executes an operation
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("operation cancelled: %w", err)
	}
	if err := op.Execute(ctx); err != nil {
		return errors.Errorf("executing operation: %w", err)
	}
	return nil
}

// ⚡ ForEach calls fn once per item, concurrently when the runner is async.
// The first error stops the remaining work and is returned.
func (r *OperationRunner) ForEach(ctx context.Context, items []string, fn func(ctx context.Context, item string) error) error {
	if !r.async {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			if err := fn(ctx, item); err != nil {
				return err
			}
		}
		return nil
	}

	zerolog.Ctx(ctx).Debug().Int("items", len(items)).Int("limit", r.limit).Msg("running async")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for _, item := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			return fn(gctx, item)
		})
	}
	return g.Wait()
}
