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
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/pkg/status"
)

// 🔍 CheckStatus runs the rewrite without writing anything and reports which
// pages would change. needsUpdate is true when any page is new or modified.
func CheckStatus(ctx context.Context, opts Options) (needsUpdate bool, files []status.FileInfo, err error) {
	logger := zerolog.Ctx(ctx)

	opts.DryRun = true
	op := NewRewriteOperation(opts).(*rewriteOperation)
	mgr := op.opts.StatusMgr

	execErr := op.Execute(ctx)

	files, err = mgr.ListFiles(ctx)
	if err != nil {
		return false, nil, errors.Errorf("listing files: %w", err)
	}

	for _, f := range files {
		if f.Status == status.StatusNew || f.Status == status.StatusModified {
			needsUpdate = true
			break
		}
	}

	if execErr != nil {
		return needsUpdate, files, errors.Errorf("checking pages: %w", execErr)
	}

	if needsUpdate {
		logger.Debug().Interface("summary", mgr.Summary()).Msg("pages need rewriting")
	} else {
		logger.Debug().Msg("no changes needed")
	}
	return needsUpdate, files, nil
}
