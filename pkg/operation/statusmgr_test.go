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

package operation_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/numswap/pkg/operation"
	"github.com/walteh/numswap/pkg/status"
)

// 🔧 MockStatusManager is a mock implementation of the operation.StatusManager interface
type MockStatusManager struct {
	mock.Mock
}

func (m *MockStatusManager) Classify(ctx context.Context, path string, content []byte) (status.FileStatus, error) {
	args := m.Called(ctx, path, content)
	return args.Get(0).(status.FileStatus), args.Error(1)
}

func (m *MockStatusManager) WriteFile(ctx context.Context, path string, content []byte) error {
	return m.Called(ctx, path, content).Error(0)
}

func (m *MockStatusManager) BackupFile(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockStatusManager) RestoreFile(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockStatusManager) TrackFile(ctx context.Context, path string, info status.FileInfo) {
	m.Called(ctx, path, info)
}

func (m *MockStatusManager) ListFiles(ctx context.Context) ([]status.FileInfo, error) {
	args := m.Called(ctx)
	files, _ := args.Get(0).([]status.FileInfo)
	return files, args.Error(1)
}

func (m *MockStatusManager) Summary() map[status.FileStatus]int {
	out, _ := m.Called().Get(0).(map[status.FileStatus]int)
	return out
}

func (m *MockStatusManager) StartOperation(ctx context.Context, total int) {
	m.Called(ctx, total)
}

func (m *MockStatusManager) Increment(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockStatusManager) FinishOperation(ctx context.Context) {
	m.Called(ctx)
}

var (
	_ operation.StatusManager = (*MockStatusManager)(nil)
	_ operation.StatusManager = (*status.Manager)(nil)
)

// 🧪 TestRewriteOperation_WriteFailure rolls back the in-place backup when the write fails
func TestRewriteOperation_WriteFailure(t *testing.T) {
	tests := []struct {
		name        string
		backup      bool
		restoreErr  error
		wantRestore bool
		wantErr     string
	}{
		{
			name:        "backup_restored",
			backup:      true,
			wantRestore: true,
			wantErr:     "writing page: disk full",
		},
		{
			name:        "restore_fails",
			backup:      true,
			restoreErr:  errors.New("backup file does not exist"),
			wantRestore: true,
			wantErr:     "restoring backup: backup file does not exist",
		},
		{
			name:    "no_backup_nothing_to_restore",
			wantErr: "writing page: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			dir := t.TempDir()
			writePages(t, dir, map[string]string{"index.html": callPage})

			mgr := new(MockStatusManager)
			mgr.On("StartOperation", mock.Anything, 1).Return()
			mgr.On("FinishOperation", mock.Anything).Return()
			mgr.On("Increment", mock.Anything).Return()
			mgr.On("Classify", mock.Anything, "index.html", []byte(callPageSwapped)).Return(status.StatusModified, nil)
			mgr.On("WriteFile", mock.Anything, "index.html", []byte(callPageSwapped)).Return(errors.New("disk full"))
			if tt.backup {
				mgr.On("BackupFile", mock.Anything, "index.html").Return(nil)
			}
			if tt.wantRestore {
				mgr.On("RestoreFile", mock.Anything, "index.html").Return(tt.restoreErr)
			}

			var tracked status.FileInfo
			mgr.On("TrackFile", mock.Anything, "index.html", mock.Anything).
				Run(func(args mock.Arguments) { tracked = args.Get(2).(status.FileInfo) }).
				Return()

			op := operation.NewRewriteOperation(operation.Options{
				Config:    testConfig(t, "", "*.html"),
				Pairs:     testPairs,
				BaseDir:   dir,
				StatusMgr: mgr,
				Backup:    tt.backup,
			})
			err := op.Execute(ctx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "1 of 1 page(s) failed")

			assert.Equal(t, status.StatusFailed, tracked.Status)
			require.Error(t, tracked.Error)
			assert.Contains(t, tracked.Error.Error(), tt.wantErr)

			mgr.AssertExpectations(t)
			if !tt.wantRestore {
				mgr.AssertNotCalled(t, "RestoreFile", mock.Anything, mock.Anything)
			}
			assert.Equal(t, callPage, readPage(t, filepath.Join(dir, "index.html")), "the page on disk is only touched through the manager")
		})
	}
}
