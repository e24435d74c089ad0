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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/walteh/numswap/pkg/config"
	"github.com/walteh/numswap/pkg/operation"
	"github.com/walteh/numswap/pkg/remote"
	"github.com/walteh/numswap/pkg/swap"
	"github.com/walteh/numswap/pkg/tags"
)

// 🔧 MockRequester is a mock implementation of the remote.NumberRequester interface
type MockRequester struct {
	mock.Mock
}

func (m *MockRequester) RequestNumber(ctx context.Context, req remote.NumberRequest) (*remote.Number, error) {
	result := m.Called(ctx, req)
	num, _ := result.Get(0).(*remote.Number)
	return num, result.Error(1)
}

var _ remote.NumberRequester = (*MockRequester)(nil)

func remoteConfig(replacements ...config.Replacement) *config.Config {
	return &config.Config{
		Replacements: replacements,
		Inputs:       []string{"*.html"},
		Remote: &config.RemoteArgs{
			Host:        "numbers.example.com",
			CampaignKey: "camp-1",
			PageURL:     "https://shop.example.com/",
			Tags:        map[string]string{"region": "west"},
		},
	}
}

func TestResolvePairs(t *testing.T) {
	fetched := &remote.Number{
		ID:     42,
		Number: "+15550009999",
		ReplacementNumbers: []remote.ReplacementNumber{
			{Find: "555-1234", ReplaceWith: "555-9999"},
			{Find: "(555) 123-4000", ReplaceWith: "(555) 999-4000"},
		},
	}
	wantRequest := remote.NumberRequest{
		CampaignKey: "camp-1",
		Tags:        tags.Collection{"region": "west"},
		PageURL:     "https://shop.example.com/",
	}

	tests := []struct {
		name       string
		cfg        *config.Config
		useRemote  bool
		wantPairs  []swap.Pair
		wantSource string
	}{
		{
			name:       "config_only",
			cfg:        &config.Config{Replacements: []config.Replacement{{Find: "1", ReplaceWith: "2"}}},
			wantPairs:  []swap.Pair{{Find: "1", ReplaceWith: "2"}},
			wantSource: operation.SourceConfig,
		},
		{
			name:       "remote_configured_without_requester",
			cfg:        remoteConfig(config.Replacement{Find: "1", ReplaceWith: "2"}),
			wantPairs:  []swap.Pair{{Find: "1", ReplaceWith: "2"}},
			wantSource: operation.SourceConfig,
		},
		{
			name:      "remote_only",
			cfg:       remoteConfig(),
			useRemote: true,
			wantPairs: []swap.Pair{
				{Find: "555-1234", ReplaceWith: "555-9999"},
				{Find: "(555) 123-4000", ReplaceWith: "(555) 999-4000"},
			},
			wantSource: operation.SourceRemote,
		},
		{
			name:      "config_then_remote",
			cfg:       remoteConfig(config.Replacement{Find: "1", ReplaceWith: "2"}),
			useRemote: true,
			wantPairs: []swap.Pair{
				{Find: "1", ReplaceWith: "2"},
				{Find: "555-1234", ReplaceWith: "555-9999"},
				{Find: "(555) 123-4000", ReplaceWith: "(555) 999-4000"},
			},
			wantSource: "config+remote",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)

			var requester remote.NumberRequester
			if tt.useRemote {
				m := &MockRequester{}
				m.On("RequestNumber", mock.Anything, wantRequest).Return(fetched, nil).Once()
				defer m.AssertExpectations(t)
				requester = m
			}

			pairs, source, err := operation.ResolvePairs(ctx, tt.cfg, requester)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPairs, pairs)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestResolvePairs_RemoteError(t *testing.T) {
	ctx := testContext(t)

	m := &MockRequester{}
	m.On("RequestNumber", mock.Anything, mock.Anything).Return(nil, remote.ErrNoNumber)

	pairs, _, err := operation.ResolvePairs(ctx, remoteConfig(), m)
	require.ErrorIs(t, err, remote.ErrNoNumber)
	assert.Nil(t, pairs)
	m.AssertExpectations(t)
}

func TestResolvePairs_RequestCarriesCampaign(t *testing.T) {
	ctx := testContext(t)

	m := &MockRequester{}
	m.On("RequestNumber", mock.Anything, mock.MatchedBy(func(req remote.NumberRequest) bool {
		return req.CampaignKey == "camp-1" && req.Tags.ScriptTags() == "&region=west"
	})).Return(&remote.Number{}, nil)

	pairs, source, err := operation.ResolvePairs(ctx, remoteConfig(), m)
	require.NoError(t, err)
	assert.Empty(t, pairs)
	assert.Equal(t, operation.SourceRemote, source)
}
