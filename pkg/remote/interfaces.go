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

package remote

import (
	"context"

	"github.com/walteh/numswap/pkg/tags"
)

// NumberRequester is the primary interface for asking a call-tracking backend for a number.
type NumberRequester interface {
	// RequestNumber returns the number assigned to the visitor of req.PageURL
	RequestNumber(ctx context.Context, req NumberRequest) (*Number, error)
}

// NumberMutator changes the tags of a per-visitor number and starts calls on it.
type NumberMutator interface {
	AddTags(ctx context.Context, num *Number, values tags.Collection) error
	ReplaceTags(ctx context.Context, num *Number, values tags.Collection) error
	RemoveTags(ctx context.Context, num *Number, values tags.Collection) error
	RemoveTagsByKeys(ctx context.Context, num *Number, keys []string) error
	ClearTags(ctx context.Context, num *Number) error
	InitiateCall(ctx context.Context, num *Number, dial string, extra tags.Collection) (*Call, error)
}

// NumberRequest describes one number request.
type NumberRequest struct {
	// CampaignKey identifies the campaign. Required.
	CampaignKey string
	// Tags are sent as number-matching script tags
	Tags tags.Collection
	// PageURL is the page the number will be shown on
	PageURL string
	// DefaultNumber and Message are passed through to the backend when set
	DefaultNumber string
	Message       string
}

// Number is a tracking number handed out by the backend.
type Number struct {
	ID              int64
	CampaignKey     string
	Number          string
	FormattedNumber string
	PlainNumber     string
	IsPerVisitor    bool
	TagValues       tags.Collection

	// ReplacementNumbers lists the text the page should swap
	ReplacementNumbers []ReplacementNumber
}

// ReplacementNumber pairs a number printed on the page with its tracking replacement.
type ReplacementNumber struct {
	Find        string
	ReplaceWith string
}
