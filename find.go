// Copyright 2025 The opencode-go Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package opencode

import (
	"context"
	"net/url"
)

// FindService exposes workspace search operations.
type FindService struct {
	client *Client
}

// Text searches file contents for pattern.
func (s *FindService) Text(ctx context.Context, pattern string, opts *RequestOptions) ([]TextMatch, error) {
	query := url.Values{"pattern": {pattern}}
	var out []TextMatch
	if err := s.client.Get(ctx, "/find", query, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Files searches file paths matching query.
func (s *FindService) Files(ctx context.Context, q string, opts *RequestOptions) ([]string, error) {
	query := url.Values{"query": {q}}
	var out []string
	if err := s.client.Get(ctx, "/find/file", query, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Symbols searches workspace symbols matching query.
func (s *FindService) Symbols(ctx context.Context, q string, opts *RequestOptions) ([]SymbolInfo, error) {
	query := url.Values{"query": {q}}
	var out []SymbolInfo
	if err := s.client.Get(ctx, "/find/symbol", query, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
