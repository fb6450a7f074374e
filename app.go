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

import "context"

// AppService exposes application-level operations.
type AppService struct {
	client *Client
}

// Get retrieves the application information.
func (s *AppService) Get(ctx context.Context, opts *RequestOptions) (*App, error) {
	var out App
	if err := s.client.Get(ctx, "/app", nil, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// Init initializes the application. The server returns whether
// initialization took place.
func (s *AppService) Init(ctx context.Context, opts *RequestOptions) (bool, error) {
	var out bool
	if err := s.client.Post(ctx, "/app/init", nil, &out, opts); err != nil {
		return false, err
	}
	return out, nil
}

// Log writes an entry to the server's log.
func (s *AppService) Log(ctx context.Context, params *AppLogParams, opts *RequestOptions) (bool, error) {
	var out bool
	if err := s.client.Post(ctx, "/log", params, &out, opts); err != nil {
		return false, err
	}
	return out, nil
}

// Modes lists the available operational modes.
func (s *AppService) Modes(ctx context.Context, opts *RequestOptions) ([]Mode, error) {
	var out []Mode
	if err := s.client.Get(ctx, "/mode", nil, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Providers lists the configured model providers along with the
// default model for each.
func (s *AppService) Providers(ctx context.Context, opts *RequestOptions) (*ProvidersResponse, error) {
	var out ProvidersResponse
	if err := s.client.Get(ctx, "/config/providers", nil, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}
