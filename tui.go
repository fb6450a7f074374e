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

// TuiService exposes operations that control an attached terminal UI.
type TuiService struct {
	client *Client
}

// TuiAppendPromptParams is the request body of POST /tui/append-prompt.
type TuiAppendPromptParams struct {
	Text string `json:"text"`
}

// AppendPrompt appends text to the TUI's prompt input.
func (s *TuiService) AppendPrompt(ctx context.Context, params *TuiAppendPromptParams, opts *RequestOptions) (bool, error) {
	var out bool
	if err := s.client.Post(ctx, "/tui/append-prompt", params, &out, opts); err != nil {
		return false, err
	}
	return out, nil
}

// OpenHelp opens the TUI's help dialog.
func (s *TuiService) OpenHelp(ctx context.Context, opts *RequestOptions) (bool, error) {
	var out bool
	if err := s.client.Post(ctx, "/tui/open-help", nil, &out, opts); err != nil {
		return false, err
	}
	return out, nil
}
