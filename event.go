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

// EventService exposes the server's event stream.
type EventService struct {
	client *Client
}

// List subscribes to the server's event stream. The returned stream
// delivers events until the server closes the connection, ctx is
// canceled, or Close is called.
func (s *EventService) List(ctx context.Context, opts *RequestOptions) (*EventStream, error) {
	return s.client.Stream(ctx, "/event", nil, opts)
}
