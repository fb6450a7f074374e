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

// SessionService exposes session lifecycle and messaging operations.
type SessionService struct {
	client *Client
}

// Create creates a new session.
func (s *SessionService) Create(ctx context.Context, opts *RequestOptions) (*Session, error) {
	var out Session
	if err := s.client.Post(ctx, "/session", nil, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// List lists all sessions.
func (s *SessionService) List(ctx context.Context, opts *RequestOptions) ([]Session, error) {
	var out []Session
	if err := s.client.Get(ctx, "/session", nil, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete deletes the session with the given id.
func (s *SessionService) Delete(ctx context.Context, id string, opts *RequestOptions) (bool, error) {
	var out bool
	if err := s.client.Delete(ctx, "/session/"+id, nil, &out, opts); err != nil {
		return false, err
	}
	return out, nil
}

// Abort aborts the session's in-flight work.
func (s *SessionService) Abort(ctx context.Context, id string, opts *RequestOptions) (bool, error) {
	var out bool
	if err := s.client.Post(ctx, "/session/"+id+"/abort", nil, &out, opts); err != nil {
		return false, err
	}
	return out, nil
}

// Chat sends a message to the session and returns the assistant's
// reply. The reply streams server-side; for incremental parts
// subscribe to the event stream before calling Chat.
func (s *SessionService) Chat(ctx context.Context, id string, params *SessionChatParams, opts *RequestOptions) (*AssistantMessage, error) {
	var out AssistantMessage
	if err := s.client.Post(ctx, "/session/"+id+"/message", params, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// Init analyzes the workspace and seeds the session with project
// context.
func (s *SessionService) Init(ctx context.Context, id string, params *SessionInitParams, opts *RequestOptions) (bool, error) {
	var out bool
	if err := s.client.Post(ctx, "/session/"+id+"/init", params, &out, opts); err != nil {
		return false, err
	}
	return out, nil
}

// Messages lists the session's messages with their content parts.
func (s *SessionService) Messages(ctx context.Context, id string, opts *RequestOptions) ([]SessionMessage, error) {
	var out []SessionMessage
	if err := s.client.Get(ctx, "/session/"+id+"/message", nil, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Revert rolls the session back to the given message.
func (s *SessionService) Revert(ctx context.Context, id string, params *SessionRevertParams, opts *RequestOptions) (*Session, error) {
	var out Session
	if err := s.client.Post(ctx, "/session/"+id+"/revert", params, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unrevert restores messages removed by a previous Revert.
func (s *SessionService) Unrevert(ctx context.Context, id string, opts *RequestOptions) (*Session, error) {
	var out Session
	if err := s.client.Post(ctx, "/session/"+id+"/unrevert", nil, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// Share makes the session publicly accessible and returns it with its
// share URL set.
func (s *SessionService) Share(ctx context.Context, id string, opts *RequestOptions) (*Session, error) {
	var out Session
	if err := s.client.Post(ctx, "/session/"+id+"/share", nil, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// Unshare revokes the session's public access.
func (s *SessionService) Unshare(ctx context.Context, id string, opts *RequestOptions) (*Session, error) {
	var out Session
	if err := s.client.Delete(ctx, "/session/"+id+"/share", nil, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// Summarize compacts the session history using the given model.
func (s *SessionService) Summarize(ctx context.Context, id string, params *SessionSummarizeParams, opts *RequestOptions) (bool, error) {
	var out bool
	if err := s.client.Post(ctx, "/session/"+id+"/summarize", params, &out, opts); err != nil {
		return false, err
	}
	return out, nil
}
