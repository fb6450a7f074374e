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

// FileService exposes workspace file operations.
type FileService struct {
	client *Client
}

// Read reads the content of the file at path, relative to the
// project root.
func (s *FileService) Read(ctx context.Context, path string, opts *RequestOptions) (*FileContent, error) {
	query := url.Values{"path": {path}}
	var out FileContent
	if err := s.client.Get(ctx, "/file/content", query, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// List lists the directory at path. An empty path lists the project
// root.
func (s *FileService) List(ctx context.Context, path string, opts *RequestOptions) ([]FileNode, error) {
	var query url.Values
	if path != "" {
		query = url.Values{"path": {path}}
	}
	var out []FileNode
	if err := s.client.Get(ctx, "/file", query, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// Status reports the change status of every tracked file.
func (s *FileService) Status(ctx context.Context, opts *RequestOptions) ([]FileInfo, error) {
	var out []FileInfo
	if err := s.client.Get(ctx, "/file/status", nil, &out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
