// Copyright 2025 The opencode-go Authors.
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
//
// SPDX-License-Identifier: Apache-2.0

package opencode

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"
)

// RequestOptions overrides client-level defaults for a single call. All
// fields are optional; zero values fall back to the client
// configuration.
type RequestOptions struct {
	// ExtraHeaders are sent with this request only. They win over the
	// client's default headers on conflict.
	ExtraHeaders http.Header
	// Timeout overrides the per-attempt timeout.
	Timeout time.Duration
	// MaxRetries overrides the maximum number of retries. The pointer
	// distinguishes "unset" from an explicit zero.
	MaxRetries *int
}

// request is the immutable descriptor of one logical call: everything
// the engine needs to (re)issue attempts. Built once per call by merging
// client defaults with per-call overrides; per-attempt state (the retry
// counter header) is applied in toHTTP.
type request struct {
	method     string
	url        string // full URL including encoded query
	header     http.Header
	body       []byte
	timeout    time.Duration
	maxRetries int
}

// newRequest merges client defaults with the call's parameters into a
// descriptor. The body is serialized exactly once and reused by every
// attempt.
func (c *Client) newRequest(method, path string, query url.Values, body any, opts *RequestOptions) (*request, error) {
	r := &request{
		method:     method,
		url:        c.buildURL(path, query),
		timeout:    c.opts.timeout,
		maxRetries: c.opts.maxRetries,
	}

	if opts != nil {
		if opts.Timeout > 0 {
			r.timeout = opts.Timeout
		}
		if opts.MaxRetries != nil {
			r.maxRetries = *opts.MaxRetries
		}
	}

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &SerializationError{Err: err}
		}
		r.body = b
	}

	var extra http.Header
	if opts != nil {
		extra = opts.ExtraHeaders
	}
	r.header = c.buildHeader(extra, r.body != nil)

	return r, nil
}

// buildURL joins the base URL with path and appends the merged query:
// client default pairs first, then call-specific pairs (which win on
// duplicate keys only by appearing later; both are kept, matching
// standard repeated-key semantics). Encoding sorts keys, so the output
// is deterministic.
func (c *Client) buildURL(path string, query url.Values) string {
	base := strings.TrimSuffix(c.opts.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	merged := url.Values{}
	for k, vs := range c.opts.defaultQuery {
		merged[k] = append([]string(nil), vs...)
	}
	for k, vs := range query {
		merged[k] = append(merged[k], vs...)
	}

	if len(merged) == 0 {
		return base + path
	}
	return base + path + "?" + merged.Encode()
}

// buildHeader assembles the call's headers: client defaults, then the
// computed headers, then per-call extras. Later writes win.
func (c *Client) buildHeader(extra http.Header, hasBody bool) http.Header {
	h := http.Header{}
	for k, vs := range c.opts.defaultHeaders {
		for _, v := range vs {
			h.Add(k, v)
		}
	}

	h.Set("Accept", "application/json")
	h.Set("User-Agent", userAgent)
	h.Set("X-Request-Id", uuid.NewString())
	if hasBody {
		h.Set("Content-Type", "application/json")
	}

	for k, vs := range extra {
		h.Del(k)
		for _, v := range vs {
			h.Add(k, v)
		}
	}

	return h
}

// toHTTP materializes one attempt. Headers are rebuilt per attempt so
// that attempt-scoped values (the retry counter) stay fresh; the body
// reader is recreated from the shared byte slice.
func (r *request) toHTTP(ctx context.Context, attempt int) (*http.Request, error) {
	var body *bytes.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, r.method, r.url, body)
	} else {
		req, err = http.NewRequestWithContext(ctx, r.method, r.url, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header = r.header.Clone()
	if attempt > 0 {
		req.Header.Set("x-retry-count", strconv.Itoa(attempt))
	}

	return req, nil
}
