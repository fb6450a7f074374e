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
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func mustNewClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestBuildURL(t *testing.T) {
	tests := map[string]struct {
		baseURL      string
		defaultQuery url.Values
		path         string
		query        url.Values
		want         string
	}{
		"plain path": {
			baseURL: "http://example.com:8080",
			path:    "/session",
			want:    "http://example.com:8080/session",
		},
		"trailing slash on base": {
			baseURL: "http://example.com/",
			path:    "/app",
			want:    "http://example.com/app",
		},
		"missing leading slash on path": {
			baseURL: "http://example.com",
			path:    "app",
			want:    "http://example.com/app",
		},
		"query encoded and sorted": {
			baseURL: "http://example.com",
			path:    "/find",
			query:   url.Values{"pattern": {"foo bar"}, "limit": {"10"}},
			want:    "http://example.com/find?limit=10&pattern=foo+bar",
		},
		"default query merged": {
			baseURL:      "http://example.com",
			defaultQuery: url.Values{"directory": {"/tmp/p"}},
			path:         "/session",
			query:        url.Values{"limit": {"5"}},
			want:         "http://example.com/session?directory=%2Ftmp%2Fp&limit=5",
		},
		"call query appends to default on same key": {
			baseURL:      "http://example.com",
			defaultQuery: url.Values{"tag": {"a"}},
			path:         "/x",
			query:        url.Values{"tag": {"b"}},
			want:         "http://example.com/x?tag=a&tag=b",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			opts := []Option{WithBaseURL(tt.baseURL)}
			if tt.defaultQuery != nil {
				opts = append(opts, WithDefaultQuery(tt.defaultQuery))
			}
			c := mustNewClient(t, opts...)

			if got := c.buildURL(tt.path, tt.query); got != tt.want {
				t.Errorf("buildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildHeader(t *testing.T) {
	c := mustNewClient(t,
		WithBaseURL("http://example.com"),
		WithDefaultHeaders(http.Header{"X-Env": {"test"}}),
	)

	t.Run("computed headers present", func(t *testing.T) {
		h := c.buildHeader(nil, true)

		if got := h.Get("Accept"); got != "application/json" {
			t.Errorf("Accept = %q", got)
		}
		if got := h.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		if got := h.Get("User-Agent"); !strings.HasPrefix(got, "opencode-go/") {
			t.Errorf("User-Agent = %q", got)
		}
		if h.Get("X-Request-Id") == "" {
			t.Error("X-Request-Id missing")
		}
		if got := h.Get("X-Env"); got != "test" {
			t.Errorf("X-Env = %q", got)
		}
	})

	t.Run("no content type without body", func(t *testing.T) {
		h := c.buildHeader(nil, false)
		if got := h.Get("Content-Type"); got != "" {
			t.Errorf("Content-Type = %q, want empty", got)
		}
	})

	t.Run("extras win over defaults and computed", func(t *testing.T) {
		extra := http.Header{}
		extra.Set("X-Env", "override")
		extra.Set("Accept", "text/event-stream")

		h := c.buildHeader(extra, false)

		if diff := cmp.Diff([]string{"override"}, h["X-Env"]); diff != "" {
			t.Errorf("X-Env mismatch (-want +got):\n%s", diff)
		}
		if got := h.Get("Accept"); got != "text/event-stream" {
			t.Errorf("Accept = %q", got)
		}
	})

	t.Run("request ids are unique per build", func(t *testing.T) {
		a := c.buildHeader(nil, false).Get("X-Request-Id")
		b := c.buildHeader(nil, false).Get("X-Request-Id")
		if a == b {
			t.Errorf("X-Request-Id repeated: %q", a)
		}
	})
}

func TestNewRequestOverrides(t *testing.T) {
	c := mustNewClient(t, WithBaseURL("http://example.com"))

	t.Run("defaults from client", func(t *testing.T) {
		r, err := c.newRequest(http.MethodGet, "/app", nil, nil, nil)
		if err != nil {
			t.Fatalf("newRequest() error = %v", err)
		}
		if r.timeout != DefaultTimeout {
			t.Errorf("timeout = %v, want %v", r.timeout, DefaultTimeout)
		}
		if r.maxRetries != DefaultMaxRetries {
			t.Errorf("maxRetries = %d, want %d", r.maxRetries, DefaultMaxRetries)
		}
		if r.body != nil {
			t.Errorf("body = %q, want nil", r.body)
		}
	})

	t.Run("per call overrides", func(t *testing.T) {
		zero := 0
		r, err := c.newRequest(http.MethodGet, "/app", nil, nil, &RequestOptions{
			Timeout:    5 * time.Second,
			MaxRetries: &zero,
		})
		if err != nil {
			t.Fatalf("newRequest() error = %v", err)
		}
		if r.timeout != 5*time.Second {
			t.Errorf("timeout = %v", r.timeout)
		}
		if r.maxRetries != 0 {
			t.Errorf("maxRetries = %d, want 0", r.maxRetries)
		}
	})

	t.Run("body serialized once", func(t *testing.T) {
		r, err := c.newRequest(http.MethodPost, "/session", nil, map[string]string{"title": "hi"}, nil)
		if err != nil {
			t.Fatalf("newRequest() error = %v", err)
		}
		if want := `{"title":"hi"}`; string(r.body) != want {
			t.Errorf("body = %q, want %q", r.body, want)
		}
	})

	t.Run("unserializable body", func(t *testing.T) {
		_, err := c.newRequest(http.MethodPost, "/session", nil, make(chan int), nil)
		var serr *SerializationError
		if !errors.As(err, &serr) {
			t.Fatalf("newRequest() error = %v, want *SerializationError", err)
		}
	})
}

func TestToHTTPRetryCount(t *testing.T) {
	c := mustNewClient(t, WithBaseURL("http://example.com"))

	r, err := c.newRequest(http.MethodPost, "/session", nil, map[string]string{"a": "b"}, nil)
	if err != nil {
		t.Fatalf("newRequest() error = %v", err)
	}

	first, err := r.toHTTP(context.Background(), 0)
	if err != nil {
		t.Fatalf("toHTTP() error = %v", err)
	}
	if got := first.Header.Get("x-retry-count"); got != "" {
		t.Errorf("x-retry-count on first attempt = %q, want unset", got)
	}

	second, err := r.toHTTP(context.Background(), 2)
	if err != nil {
		t.Fatalf("toHTTP() error = %v", err)
	}
	if got := second.Header.Get("x-retry-count"); got != "2" {
		t.Errorf("x-retry-count = %q, want \"2\"", got)
	}

	// The retry counter set on a later attempt must not leak into the
	// shared descriptor header.
	if got := r.header.Get("x-retry-count"); got != "" {
		t.Errorf("descriptor header mutated: x-retry-count = %q", got)
	}
}
