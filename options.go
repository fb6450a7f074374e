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
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/opencode-ai/opencode-go/transport"
)

// Defaults matching the other OpenCode SDKs.
const (
	// DefaultBaseURL is used when no base URL is configured and the
	// environment carries none.
	DefaultBaseURL = "http://localhost:54321"
	// DefaultTimeout is the per-attempt timeout.
	DefaultTimeout = 60 * time.Second
	// DefaultMaxRetries is the number of retries after the first
	// attempt (so up to three attempts in total).
	DefaultMaxRetries = 2

	// EnvBaseURL is the environment variable consulted for the base
	// URL when none is configured explicitly.
	EnvBaseURL = "OPENCODE_BASE_URL"
)

// Option configures a Client.
type Option func(*options) error

// options holds all client configuration. It is fixed at construction
// and read-only afterwards, which is what makes a Client safe for
// concurrent use without locking.
type options struct {
	baseURL        string
	httpClient     transport.Doer
	interceptors   []transport.Interceptor
	timeout        time.Duration
	maxRetries     int
	defaultHeaders http.Header
	defaultQuery   url.Values
	logger         *slog.Logger

	// Streaming.
	streamBufferSize    int
	strictEventDecoding bool
}

// defaultOptions returns the configuration used before any Option runs.
func defaultOptions() *options {
	baseURL := os.Getenv(EnvBaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &options{
		baseURL:          baseURL,
		timeout:          DefaultTimeout,
		maxRetries:       DefaultMaxRetries,
		logger:           slog.Default(),
		streamBufferSize: 1024,
	}
}

// WithBaseURL sets the base URL of the OpenCode server.
func WithBaseURL(baseURL string) Option {
	return func(o *options) error {
		if baseURL == "" {
			return &ValidationError{Field: "baseURL", Message: "base URL cannot be empty"}
		}
		if _, err := url.Parse(baseURL); err != nil {
			return &ValidationError{Field: "baseURL", Message: "invalid base URL: " + err.Error()}
		}
		o.baseURL = baseURL
		return nil
	}
}

// WithHTTPClient sets the underlying HTTP client. When unset, a pooled
// client with transport.DefaultPoolConfig settings is used.
func WithHTTPClient(client transport.Doer) Option {
	return func(o *options) error {
		if client == nil {
			return &ValidationError{Field: "httpClient", Message: "HTTP client cannot be nil"}
		}
		o.httpClient = client
		return nil
	}
}

// WithTimeout sets the default per-attempt timeout. The timeout bounds
// each attempt individually; a logical call with retries can take
// longer than the timeout by the sum of the retry waits.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout <= 0 {
			return &ValidationError{Field: "timeout", Message: "timeout must be positive"}
		}
		o.timeout = timeout
		return nil
	}
}

// WithMaxRetries sets the default number of retries after the first
// attempt. Zero disables retries.
func WithMaxRetries(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return &ValidationError{Field: "maxRetries", Message: "max retries must be non-negative"}
		}
		o.maxRetries = n
		return nil
	}
}

// WithDefaultHeaders sets headers sent with every request. Per-call
// extra headers win over these on conflict.
func WithDefaultHeaders(h http.Header) Option {
	return func(o *options) error {
		o.defaultHeaders = h.Clone()
		return nil
	}
}

// WithDefaultQuery sets query parameters appended to every request URL.
func WithDefaultQuery(q url.Values) Option {
	return func(o *options) error {
		cloned := url.Values{}
		for k, vs := range q {
			cloned[k] = append([]string(nil), vs...)
		}
		o.defaultQuery = cloned
		return nil
	}
}

// WithLogger sets the logger used for attempt and stream diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return &ValidationError{Field: "logger", Message: "logger cannot be nil"}
		}
		o.logger = logger
		return nil
	}
}

// WithInterceptors appends transport interceptors. Interceptors run
// once per attempt, outermost first.
func WithInterceptors(interceptors ...transport.Interceptor) Option {
	return func(o *options) error {
		for i, interceptor := range interceptors {
			if interceptor == nil {
				return &ValidationError{
					Field:   "interceptors",
					Message: fmt.Sprintf("interceptor at index %d cannot be nil", i),
				}
			}
		}
		o.interceptors = append(o.interceptors, interceptors...)
		return nil
	}
}

// WithStreamBufferSize sets the event channel buffer of streams created
// by this client.
func WithStreamBufferSize(size int) Option {
	return func(o *options) error {
		if size <= 0 {
			return &ValidationError{Field: "streamBufferSize", Message: "stream buffer size must be positive"}
		}
		o.streamBufferSize = size
		return nil
	}
}

// WithStrictEventDecoding controls the stream's reaction to an event
// record that does not decode into the event union. By default such
// records are skipped with a diagnostic so that server-side schema
// additions do not break long-running consumers; in strict mode the
// stream terminates with a *SerializationError instead.
func WithStrictEventDecoding(strict bool) Option {
	return func(o *options) error {
		o.strictEventDecoding = strict
		return nil
	}
}
