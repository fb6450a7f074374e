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

// Package transport provides the byte-level request/response exchange
// used by the opencode client: a Doer abstraction over the standard HTTP
// client, an interceptor chain for cross-cutting request mutation, and a
// pooled connection setup tuned for many concurrent calls.
//
// The transport does not interpret status codes; classification of
// failures and responses belongs to the caller.
package transport

import (
	"context"
	"net/http"
	"time"
)

// A Doer sends a single HTTP request and returns the response, in the
// same manner as the standard library http.Client. Implementations must
// honor the request's context: cancellation or deadline expiry aborts
// the in-flight exchange.
//
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Doer interface {
	Do(r *http.Request) (*http.Response, error)
}

// Invoker sends a request over the underlying Doer.
type Invoker func(ctx context.Context, req *http.Request) (*http.Response, error)

// Interceptor wraps an Invoker to observe or mutate a request before it
// is sent, or the response after it is received. Interceptors run once
// per attempt, so per-attempt concerns (tracing headers, metrics) belong
// here rather than in request construction.
type Interceptor func(ctx context.Context, req *http.Request, next Invoker) (*http.Response, error)

// Chain composes interceptors around an invoker. The first interceptor
// in the slice is the outermost: it sees the request first and the
// response last.
func Chain(interceptors []Interceptor, invoker Invoker) Invoker {
	for i := len(interceptors) - 1; i >= 0; i-- {
		interceptor := interceptors[i]
		next := invoker
		invoker = func(ctx context.Context, req *http.Request) (*http.Response, error) {
			return interceptor(ctx, req, next)
		}
	}
	return invoker
}

// PoolConfig tunes the connection pool of the client returned by
// NewPooledClient.
type PoolConfig struct {
	// MaxIdleConns caps the total idle connections kept open.
	MaxIdleConns int
	// MaxConnsPerHost caps concurrent connections to a single host.
	MaxConnsPerHost int
	// IdleConnTimeout is how long an idle connection is kept before
	// being closed.
	IdleConnTimeout time.Duration
	// DisableCompression turns off transparent gzip.
	DisableCompression bool
}

// DefaultPoolConfig returns the pool settings used when the caller does
// not supply an HTTP client of their own.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxIdleConns:    100,
		MaxConnsPerHost: 10,
		IdleConnTimeout: 90 * time.Second,
	}
}

// NewPooledClient returns an *http.Client backed by a connection pool
// configured from cfg. The pool is shared by every call made through the
// client and requires no locking by callers.
//
// No client-level timeout is set: deadlines are enforced per attempt via
// the request context.
func NewPooledClient(cfg PoolConfig) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:              http.ProxyFromEnvironment,
			MaxIdleConns:       cfg.MaxIdleConns,
			MaxConnsPerHost:    cfg.MaxConnsPerHost,
			IdleConnTimeout:    cfg.IdleConnTimeout,
			DisableCompression: cfg.DisableCompression,
		},
	}
}
