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
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-json-experiment/json"

	"github.com/opencode-ai/opencode-go/internal/pool"
	"github.com/opencode-ai/opencode-go/transport"
)

// Version of the SDK, reported in the User-Agent header.
const Version = "0.1.0"

const userAgent = "opencode-go/" + Version

// Client is the OpenCode API client. It holds read-only configuration
// and a pooled HTTP transport, so a single Client is safe for many
// concurrent calls and should be reused rather than recreated.
//
// Endpoint groups are reached through the resource services (App,
// Session, Event, ...). Generated or hand-written endpoint wrappers can
// also call the Get/Post/Put/Patch/Delete verbs directly with a path, a
// body, and a target shape.
type Client struct {
	opts   *options
	invoke transport.Invoker

	// Resource services.
	App     *AppService
	Config  *ConfigService
	Event   *EventService
	File    *FileService
	Find    *FindService
	Session *SessionService
	Tui     *TuiService
}

// New creates a Client. Without options the base URL comes from the
// OPENCODE_BASE_URL environment variable, falling back to
// DefaultBaseURL.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	if o.httpClient == nil {
		o.httpClient = transport.NewPooledClient(transport.DefaultPoolConfig())
	}

	c := &Client{opts: o}
	c.invoke = transport.Chain(o.interceptors, func(ctx context.Context, req *http.Request) (*http.Response, error) {
		return o.httpClient.Do(req.WithContext(ctx))
	})

	c.App = &AppService{client: c}
	c.Config = &ConfigService{client: c}
	c.Event = &EventService{client: c}
	c.File = &FileService{client: c}
	c.Find = &FindService{client: c}
	c.Session = &SessionService{client: c}
	c.Tui = &TuiService{client: c}

	return c, nil
}

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string { return c.opts.baseURL }

// Timeout returns the default per-attempt timeout.
func (c *Client) Timeout() time.Duration { return c.opts.timeout }

// MaxRetries returns the default retry budget.
func (c *Client) MaxRetries() int { return c.opts.maxRetries }

// Get sends a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any, opts *RequestOptions) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, opts)
}

// Post sends a POST request with an optional JSON body and decodes the
// response into out. Pass nil for out when the response body is not
// needed.
func (c *Client) Post(ctx context.Context, path string, body, out any, opts *RequestOptions) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, opts)
}

// Put sends a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any, opts *RequestOptions) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, opts)
}

// Patch sends a PATCH request with an optional JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any, opts *RequestOptions) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, opts)
}

// Delete sends a DELETE request with an optional JSON body.
func (c *Client) Delete(ctx context.Context, path string, body, out any, opts *RequestOptions) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, out, opts)
}

// do is the request engine: it builds the descriptor once, then loops
// attempts until success, a non-retryable failure, or an exhausted
// retry budget. The error of the final attempt is returned verbatim;
// there is no synthetic "retries exhausted" wrapper hiding the cause.
//
// Attempts within one call are strictly sequential. The timeout bounds
// each attempt, not the call: a call's total duration can exceed the
// timeout by the sum of the retry waits.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, opts *RequestOptions) error {
	req, err := c.newRequest(method, path, query, body, opts)
	if err != nil {
		return err
	}

	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return classifyContextError(err)
		}

		c.opts.logger.DebugContext(ctx, "sending request",
			"method", req.method, "url", req.url, "attempt", attempt)

		status, header, respBody, err := c.attempt(ctx, req, attempt)
		if err == nil && status >= 200 && status < 300 {
			return decodeResponse(respBody, out)
		}

		callErr := err
		if callErr == nil {
			callErr = error(newAPIError(status, header, respBody))
		}

		if attempt >= req.maxRetries || !shouldRetry(callErr, header) {
			return callErr
		}

		delay := retryDelay(attempt, header, defaultJitter)
		c.opts.logger.DebugContext(ctx, "retrying after error",
			"attempt", attempt, "delay", delay, "error", callErr)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return classifyContextError(ctx.Err())
		}
	}
}

// attempt performs one send/receive cycle. The per-attempt deadline is
// enforced here; the body is fully buffered before the deadline's
// cancel releases the connection.
func (c *Client) attempt(ctx context.Context, req *request, attempt int) (int, http.Header, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, req.timeout)
	defer cancel()

	hr, err := req.toHTTP(attemptCtx, attempt)
	if err != nil {
		return 0, nil, nil, &ConnectionError{Message: err.Error(), Err: err}
	}

	resp, err := c.invoke(attemptCtx, hr)
	if err != nil {
		return 0, nil, nil, classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	buf := pool.Bytes.Get()
	defer pool.Bytes.Put(buf)
	if _, err := io.Copy(buf, resp.Body); err != nil {
		return 0, nil, nil, classifyTransportError(ctx, err)
	}
	respBody := append([]byte(nil), buf.Bytes()...)

	return resp.StatusCode, resp.Header, respBody, nil
}

// Stream sends a GET request with an SSE accept header and returns the
// live event stream. Streaming calls are not retried and carry no
// per-attempt timeout: the connection is expected to stay open until
// the server closes it or ctx is cancelled.
func (c *Client) Stream(ctx context.Context, path string, query url.Values, opts *RequestOptions) (*EventStream, error) {
	req, err := c.newRequest(http.MethodGet, path, query, nil, opts)
	if err != nil {
		return nil, err
	}
	req.header.Set("Accept", "text/event-stream")

	hr, err := req.toHTTP(ctx, 0)
	if err != nil {
		return nil, &ConnectionError{Message: err.Error(), Err: err}
	}

	resp, err := c.invoke(ctx, hr)
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(resp.StatusCode, resp.Header, respBody)
	}

	return newEventStream(c.opts, resp.Body), nil
}

// decodeResponse maps a successful body into the caller's target shape.
// A nil target or an empty body skips decoding; anything else either
// decodes cleanly or surfaces as a *SerializationError, never a silent
// default.
func decodeResponse(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &SerializationError{Err: err}
	}
	return nil
}

// classifyTransportError maps a failed exchange into the error
// taxonomy. ctx is the caller's context (not the per-attempt one):
// caller cancellation means abort, everything deadline-shaped means
// timeout, and the rest is a connection failure.
func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled || errors.Is(err, context.Canceled) {
		return &UserAbortError{Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{Err: err}
	}

	return &ConnectionError{Message: err.Error(), Err: err}
}

// classifyContextError maps a context's own error: cancellation is a
// user abort, an expired caller deadline is a timeout.
func classifyContextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	return &UserAbortError{Err: err}
}
