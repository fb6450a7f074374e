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
	"errors"
	"fmt"
	"net/http"

	"github.com/go-json-experiment/json"
)

// Common errors.
var (
	// ErrStreamClosed is returned when reading from a stream whose
	// underlying connection has ended.
	ErrStreamClosed = errors.New("stream is closed")
)

// APIError is returned when the server responds with a non-2xx status
// code. The error body is open-ended: Body holds the parsed JSON payload
// when the body was valid JSON, and RawBody always holds the raw bytes.
// Callers branch on Status rather than on dedicated per-status types.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Header holds the response headers.
	Header http.Header
	// Body is the response body parsed as JSON, or nil if the body was
	// empty or not valid JSON.
	Body any
	// RawBody is the unparsed response body.
	RawBody []byte
	// Message is the server-provided error message, or a generic
	// "HTTP <status>" string when the body carried none.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// newAPIError builds an *APIError from a response's status, headers, and
// raw body. The message is taken from the body's conventional "message"
// field when present.
func newAPIError(status int, header http.Header, body []byte) *APIError {
	e := &APIError{
		Status:  status,
		Header:  header,
		RawBody: body,
		Message: fmt.Sprintf("HTTP %d", status),
	}

	if len(body) == 0 {
		return e
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return e
	}
	e.Body = parsed

	if obj, ok := parsed.(map[string]any); ok {
		if msg, ok := obj["message"].(string); ok && msg != "" {
			e.Message = msg
		}
	}

	return e
}

// ConnectionError is returned when the server could not be reached
// (DNS, TCP, TLS, or a broken connection mid-exchange).
type ConnectionError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TimeoutError is returned when a single request attempt exceeded its
// deadline.
type TimeoutError struct {
	Err error
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return "request timed out"
}

// Unwrap returns the underlying cause.
func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// Timeout implements net.Error.
func (e *TimeoutError) Timeout() bool { return true }

// Temporary implements net.Error.
func (e *TimeoutError) Temporary() bool { return true }

// UserAbortError is returned when the caller cancelled the request's
// context. It is distinct from TimeoutError so callers can tell their
// own cancellation apart from an expired deadline.
type UserAbortError struct {
	Err error
}

// Error implements the error interface.
func (e *UserAbortError) Error() string {
	return "request was aborted"
}

// Unwrap returns the underlying cause.
func (e *UserAbortError) Unwrap() error {
	return e.Err
}

// SerializationError is returned when a response body or an event
// payload did not match the expected shape.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization error: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// ValidationError reports an invalid client option.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ErrorStatus returns the HTTP status code carried by err and true when
// err is (or wraps) an *APIError, and 0 and false otherwise.
func ErrorStatus(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, true
	}
	return 0, false
}

// IsRetryable reports whether err is worth retrying: connection errors,
// timeouts, and API errors with status 408, 409, 429, or 5xx.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return true
	}

	var timeoutErr *TimeoutError
	if errors.As(err, &timeoutErr) {
		return true
	}

	if status, ok := ErrorStatus(err); ok {
		return retryableStatus(status)
	}

	return false
}

// IsTimeout reports whether err represents an attempt deadline expiry.
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusConflict, http.StatusTooManyRequests:
		return true
	}
	return status >= 500 && status <= 599
}
