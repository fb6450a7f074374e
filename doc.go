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

// Package opencode provides a Go client for the OpenCode server API.
//
// The client turns typed calls into HTTP requests against a configurable
// base URL, recovers transparently from transient failures with retries,
// maps server failures into a small set of typed errors, and exposes the
// server's event feed as a stream of typed events decoded from
// Server-Sent Events.
//
// # Basic Usage
//
//	ctx := context.Background()
//	client, err := opencode.New(
//		opencode.WithBaseURL("http://localhost:54321"),
//		opencode.WithTimeout(30 * time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	app, err := client.App.Get(ctx, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(app.Hostname)
//
// # Streaming Support
//
// Server events are delivered over Server-Sent Events (SSE):
//
//	stream, err := client.Event.List(ctx, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for event := range stream.Events() {
//		switch ev := event.(type) {
//		case *MessageUpdatedEvent:
//			fmt.Printf("message: %v\n", ev.Properties.Info)
//		case *SessionIdleEvent:
//			fmt.Printf("idle: %s\n", ev.Properties.SessionID)
//		}
//	}
//
// # Error Handling
//
// Every failure surfaces as one of five typed errors: *APIError (the
// server rejected or failed the request), *ConnectionError (the server
// could not be reached), *TimeoutError (an attempt's deadline expired),
// *UserAbortError (the caller cancelled the context), or
// *SerializationError (a response body did not match the expected shape):
//
//	_, err := client.Session.Create(ctx, nil)
//	if status, ok := opencode.ErrorStatus(err); ok && status == 429 {
//		// rate limited
//	}
//
// # Retries
//
// Failed attempts are retried automatically for connection errors,
// timeouts, and the retryable status codes (408, 409, 429, 5xx), up to
// the configured maximum (2 retries by default). Servers can steer the
// behavior with the retry-after, retry-after-ms, and x-should-retry
// headers. The per-request timeout applies to each attempt individually,
// not the logical call as a whole.
package opencode
