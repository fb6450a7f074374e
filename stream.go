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
	"log/slog"
	"net"
	"sync"

	"github.com/opencode-ai/opencode-go/internal/sse"
)

// EventStream is a live sequence of typed events decoded from a
// Server-Sent-Events response. Events arrive in wire order; the
// sequence ends when the server closes the connection, the stream is
// closed or cancelled, or (in strict decoding mode) a record fails to
// decode.
//
// A stream is not restartable: reconnection is a new call.
type EventStream struct {
	body   io.ReadCloser
	events chan Event
	logger *slog.Logger
	strict bool

	closeOnce sync.Once
	done      chan struct{}

	mu  sync.Mutex
	err error
}

func newEventStream(o *options, body io.ReadCloser) *EventStream {
	s := &EventStream{
		body:   body,
		events: make(chan Event, o.streamBufferSize),
		logger: o.logger,
		strict: o.strictEventDecoding,
		done:   make(chan struct{}),
	}
	go s.readLoop()
	return s
}

// Events returns the stream's event channel. The channel is closed
// when the sequence ends; check Err afterwards to distinguish a clean
// end from a failure.
func (s *EventStream) Events() <-chan Event {
	return s.events
}

// Next returns the next event. It blocks until an event arrives, the
// sequence ends (ErrStreamClosed or the stream's terminal error), or
// ctx is done.
func (s *EventStream) Next(ctx context.Context) (Event, error) {
	select {
	case ev, ok := <-s.events:
		if !ok {
			if err := s.Err(); err != nil {
				return nil, err
			}
			return nil, ErrStreamClosed
		}
		return ev, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Err returns the terminal error of the stream, or nil for a clean
// end. Valid after the event channel has been closed.
func (s *EventStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close ends the stream and releases the underlying connection.
// Closing ends the sequence without error and is safe to call multiple
// times and concurrently with reads.
func (s *EventStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.body.Close()
	})
	return nil
}

// readLoop pumps bytes from the response body through the SSE decoder
// and dispatches each completed record until the body ends.
func (s *EventStream) readLoop() {
	defer close(s.events)
	defer s.Close()

	var dec sse.Decoder
	buf := make([]byte, 4096)

	for {
		n, err := s.body.Read(buf)
		if n > 0 {
			for _, rec := range dec.Feed(buf[:n]) {
				if !s.dispatch(rec) {
					return
				}
			}
		}
		if err != nil {
			if rec, ok := dec.Flush(); ok {
				s.dispatch(rec)
			}
			if !s.cleanEnd(err) {
				s.setErr(&ConnectionError{Message: err.Error(), Err: err})
			}
			return
		}
	}
}

// dispatch decodes one record and forwards the event. Records with
// empty data (heartbeats, event-only pings) produce no event. A decode
// failure either terminates the stream (strict mode) or is skipped
// with a diagnostic, so schema additions upstream do not break
// long-running consumers.
func (s *EventStream) dispatch(rec sse.Record) bool {
	if rec.Data == "" {
		return true
	}

	ev, err := UnmarshalEvent([]byte(rec.Data))
	if err != nil {
		if s.strict {
			s.setErr(&SerializationError{Err: err})
			return false
		}
		s.logger.Warn("skipping undecodable event", "error", err, "record", rec.Raw)
		return true
	}

	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// cleanEnd reports whether a read error marks an orderly end of the
// sequence: EOF, a close initiated on our side, or cancellation of the
// request context.
func (s *EventStream) cleanEnd(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	select {
	case <-s.done:
		return true
	default:
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, net.ErrClosed) {
		return true
	}
	return false
}

func (s *EventStream) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}
