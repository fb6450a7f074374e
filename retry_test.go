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
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestShouldRetry(t *testing.T) {
	t.Run("header true forces retry of client error", func(t *testing.T) {
		err := newAPIError(400, nil, nil)
		assert.True(t, shouldRetry(err, header("x-should-retry", "true")))
	})

	t.Run("header false vetoes retry of server error", func(t *testing.T) {
		err := newAPIError(500, nil, nil)
		assert.False(t, shouldRetry(err, header("x-should-retry", "false")))
	})

	t.Run("unrecognized header value falls back to taxonomy", func(t *testing.T) {
		err := newAPIError(500, nil, nil)
		assert.True(t, shouldRetry(err, header("x-should-retry", "maybe")))
	})

	t.Run("no header follows taxonomy", func(t *testing.T) {
		assert.True(t, shouldRetry(&ConnectionError{Message: "refused"}, header()))
		assert.True(t, shouldRetry(&TimeoutError{}, header()))
		assert.True(t, shouldRetry(newAPIError(429, nil, nil), header()))
		assert.False(t, shouldRetry(newAPIError(404, nil, nil), header()))
		assert.False(t, shouldRetry(&UserAbortError{}, header()))
	})

	t.Run("nil header map is safe", func(t *testing.T) {
		assert.True(t, shouldRetry(&ConnectionError{Message: "reset"}, nil))
	})
}

func TestRetryDelayHints(t *testing.T) {
	fixed := func() float64 { return 1.0 }

	t.Run("retry-after-ms wins", func(t *testing.T) {
		h := header("retry-after-ms", "1500", "retry-after", "30")
		assert.Equal(t, 1500*time.Millisecond, retryDelay(0, h, fixed))
	})

	t.Run("retry-after seconds", func(t *testing.T) {
		h := header("retry-after", "3")
		assert.Equal(t, 3*time.Second, retryDelay(0, h, fixed))
	})

	t.Run("retry-after fractional seconds", func(t *testing.T) {
		h := header("retry-after", "0.25")
		assert.Equal(t, 250*time.Millisecond, retryDelay(0, h, fixed))
	})

	t.Run("hints clamped to cap", func(t *testing.T) {
		assert.Equal(t, retryHintCap, retryDelay(0, header("retry-after-ms", "3600000"), fixed))
		assert.Equal(t, retryHintCap, retryDelay(0, header("retry-after", "120"), fixed))
	})

	t.Run("malformed hints fall back to backoff", func(t *testing.T) {
		for _, h := range []http.Header{
			header("retry-after-ms", "soon"),
			header("retry-after-ms", "-100"),
			header("retry-after", "Wed, 21 Oct 2015 07:28:00 GMT"),
			header("retry-after", "-1"),
		} {
			got := retryDelay(0, h, fixed)
			assert.Equal(t, retryBackoffBase, got, "header %v", h)
		}
	})

	t.Run("zero hint means immediate retry", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), retryDelay(0, header("retry-after-ms", "0"), fixed))
	})
}

func TestBackoffDelay(t *testing.T) {
	fixed := func() float64 { return 1.0 }

	t.Run("doubles per attempt up to cap", func(t *testing.T) {
		want := []time.Duration{
			500 * time.Millisecond,
			1 * time.Second,
			2 * time.Second,
			4 * time.Second,
			8 * time.Second,
			8 * time.Second,
			8 * time.Second,
		}
		for attempt, w := range want {
			assert.Equal(t, w, backoffDelay(attempt, fixed), "attempt %d", attempt)
		}
	})

	t.Run("jitter stays within bounds", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			got := backoffDelay(4, defaultJitter)
			require.GreaterOrEqual(t, got, 4*time.Second)
			require.LessOrEqual(t, got, 8*time.Second)
		}
	})

	t.Run("minimum jitter halves the backoff", func(t *testing.T) {
		low := func() float64 { return 0.0 }
		assert.Equal(t, 250*time.Millisecond, backoffDelay(0, low))
	})
}
