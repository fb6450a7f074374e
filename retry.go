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
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// Retry tuning. Server hints (retry-after-ms, retry-after) are used
// verbatim but clamped to retryHintCap; the computed backoff doubles
// from retryBackoffBase up to retryBackoffCap and is scaled by a
// uniform jitter factor in [0.5, 1.0].
const (
	retryBackoffBase = 500 * time.Millisecond
	retryBackoffCap  = 8 * time.Second
	retryHintCap     = 60 * time.Second
)

// shouldRetry decides whether a failed attempt is eligible for another.
// An explicit x-should-retry header overrides everything else; without
// one, eligibility follows the error taxonomy (connection errors,
// timeouts, and the retryable statuses). The attempt budget and
// cancellation are checked by the engine loop, not here.
func shouldRetry(err error, header http.Header) bool {
	switch header.Get("x-should-retry") {
	case "true":
		return true
	case "false":
		return false
	}
	return IsRetryable(err)
}

// retryDelay computes the wait before the next attempt. attempt is the
// zero-based index of the attempt that just failed.
//
// Priority: retry-after-ms (milliseconds), then retry-after (seconds),
// then jittered exponential backoff.
func retryDelay(attempt int, header http.Header, rnd func() float64) time.Duration {
	if v := header.Get("retry-after-ms"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms >= 0 {
			return clampHint(time.Duration(ms) * time.Millisecond)
		}
	}

	if v := header.Get("retry-after"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
			return clampHint(time.Duration(secs * float64(time.Second)))
		}
	}

	return backoffDelay(attempt, rnd)
}

// backoffDelay returns base * 2^attempt capped at retryBackoffCap, then
// scaled by a jitter factor in [0.5, 1.0] so that concurrent clients
// desynchronize without ever exceeding the cap.
func backoffDelay(attempt int, rnd func() float64) time.Duration {
	backoff := retryBackoffBase
	for i := 0; i < attempt && backoff < retryBackoffCap; i++ {
		backoff *= 2
	}
	if backoff > retryBackoffCap {
		backoff = retryBackoffCap
	}

	jitter := 0.5 + 0.5*rnd()
	return time.Duration(float64(backoff) * jitter)
}

func clampHint(d time.Duration) time.Duration {
	if d > retryHintCap {
		return retryHintCap
	}
	return d
}

// defaultJitter is the jitter source used outside of tests.
func defaultJitter() float64 {
	return rand.Float64()
}
