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
	"errors"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	c := mustNewClient(t)

	if got := c.BaseURL(); got != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", got, DefaultBaseURL)
	}
	if got := c.Timeout(); got != DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", got, DefaultTimeout)
	}
	if got := c.MaxRetries(); got != DefaultMaxRetries {
		t.Errorf("MaxRetries() = %d, want %d", got, DefaultMaxRetries)
	}
}

func TestNewBaseURLFromEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://env-host:9999")

	c := mustNewClient(t)
	if got := c.BaseURL(); got != "http://env-host:9999" {
		t.Errorf("BaseURL() = %q, want env value", got)
	}
}

func TestNewExplicitBaseURLWinsOverEnv(t *testing.T) {
	t.Setenv(EnvBaseURL, "http://env-host:9999")

	c := mustNewClient(t, WithBaseURL("http://explicit:1111"))
	if got := c.BaseURL(); got != "http://explicit:1111" {
		t.Errorf("BaseURL() = %q, want explicit value", got)
	}
}

func TestOptionValidation(t *testing.T) {
	tests := map[string]struct {
		opt       Option
		wantField string
	}{
		"empty base URL":       {opt: WithBaseURL(""), wantField: "baseURL"},
		"unparsable base URL":  {opt: WithBaseURL("://nope"), wantField: "baseURL"},
		"zero timeout":         {opt: WithTimeout(0), wantField: "timeout"},
		"negative timeout":     {opt: WithTimeout(-time.Second), wantField: "timeout"},
		"negative max retries": {opt: WithMaxRetries(-1), wantField: "maxRetries"},
		"nil http client":      {opt: WithHTTPClient(nil), wantField: "httpClient"},
		"nil logger":           {opt: WithLogger(nil), wantField: "logger"},
		"nil interceptor":      {opt: WithInterceptors(nil), wantField: "interceptors"},
		"zero stream buffer":   {opt: WithStreamBufferSize(0), wantField: "streamBufferSize"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(tt.opt)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("New() error = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestWithMaxRetriesZeroIsValid(t *testing.T) {
	c := mustNewClient(t, WithMaxRetries(0))
	if got := c.MaxRetries(); got != 0 {
		t.Errorf("MaxRetries() = %d, want 0", got)
	}
}
