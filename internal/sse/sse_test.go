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

package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedAll(d *Decoder, chunks ...string) []Record {
	var records []Record
	for _, c := range chunks {
		records = append(records, d.Feed([]byte(c))...)
	}
	return records
}

func TestDecoder_SimpleRecord(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "data: {\"key\":\"value\"}\n\n")
	require.Len(t, records, 1)
	assert.Equal(t, `{"key":"value"}`, records[0].Data)
	assert.Empty(t, records[0].Event)
}

func TestDecoder_EventType(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "event: message\ndata: hello\n\n")
	require.Len(t, records, 1)
	assert.Equal(t, "message", records[0].Event)
	assert.Equal(t, "hello", records[0].Data)
}

func TestDecoder_MultilineData(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "data: line1\ndata: line2\n\n")
	require.Len(t, records, 1)
	assert.Equal(t, "line1\nline2", records[0].Data)
}

func TestDecoder_MultipleRecords(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "data: one\n\ndata: two\n\n")
	require.Len(t, records, 2)
	assert.Equal(t, "one", records[0].Data)
	assert.Equal(t, "two", records[1].Data)
}

func TestDecoder_CommentsIgnored(t *testing.T) {
	var d Decoder
	records := feedAll(&d, ": heartbeat\ndata: actual\n\n")
	require.Len(t, records, 1)
	assert.Equal(t, "actual", records[0].Data)
}

func TestDecoder_CommentOnlyRecordNotEmitted(t *testing.T) {
	var d Decoder
	records := feedAll(&d, ": just a comment\n\n")
	assert.Empty(t, records)
}

func TestDecoder_UnknownFieldsIgnored(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "id: 42\nretry: 1000\ndata: test\n\n")
	require.Len(t, records, 1)
	assert.Equal(t, "test", records[0].Data)
}

func TestDecoder_EmptyLineWithoutFields(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "\n\n\n")
	assert.Empty(t, records)
}

func TestDecoder_FieldWithoutValue(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "data\n\n")
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Data)
}

func TestDecoder_CRLFLineEndings(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "data: hello\r\n\r\n")
	require.Len(t, records, 1)
	assert.Equal(t, "hello", records[0].Data)
}

func TestDecoder_EventOnlyRecord(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "event: ping\n\n")
	require.Len(t, records, 1)
	assert.Equal(t, "ping", records[0].Event)
	assert.Empty(t, records[0].Data)
}

func TestDecoder_RawPreservesRecordText(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "event: message\n: note\ndata: x\n\n")
	require.Len(t, records, 1)
	assert.Equal(t, "event: message\n: note\ndata: x", records[0].Raw)
}

// Chunk-boundary invariance: the same input split at every possible
// byte position must decode to the same records as the unsplit input.
func TestDecoder_ChunkingInvariance(t *testing.T) {
	input := "event: alpha\ndata: {\"a\":1}\ndata: {\"b\":2}\n\n: comment\ndata: tail\n\n"

	var whole Decoder
	want := feedAll(&whole, input)
	require.Len(t, want, 2)

	for split := 1; split < len(input); split++ {
		var d Decoder
		got := feedAll(&d, input[:split], input[split:])
		assert.Equal(t, want, got, "split at byte %d", split)
	}
}

func TestDecoder_FlushPartialRecord(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "data: partial")
	assert.Empty(t, records)

	rec, ok := d.Flush()
	require.True(t, ok)
	assert.Equal(t, "partial", rec.Data)
}

func TestDecoder_FlushEmpty(t *testing.T) {
	var d Decoder
	_, ok := d.Flush()
	assert.False(t, ok)
}

func TestDecoder_FlushAfterCompleteRecord(t *testing.T) {
	var d Decoder
	records := feedAll(&d, "data: done\n\n")
	require.Len(t, records, 1)

	_, ok := d.Flush()
	assert.False(t, ok)
}
