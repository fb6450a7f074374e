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

// Package sse reassembles Server-Sent-Event records from an arbitrarily
// chunked byte stream.
//
// The decoder is push-based and allocation-light: feed it whatever bytes
// arrived on the wire and collect the records completed so far. Feeding
// the same bytes in different chunkings yields identical records.
package sse

import (
	"strings"
)

// A Record is one Server-Sent Event: the fields accumulated between two
// blank lines on the wire.
type Record struct {
	// Event is the record's event type (the last "event:" line), or
	// empty if the record carried none.
	Event string
	// Data is the concatenation of all "data:" lines, joined with "\n".
	Data string
	// Raw is the record's raw wire text, kept for diagnostics.
	Raw string
}

// A Decoder accumulates bytes and emits complete records. The zero
// value is ready to use.
//
// Per the wire format: a blank line terminates the current record,
// lines starting with ":" are comments, a single space after the field
// colon is stripped, carriage returns before the newline are dropped,
// and unrecognized fields (including "id:" and "retry:") are ignored.
type Decoder struct {
	buf   strings.Builder // partial line carried across Feed calls
	event string
	data  []string
	raw   strings.Builder
	dirty bool // a field line has been seen for the current record
}

// Feed appends p to the decoder's input and returns the records
// completed by it, in wire order.
func (d *Decoder) Feed(p []byte) []Record {
	var records []Record

	rest := string(p)
	for {
		nl := strings.IndexByte(rest, '\n')
		if nl < 0 {
			d.buf.WriteString(rest)
			return records
		}

		d.buf.WriteString(rest[:nl])
		rest = rest[nl+1:]

		line := strings.TrimSuffix(d.buf.String(), "\r")
		d.buf.Reset()

		if rec, ok := d.line(line); ok {
			records = append(records, rec)
		}
	}
}

// Flush terminates the stream: any buffered partial line is processed
// and the record under accumulation, if non-empty, is returned.
func (d *Decoder) Flush() (Record, bool) {
	if d.buf.Len() > 0 {
		line := strings.TrimSuffix(d.buf.String(), "\r")
		d.buf.Reset()
		if rec, ok := d.line(line); ok {
			// A trailing blank line completed a record.
			return rec, true
		}
	}
	return d.emit()
}

// line consumes one complete input line and returns a finished record
// when the line was a record terminator.
func (d *Decoder) line(line string) (Record, bool) {
	if line == "" {
		return d.emit()
	}

	if d.raw.Len() > 0 {
		d.raw.WriteByte('\n')
	}
	d.raw.WriteString(line)

	if strings.HasPrefix(line, ":") {
		// Comment.
		return Record{}, false
	}

	field, value := splitField(line)
	switch field {
	case "event":
		d.event = value
		d.dirty = true
	case "data":
		d.data = append(d.data, value)
		d.dirty = true
	}
	// Unknown fields are ignored.

	return Record{}, false
}

func (d *Decoder) emit() (Record, bool) {
	raw := d.raw.String()
	d.raw.Reset()

	if !d.dirty {
		return Record{}, false
	}

	rec := Record{
		Event: d.event,
		Data:  strings.Join(d.data, "\n"),
		Raw:   raw,
	}
	d.event = ""
	d.data = nil
	d.dirty = false
	return rec, true
}

// splitField splits "field: value" at the first colon, stripping one
// leading space from the value. A line with no colon is a field with an
// empty value.
func splitField(line string) (field, value string) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return line, ""
	}
	field = line[:colon]
	value = line[colon+1:]
	value = strings.TrimPrefix(value, " ")
	return field, value
}
