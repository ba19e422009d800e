// Copyright 2026 Arcentra Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package accesslog renders completed requests into the access log line format:
//
//	[TIMESTAMP] (LOCAL_IP) REMOTE_IP API KEY METHOD PATH STATUS LENGTH TOTAL_RESPONSE_TIME
//
// Rendering appends into caller-owned byte slices so the hot path does not allocate.
package accesslog

import (
	"strconv"
	"time"
)

const (
	// DefaultBufferSize is the initial capacity of a Formatter scratch buffer.
	DefaultBufferSize = 2048

	// TimestampLayout is RFC 3339 with milliseconds and a numeric offset without colon.
	TimestampLayout = "2006-01-02T15:04:05.000-0700"

	// LineSeparator terminates every rendered record.
	LineSeparator = "\n"

	noStringValue  = "-"
	noIntegerValue = "-1"
	unknownStatus  = 404
)

// Formatter renders records into a reused scratch buffer.
// A Formatter is not safe for concurrent use; give each writer goroutine its own.
type Formatter struct {
	buf []byte
	loc *time.Location
}

// NewFormatter creates a formatter that renders timestamps in loc.
// A nil loc means time.Local.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{
		buf: make([]byte, 0, DefaultBufferSize),
		loc: loc,
	}
}

// Format renders r and returns the line, separator included.
// The returned slice aliases the scratch buffer and is only valid until the next call.
func (f *Formatter) Format(r *RequestRecord) []byte {
	f.buf = AppendRecord(f.buf[:0], r, f.loc)
	return f.buf
}

// AppendRecord appends the rendered line for r to dst and returns the extended slice.
func AppendRecord(dst []byte, r *RequestRecord, loc *time.Location) []byte {
	if loc == nil {
		loc = time.Local
	}

	dst = append(dst, '[')
	dst = r.Timestamp.In(loc).AppendFormat(dst, TimestampLayout)
	dst = append(dst, "] ("...)

	dst = append(dst, r.LocalAddress...)
	dst = append(dst, ") "...)

	dst = append(dst, r.RemoteAddress...)
	dst = append(dst, ' ')

	dst = appendOptional(dst, r.API)
	dst = append(dst, ' ')
	dst = appendOptional(dst, r.APIKey)
	dst = append(dst, ' ')

	dst = append(dst, r.Method...)
	dst = append(dst, ' ')
	dst = append(dst, r.Path...)
	dst = append(dst, ' ')

	dst = AppendStatus(dst, r.Status)
	dst = append(dst, ' ')

	dst = AppendLength(dst, r.ContentLength)
	dst = append(dst, ' ')

	dst = strconv.AppendInt(dst, r.ResponseTimeMs, 10)
	return append(dst, LineSeparator...)
}

func appendOptional(dst []byte, s *string) []byte {
	if s == nil {
		return append(dst, noStringValue...)
	}
	return append(dst, *s...)
}

// AppendStatus appends status as exactly three digits.
// Unknown statuses (<= 0) render as 404 and values above 999 keep their last three digits.
func AppendStatus(dst []byte, status int) []byte {
	if status <= 0 {
		status = unknownStatus
	}
	return append(dst,
		byte('0'+(status/100)%10),
		byte('0'+(status/10)%10),
		byte('0'+status%10),
	)
}

// AppendLength appends a response length, or -1 when it is unknown.
func AppendLength(dst []byte, n int64) []byte {
	if n < 0 {
		return append(dst, noIntegerValue...)
	}
	if n > 99999 {
		return strconv.AppendInt(dst, n, 10)
	}
	if n > 9999 {
		dst = append(dst, byte('0'+(n/10000)%10))
	}
	if n > 999 {
		dst = append(dst, byte('0'+(n/1000)%10))
	}
	if n > 99 {
		dst = append(dst, byte('0'+(n/100)%10))
	}
	if n > 9 {
		dst = append(dst, byte('0'+(n/10)%10))
	}
	return append(dst, byte('0'+n%10))
}
