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

package accesslog

import "time"

// Reportable is an event handed to reporters. Reporters pick the kinds they handle.
type Reportable interface {
	IsReportable()
}

// RequestRecord is the read-only view of one completed request.
// The formatter never mutates it.
type RequestRecord struct {
	Timestamp     time.Time
	LocalAddress  string
	RemoteAddress string
	// API is nil when the request did not resolve to an API.
	API *string
	// APIKey is nil when no key was presented.
	APIKey *string
	Method string
	Path   string
	// Status <= 0 means unknown.
	Status int
	// ContentLength < 0 means unknown.
	ContentLength  int64
	ResponseTimeMs int64
}

// IsReportable marks RequestRecord as an event the file reporter handles.
func (r *RequestRecord) IsReportable() {}

// StringPtr returns a pointer to s, for filling the optional fields.
func StringPtr(s string) *string {
	return &s
}
