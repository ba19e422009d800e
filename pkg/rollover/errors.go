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

package rollover

import (
	"errors"
	"fmt"
)

var (
	// ErrSinkOpen is returned when the output directory or file cannot be created or written.
	ErrSinkOpen = errors.New("rollover: cannot open sink")
	// ErrWrite wraps I/O failures while appending a line.
	ErrWrite = errors.New("rollover: write failed")
	// ErrRotation wraps failures while switching to the next period's file.
	ErrRotation = errors.New("rollover: rotation failed")
	// ErrRetentionPrune wraps failures while deleting expired files.
	ErrRetentionPrune = errors.New("rollover: retention prune failed")
	// ErrNoActiveFile is reported when a write arrives after a failed rotation left no file open.
	ErrNoActiveFile = errors.New("rollover: no active file")
	// ErrInvalidConfig is returned by Conf.Validate.
	ErrInvalidConfig = errors.New("rollover: invalid config")
)

// OpenError describes a startup failure of the sink.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%v: %s: %v", ErrSinkOpen, e.Path, e.Err)
}

// Unwrap lets errors.Is match both ErrSinkOpen and the underlying cause.
func (e *OpenError) Unwrap() []error {
	return []error{ErrSinkOpen, e.Err}
}
