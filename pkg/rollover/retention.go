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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// removeFile is replaced in tests to simulate undeletable files.
var removeFile = os.Remove

// retentionCutoff returns the instant before which files are expired.
func retentionCutoff(now time.Time, retainDays int, loc *time.Location) time.Time {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return midnight.AddDate(0, 0, -retainDays)
}

// fileDate reports the period a file in the output directory belongs to.
// Names without a parseable date fall back to the modification time.
func (s *Sink) fileDate(entry os.DirEntry) (time.Time, bool) {
	name := entry.Name()
	if !strings.HasPrefix(name, s.names.prefix) {
		return time.Time{}, false
	}
	rest := name[len(s.names.prefix):]

	if s.names.dated {
		t, n, ok := s.dateFmt.parsePrefix(rest, s.loc)
		if !ok || !strings.HasPrefix(rest[n:], s.names.suffix) {
			return time.Time{}, false
		}
		if s.dateFmt.hasCalendarDate() {
			return t, true
		}
	} else if rest != "" && !strings.HasPrefix(rest, ".") {
		return time.Time{}, false
	}

	info, err := entry.Info()
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// prune deletes files older than RetainDays. Failures are reported and never
// abort the caller.
func (s *Sink) prune(now time.Time) {
	if s.conf.RetainDays <= 0 {
		return
	}
	entries, err := os.ReadDir(s.names.dir)
	if err != nil {
		s.metrics.pruneFailed()
		s.report(fmt.Errorf("%w: read %s: %v", ErrRetentionPrune, s.names.dir, err))
		return
	}

	cutoff := retentionCutoff(now, s.conf.RetainDays, s.loc)
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(s.names.dir, entry.Name())
		if path == s.path {
			continue
		}
		date, ok := s.fileDate(entry)
		if !ok || !date.Before(cutoff) {
			continue
		}
		if err := removeFile(path); err != nil {
			s.metrics.pruneFailed()
			s.report(fmt.Errorf("%w: remove %s: %v", ErrRetentionPrune, path, err))
			continue
		}
		s.metrics.pruned()
	}
}
