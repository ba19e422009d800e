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
	"time"

	"github.com/robfig/cron"
)

// Rotation specs in the six-field (with seconds) cron syntax, keyed by the
// finest unit of the date pattern.
var rotationSpecs = map[field]string{
	fieldYear4:  "0 0 0 1 1 *",
	fieldYear2:  "0 0 0 1 1 *",
	fieldMonth:  "0 0 0 1 * *",
	fieldDay:    "0 0 0 * * *",
	fieldHour:   "0 0 * * * *",
	fieldMinute: "0 * * * * *",
	fieldSecond: "* * * * * *",
	fieldMillis: "* * * * * *",
}

// rotationSchedule derives the rollover instants from a date pattern.
type rotationSchedule struct {
	spec     string
	unit     field
	schedule cron.Schedule
}

func newRotationSchedule(dp *datePattern) (*rotationSchedule, error) {
	unit := dp.finest()
	spec, ok := rotationSpecs[unit]
	if !ok {
		unit, spec = fieldDay, rotationSpecs[fieldDay]
	}
	s, err := cron.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse rotation schedule %q: %w", spec, err)
	}
	return &rotationSchedule{spec: spec, unit: unit, schedule: s}, nil
}

// next returns the start of the period following now, evaluated in loc.
func (r *rotationSchedule) next(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	next := r.schedule.Next(local)
	// cron skips a whole period when a DST jump removes its first instant
	if start := nextPeriodStart(local, r.unit); start.After(local) && start.Before(next) {
		return start
	}
	return next
}

// nextPeriodStart returns the first instant of the calendar period after the
// one containing t, or the zero time for units cron already handles exactly.
func nextPeriodStart(t time.Time, unit field) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch unit {
	case fieldYear4, fieldYear2:
		return wallClock(y+1, time.January, 1, 0, loc)
	case fieldMonth:
		return wallClock(y, m+1, 1, 0, loc)
	case fieldDay:
		return wallClock(y, m, d+1, 0, loc)
	case fieldHour:
		return wallClock(y, m, d, t.Hour()+1, loc)
	default:
		return time.Time{}
	}
}

// wallClock returns the first instant at or after the wall clock time in loc.
// time.Date resolves a time inside a DST gap with either offset, which can
// land before the gap.
func wallClock(y int, m time.Month, d, h int, loc *time.Location) time.Time {
	t := time.Date(y, m, d, h, 0, 0, 0, loc)
	want := time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	got := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	if got.Before(want) {
		if _, end := t.ZoneBounds(); !end.IsZero() {
			return end.In(loc)
		}
	}
	return t
}
