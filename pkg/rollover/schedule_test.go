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
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadLocation(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestRotationSchedule_MidnightSkippedByDST(t *testing.T) {
	dp, err := compilePattern(DefaultDateFormat)
	require.NoError(t, err)
	sched, err := newRotationSchedule(dp)
	require.NoError(t, err)

	tests := []struct {
		zone string
		now  time.Time
		want time.Time
	}{
		// clocks jump from 00:00 -03 to 01:00 -02
		{"America/Sao_Paulo", time.Date(2018, 11, 3, 15, 0, 0, 0, time.UTC), time.Date(2018, 11, 4, 3, 0, 0, 0, time.UTC)},
		// clocks jump from 00:00 -04 to 01:00 -03
		{"America/Santiago", time.Date(2019, 9, 7, 16, 0, 0, 0, time.UTC), time.Date(2019, 9, 8, 4, 0, 0, 0, time.UTC)},
		// clocks jump from 00:00 +02 to 01:00 +03
		{"Asia/Beirut", time.Date(2019, 3, 30, 10, 0, 0, 0, time.UTC), time.Date(2019, 3, 30, 22, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.zone, func(t *testing.T) {
			loc := loadLocation(t, tt.zone)
			next := sched.next(tt.now, loc)
			assert.True(t, next.Equal(tt.want), "next = %s", next)
			assert.Equal(t, 1, next.In(loc).Hour())
		})
	}
}

func TestRotationSchedule_OrdinaryDSTDay(t *testing.T) {
	dp, err := compilePattern(DefaultDateFormat)
	require.NoError(t, err)
	sched, err := newRotationSchedule(dp)
	require.NoError(t, err)

	// New York changes at 02:00, midnight still exists
	loc := loadLocation(t, "America/New_York")
	now := time.Date(2024, 3, 9, 12, 0, 0, 0, loc)
	assert.True(t, sched.next(now, loc).Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, loc)))

	dp, err = compilePattern("yyyy_MM_dd_HH")
	require.NoError(t, err)
	hourly, err := newRotationSchedule(dp)
	require.NoError(t, err)
	// 02:00 does not exist that day; the next hour starts at 03:00 EDT
	now = time.Date(2024, 3, 10, 1, 30, 0, 0, loc)
	assert.True(t, hourly.next(now, loc).Equal(time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)))
}

func TestSink_RotatesOnDayWithoutMidnight(t *testing.T) {
	dir := t.TempDir()
	loc := loadLocation(t, "America/Sao_Paulo")
	clock := newFakeClock(time.Date(2018, 11, 3, 12, 0, 0, 0, loc))
	s, rec := newTestSink(t, Conf{OutputDirectory: dir}, clock, WithLocation(loc))
	require.NoError(t, s.Open())
	assert.True(t, s.NextRotation().Equal(time.Date(2018, 11, 4, 3, 0, 0, 0, time.UTC)))

	_, err := s.Write([]byte("saturday\n"))
	require.NoError(t, err)
	clock.Set(time.Date(2018, 11, 4, 12, 0, 0, 0, loc))
	_, err = s.Write([]byte("sunday\n"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.Equal(t, []string{"access-2018_11_03.log", "access-2018_11_04.log"}, listDir(t, dir))
	assert.Equal(t, []string{"saturday"}, readLines(t, filepath.Join(dir, "access-2018_11_03.log")))
	assert.Equal(t, []string{"sunday"}, readLines(t, filepath.Join(dir, "access-2018_11_04.log")))
	assert.Empty(t, rec.all())
}

func TestNextPeriodStart(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 10, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nextPeriodStart(now, fieldDay))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nextPeriodStart(now, fieldMonth))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nextPeriodStart(now, fieldYear4))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), nextPeriodStart(now, fieldHour))
	assert.True(t, nextPeriodStart(now, fieldMinute).IsZero())
}
