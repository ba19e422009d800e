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

package reporter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arcentrix/filereporter/pkg/accesslog"
	"github.com/arcentrix/filereporter/pkg/log"
	"github.com/arcentrix/filereporter/pkg/rollover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type otherEvent struct{}

func (otherEvent) IsReportable() {}

func testLogger() *log.Logger {
	return &log.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

func record(i int) *accesslog.RequestRecord {
	return &accesslog.RequestRecord{
		Timestamp:      time.Date(2024, 1, 15, 10, 23, 45, 123_000_000, time.UTC),
		LocalAddress:   "10.0.0.1",
		RemoteAddress:  "203.0.113.7",
		API:            accesslog.StringPtr("my-api"),
		APIKey:         accesslog.StringPtr("abc123"),
		Method:         "GET",
		Path:           fmt.Sprintf("/v1/users/%d", i),
		Status:         200,
		ContentLength:  512,
		ResponseTimeMs: 47,
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestReporter_WritesRecords(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	r, err := New(&rollover.Conf{OutputDirectory: dir}, testLogger(),
		WithLocation(time.UTC), WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	require.NoError(t, r.Start())

	path := r.Path()
	assert.Equal(t, filepath.Join(dir, "access-2024_01_15.log"), path)
	for i := 0; i < 3; i++ {
		r.Report(record(i))
	}
	require.NoError(t, r.Stop())
	require.NoError(t, r.Stop())

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	for i, line := range lines {
		assert.Equal(t, fmt.Sprintf("[2024-01-15T10:23:45.123+0000] (10.0.0.1) 203.0.113.7 my-api abc123 GET /v1/users/%d 200 512 47", i), line)
	}
}

func TestReporter_IgnoresOtherEvents(t *testing.T) {
	dir := t.TempDir()
	r, err := New(&rollover.Conf{OutputDirectory: dir}, testLogger(), WithLocation(time.UTC))
	require.NoError(t, err)
	require.NoError(t, r.Start())
	defer r.Stop()

	var nilRecord *accesslog.RequestRecord
	assert.True(t, r.CanHandle(record(0)))
	assert.False(t, r.CanHandle(otherEvent{}))
	assert.False(t, r.CanHandle(nilRecord))

	r.Report(otherEvent{})
	r.Report(nilRecord)

	info, err := os.Stat(r.Path())
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestReporter_Disabled(t *testing.T) {
	r, err := New(&rollover.Conf{}, testLogger())
	require.NoError(t, err)
	require.NoError(t, r.Start())

	assert.NotPanics(t, func() {
		for i := 0; i < 10; i++ {
			r.Report(record(i))
		}
	})
	assert.Empty(t, r.Path())
	assert.NoError(t, r.Stop())
}

func TestReporter_NotStarted(t *testing.T) {
	dir := t.TempDir()
	r, err := New(&rollover.Conf{OutputDirectory: dir}, testLogger())
	require.NoError(t, err)

	r.Report(record(0))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, r.Stop())
}

func TestReporter_StartFailure(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	r, err := New(&rollover.Conf{OutputDirectory: filepath.Join(blocker, "out")}, testLogger())
	require.NoError(t, err)

	err = r.Start()
	require.Error(t, err)
	assert.True(t, errors.Is(err, rollover.ErrSinkOpen))
	assert.NotPanics(t, func() { r.Report(record(0)) })
	assert.NoError(t, r.Stop())
}

func TestReporter_InvalidConfig(t *testing.T) {
	_, err := New(&rollover.Conf{OutputDirectory: t.TempDir(), DateFormat: "yyyy_MMM"}, testLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, rollover.ErrInvalidConfig))
}

func TestReporter_ErrorHandler(t *testing.T) {
	dir := t.TempDir()
	var (
		mu   sync.Mutex
		errs []error
		now  = time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)
	)
	r, err := New(&rollover.Conf{OutputDirectory: dir, Append: true}, testLogger(),
		WithLocation(time.UTC),
		WithClock(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return now
		}),
		WithErrorHandler(func(err error) {
			mu.Lock()
			defer mu.Unlock()
			errs = append(errs, err)
		}))
	require.NoError(t, err)
	require.NoError(t, r.Start())
	defer r.Stop()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "access-2024_01_16.log"), 0o755))
	mu.Lock()
	now = now.Add(2 * time.Second)
	mu.Unlock()
	r.Report(record(1))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], rollover.ErrRotation))
}

func TestReporter_ConcurrentReports(t *testing.T) {
	dir := t.TempDir()
	r, err := New(&rollover.Conf{OutputDirectory: dir}, testLogger(), WithLocation(time.UTC))
	require.NoError(t, err)
	require.NoError(t, r.Start())
	path := r.Path()

	const workers, perWorker = 8, 250
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				r.Report(record(w*perWorker + i))
			}
		}(w)
	}
	wg.Wait()
	require.NoError(t, r.Stop())

	lines := readLines(t, path)
	require.Len(t, lines, workers*perWorker)
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		fields := strings.Split(line, " ")
		require.Len(t, fields, 10, line)
		seen[fields[6]] = true
	}
	assert.Len(t, seen, workers*perWorker)
}

func TestReporter_DefaultsToGlobalLogger(t *testing.T) {
	r, err := New(nil, nil)
	require.NoError(t, err)
	assert.Same(t, log.GetLogger(), r.logger.SugaredLogger)
}
