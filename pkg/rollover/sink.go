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

// Package rollover implements a file sink that rolls over to a new file at
// each period boundary implied by a date pattern, backs up files it would
// otherwise truncate, and prunes files past a retention window.
package rollover

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

const (
	// DefaultChunkSize bounds the write buffer between a line and the file.
	DefaultChunkSize = 2048

	rotationRetryInterval = 10 * time.Second
)

// Option customizes a Sink.
type Option func(*Sink)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sink) { s.now = now }
}

// WithLocation sets the time zone used for file names and period boundaries.
func WithLocation(loc *time.Location) Option {
	return func(s *Sink) { s.loc = loc }
}

// WithErrorHandler receives every steady-state failure: writes, rotations,
// pruning and close. The handler runs with the sink lock held and must not
// call back into the sink.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Sink) { s.onError = fn }
}

// WithMetrics records sink activity into m.
func WithMetrics(m *Metrics) Option {
	return func(s *Sink) { s.metrics = m }
}

// Sink appends bytes to the file of the current period.
//
// Open, Write and Close are serialized by one mutex, so a rotation and the
// write that triggered it form a single unit with respect to the file handle.
// Writes on a closed sink are dropped without error and report len(p).
type Sink struct {
	conf      Conf
	names     nameTemplate
	dateFmt   *datePattern
	backupFmt *datePattern
	schedule  *rotationSchedule

	now     func() time.Time
	loc     *time.Location
	onError func(error)
	metrics *Metrics

	mu     sync.Mutex
	opened bool
	path   string
	file   *os.File
	w      *bufio.Writer
	next   time.Time
}

// New validates conf and builds a closed sink.
func New(conf Conf, opts ...Option) (*Sink, error) {
	conf.SetDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	s := &Sink{
		conf:    conf,
		names:   newNameTemplate(&conf),
		now:     time.Now,
		loc:     time.Local,
		onError: func(error) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.loc == nil {
		s.loc = time.Local
	}

	var err error
	if s.dateFmt, err = compilePattern(conf.DateFormat); err != nil {
		return nil, fmt.Errorf("%w: dateFormat: %v", ErrInvalidConfig, err)
	}
	if s.backupFmt, err = compilePattern(conf.BackupFormat); err != nil {
		return nil, fmt.Errorf("%w: backupFormat: %v", ErrInvalidConfig, err)
	}
	if s.schedule, err = newRotationSchedule(s.dateFmt); err != nil {
		return nil, err
	}
	return s, nil
}

// Open creates the output directory and the file for the current period.
// A disabled config leaves the sink closed and returns nil.
// Opening an open sink is a no-op.
func (s *Sink) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opened || !s.conf.Enabled() {
		return nil
	}
	if err := os.MkdirAll(s.names.dir, 0o755); err != nil {
		return &OpenError{Path: s.names.dir, Err: err}
	}

	now := s.now()
	path := s.pathFor(now)
	if err := s.backupExisting(path, now); err != nil {
		return &OpenError{Path: path, Err: err}
	}
	f, err := openAppend(path)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}

	s.setFile(path, f)
	s.opened = true
	s.next = s.schedule.next(now, s.loc)
	s.prune(now)
	return nil
}

// Write appends p to the current file and flushes it, rolling over first when
// the period boundary has passed. Errors are also delivered to the error handler.
func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		return len(p), nil
	}
	if now := s.now(); !now.Before(s.next) {
		s.rotate(now)
	}
	if s.file == nil {
		s.metrics.writeFailed()
		err := fmt.Errorf("%w: %w", ErrWrite, ErrNoActiveFile)
		s.report(err)
		return 0, err
	}

	n, err := s.w.Write(p)
	if err == nil {
		err = s.w.Flush()
	}
	if err != nil {
		// bufio errors are sticky; start over so later lines still get through.
		s.w.Reset(s.file)
		s.metrics.writeFailed()
		err = fmt.Errorf("%w: %s: %w", ErrWrite, s.path, err)
		s.report(err)
		return n, err
	}
	s.metrics.wrote(n)
	return n, nil
}

// Close flushes and closes the current file. It is safe to call repeatedly;
// failures are delivered to the error handler and never returned.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened {
		return nil
	}
	s.opened = false
	if s.file == nil {
		return nil
	}
	if err := s.closeFile(); err != nil {
		s.report(fmt.Errorf("close %s: %w", s.path, err))
	}
	return nil
}

// Path returns the file currently written to, or "" when none is open.
func (s *Sink) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return ""
	}
	return s.path
}

// IsOpen reports whether the sink accepts writes.
func (s *Sink) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

// NextRotation returns the instant of the next scheduled rollover.
func (s *Sink) NextRotation() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}

// rotate switches to the file of the period containing now. The previous
// handle is kept until the new one is open, so a failed rotation keeps
// writing to the old file.
func (s *Sink) rotate(now time.Time) {
	newPath := s.pathFor(now)

	if newPath == s.path && s.file != nil {
		// Undated pattern: the finished period is moved aside and the name reused.
		if err := s.closeFile(); err != nil {
			s.report(fmt.Errorf("%w: close %s: %w", ErrRotation, s.path, err))
		}
		archiveErr := s.archive(s.path, now)
		f, err := openAppend(newPath)
		if err != nil {
			s.rotationFailed(now, err)
			return
		}
		s.setFile(newPath, f)
		if archiveErr != nil {
			// Lines of the new period already go to this file; retrying would split it.
			s.metrics.rotationFailed()
			s.report(fmt.Errorf("%w: %w", ErrRotation, archiveErr))
			s.next = s.schedule.next(now, s.loc)
			return
		}
		s.rotated(now)
		return
	}

	if err := s.backupExisting(newPath, now); err != nil {
		s.rotationFailed(now, err)
		return
	}
	f, err := openAppend(newPath)
	if err != nil {
		s.rotationFailed(now, err)
		return
	}
	if s.file != nil {
		if err := s.closeFile(); err != nil {
			s.report(fmt.Errorf("%w: close %s: %w", ErrRotation, s.path, err))
		}
	}
	s.setFile(newPath, f)
	s.rotated(now)
}

func (s *Sink) rotated(now time.Time) {
	s.metrics.rotated()
	s.next = s.schedule.next(now, s.loc)
	s.prune(now)
}

func (s *Sink) rotationFailed(now time.Time, err error) {
	s.metrics.rotationFailed()
	s.report(fmt.Errorf("%w: %w", ErrRotation, err))
	s.next = now.Add(rotationRetryInterval)
}

// backupExisting moves an existing file out of the way unless appending.
func (s *Sink) backupExisting(path string, now time.Time) error {
	if s.conf.Append {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return s.archive(path, now)
}

// archive renames path to path.<backup>.
func (s *Sink) archive(path string, now time.Time) error {
	backup := path + "." + s.backupFmt.format(now.In(s.loc))
	if err := os.Rename(path, backup); err != nil {
		return fmt.Errorf("rename %s to %s: %w", path, backup, err)
	}
	return nil
}

func (s *Sink) pathFor(now time.Time) string {
	return s.names.path(s.dateFmt.format(now.In(s.loc)))
}

func (s *Sink) setFile(path string, f *os.File) {
	s.path = path
	s.file = f
	if s.w == nil {
		s.w = bufio.NewWriterSize(f, DefaultChunkSize)
	} else {
		s.w.Reset(f)
	}
}

// closeFile flushes and closes the handle; the sink has no file afterwards.
func (s *Sink) closeFile() error {
	flushErr := s.w.Flush()
	closeErr := s.file.Close()
	s.file = nil
	return errors.Join(flushErr, closeErr)
}

func (s *Sink) report(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

// openAppend is replaced in tests to simulate files that cannot be created.
var openAppend = func(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
