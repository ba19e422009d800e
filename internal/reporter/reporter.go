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

// Package reporter writes one access log line per completed request to a
// rolling file.
package reporter

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/arcentrix/filereporter/pkg/accesslog"
	"github.com/arcentrix/filereporter/pkg/log"
	"github.com/arcentrix/filereporter/pkg/rollover"
	"github.com/google/wire"
	"go.uber.org/zap"
)

// ProviderSet is the Wire provider set for the file reporter.
var ProviderSet = wire.NewSet(ProvideReporter, ProvideSinkMetrics)

// Reportable is any event handed to reporters; only request records are written.
type Reportable = accesslog.Reportable

// Reporter formats request records and appends them to a rollover sink.
//
// Report is serialized by a mutex so the formatter's scratch buffer can be
// reused across calls; Start and Stop take the same lock.
type Reporter struct {
	logger *log.Logger

	mu        sync.Mutex
	formatter *accesslog.Formatter
	sink      *rollover.Sink
	started   bool
}

// Option customizes a Reporter.
type Option func(*options)

type options struct {
	loc     *time.Location
	clock   func() time.Time
	metrics *rollover.Metrics
	onError func(error)
}

// WithLocation renders timestamps and names files in loc instead of time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

// WithClock replaces time.Now for the sink's rotation decisions.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithMetrics records sink activity.
func WithMetrics(m *rollover.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithErrorHandler receives sink failures in addition to the log.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

// ProvideSinkMetrics creates the sink counters.
func ProvideSinkMetrics() *rollover.Metrics {
	return rollover.NewMetrics()
}

// ProvideReporter builds a reporter for dependency injection.
func ProvideReporter(conf *rollover.Conf, logger *log.Logger, metrics *rollover.Metrics) (*Reporter, error) {
	return New(conf, logger, WithMetrics(metrics))
}

// New builds a stopped reporter. A nil conf or an empty output directory
// yields a reporter that accepts and drops every record.
func New(conf *rollover.Conf, logger *log.Logger, opts ...Option) (*Reporter, error) {
	if conf == nil {
		conf = &rollover.Conf{}
	}
	if logger == nil {
		logger = &log.Logger{SugaredLogger: log.GetLogger()}
	}
	o := &options{loc: time.Local}
	for _, opt := range opts {
		opt(o)
	}

	r := &Reporter{
		logger:    logger,
		formatter: accesslog.NewFormatter(o.loc),
	}

	sinkOpts := []rollover.Option{
		rollover.WithLocation(o.loc),
		rollover.WithMetrics(o.metrics),
		rollover.WithErrorHandler(func(err error) {
			r.logger.Errorw("access log sink failure", zap.Error(err))
			if o.onError != nil {
				o.onError(err)
			}
		}),
	}
	if o.clock != nil {
		sinkOpts = append(sinkOpts, rollover.WithClock(o.clock))
	}

	sink, err := rollover.New(*conf, sinkOpts...)
	if err != nil {
		return nil, fmt.Errorf("create access log sink: %w", err)
	}
	r.sink = sink
	return r, nil
}

// Start opens the sink. A failure leaves the reporter stopped; the host may
// log it and keep running without access logs.
func (r *Reporter) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return nil
	}
	if err := r.sink.Open(); err != nil {
		var openErr *rollover.OpenError
		if errors.As(err, &openErr) {
			r.logger.Errorw("failed to open access log", "path", openErr.Path, zap.Error(openErr.Err))
		}
		return err
	}
	r.started = true
	if path := r.sink.Path(); path != "" {
		r.logger.Infow("opened rollover access log file", "path", path)
	} else {
		r.logger.Infow("access log disabled, no output directory configured")
	}
	return nil
}

// Stop flushes and closes the sink. It can be called any number of times.
func (r *Reporter) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return nil
	}
	r.started = false
	return r.sink.Close()
}

// CanHandle reports whether the event is a request record.
func (r *Reporter) CanHandle(event Reportable) bool {
	rec, ok := event.(*accesslog.RequestRecord)
	return ok && rec != nil
}

// Report writes one line for a request record and ignores other events.
// Failures are logged by the sink error handler and never returned.
func (r *Reporter) Report(event Reportable) {
	rec, ok := event.(*accesslog.RequestRecord)
	if !ok || rec == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return
	}
	_, _ = r.sink.Write(r.formatter.Format(rec))
}

// Path returns the file currently written to.
func (r *Reporter) Path() string {
	return r.sink.Path()
}
