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

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts sink activity. A nil *Metrics is valid and records nothing.
type Metrics struct {
	linesWritten   prometheus.Counter
	bytesWritten   prometheus.Counter
	writeErrors    prometheus.Counter
	rotations      prometheus.Counter
	rotationErrors prometheus.Counter
	prunedFiles    prometheus.Counter
	pruneErrors    prometheus.Counter
}

// NewMetrics creates unregistered sink counters.
func NewMetrics() *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "accesslog",
			Name:      name,
			Help:      help,
		})
	}
	return &Metrics{
		linesWritten:   counter("lines_written_total", "Total number of access log lines appended"),
		bytesWritten:   counter("bytes_written_total", "Total number of bytes appended to access log files"),
		writeErrors:    counter("write_errors_total", "Total number of dropped access log lines"),
		rotations:      counter("rotations_total", "Total number of completed file rotations"),
		rotationErrors: counter("rotation_errors_total", "Total number of failed file rotations"),
		prunedFiles:    counter("pruned_files_total", "Total number of expired files deleted"),
		pruneErrors:    counter("prune_errors_total", "Total number of failed retention deletions"),
	}
}

// Register registers all counters with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.linesWritten, m.bytesWritten, m.writeErrors,
		m.rotations, m.rotationErrors, m.prunedFiles, m.pruneErrors,
	}
}

func (m *Metrics) wrote(n int) {
	if m == nil {
		return
	}
	m.linesWritten.Inc()
	m.bytesWritten.Add(float64(n))
}

func (m *Metrics) writeFailed() {
	if m != nil {
		m.writeErrors.Inc()
	}
}

func (m *Metrics) rotated() {
	if m != nil {
		m.rotations.Inc()
	}
}

func (m *Metrics) rotationFailed() {
	if m != nil {
		m.rotationErrors.Inc()
	}
}

func (m *Metrics) pruned() {
	if m != nil {
		m.prunedFiles.Inc()
	}
}

func (m *Metrics) pruneFailed() {
	if m != nil {
		m.pruneErrors.Inc()
	}
}
