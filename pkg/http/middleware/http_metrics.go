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

package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	labels = []string{"method", "api", "status_class"}

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gateway",
		Name:      "request_duration_seconds",
		Help:      "Proxied request duration in seconds",
		Buckets:   prometheus.DefBuckets,
	}, labels)

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "requests_total",
		Help:      "Total number of proxied requests",
	}, labels)

	httpResponseSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gateway",
		Name:      "response_size_bytes",
		Help:      "Response body size of buffered responses",
		Buckets:   prometheus.ExponentialBuckets(64, 4, 8),
	}, labels)

	httpInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gateway",
		Name:      "requests_in_flight",
		Help:      "Requests currently being served",
	})
)

// RegisterHttpMetrics registers the gateway collectors with registry.
func RegisterHttpMetrics(registry prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{httpDuration, httpRequests, httpResponseSize, httpInFlight} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// HttpMetricsMiddleware records every request under the API the router
// matched, or "unknown" when none did.
func HttpMetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		start := time.Now()
		err := c.Next()
		dur := time.Since(start).Seconds()

		api := "unknown"
		if name, ok := c.Locals(LocalsAPI).(string); ok && name != "" {
			api = name
		}
		statusClass := strconv.Itoa(statusOf(c, err)/100) + "xx"
		// label values outlive the request; fiber reuses the method buffer
		method := utils.CopyString(c.Method())

		httpDuration.WithLabelValues(method, api, statusClass).Observe(dur)
		httpRequests.WithLabelValues(method, api, statusClass).Inc()
		if n := contentLength(c); n >= 0 {
			httpResponseSize.WithLabelValues(method, api, statusClass).Observe(float64(n))
		}

		return err
	}
}
