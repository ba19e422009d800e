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
	"errors"
	"time"

	"github.com/arcentrix/filereporter/pkg/accesslog"
	"github.com/gofiber/fiber/v2"
)

const (
	// LocalsAPI holds the name of the API a request was routed to.
	LocalsAPI = "accesslog.api"
	// DefaultAPIKeyHeader carries the consumer's API key.
	DefaultAPIKeyHeader = "X-Api-Key"
)

// Reporter receives one record per completed request.
type Reporter interface {
	Report(event accesslog.Reportable)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(event accesslog.Reportable)

func (f ReporterFunc) Report(event accesslog.Reportable) { f(event) }

// AccessLogMiddleware reports every request once the rest of the chain has
// run. The record is handed over synchronously because fiber reuses the
// request buffers its strings point into once the handler returns.
func AccessLogMiddleware(r Reporter, apiKeyHeader string) fiber.Handler {
	if apiKeyHeader == "" {
		apiKeyHeader = DefaultAPIKeyHeader
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		rec := accesslog.RequestRecord{
			Timestamp:      start,
			LocalAddress:   c.Context().LocalIP().String(),
			RemoteAddress:  c.IP(),
			Method:         c.Method(),
			Path:           c.Path(),
			Status:         statusOf(c, err),
			ContentLength:  contentLength(c),
			ResponseTimeMs: time.Since(start).Milliseconds(),
		}
		if api, ok := c.Locals(LocalsAPI).(string); ok && api != "" {
			rec.API = &api
		}
		if key := c.Get(apiKeyHeader); key != "" {
			rec.APIKey = &key
		}
		r.Report(&rec)

		return err
	}
}

// statusOf returns the status the error handler is going to send when the
// chain failed, and the response status otherwise.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func contentLength(c *fiber.Ctx) int64 {
	resp := c.Response()
	if resp.IsBodyStream() {
		return -1
	}
	return int64(len(resp.Body()))
}
