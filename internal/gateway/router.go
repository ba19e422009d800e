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

// Package gateway proxies API traffic to upstreams and reports every request
// to the access log.
package gateway

import (
	"strings"
	"time"

	"github.com/arcentrix/filereporter/internal/reporter"
	"github.com/arcentrix/filereporter/pkg/event"
	"github.com/arcentrix/filereporter/pkg/http"
	"github.com/arcentrix/filereporter/pkg/http/middleware"
	"github.com/arcentrix/filereporter/pkg/log"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
	"github.com/google/wire"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// ProviderSet is the Wire provider set for the gateway.
var ProviderSet = wire.NewSet(NewRouter, ProvideEventBus)

// ProvideEventBus registers the reporters that receive completed requests.
func ProvideEventBus(rep *reporter.Reporter) *event.Bus {
	return event.NewEventBus(rep)
}

type Router struct {
	Http     *http.Http
	Reporter middleware.Reporter
	Logger   *log.Logger

	client *fasthttp.Client
}

func NewRouter(conf *http.Http, reporter middleware.Reporter, logger *log.Logger) *Router {
	return &Router{
		Http:     conf,
		Reporter: reporter,
		Logger:   logger,
		client: &fasthttp.Client{
			ReadTimeout:              time.Duration(conf.ReadTimeout) * time.Second,
			WriteTimeout:             time.Duration(conf.WriteTimeout) * time.Second,
			NoDefaultUserAgentHeader: true,
		},
	}
}

// Router builds the fiber application.
func (rt *Router) Router() *fiber.App {
	app := fiber.New(rt.Http.FiberConfig())

	app.Use(middleware.HttpMetricsMiddleware())
	if rt.Http.AccessLog && rt.Reporter != nil {
		app.Use(middleware.AccessLogMiddleware(rt.Reporter, rt.Http.APIKeyHeader))
	}

	app.Get("/health", rt.health)
	app.All("/*", rt.proxy)

	return app
}

func (rt *Router) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (rt *Router) proxy(c *fiber.Ctx) error {
	api, ok := rt.Http.MatchAPI(c.Path())
	if !ok {
		return fiber.ErrNotFound
	}
	c.Locals(middleware.LocalsAPI, api.Name)

	target := strings.TrimSuffix(api.Upstream, "/") + c.OriginalURL()
	if err := proxy.Do(c, target, rt.client); err != nil {
		if rt.Logger != nil {
			rt.Logger.Warnw("upstream request failed", "api", api.Name, "upstream", api.Upstream, zap.Error(err))
		}
		return fiber.NewError(fiber.StatusBadGateway, "upstream unavailable")
	}
	return nil
}
