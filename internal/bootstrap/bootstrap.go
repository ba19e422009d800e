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

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arcentrix/filereporter/internal/config"
	"github.com/arcentrix/filereporter/internal/gateway"
	"github.com/arcentrix/filereporter/internal/reporter"
	"github.com/arcentrix/filereporter/pkg/http/middleware"
	"github.com/arcentrix/filereporter/pkg/log"
	"github.com/arcentrix/filereporter/pkg/metrics"
	"github.com/arcentrix/filereporter/pkg/rollover"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	HttpApp       *fiber.App
	Reporter      *reporter.Reporter
	MetricsServer *metrics.Server
	Logger        *log.Logger
	AppConf       *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *gateway.Router,
	rep *reporter.Reporter,
	sinkMetrics *rollover.Metrics,
	metricsServer *metrics.Server,
	logger *log.Logger,
	appConf *config.AppConfig,
) (*App, func(), error) {
	if metricsServer != nil {
		reg := metricsServer.GetRegistry()
		if err := sinkMetrics.Register(reg); err != nil {
			return nil, nil, fmt.Errorf("register access log metrics: %w", err)
		}
		if err := middleware.RegisterHttpMetrics(reg); err != nil {
			return nil, nil, fmt.Errorf("register http metrics: %w", err)
		}
	}

	app := &App{
		HttpApp:       rt.Router(),
		Reporter:      rep,
		MetricsServer: metricsServer,
		Logger:        logger,
		AppConf:       appConf,
	}

	cleanup := func() {
		// requests still in flight were drained by the HTTP shutdown, so the
		// access log can be closed now
		log.Info("Closing access log...")
		if err := rep.Stop(); err != nil {
			log.Errorw("Failed to close access log", zap.Error(err))
		}

		if metricsServer != nil {
			log.Info("Shutting down metrics server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Errorw("Failed to stop metrics server", zap.Error(err))
			}
		}

		_ = log.Sync()
	}

	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, err
	}
	return app, cleanup, nil
}

// Start opens the access log and the metrics listener. A failing access log
// does not keep the gateway from serving.
func Start(app *App) {
	if app.MetricsServer != nil {
		if err := app.MetricsServer.Start(); err != nil {
			log.Errorw("Metrics server failed", zap.Error(err))
		}
	}

	if err := app.Reporter.Start(); err != nil {
		log.Errorw("Access log unavailable, serving without it", zap.Error(err))
	}
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	appConf := app.AppConf

	Start(app)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	listenErr := make(chan error, 1)
	go func() {
		addr := appConf.Http.Addr()
		log.Infow("HTTP listener started", "address", addr)
		if err := app.HttpApp.Listen(addr); err != nil {
			log.Errorw("HTTP listener failed", "address", addr, zap.Error(err))
			listenErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Infow("Received OS signal, shutting down gracefully...", "signal", sig.String())
	case <-listenErr:
		log.Info("HTTP listener stopped, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(appConf.Http.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server shut down gracefully")
	}

	cleanup()

	log.Info("Server shutdown complete")
}
