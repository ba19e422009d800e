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

//go:build wireinject
// +build wireinject

package main

import (
	"github.com/arcentrix/filereporter/internal/bootstrap"
	"github.com/arcentrix/filereporter/internal/config"
	"github.com/arcentrix/filereporter/internal/gateway"
	"github.com/arcentrix/filereporter/internal/reporter"
	"github.com/arcentrix/filereporter/pkg/event"
	"github.com/arcentrix/filereporter/pkg/http/middleware"
	"github.com/arcentrix/filereporter/pkg/log"
	"github.com/arcentrix/filereporter/pkg/metrics"
	"github.com/google/wire"
)

func initApp(configPath string) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// config
		config.ProviderSet,
		// logging (config)
		log.ProviderSet,
		// metrics (config)
		metrics.ProviderSet,
		// access log (config, log)
		reporter.ProviderSet,
		// gateway (config, access log)
		gateway.ProviderSet,
		wire.Bind(new(middleware.Reporter), new(*event.Bus)),
		bootstrap.NewApp,
	))
}
