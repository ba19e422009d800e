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

package http

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Http configures the gateway listener.
type Http struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	AccessLog       bool   `mapstructure:"accessLog"`
	ReadTimeout     int    `mapstructure:"readTimeout"`
	WriteTimeout    int    `mapstructure:"writeTimeout"`
	IdleTimeout     int    `mapstructure:"idleTimeout"`
	ShutdownTimeout int    `mapstructure:"shutdownTimeout"`
	BodyLimit       int    `mapstructure:"bodyLimit"` // request body limit in bytes, 10MB by default
	// APIKeyHeader carries the consumer's API key.
	APIKeyHeader string `mapstructure:"apiKeyHeader"`
	// APIs maps path prefixes to upstreams.
	APIs []API `mapstructure:"apis"`
}

// API is one proxied upstream.
type API struct {
	Name     string `mapstructure:"name"`
	Prefix   string `mapstructure:"prefix"`
	Upstream string `mapstructure:"upstream"`
}

func (h *Http) SetDefaults() {
	if h.Host == "" {
		h.Host = "127.0.0.1"
	}
	if h.Port == 0 {
		h.Port = 8080
	}
	if h.ReadTimeout == 0 {
		h.ReadTimeout = 60
	}
	if h.WriteTimeout == 0 {
		h.WriteTimeout = 60
	}
	if h.IdleTimeout == 0 {
		h.IdleTimeout = 60
	}
	if h.ShutdownTimeout == 0 {
		h.ShutdownTimeout = 10
	}
	if h.BodyLimit == 0 {
		h.BodyLimit = 10 * 1024 * 1024
	}
	if h.APIKeyHeader == "" {
		h.APIKeyHeader = "X-Api-Key"
	}
	// longest prefix first so MatchAPI picks the most specific route
	sort.SliceStable(h.APIs, func(i, j int) bool {
		return len(h.APIs[i].Prefix) > len(h.APIs[j].Prefix)
	})
}

// Validate checks every API has a prefix and an upstream.
func (h *Http) Validate() error {
	for i, api := range h.APIs {
		if api.Name == "" {
			return fmt.Errorf("http.apis[%d]: name is required", i)
		}
		if !strings.HasPrefix(api.Prefix, "/") {
			return fmt.Errorf("http.apis[%d] %s: prefix must start with '/'", i, api.Name)
		}
		if api.Upstream == "" {
			return fmt.Errorf("http.apis[%d] %s: upstream is required", i, api.Name)
		}
	}
	return nil
}

// Addr returns the listen address.
func (h *Http) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// FiberConfig translates the settings into a fiber configuration.
func (h *Http) FiberConfig() fiber.Config {
	return fiber.Config{
		AppName:               "filereporter",
		ReadTimeout:           time.Duration(h.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(h.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(h.IdleTimeout) * time.Second,
		BodyLimit:             h.BodyLimit,
		DisableStartupMessage: true,
	}
}

// MatchAPI returns the API whose prefix matches path, if any.
func (h *Http) MatchAPI(path string) (API, bool) {
	for _, api := range h.APIs {
		if path == api.Prefix || strings.HasPrefix(path, strings.TrimSuffix(api.Prefix, "/")+"/") {
			return api, true
		}
	}
	return API{}, false
}
