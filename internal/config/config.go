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

package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/arcentrix/filereporter/pkg/http"
	"github.com/arcentrix/filereporter/pkg/log"
	"github.com/arcentrix/filereporter/pkg/metrics"
	"github.com/arcentrix/filereporter/pkg/rollover"
	"github.com/fsnotify/fsnotify"
	"github.com/google/wire"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes environment overrides, e.g. FILEREPORTER_REPORTER_OUTPUTDIRECTORY.
const EnvPrefix = "FILEREPORTER"

// ProviderSet is the Wire provider set for configuration.
var ProviderSet = wire.NewSet(
	NewConf,
	ProvideLogConf,
	ProvideReporterConf,
	ProvideHttpConf,
	ProvideMetricsConf,
)

type AppConfig struct {
	Log      log.Conf              `mapstructure:"log"`
	Reporter rollover.Conf         `mapstructure:"reporter"`
	Http     http.Http             `mapstructure:"http"`
	Metrics  metrics.MetricsConfig `mapstructure:"metrics"`
}

var (
	cfg AppConfig
	mu  sync.RWMutex // guards cfg against reloads
)

// NewConf loads the configuration file and keeps watching it. Reloads are
// published through GetConfig; the operator log level follows them at once,
// the reporter and listener keep the settings they started with.
func NewConf(path string) (*AppConfig, error) {
	v := newViper(path)
	conf, err := read(v)
	if err != nil {
		return nil, err
	}
	mu.Lock()
	cfg = conf
	mu.Unlock()

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("configuration changed, reloading", "file", e.Name)
		reloaded, err := decode(v)
		if err != nil {
			log.Errorw("failed to reload configuration", "file", e.Name, zap.Error(err))
			return
		}
		applyReload(reloaded)
		log.Infow("configuration reloaded", "file", e.Name)
	})
	v.WatchConfig()

	log.Infow("config file loaded", "path", path)
	return &conf, nil
}

// GetConfig returns the latest reloaded configuration.
func GetConfig() AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// LoadConfigFile reads path once, applies environment overrides and defaults,
// and validates the result.
func LoadConfigFile(path string) (AppConfig, error) {
	return read(newViper(path))
}

func read(v *viper.Viper) (AppConfig, error) {
	if err := v.ReadInConfig(); err != nil {
		return AppConfig{}, fmt.Errorf("failed to read configuration file: %w", err)
	}
	return decode(v)
}

// applyReload publishes a reloaded configuration and applies the settings
// that can change at runtime.
func applyReload(reloaded AppConfig) {
	mu.Lock()
	previous := cfg
	cfg = reloaded
	mu.Unlock()

	if !strings.EqualFold(previous.Log.Level, reloaded.Log.Level) {
		log.SetLevel(reloaded.Log.Level)
		log.Infow("log level changed", "from", previous.Log.Level, "to", reloaded.Log.Level)
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about.
	for _, key := range []string{
		"log.output", "log.path", "log.level",
		"reporter.outputDirectory", "reporter.filePattern", "reporter.retainDays",
		"reporter.dateFormat", "reporter.backupFormat", "reporter.append",
		"http.host", "http.port", "http.accessLog",
		"metrics.enable", "metrics.host", "metrics.port",
	} {
		_ = v.BindEnv(key)
	}
	return v
}

func decode(v *viper.Viper) (AppConfig, error) {
	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return AppConfig{}, fmt.Errorf("failed to unmarshal configuration file: %w", err)
	}
	conf.SetDefaults()
	if err := conf.Validate(); err != nil {
		return AppConfig{}, err
	}
	return conf, nil
}

// SetDefaults fills every unset section.
func (c *AppConfig) SetDefaults() {
	def := log.SetDefaults()
	if c.Log.Output == "" {
		c.Log.Output = def.Output
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Level
	}
	if c.Log.Path == "" {
		c.Log.Path = def.Path
	}
	if c.Log.Filename == "" {
		c.Log.Filename = def.Filename
	}
	if c.Log.KeepHours == 0 {
		c.Log.KeepHours = def.KeepHours
	}
	if c.Log.RotateSize == 0 {
		c.Log.RotateSize = def.RotateSize
	}
	if c.Log.RotateNum == 0 {
		c.Log.RotateNum = def.RotateNum
	}
	c.Reporter.SetDefaults()
	c.Http.SetDefaults()
	c.Metrics.SetDefaults()
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Reporter.Validate(); err != nil {
		return fmt.Errorf("reporter: %w", err)
	}
	if err := c.Http.Validate(); err != nil {
		return err
	}
	return nil
}

func ProvideLogConf(c *AppConfig) *log.Conf { return &c.Log }

func ProvideReporterConf(c *AppConfig) *rollover.Conf { return &c.Reporter }

func ProvideHttpConf(c *AppConfig) *http.Http { return &c.Http }

func ProvideMetricsConf(c *AppConfig) metrics.MetricsConfig { return c.Metrics }
