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

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu sync.RWMutex
	// global is the logger handed out by GetLogger and ProvideLogger; helpers
	// is the same logger one frame up for the package-level functions.
	global  *zap.SugaredLogger
	helpers *zap.SugaredLogger

	level = zap.NewAtomicLevel()
)

// ProviderSet is the Wire provider set for the log package.
var ProviderSet = wire.NewSet(ProvideLogger)

// Conf defines operator log configuration.
type Conf struct {
	Output     string `mapstructure:"output"`
	Path       string `mapstructure:"path"`
	Filename   string `mapstructure:"filename"`
	Level      string `mapstructure:"level"`
	KeepHours  int    `mapstructure:"keepHours"`
	RotateSize int    `mapstructure:"rotateSize"`
	RotateNum  int    `mapstructure:"rotateNum"`
}

// Logger wraps a sugared zap logger for dependency injection.
type Logger struct {
	*zap.SugaredLogger
}

// ProvideLogger builds the logger and installs it as the global one.
func ProvideLogger(conf *Conf) (*Logger, error) {
	l, err := New(conf)
	if err != nil {
		return nil, err
	}
	return &Logger{SugaredLogger: l}, nil
}

// SetDefaults returns default logger configuration.
func SetDefaults() *Conf {
	return &Conf{
		Output:     "stdout",
		Path:       "./logs",
		Filename:   "filereporter.log",
		Level:      "INFO",
		KeepHours:  168,
		RotateSize: 100,
		RotateNum:  10,
	}
}

// Validate validates and normalizes logger configuration.
func (c *Conf) Validate() error {
	if c == nil {
		return fmt.Errorf("logger config is nil")
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
	if c.Level == "" {
		c.Level = "INFO"
	}
	if c.Output == "file" {
		if c.Path == "" {
			return fmt.Errorf("log path is required when output is 'file'")
		}
		if c.Filename == "" {
			c.Filename = "filereporter.log"
		}
		if c.RotateSize <= 0 {
			c.RotateSize = 100
		}
		if c.RotateNum <= 0 {
			c.RotateNum = 10
		}
		if c.KeepHours <= 0 {
			c.KeepHours = 168
		}
	}
	return nil
}

// New creates a sugared logger and replaces the global instance.
func New(conf *Conf) (*zap.SugaredLogger, error) {
	if conf == nil {
		conf = SetDefaults()
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}
	ws, err := buildWriteSyncer(conf)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level.SetLevel(parseLogLevel(conf.Level))
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)
	l := zap.New(core, zap.AddCaller()).Sugar()
	install(l)

	l.Debugw("logger initialized", "output", conf.Output, "level", conf.Level)
	return l, nil
}

// SetLevel changes the level of every logger built by this package.
func SetLevel(l string) {
	level.SetLevel(parseLogLevel(l))
}

// Level returns the current level name.
func Level() string {
	return level.Level().CapitalString()
}

func install(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	global = l
	helpers = l.WithOptions(zap.AddCallerSkip(1))
}

// GetLogger returns the global logger, creating a stdout one on first use.
func GetLogger() *zap.SugaredLogger {
	mu.RLock()
	l := global
	mu.RUnlock()
	if l != nil {
		return l
	}
	fallback()
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func helper() *zap.SugaredLogger {
	mu.RLock()
	l := helpers
	mu.RUnlock()
	if l != nil {
		return l
	}
	fallback()
	mu.RLock()
	defer mu.RUnlock()
	return helpers
}

// fallback installs a stdout logger unless one was configured meanwhile.
func fallback() {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level)
	l := zap.New(core, zap.AddCaller()).Sugar()

	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		global = l
		helpers = l.WithOptions(zap.AddCallerSkip(1))
	}
}

// Sync flushes buffered log entries.
func Sync() error {
	return GetLogger().Sync()
}

// parseLogLevel converts string level to a zap level.
func parseLogLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "INFO":
		return zapcore.InfoLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// buildWriteSyncer builds the sink for stdout or rotating file output.
func buildWriteSyncer(conf *Conf) (zapcore.WriteSyncer, error) {
	if conf.Output != "file" {
		return zapcore.Lock(os.Stdout), nil
	}
	if err := os.MkdirAll(conf.Path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(conf.Path, conf.Filename),
		MaxSize:    conf.RotateSize,
		MaxBackups: conf.RotateNum,
		MaxAge:     (conf.KeepHours + 23) / 24, // lumberjack keeps whole days
		Compress:   true,
	}), nil
}
