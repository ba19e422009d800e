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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

// TestSetDefaults verifies default logger configuration.
func TestSetDefaults(t *testing.T) {
	conf := SetDefaults()
	if conf.Output != "stdout" {
		t.Fatalf("expected output stdout, got %s", conf.Output)
	}
	if conf.Level != "INFO" {
		t.Fatalf("expected level INFO, got %s", conf.Level)
	}
	if conf.Filename == "" {
		t.Fatal("expected default filename to be set")
	}
}

// TestConfValidate verifies config validation and normalization.
func TestConfValidate(t *testing.T) {
	conf := &Conf{Output: "file", Path: "/tmp/test-logger"}
	if err := conf.Validate(); err != nil {
		t.Fatalf("validate should pass: %v", err)
	}
	if conf.RotateSize <= 0 || conf.RotateNum <= 0 || conf.KeepHours <= 0 {
		t.Fatal("expected file rotation values to be auto-filled")
	}

	if err := (&Conf{Output: "file"}).Validate(); err == nil {
		t.Fatal("expected error when file output has no path")
	}
}

// TestNewFileOutput verifies file output goes through the rotating writer.
func TestNewFileOutput(t *testing.T) {
	tmpDir := t.TempDir()
	l, err := New(&Conf{
		Output:   "file",
		Path:     tmpDir,
		Filename: "operator.log",
		Level:    "INFO",
	})
	if err != nil {
		t.Fatalf("New() should not fail: %v", err)
	}

	Errorw("sink write failed", "path", "/var/log/access.log")
	_ = l.Sync()

	content, err := os.ReadFile(filepath.Join(tmpDir, "operator.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "sink write failed") {
		t.Fatalf("expected message in log file: %s", content)
	}
	if !strings.Contains(string(content), "/var/log/access.log") {
		t.Fatalf("expected structured field in log file: %s", content)
	}
}

// TestParseLogLevel verifies log-level parsing behavior.
func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("debug") != zapcore.DebugLevel {
		t.Fatal("expected DEBUG to map to zapcore.DebugLevel")
	}
	if parseLogLevel("warning") != zapcore.WarnLevel {
		t.Fatal("expected WARNING to map to zapcore.WarnLevel")
	}
	if parseLogLevel("unknown") != zapcore.InfoLevel {
		t.Fatal("expected unknown level to map to zapcore.InfoLevel")
	}
}

// TestProvideLogger verifies the injected logger is also the global one.
func TestProvideLogger(t *testing.T) {
	l, err := ProvideLogger(&Conf{Output: "stdout", Level: "ERROR"})
	if err != nil {
		t.Fatalf("ProvideLogger() should not fail: %v", err)
	}
	if l.SugaredLogger != GetLogger() {
		t.Fatal("expected provided logger to be installed globally")
	}
}

func newFileLogger(t *testing.T, level string) (*Logger, string) {
	t.Helper()
	dir := t.TempDir()
	l, err := ProvideLogger(&Conf{Output: "file", Path: dir, Filename: "operator.log", Level: level})
	if err != nil {
		t.Fatalf("ProvideLogger() should not fail: %v", err)
	}
	return l, filepath.Join(dir, "operator.log")
}

func readLogLines(t *testing.T, path string) []string {
	t.Helper()
	_ = Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(content)), "\n")
}

// TestCallerLocation verifies every entry point reports the calling line.
func TestCallerLocation(t *testing.T) {
	l, path := newFileLogger(t, "INFO")

	Infow("from helper")
	GetLogger().Infow("from global")
	l.Infow("from injected")

	lines := readLogLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	for _, line := range lines {
		if !strings.Contains(line, "log/log_test.go:") {
			t.Fatalf("expected caller in log_test.go: %s", line)
		}
	}
}

// TestSetLevel verifies the level can be changed on a running logger.
func TestSetLevel(t *testing.T) {
	l, path := newFileLogger(t, "INFO")
	defer SetLevel("INFO")

	l.Debugw("hidden")
	SetLevel("debug")
	if Level() != "DEBUG" {
		t.Fatalf("expected DEBUG, got %s", Level())
	}
	l.Debugw("shown")
	Debugw("shown by helper")

	content := strings.Join(readLogLines(t, path), "\n")
	if strings.Contains(content, "hidden") {
		t.Fatalf("debug entry logged at INFO: %s", content)
	}
	if !strings.Contains(content, "shown") || !strings.Contains(content, "shown by helper") {
		t.Fatalf("expected debug entries after SetLevel: %s", content)
	}
}
