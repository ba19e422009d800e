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

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultFilePattern is used when no file pattern is configured.
	DefaultFilePattern = "access-yyyy_mm_dd.log"
	// DefaultDateFormat names files per day.
	DefaultDateFormat = "yyyy_MM_dd"
	// DefaultBackupFormat is appended to files moved out of the way.
	DefaultBackupFormat = "HHmmssSSS"
	// DateToken is replaced in the file pattern by the formatted date.
	DateToken = "yyyy_mm_dd"
)

// Conf holds the file sink settings, already resolved by the config loader.
type Conf struct {
	// OutputDirectory receives the log files. Empty disables the sink.
	OutputDirectory string `mapstructure:"outputDirectory"`
	// FilePattern is the file name; the yyyy_mm_dd token is substituted with DateFormat.
	FilePattern string `mapstructure:"filePattern"`
	// RetainDays is the number of days to keep old files. 0 keeps them forever.
	RetainDays int `mapstructure:"retainDays"`
	// DateFormat is the pattern for the date substitution, e.g. yyyy_MM_dd.
	DateFormat string `mapstructure:"dateFormat"`
	// BackupFormat is the pattern for the suffix of backup files, e.g. HHmmssSSS.
	BackupFormat string `mapstructure:"backupFormat"`
	// Append reopens an existing file instead of backing it up.
	Append bool `mapstructure:"append"`
}

// SetDefaults applies default values to unset fields.
func (c *Conf) SetDefaults() {
	if c.FilePattern == "" {
		c.FilePattern = DefaultFilePattern
	}
	if c.DateFormat == "" {
		c.DateFormat = DefaultDateFormat
	}
	if c.BackupFormat == "" {
		c.BackupFormat = DefaultBackupFormat
	}
}

// Enabled reports whether an output directory is configured.
func (c *Conf) Enabled() bool {
	return c != nil && strings.TrimSpace(c.OutputDirectory) != ""
}

// Validate checks config validity. A disabled config is always valid.
func (c *Conf) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if !c.Enabled() {
		return nil
	}
	if c.RetainDays < 0 {
		return fmt.Errorf("%w: retainDays must not be negative", ErrInvalidConfig)
	}
	if c.FilePattern == "" || strings.ContainsRune(c.FilePattern, filepath.Separator) {
		return fmt.Errorf("%w: filePattern %q must be a plain file name", ErrInvalidConfig, c.FilePattern)
	}
	if _, err := compilePattern(c.DateFormat); err != nil {
		return fmt.Errorf("%w: dateFormat: %v", ErrInvalidConfig, err)
	}
	if _, err := compilePattern(c.BackupFormat); err != nil {
		return fmt.Errorf("%w: backupFormat: %v", ErrInvalidConfig, err)
	}
	return nil
}

// nameTemplate splits the file pattern around the date token.
type nameTemplate struct {
	dir    string
	prefix string
	suffix string
	// dated is false when the pattern carries no date token and every period shares one name.
	dated bool
}

func newNameTemplate(c *Conf) nameTemplate {
	t := nameTemplate{dir: c.OutputDirectory}
	i := strings.Index(strings.ToLower(c.FilePattern), DateToken)
	if i < 0 {
		t.prefix = c.FilePattern
		return t
	}
	t.prefix = c.FilePattern[:i]
	t.suffix = c.FilePattern[i+len(DateToken):]
	t.dated = true
	return t
}

func (t nameTemplate) path(date string) string {
	if !t.dated {
		return filepath.Join(t.dir, t.prefix)
	}
	return filepath.Join(t.dir, t.prefix+date+t.suffix)
}
