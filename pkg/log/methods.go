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

// Info logs an info message.
func Info(args ...any) {
	helper().Info(args...)
}

// Infow logs a structured info message.
func Infow(msg string, keysAndValues ...any) {
	helper().Infow(msg, keysAndValues...)
}

// Debugw logs a structured debug message.
func Debugw(msg string, keysAndValues ...any) {
	helper().Debugw(msg, keysAndValues...)
}

// Warnw logs a structured warn message.
func Warnw(msg string, keysAndValues ...any) {
	helper().Warnw(msg, keysAndValues...)
}

// Error logs an error message.
func Error(args ...any) {
	helper().Error(args...)
}

// Errorw logs a structured error message.
func Errorw(msg string, keysAndValues ...any) {
	helper().Errorw(msg, keysAndValues...)
}
