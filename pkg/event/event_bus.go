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

package event

import (
	"sync"

	"github.com/arcentrix/filereporter/pkg/accesslog"
)

// Handler consumes the events it declares it can handle.
type Handler interface {
	CanHandle(event accesslog.Reportable) bool
	Report(event accesslog.Reportable)
}

// Bus fans reportable events out to registered handlers.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewEventBus(handlers ...Handler) *Bus {
	eb := &Bus{}
	for _, h := range handlers {
		eb.RegisterHandler(h)
	}
	return eb
}

func (eb *Bus) RegisterHandler(handler Handler) {
	if handler == nil {
		return
	}
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers = append(eb.handlers, handler)
}

// Report delivers event to every handler that accepts it, in registration
// order, on the caller's goroutine.
func (eb *Bus) Report(event accesslog.Reportable) {
	if event == nil {
		return
	}
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, h := range eb.handlers {
		if h.CanHandle(event) {
			h.Report(event)
		}
	}
}

// Len returns the number of registered handlers.
func (eb *Bus) Len() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers)
}
