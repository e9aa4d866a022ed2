/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package events provides server lifecycle notifications
package events

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/kaserve/kaserve/pkg/observability/logging"
)

// Event enumerates the server lifecycle events
type Event int

const (
	// ServerStarting fires before any listener is opened
	ServerStarting = Event(iota)
	// ServerReady fires once every listener is accepting
	ServerReady
	// ServerStopping fires when shutdown begins
	ServerStopping
	// NewConnection fires when a client connection is accepted
	NewConnection
	// ConnectionClosed fires when a client connection is closed
	ConnectionClosed
	// RequestReceived fires before a request enters the dispatcher
	RequestReceived
	// ResponseSent fires after the response has been written
	ResponseSent
)

var names = map[Event]string{
	ServerStarting:   "server_starting",
	ServerReady:      "server_ready",
	ServerStopping:   "server_stopping",
	NewConnection:    "new_connection",
	ConnectionClosed: "connection_closed",
	RequestReceived:  "request_received",
	ResponseSent:     "response_sent",
}

func (e Event) String() string {
	if v, ok := names[e]; ok {
		return v
	}
	return strconv.Itoa(int(e))
}

// Detail carries the optional context of an Event
type Detail struct {
	RemoteAddr string
	Request    *http.Request
	Status     int
}

// Listener receives Events. Listeners are observers only; they cannot alter
// the request or response.
type Listener interface {
	Notify(Event, Detail)
}

// ListenerFunc adapts a function to the Listener interface
type ListenerFunc func(Event, Detail)

// Notify calls f(e, d)
func (f ListenerFunc) Notify(e Event, d Detail) {
	f(e, d)
}

// Bus is an ordered list of Listeners, notified synchronously in
// registration order
type Bus struct {
	mtx       sync.RWMutex
	listeners []Listener
}

// NewBus returns a new Bus with the provided listeners registered
func NewBus(listeners ...Listener) *Bus {
	return &Bus{listeners: listeners}
}

// Register appends a Listener to the Bus
func (b *Bus) Register(l Listener) {
	if b == nil || l == nil {
		return
	}
	b.mtx.Lock()
	b.listeners = append(b.listeners, l)
	b.mtx.Unlock()
}

// Len returns the number of registered listeners
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	b.mtx.RLock()
	defer b.mtx.RUnlock()
	return len(b.listeners)
}

// Emit notifies every Listener of the Event. A nil Bus is a no-op.
func (b *Bus) Emit(e Event, d Detail) {
	if b == nil {
		return
	}
	b.mtx.RLock()
	listeners := b.listeners
	b.mtx.RUnlock()
	for _, l := range listeners {
		l.Notify(e, d)
	}
}

// LogListener returns a Listener that writes each Event to the logger.
// Server events log at info, connection and request events at debug.
func LogListener(logger *logging.Logger) Listener {
	return ListenerFunc(func(e Event, d Detail) {
		pairs := logging.Pairs{"event": e.String()}
		if d.RemoteAddr != "" {
			pairs["remoteAddr"] = d.RemoteAddr
		}
		if d.Request != nil {
			pairs["method"] = d.Request.Method
			pairs["path"] = d.Request.URL.Path
		}
		if d.Status != 0 {
			pairs["status"] = d.Status
		}
		switch e {
		case ServerStarting, ServerReady, ServerStopping:
			logger.Info("lifecycle event", pairs)
		default:
			logger.Debug("lifecycle event", pairs)
		}
	})
}
