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

// Package listener provides the connection-limited, observed network
// listeners that serve the frontend and metrics endpoints
package listener

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"sync"
	"time"

	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/events"
	"github.com/kaserve/kaserve/pkg/observability/logging"
	"github.com/kaserve/kaserve/pkg/observability/metrics"

	"golang.org/x/net/netutil"
)

// Names of the listeners started by the server
const (
	HTTPListenerName    = "httpListener"
	TLSListenerName     = "tlsListener"
	MetricsListenerName = "metricsListener"
)

// Listener is the kaserve net.Listener implementation
type Listener struct {
	net.Listener
	name   string
	scheme string
	server *http.Server
}

type observedConnection struct {
	net.Conn
	once sync.Once
}

func (o *observedConnection) Close() error {
	err := o.Conn.Close()
	o.once.Do(func() {
		metrics.FrontendActiveConnections.Dec()
		metrics.FrontendConnectionClosed.Inc()
	})
	return err
}

// Accept implements Listener.Accept
func (l *Listener) Accept() (net.Conn, error) {
	c, err := l.Listener.Accept()
	if err != nil {
		metrics.FrontendConnectionFailed.Inc()
		return c, err
	}
	metrics.FrontendActiveConnections.Inc()
	metrics.FrontendConnectionAccepted.Inc()
	return &observedConnection{Conn: c}, nil
}

// Name returns the name of the Listener in its group
func (l *Listener) Name() string {
	return l.name
}

// Scheme returns http or https
func (l *Listener) Scheme() string {
	return l.scheme
}

// Serve serves the Listener's handler until the Listener is drained or
// closed. A drained Listener returns nil.
func (l *Listener) Serve() error {
	var err error
	if l.server.TLSConfig != nil {
		err = l.server.Serve(tls.NewListener(l, l.server.TLSConfig))
	} else {
		err = l.server.Serve(l)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// NewListener creates a new network listener which obeys the connections
// limit. The limiter blocks Accept while the number of open connections is
// at the limit. The returned listener observes its connections with the
// frontend connection metrics.
func NewListener(address string, port, connectionsLimit int,
	logger *logging.Logger) (net.Listener, error) {
	listener, err := net.Listen("tcp", net.JoinHostPort(address, fmt.Sprint(port)))
	if err != nil {
		// this usually means that the port is in use
		return nil, err
	}
	if connectionsLimit > 0 {
		listener = netutil.LimitListener(listener, connectionsLimit)
		metrics.FrontendMaxConnections.Set(float64(connectionsLimit))
	}
	logger.Debug("listener bound", logging.Pairs{
		"connectionsLimit": connectionsLimit,
		"address":          listener.Addr().String(),
	})
	return listener, nil
}

// ListenerGroup is a collection of named listeners
type ListenerGroup struct {
	members       map[string]*Listener
	listenersLock sync.Mutex
	logger        *logging.Logger
	events        *events.Bus
}

// NewListenerGroup returns a new ListenerGroup. The bus may be nil.
func NewListenerGroup(logger *logging.Logger, bus *events.Bus) *ListenerGroup {
	if logger == nil {
		logger = logging.NoopLogger()
	}
	return &ListenerGroup{
		members: make(map[string]*Listener),
		logger:  logger,
		events:  bus,
	}
}

// Get returns the listener if it exists
func (lg *ListenerGroup) Get(name string) *Listener {
	lg.listenersLock.Lock()
	defer lg.listenersLock.Unlock()
	return lg.members[name]
}

// Names returns the sorted names of the member listeners
func (lg *ListenerGroup) Names() []string {
	lg.listenersLock.Lock()
	out := make([]string, 0, len(lg.members))
	for k := range lg.members {
		out = append(out, k)
	}
	lg.listenersLock.Unlock()
	sort.Strings(out)
	return out
}

// Listen binds a new listener for the handler and adds it to the group
// without serving it. A non-nil tlsConfig makes it an https listener.
func (lg *ListenerGroup) Listen(name, address string, port, connectionsLimit int,
	tlsConfig *tls.Config, handler http.Handler) (*Listener, error) {
	nl, err := NewListener(address, port, connectionsLimit, lg.logger)
	if err != nil {
		lg.logger.Error("listener startup failed",
			logging.Pairs{"listenerName": name, "detail": err.Error()})
		return nil, err
	}
	l := &Listener{Listener: nl, name: name, scheme: "http"}
	if tlsConfig != nil {
		l.scheme = "https"
	}
	l.server = &http.Server{
		Handler:           handler,
		TLSConfig:         tlsConfig,
		ReadHeaderTimeout: 30 * time.Second,
		ConnState:         lg.connState(name),
	}
	lg.listenersLock.Lock()
	if old, ok := lg.members[name]; ok && old != nil {
		old.Close()
	}
	lg.members[name] = l
	lg.listenersLock.Unlock()
	lg.logger.Info("listener starting", logging.Pairs{"listenerName": name,
		"scheme": l.scheme, "address": nl.Addr().String()})
	return l, nil
}

func (lg *ListenerGroup) connState(name string) func(net.Conn, http.ConnState) {
	return func(c net.Conn, cs http.ConnState) {
		var e events.Event
		switch cs {
		case http.StateNew:
			e = events.NewConnection
		case http.StateClosed, http.StateHijacked:
			e = events.ConnectionClosed
		default:
			return
		}
		lg.events.Emit(e, events.Detail{RemoteAddr: c.RemoteAddr().String()})
	}
}

// DrainAndClose stops the named listener from accepting connections and
// waits up to drainWait for in-flight requests to complete before closing
// the remaining connections
func (lg *ListenerGroup) DrainAndClose(name string, drainWait time.Duration) error {
	lg.listenersLock.Lock()
	l, ok := lg.members[name]
	delete(lg.members, name)
	lg.listenersLock.Unlock()
	if !ok {
		return kerr.ErrNoSuchListener
	}
	if l == nil || l.Listener == nil {
		return kerr.ErrNilListener
	}
	if l.server == nil {
		return l.Close()
	}
	ctx, cancel := context.WithTimeout(context.Background(), drainWait)
	defer cancel()
	err := l.server.Shutdown(ctx)
	if err != nil {
		lg.logger.Warn("listener drain incomplete",
			logging.Pairs{"listenerName": name, "detail": err.Error()})
		l.server.Close()
	}
	// a listener that was never served is not tracked by the server
	l.Close()
	return err
}

// DrainAll drains and closes every member listener concurrently
func (lg *ListenerGroup) DrainAll(drainWait time.Duration) error {
	names := lg.Names()
	errs := make([]error, len(names))
	wg := &sync.WaitGroup{}
	for i, n := range names {
		wg.Add(1)
		go func(i int, n string) {
			defer wg.Done()
			errs[i] = lg.DrainAndClose(n, drainWait)
		}(i, n)
	}
	wg.Wait()
	return errors.Join(errs...)
}
