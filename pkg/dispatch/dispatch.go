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

// Package dispatch runs the request pipeline: rewrite, host resolution,
// route matching, access control, authentication, serving, content
// negotiation and response assembly
package dispatch

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kaserve/kaserve/cmd/kaserve/config"
	"github.com/kaserve/kaserve/pkg/acl"
	"github.com/kaserve/kaserve/pkg/authenticator"
	"github.com/kaserve/kaserve/pkg/encoding/negotiator"
	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/events"
	"github.com/kaserve/kaserve/pkg/headers"
	"github.com/kaserve/kaserve/pkg/observability/logging"
	"github.com/kaserve/kaserve/pkg/observability/logging/level"
	"github.com/kaserve/kaserve/pkg/observability/metrics"
	"github.com/kaserve/kaserve/pkg/observability/tracing"
	"github.com/kaserve/kaserve/pkg/observability/tracing/span"
	"github.com/kaserve/kaserve/pkg/response"
	"github.com/kaserve/kaserve/pkg/rewriter"
	"github.com/kaserve/kaserve/pkg/router"
	"github.com/kaserve/kaserve/pkg/router/route"
	"github.com/kaserve/kaserve/pkg/static"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DefaultVirtualHostLabel is the metrics label for requests that match no virtual host
const DefaultVirtualHostLabel = "default"

// Dispatcher is the http.Handler for client requests. Every collaborator is
// built once from the configuration and is read-only afterward, so a
// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	rewriter   *rewriter.Engine
	router     *router.Router
	acl        *acl.List
	auth       *authenticator.Gate
	static     *static.Service
	negotiator *negotiator.Negotiator
	assembler  *response.Assembler
	handlers   map[string]http.Handler

	tracer       *tracing.Tracer
	logger       *logging.Logger
	events       *events.Bus
	exposeErrors bool
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithHandler registers the handler for a non-static handler name, such as
// fastcgi, proxy or a custom name. A later registration replaces an earlier one.
func WithHandler(name string, h http.Handler) Option {
	return func(d *Dispatcher) {
		d.handlers[name] = h
	}
}

// WithTracer sets the Tracer that opens one span per request
func WithTracer(t *tracing.Tracer) Option {
	return func(d *Dispatcher) {
		d.tracer = t
	}
}

// WithLogger sets the Logger
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithEvents sets the Bus notified of received requests and sent responses
func WithEvents(b *events.Bus) Option {
	return func(d *Dispatcher) {
		d.events = b
	}
}

// New builds a Dispatcher from the configuration. Every pattern is compiled
// here, and every route must name static or a registered handler; any
// failure is returned and nothing is served.
func New(conf *config.Config, opts ...Option) (*Dispatcher, error) {
	if conf == nil {
		return nil, kerr.ErrInvalidOptions
	}
	rw, err := rewriter.New(conf.Rewrites)
	if err != nil {
		return nil, err
	}
	rt, err := router.New(conf.Serve.Root, conf.VirtualHosts, conf.Routes)
	if err != nil {
		return nil, err
	}
	al, err := acl.New(conf.ACL)
	if err != nil {
		return nil, err
	}
	gate, err := authenticator.New(conf.Authentication)
	if err != nil {
		return nil, err
	}
	neg := negotiator.New(conf.Serve.Compression, conf.Serve.Cache, conf.Serve.SPA)
	st := static.New(conf.Serve.DefaultFile, conf.Serve.DirectoryListing, conf.Serve.SPA)
	st.Fallback = neg
	d := &Dispatcher{
		rewriter:     rw,
		router:       rt,
		acl:          al,
		auth:         gate,
		static:       st,
		negotiator:   neg,
		assembler:    response.New(conf.Serve.CORS, conf.Serve.Headers),
		handlers:     make(map[string]http.Handler),
		logger:       logging.NoopLogger(),
		exposeErrors: conf.Serve.ExposeErrors,
	}
	d.handlers[PingHandlerName] = PingHandler()
	d.handlers[HealthHandlerName] = d.HealthHandler()
	for _, o := range opts {
		o(d)
	}
	if d.tracer == nil {
		d.tracer = tracing.NewNoop()
	}
	d.negotiator.OnFailure(func(encoding string, err error) {
		metrics.CompressionFailures.WithLabelValues(encoding).Inc()
		d.logger.WarnOnce("compression."+encoding, "compression failed, serving identity",
			logging.Pairs{"encoding": encoding, "detail": err.Error()})
	})
	for _, h := range rt.Handlers() {
		if h.Kind == route.KindStatic {
			continue
		}
		if _, ok := d.handlers[h.Name]; !ok {
			return nil, fmt.Errorf("%w: %s", kerr.ErrUnimplementedHandler, h)
		}
	}
	return d, nil
}

// request is the per-request pipeline state. It is owned by one request.
type request struct {
	r       *http.Request
	span    trace.Span
	state   State
	vhost   string
	handler route.Handler
	root    string
	start   time.Time
}

func (d *Dispatcher) transition(rq *request, s State, kvs ...attribute.KeyValue) {
	rq.state = s
	span.AddEvent(rq.span, s.String(), kvs...)
	if d.logger.Level() != level.Debug {
		return
	}
	pairs := logging.Pairs{"state": s.String(), "path": rq.r.URL.Path}
	for _, kv := range kvs {
		pairs[string(kv.Key)] = kv.Value.Emit()
	}
	d.logger.Debug("dispatch", pairs)
}

// ServeHTTP implements http.Handler
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.events.Emit(events.RequestReceived, events.Detail{Request: r, RemoteAddr: r.RemoteAddr})
	r, sp := span.PrepareRequest(r, d.tracer)
	rq := &request{
		r:       r,
		span:    sp,
		vhost:   DefaultVirtualHostLabel,
		handler: route.ParseHandler(""),
		start:   time.Now(),
	}
	d.transition(rq, Received, attribute.String("method", r.Method),
		attribute.String("headers", headers.LogString(r.Header)))

	rw := &statusWriter{ResponseWriter: w}
	if resp := d.dispatch(rw, rq); resp != nil {
		if _, err := d.assembler.Write(rw, resp); err != nil {
			d.logger.Debug("response write failed",
				logging.Pairs{"path": r.URL.Path, "detail": err.Error()})
		}
		d.transition(rq, Assembled)
	}
	d.finish(rq, rw)
}

// dispatch runs the pipeline and returns the Response to assemble. A nil
// Response means a registered handler has already written to w.
func (d *Dispatcher) dispatch(w http.ResponseWriter, rq *request) *response.Response {
	r := rq.r

	if res, ok := d.rewriter.Process(r.URL.Path); ok {
		if res.IsRedirect {
			d.transition(rq, Rewritten, attribute.String("location", res.Location()),
				attribute.Int("status", res.RedirectStatus))
			return response.Redirect(res.RedirectStatus, res.Location())
		}
		rewriter.Apply(r, res)
		d.transition(rq, Rewritten, attribute.String("rewritten", r.URL.Path))
	}

	m, err := d.router.Route(r.Host, r.URL.Path)
	rq.root = m.Root
	if m.VirtualHost != nil {
		rq.vhost = m.VirtualHost.Pattern
	}
	d.transition(rq, HostResolved, attribute.String("vhost", rq.vhost),
		attribute.String("root", rq.root))
	if err != nil && !errors.Is(err, kerr.ErrNoMatchingRoute) {
		return d.errorResponse(err)
	}
	if m.Route != nil {
		rq.handler = m.Route.Handler
	}
	d.transition(rq, RouteMatched, attribute.String("handler", rq.handler.String()),
		attribute.Bool("fallback", m.Route == nil))

	if err = d.acl.CheckAccess(r, acl.ClientIP(r)); err != nil {
		metrics.ACLDenials.Inc()
		d.logger.Debug("access denied", logging.Pairs{"remoteAddr": r.RemoteAddr,
			"path": r.URL.Path, "detail": err.Error()})
		return d.errorResponse(err)
	}
	d.transition(rq, AccessChecked)

	if res, err := d.auth.Check(r); err != nil {
		reason := "failed"
		if res != nil {
			reason = res.Status.String()
		}
		metrics.AuthFailures.WithLabelValues(reason).Inc()
		ch := d.auth.Challenge()
		return response.PlainError(ch.Status, ch.Body, ch.Headers)
	} else if res != nil {
		d.transition(rq, AuthChecked, attribute.String("user", res.Username))
	} else {
		d.transition(rq, AuthChecked)
	}

	if rq.handler.Kind != route.KindStatic {
		h, ok := d.handlers[rq.handler.Name]
		if !ok {
			return d.errorResponse(fmt.Errorf("%w: %s", kerr.ErrUnimplementedHandler, rq.handler))
		}
		h.ServeHTTP(w, r)
		d.transition(rq, Served)
		return nil
	}

	fr, err := d.static.Resolve(rq.root, r.URL.Path)
	if err != nil {
		return d.errorResponse(err)
	}
	d.transition(rq, Served, attribute.String("file", fr.Path),
		attribute.Bool("listing", fr.IsListing), attribute.Bool("spa", fr.IsFallback))

	body, enc := d.negotiator.Negotiate(fr.Content, fr.MIME, r.Header.Get(headers.NameAcceptEncoding))
	if enc != "" {
		metrics.CompressedResponses.WithLabelValues(enc).Inc()
	}
	d.transition(rq, Negotiated, attribute.String("encoding", enc))

	return &response.Response{
		Status:          http.StatusOK,
		Body:            body,
		ContentType:     fr.MIME,
		ContentEncoding: enc,
		Cacheable:       d.negotiator.ShouldCache(fr.MIME),
		ModifiedAt:      fr.ModifiedAt,
	}
}

// errorResponse converts a per-request error into its failure Response
func (d *Dispatcher) errorResponse(err error) *response.Response {
	switch {
	case errors.Is(err, kerr.ErrNotFound):
		return response.NotFound()
	case errors.Is(err, kerr.ErrDirectoryListingDisabled):
		return response.ListingDisabled()
	case errors.Is(err, kerr.ErrAccessDenied):
		return response.PlainError(http.StatusForbidden, acl.DenialBody, nil)
	case errors.Is(err, kerr.ErrUnimplementedHandler):
		return response.NotImplemented()
	}
	d.logger.Error("request failed", logging.Pairs{"detail": err.Error()})
	return response.InternalError(err, d.exposeErrors)
}

func (d *Dispatcher) finish(rq *request, rw *statusWriter) {
	status := rw.Status()
	labels := []string{rq.vhost, rq.handler.Name, rq.r.Method, strconv.Itoa(status)}
	metrics.FrontendRequestStatus.WithLabelValues(labels...).Inc()
	metrics.FrontendRequestDuration.WithLabelValues(labels...).
		Observe(time.Since(rq.start).Seconds())
	metrics.FrontendRequestWrittenBytes.WithLabelValues(labels...).Add(float64(rw.written))
	span.SetAttributes(rq.span, attribute.String("vhost", rq.vhost),
		attribute.String("handler", rq.handler.Name))
	span.Finish(rq.span, status)
	d.events.Emit(events.ResponseSent, events.Detail{Request: rq.r,
		RemoteAddr: rq.r.RemoteAddr, Status: status})
}

// statusWriter records the status and body size written by the pipeline or
// a registered handler
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// Status returns the written status, 200 if the handler wrote nothing
func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}
