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

// Package span creates and decorates the per-request span
package span

import (
	"net/http"

	"github.com/kaserve/kaserve/pkg/observability/tracing"

	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PrepareRequest extracts trace information from the headers of the incoming
// request and starts the "request" span as a child of any remote parent. The
// returned request carries the span in its context.
func PrepareRequest(r *http.Request, tr *tracing.Tracer) (*http.Request, trace.Span) {
	if tr == nil || tr.Tracer == nil {
		return r, nil
	}

	attrs, entries, spanCtx := otelhttptrace.Extract(r.Context(), r)
	ctx := baggage.ContextWithBaggage(r.Context(), entries)
	ctx, span := tr.Start(
		trace.ContextWithRemoteSpanContext(ctx, spanCtx),
		"request",
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
	return r.WithContext(ctx), span
}

// AddEvent records a named event on the span, if it is not nil
func AddEvent(span trace.Span, name string, kvs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	span.AddEvent(name, trace.WithAttributes(kvs...))
}

// SetAttributes safely sets attributes on a span
func SetAttributes(span trace.Span, kvs ...attribute.KeyValue) {
	if span == nil || len(kvs) == 0 {
		return
	}
	span.SetAttributes(kvs...)
}

// Finish records the response status on the span and ends it
func Finish(span trace.Span, status int) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.Int("http.status_code", status))
	code := tracing.HTTPToCode(status)
	var desc string
	if code == codes.Error {
		desc = http.StatusText(status)
	}
	span.SetStatus(code, desc)
	span.End()
}
