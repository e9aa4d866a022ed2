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

package span

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaserve/kaserve/pkg/observability/tracing"
	"github.com/kaserve/kaserve/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func testTracer() (*tracing.Tracer, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	o := options.New()
	o.Provider = options.ProviderStdout
	return tracing.FromProvider(tp, o), sr
}

func TestPrepareRequestNilTracer(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r2, span := PrepareRequest(r, nil)
	if span != nil {
		t.Error("expected nil span")
	}
	if r2 != r {
		t.Error("expected unchanged request")
	}
	// nil spans are tolerated
	AddEvent(nil, "test")
	SetAttributes(nil, attribute.String("k", "v"))
	Finish(nil, http.StatusOK)
}

func TestRequestSpan(t *testing.T) {
	tr, sr := testTracer()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r, span := PrepareRequest(r, tr)
	if span == nil {
		t.Fatal("expected non-nil span")
	}
	AddEvent(span, "resolve", attribute.String("vhost", "example.com"))
	SetAttributes(span, attribute.String("handler", "static"))
	Finish(span, http.StatusNotFound)

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected %d got %d", 1, len(ended))
	}
	s := ended[0]
	if s.Name() != "request" {
		t.Errorf("expected %s got %s", "request", s.Name())
	}
	if len(s.Events()) != 1 || s.Events()[0].Name != "resolve" {
		t.Errorf("unexpected events %v", s.Events())
	}
	if s.Status().Code != codes.Error {
		t.Errorf("expected %v got %v", codes.Error, s.Status().Code)
	}
	if r.Context() == nil {
		t.Error("expected context")
	}
}

func TestRemoteParent(t *testing.T) {
	tr, sr := testTracer()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	_, span := PrepareRequest(r, tr)
	Finish(span, http.StatusOK)
	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected %d got %d", 1, len(ended))
	}
	if ended[0].Status().Code != codes.Ok {
		t.Errorf("expected %v got %v", codes.Ok, ended[0].Status().Code)
	}
}
