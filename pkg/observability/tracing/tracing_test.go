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

package tracing

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/kaserve/kaserve/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestHTTPToCode(t *testing.T) {

	tests := []struct {
		code     int
		expected codes.Code
	}{
		{
			http.StatusMovedPermanently, codes.Ok,
		},
		{
			http.StatusNotFound, codes.Error,
		},
		{
			http.StatusUnauthorized, codes.Error,
		},
		{
			http.StatusInternalServerError, codes.Error,
		},
	}

	for i, test := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			v := HTTPToCode(test.code)
			if v != test.expected {
				t.Errorf("expected %d got %d", test.expected, v)
			}
		})
	}

}

func TestTags(t *testing.T) {

	t1 := Tags{"testKey2": "testValue2", "testKey1": "testValue1"}

	attrs := t1.ToAttr()
	if len(attrs) != 2 {
		t.Fatalf("expected %d got %d", 2, len(attrs))
	}
	if string(attrs[0].Key) != "testKey1" || attrs[1].Value.AsString() != "testValue2" {
		t.Errorf("unexpected attribute order %v", attrs)
	}

}

func TestSampler(t *testing.T) {
	if s := Sampler(0).Description(); s != sdktrace.NeverSample().Description() {
		t.Errorf("unexpected sampler %s", s)
	}
	if s := Sampler(1).Description(); s != sdktrace.AlwaysSample().Description() {
		t.Errorf("unexpected sampler %s", s)
	}
	if s := Sampler(0.25).Description(); s != sdktrace.TraceIDRatioBased(0.25).Description() {
		t.Errorf("unexpected sampler %s", s)
	}
}

func TestResource(t *testing.T) {
	o := options.New()
	o.Tags = map[string]string{"env": "test"}
	r := Resource(o)
	if r.Len() != 2 {
		t.Errorf("expected %d got %d", 2, r.Len())
	}
}

func TestNoop(t *testing.T) {
	tr := NewNoop()
	_, span := tr.Start(context.Background(), "request")
	if span.IsRecording() {
		t.Error("expected noop span")
	}
	span.End()
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
	var nt *Tracer
	if err := nt.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
}

func TestFromProvider(t *testing.T) {
	o := options.New()
	o.Provider = options.ProviderStdout
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(tracetest.NewSpanRecorder()))
	tr := FromProvider(tp, o)
	if tr.Name != options.ProviderStdout {
		t.Errorf("expected %s got %s", options.ProviderStdout, tr.Name)
	}
	_, span := tr.Start(context.Background(), "request")
	if !span.IsRecording() {
		t.Error("expected recording span")
	}
	span.End()
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
}
