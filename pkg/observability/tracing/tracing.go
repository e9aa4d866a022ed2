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

// Package tracing provides distributed tracing of dispatched requests
package tracing

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/kaserve/kaserve/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ErrNoTracerOptions is returned when an exporter is constructed with nil *Options
var ErrNoTracerOptions = errors.New("no tracer options provided")

// ErrInvalidEndpointURL is returned when the collector URL is invalid for the provider
var ErrInvalidEndpointURL = errors.New("invalid endpoint url")

// ShutdownFunc defines a function used to Flush a Tracer
type ShutdownFunc func(context.Context) error

// Tracer wraps an otel Tracer with its shutdown hook and options
type Tracer struct {
	trace.Tracer
	Name         string
	ShutdownFunc ShutdownFunc
	Options      *options.Options
}

// Tags represents a collection of Tags
type Tags map[string]string

// NewNoop returns a Tracer whose spans are never recorded
func NewNoop() *Tracer {
	return &Tracer{
		Name:    options.ProviderNone,
		Tracer:  trace.NewNoopTracerProvider().Tracer(options.DefaultTracerServiceName),
		Options: options.New(),
	}
}

// FromProvider returns a Tracer backed by the provided sdk TracerProvider
func FromProvider(tp *sdktrace.TracerProvider, o *options.Options) *Tracer {
	return &Tracer{
		Name:         o.Provider,
		Tracer:       tp.Tracer(o.ServiceName),
		Options:      o,
		ShutdownFunc: tp.Shutdown,
	}
}

// Shutdown flushes and stops the tracer, if it has a ShutdownFunc
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.ShutdownFunc == nil {
		return nil
	}
	return t.ShutdownFunc(ctx)
}

// Sampler returns the sdk Sampler for the provided sample rate
func Sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate <= 0:
		return sdktrace.NeverSample()
	case rate >= 1:
		return sdktrace.AlwaysSample()
	default:
		return sdktrace.TraceIDRatioBased(rate)
	}
}

// Resource returns the sdk Resource describing this service, including
// any configured static tags
func Resource(o *options.Options) *resource.Resource {
	attrs := make([]attribute.KeyValue, 0, len(o.Tags)+1)
	attrs = append(attrs, attribute.String("service.name", o.ServiceName))
	attrs = append(attrs, Tags(o.Tags).ToAttr()...)
	return resource.NewWithAttributes("", attrs...)
}

// HTTPToCode translates an HTTP status code into a span status code
func HTTPToCode(status int) codes.Code {
	switch {
	case status < http.StatusBadRequest:
		return codes.Ok
	default:
		return codes.Error
	}
}

// ToAttr returns the Tags map as an Attributes List sorted by key
func (t Tags) ToAttr() []attribute.KeyValue {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	attr := make([]attribute.KeyValue, len(keys))
	for i, k := range keys {
		attr[i] = attribute.String(k, t[k])
	}
	return attr
}
