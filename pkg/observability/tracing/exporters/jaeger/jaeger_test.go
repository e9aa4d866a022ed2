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

package jaeger

import (
	"context"
	"testing"

	"github.com/kaserve/kaserve/pkg/observability/tracing"
	"github.com/kaserve/kaserve/pkg/observability/tracing/options"
)

func TestNew(t *testing.T) {
	if _, err := New(nil); err != tracing.ErrNoTracerOptions {
		t.Error("expected error for no tracer options")
	}

	o := options.New()
	o.Provider = options.ProviderJaeger
	o.CollectorURL = "http://127.0.0.1:14268/api/traces"
	o.CollectorUser = "user"
	o.CollectorPass = "pass"
	tr, err := New(o)
	if err != nil {
		t.Fatal(err)
	}
	tr.Shutdown(context.Background())

	o.JaegerOptions.EndpointType = options.JaegerEndpointAgent
	o.CollectorURL = "127.0.0.1:6831"
	tr, err = New(o)
	if err != nil {
		t.Fatal(err)
	}
	tr.Shutdown(context.Background())

	o.CollectorURL = "127.0.0.1"
	if _, err = New(o); err != tracing.ErrInvalidEndpointURL {
		t.Errorf("expected %v got %v", tracing.ErrInvalidEndpointURL, err)
	}
}
