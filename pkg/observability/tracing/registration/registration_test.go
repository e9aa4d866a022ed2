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

package registration

import (
	"context"
	"testing"

	"github.com/kaserve/kaserve/pkg/observability/logging"
	"github.com/kaserve/kaserve/pkg/observability/tracing/options"
)

func TestGetTracer(t *testing.T) {
	logger := logging.NoopLogger()

	tr, err := GetTracer(nil, logger, false)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Name != options.ProviderNone {
		t.Errorf("expected %s got %s", options.ProviderNone, tr.Name)
	}

	o := options.New()
	o.Provider = "Zipkin"
	o.CollectorURL = "http://127.0.0.1:9411/api/v2/spans"
	tr, err = GetTracer(o, logger, false)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Name != options.ProviderZipkin {
		t.Errorf("expected %s got %s", options.ProviderZipkin, tr.Name)
	}
	tr.Shutdown(context.Background())

	o = options.New()
	o.Provider = "jaeger"
	o.CollectorURL = "http://127.0.0.1:14268/api/traces"
	tr, err = GetTracer(o, logger, true)
	if err != nil {
		t.Fatal(err)
	}
	tr.Shutdown(context.Background())

	o = options.New()
	o.Provider = "stdout"
	tr, err = GetTracer(o, logger, true)
	if err != nil {
		t.Fatal(err)
	}
	if tr.ShutdownFunc == nil {
		t.Error("expected shutdown func")
	}

	o = options.New()
	o.Provider = "otlp"
	if _, err = GetTracer(o, logger, true); err != options.ErrInvalidProvider {
		t.Errorf("expected %v got %v", options.ErrInvalidProvider, err)
	}
}
