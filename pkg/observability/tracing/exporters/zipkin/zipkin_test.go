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

package zipkin

import (
	"context"
	"testing"

	"github.com/kaserve/kaserve/pkg/observability/tracing"
	"github.com/kaserve/kaserve/pkg/observability/tracing/options"
)

func TestNew(t *testing.T) {

	_, err := New(nil)
	if err != tracing.ErrNoTracerOptions {
		t.Error("expected error for no tracer options")
	}

	opt := options.New()
	opt.Provider = options.ProviderZipkin
	opt.Tags = map[string]string{"test": "test"}
	opt.CollectorURL = "http://1.2.3.4:8000"

	tr, err := New(opt)
	if err != nil {
		t.Fatal(err)
	}
	if tr.ShutdownFunc == nil {
		t.Error("expected shutdown func")
	}
	tr.Shutdown(context.Background())

	opt.SampleRate = 0.5
	_, err = New(opt)
	if err != nil {
		t.Error(err)
	}

	opt.CollectorURL = "1.2.3.4:5"
	_, err = New(opt)
	if err == nil {
		t.Error("expected error for invalid collector URL")
	}

}
