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

package options

import (
	"testing"

	"gopkg.in/yaml.v2"
)

func TestNew(t *testing.T) {
	o := New()
	if o.Enabled() {
		t.Error("expected default tracer to be disabled")
	}
	o.CollectorURL = "test:1234"
	o.Tags = map[string]string{"a": "b"}
	o2 := o.Clone()
	if o2.CollectorURL != "test:1234" {
		t.Error("clone failed")
	}
	o2.Tags["a"] = "c"
	if o.Tags["a"] != "b" {
		t.Error("expected tags to be copied")
	}
	o2.JaegerOptions.EndpointType = JaegerEndpointAgent
	if o.JaegerOptions.EndpointType != JaegerEndpointCollector {
		t.Error("expected jaeger options to be copied")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		provider, url, endpoint string
		rate                    float64
		expected                error
	}{
		{"", "", "", 1, nil},
		{"STDOUT", "", "", 0.5, nil},
		{"zipkin", "", "", 1, ErrMissingCollectorURL},
		{"zipkin", "http://127.0.0.1:9411/api/v2/spans", "", 1, nil},
		{"jaeger", "127.0.0.1:6831", "agent", 1, nil},
		{"jaeger", "127.0.0.1:6831", "udp", 1, ErrInvalidEndpointType},
		{"otlp", "", "", 1, ErrInvalidProvider},
		{"stdout", "", "", 2, ErrInvalidSampleRate},
	}
	for _, test := range tests {
		t.Run(test.provider, func(t *testing.T) {
			o := New()
			o.Provider = test.provider
			o.CollectorURL = test.url
			o.SampleRate = test.rate
			if test.endpoint != "" {
				o.JaegerOptions.EndpointType = test.endpoint
			}
			if err := o.Validate(); err != test.expected {
				t.Errorf("expected %v got %v", test.expected, err)
			}
		})
	}
}

func TestUnmarshalYAML(t *testing.T) {
	o := &Options{}
	err := yaml.Unmarshal([]byte("provider: zipkin\ncollector_url: http://zipkin:9411\ncollector_pass: secret\n"), o)
	if err != nil {
		t.Fatal(err)
	}
	if o.SampleRate != DefaultSampleRate {
		t.Errorf("expected %f got %f", DefaultSampleRate, o.SampleRate)
	}
	if o.ServiceName != DefaultTracerServiceName {
		t.Errorf("expected %s got %s", DefaultTracerServiceName, o.ServiceName)
	}
	if r := o.Redacted(); r.CollectorPass != "*****" || o.CollectorPass != "secret" {
		t.Error("expected redacted copy")
	}

	o = &Options{}
	if err = yaml.Unmarshal([]byte("provider: stdout\nsample_rate: 0\n"), o); err != nil {
		t.Fatal(err)
	}
	if o.SampleRate != 0 {
		t.Errorf("expected 0 got %f", o.SampleRate)
	}
}
