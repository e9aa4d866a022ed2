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

// Package options provides the configuration for request tracing
package options

import (
	"errors"
	"maps"
	"strings"
)

const (
	// ProviderNone disables tracing
	ProviderNone = "none"
	// ProviderStdout writes spans to stdout
	ProviderStdout = "stdout"
	// ProviderZipkin exports spans to a Zipkin collector
	ProviderZipkin = "zipkin"
	// ProviderJaeger exports spans to a Jaeger collector or agent
	ProviderJaeger = "jaeger"

	// DefaultTracerProvider is the default tracing provider
	DefaultTracerProvider = ProviderNone
	// DefaultTracerServiceName is the default service name reported to the collector
	DefaultTracerServiceName = "kaserve"
	// DefaultSampleRate samples every request
	DefaultSampleRate = 1.0

	// JaegerEndpointCollector sends spans to the Jaeger HTTP collector
	JaegerEndpointCollector = "collector"
	// JaegerEndpointAgent sends spans to the Jaeger UDP agent
	JaegerEndpointAgent = "agent"
)

// ErrInvalidProvider is returned for an unknown tracing provider
var ErrInvalidProvider = errors.New("invalid tracing provider")

// ErrInvalidSampleRate is returned when sample_rate is outside of [0, 1]
var ErrInvalidSampleRate = errors.New("sample_rate must be between 0 and 1")

// ErrMissingCollectorURL is returned when a remote provider has no collector_url
var ErrMissingCollectorURL = errors.New("collector_url is required for this provider")

// ErrInvalidEndpointType is returned for an unknown jaeger endpoint_type
var ErrInvalidEndpointType = errors.New("jaeger endpoint_type must be collector or agent")

// Providers lists the supported provider names
var Providers = []string{ProviderNone, ProviderStdout, ProviderZipkin, ProviderJaeger}

// StdOutOptions are the options for the stdout provider
type StdOutOptions struct {
	PrettyPrint bool `yaml:"pretty_print,omitempty"`
}

// JaegerOptions are the options for the jaeger provider
type JaegerOptions struct {
	EndpointType string `yaml:"endpoint_type,omitempty"`
}

// Options is a Tracing Options collection
type Options struct {
	Provider      string            `yaml:"provider,omitempty"`
	ServiceName   string            `yaml:"service_name,omitempty"`
	CollectorURL  string            `yaml:"collector_url,omitempty"`
	CollectorUser string            `yaml:"collector_user,omitempty"`
	CollectorPass string            `yaml:"collector_pass,omitempty"`
	SampleRate    float64           `yaml:"sample_rate"`
	Tags          map[string]string `yaml:"tags,omitempty"`

	StdOutOptions *StdOutOptions `yaml:"stdout,omitempty"`
	JaegerOptions *JaegerOptions `yaml:"jaeger,omitempty"`
}

// New returns a new *Options with the default values
func New() *Options {
	return &Options{
		Provider:      DefaultTracerProvider,
		ServiceName:   DefaultTracerServiceName,
		SampleRate:    DefaultSampleRate,
		StdOutOptions: &StdOutOptions{},
		JaegerOptions: &JaegerOptions{EndpointType: JaegerEndpointCollector},
	}
}

// Enabled returns true when a provider other than none is configured
func (o *Options) Enabled() bool {
	return o != nil && o.Provider != "" && o.Provider != ProviderNone
}

// Clone returns an exact copy of a tracing config
func (o *Options) Clone() *Options {
	o2 := *o
	o2.Tags = maps.Clone(o.Tags)
	if o.StdOutOptions != nil {
		so := *o.StdOutOptions
		o2.StdOutOptions = &so
	}
	if o.JaegerOptions != nil {
		jo := *o.JaegerOptions
		o2.JaegerOptions = &jo
	}
	return &o2
}

// Validate normalizes the provider name and returns an error if the options
// cannot produce a tracer
func (o *Options) Validate() error {
	o.Provider = strings.ToLower(o.Provider)
	if o.Provider == "" {
		o.Provider = DefaultTracerProvider
	}
	switch o.Provider {
	case ProviderNone, ProviderStdout:
	case ProviderZipkin:
		if o.CollectorURL == "" {
			return ErrMissingCollectorURL
		}
	case ProviderJaeger:
		if o.CollectorURL == "" {
			return ErrMissingCollectorURL
		}
		if o.JaegerOptions != nil {
			switch o.JaegerOptions.EndpointType {
			case "", JaegerEndpointCollector, JaegerEndpointAgent:
			default:
				return ErrInvalidEndpointType
			}
		}
	default:
		return ErrInvalidProvider
	}
	if o.SampleRate < 0 || o.SampleRate > 1 {
		return ErrInvalidSampleRate
	}
	return nil
}

// Redacted returns a copy of the options with the collector password masked
func (o *Options) Redacted() *Options {
	o2 := o.Clone()
	if o2.CollectorPass != "" {
		o2.CollectorPass = "*****"
	}
	return o2
}

type loaderOptions struct {
	Provider      string            `yaml:"provider,omitempty"`
	ServiceName   string            `yaml:"service_name,omitempty"`
	CollectorURL  string            `yaml:"collector_url,omitempty"`
	CollectorUser string            `yaml:"collector_user,omitempty"`
	CollectorPass string            `yaml:"collector_pass,omitempty"`
	SampleRate    *float64          `yaml:"sample_rate,omitempty"`
	Tags          map[string]string `yaml:"tags,omitempty"`
	StdOutOptions *StdOutOptions    `yaml:"stdout,omitempty"`
	JaegerOptions *JaegerOptions    `yaml:"jaeger,omitempty"`
}

func (o *Options) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*o = *(New())
	var load loaderOptions
	if err := unmarshal(&load); err != nil {
		return err
	}
	if load.Provider != "" {
		o.Provider = load.Provider
	}
	if load.ServiceName != "" {
		o.ServiceName = load.ServiceName
	}
	o.CollectorURL = load.CollectorURL
	o.CollectorUser = load.CollectorUser
	o.CollectorPass = load.CollectorPass
	if load.SampleRate != nil {
		o.SampleRate = *load.SampleRate
	}
	o.Tags = load.Tags
	if load.StdOutOptions != nil {
		o.StdOutOptions = load.StdOutOptions
	}
	if load.JaegerOptions != nil {
		o.JaegerOptions = load.JaegerOptions
	}
	return nil
}
