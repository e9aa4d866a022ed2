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

// Package registration builds the configured Tracer
package registration

import (
	"github.com/kaserve/kaserve/pkg/observability/logging"
	"github.com/kaserve/kaserve/pkg/observability/tracing"
	"github.com/kaserve/kaserve/pkg/observability/tracing/exporters/jaeger"
	"github.com/kaserve/kaserve/pkg/observability/tracing/exporters/stdout"
	"github.com/kaserve/kaserve/pkg/observability/tracing/exporters/zipkin"
	"github.com/kaserve/kaserve/pkg/observability/tracing/options"
)

// GetTracer returns a *Tracer based on the provided options. A nil or
// disabled configuration returns a noop Tracer.
func GetTracer(opts *options.Options, logger *logging.Logger,
	isDryRun bool) (*tracing.Tracer, error) {

	if !opts.Enabled() {
		return tracing.NewNoop(), nil
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if !isDryRun && logger != nil {
		logger.Info("tracer registration",
			logging.Pairs{
				"provider":    opts.Provider,
				"serviceName": opts.ServiceName,
				"collector":   opts.CollectorURL,
				"sampleRate":  opts.SampleRate,
			},
		)
	}

	switch opts.Provider {
	case options.ProviderStdout:
		return stdout.New(opts)
	case options.ProviderZipkin:
		return zipkin.New(opts)
	case options.ProviderJaeger:
		return jaeger.New(opts)
	}
	return nil, options.ErrInvalidProvider
}
