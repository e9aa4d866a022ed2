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

package main

import (
	"net/http"

	"github.com/kaserve/kaserve/cmd/kaserve/config"
	"github.com/kaserve/kaserve/pkg/headers"
	"github.com/kaserve/kaserve/pkg/listener"
	"github.com/kaserve/kaserve/pkg/observability/logging"
	"github.com/kaserve/kaserve/pkg/observability/metrics"
	"github.com/kaserve/kaserve/pkg/observability/pprof"
)

// bindListeners binds the http, tls and metrics listeners that the config
// enables. Any bind failure closes the listeners bound so far.
func (s *server) bindListeners() ([]*listener.Listener, error) {
	fo := s.conf.Frontend
	out := make([]*listener.Listener, 0, 3)
	fail := func(err error) ([]*listener.Listener, error) {
		s.listeners.DrainAll(0)
		return nil, err
	}

	if fo.ServeTLS && fo.TLSListenPort > 0 {
		tc, err := s.conf.TLSCertConfig()
		if err != nil {
			s.logger.Error("unable to start tls listener due to certificate error",
				logging.Pairs{"detail": err.Error()})
			return fail(err)
		}
		l, err := s.listeners.Listen(listener.TLSListenerName, fo.TLSListenAddress,
			fo.TLSListenPort, fo.ConnectionsLimit, tc, s.dispatcher)
		if err != nil {
			return fail(err)
		}
		out = append(out, l)
	}

	if fo.ListenPort > 0 {
		l, err := s.listeners.Listen(listener.HTTPListenerName, fo.ListenAddress,
			fo.ListenPort, fo.ConnectionsLimit, nil, s.dispatcher)
		if err != nil {
			return fail(err)
		}
		out = append(out, l)
	}

	if s.conf.Metrics != nil && s.conf.Metrics.ListenPort > 0 {
		l, err := s.listeners.Listen(listener.MetricsListenerName,
			s.conf.Metrics.ListenAddress, s.conf.Metrics.ListenPort, 0, nil,
			metricsRouter(s.conf, s.logger))
		if err != nil {
			return fail(err)
		}
		out = append(out, l)
	}
	return out, nil
}

// metricsRouter returns the mux served by the metrics listener
func metricsRouter(conf *config.Config, logger *logging.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle(conf.Main.ConfigHandlerPath, configHandler(conf))
	if conf.Main.PprofServer == config.DefaultPprofServerName {
		pprof.RegisterRoutes(listener.MetricsListenerName, mux, logger)
	}
	return mux
}

// configHandler responds with the running configuration, secrets redacted
func configHandler(conf *config.Config) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headers.NameContentType, headers.ValueTextPlain)
		w.Header().Set(headers.NameCacheControl, headers.ValueNoCache)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(conf.String()))
	})
}
