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
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kaserve/kaserve/cmd/kaserve/config"
	"github.com/kaserve/kaserve/pkg/appinfo"
	"github.com/kaserve/kaserve/pkg/dispatch"
	"github.com/kaserve/kaserve/pkg/events"
	"github.com/kaserve/kaserve/pkg/listener"
	"github.com/kaserve/kaserve/pkg/observability/logging"
	"github.com/kaserve/kaserve/pkg/observability/metrics"
	"github.com/kaserve/kaserve/pkg/observability/tracing"
	"github.com/kaserve/kaserve/pkg/observability/tracing/registration"
)

// server holds the running application: the dispatcher and the
// collaborators whose lifetime matches the process
type server struct {
	conf       *config.Config
	logger     *logging.Logger
	tracer     *tracing.Tracer
	events     *events.Bus
	listeners  *listener.ListenerGroup
	dispatcher *dispatch.Dispatcher
}

// run loads the configuration from args and serves until a value arrives on
// stop or a listener fails. It returns the process exit code.
func run(args []string, stop <-chan os.Signal) int {
	conf, flags, err := config.Load(appinfo.Name, appinfo.Version, args)
	if err != nil {
		fmt.Println("\nERROR: Could not load configuration:", err.Error())
		if flags != nil && !flags.ValidateConfig {
			printUsage()
		}
		return 1
	}
	if flags.PrintVersion {
		printVersion()
		return 0
	}

	logger := initLogger(conf)
	defer logger.Close()
	for _, w := range conf.LoaderWarnings {
		logger.Warn(w, nil)
	}

	s, err := newServer(conf, logger, flags.ValidateConfig)
	if err != nil {
		logger.Error("server setup failed", logging.Pairs{"detail": err.Error()})
		if flags.ValidateConfig {
			fmt.Println("ERROR: Could not load configuration:", err.Error())
		}
		return 1
	}
	if flags.ValidateConfig {
		fmt.Println("kaserve configuration validation succeeded.")
		return 0
	}

	metrics.BuildInfo.WithLabelValues(appinfo.GoVersion, appinfo.GitCommitID,
		appinfo.Version).Set(1)
	metrics.LastLoadSuccessfulTimestamp.Set(float64(time.Now().Unix()))

	failed, err := s.start()
	if err != nil {
		s.stop()
		return 1
	}
	code := 0
	select {
	case sig := <-stop:
		logger.Info("shutdown signal received", logging.Pairs{"signal": sig.String()})
	case err = <-failed:
		logger.Error("listener failed", logging.Pairs{"detail": err.Error()})
		code = 1
	}
	if err = s.stop(); err != nil {
		code = 1
	}
	return code
}

func initLogger(c *config.Config) *logging.Logger {
	logger := logging.New(c.Logging)
	logger.Info("application loaded from configuration",
		logging.Pairs{
			"name":       appinfo.Name,
			"version":    appinfo.Version,
			"goVersion":  appinfo.GoVersion,
			"commitID":   appinfo.GitCommitID,
			"buildTime":  appinfo.BuildTime,
			"logLevel":   c.Logging.LogLevel,
			"config":     c.ConfigFilePath(),
			"serverName": c.Main.ServerName,
		},
	)
	return logger
}

// newServer builds the tracer, event bus and dispatcher for the config.
// When isDryRun is true, exporters are not started.
func newServer(conf *config.Config, logger *logging.Logger, isDryRun bool) (*server, error) {
	tr, err := registration.GetTracer(conf.Tracing, logger, isDryRun)
	if err != nil {
		return nil, fmt.Errorf("tracing registration failed: %w", err)
	}
	bus := events.NewBus(events.LogListener(logger))
	d, err := dispatch.New(conf,
		dispatch.WithLogger(logger),
		dispatch.WithTracer(tr),
		dispatch.WithEvents(bus),
	)
	if err != nil {
		tr.Shutdown(context.Background())
		return nil, err
	}
	return &server{
		conf:       conf,
		logger:     logger,
		tracer:     tr,
		events:     bus,
		listeners:  listener.NewListenerGroup(logger, bus),
		dispatcher: d,
	}, nil
}

// start binds every configured listener and serves them. The returned
// channel receives the first serving error.
func (s *server) start() (<-chan error, error) {
	s.events.Emit(events.ServerStarting, events.Detail{})
	ls, err := s.bindListeners()
	if err != nil {
		return nil, err
	}
	failed := make(chan error, len(ls))
	for _, l := range ls {
		s.logger.Info("serving", logging.Pairs{"listenerName": l.Name(),
			"url": l.Scheme() + "://" + l.Addr().String()})
		go func(l *listener.Listener) {
			if err := l.Serve(); err != nil {
				failed <- fmt.Errorf("%s: %w", l.Name(), err)
			}
		}(l)
	}
	s.events.Emit(events.ServerReady, events.Detail{})
	return failed, nil
}

// stop drains the listeners within the frontend drain timeout and flushes
// the tracer
func (s *server) stop() error {
	s.events.Emit(events.ServerStopping, events.Detail{})
	timeout := s.conf.Frontend.DrainTimeout()
	var errs []error
	if err := s.listeners.DrainAll(timeout); err != nil {
		errs = append(errs, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.tracer.Shutdown(ctx); err != nil {
		s.logger.Error("tracer shutdown failed", logging.Pairs{"detail": err.Error()})
		errs = append(errs, err)
	}
	err := errors.Join(errs...)
	if err != nil {
		s.logger.Warn("shutdown incomplete", logging.Pairs{"detail": err.Error()})
	} else {
		s.logger.Info("shutdown complete", nil)
	}
	return err
}
