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

// Package logging provides leveled, logfmt-formatted logging
package logging

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/go-kit/log"
	gkl "github.com/go-kit/log/level"
	"github.com/go-stack/stack"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/kaserve/kaserve/pkg/observability/logging/level"
	"github.com/kaserve/kaserve/pkg/observability/logging/options"
)

const modulePrefix = "github.com/kaserve/kaserve/"

// Pairs represents a key=value pair that helps to describe a log event
type Pairs map[string]any

// Logger is a container for the underlying log provider. It is safe for
// concurrent use.
type Logger struct {
	logger log.Logger
	closer io.Closer
	level  level.Level

	onceRanEntries sync.Map
}

// New returns a Logger for the provided logging configuration. When a log
// file is configured, output is rotated by size.
func New(o *options.Options) *Logger {
	if o == nil {
		o = options.New()
	}
	var wr io.Writer = os.Stdout
	if o.LogFile != "" {
		wr = &lumberjack.Logger{
			Filename:   o.LogFile,
			MaxSize:    256,  // megabytes
			MaxBackups: 80,   // 256 megs @ 80 backups is 20GB of Logs
			MaxAge:     7,    // days
			Compress:   true, // Compress Rolled Backups
		}
	}
	lvl, _ := level.Parse(o.LogLevel)
	return StreamLogger(wr, lvl)
}

// ConsoleLogger returns a Logger that prints log events to the Console
func ConsoleLogger(logLevel level.Level) *Logger {
	return StreamLogger(os.Stdout, logLevel)
}

// NoopLogger returns a Logger that discards every event
func NoopLogger() *Logger {
	return StreamLogger(io.Discard, level.None)
}

// StreamLogger returns a Logger that writes log events to w
func StreamLogger(w io.Writer, logLevel level.Level) *Logger {
	l := &Logger{level: logLevel}
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger,
		"time", log.DefaultTimestampUTC,
		"app", "kaserve",
	)
	// wrap logger depending on log level
	switch logLevel {
	case level.Debug:
		logger = gkl.NewFilter(logger, gkl.AllowDebug())
	case level.Warn:
		logger = gkl.NewFilter(logger, gkl.AllowWarn())
	case level.Error:
		logger = gkl.NewFilter(logger, gkl.AllowError())
	case level.None:
		logger = gkl.NewFilter(logger, gkl.AllowNone())
	default:
		l.level = level.Info
		logger = gkl.NewFilter(logger, gkl.AllowInfo())
	}
	l.logger = logger
	if c, ok := w.(io.Closer); ok && c != nil && w != os.Stdout && w != os.Stderr {
		l.closer = c
	}
	return l
}

// pkgCaller wraps a stack.Call to make the default string output include the
// package path relative to the module root
type pkgCaller struct {
	c stack.Call
}

func (pc pkgCaller) String() string {
	return strings.TrimPrefix(fmt.Sprintf("%+v", pc.c), modulePrefix)
}

// keyvals orders the pairs by key after the event so that output is stable
func keyvals(event string, caller stack.Call, detail Pairs) []any {
	a := make([]any, 0, (len(detail)*2)+4)
	a = append(a, "event", event, "caller", pkgCaller{caller})
	keys := make([]string, 0, len(detail))
	for k := range detail {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		a = append(a, k, detail[k])
	}
	return a
}

// Debug sends a "DEBUG" event to the Logger
func (l *Logger) Debug(event string, detail Pairs) {
	gkl.Debug(l.logger).Log(keyvals(event, stack.Caller(1), detail)...)
}

// Info sends an "INFO" event to the Logger
func (l *Logger) Info(event string, detail Pairs) {
	gkl.Info(l.logger).Log(keyvals(event, stack.Caller(1), detail)...)
}

// Warn sends a "WARN" event to the Logger
func (l *Logger) Warn(event string, detail Pairs) {
	gkl.Warn(l.logger).Log(keyvals(event, stack.Caller(1), detail)...)
}

// Error sends an "ERROR" event to the Logger
func (l *Logger) Error(event string, detail Pairs) {
	gkl.Error(l.logger).Log(keyvals(event, stack.Caller(1), detail)...)
}

// WarnOnce sends a "WARN" event to the Logger only once per key.
// Returns true if this invocation was the first, and thus sent to the Logger
func (l *Logger) WarnOnce(key string, event string, detail Pairs) bool {
	if _, loaded := l.onceRanEntries.LoadOrStore("warn."+key, true); loaded {
		return false
	}
	gkl.Warn(l.logger).Log(keyvals(event, stack.Caller(1), detail)...)
	return true
}

// Fatal sends a "FATAL" event to the Logger and exits the program with the
// provided exit code. A negative code logs without exiting.
func (l *Logger) Fatal(code int, event string, detail Pairs) {
	// go-kit/log/level does not support Fatal, so it bypasses the level filter
	a := append([]any{"level", string(level.Fatal)}, keyvals(event, stack.Caller(1), detail)...)
	l.logger.Log(a...)
	if code >= 0 {
		os.Exit(code)
	}
}

// Level returns the configured Log Level
func (l *Logger) Level() level.Level {
	return l.level
}

// Close closes any opened file handles that were used for logging.
func (l *Logger) Close() {
	if l.closer != nil {
		l.closer.Close()
	}
}
