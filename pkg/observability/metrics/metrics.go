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

// Package metrics implements prometheus metrics and exposes the metrics HTTP listener
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace     = "kaserve"
	frontendSubsystem   = "frontend"
	aclSubsystem        = "acl"
	authSubsystem       = "auth"
	compressionSubsytem = "compression"
	buildSubsystem      = "build"
)

// Default histogram buckets used by kaserve
var (
	defaultBuckets = []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}
)

// BuildInfo is a Gauge representing the binary build information of the running server instance
var BuildInfo *prometheus.GaugeVec

// LastLoadSuccessfulTimestamp gauge is the epoch time of the most recent successful config load
var LastLoadSuccessfulTimestamp prometheus.Gauge

// FrontendRequestStatus is a Counter of front end requests that have been processed with their status
var FrontendRequestStatus *prometheus.CounterVec

// FrontendRequestDuration is a histogram that tracks the time it takes to process a request
var FrontendRequestDuration *prometheus.HistogramVec

// FrontendRequestWrittenBytes is a Counter of bytes written for front end requests
var FrontendRequestWrittenBytes *prometheus.CounterVec

// ACLDenials is a Counter of requests denied by the access control list
var ACLDenials prometheus.Counter

// AuthFailures is a Counter of requests that failed authentication, by reason
var AuthFailures *prometheus.CounterVec

// CompressedResponses is a Counter of responses by the content encoding applied
var CompressedResponses *prometheus.CounterVec

// CompressionFailures is a Counter of encoder failures that fell back to identity
var CompressionFailures *prometheus.CounterVec

// FrontendMaxConnections is a Gauge representing the max number of active concurrent connections in the server
var FrontendMaxConnections prometheus.Gauge

// FrontendActiveConnections is a Gauge representing the number of active connections in the server
var FrontendActiveConnections prometheus.Gauge

// FrontendConnectionAccepted is a counter representing the total number of connections accepted
var FrontendConnectionAccepted prometheus.Counter

// FrontendConnectionClosed is a counter representing the total number of connections closed
var FrontendConnectionClosed prometheus.Counter

// FrontendConnectionFailed is a counter for the total number of connections failed to accept
var FrontendConnectionFailed prometheus.Counter

func init() {

	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: buildSubsystem,
			Name:      "info",
			Help: "A metric with a constant '1' value labeled by version," +
				"revision, and goversion from which kaserve was built.",
		},
		[]string{"goversion", "revision", "version"},
	)

	LastLoadSuccessfulTimestamp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: "config",
			Name:      "last_load_success_time_seconds",
			Help:      "Timestamp of the last successful configuration load.",
		},
	)

	FrontendRequestStatus = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "requests_total",
			Help:      "Count of front end requests handled by kaserve",
		},
		[]string{"vhost", "handler", "method", "http_status"},
	)

	FrontendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "requests_duration_seconds",
			Help:      "Histogram of front end request durations handled by kaserve",
			Buckets:   defaultBuckets,
		},
		[]string{"vhost", "handler", "method", "http_status"},
	)

	FrontendRequestWrittenBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "written_bytes_total",
			Help:      "Count of bytes written in front end requests handled by kaserve",
		},
		[]string{"vhost", "handler", "method", "http_status"},
	)

	ACLDenials = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: aclSubsystem,
			Name:      "denials_total",
			Help:      "Count of requests denied by the access control list",
		},
	)

	AuthFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: authSubsystem,
			Name:      "failures_total",
			Help:      "Count of requests that failed authentication",
		},
		[]string{"reason"},
	)

	CompressedResponses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: compressionSubsytem,
			Name:      "responses_total",
			Help:      "Count of responses by content encoding",
		},
		[]string{"encoding"},
	)

	CompressionFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: compressionSubsytem,
			Name:      "failures_total",
			Help:      "Count of encoder failures served uncompressed",
		},
		[]string{"encoding"},
	)

	FrontendMaxConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "max_connections",
			Help:      "Kaserve max number of active connections.",
		},
	)

	FrontendActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "active_connections",
			Help:      "Kaserve number of active connections.",
		},
	)

	FrontendConnectionAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "accepted_connections_total",
			Help:      "Kaserve total number of accepted connections.",
		},
	)

	FrontendConnectionClosed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "closed_connections_total",
			Help:      "Kaserve total number of closed connections.",
		},
	)

	FrontendConnectionFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: frontendSubsystem,
			Name:      "failed_connections_total",
			Help:      "Kaserve total number of connections that failed to accept.",
		},
	)

	// Register Metrics
	prometheus.MustRegister(BuildInfo)
	prometheus.MustRegister(LastLoadSuccessfulTimestamp)
	prometheus.MustRegister(FrontendRequestStatus)
	prometheus.MustRegister(FrontendRequestDuration)
	prometheus.MustRegister(FrontendRequestWrittenBytes)
	prometheus.MustRegister(ACLDenials)
	prometheus.MustRegister(AuthFailures)
	prometheus.MustRegister(CompressedResponses)
	prometheus.MustRegister(CompressionFailures)
	prometheus.MustRegister(FrontendMaxConnections)
	prometheus.MustRegister(FrontendActiveConnections)
	prometheus.MustRegister(FrontendConnectionAccepted)
	prometheus.MustRegister(FrontendConnectionClosed)
	prometheus.MustRegister(FrontendConnectionFailed)
}

// Handler returns the http handler for the listener
func Handler() http.Handler {
	return promhttp.Handler()
}
