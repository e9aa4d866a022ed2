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

// Package options provides the configuration for the client-facing listeners
package options

import (
	"errors"
	"time"
)

// ErrInvalidPort is returned for a port outside of 0-65535
var ErrInvalidPort = errors.New("listen port must be between 0 and 65535")

// ErrInvalidConnectionsLimit is returned for a negative connections_limit
var ErrInvalidConnectionsLimit = errors.New("connections_limit must not be negative")

// Options is a collection of configurations for the main http frontend for the application
type Options struct {
	// ListenAddress is IP address for the main http listener for the application
	ListenAddress string `yaml:"listen_address,omitempty"`
	// ListenPort is TCP Port for the main http listener for the application
	ListenPort int `yaml:"listen_port,omitempty"`
	// TLSListenAddress is IP address for the tls http listener for the application
	TLSListenAddress string `yaml:"tls_listen_address,omitempty"`
	// TLSListenPort is the TCP Port for the tls http listener for the application
	TLSListenPort int `yaml:"tls_listen_port,omitempty"`
	// ConnectionsLimit indicates how many concurrent front end connections are
	// handled at any time; 0 is unlimited
	ConnectionsLimit int `yaml:"connections_limit,omitempty"`
	// DrainTimeoutMS is how long in-flight requests may run after shutdown begins
	DrainTimeoutMS int `yaml:"drain_timeout_ms,omitempty"`

	// ServeTLS indicates whether to listen and serve on the TLS port, meaning
	// at least one virtual host has a certificate and key file configured.
	ServeTLS bool `yaml:"-"`
}

// New returns a new Frontend Options with default values
func New() *Options {
	return &Options{
		ListenPort:       DefaultListenPort,
		ListenAddress:    DefaultListenAddress,
		TLSListenPort:    DefaultTLSListenPort,
		TLSListenAddress: DefaultTLSListenAddress,
		DrainTimeoutMS:   DefaultDrainTimeoutMS,
	}
}

// Equal returns true if the Options are identical in value.
func (o *Options) Equal(o2 *Options) bool {
	return *o == *o2
}

// Clone returns a clone of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	return &o2
}

// DrainTimeout returns DrainTimeoutMS as a time.Duration
func (o *Options) DrainTimeout() time.Duration {
	return time.Duration(o.DrainTimeoutMS) * time.Millisecond
}

// Validate returns an error if a port or the connections limit is out of range
func (o *Options) Validate() error {
	for _, p := range []int{o.ListenPort, o.TLSListenPort} {
		if p < 0 || p > 65535 {
			return ErrInvalidPort
		}
	}
	if o.ConnectionsLimit < 0 {
		return ErrInvalidConnectionsLimit
	}
	return nil
}
