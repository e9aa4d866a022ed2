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

// Package options provides the configuration for routes and virtual hosts
package options

import (
	"errors"
	"slices"
)

// ErrMissingPath is returned when a route has no path pattern
var ErrMissingPath = errors.New("route is missing a path")

// ErrMissingHost is returned when a virtual host has no host pattern
var ErrMissingHost = errors.New("virtual host is missing a host")

// ErrMissingRootDir is returned when a virtual host has no document root
var ErrMissingRootDir = errors.New("virtual host is missing a root_dir")

// ErrIncompleteTLS is returned when only one of cert_file and key_file is set
var ErrIncompleteTLS = errors.New("tls requires both cert_file and key_file")

// RouteOptions binds a path pattern to a handler kind
type RouteOptions struct {
	// Path is a literal path pattern where * matches any sequence
	Path string `yaml:"path,omitempty"`
	// Handler names the handler kind: static, fastcgi, cgi, proxy, or a custom name
	Handler string `yaml:"handler,omitempty"`
	// Params is an opaque string handed to the route's handler
	Params string `yaml:"params,omitempty"`
}

// RouteList is an ordered list of routes
type RouteList []*RouteOptions

// TLSOptions holds the certificate of a virtual host
type TLSOptions struct {
	CertFile string `yaml:"cert_file,omitempty"`
	KeyFile  string `yaml:"key_file,omitempty"`
}

// VirtualHostOptions configures one virtual host
type VirtualHostOptions struct {
	// Host is the hostname pattern; * matches exactly one label
	Host string `yaml:"host,omitempty"`
	// RootDir is the document root for the virtual host
	RootDir string `yaml:"root_dir,omitempty"`
	// Routes are tried before the default route list
	Routes RouteList `yaml:"routes,omitempty"`
	// TLS is the optional certificate for the virtual host
	TLS *TLSOptions `yaml:"tls,omitempty"`
}

// VirtualHostList is an ordered list of virtual hosts
type VirtualHostList []*VirtualHostOptions

// Validate returns an error if there are issues with the route options
func (o *RouteOptions) Validate() error {
	if o.Path == "" {
		return ErrMissingPath
	}
	return nil
}

// Clone returns an exact copy of the subject *RouteOptions
func (o *RouteOptions) Clone() *RouteOptions {
	o2 := *o
	return &o2
}

// Clone returns an exact copy of the subject RouteList
func (l RouteList) Clone() RouteList {
	if l == nil {
		return nil
	}
	l2 := make(RouteList, 0, len(l))
	for _, o := range l {
		if o != nil {
			l2 = append(l2, o.Clone())
		}
	}
	return l2
}

// HasTLS returns true if the virtual host carries a certificate
func (o *VirtualHostOptions) HasTLS() bool {
	return o != nil && o.TLS != nil && o.TLS.CertFile != "" && o.TLS.KeyFile != ""
}

// Validate returns an error if there are issues with the virtual host options
func (o *VirtualHostOptions) Validate() error {
	if o.Host == "" {
		return ErrMissingHost
	}
	if o.RootDir == "" {
		return ErrMissingRootDir
	}
	if o.TLS != nil && (o.TLS.CertFile == "") != (o.TLS.KeyFile == "") {
		return ErrIncompleteTLS
	}
	for _, r := range o.Routes {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns an exact copy of the subject *VirtualHostOptions
func (o *VirtualHostOptions) Clone() *VirtualHostOptions {
	o2 := &VirtualHostOptions{
		Host:    o.Host,
		RootDir: o.RootDir,
		Routes:  o.Routes.Clone(),
	}
	if o.TLS != nil {
		t := *o.TLS
		o2.TLS = &t
	}
	return o2
}

// Clone returns an exact copy of the subject VirtualHostList
func (l VirtualHostList) Clone() VirtualHostList {
	if l == nil {
		return nil
	}
	l2 := make(VirtualHostList, 0, len(l))
	for _, o := range l {
		if o != nil {
			l2 = append(l2, o.Clone())
		}
	}
	return l2
}

// CertFiles returns the certificate and key file pairs of every TLS-enabled
// virtual host, in declared order
func (l VirtualHostList) CertFiles() []TLSOptions {
	out := make([]TLSOptions, 0, len(l))
	for _, o := range l {
		if o.HasTLS() && !slices.Contains(out, *o.TLS) {
			out = append(out, *o.TLS)
		}
	}
	return out
}
