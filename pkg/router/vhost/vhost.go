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

// Package vhost maps a request's Host header to a document root and a
// private route list
package vhost

import (
	"fmt"
	"regexp"
	"strings"

	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/router/options"
	"github.com/kaserve/kaserve/pkg/router/route"
)

// VirtualHost is a hostname-scoped document root and route list. It is
// read-only once constructed.
type VirtualHost struct {
	Pattern string
	Root    string
	Routes  route.Routes
	matcher *regexp.Regexp
}

// Compile converts a hostname pattern into a case-insensitive, anchored
// regular expression. Dots are literal and * matches exactly one label.
func Compile(pattern string) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	re, err := regexp.Compile("(?i)^" + strings.Join(parts, "[^.]+") + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: host %q: %w", kerr.ErrInvalidPattern, pattern, err)
	}
	return re, nil
}

// New returns a new VirtualHost
func New(pattern, root string, routes route.Routes) (*VirtualHost, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty host pattern", kerr.ErrInvalidPattern)
	}
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &VirtualHost{Pattern: pattern, Root: root, Routes: routes, matcher: re}, nil
}

// Matches returns true when the hostname, without any port, matches the pattern
func (v *VirtualHost) Matches(hostname string) bool {
	return v.matcher.MatchString(hostname)
}

// Registry is the ordered list of configured virtual hosts
type Registry []*VirtualHost

// FromOptions builds a Registry from configuration, preserving declared order
func FromOptions(l options.VirtualHostList) (Registry, error) {
	reg := make(Registry, 0, len(l))
	for _, o := range l {
		if o == nil {
			continue
		}
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", kerr.ErrInvalidPattern, err)
		}
		rs, err := route.FromOptions(o.Routes)
		if err != nil {
			return nil, err
		}
		v, err := New(o.Host, o.RootDir, rs)
		if err != nil {
			return nil, err
		}
		reg = append(reg, v)
	}
	return reg, nil
}

// StripPort returns the hostname portion of a Host header value
func StripPort(host string) string {
	h, _, _ := strings.Cut(host, ":")
	return h
}

// Resolve returns the first virtual host, in declared order, whose pattern
// matches the Host header with its port removed
func (reg Registry) Resolve(hostHeader string) (*VirtualHost, bool) {
	if len(reg) == 0 {
		return nil, false
	}
	h := StripPort(hostHeader)
	for _, v := range reg {
		if v.Matches(h) {
			return v, true
		}
	}
	return nil, false
}
