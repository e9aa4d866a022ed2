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

// Package router resolves a request's host and path to a document root and
// a route: virtual host routes first, then the default routes
package router

import (
	"fmt"

	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/router/options"
	"github.com/kaserve/kaserve/pkg/router/route"
	"github.com/kaserve/kaserve/pkg/router/vhost"
)

// Router holds the virtual host registry and the default route list. It is
// read-only once constructed and safe for concurrent use.
type Router struct {
	hosts    vhost.Registry
	defaults route.Routes
	root     string
}

// Match is the outcome of resolving a host and path
type Match struct {
	// VirtualHost is the matching virtual host, or nil
	VirtualHost *vhost.VirtualHost
	// Route is the matching route, or nil when no route list matched
	Route *route.Route
	// Root is the document root to serve from
	Root string
}

// New returns a new Router. defaultRoot is the document root used when no
// virtual host matches.
func New(defaultRoot string, hosts options.VirtualHostList,
	defaults options.RouteList) (*Router, error) {
	reg, err := vhost.FromOptions(hosts)
	if err != nil {
		return nil, err
	}
	rs, err := route.FromOptions(defaults)
	if err != nil {
		return nil, err
	}
	return &Router{hosts: reg, defaults: rs, root: defaultRoot}, nil
}

// Resolve returns the virtual host for the Host header along with the
// document root to use. The default root is returned when no host matches.
func (rt *Router) Resolve(hostHeader string) (*vhost.VirtualHost, string) {
	if v, ok := rt.hosts.Resolve(hostHeader); ok {
		return v, v.Root
	}
	return nil, rt.root
}

// MatchRoute tries the virtual host's routes, when present, and then the
// default routes. ErrNoMatchingRoute is returned when neither list matches.
func (rt *Router) MatchRoute(v *vhost.VirtualHost, path string) (*route.Route, error) {
	if v != nil {
		if r, ok := v.Routes.Match(path); ok {
			return r, nil
		}
	}
	if r, ok := rt.defaults.Match(path); ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: %s", kerr.ErrNoMatchingRoute, path)
}

// Route resolves the host and then matches the path. The returned Match is
// always populated with the document root; its Route is nil when the error
// is ErrNoMatchingRoute.
func (rt *Router) Route(hostHeader, path string) (*Match, error) {
	v, root := rt.Resolve(hostHeader)
	m := &Match{VirtualHost: v, Root: root}
	r, err := rt.MatchRoute(v, path)
	if err != nil {
		return m, err
	}
	m.Route = r
	return m, nil
}

// Handlers returns every distinct handler referenced by the default routes
// and all virtual host routes
func (rt *Router) Handlers() []route.Handler {
	all := make(route.Routes, 0, len(rt.defaults))
	all = append(all, rt.defaults...)
	for _, v := range rt.hosts {
		all = append(all, v.Routes...)
	}
	return all.Handlers()
}

// Hosts returns the virtual host registry
func (rt *Router) Hosts() vhost.Registry {
	return rt.hosts
}
