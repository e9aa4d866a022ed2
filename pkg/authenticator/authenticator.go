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

// Package authenticator gates requests behind a configured Authenticator
package authenticator

import (
	"net/http"
	"regexp"

	"github.com/kaserve/kaserve/pkg/authenticator/options"
	"github.com/kaserve/kaserve/pkg/authenticator/registry"
	"github.com/kaserve/kaserve/pkg/authenticator/types"
	"github.com/kaserve/kaserve/pkg/router/route"
)

// Gate applies an Authenticator to the requests whose paths it covers. A
// nil Gate admits every request.
type Gate struct {
	types.Authenticator
	paths []*regexp.Regexp
}

// New builds the Gate described by the options. A nil Gate is returned when
// no method is configured. Unknown or unimplemented methods are errors.
func New(o *options.Options) (*Gate, error) {
	if !o.Enabled() {
		return nil, nil
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	a, err := registry.New(o.Method, o)
	if err != nil {
		return nil, err
	}
	g := &Gate{Authenticator: a, paths: make([]*regexp.Regexp, 0, len(o.Paths))}
	for _, p := range o.Paths {
		re, err := route.Compile(p)
		if err != nil {
			return nil, err
		}
		g.paths = append(g.paths, re)
	}
	return g, nil
}

// Applies returns true when the path requires authentication
func (g *Gate) Applies(path string) bool {
	if g == nil || g.Authenticator == nil {
		return false
	}
	if len(g.paths) == 0 {
		return true
	}
	for _, re := range g.paths {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// Check authenticates the request when the Gate applies to its path. The
// result is nil when authentication was not required.
func (g *Gate) Check(r *http.Request) (*types.AuthResult, error) {
	if !g.Applies(r.URL.Path) {
		return nil, nil
	}
	return g.Authenticate(r)
}
