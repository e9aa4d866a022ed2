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

// Package route provides compiled path patterns bound to handler kinds
package route

import (
	"fmt"
	"regexp"
	"strings"

	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/router/options"
)

// Kind enumerates the handler kinds a Route can be bound to
type Kind int

const (
	// KindStatic serves files from the document root
	KindStatic Kind = iota
	// KindFastCGI hands the request to a FastCGI handler
	KindFastCGI
	// KindCGI hands the request to a CGI handler
	KindCGI
	// KindProxy hands the request to a reverse proxy handler
	KindProxy
	// KindCustom hands the request to a named, registered handler
	KindCustom
)

var kindNames = map[Kind]string{
	KindStatic:  "static",
	KindFastCGI: "fastcgi",
	KindCGI:     "cgi",
	KindProxy:   "proxy",
	KindCustom:  "custom",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Handler identifies the handler a Route is bound to
type Handler struct {
	Kind Kind
	// Name is the custom handler name; for other kinds it equals Kind.String()
	Name string
}

// ParseHandler converts a configured handler name into a Handler. An empty
// name is static; any name that is not a builtin kind is Custom.
func ParseHandler(name string) Handler {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "static":
		return Handler{Kind: KindStatic, Name: "static"}
	case "fastcgi":
		return Handler{Kind: KindFastCGI, Name: n}
	case "cgi":
		return Handler{Kind: KindCGI, Name: n}
	case "proxy":
		return Handler{Kind: KindProxy, Name: n}
	}
	return Handler{Kind: KindCustom, Name: strings.TrimSpace(name)}
}

func (h Handler) String() string {
	if h.Kind == KindCustom {
		return "custom(" + h.Name + ")"
	}
	return h.Name
}

// Route binds a path pattern to a handler. A Route is immutable once
// constructed and safe for concurrent use.
type Route struct {
	Pattern string
	Handler Handler
	Params  string
	matcher *regexp.Regexp
}

// Compile converts a route pattern into an anchored regular expression.
// Every character is literal except *, which matches any sequence.
func Compile(pattern string) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	re, err := regexp.Compile("^" + strings.Join(parts, ".*") + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", kerr.ErrInvalidPattern, pattern, err)
	}
	return re, nil
}

// New returns a new Route for the pattern and handler
func New(pattern string, h Handler) (*Route, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty route pattern", kerr.ErrInvalidPattern)
	}
	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Route{Pattern: pattern, Handler: h, matcher: re}, nil
}

// Matches returns true when the full path matches the Route's pattern
func (r *Route) Matches(path string) bool {
	return r.matcher.MatchString(path)
}

// Routes is an ordered list of Routes
type Routes []*Route

// FromOptions compiles a configured route list, preserving its order
func FromOptions(l options.RouteList) (Routes, error) {
	out := make(Routes, 0, len(l))
	for _, o := range l {
		if o == nil {
			continue
		}
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", kerr.ErrInvalidPattern, err)
		}
		r, err := New(o.Path, ParseHandler(o.Handler))
		if err != nil {
			return nil, err
		}
		r.Params = o.Params
		out = append(out, r)
	}
	return out, nil
}

// Match scans the list in insertion order and returns the first Route whose
// pattern matches the path. More specific patterns must be listed before
// catch-alls.
func (rs Routes) Match(path string) (*Route, bool) {
	for _, r := range rs {
		if r.Matches(path) {
			return r, true
		}
	}
	return nil, false
}

// Handlers returns the distinct handlers referenced by the list
func (rs Routes) Handlers() []Handler {
	seen := make(map[Handler]struct{}, len(rs))
	out := make([]Handler, 0, len(rs))
	for _, r := range rs {
		if _, ok := seen[r.Handler]; ok {
			continue
		}
		seen[r.Handler] = struct{}{}
		out = append(out, r.Handler)
	}
	return out
}
