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

package router

import (
	"errors"
	"testing"

	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/router/options"
	"github.com/kaserve/kaserve/pkg/router/route"
)

func testRouter(t *testing.T) *Router {
	t.Helper()
	rt, err := New("/srv/default",
		options.VirtualHostList{
			{Host: "*.example.com", RootDir: "/srv/example",
				Routes: options.RouteList{{Path: "/api/*", Handler: "api"}}},
			{Host: "bare.com", RootDir: "/srv/bare"},
		},
		options.RouteList{
			{Path: "/health", Handler: "health"},
			{Path: "/static/*", Handler: "static"},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	return rt
}

func TestRoute(t *testing.T) {
	rt := testRouter(t)

	tests := []struct {
		host, path string
		root       string
		handler    string
		err        error
	}{
		{"www.example.com", "/api/users", "/srv/example", "api", nil},
		{"www.example.com:8443", "/health", "/srv/example", "health", nil},
		{"bare.com", "/api/users", "/srv/bare", "", kerr.ErrNoMatchingRoute},
		{"bare.com", "/static/a.css", "/srv/bare", "static", nil},
		{"other.org", "/api/users", "/srv/default", "", kerr.ErrNoMatchingRoute},
		{"other.org", "/health", "/srv/default", "health", nil},
	}

	for _, test := range tests {
		t.Run(test.host+test.path, func(t *testing.T) {
			m, err := rt.Route(test.host, test.path)
			if m == nil {
				t.Fatal("expected non-nil match")
			}
			if m.Root != test.root {
				t.Errorf("expected %s got %s", test.root, m.Root)
			}
			if test.err != nil {
				if !errors.Is(err, test.err) {
					t.Errorf("expected %v got %v", test.err, err)
				}
				if m.Route != nil {
					t.Error("expected nil route")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if m.Route.Handler.Name != test.handler {
				t.Errorf("expected %s got %s", test.handler, m.Route.Handler.Name)
			}
		})
	}
}

func TestHandlers(t *testing.T) {
	rt := testRouter(t)
	h := rt.Handlers()
	if len(h) != 3 {
		t.Fatalf("expected %d got %d", 3, len(h))
	}
	if h[0] != route.ParseHandler("health") {
		t.Errorf("unexpected handler order %v", h)
	}
	if len(rt.Hosts()) != 2 {
		t.Errorf("expected %d got %d", 2, len(rt.Hosts()))
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New("/srv", options.VirtualHostList{{Host: "a.com"}}, nil)
	if !errors.Is(err, kerr.ErrInvalidPattern) {
		t.Errorf("expected %v got %v", kerr.ErrInvalidPattern, err)
	}
	_, err = New("/srv", nil, options.RouteList{{}})
	if !errors.Is(err, kerr.ErrInvalidPattern) {
		t.Errorf("expected %v got %v", kerr.ErrInvalidPattern, err)
	}
}
