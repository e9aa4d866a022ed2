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

package acl

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/kaserve/kaserve/pkg/acl/options"
	kerr "github.com/kaserve/kaserve/pkg/errors"
)

func newList(t *testing.T, defaultAllow bool, rules ...*options.RuleOptions) *List {
	t.Helper()
	l, err := New(&options.Options{DefaultAllow: defaultAllow, Rules: rules})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func req(path, ua string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "http://example.com"+path, nil)
	if ua != "" {
		r.Header.Set("User-Agent", ua)
	}
	return r
}

var localhost = netip.MustParseAddr("127.0.0.1")

func TestFirstMatchWins(t *testing.T) {
	denyAdmin := &options.RuleOptions{Action: "deny", Path: "^/admin"}
	allowAll := &options.RuleOptions{Action: "allow", All: true}

	l := newList(t, false, denyAdmin, allowAll)
	if err := l.CheckAccess(req("/admin/x", ""), localhost); !errors.Is(err, kerr.ErrAccessDenied) {
		t.Errorf("expected %v got %v", kerr.ErrAccessDenied, err)
	}
	if err := l.CheckAccess(req("/public", ""), localhost); err != nil {
		t.Error(err)
	}

	l = newList(t, false, allowAll, denyAdmin)
	if err := l.CheckAccess(req("/admin/x", ""), localhost); err != nil {
		t.Error(err)
	}
}

func TestDefaultAction(t *testing.T) {
	rule := &options.RuleOptions{Action: "allow", Path: "^/open"}
	l := newList(t, false, rule)
	if err := l.CheckAccess(req("/closed", ""), localhost); !errors.Is(err, kerr.ErrAccessDenied) {
		t.Errorf("expected %v got %v", kerr.ErrAccessDenied, err)
	}
	l = newList(t, true, rule)
	if err := l.CheckAccess(req("/closed", ""), localhost); err != nil {
		t.Error(err)
	}
	var nilList *List
	if err := nilList.CheckAccess(req("/", ""), localhost); err != nil {
		t.Error(err)
	}
}

func TestIPCondition(t *testing.T) {
	l := newList(t, true, &options.RuleOptions{Action: "deny", IP: "10.1.2.3"})
	tests := []struct {
		ip      string
		allowed bool
	}{
		{"10.1.2.3", false},
		{"::ffff:10.1.2.3", false},
		{"10.1.2.4", true},
	}
	for _, test := range tests {
		err := l.CheckAccess(req("/", ""), netip.MustParseAddr(test.ip))
		if (err == nil) != test.allowed {
			t.Errorf("%s: expected allowed=%t got %v", test.ip, test.allowed, err)
		}
	}
	if err := l.CheckAccess(req("/", ""), netip.Addr{}); err != nil {
		t.Error("invalid address must not match an ip rule")
	}
}

func TestNetworkCondition(t *testing.T) {
	l := newList(t, true,
		&options.RuleOptions{Action: "deny", Network: "192.168.0.0/16"},
		&options.RuleOptions{Action: "deny", Network: "2001:db8::/32"},
		&options.RuleOptions{Action: "deny", Network: "10.0.0.7/8"},
	)
	tests := []struct {
		ip      string
		allowed bool
	}{
		{"192.168.10.20", false},
		{"192.169.0.1", true},
		{"::ffff:192.168.1.1", false},
		{"2001:db8::1", false},
		{"2001:db9::1", true},
		{"10.200.0.1", false},
		{"11.0.0.1", true},
	}
	for _, test := range tests {
		err := l.CheckAccess(req("/", ""), netip.MustParseAddr(test.ip))
		if (err == nil) != test.allowed {
			t.Errorf("%s: expected allowed=%t got %v", test.ip, test.allowed, err)
		}
	}
}

func TestMappedNetworkCondition(t *testing.T) {
	l := newList(t, true, &options.RuleOptions{Action: "deny", Network: "::ffff:10.0.0.0/104"})
	if err := l.CheckAccess(req("/", ""), netip.MustParseAddr("10.9.9.9")); err == nil {
		t.Error("expected mapped prefix to contain 10.9.9.9")
	}
}

func TestUserAgentCondition(t *testing.T) {
	l := newList(t, true, &options.RuleOptions{Action: "deny", UserAgent: "(?i)badbot"})
	if err := l.CheckAccess(req("/", "Mozilla/5.0 BadBot/1.0"), localhost); err == nil {
		t.Error("expected denial for matching user agent")
	}
	if err := l.CheckAccess(req("/", "curl/8.0"), localhost); err != nil {
		t.Error(err)
	}
	if err := l.CheckAccess(req("/", ""), localhost); err != nil {
		t.Error("absent user agent must not match")
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []*options.RuleOptions{
		{Action: "allow", IP: "not-an-ip"},
		{Action: "allow", Network: "10.0.0.0/40"},
		{Action: "allow", Path: "(unclosed"},
		{Action: "allow", UserAgent: "[bad"},
		{Action: "maybe", All: true},
		{Action: "allow"},
	}
	for i, test := range tests {
		_, err := New(&options.Options{Rules: []*options.RuleOptions{test}})
		if !errors.Is(err, kerr.ErrInvalidPattern) {
			t.Errorf("%d: expected %v got %v", i, kerr.ErrInvalidPattern, err)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote   string
		expected netip.Addr
	}{
		{"192.0.2.1:1234", netip.MustParseAddr("192.0.2.1")},
		{"[2001:db8::1]:443", netip.MustParseAddr("2001:db8::1")},
		{"[::ffff:192.0.2.1]:80", netip.MustParseAddr("192.0.2.1")},
		{"192.0.2.9", netip.MustParseAddr("192.0.2.9")},
		{"garbage", netip.Addr{}},
		{"", netip.Addr{}},
	}
	for _, test := range tests {
		r := &http.Request{RemoteAddr: test.remote}
		if a := ClientIP(r); a != test.expected {
			t.Errorf("%s: expected %v got %v", test.remote, test.expected, a)
		}
	}
}
