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

// Package acl evaluates an ordered list of allow and deny rules over the
// client address, request path and user agent
package acl

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"regexp"
	"strings"

	"github.com/kaserve/kaserve/pkg/acl/options"
	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/headers"
)

// DenialBody is the response body sent for denied requests
const DenialBody = "403 Forbidden: Access denied"

// Effect is the outcome a Rule applies when its Condition matches
type Effect int

const (
	// Deny rejects the request
	Deny Effect = iota
	// Allow admits the request
	Allow
)

func (e Effect) String() string {
	if e == Allow {
		return options.ActionAllow
	}
	return options.ActionDeny
}

// Condition decides whether a Rule applies to a request
type Condition interface {
	Matches(r *http.Request, clientIP netip.Addr) bool
	String() string
}

// IPCondition matches one exact client address
type IPCondition netip.Addr

// Matches implements Condition
func (c IPCondition) Matches(_ *http.Request, ip netip.Addr) bool {
	return ip.IsValid() && netip.Addr(c) == ip.Unmap()
}

func (c IPCondition) String() string { return "ip=" + netip.Addr(c).String() }

// NetworkCondition matches every client address inside a CIDR prefix
type NetworkCondition netip.Prefix

// Matches implements Condition
func (c NetworkCondition) Matches(_ *http.Request, ip netip.Addr) bool {
	return ip.IsValid() && netip.Prefix(c).Contains(ip.Unmap())
}

func (c NetworkCondition) String() string { return "network=" + netip.Prefix(c).String() }

// PathCondition matches the request path against an unanchored regular expression
type PathCondition struct{ *regexp.Regexp }

// Matches implements Condition
func (c PathCondition) Matches(r *http.Request, _ netip.Addr) bool {
	return r != nil && r.URL != nil && c.MatchString(r.URL.Path)
}

func (c PathCondition) String() string { return "path=" + c.Regexp.String() }

// UserAgentCondition matches the User-Agent header against an unanchored
// regular expression. A request without the header never matches.
type UserAgentCondition struct{ *regexp.Regexp }

// Matches implements Condition
func (c UserAgentCondition) Matches(r *http.Request, _ netip.Addr) bool {
	if r == nil {
		return false
	}
	ua, ok := r.Header[headers.NameUserAgent]
	if !ok || len(ua) == 0 {
		return false
	}
	return c.MatchString(ua[0])
}

func (c UserAgentCondition) String() string { return "user_agent=" + c.Regexp.String() }

// AllCondition matches every request
type AllCondition struct{}

// Matches implements Condition
func (AllCondition) Matches(*http.Request, netip.Addr) bool { return true }

func (AllCondition) String() string { return "all" }

// Rule is a compiled access rule
type Rule struct {
	Effect    Effect
	Condition Condition
}

// List is a compiled, ordered access control list. It is read-only once
// constructed and safe for concurrent use.
type List struct {
	Rules        []Rule
	DefaultAllow bool
}

// New compiles the ACL configuration. Invalid addresses, prefixes or
// patterns are reported as ErrInvalidPattern.
func New(o *options.Options) (*List, error) {
	if o == nil {
		o = options.New()
	}
	l := &List{Rules: make([]Rule, 0, len(o.Rules)), DefaultAllow: o.DefaultAllow}
	for i, ro := range o.Rules {
		if ro == nil {
			continue
		}
		if err := ro.Validate(); err != nil {
			return nil, fmt.Errorf("%w: acl rule %d: %w", kerr.ErrInvalidPattern, i, err)
		}
		c, err := compileCondition(ro)
		if err != nil {
			return nil, fmt.Errorf("%w: acl rule %d: %w", kerr.ErrInvalidPattern, i, err)
		}
		e := Deny
		if ro.IsAllow() {
			e = Allow
		}
		l.Rules = append(l.Rules, Rule{Effect: e, Condition: c})
	}
	return l, nil
}

func compileCondition(ro *options.RuleOptions) (Condition, error) {
	switch {
	case ro.IP != "":
		a, err := netip.ParseAddr(strings.TrimSpace(ro.IP))
		if err != nil {
			return nil, err
		}
		return IPCondition(a.Unmap()), nil
	case ro.Network != "":
		p, err := netip.ParsePrefix(strings.TrimSpace(ro.Network))
		if err != nil {
			return nil, err
		}
		p = p.Masked()
		if p.Addr().Is4In6() && p.Bits() >= 96 {
			p = netip.PrefixFrom(p.Addr().Unmap(), p.Bits()-96)
		}
		return NetworkCondition(p), nil
	case ro.Path != "":
		re, err := regexp.Compile(ro.Path)
		if err != nil {
			return nil, err
		}
		return PathCondition{re}, nil
	case ro.UserAgent != "":
		re, err := regexp.Compile(ro.UserAgent)
		if err != nil {
			return nil, err
		}
		return UserAgentCondition{re}, nil
	}
	return AllCondition{}, nil
}

// Evaluate returns the decision for the request and the rule that made it;
// the rule is nil when the default decided
func (l *List) Evaluate(r *http.Request, clientIP netip.Addr) (bool, *Rule) {
	for i := range l.Rules {
		if l.Rules[i].Condition.Matches(r, clientIP) {
			return l.Rules[i].Effect == Allow, &l.Rules[i]
		}
	}
	return l.DefaultAllow, nil
}

// CheckAccess returns nil when the request is allowed and an error wrapping
// ErrAccessDenied when it is denied. The first matching rule decides,
// regardless of its effect; the default applies when none matches.
func (l *List) CheckAccess(r *http.Request, clientIP netip.Addr) error {
	if l == nil {
		return nil
	}
	allowed, rule := l.Evaluate(r, clientIP)
	if allowed {
		return nil
	}
	if rule == nil {
		return fmt.Errorf("%w: default action", kerr.ErrAccessDenied)
	}
	return fmt.Errorf("%w: %s", kerr.ErrAccessDenied, rule.Condition)
}

// ClientIP returns the peer address of the request. The zero Addr is
// returned when RemoteAddr cannot be parsed.
func ClientIP(r *http.Request) netip.Addr {
	if r == nil || r.RemoteAddr == "" {
		return netip.Addr{}
	}
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	a, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}
	return a.Unmap()
}
