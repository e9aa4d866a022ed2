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

// Package rewriter applies an ordered list of path rewrite rules to a request
// path, producing an internally rewritten path or an external redirect
package rewriter

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/rewriter/options"
)

// Rule is a compiled rewrite rule
type Rule struct {
	Pattern        *regexp.Regexp
	Replacement    string
	IsLast         bool
	IsRedirect     bool
	RedirectStatus int
}

// Result is the outcome of the last matching rule
type Result struct {
	// Path is the rewritten path, without any query string
	Path string
	// RawQuery is the query string carried by the replacement, if any
	RawQuery string
	// IsRedirect is true when the returned rule asks for an external redirect
	IsRedirect bool
	// RedirectStatus is the redirect status, 301 or 302
	RedirectStatus int
}

// Location returns the redirect target for the Result
func (r *Result) Location() string {
	if r.RawQuery == "" {
		return r.Path
	}
	return r.Path + "?" + r.RawQuery
}

// Engine evaluates rewrite rules in their declared order. An Engine is
// read-only once constructed and safe for concurrent use.
type Engine struct {
	rules []Rule
}

// New compiles the provided rules into an Engine. Any rule that fails
// validation or compilation aborts construction with ErrInvalidPattern.
func New(l options.List) (*Engine, error) {
	e := &Engine{rules: make([]Rule, 0, len(l))}
	for i, o := range l {
		if o == nil {
			continue
		}
		if err := o.Validate(); err != nil {
			return nil, fmt.Errorf("%w: rewrite rule %d: %w", kerr.ErrInvalidPattern, i, err)
		}
		re, err := regexp.Compile(o.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: rewrite rule %d: %w", kerr.ErrInvalidPattern, i, err)
		}
		status := o.RedirectStatus
		if status == 0 {
			status = http.StatusFound
		}
		e.rules = append(e.rules, Rule{
			Pattern:        re,
			Replacement:    o.Replacement,
			IsLast:         o.Last,
			IsRedirect:     o.Redirect,
			RedirectStatus: status,
		})
	}
	return e, nil
}

// Len returns the number of compiled rules
func (e *Engine) Len() int {
	if e == nil {
		return 0
	}
	return len(e.rules)
}

// Process walks every rule in order. Each matching rule rewrites the working
// path, so later rules see the output of earlier ones. The result of the most
// recent match is returned; a matching Last rule halts the walk. When no rule
// matches, ok is false and the caller keeps the original path.
func (e *Engine) Process(path string) (*Result, bool) {
	if e == nil || len(e.rules) == 0 {
		return nil, false
	}
	var res *Result
	working := path
	for _, rule := range e.rules {
		if !rule.Pattern.MatchString(working) {
			continue
		}
		working = rule.Pattern.ReplaceAllString(working, rule.Replacement)
		res = &Result{
			IsRedirect:     rule.IsRedirect,
			RedirectStatus: rule.RedirectStatus,
		}
		res.Path, res.RawQuery, _ = strings.Cut(working, "?")
		if rule.IsLast {
			break
		}
	}
	return res, res != nil
}

// Apply updates the request URL with a non-redirect Result. A query string
// produced by the rewrite replaces the original one.
func Apply(r *http.Request, res *Result) {
	if r == nil || r.URL == nil || res == nil {
		return
	}
	r.URL.Path = res.Path
	r.URL.RawPath = ""
	if res.RawQuery != "" {
		r.URL.RawQuery = res.RawQuery
	}
}
