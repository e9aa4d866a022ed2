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

// Package options provides the configuration for path rewrite rules
package options

import (
	"errors"
	"net/http"
)

// ErrInvalidRedirectStatus is returned when a redirecting rule names a status
// other than 301 or 302
var ErrInvalidRedirectStatus = errors.New("redirect_status must be 301 or 302")

// ErrMissingPattern is returned when a rule has no pattern
var ErrMissingPattern = errors.New("rewrite rule is missing a pattern")

// Options is a single path rewrite rule
type Options struct {
	// Pattern is a regular expression matched against the request path
	Pattern string `yaml:"pattern,omitempty"`
	// Replacement is the substitution applied to every match; $1 style
	// group references are supported
	Replacement string `yaml:"replacement,omitempty"`
	// Last stops rule evaluation when this rule matches
	Last bool `yaml:"last,omitempty"`
	// Redirect turns a match into an external redirect instead of an internal rewrite
	Redirect bool `yaml:"redirect,omitempty"`
	// RedirectStatus is the status used for Redirect rules, 301 or 302
	RedirectStatus int `yaml:"redirect_status,omitempty"`
}

// List is an ordered list of rewrite rules
type List []*Options

// New returns a new rewrite rule with default values
func New() *Options {
	return &Options{RedirectStatus: http.StatusFound}
}

// Clone returns an exact copy of the subject *Options
func (o *Options) Clone() *Options {
	o2 := *o
	return &o2
}

// Validate returns an error if there are issues with the rule
func (o *Options) Validate() error {
	if o.Pattern == "" {
		return ErrMissingPattern
	}
	if o.Redirect && o.RedirectStatus != http.StatusMovedPermanently &&
		o.RedirectStatus != http.StatusFound {
		return ErrInvalidRedirectStatus
	}
	return nil
}

// Clone returns an exact copy of the subject List
func (l List) Clone() List {
	if l == nil {
		return nil
	}
	l2 := make(List, len(l))
	for i, o := range l {
		if o != nil {
			l2[i] = o.Clone()
		}
	}
	return l2
}

type loaderOptions struct {
	Pattern        string `yaml:"pattern,omitempty"`
	Replacement    string `yaml:"replacement,omitempty"`
	Last           bool   `yaml:"last,omitempty"`
	Redirect       bool   `yaml:"redirect,omitempty"`
	RedirectStatus *int   `yaml:"redirect_status,omitempty"`
}

func (o *Options) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*o = *(New())
	var load loaderOptions
	if err := unmarshal(&load); err != nil {
		return err
	}
	o.Pattern = load.Pattern
	o.Replacement = load.Replacement
	o.Last = load.Last
	o.Redirect = load.Redirect
	if load.RedirectStatus != nil {
		o.RedirectStatus = *load.RedirectStatus
	}
	return nil
}
