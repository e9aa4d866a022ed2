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

// Package options provides the configuration for the access control list
package options

import (
	"errors"
	"strings"
)

// ErrInvalidAction is returned for an action other than allow or deny
var ErrInvalidAction = errors.New("acl action must be allow or deny")

// ErrConditionCount is returned when a rule does not name exactly one condition
var ErrConditionCount = errors.New("acl rule must have exactly one of ip, network, path, user_agent, all")

// Actions
const (
	ActionAllow = "allow"
	ActionDeny  = "deny"
)

// RuleOptions is a single access rule. Exactly one condition must be set.
type RuleOptions struct {
	Action    string `yaml:"action,omitempty"`
	IP        string `yaml:"ip,omitempty"`
	Network   string `yaml:"network,omitempty"`
	Path      string `yaml:"path,omitempty"`
	UserAgent string `yaml:"user_agent,omitempty"`
	All       bool   `yaml:"all,omitempty"`
}

// Options is the access control list configuration
type Options struct {
	// DefaultAllow decides requests that match no rule
	DefaultAllow bool `yaml:"default_allow"`
	// Rules are evaluated in order; the first match decides
	Rules []*RuleOptions `yaml:"rules,omitempty"`
}

// New returns a new ACL Options with default values
func New() *Options {
	return &Options{DefaultAllow: true}
}

// Clone returns an exact copy of the subject *Options
func (o *Options) Clone() *Options {
	o2 := &Options{DefaultAllow: o.DefaultAllow}
	if o.Rules != nil {
		o2.Rules = make([]*RuleOptions, 0, len(o.Rules))
		for _, r := range o.Rules {
			if r != nil {
				r2 := *r
				o2.Rules = append(o2.Rules, &r2)
			}
		}
	}
	return o2
}

// IsAllow returns true if the rule's action is allow
func (r *RuleOptions) IsAllow() bool {
	return strings.EqualFold(r.Action, ActionAllow)
}

// Validate returns an error if there are issues with the rule
func (r *RuleOptions) Validate() error {
	switch strings.ToLower(r.Action) {
	case ActionAllow, ActionDeny:
	default:
		return ErrInvalidAction
	}
	var n int
	for _, s := range []string{r.IP, r.Network, r.Path, r.UserAgent} {
		if s != "" {
			n++
		}
	}
	if r.All {
		n++
	}
	if n != 1 {
		return ErrConditionCount
	}
	return nil
}

type loaderOptions struct {
	DefaultAllow *bool          `yaml:"default_allow"`
	Rules        []*RuleOptions `yaml:"rules,omitempty"`
}

func (o *Options) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*o = *(New())
	var load loaderOptions
	if err := unmarshal(&load); err != nil {
		return err
	}
	if load.DefaultAllow != nil {
		o.DefaultAllow = *load.DefaultAllow
	}
	o.Rules = load.Rules
	return nil
}
