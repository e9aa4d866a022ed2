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

package options

import (
	"errors"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/kaserve/kaserve/pkg/authenticator/types"
)

// DefaultRealm is the realm presented in challenges when none is configured
const DefaultRealm = "Restricted"

var (
	ErrInvalidUsersFormat = errors.New("invalid users_format")
	ErrInvalidUsersFile   = errors.New("invalid users_file")
)

// Options configures request authentication
type Options struct {
	// Method is basic, digest or bearer; empty disables authentication
	Method types.Method `yaml:"method,omitempty"`
	// Realm is presented in the WWW-Authenticate challenge
	Realm string `yaml:"realm,omitempty"`
	// Users maps usernames to passwords; ${VAR} references are expanded from the environment
	Users map[string]string `yaml:"users,omitempty"`
	// UsersFile names a file of user:password lines
	UsersFile string `yaml:"users_file,omitempty"`
	// UsersFormat describes how passwords are stored, plaintext or bcrypt
	UsersFormat types.CredentialsFormat `yaml:"users_format,omitempty"`
	// Paths limits authentication to requests whose path matches one of these
	// route-style patterns; empty means every request
	Paths []string `yaml:"paths,omitempty"`
}

// New returns a new Authenticator Options with default values
func New() *Options {
	return &Options{Realm: DefaultRealm, UsersFormat: types.PlainText}
}

// Enabled returns true when an authentication method is configured
func (o *Options) Enabled() bool {
	return o != nil && o.Method != ""
}

// Clone returns an exact copy of the subject *Options
func (o *Options) Clone() *Options {
	out := *o
	out.Users = maps.Clone(o.Users)
	out.Paths = slices.Clone(o.Paths)
	return &out
}

// Initialize normalizes the options and expands environment references in
// the users map
func (o *Options) Initialize() error {
	o.Method = types.Method(strings.ToLower(string(o.Method)))
	if o.Realm == "" {
		o.Realm = DefaultRealm
	}
	if o.UsersFormat == "" {
		o.UsersFormat = types.PlainText
	}
	for k, v := range o.Users {
		o.Users[k] = os.ExpandEnv(v)
	}
	return nil
}

// Validate returns an error if there are issues with the options
func (o *Options) Validate() error {
	switch o.UsersFormat {
	case types.PlainText, types.BCrypt:
	default:
		return ErrInvalidUsersFormat
	}
	if o.UsersFile != "" {
		if fi, err := os.Stat(o.UsersFile); err != nil || fi.IsDir() {
			return ErrInvalidUsersFile
		}
	}
	return nil
}

// Redacted returns a copy of the options with every password masked
func (o *Options) Redacted() *Options {
	out := o.Clone()
	for k := range out.Users {
		out.Users[k] = "*****"
	}
	return out
}

func (o *Options) UnmarshalYAML(unmarshal func(any) error) error {
	type loadOptions Options
	lo := loadOptions(*(New()))
	if err := unmarshal(&lo); err != nil {
		return err
	}
	*o = Options(lo)
	return nil
}
