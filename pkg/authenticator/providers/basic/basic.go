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

// Package basic implements HTTP Basic authentication
package basic

import (
	"encoding/base64"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"strings"

	"github.com/kaserve/kaserve/pkg/authenticator/cred"
	"github.com/kaserve/kaserve/pkg/authenticator/loaders"
	"github.com/kaserve/kaserve/pkg/authenticator/options"
	"github.com/kaserve/kaserve/pkg/authenticator/types"
	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/headers"
)

const ID = types.Basic

// ChallengeBody is the body sent with the 401 challenge
const ChallengeBody = "401 Unauthorized: Authentication required"

const optionsField = "options"

type Authenticator struct {
	users  types.CredentialsManifest
	format types.CredentialsFormat
	realm  string
}

func RegistryEntry() types.RegistryEntry {
	return types.RegistryEntry{Method: ID, New: New}
}

// New returns a new Basic Authenticator from the provided registry data,
// which must carry the *options.Options under the "options" key
func New(data map[string]any) (types.Authenticator, error) {
	var opts *options.Options
	if data != nil {
		if v, ok := data[optionsField]; ok && v != nil {
			opts, _ = v.(*options.Options)
		}
	}
	if opts == nil {
		return nil, kerr.ErrInvalidOptions
	}
	a := &Authenticator{realm: opts.Realm, format: opts.UsersFormat}
	if a.realm == "" {
		a.realm = options.DefaultRealm
	}
	if a.format == "" {
		a.format = types.PlainText
	}
	if opts.UsersFile != "" {
		users, err := loaders.LoadFile(opts.UsersFile)
		if err != nil {
			return nil, err
		}
		a.users = users
	}
	if len(opts.Users) > 0 {
		if a.users == nil {
			a.users = make(types.CredentialsManifest, len(opts.Users))
		}
		maps.Copy(a.users, opts.Users)
	}
	return a, nil
}

// Method implements types.Authenticator
func (a *Authenticator) Method() types.Method {
	return ID
}

// Realm returns the realm presented in challenges
func (a *Authenticator) Realm() string {
	return a.realm
}

// ExtractCredentials returns the username and password carried by the
// Authorization header. The header must start with "Basic " and carry the
// base64 encoding of user:password; the password is everything after the
// first colon.
func ExtractCredentials(r *http.Request) (string, string, error) {
	h, ok := r.Header[headers.NameAuthorization]
	if !ok || len(h) == 0 {
		return "", "", kerr.ErrMissingCredentials
	}
	enc, ok := strings.CutPrefix(h[0], headers.ValueBasicAuthPrefix)
	if !ok {
		return "", "", fmt.Errorf("%w: not a basic authorization", kerr.ErrInvalidCredentials)
	}
	b, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", kerr.ErrInvalidCredentials, err)
	}
	u, p, ok := strings.Cut(string(b), ":")
	if !ok {
		return "", "", fmt.Errorf("%w: missing separator", kerr.ErrInvalidCredentials)
	}
	return u, p, nil
}

// Authenticate checks the BasicAuth credentials
func (a *Authenticator) Authenticate(r *http.Request) (*types.AuthResult, error) {
	u, p, err := ExtractCredentials(r)
	if err != nil {
		status := types.AuthFailed
		if errors.Is(err, kerr.ErrMissingCredentials) {
			status = types.AuthMissing
		}
		return &types.AuthResult{Status: status, StatusDetail: err.Error()}, err
	}
	stored, ok := a.users[u]
	if !ok {
		return &types.AuthResult{Status: types.AuthFailed, Username: u,
			StatusDetail: "unknown user"}, kerr.ErrInvalidCredentials
	}
	if cred.VerifyPassword(stored, p, a.format) != nil {
		return &types.AuthResult{Status: types.AuthFailed, Username: u,
			StatusDetail: "password mismatch"}, kerr.ErrInvalidCredentials
	}
	return &types.AuthResult{Username: u, Status: types.AuthSuccess}, nil
}

// Challenge implements types.Authenticator
func (a *Authenticator) Challenge() *types.Challenge {
	return &types.Challenge{
		Status: http.StatusUnauthorized,
		Headers: map[string]string{
			headers.NameWWWAuthenticate: fmt.Sprintf(`Basic realm="%s"`, a.realm),
		},
		Body: ChallengeBody,
	}
}
