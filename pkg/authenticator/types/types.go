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

package types

import (
	"net/http"
)

// Authenticator represents a specific auth implementation (e.g., Basic Auth)
type Authenticator interface {
	// Method returns the authentication method implemented
	Method() Method
	// Authenticate verifies the credentials carried by the request
	Authenticate(*http.Request) (*AuthResult, error)
	// Challenge returns the response sent when authentication fails
	Challenge() *Challenge
}

// Method is a defined type for the Authenticator's method name
type Method string

// Supported and reserved authentication methods
const (
	Basic  Method = "basic"
	Digest Method = "digest"
	Bearer Method = "bearer"
)

// CredentialsFormat describes how stored passwords are encoded
type CredentialsFormat string

const (
	// PlainText passwords are compared as exact strings
	PlainText CredentialsFormat = "plaintext"
	// BCrypt passwords are bcrypt hashes
	BCrypt CredentialsFormat = "bcrypt"
)

// CredentialsManifest maps usernames to stored passwords
type CredentialsManifest map[string]string

// NewAuthenticatorFunc defines a function that returns a new Authenticator
type NewAuthenticatorFunc func(map[string]any) (Authenticator, error)

// RegistryEntry defines an entry in the Authenticator Registry
type RegistryEntry struct {
	Method Method
	New    NewAuthenticatorFunc
}

// Challenge is the response sent when a request fails authentication
type Challenge struct {
	Status  int
	Headers map[string]string
	Body    string
}
