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

// Package errors holds the sentinel errors shared across kaserve packages.
// Components wrap these with context using fmt.Errorf and %w; the dispatcher
// matches them with errors.Is to select a response status.
package errors

import "errors"

// ErrInvalidOptions is an error for when a configuration is invalid
var ErrInvalidOptions = errors.New("invalid options")

// ErrInvalidPattern is returned at configuration time when a route, virtual
// host, rewrite or ACL pattern cannot be compiled
var ErrInvalidPattern = errors.New("invalid pattern")

// ErrNoMatchingRoute is returned when neither the virtual host nor the
// default route list matches a request path
var ErrNoMatchingRoute = errors.New("no matching route")

// ErrAccessDenied is returned when an ACL rule, or the ACL default, denies a request
var ErrAccessDenied = errors.New("access denied")

// ErrMissingCredentials is returned when a request carries no Authorization header
var ErrMissingCredentials = errors.New("missing credentials")

// ErrInvalidCredentials is returned for malformed or mismatched credentials
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUnimplementedAuthenticator is returned at startup for a named
// authentication method that has no implementation
var ErrUnimplementedAuthenticator = errors.New("authentication method is not implemented")

// ErrUnsupportedAuthenticator is returned at startup for an unknown authentication method
var ErrUnsupportedAuthenticator = errors.New("unsupported authentication method")

// ErrNotFound is returned when a requested resource does not exist
var ErrNotFound = errors.New("not found")

// ErrDirectoryListingDisabled is returned when a directory without a default
// file is requested and directory listing is off
var ErrDirectoryListingDisabled = errors.New("directory listing is disabled")

// ErrUnimplementedHandler is returned when a route's handler kind has no
// registered handler
var ErrUnimplementedHandler = errors.New("no handler registered for handler kind")

// ErrNilListener is an error for a nil listener when a non-nil listener was expected
var ErrNilListener = errors.New("nil listener")

// ErrNoSuchListener is an error for a listener name that is not in the group
var ErrNoSuchListener = errors.New("no such listener")

// ErrInvalidHeader is returned when a configured header is not in Name:Value form
var ErrInvalidHeader = errors.New("invalid header, expected Name:Value")
