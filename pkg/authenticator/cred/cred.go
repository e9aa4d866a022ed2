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

// Package cred verifies presented passwords against stored credentials
package cred

import (
	"errors"

	"github.com/kaserve/kaserve/pkg/authenticator/types"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("unauthorized")

// VerifyPassword verifies a password against a stored credential. PlainText
// credentials are compared as exact strings, with no hashing.
func VerifyPassword(stored, password string, f types.CredentialsFormat) error {
	switch f {
	case types.BCrypt:
		if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
			return ErrUnauthorized
		}
		return nil
	default:
		if stored != password {
			return ErrUnauthorized
		}
		return nil
	}
}

// HashPassword returns the bcrypt hash of the password
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
