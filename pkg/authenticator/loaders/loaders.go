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

// Package loaders reads credential manifests from files
package loaders

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kaserve/kaserve/pkg/authenticator/types"
)

// LoadFile reads an htpasswd-style file of user:password lines
func LoadFile(path string) (types.CredentialsManifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	users, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return users, nil
}

// Parse reads user:password lines. Blank lines and lines starting with # are
// ignored, as are lines without a colon or with an empty username. The
// password is everything after the first colon.
func Parse(r io.Reader) (types.CredentialsManifest, error) {
	users := make(types.CredentialsManifest)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		u, p, ok := strings.Cut(line, ":")
		if !ok || u == "" {
			continue
		}
		users[u] = p
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
