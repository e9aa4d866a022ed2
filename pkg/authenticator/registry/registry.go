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

package registry

import (
	"fmt"

	"github.com/kaserve/kaserve/pkg/authenticator/options"
	"github.com/kaserve/kaserve/pkg/authenticator/providers/basic"
	"github.com/kaserve/kaserve/pkg/authenticator/types"
	kerr "github.com/kaserve/kaserve/pkg/errors"
)

// this slice is the one and only place to aggregate all registered Authenticators
var registry = []types.RegistryEntry{
	basic.RegistryEntry(),
	{Method: types.Digest},
	{Method: types.Bearer},
}

var registryByName = compileSupportedByName()

func compileSupportedByName() map[types.Method]types.NewAuthenticatorFunc {
	out := make(map[types.Method]types.NewAuthenticatorFunc, len(registry))
	for _, entry := range registry {
		out[entry.Method] = entry.New
	}
	return out
}

// New returns a new Authenticator for the method. Methods that are named but
// have no implementation fail with ErrUnimplementedAuthenticator.
func New(method types.Method, o *options.Options) (types.Authenticator, error) {
	f, ok := registryByName[method]
	if !ok {
		return nil, fmt.Errorf("%w: %s", kerr.ErrUnsupportedAuthenticator, method)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %s", kerr.ErrUnimplementedAuthenticator, method)
	}
	return f(map[string]any{"options": o})
}

// IsRegistered returns true if the method is known, implemented or not
func IsRegistered(method types.Method) bool {
	_, ok := registryByName[method]
	return ok
}
