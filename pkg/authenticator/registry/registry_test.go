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
	"errors"
	"testing"

	"github.com/kaserve/kaserve/pkg/authenticator/options"
	"github.com/kaserve/kaserve/pkg/authenticator/types"
	kerr "github.com/kaserve/kaserve/pkg/errors"
)

func TestNew(t *testing.T) {
	a, err := New(types.Basic, options.New())
	if err != nil {
		t.Fatal(err)
	}
	if a.Method() != types.Basic {
		t.Errorf("expected %s got %s", types.Basic, a.Method())
	}

	for _, m := range []types.Method{types.Digest, types.Bearer} {
		if _, err := New(m, options.New()); !errors.Is(err, kerr.ErrUnimplementedAuthenticator) {
			t.Errorf("%s: expected %v got %v", m, kerr.ErrUnimplementedAuthenticator, err)
		}
		if !IsRegistered(m) {
			t.Errorf("%s: expected registered", m)
		}
	}

	if _, err := New("ntlm", options.New()); !errors.Is(err, kerr.ErrUnsupportedAuthenticator) {
		t.Errorf("expected %v got %v", kerr.ErrUnsupportedAuthenticator, err)
	}
	if IsRegistered("ntlm") {
		t.Error("expected unregistered")
	}
}
