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
	"os"
	"path/filepath"
	"testing"

	"github.com/kaserve/kaserve/pkg/authenticator/types"
	"gopkg.in/yaml.v2"
)

func TestUnmarshalDefaults(t *testing.T) {
	o := &Options{}
	if err := yaml.Unmarshal([]byte("method: basic\nusers:\n  alice: secret\n"), o); err != nil {
		t.Fatal(err)
	}
	if o.Realm != DefaultRealm || o.UsersFormat != types.PlainText || !o.Enabled() {
		t.Errorf("unexpected options %+v", o)
	}
}

func TestInitialize(t *testing.T) {
	t.Setenv("KASERVE_TEST_PASSWORD", "from-env")
	o := &Options{Method: "BASIC", Users: map[string]string{"bob": "${KASERVE_TEST_PASSWORD}"}}
	if err := o.Initialize(); err != nil {
		t.Fatal(err)
	}
	if o.Method != types.Basic {
		t.Errorf("expected %s got %s", types.Basic, o.Method)
	}
	if o.Users["bob"] != "from-env" {
		t.Errorf("expected %s got %s", "from-env", o.Users["bob"])
	}
	if r := o.Redacted(); r.Users["bob"] != "*****" || o.Users["bob"] != "from-env" {
		t.Error("unexpected redaction")
	}
}

func TestValidate(t *testing.T) {
	o := New()
	if err := o.Validate(); err != nil {
		t.Error(err)
	}
	o.UsersFormat = "md5"
	if err := o.Validate(); err != ErrInvalidUsersFormat {
		t.Errorf("expected %v got %v", ErrInvalidUsersFormat, err)
	}
	o.UsersFormat = types.BCrypt
	o.UsersFile = filepath.Join(t.TempDir(), "missing")
	if err := o.Validate(); err != ErrInvalidUsersFile {
		t.Errorf("expected %v got %v", ErrInvalidUsersFile, err)
	}
	if err := os.WriteFile(o.UsersFile, []byte("a:b\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := o.Validate(); err != nil {
		t.Error(err)
	}
	if New().Enabled() {
		t.Error("expected disabled by default")
	}
}
