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
	"testing"

	"gopkg.in/yaml.v2"
)

func TestVirtualHostValidate(t *testing.T) {
	tests := []struct {
		o        *VirtualHostOptions
		expected error
	}{
		{&VirtualHostOptions{}, ErrMissingHost},
		{&VirtualHostOptions{Host: "example.com"}, ErrMissingRootDir},
		{&VirtualHostOptions{Host: "example.com", RootDir: "/srv",
			TLS: &TLSOptions{CertFile: "a.pem"}}, ErrIncompleteTLS},
		{&VirtualHostOptions{Host: "example.com", RootDir: "/srv",
			Routes: RouteList{{Handler: "static"}}}, ErrMissingPath},
		{&VirtualHostOptions{Host: "example.com", RootDir: "/srv",
			TLS: &TLSOptions{CertFile: "a.pem", KeyFile: "a.key"}}, nil},
	}
	for i, test := range tests {
		if err := test.o.Validate(); err != test.expected {
			t.Errorf("%d: expected %v got %v", i, test.expected, err)
		}
	}
}

func TestUnmarshalAndClone(t *testing.T) {
	const conf = `
- host: "*.example.com"
  root_dir: /srv/example
  routes:
    - path: /api/*
      handler: api
  tls:
    cert_file: c.pem
    key_file: c.key
- host: other.com
  root_dir: /srv/other
- host: www.example.com
  root_dir: /srv/example
  tls:
    cert_file: c.pem
    key_file: c.key
`
	var l VirtualHostList
	if err := yaml.Unmarshal([]byte(conf), &l); err != nil {
		t.Fatal(err)
	}
	if len(l) != 3 || !l[0].HasTLS() || l[1].HasTLS() {
		t.Fatalf("unexpected list %+v", l)
	}
	if cf := l.CertFiles(); len(cf) != 1 {
		t.Errorf("expected %d got %d", 1, len(cf))
	}
	l2 := l.Clone()
	l2[0].Routes[0].Path = "/x"
	l2[0].TLS.CertFile = "x.pem"
	if l[0].Routes[0].Path != "/api/*" || l[0].TLS.CertFile != "c.pem" {
		t.Error("clone is not independent")
	}
}
