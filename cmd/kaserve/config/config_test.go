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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	kerr "github.com/kaserve/kaserve/pkg/errors"
	tracing "github.com/kaserve/kaserve/pkg/observability/tracing/options"
	rwopts "github.com/kaserve/kaserve/pkg/rewriter/options"
	rtopts "github.com/kaserve/kaserve/pkg/router/options"
)

const testConfig = `
frontend:
  listen_port: 8080
  connections_limit: 100
serve:
  root: %ROOT%
  spa: true
  headers:
    X-Served-By: ${KASERVE_TEST_SERVER}
virtual_hosts:
  - host: "*.example.com"
    root_dir: %ROOT%
    routes:
      - path: /api/*
        handler: ping
routes:
  - path: /*
    handler: static
rewrites:
  - pattern: ^/old/(.*)$
    replacement: /new/$1
    redirect: true
acl:
  default_allow: true
  rules:
    - action: deny
      path: /admin/*
authentication:
  method: Basic
  users:
    admin: ${KASERVE_TEST_PASS}
logging:
  log_level: debug
tracing:
  provider: stdout
  collector_pass: secret
`

func writeConfig(t *testing.T, yml string) string {
	t.Helper()
	dir := t.TempDir()
	yml = strings.ReplaceAll(yml, "%ROOT%", dir)
	p := filepath.Join(dir, "kaserve.yaml")
	if err := os.WriteFile(p, []byte(yml), 0600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewConfig(t *testing.T) {
	c := NewConfig()
	if c.Frontend.ListenPort != 3000 {
		t.Errorf("expected %d got %d", 3000, c.Frontend.ListenPort)
	}
	if c.Frontend.ListenAddress != "127.0.0.1" {
		t.Errorf("expected %s got %s", "127.0.0.1", c.Frontend.ListenAddress)
	}
	if c.Serve.Root != "." || !c.Serve.Compression || !c.Serve.Cache {
		t.Errorf("unexpected serve defaults %+v", c.Serve)
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoad(t *testing.T) {
	os.Setenv("KASERVE_TEST_SERVER", "unit")
	os.Setenv("KASERVE_TEST_PASS", "hunter2")
	defer os.Unsetenv("KASERVE_TEST_SERVER")
	defer os.Unsetenv("KASERVE_TEST_PASS")

	p := writeConfig(t, testConfig)
	c, flags, err := Load("kaserve-test", "0", []string{"-config", p, "-listen-port", "9090"})
	if err != nil {
		t.Fatal(err)
	}
	if flags.ConfigPath != p {
		t.Errorf("expected %s got %s", p, flags.ConfigPath)
	}
	if c.ConfigFilePath() != p {
		t.Errorf("expected %s got %s", p, c.ConfigFilePath())
	}
	if c.Frontend.ListenPort != 9090 {
		t.Errorf("expected %d got %d", 9090, c.Frontend.ListenPort)
	}
	if c.Frontend.ConnectionsLimit != 100 {
		t.Errorf("expected %d got %d", 100, c.Frontend.ConnectionsLimit)
	}
	if !c.Serve.SPA || !c.Serve.Compression {
		t.Errorf("unexpected serve options %+v", c.Serve)
	}
	if c.Serve.Headers["X-Served-By"] != "unit" {
		t.Errorf("expected %s got %s", "unit", c.Serve.Headers["X-Served-By"])
	}
	if len(c.VirtualHosts) != 1 || len(c.VirtualHosts[0].Routes) != 1 {
		t.Fatalf("unexpected virtual hosts %v", c.VirtualHosts)
	}
	if len(c.Rewrites) != 1 || c.Rewrites[0].RedirectStatus != 302 {
		t.Errorf("unexpected rewrites %v", c.Rewrites)
	}
	if len(c.ACL.Rules) != 1 || !c.ACL.DefaultAllow {
		t.Errorf("unexpected acl %+v", c.ACL)
	}
	if c.Authentication.Method != "basic" {
		t.Errorf("expected %s got %s", "basic", c.Authentication.Method)
	}
	if c.Authentication.Users["admin"] != "hunter2" {
		t.Errorf("expected %s got %s", "hunter2", c.Authentication.Users["admin"])
	}
	if c.Tracing.Provider != tracing.ProviderStdout {
		t.Errorf("expected %s got %s", tracing.ProviderStdout, c.Tracing.Provider)
	}

	s := c.String()
	if strings.Contains(s, "hunter2") || strings.Contains(s, "secret") {
		t.Errorf("expected secrets to be redacted:\n%s", s)
	}
	if !strings.Contains(s, "*.example.com") {
		t.Errorf("expected virtual host in output:\n%s", s)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load("kaserve-test", "0", []string{"-config", "/nonexistent/kaserve.yaml"})
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadVersion(t *testing.T) {
	c, flags, err := Load("kaserve-test", "0", []string{"-version"})
	if err != nil {
		t.Fatal(err)
	}
	if c != nil || !flags.PrintVersion {
		t.Error("expected version flag only")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	ef := filepath.Join(dir, ".env")
	if err := os.WriteFile(ef, []byte("KASERVE_TEST_DOTENV=dotenv-value\n"), 0600); err != nil {
		t.Fatal(err)
	}
	defer os.Unsetenv("KASERVE_TEST_DOTENV")
	c, _, err := Load("kaserve-test", "0", []string{"-env-file", ef, "-root", dir,
		"-header", "X-Env:${KASERVE_TEST_DOTENV}"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Serve.Headers["X-Env"] != "dotenv-value" {
		t.Errorf("expected %s got %s", "dotenv-value", c.Serve.Headers["X-Env"])
	}

	_, _, err = Load("kaserve-test", "0", []string{"-env-file", filepath.Join(dir, "missing")})
	if err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestValidate(t *testing.T) {
	c := NewConfig()
	c.Main.PprofServer = "reload"
	if err := c.Validate(); err != ErrInvalidPprofServerName {
		t.Errorf("expected %v got %v", ErrInvalidPprofServerName, err)
	}

	c = NewConfig()
	c.Frontend.ListenPort = 0
	if err := c.Validate(); err != ErrNoListeners {
		t.Errorf("expected %v got %v", ErrNoListeners, err)
	}

	c = NewConfig()
	c.VirtualHosts = rtopts.VirtualHostList{{Host: "example.com"}}
	if err := c.Validate(); !errors.Is(err, rtopts.ErrMissingRootDir) {
		t.Errorf("expected %v got %v", rtopts.ErrMissingRootDir, err)
	}

	c = NewConfig()
	c.Rewrites = rwopts.List{{RedirectStatus: 302}}
	if err := c.Validate(); !errors.Is(err, rwopts.ErrMissingPattern) {
		t.Errorf("expected %v got %v", rwopts.ErrMissingPattern, err)
	}

	c = NewConfig()
	c.Authentication.Method = "ntlm"
	if err := c.Validate(); !errors.Is(err, kerr.ErrUnsupportedAuthenticator) {
		t.Errorf("expected %v got %v", kerr.ErrUnsupportedAuthenticator, err)
	}

	c = NewConfig()
	c.Logging.LogLevel = "verbose"
	if err := c.Validate(); err == nil {
		t.Error("expected error for invalid log level")
	}

	c = NewConfig()
	c.VirtualHosts = rtopts.VirtualHostList{{Host: "example.com", RootDir: ".",
		TLS: &rtopts.TLSOptions{CertFile: "cert.pem", KeyFile: "key.pem"}}}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if !c.Frontend.ServeTLS {
		t.Error("expected ServeTLS")
	}
	if _, err := c.TLSCertConfig(); err == nil {
		t.Error("expected error for missing certificate files")
	}
}

func TestTLSCertConfigNone(t *testing.T) {
	c := NewConfig()
	tc, err := c.TLSCertConfig()
	if err != nil || tc != nil {
		t.Errorf("expected nil config, got %v %v", tc, err)
	}
}

func TestClone(t *testing.T) {
	c := NewConfig()
	c.Serve.Headers["X-A"] = "1"
	c.Routes = rtopts.RouteList{{Path: "/*", Handler: "static"}}
	c2 := c.Clone()
	c2.Serve.Headers["X-A"] = "2"
	c2.Routes[0].Path = "/other"
	if c.Serve.Headers["X-A"] != "1" || c.Routes[0].Path != "/*" {
		t.Error("expected deep copy")
	}
}
