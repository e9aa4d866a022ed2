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

// Package config provides kaserve configuration abilities, including
// parsing and printing configuration files, command line parameters, and
// dotenv files, as well as default values.
package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"

	aclopts "github.com/kaserve/kaserve/pkg/acl/options"
	authopts "github.com/kaserve/kaserve/pkg/authenticator/options"
	"github.com/kaserve/kaserve/pkg/authenticator/registry"
	kerr "github.com/kaserve/kaserve/pkg/errors"
	fropt "github.com/kaserve/kaserve/pkg/frontend/options"
	lo "github.com/kaserve/kaserve/pkg/observability/logging/options"
	mo "github.com/kaserve/kaserve/pkg/observability/metrics/options"
	tracing "github.com/kaserve/kaserve/pkg/observability/tracing/options"
	rwopts "github.com/kaserve/kaserve/pkg/rewriter/options"
	rtopts "github.com/kaserve/kaserve/pkg/router/options"
	serve "github.com/kaserve/kaserve/pkg/serve/options"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config is the main configuration object
type Config struct {
	// Main is the primary MainConfig section
	Main *MainConfig `yaml:"main,omitempty"`
	// Frontend provides configurations about the client-facing listeners
	Frontend *fropt.Options `yaml:"frontend,omitempty"`
	// Serve provides the document root and response policy
	Serve *serve.Options `yaml:"serve,omitempty"`
	// VirtualHosts is the ordered list of virtual hosts
	VirtualHosts rtopts.VirtualHostList `yaml:"virtual_hosts,omitempty"`
	// Routes is the ordered default route list
	Routes rtopts.RouteList `yaml:"routes,omitempty"`
	// Rewrites is the ordered list of path rewrite rules
	Rewrites rwopts.List `yaml:"rewrites,omitempty"`
	// ACL provides the ordered access control rules
	ACL *aclopts.Options `yaml:"acl,omitempty"`
	// Authentication provides the authenticator configuration
	Authentication *authopts.Options `yaml:"authentication,omitempty"`
	// Logging provides configurations that affect logging behavior
	Logging *lo.Options `yaml:"logging,omitempty"`
	// Metrics provides configurations for collecting Metrics about the application
	Metrics *mo.Options `yaml:"metrics,omitempty"`
	// Tracing provides the distributed tracing configuration
	Tracing *tracing.Options `yaml:"tracing,omitempty"`

	LoaderWarnings []string `yaml:"-"`
}

// MainConfig is a collection of general configuration values.
type MainConfig struct {
	// ConfigHandlerPath provides the path to register the Config Handler for outputting the running configuration
	ConfigHandlerPath string `yaml:"config_handler_path,omitempty"`
	// PprofServer provides the name of the http listener that will host the pprof debugging routes
	// Options are: "metrics" or "off"; default is metrics
	PprofServer string `yaml:"pprof_server,omitempty"`
	// ServerName is the name reported in logs; defaults to os.Hostname
	ServerName string `yaml:"server_name,omitempty"`

	configFilePath string
}

// NewConfig returns a Config initialized with default values.
func NewConfig() *Config {
	hn, _ := os.Hostname()
	return &Config{
		Main: &MainConfig{
			ConfigHandlerPath: DefaultConfigHandlerPath,
			PprofServer:       DefaultPprofServerName,
			ServerName:        hn,
		},
		Frontend:       fropt.New(),
		Serve:          serve.New(),
		ACL:            aclopts.New(),
		Authentication: authopts.New(),
		Logging:        lo.New(),
		Metrics:        mo.New(),
		Tracing:        tracing.New(),
		LoaderWarnings: make([]string, 0),
	}
}

// ErrInvalidPprofServerName returns an error for invalid pprof server name
var ErrInvalidPprofServerName = errors.New("invalid pprof server name")

// ErrNoListeners is returned when neither the http nor the tls listener is configured
var ErrNoListeners = errors.New("no http or https listeners configured")

// loadEnvFile loads a dotenv file into the process environment. Variables
// already set in the environment are not overwritten.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	return godotenv.Load(path)
}

// loadFile loads application configuration from a YAML-formatted file.
func (c *Config) loadFile(flags *Flags) error {
	b, err := os.ReadFile(flags.ConfigPath)
	if err != nil {
		return err
	}
	if err = c.loadYAMLConfig(string(b)); err != nil {
		return err
	}
	c.Main.configFilePath = flags.ConfigPath
	return nil
}

// loadYAMLConfig loads application configuration from a YAML-formatted string.
func (c *Config) loadYAMLConfig(yml string) error {
	return yaml.Unmarshal([]byte(yml), c)
}

// fillNil replaces sections left nil by the YAML document with their defaults
func (c *Config) fillNil() {
	d := NewConfig()
	if c.Main == nil {
		c.Main = d.Main
	}
	if c.Frontend == nil {
		c.Frontend = d.Frontend
	}
	if c.Serve == nil {
		c.Serve = d.Serve
	}
	if c.ACL == nil {
		c.ACL = d.ACL
	}
	if c.Authentication == nil {
		c.Authentication = d.Authentication
	}
	if c.Logging == nil {
		c.Logging = d.Logging
	}
	if c.Metrics == nil {
		c.Metrics = d.Metrics
	}
	if c.Tracing == nil {
		c.Tracing = d.Tracing
	}
}

// Validate normalizes every section and returns the first configuration
// error. It runs once at load time; the Config is read-only afterward.
func (c *Config) Validate() error {
	c.fillNil()
	switch c.Main.PprofServer {
	case "metrics", "off":
	case "":
		c.Main.PprofServer = DefaultPprofServerName
	default:
		return ErrInvalidPprofServerName
	}
	if c.Main.ConfigHandlerPath == "" {
		c.Main.ConfigHandlerPath = DefaultConfigHandlerPath
	}
	if err := c.Frontend.Validate(); err != nil {
		return fmt.Errorf("frontend: %w", err)
	}
	c.Serve.Initialize()
	if err := c.Serve.Validate(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	if _, err := os.Stat(c.Serve.Root); err != nil {
		c.LoaderWarnings = append(c.LoaderWarnings,
			fmt.Sprintf("document root %s is not accessible: %v", c.Serve.Root, err))
	}
	for i, r := range c.Routes {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("routes[%d]: %w", i, err)
		}
	}
	c.Frontend.ServeTLS = false
	for i, v := range c.VirtualHosts {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("virtual_hosts[%d]: %w", i, err)
		}
		if v.HasTLS() {
			c.Frontend.ServeTLS = true
		}
	}
	for i, r := range c.Rewrites {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("rewrites[%d]: %w", i, err)
		}
	}
	for i, r := range c.ACL.Rules {
		if r == nil {
			continue
		}
		if err := r.Validate(); err != nil {
			return fmt.Errorf("acl.rules[%d]: %w", i, err)
		}
	}
	if err := c.Authentication.Initialize(); err != nil {
		return fmt.Errorf("authentication: %w", err)
	}
	if c.Authentication.Enabled() {
		if !registry.IsRegistered(c.Authentication.Method) {
			return fmt.Errorf("authentication: %w: %s",
				kerr.ErrUnsupportedAuthenticator, c.Authentication.Method)
		}
		if err := c.Authentication.Validate(); err != nil {
			return fmt.Errorf("authentication: %w", err)
		}
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Tracing.Validate(); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	if c.Frontend.ListenPort < 1 && (!c.Frontend.ServeTLS || c.Frontend.TLSListenPort < 1) {
		return ErrNoListeners
	}
	return nil
}

// TLSCertConfig returns the TLS configuration for the tls listener, loaded
// from every virtual host that carries a certificate. crypto/tls selects
// among them by SNI.
func (c *Config) TLSCertConfig() (*tls.Config, error) {
	files := c.VirtualHosts.CertFiles()
	if len(files) == 0 {
		return nil, nil
	}
	certs := make([]tls.Certificate, 0, len(files))
	for _, f := range files {
		cert, err := tls.LoadX509KeyPair(f.CertFile, f.KeyFile)
		if err != nil {
			return nil, err
		}
		certs = append(certs, cert)
	}
	return &tls.Config{Certificates: certs, MinVersion: tls.VersionTLS12}, nil
}

// Clone returns an exact copy of the subject *Config
func (c *Config) Clone() *Config {
	nc := NewConfig()
	if c.Main != nil {
		m := *c.Main
		nc.Main = &m
	}
	if c.Frontend != nil {
		nc.Frontend = c.Frontend.Clone()
	}
	if c.Serve != nil {
		nc.Serve = c.Serve.Clone()
	}
	nc.VirtualHosts = c.VirtualHosts.Clone()
	nc.Routes = c.Routes.Clone()
	nc.Rewrites = c.Rewrites.Clone()
	if c.ACL != nil {
		nc.ACL = c.ACL.Clone()
	}
	if c.Authentication != nil {
		nc.Authentication = c.Authentication.Clone()
	}
	if c.Logging != nil {
		nc.Logging = c.Logging.Clone()
	}
	if c.Metrics != nil {
		nc.Metrics = c.Metrics.Clone()
	}
	if c.Tracing != nil {
		nc.Tracing = c.Tracing.Clone()
	}
	nc.LoaderWarnings = append(nc.LoaderWarnings, c.LoaderWarnings...)
	return nc
}

// String returns the running configuration as YAML with secrets redacted
func (c *Config) String() string {
	cp := c.Clone()
	if cp.Authentication != nil {
		cp.Authentication = cp.Authentication.Redacted()
	}
	if cp.Tracing != nil {
		cp.Tracing = cp.Tracing.Redacted()
	}
	bytes, err := yaml.Marshal(cp)
	if err == nil {
		return string(bytes)
	}
	return ""
}

// ConfigFilePath returns the file path from which this configuration is based
func (c *Config) ConfigFilePath() string {
	if c.Main != nil {
		return c.Main.configFilePath
	}
	return ""
}

// Load returns the Application Configuration, starting with a default config,
// then overriding with any provided config file, then flags
func Load(applicationName, applicationVersion string, arguments []string) (*Config, *Flags, error) {
	flags, err := parseFlags(applicationName, arguments)
	if err != nil {
		return nil, nil, err
	}
	if flags.PrintVersion {
		return nil, flags, nil
	}
	if err = loadEnvFile(flags.EnvFile); err != nil {
		return nil, flags, fmt.Errorf("env-file: %w", err)
	}

	c := NewConfig()
	if flags.customPath {
		if err = c.loadFile(flags); err != nil {
			return nil, flags, err
		}
	} else if _, serr := os.Stat(flags.ConfigPath); serr == nil {
		if err = c.loadFile(flags); err != nil {
			return nil, flags, err
		}
	}
	c.fillNil()
	c.loadFlags(flags)

	if err = c.Validate(); err != nil {
		return nil, flags, err
	}
	return c, flags, nil
}
