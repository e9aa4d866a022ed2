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
	"flag"
	"fmt"
	"strings"

	kerr "github.com/kaserve/kaserve/pkg/errors"
	"github.com/kaserve/kaserve/pkg/headers"
)

const (
	// Command-line flags
	cfConfig        = "config"
	cfEnvFile       = "env-file"
	cfVersion       = "version"
	cfValidate      = "validate-config"
	cfLogLevel      = "log-level"
	cfListenPort    = "listen-port"
	cfMetricsPort   = "metrics-port"
	cfRoot          = "root"
	cfSPA           = "spa"
	cfNoCompression = "no-compression"
	cfNoCache       = "no-cache"
	cfCORS          = "cors"
	cfHeader        = "header"
)

// headerFlags collects repeated -header Name:Value flags
type headerFlags headers.Lookup

func (h headerFlags) String() string {
	out := make([]string, 0, len(h))
	for k, v := range h {
		out = append(out, k+":"+v)
	}
	return strings.Join(out, ",")
}

func (h headerFlags) Set(s string) error {
	k, v, ok := headers.ParseHeader(s)
	if !ok {
		return fmt.Errorf("%w: %q", kerr.ErrInvalidHeader, s)
	}
	h[k] = v
	return nil
}

// Flags holds the values for whitelisted flags
type Flags struct {
	PrintVersion      bool
	ValidateConfig    bool
	customPath        bool
	ListenPort        int
	MetricsListenPort int
	ConfigPath        string
	EnvFile           string
	LogLevel          string
	Root              string
	SPA               bool
	NoCompression     bool
	NoCache           bool
	CORS              bool
	Headers           headers.Lookup
}

func parseFlags(applicationName string, arguments []string) (*Flags, error) {

	flags := &Flags{Headers: make(headers.Lookup)}
	flagSet := flag.NewFlagSet(applicationName, flag.ContinueOnError)

	flagSet.BoolVar(&flags.PrintVersion, cfVersion, false,
		"Prints the version")
	flagSet.BoolVar(&flags.ValidateConfig, cfValidate, false,
		"Validates a config and exits without running the server")
	flagSet.StringVar(&flags.ConfigPath, cfConfig, "",
		"Path to the Config File")
	flagSet.StringVar(&flags.EnvFile, cfEnvFile, "",
		"Path to a dotenv file loaded into the environment before the config")
	flagSet.StringVar(&flags.LogLevel, cfLogLevel, "",
		"Level of Logging to use (debug, info, warn, error, none)")
	flagSet.IntVar(&flags.ListenPort, cfListenPort, 0,
		"Port that the HTTP server will listen on")
	flagSet.IntVar(&flags.MetricsListenPort, cfMetricsPort, 0,
		"Port that the /metrics endpoint will listen on")
	flagSet.StringVar(&flags.Root, cfRoot, "",
		"Document root used when no virtual host matches")
	flagSet.BoolVar(&flags.SPA, cfSPA, false,
		"Serve index.html in place of missing paths")
	flagSet.BoolVar(&flags.NoCompression, cfNoCompression, false,
		"Disable response compression")
	flagSet.BoolVar(&flags.NoCache, cfNoCache, false,
		"Disable caching headers")
	flagSet.BoolVar(&flags.CORS, cfCORS, false,
		"Enable CORS headers")
	flagSet.Var(headerFlags(flags.Headers), cfHeader,
		"Custom response header as Name:Value; may be repeated")

	err := flagSet.Parse(arguments)
	if err != nil {
		return nil, err
	}
	if flags.ConfigPath != "" {
		flags.customPath = true
	} else {
		flags.ConfigPath = DefaultConfigPath
	}
	return flags, nil
}

// loadFlags loads configuration from command line flags.
func (c *Config) loadFlags(flags *Flags) {
	if flags.ListenPort > 0 {
		c.Frontend.ListenPort = flags.ListenPort
	}
	if flags.MetricsListenPort > 0 {
		c.Metrics.ListenPort = flags.MetricsListenPort
	}
	if flags.LogLevel != "" {
		c.Logging.LogLevel = flags.LogLevel
	}
	if flags.Root != "" {
		c.Serve.Root = flags.Root
	}
	if flags.SPA {
		c.Serve.SPA = true
	}
	if flags.NoCompression {
		c.Serve.Compression = false
	}
	if flags.NoCache {
		c.Serve.Cache = false
	}
	if flags.CORS {
		c.Serve.CORS = true
	}
	if len(flags.Headers) > 0 && c.Serve.Headers == nil {
		c.Serve.Headers = make(map[string]string, len(flags.Headers))
	}
	for k, v := range flags.Headers {
		c.Serve.Headers[k] = v
	}
}
