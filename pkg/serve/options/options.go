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

// Package options provides the configuration for static content serving
package options

import (
	"fmt"
	"maps"
	"os"
	"strings"

	kerr "github.com/kaserve/kaserve/pkg/errors"
)

const (
	// DefaultRoot is the default document root
	DefaultRoot = "."
	// DefaultFile is the default file served for directory requests
	DefaultFile = "index.html"
)

// Options is the process-wide serving configuration. It is read-only once
// the configuration is loaded.
type Options struct {
	// Root is the document root used when no virtual host matches
	Root string `yaml:"root,omitempty"`
	// DefaultFile is served for directory requests
	DefaultFile string `yaml:"default_file,omitempty"`
	// DirectoryListing generates an index for directories without a DefaultFile
	DirectoryListing bool `yaml:"directory_listing"`
	// SPA serves index.html in place of missing paths
	SPA bool `yaml:"spa"`
	// Compression enables response compression negotiation
	Compression bool `yaml:"compression"`
	// Cache attaches caching headers to cacheable types
	Cache bool `yaml:"cache"`
	// CORS attaches permissive Access-Control-Allow-* headers
	CORS bool `yaml:"cors"`
	// Headers are custom headers applied to every successful response.
	// Names prefixed with - are removed and names prefixed with + are appended.
	Headers map[string]string `yaml:"headers,omitempty"`
	// ExposeErrors includes internal error text in 500 response bodies
	ExposeErrors bool `yaml:"expose_errors"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		Root:        DefaultRoot,
		DefaultFile: DefaultFile,
		Compression: true,
		Cache:       true,
		Headers:     make(map[string]string),
	}
}

// Clone returns an exact copy of the Options
func (o *Options) Clone() *Options {
	o2 := *o
	o2.Headers = maps.Clone(o.Headers)
	return &o2
}

// Initialize expands environment variables in the custom header values
func (o *Options) Initialize() {
	for k, v := range o.Headers {
		o.Headers[k] = os.ExpandEnv(v)
	}
}

// Validate returns an error if the Options cannot be served
func (o *Options) Validate() error {
	if o.Root == "" {
		o.Root = DefaultRoot
	}
	if o.DefaultFile == "" {
		o.DefaultFile = DefaultFile
	}
	if strings.ContainsAny(o.DefaultFile, `/\`) {
		return fmt.Errorf("%w: default_file must be a file name", kerr.ErrInvalidOptions)
	}
	for k := range o.Headers {
		if strings.TrimLeft(k, "+-") == "" || strings.ContainsAny(k, " :\r\n") {
			return fmt.Errorf("%w: %q", kerr.ErrInvalidHeader, k)
		}
	}
	return nil
}

type loaderOptions struct {
	Root             string            `yaml:"root,omitempty"`
	DefaultFile      string            `yaml:"default_file,omitempty"`
	DirectoryListing *bool             `yaml:"directory_listing,omitempty"`
	SPA              *bool             `yaml:"spa,omitempty"`
	Compression      *bool             `yaml:"compression,omitempty"`
	Cache            *bool             `yaml:"cache,omitempty"`
	CORS             *bool             `yaml:"cors,omitempty"`
	Headers          map[string]string `yaml:"headers,omitempty"`
	ExposeErrors     *bool             `yaml:"expose_errors,omitempty"`
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func (o *Options) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*o = *(New())
	var load loaderOptions
	if err := unmarshal(&load); err != nil {
		return err
	}
	if load.Root != "" {
		o.Root = load.Root
	}
	if load.DefaultFile != "" {
		o.DefaultFile = load.DefaultFile
	}
	setBool(&o.DirectoryListing, load.DirectoryListing)
	setBool(&o.SPA, load.SPA)
	setBool(&o.Compression, load.Compression)
	setBool(&o.Cache, load.Cache)
	setBool(&o.CORS, load.CORS)
	setBool(&o.ExposeErrors, load.ExposeErrors)
	if load.Headers != nil {
		o.Headers = load.Headers
	}
	return nil
}
