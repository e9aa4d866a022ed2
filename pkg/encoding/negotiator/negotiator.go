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

// Package negotiator selects the content encoding and caching policy of a
// response from its MIME type, its size and the request's Accept-Encoding
package negotiator

import (
	"strings"

	"github.com/kaserve/kaserve/pkg/encoding/providers"
)

// MinCompressSize is the smallest payload, in bytes, that is compressed
const MinCompressSize = 1024

var compressibleTypes = []string{
	"text/",
	"application/json",
	"application/javascript",
	"application/xml",
	"image/svg+xml",
	"application/wasm",
}

var cacheableTypes = []string{
	"text/css",
	"text/javascript",
	"application/javascript",
	"image/",
	"font/",
	"application/font",
}

func hasAnyPrefix(mime string, prefixes []string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	for _, p := range prefixes {
		if strings.HasPrefix(mime, p) {
			return true
		}
	}
	return false
}

// IsCompressible returns true when the MIME type benefits from compression
func IsCompressible(mime string) bool {
	return hasAnyPrefix(mime, compressibleTypes)
}

// IsCacheable returns true when responses of the MIME type may be cached
func IsCacheable(mime string) bool {
	return hasAnyPrefix(mime, cacheableTypes)
}

// Negotiator holds the process-wide content negotiation switches. It is
// read-only once constructed and safe for concurrent use.
type Negotiator struct {
	Compression bool
	Cache       bool
	SPA         bool
	// MinSize overrides MinCompressSize when positive
	MinSize int

	// selectFunc picks the encoder for an Accept-Encoding bitmap
	selectFunc func(providers.Provider) (providers.Provider, providers.EncodeFunc, string)
	// onFailure is called when an encoder fails and identity is served instead
	onFailure func(encoding string, err error)
}

// New returns a new Negotiator
func New(compression, cache, spa bool) *Negotiator {
	return &Negotiator{
		Compression: compression,
		Cache:       cache,
		SPA:         spa,
		selectFunc:  providers.Select,
	}
}

// OnFailure sets a function called when compression fails and the
// uncompressed content is served instead
func (n *Negotiator) OnFailure(f func(encoding string, err error)) *Negotiator {
	n.onFailure = f
	return n
}

func (n *Negotiator) minSize() int {
	if n.MinSize > 0 {
		return n.MinSize
	}
	return MinCompressSize
}

// ShouldCompress returns true when compression is enabled and the payload is
// both large enough and of a compressible type
func (n *Negotiator) ShouldCompress(size int, mime string) bool {
	return n.Compression && size >= n.minSize() && IsCompressible(mime)
}

// Negotiate returns the content to send and its Content-Encoding value.
// Brotli is preferred over gzip, and gzip over deflate. When compression
// does not apply, or the encoder fails, the content is returned unchanged
// with an empty encoding.
func (n *Negotiator) Negotiate(content []byte, mime, acceptEncoding string) ([]byte, string) {
	if !n.ShouldCompress(len(content), mime) {
		return content, ""
	}
	sel := n.selectFunc
	if sel == nil {
		sel = providers.Select
	}
	p, enc, value := sel(providers.FromAcceptEncoding(acceptEncoding))
	if p == providers.Identity || enc == nil {
		return content, ""
	}
	out, err := enc(content)
	if err != nil {
		if n.onFailure != nil {
			n.onFailure(value, err)
		}
		return content, ""
	}
	return out, value
}

// ShouldCache returns true when caching headers are attached for the MIME type
func (n *Negotiator) ShouldCache(mime string) bool {
	return n.Cache && IsCacheable(mime)
}

// ShouldFallback returns true when a missing path is answered with the
// single-page application entry document
func (n *Negotiator) ShouldFallback(exists bool) bool {
	return n.SPA && !exists
}
