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

package providers

import (
	"strconv"
	"strings"

	"github.com/kaserve/kaserve/pkg/encoding/brotli"
	"github.com/kaserve/kaserve/pkg/encoding/deflate"
	"github.com/kaserve/kaserve/pkg/encoding/gzip"
)

const (
	Brotli   Provider = 1 << iota // 1
	GZip                          // 2
	Deflate                       // 4
	Identity Provider = 0         // no encoding

	// for use in headers
	BrotliValue  = "br"
	GZipValue    = "gzip"
	DeflateValue = "deflate"
)

type (
	Provider byte
	// EncodeFunc compresses a complete payload
	EncodeFunc func([]byte) ([]byte, error)
)

// preference lists the supported providers from most to least preferred
var preference = []Provider{Brotli, GZip, Deflate}

var providerValLookup = map[Provider]string{
	Brotli:  BrotliValue,
	GZip:    GZipValue,
	Deflate: DeflateValue,
}

var encoders = map[Provider]EncodeFunc{
	Brotli:  brotli.Encode,
	GZip:    gzip.Encode,
	Deflate: deflate.Encode,
}

func (p Provider) String() string {
	if p == Identity {
		return "identity"
	}
	if v, ok := providerValLookup[p]; ok {
		return v
	}
	return strconv.Itoa(int(p))
}

// FromAcceptEncoding returns the bitmap of supported providers advertised in
// an Accept-Encoding header value. A provider is advertised when its token
// appears anywhere in the lowercased header; q-values are not parsed.
func FromAcceptEncoding(acceptEncoding string) Provider {
	var b Provider
	if acceptEncoding == "" {
		return b
	}
	ae := strings.ToLower(acceptEncoding)
	for _, p := range preference {
		if strings.Contains(ae, providerValLookup[p]) {
			b |= p
		}
	}
	return b
}

// Select returns the most preferred provider in the bitmap, brotli first,
// then gzip, then deflate, along with its encoder and Content-Encoding value
func Select(b Provider) (Provider, EncodeFunc, string) {
	for _, p := range preference {
		if b&p == p {
			return p, encoders[p], providerValLookup[p]
		}
	}
	return Identity, nil, ""
}
