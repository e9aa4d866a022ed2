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

// Package headers provides functionality for HTTP Headers not provided by
// the builtin net/http package
package headers

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

const (
	// Common HTTP Header Values

	// ValueAny represents the wildcard HTTP Header Value of "*"
	ValueAny = "*"
	// ValueAllowedMethods is the value of Access-Control-Allow-Methods for CORS-enabled responses
	ValueAllowedMethods = "GET, HEAD, OPTIONS"
	// ValueNoCache is the Cache-Control value for responses that must not be cached
	ValueNoCache = "no-cache"
	// ValuePublicMaxAge is the Cache-Control value for cacheable static content
	ValuePublicMaxAge = "public, max-age=3600"
	// ValueTextHTML represents the HTTP Header Value of "text/html; charset=utf-8"
	ValueTextHTML = "text/html; charset=utf-8"
	// ValueTextPlain represents the HTTP Header Value of "text/plain; charset=utf-8"
	ValueTextPlain = "text/plain; charset=utf-8"
	// ValueOctetStream represents the HTTP Header Value of "application/octet-stream"
	ValueOctetStream = "application/octet-stream"
	// ValueBasicAuthPrefix is the scheme prefix of a Basic Authorization header
	ValueBasicAuthPrefix = "Basic "

	// Common HTTP Header Names

	// NameAcceptEncoding represents the HTTP Header Name of "Accept-Encoding"
	NameAcceptEncoding = "Accept-Encoding"
	// NameAllowHeaders represents the HTTP Header Name of "Access-Control-Allow-Headers"
	NameAllowHeaders = "Access-Control-Allow-Headers"
	// NameAllowMethods represents the HTTP Header Name of "Access-Control-Allow-Methods"
	NameAllowMethods = "Access-Control-Allow-Methods"
	// NameAllowOrigin represents the HTTP Header Name of "Access-Control-Allow-Origin"
	NameAllowOrigin = "Access-Control-Allow-Origin"
	// NameAuthorization represents the HTTP Header Name of "Authorization"
	NameAuthorization = "Authorization"
	// NameCacheControl represents the HTTP Header Name of "Cache-Control"
	NameCacheControl = "Cache-Control"
	// NameContentEncoding represents the HTTP Header Name of "Content-Encoding"
	NameContentEncoding = "Content-Encoding"
	// NameContentLength represents the HTTP Header Name of "Content-Length"
	NameContentLength = "Content-Length"
	// NameContentType represents the HTTP Header Name of "Content-Type"
	NameContentType = "Content-Type"
	// NameHost represents the HTTP Header Name of "Host"
	NameHost = "Host"
	// NameLastModified represents the HTTP Header Name of "Last-Modified"
	NameLastModified = "Last-Modified"
	// NameLocation represents the HTTP Header Name of "Location"
	NameLocation = "Location"
	// NameUserAgent represents the HTTP Header Name of "User-Agent"
	NameUserAgent = "User-Agent"
	// NameWWWAuthenticate represents the HTTP Header Name of "WWW-Authenticate"
	NameWWWAuthenticate = "WWW-Authenticate"
)

// Lookup represents a simple lookup for internal header manipulation
type Lookup map[string]string

// ParseHeader splits a "Name:Value" string on its first colon, trimming
// whitespace from both parts
func ParseHeader(s string) (string, string, bool) {
	k, v, ok := strings.Cut(s, ":")
	if !ok {
		return "", "", false
	}
	k = strings.TrimSpace(k)
	if k == "" {
		return "", "", false
	}
	return k, strings.TrimSpace(v), true
}

// UpdateHeaders updates the provided headers collection with the provided updates.
// A name prefixed with "-" deletes the header, a name prefixed with "+" appends
// a value; any other name replaces the existing value.
func UpdateHeaders(headers http.Header, updates map[string]string) {
	if headers == nil || len(updates) == 0 {
		return
	}
	// sorted so that a "-Name" and a "Name" in the same map resolve the same way every time
	for _, k := range slices.Sorted(maps.Keys(updates)) {
		v := updates[k]
		if k == "" {
			continue
		}
		if k[0:1] == "-" {
			headers.Del(k[1:])
			continue
		}
		if k[0:1] == "+" {
			headers.Add(k[1:], v)
			continue
		}
		headers.Set(k, v)
	}
}

// LogString returns a compact string representation of the headers suitable for
// use with logging. Authorization values are masked.
func LogString(h http.Header) string {
	if len(h) == 0 {
		return "{}"
	}
	names := slices.Sorted(maps.Keys(h))
	sb := &strings.Builder{}
	sb.WriteString("{")
	sep := ""
	for _, k := range names {
		v := h[k]
		if len(v) > 0 {
			val := v[0]
			if k == NameAuthorization {
				val = "*****"
			}
			fmt.Fprintf(sb, "%s[%s:%s]", sep, k, val)
			sep = ","
		}
	}
	sb.WriteString("}")
	return sb.String()
}
