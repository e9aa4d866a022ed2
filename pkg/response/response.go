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

// Package response assembles the status, headers and body of a response and
// writes them to the client
package response

import (
	"maps"
	"net/http"
	"strconv"
	"time"

	"github.com/kaserve/kaserve/pkg/headers"
)

// Response is a fully decided response awaiting assembly. It is owned by the
// request that built it.
type Response struct {
	Status          int
	Body            []byte
	ContentType     string
	ContentEncoding string
	// Cacheable attaches Cache-Control and, when ModifiedAt is set, Last-Modified
	Cacheable  bool
	ModifiedAt time.Time
	// Headers are response-specific headers such as Location or WWW-Authenticate
	Headers map[string]string
	// IsError marks a failure response. Failure responses only receive the
	// CORS origin header and never receive custom headers.
	IsError bool
}

// Assembler writes Responses using the process-wide header policy. It is
// read-only once constructed and safe for concurrent use.
type Assembler struct {
	CORS    bool
	Headers map[string]string
}

// New returns a new Assembler. The custom headers are copied.
func New(cors bool, custom map[string]string) *Assembler {
	return &Assembler{CORS: cors, Headers: maps.Clone(custom)}
}

// Build applies the header passes to h in their fixed order: content type,
// content encoding, cache headers, response-specific headers, CORS headers
// and finally the custom headers, which override any earlier value.
func (a *Assembler) Build(h http.Header, resp *Response) {
	if resp.ContentType != "" {
		h.Set(headers.NameContentType, resp.ContentType)
	}
	if resp.ContentEncoding != "" {
		h.Set(headers.NameContentEncoding, resp.ContentEncoding)
	}
	if resp.Cacheable && !resp.IsError {
		h.Set(headers.NameCacheControl, headers.ValuePublicMaxAge)
		if !resp.ModifiedAt.IsZero() {
			h.Set(headers.NameLastModified, resp.ModifiedAt.UTC().Format(http.TimeFormat))
		}
	}
	for k, v := range resp.Headers {
		h.Set(k, v)
	}
	if a == nil {
		return
	}
	if a.CORS {
		h.Set(headers.NameAllowOrigin, headers.ValueAny)
		if !resp.IsError {
			h.Set(headers.NameAllowMethods, headers.ValueAllowedMethods)
			h.Set(headers.NameAllowHeaders, headers.ValueAny)
		}
	}
	if !resp.IsError {
		headers.UpdateHeaders(h, a.Headers)
	}
}

// Write assembles the response onto w and returns the number of body bytes
// written
func (a *Assembler) Write(w http.ResponseWriter, resp *Response) (int, error) {
	h := w.Header()
	a.Build(h, resp)
	h.Set(headers.NameContentLength, strconv.Itoa(len(resp.Body)))
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(resp.Body) == 0 {
		return 0, nil
	}
	return w.Write(resp.Body)
}
