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

package response

import (
	"fmt"
	"html"
	"net/http"

	"github.com/kaserve/kaserve/pkg/headers"
)

// Fixed failure bodies
const (
	NotFoundBody         = "<h1>404 Not Found</h1><p>The requested resource was not found on this server.</p>"
	ListingDisabledBody  = "<h1>403 Forbidden</h1><p>Directory listing is disabled.</p>"
	NotImplementedBody   = "<h1>501 Not Implemented</h1><p>No handler is registered for this route.</p>"
	InternalErrorMessage = "An internal error occurred."
)

// Redirect returns a redirect Response to location
func Redirect(status int, location string) *Response {
	return &Response{
		Status:  status,
		Headers: map[string]string{headers.NameLocation: location},
	}
}

// NotFound returns the 404 Response
func NotFound() *Response {
	return htmlError(http.StatusNotFound, NotFoundBody)
}

// ListingDisabled returns the 403 Response for a directory without a default
// file when listing is off
func ListingDisabled() *Response {
	return htmlError(http.StatusForbidden, ListingDisabledBody)
}

// NotImplemented returns the 501 Response for a route whose handler kind has
// no registered handler
func NotImplemented() *Response {
	return htmlError(http.StatusNotImplemented, NotImplementedBody)
}

// InternalError returns the 500 Response. The error text is only included
// when expose is true.
func InternalError(err error, expose bool) *Response {
	msg := InternalErrorMessage
	if expose && err != nil {
		msg = html.EscapeString(err.Error())
	}
	return htmlError(http.StatusInternalServerError,
		fmt.Sprintf("<h1>500 Internal Server Error</h1><p>%s</p>", msg))
}

// PlainError returns a failure Response with a plain text body, used for the
// access denial and authentication challenge texts
func PlainError(status int, body string, hdrs map[string]string) *Response {
	return &Response{
		Status:      status,
		Body:        []byte(body),
		ContentType: headers.ValueTextPlain,
		Headers:     hdrs,
		IsError:     true,
	}
}

func htmlError(status int, body string) *Response {
	return &Response{
		Status:      status,
		Body:        []byte(body),
		ContentType: headers.ValueTextHTML,
		IsError:     true,
	}
}
