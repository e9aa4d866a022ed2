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

package dispatch

import (
	"fmt"
	"net/http"

	"github.com/kaserve/kaserve/pkg/appinfo"
	"github.com/kaserve/kaserve/pkg/headers"
)

// Names of the handlers registered on every Dispatcher
const (
	PingHandlerName   = "ping"
	HealthHandlerName = "health"
)

// PingHandler responds to an HTTP Request with 200 OK and "pong"
func PingHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headers.NameContentType, headers.ValueTextPlain)
		w.Header().Set(headers.NameCacheControl, headers.ValueNoCache)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})
}

// HealthHandler reports the application name, version and the number of
// configured virtual hosts
func (d *Dispatcher) HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headers.NameContentType, headers.ValueTextPlain)
		w.Header().Set(headers.NameCacheControl, headers.ValueNoCache)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "status: ok\nname: %s\nversion: %s\nvirtual_hosts: %d\n",
			appinfo.Name, appinfo.Version, len(d.router.Hosts()))
	})
}
