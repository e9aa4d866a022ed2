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

import "strconv"

// State enumerates the stages of the request pipeline. A request moves
// through the states in order and may exit early to assembly with a
// failure response.
type State int

const (
	// Received is the entry state
	Received = State(iota)
	// Rewritten follows rewrite rule evaluation
	Rewritten
	// HostResolved follows virtual host resolution
	HostResolved
	// RouteMatched follows route matching
	RouteMatched
	// AccessChecked follows the access control list
	AccessChecked
	// AuthChecked follows authentication
	AuthChecked
	// Served follows static resolution or the registered handler
	Served
	// Negotiated follows content negotiation
	Negotiated
	// Assembled is the terminal state
	Assembled
)

var stateNames = map[State]string{
	Received:      "received",
	Rewritten:     "rewritten",
	HostResolved:  "host_resolved",
	RouteMatched:  "route_matched",
	AccessChecked: "access_checked",
	AuthChecked:   "auth_checked",
	Served:        "served",
	Negotiated:    "negotiated",
	Assembled:     "assembled",
}

func (s State) String() string {
	if v, ok := stateNames[s]; ok {
		return v
	}
	return strconv.Itoa(int(s))
}
