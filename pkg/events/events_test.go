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

package events

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kaserve/kaserve/pkg/observability/logging"
	"github.com/kaserve/kaserve/pkg/observability/logging/level"
)

func TestEventString(t *testing.T) {
	if ServerReady.String() != "server_ready" {
		t.Errorf("expected %s got %s", "server_ready", ServerReady.String())
	}
	if Event(99).String() != "99" {
		t.Errorf("expected %s got %s", "99", Event(99).String())
	}
}

func TestBusOrder(t *testing.T) {
	var order []string
	b := NewBus(ListenerFunc(func(e Event, _ Detail) {
		order = append(order, "first:"+e.String())
	}))
	b.Register(ListenerFunc(func(e Event, _ Detail) {
		order = append(order, "second:"+e.String())
	}))
	b.Register(nil)
	if b.Len() != 2 {
		t.Errorf("expected %d got %d", 2, b.Len())
	}
	b.Emit(ServerStarting, Detail{})
	b.Emit(ServerReady, Detail{})
	expected := "first:server_starting,second:server_starting,first:server_ready,second:server_ready"
	if v := strings.Join(order, ","); v != expected {
		t.Errorf("expected %s got %s", expected, v)
	}
}

func TestNilBus(t *testing.T) {
	var b *Bus
	b.Emit(ServerStarting, Detail{})
	b.Register(ListenerFunc(func(Event, Detail) {}))
	if b.Len() != 0 {
		t.Error("expected empty bus")
	}
}

func TestLogListener(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.StreamLogger(buf, level.Debug)
	b := NewBus(LogListener(logger))
	r := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	b.Emit(ResponseSent, Detail{Request: r, Status: http.StatusOK, RemoteAddr: "192.0.2.1:1234"})
	out := buf.String()
	for _, s := range []string{"event=response_sent", "path=/index.html", "status=200",
		"level=debug"} {
		if !strings.Contains(out, s) {
			t.Errorf("expected %s in %s", s, out)
		}
	}
}
