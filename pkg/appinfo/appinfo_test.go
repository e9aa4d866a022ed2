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

package appinfo

import (
	"strings"
	"testing"
)

func TestSet(t *testing.T) {
	n, v, b, g := Name, Version, BuildTime, GitCommitID
	defer Set(n, v, b, g)

	Set("kaserve-test", "1.2.3", "2026-01-01", "abc123")
	s := String()
	for _, want := range []string{"kaserve-test version: 1.2.3", "2026-01-01 abc123", "goVersion: go"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}
