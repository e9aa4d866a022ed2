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

package level

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		in       string
		expected Level
		ok       bool
	}{
		{"debug", Debug, true},
		{"INFO", Info, true},
		{" warn ", Warn, true},
		{"error", Error, true},
		{"none", None, true},
		{"fatal", Info, false},
		{"verbose", Info, false},
	}
	for _, test := range tests {
		l, ok := Parse(test.in)
		if l != test.expected || ok != test.ok {
			t.Errorf("%s: expected %s/%t got %s/%t", test.in, test.expected, test.ok, l, ok)
		}
	}
}
