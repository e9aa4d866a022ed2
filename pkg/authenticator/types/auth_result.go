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

package types

type AuthResult struct {
	Status       AuthResultStatus
	StatusDetail string
	Username     string
}

type AuthResultStatus int

const (
	AuthUnknown AuthResultStatus = iota
	AuthSuccess
	AuthFailed
	AuthMissing
)

func (s AuthResultStatus) String() string {
	switch s {
	case AuthSuccess:
		return "success"
	case AuthFailed:
		return "failed"
	case AuthMissing:
		return "missing"
	}
	return "unknown"
}
