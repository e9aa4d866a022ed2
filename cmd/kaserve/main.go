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

// Package main is the main package for the kaserve application
package main

import (
	"os"

	"github.com/kaserve/kaserve/pkg/appinfo"
)

var (
	applicationGitCommitID string
	applicationBuildTime   string
)

const (
	applicationName    = "kaserve"
	applicationVersion = "1.0.0"
)

func main() {
	appinfo.Set(applicationName, applicationVersion, applicationBuildTime,
		applicationGitCommitID)
	os.Exit(run(os.Args[1:], notifyStop()))
}
