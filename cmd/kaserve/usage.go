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

package main

import (
	"fmt"

	"github.com/kaserve/kaserve/pkg/appinfo"
)

const usageText = `
kaserve Usage:

 Print Version Info:
  kaserve -version

 Using a configuration file:
  kaserve -config /path/to/kaserve.yaml [-env-file .env] [-log-level debug|info|warn|error]
    [-listen-port 3000] [-metrics-port 8481]

 Serving a directory from the command line:
  kaserve -root ./public [-spa] [-cors] [-no-compression] [-no-cache]
    [-header "X-Served-By: kaserve"]

 Validating a configuration file:
  kaserve -config /path/to/kaserve.yaml -validate-config

------

 Single page application on port 8080:
   kaserve -root ./dist -spa -listen-port 8080

 Static site with CORS and a custom header, with debug logging:
   kaserve -root ./site -cors -header "X-Frame-Options: DENY" -log-level debug

------

kaserve listens on 127.0.0.1:3000 by default and loads /etc/kaserve/kaserve.yaml
when it exists. Command line flags override the configuration file.

Prometheus metrics are served at /metrics on port 8481 unless the metrics
listen_port is set to 0.
`

func version() string {
	return fmt.Sprintf("kaserve version: %s, buildInfo: %s %s, goVersion: %s",
		appinfo.Version, appinfo.BuildTime, appinfo.GitCommitID, appinfo.GoVersion)
}

func printVersion() {
	fmt.Println(version())
}

func printUsage() {
	fmt.Print(usageText)
}
