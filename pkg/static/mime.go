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

package static

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/kaserve/kaserve/pkg/headers"
)

// builtinMimeTypes is consulted before the platform's MIME database so that
// detection does not vary between hosts
var builtinMimeTypes = map[string]string{
	"7z":    "application/x-7z-compressed",
	"atom":  "application/atom+xml",
	"avif":  "image/avif",
	"bin":   "application/octet-stream",
	"bmp":   "image/x-ms-bmp",
	"css":   "text/css",
	"csv":   "text/csv",
	"doc":   "application/msword",
	"eot":   "application/vnd.ms-fontobject",
	"gif":   "image/gif",
	"htm":   "text/html",
	"html":  "text/html",
	"ico":   "image/x-icon",
	"jar":   "application/java-archive",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"js":    "application/javascript",
	"json":  "application/json",
	"map":   "application/json",
	"md":    "text/markdown",
	"mjs":   "application/javascript",
	"mp3":   "audio/mpeg",
	"mp4":   "video/mp4",
	"otf":   "font/otf",
	"pdf":   "application/pdf",
	"png":   "image/png",
	"rss":   "application/rss+xml",
	"svg":   "image/svg+xml",
	"ttf":   "font/ttf",
	"txt":   "text/plain",
	"wasm":  "application/wasm",
	"webm":  "video/webm",
	"webp":  "image/webp",
	"woff":  "font/woff",
	"woff2": "font/woff2",
	"xml":   "application/xml",
	"zip":   "application/zip",
}

// DetectMIME returns the MIME type for the file name's extension. Unknown
// extensions are application/octet-stream.
func DetectMIME(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		return headers.ValueOctetStream
	}
	if t, ok := builtinMimeTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension("." + ext); t != "" {
		return t
	}
	return headers.ValueOctetStream
}
