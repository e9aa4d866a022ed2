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
	"html"
	"net/url"
	"os"
	"sort"
	"strings"
)

// ListingMIME is the MIME type of generated directory listings
const ListingMIME = "text/html"

const listingStyle = `<style>
body { font-family: Arial, sans-serif; margin: 20px; }
h1 { border-bottom: 1px solid #ccc; padding-bottom: 10px; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 8px; }
tr:nth-child(even) { background-color: #f2f2f2; }
a { text-decoration: none; }
a:hover { text-decoration: underline; }
</style>
`

// ListingEntry is one row of a directory listing
type ListingEntry struct {
	Name  string
	URL   string
	IsDir bool
}

// Entries reads the directory and returns its entries, directories first and
// then files, each group sorted by name. Each URL is the request path with
// the entry name appended, plus a trailing slash for directories.
func Entries(dir, reqPath string) ([]ListingEntry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	base := strings.TrimRight(reqPath, "/") + "/"
	out := make([]ListingEntry, 0, len(des))
	for _, de := range des {
		isDir := de.IsDir()
		if !isDir && de.Type()&os.ModeSymlink != 0 {
			if fi, err := os.Stat(dir + string(os.PathSeparator) + de.Name()); err == nil {
				isDir = fi.IsDir()
			}
		}
		u := base + de.Name()
		if isDir {
			u += "/"
		}
		out = append(out, ListingEntry{Name: de.Name(), URL: u, IsDir: isDir})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDir != out[j].IsDir {
			return out[i].IsDir
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// RenderListing returns the HTML document listing the entries. A parent
// link is included unless reqPath is the root.
func RenderListing(reqPath string, entries []ListingEntry) []byte {
	title := html.EscapeString(reqPath)
	sb := &strings.Builder{}
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<title>Directory listing for " + title + "</title>\n")
	sb.WriteString(listingStyle)
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString("<h1>Directory listing for " + title + "</h1>\n")
	sb.WriteString("<table>\n<tr><th>Name</th><th>Type</th></tr>\n")
	if reqPath != "/" {
		sb.WriteString(`<tr><td><a href="..">..</a></td><td>Parent Directory</td></tr>` + "\n")
	}
	for _, e := range entries {
		kind := "File"
		if e.IsDir {
			kind = "Directory"
		}
		sb.WriteString(`<tr><td><a href="` + html.EscapeString((&url.URL{Path: e.URL}).EscapedPath()) + `">` +
			html.EscapeString(e.Name) + "</a></td><td>" + kind + "</td></tr>\n")
	}
	sb.WriteString("</table>\n</body>\n</html>")
	return []byte(sb.String())
}
