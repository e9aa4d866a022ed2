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

// Package static resolves request paths to files under a document root and
// reads them into memory along with their MIME type and modification time
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	kerr "github.com/kaserve/kaserve/pkg/errors"
)

// DefaultFile is the default file served for directory requests
const DefaultFile = "index.html"

// SPAEntry is the document served by single-page application fallback
const SPAEntry = "index.html"

// FileResponse is the content and metadata of a resolved path. It is built
// per request and never shared.
type FileResponse struct {
	Content []byte
	MIME    string
	// ModifiedAt is the zero Time when the modification time is unavailable
	ModifiedAt time.Time
	// Path is the filesystem path that was read, or the directory listed
	Path string
	// IsListing is true for generated directory listings
	IsListing bool
	// IsFallback is true when the SPA entry document was served in place of
	// a missing path
	IsFallback bool
}

// Service resolves and reads static files. It is read-only once constructed
// and safe for concurrent use; every call reads the filesystem.
type Service struct {
	DefaultFile      string
	DirectoryListing bool
	SPA              bool
	// Fallback, when set, replaces the SPA flag in deciding whether a
	// missing path is answered with the SPA entry document
	Fallback FallbackDecider
}

// FallbackDecider decides whether a missing path falls back to the SPA
// entry document
type FallbackDecider interface {
	ShouldFallback(exists bool) bool
}

func (s *Service) shouldFallback() bool {
	if s.Fallback != nil {
		return s.Fallback.ShouldFallback(false)
	}
	return s.SPA
}

// New returns a new Service
func New(defaultFile string, listing, spa bool) *Service {
	if defaultFile == "" {
		defaultFile = DefaultFile
	}
	return &Service{DefaultFile: defaultFile, DirectoryListing: listing, SPA: spa}
}

// CleanPath strips the leading slash from the request path and drops every
// empty, "." and ".." segment. The result is a slash-separated relative path
// that cannot climb above the root it is joined to.
func CleanPath(reqPath string) string {
	segs := strings.Split(reqPath, "/")
	out := segs[:0]
	for _, s := range segs {
		switch s {
		case "", ".", "..":
			continue
		}
		out = append(out, s)
	}
	return strings.Join(out, "/")
}

// ResolvePath joins the cleaned request path onto the root
func ResolvePath(root, reqPath string) string {
	return filepath.Join(root, filepath.FromSlash(CleanPath(reqPath)))
}

// Resolve maps the request path onto root and reads the result. Directories
// are served by their default file, then by a generated listing when
// enabled; otherwise ErrDirectoryListingDisabled is returned. Missing paths
// fall back to the SPA entry document when enabled, and otherwise return
// ErrNotFound. Any other filesystem failure is returned as is.
func (s *Service) Resolve(root, reqPath string) (*FileResponse, error) {
	full := ResolvePath(root, reqPath)
	fi, err := os.Stat(full)
	if err != nil {
		if !isNotExist(err) {
			return nil, err
		}
		if !s.shouldFallback() {
			return nil, fmt.Errorf("%w: %s", kerr.ErrNotFound, reqPath)
		}
		return s.fallback(root, reqPath)
	}
	if !fi.IsDir() {
		return readFile(full)
	}
	df := filepath.Join(full, s.DefaultFile)
	if dfi, err := os.Stat(df); err == nil && !dfi.IsDir() {
		return readFile(df)
	} else if err != nil && !isNotExist(err) {
		return nil, err
	}
	if !s.DirectoryListing {
		return nil, fmt.Errorf("%w: %s", kerr.ErrDirectoryListingDisabled, reqPath)
	}
	entries, err := Entries(full, reqPath)
	if err != nil {
		return nil, err
	}
	return &FileResponse{
		Content:    RenderListing(reqPath, entries),
		MIME:       ListingMIME,
		Path:       full,
		IsListing:  true,
		ModifiedAt: fi.ModTime(),
	}, nil
}

func (s *Service) fallback(root, reqPath string) (*FileResponse, error) {
	fr, err := readFile(filepath.Join(root, SPAEntry))
	if err != nil {
		if isNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerr.ErrNotFound, reqPath)
		}
		return nil, err
	}
	fr.IsFallback = true
	return fr, nil
}

// isNotExist treats a path running through a regular file as missing
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}

// readFile loads the whole file. A metadata failure only omits ModifiedAt.
func readFile(path string) (*FileResponse, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fr := &FileResponse{Content: b, MIME: DetectMIME(path), Path: path}
	if fi, err := os.Stat(path); err == nil {
		fr.ModifiedAt = fi.ModTime()
	}
	return fr, nil
}
