// Copyright 2026 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"rivaas.dev/routing/dispatch"
)

// ErrBaseURL indicates a Store constructed without a usable base location.
var ErrBaseURL = errors.New("cache store base URL is empty")

// suffix distinguishes dispatch snapshots from unrelated objects under the
// same base URL.
const suffix = ".dispatch"

// Store is a Cache persisting one object per key under a base URL, using
// viant/afs for storage so file://, mem:// and extension-registered cloud
// schemes all work. Writes are single uploads; atomicity is whatever the
// underlying scheme provides.
type Store struct {
	fs      afs.Service
	baseURL string
}

// NewStore returns a Store rooted at baseURL, e.g. "file:///var/cache/app"
// or "mem://localhost/routing". A plain path is treated as a file URL by
// afs. The location is not created eagerly; a missing or unwritable
// directory surfaces as a Set error.
func NewStore(baseURL string) (*Store, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrBaseURL
	}
	return &Store{fs: afs.New(), baseURL: baseURL}, nil
}

// objectURL maps a cache key to its object location.
func (s *Store) objectURL(key string) string {
	return url.Join(s.baseURL, key+suffix)
}

// Has reports whether an object exists for key.
func (s *Store) Has(ctx context.Context, key string) bool {
	ok, _ := s.fs.Exists(ctx, s.objectURL(key))
	return ok
}

// Get downloads and decodes the snapshot stored under key.
func (s *Store) Get(ctx context.Context, key string) (*dispatch.Table, error) {
	URL := s.objectURL(key)
	if ok, _ := s.fs.Exists(ctx, URL); !ok {
		return nil, fmt.Errorf("%w: %s", ErrMiss, key)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("reading cache entry %s: %w", URL, err)
	}
	return dispatch.UnmarshalTable(data)
}

// Set encodes the table and uploads it under key. A missing or unwritable
// target location fails here and is not retried.
func (s *Store) Set(ctx context.Context, key string, table *dispatch.Table) error {
	data, err := table.MarshalBinary()
	if err != nil {
		return err
	}
	URL := s.objectURL(key)
	if err := s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing cache entry %s: %w", URL, err)
	}
	return nil
}

// Delete removes the object for key, ignoring absent entries.
func (s *Store) Delete(ctx context.Context, key string) error {
	URL := s.objectURL(key)
	if ok, _ := s.fs.Exists(ctx, URL); !ok {
		return nil
	}
	if err := s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("deleting cache entry %s: %w", URL, err)
	}
	return nil
}

// Clear removes every snapshot object under the base URL.
func (s *Store) Clear(ctx context.Context) error {
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return fmt.Errorf("listing cache entries under %s: %w", s.baseURL, err)
	}
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), suffix) {
			continue
		}
		if err := s.fs.Delete(ctx, object.URL()); err != nil {
			return fmt.Errorf("deleting cache entry %s: %w", object.URL(), err)
		}
	}
	return nil
}

var _ Cache = (*Store)(nil)
