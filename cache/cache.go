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
	"context"
	"errors"

	"rivaas.dev/routing/dispatch"
)

// ErrMiss indicates the key has no entry. Callers distinguish a miss
// (rebuild the table) from a decode failure (fatal configuration error).
var ErrMiss = errors.New("cache miss")

// Cache stores compiled dispatch tables keyed by an arbitrary string.
//
// Get must return an error wrapping ErrMiss when the key is absent, and
// must propagate dispatch snapshot errors unwrapped enough for callers to
// detect them with errors.Is. Set overwrites existing entries.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Has reports whether an entry exists for key. It never decodes the
	// payload; a present-but-corrupt entry still reports true.
	Has(ctx context.Context, key string) bool

	// Get loads and decodes the table stored under key.
	Get(ctx context.Context, key string) (*dispatch.Table, error)

	// Set encodes and stores the table under key.
	Set(ctx context.Context, key string, table *dispatch.Table) error

	// Delete removes the entry for key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
}
