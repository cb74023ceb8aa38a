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

// Package cache persists compiled dispatch tables between process starts.
//
// Recompiling a route set's regex dispatch table on every boot is wasted
// work for static route sets. A Cache trades one read of a serialized
// snapshot for that recompilation. There is no automatic invalidation:
// when routes change in a cached environment, the entry must be deleted
// out of band (Delete/Clear, or removing the backing object).
//
// Two backends are provided: Memory for tests and single-process reuse,
// and Store, which keeps one object per key under a viant/afs base URL
// (file://, mem://, or any scheme an afs extension registers).
//
// Failures follow the adapter's configuration-error rules: a missing key
// is ErrMiss, an undecodable or version-mismatched payload propagates the
// dispatch snapshot error, and an unwritable target fails Set immediately.
// Nothing is retried.
package cache
