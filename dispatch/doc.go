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

// Package dispatch compiles route patterns into a dispatch table and
// resolves (method, path) pairs against it.
//
// The table separates routes into two groups, mirroring the static/dynamic
// split used across rivaas routing:
//
//   - Static candidates (no placeholders) land in a per-method exact-path
//     map and resolve with a single map lookup.
//   - Dynamic candidates are compiled into combined regular expressions.
//     Routes are grouped into fixed-size chunks; each chunk's expressions
//     are joined by alternation with an empty marker group appended per
//     route, so one regex execution per chunk identifies both the matched
//     route and its captured placeholder values.
//
// A Table is plain data and serializes to a versioned msgpack snapshot, so
// compiled route sets can be cached across process starts. A Dispatcher
// compiles the chunk expressions once at construction and is then read-only
// and safe for concurrent use.
package dispatch
