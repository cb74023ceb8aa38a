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

// Package routing binds a framework-agnostic route collection to a
// compiled-regex dispatch engine, and generates URLs back out of the same
// route definitions.
//
// The package has three moving parts:
//
//   - Matcher translates a Collection into the dispatch engine's input,
//     caches the compiled table if configured, and turns the engine's
//     three-way lookup result (found, not found, method not allowed) into
//     a Match tied back to the originating Route.
//   - Generator reverses a route pattern into a concrete path for a given
//     argument map, with validation against each placeholder's regex,
//     optional-segment selection, query-string spill-over, and absolute
//     URL assembly with scheme/host inheritance from the last match.
//   - Config maps the cache_enabled/cache_key/cache_url configuration
//     keys onto functional options for both.
//
// Routes are immutable values; modifiers return copies:
//
//	routes := routing.NewCollection()
//	routes.MustAdd(routing.Get("/users/{id:\\d+}").WithName("users.show"))
//
//	m := routing.MustNewMatcher(routes)
//	match, err := m.Match(req)
//
//	g := routing.MustNewGenerator(routes, routing.WithCurrent(m))
//	path, err := g.Generate("users.show", map[string]string{"id": "7"})
//
// Pattern syntax ({name}, {name:regex}, trailing [...] optionals) is
// documented in rivaas.dev/routing/pattern. The compiled table and its
// cache live in rivaas.dev/routing/dispatch and rivaas.dev/routing/cache.
//
// # Initialization and concurrency
//
// A Matcher primes itself exactly once, on the first Match call, behind a
// sync.Once barrier: it loads the dispatch table from cache when enabled
// and present, otherwise compiles it from the collection and writes it
// back. A malformed cache payload is a configuration error returned from
// Match; it is never retried. After priming, Matcher and Generator are
// safe for concurrent use. There is no automatic cache invalidation:
// deployments that cache the table must delete the entry when routes
// change.
package routing
