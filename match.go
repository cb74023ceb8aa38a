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

package routing

import (
	"maps"
	"net/http"
	"slices"
)

// Match is the outcome of matching one request. A routing miss is not an
// error: a zero-route Match distinguishes a plain not-found from a
// method-not-allowed, which additionally carries the allowed method list.
type Match struct {
	route   *Route
	params  map[string]string
	allowed []string
}

// Matched reports whether a route was found for both path and method.
func (m *Match) Matched() bool { return m.route != nil }

// MethodNotAllowed reports whether the path matched but the method did
// not.
func (m *Match) MethodNotAllowed() bool { return m.route == nil && len(m.allowed) > 0 }

// Route returns the matched route, nil on a miss.
func (m *Match) Route() *Route { return m.route }

// Params returns the merged argument map: extracted placeholder values
// overlaid on the route's defaults (extracted values win). Nil on a miss.
func (m *Match) Params() map[string]string {
	if m.params == nil {
		return nil
	}
	return maps.Clone(m.params)
}

// Param returns one argument value, empty when absent.
func (m *Match) Param(name string) string { return m.params[name] }

// Allowed returns the methods that would have matched the path, sorted.
// Empty unless MethodNotAllowed.
func (m *Match) Allowed() []string { return slices.Clone(m.allowed) }

// CurrentRoute is the matcher's record of its most recent match, consulted
// by the Generator for absolute-URL host/scheme inheritance and for
// GenerateFromCurrent.
type CurrentRoute struct {
	// Route is the last matched route, nil when the last match missed.
	Route *Route

	// Params are the merged arguments of the last successful match.
	Params map[string]string

	// Request is the last request passed to Match, set even when the
	// match missed so the raw-path fallback still works.
	Request *http.Request
}

// CurrentRouteProvider exposes the current match state. *Matcher
// implements it; the Generator consumes it via WithCurrent.
type CurrentRouteProvider interface {
	Current() CurrentRoute
}
