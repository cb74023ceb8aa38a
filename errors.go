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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrRouteNotFound indicates a route name that is not registered in
	// the collection.
	ErrRouteNotFound = errors.New("route not found")

	// ErrDuplicateRouteName indicates two routes added under the same name.
	// A name maps to exactly one route within a collection.
	ErrDuplicateRouteName = errors.New("duplicate route name")

	// ErrNilCollection indicates a Matcher or Generator constructed
	// without a route collection.
	ErrNilCollection = errors.New("route collection is nil")

	// ErrCacheNotConfigured indicates caching enabled without a cache
	// backend.
	ErrCacheNotConfigured = errors.New("cache enabled but no cache configured")

	// ErrNoCurrentRoute indicates GenerateFromCurrent called before any
	// request was matched and without a fallback route name.
	ErrNoCurrentRoute = errors.New("no current route")

	// ErrNoHost indicates an absolute URL requested but no host is
	// available from options, the route, or the current request.
	ErrNoHost = errors.New("cannot determine host for absolute URL")
)

// MissingArgumentsError reports a generation attempt that satisfied no
// pattern candidate. Required lists the minimal parameter set (the least
// specific candidate's placeholders); Received lists the argument names
// that were actually supplied.
type MissingArgumentsError struct {
	Route    string
	Required []string
	Received []string
}

// Error implements error.
func (e *MissingArgumentsError) Error() string {
	received := strings.Join(e.Received, ",")
	if received == "" {
		received = "none"
	}
	return fmt.Sprintf("route %q requires arguments [%s], received [%s]",
		e.Route, strings.Join(e.Required, ","), received)
}

// ArgumentMismatchError reports an argument value rejected by its
// placeholder's regex.
type ArgumentMismatchError struct {
	Route    string
	Argument string
	Value    string
	Pattern  string
}

// Error implements error.
func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("route %q argument %q: value %q does not match %q",
		e.Route, e.Argument, e.Value, e.Pattern)
}
