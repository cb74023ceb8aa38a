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
	"strings"
)

// Middleware is a standard HTTP middleware. The routing layer carries each
// route's chain and hands it to the caller on a match; it never executes it.
type Middleware func(http.Handler) http.Handler

// Route is an immutable route definition: a pattern, the methods it
// answers to, an optional host constraint, default argument values, and a
// middleware chain. Modifier methods return copies, so a Route can be
// shared freely once constructed.
type Route struct {
	name       string
	methods    []string
	pattern    string
	host       string
	defaults   map[string]string
	middleware []Middleware
}

// NewRoute creates a route answering the given methods at pattern.
// Methods are upper-cased and deduplicated; order is preserved.
func NewRoute(methods []string, pattern string) *Route {
	r := &Route{pattern: pattern}
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" || slices.Contains(r.methods, m) {
			continue
		}
		r.methods = append(r.methods, m)
	}
	return r
}

// Get creates a GET route.
func Get(pattern string) *Route { return NewRoute([]string{http.MethodGet}, pattern) }

// Post creates a POST route.
func Post(pattern string) *Route { return NewRoute([]string{http.MethodPost}, pattern) }

// Put creates a PUT route.
func Put(pattern string) *Route { return NewRoute([]string{http.MethodPut}, pattern) }

// Patch creates a PATCH route.
func Patch(pattern string) *Route { return NewRoute([]string{http.MethodPatch}, pattern) }

// Delete creates a DELETE route.
func Delete(pattern string) *Route { return NewRoute([]string{http.MethodDelete}, pattern) }

// Options creates an OPTIONS route.
func Options(pattern string) *Route { return NewRoute([]string{http.MethodOptions}, pattern) }

// Head creates a HEAD route.
func Head(pattern string) *Route { return NewRoute([]string{http.MethodHead}, pattern) }

// Any creates a route answering all standard methods.
func Any(pattern string) *Route {
	return NewRoute([]string{
		http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
		http.MethodDelete, http.MethodHead, http.MethodOptions,
	}, pattern)
}

// clone returns a shallow copy with its own slices and maps.
func (r *Route) clone() *Route {
	c := &Route{
		name:    r.name,
		pattern: r.pattern,
		host:    r.host,
	}
	c.methods = slices.Clone(r.methods)
	c.middleware = slices.Clone(r.middleware)
	if r.defaults != nil {
		c.defaults = maps.Clone(r.defaults)
	}
	return c
}

// WithName returns a copy carrying the given name. Names are the keys for
// URL generation and must be unique within a collection.
func (r *Route) WithName(name string) *Route {
	c := r.clone()
	c.name = name
	return c
}

// WithHost returns a copy constrained to the given host pattern. The host
// may contain placeholders, e.g. "{user}.example.com".
func (r *Route) WithHost(host string) *Route {
	c := r.clone()
	c.host = host
	return c
}

// WithDefaults returns a copy with the given default argument values
// merged over any existing ones. Defaults fill placeholder values that a
// match did not extract, and satisfy required placeholders during
// generation.
func (r *Route) WithDefaults(defaults map[string]string) *Route {
	c := r.clone()
	if c.defaults == nil {
		c.defaults = make(map[string]string, len(defaults))
	}
	maps.Copy(c.defaults, defaults)
	return c
}

// WithDefault returns a copy with a single default argument value set.
func (r *Route) WithDefault(name, value string) *Route {
	return r.WithDefaults(map[string]string{name: value})
}

// WithMiddleware returns a copy with the given middleware appended.
func (r *Route) WithMiddleware(mw ...Middleware) *Route {
	c := r.clone()
	c.middleware = append(c.middleware, mw...)
	return c
}

// Name returns the route name, empty if unnamed.
func (r *Route) Name() string { return r.name }

// Pattern returns the path pattern.
func (r *Route) Pattern() string { return r.pattern }

// Host returns the host pattern, empty if unconstrained.
func (r *Route) Host() string { return r.host }

// Methods returns a copy of the route's method set.
func (r *Route) Methods() []string { return slices.Clone(r.methods) }

// HasMethod reports whether the route answers the given method.
func (r *Route) HasMethod(method string) bool {
	return slices.Contains(r.methods, strings.ToUpper(method))
}

// Defaults returns a copy of the default argument map.
func (r *Route) Defaults() map[string]string {
	if r.defaults == nil {
		return nil
	}
	return maps.Clone(r.defaults)
}

// Default returns the default value for name.
func (r *Route) Default(name string) (string, bool) {
	v, ok := r.defaults[name]
	return v, ok
}

// Middleware returns the route's middleware chain. Callers must not
// modify the returned slice.
func (r *Route) Middleware() []Middleware { return r.middleware }

// HasMiddleware reports whether the route carries middleware.
func (r *Route) HasMiddleware() bool { return len(r.middleware) > 0 }
