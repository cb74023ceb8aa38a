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
	"fmt"
	"sync"
)

// Collection is the seam between route ownership and this adapter. The
// Matcher and Generator only ever read routes through it, so any storage
// (in-memory, config-driven, framework-owned) can sit behind it.
type Collection interface {
	// Route returns the route registered under name.
	Route(name string) (*Route, bool)

	// Routes returns all routes in registration order.
	Routes() []*Route
}

// RouteCollection is the in-memory Collection. The zero value is not
// usable; call NewCollection.
type RouteCollection struct {
	mu     sync.RWMutex
	routes []*Route
	byName map[string]*Route
}

// NewCollection returns an empty RouteCollection.
func NewCollection() *RouteCollection {
	return &RouteCollection{byName: make(map[string]*Route)}
}

// Add registers a route. A non-empty name must be unique within the
// collection; a duplicate returns ErrDuplicateRouteName wrapped with the
// offending name.
func (c *RouteCollection) Add(r *Route) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if name := r.Name(); name != "" {
		if _, exists := c.byName[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateRouteName, name)
		}
		c.byName[name] = r
	}
	c.routes = append(c.routes, r)
	return nil
}

// MustAdd registers routes, panicking on the first error. Intended for
// static route tables wired at startup.
func (c *RouteCollection) MustAdd(routes ...*Route) *RouteCollection {
	for _, r := range routes {
		if err := c.Add(r); err != nil {
			panic(fmt.Sprintf("routing: %v", err))
		}
	}
	return c
}

// Route returns the route registered under name.
func (c *RouteCollection) Route(name string) (*Route, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.byName[name]
	return r, ok
}

// Routes returns all routes in registration order.
func (c *RouteCollection) Routes() []*Route {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Route, len(c.routes))
	copy(out, c.routes)
	return out
}

// Len returns the number of registered routes.
func (c *RouteCollection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.routes)
}

var _ Collection = (*RouteCollection)(nil)
