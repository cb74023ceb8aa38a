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

package dispatch

import (
	"fmt"
	"regexp"
	"sort"
)

// Status is the three-way outcome of a dispatch lookup.
type Status int

const (
	// NotFound means no route matches the path under any method.
	NotFound Status = iota

	// Found means a route matches the path and method.
	Found

	// MethodNotAllowed means the path matches at least one route, but none
	// registered for the requested method.
	MethodNotAllowed
)

// Result carries the outcome of Dispatch. Route and Params are set only
// for Found; Allowed only for MethodNotAllowed.
type Result struct {
	Status  Status
	Route   string
	Params  map[string]string
	Allowed []string
}

// Dispatcher resolves (method, path) pairs against a compiled Table.
// Chunk regexes are compiled once at construction; a Dispatcher is
// immutable afterward and safe for concurrent use.
type Dispatcher struct {
	table    *Table
	compiled map[string][]*regexp.Regexp // method -> regex per chunk
}

// NewDispatcher compiles the table's chunk expressions. A table decoded
// from a tampered or hand-built snapshot can fail here; the error should
// be treated like a corrupt snapshot.
func NewDispatcher(t *Table) (*Dispatcher, error) {
	d := &Dispatcher{
		table:    t,
		compiled: make(map[string][]*regexp.Regexp, len(t.chunks)),
	}
	for method, chunks := range t.chunks {
		res := make([]*regexp.Regexp, 0, len(chunks))
		for _, c := range chunks {
			re, err := regexp.Compile(c.expr)
			if err != nil {
				return nil, fmt.Errorf("%w: chunk regex: %v", ErrSnapshotCorrupt, err)
			}
			res = append(res, re)
		}
		d.compiled[method] = res
	}
	return d, nil
}

// Dispatch resolves the path for the given method. The path must already
// be percent-decoded; when host routing is in use the caller prepends the
// request host.
func (d *Dispatcher) Dispatch(method, path string) Result {
	if name, params, ok := d.lookup(method, path); ok {
		return Result{Status: Found, Route: name, Params: params}
	}

	// The path itself may still be routable under other methods.
	var allowed []string
	for _, m := range d.table.Methods() {
		if m == method {
			continue
		}
		if _, _, ok := d.lookup(m, path); ok {
			allowed = append(allowed, m)
		}
	}
	if len(allowed) == 0 {
		return Result{Status: NotFound}
	}
	sort.Strings(allowed)
	return Result{Status: MethodNotAllowed, Allowed: allowed}
}

// lookup tries the static table first, then each chunk in order.
func (d *Dispatcher) lookup(method, path string) (string, map[string]string, bool) {
	if name, ok := d.table.static[method][path]; ok {
		return name, nil, true
	}

	chunks := d.table.chunks[method]
	for i, re := range d.compiled[method] {
		idx := re.FindStringSubmatchIndex(path)
		if idx == nil {
			continue
		}
		for _, cr := range chunks[i].routes {
			// The marker group participates only for the matched alternative.
			if idx[2*cr.marker] < 0 {
				continue
			}
			params := make(map[string]string, len(cr.params))
			for j, name := range cr.params {
				g := cr.groupStart + j
				if idx[2*g] >= 0 {
					params[name] = path[idx[2*g]:idx[2*g+1]]
				}
			}
			return cr.name, params, true
		}
	}
	return "", nil, false
}
