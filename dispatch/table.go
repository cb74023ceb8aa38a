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
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// snapshotVersion is bumped whenever the snapshot layout changes.
// A cached snapshot with any other version is rejected at load time.
const snapshotVersion = 1

var (
	// ErrSnapshotCorrupt indicates a cache payload that does not decode to
	// the expected snapshot structure.
	ErrSnapshotCorrupt = errors.New("dispatch snapshot is corrupt")

	// ErrSnapshotVersion indicates a snapshot produced by an incompatible
	// table layout.
	ErrSnapshotVersion = errors.New("dispatch snapshot version mismatch")
)

// Table is a compiled route set: an exact-path map per method for static
// routes plus chunked combined regexes for dynamic routes. It is plain
// data; use NewDispatcher to resolve requests against it.
type Table struct {
	// static maps method -> exact path -> route name.
	static map[string]map[string]string

	// chunks maps method -> compiled regex chunks, in registration order.
	chunks map[string][]chunk
}

// chunk is one combined regex covering up to chunkSize dynamic routes.
type chunk struct {
	// expr is the combined anchored expression, e.g. ^(?:a(\d+)()|b([^/]+)())$.
	expr string

	// routes lists the chunk's routes in alternation order.
	routes []chunkRoute
}

// chunkRoute locates one route inside a chunk's combined expression.
type chunkRoute struct {
	name string

	// params are the placeholder names, in capture-group order.
	params []string

	// groupStart is the index of the route's first capture group within
	// the combined expression (1-based, as in regexp submatches).
	groupStart int

	// marker is the index of the route's empty marker group. The marker
	// participates in a match exactly when this route is the one matched.
	marker int
}

// tableSnapshot is the serialized form of a Table.
type tableSnapshot struct {
	Version int                          `msgpack:"version"`
	Static  map[string]map[string]string `msgpack:"static"`
	Chunks  map[string][]chunkSnapshot   `msgpack:"chunks"`
}

type chunkSnapshot struct {
	Expr   string          `msgpack:"expr"`
	Routes []routeSnapshot `msgpack:"routes"`
}

type routeSnapshot struct {
	Name       string   `msgpack:"name"`
	Params     []string `msgpack:"params"`
	GroupStart int      `msgpack:"group_start"`
	Marker     int      `msgpack:"marker"`
}

// MarshalBinary encodes the table as a versioned msgpack snapshot.
func (t *Table) MarshalBinary() ([]byte, error) {
	snap := tableSnapshot{
		Version: snapshotVersion,
		Static:  t.static,
		Chunks:  make(map[string][]chunkSnapshot, len(t.chunks)),
	}
	for method, chunks := range t.chunks {
		out := make([]chunkSnapshot, 0, len(chunks))
		for _, c := range chunks {
			cs := chunkSnapshot{Expr: c.expr, Routes: make([]routeSnapshot, 0, len(c.routes))}
			for _, r := range c.routes {
				cs.Routes = append(cs.Routes, routeSnapshot{
					Name:       r.name,
					Params:     r.params,
					GroupStart: r.groupStart,
					Marker:     r.marker,
				})
			}
			out = append(out, cs)
		}
		snap.Chunks[method] = out
	}
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("encoding dispatch snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalTable decodes a snapshot produced by MarshalBinary. It fails
// with ErrSnapshotCorrupt on undecodable payloads and ErrSnapshotVersion
// on layout mismatches; both are configuration errors for the caller.
func UnmarshalTable(data []byte) (*Table, error) {
	var snap tableSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSnapshotVersion, snap.Version, snapshotVersion)
	}

	t := &Table{
		static: snap.Static,
		chunks: make(map[string][]chunk, len(snap.Chunks)),
	}
	if t.static == nil {
		t.static = map[string]map[string]string{}
	}
	for method, chunks := range snap.Chunks {
		out := make([]chunk, 0, len(chunks))
		for _, cs := range chunks {
			c := chunk{expr: cs.Expr, routes: make([]chunkRoute, 0, len(cs.Routes))}
			for _, r := range cs.Routes {
				c.routes = append(c.routes, chunkRoute{
					name:       r.Name,
					params:     r.Params,
					groupStart: r.GroupStart,
					marker:     r.Marker,
				})
			}
			out = append(out, c)
		}
		t.chunks[method] = out
	}
	return t, nil
}

// Methods returns the HTTP methods the table has routes for.
func (t *Table) Methods() []string {
	seen := make(map[string]bool, len(t.static)+len(t.chunks))
	var methods []string
	for m := range t.static {
		if !seen[m] {
			seen[m] = true
			methods = append(methods, m)
		}
	}
	for m := range t.chunks {
		if !seen[m] {
			seen[m] = true
			methods = append(methods, m)
		}
	}
	return methods
}
