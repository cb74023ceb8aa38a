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
	"regexp"
	"strings"

	"rivaas.dev/routing/pattern"
)

// chunkSize caps the number of dynamic routes combined into one regex.
// Larger chunks mean fewer regex executions per lookup but longer
// expressions; 30 keeps both within reason for typical route sets.
const chunkSize = 30

var (
	// ErrDuplicateStaticRoute indicates two routes compiling to the same
	// method and exact path.
	ErrDuplicateStaticRoute = errors.New("duplicate static route")

	// ErrCapturingGroup indicates a placeholder regex containing capturing
	// groups, which would break group accounting in combined expressions.
	// Use non-capturing groups (?:...) instead.
	ErrCapturingGroup = errors.New("placeholder regex must not contain capturing groups")
)

// builderEntry is one dynamic candidate awaiting compilation.
type builderEntry struct {
	method string
	name   string
	cand   pattern.Candidate
}

// Builder accumulates route candidates and compiles them into a Table.
// Registration order determines match priority among dynamic routes.
type Builder struct {
	static  map[string]map[string]string
	dynamic []builderEntry
	err     error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{static: make(map[string]map[string]string)}
}

// Add registers every candidate of a parsed pattern for one method under
// the given route name. Errors are deferred and reported by Build, so call
// sites can register a whole collection without per-call checks.
func (b *Builder) Add(method, name string, candidates []pattern.Candidate) {
	if b.err != nil {
		return
	}
	for _, cand := range candidates {
		if cand.HasPlaceholders() {
			b.dynamic = append(b.dynamic, builderEntry{method: method, name: name, cand: cand})
			continue
		}
		path := cand.Static()
		if path == "" {
			path = "/"
		}
		paths := b.static[method]
		if paths == nil {
			paths = make(map[string]string)
			b.static[method] = paths
		}
		if prev, ok := paths[path]; ok && prev != name {
			b.err = fmt.Errorf("%w: %s %s registered by %q and %q", ErrDuplicateStaticRoute, method, path, prev, name)
			return
		}
		paths[path] = name
	}
}

// Build compiles the accumulated routes into a Table. Every placeholder
// expression is compiled once here so invalid regexes surface at build
// time rather than on the request path.
func (b *Builder) Build() (*Table, error) {
	if b.err != nil {
		return nil, b.err
	}

	t := &Table{
		static: b.static,
		chunks: make(map[string][]chunk),
	}

	byMethod := make(map[string][]builderEntry)
	var methods []string
	for _, e := range b.dynamic {
		if _, ok := byMethod[e.method]; !ok {
			methods = append(methods, e.method)
		}
		byMethod[e.method] = append(byMethod[e.method], e)
	}

	for _, method := range methods {
		entries := byMethod[method]
		for start := 0; start < len(entries); start += chunkSize {
			end := min(start+chunkSize, len(entries))
			c, err := compileChunk(entries[start:end])
			if err != nil {
				return nil, err
			}
			t.chunks[method] = append(t.chunks[method], c)
		}
	}
	return t, nil
}

// compileChunk joins a slice of dynamic candidates into one combined
// regex. Each route contributes its translated candidate plus an empty
// marker group; the marker's participation identifies the matched route.
func compileChunk(entries []builderEntry) (chunk, error) {
	var expr strings.Builder
	expr.WriteString("^(?:")

	c := chunk{routes: make([]chunkRoute, 0, len(entries))}
	group := 1
	for i, e := range entries {
		if i > 0 {
			expr.WriteByte('|')
		}
		cr := chunkRoute{name: e.name, groupStart: group}
		for _, seg := range e.cand {
			if !seg.IsPlaceholder() {
				expr.WriteString(regexp.QuoteMeta(seg.Literal))
				continue
			}
			sub, err := regexp.Compile(seg.Regex)
			if err != nil {
				return chunk{}, fmt.Errorf("route %q placeholder {%s}: %w", e.name, seg.Name, err)
			}
			if sub.NumSubexp() > 0 {
				return chunk{}, fmt.Errorf("%w: route %q placeholder {%s}", ErrCapturingGroup, e.name, seg.Name)
			}
			expr.WriteString("(")
			expr.WriteString(seg.Regex)
			expr.WriteString(")")
			cr.params = append(cr.params, seg.Name)
			group++
		}
		expr.WriteString("()")
		cr.marker = group
		group++
		c.routes = append(c.routes, cr)
	}
	expr.WriteString(")$")
	c.expr = expr.String()

	// Validate the combined expression as a whole; a placeholder regex can
	// be individually valid yet unbalanced in alternation context.
	if _, err := regexp.Compile(c.expr); err != nil {
		return chunk{}, fmt.Errorf("compiling dispatch chunk: %w", err)
	}
	return c, nil
}
