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
	"net/url"
	"sort"
	"strings"

	"rivaas.dev/routing/pattern"
)

// Generator builds URLs from named routes.
//
// Generation is the inverse of matching: placeholders are substituted
// from the argument map, optional pattern groups are included only as far
// as explicit arguments reach, and arguments that substitute no
// placeholder spill into the query string.
type Generator struct {
	routes    Collection
	encodeRaw bool
	current   CurrentRouteProvider
}

// NewGenerator creates a Generator over the given collection.
func NewGenerator(routes Collection, opts ...GeneratorOption) (*Generator, error) {
	if routes == nil {
		return nil, ErrNilCollection
	}
	g := &Generator{
		routes:    routes,
		encodeRaw: true,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// MustNewGenerator creates a Generator and panics on configuration errors.
func MustNewGenerator(routes Collection, opts ...GeneratorOption) *Generator {
	g, err := NewGenerator(routes, opts...)
	if err != nil {
		panic(fmt.Sprintf("routing.MustNewGenerator: %v", err))
	}
	return g
}

// GenerateOption adjusts a single generation call.
type GenerateOption func(*generateConfig)

type generateConfig struct {
	scheme    string
	schemeSet bool
	host      string
	query     url.Values
	fallback  string
	absolute  bool
}

// WithScheme sets the URL scheme for GenerateAbsolute. An explicit empty
// scheme produces a protocol-relative URL ("//host/path").
func WithScheme(scheme string) GenerateOption {
	return func(c *generateConfig) {
		c.scheme = scheme
		c.schemeSet = true
	}
}

// WithHost overrides the host for GenerateAbsolute, taking precedence
// over both the route's host pattern and the current request.
func WithHost(host string) GenerateOption {
	return func(c *generateConfig) {
		c.host = host
	}
}

// WithQuery appends explicit query parameters. They win over spilled-over
// arguments (and, in GenerateFromCurrent, over the current request's
// query) on name collisions.
func WithQuery(query url.Values) GenerateOption {
	return func(c *generateConfig) {
		c.query = query
	}
}

// WithFallback names the route GenerateFromCurrent generates when nothing
// has been matched yet.
func WithFallback(name string) GenerateOption {
	return func(c *generateConfig) {
		c.fallback = name
	}
}

// Generate builds the path for the named route.
//
// Arguments must cover every required placeholder, either directly or
// through the route's defaults; optional placeholders are only ever
// filled from explicit arguments. Values are validated against the
// placeholder patterns. Leftover arguments become query parameters,
// sorted by name.
func (g *Generator) Generate(name string, args map[string]string, opts ...GenerateOption) (string, error) {
	rt, err := g.route(name)
	if err != nil {
		return "", err
	}
	return g.generateURL(rt, args, applyGenerateOptions(opts))
}

// GenerateAbsolute builds an absolute URL for the named route.
//
// The host is taken from an explicit WithHost option, else from the
// route's host pattern (with placeholders substituted), else from the
// request recorded by the current-route provider. With none of those,
// ErrNoHost is returned. The scheme follows the same chain, defaulting to
// "http"; WithScheme("") yields a protocol-relative URL.
func (g *Generator) GenerateAbsolute(name string, args map[string]string, opts ...GenerateOption) (string, error) {
	rt, err := g.route(name)
	if err != nil {
		return "", err
	}
	cfg := applyGenerateOptions(opts)
	cfg.absolute = true
	return g.generateURL(rt, args, cfg)
}

// GenerateFromCurrent rebuilds the URL of the most recently matched
// route, with overrides layered over the matched parameters and the
// current request's query carried along. When nothing has matched yet it
// generates the WithFallback route instead, or echoes the current raw
// path; with neither available it returns ErrNoCurrentRoute.
func (g *Generator) GenerateFromCurrent(overrides map[string]string, opts ...GenerateOption) (string, error) {
	cfg := applyGenerateOptions(opts)

	var cur CurrentRoute
	if g.current != nil {
		cur = g.current.Current()
	}

	if cur.Route == nil {
		if cfg.fallback != "" {
			rt, err := g.route(cfg.fallback)
			if err != nil {
				return "", err
			}
			return g.generateURL(rt, overrides, cfg)
		}
		if cur.Request != nil {
			return rawRequestPath(cur.Request.URL, cfg.query), nil
		}
		return "", ErrNoCurrentRoute
	}

	args := make(map[string]string, len(cur.Params)+len(overrides))
	for k, v := range cur.Params {
		args[k] = v
	}
	for k, v := range overrides {
		args[k] = v
	}

	// Carry the active request's query, overridden by explicit parameters.
	merged := cur.Request.URL.Query()
	for k, vs := range cfg.query {
		merged[k] = vs
	}
	cfg.query = merged

	return g.generateURL(cur.Route, args, cfg)
}

func applyGenerateOptions(opts []GenerateOption) *generateConfig {
	cfg := &generateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (g *Generator) route(name string) (*Route, error) {
	rt, ok := g.routes.Route(name)
	if !ok {
		return nil, fmt.Errorf("routing: route %q: %w", name, ErrRouteNotFound)
	}
	return rt, nil
}

func (g *Generator) generateURL(rt *Route, args map[string]string, cfg *generateConfig) (string, error) {
	used := make(map[string]bool, len(args))

	path, err := g.buildPath(rt, args, used)
	if err != nil {
		return "", err
	}

	if !cfg.absolute {
		return appendQuery(path, args, used, cfg.query), nil
	}

	host := cfg.host
	if host == "" {
		host, err = g.buildHost(rt, args, used)
		if err != nil {
			return "", err
		}
	} else {
		// The route's host placeholders are still consumed, so their
		// arguments do not spill into the query string.
		g.consumeHostArgs(rt, used)
	}
	if host == "" {
		host = g.currentHost()
	}
	if host == "" {
		return "", fmt.Errorf("routing: route %q: %w", routeLabel(rt), ErrNoHost)
	}

	scheme := "http"
	switch {
	case cfg.schemeSet:
		scheme = cfg.scheme
	case cfg.host == "" && rt.Host() == "":
		// Host came from the current request; its scheme wins too.
		if s := g.currentScheme(); s != "" {
			scheme = s
		}
	}

	// A scheme-relative host value keeps the URL protocol-relative unless
	// a scheme was forced explicitly.
	if rel := strings.TrimPrefix(host, "//"); rel != host {
		host = rel
		if !cfg.schemeSet {
			scheme = ""
		}
	}

	prefix := "//" + host
	if scheme != "" {
		prefix = scheme + "://" + host
	}
	return prefix + appendQuery(path, args, used, cfg.query), nil
}

// buildPath expands the route pattern, picking the most specific optional
// variant that the explicit arguments can fill. Required placeholders may
// fall back to the route's defaults; optional ones never do.
func (g *Generator) buildPath(rt *Route, args map[string]string, used map[string]bool) (string, error) {
	candidates, err := pattern.Parse(rt.Pattern())
	if err != nil {
		return "", fmt.Errorf("routing: route %q: %w", routeLabel(rt), err)
	}

	required := make(map[string]bool)
	for _, name := range candidates[0].Placeholders() {
		required[name] = true
	}

	var chosen pattern.Candidate
	for i := len(candidates) - 1; i >= 0; i-- {
		if g.satisfiable(candidates[i], args, rt, required) {
			chosen = candidates[i]
			break
		}
	}
	if chosen == nil {
		return "", &MissingArgumentsError{
			Route:    routeLabel(rt),
			Required: sortedKeys(required),
			Received: sortedArgNames(args),
		}
	}

	var b strings.Builder
	for _, seg := range chosen {
		if !seg.IsPlaceholder() {
			b.WriteString(seg.Literal)
			continue
		}
		value, ok := args[seg.Name]
		if !ok {
			value, _ = rt.Default(seg.Name)
		}
		used[seg.Name] = true
		if err := g.checkValue(rt, seg, value); err != nil {
			return "", err
		}
		b.WriteString(g.encode(value))
	}

	path := b.String()
	if path == "" {
		path = "/"
	}
	return path, nil
}

// satisfiable reports whether every placeholder of the candidate has a
// value available under the fill policy.
func (g *Generator) satisfiable(cand pattern.Candidate, args map[string]string, rt *Route, required map[string]bool) bool {
	for _, name := range cand.Placeholders() {
		if _, ok := args[name]; ok {
			continue
		}
		if required[name] {
			if _, ok := rt.Default(name); ok {
				continue
			}
		}
		return false
	}
	return true
}

// consumeHostArgs marks the route's host placeholders as used without
// building the host, for calls where an explicit host takes precedence.
func (g *Generator) consumeHostArgs(rt *Route, used map[string]bool) {
	if rt.Host() == "" {
		return
	}
	candidates, err := pattern.Parse(rt.Host())
	if err != nil {
		return
	}
	for _, name := range candidates[len(candidates)-1].Placeholders() {
		used[name] = true
	}
}

// buildHost substitutes placeholders in the route's host pattern. Host
// placeholders are required; defaults may fill them.
func (g *Generator) buildHost(rt *Route, args map[string]string, used map[string]bool) (string, error) {
	hostPattern := rt.Host()
	if hostPattern == "" {
		return "", nil
	}

	candidates, err := pattern.Parse(hostPattern)
	if err != nil {
		return "", fmt.Errorf("routing: route %q host: %w", routeLabel(rt), err)
	}
	full := candidates[len(candidates)-1]

	var b strings.Builder
	for _, seg := range full {
		if !seg.IsPlaceholder() {
			b.WriteString(seg.Literal)
			continue
		}
		value, ok := args[seg.Name]
		if !ok {
			value, ok = rt.Default(seg.Name)
		}
		if !ok {
			return "", &MissingArgumentsError{
				Route:    routeLabel(rt),
				Required: full.Placeholders(),
				Received: sortedArgNames(args),
			}
		}
		used[seg.Name] = true
		if err := g.checkValue(rt, seg, value); err != nil {
			return "", err
		}
		b.WriteString(value)
	}
	return b.String(), nil
}

func (g *Generator) checkValue(rt *Route, seg pattern.Segment, value string) error {
	re, err := seg.Compile()
	if err != nil {
		return fmt.Errorf("routing: route %q placeholder %q: %w", routeLabel(rt), seg.Name, err)
	}
	if !re.MatchString(value) {
		return &ArgumentMismatchError{
			Route:    routeLabel(rt),
			Argument: seg.Name,
			Value:    value,
			Pattern:  seg.Regex,
		}
	}
	return nil
}

// encode percent-encodes a substituted value. Slashes inside values stay
// literal so a single argument can span several path segments.
func (g *Generator) encode(value string) string {
	escaped := url.PathEscape(value)
	if g.encodeRaw {
		return strings.ReplaceAll(escaped, "%2F", "/")
	}
	return escaped
}

func (g *Generator) currentHost() string {
	if g.current == nil {
		return ""
	}
	cur := g.current.Current()
	if cur.Request == nil {
		return ""
	}
	return cur.Request.Host
}

func (g *Generator) currentScheme() string {
	if g.current == nil {
		return ""
	}
	cur := g.current.Current()
	if cur.Request == nil {
		return ""
	}
	if cur.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// appendQuery attaches leftover arguments and explicit query parameters,
// sorted by name. Explicit parameters win on collision.
func appendQuery(path string, args map[string]string, used map[string]bool, query url.Values) string {
	q := url.Values{}
	for k, v := range args {
		if !used[k] {
			q.Set(k, v)
		}
	}
	for k, vs := range query {
		q[k] = vs
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// rawRequestPath echoes the request path with the merged query, the last
// resort of GenerateFromCurrent.
func rawRequestPath(u *url.URL, query url.Values) string {
	q := u.Query()
	for k, vs := range query {
		q[k] = vs
	}
	path := u.EscapedPath()
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func routeLabel(rt *Route) string {
	if rt.Name() != "" {
		return rt.Name()
	}
	return rt.Pattern()
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedArgNames(args map[string]string) []string {
	out := make([]string, 0, len(args))
	for k := range args {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
