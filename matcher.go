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
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/routing/cache"
	"rivaas.dev/routing/dispatch"
	"rivaas.dev/routing/pattern"
)

// hostParam is the reserved placeholder used internally to match any host
// for routes without a host constraint when host routing is active. It is
// stripped from match results.
const hostParam = "_host"

// defaultCacheKey is used when caching is enabled without an explicit key.
const defaultCacheKey = "routing.dispatch"

// Matcher matches HTTP requests against a route collection through the
// dispatch engine.
//
// The matcher primes itself on the first Match call: it translates every
// route into the engine's input format (or loads the compiled table from
// cache) exactly once per instance, behind a sync.Once barrier. After a
// successful or failed priming the outcome is sticky; a priming error is
// returned from every subsequent Match.
type Matcher struct {
	routes   Collection
	cache    cache.Cache
	cacheKey string
	autoHead bool

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics

	primeOnce sync.Once
	primeErr  error

	dispatcher  *dispatch.Dispatcher
	routesByID  map[string]*Route
	hostRouting bool

	mu      sync.RWMutex
	current CurrentRoute
}

// NewMatcher creates a Matcher over the given collection.
//
// Returns an error on invalid configuration (nil collection, caching
// enabled without a backend). Route patterns are validated lazily during
// priming, because the collection may still be populated after
// construction.
func NewMatcher(routes Collection, opts ...MatcherOption) (*Matcher, error) {
	if routes == nil {
		return nil, ErrNilCollection
	}
	m := &Matcher{
		routes:   routes,
		cacheKey: defaultCacheKey,
		autoHead: true,
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// MustNewMatcher creates a Matcher and panics on configuration errors.
func MustNewMatcher(routes Collection, opts ...MatcherOption) *Matcher {
	m, err := NewMatcher(routes, opts...)
	if err != nil {
		panic(fmt.Sprintf("routing.MustNewMatcher: %v", err))
	}
	return m
}

// Match resolves the request to a Match.
//
// The returned error is reserved for configuration failures (pattern
// compilation, cache decode); a routing miss is a non-error Match. On
// success the route and request are recorded as current state for
// absolute-URL generation.
func (m *Matcher) Match(req *http.Request) (*Match, error) {
	ctx := req.Context()
	if m.tracer != nil {
		var span trace.Span
		ctx, span = m.tracer.Start(ctx, "routing.match", trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.URL.Path),
		))
		defer span.End()
	}

	if err := m.prime(ctx); err != nil {
		return nil, err
	}

	path := decodePath(req.URL)
	key := path
	if m.hostRouting {
		key = requestHost(req) + path
	}

	res := m.dispatcher.Dispatch(req.Method, key)
	if res.Status != dispatch.Found && m.autoHead && req.Method == http.MethodHead {
		// A HEAD request may be served by a GET route.
		if retry := m.dispatcher.Dispatch(http.MethodGet, key); retry.Status == dispatch.Found {
			res = retry
		}
	}

	match, err := m.translate(req, res)
	if err != nil {
		return nil, err
	}

	m.record(req, match)
	m.observe(match)
	return match, nil
}

// translate maps the engine's three-way result back onto the collection.
func (m *Matcher) translate(req *http.Request, res dispatch.Result) (*Match, error) {
	switch res.Status {
	case dispatch.NotFound:
		return &Match{}, nil

	case dispatch.MethodNotAllowed:
		allowed := res.Allowed
		if m.autoHead && slices.Contains(allowed, http.MethodGet) && !slices.Contains(allowed, http.MethodHead) {
			allowed = append(allowed, http.MethodHead)
			slices.Sort(allowed)
		}
		return &Match{allowed: allowed}, nil

	default: // dispatch.Found
		rt, ok := m.routesByID[res.Route]
		if !ok {
			// The collection changed after priming; the identifier no
			// longer resolves. Treat as a plain miss.
			m.logger.Warn("matched route identifier not in collection", "route", res.Route)
			return &Match{}, nil
		}
		if !m.methodDeclared(rt, req.Method) {
			// Defensive re-check: the engine's answer must agree with the
			// route definition.
			return &Match{allowed: rt.Methods()}, nil
		}

		params := make(map[string]string, len(res.Params)+len(rt.defaults))
		for k, v := range rt.defaults {
			params[k] = v
		}
		for k, v := range res.Params {
			if k == hostParam {
				continue
			}
			params[k] = v
		}
		return &Match{route: rt, params: params}, nil
	}
}

// methodDeclared applies the auto-HEAD policy on top of the route's
// declared method set.
func (m *Matcher) methodDeclared(rt *Route, method string) bool {
	if rt.HasMethod(method) {
		return true
	}
	return m.autoHead && method == http.MethodHead && rt.HasMethod(http.MethodGet)
}

// record replaces the current state. A miss clears the route and params
// so no stale pairing with the new request survives.
func (m *Matcher) record(req *http.Request, match *Match) {
	m.mu.Lock()
	m.current.Request = req
	m.current.Route = match.route
	m.current.Params = match.Params()
	m.mu.Unlock()
}

// observe feeds the outcome counter, when metrics are configured.
func (m *Matcher) observe(match *Match) {
	if m.metrics == nil {
		return
	}
	switch {
	case match.Matched():
		m.metrics.matchTotal.WithLabelValues(outcomeFound).Inc()
	case match.MethodNotAllowed():
		m.metrics.matchTotal.WithLabelValues(outcomeMethodNotAllowed).Inc()
	default:
		m.metrics.matchTotal.WithLabelValues(outcomeNotFound).Inc()
	}
}

// Current returns the most recent match state. The Route is nil when the
// last match missed; the Request is nil before the first Match call.
func (m *Matcher) Current() CurrentRoute {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Prime forces initialization ahead of the first request, e.g. during
// deployment warm-up so the cache write happens under an external lock.
func (m *Matcher) Prime(ctx context.Context) error {
	return m.prime(ctx)
}

// prime runs initialization exactly once and memoizes the outcome.
func (m *Matcher) prime(ctx context.Context) error {
	m.primeOnce.Do(func() {
		m.primeErr = m.initialize(ctx)
	})
	return m.primeErr
}

// initialize indexes the collection, then obtains the dispatch table from
// cache or by compiling the routes, writing a fresh table back to the
// cache when enabled.
func (m *Matcher) initialize(ctx context.Context) error {
	all := m.routes.Routes()

	m.routesByID = make(map[string]*Route, len(all))
	for i, rt := range all {
		m.routesByID[routeID(rt, i)] = rt
		if rt.Host() != "" {
			m.hostRouting = true
		}
	}

	table, err := m.loadOrBuild(ctx, all)
	if err != nil {
		return err
	}

	d, err := dispatch.NewDispatcher(table)
	if err != nil {
		return fmt.Errorf("routing: %w", err)
	}
	m.dispatcher = d
	return nil
}

// loadOrBuild returns the cached table when present and valid; a present
// but undecodable entry is a fatal configuration error, never silently
// rebuilt.
func (m *Matcher) loadOrBuild(ctx context.Context, all []*Route) (*dispatch.Table, error) {
	cached := m.cache != nil

	if cached && m.cache.Has(ctx, m.cacheKey) {
		table, err := m.cache.Get(ctx, m.cacheKey)
		if err != nil {
			return nil, fmt.Errorf("routing: dispatch cache %q: %w", m.cacheKey, err)
		}
		m.logger.Debug("dispatch table loaded from cache", "key", m.cacheKey)
		if m.metrics != nil {
			m.metrics.primeTotal.WithLabelValues(primeCache).Inc()
		}
		return table, nil
	}

	table, err := m.build(all)
	if err != nil {
		return nil, err
	}
	if m.metrics != nil {
		m.metrics.primeTotal.WithLabelValues(primeBuild).Inc()
	}

	if cached {
		if err := m.cache.Set(ctx, m.cacheKey, table); err != nil {
			return nil, fmt.Errorf("routing: dispatch cache %q: %w", m.cacheKey, err)
		}
		m.logger.Debug("dispatch table written to cache", "key", m.cacheKey, "routes", len(all))
	}
	return table, nil
}

// build compiles every route into the dispatch table. When any route
// declares a host, all patterns are prefixed with their host pattern
// (or a match-any-host placeholder) so the dispatch key is host+path.
func (m *Matcher) build(all []*Route) (*dispatch.Table, error) {
	b := dispatch.NewBuilder()
	for i, rt := range all {
		pat := rt.Pattern()
		if m.hostRouting {
			host := rt.Host()
			if host == "" {
				host = "{" + hostParam + ":[^/]*}"
			}
			pat = host + pat
		}

		candidates, err := pattern.Parse(pat)
		if err != nil {
			return nil, fmt.Errorf("routing: route %s: %w", routeID(rt, i), err)
		}
		id := routeID(rt, i)
		for _, method := range rt.methods {
			b.Add(method, id, candidates)
		}
	}

	table, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("routing: %w", err)
	}
	return table, nil
}

// routeID is the dispatch identifier for a route: its name, or a
// positional identifier for unnamed routes. Positional identifiers are
// stable across processes as long as registration order is, which is the
// same assumption the cache itself rests on.
func routeID(rt *Route, index int) string {
	if rt.Name() != "" {
		return rt.Name()
	}
	return "#" + strconv.Itoa(index)
}

// decodePath percent-decodes the request path, falling back to the raw
// path when the escaping is malformed.
func decodePath(u *url.URL) string {
	path := u.EscapedPath()
	if decoded, err := url.PathUnescape(path); err == nil {
		return decoded
	}
	return path
}

// requestHost returns the request host without a port.
func requestHost(req *http.Request) string {
	host := req.Host
	if host == "" && req.URL != nil {
		host = req.URL.Host
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
