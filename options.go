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
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/routing/cache"
)

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithCache enables dispatch-table caching through the given backend.
// The first priming writes the compiled table; later primings (typically
// in other processes) load it without recompiling any pattern.
//
//	store, _ := cache.NewStore("file:///var/cache/app")
//	m, _ := routing.NewMatcher(routes, routing.WithCache(store))
func WithCache(c cache.Cache) MatcherOption {
	return func(m *Matcher) {
		m.cache = c
	}
}

// WithCacheKey sets the cache entry name for the dispatch table. Matchers
// over different collections sharing one backend must use distinct keys.
// Defaults to "routing.dispatch".
func WithCacheKey(key string) MatcherOption {
	return func(m *Matcher) {
		m.cacheKey = key
	}
}

// WithAutoHead controls whether HEAD requests fall back to GET routes and
// whether HEAD is reported alongside GET in allowed-method lists. Enabled
// by default.
func WithAutoHead(enabled bool) MatcherOption {
	return func(m *Matcher) {
		m.autoHead = enabled
	}
}

// WithLogger sets the slog.Logger used for priming and match diagnostics.
// By default all logging is discarded.
func WithLogger(logger *slog.Logger) MatcherOption {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithTracer enables OpenTelemetry spans around Match calls.
func WithTracer(tracer trace.Tracer) MatcherOption {
	return func(m *Matcher) {
		m.tracer = tracer
	}
}

// WithMetrics enables Prometheus counters for match outcomes and priming
// sources. Share one Metrics across matchers registered on one registry.
func WithMetrics(metrics *Metrics) MatcherOption {
	return func(m *Matcher) {
		m.metrics = metrics
	}
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithRawEncoding controls percent-encoding of generated paths. When
// enabled (the default), substituted values are percent-encoded except
// for slashes inside values, which stay literal so a value may span
// several path segments.
func WithRawEncoding(enabled bool) GeneratorOption {
	return func(g *Generator) {
		g.encodeRaw = enabled
	}
}

// WithCurrent wires a source of the most recent match, letting
// GenerateAbsolute derive scheme and host from the active request and
// GenerateFromCurrent reuse the matched route's parameters. A Matcher
// satisfies the provider interface.
func WithCurrent(provider CurrentRouteProvider) GeneratorOption {
	return func(g *Generator) {
		g.current = provider
	}
}
