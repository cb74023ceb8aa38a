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

package cache

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"rivaas.dev/routing/dispatch"
)

// isMiss reports whether err represents an absent entry rather than a
// storage or decode failure.
func isMiss(err error) bool {
	return errors.Is(err, ErrMiss)
}

// Instrumented decorates a Cache with prometheus hit/miss/error counters.
type Instrumented struct {
	next Cache

	hits   prometheus.Counter
	misses prometheus.Counter
	errors prometheus.Counter
}

// NewInstrumented wraps next, registering counters against reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry, or a private
// registry in tests to avoid duplicate-registration panics.
func NewInstrumented(next Cache, reg prometheus.Registerer) *Instrumented {
	factory := promauto.With(reg)
	return &Instrumented{
		next: next,
		hits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "routing",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Dispatch table cache lookups that found a decodable entry.",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "routing",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Dispatch table cache lookups that found no entry.",
		}),
		errors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "routing",
			Subsystem: "cache",
			Name:      "errors_total",
			Help:      "Dispatch table cache operations that failed.",
		}),
	}
}

// Has delegates to the wrapped cache.
func (i *Instrumented) Has(ctx context.Context, key string) bool {
	return i.next.Has(ctx, key)
}

// Get delegates to the wrapped cache, counting the outcome.
func (i *Instrumented) Get(ctx context.Context, key string) (*dispatch.Table, error) {
	table, err := i.next.Get(ctx, key)
	switch {
	case err == nil:
		i.hits.Inc()
	case isMiss(err):
		i.misses.Inc()
	default:
		i.errors.Inc()
	}
	return table, err
}

// Set delegates to the wrapped cache, counting failures.
func (i *Instrumented) Set(ctx context.Context, key string, table *dispatch.Table) error {
	err := i.next.Set(ctx, key, table)
	if err != nil {
		i.errors.Inc()
	}
	return err
}

// Delete delegates to the wrapped cache.
func (i *Instrumented) Delete(ctx context.Context, key string) error {
	return i.next.Delete(ctx, key)
}

// Clear delegates to the wrapped cache.
func (i *Instrumented) Clear(ctx context.Context) error {
	return i.next.Clear(ctx)
}

var _ Cache = (*Instrumented)(nil)
