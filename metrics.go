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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Match outcome label values.
const (
	outcomeFound            = "found"
	outcomeNotFound         = "not_found"
	outcomeMethodNotAllowed = "method_not_allowed"
)

// Priming source label values.
const (
	primeCache = "cache"
	primeBuild = "build"
)

// Metrics holds the Prometheus collectors a Matcher reports into.
type Metrics struct {
	matchTotal *prometheus.CounterVec
	primeTotal *prometheus.CounterVec
}

// NewMetrics registers the routing collectors on the given registerer.
// Registering twice on the same registerer panics, as usual with
// promauto; share one Metrics between matchers instead.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		matchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routing",
			Name:      "match_total",
			Help:      "Match outcomes by result.",
		}, []string{"outcome"}),
		primeTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routing",
			Name:      "prime_total",
			Help:      "Matcher initializations by dispatch table source.",
		}, []string{"source"}),
	}
}
