// Copyright (c) 2026 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/direct-state-transfer/gasless
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

package workflow

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/direct-state-transfer/gasless"
)

const metricsNamespace = "gasless"

type metrics struct {
	attempts       prometheus.Counter
	outcomes       *prometheus.CounterVec
	confirmLatency prometheus.Histogram
}

// newMetrics returns the workflow metrics, registered with reg if it is not nil.
// Collectors already registered with reg are reused.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tx_attempts_total",
			Help:      "Number of transaction attempts started.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tx_outcomes_total",
			Help:      "Number of transaction attempts by terminal outcome and error kind.",
		}, []string{"outcome", "error_kind"}),
		confirmLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tx_confirmation_seconds",
			Help:      "Time from submitting a transaction to its confirmation.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
	if reg == nil {
		return m
	}
	m.attempts = register(reg, m.attempts).(prometheus.Counter)
	m.outcomes = register(reg, m.outcomes).(*prometheus.CounterVec)
	m.confirmLatency = register(reg, m.confirmLatency).(prometheus.Histogram)
	return m
}

func register(reg prometheus.Registerer, c prometheus.Collector) prometheus.Collector {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector
		}
		panic(err)
	}
	return c
}

func (m *metrics) observeOutcome(o gasless.Outcome) {
	m.outcomes.WithLabelValues(o.Kind.String(), o.ErrorKind).Inc()
}
