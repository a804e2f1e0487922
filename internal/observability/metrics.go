// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package observability

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// OutcomeOK labels successful generations.
const OutcomeOK = "ok"

// Metrics contains the passgen Prometheus metrics.
type Metrics struct {
	GenerationsTotal  *prometheus.CounterVec
	PasswordLength    prometheus.Histogram
	HTTPRequestsTotal *prometheus.CounterVec
}

// NewMetrics creates the passgen metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GenerationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passgen_generations_total",
				Help: "Total number of password generations by outcome",
			},
			[]string{"outcome"},
		),
		PasswordLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "passgen_password_length",
				Help:    "Requested length of successfully generated passwords",
				Buckets: prometheus.ExponentialBuckets(8, 2, 8),
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passgen_http_requests_total",
				Help: "Total number of API requests by route and status code",
			},
			[]string{"route", "status"},
		),
	}

	reg.MustRegister(m.GenerationsTotal, m.PasswordLength, m.HTTPRequestsTotal)
	return m
}

// RecordGeneration counts one generation. code is the error code of a failed
// generation, or empty on success.
func (m *Metrics) RecordGeneration(code string, length int) {
	if code == "" {
		m.GenerationsTotal.WithLabelValues(OutcomeOK).Inc()
		m.PasswordLength.Observe(float64(length))
		return
	}
	m.GenerationsTotal.WithLabelValues(strings.ToLower(code)).Inc()
}

// RecordHTTPRequest counts one API request.
func (m *Metrics) RecordHTTPRequest(route string, status int) {
	m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
