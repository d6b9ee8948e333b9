// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides Prometheus metrics for the prover service.
//
// # Description
//
// Metrics cover proof requests (by method and outcome), search effort
// (iterations, duration, truth-table size), guidance degradation (oracle
// fallbacks), and in-flight searches. Exposed on /metrics for Prometheus
// scraping.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "aleutian"

const proverSubsystem = "prover"

// ProverMetrics holds all Prometheus metrics for proof search operations.
// Initialize once at startup via InitMetrics().
type ProverMetrics struct {
	// ProofsTotal counts completed proof requests.
	// Labels: method (direct, contrapositive, ...), outcome
	// (proved, exhausted, not_equivalent, invalid).
	ProofsTotal *prometheus.CounterVec

	// ProofIterations measures rewrite iterations consumed per request.
	// Labels: method
	ProofIterations *prometheus.HistogramVec

	// ProofDurationSeconds measures wall-clock proof duration.
	// Labels: method, outcome
	ProofDurationSeconds *prometheus.HistogramVec

	// OracleFallbacksTotal counts requests degraded from model guidance
	// to random guidance mid-search.
	OracleFallbacksTotal prometheus.Counter

	// ActiveProofs tracks in-flight proof searches.
	ActiveProofs prometheus.Gauge

	// TruthTableRows measures enumerated truth-table sizes.
	TruthTableRows prometheus.Histogram
}

// DefaultMetrics is the singleton instance, set by InitMetrics().
var DefaultMetrics *ProverMetrics

// InitMetrics creates and registers all prover metrics. Call once at
// application startup; a second call panics on duplicate registration.
func InitMetrics() *ProverMetrics {
	DefaultMetrics = &ProverMetrics{
		ProofsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: proverSubsystem,
				Name:      "proofs_total",
				Help:      "Total proof requests by method and outcome",
			},
			[]string{"method", "outcome"},
		),

		ProofIterations: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: proverSubsystem,
				Name:      "proof_iterations",
				Help:      "Rewrite iterations consumed per proof request",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
			},
			[]string{"method"},
		),

		ProofDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: proverSubsystem,
				Name:      "proof_duration_seconds",
				Help:      "Wall-clock duration of proof requests",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15},
			},
			[]string{"method", "outcome"},
		),

		OracleFallbacksTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: proverSubsystem,
				Name:      "oracle_fallbacks_total",
				Help:      "Requests degraded from model to random guidance",
			},
		),

		ActiveProofs: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: proverSubsystem,
				Name:      "active_proofs",
				Help:      "Currently running proof searches",
			},
		),

		TruthTableRows: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: proverSubsystem,
				Name:      "truth_table_rows",
				Help:      "Rows enumerated per truth table",
				Buckets:   []float64{2, 4, 8, 16, 64, 256, 1024, 16384, 262144, 1048576},
			},
		),
	}

	return DefaultMetrics
}

// Outcome categorizes a finished proof request for metrics labeling.
type Outcome string

const (
	// OutcomeProved means a syntactic proof was found.
	OutcomeProved Outcome = "proved"

	// OutcomeExhausted means the budget ran out without a proof.
	OutcomeExhausted Outcome = "exhausted"

	// OutcomeNotEquivalent means the truth tables already disagree.
	OutcomeNotEquivalent Outcome = "not_equivalent"

	// OutcomeInvalid means the request failed validation or parsing.
	OutcomeInvalid Outcome = "invalid"
)

// RecordProof records a completed proof request.
func (m *ProverMetrics) RecordProof(method string, outcome Outcome, iterations int, seconds float64) {
	m.ProofsTotal.WithLabelValues(method, string(outcome)).Inc()
	m.ProofIterations.WithLabelValues(method).Observe(float64(iterations))
	m.ProofDurationSeconds.WithLabelValues(method, string(outcome)).Observe(seconds)
}

// RecordOracleFallback records one request degrading to random guidance.
func (m *ProverMetrics) RecordOracleFallback() {
	m.OracleFallbacksTotal.Inc()
}

// ProofStarted increments the in-flight gauge.
func (m *ProverMetrics) ProofStarted() {
	m.ActiveProofs.Inc()
}

// ProofEnded decrements the in-flight gauge.
func (m *ProverMetrics) ProofEnded() {
	m.ActiveProofs.Dec()
}

// RecordTruthTableRows records the size of an enumerated table.
func (m *ProverMetrics) RecordTruthTableRows(rows int) {
	m.TruthTableRows.Observe(float64(rows))
}
