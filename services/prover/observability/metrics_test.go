// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecording(t *testing.T) {
	m := InitMetrics()
	require.NotNil(t, m)
	require.Same(t, m, DefaultMetrics)

	m.RecordProof("direct", OutcomeProved, 3, 0.025)
	m.RecordProof("direct", OutcomeProved, 1, 0.002)
	m.RecordProof("absurd", OutcomeExhausted, 50, 1.2)

	assert.Equal(t, 2.0,
		testutil.ToFloat64(m.ProofsTotal.WithLabelValues("direct", "proved")))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(m.ProofsTotal.WithLabelValues("absurd", "exhausted")))

	m.RecordOracleFallback()
	m.RecordOracleFallback()
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OracleFallbacksTotal))

	m.ProofStarted()
	m.ProofStarted()
	m.ProofEnded()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ActiveProofs))

	m.RecordTruthTableRows(8)
}
