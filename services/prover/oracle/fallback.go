// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package oracle

import (
	"context"
	"log/slog"
)

// fallbackScorer guides with primary until it fails, then degrades to
// fallback for the remainder of the request. The first failure is logged;
// the caller never sees the error.
type fallbackScorer struct {
	primary  Scorer
	fallback Scorer
	degraded bool
}

// WithFallback composes a primary scorer with a local fallback.
//
// Once the primary returns an error the request stays on the fallback:
// retrying a dead model on every remaining candidate would stack timeouts
// inside the search loop.
func WithFallback(primary, fallback Scorer) Scorer {
	return &fallbackScorer{primary: primary, fallback: fallback}
}

func (f *fallbackScorer) Score(ctx context.Context, cand Candidate) (float64, error) {
	if !f.degraded {
		score, err := f.primary.Score(ctx, cand)
		if err == nil {
			return score, nil
		}
		f.degraded = true
		slog.Warn("Scoring model unavailable, degrading to random guidance for this request",
			"error", err)
	}
	return f.fallback.Score(ctx, cand)
}

func (f *fallbackScorer) Guided() bool {
	return !f.degraded && f.primary.Guided()
}
