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
	"math/rand"
)

// RandomScorer draws uniform scores from a seeded source. It is the
// fallback guidance when no model is configured or the model fails
// mid-request, and the deterministic choice for tests.
type RandomScorer struct {
	rng *rand.Rand
}

// NewRandomScorer creates a scorer seeded for one request. The same seed
// over the same candidate sequence reproduces the same search.
func NewRandomScorer(seed int64) *RandomScorer {
	return &RandomScorer{rng: rand.New(rand.NewSource(seed))}
}

// Score returns a uniform draw in [0, 1); the candidate is ignored.
func (r *RandomScorer) Score(_ context.Context, _ Candidate) (float64, error) {
	return r.rng.Float64(), nil
}

// Guided reports false: random scores are not model guidance.
func (r *RandomScorer) Guided() bool {
	return false
}

// RandomFactory returns a Factory producing pure random scorers.
func RandomFactory() Factory {
	return func(seed int64) Scorer {
		return NewRandomScorer(seed)
	}
}
