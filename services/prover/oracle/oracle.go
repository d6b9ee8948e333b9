// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package oracle provides the pluggable step-scoring adapters that guide
// the proof search.
//
// # Description
//
// The search engine asks a Scorer to rank every legal next rewrite and
// applies the best one. Two implementations exist: NeuralClient calls an
// external pre-trained scoring service over HTTP (opaque at this layer),
// and RandomScorer draws uniform scores from a per-request seeded source.
// WithFallback composes them so that a failing or slow model degrades the
// request to random guidance instead of aborting the search.
//
// The engine never special-cases which scorer is active beyond recording
// the guided_by_nn flag per step.
package oracle

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the external scoring model could not be
// reached. It is recovered locally by falling back to random guidance and
// is never surfaced to API callers.
var ErrUnavailable = errors.New("scoring model unavailable")

// Candidate is the feature view of one possible next rewrite handed to a
// scorer: which proposition would change, how, and what both sides look
// like afterwards.
type Candidate struct {
	// Proposition is 1 or 2, the side the rewrite applies to.
	Proposition int `json:"proposition"`

	// LawID is the law that produced the rewrite.
	LawID string `json:"law"`

	// Position is the dotted path of the rewritten subtree ("root", "0.1").
	Position string `json:"position"`

	// Result is the serialized proposition after the rewrite.
	Result string `json:"result"`

	// Target is the serialized proposition the rewrite is trying to reach.
	Target string `json:"target"`

	// Iteration is the search iteration the candidate belongs to.
	Iteration int `json:"iteration"`
}

// Scorer ranks candidate rewrites.
//
// # Thread Safety
//
// Scorers are created per request and need not be safe for concurrent use;
// a single request's search loop is strictly sequential.
type Scorer interface {
	// Score returns a preference score for the candidate; higher is
	// better. An error from the underlying model is wrapped as
	// ErrUnavailable.
	Score(ctx context.Context, cand Candidate) (float64, error)

	// Guided reports whether the scores currently come from the trained
	// model. The engine records this per step as guided_by_nn.
	Guided() bool
}

// Factory builds a per-request Scorer from the request seed. The service
// wires either a neural factory (with random fallback) or a pure random
// one, depending on configuration and model availability.
type Factory func(seed int64) Scorer
