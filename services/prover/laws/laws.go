// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package laws defines the calculus of logical-equivalence rewrite laws.
//
// # Description
//
// Each Law is a pure pattern -> replacement transform over a single
// expression node. Applying a law at any position of a tree yields a new
// tree with the same truth table; that semantic-preservation invariant is
// the correctness core of the prover and is tested exhaustively.
//
// The catalog is built once at process start and shared read-only by all
// concurrent proof searches. Enumeration order (position, then law
// registration order) is fixed so that searches are reproducible for a
// given random seed.
//
// # Thread Safety
//
// Laws are stateless; the catalog is immutable after init.
package laws

import (
	"github.com/AleutianAI/AleutianLogic/services/prover/proposition"
)

// =============================================================================
// Law Type
// =============================================================================

// Law is a named, semantics-preserving rewrite rule.
type Law struct {
	// ID identifies the law in proof traces, e.g. "double_negation".
	ID string

	// Description is the human-readable schema shown by the /methods and
	// CLI surfaces, e.g. "~~p => p".
	Description string

	// Apply attempts the rewrite at a single node. It returns the
	// replacement and true when the node matches the pattern, or nil and
	// false otherwise. Apply never mutates its argument.
	Apply func(proposition.Expr) (proposition.Expr, bool)
}

// Rewrite is one legal single-step transformation of a whole expression:
// law ID, the position it applied at, and the resulting tree.
type Rewrite struct {
	LawID  string
	Pos    proposition.Path
	Result proposition.Expr
}

// =============================================================================
// Enumeration
// =============================================================================

// AllRewrites produces every legal one-step rewrite of e, rewriting exactly
// one subtree and leaving the rest untouched.
//
// # Description
//
// Positions are visited in pre-order; at each position every catalog law is
// tried in registration order. The resulting ordering is total and
// deterministic, which makes tie-breaking and seeded-random search
// reproducible.
func AllRewrites(e proposition.Expr) []Rewrite {
	return AllRewritesFrom(Catalog(), e)
}

// AllRewritesFrom is AllRewrites over an explicit catalog, for tests that
// need a restricted rule set.
func AllRewritesFrom(catalog []Law, e proposition.Expr) []Rewrite {
	var out []Rewrite
	for _, pos := range proposition.Positions(e) {
		node, err := proposition.At(e, pos)
		if err != nil {
			continue
		}
		for _, law := range catalog {
			replacement, ok := law.Apply(node)
			if !ok {
				continue
			}
			result, err := proposition.Replace(e, pos, replacement)
			if err != nil {
				continue
			}
			out = append(out, Rewrite{LawID: law.ID, Pos: pos, Result: result})
		}
	}
	return out
}
