// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine implements the proof search state machine.
//
// # Description
//
// A proof search walks a pair of propositions through one-step rewrites
// from the law catalog until their serialized forms coincide (a syntactic
// proof) or the iteration budget runs out. Candidate rewrites are ranked
// each iteration by a guidance scorer (neural model or seeded random);
// ties fall back to the catalog's deterministic enumeration order.
//
// Budget exhaustion is not an error: the truth table computed up front
// still settles semantic equivalence, and an exhausted search reports a
// negative/partial result. Only parser and evaluator guards abort a
// request.
//
// # Concurrency
//
// A single search is strictly sequential; each iteration depends on the
// previous rewrite. Engine itself is stateless apart from the read-only
// catalog and safe for concurrent Prove calls.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AleutianAI/AleutianLogic/services/prover/laws"
	"github.com/AleutianAI/AleutianLogic/services/prover/oracle"
	"github.com/AleutianAI/AleutianLogic/services/prover/proposition"
	"github.com/AleutianAI/AleutianLogic/services/prover/truthtable"
)

// =============================================================================
// Methods
// =============================================================================

// Method selects the proof strategy.
type Method string

const (
	// MethodAutomatic tries direct, then contrapositive, then absurd,
	// reporting whichever succeeds first.
	MethodAutomatic Method = "automatic"

	// MethodDirect rewrites proposition 1 until it equals proposition 2.
	MethodDirect Method = "direct"

	// MethodContrapositive first replaces a root implication A -> B with
	// ~B -> ~A, then continues as a direct proof.
	MethodContrapositive Method = "contrapositive"

	// MethodAbsurd restructures the goal as (P1 ^ ~P2) and rewrites it
	// toward F (reductio ad absurdum).
	MethodAbsurd Method = "absurd"

	// MethodBidirectional rewrites both propositions toward each other.
	MethodBidirectional Method = "bidirectional"
)

// KnownMethod reports whether name is a recognized proof method.
func KnownMethod(name string) bool {
	switch Method(name) {
	case MethodAutomatic, MethodDirect, MethodContrapositive, MethodAbsurd, MethodBidirectional:
		return true
	}
	return false
}

// Seed-move law identifiers recorded in traces. contraposition reuses the
// catalog law; the absurdity hypothesis is a proof-frame change, not an
// equivalence rewrite, and gets its own marker.
const (
	seedLawContraposition = "contraposition"
	seedLawAbsurdity      = "absurdity_hypothesis"
)

// DefaultMaxIterations is the search budget applied when a request does
// not set one.
const DefaultMaxIterations = 50

// =============================================================================
// Options and Results
// =============================================================================

// Options bounds and parameterizes one proof search.
type Options struct {
	// Method is the proof strategy. Empty defaults to MethodAutomatic.
	Method Method

	// MaxIterations caps rewrite steps per strategy attempt.
	// <= 0 defaults to DefaultMaxIterations.
	MaxIterations int

	// AllowBidirectional permits rewriting proposition 2 as well as
	// proposition 1. MethodBidirectional implies it.
	AllowBidirectional bool

	// Seed drives the random scorer and makes searches reproducible.
	Seed int64

	// MaxVariables caps truth-table enumeration.
	// <= 0 defaults to truthtable.DefaultMaxVariables.
	MaxVariables int
}

// Step is one applied rewrite in a proof trace. Append-only; immutable
// once recorded.
type Step struct {
	// Iteration is the search iteration that produced the step. Seed
	// moves injected by a method record iteration 0.
	Iteration int

	// Proposition is 1 or 2, the side that was rewritten.
	Proposition int

	// LawID names the applied law.
	LawID string

	// Position is the path of the rewritten subtree.
	Position proposition.Path

	// Result is the serialized proposition after the rewrite.
	Result string

	// GuidedByNN records whether the step was chosen on model guidance
	// or by the random fallback.
	GuidedByNN bool
}

// Result is the outcome of a proof search, handed to the result assembler.
type Result struct {
	// Success reports whether a syntactic proof was found.
	Success bool

	// Equivalent is the semantic verdict from the truth table. It can be
	// true even when Success is false (proof search exhausted).
	Equivalent bool

	// MethodUsed is the concrete strategy that produced the outcome:
	// a Method name, "semantic_check", or "syntactic_equality". An
	// exhausted search echoes the requested method, so a failed automatic
	// run reports "automatic" with the trace of its last attempt.
	MethodUsed string

	// Iterations is the number of loop iterations the reported attempt
	// consumed; always <= Options.MaxIterations.
	Iterations int

	// NNPredictions counts iterations ranked by the neural model.
	NNPredictions int

	// Initial and final serialized forms of both propositions.
	P1Initial, P2Initial string
	P1Final, P2Final     string

	// Steps is the full transformation trace of the reported attempt.
	Steps []Step

	// Table is the joint truth table of the *initial* propositions.
	Table *truthtable.Table
}

// =============================================================================
// Engine
// =============================================================================

// Engine runs proof searches over a fixed law catalog.
//
// The catalog and any loaded guidance model are the only process-wide
// state; both are injected here rather than read from globals so the
// engine stays testable with mock scorers.
type Engine struct {
	catalog []laws.Law
	logger  *slog.Logger
}

// New creates an engine over the given catalog. A nil logger uses the
// process default.
func New(catalog []laws.Law, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{catalog: catalog, logger: logger}
}

// Prove runs the equivalence proof of p1 and p2.
//
// # Description
//
// The truth table over the initial expressions is computed first: it
// yields the semantic verdict and guards against oversized variable sets
// before any search work. Non-equivalent pairs and already-identical
// pairs short-circuit without searching. Otherwise the selected method's
// search runs under the iteration budget, consulting scorer for candidate
// ranking.
//
// # Outputs
//
//   - *Result: Always populated on nil error, including negative and
//     partial outcomes. Search exhaustion is not an error.
//   - error: Only evaluator guards (*truthtable.TooManyVariablesError) or
//     context cancellation before any verdict.
func (e *Engine) Prove(ctx context.Context, p1, p2 proposition.Expr,
	scorer oracle.Scorer, opts Options) (*Result, error) {

	if opts.Method == "" {
		opts.Method = MethodAutomatic
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	table, err := truthtable.New(p1, p2, opts.MaxVariables)
	if err != nil {
		return nil, err
	}

	result := &Result{
		P1Initial: p1.String(),
		P2Initial: p2.String(),
		P1Final:   p1.String(),
		P2Final:   p2.String(),
		Table:     table,
	}

	if !table.Equivalent() {
		result.MethodUsed = "semantic_check"
		result.Equivalent = false
		return result, nil
	}
	result.Equivalent = true

	if result.P1Initial == result.P2Initial {
		result.Success = true
		result.MethodUsed = "syntactic_equality"
		return result, nil
	}

	strategies := []Method{opts.Method}
	if opts.Method == MethodAutomatic {
		strategies = []Method{MethodDirect, MethodContrapositive, MethodAbsurd}
	}

	var last attempt
	for _, strategy := range strategies {
		att := e.search(ctx, p1, p2, scorer, strategy, opts)
		last = att
		if att.success {
			result.Success = true
			result.MethodUsed = string(strategy)
			break
		}
		e.logger.Debug("Proof attempt exhausted",
			"method", string(strategy),
			"iterations", att.iterations)
	}

	if !result.Success {
		result.MethodUsed = string(opts.Method)
	}

	result.Iterations = last.iterations
	result.NNPredictions = last.nnPredictions
	result.Steps = last.steps
	result.P1Final = last.p1.String()
	result.P2Final = last.p2.String()
	return result, nil
}

// =============================================================================
// Search Loop
// =============================================================================

// attempt is the mutable state of one strategy run. It is the ProofState
// of the model: the live pair plus its transformation lineage.
type attempt struct {
	p1, p2        proposition.Expr
	steps         []Step
	iterations    int
	nnPredictions int
	success       bool
}

// candidate pairs a catalog rewrite with the side it applies to.
type candidate struct {
	side    int
	rewrite laws.Rewrite
}

// search runs one strategy under the iteration budget.
func (e *Engine) search(ctx context.Context, p1, p2 proposition.Expr,
	scorer oracle.Scorer, method Method, opts Options) attempt {

	att := attempt{p1: p1, p2: p2}
	bidirectional := opts.AllowBidirectional || method == MethodBidirectional

	e.applySeedMoves(&att, method, bidirectional)
	if att.p1.String() == att.p2.String() {
		att.success = true
		return att
	}

	for att.iterations < opts.MaxIterations {
		if ctx.Err() != nil {
			// Wall-clock budget exceeded: report the partial trace.
			e.logger.Warn("Proof search cancelled", "iterations", att.iterations)
			return att
		}

		candidates := e.collectCandidates(&att, bidirectional)
		if len(candidates) == 0 {
			return att
		}

		att.iterations++
		chosen, guided := e.pickCandidate(ctx, scorer, &att, candidates)
		if guided {
			att.nnPredictions++
		}

		e.applyCandidate(&att, chosen, guided)
		if att.p1.String() == att.p2.String() {
			att.success = true
			return att
		}
	}
	return att
}

// applySeedMoves injects the method-specific opening transformation.
func (e *Engine) applySeedMoves(att *attempt, method Method, bidirectional bool) {
	switch method {
	case MethodContrapositive:
		if rewritten, ok := contrapose(att.p1); ok {
			att.p1 = rewritten
			att.steps = append(att.steps, Step{
				Proposition: 1,
				LawID:       seedLawContraposition,
				Position:    proposition.Path{},
				Result:      rewritten.String(),
			})
		}
		if !bidirectional {
			return
		}
		if rewritten, ok := contrapose(att.p2); ok {
			att.p2 = rewritten
			att.steps = append(att.steps, Step{
				Proposition: 2,
				LawID:       seedLawContraposition,
				Position:    proposition.Path{},
				Result:      rewritten.String(),
			})
		}

	case MethodAbsurd:
		// Reductio: assume P1 while denying P2, then drive the
		// conjunction to F against the constant goal.
		restructured := &proposition.And{
			Left:  att.p1,
			Right: &proposition.Not{Operand: att.p2},
		}
		att.p1 = restructured
		att.p2 = &proposition.Const{Value: false}
		att.steps = append(att.steps, Step{
			Proposition: 1,
			LawID:       seedLawAbsurdity,
			Position:    proposition.Path{},
			Result:      restructured.String(),
		})
	}
}

// collectCandidates enumerates the legal one-step rewrites of the live
// propositions. Proposition 2 contributes only when bidirectional search
// is allowed.
func (e *Engine) collectCandidates(att *attempt, bidirectional bool) []candidate {
	var out []candidate
	for _, rw := range laws.AllRewritesFrom(e.catalog, att.p1) {
		out = append(out, candidate{side: 1, rewrite: rw})
	}
	if bidirectional {
		for _, rw := range laws.AllRewritesFrom(e.catalog, att.p2) {
			out = append(out, candidate{side: 2, rewrite: rw})
		}
	}
	return out
}

// pickCandidate scores every candidate and returns the winner plus whether
// the ranking came from the model. Ties keep the earliest enumeration
// index (position order, then catalog registration order), so a uniform
// scorer still yields a reproducible walk for a fixed seed.
func (e *Engine) pickCandidate(ctx context.Context, scorer oracle.Scorer,
	att *attempt, candidates []candidate) (candidate, bool) {

	bestIdx := 0
	bestScore := 0.0
	for i, cand := range candidates {
		target := att.p2
		if cand.side == 2 {
			target = att.p1
		}
		score, err := scorer.Score(ctx, oracle.Candidate{
			Proposition: cand.side,
			LawID:       cand.rewrite.LawID,
			Position:    cand.rewrite.Pos.String(),
			Result:      cand.rewrite.Result.String(),
			Target:      target.String(),
			Iteration:   att.iterations,
		})
		if err != nil {
			// Scorers wrap their own fallback; an error here means even
			// the fallback failed. Treat as zero preference.
			score = 0
		}
		if i == 0 || score > bestScore {
			bestIdx = i
			bestScore = score
		}
	}
	return candidates[bestIdx], scorer.Guided()
}

// applyCandidate commits the chosen rewrite and appends its trace entry.
func (e *Engine) applyCandidate(att *attempt, chosen candidate, guided bool) {
	step := Step{
		Iteration:   att.iterations,
		Proposition: chosen.side,
		LawID:       chosen.rewrite.LawID,
		Position:    chosen.rewrite.Pos,
		Result:      chosen.rewrite.Result.String(),
		GuidedByNN:  guided,
	}
	if chosen.side == 1 {
		att.p1 = chosen.rewrite.Result
	} else {
		att.p2 = chosen.rewrite.Result
	}
	att.steps = append(att.steps, step)
}

// contrapose rewrites a root implication A -> B to ~B -> ~A.
func contrapose(e proposition.Expr) (proposition.Expr, bool) {
	imp, ok := e.(*proposition.Implies)
	if !ok {
		return nil, false
	}
	return &proposition.Implies{
		Left:  &proposition.Not{Operand: imp.Right},
		Right: &proposition.Not{Operand: imp.Left},
	}, true
}

// Describe returns the human-readable summaries of all proof methods for
// the descriptive API endpoints.
func Describe() map[string]MethodInfo {
	return map[string]MethodInfo{
		string(MethodAutomatic): {
			Description: "Tries multiple strategies automatically",
			Goal:        "First of direct, contrapositive, absurd to find a proof",
		},
		string(MethodDirect): {
			Description: "Proof by direct transformation",
			Goal:        "Transform P1 until it equals P2",
		},
		string(MethodContrapositive): {
			Description: "Proof via the contrapositive",
			Goal:        "Replace A -> B with ~B -> ~A, then prove directly",
		},
		string(MethodAbsurd): {
			Description: "Proof by reduction to absurdity",
			Goal:        "Show that (P1 ^ ~P2) reduces to F",
		},
		string(MethodBidirectional): {
			Description: "Proof by rewriting both sides",
			Goal:        "Transform P1 and P2 toward a common form",
		},
	}
}

// MethodInfo describes one proof method.
type MethodInfo struct {
	Description string `json:"description"`
	Goal        string `json:"goal"`
}

// String implements fmt.Stringer for logging.
func (m Method) String() string {
	return string(m)
}

var _ fmt.Stringer = MethodAutomatic
