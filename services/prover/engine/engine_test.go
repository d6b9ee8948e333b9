// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianLogic/services/prover/laws"
	"github.com/AleutianAI/AleutianLogic/services/prover/oracle"
	"github.com/AleutianAI/AleutianLogic/services/prover/proposition"
	"github.com/AleutianAI/AleutianLogic/services/prover/truthtable"
)

// =============================================================================
// Test Scorers
// =============================================================================

// shortestResultScorer prefers the candidate with the shortest serialized
// result. Greedy shrinking is a deterministic stand-in for model guidance
// in reduction scenarios.
type shortestResultScorer struct{}

func (shortestResultScorer) Score(_ context.Context, cand oracle.Candidate) (float64, error) {
	return 1.0 / float64(1+len(cand.Result)), nil
}

func (shortestResultScorer) Guided() bool { return false }

// lawScorer prefers one specific law over everything else.
type lawScorer struct{ id string }

func (s lawScorer) Score(_ context.Context, cand oracle.Candidate) (float64, error) {
	if cand.LawID == s.id {
		return 1.0, nil
	}
	return 0.0, nil
}

func (lawScorer) Guided() bool { return false }

// sideScorer prefers rewrites of one proposition side.
type sideScorer struct{ side int }

func (s sideScorer) Score(_ context.Context, cand oracle.Candidate) (float64, error) {
	if cand.Proposition == s.side {
		return 1.0, nil
	}
	return 0.0, nil
}

func (sideScorer) Guided() bool { return false }

// guidedScorer wraps another scorer and reports model guidance, for
// checking the nn_predictions accounting.
type guidedScorer struct{ inner oracle.Scorer }

func (g guidedScorer) Score(ctx context.Context, cand oracle.Candidate) (float64, error) {
	return g.inner.Score(ctx, cand)
}

func (guidedScorer) Guided() bool { return true }

func newEngine() *Engine {
	return New(laws.Catalog(), nil)
}

func prove(t *testing.T, eng *Engine, p1, p2 string, scorer oracle.Scorer, opts Options) *Result {
	t.Helper()
	result, err := eng.Prove(context.Background(),
		proposition.MustParse(p1), proposition.MustParse(p2), scorer, opts)
	require.NoError(t, err)
	return result
}

// =============================================================================
// Short Circuits
// =============================================================================

func TestProveNotEquivalentShortCircuits(t *testing.T) {
	result := prove(t, newEngine(), "p", "q", oracle.NewRandomScorer(1), Options{})

	assert.False(t, result.Success)
	assert.False(t, result.Equivalent)
	assert.Equal(t, "semantic_check", result.MethodUsed)
	assert.Zero(t, result.Iterations)
	assert.Empty(t, result.Steps)
	assert.Equal(t, "p", result.P1Final)
	assert.Equal(t, "q", result.P2Final)
	require.NotNil(t, result.Table)
	assert.False(t, result.Table.Equivalent())
}

func TestProveSyntacticEqualityShortCircuits(t *testing.T) {
	result := prove(t, newEngine(), "p ^ (q v r)", "p ^ (q v r)",
		oracle.NewRandomScorer(1), Options{})

	assert.True(t, result.Success)
	assert.True(t, result.Equivalent)
	assert.Equal(t, "syntactic_equality", result.MethodUsed)
	assert.Zero(t, result.Iterations)
	assert.Empty(t, result.Steps)
}

// Alias spellings normalize before comparison, so they count as already
// identical.
func TestProveAliasSpellingsAreIdentical(t *testing.T) {
	result := prove(t, newEngine(), "p AND q", "p ∧ q",
		oracle.NewRandomScorer(1), Options{})

	assert.True(t, result.Success)
	assert.Equal(t, "syntactic_equality", result.MethodUsed)
}

func TestProveTooManyVariables(t *testing.T) {
	result, err := newEngine().Prove(context.Background(),
		proposition.MustParse("a ^ b"), proposition.MustParse("c ^ d"),
		oracle.NewRandomScorer(1), Options{MaxVariables: 3})

	require.Error(t, err)
	assert.Nil(t, result)

	var tooMany *truthtable.TooManyVariablesError
	assert.ErrorAs(t, err, &tooMany)
}

// =============================================================================
// Direct Proofs
// =============================================================================

func TestProveDoubleNegationDirect(t *testing.T) {
	// ~~p has exactly one legal rewrite, so any scorer proves this in one
	// step.
	result := prove(t, newEngine(), "~~p", "p", oracle.NewRandomScorer(7),
		Options{Method: MethodDirect})

	assert.True(t, result.Success)
	assert.True(t, result.Equivalent)
	assert.Equal(t, "direct", result.MethodUsed)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, "p", result.P1Final)
	assert.Equal(t, "p", result.P2Final)

	require.Len(t, result.Steps, 1)
	step := result.Steps[0]
	assert.Equal(t, 1, step.Iteration)
	assert.Equal(t, 1, step.Proposition)
	assert.Equal(t, "double_negation", step.LawID)
	assert.Equal(t, "root", step.Position.String())
	assert.Equal(t, "p", step.Result)
	assert.False(t, step.GuidedByNN)
}

func TestProveCommutedConjunctionAutomatic(t *testing.T) {
	// (p ^ q) has a single candidate rewrite: commutativity at the root.
	// The automatic strategy must report the direct method.
	result := prove(t, newEngine(), "p ^ q", "q ^ p", oracle.NewRandomScorer(3),
		Options{})

	assert.True(t, result.Success)
	assert.Equal(t, "direct", result.MethodUsed)
	assert.Equal(t, 1, result.Iterations)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "commutativity", result.Steps[0].LawID)
	assert.Equal(t, "(q ^ p)", result.P1Final)
}

func TestProveImplicationEliminationAutomatic(t *testing.T) {
	// (p -> q) rewrites to (~p v q) in one implication_elimination step;
	// greedy shrinking prefers it over contraposition at the root.
	result := prove(t, newEngine(), "p -> q", "~p v q",
		shortestResultScorer{}, Options{MaxIterations: 50})

	assert.True(t, result.Success)
	assert.True(t, result.Equivalent)
	assert.Equal(t, "direct", result.MethodUsed)
	assert.Equal(t, 1, result.Iterations)
	assert.Equal(t, "(~p v q)", result.P1Final)

	require.Len(t, result.Steps, 1)
	assert.Equal(t, "implication_elimination", result.Steps[0].LawID)
}

func TestProveImplicationEliminationAnySeed(t *testing.T) {
	// Random guidance must also close this pair within the default budget,
	// whatever the seed.
	for seed := int64(1); seed <= 50; seed++ {
		result := prove(t, newEngine(), "p -> q", "~p v q",
			oracle.NewRandomScorer(seed),
			Options{Method: MethodAutomatic, MaxIterations: 50})

		assert.True(t, result.Success, "seed %d", seed)
		assert.LessOrEqual(t, result.Iterations, 50, "seed %d", seed)
	}
}

func TestProveNNPredictionsCounted(t *testing.T) {
	result := prove(t, newEngine(), "~~p", "p",
		guidedScorer{inner: oracle.NewRandomScorer(1)},
		Options{Method: MethodDirect})

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.NNPredictions)
	require.Len(t, result.Steps, 1)
	assert.True(t, result.Steps[0].GuidedByNN)
}

// =============================================================================
// Contrapositive Proofs
// =============================================================================

func TestProveContrapositiveSeedMove(t *testing.T) {
	result := prove(t, newEngine(), "p -> q", "~q -> ~p",
		oracle.NewRandomScorer(1), Options{Method: MethodContrapositive})

	assert.True(t, result.Success)
	assert.Equal(t, "contrapositive", result.MethodUsed)
	assert.Zero(t, result.Iterations, "seed move alone closes the proof")

	require.Len(t, result.Steps, 1)
	step := result.Steps[0]
	assert.Zero(t, step.Iteration, "seed moves record iteration 0")
	assert.Equal(t, "contraposition", step.LawID)
	assert.Equal(t, "(~q -> ~p)", step.Result)
}

func TestProveAutomaticFallsBackToContrapositive(t *testing.T) {
	// A scorer stuck on implication laws makes the direct attempt oscillate
	// between (p -> q) and (~p v q) until its budget runs out; the
	// contrapositive attempt then closes the proof with its seed move.
	result := prove(t, newEngine(), "p -> q", "~q -> ~p",
		lawScorer{id: "implication_elimination"},
		Options{Method: MethodAutomatic, MaxIterations: 4})

	assert.True(t, result.Success)
	assert.Equal(t, "contrapositive", result.MethodUsed)
	assert.Zero(t, result.Iterations)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "contraposition", result.Steps[0].LawID)
}

// =============================================================================
// Absurd Proofs
// =============================================================================

func TestProveAbsurd(t *testing.T) {
	// Reductio frame: (p ^ ~(p v p)) vs F. Greedy shrinking reaches F via
	// idempotence then complement.
	result := prove(t, newEngine(), "p", "p v p",
		shortestResultScorer{}, Options{Method: MethodAbsurd})

	assert.True(t, result.Success)
	assert.Equal(t, "absurd", result.MethodUsed)
	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, "F", result.P1Final)
	assert.Equal(t, "F", result.P2Final)

	require.Len(t, result.Steps, 3)
	assert.Equal(t, "absurdity_hypothesis", result.Steps[0].LawID)
	assert.Zero(t, result.Steps[0].Iteration)
	assert.Equal(t, "(p ^ ~(p v p))", result.Steps[0].Result)
	assert.Equal(t, "idempotence", result.Steps[1].LawID)
	assert.Equal(t, "complement", result.Steps[2].LawID)
}

// =============================================================================
// Bidirectional Proofs
// =============================================================================

func TestProveBidirectionalRewritesSecondSide(t *testing.T) {
	result := prove(t, newEngine(), "p ^ q", "q ^ p",
		sideScorer{side: 2}, Options{Method: MethodBidirectional})

	assert.True(t, result.Success)
	assert.Equal(t, "bidirectional", result.MethodUsed)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, 2, result.Steps[0].Proposition)
	assert.Equal(t, "(p ^ q)", result.P2Final)
	assert.Equal(t, "(p ^ q)", result.P1Final)
}

func TestProveAllowBidirectionalWithDirectMethod(t *testing.T) {
	result := prove(t, newEngine(), "p ^ q", "q ^ p",
		sideScorer{side: 2},
		Options{Method: MethodDirect, AllowBidirectional: true})

	assert.True(t, result.Success)
	assert.Equal(t, "direct", result.MethodUsed)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, 2, result.Steps[0].Proposition)
}

// =============================================================================
// Budgets and Cancellation
// =============================================================================

func TestProveBudgetExhaustion(t *testing.T) {
	// Equivalent pair, but the scorer keeps toggling implication forms and
	// never reaches the target within budget.
	result := prove(t, newEngine(), "p -> q", "~q -> ~p",
		lawScorer{id: "implication_elimination"},
		Options{Method: MethodDirect, MaxIterations: 4})

	assert.False(t, result.Success)
	assert.True(t, result.Equivalent)
	assert.Equal(t, "direct", result.MethodUsed)
	assert.Equal(t, 4, result.Iterations)
	assert.Len(t, result.Steps, 4)
	assert.Equal(t, "(~q -> ~p)", result.P2Final)
}

func TestProveAutomaticExhaustionReportsLastAttempt(t *testing.T) {
	// A scorer stuck on contraposition diverges in every strategy. The
	// failure report echoes the requested method; trace and finals come
	// from the last attempt, which is the absurd frame.
	result := prove(t, newEngine(), "p -> q", "~p v q",
		lawScorer{id: "contraposition"},
		Options{Method: MethodAutomatic, MaxIterations: 3})

	assert.False(t, result.Success)
	assert.True(t, result.Equivalent)
	assert.Equal(t, "automatic", result.MethodUsed)
	assert.Equal(t, 3, result.Iterations)
	assert.Equal(t, "F", result.P2Final)

	require.Len(t, result.Steps, 4)
	assert.Equal(t, "absurdity_hypothesis", result.Steps[0].LawID)
	assert.Equal(t, "contraposition", result.Steps[1].LawID)
}

func TestProveContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newEngine().Prove(ctx,
		proposition.MustParse("p ^ q"), proposition.MustParse("q ^ p"),
		oracle.NewRandomScorer(1), Options{Method: MethodDirect})

	// Cancellation mid-search reports the partial attempt, not an error.
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.True(t, result.Equivalent)
	assert.Zero(t, result.Iterations)
}

func TestProveSameSeedSameTrace(t *testing.T) {
	run := func() *Result {
		return prove(t, newEngine(), "~(p ^ q)", "~p v ~q",
			oracle.NewRandomScorer(99),
			Options{Method: MethodDirect, MaxIterations: 10})
	}

	first := run()
	second := run()

	require.Equal(t, first.Success, second.Success)
	require.Equal(t, first.Iterations, second.Iterations)
	require.Len(t, second.Steps, len(first.Steps))
	for i := range first.Steps {
		assert.Equal(t, first.Steps[i].LawID, second.Steps[i].LawID)
		assert.Equal(t, first.Steps[i].Result, second.Steps[i].Result)
	}
}

// =============================================================================
// Method Metadata
// =============================================================================

func TestKnownMethod(t *testing.T) {
	for _, name := range []string{"automatic", "direct", "contrapositive", "absurd", "bidirectional"} {
		assert.True(t, KnownMethod(name), name)
	}
	assert.False(t, KnownMethod("induction"))
	assert.False(t, KnownMethod(""))
}

func TestDescribeCoversAllMethods(t *testing.T) {
	info := Describe()
	require.Len(t, info, 5)
	for _, name := range []string{"automatic", "direct", "contrapositive", "absurd", "bidirectional"} {
		entry, ok := info[name]
		require.True(t, ok, name)
		assert.NotEmpty(t, entry.Description)
		assert.NotEmpty(t, entry.Goal)
	}
}
