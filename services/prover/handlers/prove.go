// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers contains the gin HTTP handlers of the prover service.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/AleutianLogic/services/prover/datatypes"
	"github.com/AleutianAI/AleutianLogic/services/prover/engine"
	"github.com/AleutianAI/AleutianLogic/services/prover/observability"
	"github.com/AleutianAI/AleutianLogic/services/prover/oracle"
	"github.com/AleutianAI/AleutianLogic/services/prover/proposition"
	"github.com/AleutianAI/AleutianLogic/services/prover/truthtable"
)

// MaxIterationsLimit bounds the per-request rewrite budget.
const MaxIterationsLimit = 500

// proveTimeout bounds the wall-clock time of one proof search. Exhausted
// searches still return their partial trace; the timeout only stops the
// loop, it does not fail the request.
const proveTimeout = 30 * time.Second

// HandleProve runs an equivalence proof between two propositions.
//
// # Description
//
// Parses and validates both propositions, then delegates to the proof
// engine. Validation and syntax failures return 400; propositions whose
// joint variable set exceeds the evaluator cap return 422. A failed proof
// search is a 200 with success=false.
//
// # Inputs
//
//   - eng: The proof engine, shared across requests.
//   - factory: Builds a per-request guidance scorer from a seed.
//   - maxVariables: Truth-table variable cap; <= 0 uses the evaluator
//     default.
//
// # Outputs
//
//   - 200: datatypes.ProveResponse
//   - 400: datatypes.ErrorResponse (malformed body, bad method, bad
//     budget, syntax error)
//   - 422: datatypes.ErrorResponse (too many variables)
func HandleProve(eng *engine.Engine, factory oracle.Factory, maxVariables int) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		started := time.Now()

		var req datatypes.ProveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{
				Error:   "invalid_request",
				Message: "Request body must be valid JSON",
			})
			return
		}

		if req.Proposition1 == "" || req.Proposition2 == "" {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{
				Error:   "invalid_request",
				Message: "Both proposition1 and proposition2 are required",
			})
			return
		}

		if req.Method == "" {
			req.Method = string(engine.MethodAutomatic)
		}
		if !engine.KnownMethod(req.Method) {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{
				Error:   "invalid_method",
				Message: fmt.Sprintf("Unknown proof method %q", req.Method),
			})
			return
		}

		if req.MaxIterations < 0 || req.MaxIterations > MaxIterationsLimit {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{
				Error: "invalid_request",
				Message: fmt.Sprintf("max_iterations must be between 0 and %d; 0 applies the default of %d",
					MaxIterationsLimit, engine.DefaultMaxIterations),
			})
			return
		}

		p1, err := proposition.Parse(req.Proposition1)
		if err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{
				Error:   "syntax_error",
				Message: fmt.Sprintf("proposition1: %v", err),
			})
			return
		}
		p2, err := proposition.Parse(req.Proposition2)
		if err != nil {
			c.JSON(http.StatusBadRequest, datatypes.ErrorResponse{
				Error:   "syntax_error",
				Message: fmt.Sprintf("proposition2: %v", err),
			})
			return
		}

		seed := req.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		scorer := factory(seed)
		guidedAtStart := scorer.Guided()

		slog.Info("Received prove request",
			"request_id", requestID,
			"method", req.Method,
			"max_iterations", req.MaxIterations,
			"guided", guidedAtStart)

		ctx, cancel := newProveContext(c)
		defer cancel()

		if m := observability.DefaultMetrics; m != nil {
			m.ProofStarted()
			defer m.ProofEnded()
		}

		result, err := eng.Prove(ctx, p1, p2, scorer, engine.Options{
			Method:             engine.Method(req.Method),
			MaxIterations:      req.MaxIterations,
			AllowBidirectional: req.AllowBidirectional,
			Seed:               seed,
			MaxVariables:       maxVariables,
		})
		if err != nil {
			var tooMany *truthtable.TooManyVariablesError
			if errors.As(err, &tooMany) {
				recordProof(req.Method, observability.OutcomeInvalid, 0, started)
				c.JSON(http.StatusUnprocessableEntity, datatypes.ErrorResponse{
					Error:   "too_many_variables",
					Message: err.Error(),
				})
				return
			}
			slog.Error("Proof engine failed", "request_id", requestID, "error", err)
			c.JSON(http.StatusInternalServerError, datatypes.ErrorResponse{
				Error:   "internal_error",
				Message: "Proof engine failed",
			})
			return
		}

		if guidedAtStart && !scorer.Guided() {
			if m := observability.DefaultMetrics; m != nil {
				m.RecordOracleFallback()
			}
		}

		recordProof(result.MethodUsed, outcomeOf(result), result.Iterations, started)
		if m := observability.DefaultMetrics; m != nil && result.Table != nil {
			m.RecordTruthTableRows(len(result.Table.Rows))
		}

		slog.Info("Prove request complete",
			"request_id", requestID,
			"success", result.Success,
			"equivalent", result.Equivalent,
			"method_used", result.MethodUsed,
			"iterations", result.Iterations,
			"duration_ms", time.Since(started).Milliseconds())

		c.JSON(http.StatusOK, buildProveResponse(result, req.Verbose))
	}
}

// newProveContext derives the search context from the request, bounded by
// the wall-clock proof budget.
func newProveContext(c *gin.Context) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), proveTimeout)
}

func outcomeOf(result *engine.Result) observability.Outcome {
	switch {
	case result.Success:
		return observability.OutcomeProved
	case !result.Equivalent:
		return observability.OutcomeNotEquivalent
	default:
		return observability.OutcomeExhausted
	}
}

func recordProof(method string, outcome observability.Outcome, iterations int, started time.Time) {
	if m := observability.DefaultMetrics; m != nil {
		m.RecordProof(method, outcome, iterations, time.Since(started).Seconds())
	}
}

// buildProveResponse maps an engine result onto the wire DTO. The truth
// table is verbose-only; the transformation trace and the scalar summary
// fields are always present.
func buildProveResponse(result *engine.Result, verbose bool) datatypes.ProveResponse {
	resp := datatypes.ProveResponse{
		Success:             result.Success,
		Equivalent:          result.Equivalent,
		MethodUsed:          result.MethodUsed,
		Iterations:          result.Iterations,
		NNPredictions:       result.NNPredictions,
		Proposition1Initial: result.P1Initial,
		Proposition2Initial: result.P2Initial,
		Proposition1Final:   result.P1Final,
		Proposition2Final:   result.P2Final,
		Transformations:     []datatypes.Transformation{},
		Message:             proveMessage(result),
	}

	for _, step := range result.Steps {
		resp.Transformations = append(resp.Transformations, datatypes.Transformation{
			Iteration:   step.Iteration,
			Proposition: step.Proposition,
			Law:         step.LawID,
			Position:    step.Position.String(),
			Result:      step.Result,
			GuidedByNN:  step.GuidedByNN,
		})
	}

	if verbose && result.Table != nil {
		resp.TruthTable = buildTruthTable(result.Table)
	}
	return resp
}

func buildTruthTable(t *truthtable.Table) *datatypes.TruthTable {
	out := &datatypes.TruthTable{
		Variables:        t.Variables,
		SubexpressionsP1: t.SubexpressionsP1,
		SubexpressionsP2: t.SubexpressionsP2,
		Rows:             make([]datatypes.TruthTableRow, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		out.Rows = append(out.Rows, datatypes.TruthTableRow{
			Assignment: row.Assignment,
			ValuesP1:   row.ValuesP1,
			ValuesP2:   row.ValuesP2,
			P1:         row.Prop1,
			P2:         row.Prop2,
		})
	}
	return out
}

func proveMessage(result *engine.Result) string {
	switch {
	case result.MethodUsed == "semantic_check":
		return "Propositions are not equivalent: their truth tables differ"
	case result.MethodUsed == "syntactic_equality":
		return "Propositions are already syntactically identical"
	case result.Success:
		return fmt.Sprintf("Equivalence proved by the %s method in %d iterations",
			result.MethodUsed, result.Iterations)
	default:
		return fmt.Sprintf("Propositions are equivalent, but no proof was found within %d iterations",
			result.Iterations)
	}
}
