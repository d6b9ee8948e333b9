// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes holds the request and response contracts of the
// prover service.
package datatypes

// ProveRequest is the body of POST /prove.
type ProveRequest struct {
	// Proposition1 and Proposition2 are the propositions to connect,
	// e.g. "p ^ q" and "q ^ p".
	Proposition1 string `json:"proposition1"`
	Proposition2 string `json:"proposition2"`

	// Method selects the proof strategy:
	// automatic, direct, contrapositive, absurd, bidirectional.
	// Default: automatic.
	Method string `json:"method"`

	// MaxIterations caps rewrite steps per attempt (1..500, default 50).
	MaxIterations int `json:"max_iterations"`

	// AllowBidirectional permits rewriting both propositions.
	AllowBidirectional bool `json:"allow_bidirectional"`

	// Verbose includes the full transformation trace in the response.
	Verbose bool `json:"verbose"`

	// Seed makes the random guidance and tie-breaking reproducible.
	// 0 draws a time-based seed.
	Seed int64 `json:"seed"`
}

// Transformation is one trace entry of a proof.
type Transformation struct {
	Iteration   int    `json:"iteration"`
	Proposition int    `json:"proposition"`
	Law         string `json:"law"`
	Position    string `json:"position"`
	Result      string `json:"result"`
	GuidedByNN  bool   `json:"guided_by_nn"`
}

// TruthTableRow is one assignment with everything evaluated under it.
type TruthTableRow struct {
	Assignment []bool `json:"assignment"`
	ValuesP1   []bool `json:"values_p1"`
	ValuesP2   []bool `json:"values_p2"`
	P1         bool   `json:"p1"`
	P2         bool   `json:"p2"`
}

// TruthTable is the joint truth table of the initial propositions.
type TruthTable struct {
	Variables        []string        `json:"variables"`
	SubexpressionsP1 []string        `json:"subexpressions_p1"`
	SubexpressionsP2 []string        `json:"subexpressions_p2"`
	Rows             []TruthTableRow `json:"rows"`
}

// ProveResponse is the result DTO of POST /prove.
//
// success=false with a 200 status means the prover could not find a
// syntactic proof; equivalent still carries the truth-table verdict.
type ProveResponse struct {
	Success             bool             `json:"success"`
	Equivalent          bool             `json:"equivalent"`
	MethodUsed          string           `json:"method_used"`
	Iterations          int              `json:"iterations"`
	NNPredictions       int              `json:"nn_predictions"`
	Proposition1Initial string           `json:"proposition1_initial"`
	Proposition2Initial string           `json:"proposition2_initial"`
	Proposition1Final   string           `json:"proposition1_final"`
	Proposition2Final   string           `json:"proposition2_final"`
	Transformations     []Transformation `json:"transformations"`
	TruthTable          *TruthTable      `json:"truth_table,omitempty"`
	Message             string           `json:"message"`
}

// ErrorResponse is the uniform error body for 4xx results.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	Status        string `json:"status"`
	ModelLoaded   bool   `json:"model_loaded"`
	OracleBackend string `json:"oracle_backend"`
	Version       string `json:"version"`
}

// SyntaxResponse describes the accepted proposition syntax.
type SyntaxResponse struct {
	Operators map[string][]string `json:"operators"`
	Constants map[string]string   `json:"constants"`
	Grouping  string              `json:"grouping"`
	Examples  []string            `json:"examples"`
}
