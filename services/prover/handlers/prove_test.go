// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianLogic/services/prover/datatypes"
	"github.com/AleutianAI/AleutianLogic/services/prover/engine"
	"github.com/AleutianAI/AleutianLogic/services/prover/laws"
	"github.com/AleutianAI/AleutianLogic/services/prover/observability"
	"github.com/AleutianAI/AleutianLogic/services/prover/oracle"
)

// =============================================================================
// Test Setup
// =============================================================================

func init() {
	// Set Gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
	observability.InitMetrics()
}

// createProveRouter builds a router with only the prove endpoint mounted.
func createProveRouter(maxVariables int) *gin.Engine {
	eng := engine.New(laws.Catalog(), nil)
	router := gin.New()
	router.POST("/prove", HandleProve(eng, oracle.RandomFactory(), maxVariables))
	return router
}

// performRequest executes an HTTP request against the test router.
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeProveResponse(t *testing.T, w *httptest.ResponseRecorder) datatypes.ProveResponse {
	t.Helper()
	var resp datatypes.ProveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) datatypes.ErrorResponse {
	t.Helper()
	var resp datatypes.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// =============================================================================
// Validation
// =============================================================================

func TestHandleProveRejectsMalformedBody(t *testing.T) {
	router := createProveRouter(0)

	req, _ := http.NewRequest("POST", "/prove", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decodeErrorResponse(t, w).Error)
}

func TestHandleProveRequiresBothPropositions(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1: "p ^ q",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", decodeErrorResponse(t, w).Error)
}

func TestHandleProveRejectsUnknownMethod(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1: "p",
		Proposition2: "p",
		Method:       "induction",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_method", decodeErrorResponse(t, w).Error)
}

func TestHandleProveRejectsOversizedBudget(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1:  "p",
		Proposition2:  "p",
		MaxIterations: 501,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeErrorResponse(t, w).Message, "between 0 and 500")
}

func TestHandleProveRejectsNegativeBudget(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1:  "p",
		Proposition2:  "p",
		MaxIterations: -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeErrorResponse(t, w)
	assert.Equal(t, "invalid_request", resp.Error)
	assert.Contains(t, resp.Message, "between 0 and 500")
}

func TestHandleProveZeroBudgetAppliesDefault(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1: "~~p",
		Proposition2: "p",
		Method:       "direct",
		Seed:         42,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeProveResponse(t, w).Success)
}

func TestHandleProveRejectsBadSyntax(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1: "p ^",
		Proposition2: "p",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeErrorResponse(t, w)
	assert.Equal(t, "syntax_error", resp.Error)
	assert.Contains(t, resp.Message, "proposition1")
}

func TestHandleProveRejectsTooManyVariables(t *testing.T) {
	router := createProveRouter(2)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1: "a ^ b ^ c",
		Proposition2: "c ^ b ^ a",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "too_many_variables", decodeErrorResponse(t, w).Error)
}

// =============================================================================
// Outcomes
// =============================================================================

func TestHandleProveSuccess(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1: "~~p",
		Proposition2: "p",
		Method:       "direct",
		Seed:         42,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeProveResponse(t, w)
	assert.True(t, resp.Success)
	assert.True(t, resp.Equivalent)
	assert.Equal(t, "direct", resp.MethodUsed)
	assert.Equal(t, 1, resp.Iterations)
	assert.Equal(t, "~~p", resp.Proposition1Initial)
	assert.Equal(t, "p", resp.Proposition1Final)
	assert.Nil(t, resp.TruthTable, "truth table is verbose-only")
	assert.NotEmpty(t, resp.Message)

	require.Len(t, resp.Transformations, 1)
	tr := resp.Transformations[0]
	assert.Equal(t, 1, tr.Iteration)
	assert.Equal(t, 1, tr.Proposition)
	assert.Equal(t, "double_negation", tr.Law)
	assert.Equal(t, "root", tr.Position)
	assert.Equal(t, "p", tr.Result)
}

func TestHandleProveNotEquivalentIsStillOK(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1: "p ^ q",
		Proposition2: "p v q",
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeProveResponse(t, w)
	assert.False(t, resp.Success)
	assert.False(t, resp.Equivalent)
	assert.Equal(t, "semantic_check", resp.MethodUsed)
	assert.Empty(t, resp.Transformations)
}

func TestHandleProveVerboseIncludesTruthTable(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1: "p ^ q",
		Proposition2: "q ^ p",
		Verbose:      true,
		Seed:         7,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeProveResponse(t, w)
	require.NotNil(t, resp.TruthTable)
	assert.Equal(t, []string{"p", "q"}, resp.TruthTable.Variables)
	assert.Len(t, resp.TruthTable.Rows, 4)
	assert.Equal(t, []string{"(p ^ q)", "p", "q"}, resp.TruthTable.SubexpressionsP1)
}

func TestHandleProveDefaultsMethodToAutomatic(t *testing.T) {
	router := createProveRouter(0)

	w := performRequest(router, "POST", "/prove", datatypes.ProveRequest{
		Proposition1: "p ^ q",
		Proposition2: "q ^ p",
		Seed:         7,
	})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeProveResponse(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "direct", resp.MethodUsed, "automatic reports the winning strategy")
}

func TestHandleProveSeedReproducible(t *testing.T) {
	router := createProveRouter(0)
	body := datatypes.ProveRequest{
		Proposition1:  "~(p ^ q)",
		Proposition2:  "~p v ~q",
		Method:        "direct",
		MaxIterations: 10,
		Seed:          1234,
	}

	first := decodeProveResponse(t, performRequest(router, "POST", "/prove", body))
	second := decodeProveResponse(t, performRequest(router, "POST", "/prove", body))

	assert.Equal(t, first.Success, second.Success)
	assert.Equal(t, first.Iterations, second.Iterations)
	assert.Equal(t, first.Proposition1Final, second.Proposition1Final)
	require.Len(t, second.Transformations, len(first.Transformations))
	for i := range first.Transformations {
		assert.Equal(t, first.Transformations[i], second.Transformations[i])
	}
}
