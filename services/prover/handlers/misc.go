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
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AleutianAI/AleutianLogic/services/prover/datatypes"
	"github.com/AleutianAI/AleutianLogic/services/prover/engine"
	"github.com/AleutianAI/AleutianLogic/services/prover/laws"
	"github.com/AleutianAI/AleutianLogic/services/prover/oracle"
)

// statusProbeTimeout bounds the /status liveness probe of the scoring
// service so a dead model cannot hang the endpoint.
const statusProbeTimeout = 2 * time.Second

// HealthCheck reports process liveness.
func HealthCheck() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleStatus reports service readiness and guidance-model availability.
//
// model_loaded is true only when the neural backend is configured and its
// health probe answers; the random backend always reports false.
func HandleStatus(backend string, neural *oracle.NeuralClient, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		modelLoaded := false
		if neural != nil {
			ctx, cancel := contextWithProbeTimeout(c)
			modelLoaded = neural.Healthy(ctx)
			cancel()
		}
		c.JSON(http.StatusOK, datatypes.StatusResponse{
			Status:        "ready",
			ModelLoaded:   modelLoaded,
			OracleBackend: backend,
			Version:       version,
		})
	}
}

func contextWithProbeTimeout(c *gin.Context) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), statusProbeTimeout)
}

// HandleSyntax describes the accepted proposition grammar.
func HandleSyntax() gin.HandlerFunc {
	resp := datatypes.SyntaxResponse{
		Operators: map[string][]string{
			"not":     {"~", "!", "¬", "NOT"},
			"and":     {"^", "&", "*", "∧", "AND"},
			"or":      {"v", "|", "+", "∨", "OR"},
			"implies": {"->", "=>", "→", "IMPLIES"},
		},
		Constants: map[string]string{
			"true":  "T",
			"false": "F",
		},
		Grouping: "Parentheses; implication binds loosest and associates right, negation binds tightest",
		Examples: []string{
			"p ^ q",
			"~(p v q)",
			"p -> (q -> r)",
			"(p ^ T) v F",
		},
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}

// HandleMethods lists the proof methods and the rewrite laws they draw on.
func HandleMethods() gin.HandlerFunc {
	type lawInfo struct {
		ID          string `json:"id"`
		Description string `json:"description"`
	}

	lawList := make([]lawInfo, 0, len(laws.Catalog()))
	for _, law := range laws.Catalog() {
		lawList = append(lawList, lawInfo{ID: law.ID, Description: law.Description})
	}
	resp := gin.H{
		"methods": engine.Describe(),
		"laws":    lawList,
		"default": string(engine.MethodAutomatic),
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
