// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/AleutianLogic/services/prover/engine"
	"github.com/AleutianAI/AleutianLogic/services/prover/handlers"
	"github.com/AleutianAI/AleutianLogic/services/prover/oracle"
)

// SetupRoutes registers all endpoints of the prover service.
//
// neural may be nil when the random guidance backend is configured; the
// /status handler then reports model_loaded=false without probing.
func SetupRoutes(router *gin.Engine, eng *engine.Engine, factory oracle.Factory,
	backend string, neural *oracle.NeuralClient, version string, maxVariables int) {

	router.GET("/health", handlers.HealthCheck())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/status", handlers.HandleStatus(backend, neural, version))
	router.GET("/syntax", handlers.HandleSyntax())
	router.GET("/methods", handlers.HandleMethods())

	// Top-level alias kept for clients that predate the v1 group.
	router.POST("/prove", handlers.HandleProve(eng, factory, maxVariables))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/prove", handlers.HandleProve(eng, factory, maxVariables))
		v1.GET("/status", handlers.HandleStatus(backend, neural, version))
		v1.GET("/syntax", handlers.HandleSyntax())
		v1.GET("/methods", handlers.HandleMethods())
	}
}
