// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command prover starts the AleutianLogic equivalence prover HTTP server.
//
// This is the main entry point for the containerized prover service.
// It reads configuration from environment variables and starts the server.
//
// # Environment Variables
//
//   - PROVER_PORT: HTTP server port (default: 12220)
//   - ORACLE_BACKEND: Guidance scorer - random, neural (default: random)
//   - ORACLE_SERVICE_URL: Scoring model URL (required for neural backend)
//   - PROVER_MAX_VARIABLES: Truth-table variable cap (default: 20)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OpenTelemetry collector (default: aleutian-otel-collector:4317)
//
// # Usage
//
//	# Build
//	go build -o prover ./cmd/prover
//
//	# Run
//	./prover
//
//	# Or via container
//	podman-compose up prover
package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"

	"github.com/AleutianAI/AleutianLogic/services/prover"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Build configuration from environment variables
	cfg := prover.Config{
		Port:          getEnvInt("PROVER_PORT", 12220),
		OracleBackend: getEnvString("ORACLE_BACKEND", "random"),
		OTelEndpoint:  getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", "aleutian-otel-collector:4317"),
		MaxVariables:  getEnvInt("PROVER_MAX_VARIABLES", 0),
	}

	slog.Info("Starting prover",
		"port", cfg.Port,
		"oracle_backend", cfg.OracleBackend,
	)

	svc, err := prover.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create prover: %v", err)
	}

	// Run the server (blocks until shutdown)
	if err := svc.Run(); err != nil {
		log.Fatalf("Prover error: %v", err)
	}
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
