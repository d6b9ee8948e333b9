// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianLogic/services/prover"
)

// runServe runs the prover HTTP server in the foreground. Flags override
// config.yaml, which overrides the service defaults.
func runServe(cmd *cobra.Command, args []string) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := prover.Config{
		Port:          servePort,
		OracleBackend: oracleBackend,
	}
	if cfg.Port == 0 {
		cfg.Port = config.Port
	}
	if cfg.OracleBackend == "" {
		cfg.OracleBackend = config.OracleBackend
	}

	svc, err := prover.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create prover: %v", err)
	}
	if err := svc.Run(); err != nil {
		log.Fatalf("Prover error: %v", err)
	}
}
