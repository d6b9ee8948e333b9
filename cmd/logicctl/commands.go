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
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianLogic/pkg/logging"
)

// --- Global Command Variables ---
var (
	method        string
	maxIterations int
	bidirectional bool
	verbose       bool
	seed          int64
	serverURL     string
	servePort     int
	oracleBackend string
	debugLogging  bool
	logDir        string

	cliLogger *logging.Logger

	rootCmd = &cobra.Command{
		Use:   "logicctl",
		Short: "A cli for the AleutianLogic propositional equivalence prover",
		Long: `logicctl proves logical equivalences, prints truth tables, and
				manages a local prover server.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadConfig()

			level := logging.LevelInfo
			if debugLogging {
				level = logging.LevelDebug
			}
			cliLogger = logging.New(logging.Config{
				Level:   level,
				LogDir:  logDir,
				Service: "logicctl",
			})
			slog.SetDefault(cliLogger.Slog())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cliLogger != nil {
				cliLogger.Close()
			}
		},
	}

	// --- Proving ---
	proveCmd = &cobra.Command{
		Use:   "prove [proposition1] [proposition2]",
		Short: "Prove two propositions equivalent by law rewriting",
		Args:  cobra.ExactArgs(2),
		Run:   runProve, // Defined in cmd_prove.go
	}

	tableCmd = &cobra.Command{
		Use:   "table [proposition]",
		Short: "Print the truth table of a proposition",
		Args:  cobra.ExactArgs(1),
		Run:   runTable, // Defined in cmd_prove.go
	}

	lawsCmd = &cobra.Command{
		Use:   "laws",
		Short: "List the rewrite laws available to the prover",
		Run:   runLaws, // Defined in cmd_prove.go
	}

	// --- Server ---
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the prover HTTP server in the foreground",
		Run:   runServe, // Defined in cmd_serve.go
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"Also write JSON logs to this directory")

	proveCmd.Flags().StringVarP(&method, "method", "m", "automatic",
		"Proof method: automatic, direct, contrapositive, absurd, bidirectional")
	proveCmd.Flags().IntVarP(&maxIterations, "max-iterations", "n", 0,
		"Rewrite budget per attempt (default 50)")
	proveCmd.Flags().BoolVar(&bidirectional, "bidirectional", false,
		"Allow rewriting both propositions")
	proveCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Print the full transformation trace")
	proveCmd.Flags().Int64Var(&seed, "seed", 0,
		"Guidance seed for reproducible searches (0 = time-based)")
	proveCmd.Flags().StringVar(&serverURL, "server", "",
		"Prove against a running server instead of in-process")

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0,
		"HTTP port (default 12220)")
	serveCmd.Flags().StringVar(&oracleBackend, "oracle", "",
		"Guidance backend: random, neural (default random)")

	rootCmd.AddCommand(proveCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(lawsCmd)
	rootCmd.AddCommand(serveCmd)
}
