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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianLogic/services/prover/datatypes"
	"github.com/AleutianAI/AleutianLogic/services/prover/engine"
	"github.com/AleutianAI/AleutianLogic/services/prover/laws"
	"github.com/AleutianAI/AleutianLogic/services/prover/oracle"
	"github.com/AleutianAI/AleutianLogic/services/prover/proposition"
	"github.com/AleutianAI/AleutianLogic/services/prover/truthtable"
)

// runProve proves args[0] equivalent to args[1], either in-process or
// against a running server when --server (or server_url in config.yaml)
// is set.
func runProve(cmd *cobra.Command, args []string) {
	if serverURL == "" {
		serverURL = config.ServerURL
	}
	if serverURL != "" {
		runProveRemote(args[0], args[1])
		return
	}
	runProveLocal(args[0], args[1])
}

func runProveLocal(prop1, prop2 string) {
	p1, err := proposition.Parse(prop1)
	if err != nil {
		log.Fatalf("proposition1: %v", err)
	}
	p2, err := proposition.Parse(prop2)
	if err != nil {
		log.Fatalf("proposition2: %v", err)
	}

	factory := localFactory()
	effectiveSeed := seed
	if effectiveSeed == 0 {
		effectiveSeed = time.Now().UnixNano()
	}

	eng := engine.New(laws.Catalog(), slog.Default())
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := eng.Prove(ctx, p1, p2, factory(effectiveSeed), engine.Options{
		Method:             engine.Method(method),
		MaxIterations:      maxIterations,
		AllowBidirectional: bidirectional,
		Seed:               effectiveSeed,
	})
	if err != nil {
		log.Fatalf("Proof failed: %v", err)
	}

	printResult(result)
}

// localFactory picks the guidance backend for in-process proofs.
func localFactory() oracle.Factory {
	if config.OracleBackend == "neural" {
		client, err := oracle.NewNeuralClient()
		if err != nil {
			log.Fatalf("Neural oracle unavailable: %v", err)
		}
		return oracle.NeuralFactory(client)
	}
	return oracle.RandomFactory()
}

func printResult(result *engine.Result) {
	switch {
	case result.Success:
		fmt.Printf("PROVED (%s, %d iterations)\n", result.MethodUsed, result.Iterations)
	case result.Equivalent:
		fmt.Printf("EQUIVALENT, but no proof found in %d iterations\n", result.Iterations)
	default:
		fmt.Println("NOT EQUIVALENT (truth tables differ)")
	}
	fmt.Printf("  %s  ≡  %s\n", result.P1Initial, result.P2Initial)

	if !verbose {
		return
	}
	for _, step := range result.Steps {
		fmt.Printf("  [%2d] P%d %-24s @ %-8s => %s\n",
			step.Iteration, step.Proposition, step.LawID,
			step.Position.String(), step.Result)
	}
}

func runProveRemote(prop1, prop2 string) {
	req := datatypes.ProveRequest{
		Proposition1:       prop1,
		Proposition2:       prop2,
		Method:             method,
		MaxIterations:      maxIterations,
		AllowBidirectional: bidirectional,
		Verbose:            verbose,
		Seed:               seed,
	}
	payload, err := json.Marshal(req)
	if err != nil {
		log.Fatalf("Failed to encode request: %v", err)
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	resp, err := httpClient.Post(serverURL+"/v1/prove", "application/json",
		bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Prover server unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr datatypes.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil {
			log.Fatalf("Server rejected request: %s", apiErr.Message)
		}
		log.Fatalf("Server returned status %d", resp.StatusCode)
	}

	var decoded datatypes.ProveResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}

	fmt.Println(decoded.Message)
	if verbose {
		for _, tr := range decoded.Transformations {
			fmt.Printf("  [%2d] P%d %-24s @ %-8s => %s\n",
				tr.Iteration, tr.Proposition, tr.Law, tr.Position, tr.Result)
		}
	}
}

// runTable prints the truth table of a single proposition, one column per
// distinct subexpression.
func runTable(cmd *cobra.Command, args []string) {
	expr, err := proposition.Parse(args[0])
	if err != nil {
		log.Fatalf("Syntax error: %v", err)
	}

	table, err := truthtable.New(expr, expr, 0)
	if err != nil {
		log.Fatalf("Cannot enumerate: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, name := range table.Variables {
		fmt.Fprintf(w, "%s\t", name)
	}
	for _, sub := range table.SubexpressionsP1 {
		fmt.Fprintf(w, "%s\t", sub)
	}
	fmt.Fprintln(w)

	for _, row := range table.Rows {
		for _, v := range row.Assignment {
			fmt.Fprintf(w, "%s\t", boolSymbol(v))
		}
		for _, v := range row.ValuesP1 {
			fmt.Fprintf(w, "%s\t", boolSymbol(v))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
}

func boolSymbol(v bool) string {
	if v {
		return "T"
	}
	return "F"
}

// runLaws lists the rewrite law catalog in registration order.
func runLaws(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, law := range laws.Catalog() {
		fmt.Fprintf(w, "%s\t%s\n", law.ID, law.Description)
	}
	w.Flush()
}
