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
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the optional logicctl configuration file.
type Config struct {
	// ServerURL is the prover service base URL used by remote commands.
	ServerURL string `yaml:"server_url"`

	// OracleBackend selects guidance for local proofs: random, neural.
	OracleBackend string `yaml:"oracle_backend"`

	// Port used by `logicctl serve`.
	Port int `yaml:"port"`
}

var config Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

// loadConfig reads config.yaml if present. Missing files are fine: every
// field has a flag or default.
func loadConfig() {
	yamlFile, err := os.ReadFile("config.yaml")
	if err != nil {
		return
	}
	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		log.Fatalf("Error parsing config.yaml: %v", err)
	}
}
