// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// NeuralClient calls the external pre-trained scoring model over HTTP.
//
// The model itself is opaque here: the client posts a candidate's feature
// encoding and reads back a single preference score. Training and
// architecture live in the inference service.
//
// # Thread Safety
//
// Safe for concurrent use; the underlying http.Client is shared across
// requests.
type NeuralClient struct {
	httpClient *http.Client
	baseURL    string
}

type scoreRequest struct {
	Candidate Candidate `json:"candidate"`
}

type scoreResponse struct {
	Score float64 `json:"score"`
}

// NewNeuralClient builds the client from environment configuration.
//
// # Environment Variables
//
//   - ORACLE_SERVICE_URL: Base URL of the scoring service (required).
//   - ORACLE_TIMEOUT_MS: Per-call timeout in milliseconds (default: 2000).
func NewNeuralClient() (*NeuralClient, error) {
	baseURL := os.Getenv("ORACLE_SERVICE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("ORACLE_SERVICE_URL environment variable not set")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	timeout := 2000 * time.Millisecond
	if raw := os.Getenv("ORACLE_TIMEOUT_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			timeout = time.Duration(ms) * time.Millisecond
		}
	}

	return &NeuralClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}, nil
}

// Score posts the candidate to the scoring service.
//
// All transport and decoding failures are wrapped as ErrUnavailable so the
// caller can fall back to random guidance without inspecting the cause.
func (c *NeuralClient) Score(ctx context.Context, cand Candidate) (float64, error) {
	payload, err := json.Marshal(scoreRequest{Candidate: cand})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/score", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: scoring service returned status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var decoded scoreResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return decoded.Score, nil
}

// Guided reports true: scores come from the trained model.
func (c *NeuralClient) Guided() bool {
	return true
}

// Healthy probes the scoring service liveness endpoint. Used by /status to
// report whether the guidance model is reachable.
func (c *NeuralClient) Healthy(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// NeuralFactory returns a Factory that guides with the model and degrades
// to seeded random scores if the model fails mid-request.
func NeuralFactory(client *NeuralClient) Factory {
	return func(seed int64) Scorer {
		return WithFallback(client, NewRandomScorer(seed))
	}
}
