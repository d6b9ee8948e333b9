// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package prover provides the propositional equivalence prover service.
//
// This package contains the main service type that coordinates all
// components: HTTP routing, the proof engine, the guidance oracle
// backend, and observability infrastructure.
//
// # Usage
//
//	cfg := prover.Config{Port: 12220, OracleBackend: "random"}
//	svc, err := prover.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
package prover

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/AleutianLogic/services/prover/engine"
	"github.com/AleutianAI/AleutianLogic/services/prover/laws"
	"github.com/AleutianAI/AleutianLogic/services/prover/observability"
	"github.com/AleutianAI/AleutianLogic/services/prover/oracle"
	"github.com/AleutianAI/AleutianLogic/services/prover/routes"
)

// Version is the service version reported by /status.
const Version = "1.2.0"

// =============================================================================
// Interface Definition
// =============================================================================

// Service defines the contract for the prover service.
//
// # Description
//
// Service abstracts the prover lifecycle, enabling testing and
// alternative implementations. Only essential lifecycle methods are
// exposed.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Run() blocks and
// should only be called once per instance.
type Service interface {
	// Run starts the HTTP server and blocks until shutdown or error.
	Run() error

	// Router returns the underlying Gin engine for testing. Callers must
	// not modify routes after construction.
	Router() *gin.Engine
}

// =============================================================================
// Configuration
// =============================================================================

// Config holds prover service configuration options.
//
// All fields are optional; New() applies defaults for zero values.
type Config struct {
	// Port is the HTTP server port. Default: 12220
	Port int

	// OracleBackend selects the guidance scorer.
	// Valid values: "random", "neural". Default: "random"
	OracleBackend string

	// OTelEndpoint is the OpenTelemetry collector endpoint.
	// Default: "aleutian-otel-collector:4317"
	OTelEndpoint string

	// EnableMetrics enables the Prometheus /metrics endpoint.
	// Default: true
	EnableMetrics bool

	// GinMode sets the Gin framework mode ("debug", "release", "test").
	// Default: uses GIN_MODE env var or "debug"
	GinMode string

	// MaxVariables caps truth-table enumeration per request.
	// Default: the evaluator's built-in cap (20).
	MaxVariables int
}

// =============================================================================
// Implementation
// =============================================================================

// service implements Service for production use.
//
// # Thread Safety
//
// Thread-safe after construction. All fields are read-only after New()
// returns.
type service struct {
	config        Config
	router        *gin.Engine
	engine        *engine.Engine
	factory       oracle.Factory
	neuralClient  *oracle.NeuralClient
	tracerCleanup func(context.Context)
}

// =============================================================================
// Constructor
// =============================================================================

// New creates a new prover Service with the given configuration.
//
// # Description
//
// New initializes all prover components:
//  1. Applies default configuration for missing values
//  2. Initializes OpenTelemetry tracing
//  3. Initializes Prometheus metrics
//  4. Creates the guidance oracle backend
//  5. Builds the proof engine over the full law catalog
//  6. Sets up HTTP routes
//
// # Outputs
//
//   - Service: Ready-to-run prover service
//   - error: Non-nil if initialization fails
func New(cfg Config) (Service, error) {
	s := &service{
		config: applyConfigDefaults(cfg),
	}

	cleanup, err := s.initTracer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	s.tracerCleanup = cleanup

	// Metrics register in the process-wide default registry, so only the
	// first service instance initializes them.
	if s.config.EnableMetrics && observability.DefaultMetrics == nil {
		observability.InitMetrics()
		slog.Info("Initialized Prometheus metrics for proof search")
	}

	if err := s.initOracle(); err != nil {
		s.cleanup()
		return nil, fmt.Errorf("failed to initialize guidance oracle: %w", err)
	}

	s.engine = engine.New(laws.Catalog(), slog.Default())

	s.initRouter()

	return s, nil
}

// =============================================================================
// Service Interface Methods
// =============================================================================

// Run starts the HTTP server and blocks until shutdown or error.
// Cleanup is automatic on return.
func (s *service) Run() error {
	defer s.cleanup()

	addr := fmt.Sprintf(":%d", s.config.Port)
	slog.Info("Starting prover server", "port", s.config.Port,
		"oracle_backend", s.config.OracleBackend)

	return s.router.Run(addr)
}

// Router returns the underlying Gin engine for testing.
func (s *service) Router() *gin.Engine {
	return s.router
}

// =============================================================================
// Private Initialization Methods
// =============================================================================

// applyConfigDefaults fills in missing configuration values.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 12220
	}
	if cfg.OracleBackend == "" {
		cfg.OracleBackend = "random"
	}
	if cfg.OTelEndpoint == "" {
		cfg.OTelEndpoint = "aleutian-otel-collector:4317"
	}
	cfg.EnableMetrics = true

	return cfg
}

// initTracer initializes OpenTelemetry distributed tracing.
//
// # Limitations
//
//   - Uses insecure gRPC connection (appropriate for internal networks)
//
// # Assumptions
//
//   - OTel collector is reachable at configured endpoint
func (s *service) initTracer() (func(context.Context), error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(s.config.OTelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("prover-service")))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	cleanup := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}

	return cleanup, nil
}

// initOracle creates the guidance scorer factory for the configured
// backend.
//
// The neural backend requires ORACLE_SERVICE_URL; the factory it builds
// degrades each request to seeded random guidance if the model fails
// mid-search.
func (s *service) initOracle() error {
	switch s.config.OracleBackend {
	case "neural":
		client, err := oracle.NewNeuralClient()
		if err != nil {
			return err
		}
		s.neuralClient = client
		s.factory = oracle.NeuralFactory(client)
		slog.Info("Using neural guidance oracle backend")
	case "random":
		s.factory = oracle.RandomFactory()
		slog.Info("Using random guidance oracle backend")
	default:
		slog.Warn("Unknown oracle backend, defaulting to random",
			"backend", s.config.OracleBackend)
		s.config.OracleBackend = "random"
		s.factory = oracle.RandomFactory()
	}

	return nil
}

// initRouter sets up the Gin HTTP router with all routes.
func (s *service) initRouter() {
	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	}

	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("prover-service"))

	routes.SetupRoutes(s.router, s.engine, s.factory, s.config.OracleBackend,
		s.neuralClient, Version, s.config.MaxVariables)
}

// cleanup releases all resources held by the service.
func (s *service) cleanup() {
	if s.tracerCleanup != nil {
		s.tracerCleanup(context.Background())
	}
}

// =============================================================================
// Compile-time Interface Compliance
// =============================================================================

var _ Service = (*service)(nil)
