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
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"github.com/jimberry1/sudoku/services/solver"
	"github.com/jimberry1/sudoku/services/solver/cache"
	"github.com/jimberry1/sudoku/services/solver/config"
	"github.com/jimberry1/sudoku/services/solver/corpus"
	"github.com/jimberry1/sudoku/services/solver/telemetry"
)

// runServe starts the solver HTTP service and blocks until SIGINT or
// SIGTERM, then drains in-flight requests.
func runServe(cmd *cobra.Command, args []string) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "sudoku-solver",
		ServiceVersion: solver.ServiceVersion,
		Environment:    cfg.Telemetry.Environment,
		TraceExporter:  cfg.Telemetry.TraceExporter,
		MetricExporter: cfg.Telemetry.MetricExporter,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure:   true,
	})
	if err != nil {
		log.Fatalf("Error initializing telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	metrics, err := telemetry.NewMetrics(otel.Meter("sudoku-solver"))
	if err != nil {
		log.Fatalf("Error creating metrics: %v", err)
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.Path = cfg.Cache.Dir
	cacheCfg.InMemory = cfg.Cache.InMemory
	store, err := cache.Open(cacheCfg)
	if err != nil {
		log.Fatalf("Error opening solution cache: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("cache close failed", "error", err)
		}
	}()

	corpusCfg := corpus.DefaultConfig()
	corpusCfg.BaseURL = cfg.Corpus.BaseURL
	corpusCfg.Workers = cfg.Corpus.Workers
	corpusCfg.RequestsPerSecond = cfg.Corpus.RequestsPerSecond
	corpusClient, err := corpus.NewClient(corpusCfg)
	if err != nil {
		log.Fatalf("Error creating corpus client: %v", err)
	}

	svc := solver.NewService(&solver.ServiceConfig{
		Cache:   store,
		Corpus:  corpusClient,
		Metrics: metrics,
	})
	handlers := solver.NewHandlers(svc)

	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Debug {
		router.Use(gin.Logger())
	}
	router.Use(otelgin.Middleware("sudoku-solver"))

	v1 := router.Group("/v1")
	solver.RegisterRoutes(v1, handlers)

	if cfg.Telemetry.MetricExporter == "prometheus" {
		router.GET("/metrics", gin.WrapH(telemetry.MetricsHandler()))
	}

	// Log config file changes; the running server keeps its settings
	// until restart, but the operator sees what will apply.
	watcher, err := config.NewWatcher(configPath, func(next config.Config) {
		slog.Info("configuration file changed; restart to apply",
			"path", configPath, "port", next.Server.Port)
	})
	if err != nil {
		slog.Warn("config watcher unavailable", "error", err)
	} else {
		go watcher.Start(ctx)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("starting sudoku solver service", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
