// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads and validates the solver service configuration
// from YAML, with environment-variable overrides for deployment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the root service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Cache     CacheConfig     `yaml:"cache"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	// Port is the listen port for the gin server.
	Port int `yaml:"port" validate:"min=1,max=65535"`

	// Debug enables gin debug mode and request logging.
	Debug bool `yaml:"debug"`
}

// CacheConfig configures the BadgerDB solution cache.
type CacheConfig struct {
	// Dir is the directory for cache files. Ignored when InMemory.
	Dir string `yaml:"dir"`

	// InMemory disables persistence (testing, ephemeral deploys).
	InMemory bool `yaml:"in_memory"`
}

// CorpusConfig configures the puzzle-corpus client.
type CorpusConfig struct {
	// BaseURL is the corpus endpoint root.
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// Difficulty is the default difficulty for fetched puzzles.
	Difficulty string `yaml:"difficulty" validate:"oneof=easy medium hard random"`

	// Workers bounds parallel fetches.
	Workers int `yaml:"workers" validate:"min=1,max=64"`

	// RequestsPerSecond caps the request rate. Zero disables limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"min=0"`
}

// TelemetryConfig configures tracing and metrics export.
type TelemetryConfig struct {
	// TraceExporter selects the trace exporter: otlp, stdout, or none.
	TraceExporter string `yaml:"trace_exporter" validate:"oneof=otlp stdout none"`

	// MetricExporter selects the metric exporter: prometheus, stdout, or none.
	MetricExporter string `yaml:"metric_exporter" validate:"oneof=prometheus stdout none"`

	// OTLPEndpoint is the OTLP receiver endpoint for traces.
	OTLPEndpoint string `yaml:"otlp_endpoint"`

	// Environment names the deployment environment.
	Environment string `yaml:"environment"`
}

// Default returns the development configuration.
//
// Environment variables override defaults where applicable:
//   - SUDOKU_PORT: server port
//   - SUDOKU_CACHE_DIR: cache directory
//   - SUDOKU_CORPUS_URL: corpus endpoint
//   - SUDOKU_ENV: environment name
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint
func Default() Config {
	return Config{
		Server: ServerConfig{Port: envIntOr("SUDOKU_PORT", 8080)},
		Cache: CacheConfig{
			Dir: getEnvOr("SUDOKU_CACHE_DIR", "./data/solutions"),
		},
		Corpus: CorpusConfig{
			BaseURL:           getEnvOr("SUDOKU_CORPUS_URL", "https://sugoku.onrender.com"),
			Difficulty:        "random",
			Workers:           8,
			RequestsPerSecond: 4,
		},
		Telemetry: TelemetryConfig{
			TraceExporter:  getEnvOr("OTEL_TRACES_EXPORTER", "none"),
			MetricExporter: getEnvOr("OTEL_METRICS_EXPORTER", "prometheus"),
			OTLPEndpoint:   getEnvOr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Environment:    getEnvOr("SUDOKU_ENV", "development"),
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. A missing file is not an error: defaults apply unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// getEnvOr returns the environment variable value or the fallback.
func getEnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIntOr returns the environment variable parsed as int, or the
// fallback when unset or malformed.
func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
