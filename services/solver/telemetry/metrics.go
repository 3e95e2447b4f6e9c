// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

// Metrics contains pre-defined instruments for the solver service.
//
// All instruments use the "sudoku_" prefix for consistent naming.
//
// Thread Safety: safe for concurrent use after creation.
type Metrics struct {
	// SolvesTotal counts solve invocations by outcome (solved,
	// unsolvable, error, cached).
	SolvesTotal metric.Int64Counter

	// SolveDuration records engine solve duration in seconds.
	SolveDuration metric.Float64Histogram

	// SolveTransitions counts driver transitions by kind.
	SolveTransitions metric.Int64Counter

	// SolveDepth records the maximum history depth reached per solve.
	SolveDepth metric.Float64Histogram

	// CacheHitsTotal counts solution cache hits.
	CacheHitsTotal metric.Int64Counter

	// CacheMissesTotal counts solution cache misses.
	CacheMissesTotal metric.Int64Counter

	// CorpusFetchesTotal counts corpus fetches by status.
	CorpusFetchesTotal metric.Int64Counter
}

// NewMetrics registers all solver instruments with the meter.
//
// Example:
//
//	meter := otel.Meter("sudoku")
//	metrics, err := telemetry.NewMetrics(meter)
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.SolvesTotal, err = meter.Int64Counter(
		"sudoku_solves_total",
		metric.WithDescription("Total solve invocations by outcome"),
	); err != nil {
		return nil, fmt.Errorf("create sudoku_solves_total: %w", err)
	}

	if m.SolveDuration, err = meter.Float64Histogram(
		"sudoku_solve_duration_seconds",
		metric.WithDescription("Engine solve duration in seconds"),
		metric.WithExplicitBucketBoundaries(0.0001, 0.001, 0.01, 0.1, 1, 10, 60),
	); err != nil {
		return nil, fmt.Errorf("create sudoku_solve_duration_seconds: %w", err)
	}

	if m.SolveTransitions, err = meter.Int64Counter(
		"sudoku_solve_transitions_total",
		metric.WithDescription("Search driver transitions by kind"),
	); err != nil {
		return nil, fmt.Errorf("create sudoku_solve_transitions_total: %w", err)
	}

	if m.SolveDepth, err = meter.Float64Histogram(
		"sudoku_solve_depth",
		metric.WithDescription("Maximum backtracking depth reached per solve"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 4, 8, 16, 32, 64),
	); err != nil {
		return nil, fmt.Errorf("create sudoku_solve_depth: %w", err)
	}

	if m.CacheHitsTotal, err = meter.Int64Counter(
		"sudoku_cache_hits_total",
		metric.WithDescription("Solution cache hits"),
	); err != nil {
		return nil, fmt.Errorf("create sudoku_cache_hits_total: %w", err)
	}

	if m.CacheMissesTotal, err = meter.Int64Counter(
		"sudoku_cache_misses_total",
		metric.WithDescription("Solution cache misses"),
	); err != nil {
		return nil, fmt.Errorf("create sudoku_cache_misses_total: %w", err)
	}

	if m.CorpusFetchesTotal, err = meter.Int64Counter(
		"sudoku_corpus_fetches_total",
		metric.WithDescription("Corpus fetches by status"),
	); err != nil {
		return nil, fmt.Errorf("create sudoku_corpus_fetches_total: %w", err)
	}

	return m, nil
}
