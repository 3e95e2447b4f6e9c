// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package solver exposes the Sudoku engine as a service: caching,
// corpus access, telemetry, and the HTTP/WebSocket surface.
package solver

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jimberry1/sudoku/services/solver/cache"
	"github.com/jimberry1/sudoku/services/solver/corpus"
	"github.com/jimberry1/sudoku/services/solver/engine"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
	"github.com/jimberry1/sudoku/services/solver/telemetry"
)

// ServiceVersion is the solver service version.
const ServiceVersion = "0.1.0"

// batchWorkers bounds concurrent engine runs in SolveBatch.
const batchWorkers = 8

// ServiceConfig carries the service's optional collaborators.
//
// Every field may be nil: the service then solves without caching,
// without corpus access, or without metrics respectively.
type ServiceConfig struct {
	// Cache is the persistent solution cache.
	Cache *cache.SolutionCache

	// Corpus is the puzzle-corpus client.
	Corpus *corpus.Client

	// Metrics is the telemetry instrument set.
	Metrics *telemetry.Metrics
}

// DefaultServiceConfig returns a config with no collaborators: a pure
// in-process solver.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{}
}

// Service coordinates the engine with its collaborators.
//
// Thread Safety: safe for concurrent use.
type Service struct {
	cache   *cache.SolutionCache
	corpus  *corpus.Client
	metrics *telemetry.Metrics
	tracer  trace.Tracer
}

// NewService creates a Service. A nil config is replaced with
// DefaultServiceConfig().
func NewService(cfg *ServiceConfig) *Service {
	if cfg == nil {
		cfg = DefaultServiceConfig()
	}
	return &Service{
		cache:   cfg.Cache,
		corpus:  cfg.Corpus,
		metrics: cfg.Metrics,
		tracer:  otel.Tracer("sudoku/solver"),
	}
}

// SolveOutcome is the service-level result of one solve request.
type SolveOutcome struct {
	// Start is the starting grid as parsed.
	Start engine.Grid

	// Result is the engine's terminal outcome.
	Result engine.Result

	// Cached reports whether the solution came from the cache.
	Cached bool

	// Duration is the wall-clock time spent, cache lookups included.
	Duration time.Duration

	// Transitions is the number of driver transitions (zero for cache
	// hits).
	Transitions int64

	// MaxDepth is the deepest history stack observed (zero for cache
	// hits).
	MaxDepth int64
}

// SolveText parses a textual puzzle and solves it.
//
// Description:
//
//	Parses the 81-digit puzzle (non-digits ignored), consults the
//	solution cache when configured, and otherwise runs the engine.
//	Unsolvable puzzles are a normal outcome, not an error; only
//	malformed input or cancellation produces an error.
//
// Inputs:
//
//	ctx - Request context; cancellation aborts an in-flight solve.
//	text - Textual puzzle, 81 digits after filtering.
//
// Outputs:
//
//	*SolveOutcome - Terminal outcome plus solve statistics.
//	error - Parse failure, cache failure, or ctx.Err().
func (s *Service) SolveText(ctx context.Context, text string) (*SolveOutcome, error) {
	start, err := puzzle.Parse(text)
	if err != nil {
		return nil, err
	}
	return s.SolveGrid(ctx, start)
}

// SolveGrid solves a parsed grid, using the cache when configured.
func (s *Service) SolveGrid(ctx context.Context, start engine.Grid) (*SolveOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "solver.solve",
		trace.WithAttributes(attribute.Int("sudoku.blanks", start.Blanks())))
	defer span.End()

	began := time.Now()
	outcome := &SolveOutcome{Start: start}

	run := func(ctx context.Context, g engine.Grid) (engine.Result, error) {
		return s.runEngine(ctx, g, outcome, nil)
	}

	var res engine.Result
	var err error
	if s.cache != nil {
		res, outcome.Cached, err = s.cache.GetOrSolve(ctx, start, run)
	} else {
		res, err = run(ctx, start)
	}
	if err != nil {
		span.RecordError(err)
		s.countSolve(ctx, "error")
		return nil, err
	}

	outcome.Result = res
	outcome.Duration = time.Since(began)

	span.SetAttributes(
		attribute.Bool("sudoku.complete", res.Complete),
		attribute.Bool("sudoku.cached", outcome.Cached),
		attribute.Int64("sudoku.transitions", outcome.Transitions),
	)

	switch {
	case outcome.Cached:
		s.countSolve(ctx, "cached")
	case res.Complete:
		s.countSolve(ctx, "solved")
	default:
		s.countSolve(ctx, "unsolvable")
	}
	if s.metrics != nil {
		s.metrics.SolveDuration.Record(ctx, outcome.Duration.Seconds())
		s.metrics.SolveDepth.Record(ctx, float64(outcome.MaxDepth))
		if s.cache != nil {
			if outcome.Cached {
				s.metrics.CacheHitsTotal.Add(ctx, 1)
			} else {
				s.metrics.CacheMissesTotal.Add(ctx, 1)
			}
		}
	}

	slog.Info("solve finished",
		"complete", res.Complete,
		"cached", outcome.Cached,
		"transitions", outcome.Transitions,
		"duration", outcome.Duration)
	return outcome, nil
}

// SolveStream solves a grid while forwarding every driver transition to
// the progress callback. The cache is bypassed so observers see the
// full search.
func (s *Service) SolveStream(ctx context.Context, start engine.Grid, progress engine.ProgressFunc) (*SolveOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "solver.solve_stream")
	defer span.End()

	began := time.Now()
	outcome := &SolveOutcome{Start: start}
	res, err := s.runEngine(ctx, start, outcome, progress)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	outcome.Result = res
	outcome.Duration = time.Since(began)
	return outcome, nil
}

// runEngine executes one engine solve, accumulating statistics into the
// outcome and forwarding steps to an optional extra observer.
func (s *Service) runEngine(ctx context.Context, start engine.Grid, outcome *SolveOutcome, extra engine.ProgressFunc) (engine.Result, error) {
	var transitions, maxDepth atomic.Int64
	observer := func(step engine.Step) {
		transitions.Add(1)
		if d := int64(step.Depth); d > maxDepth.Load() {
			maxDepth.Store(d)
		}
		if s.metrics != nil {
			s.metrics.SolveTransitions.Add(ctx, 1,
				metric.WithAttributes(attribute.String("transition", step.Transition.String())))
		}
		if extra != nil {
			extra(step)
		}
	}

	eng := engine.New(&engine.Config{Progress: observer})
	res, err := eng.Solve(ctx, start)
	outcome.Transitions = transitions.Load()
	outcome.MaxDepth = maxDepth.Load()
	return res, err
}

// SolveBatch solves several textual puzzles concurrently.
//
// Per-puzzle failures (parse errors) are reported in the corresponding
// item rather than failing the batch; only context cancellation aborts
// the whole call.
func (s *Service) SolveBatch(ctx context.Context, puzzles []string) ([]BatchItem, error) {
	items := make([]BatchItem, len(puzzles))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(batchWorkers)
	for i, text := range puzzles {
		eg.Go(func() error {
			outcome, err := s.SolveText(ctx, text)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				items[i] = BatchItem{Puzzle: text, Error: err.Error()}
				return nil
			}
			items[i] = newBatchItem(text, outcome)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// FetchPuzzle retrieves a fresh puzzle from the corpus.
func (s *Service) FetchPuzzle(ctx context.Context, difficulty string) (engine.Grid, error) {
	if s.corpus == nil {
		return engine.Grid{}, ErrNoCorpus
	}
	g, err := s.corpus.Fetch(ctx, difficulty)
	if s.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.CorpusFetchesTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("status", status)))
	}
	if err != nil {
		return engine.Grid{}, fmt.Errorf("fetch puzzle: %w", err)
	}
	return g, nil
}

// CacheStats returns solution-cache hit/miss counts, or zeros when no
// cache is configured.
func (s *Service) CacheStats() (hits, misses int64) {
	if s.cache == nil {
		return 0, 0
	}
	return s.cache.Stats()
}

// newBatchItem converts a solve outcome into a batch response entry.
func newBatchItem(text string, outcome *SolveOutcome) BatchItem {
	item := BatchItem{
		Puzzle:   text,
		Complete: outcome.Result.Complete,
		Cached:   outcome.Cached,
	}
	if outcome.Result.Complete {
		item.Solution = puzzle.Format(outcome.Result.Grid)
	}
	return item
}

func (s *Service) countSolve(ctx context.Context, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.SolvesTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("outcome", outcome)))
}
