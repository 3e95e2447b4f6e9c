// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package cache persists solved puzzles in an embedded BadgerDB store.
//
// Keys are canonical 81-digit puzzle strings, values the 81-digit
// solution. Concurrent requests for the same unsolved puzzle are
// deduplicated with singleflight so the engine runs at most once per
// distinct puzzle at a time.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	badger "github.com/dgraph-io/badger/v4"
	"golang.org/x/sync/singleflight"

	"github.com/jimberry1/sudoku/services/solver/engine"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
)

// SolveFunc produces a solution for a starting grid on a cache miss.
type SolveFunc func(ctx context.Context, start engine.Grid) (engine.Result, error)

// Sentinel errors for the solution cache.
var (
	// ErrNoPath indicates a persistent cache was requested without a
	// directory.
	ErrNoPath = errors.New("path is required for persistent cache")
)

// Config holds configuration for a solution cache.
type Config struct {
	// Path is the directory for BadgerDB files.
	// Required unless InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence).
	// Useful for testing.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives BadgerDB's internal logging.
	// Nil disables it.
	Logger *slog.Logger
}

// DefaultConfig returns production defaults: a persistent store with
// synchronous writes. Path must still be set by the caller.
func DefaultConfig() Config {
	return Config{SyncWrites: true}
}

// InMemoryConfig returns configuration optimized for testing.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// SolutionCache stores solved grids keyed by their puzzle string.
//
// Thread Safety: safe for concurrent use.
type SolutionCache struct {
	db     *badger.DB
	flight singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// Open creates and opens a solution cache with the given configuration.
func Open(cfg Config) (*SolutionCache, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, ErrNoPath
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("create cache directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)

	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &SolutionCache{db: db}, nil
}

// Close releases the underlying store.
func (c *SolutionCache) Close() error {
	return c.db.Close()
}

// Get looks up a previously stored solution for the starting grid.
func (c *SolutionCache) Get(start engine.Grid) (engine.Grid, bool, error) {
	key := []byte(puzzle.Format(start))

	var solved engine.Grid
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			g, err := puzzle.Parse(string(val))
			if err != nil {
				return fmt.Errorf("corrupt cache entry: %w", err)
			}
			solved = g
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		c.misses.Add(1)
		return engine.Grid{}, false, nil
	}
	if err != nil {
		return engine.Grid{}, false, err
	}
	c.hits.Add(1)
	return solved, true, nil
}

// Put stores a solution for the starting grid. Only complete solutions
// are worth keeping; incomplete results are rejected.
func (c *SolutionCache) Put(start, solved engine.Grid) error {
	if !solved.IsComplete() {
		return fmt.Errorf("refusing to cache incomplete grid")
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(puzzle.Format(start)), []byte(puzzle.Format(solved)))
	})
}

// flightResult pairs a solve result with its provenance.
type flightResult struct {
	res    engine.Result
	cached bool
}

// GetOrSolve returns the cached solution for the starting grid, or runs
// solve and caches a successful result. The bool reports whether the
// result was served from the store.
//
// Concurrent calls for the same puzzle string share one solve via
// singleflight. Unsolvable results (Complete false) are returned but
// never cached, since the caller may want to retry with a corrected
// input.
func (c *SolutionCache) GetOrSolve(ctx context.Context, start engine.Grid, solve SolveFunc) (engine.Result, bool, error) {
	if solved, ok, err := c.Get(start); err != nil {
		return engine.Result{}, false, err
	} else if ok {
		return engine.Result{Complete: true, Grid: solved}, true, nil
	}

	key := puzzle.Format(start)
	v, err, _ := c.flight.Do(key, func() (interface{}, error) {
		// Re-check under the flight: another caller may have finished
		// while this one waited.
		if solved, ok, err := c.Get(start); err != nil {
			return flightResult{}, err
		} else if ok {
			return flightResult{res: engine.Result{Complete: true, Grid: solved}, cached: true}, nil
		}

		res, err := solve(ctx, start)
		if err != nil {
			return flightResult{}, err
		}
		if res.Complete {
			if err := c.Put(start, res.Grid); err != nil {
				slog.Warn("failed to cache solution", "error", err)
			}
		}
		return flightResult{res: res}, nil
	})
	if err != nil {
		return engine.Result{}, false, err
	}
	fr := v.(flightResult)
	return fr.res, fr.cached, nil
}

// Stats returns hit and miss counts since the cache was opened.
func (c *SolutionCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
