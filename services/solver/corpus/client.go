// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package corpus fetches puzzles from an HTTP puzzle-corpus endpoint.
//
// The endpoint contract follows the common public corpus shape: a GET to
// /board?difficulty=<level> returning {"board": [[9x9 ints]]}, zero for
// blanks. The solving engine never talks to the network; this package
// supplies parsed grids only.
package corpus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jimberry1/sudoku/services/solver/engine"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Difficulty levels accepted by the corpus endpoint.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyRandom = "random"
)

// Sentinel errors for corpus fetching.
var (
	// ErrBadStatus indicates a non-200 response from the endpoint.
	ErrBadStatus = errors.New("corpus endpoint returned non-OK status")

	// ErrBadDifficulty indicates an unknown difficulty level.
	ErrBadDifficulty = errors.New("unknown difficulty")
)

// HTTPClient allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures a corpus Client.
type Config struct {
	// BaseURL is the corpus endpoint root, e.g. "https://sugoku.onrender.com".
	BaseURL string

	// Client is the HTTP client to use. Nil selects http.DefaultClient.
	Client HTTPClient

	// RequestsPerSecond caps the request rate against the public
	// endpoint. Zero or negative disables limiting.
	RequestsPerSecond float64

	// Burst is the limiter burst size. Defaults to 1 when limiting is
	// enabled.
	Burst int

	// Workers bounds concurrent fetches in FetchBatch.
	Workers int
}

// DefaultConfig returns production defaults: 4 requests per second
// against the public endpoint and 8 parallel workers.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://sugoku.onrender.com",
		RequestsPerSecond: 4,
		Burst:             2,
		Workers:           8,
	}
}

// Client fetches puzzles from a corpus endpoint.
//
// Thread Safety: safe for concurrent use.
type Client struct {
	base    *url.URL
	httpc   HTTPClient
	limiter *rate.Limiter
	workers int
}

// NewClient creates a corpus client from the config.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	httpc := cfg.Client
	if httpc == nil {
		httpc = http.DefaultClient
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Client{base: u, httpc: httpc, limiter: limiter, workers: workers}, nil
}

// boardResponse is the corpus endpoint payload.
type boardResponse struct {
	Board [][]int `json:"board"`
}

// Fetch retrieves one puzzle of the given difficulty.
func (c *Client) Fetch(ctx context.Context, difficulty string) (engine.Grid, error) {
	if err := checkDifficulty(difficulty); err != nil {
		return engine.Grid{}, err
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return engine.Grid{}, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	u := c.base.JoinPath("/board")
	q := u.Query()
	q.Set("difficulty", difficulty)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return engine.Grid{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return engine.Grid{}, fmt.Errorf("fetch puzzle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return engine.Grid{}, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var payload boardResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return engine.Grid{}, fmt.Errorf("decode response body: %w", err)
	}

	g, err := puzzle.FromBoard(payload.Board)
	if err != nil {
		return engine.Grid{}, fmt.Errorf("parse board: %w", err)
	}
	return g, nil
}

// FetchBatch retrieves n puzzles concurrently, bounded by the configured
// worker count. The result preserves request order. The first failed
// fetch cancels the remaining ones.
func (c *Client) FetchBatch(ctx context.Context, difficulty string, n int) ([]engine.Grid, error) {
	if err := checkDifficulty(difficulty); err != nil {
		return nil, err
	}

	grids := make([]engine.Grid, n)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.workers)
	for i := 0; i < n; i++ {
		eg.Go(func() error {
			g, err := c.Fetch(ctx, difficulty)
			if err != nil {
				return err
			}
			grids[i] = g
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return grids, nil
}

func checkDifficulty(d string) error {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyRandom:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrBadDifficulty, d)
	}
}
