// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package solver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jimberry1/sudoku/services/solver/corpus"
	"github.com/jimberry1/sudoku/services/solver/engine"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
)

// Handlers contains the HTTP handlers for the solver service.
type Handlers struct {
	svc *Service
}

// NewHandlers creates handlers for the given service.
func NewHandlers(svc *Service) *Handlers {
	return &Handlers{svc: svc}
}

// HandleSolve handles POST /v1/sudoku/solve.
//
// Malformed puzzles are HTTP 400; an unsolvable puzzle is HTTP 200 with
// complete false and no solution.
func (h *Handlers) HandleSolve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	outcome, err := h.svc.SolveText(c.Request.Context(), req.Puzzle)
	if err != nil {
		if errors.Is(err, puzzle.ErrLength) || errors.Is(err, engine.ErrValueRange) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("solve failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, newSolveResponse(outcome))
}

// HandleSolveBatch handles POST /v1/sudoku/solve/batch.
func (h *Handlers) HandleSolveBatch(c *gin.Context) {
	var req BatchSolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	items, err := h.svc.SolveBatch(c.Request.Context(), req.Puzzles)
	if err != nil {
		slog.Error("batch solve failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, BatchSolveResponse{Results: items})
}

// HandleFetchPuzzle handles GET /v1/sudoku/puzzle.
//
// Query parameter "difficulty" defaults to random.
func (h *Handlers) HandleFetchPuzzle(c *gin.Context) {
	difficulty := c.DefaultQuery("difficulty", corpus.DifficultyRandom)

	g, err := h.svc.FetchPuzzle(c.Request.Context(), difficulty)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoCorpus):
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: err.Error()})
		case errors.Is(err, corpus.ErrBadDifficulty):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			slog.Error("puzzle fetch failed", "error", err)
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, PuzzleResponse{
		Puzzle:     puzzle.Format(g),
		Difficulty: difficulty,
	})
}

// HandleHealth handles GET /v1/sudoku/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: ServiceVersion})
}

// HandleReady handles GET /v1/sudoku/ready.
func (h *Handlers) HandleReady(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ready", Version: ServiceVersion})
}

func newSolveResponse(outcome *SolveOutcome) SolveResponse {
	resp := SolveResponse{
		Complete:    outcome.Result.Complete,
		Puzzle:      puzzle.Format(outcome.Start),
		Cached:      outcome.Cached,
		Transitions: outcome.Transitions,
		DurationMS:  float64(outcome.Duration.Microseconds()) / 1000,
	}
	if outcome.Result.Complete {
		resp.Solution = puzzle.Format(outcome.Result.Grid)
	}
	return resp
}
