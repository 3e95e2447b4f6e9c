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

// SolveRequest is the body of POST /v1/sudoku/solve.
type SolveRequest struct {
	// Puzzle is the textual puzzle: 81 digits after non-digit filtering,
	// 0 for blanks.
	Puzzle string `json:"puzzle" binding:"required"`
}

// SolveResponse is the body of a successful solve call.
//
// Complete false is a normal response (HTTP 200): the puzzle is
// unsolvable and Solution is omitted.
type SolveResponse struct {
	Complete    bool    `json:"complete"`
	Puzzle      string  `json:"puzzle"`
	Solution    string  `json:"solution,omitempty"`
	Cached      bool    `json:"cached"`
	Transitions int64   `json:"transitions"`
	DurationMS  float64 `json:"duration_ms"`
}

// BatchSolveRequest is the body of POST /v1/sudoku/solve/batch.
type BatchSolveRequest struct {
	Puzzles []string `json:"puzzles" binding:"required,min=1,max=256,dive,required"`
}

// BatchItem is one entry of a batch response. Error is set (and the
// solve fields zeroed) when this puzzle failed to parse.
type BatchItem struct {
	Puzzle   string `json:"puzzle"`
	Complete bool   `json:"complete"`
	Solution string `json:"solution,omitempty"`
	Cached   bool   `json:"cached"`
	Error    string `json:"error,omitempty"`
}

// BatchSolveResponse is the body of a batch solve call.
type BatchSolveResponse struct {
	Results []BatchItem `json:"results"`
}

// PuzzleResponse is the body of GET /v1/sudoku/puzzle.
type PuzzleResponse struct {
	Puzzle     string `json:"puzzle"`
	Difficulty string `json:"difficulty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of the health and readiness probes.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
