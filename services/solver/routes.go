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
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all solver routes with the router group.
//
// Endpoints:
//
//	POST /v1/sudoku/solve - Solve one puzzle
//	POST /v1/sudoku/solve/batch - Solve up to 256 puzzles
//	GET  /v1/sudoku/solve/stream - WebSocket: stream driver transitions
//	GET  /v1/sudoku/puzzle - Fetch a fresh puzzle from the corpus
//	GET  /v1/sudoku/health - Health check
//	GET  /v1/sudoku/ready - Readiness check
//
// Example:
//
//	svc := solver.NewService(solver.DefaultServiceConfig())
//	handlers := solver.NewHandlers(svc)
//
//	v1 := router.Group("/v1")
//	solver.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	sudoku := rg.Group("/sudoku")

	sudoku.POST("/solve", handlers.HandleSolve)
	sudoku.POST("/solve/batch", handlers.HandleSolveBatch)
	sudoku.GET("/solve/stream", handlers.HandleSolveStream)
	sudoku.GET("/puzzle", handlers.HandleFetchPuzzle)

	sudoku.GET("/health", handlers.HandleHealth)
	sudoku.GET("/ready", handlers.HandleReady)
}
