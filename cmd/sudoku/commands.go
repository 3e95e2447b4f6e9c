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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	difficulty string
	fetchCount int
	solveFetch bool
	rawOutput  bool

	rootCmd = &cobra.Command{
		Use:   "sudoku",
		Short: "A constraint-propagation sudoku solver and service",
		Long: `Sudoku solves 9x9 puzzles by repeatedly assigning forced cells
and backtracking through speculative branches when propagation stalls.
It can solve puzzles from the command line, serve an HTTP API, fetch
fresh puzzles from a public corpus, and replay a solve step by step.`,
	}

	solveCmd = &cobra.Command{
		Use:   "solve [puzzle]",
		Short: "Solve one puzzle given as 81 digits (0 for blanks) or on stdin",
		Args:  cobra.MaximumNArgs(1),
		Run:   runSolve, // Defined in cmd_solve.go
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the solver HTTP service",
		Run:   runServe, // Defined in cmd_serve.go
	}

	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "Fetch puzzles from the public corpus",
		Run:   runFetch, // Defined in cmd_fetch.go
	}

	watchCmd = &cobra.Command{
		Use:   "watch [puzzle]",
		Short: "Watch the search unfold transition by transition",
		Args:  cobra.MaximumNArgs(1),
		Run:   runWatch, // Defined in cmd_watch.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml",
		"Path to the YAML configuration file")

	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().BoolVar(&rawOutput, "raw", false,
		"Print the solution as 81 digits even on a terminal")

	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().StringVar(&difficulty, "difficulty", "random",
		"Puzzle difficulty: easy, medium, hard, or random")
	fetchCmd.Flags().IntVarP(&fetchCount, "count", "n", 1,
		"Number of puzzles to fetch")
	fetchCmd.Flags().BoolVar(&solveFetch, "solve", false,
		"Solve each fetched puzzle and print the solution too")

	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&difficulty, "difficulty", "random",
		"Difficulty when fetching a puzzle to watch")
}
