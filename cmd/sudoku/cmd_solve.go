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
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jimberry1/sudoku/services/solver"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
)

// runSolve solves a single puzzle from the argument or stdin and prints
// the solution. Pretty output on a terminal, 81 digits when piped.
func runSolve(cmd *cobra.Command, args []string) {
	text, err := readPuzzleInput(args)
	if err != nil {
		log.Fatalf("Error reading puzzle: %v", err)
	}

	svc := solver.NewService(nil)
	outcome, err := svc.SolveText(cmd.Context(), text)
	if err != nil {
		log.Fatalf("Error solving puzzle: %v", err)
	}

	if !outcome.Result.Complete {
		fmt.Fprintln(os.Stderr, "No solution exists for this puzzle.")
		os.Exit(1)
	}

	if usePrettyOutput() {
		fmt.Println(puzzle.FormatPretty(outcome.Result.Grid))
		fmt.Printf("\nSolved in %d transitions (%s).\n",
			outcome.Transitions, outcome.Duration.Round(0))
	} else {
		fmt.Println(puzzle.Format(outcome.Result.Grid))
	}
}

// readPuzzleInput returns the puzzle text from the first argument, or
// from stdin when no argument was given.
func readPuzzleInput(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("no puzzle given: pass 81 digits as an argument or pipe them on stdin")
	}

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(raw), nil
}

func usePrettyOutput() bool {
	if rawOutput {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
