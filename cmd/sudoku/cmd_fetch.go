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
	"log"

	"github.com/spf13/cobra"

	"github.com/jimberry1/sudoku/services/solver"
	"github.com/jimberry1/sudoku/services/solver/config"
	"github.com/jimberry1/sudoku/services/solver/corpus"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
)

// runFetch pulls puzzles from the corpus and prints them one per line,
// optionally followed by their solutions.
func runFetch(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	corpusCfg := corpus.DefaultConfig()
	corpusCfg.BaseURL = cfg.Corpus.BaseURL
	corpusCfg.Workers = cfg.Corpus.Workers
	corpusCfg.RequestsPerSecond = cfg.Corpus.RequestsPerSecond
	client, err := corpus.NewClient(corpusCfg)
	if err != nil {
		log.Fatalf("Error creating corpus client: %v", err)
	}

	grids, err := client.FetchBatch(cmd.Context(), difficulty, fetchCount)
	if err != nil {
		log.Fatalf("Error fetching puzzles: %v", err)
	}

	var svc *solver.Service
	if solveFetch {
		svc = solver.NewService(nil)
	}

	for _, g := range grids {
		fmt.Println(puzzle.Format(g))
		if svc == nil {
			continue
		}

		outcome, err := svc.SolveGrid(cmd.Context(), g)
		if err != nil {
			log.Fatalf("Error solving fetched puzzle: %v", err)
		}
		if outcome.Result.Complete {
			fmt.Println(puzzle.Format(outcome.Result.Grid))
		} else {
			fmt.Println("no solution")
		}
	}
}
