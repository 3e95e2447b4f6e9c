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
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jimberry1/sudoku/services/solver/config"
	"github.com/jimberry1/sudoku/services/solver/corpus"
	"github.com/jimberry1/sudoku/services/solver/engine"
	"github.com/jimberry1/sudoku/services/solver/puzzle"
	"github.com/jimberry1/sudoku/services/solver/tui"
)

// stepDelay slows the replay enough that transitions are visible.
const stepDelay = 25 * time.Millisecond

// runWatch renders a solve live in the terminal. With no argument it
// fetches a fresh puzzle from the corpus first.
func runWatch(cmd *cobra.Command, args []string) {
	var start engine.Grid
	var err error

	if len(args) > 0 {
		start, err = puzzle.Parse(args[0])
		if err != nil {
			log.Fatalf("Error parsing puzzle: %v", err)
		}
	} else {
		start, err = fetchWatchPuzzle(cmd)
		if err != nil {
			log.Fatalf("Error fetching puzzle: %v", err)
		}
	}

	model := tui.NewWatchModel(tui.WatchConfig{Puzzle: start})
	program := tea.NewProgram(model)

	go func() {
		driver := engine.New(&engine.Config{
			Progress: func(step engine.Step) {
				program.Send(tui.StepMsg{Step: step})
				time.Sleep(stepDelay)
			},
		})
		result, err := driver.Solve(cmd.Context(), start)
		program.Send(tui.DoneMsg{Result: result, Err: err})
	}()

	if _, err := program.Run(); err != nil {
		log.Fatalf("Error running watcher: %v", err)
	}
}

func fetchWatchPuzzle(cmd *cobra.Command) (engine.Grid, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return engine.Grid{}, err
	}

	corpusCfg := corpus.DefaultConfig()
	corpusCfg.BaseURL = cfg.Corpus.BaseURL
	corpusCfg.RequestsPerSecond = cfg.Corpus.RequestsPerSecond
	client, err := corpus.NewClient(corpusCfg)
	if err != nil {
		return engine.Grid{}, err
	}

	return client.Fetch(cmd.Context(), difficulty)
}
