// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package engine

import (
	"context"
	"errors"
	"testing"
)

func TestSolver_Solve_EasyPuzzle(t *testing.T) {
	solver := New(nil)

	res, err := solver.Solve(context.Background(), mustGrid(t, easyPuzzle))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Complete {
		t.Fatal("expected puzzle to be solved")
	}
	if !res.Grid.IsComplete() {
		t.Error("result grid must be complete")
	}
	if res.Grid != mustGrid(t, easySolution) {
		t.Error("expected the unique solution of the easy puzzle")
	}

	// Givens survive the solve untouched.
	start := mustGrid(t, easyPuzzle)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if start[r][c] != 0 && res.Grid[r][c] != start[r][c] {
				t.Errorf("given at (%d,%d) changed: %d -> %d", c, r, start[r][c], res.Grid[r][c])
			}
		}
	}
}

func TestSolver_Solve_AlreadySolved(t *testing.T) {
	start := mustGrid(t, easySolution)

	res, err := New(nil).Solve(context.Background(), start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Complete || res.Grid != start {
		t.Error("solved input must round-trip unchanged")
	}
}

func TestSolver_Solve_Contradictory(t *testing.T) {
	// Two 5s in row 0: unsolvable by construction.
	contradictory := "550070000" + easyPuzzle[9:]
	start := mustGrid(t, contradictory)

	res, err := New(nil).Solve(context.Background(), start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Complete {
		t.Fatal("expected unsolvable result")
	}
	if res.Grid != start {
		t.Error("failure must return the original starting grid")
	}
}

func TestSolver_Solve_EmptyGrid(t *testing.T) {
	res, err := New(nil).Solve(context.Background(), Grid{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Complete {
		t.Fatal("expected a blank grid to be completable")
	}
	if !res.Grid.IsComplete() {
		t.Error("result grid must be complete")
	}
}

func TestSolver_Solve_MalformedGrid(t *testing.T) {
	var g Grid
	g[0][0] = 11

	_, err := New(nil).Solve(context.Background(), g)
	if !errors.Is(err, ErrValueRange) {
		t.Fatalf("expected ErrValueRange, got %v", err)
	}
}

func TestSolver_Solve_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Solve(ctx, mustGrid(t, easyPuzzle))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestSolver_Solve_Deterministic(t *testing.T) {
	solver := New(nil)

	first, err := solver.Solve(context.Background(), Grid{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := solver.Solve(context.Background(), Grid{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Grid != second.Grid {
		t.Error("search order is deterministic; identical inputs must yield identical grids")
	}
}

func TestSolver_Solve_Progress(t *testing.T) {
	var steps []Step
	solver := New(&Config{Progress: func(s Step) { steps = append(steps, s) }})

	res, err := solver.Solve(context.Background(), mustGrid(t, easyPuzzle))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Complete {
		t.Fatal("expected solve to succeed")
	}
	if len(steps) == 0 {
		t.Fatal("expected progress steps")
	}

	last := steps[len(steps)-1]
	if last.Transition != TransitionSolved {
		t.Errorf("expected final transition solved, got %s", last.Transition)
	}
	if last.Grid != res.Grid {
		t.Error("final step must carry the returned grid")
	}

	// Every grid accepted after a forced-move application is valid.
	for _, s := range steps {
		if s.Transition == TransitionForced && !s.Grid.IsValid() {
			t.Error("forced-move result accepted despite being invalid")
		}
	}
}

func TestSolver_Solve_ProgressOnFailure(t *testing.T) {
	contradictory := "550070000" + easyPuzzle[9:]
	var last Step
	solver := New(&Config{Progress: func(s Step) { last = s }})

	res, err := solver.Solve(context.Background(), mustGrid(t, contradictory))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Complete {
		t.Fatal("expected failure")
	}
	if last.Transition != TransitionExhausted {
		t.Errorf("expected final transition exhausted, got %s", last.Transition)
	}
}

func TestTransition_String(t *testing.T) {
	names := map[Transition]string{
		TransitionExhausted:     "exhausted",
		TransitionSolved:        "solved",
		TransitionContradiction: "contradiction",
		TransitionForced:        "forced",
		TransitionBranch:        "branch",
		Transition(42):          "unknown",
	}
	for tr, want := range names {
		if got := tr.String(); got != want {
			t.Errorf("Transition(%d).String() = %q, want %q", tr, got, want)
		}
	}
}
