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

import "context"

// Result is the terminal outcome of one solve invocation.
//
// On success Grid holds the solved grid; on failure it holds the
// original starting grid. No partial grid ever escapes the engine.
type Result struct {
	Complete bool `json:"complete"`
	Grid     Grid `json:"grid"`
}

// Config configures a Solver.
type Config struct {
	// Progress receives one Step per driver transition.
	// Nil disables progress reporting.
	Progress ProgressFunc
}

// DefaultConfig returns a config with progress reporting disabled.
func DefaultConfig() *Config {
	return &Config{}
}

// Solver runs the iterative constraint-propagation and backtracking
// search. A Solver is stateless between Solve calls and safe for
// concurrent use.
type Solver struct {
	progress ProgressFunc
}

// New creates a Solver. A nil config is replaced with DefaultConfig().
func New(cfg *Config) *Solver {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Solver{progress: cfg.Progress}
}

// frame is one history entry: the grid and explored-options snapshot
// taken immediately before a speculative branch assignment.
type frame struct {
	grid     Grid
	explored Explored
}

// Solve runs the search loop to a terminal state.
//
// Description:
//
//	Each iteration recomputes per-cell candidates from the current
//	(grid, explored) pair and fires exactly one of five transitions,
//	tested in priority order: exhausted, solved, contradiction, forced
//	moves, branch. Backtracking pops the most recent history frame;
//	exhausting history yields Result{Complete: false} with the starting
//	grid.
//
// Inputs:
//
//	ctx - Checked once per iteration; cancellation aborts the solve.
//	start - The starting grid. Values must be in [0,9].
//
// Outputs:
//
//	Result - Terminal outcome. Never partial.
//	error - ErrValueRange for a malformed grid, or ctx.Err() on
//	cancellation. Unsolvable puzzles are not an error.
//
// Termination: every branch either reduces the number of blanks or is
// rejected as a contradiction, and the explored set at each retained
// depth strictly grows on each retry there, bounded by nine values per
// cell. The loop therefore always reaches a terminal transition.
func (s *Solver) Solve(ctx context.Context, start Grid) (Result, error) {
	if err := start.CheckValues(); err != nil {
		return Result{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cur := &frame{grid: start, explored: Explored{}}
	var history []frame

	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		// 1. Exhausted: nothing left to backtrack into.
		if cur == nil {
			s.observe(Step{Transition: TransitionExhausted, Grid: start})
			return Result{Complete: false, Grid: start}, nil
		}

		// 2. Solved.
		if cur.grid.IsComplete() {
			s.observe(Step{Transition: TransitionSolved, Grid: cur.grid, Depth: len(history)})
			return Result{Complete: true, Grid: cur.grid}, nil
		}

		cands := CandidatesFor(cur.grid, cur.explored)

		// 3. Contradiction: an empty cell with no candidates, or a full
		// grid that failed the solved test above (reachable only from
		// inputs that were invalid to begin with).
		if contradicted(cands) {
			s.observe(Step{Transition: TransitionContradiction, Grid: cur.grid, Depth: len(history)})
			cur, history = pop(history)
			continue
		}

		// 4. Forced moves: assign every single-candidate cell from the
		// shared snapshot, then re-check validity. Two forced cells in
		// one unit cannot share a value under correct candidate
		// computation, but the check guards the invariant anyway.
		if applied, next := applyForced(cur.grid, cands); applied {
			if !next.IsValid() {
				s.observe(Step{Transition: TransitionContradiction, Grid: next, Depth: len(history)})
				cur, history = pop(history)
				continue
			}
			s.observe(Step{Transition: TransitionForced, Grid: next, Depth: len(history)})
			cur = &frame{grid: next, explored: Explored{}}
			continue
		}

		// 5. Branch: fewest-candidates cell, column-major tie break,
		// smallest candidate value. The pushed frame already carries the
		// chosen value in its explored set so a later backtrack cannot
		// re-select it.
		target := branchTarget(cands)
		value := cands[target].Smallest()

		saved := frame{grid: cur.grid, explored: cur.explored.Clone()}
		saved.explored[target] = saved.explored[target].With(value)
		history = append(history, saved)

		next := cur.grid.WithCell(target, value)
		s.observe(Step{Transition: TransitionBranch, Grid: next, Depth: len(history)})
		cur = &frame{grid: next, explored: Explored{}}
	}
}

// pop removes and returns the most recent history frame, or nil when
// no history remains.
func pop(history []frame) (*frame, []frame) {
	if len(history) == 0 {
		return nil, history
	}
	top := history[len(history)-1]
	return &top, history[:len(history)-1]
}

func (s *Solver) observe(step Step) {
	if s.progress != nil {
		s.progress(step)
	}
}

// contradicted reports whether the candidate map proves the current
// state a dead end.
func contradicted(cands map[Coord]CandidateSet) bool {
	if len(cands) == 0 {
		// Full but not complete; only solved grids escape before the
		// candidate computation.
		return true
	}
	for _, set := range cands {
		if set == 0 {
			return true
		}
	}
	return false
}

// applyForced assigns every cell with exactly one candidate, all from
// the same pre-assignment snapshot. Returns false when no cell is
// forced.
func applyForced(g Grid, cands map[Coord]CandidateSet) (bool, Grid) {
	applied := false
	for coord, set := range cands {
		if set.Count() == 1 {
			g = g.WithCell(coord, set.Smallest())
			applied = true
		}
	}
	return applied, g
}

// branchTarget returns the empty cell with the fewest candidates,
// breaking ties by column-major then row iteration order so the search
// is deterministic and reproducible.
func branchTarget(cands map[Coord]CandidateSet) Coord {
	var best Coord
	bestCount := Size + 1
	for c := 0; c < Size; c++ {
		for r := 0; r < Size; r++ {
			coord := Coord{Col: c, Row: r}
			set, ok := cands[coord]
			if !ok {
				continue
			}
			if n := set.Count(); n < bestCount {
				best = coord
				bestCount = n
			}
		}
	}
	return best
}
