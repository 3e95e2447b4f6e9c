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

// Transition identifies which of the driver's five state transitions
// fired on a given iteration.
type Transition int

const (
	// TransitionExhausted fired: no history remains to backtrack into.
	TransitionExhausted Transition = iota

	// TransitionSolved fired: the grid is complete.
	TransitionSolved

	// TransitionContradiction fired: the current branch is a dead end
	// and a history entry was popped.
	TransitionContradiction

	// TransitionForced fired: all single-candidate cells were assigned.
	TransitionForced

	// TransitionBranch fired: a speculative assignment was made after
	// pushing a history entry.
	TransitionBranch
)

// String returns the lowercase transition name.
func (t Transition) String() string {
	switch t {
	case TransitionExhausted:
		return "exhausted"
	case TransitionSolved:
		return "solved"
	case TransitionContradiction:
		return "contradiction"
	case TransitionForced:
		return "forced"
	case TransitionBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Step describes one driver transition for progress observers.
type Step struct {
	// Transition is the transition that fired.
	Transition Transition

	// Grid is the grid after the transition was applied. For
	// contradictions this is the rejected grid; for terminal
	// transitions it matches the returned Result.
	Grid Grid

	// Depth is the history stack depth after the transition.
	Depth int
}

// ProgressFunc observes driver transitions.
//
// The observer is a side-effecting collaborator only: it is invoked once
// per transition and must never influence control flow. A nil
// ProgressFunc disables reporting.
type ProgressFunc func(Step)
