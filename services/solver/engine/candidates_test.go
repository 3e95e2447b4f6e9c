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
	"reflect"
	"testing"
)

func TestCandidateSet_Basics(t *testing.T) {
	var s CandidateSet
	if s.Count() != 0 || s.Smallest() != 0 {
		t.Fatalf("empty set: count=%d smallest=%d", s.Count(), s.Smallest())
	}

	s = s.With(7).With(2).With(9)
	if s.Count() != 3 {
		t.Errorf("expected count 3, got %d", s.Count())
	}
	if s.Smallest() != 2 {
		t.Errorf("expected smallest 2, got %d", s.Smallest())
	}
	if !s.Has(7) || s.Has(1) {
		t.Error("membership mismatch")
	}
	if got := s.Values(); !reflect.DeepEqual(got, []uint8{2, 7, 9}) {
		t.Errorf("expected values [2 7 9], got %v", got)
	}

	s = s.Without(2)
	if s.Has(2) || s.Smallest() != 7 {
		t.Errorf("expected {7,9} after removal, got %v", s.Values())
	}

	if fullCandidates.Count() != 9 || !fullCandidates.Has(1) || !fullCandidates.Has(9) {
		t.Error("full set must contain exactly 1..9")
	}
}

func TestCandidatesFor(t *testing.T) {
	g := mustGrid(t, easyPuzzle)

	t.Run("filled cells omitted", func(t *testing.T) {
		cands := CandidatesFor(g, nil)
		if len(cands) != g.Blanks() {
			t.Fatalf("expected %d entries, got %d", g.Blanks(), len(cands))
		}
		if _, ok := cands[Coord{Col: 0, Row: 0}]; ok {
			t.Error("filled cell must not carry candidates")
		}
	})

	t.Run("row column and box values excluded", func(t *testing.T) {
		cands := CandidatesFor(g, nil)
		// Cell (2,0): row 0 has {5,3,7}, column 2 has {8},
		// box 0 has {5,3,6,9,8}. Remaining: {1,2,4}.
		got := cands[Coord{Col: 2, Row: 0}]
		if !reflect.DeepEqual(got.Values(), []uint8{1, 2, 4}) {
			t.Errorf("expected candidates [1 2 4], got %v", got.Values())
		}
	})

	t.Run("explored values excluded", func(t *testing.T) {
		coord := Coord{Col: 2, Row: 0}
		explored := Explored{coord: CandidateSet(0).With(1).With(4)}
		cands := CandidatesFor(g, explored)
		if !reflect.DeepEqual(cands[coord].Values(), []uint8{2}) {
			t.Errorf("expected candidates [2], got %v", cands[coord].Values())
		}
	})

	t.Run("empty grid has full candidates everywhere", func(t *testing.T) {
		cands := CandidatesFor(Grid{}, nil)
		if len(cands) != 81 {
			t.Fatalf("expected 81 entries, got %d", len(cands))
		}
		for coord, set := range cands {
			if set != fullCandidates {
				t.Fatalf("cell %+v: expected full candidate set, got %v", coord, set.Values())
			}
		}
	})

	t.Run("pure function", func(t *testing.T) {
		explored := Explored{{Col: 4, Row: 4}: CandidateSet(0).With(3)}
		first := CandidatesFor(g, explored)
		second := CandidatesFor(g, explored)
		if !reflect.DeepEqual(first, second) {
			t.Error("recomputation must yield identical results")
		}
	})
}

func TestExplored_Clone(t *testing.T) {
	coord := Coord{Col: 1, Row: 1}
	orig := Explored{coord: CandidateSet(0).With(5)}

	clone := orig.Clone()
	clone[coord] = clone[coord].With(6)

	if orig[coord].Has(6) {
		t.Error("clone must not alias the original map")
	}
}
