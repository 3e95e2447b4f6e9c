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
	"errors"
	"testing"
)

// mustGrid builds a grid from an 81-digit string, row-major.
func mustGrid(t *testing.T, s string) Grid {
	t.Helper()
	if len(s) != 81 {
		t.Fatalf("mustGrid: want 81 digits, got %d", len(s))
	}
	var g Grid
	for i, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("mustGrid: non-digit %q at %d", r, i)
		}
		g[i/Size][i%Size] = uint8(r - '0')
	}
	return g
}

const (
	easyPuzzle   = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	easySolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

func TestCoord_Box(t *testing.T) {
	cases := []struct {
		coord Coord
		want  int
	}{
		{Coord{Col: 0, Row: 0}, 0},
		{Coord{Col: 2, Row: 2}, 0},
		{Coord{Col: 3, Row: 0}, 1},
		{Coord{Col: 8, Row: 0}, 2},
		{Coord{Col: 0, Row: 3}, 3},
		{Coord{Col: 4, Row: 4}, 4},
		{Coord{Col: 8, Row: 8}, 8},
	}
	for _, tc := range cases {
		if got := tc.coord.Box(); got != tc.want {
			t.Errorf("Box(%+v) = %d, want %d", tc.coord, got, tc.want)
		}
	}
}

func TestGrid_WithCell(t *testing.T) {
	g := mustGrid(t, easyPuzzle)
	coord := Coord{Col: 2, Row: 0}

	next := g.WithCell(coord, 4)

	if next.Cell(coord) != 4 {
		t.Errorf("expected cell set to 4, got %d", next.Cell(coord))
	}
	if g.Cell(coord) != 0 {
		t.Errorf("original grid mutated: got %d", g.Cell(coord))
	}
	// All other cells untouched.
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if (Coord{Col: c, Row: r}) == coord {
				continue
			}
			if g[r][c] != next[r][c] {
				t.Errorf("cell (%d,%d) changed: %d -> %d", c, r, g[r][c], next[r][c])
			}
		}
	}
}

func TestGrid_Projections(t *testing.T) {
	g := mustGrid(t, easyPuzzle)

	rows := g.Rows()
	if rows[0] != [Size]uint8{5, 3, 0, 0, 7, 0, 0, 0, 0} {
		t.Errorf("unexpected row 0: %v", rows[0])
	}

	cols := g.Columns()
	if cols[0] != [Size]uint8{5, 6, 0, 8, 4, 7, 0, 0, 0} {
		t.Errorf("unexpected column 0: %v", cols[0])
	}

	boxes := g.Boxes()
	if boxes[0] != [Size]uint8{5, 3, 0, 6, 0, 0, 0, 9, 8} {
		t.Errorf("unexpected box 0: %v", boxes[0])
	}
	if boxes[8] != [Size]uint8{2, 8, 0, 0, 0, 5, 0, 7, 9} {
		t.Errorf("unexpected box 8: %v", boxes[8])
	}
}

func TestGrid_IsComplete(t *testing.T) {
	t.Run("solved grid", func(t *testing.T) {
		if !mustGrid(t, easySolution).IsComplete() {
			t.Error("expected solved grid to be complete")
		}
	})

	t.Run("grid with blanks", func(t *testing.T) {
		if mustGrid(t, easyPuzzle).IsComplete() {
			t.Error("expected puzzle with blanks to be incomplete")
		}
	})

	t.Run("full grid with duplicate", func(t *testing.T) {
		g := mustGrid(t, easySolution)
		g = g.WithCell(Coord{Col: 0, Row: 0}, g.Cell(Coord{Col: 1, Row: 0}))
		if g.IsComplete() {
			t.Error("expected duplicate-bearing grid to be incomplete")
		}
	})
}

func TestGrid_IsValid(t *testing.T) {
	t.Run("puzzle with blanks is valid", func(t *testing.T) {
		// Multiple zeros in one unit never count as duplicates.
		if !mustGrid(t, easyPuzzle).IsValid() {
			t.Error("expected puzzle to be valid")
		}
	})

	t.Run("empty grid is valid", func(t *testing.T) {
		if !(Grid{}).IsValid() {
			t.Error("expected empty grid to be valid")
		}
	})

	t.Run("row duplicate", func(t *testing.T) {
		g := mustGrid(t, easyPuzzle).WithCell(Coord{Col: 8, Row: 0}, 5)
		if g.IsValid() {
			t.Error("expected row duplicate to be invalid")
		}
	})

	t.Run("column duplicate", func(t *testing.T) {
		g := mustGrid(t, easyPuzzle).WithCell(Coord{Col: 0, Row: 8}, 5)
		if g.IsValid() {
			t.Error("expected column duplicate to be invalid")
		}
	})

	t.Run("box duplicate", func(t *testing.T) {
		// 3 already sits in box 0 but not in row 2 or column 0.
		g := mustGrid(t, easyPuzzle).WithCell(Coord{Col: 0, Row: 2}, 3)
		if g.IsValid() {
			t.Error("expected box duplicate to be invalid")
		}
	})
}

func TestGrid_CheckValues(t *testing.T) {
	g := mustGrid(t, easyPuzzle)
	if err := g.CheckValues(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g[4][4] = 12
	err := g.CheckValues()
	if !errors.Is(err, ErrValueRange) {
		t.Fatalf("expected ErrValueRange, got %v", err)
	}
}

func TestGrid_Blanks(t *testing.T) {
	if got := mustGrid(t, easySolution).Blanks(); got != 0 {
		t.Errorf("expected 0 blanks in solution, got %d", got)
	}
	if got := (Grid{}).Blanks(); got != 81 {
		t.Errorf("expected 81 blanks in empty grid, got %d", got)
	}
	if got := mustGrid(t, easyPuzzle).Blanks(); got != 51 {
		t.Errorf("expected 51 blanks in puzzle, got %d", got)
	}
}
