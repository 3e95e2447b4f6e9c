// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package engine implements the Sudoku solving core: the grid value type,
// per-cell candidate derivation, and the iterative search driver with
// explicit backtracking history.
//
// The engine is pure computation. It performs no I/O, holds no state
// between invocations, and every Grid mutation produces a new value, so
// independent solves may run concurrently without any locking discipline.
package engine

import "fmt"

const (
	// Size is the edge length of the grid.
	Size = 9

	// BoxSize is the edge length of one box.
	BoxSize = 3
)

// Grid is a 9x9 Sudoku grid, indexed [row][col]. Zero means blank.
//
// Grid is a value type: assignment and parameter passing copy it, and
// WithCell returns a modified copy. Treat every Grid as immutable.
type Grid [Size][Size]uint8

// Coord addresses one cell as a (column, row) pair, each in [0,9).
type Coord struct {
	Col int
	Row int
}

// Box returns the index of the 3x3 box containing the coordinate,
// numbered 0..8 left-to-right, top-to-bottom.
func (c Coord) Box() int {
	return BoxSize*(c.Row/BoxSize) + c.Col/BoxSize
}

// Cell returns the value at the coordinate.
func (g Grid) Cell(c Coord) uint8 {
	return g[c.Row][c.Col]
}

// WithCell returns a copy of the grid with one cell replaced.
//
// No bounds or conflict checking is performed; callers must only assign
// values drawn from a valid candidate set.
func (g Grid) WithCell(c Coord, v uint8) Grid {
	g[c.Row][c.Col] = v
	return g
}

// Rows returns the nine rows, top to bottom.
func (g Grid) Rows() [Size][Size]uint8 {
	return g
}

// Columns returns the nine columns, left to right.
func (g Grid) Columns() [Size][Size]uint8 {
	var cols [Size][Size]uint8
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cols[c][r] = g[r][c]
		}
	}
	return cols
}

// Boxes returns the nine 3x3 boxes, numbered as in Coord.Box. Cells
// within a box are ordered row-major.
func (g Grid) Boxes() [Size][Size]uint8 {
	var boxes [Size][Size]uint8
	var fill [Size]int
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			b := Coord{Col: c, Row: r}.Box()
			boxes[b][fill[b]] = g[r][c]
			fill[b]++
		}
	}
	return boxes
}

// Blanks returns the number of empty cells.
func (g Grid) Blanks() int {
	n := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] == 0 {
				n++
			}
		}
	}
	return n
}

// IsComplete reports whether every row, column, and box is exactly the
// set {1..9}: no blanks, no duplicates.
//
// This is the terminal success test, not a mid-search validity check.
func (g Grid) IsComplete() bool {
	return unitsComplete(g.Rows()) && unitsComplete(g.Columns()) && unitsComplete(g.Boxes())
}

// IsValid reports whether no row, column, or box contains a duplicate
// among its non-zero values. Blanks are not checked against each other.
//
// This is the contradiction test. It must only be called on grids whose
// values are all in [0,9]; CheckValues guards that at the boundary.
func (g Grid) IsValid() bool {
	return unitsValid(g.Rows()) && unitsValid(g.Columns()) && unitsValid(g.Boxes())
}

// CheckValues verifies that every cell holds a value in [0,9].
//
// Malformed grids are a precondition violation: callers must fail fast
// on the returned error before entering the search loop.
func (g Grid) CheckValues() error {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] > Size {
				return fmt.Errorf("%w: cell (%d,%d) holds %d", ErrValueRange, c, r, g[r][c])
			}
		}
	}
	return nil
}

// unitsComplete checks that each unit is a permutation of 1..9 using a
// uint16 bitmask, one bit per value.
func unitsComplete(units [Size][Size]uint8) bool {
	for _, unit := range units {
		var mask uint16
		for _, v := range unit {
			if v == 0 {
				return false
			}
			bit := uint16(1) << v
			if mask&bit != 0 {
				return false
			}
			mask |= bit
		}
	}
	return true
}

// unitsValid checks each unit for duplicate non-zero values.
func unitsValid(units [Size][Size]uint8) bool {
	for _, unit := range units {
		var mask uint16
		for _, v := range unit {
			if v == 0 {
				continue
			}
			bit := uint16(1) << v
			if mask&bit != 0 {
				return false
			}
			mask |= bit
		}
	}
	return true
}
