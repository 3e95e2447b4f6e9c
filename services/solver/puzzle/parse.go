// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package puzzle converts between textual puzzle representations and
// engine grids. The engine itself never sees text; this package is the
// boundary collaborator that feeds it.
package puzzle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jimberry1/sudoku/services/solver/engine"
)

// Length is the number of digits in a textual puzzle.
const Length = 81

// Sentinel errors for puzzle parsing.
var (
	// ErrLength indicates the input did not contain exactly 81 digits.
	ErrLength = errors.New("puzzle must contain exactly 81 digits")
)

// Parse builds a grid from a textual puzzle, row-major.
//
// Digits 1-9 are givens and 0 is a blank. All non-digit runes
// (whitespace, separators, line breaks) are ignored. After filtering,
// exactly 81 digits must remain.
func Parse(s string) (engine.Grid, error) {
	var g engine.Grid
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		if n >= Length {
			return engine.Grid{}, fmt.Errorf("%w: got more than %d", ErrLength, Length)
		}
		g[n/engine.Size][n%engine.Size] = uint8(r - '0')
		n++
	}
	if n != Length {
		return engine.Grid{}, fmt.Errorf("%w: got %d", ErrLength, n)
	}
	return g, nil
}

// FromBoard builds a grid from a 9x9 integer board, as returned by
// corpus endpoints.
func FromBoard(board [][]int) (engine.Grid, error) {
	if len(board) != engine.Size {
		return engine.Grid{}, fmt.Errorf("%w: got %d rows", ErrLength, len(board))
	}
	var g engine.Grid
	for r, row := range board {
		if len(row) != engine.Size {
			return engine.Grid{}, fmt.Errorf("%w: row %d has %d cells", ErrLength, r, len(row))
		}
		for c, v := range row {
			if v < 0 || v > engine.Size {
				return engine.Grid{}, fmt.Errorf("%w: cell (%d,%d) holds %d", engine.ErrValueRange, c, r, v)
			}
			g[r][c] = uint8(v)
		}
	}
	return g, nil
}

// Format renders the grid as an 81-digit string, row-major, with 0 for
// blanks. Format is the inverse of Parse for canonical input.
func Format(g engine.Grid) string {
	var b strings.Builder
	b.Grow(Length)
	for r := 0; r < engine.Size; r++ {
		for c := 0; c < engine.Size; c++ {
			b.WriteByte('0' + g[r][c])
		}
	}
	return b.String()
}

// FormatPretty renders the grid with box separators for terminals.
//
// Blanks render as dots:
//
//	5 3 . | . 7 . | . . .
//	6 . . | 1 9 5 | . . .
//	...
func FormatPretty(g engine.Grid) string {
	var b strings.Builder
	for r := 0; r < engine.Size; r++ {
		if r > 0 && r%engine.BoxSize == 0 {
			b.WriteString("------+-------+------\n")
		}
		for c := 0; c < engine.Size; c++ {
			if c > 0 && c%engine.BoxSize == 0 {
				b.WriteString("| ")
			}
			if v := g[r][c]; v == 0 {
				b.WriteString(". ")
			} else {
				b.WriteByte('0' + v)
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
