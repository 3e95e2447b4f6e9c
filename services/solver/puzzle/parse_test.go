// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package puzzle

import (
	"strings"
	"testing"

	"github.com/jimberry1/sudoku/services/solver/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const easyPuzzle = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

func TestParse(t *testing.T) {
	t.Run("canonical input", func(t *testing.T) {
		g, err := Parse(easyPuzzle)
		require.NoError(t, err)
		assert.Equal(t, uint8(5), g.Cell(engine.Coord{Col: 0, Row: 0}))
		assert.Equal(t, uint8(7), g.Cell(engine.Coord{Col: 4, Row: 0}))
		assert.Equal(t, uint8(9), g.Cell(engine.Coord{Col: 8, Row: 8}))
		assert.Equal(t, uint8(0), g.Cell(engine.Coord{Col: 2, Row: 0}))
	})

	t.Run("non-digit runes ignored", func(t *testing.T) {
		var rows []string
		for i := 0; i < 9; i++ {
			rows = append(rows, easyPuzzle[i*9:(i+1)*9])
		}
		decorated := " " + strings.Join(rows, " |\n") + " "

		want, err := Parse(easyPuzzle)
		require.NoError(t, err)
		got, err := Parse(decorated)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := Parse(easyPuzzle[:80])
		assert.ErrorIs(t, err, ErrLength)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := Parse(easyPuzzle + "1")
		assert.ErrorIs(t, err, ErrLength)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse("")
		assert.ErrorIs(t, err, ErrLength)
	})
}

func TestFormat_RoundTrip(t *testing.T) {
	g, err := Parse(easyPuzzle)
	require.NoError(t, err)
	assert.Equal(t, easyPuzzle, Format(g))
}

func TestFromBoard(t *testing.T) {
	t.Run("valid board", func(t *testing.T) {
		want, err := Parse(easyPuzzle)
		require.NoError(t, err)

		board := make([][]int, engine.Size)
		for r := range board {
			board[r] = make([]int, engine.Size)
			for c := range board[r] {
				board[r][c] = int(want[r][c])
			}
		}

		got, err := FromBoard(board)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("wrong row count", func(t *testing.T) {
		_, err := FromBoard(make([][]int, 8))
		assert.ErrorIs(t, err, ErrLength)
	})

	t.Run("value out of range", func(t *testing.T) {
		board := make([][]int, engine.Size)
		for r := range board {
			board[r] = make([]int, engine.Size)
		}
		board[3][3] = 10
		_, err := FromBoard(board)
		assert.ErrorIs(t, err, engine.ErrValueRange)
	})
}

func TestFormatPretty(t *testing.T) {
	g, err := Parse(easyPuzzle)
	require.NoError(t, err)

	out := FormatPretty(g)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 11) // 9 rows + 2 separators
	assert.Contains(t, lines[0], "5 3 .")
	assert.Equal(t, "------+-------+------", lines[3])
}
