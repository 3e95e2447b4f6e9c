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

import "math/bits"

// CandidateSet is a set of values in {1..9}, one bit per value.
//
// Bit v (for v in 1..9) is set when value v is a member. Bit 0 is never
// used, so the full set is 0x3FE.
type CandidateSet uint16

// fullCandidates has all nine value bits set.
const fullCandidates CandidateSet = 0x3FE

// Has reports whether v is a member.
func (s CandidateSet) Has(v uint8) bool {
	return s&(1<<v) != 0
}

// With returns the set with v added.
func (s CandidateSet) With(v uint8) CandidateSet {
	return s | (1 << v)
}

// Without returns the set with v removed.
func (s CandidateSet) Without(v uint8) CandidateSet {
	return s &^ (1 << v)
}

// Count returns the number of members.
func (s CandidateSet) Count() int {
	return bits.OnesCount16(uint16(s))
}

// Smallest returns the smallest member, or 0 for the empty set.
func (s CandidateSet) Smallest() uint8 {
	if s == 0 {
		return 0
	}
	return uint8(bits.TrailingZeros16(uint16(s)))
}

// Values returns the members in ascending order.
func (s CandidateSet) Values() []uint8 {
	vs := make([]uint8, 0, s.Count())
	for v := uint8(1); v <= Size; v++ {
		if s.Has(v) {
			vs = append(vs, v)
		}
	}
	return vs
}

// Explored maps a coordinate to the set of values already attempted
// there at the current history depth. Coordinates that have never been
// branch targets carry no entry and are treated as the empty set.
type Explored map[Coord]CandidateSet

// Clone returns an independent copy of the map.
func (e Explored) Clone() Explored {
	out := make(Explored, len(e))
	for c, s := range e {
		out[c] = s
	}
	return out
}

// CandidatesFor computes the candidate set for every empty cell of the
// grid:
//
//	{1..9} − rowValues − colValues − boxValues − explored(coord)
//
// Filled cells are omitted from the result. The computation is a pure
// function of (grid, explored) and is re-derived on every driver
// iteration.
func CandidatesFor(g Grid, explored Explored) map[Coord]CandidateSet {
	var rowUsed, colUsed, boxUsed [Size]CandidateSet
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := g[r][c]
			if v == 0 {
				continue
			}
			bit := CandidateSet(1) << v
			rowUsed[r] |= bit
			colUsed[c] |= bit
			boxUsed[Coord{Col: c, Row: r}.Box()] |= bit
		}
	}

	out := make(map[Coord]CandidateSet)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if g[r][c] != 0 {
				continue
			}
			coord := Coord{Col: c, Row: r}
			set := fullCandidates &^ (rowUsed[r] | colUsed[c] | boxUsed[coord.Box()])
			set &^= explored[coord]
			out[coord] = set
		}
	}
	return out
}
