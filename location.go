/*
Copyright © 2026 the tinder authors.
This file is part of tinder.

tinder is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tinder is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tinder.  If not, see <http://www.gnu.org/licenses/>.
*/

package tinder

import "fmt"

// gridBits is the number of bits used to encode each of a Location's row
// and column components. Input grids are capped at 4096x4096 cells, so
// 12 bits per axis covers every representable coordinate and a whole
// Location fits in 24 bits, leaving the upper half of a Cell's packed
// 64-bit form free for the spread key.
const gridBits = 12
const gridMask = 1<<gridBits - 1

// Location is a hashable identifier for a single cell in the simulation
// grid, packing a (row, column) pair into a single comparable value so it
// can be used directly as a map key without a struct-key allocation.
type Location uint64

// NewLocation packs a row and column into a Location. Negative rows or
// columns, or rows/columns that do not fit in gridBits, produce an
// unspecified Location; callers are expected to only construct Locations
// from grid coordinates that are already known to be in range.
func NewLocation(row, col int) Location {
	return Location(uint64(row&gridMask)<<gridBits | uint64(col&gridMask))
}

// Row returns the row component of the Location.
func (l Location) Row() int {
	return int(uint64(l) >> gridBits & gridMask)
}

// Column returns the column component of the Location.
func (l Location) Column() int {
	return int(uint64(l) & gridMask)
}

func (l Location) String() string {
	return fmt.Sprintf("(%d, %d)", l.Row(), l.Column())
}

// directions enumerates the eight compass neighbors of a cell plus the
// cell itself, in the fixed order used throughout the package whenever a
// 3x3 neighborhood needs to be walked.
type direction int

const (
	dirNone direction = iota
	dirN
	dirNE
	dirE
	dirSE
	dirS
	dirSW
	dirW
	dirNW
)

// rowOffset and colOffset give the (drow, dcol) step for each direction,
// indexed by direction. Rows increase northward (row 0 is the southern
// edge of the grid), so north is row+1. dirNone maps to (0, 0).
var rowOffset = [9]int{0, 1, 1, 0, -1, -1, -1, 0, 1}
var colOffset = [9]int{0, 0, 1, 1, 1, 0, -1, -1, -1}

// Neighbor returns the Location reached by moving one step from l in the
// given direction. dirNone returns l unchanged.
func (l Location) Neighbor(d direction) Location {
	return NewLocation(l.Row()+rowOffset[d], l.Column()+colOffset[d])
}
