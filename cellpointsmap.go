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

import "math"

// CellPointsMap maps a Location to the CellPoints accumulated there,
// merging on insert so that any number of propagated points collapse to
// at most 16 representatives per cell.
type CellPointsMap struct {
	grid *GridBase
	m    map[Location]*CellPoints
}

// NewCellPointsMap returns an empty CellPointsMap over the given grid.
func NewCellPointsMap(grid *GridBase) *CellPointsMap {
	return &CellPointsMap{grid: grid, m: make(map[Location]*CellPoints)}
}

// Len returns the number of cells currently holding points.
func (m *CellPointsMap) Len() int { return len(m.m) }

// Get returns the CellPoints stored for l, or nil if none.
func (m *CellPointsMap) Get(l Location) *CellPoints { return m.m[l] }

// Range calls f once per (Location, CellPoints) entry. f must not mutate
// the map.
func (m *CellPointsMap) Range(f func(Location, *CellPoints)) {
	for l, cp := range m.m {
		f(l, cp)
	}
}

// Insert locates (or creates) the CellPoints for the destination cell
// containing point (x, y), inserts the point, and records the relative
// direction from src (a Location, not necessarily the destination's own
// cell) into the destination's source mask when src is not the
// destination cell itself. Coordinates are in cell units: the integer
// part of (x, y) is the (column, row) of the enclosing cell and the
// fractional part is the offset within it. Points falling outside the
// grid are dropped.
func (m *CellPointsMap) Insert(src Location, x, y float64) (Location, bool) {
	row, col := int(math.Floor(y)), int(math.Floor(x))
	// Range-check before packing: Location masks its components, so an
	// off-grid coordinate could otherwise wrap onto a valid cell.
	if row < 0 || row >= m.grid.Rows || col < 0 || col >= m.grid.Cols {
		return Location(0), false
	}
	dst := NewLocation(row, col)
	cp, ok := m.m[dst]
	if !ok {
		cp = NewCellPoints(dst.Column(), dst.Row())
		m.m[dst] = cp
	}
	var source uint8
	if src != dst {
		source = relativeIndex(src, dst)
	}
	cp.Insert(x, y, source)
	return dst, true
}

// Merge folds every entry of rhs whose Location is not in unburnable into
// m, merging CellPoints where both maps hold an entry for the same cell.
func (m *CellPointsMap) Merge(unburnable map[Location]bool, rhs *CellPointsMap) {
	rhs.Range(func(l Location, cp *CellPoints) {
		if unburnable[l] {
			return
		}
		existing, ok := m.m[l]
		if !ok {
			merged := NewCellPoints(cp.cellX, cp.cellY)
			merged.Merge(cp)
			m.m[l] = merged
			return
		}
		existing.Merge(cp)
	})
}

// RemoveIf erases every entry for which predicate returns true, used
// after a burn step to purge unburnable or non-surviving cells.
func (m *CellPointsMap) RemoveIf(predicate func(Location, *CellPoints) bool) {
	for l, cp := range m.m {
		if predicate(l, cp) {
			delete(m.m, l)
		}
	}
}

// directionBit returns the bitmask bit for a compass direction in
// [dirN, dirNW]: 1<<(d-1). dirNone has no bit and always contributes 0.
func directionBit(d direction) uint8 {
	if d == dirNone {
		return 0
	}
	return 1 << uint(d-1)
}

// relativeIndex returns the bitmask bit for one of the nine directions
// {NONE, N, NE, E, SE, S, SW, W, NW} based on the sign of (dst.Row-src.Row,
// dst.Column-src.Column). relativeIndex(a, a) == 0 (DIRECTION_NONE).
func relativeIndex(src, dst Location) uint8 {
	dr := sign(dst.Row() - src.Row())
	dc := sign(dst.Column() - src.Column())
	// Rows increase northward, matching rowOffset/colOffset.
	switch {
	case dr == 0 && dc == 0:
		return directionBit(dirNone)
	case dr == 1 && dc == 0:
		return directionBit(dirN)
	case dr == 1 && dc == 1:
		return directionBit(dirNE)
	case dr == 0 && dc == 1:
		return directionBit(dirE)
	case dr == -1 && dc == 1:
		return directionBit(dirSE)
	case dr == -1 && dc == 0:
		return directionBit(dirS)
	case dr == -1 && dc == -1:
		return directionBit(dirSW)
	case dr == 0 && dc == -1:
		return directionBit(dirW)
	case dr == 1 && dc == -1:
		return directionBit(dirNW)
	}
	return directionBit(dirNone)
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// calculateSpread is the batched spread step: for every spreading cell in
// toSpread, applies its SpreadInfo offsets (scaled by duration) to every
// point currently stored for that cell, inserts the resulting points into
// a fresh CellPointsMap, then merges m's non-spreading entries back in
// (dropping destinations marked unburnable). It returns the fresh map,
// which the caller installs as the scenario's new point set.
func (m *CellPointsMap) calculateSpread(toSpread map[Location]*SpreadInfo, durationMinutes float64, unburnable map[Location]bool) *CellPointsMap {
	next := NewCellPointsMap(m.grid)
	nonSpreading := make(map[Location]*CellPoints)

	for l, cp := range m.m {
		info, spreading := toSpread[l]
		if !spreading || cp.Empty() {
			nonSpreading[l] = cp
			continue
		}
		for _, p := range cp.Unique() {
			for _, off := range info.Offsets {
				dx := off.DX * durationMinutes
				dy := off.DY * durationMinutes
				next.Insert(l, p.X+dx, p.Y+dy)
			}
		}
	}
	for l, cp := range nonSpreading {
		if unburnable[l] {
			continue
		}
		existing, ok := next.m[l]
		if !ok {
			merged := NewCellPoints(cp.cellX, cp.cellY)
			merged.Merge(cp)
			next.m[l] = merged
			continue
		}
		existing.Merge(cp)
	}
	return next
}
