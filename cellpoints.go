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

// numDirections is the number of compass directions a CellPoints tracks:
// N, NNE, NE, ENE, E, ESE, SE, SSE, S, SSW, SW, WSW, W, WNW, NW, NNW.
const numDirections = 16

// outer is the table of 16 reference points near the cell perimeter used
// to pick, per direction, the point closest to that direction's corner or
// edge-midpoint. Corners and edge-midpoints sit at 0 and 1; the four
// 22.5-degree offset points sit at 0.5 +/- 0.2071 (tan(22.5 degrees) of
// the half-cell, i.e. the point on the unit-cell boundary closest to a
// 22.5-degree ray from the center).
var outer = [numDirections]InnerPos{
	{X: 0.5, Y: 1}, // N
	{X: 0.5 + 0.2071, Y: 1}, // NNE
	{X: 1, Y: 1}, // NE
	{X: 1, Y: 0.5 + 0.2071}, // ENE
	{X: 1, Y: 0.5}, // E
	{X: 1, Y: 0.5 - 0.2071}, // ESE
	{X: 1, Y: 0}, // SE
	{X: 0.5 + 0.2071, Y: 0}, // SSE
	{X: 0.5, Y: 0}, // S
	{X: 0.5 - 0.2071, Y: 0}, // SSW
	{X: 0, Y: 0}, // SW
	{X: 0, Y: 0.5 - 0.2071}, // WSW
	{X: 0, Y: 0.5}, // W
	{X: 0, Y: 0.5 + 0.2071}, // WNW
	{X: 0, Y: 1}, // NW
	{X: 0.5 - 0.2071, Y: 1}, // NNW
}

// CellPoints is the bounded extremal-point set for one cell: for each of
// 16 compass directions, the squared distance to that direction's outer
// reference point and the inner point achieving it, plus a bitmask of
// the (up to 8) neighboring cells that have contributed a point here.
//
// A CellPoints is either entirely empty (all distances infinite) or holds
// at least one finite entry in every direction — inserting a single point
// backfills it into all 16 directions, since at that point it is the
// closest (and only) candidate for every one of them.
type CellPoints struct {
	cellX, cellY int
	distSq       [numDirections]float64
	point        [numDirections]InnerPos
	sources      uint8
	valid        bool
}

// NewCellPoints returns an empty CellPoints for the given cell.
func NewCellPoints(cellX, cellY int) *CellPoints {
	cp := &CellPoints{cellX: cellX, cellY: cellY}
	for i := range cp.distSq {
		cp.distSq[i] = math.Inf(1)
	}
	return cp
}

// Empty reports whether no point has ever been inserted into cp.
func (cp *CellPoints) Empty() bool { return !cp.valid }

// CellX and CellY return the cell this CellPoints belongs to, in grid
// coordinates (matching the Location that maps to it).
func (cp *CellPoints) CellX() int { return cp.cellX }
func (cp *CellPoints) CellY() int { return cp.cellY }

// Sources returns the bitmask of neighboring directions that have
// contributed a point to this cell.
func (cp *CellPoints) Sources() uint8 { return cp.sources }

// Insert adds a point (x, y) in cell-unit coordinates, known to lie
// within this cell, updating every one of the 16 direction slots whose
// outer reference is now closer to (x, y) than to what they previously
// held. source, if not DIRECTION_NONE, is OR'd into the source bitmask.
func (cp *CellPoints) Insert(x, y float64, source uint8) {
	inner := InnerPos{X: x - float64(cp.cellX), Y: y - float64(cp.cellY)}
	for i := 0; i < numDirections; i++ {
		d := inner.DistanceSquared(outer[i])
		if d < cp.distSq[i] {
			cp.distSq[i] = d
			cp.point[i] = inner
		}
	}
	cp.sources |= source
	cp.valid = true
}

// Merge folds rhs into cp, keeping, per direction, the point with the
// smaller squared distance, and unioning the source bitmasks. Merging a
// CellPoints with itself leaves it unchanged (merge idempotence).
func (cp *CellPoints) Merge(rhs *CellPoints) {
	if rhs == nil || rhs.Empty() {
		return
	}
	for i := 0; i < numDirections; i++ {
		if rhs.distSq[i] < cp.distSq[i] {
			cp.distSq[i] = rhs.distSq[i]
			cp.point[i] = rhs.point[i]
		}
	}
	cp.sources |= rhs.sources
	cp.valid = true
}

// Unique returns the deduplicated set of stored inner points, converted
// back to grid (cell-unit) coordinates.
func (cp *CellPoints) Unique() []XYPos {
	if cp.Empty() {
		return nil
	}
	seen := make(map[InnerPos]bool, numDirections)
	out := make([]XYPos, 0, numDirections)
	for i := 0; i < numDirections; i++ {
		if math.IsInf(cp.distSq[i], 1) {
			continue
		}
		if seen[cp.point[i]] {
			continue
		}
		seen[cp.point[i]] = true
		out = append(out, XYPos{X: cp.point[i].X + float64(cp.cellX), Y: cp.point[i].Y + float64(cp.cellY)})
	}
	return out
}
