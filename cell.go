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

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// Cell is a Location together with the packed terrain attributes that
// determine its fire behavior: slope (0-127, percent), aspect (0-359,
// degrees), and a fuel code (0-63, an index into the FuelType table the
// caller supplies). The three are packed with the Location into a single
// 64-bit value so a Cell is cheap to copy and to use as a map key; the
// upper 32 bits (slope, aspect, fuel) form the spread key, since cells
// sharing a spread key share SpreadInfo within a step (§ "Spread key").
type Cell struct {
	loc   Location
	slope uint8  // 0-127
	aspect uint16 // 0-359
	fuel  uint8  // 0-63
}

// NewCell constructs a Cell from a Location and the three packed terrain
// attributes. Out-of-range slope/aspect/fuel values are masked, not
// validated — callers are expected to only pass values already known to
// fit.
func NewCell(loc Location, slope uint8, aspect uint16, fuel uint8) Cell {
	return Cell{
		loc:    loc,
		slope:  slope & 0x7F,
		aspect: aspect % 360,
		fuel:   fuel & 0x3F,
	}
}

// Location returns the cell's grid address.
func (c Cell) Location() Location { return c.loc }

// Slope returns the cell's slope in percent, in [0, 127].
func (c Cell) Slope() uint8 { return c.slope }

// Aspect returns the cell's aspect in degrees, in [0, 359].
func (c Cell) Aspect() uint16 { return c.aspect }

// FuelCode returns the cell's fuel-table index, in [0, 63].
func (c Cell) FuelCode() uint8 { return c.fuel }

// SpreadKey packs slope, aspect, and fuel code into the 32-bit key used to
// look up and cache a per-hour SpreadInfo. Cells with equal SpreadKeys are
// guaranteed to produce identical SpreadInfo given the same weather and
// hour, so the Scenario spread step caches on this key rather than on the
// full Cell.
func (c Cell) SpreadKey() uint32 {
	return uint32(c.slope)<<23 | uint32(c.aspect)<<9 | uint32(c.fuel)
}

func (c Cell) String() string {
	return fmt.Sprintf("Cell{%s slope=%d aspect=%d fuel=%d}", c.loc, c.slope, c.aspect, c.fuel)
}

// Pack returns the full 64-bit packed representation of the cell: the
// Location in the lower 32 bits (of which it occupies 24), the spread
// key in the upper 32.
func (c Cell) Pack() uint64 {
	return uint64(c.SpreadKey())<<32 | uint64(c.loc)
}

// GridBase holds the integer dimensions of the simulation grid together
// with the affine transform mapping grid (row, col) addresses to world
// coordinates. Rows increase northward, so cell (0, 0) sits at the
// grid's lower-left (southwest) corner; raster collaborators that read
// top-down file formats are responsible for flipping rows on load.
type GridBase struct {
	Rows, Cols int
	CellSize   float64 // meters
	OriginX    float64 // world X of the southwest corner of cell (0, 0)
	OriginY    float64 // world Y of the southwest corner of cell (0, 0)
}

// InBounds reports whether the given Location falls inside the grid.
func (g *GridBase) InBounds(l Location) bool {
	r, c := l.Row(), l.Column()
	return r >= 0 && r < g.Rows && c >= 0 && c < g.Cols
}

// CellCenter returns the world-coordinate center of the cell at l.
func (g *GridBase) CellCenter(l Location) XYPos {
	return XYPos{
		X: g.OriginX + (float64(l.Column())+0.5)*g.CellSize,
		Y: g.OriginY + (float64(l.Row())+0.5)*g.CellSize,
	}
}

// Locate converts a world-coordinate position into the Location of the
// cell containing it. It does not check that the result is InBounds.
func (g *GridBase) Locate(p XYPos) Location {
	col := int(math.Floor((p.X - g.OriginX) / g.CellSize))
	row := int(math.Floor((p.Y - g.OriginY) / g.CellSize))
	return NewLocation(row, col)
}

// Bounds returns the world-coordinate extent of the grid, for use with
// ctessum/geom spatial primitives.
func (g *GridBase) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: g.OriginX, Y: g.OriginY},
		Max: geom.Point{X: g.OriginX + float64(g.Cols)*g.CellSize, Y: g.OriginY + float64(g.Rows)*g.CellSize},
	}
}
