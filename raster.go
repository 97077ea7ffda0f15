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

import "github.com/ctessum/sparse"

// FuelGrid, ElevationGrid, SlopeGrid, AspectGrid, and PerimeterGrid are
// the raster collaborators named in §6: reading GeoTIFF/ASCII grid bytes,
// honoring NoData, and enforcing shared projection/cell-size are all out
// of scope for this package, which only ever calls through these
// interfaces.
type FuelGrid interface {
	FuelAt(loc Location) (code int, ok bool)
	Bounds() GridBase
}

type ElevationGrid interface {
	ElevationAt(loc Location) (metres int16, ok bool)
}

type SlopeGrid interface {
	SlopePercentAt(loc Location) (pct uint8, ok bool)
}

type AspectGrid interface {
	AspectDegreesAt(loc Location) (deg uint16, ok bool)
}

type PerimeterGrid interface {
	BurningAt(loc Location) bool
}

// FuelTable resolves a fuel code (as returned by FuelGrid) to the
// FuelType contract a concrete FBP fuel-type library implements; looking
// the table up from disk is out of scope (§1).
type FuelTable interface {
	Lookup(code int) (FuelType, bool)
}

// RasterWriter is the output-raster collaborator: GeoTIFF/ASCII encoding
// and the .prj sidecar are out of scope (§6); this package only decides
// what goes into each named output and in what layout.
type RasterWriter interface {
	WriteFloat32(name string, grid *sparse.DenseArray, noData float32) error
	WriteUint32(name string, grid *sparse.DenseArray) error
	WriteProjection(proj4 string) error
}

// Terrain bundles the per-cell terrain lookups a Scenario needs every
// time it encounters a new cell, so callers only have to implement the
// narrow collaborator interfaces above once per raster set.
type Terrain struct {
	Fuel      FuelGrid
	Slope     SlopeGrid
	Aspect    AspectGrid
	Perimeter PerimeterGrid // nil when starting from a single ignition point
	Table     FuelTable
}

// cellAt resolves the full Cell (Location + packed terrain attributes)
// for loc, or ok=false if any required raster has no data there.
func (t *Terrain) cellAt(loc Location) (Cell, bool) {
	code, ok := t.Fuel.FuelAt(loc)
	if !ok {
		return Cell{}, false
	}
	slope, ok := t.Slope.SlopePercentAt(loc)
	if !ok {
		return Cell{}, false
	}
	aspect, ok := t.Aspect.AspectDegreesAt(loc)
	if !ok {
		return Cell{}, false
	}
	return NewCell(loc, slope, aspect, uint8(code)), true
}

// fuelAt resolves the FuelType for loc via Table, or ok=false if the
// cell has no fuel data or the fuel code is not in Table.
func (t *Terrain) fuelAt(loc Location) (FuelType, bool) {
	c, ok := t.cellAt(loc)
	if !ok {
		return nil, false
	}
	return t.Table.Lookup(int(c.FuelCode()))
}
