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
	"math"

	"github.com/ctessum/geom"
)

// XYPos is a position in continuous coordinates, independent of any
// particular cell. The spread engine uses it in cell units (x = column +
// fraction, y = row + fraction, rows increasing northward, so the cell
// is recovered by floor); GridBase's affine transform uses it in meters
// for georeferencing. Arithmetic is plain floating point either way.
type XYPos struct {
	X, Y float64
}

// Point converts p to a geom.Point for use with the geom package's
// geometric primitives.
func (p XYPos) Point() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

// Add returns the sum of p and q.
func (p XYPos) Add(q XYPos) XYPos {
	return XYPos{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference p - q.
func (p XYPos) Sub(q XYPos) XYPos {
	return XYPos{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by factor k.
func (p XYPos) Scale(k float64) XYPos {
	return XYPos{X: p.X * k, Y: p.Y * k}
}

// DistanceSquared returns the squared Euclidean distance between p and q.
// Used instead of Distance wherever only relative ordering matters, to
// avoid the sqrt.
func (p XYPos) DistanceSquared(q XYPos) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between p and q.
func (p XYPos) Distance(q XYPos) float64 {
	return math.Sqrt(p.DistanceSquared(q))
}

// InnerPos is the sub-cell fractional offset of a point within the cell
// that contains it: the offset from the cell's lower-left corner, in
// [0, 1) on each axis. CellPoints stores its per-direction
// representatives as InnerPos values so they stay valid when a pooled
// cell is reused; the enclosing cell converts them back to grid
// coordinates.
type InnerPos struct {
	X, Y float64
}

// DistanceSquared returns the squared distance between two inner
// offsets, used to rank candidates against a direction's outer
// reference point.
func (p InnerPos) DistanceSquared(q InnerPos) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}
