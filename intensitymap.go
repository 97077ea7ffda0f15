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

// IntensityMap is the per-scenario grid of maximum burn intensity,
// maximum rate of spread and the direction recorded with it, plus a global "is
// burned" bitset. A cell transitions unburned to burned exactly once;
// later burns only ever raise the stored intensity (and the ROS/direction
// pair only when ROS increases).
type IntensityMap struct {
	grid *GridBase

	intensity *sparse.DenseArray // kW/m, stored as float64 but conceptually 16-bit
	rosAtMax  *sparse.DenseArray // m/min
	dirAtMax  *sparse.DenseArray // degrees
	burned    []bool
}

// NewIntensityMap returns an all-unburned IntensityMap over the given
// grid.
func NewIntensityMap(grid *GridBase) *IntensityMap {
	return &IntensityMap{
		grid:      grid,
		intensity: sparse.ZerosDense(grid.Rows, grid.Cols),
		rosAtMax:  sparse.ZerosDense(grid.Rows, grid.Cols),
		dirAtMax:  sparse.ZerosDense(grid.Rows, grid.Cols),
		burned:    make([]bool, grid.Rows*grid.Cols),
	}
}

func (m *IntensityMap) index(l Location) int { return l.Row()*m.grid.Cols + l.Column() }

// IsBurned reports whether l has ever been burned.
func (m *IntensityMap) IsBurned(l Location) bool {
	return m.burned[m.index(l)]
}

// Intensity returns the stored maximum intensity at l, in kW/m.
func (m *IntensityMap) Intensity(l Location) float64 {
	return m.intensity.Get(l.Row(), l.Column())
}

// ROSAtMax and DirAtMax return the rate of spread and direction recorded
// alongside the current maximum intensity at l.
func (m *IntensityMap) ROSAtMax(l Location) float64 { return m.rosAtMax.Get(l.Row(), l.Column()) }
func (m *IntensityMap) DirAtMax(l Location) float64 { return m.dirAtMax.Get(l.Row(), l.Column()) }

// Burn marks l as burned, raising its stored intensity to
// max(previous, intensity) and updating ROS/direction only when ros
// strictly exceeds the ROS recorded for the previous maximum.
func (m *IntensityMap) Burn(l Location, intensity, ros, dir float64) {
	idx := m.index(l)
	m.burned[idx] = true
	row, col := l.Row(), l.Column()
	if intensity > m.intensity.Get(row, col) {
		m.intensity.Set(intensity, row, col)
	}
	if ros > m.rosAtMax.Get(row, col) {
		m.rosAtMax.Set(ros, row, col)
		m.dirAtMax.Set(dir, row, col)
	}
}

// IsSurrounded reports whether l and all 8 of its neighbors are marked
// burned. Neighbor coordinates are range-checked numerically before
// packing so edge cells can never wrap onto the opposite side of the
// grid.
func (m *IntensityMap) IsSurrounded(l Location) bool {
	if !m.IsBurned(l) {
		return false
	}
	for d := dirN; d <= dirNW; d++ {
		r := l.Row() + rowOffset[d]
		c := l.Column() + colOffset[d]
		if r < 0 || r >= m.grid.Rows || c < 0 || c >= m.grid.Cols {
			return false
		}
		if !m.IsBurned(NewLocation(r, c)) {
			return false
		}
	}
	return true
}

// Size returns the fire size in hectares: the count of burned cells
// times cell area, divided by 10000 m^2/ha.
func (m *IntensityMap) Size() float64 {
	count := 0
	for _, b := range m.burned {
		if b {
			count++
		}
	}
	return float64(count) * m.grid.CellSize * m.grid.CellSize / 10000
}
