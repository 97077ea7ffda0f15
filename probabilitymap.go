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
	"sync"

	"github.com/ctessum/sparse"
)

// IntensityBand names the three probability partitions an IntensityMap's
// burned cells fall into.
type IntensityBand int

const (
	BandLow IntensityBand = iota
	BandModerate
	BandHigh
	numBands
)

// ProbabilityMap is the mutex-guarded accumulation of per-cell burn
// counts (the "occurrence" output) across scenarios, partitioned by
// intensity band, for one save offset.
type ProbabilityMap struct {
	mu sync.Mutex

	grid        *GridBase
	occurrence  *sparse.DenseArray
	bands       [numBands]*sparse.DenseArray
	completed   int
}

// NewProbabilityMap returns an empty ProbabilityMap over the given grid.
func NewProbabilityMap(grid *GridBase) *ProbabilityMap {
	m := &ProbabilityMap{
		grid:       grid,
		occurrence: sparse.ZerosDense(grid.Rows, grid.Cols),
	}
	for i := range m.bands {
		m.bands[i] = sparse.ZerosDense(grid.Rows, grid.Cols)
	}
	return m
}

// Add folds one scenario's IntensityMap into the map: every burned cell's
// occurrence count is incremented, and its appropriate intensity band is
// incremented according to lowMax/moderateMax (the settings-configured
// INTENSITY_MAX_LOW / INTENSITY_MAX_MODERATE thresholds, in kW/m).
func (m *ProbabilityMap) Add(im *IntensityMap, lowMax, moderateMax float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for row := 0; row < m.grid.Rows; row++ {
		for col := 0; col < m.grid.Cols; col++ {
			l := NewLocation(row, col)
			if !im.IsBurned(l) {
				continue
			}
			m.occurrence.AddVal(1, row, col)
			band := bandFor(im.Intensity(l), lowMax, moderateMax)
			m.bands[band].AddVal(1, row, col)
		}
	}
	m.completed++
}

func bandFor(intensity, lowMax, moderateMax float64) IntensityBand {
	switch {
	case intensity <= lowMax:
		return BandLow
	case intensity <= moderateMax:
		return BandModerate
	default:
		return BandHigh
	}
}

// Merge folds another ProbabilityMap's accumulated delta into m, used to
// fold a per-iteration-clone ProbabilityMap into the shared one (§4.7
// step 4).
func (m *ProbabilityMap) Merge(rhs *ProbabilityMap) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rhs.mu.Lock()
	defer rhs.mu.Unlock()
	m.occurrence.AddDense(rhs.occurrence)
	for i := range m.bands {
		m.bands[i].AddDense(rhs.bands[i])
	}
	m.completed += rhs.completed
}

// Reset zeros the map in place, used after folding a delta into the
// shared map.
func (m *ProbabilityMap) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.occurrence = sparse.ZerosDense(m.grid.Rows, m.grid.Cols)
	for i := range m.bands {
		m.bands[i] = sparse.ZerosDense(m.grid.Rows, m.grid.Cols)
	}
	m.completed = 0
}

// Completed returns the number of scenarios folded into this map.
func (m *ProbabilityMap) Completed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.completed
}

// Probability returns occurrence-count / completed-simulations at l, in
// [0, 1], or 0 if no simulations have completed. Every cell value is
// bounded in [0, completed_simulations] by construction, since Add never
// increments a cell more than once per simulation.
func (m *ProbabilityMap) Probability(l Location) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completed == 0 {
		return 0
	}
	return m.occurrence.Get(l.Row(), l.Column()) / float64(m.completed)
}

// Occurrence returns the raw occurrence count at l.
func (m *ProbabilityMap) Occurrence(l Location) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.occurrence.Get(l.Row(), l.Column())
}

// BandProbability returns the fraction of completed simulations in which
// l burned at the given intensity band.
func (m *ProbabilityMap) BandProbability(l Location, band IntensityBand) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completed == 0 {
		return 0
	}
	return m.bands[band].Get(l.Row(), l.Column()) / float64(m.completed)
}
