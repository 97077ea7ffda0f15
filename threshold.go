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
	"math/rand"
)

// ThresholdWeights are the three non-negative weights combined into the
// per-hour threshold value (§4.4).
type ThresholdWeights struct {
	Scenario float64 // W_s, drawn once per stream
	Daily    float64 // W_d, drawn once per day
	Hourly   float64 // W_h, drawn once per hour
}

// ThresholdArrays holds a scenario's two pre-rolled, per-hour Monte-Carlo
// gating arrays, indexed by (day-start_day)*24 + hour. They are owned
// per-scenario and never shared (§5).
type ThresholdArrays struct {
	StartDay int
	LastDay  int

	// Extinction holds 1-w, the extinction-survival threshold, verbatim.
	Extinction []float64
	// SpreadROS holds inverse_spread_prob(1-w), the minimum rate of
	// spread a cell needs in order to be considered "spreading fast
	// enough" that hour.
	SpreadROS []float64
}

// thresholdArrayLen reproduces the source's "+2" sizing rather than the
// more obviously-correct "+1": the hour index at exactly last_save must
// remain in-bounds (§9 "off-by-one on threshold length"). This is a
// deliberately preserved quirk, not a bug to fix.
func thresholdArrayLen(startDay, lastDay int) int {
	return (lastDay - startDay + 2) * 24
}

// NewThresholdArrays draws a scenario's extinction and spread-ROS arrays
// from extRNG and spreadRNG, two independent per-iteration seed
// sequences, using the given weights. When deterministic is true both
// arrays are filled with zeros: extinction thresholds of zero mean every
// ignition survives, and a spread-ROS floor of zero (the value
// inverseSpreadProb gives at p = 0) means every cell is considered spreading fast
// enough, per §4.4 "Deterministic mode."
func NewThresholdArrays(extRNG, spreadRNG *rand.Rand, startDay, lastDay int, w ThresholdWeights, deterministic bool) *ThresholdArrays {
	n := thresholdArrayLen(startDay, lastDay)
	t := &ThresholdArrays{StartDay: startDay, LastDay: lastDay, Extinction: make([]float64, n), SpreadROS: make([]float64, n)}
	if deterministic {
		return t
	}

	sum := w.Scenario + w.Daily + w.Hourly
	if sum == 0 {
		sum = 1
	}

	extGeneral := extRNG.Float64()
	spreadGeneral := spreadRNG.Float64()

	for d := startDay; d < startDay+(n/24); d++ {
		extDaily := extRNG.Float64()
		spreadDaily := spreadRNG.Float64()
		for h := 0; h < 24; h++ {
			idx := (d-startDay)*24 + h
			if idx >= n {
				break
			}
			extHourly := extRNG.Float64()
			spreadHourly := spreadRNG.Float64()

			extW := (w.Scenario*extGeneral + w.Daily*extDaily + w.Hourly*extHourly) / sum
			spreadW := (w.Scenario*spreadGeneral + w.Daily*spreadDaily + w.Hourly*spreadHourly) / sum

			t.Extinction[idx] = clamp01(1 - extW)
			t.SpreadROS[idx] = inverseSpreadProb(clamp01(1 - spreadW))
		}
	}
	return t
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// inverseSpreadProb implements inverse_spread_prob(p) = (25/4) *
// ln(-(e^(41/25) * p) / (p - 1)), with numeric guards at the endpoints:
// p == 0 returns 0, p == 1 returns +Inf. It is non-decreasing on (0,1).
func inverseSpreadProb(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if p >= 1 {
		return math.Inf(1)
	}
	return (25.0 / 4.0) * math.Log(-(math.Exp(41.0/25.0)*p)/(p-1))
}

// hourIndex converts a time timeDays (fractional days since day zero)
// into the index into ThresholdArrays.Extinction/SpreadROS.
func (t *ThresholdArrays) hourIndex(timeDays float64) int {
	hour := int(math.Floor(timeDays * 24))
	idx := hour - t.StartDay*24
	if idx < 0 {
		idx = 0
	}
	if idx >= len(t.Extinction) {
		idx = len(t.Extinction) - 1
	}
	return idx
}

// ExtinctionAt returns the extinction threshold for the hour containing
// timeDays.
func (t *ThresholdArrays) ExtinctionAt(timeDays float64) float64 {
	return t.Extinction[t.hourIndex(timeDays)]
}

// SpreadROSAt returns the minimum rate of spread for the hour containing
// timeDays.
func (t *ThresholdArrays) SpreadROSAt(timeDays float64) float64 {
	return t.SpreadROS[t.hourIndex(timeDays)]
}
