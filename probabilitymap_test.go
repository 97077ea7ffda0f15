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

import "testing"

// TestProbabilityMapBounds checks §8's "Each ProbabilityMap cell value is
// in [0, completed_simulations]."
func TestProbabilityMapBounds(t *testing.T) {
	g := testGrid3x3()
	pm := NewProbabilityMap(g)
	hot := NewLocation(1, 1)
	cold := NewLocation(0, 0)

	const nScenarios = 5
	for i := 0; i < nScenarios; i++ {
		im := NewIntensityMap(g)
		im.Burn(hot, 100, 1, 0) // burns every scenario
		if i%2 == 0 {
			im.Burn(cold, 100, 1, 0) // burns only some scenarios
		}
		pm.Add(im, 500, 2000)
	}

	if got := pm.Completed(); got != nScenarios {
		t.Fatalf("Completed() = %d, want %d", got, nScenarios)
	}
	if got := pm.Occurrence(hot); got < 0 || got > nScenarios {
		t.Errorf("Occurrence(hot) = %v, out of [0,%d]", got, nScenarios)
	}
	if got := pm.Probability(hot); got != 1 {
		t.Errorf("Probability(hot) = %v, want 1 (burned every scenario)", got)
	}
	if got := pm.Probability(cold); got < 0 || got > 1 {
		t.Errorf("Probability(cold) = %v, out of [0,1]", got)
	}
	never := NewLocation(2, 2)
	if got := pm.Probability(never); got != 0 {
		t.Errorf("Probability(never-burned cell) = %v, want 0", got)
	}
}

func TestProbabilityMapEmptyIsZero(t *testing.T) {
	pm := NewProbabilityMap(testGrid3x3())
	if got := pm.Probability(NewLocation(0, 0)); got != 0 {
		t.Errorf("Probability() on an empty map = %v, want 0", got)
	}
	if got := pm.Completed(); got != 0 {
		t.Errorf("Completed() on an empty map = %d, want 0", got)
	}
}

func TestProbabilityMapBandFor(t *testing.T) {
	cases := []struct {
		intensity, low, moderate float64
		want                     IntensityBand
	}{
		{100, 500, 2000, BandLow},
		{500, 500, 2000, BandLow},
		{1000, 500, 2000, BandModerate},
		{2000, 500, 2000, BandModerate},
		{5000, 500, 2000, BandHigh},
	}
	for _, c := range cases {
		if got := bandFor(c.intensity, c.low, c.moderate); got != c.want {
			t.Errorf("bandFor(%v,%v,%v) = %v, want %v", c.intensity, c.low, c.moderate, got, c.want)
		}
	}
}

func TestProbabilityMapMergeSumsCounts(t *testing.T) {
	g := testGrid3x3()
	l := NewLocation(1, 1)

	a := NewProbabilityMap(g)
	im := NewIntensityMap(g)
	im.Burn(l, 100, 1, 0)
	a.Add(im, 500, 2000)

	b := NewProbabilityMap(g)
	b.Add(im, 500, 2000)
	b.Add(im, 500, 2000)

	a.Merge(b)
	if got := a.Completed(); got != 3 {
		t.Errorf("Completed() after merge = %d, want 3", got)
	}
	if got := a.Occurrence(l); got != 3 {
		t.Errorf("Occurrence() after merge = %v, want 3", got)
	}
}

func TestProbabilityMapReset(t *testing.T) {
	g := testGrid3x3()
	pm := NewProbabilityMap(g)
	im := NewIntensityMap(g)
	im.Burn(NewLocation(0, 0), 100, 1, 0)
	pm.Add(im, 500, 2000)

	pm.Reset()
	if got := pm.Completed(); got != 0 {
		t.Errorf("Completed() after Reset() = %d, want 0", got)
	}
	if got := pm.Occurrence(NewLocation(0, 0)); got != 0 {
		t.Errorf("Occurrence() after Reset() = %v, want 0", got)
	}
}
