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
	"context"
	"math"
	"testing"
)

func TestEvaluateSpreadInfoBelowMinimumIsInvalid(t *testing.T) {
	req := spreadInfoRequest{
		fuel:      testFuel{code: 1, headROS: 0.01, backROS: 0.005, lb: 1, burns: true},
		cellSize:  100,
		minROS:    0.05,
		algorithm: Original{MaxAngleDeg: 30, MinROS: 0.001},
	}
	info := evaluateSpreadInfo(req)
	if !info.Invalid {
		t.Error("a head ROS below the minimum should mark the SpreadInfo invalid")
	}
	if len(info.Offsets) != 0 {
		t.Errorf("an invalid SpreadInfo should carry no offsets, got %d", len(info.Offsets))
	}
}

func TestEvaluateSpreadInfoIntensityAndAzimuth(t *testing.T) {
	req := spreadInfoRequest{
		fuel:      testFuel{code: 1, headROS: 10, backROS: 2, lb: 2, burns: true},
		cellSize:  100,
		minROS:    0.05,
		algorithm: Original{MaxAngleDeg: 30, MinROS: 0.001},
		in:        SpreadInputs{WindDirDeg: 180}, // wind from the south
	}
	info := evaluateSpreadInfo(req)
	if info.Invalid {
		t.Fatal("SpreadInfo unexpectedly invalid")
	}
	// testFuel consumes 1 kg/m^2 of surface fuel and no crown fuel, so
	// head intensity is 300 * 1 * 10.
	if info.MaxIntensity != 3000 {
		t.Errorf("MaxIntensity = %v, want 3000", info.MaxIntensity)
	}
	// Wind from the south drives the head north: azimuth 0.
	if math.Abs(info.HeadAzimuth) > 1e-9 && math.Abs(info.HeadAzimuth-2*math.Pi) > 1e-9 {
		t.Errorf("HeadAzimuth = %v rad, want 0 (north) for wind from the south", info.HeadAzimuth)
	}
	if len(info.Offsets) == 0 {
		t.Error("a valid SpreadInfo should carry at least one offset")
	}
}

// TestSpreadInfoCacheSharesEvaluations checks that two lookups with the
// same spread key within one hour return the same evaluation.
func TestSpreadInfoCacheSharesEvaluations(t *testing.T) {
	cache := newSpreadInfoCache(1, 16)
	req := spreadInfoRequest{
		fuel:      testFuel{code: 1, headROS: 10, backROS: 2, lb: 2, burns: true},
		cellSize:  100,
		minROS:    0.05,
		algorithm: Original{MaxAngleDeg: 30, MinROS: 0.001},
	}
	a, err := cache.Get(context.Background(), 42, req)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	b, err := cache.Get(context.Background(), 42, req)
	if err != nil {
		t.Fatalf("Get error = %v", err)
	}
	if a != b {
		t.Error("two Gets with the same spread key should return the same cached *SpreadInfo")
	}
}
