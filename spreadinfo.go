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
	"fmt"
	"math"

	"github.com/ctessum/requestcache"
)

// SpreadInfo is the per-(spread-key, hour) FBP evaluation result: head
// rate of spread, direction, maximum fireline intensity, and the set of
// outward offsets a spread step applies to every point in a spreading
// cell.
type SpreadInfo struct {
	HeadROS      float64
	BackROS      float64
	LBRatio      float64
	HeadAzimuth  float64 // radians
	MaxIntensity float64 // kW/m
	Offsets      OffsetSet
	Invalid      bool // true when HeadROS < minimum ROS: no spread
}

// spreadInfoRequest bundles the inputs needed to evaluate a SpreadInfo,
// used as the request payload for the per-hour cache.
type spreadInfoRequest struct {
	fuel          FuelType
	in            SpreadInputs
	cellSize      float64
	minROS        float64
	algorithm     SpreadAlgorithm
	slopeAzimuth  float64
}

// spreadInfoCache wraps a requestcache.Cache configured with
// Deduplicate() (so concurrent spread steps evaluating the same spread
// key within an hour share one computation) and an in-memory LRU
// (Memory) layer, keyed by the spread key alone (as a decimal string).
// The hour is not part of the key, so the cache is reset between hours
// by discarding it and building a fresh one (§4.2 step 3: "If the hour index changed... reset per-hour
// caches").
type spreadInfoCache struct {
	cache *requestcache.Cache
}

// newSpreadInfoCache builds a fresh per-hour SpreadInfo cache. numWorkers
// bounds how many evaluations run concurrently; memoryEntries bounds the
// size of the in-memory LRU layer.
func newSpreadInfoCache(numWorkers, memoryEntries int) *spreadInfoCache {
	process := func(ctx context.Context, payload interface{}) (interface{}, error) {
		req := payload.(spreadInfoRequest)
		return evaluateSpreadInfo(req), nil
	}
	return &spreadInfoCache{
		cache: requestcache.NewCache(process, numWorkers, requestcache.Deduplicate(), requestcache.Memory(memoryEntries)),
	}
}

// Get evaluates (or returns the cached evaluation of) the SpreadInfo for
// the given spread key this hour.
func (c *spreadInfoCache) Get(ctx context.Context, spreadKey uint32, req spreadInfoRequest) (*SpreadInfo, error) {
	key := fmt.Sprintf("%d", spreadKey)
	result, err := c.cache.NewRequest(ctx, req, key).Result()
	if err != nil {
		return nil, err
	}
	info := result.(*SpreadInfo)
	return info, nil
}

// evaluateSpreadInfo implements §4.3: compute head/back ROS and L/B from
// the FuelType contract, test against the minimum ROS, and (if spreading)
// build the outward OffsetSet and head fireline intensity.
func evaluateSpreadInfo(req spreadInfoRequest) *SpreadInfo {
	headROS, backROS, lb := req.fuel.RateOfSpread(req.in)
	// WD is the direction the wind blows from; the head fire runs the
	// opposite way.
	headAzimuth := fixRadians((req.in.WindDirDeg + 180) * math.Pi / 180)

	info := &SpreadInfo{HeadROS: headROS, BackROS: backROS, LBRatio: lb, HeadAzimuth: headAzimuth}
	if headROS < req.minROS {
		info.Invalid = true
		return info
	}

	correction := func(dir float64) float64 {
		return CorrectionFactor(dir, float64(req.in.SlopePercent), req.slopeAzimuth)
	}
	info.Offsets = req.algorithm.CalculateOffsets(headROS, backROS, lb, headAzimuth, req.cellSize, correction)

	sfc := req.fuel.SurfaceFuelConsumption(req.in)
	cfc := req.fuel.CrownFuelConsumption(req.in)
	// Head fireline intensity (kW/m) = 300 * total fuel consumption
	// (kg/m^2) * head ROS (m/min), the standard Byram relation used
	// throughout the FBP system.
	info.MaxIntensity = 300 * (sfc + cfc) * headROS

	return info
}
