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

// SpreadInputs bundles the per-cell, per-hour inputs a FuelType needs to
// evaluate the FBP rate-of-spread equations: slope/aspect terrain, wind,
// the hourly FWI stream, and the green-up state derived from nd (days
// since/until minimum foliar moisture content).
type SpreadInputs struct {
	SlopePercent  uint8
	AspectDegrees uint16
	WindSpeedKPH  float64
	WindDirDeg    float64
	Hourly        HourlyWeather
	Daily         DailyWeather
	ND            int  // days from the date of minimum foliar moisture content
	GreenUp       bool // derived from ND; switches composite fuels (M1/M2...) between variants
	PercentConifer float64
	PercentDeadFir float64
}

// FuelType is the collaborator contract a concrete FBP fuel-type library
// must satisfy. Per-fuel rate-of-spread formulas and the derived-class
// hierarchy of the original FBP system are not reproduced here — this is
// only the contract the spread engine consumes (§1, §9 "Deep inheritance
// of FuelType").
type FuelType interface {
	// Code is the fuel-table index this FuelType corresponds to, the same
	// value stored in Cell.FuelCode.
	Code() int

	// RateOfSpread returns the head and back rates of spread in m/min and
	// the length-to-breadth ratio of the fire ellipse under the given
	// inputs.
	RateOfSpread(in SpreadInputs) (headROS, backROS, lbRatio float64)

	// SurfaceFuelConsumption returns surface fuel consumption in kg/m^2.
	SurfaceFuelConsumption(in SpreadInputs) float64

	// CrownFuelConsumption returns crown fuel consumption in kg/m^2; zero
	// for fuel types that do not support crown fire.
	CrownFuelConsumption(in SpreadInputs) float64

	// CriticalSurfaceIntensity returns the fireline intensity (kW/m) above
	// which crowning is expected to occur.
	CriticalSurfaceIntensity(in SpreadInputs) float64

	// SurvivalProbability returns the probability that an ignition
	// survives given the daily weather stream, consumed by the
	// extinction-threshold test in the spread step (§4.4).
	SurvivalProbability(daily DailyWeather) float64

	// BUIEffect returns the buildup-index correction factor applied to
	// fuel consumption.
	BUIEffect(bui float64) float64

	// CanBurn reports whether this fuel type can carry fire at all (false
	// for e.g. water, rock, or non-fuel cover types).
	CanBurn() bool
}

// testFuel is a constant-rate-of-spread FuelType stand-in used by the
// package's own tests to exercise the spread engine without depending on
// a concrete FBP fuel-type implementation, matching the "fuel trait" Open
// Question resolution: only the contract is reproduced, never the
// per-fuel formulas.
type testFuel struct {
	code                int
	headROS, backROS, lb float64
	survival            float64
	burns               bool
}

func (f testFuel) Code() int { return f.code }

func (f testFuel) RateOfSpread(SpreadInputs) (float64, float64, float64) {
	return f.headROS, f.backROS, f.lb
}

func (f testFuel) SurfaceFuelConsumption(SpreadInputs) float64    { return 1.0 }
func (f testFuel) CrownFuelConsumption(SpreadInputs) float64     { return 0.0 }
func (f testFuel) CriticalSurfaceIntensity(SpreadInputs) float64 { return 1e9 }
func (f testFuel) SurvivalProbability(DailyWeather) float64      { return f.survival }
func (f testFuel) BUIEffect(float64) float64                     { return 1.0 }
func (f testFuel) CanBurn() bool                                 { return f.burns }
