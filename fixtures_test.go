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

import "fmt"

// fakeFuelGrid is a uniform fuel grid for tests: every in-bounds cell
// reports the same fuel code, except the cells listed in holes, which
// report no data.
type fakeFuelGrid struct {
	rows, cols int
	code       int
	holes      map[Location]bool
}

func (f *fakeFuelGrid) FuelAt(loc Location) (int, bool) {
	if f.holes[loc] {
		return 0, false
	}
	r, c := loc.Row(), loc.Column()
	if r < 0 || r >= f.rows || c < 0 || c >= f.cols {
		return 0, false
	}
	return f.code, true
}

func (f *fakeFuelGrid) Bounds() GridBase { return GridBase{Rows: f.rows, Cols: f.cols} }

type fakeSlopeGrid struct{ pct uint8 }

func (f fakeSlopeGrid) SlopePercentAt(Location) (uint8, bool) { return f.pct, true }

type fakeAspectGrid struct{ deg uint16 }

func (f fakeAspectGrid) AspectDegreesAt(Location) (uint16, bool) { return f.deg, true }

type fakeFuelTable struct{ fuel FuelType }

func (f fakeFuelTable) Lookup(code int) (FuelType, bool) { return f.fuel, true }

// fakeWeather is a FireWeather stand-in returning the same hourly/daily
// reading for every non-negative offset, so tests don't need to build a
// realistic multi-day CSV stream just to exercise the spread step.
type fakeWeather struct {
	hourly HourlyWeather
	daily  DailyWeather
}

func (w fakeWeather) HourlyAt(h int) (HourlyWeather, error) {
	if h < 0 {
		return HourlyWeather{}, fmt.Errorf("fakeWeather: negative hour %d", h)
	}
	return w.hourly, nil
}

func (w fakeWeather) DailyAt(d int) (DailyWeather, error) {
	if d < 0 {
		return DailyWeather{}, fmt.Errorf("fakeWeather: negative day %d", d)
	}
	return w.daily, nil
}

func (w fakeWeather) StartDay() int { return 0 }
func (w fakeWeather) LastDay() int  { return 9999 }

// newUniformTerrain builds a Terrain over a rows x cols grid where every
// cell carries fuel code 1, resolved via table to fuel.
func newUniformTerrain(rows, cols int, fuel FuelType) *Terrain {
	return &Terrain{
		Fuel:   &fakeFuelGrid{rows: rows, cols: cols, code: 1},
		Slope:  fakeSlopeGrid{0},
		Aspect: fakeAspectGrid{0},
		Table:  fakeFuelTable{fuel: fuel},
	}
}

// shortWeather is a FireWeather whose hourly stream ends after a fixed
// number of hours, for exercising the not-enough-weather condition.
type shortWeather struct {
	hours int
}

func (w shortWeather) HourlyAt(h int) (HourlyWeather, error) {
	if h < 0 || h >= w.hours {
		return HourlyWeather{}, fmt.Errorf("shortWeather: hour %d past end of stream (%d hours)", h, w.hours)
	}
	return HourlyWeather{FFMC: 90}, nil
}

func (w shortWeather) DailyAt(d int) (DailyWeather, error) {
	if d < 0 || d*24 >= w.hours {
		return DailyWeather{}, fmt.Errorf("shortWeather: day %d past end of stream", d)
	}
	return DailyWeather{}, nil
}

func (w shortWeather) StartDay() int { return 0 }
func (w shortWeather) LastDay() int  { return w.hours / 24 }
