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
	"fmt"
	"strings"
	"testing"
)

const weatherHeader = "Scenario,Date,PREC,TEMP,RH,WS,WD,FFMC,DMC,DC,ISI,BUI,FWI"

// buildWeatherCSV produces hours rows for the given scenario id, with a
// fixed 0.5mm of precipitation per hour and an FFMC that encodes the
// hour index so tests can confirm row order is preserved.
func buildWeatherCSV(scenarioID, hours int) string {
	var b strings.Builder
	b.WriteString(weatherHeader + "\n")
	for h := 0; h < hours; h++ {
		fmt.Fprintf(&b, "%d,2026-06-0%d %02d:00,0.5,20,40,15,180,%d,35,275,8,60,15\n",
			scenarioID, 1+h/24, h%24, 80+h%24)
	}
	return b.String()
}

func TestLoadCSVWeatherFiltersByScenario(t *testing.T) {
	csv := weatherHeader + "\n" +
		"1,2026-06-01 00:00,0,20,40,15,180,85,35,275,8,60,15\n" +
		"2,2026-06-01 00:00,0,25,30,25,90,90,40,300,10,70,20\n" +
		"1,2026-06-01 01:00,0,21,39,15,180,86,35,275,8,60,15\n"

	w, err := LoadCSVWeather(strings.NewReader(csv), 1)
	if err != nil {
		t.Fatalf("LoadCSVWeather error = %v", err)
	}
	h0, err := w.HourlyAt(0)
	if err != nil {
		t.Fatalf("HourlyAt(0) error = %v", err)
	}
	if h0.FFMC != 85 || h0.Temp != 20 {
		t.Errorf("HourlyAt(0) = %+v, want the first scenario-1 row (FFMC 85, Temp 20)", h0)
	}
	h1, err := w.HourlyAt(1)
	if err != nil {
		t.Fatalf("HourlyAt(1) error = %v", err)
	}
	if h1.FFMC != 86 {
		t.Errorf("HourlyAt(1).FFMC = %v, want 86 (scenario-2 rows must be skipped)", h1.FFMC)
	}
	if _, err := w.HourlyAt(2); err == nil {
		t.Error("HourlyAt(2) should be out of range with only two scenario-1 rows")
	}
}

func TestLoadCSVWeatherMissingColumn(t *testing.T) {
	csv := "Scenario,Date,PREC,TEMP,RH,WS,WD,FFMC,DMC,DC,ISI,BUI\n" + // no FWI
		"1,2026-06-01 00:00,0,20,40,15,180,85,35,275,8,60\n"
	if _, err := LoadCSVWeather(strings.NewReader(csv), 1); err == nil {
		t.Error("LoadCSVWeather should reject a header missing a required column")
	}
}

func TestLoadCSVWeatherNoRowsForScenario(t *testing.T) {
	csv := buildWeatherCSV(1, 24)
	if _, err := LoadCSVWeather(strings.NewReader(csv), 99); err == nil {
		t.Error("LoadCSVWeather should fail when the requested scenario id has no rows")
	}
}

// TestCSVWeatherDailyPrecipWindow checks the noon-ending 24-hour
// accumulation window: day d's precipitation sums hours [d*24-12,
// d*24+12), clipped to the available stream.
func TestCSVWeatherDailyPrecipWindow(t *testing.T) {
	w, err := LoadCSVWeather(strings.NewReader(buildWeatherCSV(1, 48)), 1)
	if err != nil {
		t.Fatalf("LoadCSVWeather error = %v", err)
	}
	if w.LastDay() != 1 {
		t.Fatalf("LastDay() = %d, want 1 for 48 hours of data", w.LastDay())
	}

	// Day 0's window starts 12 hours before the stream does, so only the
	// first 12 hours contribute: 12 * 0.5mm.
	d0, err := w.DailyAt(0)
	if err != nil {
		t.Fatalf("DailyAt(0) error = %v", err)
	}
	if d0.PrecipAccumulated != 6 {
		t.Errorf("DailyAt(0).PrecipAccumulated = %v, want 6 (12 in-stream hours at 0.5mm)", d0.PrecipAccumulated)
	}

	// Day 1's window is fully inside the stream: 24 * 0.5mm.
	d1, err := w.DailyAt(1)
	if err != nil {
		t.Fatalf("DailyAt(1) error = %v", err)
	}
	if d1.PrecipAccumulated != 12 {
		t.Errorf("DailyAt(1).PrecipAccumulated = %v, want 12 (full 24-hour window at 0.5mm)", d1.PrecipAccumulated)
	}

	// The daily indices come from the noon hour of each day.
	if d0.FFMC != 80+12 {
		t.Errorf("DailyAt(0).FFMC = %v, want the noon-hour FFMC %v", d0.FFMC, 80+12)
	}
}
