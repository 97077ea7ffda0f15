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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// HourlyWeather is one row of the hourly FWI stream.
type HourlyWeather struct {
	Precip     float64
	Temp       float64
	RH         float64
	WindSpeed  float64
	WindDir    float64
	FFMC       float64
	DMC        float64
	DC         float64
	ISI        float64
	BUI        float64
	FWI        float64
}

// DailyWeather is the accumulated-precipitation daily stream the
// survival test consumes (§6, §9 "precip-yesterday accounting").
type DailyWeather struct {
	PrecipAccumulated float64
	FFMC              float64
	DMC               float64
	DC                float64
	BUI               float64
}

// FireWeather is the collaborator contract for the hourly/daily FWI
// stream, indexed by offset-from-start rather than by calendar date so
// the core never has to parse dates itself.
type FireWeather interface {
	HourlyAt(hoursSinceStart int) (HourlyWeather, error)
	DailyAt(daysSinceStart int) (DailyWeather, error)
	StartDay() int
	LastDay() int
}

// CSVWeather is a FireWeather backed by the hourly weather CSV format
// described in §6: header
// "Scenario,Date,PREC,TEMP,RH,WS,WD,FFMC,DMC,DC,ISI,BUI,FWI", rows grouped
// by integer scenario id with consecutive hourly timestamps within a
// scenario.
type CSVWeather struct {
	hourly []HourlyWeather
	daily  []DailyWeather
}

// LoadCSVWeather reads the weather stream for a single scenario id from
// r. Only rows whose Scenario column equals scenarioID are kept; within
// those rows, timestamps are assumed already consecutive as required by
// §6, so no date parsing is performed — hour index is simply row order.
func LoadCSVWeather(r io.Reader, scenarioID int) (*CSVWeather, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("tinder.LoadCSVWeather: reading header: %v", err)
	}
	idx, err := weatherColumnIndex(header)
	if err != nil {
		return nil, fmt.Errorf("tinder.LoadCSVWeather: %v", err)
	}

	w := &CSVWeather{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tinder.LoadCSVWeather: %v", err)
		}
		id, err := strconv.Atoi(row[idx["Scenario"]])
		if err != nil {
			return nil, fmt.Errorf("tinder.LoadCSVWeather: invalid Scenario column: %v", err)
		}
		if id != scenarioID {
			continue
		}
		hw, err := parseHourlyRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("tinder.LoadCSVWeather: %v", err)
		}
		w.hourly = append(w.hourly, hw)
	}
	if len(w.hourly) == 0 {
		return nil, fmt.Errorf("tinder.LoadCSVWeather: no rows found for scenario %d", scenarioID)
	}
	w.buildDaily()
	return w, nil
}

func weatherColumnIndex(header []string) (map[string]int, error) {
	want := []string{"Scenario", "Date", "PREC", "TEMP", "RH", "WS", "WD", "FFMC", "DMC", "DC", "ISI", "BUI", "FWI"}
	idx := make(map[string]int, len(want))
	for i, h := range header {
		idx[h] = i
	}
	for _, w := range want {
		if _, ok := idx[w]; !ok {
			return nil, fmt.Errorf("missing required column %q", w)
		}
	}
	return idx, nil
}

func parseHourlyRow(row []string, idx map[string]int) (HourlyWeather, error) {
	get := func(col string) (float64, error) {
		return strconv.ParseFloat(row[idx[col]], 64)
	}
	var hw HourlyWeather
	var err error
	if hw.Precip, err = get("PREC"); err != nil {
		return hw, err
	}
	if hw.Temp, err = get("TEMP"); err != nil {
		return hw, err
	}
	if hw.RH, err = get("RH"); err != nil {
		return hw, err
	}
	if hw.WindSpeed, err = get("WS"); err != nil {
		return hw, err
	}
	if hw.WindDir, err = get("WD"); err != nil {
		return hw, err
	}
	if hw.FFMC, err = get("FFMC"); err != nil {
		return hw, err
	}
	if hw.DMC, err = get("DMC"); err != nil {
		return hw, err
	}
	if hw.DC, err = get("DC"); err != nil {
		return hw, err
	}
	if hw.ISI, err = get("ISI"); err != nil {
		return hw, err
	}
	if hw.BUI, err = get("BUI"); err != nil {
		return hw, err
	}
	if hw.FWI, err = get("FWI"); err != nil {
		return hw, err
	}
	return hw, nil
}

// buildDaily accumulates precipitation across each 24-hour window ending
// at noon into one DailyWeather per day of hourly data, and copies the
// noon-hour FFMC/DMC/DC/BUI as that day's representative indices.
//
// The accumulated precipitation is stored against the day it was
// accumulated over, which the source labels "yesterday" even when the
// window does not strictly align with the calendar day before the start
// day. That mislabeling is reproduced deliberately (§9 "precip-yesterday
// accounting") rather than corrected.
func (w *CSVWeather) buildDaily() {
	const noonHour = 12
	days := (len(w.hourly) + 23) / 24
	w.daily = make([]DailyWeather, days)
	for d := 0; d < days; d++ {
		var precip float64
		start := d*24 - (24 - noonHour)
		for h := start; h < start+24; h++ {
			if h < 0 || h >= len(w.hourly) {
				continue
			}
			precip += w.hourly[h].Precip
		}
		noon := d*24 + noonHour
		if noon >= len(w.hourly) {
			noon = len(w.hourly) - 1
		}
		w.daily[d] = DailyWeather{
			PrecipAccumulated: precip,
			FFMC:              w.hourly[noon].FFMC,
			DMC:                w.hourly[noon].DMC,
			DC:                 w.hourly[noon].DC,
			BUI:                w.hourly[noon].BUI,
		}
	}
}

// HourlyAt returns the hourly weather at the given offset from the start
// of the stream.
func (w *CSVWeather) HourlyAt(hoursSinceStart int) (HourlyWeather, error) {
	if hoursSinceStart < 0 || hoursSinceStart >= len(w.hourly) {
		return HourlyWeather{}, fmt.Errorf("tinder: hour %d out of range [0,%d)", hoursSinceStart, len(w.hourly))
	}
	return w.hourly[hoursSinceStart], nil
}

// DailyAt returns the daily weather at the given offset from the start of
// the stream.
func (w *CSVWeather) DailyAt(daysSinceStart int) (DailyWeather, error) {
	if daysSinceStart < 0 || daysSinceStart >= len(w.daily) {
		return DailyWeather{}, fmt.Errorf("tinder: day %d out of range [0,%d)", daysSinceStart, len(w.daily))
	}
	return w.daily[daysSinceStart], nil
}

// StartDay always returns 0: CSVWeather is indexed relative to its own
// first row, with calendar-date resolution left to the caller.
func (w *CSVWeather) StartDay() int { return 0 }

// LastDay returns the index of the last day holding any hourly data; that
// day may be only partly covered.
func (w *CSVWeather) LastDay() int {
	if len(w.daily) == 0 {
		return 0
	}
	return len(w.daily) - 1
}
