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

	"github.com/go-ini/ini"
)

// Settings replaces the source's global mutable configuration state with
// an explicit struct passed to the Model at construction and plumbed
// through from there (§9 "Global mutable state").
type Settings struct {
	RasterRoot       string
	FuelLookupTable  string
	MinimumROS       float64
	MaxSpreadDistance float64
	MinimumFFMC      float64
	MinimumFFMCNight float64
	OffsetSunrise    float64
	OffsetSunset     float64
	ConfidenceLevel  float64
	MaximumTime      float64 // seconds
	MaximumSimulations int
	ThresholdWeights ThresholdWeights
	OutputDateOffsets []int
	DefaultPercentConifer float64
	DefaultPercentDeadFir float64
	IntensityMaxLow      float64
	IntensityMaxModerate float64
}

// DefaultSettings returns the settings used when no settings.ini value is
// given for a key, reflecting typical FBP-system defaults.
func DefaultSettings() Settings {
	return Settings{
		MinimumROS:            0.05,
		MaxSpreadDistance:     5,
		MinimumFFMC:           80,
		MinimumFFMCNight:      85,
		OffsetSunrise:         0,
		OffsetSunset:          0,
		ConfidenceLevel:       0.95,
		MaximumTime:           3600,
		MaximumSimulations:    10000,
		ThresholdWeights:      ThresholdWeights{Scenario: 1, Daily: 1, Hourly: 1},
		OutputDateOffsets:     []int{1, 2, 3},
		DefaultPercentConifer: 50,
		DefaultPercentDeadFir: 0,
		IntensityMaxLow:       500,
		IntensityMaxModerate:  2000,
	}
}

// LoadSettings parses a settings.ini file at path (§6), overlaying values
// onto DefaultSettings for any key the file omits.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	cfg, err := ini.Load(path)
	if err != nil {
		return s, fmt.Errorf("tinder.LoadSettings: %v", err)
	}
	sec := cfg.Section("")

	getString := func(key string, dst *string) {
		if k, err := sec.GetKey(key); err == nil {
			*dst = k.String()
		}
	}
	getFloat := func(key string, dst *float64) {
		if k, err := sec.GetKey(key); err == nil {
			if v, err := k.Float64(); err == nil {
				*dst = v
			}
		}
	}
	getInt := func(key string, dst *int) {
		if k, err := sec.GetKey(key); err == nil {
			if v, err := k.Int(); err == nil {
				*dst = v
			}
		}
	}

	getString("RASTER_ROOT", &s.RasterRoot)
	getString("FUEL_LOOKUP_TABLE", &s.FuelLookupTable)
	getFloat("MINIMUM_ROS", &s.MinimumROS)
	getFloat("MAX_SPREAD_DISTANCE", &s.MaxSpreadDistance)
	getFloat("MINIMUM_FFMC", &s.MinimumFFMC)
	getFloat("MINIMUM_FFMC_AT_NIGHT", &s.MinimumFFMCNight)
	getFloat("OFFSET_SUNRISE", &s.OffsetSunrise)
	getFloat("OFFSET_SUNSET", &s.OffsetSunset)
	getFloat("CONFIDENCE_LEVEL", &s.ConfidenceLevel)
	getFloat("MAXIMUM_TIME", &s.MaximumTime)
	getInt("MAXIMUM_SIMULATIONS", &s.MaximumSimulations)
	getFloat("THRESHOLD_SCENARIO_WEIGHT", &s.ThresholdWeights.Scenario)
	getFloat("THRESHOLD_DAILY_WEIGHT", &s.ThresholdWeights.Daily)
	getFloat("THRESHOLD_HOURLY_WEIGHT", &s.ThresholdWeights.Hourly)
	getFloat("DEFAULT_PERCENT_CONIFER", &s.DefaultPercentConifer)
	getFloat("DEFAULT_PERCENT_DEAD_FIR", &s.DefaultPercentDeadFir)
	getFloat("INTENSITY_MAX_LOW", &s.IntensityMaxLow)
	getFloat("INTENSITY_MAX_MODERATE", &s.IntensityMaxModerate)

	if k, err := sec.GetKey("OUTPUT_DATE_OFFSETS"); err == nil {
		s.OutputDateOffsets = nil
		for _, tok := range strings.Split(k.String(), ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			var v int
			if _, err := fmt.Sscanf(tok, "%d", &v); err == nil {
				s.OutputDateOffsets = append(s.OutputDateOffsets, v)
			}
		}
	}

	return s, nil
}

// MinimumFFMCFor returns the day or night minimum FFMC threshold,
// depending on whether hour falls within the sunrise/sunset window
// (§4.2 step 2).
func (s Settings) MinimumFFMCFor(hour float64, sunrise, sunset float64) float64 {
	if hour >= sunrise+s.OffsetSunrise && hour <= sunset+s.OffsetSunset {
		return s.MinimumFFMC
	}
	return s.MinimumFFMCNight
}
