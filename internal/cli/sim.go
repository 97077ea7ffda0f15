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

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/probfire/tinder"
)

// RunSimulation is the sim command's engine-side half: it drives a
// fully-wired Model through RunIterations, writes the per-save-offset
// rasters and sizes CSVs into outDir, and logs the final size summary.
// The embedding application supplies the Model (with its terrain and
// weather collaborators already bound into BuildConfigs) and a
// RasterWriter for the chosen output format.
func RunSimulation(logger *tinder.Logger, model *tinder.Model, runCfg tinder.RunIterationsConfig, writer tinder.RasterWriter, proj4, outDir string, startDate time.Time) error {
	result := model.RunIterations(runCfg)
	if result.Err != nil {
		// Fatal tier: terminate with a formatted log message instead of
		// writing outputs from a truncated run.
		logger.Fatalf("simulation aborted: %v", result.Err)
	}

	if proj4 != "" {
		if err := tinder.WriteProjectionSidecar(writer, proj4); err != nil {
			return err
		}
	}

	saveTimes := make([]float64, 0, len(result.ProbabilityMaps))
	for t := range result.ProbabilityMaps {
		saveTimes = append(saveTimes, t)
	}
	sort.Float64s(saveTimes)

	for i, t := range saveTimes {
		day := int(t)
		date := startDate.AddDate(0, 0, day)

		// Only the last save offset carries a sizes CSV: earlier saves
		// snapshot mid-run state, but sizes are final-day quantities.
		var sizesW io.Writer
		var sizesFile *os.File
		if i == len(saveTimes)-1 {
			f, err := os.Create(filepath.Join(outDir, fmt.Sprintf("sizes_%d.csv", day)))
			if err != nil {
				return fmt.Errorf("cli.RunSimulation: %v", err)
			}
			sizesFile, sizesW = f, f
		}
		err := tinder.WriteOutputs(writer, result.ProbabilityMaps[t], model.Grid(), day, date, result.Sizes, sizesW)
		if sizesFile != nil {
			if cerr := sizesFile.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			return fmt.Errorf("cli.RunSimulation: %v", err)
		}
	}

	s := model.Summary()
	logger.Verbosef("final sizes: n=%d mean=%.2fha stddev=%.2fha p95=%.2fha", s.N, s.Mean, s.StdDev, s.Percentile95)
	return nil
}
