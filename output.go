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
	"time"

	"github.com/ctessum/geom/proj"
	"github.com/ctessum/sparse"
)

// outputName builds the stable output name pattern described in §6:
// "<kind>_<day>_<YYYY-MM-DD>".
func outputName(kind string, day int, date time.Time) string {
	return fmt.Sprintf("%s_%d_%s", kind, day, date.Format("2006-01-02"))
}

// WriteOutputs writes the five per-save-time rasters (probability,
// occurrence, and the three intensity bands) via w, plus a sizes CSV via
// sizesOut, following the naming pattern of §6. A nil sizesOut skips the
// sizes CSV (only the last save offset carries one).
func WriteOutputs(w RasterWriter, pm *ProbabilityMap, grid *GridBase, day int, date time.Time, sizes []float64, sizesOut io.Writer) error {
	prob := denseFromCells(grid, pm.Probability)
	if err := w.WriteFloat32(outputName("probability", day, date), prob, -9999); err != nil {
		return fmt.Errorf("tinder.WriteOutputs: %v", err)
	}

	occ := denseFromCells(grid, pm.Occurrence)
	if err := w.WriteUint32(outputName("occurrence", day, date), occ); err != nil {
		return fmt.Errorf("tinder.WriteOutputs: %v", err)
	}

	for _, band := range []struct {
		name string
		b    IntensityBand
	}{{"intensity_L", BandLow}, {"intensity_M", BandModerate}, {"intensity_H", BandHigh}} {
		dense := denseFromCells(grid, func(l Location) float64 { return pm.BandProbability(l, band.b) })
		if err := w.WriteFloat32(outputName(band.name, day, date), dense, -9999); err != nil {
			return fmt.Errorf("tinder.WriteOutputs: %v", err)
		}
	}

	if sizesOut == nil {
		return nil
	}
	return writeSizesCSV(sizesOut, sizes)
}

// WriteProjectionSidecar validates the input proj4 string and asks w to
// produce the .prj sidecar from it (§6). Validation happens here so a
// malformed projection fails the run before any raster is written with
// it, rather than inside whichever GIS tool reads the sidecar later.
func WriteProjectionSidecar(w RasterWriter, proj4 string) error {
	if _, err := proj.Parse(proj4); err != nil {
		return fmt.Errorf("tinder.WriteProjectionSidecar: invalid proj4 %q: %v", proj4, err)
	}
	return w.WriteProjection(proj4)
}

// denseFromCells builds a DenseArray over grid's extent by calling value
// once per cell; used to materialize a ProbabilityMap view for a
// RasterWriter, which has no notion of Location.
func denseFromCells(grid *GridBase, value func(Location) float64) *sparse.DenseArray {
	d := sparse.ZerosDense(grid.Rows, grid.Cols)
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			d.Set(value(NewLocation(row, col)), row, col)
		}
	}
	return d
}

func writeSizesCSV(w io.Writer, sizes []float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"size_ha"}); err != nil {
		return err
	}
	for _, s := range sizes {
		if err := cw.Write([]string{strconv.FormatFloat(s, 'f', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
