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

// Package cli builds the tinder command tree, mirroring the teacher's
// own cobra.Command wiring: a root command with PersistentFlags shared
// by every subcommand and one leaf command per CLI mode named in §6.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/probfire/tinder"
)

// globalFlags holds the flags shared by every subcommand.
type globalFlags struct {
	settingsPath string
	quiet        bool
	verbose      int
}

var flags globalFlags

// Root is the tinder command tree's entry point, analogous to the
// teacher's inmaputil.Root.
var Root = &cobra.Command{
	Use:   "tinder",
	Short: "Probabilistic wildland fire growth simulator",
}

func init() {
	Root.PersistentFlags().StringVar(&flags.settingsPath, "settings", "settings.ini", "path to settings.ini")
	Root.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "suppress non-warning log output")
	Root.PersistentFlags().IntVarP(&flags.verbose, "verbose", "v", 0, "diagnostic verbosity level (0-3)")

	Root.AddCommand(simCmd, surfaceCmd, testCmd)
}

func loggerFromFlags() *tinder.Logger {
	lvl := tinder.LevelWarning
	switch {
	case flags.quiet:
		lvl = tinder.LevelWarning
	case flags.verbose >= 3:
		lvl = tinder.LevelExtensive
	case flags.verbose == 2:
		lvl = tinder.LevelVerbose
	case flags.verbose == 1:
		lvl = tinder.LevelDebug
	}
	return tinder.NewLogger(lvl)
}

func loadSettingsOrDie(logger *tinder.Logger) tinder.Settings {
	s, err := tinder.LoadSettings(flags.settingsPath)
	if err != nil {
		logger.Warningf("using default settings: %v", err)
		return tinder.DefaultSettings()
	}
	return s
}

var simFlags = struct {
	wxFile        string
	ffmc, dmc, dc float64
	apcpPrev      float64
	perim         string
	size          float64
	deterministic bool
	ascii         bool
	points        bool
	noIntensity   bool
	noProbability bool
	occurrence    bool
	simArea       bool
	sync          bool
	confidence    float64
	interactive   bool
}{}

var simCmd = &cobra.Command{
	Use:   "sim <out-dir> <YYYY-MM-DD> <lat> <lon> <HH:MM>",
	Short: "Run a Monte-Carlo fire growth simulation",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFromFlags()
		settings := loadSettingsOrDie(logger)
		if simFlags.confidence > 0 {
			settings.ConfidenceLevel = simFlags.confidence
		}
		logger.Verbosef("sim: out=%s date=%s lat=%s lon=%s time=%s deterministic=%v", args[0], args[1], args[2], args[3], args[4], simFlags.deterministic)
		return fmt.Errorf("tinder sim: no raster/fuel collaborators are wired into this binary; embed the engine and call cli.RunSimulation with a tinder.Model built over your Terrain and FireWeather")
	},
}

func init() {
	f := simCmd.Flags()
	f.StringVar(&simFlags.wxFile, "wx", "", "hourly weather CSV file")
	f.Float64Var(&simFlags.ffmc, "ffmc", 0, "starting FFMC")
	f.Float64Var(&simFlags.dmc, "dmc", 0, "starting DMC")
	f.Float64Var(&simFlags.dc, "dc", 0, "starting DC")
	f.Float64Var(&simFlags.apcpPrev, "apcp_prev", 0, "precipitation on the day before start")
	f.StringVar(&simFlags.perim, "perim", "", "starting perimeter raster (mutually exclusive with --size)")
	f.Float64Var(&simFlags.size, "size", 0, "starting fire size in hectares (mutually exclusive with --perim)")
	f.BoolVar(&simFlags.deterministic, "deterministic", false, "disable Monte-Carlo thresholds (single deterministic run)")
	f.BoolVar(&simFlags.ascii, "ascii", false, "write ASCII grid instead of TIFF")
	f.BoolVar(&simFlags.points, "points", false, "also write the raw point set")
	f.BoolVar(&simFlags.noIntensity, "no-intensity", false, "skip intensity-band outputs")
	f.BoolVar(&simFlags.noProbability, "no-probability", false, "skip the probability output")
	f.BoolVar(&simFlags.occurrence, "occurrence", false, "write the raw occurrence-count output")
	f.BoolVar(&simFlags.simArea, "sim-area", false, "restrict simulation to the minimum bounding area")
	f.BoolVarP(&simFlags.sync, "sync", "s", false, "run synchronously (single iteration, no clones)")
	f.Float64Var(&simFlags.confidence, "confidence", 0, "override settings.ini CONFIDENCE_LEVEL")
	f.BoolVarP(&simFlags.interactive, "interactive", "i", false, "prompt before overwriting existing outputs")
}

var surfaceFlags = struct {
	ffmc, dmc, dc, wd, ws float64
}{}

var surfaceCmd = &cobra.Command{
	Use:   "surface <out-dir> <date> <lat> <lon> <HH:MM>",
	Short: "Compute a single-point FBP surface fire behavior summary",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFromFlags()
		logger.Verbosef("surface: out=%s date=%s lat=%s lon=%s time=%s", args[0], args[1], args[2], args[3], args[4])
		return fmt.Errorf("tinder surface: wiring a concrete FuelType is left to the embedding application")
	},
}

func init() {
	f := surfaceCmd.Flags()
	f.Float64Var(&surfaceFlags.ffmc, "ffmc", 0, "FFMC")
	f.Float64Var(&surfaceFlags.dmc, "dmc", 0, "DMC")
	f.Float64Var(&surfaceFlags.dc, "dc", 0, "DC")
	f.Float64Var(&surfaceFlags.wd, "wd", 0, "wind direction, degrees")
	f.Float64Var(&surfaceFlags.ws, "ws", 0, "wind speed, km/h")
}

var testFlags = struct {
	hours             bool
	fuel              bool
	ffmc, dmc, dc, wd, ws float64
	slope, aspect     float64
	forceCuring       bool
	forceGreenup      bool
	forceNoGreenup    bool
}{}

var testCmd = &cobra.Command{
	Use:   "test <out-dir> [all]",
	Short: "Run the fixed FBP regression scenarios",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFromFlags()
		logger.Verbosef("test: out=%s args=%v", args[0], args[1:])
		return fmt.Errorf("tinder test: wiring a concrete FuelTable is left to the embedding application")
	},
}

func init() {
	f := testCmd.Flags()
	f.BoolVar(&testFlags.hours, "hours", false, "test every hour of the day")
	f.BoolVar(&testFlags.fuel, "fuel", false, "test every fuel type")
	f.Float64Var(&testFlags.ffmc, "ffmc", 0, "FFMC")
	f.Float64Var(&testFlags.dmc, "dmc", 0, "DMC")
	f.Float64Var(&testFlags.dc, "dc", 0, "DC")
	f.Float64Var(&testFlags.wd, "wd", 0, "wind direction, degrees")
	f.Float64Var(&testFlags.ws, "ws", 0, "wind speed, km/h")
	f.Float64Var(&testFlags.slope, "slope", 0, "slope, percent")
	f.Float64Var(&testFlags.aspect, "aspect", 0, "aspect, degrees")
	f.BoolVar(&testFlags.forceCuring, "force-curing", false, "force grass curing to 100%")
	f.BoolVar(&testFlags.forceGreenup, "force-greenup", false, "force green-up on")
	f.BoolVar(&testFlags.forceNoGreenup, "force-no-greenup", false, "force green-up off")
}

// Execute runs the root command, printing usage errors to stderr and
// returning a negative exit code on failure (§6 "Exit codes").
func Execute() int {
	if err := Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return -1
	}
	return 0
}
