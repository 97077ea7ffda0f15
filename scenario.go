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
	"math/rand"
	"sort"
	"sync/atomic"
)

// ScenarioConfig is the fixed, never-reset configuration of a Scenario:
// everything that does not change across repeated reset()/run() cycles.
type ScenarioConfig struct {
	ID            int
	Grid          *GridBase
	Terrain       *Terrain
	Weather       FireWeather
	Settings      Settings
	Algorithm     SpreadAlgorithm
	StartTime     float64   // fractional days since day zero
	SaveTimes     []float64 // ascending, absolute fractional-day offsets
	Ignition      *Location // non-nil for a point ignition
	Perimeter     []Location // non-nil for a perimeter start
	Deterministic bool
	Logger        *Logger

	// OnSave is called once per SAVE event with the scenario's current
	// IntensityMap, which the caller (normally the owning Iteration) adds
	// into the shared ProbabilityMap for that save time.
	OnSave func(saveTime float64, im *IntensityMap)
	// OnFinalSize is called once, when the last save completes, with the
	// scenario's final fire size in hectares.
	OnFinalSize func(size float64)
}

// Scenario is a single stochastic realisation: a point set, thresholds,
// scheduler, and intensity map, driven event by event until its
// scheduler empties or it is cancelled (§3 "Scenario state lifecycle").
//
// Scenario holds a raw back-reference to its owning Model purely to
// acquire/release pooled resources; the Model is guaranteed to outlive
// every Scenario it creates, so this is a borrow, not an ownership cycle
// (§9 "Cyclic/back-reference structures").
type Scenario struct {
	cfg   ScenarioConfig
	model *Model

	thresholds *ThresholdArrays
	points     *CellPointsMap
	intensity  *IntensityMap
	scheduler  *Scheduler
	cache      *spreadInfoCache
	currentHour int

	arrival    map[Location]float64
	unburnable map[Location]bool

	cancelled int32 // atomic bool
}

// NewScenario constructs a Scenario bound to model, which supplies the
// concurrency semaphore and the BurnedData pool.
func NewScenario(model *Model, cfg ScenarioConfig) *Scenario {
	return &Scenario{model: model, cfg: cfg}
}

// Cancel sets the flag checked between events; the scenario terminates
// before the next event is popped. Both the timer thread and the
// iteration driver call this (§5 "Cancellation").
func (s *Scenario) Cancel() {
	atomic.StoreInt32(&s.cancelled, 1)
}

func (s *Scenario) isCancelled() bool {
	return atomic.LoadInt32(&s.cancelled) != 0
}

// reset allocates a fresh threshold draw, IntensityMap, point map, and
// scheduler, seeded from extRNG/spreadRNG, and schedules the initial
// events: one SAVE per configured output day, one initial NEW_FIRE (or
// FIRE_SPREAD if starting from a perimeter), and one END_SIMULATION at
// the last save time (§4.1, §3 "Scenario state lifecycle").
func (s *Scenario) reset(extRNG, spreadRNG *rand.Rand) {
	atomic.StoreInt32(&s.cancelled, 0)

	startDay := int(math.Floor(s.cfg.StartTime))
	lastDay := startDay
	if len(s.cfg.SaveTimes) > 0 {
		lastDay = int(math.Floor(s.cfg.SaveTimes[len(s.cfg.SaveTimes)-1]))
	}
	s.thresholds = NewThresholdArrays(extRNG, spreadRNG, startDay, lastDay, s.cfg.Settings.ThresholdWeights, s.cfg.Deterministic)

	if s.cfg.Logger != nil {
		var extSeed, spreadSeed int64
		if !s.cfg.Deterministic {
			extSeed, spreadSeed = extRNG.Int63(), spreadRNG.Int63()
		}
		s.cfg.Logger.logSeeds(s.cfg.ID, extSeed, spreadSeed)
	}

	s.intensity = s.model.acquireIntensityMap(s.cfg.Grid)
	s.points = NewCellPointsMap(s.cfg.Grid)
	s.scheduler = NewScheduler()
	s.cache = nil
	s.currentHour = -1
	s.arrival = make(map[Location]float64)
	s.unburnable = make(map[Location]bool)

	for _, t := range s.cfg.SaveTimes {
		s.scheduler.Push(Event{Type: Save, Time: t})
	}
	last := s.cfg.StartTime
	if len(s.cfg.SaveTimes) > 0 {
		last = s.cfg.SaveTimes[len(s.cfg.SaveTimes)-1]
	}
	s.scheduler.Push(Event{Type: EndSimulation, Time: last})

	if s.cfg.Perimeter != nil {
		s.scheduler.Push(Event{Type: FireSpread, Time: s.cfg.StartTime})
		for _, l := range s.cfg.Perimeter {
			s.points.Insert(l, float64(l.Column())+0.5, float64(l.Row())+0.5)
		}
	} else {
		s.scheduler.Push(Event{Type: NewFire, Time: s.cfg.StartTime, Cell: *s.cfg.Ignition})
	}
}

// clear releases the pooled IntensityMap back to the Model (§9 "Resource
// pools").
func (s *Scenario) clear() {
	if s.intensity != nil {
		s.model.releaseIntensityMap(s.intensity)
		s.intensity = nil
	}
}

// run drives the scheduler until it empties or the scenario is
// cancelled, returning the error (if any) that terminated it early. A
// fatal error aborts the scenario; a cancellation is not an error.
func (s *Scenario) run() error {
	s.model.acquireSlot()
	defer s.model.releaseSlot()

	lastTime := math.Inf(-1)
	for s.scheduler.Len() > 0 {
		if s.isCancelled() {
			return nil
		}
		e := s.scheduler.Pop()
		if e.Time < lastTime {
			return fatalErrorf("tinder: scenario %d: non-monotone event time %v after %v", s.cfg.ID, e.Time, lastTime)
		}
		lastTime = e.Time

		var err error
		switch e.Type {
		case NewFire:
			err = s.handleNewFire(e)
		case FireSpread:
			err = s.handleFireSpread(e)
		case Save:
			s.handleSave(e)
		case EndSimulation:
			s.scheduler.Clear()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// handleNewFire implements §4.1's NEW_FIRE dispatch.
func (s *Scenario) handleNewFire(e Event) error {
	cell := e.Cell
	if _, ok := s.cfg.Terrain.fuelAt(cell); !ok {
		nearest, found := s.findNearestFuel(cell)
		if !found {
			return fatalErrorf("tinder: scenario %d: ignition cell %s and its surroundings have no fuel", s.cfg.ID, cell)
		}
		cell = nearest
	}
	s.points.Insert(cell, float64(cell.Column())+0.5, float64(cell.Row())+0.5)

	if !s.survives(cell, e.Time) {
		s.unburnable[cell] = true
		return nil
	}
	s.burn(cell, 1, 0, 0, e.Time)
	s.scheduler.Push(Event{Type: FireSpread, Time: e.Time})
	return nil
}

// findNearestFuel searches expanding square rings around center for the
// nearest cell with fuel data, per §4.8's recoverable "ignition in
// non-fuel" handling.
func (s *Scenario) findNearestFuel(center Location) (Location, bool) {
	const maxRadius = 25
	for radius := 1; radius <= maxRadius; radius++ {
		for dr := -radius; dr <= radius; dr++ {
			for dc := -radius; dc <= radius; dc++ {
				if abs(dr) != radius && abs(dc) != radius {
					continue // only the ring perimeter
				}
				r, c := center.Row()+dr, center.Column()+dc
				if r < 0 || r >= s.cfg.Grid.Rows || c < 0 || c >= s.cfg.Grid.Cols {
					continue
				}
				cand := NewLocation(r, c)
				if _, ok := s.cfg.Terrain.fuelAt(cand); ok {
					return cand, true
				}
			}
		}
	}
	return Location(0), false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// handleSave implements §4.1's SAVE dispatch: snapshot the IntensityMap
// into the shared ProbabilityMap for this save time, and on the final
// save report the fire size.
func (s *Scenario) handleSave(e Event) {
	if s.cfg.OnSave != nil {
		s.cfg.OnSave(e.Time, s.intensity)
	}
	last := s.cfg.StartTime
	if len(s.cfg.SaveTimes) > 0 {
		last = s.cfg.SaveTimes[len(s.cfg.SaveTimes)-1]
	}
	if e.Time == last && s.cfg.OnFinalSize != nil {
		s.cfg.OnFinalSize(s.intensity.Size())
	}
}

// handleFireSpread implements the step algorithm of §4.2.
func (s *Scenario) handleFireSpread(e Event) error {
	atomic.AddInt64(&s.model.totalSteps, 1)
	t := e.Time

	// Step 1.
	thisHour := int(math.Floor(t * 24))
	nextTime := float64(thisHour+1) / 24
	maxDuration := (nextTime - t) * 1440

	// Step 2. Running past the end of the weather stream is the
	// not-enough-weather condition, which is fatal rather than
	// per-scenario recoverable.
	hourly, err := s.cfg.Weather.HourlyAt(thisHour)
	if err != nil {
		return fatalErrorf("tinder: scenario %d: %v", s.cfg.ID, err)
	}
	hourOfDay := math.Mod(float64(thisHour), 24)
	const baseSunrise, baseSunset = 6, 18
	minFFMC := s.cfg.Settings.MinimumFFMCFor(hourOfDay, baseSunrise, baseSunset)
	if hourly.FFMC < minFFMC {
		s.scheduler.Push(Event{Type: FireSpread, Time: nextTime})
		return nil
	}

	// Step 3.
	if thisHour != s.currentHour {
		s.cache = newSpreadInfoCache(1, 4096)
		s.currentHour = thisHour
	}

	daily, err := s.cfg.Weather.DailyAt(thisHour / 24)
	if err != nil {
		return fatalErrorf("tinder: scenario %d: %v", s.cfg.ID, err)
	}

	// Step 4.
	toSpread := make(map[Location]*SpreadInfo)
	effMinROS := s.cfg.Settings.MinimumROS
	if thresholdROS := s.thresholds.SpreadROSAt(t); thresholdROS > effMinROS {
		effMinROS = thresholdROS
	}
	anySpreading := false
	var spreadErr error
	s.points.Range(func(l Location, cp *CellPoints) {
		if cp.Empty() || spreadErr != nil {
			return
		}
		cell, ok := s.cfg.Terrain.cellAt(l)
		if !ok {
			return
		}
		fuel, ok := s.cfg.Terrain.fuelAt(l)
		if !ok || !fuel.CanBurn() {
			return
		}
		req := spreadInfoRequest{
			fuel:     fuel,
			cellSize: s.cfg.Grid.CellSize,
			minROS:   effMinROS,
			algorithm: s.cfg.Algorithm,
			// Aspect is the downslope-facing direction; spread distances
			// tilt around the upslope azimuth, its opposite.
			slopeAzimuth: fixRadians((float64(cell.Aspect()) + 180) * math.Pi / 180),
			in: SpreadInputs{
				SlopePercent:  cell.Slope(),
				AspectDegrees: cell.Aspect(),
				WindSpeedKPH:  hourly.WindSpeed,
				WindDirDeg:    hourly.WindDir,
				Hourly:        hourly,
				Daily:         daily,
				PercentConifer: s.cfg.Settings.DefaultPercentConifer,
				PercentDeadFir: s.cfg.Settings.DefaultPercentDeadFir,
			},
		}
		info, err := s.cache.Get(context.Background(), cell.SpreadKey(), req)
		if err != nil {
			spreadErr = err
			return
		}
		if info.Invalid || info.HeadROS < effMinROS {
			return
		}
		toSpread[l] = info
		anySpreading = true
	})
	if spreadErr != nil {
		return spreadErr
	}
	if !anySpreading {
		s.scheduler.Push(Event{Type: FireSpread, Time: nextTime})
		return nil
	}

	// Step 5.
	maxROS := 0.0
	for _, info := range toSpread {
		if info.HeadROS > maxROS {
			maxROS = info.HeadROS
		}
	}
	duration := maxDuration
	if maxROS > 0 {
		byDistance := s.cfg.Settings.MaxSpreadDistance * s.cfg.Grid.CellSize / maxROS
		if byDistance < duration {
			duration = byDistance
		}
	}
	newTime := t + duration/1440

	// Steps 6-7.
	next := s.points.calculateSpread(toSpread, duration, s.unburnable)

	// Step 8.
	next.Range(func(l Location, cp *CellPoints) {
		fuel, ok := s.cfg.Terrain.fuelAt(l)
		canBurn := ok && fuel.CanBurn()
		maxIntensity, ros, azimuth := s.burnInfoFor(l, toSpread, cp)
		if canBurn && maxIntensity > 0 {
			s.burn(l, math.Max(1, maxIntensity), ros, azimuth*180/math.Pi, newTime)
		}
		if !canBurn || !s.survives(l, newTime) || s.intensity.IsSurrounded(l) {
			s.unburnable[l] = true
		} else if len(cp.Unique()) > 3 {
			reduceToConvexHull(cp)
		}
	})
	next.RemoveIf(func(l Location, _ *CellPoints) bool { return s.unburnable[l] })

	// Step 9.
	s.points = next
	s.scheduler.Push(Event{Type: FireSpread, Time: newTime})
	return nil
}

// burnInfoFor determines the intensity/ROS/azimuth to attribute to a
// spread destination cell: either the cell's own SpreadInfo (it was
// itself spreading, e.g. growing along its back direction) or, failing
// that, the SpreadInfo of whichever neighboring spreading source
// contributed a point via the direction recorded in cp's source mask.
func (s *Scenario) burnInfoFor(dst Location, toSpread map[Location]*SpreadInfo, cp *CellPoints) (intensity, ros, azimuth float64) {
	if info, ok := toSpread[dst]; ok {
		return info.MaxIntensity, info.HeadROS, info.HeadAzimuth
	}
	for d := dirN; d <= dirNW; d++ {
		if cp.Sources()&(1<<uint(d-1)) == 0 {
			continue
		}
		o := opposite(d)
		r := dst.Row() + rowOffset[o]
		c := dst.Column() + colOffset[o]
		if r < 0 || r >= s.cfg.Grid.Rows || c < 0 || c >= s.cfg.Grid.Cols {
			continue
		}
		if info, ok := toSpread[NewLocation(r, c)]; ok && info.MaxIntensity > intensity {
			intensity, ros, azimuth = info.MaxIntensity, info.HeadROS, info.HeadAzimuth
		}
	}
	return intensity, ros, azimuth
}

func opposite(d direction) direction {
	switch d {
	case dirN:
		return dirS
	case dirNE:
		return dirSW
	case dirE:
		return dirW
	case dirSE:
		return dirNW
	case dirS:
		return dirN
	case dirSW:
		return dirNE
	case dirW:
		return dirE
	case dirNW:
		return dirSE
	}
	return dirNone
}

// burn marks l burned in the IntensityMap and records its arrival time.
func (s *Scenario) burn(l Location, intensity, ros, azimuth, t float64) {
	if !s.intensity.IsBurned(l) {
		s.arrival[l] = t
	}
	s.intensity.Burn(l, intensity, ros, azimuth)
}

// survives implements the extinction test of §4.4: a cell survives at
// time t iff fuel.SurvivalProbability(daily weather at t) is at least the
// extinction threshold for that hour.
func (s *Scenario) survives(l Location, t float64) bool {
	fuel, ok := s.cfg.Terrain.fuelAt(l)
	if !ok || !fuel.CanBurn() {
		return false
	}
	dayIndex := int(math.Floor(t))
	daily, err := s.cfg.Weather.DailyAt(dayIndex)
	if err != nil {
		return false
	}
	return fuel.SurvivalProbability(daily) >= s.thresholds.ExtinctionAt(t)
}

// reduceToConvexHull replaces cp's contents with only the points on the
// convex hull of its current unique point set, bounding growth of the
// per-cell representation once more than three points accumulate.
func reduceToConvexHull(cp *CellPoints) {
	pts := cp.Unique()
	hull := convexHull(pts)
	fresh := NewCellPoints(cp.cellX, cp.cellY)
	sources := cp.Sources()
	for _, p := range hull {
		fresh.Insert(p.X, p.Y, 0)
	}
	fresh.sources = sources
	*cp = *fresh
}

// convexHull returns the convex hull of pts via Andrew's monotone chain,
// in counter-clockwise order.
func convexHull(pts []XYPos) []XYPos {
	if len(pts) < 4 {
		return pts
	}
	sorted := append([]XYPos(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	cross := func(o, a, b XYPos) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	var lower, upper []XYPos
	for _, p := range sorted {
		for len(lower) >= 2 && cross(lower[len(lower)-2], lower[len(lower)-1], p) <= 0 {
			lower = lower[:len(lower)-1]
		}
		lower = append(lower, p)
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		p := sorted[i]
		for len(upper) >= 2 && cross(upper[len(upper)-2], upper[len(upper)-1], p) <= 0 {
			upper = upper[:len(upper)-1]
		}
		upper = append(upper, p)
	}
	lower = lower[:len(lower)-1]
	upper = upper[:len(upper)-1]
	return append(lower, upper...)
}
