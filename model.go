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
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// Model is the IterationDriver (§2, §4.7): it owns the environment,
// pools BurnedData (here, pooled IntensityMaps), spawns and awaits
// scenario threads bounded by a semaphore, and applies the stopping
// rules (statistical confidence / wall-clock / simulation count).
//
// The counters below replace the source's global mutable diagnostic
// state with atomics owned by the Model (§9 "Global mutable state").
type Model struct {
	grid     *GridBase
	settings Settings
	logger   *Logger

	semaphore chan struct{}

	poolMu sync.Mutex
	pool   []*IntensityMap

	completed  int64 // completed iterations
	totalSims  int64 // completed scenarios, against MAXIMUM_SIMULATIONS
	totalSteps int64 // FIRE_SPREAD events processed

	outOfTime int32 // atomic bool

	summaryMu   sync.Mutex
	lastSummary StatisticsSummary
}

// NewModel constructs a Model with a semaphore bound equal to hardware
// concurrency (§5 "Thread count is capped by a semaphore equal to
// hardware concurrency"). A nil logger is replaced with a warning-level
// one.
func NewModel(grid *GridBase, settings Settings, logger *Logger) *Model {
	n := runtime.GOMAXPROCS(-1)
	if n < 1 {
		n = 1
	}
	if logger == nil {
		logger = NewLogger(LevelWarning)
	}
	return &Model{
		grid:      grid,
		settings:  settings,
		logger:    logger,
		semaphore: make(chan struct{}, n),
	}
}

// acquireSlot blocks until a concurrency-semaphore slot is available.
func (m *Model) acquireSlot() { m.semaphore <- struct{}{} }

// releaseSlot returns a concurrency-semaphore slot.
func (m *Model) releaseSlot() { <-m.semaphore }

// acquireIntensityMap pops a recyclable IntensityMap from the pool
// (already reset by releaseIntensityMap), or allocates a new one if the pool is empty
// (§5 "BurnedData pool").
func (m *Model) acquireIntensityMap(grid *GridBase) *IntensityMap {
	m.poolMu.Lock()
	defer m.poolMu.Unlock()
	if n := len(m.pool); n > 0 {
		im := m.pool[n-1]
		m.pool = m.pool[:n-1]
		return im
	}
	return NewIntensityMap(grid)
}

// releaseIntensityMap returns im to the pool after resetting it.
func (m *Model) releaseIntensityMap(im *IntensityMap) {
	fresh := NewIntensityMap(m.grid)
	*im = *fresh
	m.poolMu.Lock()
	m.pool = append(m.pool, im)
	m.poolMu.Unlock()
}

// RunIterationsConfig bundles the stop-condition and scenario-building
// parameters for RunIterations.
type RunIterationsConfig struct {
	// BuildConfigs returns the ScenarioConfig set for one Iteration (one
	// per weather stream / ignition point combination).
	BuildConfigs func() []ScenarioConfig
	RelativeError float64
	Deterministic bool
	MaxSeed       int64 // used to seed the extinction/spread RNGs
}

// RunIterationsResult is the outcome of RunIterations: the final
// per-save-time ProbabilityMaps, the completed fire sizes, and the
// three stopping statistics. Err is non-nil when a FatalError aborted
// the run; the ProbabilityMaps then hold only the iterations that
// completed before the abort, and the caller is expected to treat the
// whole simulation as failed (§6 exit codes).
type RunIterationsResult struct {
	ProbabilityMaps map[float64]*ProbabilityMap
	Sizes           []float64         // sorted final fire sizes, ha
	Summary         StatisticsSummary // pooled sizes; RunsRequired is the max over all three statistics
	MeanSummary     StatisticsSummary // per-iteration means
	PctSummary      StatisticsSummary // per-iteration 95th percentiles
	Err             error
}

// RunIterations implements §4.7 steps 1-6: build an initial Iteration,
// spawn iteration clones bounded by the concurrency semaphore, run a
// timer thread enforcing the wall-clock and simulation-count caps, fold
// completed deltas into the shared ProbabilityMaps, and re-reset
// completed iterations with fresh thresholds until the confidence,
// time, or count stop condition is reached.
func (m *Model) RunIterations(cfg RunIterationsConfig) *RunIterationsResult {
	shared := make(map[float64]*ProbabilityMap)
	first := cfg.BuildConfigs()
	for _, t := range first[0].SaveTimes {
		shared[t] = NewProbabilityMap(m.grid)
	}

	numClones := 2
	if cfg.Deterministic {
		numClones = 1
	} else if cap(m.semaphore) > len(first) {
		numClones = (cap(m.semaphore) + len(first) - 1) / len(first)
		if numClones < 2 {
			numClones = 2
		}
	}

	extSrc := rand.New(rand.NewSource(cfg.MaxSeed))
	spreadSrc := rand.New(rand.NewSource(cfg.MaxSeed ^ 0x5bd1e995))

	iterations := make([]*Iteration, numClones)
	iterations[0] = NewIteration(m, first, m.grid)
	for i := 1; i < numClones; i++ {
		iterations[i] = NewIteration(m, cfg.BuildConfigs(), m.grid)
	}

	start := time.Now()
	stopTimer := make(chan struct{})
	go m.runTimer(start, iterations, stopTimer)
	defer close(stopTimer)

	// The stopping rule tracks three independent statistics (§4.7 step
	// 4): every individual size, and the mean and 95th percentile of
	// each completed iteration's sizes.
	allSizes := &SafeVector{}
	iterMeans := &SafeVector{}
	iterPcts := &SafeVector{}
	var wg sync.WaitGroup
	var mergeMu sync.Mutex
	var fatal error

	runOne := func(it *Iteration, extRNG, spreadRNG *rand.Rand) {
		defer wg.Done()
		it.reset(extRNG, spreadRNG)
		if err := it.run(); err != nil {
			if IsFatal(err) {
				// A fatal error aborts the whole run: record it, cancel
				// everything, and discard this iteration's partial state
				// rather than folding it into the shared maps.
				mergeMu.Lock()
				if fatal == nil {
					fatal = err
				}
				mergeMu.Unlock()
				for _, other := range iterations {
					other.cancel()
				}
				return
			}
			m.logger.Warningf("iteration error: %v", err)
		}

		mergeMu.Lock()
		it.mergeInto(shared)
		mergeMu.Unlock()
		drained := it.sizes.Drain()
		if len(drained) == 0 {
			return // cancelled before any scenario finished; not counted
		}
		sum := 0.0
		for _, size := range drained {
			allSizes.Insert(size)
			sum += size
			atomic.AddInt64(&m.totalSims, 1)
		}
		iterMeans.Insert(sum / float64(len(drained)))
		iterPcts.Insert(percentile(drained, 95))
		atomic.AddInt64(&m.completed, 1)
	}

	for _, it := range iterations {
		wg.Add(1)
		go runOne(it, rand.New(rand.NewSource(extSrc.Int63())), rand.New(rand.NewSource(spreadSrc.Int63())))
	}
	wg.Wait()

	summarize := func() (StatisticsSummary, StatisticsSummary, StatisticsSummary) {
		return SummarizeStopping(allSizes.Snapshot(), iterMeans.Snapshot(), iterPcts.Snapshot(),
			m.settings.ConfidenceLevel, cfg.RelativeError)
	}
	summary, meanSummary, pctSummary := summarize()

	for fatal == nil {
		runsLeft := summary.RunsRequired
		if cfg.Deterministic || runsLeft <= 0 || atomic.LoadInt32(&m.outOfTime) != 0 || int(atomic.LoadInt64(&m.totalSims)) >= m.settings.MaximumSimulations {
			break
		}

		batch := iterations
		if need := (runsLeft + iterations[0].numScenarios() - 1) / iterations[0].numScenarios(); need < len(batch) {
			batch = batch[:need]
		}
		wg.Add(len(batch))
		for _, it := range batch {
			go runOne(it, rand.New(rand.NewSource(extSrc.Int63())), rand.New(rand.NewSource(spreadSrc.Int63())))
		}
		wg.Wait()

		summary, meanSummary, pctSummary = summarize()
	}

	for _, it := range iterations {
		it.cancel()
	}

	m.summaryMu.Lock()
	m.lastSummary = summary
	m.summaryMu.Unlock()
	return &RunIterationsResult{
		ProbabilityMaps: shared,
		Sizes:           allSizes.Snapshot(),
		Summary:         summary,
		MeanSummary:     meanSummary,
		PctSummary:      pctSummary,
		Err:             fatal,
	}
}

// Grid returns the grid the model simulates over.
func (m *Model) Grid() *GridBase { return m.grid }

// runTimer sleeps one second at a time, setting outOfTime and cancelling
// every iteration once MaximumTime seconds have elapsed or the
// simulation-count cap is exceeded, until stop is closed (§4.7 step 3).
func (m *Model) runTimer(start time.Time, iterations []*Iteration, stop <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			overTime := time.Since(start).Seconds() > m.settings.MaximumTime
			overCount := int(atomic.LoadInt64(&m.totalSims)) >= m.settings.MaximumSimulations
			if overTime || overCount {
				if overTime {
					atomic.StoreInt32(&m.outOfTime, 1)
				}
				for _, it := range iterations {
					it.cancel()
				}
				return
			}
		}
	}
}

// Summary returns the size statistics computed when RunIterations last
// finished: count, mean, standard deviation, and 95th percentile of the
// final-day fire size distribution.
func (m *Model) Summary() StatisticsSummary {
	m.summaryMu.Lock()
	defer m.summaryMu.Unlock()
	return m.lastSummary
}

// Counters reports the model's diagnostic counters: completed
// iterations, completed simulations, and total spread steps processed.
func (m *Model) Counters() (completed, totalSims, totalSteps int64) {
	return atomic.LoadInt64(&m.completed), atomic.LoadInt64(&m.totalSims), atomic.LoadInt64(&m.totalSteps)
}
