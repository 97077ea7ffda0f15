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
	"sort"
	"sync"
)

// SafeVector is a mutex-guarded, always-sorted slice of float64, used to
// accumulate final fire sizes across concurrently-completing scenarios
// (§4.7, §5 "SafeVector<double> of sizes").
type SafeVector struct {
	mu   sync.Mutex
	data []float64
}

// Insert adds v to the vector, keeping it sorted.
func (v *SafeVector) Insert(val float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	i := sort.SearchFloat64s(v.data, val)
	v.data = append(v.data, 0)
	copy(v.data[i+1:], v.data[i:])
	v.data[i] = val
}

// Snapshot returns a copy of the current sorted contents.
func (v *SafeVector) Snapshot() []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]float64, len(v.data))
	copy(out, v.data)
	return out
}

// Drain returns the current sorted contents and empties the vector, so a
// reused Iteration starts its next realisation with a clean sizes slate.
func (v *SafeVector) Drain() []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := v.data
	v.data = nil
	return out
}

// Len returns the number of values inserted so far.
func (v *SafeVector) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.data)
}

// Iteration is a bundle of Scenarios (one per weather stream / ignition
// point) sharing one RNG reset, plus the SafeVector their final sizes
// accumulate into and the ProbabilityMaps their saves accumulate into.
type Iteration struct {
	scenarios []*Scenario
	sizes     *SafeVector

	probabilityMaps map[float64]*ProbabilityMap // keyed by save time
}

// NewIteration builds an Iteration over the given scenario configs, one
// Scenario per config, wiring each config's OnSave/OnFinalSize to this
// Iteration's ProbabilityMaps and SafeVector.
func NewIteration(model *Model, configs []ScenarioConfig, grid *GridBase) *Iteration {
	it := &Iteration{
		sizes:           &SafeVector{},
		probabilityMaps: make(map[float64]*ProbabilityMap),
	}
	for _, t := range configs[0].SaveTimes {
		it.probabilityMaps[t] = NewProbabilityMap(grid)
	}
	for _, cfg := range configs {
		cfg := cfg
		cfg.OnSave = func(saveTime float64, im *IntensityMap) {
			if pm, ok := it.probabilityMaps[saveTime]; ok {
				pm.Add(im, model.settings.IntensityMaxLow, model.settings.IntensityMaxModerate)
			}
		}
		cfg.OnFinalSize = func(size float64) {
			it.sizes.Insert(size)
		}
		it.scenarios = append(it.scenarios, NewScenario(model, cfg))
	}
	return it
}

// reset re-seeds every scenario in the iteration from extRNG/spreadRNG,
// deriving one sub-seed per scenario so scenarios within an iteration
// don't share a thresholds draw.
func (it *Iteration) reset(extRNG, spreadRNG *rand.Rand) {
	for _, s := range it.scenarios {
		sExt := rand.New(rand.NewSource(extRNG.Int63()))
		sSpread := rand.New(rand.NewSource(spreadRNG.Int63()))
		s.reset(sExt, sSpread)
	}
}

// cancel cascades cancellation to every scenario in the iteration.
func (it *Iteration) cancel() {
	for _, s := range it.scenarios {
		s.Cancel()
	}
}

// run runs every scenario in the iteration concurrently and waits for
// all to finish, returning the first error encountered (if any). Between
// scenarios there is no ordering requirement: the final ProbabilityMap
// is the commutative sum of per-scenario contributions (§5 "Ordering
// guarantees").
func (it *Iteration) run() error {
	var wg sync.WaitGroup
	errs := make([]error, len(it.scenarios))
	for i, s := range it.scenarios {
		wg.Add(1)
		go func(i int, s *Scenario) {
			defer wg.Done()
			errs[i] = s.run()
			s.clear()
		}(i, s)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// mergeInto folds this iteration's per-save ProbabilityMaps into dst
// (keyed identically) and then resets them, implementing the "fold
// completed iteration deltas" step of §4.7.
func (it *Iteration) mergeInto(dst map[float64]*ProbabilityMap) {
	for t, pm := range it.probabilityMaps {
		if d, ok := dst[t]; ok {
			d.Merge(pm)
		}
		pm.Reset()
	}
}

// numScenarios returns how many simulations one run of this iteration
// contributes towards the MAXIMUM_SIMULATIONS cap.
func (it *Iteration) numScenarios() int { return len(it.scenarios) }
