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
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// StatisticsSummary is the confidence-stopping state computed once per
// completed iteration from the accumulated final fire sizes (§4.7 step
// 4).
type StatisticsSummary struct {
	N            int
	Mean         float64
	StdDev       float64
	Percentile95 float64
	RunsRequired int
}

// percentile returns the p-th percentile (0-100) of sorted data using
// linear interpolation between closest ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// runsRequired returns the smallest additional run count N (0 if already
// satisfied) for which the Student's-T confidence half-width of the
// sample, relative to its mean, falls to or below
// relativeError/(1+relativeError) at the given confidence level.
//
// A sample of fewer than two values can never satisfy any bound, so it
// reports the runs still needed to reach two samples (2 - n) rather than
// zero.
func runsRequired(samples []float64, confidence, relativeError float64) int {
	n := len(samples)
	if n < 2 {
		return 2 - n
	}
	mean, std := stat.MeanStdDev(samples, nil)
	if mean == 0 {
		return 0
	}
	target := relativeError / (1 + relativeError)

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	// Two-sided critical value at the given confidence level.
	tCrit := t.Quantile(1 - (1-confidence)/2)
	halfWidth := tCrit * std / math.Sqrt(float64(n))
	relHalfWidth := halfWidth / math.Abs(mean)

	if relHalfWidth <= target {
		return 0
	}
	// Half-width shrinks roughly as 1/sqrt(n); estimate the N at which it
	// would cross the target and report the gap from the current sample
	// size. This is an estimate, not an exact inverse, since tCrit itself
	// depends on n; RunIterations recomputes it after every completed
	// iteration so the estimate is continually refined (§4.7 step 4).
	neededN := int(math.Ceil(float64(n) * (relHalfWidth / target) * (relHalfWidth / target)))
	if neededN <= n {
		neededN = n + 1
	}
	return neededN - n
}

// Summarize computes the StatisticsSummary for the given sample of final
// fire sizes so far.
func Summarize(samples []float64, confidence, relativeError float64) StatisticsSummary {
	if len(samples) == 0 {
		return StatisticsSummary{RunsRequired: 2}
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	mean, std := stat.MeanStdDev(samples, nil)
	return StatisticsSummary{
		N:            len(samples),
		Mean:         mean,
		StdDev:       std,
		Percentile95: percentile(sorted, 95),
		RunsRequired: runsRequired(samples, confidence, relativeError),
	}
}

// SummarizeStopping computes the three independent statistics the
// stopping rule consults (§4.7 step 4): every individual final size
// pooled across iterations, the per-iteration means, and the
// per-iteration 95th percentiles. The returned size summary carries
// RunsRequired raised to the maximum of the three, since the run may
// stop only once all three are confident.
func SummarizeStopping(sizes, means, pcts []float64, confidence, relativeError float64) (size, mean, pct StatisticsSummary) {
	size = Summarize(sizes, confidence, relativeError)
	mean = Summarize(means, confidence, relativeError)
	pct = Summarize(pcts, confidence, relativeError)
	if mean.RunsRequired > size.RunsRequired {
		size.RunsRequired = mean.RunsRequired
	}
	if pct.RunsRequired > size.RunsRequired {
		size.RunsRequired = pct.RunsRequired
	}
	return size, mean, pct
}
