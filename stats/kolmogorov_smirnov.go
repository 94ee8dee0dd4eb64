// Package stats provides the statistical helpers the sampler's callers
// lean on: chain summaries, histogram binning and a two-sample
// Kolmogorov-Smirnov goodness-of-fit test for comparing a chain against
// reference draws from the distribution it should have reached.
package stats

import (
	"fmt"
	"gonum.org/v1/gonum/stat"
	"math"
	"sort"
)

type Percentile = int

const (
	P90 Percentile = iota
	P95
	P97d5
	P99
	P99d5
	P99d9
)

// coefficients are KS-coefficients.
// Retrieved from: https://www.webdepot.umontreal.ca/Usagers/angers/MonDepotPublic/STT3500H10/Critical_KS.pdf
var coefficients = map[Percentile]float64{
	P90:   1.22,
	P95:   1.36,
	P97d5: 1.48,
	P99:   1.63,
	P99d5: 1.73,
	P99d9: 1.95,
}

// KolmogorovSmirnov returns the two-sample KS statistic: the largest
// vertical distance between the empirical CDFs of the two sequences.
// Inputs are copied before sorting, so callers keep their ordering.
func KolmogorovSmirnov(control []float64, candidate []float64) float64 {
	sortedControl := make([]float64, len(control))
	copy(sortedControl, control)
	sort.Float64s(sortedControl)

	sortedCandidate := make([]float64, len(candidate))
	copy(sortedCandidate, candidate)
	sort.Float64s(sortedCandidate)

	// Pass in nil weights as gonum's stat package allows inputs to be
	// weighted, which is not relevant to our situation.
	return stat.KolmogorovSmirnov(sortedControl, nil, sortedCandidate, nil)
}

// KolmogorovSmirnovRejection performs a two-tailed KS-test at the given
// confidence percentile, returning whether the hypothesis that both
// sequences come from the same distribution is rejected, along with the
// test statistic for reporting. The critical value is derived for
// independent samples; for the correlated samples of a chain it is a
// guide rather than an exact test.
func KolmogorovSmirnovRejection(control []float64, candidate []float64, percentile Percentile) (bool, float64) {
	coeff, ok := coefficients[percentile]
	if !ok {
		panic(fmt.Sprintf("unexpected percentile %v, see Percentile type", percentile))
	}

	criticalValue := coeff * math.Sqrt(float64(len(control)+len(candidate))/float64(len(control)*len(candidate)))
	statistic := KolmogorovSmirnov(control, candidate)

	return statistic > criticalValue, statistic
}
