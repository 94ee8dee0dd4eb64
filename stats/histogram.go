package stats

import (
	"errors"
	"fmt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"math"
	"sort"
)

// Bin is one bar of a histogram over a sample sequence.
type Bin struct {
	Left  float64 `json:"left"`  // Left is the inclusive lower edge.
	Right float64 `json:"right"` // Right is the exclusive upper edge.
	Count int     `json:"count"` // Count is the number of samples in the bin.
	// Height is the density-normalised bar height (count / (n * width)),
	// directly comparable to a probability density function.
	Height float64 `json:"height"`
}

// Histogram bins a sample sequence into the given number of equal-width
// bins spanning [min(samples), max(samples)].
func Histogram(samples []float64, bins int) ([]Bin, error) {
	if bins < 1 {
		return nil, fmt.Errorf("stats.Histogram() expected bins >= 1; got %d", bins)
	}
	if len(samples) == 0 {
		return nil, errors.New("stats.Histogram() expected a non-empty sample sequence; got 0 samples")
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	lo := sorted[0]
	hi := sorted[len(sorted)-1]
	// A fully rejected chain repeats one value; widen the span so the
	// dividers below are strictly increasing.
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// gonum requires the maximum sample to fall strictly below the last
	// divider.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	n := float64(len(samples))
	out := make([]Bin, bins)
	for i, count := range counts {
		width := dividers[i+1] - dividers[i]
		out[i] = Bin{
			Left:   dividers[i],
			Right:  dividers[i+1],
			Count:  int(count),
			Height: count / (n * width),
		}
	}
	return out, nil
}
