package stats

import (
	"errors"
	"fmt"
	"github.com/montanaflynn/stats"
)

// Summary aggregates a sample sequence into the headline figures a run
// report carries.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	P50    float64 `json:"p50"` // P50 is the median sample value.
	P95    float64 `json:"p95"` // P95 is the 95th percentile sample value.
}

// Summarize aggregates a chain into a Summary. Population standard
// deviation is used so a single-sample chain reports zero spread rather
// than an undefined one.
func Summarize(samples []float64) (*Summary, error) {
	// The stats package requires input arrays to be non-empty.
	if len(samples) == 0 {
		return nil, errors.New("stats.Summarize() expected a non-empty sample sequence; got 0 samples")
	}

	mean, err := stats.Mean(samples)
	if err != nil {
		panic(fmt.Errorf("unexpected err in stats.Summarize() while calculating mean: %w", err))
	}
	stdDev, err := stats.StandardDeviation(samples)
	if err != nil {
		panic(fmt.Errorf("unexpected err in stats.Summarize() while calculating stddev: %w", err))
	}
	min, err := stats.Min(samples)
	if err != nil {
		panic(fmt.Errorf("unexpected err in stats.Summarize() while calculating min: %w", err))
	}
	max, err := stats.Max(samples)
	if err != nil {
		panic(fmt.Errorf("unexpected err in stats.Summarize() while calculating max: %w", err))
	}
	p50, err := stats.Median(samples)
	if err != nil {
		panic(fmt.Errorf("unexpected err in stats.Summarize() while calculating p50: %w", err))
	}
	p95, err := stats.Percentile(samples, 95)
	if err != nil {
		panic(fmt.Errorf("unexpected err in stats.Summarize() while calculating p95: %w", err))
	}

	return &Summary{
		Count:  len(samples),
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		P50:    p50,
		P95:    p95,
	}, nil
}
