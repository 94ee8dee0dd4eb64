// Package timing aggregates the wall-clock durations of completed chain
// runs so the worker can report percentile run times.
package timing

import "time"

type Aggregation struct {
	P50 time.Duration // P50 is the 50th percentile run duration.
	P75 time.Duration // P75 is the 75th percentile run duration.
	P95 time.Duration // P95 is the 95th percentile run duration.
}

type Collector interface {
	Add(d time.Duration)     // Add records the duration of a completed run.
	Aggregate() *Aggregation // Aggregate calculates percentiles over the recorded durations.
	Reset()                  // Reset resets the state of the collector for reuse.
}
