package timing

import (
	"fmt"
	"github.com/montanaflynn/stats"
	"sync"
	"time"
)

// arrayCollector keeps every duration it is given and computes exact
// percentiles on demand. As storage and computation are both O(n), it is
// meant for tests and short-lived runs rather than a long-lived worker.
type arrayCollector struct {
	durationsSeconds    []float64
	durationsSecondsMux *sync.Mutex
}

func NewArrayCollector() *arrayCollector {
	return &arrayCollector{
		durationsSeconds:    []float64{},
		durationsSecondsMux: &sync.Mutex{},
	}
}

func (c *arrayCollector) Add(d time.Duration) {
	c.durationsSecondsMux.Lock()
	c.durationsSeconds = append(c.durationsSeconds, float64(d)/float64(time.Second))
	c.durationsSecondsMux.Unlock()
}

func (c *arrayCollector) Aggregate() *Aggregation {
	// The stats package creates a copy of the array, so we must hold onto
	// the mutex while calculations are being made.
	c.durationsSecondsMux.Lock()
	defer c.durationsSecondsMux.Unlock()

	// The stats package requires input arrays to be non-empty.
	if len(c.durationsSeconds) == 0 {
		return &Aggregation{
			P50: 0,
			P75: 0,
			P95: 0,
		}
	}

	p50, err := stats.Median(c.durationsSeconds)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating p50: %w", err))
	}
	p75, err := stats.Percentile(c.durationsSeconds, 75)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating p75: %w", err))
	}
	p95, err := stats.Percentile(c.durationsSeconds, 95)
	if err != nil {
		panic(fmt.Errorf("unexpected err in arrayCollector.Aggregate() while calculating p95: %w", err))
	}

	return &Aggregation{
		P50: time.Duration(p50 * float64(time.Second)),
		P75: time.Duration(p75 * float64(time.Second)),
		P95: time.Duration(p95 * float64(time.Second)),
	}
}

func (c *arrayCollector) Reset() {
	c.durationsSecondsMux.Lock()
	c.durationsSeconds = []float64{}
	c.durationsSecondsMux.Unlock()
}
