package timing

import (
	"github.com/jamiealquiza/tachymeter"
	"time"
)

// tachymeterCollector uses the jamiealquiza/tachymeter library to keep a
// sliding window of recent durations. Memory use is bounded by the window
// size, so this collector suits a long-lived worker.
type tachymeterCollector struct {
	tach *tachymeter.Tachymeter
}

func NewTachymeterCollector(window int) *tachymeterCollector {
	return &tachymeterCollector{tach: tachymeter.New(&tachymeter.Config{
		Size: window,
	})}
}

func (c *tachymeterCollector) Add(d time.Duration) {
	c.tach.AddTime(d)
}

func (c *tachymeterCollector) Aggregate() *Aggregation {
	aggregation := c.tach.Calc()
	return &Aggregation{
		P50: aggregation.Time.P50,
		P75: aggregation.Time.P75,
		P95: aggregation.Time.P95,
	}
}

func (c *tachymeterCollector) Reset() {
	c.tach.Reset()
}
