package stats

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSummarize_AggregatesAKnownSequence(t *testing.T) {
	summary, err := Summarize([]float64{4, 2, 6, 8, 10})
	assert.Nil(t, err)

	assert.Equal(t, 5, summary.Count)
	assert.Equal(t, 6.0, summary.Mean)
	assert.InDelta(t, 2.8284271247461903, summary.StdDev, 1e-9)
	assert.Equal(t, 2.0, summary.Min)
	assert.Equal(t, 10.0, summary.Max)
	assert.Equal(t, 6.0, summary.P50)
	assert.Equal(t, 9.0, summary.P95)
}

// A chain that rejects every proposal repeats one value; its summary
// must still be well-defined.
func TestSummarize_HandlesASingleRepeatedValue(t *testing.T) {
	summary, err := Summarize([]float64{1.5, 1.5, 1.5})
	assert.Nil(t, err)

	assert.Equal(t, 3, summary.Count)
	assert.Equal(t, 1.5, summary.Mean)
	assert.Equal(t, 0.0, summary.StdDev)
	assert.Equal(t, 1.5, summary.Min)
	assert.Equal(t, 1.5, summary.Max)
	assert.Equal(t, 1.5, summary.P50)
	assert.Equal(t, 1.5, summary.P95)
}

func TestSummarize_HandlesASingleSample(t *testing.T) {
	summary, err := Summarize([]float64{0.25})
	assert.Nil(t, err)

	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, 0.25, summary.Mean)
	assert.Equal(t, 0.0, summary.StdDev)
	assert.Equal(t, 0.25, summary.P50)
	assert.Equal(t, 0.25, summary.P95)
}

func TestSummarize_RejectsAnEmptySequence(t *testing.T) {
	summary, err := Summarize(nil)
	assert.Nil(t, summary)
	assert.NotNil(t, err)

	summary, err = Summarize([]float64{})
	assert.Nil(t, summary)
	assert.NotNil(t, err)
}
