package stats

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestHistogram_CountsSamplesIntoEqualWidthBins(t *testing.T) {
	bins, err := Histogram([]float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}, 4)
	assert.Nil(t, err)
	assert.Len(t, bins, 4)

	for i, bin := range bins {
		assert.Equalf(t, 2, bin.Count, "expected 2 samples in bin %d; got %d", i, bin.Count)
	}
	assert.Equal(t, 0.0, bins[0].Left)
	assert.True(t, bins[3].Right >= 3.5, "expected the last bin to cover the maximum sample")
}

// The maximum sample sits on the closed upper edge and must still be
// counted.
func TestHistogram_IncludesTheMaximumSample(t *testing.T) {
	bins, err := Histogram([]float64{1, 2, 3, 4}, 2)
	assert.Nil(t, err)

	total := 0
	for _, bin := range bins {
		total += bin.Count
	}
	assert.Equal(t, 4, total)
	assert.Equal(t, 2, bins[1].Count)
}

func TestHistogram_NormalizesHeightsToUnitArea(t *testing.T) {
	bins, err := Histogram([]float64{1, 2, 3, 4}, 2)
	assert.Nil(t, err)

	area := 0.0
	for _, bin := range bins {
		area += bin.Height * (bin.Right - bin.Left)
	}
	assert.InDelta(t, 1.0, area, 1e-9)
}

// A chain that never moves has zero width; the span is widened so the
// bins remain well-formed.
func TestHistogram_WidensAConstantSequence(t *testing.T) {
	bins, err := Histogram([]float64{2, 2, 2}, 3)
	assert.Nil(t, err)
	assert.Len(t, bins, 3)

	assert.Equal(t, 0, bins[0].Count)
	assert.Equal(t, 3, bins[1].Count)
	assert.Equal(t, 0, bins[2].Count)
}

func TestHistogram_ValidatesItsArguments(t *testing.T) {
	bins, err := Histogram(nil, 4)
	assert.Nil(t, bins)
	assert.NotNil(t, err)

	bins, err = Histogram([]float64{1}, 0)
	assert.Nil(t, bins)
	assert.NotNil(t, err)
}
