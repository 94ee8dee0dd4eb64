// Package plotting renders chain diagnostics as PNG images.
package plotting

import (
	"fmt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SaveHistogram writes a histogram of the chain to path, normalised so
// its area is one. When density is non-nil it is drawn over the bars,
// letting the empirical distribution be compared against the target.
func SaveHistogram(samples []float64, density func(x float64) float64, bins int, path string) error {
	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("SaveHistogram() got err when calling plot.New(): %w", err)
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "density"

	hist, err := plotter.NewHist(plotter.Values(samples), bins)
	if err != nil {
		return fmt.Errorf("SaveHistogram() got err when calling plotter.NewHist(): %w", err)
	}
	hist.Normalize(1)
	p.Add(hist)

	if density != nil {
		f := plotter.NewFunction(density)
		f.Samples = 500
		p.Add(f)
	}

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("SaveHistogram() got err when calling Save(): %w", err)
	}
	return nil
}
