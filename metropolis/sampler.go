// Package metropolis implements the single-chain Metropolis sampler: a
// random walk with symmetric Gaussian proposals whose accept/reject rule
// satisfies detailed balance, so the visited positions approximate draws
// from a target density known only up to a normalising constant.
package metropolis

import (
	"errors"
	"fmt"
	"math"
)

// Target is the distribution being sampled, seen only through pointwise
// density evaluation. Implementations must be pure and side-effect free:
// the sampler caches the density of the current position between
// iterations and evaluates each proposed candidate exactly once, so a
// non-deterministic Density would corrupt the chain.
type Target interface {
	// Density returns the possibly unnormalised density at x. It must be
	// finite and non-negative for every reachable x.
	Density(x float64) float64
}

// Source supplies the randomness one walk consumes. Each iteration makes
// exactly two draws, in order: a standard normal variate scaled into the
// proposal offset, then a uniform [0, 1) variate for the acceptance test.
// *rand.Rand from golang.org/x/exp/rand satisfies Source; tests can
// substitute a scripted implementation.
type Source interface {
	NormFloat64() float64 // NormFloat64 draws a standard normal variate.
	Float64() float64     // Float64 draws a uniform variate in [0, 1).
}

// Sampler runs a fixed number of propose/accept-reject iterations and
// records one sample per iteration. It owns no shared state: each Run
// threads a fresh walker through its iterations, so a Sampler can be
// reused for successive runs (though not concurrently, as the Source is
// consumed strictly in order).
type Sampler struct {
	target          Target
	proposalStdDev  float64 // Spread of candidate moves; the random walk step size.
	initialPosition float64 // Where the walker stands before the first iteration.
	src             Source

	// DebugAccepted and DebugRejected count the accept/reject decisions of
	// the most recent Run, letting callers report the acceptance rate
	// without widening the Run contract.
	DebugAccepted int
	DebugRejected int
}

// walker is the chain state carried between iterations: where the walk
// currently stands and the cached target density there.
type walker struct {
	position float64
	density  float64
}

// New validates the walk configuration. The proposal standard deviation
// is a tunable: too large and most candidates fall where the density
// ratio is near zero, too small and the chain crawls.
func New(target Target, proposalStdDev float64, initialPosition float64, src Source) (*Sampler, error) {
	if target == nil {
		return nil, errors.New("metropolis.New() expected a target density; got nil")
	}
	if src == nil {
		return nil, errors.New("metropolis.New() expected a randomness source; got nil")
	}
	if math.IsNaN(proposalStdDev) || proposalStdDev <= 0 {
		return nil, fmt.Errorf("metropolis.New() expected proposalStdDev > 0; got %v", proposalStdDev)
	}
	if math.IsNaN(initialPosition) || math.IsInf(initialPosition, 0) {
		return nil, fmt.Errorf("metropolis.New() expected a finite initialPosition; got %v", initialPosition)
	}

	return &Sampler{
		target:          target,
		proposalStdDev:  proposalStdDev,
		initialPosition: initialPosition,
		src:             src,
	}, nil
}

// Run produces exactly steps correlated samples approximately distributed
// according to the target density. Every entry is either the iteration's
// accepted candidate or a repeat of the position the walk already stood
// on; there is no partial result on error.
//
// The density at the initial position must be strictly positive: a walk
// started outside the support could never move by the acceptance rule
// below, so a zero (or negative, or non-finite) initial density fails
// fast instead of producing a chain stuck on the starting value.
func (s *Sampler) Run(steps int) ([]float64, error) {
	if steps < 1 {
		return nil, fmt.Errorf("Sampler.Run() expected steps >= 1; got %d", steps)
	}

	w := walker{position: s.initialPosition}
	w.density = s.target.Density(w.position)
	if math.IsNaN(w.density) || math.IsInf(w.density, 0) || w.density <= 0 {
		return nil, fmt.Errorf("Sampler.Run() expected a finite positive density at initial position %v; got %v", w.position, w.density)
	}

	s.DebugAccepted = 0
	s.DebugRejected = 0

	samples := make([]float64, steps)
	for i := range samples {
		next, accepted, err := s.step(w)
		if err != nil {
			return nil, fmt.Errorf("Sampler.Run() aborted at step %d: %w", i, err)
		}
		if accepted {
			s.DebugAccepted++
		} else {
			s.DebugRejected++
		}
		w = next
		samples[i] = w.position
	}

	return samples, nil
}

// step advances the walk by one propose/accept-reject cycle, returning
// the walker for the next iteration and whether the candidate was taken.
// The uniform draw is made even on paths that do not inspect it, so a
// fixed seed always replays the same chain.
func (s *Sampler) step(w walker) (walker, bool, error) {
	offset := s.src.NormFloat64() * s.proposalStdDev
	candidate := w.position + offset

	density := s.target.Density(candidate)
	if math.IsNaN(density) || math.IsInf(density, 0) || density < 0 {
		return walker{}, false, fmt.Errorf("target density at %v is %v; want finite and non-negative", candidate, density)
	}

	u := s.src.Float64()

	// A walker standing on a zero-density point takes any candidate: the
	// ratio below would read 0/0, and staying put can never improve. This
	// point is only reachable by accepting a zero-density candidate, which
	// requires the uniform draw to be exactly zero.
	if w.density == 0 {
		return walker{position: candidate, density: density}, true, nil
	}

	// The proposal is a zero-mean Gaussian offset, so it is symmetric and
	// the proposal-density terms of the general Metropolis-Hastings ratio
	// cancel, leaving the plain density ratio. A candidate outside the
	// support gives a ratio of zero and is rejected for any u > 0.
	if density/w.density >= u {
		return walker{position: candidate, density: density}, true, nil
	}
	return w, false, nil
}
