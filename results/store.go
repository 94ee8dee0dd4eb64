// Package results persists completed chain runs so the serving API can
// return them after the worker has moved on.
package results

import (
	"errors"
	"github.com/kmw248/mcmc/stats"
	"github.com/kmw248/mcmc/target"
	"time"
)

// ErrNotFound is returned by Store.Get for an unknown run ID.
var ErrNotFound = errors.New("results: run not found")

// RunResult is the persisted outcome of one chain run: the request that
// produced it, the seed that makes it reproducible, and the chain with
// its aggregate summary.
type RunResult struct {
	ID              string        `json:"id"`
	Target          target.Spec   `json:"target"`
	Steps           int           `json:"steps"`
	ProposalStdDev  float64       `json:"proposalStdDev"`
	InitialPosition float64       `json:"initialPosition"`
	Seed            uint64        `json:"seed"`
	AcceptanceRate  float64       `json:"acceptanceRate"`
	ElapsedSeconds  float64       `json:"elapsedSeconds"`
	Summary         stats.Summary `json:"summary"`
	Samples         []float64     `json:"samples,omitempty"`
	CompletedAt     time.Time     `json:"completedAt"`
}

// WithoutSamples returns a copy of the result suitable for summary
// responses, where the full chain would dominate the payload.
func (r *RunResult) WithoutSamples() *RunResult {
	trimmed := *r
	trimmed.Samples = nil
	return &trimmed
}

type Store interface {
	// Save persists a completed run under its ID.
	Save(result *RunResult) error
	// Get retrieves a run by ID, returning ErrNotFound if absent.
	Get(id string) (*RunResult, error)
}
