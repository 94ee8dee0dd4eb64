// Package runqueue carries run requests from the serving API to the
// worker over an rmq-backed Redis queue.
package runqueue

import (
	"fmt"
	"github.com/kmw248/mcmc/target"
	"math"
)

// Job is the queue payload describing one requested chain run.
// InitialPosition and Seed are optional: a missing initial position
// starts the chain at the target's mean, and a missing seed makes the
// worker derive one from the wall clock.
type Job struct {
	ID              string      `json:"id"`
	Target          target.Spec `json:"target"`
	Steps           int         `json:"steps"`
	ProposalStdDev  float64     `json:"proposalStdDev"`
	InitialPosition *float64    `json:"initialPosition,omitempty"`
	Seed            *uint64     `json:"seed,omitempty"`
}

// Validate checks the job before it is enqueued, so a malformed request
// is rejected at the API rather than discovered by the worker.
func (j Job) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("Job.Validate() expected a non-empty id; got id = %q", j.ID)
	}
	if j.Steps < 1 {
		return fmt.Errorf("Job.Validate() expected steps >= 1; got steps = %d", j.Steps)
	}
	if math.IsNaN(j.ProposalStdDev) || j.ProposalStdDev <= 0 {
		return fmt.Errorf("Job.Validate() expected proposalStdDev > 0; got proposalStdDev = %v", j.ProposalStdDev)
	}
	if j.InitialPosition != nil && (math.IsNaN(*j.InitialPosition) || math.IsInf(*j.InitialPosition, 0)) {
		return fmt.Errorf("Job.Validate() expected a finite initialPosition; got initialPosition = %v", *j.InitialPosition)
	}
	if _, err := j.Target.Build(); err != nil {
		return fmt.Errorf("Job.Validate() got an invalid target: %w", err)
	}
	return nil
}
