package runqueue

import (
	"github.com/kmw248/mcmc/target"
	"math"
	"testing"
)

func TestJob_Validate(t *testing.T) {
	normal := target.Spec{Kind: target.KindNormal, Mu: 0, Sigma: 1}
	tests := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{
			name:    "Accepts a well-formed job",
			job:     Job{ID: "run-1", Target: normal, Steps: 100, ProposalStdDev: 0.5},
			wantErr: false,
		},
		{
			name: "Accepts an explicit seed and initial position",
			job: Job{
				ID:              "run-1",
				Target:          normal,
				Steps:           100,
				ProposalStdDev:  0.5,
				InitialPosition: float64Ptr(2.5),
				Seed:            uint64Ptr(42),
			},
			wantErr: false,
		},
		{
			name:    "Rejects an empty id",
			job:     Job{Target: normal, Steps: 100, ProposalStdDev: 0.5},
			wantErr: true,
		},
		{
			name:    "Rejects zero steps",
			job:     Job{ID: "run-1", Target: normal, Steps: 0, ProposalStdDev: 0.5},
			wantErr: true,
		},
		{
			name:    "Rejects a zero proposal standard deviation",
			job:     Job{ID: "run-1", Target: normal, Steps: 100, ProposalStdDev: 0},
			wantErr: true,
		},
		{
			name:    "Rejects a NaN proposal standard deviation",
			job:     Job{ID: "run-1", Target: normal, Steps: 100, ProposalStdDev: math.NaN()},
			wantErr: true,
		},
		{
			name: "Rejects an infinite initial position",
			job: Job{
				ID:              "run-1",
				Target:          normal,
				Steps:           100,
				ProposalStdDev:  0.5,
				InitialPosition: float64Ptr(math.Inf(1)),
			},
			wantErr: true,
		},
		{
			name:    "Rejects an unknown target kind",
			job:     Job{ID: "run-1", Target: target.Spec{Kind: "cauchy"}, Steps: 100, ProposalStdDev: 0.5},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.job.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func float64Ptr(v float64) *float64 {
	return &v
}

func uint64Ptr(v uint64) *uint64 {
	return &v
}
