package results

import (
	"github.com/kmw248/mcmc/stats"
	"github.com/kmw248/mcmc/target"
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestMemoryStore_SaveThenGet(t *testing.T) {
	store := NewMemoryStore()
	saved := &RunResult{
		ID:              "run-1",
		Target:          target.Spec{Kind: target.KindNormal, Mu: 0, Sigma: 1},
		Steps:           3,
		ProposalStdDev:  0.5,
		InitialPosition: 0.6,
		Seed:            1,
		AcceptanceRate:  2.0 / 3.0,
		Summary:         stats.Summary{Count: 3, Mean: 0.3},
		Samples:         []float64{0.3, 0.3, 0.4},
		CompletedAt:     time.Now(),
	}

	assert.Nil(t, store.Save(saved))

	got, err := store.Get("run-1")
	assert.Nil(t, err)
	assert.Equal(t, saved, got)
}

func TestMemoryStore_GetReturnsErrNotFoundForUnknownID(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Get("missing")
	assert.Nil(t, got)
	assert.Equal(t, ErrNotFound, err)
}

func TestRunResult_WithoutSamples(t *testing.T) {
	full := &RunResult{ID: "run-1", Samples: []float64{0.3, 0.3, 0.4}}

	trimmed := full.WithoutSamples()
	assert.Nil(t, trimmed.Samples)
	assert.Equal(t, "run-1", trimmed.ID)
	assert.Equal(t, []float64{0.3, 0.3, 0.4}, full.Samples,
		"expected WithoutSamples() to leave the original untouched")
}
