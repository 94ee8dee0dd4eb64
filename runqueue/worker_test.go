package runqueue

import (
	"encoding/json"
	"github.com/adjust/rmq/v3"
	"github.com/kmw248/mcmc/logging"
	"github.com/kmw248/mcmc/results"
	"github.com/kmw248/mcmc/target"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestWorker_ExecuteReproducesAChainFromItsSeed(t *testing.T) {
	worker := NewWorker(WorkerOptions{Store: results.NewMemoryStore(), Logger: logging.NewNoopLogger()})
	job := Job{
		ID:             "run-1",
		Target:         target.Spec{Kind: target.KindNormal, Mu: 0, Sigma: 1},
		Steps:          500,
		ProposalStdDev: 1,
		Seed:           uint64Ptr(42),
	}

	first, err := worker.execute(job)
	assert.Nil(t, err)
	second, err := worker.execute(job)
	assert.Nil(t, err)

	assert.Equal(t, first.Samples, second.Samples, "expected equal seeds to reproduce the chain")
	assert.Equal(t, 500, len(first.Samples))
	assert.Equal(t, uint64(42), first.Seed)
	assert.Equal(t, 500, first.Summary.Count)
	assert.True(t, first.AcceptanceRate > 0 && first.AcceptanceRate <= 1,
		"expected an acceptance rate within (0, 1]; got %v", first.AcceptanceRate)
}

func TestWorker_ExecuteDefaultsTheInitialPositionToTheTargetMean(t *testing.T) {
	worker := NewWorker(WorkerOptions{Store: results.NewMemoryStore(), Logger: logging.NewNoopLogger()})

	result, err := worker.execute(Job{
		ID:             "run-1",
		Target:         target.Spec{Kind: target.KindNormal, Mu: 7, Sigma: 1},
		Steps:          10,
		ProposalStdDev: 0.5,
		Seed:           uint64Ptr(1),
	})

	assert.Nil(t, err)
	assert.Equal(t, 7.0, result.InitialPosition)
}

func TestWorker_ExecuteUsesTheExplicitInitialPosition(t *testing.T) {
	worker := NewWorker(WorkerOptions{Store: results.NewMemoryStore(), Logger: logging.NewNoopLogger()})

	result, err := worker.execute(Job{
		ID:              "run-1",
		Target:          target.Spec{Kind: target.KindNormal, Mu: 7, Sigma: 1},
		Steps:           10,
		ProposalStdDev:  0.5,
		InitialPosition: float64Ptr(6.5),
		Seed:            uint64Ptr(1),
	})

	assert.Nil(t, err)
	assert.Equal(t, 6.5, result.InitialPosition)
}

func TestWorker_ConsumeAcksAndStoresAWellFormedJob(t *testing.T) {
	store := results.NewMemoryStore()
	worker := NewWorker(WorkerOptions{Store: store, Logger: logging.NewNoopLogger()})
	payload, err := json.Marshal(Job{
		ID:             "run-1",
		Target:         target.Spec{Kind: target.KindBeta, Alpha: 2, Beta: 5},
		Steps:          200,
		ProposalStdDev: 0.2,
		Seed:           uint64Ptr(7),
	})
	assert.Nil(t, err)

	delivery := rmq.NewTestDeliveryString(string(payload))
	worker.Consume(delivery)

	assert.Equal(t, rmq.Acked, delivery.State)
	result, err := store.Get("run-1")
	assert.Nil(t, err)
	assert.Equal(t, 200, len(result.Samples))
}

func TestWorker_ConsumeRejectsAMalformedPayload(t *testing.T) {
	worker := NewWorker(WorkerOptions{Store: results.NewMemoryStore(), Logger: logging.NewNoopLogger()})

	delivery := rmq.NewTestDeliveryString("{not json")
	worker.Consume(delivery)

	assert.Equal(t, rmq.Rejected, delivery.State)
}

func TestWorker_ConsumeRejectsAnInvalidJob(t *testing.T) {
	store := results.NewMemoryStore()
	worker := NewWorker(WorkerOptions{Store: store, Logger: logging.NewNoopLogger()})
	payload, err := json.Marshal(Job{
		ID:             "run-1",
		Target:         target.Spec{Kind: target.KindNormal, Mu: 0, Sigma: 1},
		Steps:          0,
		ProposalStdDev: 0.5,
	})
	assert.Nil(t, err)

	delivery := rmq.NewTestDeliveryString(string(payload))
	worker.Consume(delivery)

	assert.Equal(t, rmq.Rejected, delivery.State)
	_, err = store.Get("run-1")
	assert.Equal(t, results.ErrNotFound, err)
}

func TestPublisher_EnqueuePublishesTheJobAsJSON(t *testing.T) {
	queue := rmq.NewTestQueue("runs")
	publisher := NewPublisher(queue)
	job := Job{
		ID:             "run-1",
		Target:         target.Spec{Kind: target.KindUniform, Min: 0, Max: 1},
		Steps:          50,
		ProposalStdDev: 0.25,
	}

	assert.Nil(t, publisher.Enqueue(job))
	assert.Equal(t, 1, len(queue.LastDeliveries))

	var published Job
	assert.Nil(t, json.Unmarshal([]byte(queue.LastDeliveries[0]), &published))
	assert.Equal(t, job, published)
}

func TestPublisher_EnqueueRefusesAnInvalidJob(t *testing.T) {
	queue := rmq.NewTestQueue("runs")
	publisher := NewPublisher(queue)

	err := publisher.Enqueue(Job{ID: "run-1", Target: target.Spec{Kind: target.KindNormal, Sigma: 1}, Steps: 0, ProposalStdDev: 0.5})

	assert.NotNil(t, err)
	assert.Equal(t, 0, len(queue.LastDeliveries))
}
