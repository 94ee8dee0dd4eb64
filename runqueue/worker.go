package runqueue

import (
	"encoding/json"
	"fmt"
	"github.com/adjust/rmq/v3"
	"github.com/kmw248/mcmc/logging"
	"github.com/kmw248/mcmc/metropolis"
	"github.com/kmw248/mcmc/results"
	"github.com/kmw248/mcmc/stats"
	"github.com/kmw248/mcmc/timing"
	"golang.org/x/exp/rand"
	"log"
	"sync"
	"time"
)

// timingLogInterval is the number of completed runs between run-timing
// percentile log lines.
const timingLogInterval = 10

type WorkerOptions struct {
	Store  results.Store
	Logger logging.Logger
	// TimingWindow is the number of recent runs the run-timing
	// percentiles are calculated over.
	TimingWindow int
}

// Worker consumes jobs from the queue, runs the chains they describe
// and persists the results.
type Worker struct {
	store  results.Store
	logger logging.Logger
	// timings captures wall-clock run durations over a rolling window.
	timings timing.Collector
	// completed counts finished runs since the worker started.
	completed int
	// completedMux guards completed, as a queue can have more than one
	// consumer registered against it.
	completedMux *sync.Mutex
}

func NewWorker(options WorkerOptions) *Worker {
	window := options.TimingWindow
	if window < 1 {
		window = 100
	}

	return &Worker{
		store:        options.Store,
		logger:       options.Logger,
		timings:      timing.NewTachymeterCollector(window),
		completedMux: &sync.Mutex{},
	}
}

// Consume implements rmq.Consumer. Payloads that cannot be decoded or
// validated are rejected rather than retried, as are runs that fail
// against a well-formed job: retrying would fail the same way.
func (w *Worker) Consume(delivery rmq.Delivery) {
	var job Job
	if err := json.Unmarshal([]byte(delivery.Payload()), &job); err != nil {
		log.Printf("[worker] could not decode job payload: %v\n", err)
		w.reject(delivery)
		return
	}
	if err := job.Validate(); err != nil {
		log.Printf("[worker] dropping invalid job: %v\n", err)
		w.reject(delivery)
		return
	}

	result, err := w.execute(job)
	if err != nil {
		log.Printf("[worker] job %s failed: %v\n", job.ID, err)
		w.reject(delivery)
		return
	}

	if err := w.store.Save(result); err != nil {
		log.Printf("[worker] could not save run %s: %v\n", job.ID, err)
		w.reject(delivery)
		return
	}

	if err := delivery.Ack(); err != nil {
		log.Printf("[worker] could not ack job %s: %v\n", job.ID, err)
	}
}

func (w *Worker) reject(delivery rmq.Delivery) {
	if err := delivery.Reject(); err != nil {
		log.Printf("[worker] could not reject delivery: %v\n", err)
	}
}

// execute runs the chain a job describes and assembles its result.
// Defaults are resolved here so the persisted result always records the
// initial position and seed actually used.
func (w *Worker) execute(job Job) (*results.RunResult, error) {
	dist, err := job.Target.Build()
	if err != nil {
		return nil, fmt.Errorf("Worker.execute() could not build the target: %w", err)
	}

	initialPosition := dist.Mean()
	if job.InitialPosition != nil {
		initialPosition = *job.InitialPosition
	}
	seed := uint64(time.Now().UTC().UnixNano())
	if job.Seed != nil {
		seed = *job.Seed
	}

	sampler, err := metropolis.New(dist, job.ProposalStdDev, initialPosition, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("Worker.execute() could not build the sampler: %w", err)
	}

	w.logger.LogRunStarted(job.Target.String(), job.Steps, job.ProposalStdDev, initialPosition)

	startTime := time.Now()
	samples, err := sampler.Run(job.Steps)
	if err != nil {
		return nil, fmt.Errorf("Worker.execute() got err when calling Run(): %w", err)
	}
	elapsed := time.Now().Sub(startTime)

	summary, err := stats.Summarize(samples)
	if err != nil {
		return nil, fmt.Errorf("Worker.execute() got err when calling Summarize(): %w", err)
	}

	acceptanceRate := float64(sampler.DebugAccepted) / float64(job.Steps)
	w.logger.LogRunCompleted(acceptanceRate, elapsed.Seconds())
	w.logger.LogChainSummary(summary.Mean, summary.StdDev, summary.P50, summary.P95)
	w.recordTiming(elapsed)

	return &results.RunResult{
		ID:              job.ID,
		Target:          job.Target,
		Steps:           job.Steps,
		ProposalStdDev:  job.ProposalStdDev,
		InitialPosition: initialPosition,
		Seed:            seed,
		AcceptanceRate:  acceptanceRate,
		ElapsedSeconds:  elapsed.Seconds(),
		Summary:         *summary,
		Samples:         samples,
		CompletedAt:     time.Now(),
	}, nil
}

// recordTiming feeds the run duration into the rolling window and logs
// percentiles every timingLogInterval runs.
func (w *Worker) recordTiming(elapsed time.Duration) {
	w.timings.Add(elapsed)

	w.completedMux.Lock()
	w.completed++
	shouldLog := w.completed%timingLogInterval == 0
	w.completedMux.Unlock()

	if !shouldLog {
		return
	}
	aggregation := w.timings.Aggregate()
	w.logger.LogRunTimings(aggregation.P50.Seconds(), aggregation.P75.Seconds(), aggregation.P95.Seconds())
}
