package main

import (
	"fmt"
	"github.com/kmw248/mcmc/config"
	"github.com/kmw248/mcmc/logging"
	"github.com/kmw248/mcmc/metropolis"
	"github.com/kmw248/mcmc/plotting"
	"github.com/kmw248/mcmc/results"
	"github.com/kmw248/mcmc/runqueue"
	"github.com/kmw248/mcmc/serving"
	"github.com/kmw248/mcmc/stats"
	"golang.org/x/exp/rand"
	"log"
	"strings"
	"time"
)

func main() {
	conf := config.ReadConfig()

	var logger logging.Logger
	if *conf.Logging.Driver == "noop" {
		logger = logging.NewNoopLogger()
	} else if *conf.Logging.Driver == "stdout" {
		logger = logging.NewStdoutLogger()
	} else if *conf.Logging.Driver == "influxdb" {
		logger = logging.NewInfluxDBLogger(
			*conf.Logging.InfluxDB.Host,
			*conf.Logging.InfluxDB.Token,
			*conf.Logging.InfluxDB.Org,
			*conf.Logging.InfluxDB.Bucket,
		)
	} else {
		log.Fatalf("expected logging.driver one of {noop|stdout|influxdb}; got %s", *conf.Logging.Driver)
	}

	if *conf.Serving.Enabled {
		serve(conf, logger)
	} else {
		runOnce(conf, logger)
	}
}

// runOnce samples a single chain described by the config file, printing
// its summary and histogram to standard output.
func runOnce(conf *config.Config, logger logging.Logger) {
	spec := conf.Target.Spec()
	dist, err := spec.Build()
	if err != nil {
		log.Fatalf("expected target.Spec.Build() returns nil err; got err = %v", err)
	}

	initialPosition := dist.Mean()
	if conf.Run.InitialPosition != nil {
		initialPosition = *conf.Run.InitialPosition
	}
	seed := uint64(time.Now().UTC().UnixNano())
	if conf.Run.Seed != nil {
		seed = *conf.Run.Seed
	}

	sampler, err := metropolis.New(dist, *conf.Run.ProposalStdDev, initialPosition, rand.New(rand.NewSource(seed)))
	if err != nil {
		log.Fatalf("expected metropolis.New() returns nil err; got err = %v", err)
	}

	logger.LogRunStarted(spec.String(), *conf.Run.Steps, *conf.Run.ProposalStdDev, initialPosition)
	startTime := time.Now()
	samples, err := sampler.Run(*conf.Run.Steps)
	if err != nil {
		log.Fatalf("expected Sampler.Run() returns nil err; got err = %v", err)
	}
	duration := time.Now().Sub(startTime)

	acceptanceRate := float64(sampler.DebugAccepted) / float64(*conf.Run.Steps)
	logger.LogRunCompleted(acceptanceRate, duration.Seconds())

	summary, err := stats.Summarize(samples)
	if err != nil {
		log.Fatalf("expected stats.Summarize() returns nil err; got err = %v", err)
	}
	logger.LogChainSummary(summary.Mean, summary.StdDev, summary.P50, summary.P95)

	fmt.Printf("sampled %d steps from %s in %.3fs (seed %d, acceptance rate %.1f%%)\n",
		summary.Count, spec, duration.Seconds(), seed, acceptanceRate*100)
	fmt.Printf("mean %.4f, stddev %.4f, min %.4f, p50 %.4f, p95 %.4f, max %.4f\n",
		summary.Mean, summary.StdDev, summary.Min, summary.P50, summary.P95, summary.Max)
	printHistogram(samples, *conf.Plot.Bins)

	if *conf.Plot.Enabled {
		if err := plotting.SaveHistogram(samples, dist.Density, *conf.Plot.Bins, *conf.Plot.Path); err != nil {
			log.Fatalf("expected plotting.SaveHistogram() returns nil err; got err = %v", err)
		}
		fmt.Printf("histogram written to %s\n", *conf.Plot.Path)
	}
}

// printHistogram renders the chain as bars on standard output, scaled so
// the fullest bin spans fifty characters.
func printHistogram(samples []float64, bins int) {
	const barWidth = 50

	binned, err := stats.Histogram(samples, bins)
	if err != nil {
		log.Fatalf("expected stats.Histogram() returns nil err; got err = %v", err)
	}

	maxCount := 0
	for _, bin := range binned {
		if bin.Count > maxCount {
			maxCount = bin.Count
		}
	}

	for _, bin := range binned {
		bar := strings.Repeat("█", int(float64(bin.Count)/float64(maxCount)*barWidth))
		fmt.Printf("%8.3f to %8.3f: %s %d\n", bin.Left, bin.Right, bar, bin.Count)
	}
}

// serve runs the queue worker and the HTTP API in one process. Requests
// are enqueued rather than run inline so a slow chain cannot hold an
// HTTP connection open.
func serve(conf *config.Config, logger logging.Logger) {
	queue, err := runqueue.Open(
		"mcmc",
		*conf.Serving.Redis.Addr,
		*conf.Serving.Redis.Password,
		*conf.Serving.Redis.QueueDB,
		*conf.Serving.Queue.Name,
	)
	if err != nil {
		log.Fatalf("expected runqueue.Open() returns nil err; got err = %v", err)
	}

	store := results.NewRedisStore(
		*conf.Serving.Redis.Addr,
		*conf.Serving.Redis.Password,
		*conf.Serving.Redis.ResultsDB,
		time.Duration(*conf.Serving.ResultTTLSeconds)*time.Second,
	)

	worker := runqueue.NewWorker(runqueue.WorkerOptions{
		Store:        store,
		Logger:       logger,
		TimingWindow: *conf.Serving.Queue.TimingWindow,
	})
	pollInterval := time.Duration(*conf.Serving.Queue.PollIntervalMillis) * time.Millisecond
	if err := queue.StartConsuming(int64(*conf.Serving.Queue.Prefetch), pollInterval); err != nil {
		log.Fatalf("expected Queue.StartConsuming() returns nil err; got err = %v", err)
	}
	if _, err := queue.AddConsumer("worker", worker); err != nil {
		log.Fatalf("expected Queue.AddConsumer() returns nil err; got err = %v", err)
	}

	server := serving.NewServer(&serving.ServerOptions{
		ListenAddr: *conf.Serving.ListenAddr,
		Publisher:  runqueue.NewPublisher(queue),
		Store:      store,
	})
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("expected Server.ListenAndServe() returns nil err; got err = %v", err)
	}
}
