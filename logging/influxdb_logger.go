package logging

import (
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"log"
	"time"
)

// influxDBLogger logs the output to an external InfluxDB instance.
type influxDBLogger struct {
	client      influxdb2.Client
	asyncWriter api.WriteAPI
}

func NewInfluxDBLogger(baseURL, authToken, org, bucket string) *influxDBLogger {
	options := influxdb2.DefaultOptions()
	options.WriteOptions().SetBatchSize(1000)
	options.WriteOptions().SetFlushInterval(250)

	client := influxdb2.NewClientWithOptions(baseURL, authToken, options)
	writeAPI := client.WriteAPI(org, bucket)

	// Create a goroutine for reading and logging async write errors.
	errorsCh := writeAPI.Errors()
	go func() {
		for err := range errorsCh {
			log.Printf("influxdb2 logging async write error: %v\n", err)
		}
	}()

	return &influxDBLogger{
		client:      client,
		asyncWriter: writeAPI,
	}
}

func (l *influxDBLogger) LogRunStarted(target string, steps int, proposalStdDev float64, initialPosition float64) {
	p := influxdb2.NewPointWithMeasurement("mcmc_run_started").
		AddTag("target", target).
		AddField("steps", steps).
		AddField("proposal_stddev", proposalStdDev).
		AddField("initial_position", initialPosition).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) LogRunCompleted(acceptanceRate float64, seconds float64) {
	p := influxdb2.NewPointWithMeasurement("mcmc_run_completed").
		AddField("acceptance_rate", acceptanceRate).
		AddField("seconds", seconds).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) LogChainSummary(mean float64, stdDev float64, p50 float64, p95 float64) {
	p := influxdb2.NewPointWithMeasurement("mcmc_chain_summary").
		AddField("mean", mean).
		AddField("stddev", stdDev).
		AddField("p50", p50).
		AddField("p95", p95).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}

func (l *influxDBLogger) LogRunTimings(p50 float64, p75 float64, p95 float64) {
	p := influxdb2.NewPointWithMeasurement("mcmc_run_timings").
		AddField("p50", p50).
		AddField("p75", p75).
		AddField("p95", p95).
		SetTime(time.Now())
	l.asyncWriter.WritePoint(p)
}
