package logging

import "log"

// stdoutLogger logs the output to standard output.
type stdoutLogger struct{}

func NewStdoutLogger() *stdoutLogger {
	return &stdoutLogger{}
}

func (*stdoutLogger) LogRunStarted(target string, steps int, proposalStdDev float64, initialPosition float64) {
	log.Printf("run started: target: %s, steps: %d, proposal stddev: %.3f, initial position: %.3f\n", target, steps, proposalStdDev, initialPosition)
}

func (*stdoutLogger) LogRunCompleted(acceptanceRate float64, seconds float64) {
	log.Printf("run completed in %.3fs, acceptance rate: %.2f%%\n", seconds, acceptanceRate*100)
}

func (*stdoutLogger) LogChainSummary(mean float64, stdDev float64, p50 float64, p95 float64) {
	log.Printf("chain summary: mean: %.4f, stddev: %.4f, p50: %.4f, p95: %.4f\n", mean, stdDev, p50, p95)
}

func (*stdoutLogger) LogRunTimings(p50 float64, p75 float64, p95 float64) {
	log.Printf("run timings: p50: %.3fs, p75: %.3fs, p95: %.3fs\n", p50, p75, p95)
}
