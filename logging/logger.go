package logging

type Logger interface {
	LogRunStarted(target string, steps int, proposalStdDev float64, initialPosition float64)
	LogRunCompleted(acceptanceRate float64, seconds float64) // Takes the run duration in seconds.
	LogChainSummary(mean float64, stdDev float64, p50 float64, p95 float64)
	LogRunTimings(p50 float64, p75 float64, p95 float64) // Takes aggregate run durations in seconds.
}

// noopLogger does not perform any logging.
type noopLogger struct{}

func NewNoopLogger() *noopLogger {
	return &noopLogger{}
}

func (*noopLogger) LogRunStarted(string, int, float64, float64) {
	return
}

func (*noopLogger) LogRunCompleted(float64, float64) {
	return
}

func (*noopLogger) LogChainSummary(float64, float64, float64, float64) {
	return
}

func (*noopLogger) LogRunTimings(float64, float64, float64) {
	return
}
