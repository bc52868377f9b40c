package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultInvalid ResultLabel = "invalid"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for loads and renders.
type Recorder interface {
	ObserveLoad(result ResultLabel, d time.Duration)
	ObserveRender(target string, result ResultLabel, d time.Duration)
	SetIssues(errors, warnings int)
	IncReload()
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoad(ResultLabel, time.Duration)           {}
func (NoopRecorder) ObserveRender(string, ResultLabel, time.Duration) {}
func (NoopRecorder) SetIssues(int, int)                               {}
func (NoopRecorder) IncReload()                                       {}
