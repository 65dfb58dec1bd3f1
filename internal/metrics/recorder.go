package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFallback ResultLabel = "fallback"
	ResultCached   ResultLabel = "cached"
	ResultInvalid  ResultLabel = "invalid"
	ResultFailed   ResultLabel = "failed"
)

// Recorder defines observability hooks for the widget and contact paths.
// Implementations may forward to Prometheus; NoopRecorder is used when
// metrics are not wired.
type Recorder interface {
	ObserveWeatherFetch(d time.Duration, result ResultLabel)
	IncContactSubmission(result ResultLabel)
	IncCarouselOp(op string, result ResultLabel)
	SetContentItems(section string, n int)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveWeatherFetch(time.Duration, ResultLabel) {}
func (NoopRecorder) IncContactSubmission(ResultLabel)               {}
func (NoopRecorder) IncCarouselOp(string, ResultLabel)              {}
func (NoopRecorder) SetContentItems(string, int)                    {}
