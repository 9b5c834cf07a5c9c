package metrics

import "time"

// Recorder defines observability hooks for a link check run. Implementations
// may forward to Prometheus or any other backend.
type Recorder interface {
	IncFilesChecked()
	IncLink(class string)
	IncFinding(kind string)
	ObserveRunDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncFilesChecked()                 {}
func (NoopRecorder) IncLink(string)                   {}
func (NoopRecorder) IncFinding(string)                {}
func (NoopRecorder) ObserveRunDuration(time.Duration) {}
