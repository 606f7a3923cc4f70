package telemetry

// ReadRecorder receives the outcome of every timed read.
// Implementations must be safe for concurrent use.
type ReadRecorder interface {
	RecordRead(bytes int)
	RecordTimeout()
	RecordExpired()
	RecordFailure()
}

type NopReadRecorder struct{}

func (NopReadRecorder) RecordRead(int) {}
func (NopReadRecorder) RecordTimeout() {}
func (NopReadRecorder) RecordExpired() {}
func (NopReadRecorder) RecordFailure() {}
