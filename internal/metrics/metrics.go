package metrics

type Counter interface {
	Inc()
}

type Metrics struct {
	RunsTotal            Counter
	ChangesDetected      Counter
	AlertsSent           Counter
	AlertsFailed         Counter
	WalletsSkipped       Counter
	SnapshotSaveFailures Counter
}

type noopCounter struct{}

func (noopCounter) Inc() {}

func NewNoop() *Metrics {
	n := noopCounter{}
	return &Metrics{
		RunsTotal:            n,
		ChangesDetected:      n,
		AlertsSent:           n,
		AlertsFailed:         n,
		WalletsSkipped:       n,
		SnapshotSaveFailures: n,
	}
}
