package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const promNamespace = "hl_whale_tracker"

type promCounter struct {
	counter prometheus.Counter
}

func (p promCounter) Inc() {
	p.counter.Inc()
}

type Prometheus struct {
	Metrics *Metrics

	registry             *prometheus.Registry
	runsTotal            prometheus.Counter
	changesDetected      prometheus.Counter
	alertsSent           prometheus.Counter
	alertsFailed         prometheus.Counter
	walletsSkipped       prometheus.Counter
	snapshotSaveFailures prometheus.Counter
}

func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	runsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "runs_total",
		Help:      "Total number of completed sampling runs.",
	})
	changesDetected := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "changes_detected_total",
		Help:      "Total number of non-unchanged position change events.",
	})
	alertsSent := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "alerts_sent_total",
		Help:      "Total number of alerts delivered.",
	})
	alertsFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "alerts_failed_total",
		Help:      "Total number of alert delivery failures.",
	})
	walletsSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "wallets_skipped_total",
		Help:      "Total number of wallets skipped due to fetch or parse failures.",
	})
	snapshotSaveFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: promNamespace,
		Name:      "snapshot_save_failures_total",
		Help:      "Total number of snapshot persistence failures.",
	})

	registry.MustRegister(runsTotal, changesDetected, alertsSent, alertsFailed, walletsSkipped, snapshotSaveFailures)

	m := &Metrics{
		RunsTotal:            promCounter{runsTotal},
		ChangesDetected:      promCounter{changesDetected},
		AlertsSent:           promCounter{alertsSent},
		AlertsFailed:         promCounter{alertsFailed},
		WalletsSkipped:       promCounter{walletsSkipped},
		SnapshotSaveFailures: promCounter{snapshotSaveFailures},
	}

	return &Prometheus{
		Metrics:              m,
		registry:             registry,
		runsTotal:            runsTotal,
		changesDetected:      changesDetected,
		alertsSent:           alertsSent,
		alertsFailed:         alertsFailed,
		walletsSkipped:       walletsSkipped,
		snapshotSaveFailures: snapshotSaveFailures,
	}
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
