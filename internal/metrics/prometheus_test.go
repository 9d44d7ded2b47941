package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPrometheusExposesCounters(t *testing.T) {
	prom := NewPrometheus()
	prom.Metrics.RunsTotal.Inc()
	prom.Metrics.AlertsSent.Inc()
	prom.Metrics.AlertsSent.Inc()

	server := httptest.NewServer(prom.Handler())
	defer server.Close()

	resp, err := server.Client().Get(server.URL)
	if err != nil {
		t.Fatalf("scrape failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	text := string(body)
	if !strings.Contains(text, "hl_whale_tracker_runs_total 1") {
		t.Fatalf("expected runs counter in scrape:\n%s", text)
	}
	if !strings.Contains(text, "hl_whale_tracker_alerts_sent_total 2") {
		t.Fatalf("expected alerts counter in scrape:\n%s", text)
	}
}

func TestNoopMetricsAreSafe(t *testing.T) {
	m := NewNoop()
	m.RunsTotal.Inc()
	m.ChangesDetected.Inc()
	m.AlertsSent.Inc()
	m.AlertsFailed.Inc()
	m.WalletsSkipped.Inc()
	m.SnapshotSaveFailures.Inc()
}
