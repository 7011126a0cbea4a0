package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSimCollectorRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewSimCollector(reg)
	if err != nil {
		t.Fatalf("NewSimCollector: %v", err)
	}

	collector.ObserveTick(5 * time.Millisecond)
	collector.ObserveTick(7 * time.Millisecond)
	collector.SetUnitCount("OPERATING", 12)
	collector.SetUnitCount("SINKING", 2)
	collector.IncSinkings()
	collector.SetTimeRate(60)

	if got := testutil.ToFloat64(collector.TicksTotal); got != 2 {
		t.Errorf("sim_ticks_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.UnitsByState.WithLabelValues("OPERATING")); got != 12 {
		t.Errorf("sim_units{state=OPERATING} = %v, want 12", got)
	}
	if got := testutil.ToFloat64(collector.SinkingsTotal); got != 1 {
		t.Errorf("sim_sinkings_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.TimeRate); got != 60 {
		t.Errorf("sim_time_rate_seconds = %v, want 60", got)
	}
}

func TestSimCollectorDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewSimCollector(reg); err != nil {
		t.Fatalf("first NewSimCollector: %v", err)
	}
	// Registering against the same registry reuses the existing collectors.
	if _, err := NewSimCollector(reg); err != nil {
		t.Fatalf("second NewSimCollector: %v", err)
	}
}

func TestSimCollectorNilSafe(t *testing.T) {
	var collector *SimCollector
	collector.ObserveTick(time.Millisecond)
	collector.SetUnitCount("OPERATING", 1)
	collector.IncSinkings()
	collector.SetTimeRate(1)
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewSimCollector(reg)
	if err != nil {
		t.Fatalf("NewSimCollector: %v", err)
	}
	collector.ObserveTick(time.Millisecond)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), "sim_ticks_total 1") {
		t.Errorf("metrics output missing sim_ticks_total:\n%s", body)
	}
}
