// pkg/telemetry/collector_test.go
package telemetry

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

func TestNewCollector_FreshRegistry_RegistersAllMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()

	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector() error = %v", err)
	}

	if c.TicksTotal == nil || c.TickDuration == nil || c.Vehicles == nil ||
		c.VehiclesByMode == nil || c.WaypointsReached == nil || c.BackendSkips == nil {
		t.Error("expected all metrics to be initialized")
	}
}

func TestNewCollector_DoubleRegistration_ReusesExisting(t *testing.T) {
	reg := prometheus.NewRegistry()

	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("first NewCollector() error = %v", err)
	}

	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("second NewCollector() error = %v", err)
	}

	first.TicksTotal.Inc()
	second.TicksTotal.Inc()

	if got := testutil.ToFloat64(first.TicksTotal); got != 2 {
		t.Errorf("expected shared counter value 2, got %v", got)
	}
}

func TestObserveTick_IncrementsCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector() error = %v", err)
	}

	c.ObserveTick(2 * time.Millisecond)
	c.ObserveTick(3 * time.Millisecond)

	if got := testutil.ToFloat64(c.TicksTotal); got != 2 {
		t.Errorf("expected 2 ticks, got %v", got)
	}
}

func TestSetModeCount_TracksPerModeGauges(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector() error = %v", err)
	}

	c.SetModeCount("manual", 1)
	c.SetModeCount("scripted", 3)

	if got := testutil.ToFloat64(c.VehiclesByMode.WithLabelValues("scripted")); got != 3 {
		t.Errorf("expected scripted gauge 3, got %v", got)
	}

	if got := testutil.ToFloat64(c.VehiclesByMode.WithLabelValues("manual")); got != 1 {
		t.Errorf("expected manual gauge 1, got %v", got)
	}
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector() error = %v", err)
	}

	c.SetVehicleCount(4)
	c.IncWaypointsReached()

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body error = %v", err)
	}
	body := string(raw)

	if !strings.Contains(body, "sim_vehicles 4") {
		t.Errorf("expected sim_vehicles gauge in output, got:\n%s", body)
	}

	if !strings.Contains(body, "sim_waypoints_reached_total 1") {
		t.Errorf("expected waypoint counter in output, got:\n%s", body)
	}
}

func TestNilCollector_MethodsAreSafe(t *testing.T) {
	var c *Collector

	c.ObserveTick(time.Millisecond)
	c.SetVehicleCount(1)
	c.SetModeCount("manual", 1)
	c.IncWaypointsReached()
	c.IncBackendSkips()

	if c.Handler() == nil {
		t.Error("nil collector Handler() should still return a handler")
	}
}
