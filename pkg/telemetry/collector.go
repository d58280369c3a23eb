// Package telemetry exposes Prometheus metrics for the simulation core.
package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the simulation loop and provides
// a ready-to-serve /metrics handler.
type Collector struct {
	gatherer prometheus.Gatherer

	TicksTotal       prometheus.Counter
	TickDuration     prometheus.Histogram
	Vehicles         prometheus.Gauge
	VehiclesByMode   *prometheus.GaugeVec
	WaypointsReached prometheus.Counter
	BackendSkips     prometheus.Counter
}

// NewCollector registers simulation metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_ticks_total",
		Help: "Cumulative number of fixed-step simulation ticks executed.",
	})
	ticks, err := registerCounter(reg, ticks, "sim_ticks_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_tick_duration_seconds",
		Help:    "Wall-clock duration of a single simulation tick.",
		Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})
	duration, err = registerHistogram(reg, duration, "sim_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	vehicles := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_vehicles",
		Help: "Current number of vehicles in the simulation.",
	})
	vehicles, err = registerGauge(reg, vehicles, "sim_vehicles")
	if err != nil {
		return nil, err
	}

	byMode := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sim_vehicles_by_mode",
		Help: "Current number of vehicles per control mode.",
	}, []string{"mode"})
	byMode, err = registerGaugeVec(reg, byMode, "sim_vehicles_by_mode")
	if err != nil {
		return nil, err
	}

	waypoints := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_waypoints_reached_total",
		Help: "Cumulative number of waypoints reached by scripted flights.",
	})
	waypoints, err = registerCounter(reg, waypoints, "sim_waypoints_reached_total")
	if err != nil {
		return nil, err
	}

	skips := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_backend_skips_total",
		Help: "Cumulative number of bodies skipped because an external physics backend advanced them.",
	})
	skips, err = registerCounter(reg, skips, "sim_backend_skips_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		TicksTotal:       ticks,
		TickDuration:     duration,
		Vehicles:         vehicles,
		VehiclesByMode:   byMode,
		WaypointsReached: waypoints,
		BackendSkips:     skips,
	}, nil
}

// ObserveTick records one completed tick and its duration.
func (c *Collector) ObserveTick(d time.Duration) {
	if c == nil {
		return
	}
	if c.TicksTotal != nil {
		c.TicksTotal.Inc()
	}
	if c.TickDuration != nil {
		c.TickDuration.Observe(d.Seconds())
	}
}

// SetVehicleCount updates the total vehicle gauge.
func (c *Collector) SetVehicleCount(count int) {
	if c == nil || c.Vehicles == nil {
		return
	}
	c.Vehicles.Set(float64(count))
}

// SetModeCount updates the per-mode vehicle gauge.
func (c *Collector) SetModeCount(mode string, count int) {
	if c == nil || c.VehiclesByMode == nil {
		return
	}
	c.VehiclesByMode.WithLabelValues(mode).Set(float64(count))
}

// IncWaypointsReached increments the waypoint counter.
func (c *Collector) IncWaypointsReached() {
	if c == nil || c.WaypointsReached == nil {
		return
	}
	c.WaypointsReached.Inc()
}

// IncBackendSkips increments the backend skip counter.
func (c *Collector) IncBackendSkips() {
	if c == nil || c.BackendSkips == nil {
		return
	}
	c.BackendSkips.Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
