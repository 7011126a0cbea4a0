// Package observability bundles the simulator's Prometheus metrics and
// OpenTelemetry tracing setup.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SimCollector bundles Prometheus metrics for the simulation core.
type SimCollector struct {
	gatherer prometheus.Gatherer

	TicksTotal    prometheus.Counter
	TickDuration  prometheus.Histogram
	UnitsByState  *prometheus.GaugeVec
	SinkingsTotal prometheus.Counter
	TimeRate      prometheus.Gauge
}

// NewSimCollector registers simulation Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when
// nil.
func NewSimCollector(reg prometheus.Registerer) (*SimCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	ticks, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_ticks_total",
		Help: "Cumulative number of simulation ticks processed.",
	}), "sim_ticks_total")
	if err != nil {
		return nil, err
	}

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sim_tick_duration_seconds",
		Help:    "Wall-clock duration of one full tick, clock advance through unit fan-out.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	})
	duration, err = registerHistogram(reg, duration, "sim_tick_duration_seconds")
	if err != nil {
		return nil, err
	}

	units := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sim_units",
		Help: "Current number of registered units, labeled by lifecycle state.",
	}, []string{"state"})
	units, err = registerGaugeVec(reg, units, "sim_units")
	if err != nil {
		return nil, err
	}

	sinkings, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sim_sinkings_total",
		Help: "Cumulative number of units that have started sinking.",
	}), "sim_sinkings_total")
	if err != nil {
		return nil, err
	}

	rate, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sim_time_rate_seconds",
		Help: "Game seconds advanced per tick.",
	}), "sim_time_rate_seconds")
	if err != nil {
		return nil, err
	}

	return &SimCollector{
		gatherer:      gatherer,
		TicksTotal:    ticks,
		TickDuration:  duration,
		UnitsByState:  units,
		SinkingsTotal: sinkings,
		TimeRate:      rate,
	}, nil
}

// ObserveTick records one completed tick and its duration.
func (c *SimCollector) ObserveTick(d time.Duration) {
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

// SetUnitCount updates the gauge for one lifecycle state.
func (c *SimCollector) SetUnitCount(state string, count int) {
	if c == nil || c.UnitsByState == nil {
		return
	}
	c.UnitsByState.WithLabelValues(state).Set(float64(count))
}

// IncSinkings increments the sinking counter.
func (c *SimCollector) IncSinkings() {
	if c == nil || c.SinkingsTotal == nil {
		return
	}
	c.SinkingsTotal.Inc()
}

// SetTimeRate records the configured game-seconds-per-tick rate.
func (c *SimCollector) SetTimeRate(seconds float64) {
	if c == nil || c.TimeRate == nil {
		return
	}
	c.TimeRate.Set(seconds)
}

// Handler exposes a ready-to-use /metrics handler.
func (c *SimCollector) Handler() http.Handler {
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
