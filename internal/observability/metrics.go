package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcome labels for the coverage_runs_total counter.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeCanceled     = "canceled"
	OutcomeError        = "error"
)

// PipelineCollector bundles Prometheus metrics for the coverage pipeline and
// provides a ready-made /metrics handler.
type PipelineCollector struct {
	gatherer prometheus.Gatherer

	Runs           *prometheus.CounterVec
	StageDurations *prometheus.HistogramVec

	ScenarioSatellites prometheus.Gauge
	ScenarioSites      prometheus.Gauge
	ScenarioTimesteps  prometheus.Gauge

	VisibilitySamples prometheus.Counter
	Passes            prometheus.Counter
}

// NewPipelineCollector registers pipeline Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewPipelineCollector(reg prometheus.Registerer) (*PipelineCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "coverage_runs_total",
		Help: "Total number of coverage runs, labeled by outcome.",
	}, []string{"outcome"})
	runs, err := registerCounterVec(reg, runs, "coverage_runs_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "coverage_stage_duration_seconds",
		Help:    "Duration of each pipeline stage in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"stage"})
	durations, err = registerHistogramVec(reg, durations, "coverage_stage_duration_seconds")
	if err != nil {
		return nil, err
	}

	satellites, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scenario_satellites",
		Help: "Number of satellites in the most recent scenario.",
	}), "scenario_satellites")
	if err != nil {
		return nil, err
	}
	sites, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scenario_sites",
		Help: "Number of ground sites in the most recent scenario.",
	}), "scenario_sites")
	if err != nil {
		return nil, err
	}
	timesteps, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scenario_timesteps",
		Help: "Number of timesteps in the most recent scenario's grid.",
	}), "scenario_timesteps")
	if err != nil {
		return nil, err
	}

	samples, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "visibility_samples_total",
		Help: "Total number of (satellite, site, timestep) visibility samples computed.",
	}), "visibility_samples_total")
	if err != nil {
		return nil, err
	}
	passes, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "coverage_passes_total",
		Help: "Total number of passes detected across all runs.",
	}), "coverage_passes_total")
	if err != nil {
		return nil, err
	}

	return &PipelineCollector{
		gatherer:           gatherer,
		Runs:               runs,
		StageDurations:     durations,
		ScenarioSatellites: satellites,
		ScenarioSites:      sites,
		ScenarioTimesteps:  timesteps,
		VisibilitySamples:  samples,
		Passes:             passes,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PipelineCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// RecordRun counts one completed run under the given outcome label.
func (c *PipelineCollector) RecordRun(outcome string) {
	if c == nil || c.Runs == nil {
		return
	}
	c.Runs.WithLabelValues(outcome).Inc()
}

// ObserveStage records the duration of one pipeline stage.
func (c *PipelineCollector) ObserveStage(stage string, seconds float64) {
	if c == nil || c.StageDurations == nil {
		return
	}
	c.StageDurations.WithLabelValues(stage).Observe(seconds)
}

// SetScenarioCounts publishes the shape of the scenario being run so
// dashboards can correlate durations with input size.
func (c *PipelineCollector) SetScenarioCounts(satellites, sites, timesteps int) {
	if c == nil {
		return
	}
	if c.ScenarioSatellites != nil {
		c.ScenarioSatellites.Set(float64(satellites))
	}
	if c.ScenarioSites != nil {
		c.ScenarioSites.Set(float64(sites))
	}
	if c.ScenarioTimesteps != nil {
		c.ScenarioTimesteps.Set(float64(timesteps))
	}
}

// AddVisibilitySamples counts grid cells computed by the visibility engine.
func (c *PipelineCollector) AddVisibilitySamples(n int) {
	if c == nil || c.VisibilitySamples == nil || n <= 0 {
		return
	}
	c.VisibilitySamples.Add(float64(n))
}

// AddPasses counts passes produced by the detector.
func (c *PipelineCollector) AddPasses(n int) {
	if c == nil || c.Passes == nil || n <= 0 {
		return
	}
	c.Passes.Add(float64(n))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
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
