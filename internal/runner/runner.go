// Package runner executes coverage scenarios with logging, tracing, and
// metrics wrapped around the pure pipeline. The core package stays free of
// instrumentation; everything operational lives here.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/signalsfoundry/coverage-simulator/core"
	"github.com/signalsfoundry/coverage-simulator/internal/logging"
	"github.com/signalsfoundry/coverage-simulator/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/signalsfoundry/coverage-simulator/internal/runner"

// Runner drives the pipeline stage by stage so each stage gets its own span
// and duration metric.
type Runner struct {
	Pipeline *core.Pipeline
	Log      logging.Logger
	Metrics  *observability.PipelineCollector
}

// New builds a runner. A nil pipeline gets the default one, a nil logger is
// replaced by a noop, and metrics may stay nil when nothing is scraping.
func New(pipeline *core.Pipeline, log logging.Logger, metrics *observability.PipelineCollector) *Runner {
	if pipeline == nil {
		pipeline = core.NewPipeline()
	}
	if log == nil {
		log = logging.Noop()
	}
	return &Runner{Pipeline: pipeline, Log: log, Metrics: metrics}
}

// Run executes one scenario end to end. It mirrors core.Pipeline.Run stage
// for stage; the only difference is the instrumentation around each one.
func (r *Runner) Run(ctx context.Context, sc core.Scenario) (*core.RunResult, error) {
	ctx, log := logging.WithRunLogger(ctx, r.Log)
	runID := logging.RunIDFromContext(ctx)

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "coverage/run", trace.WithAttributes(
		attribute.String("run_id", runID),
		attribute.Int("scenario.satellites", sc.SatelliteCount),
		attribute.Int("scenario.sites", len(sc.Sites)),
		attribute.Int("scenario.horizon_seconds", sc.HorizonSeconds),
		attribute.Int("scenario.step_seconds", sc.StepSeconds),
	))
	defer span.End()

	log.Info(ctx, "starting coverage run",
		logging.Int("satellites", sc.SatelliteCount),
		logging.Int("sites", len(sc.Sites)),
		logging.Int("horizon_seconds", sc.HorizonSeconds),
		logging.Int("step_seconds", sc.StepSeconds),
		logging.Any("min_elevation_deg", sc.MinElevationDeg),
	)
	started := time.Now()

	if err := core.ValidateScenario(sc); err != nil {
		return nil, r.fail(ctx, log, span, err)
	}

	builder := r.Pipeline.Builder
	builder.RAANSpreadDeg = sc.RAANSpreadDeg
	_, done := r.startStage(ctx, tracer, "build")
	satellites, err := builder.Build(sc.SatelliteCount, sc.Orbit)
	done(err)
	if err != nil {
		return nil, r.fail(ctx, log, span, err)
	}

	stageCtx, done := r.startStage(ctx, tracer, "sample")
	tracks, err := r.Pipeline.Sampler.Sample(stageCtx, satellites, sc.HorizonSeconds, sc.StepSeconds)
	done(err)
	if err != nil {
		return nil, r.fail(ctx, log, span, err)
	}

	engine := *r.Pipeline.Engine
	engine.MinElevationDeg = sc.MinElevationDeg
	stageCtx, done = r.startStage(ctx, tracer, "evaluate")
	visibility, err := engine.Evaluate(stageCtx, tracks, sc.Sites)
	done(err)
	if err != nil {
		return nil, r.fail(ctx, log, span, err)
	}

	stageCtx, done = r.startStage(ctx, tracer, "summarize")
	reports, err := r.Pipeline.SummarizeSites(stageCtx, sc.Sites, visibility)
	done(err)
	if err != nil {
		return nil, r.fail(ctx, log, span, err)
	}

	steps := visibility.Grid.Len()
	totalPasses := 0
	for _, report := range reports {
		totalPasses += report.PassCount
	}

	r.Metrics.SetScenarioCounts(len(satellites), len(sc.Sites), steps)
	r.Metrics.AddVisibilitySamples(len(satellites) * len(sc.Sites) * steps)
	r.Metrics.AddPasses(totalPasses)
	r.Metrics.ObserveStage("total", time.Since(started).Seconds())
	r.Metrics.RecordRun(observability.OutcomeOK)

	span.SetAttributes(attribute.Int("coverage.passes", totalPasses))
	log.Info(ctx, "coverage run complete",
		logging.Int("passes", totalPasses),
		logging.Int("timesteps", steps),
		logging.Any("elapsed", time.Since(started)),
	)

	return &core.RunResult{
		Satellites: satellites,
		Tracks:     tracks,
		Visibility: visibility,
		Reports:    reports,
	}, nil
}

// startStage opens a child span for one pipeline stage and returns a closer
// that also feeds the stage duration histogram.
func (r *Runner) startStage(ctx context.Context, tracer trace.Tracer, name string) (context.Context, func(error)) {
	ctx, span := tracer.Start(ctx, "coverage/"+name)
	stageStart := time.Now()
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		r.Metrics.ObserveStage(name, time.Since(stageStart).Seconds())
	}
}

func (r *Runner) fail(ctx context.Context, log logging.Logger, span trace.Span, err error) error {
	span.RecordError(err)
	r.Metrics.RecordRun(outcomeForError(err))
	log.Error(ctx, "coverage run failed", logging.String("error", err.Error()))
	return err
}

func outcomeForError(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return observability.OutcomeCanceled
	case errors.Is(err, core.ErrInvalidOrbitParameters),
		errors.Is(err, core.ErrInvalidConstellationSize),
		errors.Is(err, core.ErrInvalidTimeHorizon),
		errors.Is(err, core.ErrMalformedSiteRecord):
		return observability.OutcomeInvalidInput
	default:
		return observability.OutcomeError
	}
}
