package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/signalsfoundry/coverage-simulator/core"
	"github.com/signalsfoundry/coverage-simulator/internal/export"
	"github.com/signalsfoundry/coverage-simulator/internal/logging"
	"github.com/signalsfoundry/coverage-simulator/internal/observability"
	"github.com/signalsfoundry/coverage-simulator/internal/runner"
	"github.com/signalsfoundry/coverage-simulator/model"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a JSON scenario file")
	sitesPath := flag.String("sites", "configs/sites.csv", "path to a CSV of ground sites")
	mission := flag.String("mission", "", "mission preset: imaging | weather | communications")
	altitude := flag.Float64("alt", 550, "orbit altitude in km")
	inclination := flag.Float64("incl", 97, "orbit inclination in degrees")
	raan := flag.Float64("raan", 0, "right ascension of the ascending node in degrees")
	raanSpread := flag.Float64("raan-spread", 0, "degrees of RAAN to spread satellite planes across")
	satellites := flag.Int("sats", 1, "number of satellites")
	horizon := flag.Duration("horizon", 24*time.Hour, "simulation horizon")
	step := flag.Duration("step", 60*time.Second, "sampling step")
	minElevation := flag.Float64("min-elev", core.DefaultMinElevationDeg, "minimum elevation angle in degrees")
	includeTracks := flag.Bool("include-tracks", false, "include ground tracks in JSON output")
	format := flag.String("format", "table", "output format: table | json | csv")
	outPath := flag.String("out", "", "write output to a file instead of stdout")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics (disabled when empty)")
	workers := flag.Int("workers", 0, "parallel workers per stage (0 = one per CPU)")
	flag.Parse()

	// Pick up LOG_* and SIM_TRACING_* from a local .env when present.
	_ = godotenv.Load()

	log := logging.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, runID := logging.EnsureRunID(ctx)

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewPipelineCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	var metricsSrv *http.Server
	if *metricsAddr != "" {
		metricsSrv = serveMetrics(*metricsAddr, collector, log)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	sc, err := buildScenario(ctx, log, scenarioFlags{
		set:            set,
		scenarioPath:   *scenarioPath,
		sitesPath:      *sitesPath,
		mission:        *mission,
		altitudeKm:     *altitude,
		inclinationDeg: *inclination,
		raanDeg:        *raan,
		raanSpreadDeg:  *raanSpread,
		satellites:     *satellites,
		horizon:        *horizon,
		step:           *step,
		minElevation:   *minElevation,
	})
	if err != nil {
		log.Error(ctx, "failed to build scenario", logging.String("error", err.Error()))
		os.Exit(1)
	}

	pipeline := core.NewPipeline()
	pipeline.Workers = *workers
	pipeline.Sampler.Workers = *workers
	pipeline.Engine.Workers = *workers

	result, err := runner.New(pipeline, log, collector).Run(ctx, sc)
	if err != nil {
		// The runner already logged the failure with its run_id.
		os.Exit(1)
	}

	doc := export.NewDocument(runID, sc, result, *includeTracks)
	if err := writeOutput(doc, *format, *outPath); err != nil {
		log.Error(ctx, "failed to write output", logging.String("error", err.Error()))
		os.Exit(1)
	}

	if metricsSrv != nil {
		// One-shot run, but a scrape endpoint was asked for: stay up until
		// interrupted so Prometheus can collect the run's metrics.
		log.Info(ctx, "run complete; serving metrics until interrupted", logging.String("addr", *metricsAddr))
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

// scenarioFlags carries everything buildScenario needs to resolve the final
// scenario. Precedence is: explicit flags, then the scenario file, then the
// mission preset, then built-in defaults.
type scenarioFlags struct {
	set map[string]bool

	scenarioPath   string
	sitesPath      string
	mission        string
	altitudeKm     float64
	inclinationDeg float64
	raanDeg        float64
	raanSpreadDeg  float64
	satellites     int
	horizon        time.Duration
	step           time.Duration
	minElevation   float64
}

func buildScenario(ctx context.Context, log logging.Logger, f scenarioFlags) (core.Scenario, error) {
	var sc core.Scenario

	if f.scenarioPath != "" {
		file, err := os.Open(f.scenarioPath)
		if err != nil {
			return core.Scenario{}, fmt.Errorf("open scenario %q: %w", f.scenarioPath, err)
		}
		defer file.Close()

		sc, err = core.LoadScenario(file)
		if err != nil {
			return core.Scenario{}, err
		}
		if f.set["mission"] {
			log.Warn(ctx, "ignoring -mission; the scenario file decides its own mission", logging.String("scenario", f.scenarioPath))
		}
	} else {
		sc = core.NewScenario()
		sc.Orbit = model.OrbitParameters{AltitudeKm: f.altitudeKm, InclinationDeg: f.inclinationDeg, RAANDeg: f.raanDeg}
		sc.SatelliteCount = f.satellites
		sc.RAANSpreadDeg = f.raanSpreadDeg
		sc.HorizonSeconds = int(f.horizon / time.Second)
		sc.StepSeconds = int(f.step / time.Second)
		sc.MinElevationDeg = f.minElevation

		if f.mission != "" {
			profile, ok := model.MissionProfileByName(f.mission)
			if !ok {
				return core.Scenario{}, fmt.Errorf("unknown mission %q", f.mission)
			}
			if !f.set["alt"] {
				sc.Orbit.AltitudeKm = profile.DefaultAltitudeKm
			} else if !profile.InAltitudeRange(sc.Orbit.AltitudeKm) {
				return core.Scenario{}, fmt.Errorf("%w: altitude %.0f km is outside the %s band [%.0f, %.0f] km",
					core.ErrInvalidOrbitParameters, sc.Orbit.AltitudeKm, profile.Name, profile.MinAltitudeKm, profile.MaxAltitudeKm)
			}
			if !f.set["min-elev"] {
				sc.MinElevationDeg = profile.MinElevationDeg
			}
		}
	}

	// Explicit flags override whatever the file decided.
	if f.scenarioPath != "" {
		if f.set["alt"] {
			sc.Orbit.AltitudeKm = f.altitudeKm
		}
		if f.set["incl"] {
			sc.Orbit.InclinationDeg = f.inclinationDeg
		}
		if f.set["raan"] {
			sc.Orbit.RAANDeg = f.raanDeg
		}
		if f.set["raan-spread"] {
			sc.RAANSpreadDeg = f.raanSpreadDeg
		}
		if f.set["sats"] {
			sc.SatelliteCount = f.satellites
		}
		if f.set["horizon"] {
			sc.HorizonSeconds = int(f.horizon / time.Second)
		}
		if f.set["step"] {
			sc.StepSeconds = int(f.step / time.Second)
		}
		if f.set["min-elev"] {
			sc.MinElevationDeg = f.minElevation
		}
	}

	// Sites come from the CSV unless the scenario file already provides
	// them and the flag was left at its default.
	if f.set["sites"] || len(sc.Sites) == 0 {
		file, err := os.Open(f.sitesPath)
		if err != nil {
			return core.Scenario{}, fmt.Errorf("open sites %q: %w", f.sitesPath, err)
		}
		defer file.Close()

		sites, err := core.LoadSites(file)
		if err != nil {
			return core.Scenario{}, err
		}
		sc.Sites = sites
	}

	return sc, nil
}

func writeOutput(doc *export.Document, format, outPath string) error {
	var w io.Writer = os.Stdout
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %q: %w", outPath, err)
		}
		defer file.Close()
		w = file
	}

	switch format {
	case "json":
		return doc.WriteJSON(w)
	case "csv":
		return doc.WriteSummaryCSV(w)
	case "table":
		_, err := io.WriteString(w, export.RenderSummary(doc))
		return err
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or csv)", format)
	}
}

func serveMetrics(addr string, collector *observability.PipelineCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
