package core

import (
	"context"
	"sync"

	"github.com/signalsfoundry/coverage-simulator/model"
)

// Scenario bundles every input of a single coverage run. It is a plain value
// so callers can build one from a file, from flags, or by hand in tests.
type Scenario struct {
	Orbit          model.OrbitParameters
	SatelliteCount int

	// RAANSpreadDeg distributes satellite orbital planes across this many
	// degrees of right ascension. Zero keeps every satellite in the shared
	// plane given by Orbit.RAANDeg.
	RAANSpreadDeg float64

	HorizonSeconds int
	StepSeconds    int

	// MinElevationDeg is the elevation mask used for visibility. Use
	// NewScenario to start from the engine default.
	MinElevationDeg float64

	Sites []model.Site
}

// NewScenario returns a scenario pre-filled with the default elevation
// mask. Everything else starts zero and must be set by the caller.
func NewScenario() Scenario {
	return Scenario{MinElevationDeg: DefaultMinElevationDeg}
}

// RunResult carries every artifact of a completed run, from the generated
// constellation down to the per-site coverage reports.
type RunResult struct {
	Satellites []model.Satellite
	Tracks     *GroundTrackSet
	Visibility *VisibilityGrid
	Reports    []model.CoverageReport
}

// Pipeline wires the engine components into the standard run sequence:
// build the constellation, sample ground tracks, evaluate visibility,
// detect passes, and summarize coverage per site. A Pipeline holds no
// per-run state, so a single instance may serve concurrent runs.
type Pipeline struct {
	Builder   ConstellationBuilder
	Sampler   *GroundTrackSampler
	Engine    *VisibilityEngine
	Detector  PassDetector
	Analytics CoverageAnalytics

	// Workers bounds the per-site summary fan-out; 0 means one per CPU.
	Workers int
}

// NewPipeline assembles a pipeline with default components.
func NewPipeline() *Pipeline {
	return &Pipeline{
		Sampler: NewGroundTrackSampler(),
		Engine:  NewVisibilityEngine(),
	}
}

// Run executes the full pipeline for one scenario. All validation happens
// up front: once Run is past its input checks, the only remaining failure
// mode is context cancellation. Identical scenarios always produce
// identical results.
func (p *Pipeline) Run(ctx context.Context, sc Scenario) (*RunResult, error) {
	if err := ValidateScenario(sc); err != nil {
		return nil, err
	}

	builder := p.Builder
	builder.RAANSpreadDeg = sc.RAANSpreadDeg
	satellites, err := builder.Build(sc.SatelliteCount, sc.Orbit)
	if err != nil {
		return nil, err
	}

	tracks, err := p.Sampler.Sample(ctx, satellites, sc.HorizonSeconds, sc.StepSeconds)
	if err != nil {
		return nil, err
	}

	engine := *p.Engine
	engine.MinElevationDeg = sc.MinElevationDeg
	visibility, err := engine.Evaluate(ctx, tracks, sc.Sites)
	if err != nil {
		return nil, err
	}

	reports, err := p.SummarizeSites(ctx, sc.Sites, visibility)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		Satellites: satellites,
		Tracks:     tracks,
		Visibility: visibility,
		Reports:    reports,
	}, nil
}

// SummarizeSites runs pass detection and analytics for every site in
// parallel. Each worker owns one slot of the result slice, so the final
// report order matches the input site order no matter how the goroutines
// interleave.
func (p *Pipeline) SummarizeSites(ctx context.Context, sites []model.Site, grid *VisibilityGrid) ([]model.CoverageReport, error) {
	reports := make([]model.CoverageReport, len(sites))

	sem := make(chan struct{}, workerCount(p.Workers))
	var wg sync.WaitGroup

	for i := range sites {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			siteID := sites[idx].ID
			passes := p.Detector.Detect(grid, siteID)
			reports[idx] = p.Analytics.Summarize(siteID, passes, grid)
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
