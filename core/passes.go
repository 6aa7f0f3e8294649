package core

import (
	"github.com/signalsfoundry/coverage-simulator/model"
)

// PassDetector collapses one site's column of the visibility grid into
// discrete passes. A pass is a maximal run of consecutive timesteps during
// which at least one satellite covers the site; which satellite provides the
// coverage may change mid-pass without closing it.
type PassDetector struct{}

// Detect scans the site's timeline in step order and returns its passes,
// ordered by start time. Passes never overlap and never touch: adjacent
// covered steps always merge into the same pass. An unknown site ID yields
// no passes.
func (PassDetector) Detect(grid *VisibilityGrid, siteID string) []model.Pass {
	siteIdx, ok := grid.SiteIndex(siteID)
	if !ok {
		return nil
	}

	var passes []model.Pass
	start := -1
	for step := 0; step < grid.Grid.Len(); step++ {
		if grid.AnyVisible(siteIdx, step) {
			if start < 0 {
				start = step
			}
			continue
		}
		if start >= 0 {
			passes = append(passes, buildPass(grid, siteIdx, siteID, start, step-1))
			start = -1
		}
	}
	// A pass still open at the end of the horizon closes on the final step.
	if start >= 0 {
		passes = append(passes, buildPass(grid, siteIdx, siteID, start, grid.Grid.Len()-1))
	}
	return passes
}

func buildPass(grid *VisibilityGrid, siteIdx int, siteID string, startStep, endStep int) model.Pass {
	var satIDs []string
	for satIdx, satID := range grid.SatelliteIDs {
		for step := startStep; step <= endStep; step++ {
			if grid.Visible(siteIdx, satIdx, step) {
				satIDs = append(satIDs, satID)
				break
			}
		}
	}

	// A single-step pass still represents one sampling interval of contact,
	// not zero seconds.
	steps := endStep - startStep
	if steps == 0 {
		steps = 1
	}

	return model.Pass{
		SiteID:          siteID,
		StartStep:       startStep,
		EndStep:         endStep,
		DurationSeconds: steps * grid.Grid.StepSeconds,
		SatelliteIDs:    satIDs,
	}
}
