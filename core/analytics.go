package core

import (
	"github.com/signalsfoundry/coverage-simulator/model"
)

// CoverageAnalytics reduces one site's passes and raw visibility column to
// the per-site coverage report.
type CoverageAnalytics struct{}

// Summarize computes the coverage report for one site. The gap metric spans
// the whole horizon: the stretch before the first pass and the stretch after
// the last pass both count, and a site with no passes at all reports the
// full horizon as its longest gap. The redundancy index is the fraction of
// covered timesteps that are covered by two or more satellites; it reads the
// raw grid rather than the pass list, so pass ordering cannot affect it.
func (CoverageAnalytics) Summarize(siteID string, passes []model.Pass, grid *VisibilityGrid) model.CoverageReport {
	report := model.CoverageReport{
		SiteID:    siteID,
		PassCount: len(passes),
		Passes:    passes,
	}

	horizon := grid.Grid.HorizonSeconds
	step := grid.Grid.StepSeconds
	if len(passes) == 0 {
		report.LongestGapSeconds = horizon
	} else {
		longest := passes[0].StartStep * step
		for i := 1; i < len(passes); i++ {
			if gap := (passes[i].StartStep - passes[i-1].EndStep) * step; gap > longest {
				longest = gap
			}
		}
		if tail := horizon - passes[len(passes)-1].EndStep*step; tail > longest {
			longest = tail
		}
		report.LongestGapSeconds = longest
	}

	if siteIdx, ok := grid.SiteIndex(siteID); ok {
		covered, redundant := 0, 0
		for stepIdx := 0; stepIdx < grid.Grid.Len(); stepIdx++ {
			n := grid.VisibleCount(siteIdx, stepIdx)
			if n >= 1 {
				covered++
			}
			if n >= 2 {
				redundant++
			}
		}
		if covered > 0 {
			report.RedundancyIndex = float64(redundant) / float64(covered)
		}
	}
	return report
}
