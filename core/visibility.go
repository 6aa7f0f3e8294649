package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/signalsfoundry/coverage-simulator/model"
	"github.com/signalsfoundry/coverage-simulator/timegrid"
)

// DefaultMinElevationDeg is the visibility mask applied when a scenario does
// not specify one. 10 degrees is a conservative but typical threshold for
// useful satellite-ground geometry.
const DefaultMinElevationDeg = 10.0

// VisibilityGrid is the dense boolean visibility table of one run: exactly
// one cell per (site, satellite, timestep) triple, stored as a flat arena so
// parallel per-site fills write disjoint contiguous ranges.
type VisibilityGrid struct {
	Grid         timegrid.Grid
	SatelliteIDs []string
	SiteIDs      []string

	cells    []bool
	siteIdxs map[string]int
}

func newVisibilityGrid(grid timegrid.Grid, satelliteIDs, siteIDs []string) *VisibilityGrid {
	siteIdxs := make(map[string]int, len(siteIDs))
	for i, id := range siteIDs {
		siteIdxs[id] = i
	}
	return &VisibilityGrid{
		Grid:         grid,
		SatelliteIDs: satelliteIDs,
		SiteIDs:      siteIDs,
		cells:        make([]bool, len(siteIDs)*len(satelliteIDs)*grid.Len()),
		siteIdxs:     siteIdxs,
	}
}

func (g *VisibilityGrid) index(siteIdx, satIdx, stepIdx int) int {
	return (siteIdx*len(g.SatelliteIDs)+satIdx)*g.Grid.Len() + stepIdx
}

// Visible reports whether satellite satIdx covers site siteIdx at stepIdx.
func (g *VisibilityGrid) Visible(siteIdx, satIdx, stepIdx int) bool {
	return g.cells[g.index(siteIdx, satIdx, stepIdx)]
}

func (g *VisibilityGrid) setVisible(siteIdx, satIdx, stepIdx int, visible bool) {
	g.cells[g.index(siteIdx, satIdx, stepIdx)] = visible
}

// VisibleCount returns how many satellites cover the site at one timestep.
func (g *VisibilityGrid) VisibleCount(siteIdx, stepIdx int) int {
	n := 0
	for satIdx := range g.SatelliteIDs {
		if g.Visible(siteIdx, satIdx, stepIdx) {
			n++
		}
	}
	return n
}

// AnyVisible reports whether at least one satellite covers the site at one
// timestep.
func (g *VisibilityGrid) AnyVisible(siteIdx, stepIdx int) bool {
	for satIdx := range g.SatelliteIDs {
		if g.Visible(siteIdx, satIdx, stepIdx) {
			return true
		}
	}
	return false
}

// SiteIndex resolves a site ID to its row index in the grid.
func (g *VisibilityGrid) SiteIndex(siteID string) (int, bool) {
	idx, ok := g.siteIdxs[siteID]
	return idx, ok
}

// Samples materialises the dense grid as a flat sample list, ordered by
// satellite, then site, then timestep.
func (g *VisibilityGrid) Samples() []model.VisibilitySample {
	out := make([]model.VisibilitySample, 0, len(g.cells))
	for satIdx, satID := range g.SatelliteIDs {
		for siteIdx, siteID := range g.SiteIDs {
			for step := 0; step < g.Grid.Len(); step++ {
				out = append(out, model.VisibilitySample{
					SatelliteID: satID,
					SiteID:      siteID,
					StepIndex:   step,
					Visible:     g.Visible(siteIdx, satIdx, step),
				})
			}
		}
	}
	return out
}

// VisibilityEngine decides, for every (satellite, site, timestep) triple,
// whether the site lies inside the satellite's ground footprint. Sites are
// evaluated in parallel, bounded by Workers (0 means one worker per CPU).
type VisibilityEngine struct {
	// MinElevationDeg is the minimum elevation angle (degrees) a satellite
	// must clear above a site's horizon to count as visible.
	MinElevationDeg float64

	Workers int
}

// NewVisibilityEngine returns an engine with the default elevation mask.
func NewVisibilityEngine() *VisibilityEngine {
	return &VisibilityEngine{MinElevationDeg: DefaultMinElevationDeg}
}

// Evaluate fills the dense visibility grid for the given ground tracks and
// sites. A site is visible to a satellite when the great-circle distance
// from the satellite's sub-point is within the satellite's footprint radius.
// Satellites whose footprint geometry has no solution at the engine's mask
// contribute no visibility at all.
func (e *VisibilityEngine) Evaluate(ctx context.Context, tracks *GroundTrackSet, sites []model.Site) (*VisibilityGrid, error) {
	if tracks == nil {
		return nil, fmt.Errorf("Evaluate: tracks are required")
	}
	for i, site := range sites {
		if err := ValidateSite(site); err != nil {
			return nil, fmt.Errorf("site %d: %w", i, err)
		}
	}

	steps := tracks.Grid.Len()
	radii := make([]float64, len(tracks.SatelliteIDs))
	for satIdx, satID := range tracks.SatelliteIDs {
		track := tracks.Tracks[satID]
		if len(track) != steps {
			return nil, fmt.Errorf("Evaluate: track %q has %d points, want %d", satID, len(track), steps)
		}
		radii[satIdx] = FootprintRadiusKm(track[0].AltitudeKm, e.MinElevationDeg)
	}

	siteIDs := make([]string, len(sites))
	for i, site := range sites {
		siteIDs[i] = site.ID
	}
	grid := newVisibilityGrid(tracks.Grid, tracks.SatelliteIDs, siteIDs)

	sem := make(chan struct{}, workerCount(e.Workers))
	var wg sync.WaitGroup

	for i := range sites {
		wg.Add(1)
		go func(siteIdx int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			site := sites[siteIdx]
			for satIdx, satID := range tracks.SatelliteIDs {
				if radii[satIdx] <= 0 {
					continue
				}
				track := tracks.Tracks[satID]
				for step := 0; step < steps; step++ {
					p := track[step]
					dist := HaversineKm(p.LatDeg, p.LonDeg, site.LatDeg, site.LonDeg)
					grid.setVisible(siteIdx, satIdx, step, dist <= radii[satIdx])
				}
			}
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return grid, nil
}
