package core

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/signalsfoundry/coverage-simulator/model"
	"github.com/signalsfoundry/coverage-simulator/timegrid"
)

// GroundTrackSet holds the sampled sub-point series of every satellite over
// one time grid. Tracks are keyed by satellite ID; SatelliteIDs preserves
// build order so consumers can iterate deterministically.
type GroundTrackSet struct {
	Grid         timegrid.Grid
	SatelliteIDs []string
	Tracks       map[string][]model.SubPoint
}

// GroundTrackSampler drives the orbit model across a discretized horizon,
// producing one sub-point series per satellite. Satellites are sampled in
// parallel, bounded by Workers (0 means one worker per CPU); each satellite
// writes into its own slot, so output is identical regardless of scheduling.
type GroundTrackSampler struct {
	Workers int
}

// NewGroundTrackSampler returns a sampler with default parallelism.
func NewGroundTrackSampler() *GroundTrackSampler {
	return &GroundTrackSampler{}
}

// Sample computes the ground track of every satellite on the grid defined by
// horizonSeconds and stepSeconds. All orbits are validated before any
// sampling starts. The result is a pure function of the inputs; calling
// Sample twice with the same arguments yields identical series.
func (s *GroundTrackSampler) Sample(ctx context.Context, sats []model.Satellite, horizonSeconds, stepSeconds int) (*GroundTrackSet, error) {
	grid, err := timegrid.New(horizonSeconds, stepSeconds)
	if err != nil {
		return nil, err
	}

	// Validate every orbit up front so a bad satellite fails the whole call
	// before any track is produced.
	models := make([]*OrbitModel, len(sats))
	seen := make(map[string]struct{}, len(sats))
	for i, sat := range sats {
		if _, dup := seen[sat.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate satellite id %q", ErrInvalidConstellationSize, sat.ID)
		}
		seen[sat.ID] = struct{}{}

		m, err := NewOrbitModel(sat.Orbit)
		if err != nil {
			return nil, fmt.Errorf("satellite %q: %w", sat.ID, err)
		}
		models[i] = m
	}

	results := make([][]model.SubPoint, len(sats))
	sem := make(chan struct{}, workerCount(s.Workers))
	var wg sync.WaitGroup

	for i := range sats {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			track := make([]model.SubPoint, grid.Len())
			for step := 0; step < grid.Len(); step++ {
				track[step] = models[idx].Position(sats[idx], grid.TimeAt(step))
			}
			results[idx] = track
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := &GroundTrackSet{
		Grid:         grid,
		SatelliteIDs: make([]string, len(sats)),
		Tracks:       make(map[string][]model.SubPoint, len(sats)),
	}
	for i, sat := range sats {
		set.SatelliteIDs[i] = sat.ID
		set.Tracks[sat.ID] = results[i]
	}
	return set, nil
}

// workerCount resolves a Workers field to a concrete bound.
func workerCount(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}
