package core

import (
	"fmt"

	"github.com/signalsfoundry/coverage-simulator/model"
)

// ConstellationBuilder generates the satellites of a run from one shared set
// of orbit parameters. Satellites are spaced evenly in orbital phase;
// RAANSpreadDeg optionally fans their planes out across that many degrees of
// ascending-node offset (zero keeps the whole constellation in one plane).
type ConstellationBuilder struct {
	RAANSpreadDeg float64
}

// Build returns count satellites with stable, index-based IDs so repeated
// runs are reproducible. count must be at least 1.
func (b ConstellationBuilder) Build(count int, orbit model.OrbitParameters) ([]model.Satellite, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: satellite count must be >= 1, got %d", ErrInvalidConstellationSize, count)
	}
	if err := ValidateOrbitParameters(orbit); err != nil {
		return nil, err
	}

	sats := make([]model.Satellite, 0, count)
	for i := 0; i < count; i++ {
		sats = append(sats, model.Satellite{
			ID:             fmt.Sprintf("SAT-%d", i+1),
			Orbit:          orbit,
			PhaseOffsetDeg: float64(i) * 360.0 / float64(count),
			RAANOffsetDeg:  float64(i) * b.RAANSpreadDeg / float64(count),
		})
	}
	return sats, nil
}
