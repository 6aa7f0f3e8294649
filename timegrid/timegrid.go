// Package timegrid defines the uniform sampling axis shared by every stage of
// a coverage run. All stages index the same grid, so a timestep index means
// the same instant everywhere in the pipeline.
package timegrid

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeHorizon reports a horizon/step combination that cannot form a
// valid sampling grid.
var ErrInvalidTimeHorizon = errors.New("invalid time horizon")

// Grid is an immutable, uniformly spaced sequence of timestamps covering
// [0, HorizonSeconds]. Timestamps are i*StepSeconds for i in [0, Len());
// the final timestamp is the largest multiple of StepSeconds that does not
// exceed the horizon.
type Grid struct {
	HorizonSeconds int
	StepSeconds    int
}

// New validates the horizon and step and returns the resulting grid.
// StepSeconds must be positive and HorizonSeconds must be at least one step.
func New(horizonSeconds, stepSeconds int) (Grid, error) {
	if stepSeconds <= 0 {
		return Grid{}, fmt.Errorf("%w: step_seconds must be positive, got %d", ErrInvalidTimeHorizon, stepSeconds)
	}
	if horizonSeconds < stepSeconds {
		return Grid{}, fmt.Errorf("%w: horizon_seconds (%d) must be >= step_seconds (%d)", ErrInvalidTimeHorizon, horizonSeconds, stepSeconds)
	}
	return Grid{HorizonSeconds: horizonSeconds, StepSeconds: stepSeconds}, nil
}

// Len returns the number of timesteps, inclusive of t=0.
func (g Grid) Len() int {
	if g.StepSeconds <= 0 {
		return 0
	}
	return g.HorizonSeconds/g.StepSeconds + 1
}

// TimeAt returns the timestamp in seconds at timestep index i.
func (g Grid) TimeAt(i int) int {
	return i * g.StepSeconds
}

// Times materialises the full timestamp sequence.
func (g Grid) Times() []int {
	out := make([]int, g.Len())
	for i := range out {
		out[i] = g.TimeAt(i)
	}
	return out
}
