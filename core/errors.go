package core

import (
	"errors"

	"github.com/signalsfoundry/coverage-simulator/timegrid"
)

// Validation failures surfaced at pipeline entry. Every input is checked
// before any sampling begins, so a run either starts from a fully valid
// scenario or fails without producing partial output. Numerical edge cases
// (footprints with no geometric solution, sites that are never covered) are
// deliberately NOT errors; they yield well-defined degenerate results.
var (
	ErrInvalidOrbitParameters   = errors.New("invalid orbit parameters")
	ErrInvalidConstellationSize = errors.New("invalid constellation size")
	ErrMalformedSiteRecord      = errors.New("malformed site record")

	// ErrInvalidTimeHorizon is owned by the timegrid package; it is aliased
	// here so callers can match every validation failure against core
	// sentinels.
	ErrInvalidTimeHorizon = timegrid.ErrInvalidTimeHorizon
)
