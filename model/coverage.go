package model

// SubPoint is the geodetic point directly beneath a satellite (nadir
// projection) at a simulation timestamp. Read-only once computed.
type SubPoint struct {
	TSeconds   int // simulation seconds from epoch
	LatDeg     float64
	LonDeg     float64
	AltitudeKm float64
}

// VisibilitySample records whether one satellite covers one site at one
// timestep. The engine produces a dense grid: exactly one sample per
// (satellite, site, timestep) triple.
type VisibilitySample struct {
	SatelliteID string
	SiteID      string
	StepIndex   int
	Visible     bool
}

// Pass is a maximal run of consecutive timesteps during which a site sees at
// least one satellite. StartStep and EndStep are inclusive timestep indices.
// SatelliteIDs lists every satellite visible at any timestep of the interval,
// in constellation order.
type Pass struct {
	SiteID          string
	StartStep       int
	EndStep         int
	DurationSeconds int
	SatelliteIDs    []string
}

// CoverageReport summarises coverage quality for a single site over the
// simulated horizon. RedundancyIndex is the fraction of covered timesteps
// during which two or more satellites were simultaneously visible; it is 0
// for a site that is never covered.
type CoverageReport struct {
	SiteID            string
	PassCount         int
	LongestGapSeconds int
	RedundancyIndex   float64
	Passes            []Pass
}
