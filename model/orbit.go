package model

// OrbitParameters describes an idealized circular orbit around the Earth.
// One set of parameters is shared by every satellite in a constellation;
// per-satellite variation is expressed through offsets on Satellite.
type OrbitParameters struct {
	AltitudeKm     float64
	InclinationDeg float64
	RAANDeg        float64 // right ascension of the ascending node, 0-360
}

// Satellite is a single constellation member. PhaseOffsetDeg spaces the
// satellite along the shared orbit; RAANOffsetDeg rotates its orbital plane
// relative to the constellation's base RAAN. Both are fixed for the lifetime
// of a simulation run.
type Satellite struct {
	ID             string
	Orbit          OrbitParameters
	PhaseOffsetDeg float64
	RAANOffsetDeg  float64
}
