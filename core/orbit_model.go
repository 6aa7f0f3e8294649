package core

import (
	"math"

	"github.com/signalsfoundry/coverage-simulator/model"
)

const (
	// earthMuKm3PerS2 is the standard gravitational parameter of the Earth.
	earthMuKm3PerS2 = 398600.4418

	// earthRotationDegPerSec is the eastward rotation rate used when
	// projecting orbits onto the rotating surface (360 degrees per day).
	earthRotationDegPerSec = 360.0 / 86400.0

	degToRad = math.Pi / 180.0
	radToDeg = 180.0 / math.Pi
)

// OrbitModel propagates an idealized circular orbit and projects it onto the
// rotating Earth as a geodetic ground track. It is a pure function of its
// inputs: the same (satellite, time) pair always yields the same sub-point.
type OrbitModel struct {
	Orbit model.OrbitParameters

	periodSeconds float64
}

// NewOrbitModel validates the orbit parameters and returns a model for them.
func NewOrbitModel(orbit model.OrbitParameters) (*OrbitModel, error) {
	if err := ValidateOrbitParameters(orbit); err != nil {
		return nil, err
	}
	return &OrbitModel{
		Orbit:         orbit,
		periodSeconds: OrbitalPeriodSeconds(orbit.AltitudeKm),
	}, nil
}

// OrbitalPeriodSeconds derives the Keplerian period of a circular orbit at
// the given altitude above the mean Earth radius.
func OrbitalPeriodSeconds(altitudeKm float64) float64 {
	r := EarthRadiusKm + altitudeKm
	return 2 * math.Pi * math.Sqrt(r*r*r/earthMuKm3PerS2)
}

// PeriodSeconds returns the orbital period for the model's altitude.
func (m *OrbitModel) PeriodSeconds() float64 {
	return m.periodSeconds
}

// Position returns the sub-satellite point at tSeconds after the scenario
// epoch. The satellite's phase offset advances it along the orbit; its RAAN
// offset rotates the orbital plane. Longitude accounts for the Earth turning
// eastward underneath the orbit, so ground tracks drift westward on each
// revolution.
func (m *OrbitModel) Position(sat model.Satellite, tSeconds int) model.SubPoint {
	t := float64(tSeconds)
	thetaDeg := math.Mod(sat.PhaseOffsetDeg+360.0*t/m.periodSeconds, 360.0)
	theta := thetaDeg * degToRad
	incl := m.Orbit.InclinationDeg * degToRad

	// Latitude of the sub-point follows the inclination-weighted sine of the
	// orbital angle. The argument is clamped so polar orbits can never
	// produce |lat| > 90 through rounding.
	sinLat := math.Sin(incl) * math.Sin(theta)
	if sinLat > 1 {
		sinLat = 1
	} else if sinLat < -1 {
		sinLat = -1
	}
	latDeg := math.Asin(sinLat) * radToDeg

	// Longitude in the non-rotating frame, then corrected for Earth
	// rotation during the elapsed time.
	lonInertialDeg := math.Atan2(math.Cos(incl)*math.Sin(theta), math.Cos(theta)) * radToDeg
	lonDeg := m.Orbit.RAANDeg + sat.RAANOffsetDeg + lonInertialDeg - earthRotationDegPerSec*t

	return model.SubPoint{
		TSeconds:   tSeconds,
		LatDeg:     latDeg,
		LonDeg:     normalizeLonDeg(lonDeg),
		AltitudeKm: m.Orbit.AltitudeKm,
	}
}

// normalizeLonDeg wraps a longitude into [-180, 180).
func normalizeLonDeg(lon float64) float64 {
	lon = math.Mod(lon+180.0, 360.0)
	if lon < 0 {
		lon += 360.0
	}
	return lon - 180.0
}
