package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/signalsfoundry/coverage-simulator/model"
	"github.com/signalsfoundry/coverage-simulator/timegrid"
)

// ValidateOrbitParameters performs structural validation for an orbit.
func ValidateOrbitParameters(orbit model.OrbitParameters) error {
	if math.IsNaN(orbit.AltitudeKm) || math.IsInf(orbit.AltitudeKm, 0) || orbit.AltitudeKm <= 0 {
		return fmt.Errorf("%w: altitude_km must be positive and finite, got %v", ErrInvalidOrbitParameters, orbit.AltitudeKm)
	}
	if math.IsNaN(orbit.InclinationDeg) || orbit.InclinationDeg < 0 || orbit.InclinationDeg > 180 {
		return fmt.Errorf("%w: inclination_deg must be within [0, 180], got %v", ErrInvalidOrbitParameters, orbit.InclinationDeg)
	}
	if math.IsNaN(orbit.RAANDeg) || math.IsInf(orbit.RAANDeg, 0) {
		return fmt.Errorf("%w: raan_deg must be finite, got %v", ErrInvalidOrbitParameters, orbit.RAANDeg)
	}
	return nil
}

// ValidateSite checks a single site record for required fields and coordinate
// bounds.
func ValidateSite(site model.Site) error {
	if strings.TrimSpace(site.ID) == "" {
		return fmt.Errorf("%w: site id is required", ErrMalformedSiteRecord)
	}
	if math.IsNaN(site.LatDeg) || site.LatDeg < -90 || site.LatDeg > 90 {
		return fmt.Errorf("%w: site %q latitude_deg must be within [-90, 90], got %v", ErrMalformedSiteRecord, site.ID, site.LatDeg)
	}
	if math.IsNaN(site.LonDeg) || site.LonDeg < -180 || site.LonDeg > 180 {
		return fmt.Errorf("%w: site %q longitude_deg must be within [-180, 180], got %v", ErrMalformedSiteRecord, site.ID, site.LonDeg)
	}
	return nil
}

// ValidateScenario checks every input of a run before any computation
// starts: orbit parameters, constellation size, time horizon, and each site
// record. The first failure is returned; on success the scenario is safe to
// feed through the whole pipeline.
func ValidateScenario(sc Scenario) error {
	if sc.SatelliteCount < 1 {
		return fmt.Errorf("%w: satellite_count must be >= 1, got %d", ErrInvalidConstellationSize, sc.SatelliteCount)
	}
	if err := ValidateOrbitParameters(sc.Orbit); err != nil {
		return err
	}
	if _, err := timegrid.New(sc.HorizonSeconds, sc.StepSeconds); err != nil {
		return err
	}
	for i, site := range sc.Sites {
		if err := ValidateSite(site); err != nil {
			return fmt.Errorf("site %d: %w", i, err)
		}
	}
	return nil
}
