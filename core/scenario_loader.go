// core/scenario_loader.go
package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/coverage-simulator/model"
)

// internal JSON shapes – keep them unexported so we're free to evolve them.
type scenarioJSON struct {
	Mission         string     `json:"mission"` // optional preset: "imaging" | "weather" | "communications"
	Orbit           *orbitJSON `json:"orbit"`
	SatelliteCount  int        `json:"satellite_count"`
	RAANSpreadDeg   float64    `json:"raan_spread_deg"`
	HorizonSeconds  int        `json:"horizon_seconds"`
	StepSeconds     int        `json:"step_seconds"`
	MinElevationDeg *float64   `json:"min_elevation_deg"` // optional; defaults per mission, then to 10
	Sites           []siteJSON `json:"sites"`
}

type orbitJSON struct {
	AltitudeKm     *float64 `json:"altitude_km"` // optional when a mission preset is set
	InclinationDeg float64  `json:"inclination_deg"`
	RAANDeg        float64  `json:"raan_deg"`
}

type siteJSON struct {
	Name         string  `json:"name"`
	LatitudeDeg  float64 `json:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg"`
	Branch       string  `json:"branch"`
	Region       string  `json:"region"`
}

// LoadScenario reads a JSON scenario from r and resolves it into a runnable
// Scenario. A mission preset, when named, supplies the orbit altitude and
// elevation mask for fields the file leaves out; explicit fields always win.
//
// The loader deliberately fails only on JSON / structural problems (bad
// syntax, an unknown mission, an altitude outside the mission's band).
// Everything else – satellite counts, time grids, site coordinates – is
// checked once at pipeline entry, so hand-built and file-built scenarios go
// through the same validation.
func LoadScenario(r io.Reader) (Scenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return Scenario{}, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	sc := Scenario{
		SatelliteCount: payload.SatelliteCount,
		RAANSpreadDeg:  payload.RAANSpreadDeg,
		HorizonSeconds: payload.HorizonSeconds,
		StepSeconds:    payload.StepSeconds,
	}

	// 1) Mission preset, if any.
	var mission model.MissionProfile
	haveMission := false
	if payload.Mission != "" {
		var ok bool
		mission, ok = model.MissionProfileByName(payload.Mission)
		if !ok {
			return Scenario{}, fmt.Errorf("LoadScenario: unknown mission %q (known: %s)", payload.Mission, knownMissionNames())
		}
		haveMission = true
	}

	// 2) Orbit. The altitude may come from the file or from the preset.
	if payload.Orbit != nil {
		sc.Orbit.InclinationDeg = payload.Orbit.InclinationDeg
		sc.Orbit.RAANDeg = payload.Orbit.RAANDeg
		if payload.Orbit.AltitudeKm != nil {
			sc.Orbit.AltitudeKm = *payload.Orbit.AltitudeKm
		}
	}
	if sc.Orbit.AltitudeKm == 0 && haveMission {
		sc.Orbit.AltitudeKm = mission.DefaultAltitudeKm
	}
	if haveMission && !mission.InAltitudeRange(sc.Orbit.AltitudeKm) {
		return Scenario{}, fmt.Errorf("LoadScenario: %w: altitude %.0f km is outside the %s band [%.0f, %.0f] km",
			ErrInvalidOrbitParameters, sc.Orbit.AltitudeKm, mission.Name, mission.MinAltitudeKm, mission.MaxAltitudeKm)
	}

	// 3) Elevation mask: explicit value, then mission, then the engine default.
	switch {
	case payload.MinElevationDeg != nil:
		sc.MinElevationDeg = *payload.MinElevationDeg
	case haveMission:
		sc.MinElevationDeg = mission.MinElevationDeg
	default:
		sc.MinElevationDeg = DefaultMinElevationDeg
	}

	// 4) Sites. IDs are minted from file order so reruns of the same file
	// always name the same site the same way.
	sc.Sites = make([]model.Site, 0, len(payload.Sites))
	for i, js := range payload.Sites {
		sc.Sites = append(sc.Sites, model.Site{
			ID:     fmt.Sprintf("site-%03d", i+1),
			Name:   js.Name,
			LatDeg: js.LatitudeDeg,
			LonDeg: js.LongitudeDeg,
			Branch: js.Branch,
			Region: js.Region,
		})
	}

	return sc, nil
}

func knownMissionNames() string {
	names := ""
	for i, p := range model.MissionProfiles() {
		if i > 0 {
			names += ", "
		}
		names += p.Name
	}
	return names
}
