package model

import "strings"

// MissionProfile bundles the altitude envelope and visibility threshold
// typical for a class of missions. Profiles pre-fill scenario defaults; the
// engine itself accepts any valid altitude regardless of profile.
type MissionProfile struct {
	Name              string
	MinAltitudeKm     float64
	MaxAltitudeKm     float64
	DefaultAltitudeKm float64
	MinElevationDeg   float64
}

// Built-in mission profiles. Imaging constellations fly low and need steep
// viewing geometry; communications constellations fly higher and tolerate
// links close to the horizon.
var (
	MissionImaging = MissionProfile{
		Name:              "imaging",
		MinAltitudeKm:     450,
		MaxAltitudeKm:     600,
		DefaultAltitudeKm: 500,
		MinElevationDeg:   30,
	}
	MissionWeather = MissionProfile{
		Name:              "weather",
		MinAltitudeKm:     600,
		MaxAltitudeKm:     900,
		DefaultAltitudeKm: 800,
		MinElevationDeg:   15,
	}
	MissionCommunications = MissionProfile{
		Name:              "communications",
		MinAltitudeKm:     700,
		MaxAltitudeKm:     1200,
		DefaultAltitudeKm: 1000,
		MinElevationDeg:   10,
	}
)

// MissionProfiles returns the built-in profiles in display order.
func MissionProfiles() []MissionProfile {
	return []MissionProfile{MissionImaging, MissionWeather, MissionCommunications}
}

// MissionProfileByName looks up a built-in profile by name,
// case-insensitively. The second return value is false when no profile
// matches.
func MissionProfileByName(name string) (MissionProfile, bool) {
	for _, p := range MissionProfiles() {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return MissionProfile{}, false
}

// InAltitudeRange reports whether altitudeKm falls inside the profile's
// recommended envelope.
func (p MissionProfile) InAltitudeRange(altitudeKm float64) bool {
	return altitudeKm >= p.MinAltitudeKm && altitudeKm <= p.MaxAltitudeKm
}
