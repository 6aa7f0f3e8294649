package core

import (
	"errors"
	"math"
	"testing"

	"github.com/signalsfoundry/coverage-simulator/model"
)

func TestOrbitalPeriodFromAltitude(t *testing.T) {
	// A 550 km circular orbit has a Keplerian period just over 95.5 minutes.
	period := OrbitalPeriodSeconds(550)
	if period < 5725 || period > 5735 {
		t.Fatalf("OrbitalPeriodSeconds(550) = %.1f s, want ≈ 5730 s", period)
	}

	// Higher orbits are slower.
	if OrbitalPeriodSeconds(800) <= period {
		t.Fatalf("period should grow with altitude")
	}
}

func TestNewOrbitModelValidation(t *testing.T) {
	cases := []struct {
		name  string
		orbit model.OrbitParameters
	}{
		{"zero altitude", model.OrbitParameters{AltitudeKm: 0, InclinationDeg: 97}},
		{"negative altitude", model.OrbitParameters{AltitudeKm: -100, InclinationDeg: 97}},
		{"inclination above 180", model.OrbitParameters{AltitudeKm: 550, InclinationDeg: 200}},
		{"negative inclination", model.OrbitParameters{AltitudeKm: 550, InclinationDeg: -5}},
		{"NaN raan", model.OrbitParameters{AltitudeKm: 550, InclinationDeg: 97, RAANDeg: math.NaN()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewOrbitModel(tc.orbit); !errors.Is(err, ErrInvalidOrbitParameters) {
				t.Fatalf("NewOrbitModel(%+v) error = %v, want ErrInvalidOrbitParameters", tc.orbit, err)
			}
		})
	}
}

func TestPositionStartsAtAscendingNode(t *testing.T) {
	orbit := model.OrbitParameters{AltitudeKm: 550, InclinationDeg: 97}
	m, err := NewOrbitModel(orbit)
	if err != nil {
		t.Fatalf("NewOrbitModel: %v", err)
	}

	sat := model.Satellite{ID: "SAT-1", Orbit: orbit}
	p := m.Position(sat, 0)
	if math.Abs(p.LatDeg) > 1e-9 {
		t.Fatalf("latitude at t=0 with zero phase = %v, want 0", p.LatDeg)
	}
	if math.Abs(p.LonDeg) > 1e-9 {
		t.Fatalf("longitude at t=0 with zero RAAN = %v, want 0", p.LonDeg)
	}
	if p.AltitudeKm != orbit.AltitudeKm {
		t.Fatalf("sub-point altitude = %v, want %v", p.AltitudeKm, orbit.AltitudeKm)
	}
}

func TestPositionCoordinateBounds(t *testing.T) {
	inclinations := []float64{0, 45, 90, 97, 180}
	for _, incl := range inclinations {
		orbit := model.OrbitParameters{AltitudeKm: 550, InclinationDeg: incl, RAANDeg: 120}
		m, err := NewOrbitModel(orbit)
		if err != nil {
			t.Fatalf("NewOrbitModel(incl=%v): %v", incl, err)
		}

		sat := model.Satellite{ID: "SAT-1", Orbit: orbit, PhaseOffsetDeg: 33}
		for tSec := 0; tSec <= 86400; tSec += 60 {
			p := m.Position(sat, tSec)
			if p.LatDeg < -90 || p.LatDeg > 90 {
				t.Fatalf("incl=%v t=%d: latitude %v outside [-90, 90]", incl, tSec, p.LatDeg)
			}
			if p.LonDeg < -180 || p.LonDeg >= 180 {
				t.Fatalf("incl=%v t=%d: longitude %v outside [-180, 180)", incl, tSec, p.LonDeg)
			}
		}
	}
}

func TestPositionReachesInclinationLatitude(t *testing.T) {
	// A 97 degree orbit peaks at |lat| = 83 degrees.
	orbit := model.OrbitParameters{AltitudeKm: 550, InclinationDeg: 97}
	m, err := NewOrbitModel(orbit)
	if err != nil {
		t.Fatalf("NewOrbitModel: %v", err)
	}

	sat := model.Satellite{ID: "SAT-1", Orbit: orbit}
	maxLat := 0.0
	for tSec := 0; tSec <= 6000; tSec += 10 {
		if lat := math.Abs(m.Position(sat, tSec).LatDeg); lat > maxLat {
			maxLat = lat
		}
	}
	if maxLat < 82 || maxLat > 84 {
		t.Fatalf("max |latitude| over one orbit = %v, want ≈ 83", maxLat)
	}
}

func TestPositionGroundTrackDriftsWestward(t *testing.T) {
	orbit := model.OrbitParameters{AltitudeKm: 550, InclinationDeg: 97}
	m, err := NewOrbitModel(orbit)
	if err != nil {
		t.Fatalf("NewOrbitModel: %v", err)
	}

	sat := model.Satellite{ID: "SAT-1", Orbit: orbit}
	period := int(math.Round(m.PeriodSeconds()))
	start := m.Position(sat, 0)
	next := m.Position(sat, period)

	// After one revolution the satellite is back over (almost) the same
	// latitude, but the Earth has turned east underneath it by about
	// 24 degrees.
	if math.Abs(next.LatDeg-start.LatDeg) > 0.2 {
		t.Fatalf("latitude after one period = %v, want ≈ %v", next.LatDeg, start.LatDeg)
	}
	drift := next.LonDeg - start.LonDeg
	wantDrift := -earthRotationDegPerSec * m.PeriodSeconds()
	if math.Abs(drift-wantDrift) > 0.2 {
		t.Fatalf("longitude drift after one period = %v, want ≈ %v", drift, wantDrift)
	}
}

func TestPositionPhaseOffsetAdvancesAlongOrbit(t *testing.T) {
	orbit := model.OrbitParameters{AltitudeKm: 550, InclinationDeg: 97}
	m, err := NewOrbitModel(orbit)
	if err != nil {
		t.Fatalf("NewOrbitModel: %v", err)
	}

	// A satellite phased half an orbit ahead starts at the descending node.
	sat := model.Satellite{ID: "SAT-2", Orbit: orbit, PhaseOffsetDeg: 180}
	p := m.Position(sat, 0)
	if math.Abs(p.LatDeg) > 1e-6 {
		t.Fatalf("latitude at descending node = %v, want ≈ 0", p.LatDeg)
	}
	if math.Abs(math.Abs(p.LonDeg)-180) > 1e-3 {
		t.Fatalf("longitude at descending node = %v, want ≈ ±180", p.LonDeg)
	}
}

func TestPositionIsDeterministic(t *testing.T) {
	orbit := model.OrbitParameters{AltitudeKm: 725, InclinationDeg: 82.5, RAANDeg: 41}
	m, err := NewOrbitModel(orbit)
	if err != nil {
		t.Fatalf("NewOrbitModel: %v", err)
	}

	sat := model.Satellite{ID: "SAT-1", Orbit: orbit, PhaseOffsetDeg: 17.3, RAANOffsetDeg: 4.4}
	for tSec := 0; tSec < 7200; tSec += 600 {
		a := m.Position(sat, tSec)
		b := m.Position(sat, tSec)
		if a != b {
			t.Fatalf("Position not deterministic at t=%d: %+v vs %+v", tSec, a, b)
		}
	}
}
