package core

import (
	"math"
	"testing"
)

func TestHaversineKnownDistances(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolKm                  float64
	}{
		// One degree of longitude along the equator.
		{"equatorial degree", 0, 0, 0, 1, 111.195, 0.1},
		// One degree of latitude along a meridian.
		{"meridian degree", 0, 0, 1, 0, 111.195, 0.1},
		{"identical points", 33.92, -118.4, 33.92, -118.4, 0, 1e-9},
		// Antipodal points span half the Earth circumference.
		{"antipodes", 0, 0, 0, 180, math.Pi * EarthRadiusKm, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := HaversineKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.wantKm) > tc.tolKm {
				t.Fatalf("HaversineKm = %.3f km, want %.3f km (±%.3f)", got, tc.wantKm, tc.tolKm)
			}
		})
	}
}

func TestHaversineIsSymmetric(t *testing.T) {
	ab := HaversineKm(38.87, -77.02, 21.35, -157.94)
	ba := HaversineKm(21.35, -157.94, 38.87, -77.02)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestFootprintRadius(t *testing.T) {
	// 550 km altitude with a 10 degree mask: cap angle ≈ 14.97 degrees,
	// radius ≈ 1664 km.
	got := FootprintRadiusKm(550, 10)
	if got < 1660 || got > 1669 {
		t.Fatalf("FootprintRadiusKm(550, 10) = %.1f km, want ≈ 1664 km", got)
	}

	// A steeper mask shrinks the footprint.
	steep := FootprintRadiusKm(550, 30)
	if steep >= got {
		t.Fatalf("footprint should shrink as elevation threshold rises: %v >= %v", steep, got)
	}

	// Higher satellites see more ground at the same mask.
	high := FootprintRadiusKm(1000, 10)
	if high <= got {
		t.Fatalf("footprint should grow with altitude: %v <= %v", high, got)
	}
}

func TestFootprintRadiusDegenerateGeometry(t *testing.T) {
	if r := FootprintRadiusKm(0, 10); r != 0 {
		t.Fatalf("zero altitude should have no footprint, got %v", r)
	}
	if r := FootprintRadiusKm(-50, 10); r != 0 {
		t.Fatalf("negative altitude should have no footprint, got %v", r)
	}
	// A mask at or beyond zenith admits no visibility cap.
	if r := FootprintRadiusKm(550, 90); r != 0 {
		t.Fatalf("90 degree mask should have no footprint, got %v", r)
	}
	// Below-horizon thresholds behave like a horizon mask.
	if r := FootprintRadiusKm(550, -15); r != FootprintRadiusKm(550, 0) {
		t.Fatalf("negative mask should clamp to horizon, got %v", r)
	}
}
