package core

import "math"

// EarthRadiusKm is the mean Earth radius used for all spherical-Earth
// geometry in the coverage engine (kilometres).
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle surface distance between two geodetic
// points on the spherical Earth, in kilometres.
func HaversineKm(lat1Deg, lon1Deg, lat2Deg, lon2Deg float64) float64 {
	lat1 := lat1Deg * degToRad
	lat2 := lat2Deg * degToRad
	dLat := (lat2Deg - lat1Deg) * degToRad
	dLon := (lon2Deg - lon1Deg) * degToRad

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	a := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	if a > 1 {
		a = 1
	}
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a))
}

// FootprintRadiusKm returns the maximum ground distance from a satellite's
// sub-point at which the satellite still appears above minElevationDeg, via
// spherical-cap geometry: the Earth central angle of the visibility cap is
//
//	lambda = pi/2 - elevation - asin(R/(R+alt) * cos(elevation))
//
// and the footprint radius is R*lambda. When the geometry admits no solution
// (the cap angle is not positive), the radius is 0 and visibility is simply
// always false; that is a degenerate result, not an error. Elevation
// thresholds below zero are treated as the geometric horizon.
func FootprintRadiusKm(altitudeKm, minElevationDeg float64) float64 {
	if altitudeKm <= 0 {
		return 0
	}
	if minElevationDeg < 0 {
		minElevationDeg = 0
	}

	elev := minElevationDeg * degToRad
	lambda := math.Pi/2 - elev - math.Asin(EarthRadiusKm/(EarthRadiusKm+altitudeKm)*math.Cos(elev))
	if lambda <= 0 || math.IsNaN(lambda) {
		return 0
	}
	return EarthRadiusKm * lambda
}
