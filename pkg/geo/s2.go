package geo

import (
	"github.com/golang/geo/s2"
)

// IsValidCoordinate. latitude in [-90, 90] and longitude in [-180, 180].
func IsValidCoordinate(lat, lon float64) bool {
	return s2.LatLngFromDegrees(lat, lon).IsValid()
}

// AngularDistance. great-circle distance in meters computed on s2 points, used to cross check haversine.
func AngularDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	a := s2.LatLngFromDegrees(latOne, longOne)
	b := s2.LatLngFromDegrees(latTwo, longTwo)
	return a.Distance(b).Radians() * earthRadiusKM * 1000
}
