package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	testCases := []struct {
		name           string
		latOne, lonOne float64
		latTwo, lonTwo float64
		wantMeters     float64
		tolerance      float64
	}{
		{name: "identical points", latOne: -6.2088, lonOne: 106.8456, latTwo: -6.2088, lonTwo: 106.8456,
			wantMeters: 0, tolerance: 1e-9},
		{name: "one degree of longitude on the equator", latOne: 0, lonOne: 0, latTwo: 0, lonTwo: 1,
			wantMeters: 111194.93, tolerance: 0.5},
		{name: "one degree of latitude", latOne: 10, lonOne: 20, latTwo: 11, lonTwo: 20,
			wantMeters: 111194.93, tolerance: 0.5},
		{name: "antipodal points", latOne: 0, lonOne: 0, latTwo: 0, lonTwo: 180,
			wantMeters: 20015086.8, tolerance: 1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.latOne, tt.lonOne, tt.latTwo, tt.lonTwo)
			assert.InDelta(t, tt.wantMeters, got, tt.tolerance)

			reverse := HaversineDistance(tt.latTwo, tt.lonTwo, tt.latOne, tt.lonOne)
			assert.InDelta(t, got, reverse, 1e-6)

			// s2 measures the same great circle
			assert.InDelta(t, AngularDistance(tt.latOne, tt.lonOne, tt.latTwo, tt.lonTwo), got, tt.tolerance)
		})
	}
}

func TestGetDestinationPoint(t *testing.T) {
	testCases := []struct {
		name    string
		lat     float64
		lon     float64
		bearing float64
		distKm  float64
	}{
		{name: "north east", lat: -6.2, lon: 106.8, bearing: 45, distKm: 0.5},
		{name: "south west", lat: -6.2, lon: 106.8, bearing: 225, distKm: 2},
		{name: "across the antimeridian", lat: 10, lon: 179.99, bearing: 90, distKm: 5},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon := GetDestinationPoint(tt.lat, tt.lon, tt.bearing, tt.distKm)
			assert.True(t, IsValidCoordinate(lat, lon))
			assert.InDelta(t, tt.distKm, CalculateHaversineDistance(tt.lat, tt.lon, lat, lon), 1e-6)
		})
	}
}

func TestIsValidCoordinate(t *testing.T) {
	testCases := []struct {
		lat, lon float64
		want     bool
	}{
		{lat: 0, lon: 0, want: true},
		{lat: -90, lon: 180, want: true},
		{lat: 90.0001, lon: 0, want: false},
		{lat: 0, lon: -180.5, want: false},
	}

	for _, tt := range testCases {
		assert.Equal(t, tt.want, IsValidCoordinate(tt.lat, tt.lon), "(%f, %f)", tt.lat, tt.lon)
	}
}

func TestPolylineFromCoords(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(38.5, -120.2),
		NewCoordinate(40.7, -120.95),
		NewCoordinate(43.252, -126.453),
	}
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", PolylineFromCoords(coords))
	assert.Equal(t, "", PolylineFromCoords(nil))
}

func TestCircleBoundingBox(t *testing.T) {
	testCases := []struct {
		name     string
		lat, lon float64
		distKm   float64
		fullLon  bool
	}{
		{name: "jakarta", lat: -6.2, lon: 106.8, distKm: 1},
		{name: "high latitude", lat: 69.6, lon: 18.9, distKm: 25},
		{name: "crosses antimeridian", lat: -17.7, lon: 179.99, distKm: 5, fullLon: true},
		{name: "reaches the pole", lat: 89.99, lon: 0, distKm: 5, fullLon: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			minLat, minLon, maxLat, maxLon := CircleBoundingBox(tt.lat, tt.lon, tt.distKm)
			if tt.fullLon {
				assert.Equal(t, -180.0, minLon)
				assert.Equal(t, 180.0, maxLon)
			}

			for bearing := 0.0; bearing < 360; bearing += 5 {
				lat, lon := GetDestinationPoint(tt.lat, tt.lon, bearing, tt.distKm)
				assert.GreaterOrEqual(t, lat, minLat-1e-9, "bearing %v", bearing)
				assert.LessOrEqual(t, lat, maxLat+1e-9, "bearing %v", bearing)
				assert.GreaterOrEqual(t, lon, minLon-1e-9, "bearing %v", bearing)
				assert.LessOrEqual(t, lon, maxLon+1e-9, "bearing %v", bearing)
			}
		})
	}
}
