package geo

import (
	"math"

	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

const (
	earthRadiusKM = pkg.EARTH_RADIUS_METER / 1000
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// HaversineDistance. great-circle distance in meters on a sphere of radius 6,371,000 m.
// symmetric and zero for identical points.
func HaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	return CalculateHaversineDistance(latOne, longOne, latTwo, longTwo) * 1000
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	// rounding can push a slightly above 1 for antipodal points
	a = math.Min(1, math.Max(0, a))
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// GetDestinationPoint returns the destination point given the starting point, bearing and distance
// dist in km
func GetDestinationPoint(lat1, lon1 float64, bearing float64, dist float64) (float64, float64) {

	dr := dist / earthRadiusKM

	bearing = util.DegreeToRadians(bearing)

	lat1 = util.DegreeToRadians(lat1)
	lon1 = util.DegreeToRadians(lon1)

	lat2Part1 := math.Sin(lat1) * math.Cos(dr)
	lat2Part2 := math.Cos(lat1) * math.Sin(dr) * math.Cos(bearing)

	lat2 := math.Asin(lat2Part1 + lat2Part2)

	lon2Part1 := math.Sin(bearing) * math.Sin(dr) * math.Cos(lat1)
	lon2Part2 := math.Cos(dr) - (math.Sin(lat1) * math.Sin(lat2))

	lon2 := lon1 + math.Atan2(lon2Part1, lon2Part2)

	return util.RadiansToDegree(lat2), normalizeLongitude(util.RadiansToDegree(lon2))
}

// normalizeLongitude. long in degree
func normalizeLongitude(long float64) float64 {
	return math.Mod((long+540), 360) - 180.0
}

// CircleBoundingBox. smallest lat/lon box containing every point within dist km of (lat, lon).
// the box spans all longitudes when the circle reaches a pole or crosses the antimeridian.
func CircleBoundingBox(lat, lon, dist float64) (minLat, minLon, maxLat, maxLon float64) {
	dr := dist / earthRadiusKM
	latRad := util.DegreeToRadians(lat)

	minLat = util.RadiansToDegree(math.Max(latRad-dr, -math.Pi/2))
	maxLat = util.RadiansToDegree(math.Min(latRad+dr, math.Pi/2))

	sinDr, cosLat := math.Sin(dr), math.Cos(latRad)
	if dr >= math.Pi/2 || sinDr >= cosLat {
		return minLat, -180, maxLat, 180
	}
	dLon := util.RadiansToDegree(math.Asin(sinDr / cosLat))
	minLon, maxLon = lon-dLon, lon+dLon
	if minLon < -180 || maxLon > 180 {
		return minLat, -180, maxLat, 180
	}
	return minLat, minLon, maxLat, maxLon
}
