package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords. google encoded polyline (precision 5) of the coordinates.
func PolylineFromCoords(coords []Coordinate) string {
	pc := make([][]float64, len(coords))
	for i, c := range coords {
		pc[i] = []float64{c.Lat, c.Lon}
	}
	return string(polyline.EncodeCoords(pc))
}
