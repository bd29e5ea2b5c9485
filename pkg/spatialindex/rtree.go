package spatialindex

import (
	"errors"

	"github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

var (
	ErrNoNearbyVertex = errors.New("no vertex near the query point")
)

const (
	maxRadiusDoublings = 6
)

type Rtree struct {
	tr *rtree.RTreeG[datastructure.Index]
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[datastructure.Index]
	return &Rtree{
		tr: &tr,
	}
}

// Build. one point leaf per graph vertex.
func (rt *Rtree) Build(graph *datastructure.Graph, log *zap.Logger) {
	log.Info("Building R-tree spatial index...", zap.Int("numVertices", graph.NumberOfVertices()))
	graph.ForVertices(func(v *datastructure.Vertex) {
		p := [2]float64{v.GetLon(), v.GetLat()}
		rt.tr.Insert(p, p, v.GetID())
	})
	log.Info("R-tree spatial index built.")
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// SearchWithinRadius. all vertices inside the lat/lon box that covers the circle of radius km around (qLat, qLon).
// the box corners lie beyond radius, so callers filter by distance when they need the circle.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64) []datastructure.Index {
	minLat, minLon, maxLat, maxLon := geo.CircleBoundingBox(qLat, qLon, radius)

	results := make([]datastructure.Index, 0, 10)
	rt.tr.Search([2]float64{minLon, minLat}, [2]float64{maxLon, maxLat},
		func(min, max [2]float64, data datastructure.Index) bool {
			results = append(results, data)
			return true
		})
	return results
}

// NearestVertex. closest vertex by haversine distance, ties to the lowest id.
// the search box starts at radius km and doubles until a vertex is found. a candidate farther than the
// searched radius may sit in a box corner, so the box is widened to its distance before answering.
func (rt *Rtree) NearestVertex(graph *datastructure.Graph, qLat, qLon, radius float64) (datastructure.Index, error) {
	for i := 0; i <= maxRadiusDoublings; i++ {
		candidates := rt.SearchWithinRadius(qLat, qLon, radius)
		if len(candidates) == 0 {
			radius *= 2
			continue
		}

		best, bestDist := nearest(graph, candidates, qLat, qLon)
		if bestKm := bestDist / 1000; bestKm > radius {
			candidates = append(candidates, rt.SearchWithinRadius(qLat, qLon, bestKm)...)
			best, _ = nearest(graph, candidates, qLat, qLon)
		}
		return best, nil
	}
	return datastructure.INVALID_VERTEX_ID, ErrNoNearbyVertex
}

func nearest(graph *datastructure.Graph, candidates []datastructure.Index, qLat, qLon float64) (datastructure.Index, float64) {
	best := datastructure.INVALID_VERTEX_ID
	bestDist := 0.0
	for _, u := range candidates {
		lat, lon := graph.GetVertexCoordinates(u)
		dist := geo.HaversineDistance(qLat, qLon, lat, lon)
		if best == datastructure.INVALID_VERTEX_ID || dist < bestDist || (dist == bestDist && u < best) {
			best, bestDist = u, dist
		}
	}
	return best, bestDist
}
