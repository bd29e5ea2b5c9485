package routing

import (
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/geo"
)

// minCostEdge. cheapest edge u->v under cf, ties resolved to the lowest key. nil when u and v are not adjacent.
func minCostEdge(graph *da.Graph, u, v da.Index, cf CostFunction) *da.Edge {
	var best *da.Edge
	bestW := 0.0
	graph.ForOutEdgesOf(u, func(e *da.Edge) {
		if e.GetHead() != v {
			return
		}
		w := cf.GetWeight(e)
		if best == nil || w < bestW {
			best, bestW = e, w
		}
	})
	return best
}

// forCheapestOutEdges. calls handle once per distinct neighbor of u, in adjacency order,
// with the cheapest parallel edge to it under cf.
func forCheapestOutEdges(graph *da.Graph, u da.Index, cf CostFunction,
	handle func(v da.Index, e *da.Edge, weight float64)) {
	outEdges := graph.GetOutEdges(u)
	order := make([]da.Index, 0, len(outEdges))
	cheapest := make(map[da.Index]*da.Edge, len(outEdges))
	weights := make(map[da.Index]float64, len(outEdges))

	for _, e := range outEdges {
		v := e.GetHead()
		w := cf.GetWeight(e)
		_, ok := cheapest[v]
		if !ok {
			order = append(order, v)
		}
		if !ok || w < weights[v] {
			cheapest[v] = e
			weights[v] = w
		}
	}

	for _, v := range order {
		handle(v, cheapest[v], weights[v])
	}
}

func (re *RoutingEngine) GetHaversineDistanceFromUtoV(u, v da.Index) float64 {
	uLat, uLon := re.graph.GetVertexCoordinates(u)
	vLat, vLon := re.graph.GetVertexCoordinates(v)
	return geo.HaversineDistance(uLat, uLon, vLat, vLon)
}

// PathToCoords. lat/lon of every vertex of path.
func (re *RoutingEngine) PathToCoords(path []da.Index) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(path))
	for i, u := range path {
		lat, lon := re.graph.GetVertexCoordinates(u)
		coords[i] = geo.NewCoordinate(lat, lon)
	}
	return coords
}
