package routing

import (
	"github.com/lintang-b-s/greenroute/pkg/costfunction"
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/util"
)

type RouteStats struct {
	Name           string         `json:"name"`
	DistanceKm     float64        `json:"distance_km"`
	TimeMinutes    float64        `json:"time_minutes"`
	PollutionScore float64        `json:"pollution_score"`
	NumSegments    int            `json:"num_segments"`
	RoadTypes      map[string]int `json:"road_types"`
}

// NewRouteStats. totals of path, every consecutive pair resolved to the same cheapest edge
// the search under criterion relaxes. a single vertex path yields zero stats.
func NewRouteStats(graph *da.Graph, path []da.Index, name string,
	criterion costfunction.Criterion) (RouteStats, error) {
	cf, err := costfunction.New(criterion)
	if err != nil {
		return RouteStats{}, err
	}
	return newRouteStats(graph, path, name, cf)
}

func (re *RoutingEngine) RouteStats(path []da.Index, name string,
	criterion costfunction.Criterion) (RouteStats, error) {
	cf, err := re.GetCostFunction(criterion)
	if err != nil {
		return RouteStats{}, err
	}
	return newRouteStats(re.graph, path, name, cf)
}

func newRouteStats(graph *da.Graph, path []da.Index, name string, cf CostFunction) (RouteStats, error) {
	stats := RouteStats{
		Name:      name,
		RoadTypes: make(map[string]int),
	}
	if len(path) == 0 {
		return stats, util.WrapErrorf(ErrNoRoute, util.ErrNotFound, "empty path for %s", name)
	}

	var totalLength, totalTime, totalPollution float64
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		if !graph.IsValidVertex(u) || !graph.IsValidVertex(v) {
			return stats, util.WrapErrorf(ErrNodeNotFound, util.ErrBadParamInput,
				"path segment %d->%d", u, v)
		}
		e := minCostEdge(graph, u, v, cf)
		if e == nil {
			return stats, util.WrapErrorf(ErrEdgeNotFound, util.ErrInternalServerError,
				"path segment %d->%d", u, v)
		}

		totalLength += e.GetLength()
		totalTime += e.GetTime()
		totalPollution += e.GetPollution()
		stats.RoadTypes[e.GetRoadType().String()]++
	}

	stats.DistanceKm = util.MetersToKm(totalLength)
	stats.TimeMinutes = util.SecondsToMinutes(totalTime)
	stats.PollutionScore = totalPollution
	stats.NumSegments = len(path) - 1
	return stats, nil
}
