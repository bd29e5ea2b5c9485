package osmparser

import (
	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/datastructure"
	"go.uber.org/zap"
)

// IntersectionPenalty. stop-and-go factor of an edge touching a vertex with more than two incident edges.
func IntersectionPenalty(graph *datastructure.Graph, e *datastructure.Edge) float64 {
	if graph.Degree(e.GetTail()) > pkg.INTERSECTION_DEGREE || graph.Degree(e.GetHead()) > pkg.INTERSECTION_DEGREE {
		return pkg.INTERSECTION_PENALTY
	}
	return pkg.NO_INTERSECTION_PENALTY
}

// EdgeTime. seconds to drive length meters on roadType.
func EdgeTime(length float64, roadType pkg.OsmHighwayType) float64 {
	return (length / 1000) / pkg.GetRoadProfile(roadType).SpeedKmh * 3600
}

// EdgePollution. length * multiplier(roadType) * penalty.
func EdgePollution(length float64, roadType pkg.OsmHighwayType, penalty float64) float64 {
	return length * pkg.GetRoadProfile(roadType).PollutionMultiplier * penalty
}

// AddPollutionWeights. copy of graph where every edge carries time and pollution derived from its
// length and road type. the input graph is left untouched.
func AddPollutionWeights(graph *datastructure.Graph, logger *zap.Logger) (*datastructure.Graph, error) {
	logger.Info("Adding pollution weights to network...")

	gb := datastructure.NewGraphBuilderWithSize(graph.NumberOfVertices(), graph.NumberOfEdges())
	var err error
	graph.ForVertices(func(v *datastructure.Vertex) {
		if err != nil {
			return
		}
		_, err = gb.AddVertex(v.GetLat(), v.GetLon(), v.GetOsmId())
	})
	if err != nil {
		return nil, err
	}

	edgesProcessed := 0
	graph.ForEdges(func(e *datastructure.Edge) {
		if err != nil {
			return
		}
		length := e.GetLength()
		roadType := e.GetRoadType()
		err = gb.AddEdge(e.GetTail(), e.GetHead(),
			datastructure.WithLength(length),
			datastructure.WithRoadType(roadType),
			datastructure.WithTime(EdgeTime(length, roadType)),
			datastructure.WithPollution(EdgePollution(length, roadType, IntersectionPenalty(graph, e))),
		)
		edgesProcessed++
	})
	if err != nil {
		return nil, err
	}

	logger.Sugar().Infof("processed %d edges", edgesProcessed)
	return gb.Build(), nil
}
