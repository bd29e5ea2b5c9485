package usecases

import (
	"context"

	"github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/engine/routing"
	"github.com/lintang-b-s/greenroute/pkg/geo"
	"go.uber.org/zap"
)

type RoutingService struct {
	log          *zap.Logger
	engine       RoutingEngine
	spatialIndex SpatialIndex
	searchRadius float64
}

func NewRoutingService(log *zap.Logger, engine RoutingEngine, spatialindex SpatialIndex,
	searchRadius float64) *RoutingService {
	return &RoutingService{
		log:          log,
		engine:       engine,
		spatialIndex: spatialindex,
		searchRadius: searchRadius,
	}
}

// RouteView. one route resolved to coordinates for map rendering.
type RouteView struct {
	Path          []geo.Coordinate
	Polyline      string
	Stats         routing.RouteStats
	Explored      []geo.Coordinate
	ExploredEdges [][2]geo.Coordinate
}

type DualRouteView struct {
	Source         datastructure.Index
	Target         datastructure.Index
	TimeRoute      RouteView
	PollutionRoute RouteView
	Comparison     routing.RouteComparison
}

// DualRoute. snaps both points to their nearest vertices and computes the fastest and the greenest route.
func (rs *RoutingService) DualRoute(ctx context.Context, origLat, origLon, dstLat, dstLon float64) (*DualRouteView, error) {
	s, t, err := rs.snapOrigDestToNearbyVertices(origLat, origLon, dstLat, dstLon)
	if err != nil {
		return nil, err
	}

	dual, err := rs.engine.ComputeDualRoutes(ctx, s, t)
	if err != nil {
		return nil, err
	}

	rs.log.Debug("dual route computed",
		zap.Uint32("source", uint32(s)), zap.Uint32("target", uint32(t)),
		zap.Int("timeExplored", len(dual.TimeRoute.ExploredNodes)),
		zap.Int("pollutionExplored", len(dual.PollutionRoute.ExploredNodes)))

	return &DualRouteView{
		Source:         s,
		Target:         t,
		TimeRoute:      rs.newRouteView(dual.TimeRoute, dual.TimeStats),
		PollutionRoute: rs.newRouteView(dual.PollutionRoute, dual.PollutionStats),
		Comparison:     dual.Comparison(),
	}, nil
}

func (rs *RoutingService) newRouteView(sr *routing.SearchResult, stats routing.RouteStats) RouteView {
	path := rs.engine.PathToCoords(sr.Path)
	graph := rs.engine.GetGraph()

	exploredEdges := make([][2]geo.Coordinate, len(sr.ExploredEdges))
	for i, e := range sr.ExploredEdges {
		fromLat, fromLon := graph.GetVertexCoordinates(e.From)
		toLat, toLon := graph.GetVertexCoordinates(e.To)
		exploredEdges[i] = [2]geo.Coordinate{geo.NewCoordinate(fromLat, fromLon), geo.NewCoordinate(toLat, toLon)}
	}

	return RouteView{
		Path:          path,
		Polyline:      geo.PolylineFromCoords(path),
		Stats:         stats,
		Explored:      rs.engine.PathToCoords(sr.ExploredNodes),
		ExploredEdges: exploredEdges,
	}
}
