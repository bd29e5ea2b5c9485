package usecases

import (
	"context"

	"github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/engine/routing"
	"github.com/lintang-b-s/greenroute/pkg/geo"
)

type RoutingEngine interface {
	GetGraph() *datastructure.Graph
	ComputeDualRoutes(ctx context.Context, s, t datastructure.Index) (*routing.DualRoute, error)
	PathToCoords(path []datastructure.Index) []geo.Coordinate
}

type SpatialIndex interface {
	NearestVertex(graph *datastructure.Graph, qLat, qLon, radius float64) (datastructure.Index, error)
}
