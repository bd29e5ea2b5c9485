package routing

import (
	"context"

	"github.com/lintang-b-s/greenroute/pkg/costfunction"
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
)

type CostFunction interface {
	GetWeight(e costfunction.EdgeAttributes) float64
	Heuristic(distMeters float64) float64
	GetCriterion() costfunction.Criterion
}

type Router interface {
	ShortestPathSearch(ctx context.Context, s, t da.Index) (*SearchResult, error)
}
