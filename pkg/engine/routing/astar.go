package routing

import (
	"context"

	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/costfunction"
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/geo"
	"github.com/lintang-b-s/greenroute/pkg/util"
	"go.uber.org/zap"
)

// AStar. single criterion A* search. frontier entries are ordered by (f, g, vertex id).
// An AStar holds per-search state and must not be shared between goroutines.
type AStar struct {
	engine    *RoutingEngine
	criterion costfunction.Criterion

	info   map[da.Index]vertexInfo
	closed map[da.Index]struct{}
	pq     *da.MinHeap[da.AStarKey]

	exploredNodes []da.Index
	exploredEdges []ExploredEdge

	numSettledNodes  int
	numFallbackEdges int
}

var _ Router = (*AStar)(nil)

func NewAStar(engine *RoutingEngine, criterion costfunction.Criterion) *AStar {
	return &AStar{
		engine:    engine,
		criterion: criterion,
	}
}

func (as *AStar) reset() {
	as.info = make(map[da.Index]vertexInfo)
	as.closed = make(map[da.Index]struct{})
	as.pq = da.NewBinaryHeap[da.AStarKey](da.CompareAStarKey)
	as.exploredNodes = make([]da.Index, 0)
	as.exploredEdges = make([]ExploredEdge, 0)
	as.numSettledNodes = 0
	as.numFallbackEdges = 0
}

func (as *AStar) GetNumSettledNodes() int {
	return as.numSettledNodes
}

// ShortestPathSearch. optimal path s->t under the search criterion.
// An unreachable t is not an error: the result has an empty path and infinite cost.
func (as *AStar) ShortestPathSearch(ctx context.Context, s, t da.Index) (*SearchResult, error) {
	graph := as.engine.graph
	if !graph.IsValidVertex(s) {
		return nil, util.WrapErrorf(ErrNodeNotFound, util.ErrBadParamInput, "start node %d", s)
	}
	if !graph.IsValidVertex(t) {
		return nil, util.WrapErrorf(ErrNodeNotFound, util.ErrBadParamInput, "goal node %d", t)
	}

	cf, err := as.engine.GetCostFunction(as.criterion)
	if err != nil {
		return nil, err
	}

	as.reset()
	defer as.logFallbacks(s, t)

	tLat, tLon := graph.GetVertexCoordinates(t)
	heuristic := func(u da.Index) float64 {
		uLat, uLon := graph.GetVertexCoordinates(u)
		return cf.Heuristic(geo.HaversineDistance(uLat, uLon, tLat, tLon))
	}

	as.info[s] = newVertexInfo(0, da.INVALID_VERTEX_ID)
	as.pq.Insert(da.NewPriorityQueueNode(heuristic(s), da.NewAStarKey(s, 0)))

	for !as.pq.IsEmpty() {
		if as.numSettledNodes%pkg.CANCEL_CHECK_INTERVAL == 0 && util.StopConcurrentOperation(ctx) {
			return nil, ctx.Err()
		}

		queryKey, _ := as.pq.ExtractMin()
		uItem := queryKey.GetItem()
		u := uItem.GetNode()

		if _, settled := as.closed[u]; settled {
			// stale entry left by an earlier relaxation
			continue
		}

		as.exploredNodes = append(as.exploredNodes, u)
		as.closed[u] = struct{}{}
		as.numSettledNodes++

		if u == t {
			return &SearchResult{
				Path:          as.buildPath(s, t),
				Cost:          uItem.GetG(),
				ExploredNodes: as.exploredNodes,
				ExploredEdges: as.exploredEdges,
				Criterion:     as.criterion.String(),
			}, nil
		}

		as.relaxOutEdges(u, uItem.GetG(), cf, heuristic)
	}

	return &SearchResult{
		Path:          nil,
		Cost:          pkg.INF_WEIGHT,
		ExploredNodes: as.exploredNodes,
		ExploredEdges: as.exploredEdges,
		Criterion:     as.criterion.String(),
	}, nil
}

func (as *AStar) relaxOutEdges(u da.Index, gU float64, cf CostFunction, heuristic func(da.Index) float64) {
	forCheapestOutEdges(as.engine.graph, u, cf, func(v da.Index, e *da.Edge, edgeWeight float64) {
		if _, settled := as.closed[v]; settled {
			return
		}
		if as.usesFallback(e) {
			as.numFallbackEdges++
		}

		tentativeG := gU + edgeWeight
		vInfo, seen := as.info[v]
		if seen && tentativeG >= vInfo.getG() {
			return
		}

		as.info[v] = newVertexInfo(tentativeG, u)
		as.exploredEdges = append(as.exploredEdges, ExploredEdge{From: u, To: v})
		as.pq.Insert(da.NewPriorityQueueNode(tentativeG+heuristic(v), da.NewAStarKey(v, tentativeG)))
	})
}

func (as *AStar) buildPath(s, t da.Index) []da.Index {
	path := make([]da.Index, 0)
	for cur := t; cur != da.INVALID_VERTEX_ID; cur = as.info[cur].getParent() {
		path = append(path, cur)
		if cur == s {
			break
		}
	}
	return util.ReverseG(path)
}

func (as *AStar) usesFallback(e *da.Edge) bool {
	switch as.criterion {
	case costfunction.TIME:
		return !e.Has(da.HAS_TIME)
	case costfunction.POLLUTION:
		return !e.Has(da.HAS_POLLUTION)
	default:
		return !e.Has(da.HAS_LENGTH)
	}
}

func (as *AStar) logFallbacks(s, t da.Index) {
	if as.numFallbackEdges == 0 || as.engine.logger == nil {
		return
	}
	as.engine.logger.Debug("edges without weight attribute, default road profile used",
		zap.String("criterion", as.criterion.String()),
		zap.Uint32("source", uint32(s)),
		zap.Uint32("target", uint32(t)),
		zap.Int("numFallbackEdges", as.numFallbackEdges),
	)
}
