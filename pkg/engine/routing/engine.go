package routing

import (
	"context"
	"time"

	"github.com/lintang-b-s/greenroute/pkg/costfunction"
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/util"
	"go.uber.org/zap"
)

// RoutingEngine. read-only graph plus one cost function per criterion. safe for concurrent searches.
type RoutingEngine struct {
	graph         *da.Graph
	logger        *zap.Logger
	costFunctions []CostFunction
	searchTimeout time.Duration
}

type EngineOption func(re *RoutingEngine)

// WithSearchTimeout bounds every search started through the engine. 0 disables the deadline.
func WithSearchTimeout(timeout time.Duration) EngineOption {
	return func(re *RoutingEngine) {
		re.searchTimeout = timeout
	}
}

func NewRoutingEngine(graph *da.Graph, logger *zap.Logger, cfOpts []costfunction.Option,
	opts ...EngineOption) (*RoutingEngine, error) {
	cfs, err := costfunction.NewAll(cfOpts...)
	if err != nil {
		return nil, err
	}

	re := &RoutingEngine{
		graph:         graph,
		logger:        logger,
		costFunctions: make([]CostFunction, len(cfs)),
	}
	for i, cf := range cfs {
		re.costFunctions[i] = cf
	}
	for _, opt := range opts {
		opt(re)
	}
	return re, nil
}

func (re *RoutingEngine) GetGraph() *da.Graph {
	return re.graph
}

func (re *RoutingEngine) GetLogger() *zap.Logger {
	return re.logger
}

func (re *RoutingEngine) GetCostFunction(criterion costfunction.Criterion) (CostFunction, error) {
	if !criterion.IsValid() {
		return nil, util.WrapErrorf(costfunction.ErrUnknownCriterion, util.ErrBadParamInput,
			"criterion %s", criterion)
	}
	return re.costFunctions[criterion], nil
}

// Search. runs one A* search under criterion, bounded by the engine search timeout.
func (re *RoutingEngine) Search(ctx context.Context, s, t da.Index,
	criterion costfunction.Criterion) (*SearchResult, error) {
	if re.searchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, re.searchTimeout)
		defer cancel()
	}
	return re.NewRouter(criterion).ShortestPathSearch(ctx, s, t)
}

// NewRouter. a fresh search for criterion, one per query.
func (re *RoutingEngine) NewRouter(criterion costfunction.Criterion) Router {
	return NewAStar(re, criterion)
}
