package routing

import (
	"context"

	"github.com/lintang-b-s/greenroute/pkg/costfunction"
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/util"
	"golang.org/x/sync/errgroup"
)

// DualRoute. fastest and greenest route between the same pair of vertices.
type DualRoute struct {
	TimeRoute      *SearchResult
	PollutionRoute *SearchResult
	TimeStats      RouteStats
	PollutionStats RouteStats
}

type RouteComparison struct {
	TimeDiffMinutes           float64 `json:"time_diff_minutes"`
	TimeDiffPercent           float64 `json:"time_diff_percent"`
	PollutionReductionPercent float64 `json:"pollution_reduction_percent"`
}

// Comparison. extra minutes the greenest route costs and the pollution it saves, relative to the fastest route.
// percentages are 0 when the fastest route has zero time or pollution.
func (dr *DualRoute) Comparison() RouteComparison {
	fast, green := dr.TimeStats, dr.PollutionStats
	cmp := RouteComparison{
		TimeDiffMinutes: green.TimeMinutes - fast.TimeMinutes,
	}
	if fast.TimeMinutes > 0 {
		cmp.TimeDiffPercent = cmp.TimeDiffMinutes / fast.TimeMinutes * 100
	}
	if fast.PollutionScore > 0 {
		cmp.PollutionReductionPercent = (fast.PollutionScore - green.PollutionScore) / fast.PollutionScore * 100
	}
	return cmp
}

// ComputeDualRoutes. time and pollution searches run concurrently on the shared read-only graph.
// returns ErrNoRoute when either search finds t unreachable.
func (re *RoutingEngine) ComputeDualRoutes(ctx context.Context, s, t da.Index) (*DualRoute, error) {
	var timeRoute, pollutionRoute *SearchResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		timeRoute, err = re.Search(gctx, s, t, costfunction.TIME)
		return err
	})
	g.Go(func() error {
		var err error
		pollutionRoute, err = re.Search(gctx, s, t, costfunction.POLLUTION)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !timeRoute.IsReachable() || !pollutionRoute.IsReachable() {
		return nil, util.WrapErrorf(ErrNoRoute, util.ErrNotFound, "from node %d to node %d", s, t)
	}

	timeStats, err := re.RouteStats(timeRoute.Path, FASTEST_ROUTE_NAME, costfunction.TIME)
	if err != nil {
		return nil, err
	}
	pollutionStats, err := re.RouteStats(pollutionRoute.Path, GREENEST_ROUTE_NAME, costfunction.POLLUTION)
	if err != nil {
		return nil, err
	}

	return &DualRoute{
		TimeRoute:      timeRoute,
		PollutionRoute: pollutionRoute,
		TimeStats:      timeStats,
		PollutionStats: pollutionStats,
	}, nil
}
