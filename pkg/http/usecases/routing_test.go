package usecases

import (
	"context"
	"testing"

	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/engine/routing"
	"github.com/lintang-b-s/greenroute/pkg/spatialindex"
	"github.com/lintang-b-s/greenroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var serviceTestCoords = [][2]float64{
	{-6.2000, 106.8000},
	{-6.2000, 106.8010},
	{-6.2010, 106.8005},
	{-6.2000, 106.8020},
	{-6.2500, 106.8500},
}

// newTestService. a fast motorway 0 -> 1 -> 3 and a clean residential street 0 -> 2 -> 3, vertex 4 is isolated.
func newTestService(t *testing.T) *RoutingService {
	t.Helper()
	gb := datastructure.NewGraphBuilder()
	for i, c := range serviceTestCoords {
		_, err := gb.AddVertex(c[0], c[1], int64(i))
		require.NoError(t, err)
	}
	edge := func(tail, head datastructure.Index, time, pollution float64, roadType pkg.OsmHighwayType) {
		require.NoError(t, gb.AddEdge(tail, head, datastructure.WithLength(200), datastructure.WithTime(time),
			datastructure.WithPollution(pollution), datastructure.WithRoadType(roadType)))
	}
	edge(0, 1, 10, 300, pkg.MOTORWAY)
	edge(1, 3, 10, 300, pkg.MOTORWAY)
	edge(0, 2, 40, 220, pkg.RESIDENTIAL)
	edge(2, 3, 40, 220, pkg.RESIDENTIAL)
	g := gb.Build()

	re, err := routing.NewRoutingEngine(g, zap.NewNop(), nil)
	require.NoError(t, err)
	rtree := spatialindex.NewRtree()
	rtree.Build(g, zap.NewNop())

	return NewRoutingService(zap.NewNop(), re, rtree, 0.5)
}

func TestDualRoute(t *testing.T) {
	rs := newTestService(t)

	// both points are a few meters away from vertices 0 and 3
	view, err := rs.DualRoute(context.Background(), -6.20001, 106.80001, -6.20001, 106.80199)
	require.NoError(t, err)

	assert.Equal(t, datastructure.Index(0), view.Source)
	assert.Equal(t, datastructure.Index(3), view.Target)

	require.Len(t, view.TimeRoute.Path, 3)
	assert.Equal(t, serviceTestCoords[1][0], view.TimeRoute.Path[1].Lat)
	assert.Equal(t, serviceTestCoords[1][1], view.TimeRoute.Path[1].Lon)
	assert.NotEmpty(t, view.TimeRoute.Polyline)
	assert.Equal(t, routing.FASTEST_ROUTE_NAME, view.TimeRoute.Stats.Name)
	assert.NotEmpty(t, view.TimeRoute.Explored)
	assert.NotEmpty(t, view.TimeRoute.ExploredEdges)

	require.Len(t, view.PollutionRoute.Path, 3)
	assert.Equal(t, serviceTestCoords[2][0], view.PollutionRoute.Path[1].Lat)
	assert.Equal(t, routing.GREENEST_ROUTE_NAME, view.PollutionRoute.Stats.Name)

	assert.InDelta(t, 1, view.Comparison.TimeDiffMinutes, 1e-9)
	assert.InDelta(t, (600.0-440.0)/600.0*100, view.Comparison.PollutionReductionPercent, 1e-9)
}

func TestDualRouteErrors(t *testing.T) {
	rs := newTestService(t)

	testCases := []struct {
		name             string
		origLat, origLon float64
		dstLat, dstLon   float64
		wantCode         error
	}{
		{name: "invalid origin", origLat: 95, origLon: 106.8, dstLat: -6.2, dstLon: 106.802,
			wantCode: util.ErrBadParamInput},
		{name: "invalid destination", origLat: -6.2, origLon: 106.8, dstLat: -6.2, dstLon: 200,
			wantCode: util.ErrBadParamInput},
		{name: "nothing near origin", origLat: 51.5, origLon: -0.12, dstLat: -6.2, dstLon: 106.802,
			wantCode: util.ErrBadParamInput},
		{name: "no route", origLat: -6.2, origLon: 106.8, dstLat: -6.25, dstLon: 106.85,
			wantCode: util.ErrNotFound},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rs.DualRoute(context.Background(), tt.origLat, tt.origLon, tt.dstLat, tt.dstLon)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, util.ErrorCode(err))
		})
	}
}
