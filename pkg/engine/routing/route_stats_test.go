package routing

import (
	"testing"

	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/costfunction"
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsTestGraph(t *testing.T) *da.Graph {
	return buildGraph(t, lineCoords(4), []testEdge{
		{tail: 0, head: 1, opts: append(weighted(1000, 90, 1600), da.WithRoadType(pkg.PRIMARY))},
		{tail: 1, head: 2, opts: append(weighted(500, 90, 1250), da.WithRoadType(pkg.RESIDENTIAL))},
		{tail: 2, head: 3, opts: append(weighted(500, 60, 1000), da.WithRoadType(pkg.RESIDENTIAL))},
		{tail: 2, head: 3, opts: append(weighted(700, 30, 1200), da.WithRoadType(pkg.TRUNK))},
	})
}

func TestNewRouteStats(t *testing.T) {
	g := statsTestGraph(t)

	testCases := []struct {
		name      string
		path      []da.Index
		criterion costfunction.Criterion
		want      RouteStats
	}{
		{
			name:      "two segments",
			path:      []da.Index{0, 1, 2},
			criterion: costfunction.TIME,
			want: RouteStats{Name: "two segments", DistanceKm: 1.5, TimeMinutes: 3, PollutionScore: 2850,
				NumSegments: 2, RoadTypes: map[string]int{"primary": 1, "residential": 1}},
		},
		{
			name:      "parallel edge chosen by time",
			path:      []da.Index{2, 3},
			criterion: costfunction.TIME,
			want: RouteStats{Name: "parallel edge chosen by time", DistanceKm: 0.7, TimeMinutes: 0.5,
				PollutionScore: 1200, NumSegments: 1, RoadTypes: map[string]int{"trunk": 1}},
		},
		{
			name:      "parallel edge chosen by pollution",
			path:      []da.Index{2, 3},
			criterion: costfunction.POLLUTION,
			want: RouteStats{Name: "parallel edge chosen by pollution", DistanceKm: 0.5, TimeMinutes: 1,
				PollutionScore: 1000, NumSegments: 1, RoadTypes: map[string]int{"residential": 1}},
		},
		{
			name:      "single vertex",
			path:      []da.Index{1},
			criterion: costfunction.POLLUTION,
			want:      RouteStats{Name: "single vertex", RoadTypes: map[string]int{}},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRouteStats(g, tt.path, tt.name, tt.criterion)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Name, got.Name)
			assert.InDelta(t, tt.want.DistanceKm, got.DistanceKm, 1e-9)
			assert.InDelta(t, tt.want.TimeMinutes, got.TimeMinutes, 1e-9)
			assert.InDelta(t, tt.want.PollutionScore, got.PollutionScore, 1e-9)
			assert.Equal(t, tt.want.NumSegments, got.NumSegments)
			assert.Equal(t, tt.want.RoadTypes, got.RoadTypes)
		})
	}
}

func TestNewRouteStatsErrors(t *testing.T) {
	g := statsTestGraph(t)

	testCases := []struct {
		name     string
		path     []da.Index
		wantErr  error
		wantCode error
	}{
		{name: "empty path", path: nil, wantErr: ErrNoRoute, wantCode: util.ErrNotFound},
		{name: "unknown vertex", path: []da.Index{0, 9}, wantErr: ErrNodeNotFound, wantCode: util.ErrBadParamInput},
		{name: "non adjacent vertices", path: []da.Index{0, 2}, wantErr: ErrEdgeNotFound,
			wantCode: util.ErrInternalServerError},
		{name: "against edge direction", path: []da.Index{1, 0}, wantErr: ErrEdgeNotFound,
			wantCode: util.ErrInternalServerError},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRouteStats(g, tt.path, tt.name, costfunction.TIME)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCode, util.ErrorCode(err))
		})
	}
}
