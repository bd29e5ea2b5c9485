package datastructure

import (
	"testing"

	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEdge struct {
	tail, head Index
	opts       []EdgeOption
}

func buildTestGraph(t *testing.T, coords [][2]float64, edges []testEdge) *Graph {
	t.Helper()
	gb := NewGraphBuilder()
	for i, c := range coords {
		_, err := gb.AddVertex(c[0], c[1], int64(i+1))
		require.NoError(t, err)
	}
	for _, e := range edges {
		require.NoError(t, gb.AddEdge(e.tail, e.head, e.opts...))
	}
	return gb.Build()
}

func TestGraphBuilder(t *testing.T) {
	coords := [][2]float64{{-6.20, 106.80}, {-6.21, 106.81}, {-6.22, 106.82}}
	g := buildTestGraph(t, coords, []testEdge{
		{tail: 1, head: 2, opts: []EdgeOption{WithLength(30)}},
		{tail: 0, head: 1, opts: []EdgeOption{WithLength(10)}},
		{tail: 0, head: 1, opts: []EdgeOption{WithLength(5)}},
		{tail: 0, head: 2, opts: []EdgeOption{WithLength(50)}},
	})

	assert.Equal(t, 3, g.NumberOfVertices())
	assert.Equal(t, 4, g.NumberOfEdges())

	t.Run("out edges grouped by tail in insertion order", func(t *testing.T) {
		out := g.GetOutEdges(0)
		require.Len(t, out, 3)
		assert.Equal(t, 10.0, out[0].GetLength())
		assert.Equal(t, 5.0, out[1].GetLength())
		assert.Equal(t, 50.0, out[2].GetLength())
		for i, e := range out {
			assert.Equal(t, Index(i), e.GetEdgeId())
		}
	})

	t.Run("parallel edge keys", func(t *testing.T) {
		parallel := g.EdgesBetween(0, 1)
		require.Len(t, parallel, 2)
		assert.Equal(t, 0, parallel[0].GetKey())
		assert.Equal(t, 1, parallel[1].GetKey())
		assert.Equal(t, 0, g.EdgesBetween(0, 2)[0].GetKey())
		assert.Empty(t, g.EdgesBetween(2, 0))
	})

	t.Run("degrees", func(t *testing.T) {
		assert.Equal(t, Index(3), g.GetOutDegree(0))
		assert.Equal(t, Index(0), g.GetInDegree(0))
		assert.Equal(t, Index(2), g.GetInDegree(1))
		assert.Equal(t, 3, g.Degree(0))
		assert.Equal(t, 3, g.Degree(1))
		assert.Equal(t, 2, g.Degree(2))
	})

	t.Run("neighbors are distinct", func(t *testing.T) {
		assert.Equal(t, []Index{1, 2}, g.Neighbors(0))
		assert.Equal(t, []Index{2}, g.Neighbors(1))
		assert.Empty(t, g.Neighbors(2))
	})

	t.Run("bounding box", func(t *testing.T) {
		bb := g.GetBoundingBox()
		assert.Equal(t, -6.22, bb.GetMinLat())
		assert.Equal(t, 106.82, bb.GetMaxLon())
	})
}

func TestGraphBuilderRejectsMalformedInput(t *testing.T) {
	testCases := []struct {
		name  string
		build func(gb *GraphBuilder) error
	}{
		{
			name: "latitude out of range",
			build: func(gb *GraphBuilder) error {
				_, err := gb.AddVertex(91, 0, 1)
				return err
			},
		},
		{
			name: "edge to missing vertex",
			build: func(gb *GraphBuilder) error {
				_, _ = gb.AddVertex(0, 0, 1)
				return gb.AddEdge(0, 1)
			},
		},
		{
			name: "negative length",
			build: func(gb *GraphBuilder) error {
				_, _ = gb.AddVertex(0, 0, 1)
				_, _ = gb.AddVertex(0, 0.001, 2)
				return gb.AddEdge(0, 1, WithLength(-1))
			},
		},
		{
			name: "negative pollution",
			build: func(gb *GraphBuilder) error {
				_, _ = gb.AddVertex(0, 0, 1)
				_, _ = gb.AddVertex(0, 0.001, 2)
				return gb.AddEdge(0, 1, WithPollution(-0.5))
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build(NewGraphBuilder())
			assert.ErrorIs(t, err, ErrMalformedGraph)
		})
	}
}

func TestGraphBuilderRebuildKeepsEarlierGraph(t *testing.T) {
	gb := NewGraphBuilder()
	for _, c := range [][2]float64{{-6.20, 106.80}, {-6.21, 106.81}} {
		_, err := gb.AddVertex(c[0], c[1], 0)
		require.NoError(t, err)
	}
	require.NoError(t, gb.AddEdge(1, 0, WithLength(10)))
	g1 := gb.Build()

	require.NoError(t, gb.AddEdge(0, 1, WithLength(20)))
	require.NoError(t, gb.AddEdge(1, 0, WithLength(30)))
	g2 := gb.Build()

	require.Equal(t, 1, g1.NumberOfEdges())
	require.Equal(t, 3, g2.NumberOfEdges())

	e := g1.GetEdge(0)
	assert.Equal(t, Index(0), e.GetEdgeId())
	assert.Equal(t, 0, e.GetKey())
	assert.Equal(t, 10.0, e.GetLength())
	assert.Same(t, e, g1.GetEdge(e.GetEdgeId()))

	// the rebuilt graph places edge 1->0 after 0->1 and gives the parallel copy key 1
	assert.Equal(t, Index(1), g2.GetEdge(1).GetEdgeId())
	assert.Equal(t, 1, g2.GetEdge(2).GetKey())
}

func TestEdgeAttributeFallbacks(t *testing.T) {
	defaultSpeedMps := pkg.KmhToMps(pkg.DefaultRoadProfile().SpeedKmh)
	defaultMultiplier := pkg.DefaultRoadProfile().PollutionMultiplier

	testCases := []struct {
		name          string
		edge          *Edge
		wantLength    float64
		wantTime      float64
		wantPollution float64
		wantRoadType  pkg.OsmHighwayType
	}{
		{
			name:          "no attributes",
			edge:          NewEdge(0, 1),
			wantLength:    pkg.DEFAULT_SEGMENT_LENGTH,
			wantTime:      pkg.DEFAULT_SEGMENT_LENGTH / defaultSpeedMps,
			wantPollution: pkg.DEFAULT_SEGMENT_LENGTH * defaultMultiplier,
			wantRoadType:  pkg.UNKNOWN,
		},
		{
			name:          "length only",
			edge:          NewEdge(0, 1, WithLength(250)),
			wantLength:    250,
			wantTime:      250 / defaultSpeedMps,
			wantPollution: 250 * defaultMultiplier,
			wantRoadType:  pkg.UNKNOWN,
		},
		{
			name:          "fully weighted",
			edge:          NewEdge(0, 1, WithLength(100), WithTime(7), WithPollution(160), WithRoadType(pkg.PRIMARY)),
			wantLength:    100,
			wantTime:      7,
			wantPollution: 160,
			wantRoadType:  pkg.PRIMARY,
		},
		{
			name:          "explicit zero pollution is kept",
			edge:          NewEdge(0, 1, WithLength(100), WithPollution(0)),
			wantLength:    100,
			wantTime:      100 / defaultSpeedMps,
			wantPollution: 0,
			wantRoadType:  pkg.UNKNOWN,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantLength, tt.edge.GetLength(), 1e-9)
			assert.InDelta(t, tt.wantTime, tt.edge.GetTime(), 1e-9)
			assert.InDelta(t, tt.wantPollution, tt.edge.GetPollution(), 1e-9)
			assert.Equal(t, tt.wantRoadType, tt.edge.GetRoadType())
		})
	}
}

func TestInducedSubgraph(t *testing.T) {
	coords := [][2]float64{{0, 0}, {0, 0.001}, {0, 0.002}, {0, 0.003}}
	g := buildTestGraph(t, coords, []testEdge{
		{tail: 0, head: 1, opts: []EdgeOption{WithLength(1)}},
		{tail: 1, head: 2, opts: []EdgeOption{WithLength(2), WithPollution(4)}},
		{tail: 2, head: 3, opts: []EdgeOption{WithLength(3)}},
	})

	sub, oldToNew, err := g.InducedSubgraph(func(u Index) bool { return u != 0 })
	require.NoError(t, err)

	assert.Equal(t, 3, sub.NumberOfVertices())
	assert.Equal(t, 2, sub.NumberOfEdges())
	assert.Equal(t, []Index{INVALID_VERTEX_ID, 0, 1, 2}, oldToNew)

	e := sub.GetOutEdges(0)[0]
	assert.Equal(t, Index(1), e.GetHead())
	assert.True(t, e.Has(HAS_POLLUTION))
	assert.False(t, e.Has(HAS_TIME))
	assert.Equal(t, 4.0, e.GetPollution())
	assert.Equal(t, int64(2), sub.GetVertex(0).GetOsmId())
}
