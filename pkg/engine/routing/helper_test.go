package routing

import (
	"math"
	"testing"

	"github.com/lintang-b-s/greenroute/pkg"
	"github.com/lintang-b-s/greenroute/pkg/costfunction"
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
	"github.com/lintang-b-s/greenroute/pkg/geo"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

// step between two consecutive test vertices, about 1.1 m, keeps straight line distances below edge weights.
const coordStep = 0.00001

type testEdge struct {
	tail, head da.Index
	opts       []da.EdgeOption
}

func weighted(length, time, pollution float64) []da.EdgeOption {
	return []da.EdgeOption{da.WithLength(length), da.WithTime(time), da.WithPollution(pollution)}
}

func buildGraph(t testing.TB, coords [][2]float64, edges []testEdge) *da.Graph {
	t.Helper()
	gb := da.NewGraphBuilder()
	for i, c := range coords {
		_, err := gb.AddVertex(c[0], c[1], int64(i+1))
		require.NoError(t, err)
	}
	for _, e := range edges {
		require.NoError(t, gb.AddEdge(e.tail, e.head, e.opts...))
	}
	return gb.Build()
}

// lineCoords. n vertices on a short west-east line.
func lineCoords(n int) [][2]float64 {
	coords := make([][2]float64, n)
	for i := range coords {
		coords[i] = [2]float64{-6.2, 106.8 + float64(i)*coordStep}
	}
	return coords
}

func newTestEngine(t testing.TB, g *da.Graph) *RoutingEngine {
	t.Helper()
	re, err := NewRoutingEngine(g, zap.NewNop(), nil)
	require.NoError(t, err)
	return re
}

// randomGraph. n vertices within roughly one km, edge lengths never shorter than the straight line and
// weights derived from random road profiles. some edges have parallel twins, some lack attributes.
func randomGraph(t testing.TB, rng *rand.Rand, n int, density float64) *da.Graph {
	t.Helper()
	coords := make([][2]float64, n)
	for i := range coords {
		coords[i] = [2]float64{-6.2 + rng.Float64()*0.01, 106.8 + rng.Float64()*0.01}
	}

	edges := make([]testEdge, 0)
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			if u == v || rng.Float64() >= density {
				continue
			}
			copies := 1 + rng.Intn(2)
			for c := 0; c < copies; c++ {
				straight := geo.HaversineDistance(coords[u][0], coords[u][1], coords[v][0], coords[v][1])
				length := straight*(1+rng.Float64()) + 1
				roadType := pkg.OsmHighwayType(rng.Intn(int(pkg.UNKNOWN) + 1))
				profile := pkg.GetRoadProfile(roadType)
				penalty := pkg.NO_INTERSECTION_PENALTY
				if rng.Intn(2) == 0 {
					penalty = pkg.INTERSECTION_PENALTY
				}

				opts := []da.EdgeOption{da.WithLength(length), da.WithRoadType(roadType)}
				if rng.Intn(5) != 0 {
					opts = append(opts,
						da.WithTime(length/pkg.KmhToMps(profile.SpeedKmh)),
						da.WithPollution(length*profile.PollutionMultiplier*penalty))
				}
				edges = append(edges, testEdge{tail: da.Index(u), head: da.Index(v), opts: opts})
			}
		}
	}
	return buildGraph(t, coords, edges)
}

// bruteForceCost. minimum cost s->t over every simple path, +Inf when t is unreachable.
func bruteForceCost(g *da.Graph, s, t da.Index, cf CostFunction) float64 {
	best := math.Inf(1)
	onPath := make([]bool, g.NumberOfVertices())

	var dfs func(u da.Index, cost float64)
	dfs = func(u da.Index, cost float64) {
		if u == t {
			best = math.Min(best, cost)
			return
		}
		onPath[u] = true
		for _, v := range g.Neighbors(u) {
			if onPath[v] {
				continue
			}
			dfs(v, cost+cf.GetWeight(minCostEdge(g, u, v, cf)))
		}
		onPath[u] = false
	}
	dfs(s, 0)
	return best
}

func mustCostFunction(t testing.TB, criterion costfunction.Criterion) CostFunction {
	t.Helper()
	cf, err := costfunction.New(criterion)
	require.NoError(t, err)
	return cf
}
