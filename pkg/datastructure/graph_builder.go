package datastructure

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/lintang-b-s/greenroute/pkg/geo"
)

var (
	ErrMalformedGraph = errors.New("malformed graph")
)

// GraphBuilder collects vertices and edges and freezes them into an immutable Graph.
type GraphBuilder struct {
	vertices []*Vertex
	edges    []*Edge
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]*Vertex, 0),
		edges:    make([]*Edge, 0),
	}
}

func NewGraphBuilderWithSize(numVertices, numEdges int) *GraphBuilder {
	return &GraphBuilder{
		vertices: make([]*Vertex, 0, numVertices),
		edges:    make([]*Edge, 0, numEdges),
	}
}

// AddVertex. returns the id of the new vertex, ids are assigned densely from 0.
func (gb *GraphBuilder) AddVertex(lat, lon float64, osmId int64) (Index, error) {
	if !geo.IsValidCoordinate(lat, lon) {
		return INVALID_VERTEX_ID, fmt.Errorf("%w: invalid coordinate (%f, %f) for osm node %d",
			ErrMalformedGraph, lat, lon, osmId)
	}
	id := Index(len(gb.vertices))
	gb.vertices = append(gb.vertices, NewVertex(lat, lon, id, osmId))
	return id, nil
}

func (gb *GraphBuilder) AddEdge(tail, head Index, opts ...EdgeOption) error {
	n := Index(len(gb.vertices))
	if tail >= n || head >= n {
		return fmt.Errorf("%w: edge %d->%d references a missing vertex (%d vertices)",
			ErrMalformedGraph, tail, head, n)
	}
	e := NewEdge(tail, head, opts...)
	if e.Has(HAS_LENGTH) && (e.length < 0 || math.IsNaN(e.length)) ||
		e.Has(HAS_TIME) && (e.time < 0 || math.IsNaN(e.time)) ||
		e.Has(HAS_POLLUTION) && (e.pollution < 0 || math.IsNaN(e.pollution)) {
		return fmt.Errorf("%w: edge %d->%d has a negative weight", ErrMalformedGraph, tail, head)
	}
	gb.edges = append(gb.edges, e)
	return nil
}

func (gb *GraphBuilder) NumberOfVertices() int {
	return len(gb.vertices)
}

// Build. groups edges by tail (stable, insertion order kept), assigns edge ids and parallel edge keys.
// the graph owns copies of the edges, so the builder can keep growing without touching it.
func (gb *GraphBuilder) Build() *Graph {
	n := len(gb.vertices)
	edges := make([]*Edge, len(gb.edges))
	for i, e := range gb.edges {
		ec := *e
		edges[i] = &ec
	}
	vertices := make([]*Vertex, n)
	copy(vertices, gb.vertices)

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].tail < edges[j].tail
	})

	firstOut := make([]Index, n+1)
	inDegree := make([]Index, n)
	for _, e := range edges {
		firstOut[e.tail+1]++
		inDegree[e.head]++
	}
	for u := 1; u <= n; u++ {
		firstOut[u] += firstOut[u-1]
	}

	for u := 0; u < n; u++ {
		keys := make(map[Index]int)
		for eId := firstOut[u]; eId < firstOut[u+1]; eId++ {
			e := edges[eId]
			e.edgeId = eId
			e.key = keys[e.head]
			keys[e.head]++
		}
	}

	return &Graph{
		vertices:    vertices,
		outEdges:    edges,
		firstOut:    firstOut,
		inDegree:    inDegree,
		boundingBox: computeBoundingBox(vertices),
	}
}

func computeBoundingBox(vertices []*Vertex) *BoundingBox {
	if len(vertices) == 0 {
		return NewBoundingBox(0, 0, 0, 0)
	}
	minLat, minLon := math.Inf(1), math.Inf(1)
	maxLat, maxLon := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		minLat = math.Min(minLat, v.lat)
		minLon = math.Min(minLon, v.lon)
		maxLat = math.Max(maxLat, v.lat)
		maxLon = math.Max(maxLon, v.lon)
	}
	return NewBoundingBox(minLat, minLon, maxLat, maxLon)
}

// InducedSubgraph. copy of g restricted to the vertices for which keep returns true, vertex ids are renumbered.
func (g *Graph) InducedSubgraph(keep func(u Index) bool) (*Graph, []Index, error) {
	gb := NewGraphBuilderWithSize(g.NumberOfVertices(), g.NumberOfEdges())
	oldToNew := make([]Index, g.NumberOfVertices())
	for _, v := range g.vertices {
		oldToNew[v.id] = INVALID_VERTEX_ID
		if !keep(v.id) {
			continue
		}
		newId, err := gb.AddVertex(v.lat, v.lon, v.osmId)
		if err != nil {
			return nil, nil, err
		}
		oldToNew[v.id] = newId
	}

	for _, e := range g.outEdges {
		tail, head := oldToNew[e.tail], oldToNew[e.head]
		if tail == INVALID_VERTEX_ID || head == INVALID_VERTEX_ID {
			continue
		}
		if err := gb.AddEdge(tail, head, e.options()...); err != nil {
			return nil, nil, err
		}
	}
	return gb.Build(), oldToNew, nil
}

// options. replays the attributes of e, absent attributes stay absent.
func (e *Edge) options() []EdgeOption {
	opts := make([]EdgeOption, 0, 4)
	if e.Has(HAS_LENGTH) {
		opts = append(opts, WithLength(e.length))
	}
	if e.Has(HAS_TIME) {
		opts = append(opts, WithTime(e.time))
	}
	if e.Has(HAS_POLLUTION) {
		opts = append(opts, WithPollution(e.pollution))
	}
	if e.Has(HAS_ROAD_TYPE) {
		opts = append(opts, WithRoadType(e.roadType))
	}
	return opts
}
