package datastructure

import (
	"math"

	"github.com/lintang-b-s/greenroute/pkg"
)

type Index uint32

const (
	INVALID_VERTEX_ID = Index(math.MaxUint32)
)

type Vertex struct {
	lat   float64
	lon   float64
	id    Index
	osmId int64
}

func NewVertex(lat, lon float64, id Index, osmId int64) *Vertex {
	return &Vertex{
		lat:   lat,
		lon:   lon,
		id:    id,
		osmId: osmId,
	}
}

func (v *Vertex) GetID() Index {
	return v.id
}

func (v *Vertex) GetLat() float64 {
	return v.lat
}

func (v *Vertex) GetLon() float64 {
	return v.lon
}

func (v *Vertex) GetOsmId() int64 {
	return v.osmId
}

// AttributeMask records which edge attributes were set by the weighting step.
type AttributeMask uint8

const (
	HAS_LENGTH AttributeMask = 1 << iota
	HAS_TIME
	HAS_POLLUTION
	HAS_ROAD_TYPE
)

// Edge is a directed road segment tail->head. key numbers the parallel edges of the same (tail, head) pair.
type Edge struct {
	edgeId    Index
	tail      Index
	head      Index
	key       int
	length    float64 // meter
	time      float64 // second
	pollution float64
	roadType  pkg.OsmHighwayType
	mask      AttributeMask
}

type EdgeOption func(e *Edge)

func WithLength(length float64) EdgeOption {
	return func(e *Edge) {
		e.length = length
		e.mask |= HAS_LENGTH
	}
}

func WithTime(seconds float64) EdgeOption {
	return func(e *Edge) {
		e.time = seconds
		e.mask |= HAS_TIME
	}
}

func WithPollution(pollution float64) EdgeOption {
	return func(e *Edge) {
		e.pollution = pollution
		e.mask |= HAS_POLLUTION
	}
}

func WithRoadType(roadType pkg.OsmHighwayType) EdgeOption {
	return func(e *Edge) {
		e.roadType = roadType
		e.mask |= HAS_ROAD_TYPE
	}
}

func NewEdge(tail, head Index, opts ...EdgeOption) *Edge {
	e := &Edge{
		tail:     tail,
		head:     head,
		roadType: pkg.UNKNOWN,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Edge) GetEdgeId() Index {
	return e.edgeId
}

func (e *Edge) GetTail() Index {
	return e.tail
}

func (e *Edge) GetHead() Index {
	return e.head
}

func (e *Edge) GetKey() int {
	return e.key
}

func (e *Edge) GetMask() AttributeMask {
	return e.mask
}

func (e *Edge) Has(attr AttributeMask) bool {
	return e.mask&attr != 0
}

// GetLength. meter, DEFAULT_SEGMENT_LENGTH when absent.
func (e *Edge) GetLength() float64 {
	if !e.Has(HAS_LENGTH) {
		return pkg.DEFAULT_SEGMENT_LENGTH
	}
	return e.length
}

// GetTime. seconds; when absent the length is driven at the default road speed.
func (e *Edge) GetTime() float64 {
	if !e.Has(HAS_TIME) {
		return e.GetLength() / pkg.KmhToMps(pkg.DefaultRoadProfile().SpeedKmh)
	}
	return e.time
}

// GetPollution. when absent the length is scaled by the default pollution multiplier.
func (e *Edge) GetPollution() float64 {
	if !e.Has(HAS_POLLUTION) {
		return e.GetLength() * pkg.DefaultRoadProfile().PollutionMultiplier
	}
	return e.pollution
}

func (e *Edge) GetRoadType() pkg.OsmHighwayType {
	return e.roadType
}

// Graph is a directed multigraph. out edges are stored contiguously per tail vertex:
// outEdges[firstOut[u]:firstOut[u+1]] are the edges leaving u, in insertion order.
type Graph struct {
	vertices    []*Vertex
	outEdges    []*Edge
	firstOut    []Index
	inDegree    []Index
	boundingBox *BoundingBox
}

func (g *Graph) NumberOfVertices() int {
	return len(g.vertices)
}

func (g *Graph) NumberOfEdges() int {
	return len(g.outEdges)
}

func (g *Graph) IsValidVertex(u Index) bool {
	return int(u) < len(g.vertices)
}

func (g *Graph) GetVertex(u Index) *Vertex {
	return g.vertices[u]
}

func (g *Graph) GetVertexCoordinates(u Index) (float64, float64) {
	v := g.vertices[u]
	return v.lat, v.lon
}

func (g *Graph) GetEdge(e Index) *Edge {
	return g.outEdges[e]
}

func (g *Graph) GetOutDegree(u Index) Index {
	return g.firstOut[u+1] - g.firstOut[u]
}

func (g *Graph) GetInDegree(u Index) Index {
	return g.inDegree[u]
}

// Degree. number of incident edges (in + out), parallel edges counted separately.
func (g *Graph) Degree(u Index) int {
	return int(g.GetOutDegree(u) + g.GetInDegree(u))
}

func (g *Graph) GetOutEdges(u Index) []*Edge {
	return g.outEdges[g.firstOut[u]:g.firstOut[u+1]]
}

func (g *Graph) ForOutEdgesOf(u Index, handle func(e *Edge)) {
	for e := g.firstOut[u]; e < g.firstOut[u+1]; e++ {
		handle(g.outEdges[e])
	}
}

// Neighbors. distinct heads of the out edges of u, in adjacency order.
func (g *Graph) Neighbors(u Index) []Index {
	outEdges := g.GetOutEdges(u)
	neighbors := make([]Index, 0, len(outEdges))
	seen := make(map[Index]struct{}, len(outEdges))
	for _, e := range outEdges {
		if _, ok := seen[e.head]; ok {
			continue
		}
		seen[e.head] = struct{}{}
		neighbors = append(neighbors, e.head)
	}
	return neighbors
}

// EdgesBetween. all edges u->v ordered by key, empty when u and v are not adjacent.
func (g *Graph) EdgesBetween(u, v Index) []*Edge {
	edges := make([]*Edge, 0, 1)
	for _, e := range g.GetOutEdges(u) {
		if e.head == v {
			edges = append(edges, e)
		}
	}
	return edges
}

func (g *Graph) ForVertices(handle func(v *Vertex)) {
	for _, v := range g.vertices {
		handle(v)
	}
}

func (g *Graph) ForEdges(handle func(e *Edge)) {
	for _, e := range g.outEdges {
		handle(e)
	}
}

func (g *Graph) GetBoundingBox() *BoundingBox {
	return g.boundingBox
}
