package routing

import (
	da "github.com/lintang-b-s/greenroute/pkg/datastructure"
)

// vertexInfo. best known cost-so-far of a vertex and the vertex it was reached from.
type vertexInfo struct {
	g      float64
	parent da.Index
}

func newVertexInfo(g float64, parent da.Index) vertexInfo {
	return vertexInfo{g: g, parent: parent}
}

func (vi vertexInfo) getG() float64 {
	return vi.g
}

func (vi vertexInfo) getParent() da.Index {
	return vi.parent
}

// ExploredEdge. a relaxation that improved the best known cost of To.
type ExploredEdge struct {
	From da.Index `json:"from"`
	To   da.Index `json:"to"`
}

type SearchResult struct {
	Path          []da.Index
	Cost          float64
	ExploredNodes []da.Index
	ExploredEdges []ExploredEdge
	Criterion     string
}

func (sr *SearchResult) IsReachable() bool {
	return len(sr.Path) > 0
}
