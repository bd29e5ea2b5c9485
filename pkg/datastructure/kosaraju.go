package datastructure

import (
	"github.com/lintang-b-s/greenroute/pkg/util"
)

// RunKosaraju. runs kosaraju's algorithm to find the strongly connected components (SCCs) of the graph.
// returns the component id of every vertex and the number of components.
func (g *Graph) RunKosaraju() ([]Index, int) {
	n := g.NumberOfVertices()

	inAdj := make([][]Index, n)
	g.ForEdges(func(e *Edge) {
		inAdj[e.head] = append(inAdj[e.head], e.tail)
	})

	order := make([]Index, 0, n)
	visited := make([]bool, n)
	for v := Index(0); v < Index(n); v++ {
		if !visited[v] {
			g.dfs(v, &order, visited, nil)
		}
	}

	order = util.ReverseG(order)

	visited = make([]bool, n)
	sccs := make([]Index, n)
	numComponents := 0

	for _, v := range order {
		if visited[v] {
			continue
		}
		component := make([]Index, 0, 10)
		g.dfs(v, &component, visited, inAdj)
		for _, u := range component {
			sccs[u] = Index(numComponents)
		}
		numComponents++
	}

	return sccs, numComponents
}

// LargestSCC. membership flag of every vertex in the largest strongly connected component.
func (g *Graph) LargestSCC() []bool {
	sccs, numComponents := g.RunKosaraju()
	size := make([]int, numComponents)
	for _, c := range sccs {
		size[c]++
	}

	largest := Index(0)
	for c := range size {
		if size[c] > size[largest] {
			largest = Index(c)
		}
	}

	member := make([]bool, len(sccs))
	for v, c := range sccs {
		member[v] = c == largest
	}
	return member
}

// dfs. iterative post-order dfs over out edges, or over inAdj when it is not nil (reversed graph).
func (g *Graph) dfs(s Index, output *[]Index, visited []bool, inAdj [][]Index) {
	type frame struct {
		v    Index
		next int
	}

	successors := func(v Index) []Index {
		if inAdj != nil {
			return inAdj[v]
		}
		return g.Neighbors(v)
	}

	visited[s] = true
	stack := []frame{{v: s}}
	adj := [][]Index{successors(s)}

	for len(stack) > 0 {
		top := len(stack) - 1
		cur := &stack[top]
		if cur.next < len(adj[top]) {
			w := adj[top][cur.next]
			cur.next++
			if !visited[w] {
				visited[w] = true
				stack = append(stack, frame{v: w})
				adj = append(adj, successors(w))
			}
			continue
		}

		*output = append(*output, cur.v)
		stack = stack[:top]
		adj = adj[:top]
	}
}
