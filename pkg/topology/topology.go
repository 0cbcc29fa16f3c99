// Package topology answers structural questions about a [graph.Store]:
// node degrees, leaf tagging, connected components and geometric edge
// crossings.
//
// All functions treat links as undirected. Every function runs in
// O(V+E) except [CountCrossings], which inspects edge pairs.
package topology

import "github.com/matzehuels/skillgraph/pkg/graph"

// Degrees returns the degree of every node, indexed like s.Nodes.
// Both endpoints of every link are counted, so a self-loop adds two to its
// node and duplicate links each count.
func Degrees(s *graph.Store) []int {
	deg := make([]int, s.Len())
	for _, l := range s.Links {
		deg[l.S]++
		deg[l.T]++
	}
	return deg
}

// MarkLeaves sets Leaf on every node whose degree is at most one and returns
// the number of leaves. Isolated nodes are leaves.
func MarkLeaves(s *graph.Store) int {
	leaves := 0
	for i, d := range Degrees(s) {
		s.Nodes[i].Leaf = d <= 1
		if s.Nodes[i].Leaf {
			leaves++
		}
	}
	return leaves
}

// Components partitions the store into connected components using an
// iterative depth-first traversal. Components are returned in order of their
// first node, and nodes inside a component are in DFS pre-order.
func Components(s *graph.Store) [][]int {
	adj := adjacency(s)
	seen := make([]bool, s.Len())

	var (
		comps [][]int
		stack []int
	)
	for root := range s.Nodes {
		if seen[root] {
			continue
		}
		var comp []int
		stack = append(stack[:0], root)
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[v] {
				continue
			}
			seen[v] = true
			comp = append(comp, v)
			// Reverse push keeps visiting order equal to the recursive form.
			for i := len(adj[v]) - 1; i >= 0; i-- {
				if w := adj[v][i]; !seen[w] {
					stack = append(stack, w)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

func adjacency(s *graph.Store) [][]int {
	adj := make([][]int, s.Len())
	for _, l := range s.Links {
		adj[l.S] = append(adj[l.S], l.T)
		if !l.IsLoop() {
			adj[l.T] = append(adj[l.T], l.S)
		}
	}
	return adj
}
