package topology

import (
	"slices"

	"github.com/matzehuels/skillgraph/pkg/graph"
)

// Report summarizes the structure of a graph.
type Report struct {
	Nodes      int      `json:"nodes"`
	Edges      int      `json:"edges"`
	Dropped    int      `json:"dropped"` // dangling edges discarded
	Loops      int      `json:"loops"`
	Leaves     int      `json:"leaves"`
	Isolated   int      `json:"isolated"`
	Components []int    `json:"components"` // sizes, largest first
	Leaf       []string `json:"leaf_ids,omitempty"`
}

// Analyze builds a store from g and reports its structure.
func Analyze(g graph.Graph) Report {
	s := graph.NewStore(g)
	MarkLeaves(s)

	r := Report{
		Nodes:   s.Len(),
		Edges:   len(s.Links),
		Dropped: s.Dropped(),
	}
	for _, l := range s.Links {
		if l.IsLoop() {
			r.Loops++
		}
	}
	for i, d := range Degrees(s) {
		if d == 0 {
			r.Isolated++
		}
		if s.Nodes[i].Leaf {
			r.Leaves++
			r.Leaf = append(r.Leaf, s.Nodes[i].ID)
		}
	}
	for _, c := range Components(s) {
		r.Components = append(r.Components, len(c))
	}
	slices.SortStableFunc(r.Components, func(a, b int) int { return b - a })
	return r
}
