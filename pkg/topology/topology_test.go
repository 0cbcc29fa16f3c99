package topology

import (
	"slices"
	"testing"

	"github.com/matzehuels/skillgraph/pkg/graph"
)

func store(ids []string, edges [][2]string) *graph.Store {
	g := graph.Graph{}
	for _, id := range ids {
		g.Nodes = append(g.Nodes, graph.Node{ID: id, Category: graph.CategoryDev})
	}
	for _, e := range edges {
		g.Edges = append(g.Edges, graph.Edge{Source: e[0], Target: e[1]})
	}
	return graph.NewStore(g)
}

func leafIDs(s *graph.Store) []string {
	var out []string
	for i := range s.Nodes {
		if s.Nodes[i].Leaf {
			out = append(out, s.Nodes[i].ID)
		}
	}
	return out
}

func TestMarkLeaves(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  []string
	}{
		{
			name:  "path",
			ids:   []string{"A", "B", "C"},
			edges: [][2]string{{"A", "B"}, {"B", "C"}},
			want:  []string{"A", "C"},
		},
		{
			name:  "isolated node is a leaf",
			ids:   []string{"A", "B", "D"},
			edges: [][2]string{{"A", "B"}},
			want:  []string{"A", "B", "D"},
		},
		{
			name:  "self-loop counts twice",
			ids:   []string{"A"},
			edges: [][2]string{{"A", "A"}},
			want:  nil,
		},
		{
			name:  "duplicate links count separately",
			ids:   []string{"A", "B"},
			edges: [][2]string{{"A", "B"}, {"B", "A"}},
			want:  nil,
		},
		{
			name:  "dangling edge is ignored",
			ids:   []string{"A", "B"},
			edges: [][2]string{{"A", "B"}, {"A", "ghost"}},
			want:  []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store(tt.ids, tt.edges)
			n := MarkLeaves(s)
			got := leafIDs(s)
			if !slices.Equal(got, tt.want) {
				t.Errorf("leaves = %v, want %v", got, tt.want)
			}
			if n != len(tt.want) {
				t.Errorf("MarkLeaves() = %d, want %d", n, len(tt.want))
			}
		})
	}
}

func TestComponents(t *testing.T) {
	s := store(
		[]string{"A", "B", "C", "D", "E"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"D", "E"}},
	)
	comps := Components(s)
	if len(comps) != 2 {
		t.Fatalf("components = %d, want 2", len(comps))
	}
	if !slices.Equal(comps[0], []int{0, 1, 2}) {
		t.Errorf("first component = %v, want [0 1 2]", comps[0])
	}
	if !slices.Equal(comps[1], []int{3, 4}) {
		t.Errorf("second component = %v, want [3 4]", comps[1])
	}
}

func TestComponentsIsolatedAndEmpty(t *testing.T) {
	if got := Components(store(nil, nil)); len(got) != 0 {
		t.Errorf("empty store components = %v, want none", got)
	}

	s := store([]string{"A", "B", "D"}, [][2]string{{"A", "B"}})
	comps := Components(s)
	if len(comps) != 2 || !slices.Equal(comps[1], []int{2}) {
		t.Errorf("components = %v, want D on its own", comps)
	}
}

func TestComponentsPreOrder(t *testing.T) {
	// Star with a tail: visiting order must follow adjacency order depth first.
	s := store(
		[]string{"r", "a", "b", "a1"},
		[][2]string{{"r", "a"}, {"r", "b"}, {"a", "a1"}},
	)
	comps := Components(s)
	if len(comps) != 1 {
		t.Fatalf("components = %d, want 1", len(comps))
	}
	if want := []int{0, 1, 3, 2}; !slices.Equal(comps[0], want) {
		t.Errorf("order = %v, want %v", comps[0], want)
	}
}

func TestComponentsPartition(t *testing.T) {
	s := graph.NewStore(graph.Catalog())
	comps := Components(s)

	seen := make([]int, s.Len())
	for _, c := range comps {
		for _, i := range c {
			seen[i]++
		}
	}
	for i, n := range seen {
		if n != 1 {
			t.Errorf("node %s appears in %d components, want 1", s.Nodes[i].ID, n)
		}
	}

	member := make([]int, s.Len())
	for ci, c := range comps {
		for _, i := range c {
			member[i] = ci
		}
	}
	for _, l := range s.Links {
		if member[l.S] != member[l.T] {
			t.Errorf("link %s-%s crosses components", s.Nodes[l.S].ID, s.Nodes[l.T].ID)
		}
	}
}

func TestAnalyzeCatalog(t *testing.T) {
	r := Analyze(graph.Catalog())
	if r.Nodes != 83 || r.Edges != 120 || r.Dropped != 0 {
		t.Errorf("counts = %d/%d/%d, want 83/120/0", r.Nodes, r.Edges, r.Dropped)
	}
	if want := []int{32, 20, 9, 7, 6, 4, 3, 1, 1}; !slices.Equal(r.Components, want) {
		t.Errorf("components = %v, want %v", r.Components, want)
	}
	if r.Isolated != 2 {
		t.Errorf("isolated = %d, want 2", r.Isolated)
	}
	if r.Leaves != 24 || len(r.Leaf) != 24 {
		t.Errorf("leaves = %d (%d ids), want 24", r.Leaves, len(r.Leaf))
	}
}

func TestCountCrossings(t *testing.T) {
	s := store(
		[]string{"a", "b", "c", "d", "e"},
		[][2]string{{"a", "b"}, {"c", "d"}, {"a", "c"}, {"e", "e"}},
	)
	pos := map[string][2]float64{
		"a": {0, 0}, "b": {10, 10}, "c": {0, 10}, "d": {10, 0}, "e": {5, 5},
	}
	for i := range s.Nodes {
		p := pos[s.Nodes[i].ID]
		s.Nodes[i].X, s.Nodes[i].Y = p[0], p[1]
	}

	if got := CountCrossings(s); got != 1 {
		t.Errorf("CountCrossings() = %d, want 1", got)
	}

	// Moving d to the other side removes the crossing.
	d := s.Lookup("d")
	d.X, d.Y = -10, 20
	if got := CountCrossings(s); got != 0 {
		t.Errorf("CountCrossings() after move = %d, want 0", got)
	}
}
