package graph

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCatalog(t *testing.T) {
	g := Catalog()
	if got := g.NodeCount(); got != 83 {
		t.Errorf("nodes = %d, want 83", got)
	}
	if got := g.EdgeCount(); got != 120 {
		t.Errorf("edges = %d, want 120", got)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, dropped := g.Sanitize(); dropped != 0 {
		t.Errorf("catalog has %d dangling edges, want 0", dropped)
	}

	// Mutating a copy must not leak into later calls.
	g.Nodes[0].Name = "mutated"
	g.Edges = g.Edges[:1]
	again := Catalog()
	if again.Nodes[0].Name == "mutated" {
		t.Error("Catalog() returned shared node storage")
	}
	if again.EdgeCount() != 120 {
		t.Error("Catalog() returned shared edge storage")
	}
}

func TestCatalogCoversAllCategories(t *testing.T) {
	seen := map[Category]int{}
	for _, n := range Catalog().Nodes {
		seen[n.Category]++
	}
	for _, c := range Categories() {
		if seen[c] == 0 {
			t.Errorf("no catalog node in category %s", c)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"languages", CategoryLanguages, false},
		{"  Cloud ", CategoryCloud, false},
		{"TEST", CategoryTest, false},
		{"music", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCategory(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownCategory) {
				t.Errorf("error = %v, want ErrUnknownCategory", err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoryTitle(t *testing.T) {
	if got := CategoryKnowledge.Title(); got != "Knowledge" {
		t.Errorf("Title() = %q, want Knowledge", got)
	}
	if got := Category("").Title(); got != "All" {
		t.Errorf("empty Title() = %q, want All", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		g       Graph
		wantErr error
	}{
		{
			name: "valid",
			g:    Graph{Nodes: []Node{{ID: "a", Category: CategoryDev}}},
		},
		{
			name:    "empty id",
			g:       Graph{Nodes: []Node{{ID: "", Category: CategoryDev}}},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "duplicate",
			g:       Graph{Nodes: []Node{{ID: "a", Category: CategoryDev}, {ID: "a", Category: CategoryDev}}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name:    "unknown category",
			g:       Graph{Nodes: []Node{{ID: "a", Category: "music"}}},
			wantErr: ErrUnknownCategory,
		},
		{
			name: "dangling edge is not a validation error",
			g: Graph{
				Nodes: []Node{{ID: "a", Category: CategoryDev}},
				Edges: []Edge{{Source: "a", Target: "ghost"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.g.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "missing"},
			{Source: "gone", Target: "b"},
			{Source: "a", Target: "a"},
		},
	}
	out, dropped := g.Sanitize()
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	if out.EdgeCount() != 2 {
		t.Errorf("edges = %d, want 2", out.EdgeCount())
	}
	if g.EdgeCount() != 4 {
		t.Error("Sanitize mutated its receiver")
	}
}

func TestNewStore(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "a", Name: "dup"}},
		Edges: []Edge{
			{Source: "a", Target: "b"},
			{Source: "b", Target: "x"},
			{Source: "c", Target: "c"},
		},
	}
	s := NewStore(g)

	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.Dropped() != 1 {
		t.Errorf("Dropped() = %d, want 1", s.Dropped())
	}
	if len(s.Links) != 2 {
		t.Fatalf("links = %d, want 2", len(s.Links))
	}
	if !s.Links[1].IsLoop() {
		t.Error("self-loop should be kept as a loop link")
	}
	if i, ok := s.Index("b"); !ok || i != 1 {
		t.Errorf("Index(b) = %d, %v; want 1, true", i, ok)
	}
	if s.Lookup("a").Name == "dup" {
		t.Error("duplicate id should keep its first occurrence")
	}
	if s.Lookup("zzz") != nil {
		t.Error("Lookup of unknown id should be nil")
	}
	for i := range s.Nodes {
		if s.Nodes[i].Positioned() {
			t.Errorf("node %s should start unpositioned", s.Nodes[i].ID)
		}
	}
}

func TestStoreBounds(t *testing.T) {
	s := NewStore(Graph{Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}}})
	if _, _, _, _, ok := s.Bounds(nil); ok {
		t.Fatal("Bounds of unplaced store should report !ok")
	}

	s.Nodes[0].X, s.Nodes[0].Y = 0, 0
	s.Nodes[1].X, s.Nodes[1].Y = 100, 50
	s.Nodes[2].X, s.Nodes[2].Y = math.Inf(1), 10

	minX, minY, maxX, maxY, ok := s.Bounds(func(*NodeState) float64 { return 5 })
	if !ok {
		t.Fatal("Bounds reported !ok")
	}
	if minX != -5 || minY != -5 || maxX != 105 || maxY != 55 {
		t.Errorf("Bounds = (%v,%v,%v,%v), want (-5,-5,105,55)", minX, minY, maxX, maxY)
	}
}

func TestCameraProjectInverse(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600}
	cam := Camera{X: 120, Y: -40, K: 2.5}

	sx, sy := cam.Project(vp, 130, -30)
	if sx != 425 || sy != 325 {
		t.Errorf("Project = (%v,%v), want (425,325)", sx, sy)
	}
	x, y := cam.Unproject(vp, sx, sy)
	if math.Abs(x-130) > 1e-9 || math.Abs(y+30) > 1e-9 {
		t.Errorf("Unproject = (%v,%v), want (130,-30)", x, y)
	}

	id := IdentityCamera(vp)
	if sx, sy := id.Project(vp, 10, 20); sx != 10 || sy != 20 {
		t.Errorf("identity Project = (%v,%v), want (10,20)", sx, sy)
	}
}

func TestReadGraphFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	if err := WriteGraphFile(Catalog(), good); err != nil {
		t.Fatalf("WriteGraphFile: %v", err)
	}
	g, err := ReadGraphFile(good)
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if g.NodeCount() != 83 {
		t.Errorf("nodes = %d, want 83", g.NodeCount())
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"nodes":[{"id":"a","category":"music"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadGraphFile(bad); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("ReadGraphFile(bad) = %v, want ErrUnknownCategory", err)
	}

	if _, err := ReadGraphFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("ReadGraphFile(missing) should fail")
	}

	if _, err := ReadGraph(strings.NewReader("{not json")); err == nil {
		t.Error("ReadGraph should reject malformed JSON")
	}
}

func TestNewSnapshot(t *testing.T) {
	s := NewStore(Graph{
		Nodes: []Node{{ID: "a", Category: CategoryDev}, {ID: "b", Category: CategoryDev}},
		Edges: []Edge{{Source: "a", Target: "b"}},
	})
	s.Nodes[0].X, s.Nodes[0].Y, s.Nodes[0].Leaf = 10, 20, true

	vp := Viewport{Width: 200, Height: 100}
	snap := NewSnapshot(s, vp, IdentityCamera(vp))

	if snap.Nodes[0].X != 10 || !snap.Nodes[0].Leaf {
		t.Errorf("node a = %+v, want x=10 leaf", snap.Nodes[0])
	}
	if snap.Nodes[1].X != 100 || snap.Nodes[1].Y != 50 {
		t.Errorf("unplaced node b = (%v,%v), want viewport center", snap.Nodes[1].X, snap.Nodes[1].Y)
	}
	if len(snap.Edges) != 1 || snap.Edges[0].Source != "a" {
		t.Errorf("edges = %+v", snap.Edges)
	}

	data, err := MarshalSnapshot(snap)
	if err != nil {
		t.Fatalf("MarshalSnapshot: %v", err)
	}
	back, err := UnmarshalSnapshot(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshot: %v", err)
	}
	if diff := cmp.Diff(snap, back, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSnapshotStore(t *testing.T) {
	snap := Snapshot{
		Nodes: []PlacedNode{
			{Node: Node{ID: "a", Category: CategoryDev}, X: 10, Y: 20, Leaf: true},
			{Node: Node{ID: "b", Category: CategoryDev}, X: 30, Y: 40},
		},
		Edges: []Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "ghost"}},
	}

	s := snap.Store()
	if s.Len() != 2 || len(s.Links) != 1 || s.Dropped() != 1 {
		t.Fatalf("store = %d nodes, %d links, %d dropped", s.Len(), len(s.Links), s.Dropped())
	}
	a := s.Lookup("a")
	if a.X != 10 || a.Y != 20 || !a.Leaf || a.VX != 0 {
		t.Errorf("a = %+v", *a)
	}
	if b := s.Lookup("b"); b.X != 30 || b.Leaf {
		t.Errorf("b = %+v", *b)
	}
}
