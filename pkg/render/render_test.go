package render

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/skillgraph/pkg/graph"
)

func TestRadius(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		level int
		want  float64
	}{
		{0, 32},
		{50, 40},
		{100, 48},
		{-10, 32},
		{250, 48},
	}
	for _, tt := range tests {
		if got := Radius(tt.level, cfg); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Radius(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLabel(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name      string
		label     string
		r         float64
		wantSize  float64
		wantLines []string
	}{
		{"short", "Go", 40, 12, []string{"Go"}},
		{"two words", "Machine Learning", 40, 12, []string{"Machine", "Learning"}},
		{"long word", "Kubernetes-ops", 40, 10, []string{"Kubernetes-ops"}},
		{"many words", "a b c d e", 40, 10, []string{"a", "b", "c", "d", "e"}},
		{"long total", "Cloud Native Platform Ops", 40, 11, []string{"Cloud", "Native", "Platform", "Ops"}},
		{"long word and total", "Infrastructure Automation", 40, 9, []string{"Infrastructure", "Automation"}},
		{"single truncated", "abcdefghij", 4, 12, []string{"abcde.."}},
		{"multi truncated", "abcdefghij xy", 4, 12, []string{"abcd..", "xy"}},
		{"empty", "  ", 40, 12, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Label(tt.label, tt.r, cfg)
			if got.Size != tt.wantSize {
				t.Errorf("size = %v, want %v", got.Size, tt.wantSize)
			}
			if !slices.Equal(got.Lines, tt.wantLines) {
				t.Errorf("lines = %q, want %q", got.Lines, tt.wantLines)
			}
			if got.LineHeight != got.Size+2 {
				t.Errorf("line height = %v, want %v", got.LineHeight, got.Size+2)
			}
		})
	}
}

func TestLabelNeverBelowMinimum(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FontSize = 10
	got := Label("Supercalifragilistic expialidocious words here now", 40, cfg)
	if got.Size != cfg.MinFontSize {
		t.Errorf("size = %v, want %v", got.Size, cfg.MinFontSize)
	}
}

func TestParseTheme(t *testing.T) {
	for in, want := range map[string]Theme{"dark": Dark, "LIGHT": Light, " Dark ": Dark} {
		got, err := ParseTheme(in)
		if err != nil || got != want {
			t.Errorf("ParseTheme(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Error("ParseTheme(sepia) succeeded")
	}
}

func TestThemeColors(t *testing.T) {
	if Dark.Outline() != "rgba(255,255,255,0.2)" || Light.Outline() != "rgba(0,0,0,0.2)" {
		t.Errorf("outline colors: dark=%s light=%s", Dark.Outline(), Light.Outline())
	}
	for _, c := range graph.Categories() {
		if CategoryColor(c) == FallbackColor {
			t.Errorf("category %s has no color", c)
		}
	}
	if CategoryColor("unknown") != FallbackColor {
		t.Error("unknown category not using fallback")
	}
}

func testStore() *graph.Store {
	s := graph.NewStore(graph.Graph{
		Nodes: []graph.Node{
			{ID: "a", Name: "Alpha Beta", Category: graph.CategoryLanguages, Level: 50},
			{ID: "b", Name: "Gamma", Category: graph.CategoryCloud, Level: 100},
			{ID: "c", Category: graph.CategoryTest},
		},
		Edges: []graph.Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "b"}, {Source: "a", Target: "c"}},
	})
	s.Nodes[0].X, s.Nodes[0].Y = 100, 100
	s.Nodes[1].X, s.Nodes[1].Y = 300, 200
	return s
}

func TestBuild(t *testing.T) {
	vp := graph.Viewport{Width: 400, Height: 300}
	cam := graph.Camera{X: 200, Y: 150, K: 2}
	f := Build(testStore(), vp, cam, Dark, DefaultConfig())

	if len(f.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2 (unpositioned skipped)", len(f.Nodes))
	}
	if len(f.Edges) != 1 {
		t.Fatalf("edges = %d, want 1 (loop and unpositioned skipped)", len(f.Edges))
	}

	a := f.Nodes[0]
	if a.X != 0 || a.Y != 50 {
		t.Errorf("a projected to (%v,%v), want (0,50)", a.X, a.Y)
	}
	if a.R != 80 || a.StrokeWidth != 4 || a.Text.Size != 24 {
		t.Errorf("a not scaled by zoom: r=%v stroke=%v font=%v", a.R, a.StrokeWidth, a.Text.Size)
	}
	if a.Fill != "#FF6B6B" || a.Stroke != Dark.Outline() || a.TextColor != LabelColor {
		t.Errorf("a colors: %+v", a)
	}
	if e := f.Edges[0]; e.X2 != 400 || e.Y2 != 250 || e.Color != Dark.Outline() {
		t.Errorf("edge = %+v", e)
	}
}

func TestBuildDegenerate(t *testing.T) {
	if f := Build(nil, graph.Viewport{Width: 10, Height: 10}, graph.Camera{K: 1}, Light, DefaultConfig()); !f.Empty() {
		t.Error("nil store produced a frame")
	}
	if f := Build(testStore(), graph.Viewport{}, graph.Camera{K: 1}, Light, DefaultConfig()); !f.Empty() {
		t.Error("zero viewport produced a frame")
	}
}

func TestHitTest(t *testing.T) {
	vp := graph.Viewport{Width: 400, Height: 300}
	f := Build(testStore(), vp, graph.IdentityCamera(vp), Light, DefaultConfig())

	if id, ok := f.HitTest(110, 95); !ok || id != "a" {
		t.Errorf("HitTest inside a = %q, %v", id, ok)
	}
	if _, ok := f.HitTest(200, 10); ok {
		t.Error("HitTest on empty space found a node")
	}
}

type call struct {
	op   string
	text string
}

type recorder struct{ calls []call }

func (r *recorder) Clear(graph.Viewport, string) { r.calls = append(r.calls, call{op: "clear"}) }
func (r *recorder) Line(_, _, _, _ float64, _ string, _ float64) {
	r.calls = append(r.calls, call{op: "line"})
}
func (r *recorder) Circle(_, _, _ float64, _, _ string, _ float64) {
	r.calls = append(r.calls, call{op: "circle"})
}
func (r *recorder) Text(_, _ float64, s string, _ float64, _ string) {
	r.calls = append(r.calls, call{op: "text", text: s})
}

func TestPaintOrder(t *testing.T) {
	vp := graph.Viewport{Width: 400, Height: 300}
	f := Build(testStore(), vp, graph.IdentityCamera(vp), Light, DefaultConfig())

	var r recorder
	if !Paint(&r, f) {
		t.Fatal("Paint returned false")
	}
	var ops []string
	for _, c := range r.calls {
		if len(ops) == 0 || ops[len(ops)-1] != c.op {
			ops = append(ops, c.op)
		}
	}
	if want := []string{"clear", "line", "circle", "text"}; !slices.Equal(ops, want) {
		t.Errorf("paint phases = %v, want %v", ops, want)
	}
	var texts []string
	for _, c := range r.calls {
		if c.op == "text" {
			texts = append(texts, c.text)
		}
	}
	if want := []string{"Alpha", "Beta", "Gamma"}; !slices.Equal(texts, want) {
		t.Errorf("texts = %v, want %v", texts, want)
	}
}

func TestPaintNilContext(t *testing.T) {
	vp := graph.Viewport{Width: 400, Height: 300}
	f := Build(testStore(), vp, graph.IdentityCamera(vp), Light, DefaultConfig())
	if Paint(nil, f) {
		t.Error("Paint(nil) returned true")
	}
}
