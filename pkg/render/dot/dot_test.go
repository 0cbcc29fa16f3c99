package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/render"
)

func frame() render.Frame {
	s := graph.NewStore(graph.Graph{
		Nodes: []graph.Node{
			{ID: "go", Name: "Go Lang", Category: graph.CategoryLanguages, Level: 50},
			{ID: "k8s", Name: "Kubernetes", Category: graph.CategoryCloud, Level: 50},
		},
		Edges: []graph.Edge{{Source: "go", Target: "k8s"}},
	})
	s.Nodes[0].X, s.Nodes[0].Y = 100, 100
	s.Nodes[1].X, s.Nodes[1].Y = 300, 200
	vp := graph.Viewport{Width: 400, Height: 300}
	return render.Build(s, vp, graph.IdentityCamera(vp), render.Light, render.DefaultConfig())
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(frame())

	for _, want := range []string{
		"graph G {",
		"layout=neato;",
		`"go" [label="Go\nLang", pos="75.00,150.00!"`,
		`"k8s" [label="Kubernetes", pos="225.00,75.00!"`,
		`fillcolor="#FF6B6B"`,
		`"go" -- "k8s" [color="#00000033"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestHexColor(t *testing.T) {
	tests := []struct{ in, want string }{
		{"rgba(255,255,255,0.2)", "#ffffff33"},
		{"rgba(0,0,0,0.2)", "#00000033"},
		{"#4ECDC4", "#4ECDC4"},
	}
	for _, tt := range tests {
		if got := hexColor(tt.in); got != tt.want {
			t.Errorf("hexColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="300pt" height="225pt" viewBox="0.00 0.00 300.00 225.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 300.00 225.00" width="300" height="225">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox changed input: %s", got)
	}
}
