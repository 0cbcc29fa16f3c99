package render

import (
	"github.com/matzehuels/skillgraph/pkg/graph"
)

// Segment is an edge in screen space.
type Segment struct {
	X1, Y1, X2, Y2 float64
	Color          string
	Width          float64
}

// Sprite is a node in screen space together with its label.
type Sprite struct {
	ID          string
	Category    graph.Category
	X, Y, R     float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Text        Text
	TextColor   string
}

// Frame is everything needed to draw one state of the graph.
type Frame struct {
	Viewport graph.Viewport
	Camera   graph.Camera
	Theme    Theme
	Font     string
	Edges    []Segment
	Nodes    []Sprite
}

// Empty reports whether the frame has nothing to draw.
func (f Frame) Empty() bool { return len(f.Nodes) == 0 }

// Build projects the positioned nodes of s through cam. Sizes scale with
// the zoom factor; label layout is computed in world units first so the
// truncation rules do not depend on the zoom. Self-loops and links to
// unpositioned nodes produce no segment.
func Build(s *graph.Store, vp graph.Viewport, cam graph.Camera, theme Theme, cfg Config) Frame {
	cfg.SetDefaults()
	f := Frame{Viewport: vp, Camera: cam, Theme: theme, Font: cfg.FontFamily}
	if s == nil || !vp.Valid() {
		return f
	}
	k := cam.K
	if k <= 0 {
		k = 1
	}
	outline := theme.Outline()

	f.Edges = make([]Segment, 0, len(s.Links))
	for _, l := range s.Links {
		a, b := &s.Nodes[l.S], &s.Nodes[l.T]
		if l.IsLoop() || !a.Positioned() || !b.Positioned() {
			continue
		}
		x1, y1 := cam.Project(vp, a.X, a.Y)
		x2, y2 := cam.Project(vp, b.X, b.Y)
		f.Edges = append(f.Edges, Segment{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: outline, Width: cfg.EdgeWidth * k})
	}

	f.Nodes = make([]Sprite, 0, len(s.Nodes))
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if !n.Positioned() {
			continue
		}
		r := Radius(n.Level, cfg)
		t := Label(n.Label(), r, cfg)
		t.Size *= k
		t.LineHeight *= k

		x, y := cam.Project(vp, n.X, n.Y)
		f.Nodes = append(f.Nodes, Sprite{
			ID:          n.ID,
			Category:    n.Category,
			X:           x,
			Y:           y,
			R:           r * k,
			Fill:        CategoryColor(n.Category),
			Stroke:      outline,
			StrokeWidth: cfg.StrokeWidth * k,
			Text:        t,
			TextColor:   LabelColor,
		})
	}
	return f
}

// HitTest returns the ID of the node drawn at screen point (x, y). Nodes
// drawn later are on top and win.
func (f Frame) HitTest(x, y float64) (string, bool) {
	for i := len(f.Nodes) - 1; i >= 0; i-- {
		n := &f.Nodes[i]
		dx, dy := x-n.X, y-n.Y
		if dx*dx+dy*dy <= n.R*n.R {
			return n.ID, true
		}
	}
	return "", false
}
