package render

import "github.com/matzehuels/skillgraph/pkg/graph"

// Context is a drawing surface. Coordinates are screen pixels.
type Context interface {
	// Clear resets the surface to an empty page of the given size.
	Clear(vp graph.Viewport, background string)
	Line(x1, y1, x2, y2 float64, color string, width float64)
	Circle(cx, cy, r float64, fill, stroke string, strokeWidth float64)
	// Text draws s centered on (x, y).
	Text(x, y float64, s string, size float64, color string)
}

// Paint draws f onto ctx: all edges first, then node circles, then labels
// so that text is never hidden by a neighboring circle. It returns false
// without drawing when ctx is nil.
func Paint(ctx Context, f Frame) bool {
	if ctx == nil {
		return false
	}
	ctx.Clear(f.Viewport, f.Theme.Background())
	for _, e := range f.Edges {
		ctx.Line(e.X1, e.Y1, e.X2, e.Y2, e.Color, e.Width)
	}
	for _, n := range f.Nodes {
		ctx.Circle(n.X, n.Y, n.R, n.Fill, n.Stroke, n.StrokeWidth)
	}
	for _, n := range f.Nodes {
		y := n.Y - n.Text.Height()/2 + n.Text.LineHeight/2
		for i, line := range n.Text.Lines {
			ctx.Text(n.X, y+float64(i)*n.Text.LineHeight, line, n.Text.Size, n.TextColor)
		}
	}
	return true
}
