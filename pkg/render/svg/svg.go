// Package svg renders frames as standalone SVG documents.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/render"
)

// Option configures a [Canvas].
type Option func(*Canvas)

// WithTransparent leaves the page background unpainted.
func WithTransparent() Option { return func(c *Canvas) { c.transparent = true } }

// WithFont overrides the label font family.
func WithFont(family string) Option { return func(c *Canvas) { c.font = family } }

// WithTitle adds a <title> element to the document.
func WithTitle(title string) Option { return func(c *Canvas) { c.title = title } }

// Canvas is a [render.Context] that accumulates SVG elements.
type Canvas struct {
	buf         bytes.Buffer
	vp          graph.Viewport
	font        string
	title       string
	transparent bool
}

var _ render.Context = (*Canvas)(nil)

// New creates an empty canvas.
func New(opts ...Option) *Canvas {
	c := &Canvas{font: render.DefaultConfig().FontFamily}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Canvas) Clear(vp graph.Viewport, background string) {
	c.buf.Reset()
	c.vp = vp
	if c.title != "" {
		c.buf.WriteString("  <title>")
		writeEscaped(&c.buf, c.title)
		c.buf.WriteString("</title>\n")
	}
	if !c.transparent {
		fmt.Fprintf(&c.buf, `  <rect x="0" y="0" width="%.0f" height="%.0f" fill="%s"/>`+"\n",
			vp.Width, vp.Height, background)
	}
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, color string, width float64) {
	fmt.Fprintf(&c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x1, y1, x2, y2, color, width)
}

func (c *Canvas) Circle(cx, cy, r float64, fill, stroke string, strokeWidth float64) {
	fmt.Fprintf(&c.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
		cx, cy, r, fill, stroke, strokeWidth)
}

func (c *Canvas) Text(x, y float64, s string, size float64, color string) {
	fmt.Fprintf(&c.buf, `  <text x="%.2f" y="%.2f" font-size="%.2f" fill="%s">`, x, y, size, color)
	writeEscaped(&c.buf, s)
	c.buf.WriteString("</text>\n")
}

// Bytes wraps everything drawn since the last Clear into an SVG document.
func (c *Canvas) Bytes() []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.vp.Width, c.vp.Height, c.vp.Width, c.vp.Height)
	out.WriteString(`  <style>text { font-weight: bold; text-anchor: middle; dominant-baseline: central; font-family: `)
	writeEscaped(&out, c.font)
	out.WriteString("; }</style>\n")
	out.Write(c.buf.Bytes())
	out.WriteString("</svg>\n")
	return out.Bytes()
}

// Render paints f onto a fresh canvas and returns the SVG document.
func Render(f render.Frame, opts ...Option) []byte {
	c := New(append([]Option{WithFont(f.Font)}, opts...)...)
	render.Paint(c, f)
	return c.Bytes()
}

func writeEscaped(buf *bytes.Buffer, s string) {
	xml.EscapeText(buf, []byte(s))
}
