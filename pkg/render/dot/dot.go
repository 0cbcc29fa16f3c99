// Package dot exports frames as Graphviz DOT and renders them with
// go-graphviz.
//
// Node positions are pinned (pos="x,y!") and the graph uses the neato
// engine, so Graphviz draws the simulated layout instead of computing its
// own. Coordinates are converted from screen pixels to points with the y
// axis flipped.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/skillgraph/pkg/render"
)

// pointsPerPixel maps 96 dpi screen pixels to 72 dpi points.
const pointsPerPixel = 0.75

// ToDOT converts a frame to an undirected DOT graph with pinned positions.
// Edges are matched to nodes by their screen endpoints.
func ToDOT(f render.Frame) string {
	var buf bytes.Buffer
	h := f.Viewport.Height

	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", f.Theme.Background())
	fmt.Fprintf(&buf, "  bb=\"0,0,%.2f,%.2f\";\n", f.Viewport.Width*pointsPerPixel, h*pointsPerPixel)
	fmt.Fprintf(&buf, "  node [shape=circle, style=filled, fixedsize=true, fontname=%q, fontcolor=%q];\n",
		"Helvetica-Bold", render.LabelColor)
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	at := make(map[[2]float64]string, len(f.Nodes))
	for _, n := range f.Nodes {
		at[[2]float64{n.X, n.Y}] = n.ID
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, h), ", "))
	}

	buf.WriteString("\n")
	for _, e := range f.Edges {
		a, okA := at[[2]float64{e.X1, e.Y1}]
		b, okB := at[[2]float64{e.X2, e.Y2}]
		if !okA || !okB {
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q [color=%q];\n", a, b, hexColor(e.Color))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n render.Sprite, height float64) []string {
	diameter := 2 * n.R * pointsPerPixel / 72
	return []string{
		fmt.Sprintf("label=%q", strings.Join(n.Text.Lines, "\n")),
		fmt.Sprintf("pos=\"%.2f,%.2f!\"", n.X*pointsPerPixel, (height-n.Y)*pointsPerPixel),
		fmt.Sprintf("width=%.3f", diameter),
		fmt.Sprintf("fillcolor=%q", n.Fill),
		fmt.Sprintf("color=%q", hexColor(n.Stroke)),
		fmt.Sprintf("fontsize=%.1f", n.Text.Size*pointsPerPixel),
	}
}

// hexColor converts rgba(r,g,b,a) to Graphviz's #rrggbbaa form.
func hexColor(c string) string {
	var r, g, b int
	var a float64
	if _, err := fmt.Sscanf(c, "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err != nil {
		return c
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, int(a*255+0.5))
}

// Format selects a Graphviz output format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// Render lays out a DOT graph with neato and returns the output bytes.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()
	g.SetLayout("neato")

	gf := graphviz.SVG
	if format == PNG {
		gf = graphviz.PNG
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gf, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG renders a DOT graph to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, SVG)
}

// RenderPNG renders a DOT graph to PNG without going through rsvg-convert.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, PNG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the document scales like the native SVG output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
