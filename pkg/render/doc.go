// Package render turns a simulated skill graph into drawable frames.
//
// # Overview
//
// Rendering happens in two steps. [Build] projects an attached
// [graph.Store] through a camera into screen space and produces a [Frame]:
// edge segments, node circles and their label lines, already colored for
// the active [Theme]. [Paint] then replays a frame onto any [Context].
//
// A Context is a minimal drawing surface. The subpackages provide three:
//
//   - [svg]: standalone SVG documents
//   - [term]: a colored terminal cell grid, used by the interactive view
//   - [dot]: Graphviz DOT with pinned positions, rendered with neato
//
// # Labels
//
// [Label] applies the label rules: the font shrinks for long words, many
// words or long names, multi-word names stack one word per line, and
// words too wide for the circle are truncated with "..".
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg).
//
//	doc := svg.Render(frame)
//	pdf, err := render.ToPDF(ctx, doc)
//
// [svg]: github.com/matzehuels/skillgraph/pkg/render/svg
// [term]: github.com/matzehuels/skillgraph/pkg/render/term
// [dot]: github.com/matzehuels/skillgraph/pkg/render/dot
package render
