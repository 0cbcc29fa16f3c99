// Package pkg provides the libraries behind skillgraph, a force-directed
// skill map.
//
// # Overview
//
// Skillgraph draws a fixed catalog of skills as circles sized by proficiency
// and colored by category, linked by relationship edges. Selecting a
// category narrows the graph to that category's relationships. The pkg
// directory is organized as follows:
//
//  1. [graph] - Catalog, domain types, the indexed store and snapshots
//  2. [filter], [layout], [physics], [topology] - Graph derivation and placement
//  3. [engine] - The frame loop that sequences events, layout and camera
//  4. [render] - Frame building with svg, dot and term sinks
//  5. [pipeline] - Headless load → simulate → render with caching
//
// # Architecture
//
// The typical data flow:
//
//	catalog (embedded JSON)
//	       ↓
//	[filter] category subgraph
//	       ↓
//	[layout] initial placement → [physics] simulation
//	       ↓
//	[engine] camera, fit and events
//	       ↓
//	[render] frame → SVG / DOT / terminal / JSON
//
// # Quick Start
//
//	e := engine.New(graph.Catalog(), engine.Options{})
//	e.Mount(start)
//	e.Post(engine.ViewportChanged{Width: 1200, Height: 800})
//	e.RunUntilIdle(start, 16*time.Millisecond, 5000)
//	svgData := svg.Render(e.Frame())
//
// Or let the pipeline do it, with caching:
//
//	r := pipeline.NewRunner(nil, nil, nil)
//	res, err := r.Execute(ctx, pipeline.Options{Formats: []string{"svg"}})
//
// # Supporting Packages
//
// [config] - TOML configuration file.
//
// [cache] - File, Redis and null caches for snapshots and artifacts.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks through which libraries report events.
//
// [buildinfo] - Version information.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/graph
// [filter]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/filter
// [layout]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/layout
// [physics]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/physics
// [topology]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/topology
// [engine]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/engine
// [render]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/skillgraph/pkg/buildinfo
package pkg
