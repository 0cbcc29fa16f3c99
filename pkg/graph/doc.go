// Package graph provides the skill graph model, the embedded catalog, and the
// index-addressed [Store] that layout, physics and rendering operate on.
//
// # Architecture
//
// The package sits at the boundary between wire formats and the engine:
//
//   - [Graph], [Node], [Edge]: Serialization types (JSON)
//   - [Store]: Arena of mutable node state (position, velocity, leaf flag)
//   - [Snapshot]: A rendered state with positions, used for export and caching
//
// A [Store] is built from a [Graph] with [NewStore]. Edges whose endpoints are
// not both present are dropped at that point, so nothing downstream ever sees
// a dangling reference.
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "go", "name": "Go", "category": "languages", "level": 90}],
//	  "edges": [{"source": "go", "target": "docker-dev"}]
//	}
//
// # Catalog
//
// [Catalog] returns a fresh copy of the built-in skill catalog. Callers may
// mutate the result freely; the embedded master copy is never modified.
package graph
