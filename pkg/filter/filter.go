// Package filter derives the graph shown for a category selection.
//
// Selecting a category produces the subgraph induced by its relationships:
// every edge touching a node of that category, plus the nodes at the other
// end of those edges. The catalog itself is never modified.
package filter

import (
	"github.com/matzehuels/skillgraph/pkg/graph"
)

// Induce returns the graph shown for sel. A nil selection returns the
// whole catalog without dangling edges.
//
// For a category, the primary nodes are the catalog nodes of that category.
// The result keeps every edge with at least one primary endpoint, and the
// active nodes are the endpoints of those edges, in catalog order. Edges
// whose endpoints are missing from the catalog are dropped, and a primary
// node without any edges does not appear.
func Induce(catalog graph.Graph, sel *graph.Category) graph.Graph {
	if sel == nil {
		g, _ := catalog.Sanitize()
		return g
	}

	known := make(map[string]graph.Category, len(catalog.Nodes))
	for _, n := range catalog.Nodes {
		if _, dup := known[n.ID]; !dup {
			known[n.ID] = n.Category
		}
	}

	active := make(map[string]bool)
	out := graph.Graph{Edges: []graph.Edge{}}
	for _, e := range catalog.Edges {
		cs, okS := known[e.Source]
		ct, okT := known[e.Target]
		if !okS || !okT {
			continue
		}
		if cs != *sel && ct != *sel {
			continue
		}
		out.Edges = append(out.Edges, e)
		active[e.Source] = true
		active[e.Target] = true
	}

	out.Nodes = make([]graph.Node, 0, len(active))
	for _, n := range catalog.Nodes {
		if active[n.ID] {
			out.Nodes = append(out.Nodes, n)
			delete(active, n.ID)
		}
	}
	return out
}

// Controller holds the current category selection over a fixed catalog.
// The zero value is not usable; create one with [NewController].
type Controller struct {
	catalog  graph.Graph
	selected *graph.Category
}

// NewController returns a controller with no selection.
func NewController(catalog graph.Graph) *Controller {
	return &Controller{catalog: catalog.Clone()}
}

// Select makes c the current selection. It reports whether the selection
// changed; selecting the current category again is a no-op.
func (f *Controller) Select(c graph.Category) bool {
	if f.selected != nil && *f.selected == c {
		return false
	}
	f.selected = &c
	return true
}

// Clear removes the selection. It reports whether anything was selected.
func (f *Controller) Clear() bool {
	if f.selected == nil {
		return false
	}
	f.selected = nil
	return true
}

// Selected returns the current category, or "" when showing everything.
func (f *Controller) Selected() graph.Category {
	if f.selected == nil {
		return ""
	}
	return *f.selected
}

// Catalog returns a copy of the master catalog.
func (f *Controller) Catalog() graph.Graph { return f.catalog.Clone() }

// Active recomputes the graph for the current selection.
func (f *Controller) Active() graph.Graph {
	return Induce(f.catalog, f.selected)
}
