package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeID is returned by [Graph.Validate] when a node has an
	// empty identifier.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.Validate] when two nodes share
	// the same identifier.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownCategory is returned by [ParseCategory] and [Graph.Validate]
	// for category names outside the fixed set.
	ErrUnknownCategory = errors.New("unknown category")
)

// =============================================================================
// Category
// =============================================================================

// Category groups skills for coloring, ring placement and filtering.
type Category string

// Known categories.
const (
	CategoryLanguages  Category = "languages"
	CategoryFrameworks Category = "frameworks"
	CategoryDatabase   Category = "database"
	CategoryDev        Category = "dev"
	CategoryTest       Category = "test"
	CategoryCloud      Category = "cloud"
	CategoryKnowledge  Category = "knowledge"
)

var categories = []Category{
	CategoryLanguages,
	CategoryFrameworks,
	CategoryDatabase,
	CategoryDev,
	CategoryTest,
	CategoryCloud,
	CategoryKnowledge,
}

// Categories returns every known category in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

// ParseCategory converts a user-supplied name into a Category.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(categories, c)
}

// Title returns the display name used on category controls.
func (c Category) Title() string {
	if c == "" {
		return "All"
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// =============================================================================
// Node, Edge, Graph
// =============================================================================

// Node is a single skill.
type Node struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Level    int      `json:"level"`           // 0..100, drives the rendered radius
	Group    int      `json:"group,omitempty"` // informational only
}

// Label returns the display name, falling back to the ID.
func (n Node) Label() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Edge is an undirected relationship stored as an ordered pair.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// IsLoop reports whether the edge connects a node to itself.
func (e Edge) IsLoop() bool { return e.Source == e.Target }

// Graph is the canonical serialization format for skill graphs.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges, including any dangling ones.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	return Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: slices.Clone(g.Edges),
	}
}

// Validate checks node identity and categories. Dangling edges are not an
// error here; they are dropped by [Graph.Sanitize] and [NewStore].
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrInvalidNodeID
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = struct{}{}
		if !n.Category.Valid() {
			return fmt.Errorf("node %s: %w: %q", n.ID, ErrUnknownCategory, n.Category)
		}
	}
	return nil
}

// Sanitize returns a copy of g without edges that reference missing nodes,
// along with the number of edges that were dropped.
func (g Graph) Sanitize() (Graph, int) {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	out := Graph{
		Nodes: slices.Clone(g.Nodes),
		Edges: make([]Edge, 0, len(g.Edges)),
	}
	for _, e := range g.Edges {
		_, okS := ids[e.Source]
		_, okT := ids[e.Target]
		if okS && okT {
			out.Edges = append(out.Edges, e)
		}
	}
	return out, len(g.Edges) - len(out.Edges)
}

// =============================================================================
// Viewport & Camera
// =============================================================================

// Viewport is the size of the drawing surface in pixels.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool { return v.Width > 0 && v.Height > 0 }

// Center returns the midpoint of the viewport.
func (v Viewport) Center() (float64, float64) { return v.Width / 2, v.Height / 2 }

// Camera maps world coordinates to screen coordinates. (X, Y) is the world
// point shown at the viewport center and K is the zoom factor.
type Camera struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// IdentityCamera returns the camera that shows world coordinates unchanged.
func IdentityCamera(vp Viewport) Camera {
	cx, cy := vp.Center()
	return Camera{X: cx, Y: cy, K: 1}
}

// Project converts a world point to screen space.
func (c Camera) Project(vp Viewport, x, y float64) (float64, float64) {
	return (x-c.X)*c.K + vp.Width/2, (y-c.Y)*c.K + vp.Height/2
}

// Unproject converts a screen point back to world space.
func (c Camera) Unproject(vp Viewport, sx, sy float64) (float64, float64) {
	k := c.K
	if k == 0 {
		k = 1
	}
	return (sx-vp.Width/2)/k + c.X, (sy-vp.Height/2)/k + c.Y
}
