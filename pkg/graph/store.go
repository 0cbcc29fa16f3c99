package graph

import "math"

// NodeState is a node plus the mutable state the engine tracks for it.
// A position of NaN means the node has not been placed yet. A Fixed node
// keeps its position while the simulation runs.
type NodeState struct {
	Node
	X, Y   float64
	VX, VY float64
	Leaf   bool
	Fixed  bool
}

// Positioned reports whether the node has a finite position.
func (n *NodeState) Positioned() bool {
	return !math.IsNaN(n.X) && !math.IsNaN(n.Y) && !math.IsInf(n.X, 0) && !math.IsInf(n.Y, 0)
}

// Link is an edge resolved to store indices.
type Link struct {
	S, T int
}

// IsLoop reports whether the link connects a node to itself.
func (l Link) IsLoop() bool { return l.S == l.T }

// Store is an index-addressed arena of nodes and links. Everything downstream
// of the model addresses nodes by their index; the id map is only consulted
// at the boundary (hit-tests, click events, serialization).
//
// A Store is not safe for concurrent use.
type Store struct {
	Nodes []NodeState
	Links []Link

	index   map[string]int
	dropped int
}

// NewStore builds a store from g. Nodes keep the order of g; a repeated ID
// keeps its first occurrence. Edges referencing a missing node are dropped
// and counted in [Store.Dropped].
func NewStore(g Graph) *Store {
	s := &Store{
		Nodes: make([]NodeState, 0, len(g.Nodes)),
		Links: make([]Link, 0, len(g.Edges)),
		index: make(map[string]int, len(g.Nodes)),
	}
	for _, n := range g.Nodes {
		if _, dup := s.index[n.ID]; dup {
			continue
		}
		s.index[n.ID] = len(s.Nodes)
		s.Nodes = append(s.Nodes, NodeState{Node: n, X: math.NaN(), Y: math.NaN()})
	}
	for _, e := range g.Edges {
		si, okS := s.index[e.Source]
		ti, okT := s.index[e.Target]
		if !okS || !okT {
			s.dropped++
			continue
		}
		s.Links = append(s.Links, Link{S: si, T: ti})
	}
	return s
}

// Len returns the number of nodes.
func (s *Store) Len() int { return len(s.Nodes) }

// Index returns the index of the node with the given id.
func (s *Store) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Lookup returns the node with the given id, or nil.
func (s *Store) Lookup(id string) *NodeState {
	if i, ok := s.index[id]; ok {
		return &s.Nodes[i]
	}
	return nil
}

// Dropped returns how many dangling edges were discarded by [NewStore].
func (s *Store) Dropped() int { return s.dropped }

// Graph converts the store back into its wire form, without positions.
func (s *Store) Graph() Graph {
	g := Graph{
		Nodes: make([]Node, len(s.Nodes)),
		Edges: make([]Edge, len(s.Links)),
	}
	for i := range s.Nodes {
		g.Nodes[i] = s.Nodes[i].Node
	}
	for i, l := range s.Links {
		g.Edges[i] = Edge{Source: s.Nodes[l.S].ID, Target: s.Nodes[l.T].ID}
	}
	return g
}

// Bounds returns the bounding box of positioned nodes, each grown by the
// radius returned from pad. ok is false when no node is positioned.
func (s *Store) Bounds(pad func(*NodeState) float64) (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if !n.Positioned() {
			continue
		}
		r := 0.0
		if pad != nil {
			r = pad(n)
		}
		minX = math.Min(minX, n.X-r)
		minY = math.Min(minY, n.Y-r)
		maxX = math.Max(maxX, n.X+r)
		maxY = math.Max(maxY, n.Y+r)
		ok = true
	}
	return minX, minY, maxX, maxY, ok
}
