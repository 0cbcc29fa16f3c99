package graph

import (
	"bytes"
	"encoding/json"
)

// PlacedNode is a node with its simulated position.
type PlacedNode struct {
	Node
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Leaf bool    `json:"leaf,omitempty"`
}

// Snapshot is the serialized form of one rendered state.
type Snapshot struct {
	Viewport Viewport     `json:"viewport"`
	Camera   Camera       `json:"camera"`
	Category Category     `json:"category,omitempty"`
	Theme    string       `json:"theme,omitempty"`
	Nodes    []PlacedNode `json:"nodes"`
	Edges    []Edge       `json:"edges"`
}

// NewSnapshot captures the current state of s. Unplaced nodes are reported
// at the viewport center.
func NewSnapshot(s *Store, vp Viewport, cam Camera) Snapshot {
	snap := Snapshot{
		Viewport: vp,
		Camera:   cam,
		Nodes:    make([]PlacedNode, len(s.Nodes)),
		Edges:    s.Graph().Edges,
	}
	cx, cy := vp.Center()
	for i := range s.Nodes {
		n := &s.Nodes[i]
		x, y := n.X, n.Y
		if !n.Positioned() {
			x, y = cx, cy
		}
		snap.Nodes[i] = PlacedNode{Node: n.Node, X: x, Y: y, Leaf: n.Leaf}
	}
	return snap
}

// MarshalSnapshot converts a snapshot to indented JSON bytes.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalSnapshot deserializes JSON bytes to a Snapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Store rebuilds a store holding the snapshot's nodes at their recorded
// positions. Velocities start at zero.
func (s Snapshot) Store() *Store {
	g := Graph{Nodes: make([]Node, len(s.Nodes)), Edges: s.Edges}
	for i, n := range s.Nodes {
		g.Nodes[i] = n.Node
	}
	st := NewStore(g)
	for _, n := range s.Nodes {
		if ns := st.Lookup(n.ID); ns != nil {
			ns.X, ns.Y, ns.Leaf = n.X, n.Y, n.Leaf
		}
	}
	return st
}
