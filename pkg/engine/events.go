package engine

import "github.com/matzehuels/skillgraph/pkg/graph"

// Event is an input to the engine. Events are queued by [Engine.Post] and
// applied at the start of the next tick.
type Event interface{ isEvent() }

// ViewportChanged reports a new surface size in pixels.
type ViewportChanged struct{ Width, Height float64 }

// ThemeChanged switches between the dark and light color schemes.
type ThemeChanged struct{ Dark bool }

// CategorySelected restricts the graph to a category's relationships.
type CategorySelected struct{ Category graph.Category }

// FilterCleared shows the whole catalog again.
type FilterCleared struct{}

// NodeClicked pans the camera to a node.
type NodeClicked struct{ ID string }

// PointerClicked is a click in screen coordinates. It acts as a
// NodeClicked for the node under the pointer, if any.
type PointerClicked struct{ X, Y float64 }

// ResetView zooms to fit the whole graph.
type ResetView struct{}

// Zoomed scales the camera by Factor about the screen point X, Y, which
// keeps the world point under the pointer in place. The zoom is clamped to
// MinZoom and MaxZoom.
type Zoomed struct{ X, Y, Factor float64 }

// DragStarted grabs a node and pins it under the screen point X, Y. An
// empty ID picks the node under the point.
type DragStarted struct {
	ID   string
	X, Y float64
}

// DragMoved moves the grabbed node to the screen point X, Y.
type DragMoved struct{ X, Y float64 }

// DragEnded drops the grabbed node at the screen point X, Y and releases
// it to the simulation.
type DragEnded struct{ X, Y float64 }

func (ViewportChanged) isEvent()  {}
func (ThemeChanged) isEvent()     {}
func (CategorySelected) isEvent() {}
func (FilterCleared) isEvent()    {}
func (NodeClicked) isEvent()      {}
func (PointerClicked) isEvent()   {}
func (ResetView) isEvent()        {}
func (Zoomed) isEvent()           {}
func (DragStarted) isEvent()      {}
func (DragMoved) isEvent()        {}
func (DragEnded) isEvent()        {}
