// Package layout computes deterministic initial positions for a
// [graph.Store] before physics takes over.
//
// Nodes are grouped by category onto a ring of sub-circles. When the graph
// has several connected components, each is laid out on its own and the
// components are then packed into a horizontal row around the viewport
// center, largest in the middle.
//
// The same store, viewport and configuration always produce the same
// positions.
package layout

import (
	"math"

	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/topology"
)

// Result describes how a store was placed.
type Result struct {
	// Components in placement order: the first one sits at the center.
	Components []Component
	// Passes is the number of overlap resolution passes that ran.
	Passes int
}

// Place assigns positions to every node in s. Velocities are reset.
// A store without nodes or a viewport without area is left untouched.
func Place(s *graph.Store, vp graph.Viewport, cfg Config) Result {
	cfg.SetDefaults()
	if s.Len() == 0 || !vp.Valid() {
		return Result{}
	}

	comps := topology.Components(s)
	if len(comps) == 1 {
		placeByCategory(s, comps[0], vp.Width, vp.Height, cfg)
		resetVelocity(s)
		cx, cy := vp.Center()
		c := measure(s, comps[0], cx, cy, cfg)
		c.Placed = true
		return Result{Components: []Component{c}}
	}

	for _, nodes := range comps {
		placeByCategory(s, nodes, vp.Width/2, vp.Height/2, cfg)
	}
	res := packComponents(s, comps, vp, cfg)
	resetVelocity(s)
	return res
}

// placeByCategory arranges nodes on a ring of per-category sub-circles
// inside a width x height box anchored at the origin.
func placeByCategory(s *graph.Store, nodes []int, width, height float64, cfg Config) {
	if len(nodes) == 0 || width <= 0 || height <= 0 {
		return
	}

	var order []graph.Category
	byCat := make(map[graph.Category][]int)
	for _, i := range nodes {
		c := s.Nodes[i].Category
		if _, ok := byCat[c]; !ok {
			order = append(order, c)
		}
		byCat[c] = append(byCat[c], i)
	}

	cx, cy := width/2, height/2
	radius := math.Min(width, height) * cfg.RingFraction
	sub := radius * cfg.SubRingFraction

	for ci, c := range order {
		members := byCat[c]
		catAngle := 2 * math.Pi * float64(ci) / float64(len(order))
		catX := cx + radius*math.Cos(catAngle)
		catY := cy + radius*math.Sin(catAngle)

		for ni, i := range members {
			n := &s.Nodes[i]
			angle := catAngle + (2*math.Pi*float64(ni)/float64(len(members)))*0.5
			if n.Leaf {
				r := sub * cfg.SpreadFactor
				n.X = catX + r*math.Cos(angle)
				n.Y = catY + r*math.Sin(angle)
				continue
			}
			offset := float64(ni%5-2) * cfg.OffsetStep
			n.X = catX + sub*math.Cos(angle) + offset
			n.Y = catY + sub*math.Sin(angle) + offset
		}
	}
}

func resetVelocity(s *graph.Store) {
	for i := range s.Nodes {
		s.Nodes[i].VX, s.Nodes[i].VY = 0, 0
	}
}
