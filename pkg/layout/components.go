package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/skillgraph/pkg/graph"
)

// epsilon absorbs rounding when comparing component distances.
const epsilon = 1e-9

// Component is a connected component together with its bounding circle.
type Component struct {
	Nodes  []int
	X, Y   float64 // circle center
	Radius float64
	Placed bool
	// Side is -1 for components placed left of the center, +1 for the
	// right, and 0 for the central one.
	Side int
}

// measure computes the bounding circle of a component from its positioned
// nodes. Components with nothing placed get a size estimate centered on
// (cx, cy).
func measure(s *graph.Store, nodes []int, cx, cy float64, cfg Config) Component {
	c := Component{Nodes: nodes, X: cx, Y: cy}
	if len(nodes) == 0 {
		c.Radius = cfg.NodeRadius * 3
		return c
	}

	var sumX, sumY float64
	placed := 0
	for _, i := range nodes {
		if n := &s.Nodes[i]; n.Positioned() {
			sumX += n.X
			sumY += n.Y
			placed++
		}
	}
	if placed == 0 {
		c.Radius = cfg.NodeRadius * math.Sqrt(float64(len(nodes))) * 2.5
		return c
	}

	c.X, c.Y = sumX/float64(placed), sumY/float64(placed)
	maxDist := 0.0
	for _, i := range nodes {
		if n := &s.Nodes[i]; n.Positioned() {
			maxDist = math.Max(maxDist, math.Hypot(n.X-c.X, n.Y-c.Y))
		}
	}
	c.Radius = (maxDist + cfg.NodeRadius*2) * cfg.RadiusPadding
	return c
}

// moveTo translates every positioned node of c so its center lands on (x, y).
func (c *Component) moveTo(s *graph.Store, x, y float64) {
	c.translate(s, x-c.X, y-c.Y)
}

func (c *Component) translate(s *graph.Store, dx, dy float64) {
	for _, i := range c.Nodes {
		if n := &s.Nodes[i]; n.Positioned() {
			n.X += dx
			n.Y += dy
		}
	}
	c.X += dx
	c.Y += dy
}

// packComponents arranges already laid out components in a horizontal row.
func packComponents(s *graph.Store, comps [][]int, vp graph.Viewport, cfg Config) Result {
	cx, cy := vp.Center()

	infos := make([]Component, 0, len(comps))
	for _, nodes := range comps {
		if len(nodes) > 0 {
			infos = append(infos, measure(s, nodes, cx, cy, cfg))
		}
	}
	slices.SortStableFunc(infos, func(a, b Component) int {
		return len(b.Nodes) - len(a.Nodes)
	})
	if len(infos) <= 1 {
		return Result{Components: infos}
	}

	infos[0].moveTo(s, cx, cy)
	infos[0].Placed = true

	if len(infos) == 2 {
		spacing := infos[0].Radius + infos[1].Radius + cfg.PairGap
		infos[1].moveTo(s, cx+spacing, cy)
		infos[1].Placed = true
		infos[1].Side = 1
	} else {
		k := len(infos)
		avgR := 0.0
		for _, c := range infos {
			avgR += c.Radius
		}
		avgR /= float64(k)

		spacing := math.Min(
			(vp.Width*cfg.UsableWidth-infos[0].Radius*2)/float64(k-1),
			avgR*cfg.MaxSpacingFactor,
		)
		// A center component wider than the usable width would flip the
		// sides; overlap resolution spreads them instead.
		spacing = math.Max(spacing, 0)
		left := (k - 1) / 2
		for i := 0; i < left; i++ {
			infos[i+1].moveTo(s, cx-float64(i+1)*spacing, cy)
			infos[i+1].Placed = true
			infos[i+1].Side = -1
		}
		for i := left; i < k-1; i++ {
			infos[i+1].moveTo(s, cx+float64(i-left+1)*spacing, cy)
			infos[i+1].Placed = true
			infos[i+1].Side = 1
		}
	}

	passes := resolveOverlaps(s, infos, cfg)
	recenter(s, infos, vp, cfg)
	return Result{Components: infos, Passes: passes}
}

// resolveOverlaps pushes later components away from earlier ones until
// every pair is at least MinPadding apart or the pass budget runs out. The
// row shares one center line, so a push is horizontal and always points
// outward on the component's own side; an earlier component is never
// moved by a later pair. It returns the number of passes run.
func resolveOverlaps(s *graph.Store, infos []Component, cfg Config) int {
	passes := 0
	for overlap := true; overlap && passes < cfg.OverlapPasses; {
		overlap = false
		passes++
		for i := 0; i < len(infos); i++ {
			for j := i + 1; j < len(infos); j++ {
				a, b := &infos[i], &infos[j]
				dy := b.Y - a.Y
				minDist := a.Radius + b.Radius + cfg.MinPadding
				if math.Hypot(b.X-a.X, dy) >= minDist-epsilon {
					continue
				}
				overlap = true
				side := float64(b.Side)
				if side == 0 {
					side = 1
				}
				reach := math.Sqrt(math.Max(minDist*minDist-dy*dy, 0))
				b.translate(s, a.X+side*reach-b.X, 0)
			}
		}
	}
	return passes
}

// recenter shifts the row horizontally when it sticks out of the padded
// viewport but would fit inside it. It never scales.
func recenter(s *graph.Store, infos []Component, vp graph.Viewport, cfg Config) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, c := range infos {
		minX = math.Min(minX, c.X-c.Radius)
		maxX = math.Max(maxX, c.X+c.Radius)
	}

	pad := cfg.BoundsPadding
	if minX >= pad && maxX <= vp.Width-pad {
		return
	}
	if maxX-minX > vp.Width-2*pad {
		return
	}
	leftShift := minX - pad
	rightShift := (vp.Width - pad) - maxX
	shift := (rightShift - leftShift) / 2
	for i := range infos {
		infos[i].translate(s, shift, 0)
	}
}
