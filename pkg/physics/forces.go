package physics

import (
	"math"

	"github.com/matzehuels/skillgraph/pkg/graph"
)

// linkBias returns, per link, the share of the correction applied to the
// target: the busier endpoint moves less.
func linkBias(s *graph.Store) []float64 {
	count := make([]int, s.Len())
	for _, l := range s.Links {
		count[l.S]++
		count[l.T]++
	}
	bias := make([]float64, len(s.Links))
	for i, l := range s.Links {
		bias[i] = float64(count[l.S]) / float64(count[l.S]+count[l.T])
	}
	return bias
}

func (sim *Simulator) applyLinks() {
	nodes := sim.s.Nodes
	k := sim.alpha * sim.cfg.LinkStrength
	for i, l := range sim.s.Links {
		if l.IsLoop() {
			continue
		}
		src, tgt := &nodes[l.S], &nodes[l.T]
		x := tgt.X + tgt.VX - src.X - src.VX
		y := tgt.Y + tgt.VY - src.Y - src.VY
		if x == 0 {
			x = sim.jiggle()
		}
		if y == 0 {
			y = sim.jiggle()
		}
		d := math.Hypot(x, y)
		f := (d - sim.linkDist) / d * k
		x *= f
		y *= f

		b := sim.bias[i]
		tgt.VX -= x * b
		tgt.VY -= y * b
		src.VX += x * (1 - b)
		src.VY += y * (1 - b)
	}
}

// applyCharge applies pairwise repulsion. Pairs further apart than
// ChargeDistanceMax are skipped, so far-apart clusters cost only the
// distance check.
func (sim *Simulator) applyCharge() {
	nodes := sim.s.Nodes
	max2 := sim.cfg.ChargeDistanceMax * sim.cfg.ChargeDistanceMax
	min2 := sim.cfg.ChargeDistanceMin * sim.cfg.ChargeDistanceMin
	w := sim.cfg.ChargeStrength * sim.alpha

	for i := range nodes {
		a := &nodes[i]
		for j := range nodes {
			if i == j {
				continue
			}
			b := &nodes[j]
			x, y := b.X-a.X, b.Y-a.Y
			l := x*x + y*y
			if l >= max2 {
				continue
			}
			if x == 0 {
				x = sim.jiggle()
				l += x * x
			}
			if y == 0 {
				y = sim.jiggle()
				l += y * y
			}
			if l < min2 {
				l = math.Sqrt(min2 * l)
			}
			a.VX += x * w / l
			a.VY += y * w / l
		}
	}
}

func (sim *Simulator) applyCenter() {
	nodes := sim.s.Nodes
	if len(nodes) == 0 {
		return
	}
	cx, cy := sim.vp.Center()
	var sx, sy float64
	for i := range nodes {
		sx += nodes[i].X
		sy += nodes[i].Y
	}
	n := float64(len(nodes))
	sx = (sx/n - cx) * sim.cfg.CenterStrength
	sy = (sy/n - cy) * sim.cfg.CenterStrength
	for i := range nodes {
		if nodes[i].Fixed {
			continue
		}
		nodes[i].X -= sx
		nodes[i].Y -= sy
	}
}

// applyCollision resolves overlapping collision circles using the
// velocity-predicted positions of both nodes. A pair always involves two
// distinct nodes.
func (sim *Simulator) applyCollision() {
	nodes := sim.s.Nodes
	strength := sim.cfg.CollisionStrength

	for i := range nodes {
		a := &nodes[i]
		ri := sim.cfg.CollisionRadius(a.Leaf)
		ri2 := ri * ri
		xi, yi := a.X+a.VX, a.Y+a.VY

		for j := i + 1; j < len(nodes); j++ {
			b := &nodes[j]
			rj := sim.cfg.CollisionRadius(b.Leaf)
			r := ri + rj
			x := xi - b.X - b.VX
			y := yi - b.Y - b.VY
			l := x*x + y*y
			if l >= r*r {
				continue
			}
			if x == 0 {
				x = sim.jiggle()
				l += x * x
			}
			if y == 0 {
				y = sim.jiggle()
				l += y * y
			}
			d := math.Sqrt(l)
			f := (r - d) / d * strength
			x *= f
			y *= f

			share := rj * rj / (ri2 + rj*rj)
			a.VX += x * share
			a.VY += y * share
			b.VX -= x * (1 - share)
			b.VY -= y * (1 - share)
		}
	}
}

// applyCrossing pushes apart links whose bounding boxes overlap and that do
// not share an endpoint. At most MaxCrossingPairs pairs are examined per
// tick; reaching the cap simply ends the pass.
func (sim *Simulator) applyCrossing() {
	nodes := sim.s.Nodes
	links := sim.s.Links
	strength := sim.cfg.CrossingStrength
	budget := sim.cfg.MaxCrossingPairs

	checked := 0
	for i := 0; i < len(links) && checked < budget; i++ {
		for j := i + 1; j < len(links) && checked < budget; j++ {
			checked++
			p, q := links[i], links[j]
			if p.IsLoop() || q.IsLoop() ||
				p.S == q.S || p.S == q.T || p.T == q.S || p.T == q.T {
				continue
			}
			s1, t1 := &nodes[p.S], &nodes[p.T]
			s2, t2 := &nodes[q.S], &nodes[q.T]
			if !boxesOverlap(s1, t1, s2, t2) {
				continue
			}

			dx := (s2.X+t2.X)/2 - (s1.X+t1.X)/2
			dy := (s2.Y+t2.Y)/2 - (s1.Y+t1.Y)/2
			d := math.Hypot(dx, dy)
			if d == 0 {
				d = 1
			}
			fx, fy := dx/d*strength, dy/d*strength

			s1.VX -= fx
			s1.VY -= fy
			t1.VX -= fx
			t1.VY -= fy
			s2.VX += fx
			s2.VY += fy
			t2.VX += fx
			t2.VY += fy
		}
	}
}

func boxesOverlap(s1, t1, s2, t2 *graph.NodeState) bool {
	return math.Min(s1.X, t1.X) <= math.Max(s2.X, t2.X) &&
		math.Max(s1.X, t1.X) >= math.Min(s2.X, t2.X) &&
		math.Min(s1.Y, t1.Y) <= math.Max(s2.Y, t2.Y) &&
		math.Max(s1.Y, t1.Y) >= math.Min(s2.Y, t2.Y)
}
