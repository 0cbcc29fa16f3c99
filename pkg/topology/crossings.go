package topology

import "github.com/matzehuels/skillgraph/pkg/graph"

// CountCrossings returns the number of link pairs whose segments properly
// intersect. Pairs sharing an endpoint, self-loops, and links touching an
// unplaced node are ignored.
//
// It inspects every pair of links, so it is meant for diagnostics on graphs
// of catalog size rather than for use inside the simulation loop.
func CountCrossings(s *graph.Store) int {
	n := 0
	for i := 0; i < len(s.Links); i++ {
		a := s.Links[i]
		if !drawable(s, a) {
			continue
		}
		for j := i + 1; j < len(s.Links); j++ {
			b := s.Links[j]
			if !drawable(s, b) || sharesEndpoint(a, b) {
				continue
			}
			if segmentsCross(s, a, b) {
				n++
			}
		}
	}
	return n
}

func drawable(s *graph.Store, l graph.Link) bool {
	return !l.IsLoop() && s.Nodes[l.S].Positioned() && s.Nodes[l.T].Positioned()
}

func sharesEndpoint(a, b graph.Link) bool {
	return a.S == b.S || a.S == b.T || a.T == b.S || a.T == b.T
}

func segmentsCross(s *graph.Store, a, b graph.Link) bool {
	p1, p2 := &s.Nodes[a.S], &s.Nodes[a.T]
	q1, q2 := &s.Nodes[b.S], &s.Nodes[b.T]

	d1 := orient(q1.X, q1.Y, q2.X, q2.Y, p1.X, p1.Y)
	d2 := orient(q1.X, q1.Y, q2.X, q2.Y, p2.X, p2.Y)
	d3 := orient(p1.X, p1.Y, p2.X, p2.Y, q1.X, q1.Y)
	d4 := orient(p1.X, p1.Y, p2.X, p2.Y, q2.X, q2.Y)

	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// orient is the z component of (b-a) x (c-a).
func orient(ax, ay, bx, by, cx, cy float64) float64 {
	return (bx-ax)*(cy-ay) - (by-ay)*(cx-ax)
}
