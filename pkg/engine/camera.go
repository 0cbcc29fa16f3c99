package engine

import (
	"math"
	"time"

	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/render"
)

// transition animates the camera between two states.
type transition struct {
	from, to graph.Camera
	start    time.Time
	dur      time.Duration
}

// at returns the camera at now and whether the transition has finished.
func (t *transition) at(now time.Time) (graph.Camera, bool) {
	if t.dur <= 0 {
		return t.to, true
	}
	p := float64(now.Sub(t.start)) / float64(t.dur)
	if p >= 1 {
		return t.to, true
	}
	p = easeOut(math.Max(p, 0))
	return graph.Camera{
		X: t.from.X + (t.to.X-t.from.X)*p,
		Y: t.from.Y + (t.to.Y-t.from.Y)*p,
		K: t.from.K + (t.to.K-t.from.K)*p,
	}, false
}

// easeOut is a cubic ease-out on [0, 1].
func easeOut(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// fitCamera returns the camera that shows every positioned node of s,
// including its drawn radius, with padding pixels to spare on each side.
func fitCamera(s *graph.Store, vp graph.Viewport, padding float64, rc render.Config, cfg Config) graph.Camera {
	if s == nil {
		return graph.IdentityCamera(vp)
	}
	minX, minY, maxX, maxY, ok := s.Bounds(func(n *graph.NodeState) float64 {
		return render.Radius(n.Level, rc)
	})
	if !ok {
		return graph.IdentityCamera(vp)
	}
	w := math.Max(vp.Width-2*padding, 1)
	h := math.Max(vp.Height-2*padding, 1)
	k := math.Min(w/math.Max(maxX-minX, 1), h/math.Max(maxY-minY, 1))
	k = math.Min(math.Max(k, cfg.MinZoom), cfg.MaxZoom)
	return graph.Camera{X: (minX + maxX) / 2, Y: (minY + maxY) / 2, K: k}
}
