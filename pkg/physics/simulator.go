// Package physics runs the force simulation that refines an initial layout.
//
// The model follows the usual velocity-Verlet style used by d3-force: an
// energy value alpha scales most forces and decays towards AlphaTarget each
// tick, velocities are damped by VelocityDecay, and positions integrate the
// damped velocities. Fixed nodes exert forces but never move. The
// simulation settles once alpha drops below AlphaMin or CooldownTicks ticks
// have passed since the last reheat.
//
// Forces:
//
//   - link: spring towards a node-count dependent target length
//   - charge: pairwise repulsion, ignored beyond ChargeDistanceMax
//   - center: drags the mean position to the viewport center
//   - collision: keeps node circles apart, leaves get a larger radius
//   - crossing: nudges apart links whose bounding boxes overlap
//
// A Simulator is driven from a single goroutine and is not safe for
// concurrent use.
package physics

import (
	"math"

	"github.com/matzehuels/skillgraph/pkg/graph"
)

// Simulator advances node positions of an attached [graph.Store].
type Simulator struct {
	cfg Config

	s         *graph.Store
	vp        graph.Viewport
	reference int

	alpha    float64
	ticks    int
	settled  bool
	linkDist float64
	bias     []float64
	jig      uint64
}

// New creates a simulator. It does nothing until a store is attached.
func New(cfg Config) *Simulator {
	cfg.SetDefaults()
	return &Simulator{cfg: cfg, settled: true}
}

// Config returns the effective configuration.
func (sim *Simulator) Config() Config { return sim.cfg }

// Attach binds the simulator to a store and viewport and reheats it.
// reference is the node count of the full catalog, used to scale link
// distance.
func (sim *Simulator) Attach(s *graph.Store, vp graph.Viewport, reference int) {
	sim.s = s
	sim.vp = vp
	sim.reference = reference
	sim.linkDist = sim.cfg.LinkDistance(s.Len(), reference)
	sim.bias = linkBias(s)
	sim.Reheat()
}

// Detach releases the store. The simulator reports itself settled until
// the next Attach.
func (sim *Simulator) Detach() {
	sim.s = nil
	sim.bias = nil
	sim.settled = true
}

// SetViewport changes the center the simulation is pulled towards.
func (sim *Simulator) SetViewport(vp graph.Viewport) { sim.vp = vp }

// Reheat restores full energy and clears the settle state.
func (sim *Simulator) Reheat() {
	if sim.s == nil {
		return
	}
	sim.alpha = 1
	sim.ticks = 0
	sim.settled = false
}

// Step advances the simulation by one tick. It returns true exactly once
// per reheat, on the tick the simulation settles. Steps on a settled or
// detached simulator do nothing.
func (sim *Simulator) Step() bool {
	if sim.s == nil || sim.settled {
		return false
	}
	sim.tick()
	sim.ticks++
	if sim.alpha < sim.cfg.AlphaMin || (sim.cfg.CooldownTicks > 0 && sim.ticks >= sim.cfg.CooldownTicks) {
		sim.settled = true
		return true
	}
	return false
}

// Warmup runs n ticks without counting them towards the cooldown and
// without reporting a settle.
func (sim *Simulator) Warmup(n int) {
	if sim.s == nil {
		return
	}
	for range n {
		sim.tick()
	}
}

// Settled reports whether the simulation is at rest.
func (sim *Simulator) Settled() bool { return sim.settled }

// Alpha returns the current energy.
func (sim *Simulator) Alpha() float64 { return sim.alpha }

// Ticks returns the ticks run since the last reheat, warmup excluded.
func (sim *Simulator) Ticks() int { return sim.ticks }

// LinkDistance returns the target link length for the attached store.
func (sim *Simulator) LinkDistance() float64 { return sim.linkDist }

// Energy returns the largest node speed.
func (sim *Simulator) Energy() float64 {
	if sim.s == nil {
		return 0
	}
	e := 0.0
	for i := range sim.s.Nodes {
		n := &sim.s.Nodes[i]
		e = math.Max(e, math.Hypot(n.VX, n.VY))
	}
	return e
}

func (sim *Simulator) tick() {
	sim.sanitize()
	sim.alpha += (sim.cfg.AlphaTarget - sim.alpha) * sim.cfg.AlphaDecay

	sim.applyLinks()
	sim.applyCharge()
	sim.applyCenter()
	sim.applyCollision()
	if !sim.cfg.DisableCrossing {
		sim.applyCrossing()
	}

	keep := 1 - sim.cfg.VelocityDecay
	for i := range sim.s.Nodes {
		n := &sim.s.Nodes[i]
		if n.Fixed {
			n.VX, n.VY = 0, 0
			continue
		}
		n.VX *= keep
		n.VY *= keep
		n.X += n.VX
		n.Y += n.VY
	}
	sim.sanitize()
}

// sanitize moves any node with a non-finite position or velocity to the
// viewport center and stops it.
func (sim *Simulator) sanitize() {
	cx, cy := sim.vp.Center()
	for i := range sim.s.Nodes {
		n := &sim.s.Nodes[i]
		if !n.Positioned() || !finite(n.VX) || !finite(n.VY) {
			if !n.Positioned() {
				n.X, n.Y = cx, cy
			}
			n.VX, n.VY = 0, 0
		}
	}
}

// jiggle returns a tiny, non-zero, deterministic displacement used to
// separate coincident points.
func (sim *Simulator) jiggle() float64 {
	sim.jig++
	v := float64(1+sim.jig%5) * 1e-6
	if sim.jig%2 == 0 {
		return -v
	}
	return v
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
