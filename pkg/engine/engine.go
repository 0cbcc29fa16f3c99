// Package engine sequences filtering, layout, simulation, camera and
// drawing into a frame loop.
//
// An [Engine] is driven by its owner: events are queued with [Engine.Post]
// and take effect at the start of the next [Engine.Tick], never in the
// middle of one. Each tick runs the same phases in order:
//
//  1. drain the event queue
//  2. fire expired timers (mount delay, resize debounce)
//  3. apply a pending graph swap (filter change)
//  4. step the simulation
//  5. on the settle transition, start a pending zoom-to-fit
//  6. advance the camera animation
//
// [Engine.Frame] is the draw pass that follows.
//
// The first layout waits until the surface has a non-zero size and
// SettleDelay has passed since that size arrived; until then Frame is
// empty. After that, resizes are debounced, reheat the simulation and
// refit the camera without relaying out, while filter changes rebuild the
// graph from the catalog.
//
// Pointer events zoom the camera about the pointer and drag single nodes.
// A dragged node is pinned until it is dropped, and the simulation is
// reheated so its neighbors follow.
//
// An Engine is not safe for concurrent use. [Driver] runs one on its own
// goroutine and accepts events from any goroutine.
package engine

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/skillgraph/pkg/filter"
	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/layout"
	"github.com/matzehuels/skillgraph/pkg/observability"
	"github.com/matzehuels/skillgraph/pkg/physics"
	"github.com/matzehuels/skillgraph/pkg/render"
	"github.com/matzehuels/skillgraph/pkg/topology"
)

// Options configures an engine. Zero values use defaults.
type Options struct {
	Engine  Config
	Layout  layout.Config
	Physics physics.Config
	Render  render.Config
	Theme   render.Theme
	// Category is the initial selection; empty shows the whole catalog.
	Category graph.Category
}

type state int

const (
	stateNew state = iota
	stateMounted
	stateUnmounted
)

// Engine owns the graph shown on one surface.
type Engine struct {
	id   string
	opts Options

	filter    *filter.Controller
	sim       *physics.Simulator
	reference int

	state state
	ready bool
	queue []Event
	now   time.Time

	vp    graph.Viewport
	theme render.Theme
	store *graph.Store
	last  layout.Result

	sizedAt  time.Time
	resizeAt time.Time
	resizeTo graph.Viewport
	swap     bool

	cam        graph.Camera
	anim       *transition
	fitPending bool

	// drag is the store index of the grabbed node, or -1.
	drag int
}

// New creates an unmounted engine over catalog. Dangling catalog edges are
// dropped up front.
func New(catalog graph.Graph, opts Options) *Engine {
	opts.Engine.SetDefaults()
	opts.Layout.SetDefaults()
	opts.Physics.SetDefaults()
	opts.Render.SetDefaults()

	clean, _ := catalog.Sanitize()
	e := &Engine{
		id:        uuid.NewString(),
		opts:      opts,
		filter:    filter.NewController(clean),
		sim:       physics.New(opts.Physics),
		reference: len(clean.Nodes),
		theme:     opts.Theme,
		cam:       graph.Camera{K: 1},
		drag:      -1,
	}
	if opts.Category != "" {
		e.filter.Select(opts.Category)
	}
	return e
}

// ID returns the unique identifier of this engine instance.
func (e *Engine) ID() string { return e.id }

// Mount attaches the engine to its surface. Work starts once a non-zero
// viewport has been posted and the settle delay has passed.
func (e *Engine) Mount(now time.Time) {
	if e.state != stateNew {
		return
	}
	e.state = stateMounted
	e.now = now
}

// Post queues an event for the next tick. Events posted after Unmount are
// dropped.
func (e *Engine) Post(ev Event) {
	if e.state == stateUnmounted || ev == nil {
		return
	}
	e.queue = append(e.queue, ev)
}

// Tick runs one update at time now. It reports whether the engine is
// mounted; an unmounted engine does nothing.
func (e *Engine) Tick(now time.Time) bool {
	if e.state != stateMounted {
		return false
	}
	e.now = now

	queue := e.queue
	e.queue = nil
	for _, ev := range queue {
		e.apply(ev)
	}

	e.fireTimers()

	if e.swap {
		e.swap = false
		e.relayout()
	}

	if e.store != nil && e.sim.Step() {
		observability.Engine().OnSettle(e.id, e.sim.Ticks(), e.sim.Alpha())
		if e.fitPending {
			e.fitPending = false
			e.startFit()
		}
	}

	if e.anim != nil {
		cam, done := e.anim.at(now)
		e.cam = cam
		if done {
			e.anim = nil
		}
	}
	return true
}

// Frame builds the draw pass for the current state. It is empty until the
// first layout has run.
func (e *Engine) Frame() render.Frame {
	if !e.ready || e.store == nil {
		return render.Frame{Viewport: e.vp, Camera: e.cam, Theme: e.theme}
	}
	return render.Build(e.store, e.vp, e.cam, e.theme, e.opts.Render)
}

// Unmount cancels timers, drops queued events and pending swaps and
// releases the graph. Later ticks do nothing.
func (e *Engine) Unmount() {
	if e.state == stateUnmounted {
		return
	}
	wasMounted := e.state == stateMounted
	e.state = stateUnmounted
	e.ready = false
	e.queue = nil
	e.sizedAt = time.Time{}
	e.resizeAt = time.Time{}
	e.swap = false
	e.fitPending = false
	e.anim = nil
	e.drag = -1
	e.sim.Detach()
	e.store = nil
	if wasMounted {
		observability.Engine().OnUnmount(e.id)
	}
}

func (e *Engine) apply(ev Event) {
	switch ev := ev.(type) {
	case ViewportChanged:
		vp := graph.Viewport{Width: ev.Width, Height: ev.Height}
		if !e.ready {
			e.vp = vp
			switch {
			case !vp.Valid():
				e.sizedAt = time.Time{}
			case e.sizedAt.IsZero():
				e.sizedAt = e.now
			}
			return
		}
		e.resizeTo = vp
		e.resizeAt = e.now.Add(e.opts.Engine.ResizeDebounce)

	case ThemeChanged:
		if ev.Dark {
			e.theme = render.Dark
		} else {
			e.theme = render.Light
		}

	case CategorySelected:
		if !ev.Category.Valid() {
			return
		}
		if e.filter.Select(ev.Category) && e.ready {
			e.swap = true
		}

	case FilterCleared:
		if e.filter.Clear() && e.ready {
			e.swap = true
		}

	case NodeClicked:
		e.centerOn(ev.ID)

	case PointerClicked:
		if !e.ready {
			return
		}
		if id, ok := e.Frame().HitTest(ev.X, ev.Y); ok {
			e.centerOn(id)
		}

	case ResetView:
		if e.ready {
			e.startFit()
		}

	case Zoomed:
		e.zoom(ev.X, ev.Y, ev.Factor)

	case DragStarted:
		e.startDrag(ev.ID, ev.X, ev.Y)

	case DragMoved:
		if n := e.dragged(); n != nil {
			n.X, n.Y = e.cam.Unproject(e.vp, ev.X, ev.Y)
			if e.sim.Settled() {
				e.sim.Reheat()
			}
		}

	case DragEnded:
		if n := e.dragged(); n != nil {
			n.X, n.Y = e.cam.Unproject(e.vp, ev.X, ev.Y)
			n.VX, n.VY = 0, 0
			n.Fixed = false
			e.drag = -1
			e.sim.Reheat()
		}
	}
}

func (e *Engine) fireTimers() {
	if !e.ready {
		if e.vp.Valid() && !e.sizedAt.IsZero() && !e.now.Before(e.sizedAt.Add(e.opts.Engine.SettleDelay)) {
			e.sizedAt = time.Time{}
			e.initialize()
		}
		return
	}
	if !e.resizeAt.IsZero() && !e.now.Before(e.resizeAt) {
		e.resizeAt = time.Time{}
		if !e.resizeTo.Valid() {
			return
		}
		e.vp = e.resizeTo
		e.sim.SetViewport(e.vp)
		e.sim.Reheat()
		e.fitPending = true
		observability.Engine().OnResize(e.id, e.vp.Width, e.vp.Height)
	}
}

func (e *Engine) initialize() {
	observability.Engine().OnMount(e.id, e.vp.Width, e.vp.Height)
	e.ready = true
	e.cam = graph.IdentityCamera(e.vp)
	e.swap = false
	e.relayout()
}

// relayout rebuilds the store for the current selection, places it, warms
// up the simulation and schedules a fit for the next settle.
func (e *Engine) relayout() {
	start := time.Now()

	g := e.filter.Active()
	s := graph.NewStore(g)
	topology.MarkLeaves(s)
	e.last = layout.Place(s, e.vp, e.opts.Layout)

	e.store = s
	e.drag = -1
	e.sim.Attach(s, e.vp, e.reference)
	e.sim.Warmup(e.opts.Physics.WarmupTicks)
	e.sim.Reheat()
	e.fitPending = true

	observability.Engine().OnRelayout(e.id, string(e.filter.Selected()),
		s.Len(), len(s.Links), s.Dropped(), len(e.last.Components), time.Since(start))
}

func (e *Engine) startFit() {
	to := fitCamera(e.store, e.vp, e.opts.Engine.FitPadding, e.opts.Render, e.opts.Engine)
	e.anim = &transition{from: e.cam, to: to, start: e.now, dur: e.opts.Engine.FitDuration}
}

// zoom scales the camera about the screen point sx, sy. It cancels any
// camera transition in progress.
func (e *Engine) zoom(sx, sy, factor float64) {
	if !e.ready || !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	wx, wy := e.cam.Unproject(e.vp, sx, sy)
	k := math.Min(math.Max(e.cam.K*factor, e.opts.Engine.MinZoom), e.opts.Engine.MaxZoom)
	e.anim = nil
	e.cam = graph.Camera{
		X: wx - (sx-e.vp.Width/2)/k,
		Y: wy - (sy-e.vp.Height/2)/k,
		K: k,
	}
}

func (e *Engine) startDrag(id string, sx, sy float64) {
	if !e.ready || e.store == nil || e.drag >= 0 {
		return
	}
	if id == "" {
		var ok bool
		if id, ok = e.Frame().HitTest(sx, sy); !ok {
			return
		}
	}
	i, ok := e.store.Index(id)
	if !ok {
		return
	}
	n := &e.store.Nodes[i]
	n.X, n.Y = e.cam.Unproject(e.vp, sx, sy)
	n.VX, n.VY = 0, 0
	n.Fixed = true
	e.drag = i
	e.sim.Reheat()
}

// dragged returns the grabbed node, or nil.
func (e *Engine) dragged() *graph.NodeState {
	if e.drag < 0 || e.store == nil {
		return nil
	}
	return &e.store.Nodes[e.drag]
}

func (e *Engine) centerOn(id string) {
	if !e.ready || e.store == nil {
		return
	}
	n := e.store.Lookup(id)
	if n == nil || !n.Positioned() {
		return
	}
	to := graph.Camera{X: n.X, Y: n.Y, K: e.cam.K}
	e.anim = &transition{from: e.cam, to: to, start: e.now, dur: e.opts.Engine.CenterDuration}
}

// =============================================================================
// Accessors
// =============================================================================

// Ready reports whether the first layout has run.
func (e *Engine) Ready() bool { return e.ready }

// Mounted reports whether the engine is mounted.
func (e *Engine) Mounted() bool { return e.state == stateMounted }

// Viewport returns the current surface size.
func (e *Engine) Viewport() graph.Viewport { return e.vp }

// Camera returns the current camera.
func (e *Engine) Camera() graph.Camera { return e.cam }

// Theme returns the active color scheme.
func (e *Engine) Theme() render.Theme { return e.theme }

// Category returns the selected category, or "" when showing everything.
func (e *Engine) Category() graph.Category { return e.filter.Selected() }

// Store returns the graph currently shown, or nil before the first layout.
// Callers must not retain it across ticks.
func (e *Engine) Store() *graph.Store { return e.store }

// Layout returns the result of the most recent layout.
func (e *Engine) Layout() layout.Result { return e.last }

// Settled reports whether the simulation is at rest.
func (e *Engine) Settled() bool { return e.sim.Settled() }

// Dragging reports whether a node is grabbed.
func (e *Engine) Dragging() bool { return e.drag >= 0 }

// Animating reports whether a camera transition is in progress.
func (e *Engine) Animating() bool { return e.anim != nil }

// Idle reports whether the engine has laid out, the simulation has settled
// and no timer, swap, fit or animation is outstanding.
func (e *Engine) Idle() bool {
	return e.ready && e.sim.Settled() && e.anim == nil && !e.fitPending &&
		!e.swap && e.resizeAt.IsZero() && len(e.queue) == 0 && e.drag < 0
}

// Snapshot captures the current graph, camera and selection.
func (e *Engine) Snapshot() graph.Snapshot {
	s := e.store
	if s == nil {
		s = graph.NewStore(graph.Graph{})
	}
	snap := graph.NewSnapshot(s, e.vp, e.cam)
	snap.Category = e.filter.Selected()
	snap.Theme = e.theme.String()
	return snap
}

// RunUntilIdle ticks the engine on a synthetic clock, starting at start and
// advancing by step, until it is idle or maxTicks ticks have run. It
// returns the clock after the last tick and whether the engine went idle.
func (e *Engine) RunUntilIdle(start time.Time, step time.Duration, maxTicks int) (time.Time, bool) {
	now := start
	for range maxTicks {
		if !e.Tick(now) {
			return now, false
		}
		if e.Idle() {
			return now, true
		}
		now = now.Add(step)
	}
	return now, e.Idle()
}
