package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/skillgraph/pkg/cache"
	"github.com/matzehuels/skillgraph/pkg/engine"
	"github.com/matzehuels/skillgraph/pkg/graph"
	"github.com/matzehuels/skillgraph/pkg/observability"
)

// epoch is the start of the synthetic clock, fixed so runs are reproducible.
var epoch = time.Unix(0, 0).UTC()

// ctxCheckInterval is how many ticks run between context checks.
const ctxCheckInterval = 64

// Simulate mounts a headless engine over g, sizes it to the requested
// viewport and ticks it at the engine's frame interval until it is idle.
// Running out of ticks is not an error; Stats.Settled reports it.
func Simulate(ctx context.Context, g graph.Graph, opts Options) (graph.Snapshot, Stats, error) {
	if err := opts.Validate(); err != nil {
		return graph.Snapshot{}, Stats{}, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, string(opts.category), len(g.Nodes))

	start := time.Now()
	_, dropped := g.Sanitize()

	e := engine.New(g, engine.Options{
		Engine:   opts.Engine,
		Layout:   opts.Layout,
		Physics:  opts.Physics,
		Render:   opts.Render,
		Theme:    opts.theme,
		Category: opts.category,
	})
	defer e.Unmount()

	now := epoch
	e.Mount(now)
	e.Post(engine.ViewportChanged{Width: opts.Width, Height: opts.Height})

	step := opts.Engine.FrameInterval
	ticks := 0
	for ticks < opts.MaxTicks {
		if ticks%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				hooks.OnLayoutComplete(ctx, ticks, time.Since(start), err)
				return graph.Snapshot{}, Stats{}, err
			}
		}
		e.Tick(now)
		ticks++
		if e.Idle() {
			break
		}
		now = now.Add(step)
	}

	snap := e.Snapshot()
	s := e.Store()
	stats := Stats{
		Dropped:    dropped,
		Components: len(e.Layout().Components),
		Ticks:      ticks,
		Settled:    e.Idle(),
		LayoutTime: time.Since(start),
	}
	if s != nil {
		stats.NodeCount = s.Len()
		stats.LinkCount = len(s.Links)
	}

	opts.Logger.Debug("simulated layout",
		"category", opts.category,
		"nodes", stats.NodeCount,
		"links", stats.LinkCount,
		"ticks", ticks,
		"settled", stats.Settled)
	if !stats.Settled {
		opts.Logger.Warn("layout did not settle", "max_ticks", opts.MaxTicks)
	}

	hooks.OnLayoutComplete(ctx, ticks, stats.LayoutTime, nil)
	return snap, stats, nil
}

// tuningHash hashes configuration values for cache keys.
func tuningHash(parts ...any) string {
	data, _ := json.Marshal(parts)
	return cache.Hash(data)
}
