package engine

import (
	"context"
	"time"

	"github.com/matzehuels/skillgraph/pkg/render"
)

// Driver runs an engine on a ticker in a single goroutine. Events may be
// sent from any goroutine with [Driver.Post].
type Driver struct {
	e       *Engine
	inbox   chan Event
	done    chan struct{}
	onFrame func(render.Frame)
	clock   func() time.Time
}

// NewDriver wraps e. onFrame, if not nil, receives the frame after every
// tick, on the driver goroutine.
func NewDriver(e *Engine, onFrame func(render.Frame)) *Driver {
	return &Driver{
		e:       e,
		inbox:   make(chan Event, 64),
		done:    make(chan struct{}),
		onFrame: onFrame,
		clock:   time.Now,
	}
}

// Post delivers ev to the engine. It blocks while the inbox is full and
// returns without delivering once Run has returned.
func (d *Driver) Post(ev Event) {
	select {
	case d.inbox <- ev:
	case <-d.done:
	}
}

// Run mounts the engine and ticks it every FrameInterval until ctx is
// cancelled, then unmounts it. Run must be called at most once.
func (d *Driver) Run(ctx context.Context) error {
	defer close(d.done)
	defer d.e.Unmount()

	d.e.Mount(d.clock())
	ticker := time.NewTicker(d.e.opts.Engine.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-d.inbox:
			d.e.Post(ev)
		case <-ticker.C:
			if d.e.Tick(d.clock()) && d.onFrame != nil {
				d.onFrame(d.e.Frame())
			}
		}
	}
}
