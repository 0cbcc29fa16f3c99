package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/matzehuels/skillgraph/pkg/render"
)

func TestDriverRunStopsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := New(abc(), Options{Engine: Config{SettleDelay: time.Millisecond, FrameInterval: time.Millisecond}})

	drawn := make(chan struct{})
	var once sync.Once
	d := NewDriver(e, func(f render.Frame) {
		if !f.Empty() {
			once.Do(func() { close(drawn) })
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()

	d.Post(ViewportChanged{Width: 800, Height: 600})
	select {
	case <-drawn:
	case <-time.After(5 * time.Second):
		cancel()
		<-errc
		t.Fatal("driver never produced a non-empty frame")
	}

	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Run returned %v", err)
	}
	if e.Mounted() {
		t.Error("engine still mounted after Run returned")
	}

	// Posting after shutdown must not block.
	d.Post(ResetView{})
}

func TestDriverCancelledBeforeStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	e := New(abc(), Options{})
	d := NewDriver(e, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx); err != nil {
		t.Errorf("Run returned %v", err)
	}
	if e.Tick(time.Now()) {
		t.Error("engine ticks after Run returned")
	}
}
