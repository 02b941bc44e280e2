package termview

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/scrollstage"
)

// FrameInterval is how often Run advances the coordinator.
const FrameInterval = 16 * time.Millisecond

// errQuit ends the frame loop and, through the group, the event poller.
var errQuit = errors.New("termview: quit")

// Run polls screen events and draws coordinator frames until the user quits
// or ctx ends. It owns the screen from here on and finalizes it on return.
// Quitting returns nil; a finished ctx returns ctx.Err().
func (r *Renderer) Run(ctx context.Context, c *scrollstage.Coordinator, src *scrollstage.ManualSource) error {
	events := make(chan tcell.Event)
	g, ctx := errgroup.WithContext(ctx)

	// PollEvent returns nil once the screen is finalized.
	g.Go(func() error {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer r.screen.Fini()
		return r.loop(ctx, c, src, events)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	return nil
}

func (r *Renderer) loop(ctx context.Context, c *scrollstage.Coordinator, src *scrollstage.ManualSource, events <-chan tcell.Event) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !r.HandleEvent(ev, src, c) {
				return errQuit
			}
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			f, ok := c.Frame(dt)
			if !ok {
				continue
			}
			r.SetConfig(c.Config())
			r.Draw(f)
		}
	}
}
