package termview

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/scrollstage"
)

// runScreen returns an initialized screen with its startup events drained
// and without a Fini cleanup: Run finalizes the screen itself.
func runScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 30)
	for screen.HasPendingEvent() {
		screen.PollEvent()
	}
	return screen
}

func runAsync(r *Renderer, ctx context.Context, c *scrollstage.Coordinator, src *scrollstage.ManualSource) <-chan error {
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx, c, src) }()
	return done
}

func TestRunQuitsWithEventsQueued(t *testing.T) {
	screen := runScreen(t)
	src := scrollstage.NewManualSource()
	c := scrollstage.NewCoordinator(scrollstage.CoordinatorOptions{Source: src})
	c.Resize(scrollstage.Viewport{Width: 720, Height: 720})

	require.NoError(t, screen.PostEvent(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone)))
	require.NoError(t, screen.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	// Left unread after the quit; the poller must not block on them.
	for i := 0; i < 5; i++ {
		require.NoError(t, screen.PostEvent(tcell.NewEventMouse(0, 0, tcell.WheelDown, tcell.ModNone)))
	}

	select {
	case err := <-runAsync(New(screen), context.Background(), c, src):
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
	assert.InDelta(t, float64(DefaultWheelStep), src.Position(), 1e-9, "only the wheel before the quit applies")
}

func TestRunStopsWithContext(t *testing.T) {
	screen := runScreen(t)
	src := scrollstage.NewManualSource()
	c := scrollstage.NewCoordinator(scrollstage.CoordinatorOptions{Source: src})
	c.Resize(scrollstage.Viewport{Width: 720, Height: 720})

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(New(screen), ctx, c, src)
	time.Sleep(5 * FrameInterval)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, scrollstage.StateBound, c.State(), "frames should have run before the cancel")
}
