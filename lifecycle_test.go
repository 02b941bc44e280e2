package scrollstage

import (
	"reflect"
	"testing"
)

type transition struct{ from, to State }

func newTestCoordinator(opts CoordinatorOptions) (*Coordinator, *ManualSource, *[]transition) {
	src := NewManualSource()
	opts.Source = src
	var log []transition
	user := opts.OnStateChange
	opts.OnStateChange = func(from, to State) {
		log = append(log, transition{from, to})
		if user != nil {
			user(from, to)
		}
	}
	return NewCoordinator(opts), src, &log
}

var desktop = Viewport{Width: 1440, Height: 900}

func TestCoordinatorLifecycle(t *testing.T) {
	c, src, log := newTestCoordinator(CoordinatorOptions{Driver: DriverOptions{Snap: true}})
	if c.State() != StateUninitialized {
		t.Fatalf("initial state = %s", c.State())
	}
	if _, ok := c.Frame(1.0 / 60); ok {
		t.Error("frame before any resize should report nothing bound")
	}

	c.Resize(desktop)
	if c.State() != StateUninitialized || !c.Pending() {
		t.Error("resize should only queue a rebuild")
	}
	f, ok := c.Frame(1.0 / 60)
	if !ok || c.State() != StateBound {
		t.Fatalf("after first frame: ok %v state %s", ok, c.State())
	}
	if len(f.Patches) == 0 {
		t.Error("bound frame should carry patches")
	}
	if src.Listeners() != 1 {
		t.Errorf("Listeners() = %d, want 1", src.Listeners())
	}

	src.InjectScroll(c.Config().ScrollLength)
	f, _ = c.Frame(1.0 / 60)
	if f.Progress != 1 || c.State() != StateComplete {
		t.Errorf("at end: progress %v state %s", f.Progress, c.State())
	}

	c.Unmount()
	c.Unmount()
	if src.Listeners() != 0 || src.Removals() != 1 {
		t.Errorf("after unmount: listeners %d removals %d", src.Listeners(), src.Removals())
	}
	want := []transition{
		{StateUninitialized, StateBuilding},
		{StateBuilding, StateBound},
		{StateBound, StateComplete},
		{StateComplete, StateUnmounted},
	}
	if !reflect.DeepEqual(*log, want) {
		t.Errorf("transitions = %v, want %v", *log, want)
	}
	if _, ok := c.Frame(1.0 / 60); ok {
		t.Error("frame after unmount should report nothing bound")
	}
}

func TestCoordinatorResizesCollapse(t *testing.T) {
	c, _, _ := newTestCoordinator(CoordinatorOptions{})
	c.Resize(Viewport{Width: 800, Height: 600})
	c.Resize(Viewport{Width: 1000, Height: 700})
	c.Resize(Viewport{Width: 1024, Height: 768})
	c.Frame(1.0 / 60)
	if c.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d, want 1", c.Rebuilds())
	}
	if c.Config().Viewport != (Viewport{Width: 1024, Height: 768}) {
		t.Errorf("bound viewport = %+v, want the latest resize", c.Config().Viewport)
	}
}

func TestCoordinatorCompleteIgnoresResize(t *testing.T) {
	c, src, _ := newTestCoordinator(CoordinatorOptions{Driver: DriverOptions{Snap: true}})
	c.Resize(desktop)
	c.Frame(0)
	src.InjectScroll(c.Config().ScrollLength * 2)
	c.Frame(0)
	if c.State() != StateComplete {
		t.Fatalf("state = %s, want complete", c.State())
	}
	c.Resize(Viewport{Width: 400, Height: 800})
	if c.Pending() {
		t.Error("resize after completion should be ignored")
	}
	c.Frame(0)
	if c.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d, want 1", c.Rebuilds())
	}
	// Scrubbing back keeps applying frames.
	src.InjectScroll(0)
	if f, ok := c.Frame(0); !ok || f.Progress != 0 {
		t.Errorf("scrub back after completion: ok %v progress %v", ok, f.Progress)
	}
}

func TestCoordinatorUnmountDuringBuild(t *testing.T) {
	var c *Coordinator
	c, src, _ := newTestCoordinator(CoordinatorOptions{
		OnStateChange: func(_, to State) {
			if to == StateBuilding {
				c.Unmount()
			}
		},
	})
	c.Resize(desktop)
	if _, ok := c.Frame(0); ok {
		t.Error("frame should report nothing bound after unmount")
	}
	if c.State() != StateUnmounted {
		t.Errorf("state = %s, want unmounted", c.State())
	}
	if c.Rebuilds() != 0 || c.Binding() != nil || c.Timeline() != nil {
		t.Error("nothing should be bound after unmount mid-build")
	}
	if src.Listeners() != 0 {
		t.Errorf("Listeners() = %d, want 0", src.Listeners())
	}
}

func TestCoordinatorResizeDuringRebuild(t *testing.T) {
	var c *Coordinator
	resized := false
	c, src, _ := newTestCoordinator(CoordinatorOptions{
		OnRebuild: func(ResponsiveConfig, *Timeline) {
			if !resized {
				resized = true
				c.Resize(Viewport{Width: 800, Height: 600})
			}
		},
	})
	c.Resize(desktop)
	c.Frame(0)
	if c.Rebuilds() != 2 {
		t.Errorf("Rebuilds() = %d, want 2", c.Rebuilds())
	}
	if c.Config().Viewport.Width != 800 {
		t.Errorf("bound width = %v, want 800", c.Config().Viewport.Width)
	}
	if src.Listeners() != 1 || src.Removals() != 1 {
		t.Errorf("listeners %d removals %d, want 1 and 1", src.Listeners(), src.Removals())
	}
}

func TestCoordinatorResizeDuringApply(t *testing.T) {
	var c *Coordinator
	resized := false
	c, src, _ := newTestCoordinator(CoordinatorOptions{
		Driver: DriverOptions{OnUpdate: func(float64) {
			if !resized {
				resized = true
				c.Resize(Viewport{Width: 800, Height: 600})
			}
		}},
	})
	c.Resize(desktop)
	c.Frame(0)
	src.InjectScroll(1000)
	c.Frame(0.1)
	if !resized {
		t.Fatal("OnUpdate did not run during the frame")
	}
	if c.Rebuilds() != 1 || !c.Pending() {
		t.Errorf("rebuild should wait for the next frame: rebuilds %d pending %v", c.Rebuilds(), c.Pending())
	}
	c.Frame(0.1)
	if c.Rebuilds() != 2 || c.Pending() {
		t.Errorf("after next frame: rebuilds %d pending %v", c.Rebuilds(), c.Pending())
	}
}

func TestCoordinatorRebuildKeepsProgress(t *testing.T) {
	c, src, _ := newTestCoordinator(CoordinatorOptions{Driver: DriverOptions{Snap: true}})
	c.Resize(desktop)
	c.Frame(0)
	src.InjectScroll(c.Config().ScrollLength * 0.6)
	f, _ := c.Frame(0)
	if len(f.Events) != 1 || f.Events[0].Effect.Kind != EffectReparent {
		t.Fatalf("events = %+v, want the reparent crossing", f.Events)
	}

	c.Resize(desktop)
	f, ok := c.Frame(0)
	if !ok || c.Rebuilds() != 2 {
		t.Fatalf("ok %v rebuilds %d", ok, c.Rebuilds())
	}
	assertApprox(t, "progress after rebuild", f.Progress, 0.6)
	if len(f.Events) != 0 {
		t.Errorf("rebuild replayed %d events", len(f.Events))
	}
	title, _ := f.Lookup(TargetSecondaryTitle)
	if title.Parent != TargetContainer {
		t.Errorf("secondary title parent = %q, want container", title.Parent)
	}
}

func TestCoordinatorResizeKeepsProgress(t *testing.T) {
	short := Viewport{Width: 1440, Height: 600}
	for _, p := range []float64{0.5, 0.9} {
		c, src, _ := newTestCoordinator(CoordinatorOptions{Driver: DriverOptions{Snap: true}})
		c.Resize(desktop)
		c.Frame(0)
		src.InjectScroll(c.Config().ScrollLength * p)
		f, _ := c.Frame(0)
		assertApprox(t, "progress before resize", f.Progress, p)

		c.Resize(short)
		f, ok := c.Frame(0)
		if !ok || c.State() != StateBound {
			t.Fatalf("p=%v: after shrinking: ok %v state %s", p, ok, c.State())
		}
		assertApprox(t, "progress after shrinking", f.Progress, p)
		if len(f.Events) != 0 {
			t.Errorf("p=%v: shrinking fired %d events", p, len(f.Events))
		}
		assertApprox(t, "scroll position after shrinking", src.Position(), c.Config().ScrollLength*p)

		c.Resize(desktop)
		f, _ = c.Frame(0)
		if c.State() != StateBound || c.Config().Viewport != desktop {
			t.Errorf("p=%v: after growing back: state %s viewport %+v", p, c.State(), c.Config().Viewport)
		}
		assertApprox(t, "progress after growing back", f.Progress, p)
	}
}

func TestCoordinatorResizeResumesScrub(t *testing.T) {
	c, src, _ := newTestCoordinator(CoordinatorOptions{})
	c.Resize(desktop)
	c.Frame(0)
	src.InjectScroll(c.Config().ScrollLength * 0.5)
	f, _ := c.Frame(0.1)
	mid := f.Progress
	if mid <= 0 || mid >= 0.5 {
		t.Fatalf("progress mid-scrub = %v, want inside (0, 0.5)", mid)
	}

	c.Resize(Viewport{Width: 1440, Height: 600})
	f, _ = c.Frame(0)
	assertApprox(t, "progress right after rebuild", f.Progress, mid)
	assertApprox(t, "target after rebuild", c.Binding().Target(), 0.5)
	for i := 0; i < 120; i++ {
		f, _ = c.Frame(1.0 / 60)
	}
	assertApprox(t, "settled progress", f.Progress, 0.5)
}

func TestCoordinatorZeroSeedUsesDefault(t *testing.T) {
	c, _, _ := newTestCoordinator(CoordinatorOptions{})
	c.Resize(desktop)
	c.Frame(0)
	if c.Timeline().Seed != DefaultSeed {
		t.Errorf("Seed = %#x, want DefaultSeed", c.Timeline().Seed)
	}
	if !reflect.DeepEqual(c.Timeline(), Build(c.Config())) {
		t.Error("zero-seed coordinator should build the same timeline as Build")
	}

	seeded, _, _ := newTestCoordinator(CoordinatorOptions{Seed: 7})
	seeded.Resize(desktop)
	seeded.Frame(0)
	if seeded.Timeline().Seed != 7 {
		t.Errorf("Seed = %v, want 7", seeded.Timeline().Seed)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{
		StateUninitialized: "uninitialized",
		StateBuilding:      "building",
		StateBound:         "bound",
		StateComplete:      "complete",
		StateUnmounted:     "unmounted",
		State(99):          "unknown",
	} {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}
