package scrollstage

import (
	"log"
	"time"
)

// State is a lifecycle state of a Coordinator.
type State uint8

const (
	StateUninitialized State = iota // no config seen yet
	StateBuilding                   // tearing down and rebuilding
	StateBound                      // a timeline is bound and frames apply
	StateComplete                   // the sequence finished; rebuilds are refused
	StateUnmounted                  // everything released; terminal
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBuilding:
		return "building"
	case StateBound:
		return "bound"
	case StateComplete:
		return "complete"
	case StateUnmounted:
		return "unmounted"
	}
	return "unknown"
}

// CoordinatorOptions configures a Coordinator. Zero values select defaults.
type CoordinatorOptions struct {
	// Resolver maps viewports to configs. Defaults to DefaultResolver.
	Resolver *Resolver
	// Seed seeds the timeline builder. Zero selects DefaultSeed.
	Seed uint64
	// Source is the scroll stream. Defaults to a fresh ManualSource.
	Source ScrollSource
	// Targets lists the live render targets. Nil means all.
	Targets Targets
	Driver  DriverOptions
	// Region places the trigger region for a config. Defaults to a region
	// at the top of the document one viewport tall.
	Region func(cfg ResponsiveConfig) TriggerRegion

	OnStateChange func(from, to State)
	OnRebuild     func(cfg ResponsiveConfig, tl *Timeline)
}

// Coordinator owns the resolve, build, bind and teardown pipeline. At most
// one timeline is bound at a time. Rebuilds requested by Resize run at the
// start of the next Frame, never during an apply.
type Coordinator struct {
	opts    CoordinatorOptions
	builder Builder
	state   State

	cfg     ResponsiveConfig
	tl      *Timeline
	binding *Binding
	exec    *Executor

	pending    *Viewport
	rebuilding bool
	applying   bool
	rebuilds   int
}

// NewCoordinator returns a coordinator in StateUninitialized.
func NewCoordinator(opts CoordinatorOptions) *Coordinator {
	if opts.Resolver == nil {
		opts.Resolver = DefaultResolver()
	}
	if opts.Source == nil {
		opts.Source = NewManualSource()
	}
	if opts.Region == nil {
		opts.Region = func(cfg ResponsiveConfig) TriggerRegion {
			return TriggerRegion{Top: 0, Height: cfg.Viewport.Height}
		}
	}
	if opts.Seed == 0 {
		opts.Seed = DefaultSeed
	}
	return &Coordinator{opts: opts, builder: Builder{Seed: opts.Seed}}
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State { return c.state }

// Source returns the scroll source bindings listen to.
func (c *Coordinator) Source() ScrollSource { return c.opts.Source }

// Config returns the config of the bound timeline.
func (c *Coordinator) Config() ResponsiveConfig { return c.cfg }

// Timeline returns the bound timeline, or nil.
func (c *Coordinator) Timeline() *Timeline { return c.tl }

// Binding returns the live binding, or nil.
func (c *Coordinator) Binding() *Binding { return c.binding }

// Rebuilds returns how many timelines have been bound.
func (c *Coordinator) Rebuilds() int { return c.rebuilds }

func (c *Coordinator) setState(s State) {
	if c.state == s {
		return
	}
	from := c.state
	c.state = s
	debugTransition(from, s)
	if c.opts.OnStateChange != nil {
		c.opts.OnStateChange(from, s)
	}
}

// Resize records a new viewport. The rebuild it triggers is queued until the
// next Frame; several resizes in one frame collapse into the latest. Resizes
// after completion or unmount are ignored.
func (c *Coordinator) Resize(vp Viewport) {
	switch c.state {
	case StateComplete, StateUnmounted:
		if globalDebug {
			log.Printf("scrollstage: ignoring resize to %vx%v in state %s", vp.Width, vp.Height, c.state)
		}
		return
	}
	c.pending = &vp
}

// Pending reports whether a rebuild is queued.
func (c *Coordinator) Pending() bool { return c.pending != nil }

// Frame runs one animation frame: it first performs any queued rebuild,
// then advances scrub smoothing by dt seconds and applies the timeline. The
// boolean is false when nothing is bound.
func (c *Coordinator) Frame(dt float32) (Frame, bool) {
	if c.state == StateUnmounted || c.applying {
		return Frame{}, false
	}
	var stats frameStats
	start := time.Now()
	c.flush()
	stats.rebuildTime = time.Since(start)
	if c.binding == nil || c.exec == nil || c.state == StateUnmounted {
		return Frame{}, false
	}

	c.applying = true
	start = time.Now()
	p := c.binding.Tick(dt)
	f := c.exec.Apply(p)
	stats.applyTime = time.Since(start)
	c.applying = false

	if c.state == StateBound && p >= 1 {
		c.setState(StateComplete)
	}
	stats.progress, stats.patchCount, stats.eventCount = p, len(f.Patches), len(f.Events)
	debugLog(stats)
	return f, true
}

// flush runs queued rebuilds until none remain. A resize that arrives while
// a rebuild is tearing down is picked up by the next loop iteration.
func (c *Coordinator) flush() {
	if c.rebuilding {
		return
	}
	for c.pending != nil && c.state != StateUnmounted && c.state != StateComplete {
		vp := *c.pending
		c.pending = nil
		c.rebuild(vp)
	}
	if c.state == StateComplete {
		c.pending = nil
	}
}

func (c *Coordinator) rebuild(vp Viewport) {
	c.rebuilding = true
	defer func() { c.rebuilding = false }()

	// Progress survives the rebuild; the pin distance may not.
	carry := c.binding != nil && !c.binding.Disposed()
	var progress, target float64
	if carry {
		progress, target = c.binding.Progress(), c.binding.Target()
	}

	c.setState(StateBuilding)
	c.teardown()
	if c.state == StateUnmounted {
		return
	}

	cfg := c.opts.Resolver.ResolveViewport(vp)
	tl := c.builder.Build(cfg)
	if c.state == StateUnmounted {
		return
	}
	region := c.opts.Region(cfg)
	if r, ok := c.opts.Source.(Repositioner); ok && carry {
		r.Reposition(region.Top + clamp01(target)*pinDistance(tl, region))
	}
	c.cfg = cfg
	c.tl = tl
	c.binding = Bind(tl, region, c.opts.Source, c.opts.Driver)
	if carry {
		c.binding.resume(progress)
	}
	c.exec = NewExecutor(tl, c.opts.Targets)
	c.exec.Seek(c.binding.Progress())
	c.rebuilds++
	c.setState(StateBound)
	if c.opts.OnRebuild != nil {
		c.opts.OnRebuild(cfg, tl)
	}
}

// teardown disposes the current binding and drops the timeline.
func (c *Coordinator) teardown() {
	if c.binding != nil {
		c.binding.Dispose()
	}
	c.binding = nil
	c.exec = nil
	c.tl = nil
}

// Unmount releases everything, from any state, including mid-rebuild.
// Later calls do nothing.
func (c *Coordinator) Unmount() {
	if c.state == StateUnmounted {
		return
	}
	c.pending = nil
	c.teardown()
	c.setState(StateUnmounted)
}
