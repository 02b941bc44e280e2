package scrollstage

import (
	"log"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultScrub is the progress lag, in seconds, used when DriverOptions
// leaves Scrub at zero and Snap is false.
const DefaultScrub = 0.5

// TriggerRegion is the document span whose top starts the pin.
type TriggerRegion struct {
	Top    float64
	Height float64
}

// DriverOptions tunes a binding.
type DriverOptions struct {
	// Scrub is how long, in seconds, progress takes to catch up with a new
	// scroll position. Zero selects DefaultScrub.
	Scrub float32
	// Snap disables scrub smoothing entirely.
	Snap bool
	// OnUpdate, if set, is called whenever progress changes.
	OnUpdate func(progress float64)
}

// Binding ties a timeline to a scroll source. The region is pinned while the
// scroll position is inside [Top, Top+ScrollLength].
type Binding struct {
	tl       *Timeline
	region   TriggerRegion
	distance float64
	handle   Handle

	scrollY  float64
	target   float64
	progress float64
	tween    *gween.Tween
	scrub    float32
	onUpdate func(float64)

	disposed bool
}

// Bind listens to src and maps its position onto tl. Binding without a
// timeline is a programming error: it panics in debug mode and otherwise
// returns an inert, already disposed binding.
func Bind(tl *Timeline, region TriggerRegion, src ScrollSource, opts DriverOptions) *Binding {
	if tl == nil || src == nil {
		if globalDebug {
			panic("scrollstage: Bind called without a timeline or scroll source")
		}
		log.Printf("scrollstage: Bind called without a timeline or scroll source, binding is inert")
		return &Binding{disposed: true}
	}
	b := &Binding{
		tl:       tl,
		region:   region,
		distance: pinDistance(tl, region),
		scrub:    opts.Scrub,
		onUpdate: opts.OnUpdate,
	}
	switch {
	case opts.Snap:
		b.scrub = 0
	case b.scrub <= 0:
		b.scrub = DefaultScrub
	}
	// Start settled on the current position so a rebuild mid-scroll does
	// not replay the sequence from zero.
	b.scrollY = src.Position()
	b.target = b.targetAt(b.scrollY)
	b.progress = b.target
	b.handle = src.OnScroll(b.onScroll)
	return b
}

// pinDistance is the scroll distance a binding of tl over region stays
// pinned for.
func pinDistance(tl *Timeline, region TriggerRegion) float64 {
	d := tl.ScrollLength
	if d <= 0 {
		d = region.Height
	}
	if d <= 0 {
		d = 1
	}
	return d
}

// resume restarts smoothing from an applied progress p carried over from a
// previous binding, heading for the current target.
func (b *Binding) resume(p float64) {
	if b.disposed {
		return
	}
	p = clamp01(p)
	b.progress = p
	b.tween = nil
	if p != b.target && b.scrub > 0 {
		b.tween = gween.New(float32(p), float32(b.target), b.scrub, ease.OutQuad)
	}
}

// targetAt is the pure mapping from scroll position to progress.
func (b *Binding) targetAt(y float64) float64 {
	return clamp01((y - b.region.Top) / b.distance)
}

func (b *Binding) onScroll(ev ScrollEvent) {
	if b.disposed {
		return
	}
	b.scrollY = ev.Y
	t := b.targetAt(ev.Y)
	if t == b.target {
		return
	}
	b.target = t
	if b.scrub <= 0 {
		b.tween = nil
		b.set(t)
		return
	}
	b.tween = gween.New(float32(b.progress), float32(t), b.scrub, ease.OutQuad)
}

func (b *Binding) set(p float64) {
	if p == b.progress {
		return
	}
	b.progress = p
	if b.onUpdate != nil {
		b.onUpdate(p)
	}
}

// Tick advances scrub smoothing by dt seconds and returns the progress.
func (b *Binding) Tick(dt float32) float64 {
	if b.disposed || b.tween == nil {
		return b.progress
	}
	v, done := b.tween.Update(dt)
	if done {
		b.tween = nil
		b.set(b.target)
	} else {
		b.set(clamp01(float64(v)))
	}
	return b.progress
}

// Settle jumps progress to the target, skipping any remaining lag.
func (b *Binding) Settle() float64 {
	if b.disposed {
		return b.progress
	}
	b.tween = nil
	b.set(b.target)
	return b.progress
}

// Progress returns the applied, smoothed progress.
func (b *Binding) Progress() float64 { return b.progress }

// Target returns the progress the raw scroll position maps to.
func (b *Binding) Target() float64 { return b.target }

// Distance returns the virtual scroll distance of the pin.
func (b *Binding) Distance() float64 { return b.distance }

// Timeline returns the bound timeline, nil for an inert binding.
func (b *Binding) Timeline() *Timeline { return b.tl }

// Pinned reports whether the region is held in the viewport.
func (b *Binding) Pinned() bool {
	if b.disposed {
		return false
	}
	return b.scrollY >= b.region.Top && b.scrollY <= b.region.Top+b.distance
}

// PinOffset is how far the region must be translated down to stay fixed in
// the viewport at the current scroll position.
func (b *Binding) PinOffset() float64 {
	if b.disposed {
		return 0
	}
	return clamp(b.scrollY-b.region.Top, 0, b.distance)
}

// Disposed reports whether Dispose has run.
func (b *Binding) Disposed() bool { return b.disposed }

// Dispose releases the pin and removes the scroll listener. Safe to call
// more than once.
func (b *Binding) Dispose() {
	if b.disposed {
		return
	}
	b.disposed = true
	if b.handle != nil {
		b.handle.Remove()
		b.handle = nil
	}
	b.tween = nil
	b.onUpdate = nil
}
