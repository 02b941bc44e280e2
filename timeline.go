package scrollstage

import (
	"errors"
	"fmt"
	"math"
)

// EffectKind selects a discrete side effect.
type EffectKind uint8

const (
	// EffectSwapText exchanges the text of Target and Other.
	EffectSwapText EffectKind = iota
	// EffectReparent moves Target under Parent. From records the parent it
	// returns to when the effect is undone.
	EffectReparent
)

func (k EffectKind) String() string {
	switch k {
	case EffectSwapText:
		return "swap-text"
	case EffectReparent:
		return "reparent"
	}
	return "unknown"
}

// Effect is a one-shot change that happens at an instant instead of being
// interpolated.
type Effect struct {
	Kind   EffectKind
	Target TargetID
	Other  TargetID
	Parent TargetID
	From   TargetID
}

// Tween interpolates one property from From to To along Curve.
type Tween struct {
	Prop  Prop
	From  float64
	To    float64
	Curve Curve
}

// Step is an atomic change on one target: either a set of tweens over a
// window or a zero-duration effect.
type Step struct {
	Target   TargetID
	Tweens   []Tween
	Offset   float64 // relative to the owning phase start
	Duration float64
	Effect   *Effect

	// Start is the absolute timeline position, filled in by NewTimeline.
	Start float64
}

// End returns the absolute end of the step window.
func (s Step) End() float64 { return s.Start + s.Duration }

// Phase is a labelled, ordered stage of the sequence.
type Phase struct {
	Label string
	// Offset positions the phase relative to the end of everything before
	// it. Negative offsets overlap the previous phase.
	Offset float64
	// At, when Anchored, is an absolute timeline position used instead of
	// Offset.
	At       float64
	Anchored bool
	// Barrier phases must finish before the next phase begins.
	Barrier bool
	// Hold is a minimum duration. Step-less phases use it to reserve
	// scroll distance.
	Hold  float64
	Steps []Step

	// Start and End are absolute and filled in by NewTimeline.
	Start, End float64
}

// Base is the state of a target before any step touches it.
type Base struct {
	Style  Style
	Text   string
	Parent TargetID
}

// Timeline is an ordered list of phases bound to one config generation.
// Once built it is read-only; rebuilding means discarding it.
type Timeline struct {
	Phases []Phase
	// Duration is the end of the last phase in internal time units.
	Duration float64
	// ScrollLength is the virtual scroll distance the timeline spans.
	ScrollLength float64
	Viewport     Viewport
	Seed         uint64
	Initial      map[TargetID]Base
}

// NewTimeline resolves absolute phase and step positions. Phase starts are
// forced to be non-decreasing and never earlier than the end of a preceding
// barrier phase.
func NewTimeline(phases []Phase, initial map[TargetID]Base, scrollLength float64) *Timeline {
	tl := &Timeline{Phases: phases, Initial: initial, ScrollLength: scrollLength}
	var cursor, prevStart float64
	for i := range tl.Phases {
		p := &tl.Phases[i]
		start := cursor + p.Offset
		if p.Anchored {
			start = p.At
		}
		if i > 0 && tl.Phases[i-1].Barrier && start < tl.Phases[i-1].End {
			start = tl.Phases[i-1].End
		}
		start = math.Max(start, prevStart)
		start = math.Max(start, 0)

		p.Start = start
		end := start + math.Max(p.Hold, 0)
		for j := range p.Steps {
			s := &p.Steps[j]
			s.Start = start + math.Max(s.Offset, 0)
			if s.Effect != nil || s.Duration < 0 {
				s.Duration = 0
			}
			end = math.Max(end, s.End())
		}
		p.End = end
		cursor = math.Max(cursor, end)
		prevStart = start
	}
	tl.Duration = cursor
	return tl
}

// Phase returns the phase with the given label.
func (tl *Timeline) Phase(label string) (*Phase, bool) {
	for i := range tl.Phases {
		if tl.Phases[i].Label == label {
			return &tl.Phases[i], true
		}
	}
	return nil, false
}

// TimeAt converts progress in [0, 1] to timeline time.
func (tl *Timeline) TimeAt(progress float64) float64 {
	return clamp01(progress) * tl.Duration
}

// ProgressAt converts timeline time to progress in [0, 1].
func (tl *Timeline) ProgressAt(t float64) float64 {
	if tl.Duration <= 0 {
		return 1
	}
	return clamp01(t / tl.Duration)
}

// StepCount returns the number of steps across all phases.
func (tl *Timeline) StepCount() int {
	n := 0
	for i := range tl.Phases {
		n += len(tl.Phases[i].Steps)
	}
	return n
}

// Validate checks the ordering invariants.
func (tl *Timeline) Validate() error {
	var errs []error
	for i := range tl.Phases {
		p := &tl.Phases[i]
		if i > 0 {
			prev := &tl.Phases[i-1]
			if p.Start < prev.Start {
				errs = append(errs, fmt.Errorf("phase %q starts at %v before phase %q at %v", p.Label, p.Start, prev.Label, prev.Start))
			}
			if prev.Barrier && p.Start < prev.End {
				errs = append(errs, fmt.Errorf("phase %q starts at %v inside barrier phase %q ending %v", p.Label, p.Start, prev.Label, prev.End))
			}
		}
		for j := range p.Steps {
			s := &p.Steps[j]
			if s.Start < p.Start || s.End() > p.End {
				errs = append(errs, fmt.Errorf("phase %q step %d on %q outside phase window", p.Label, j, s.Target))
			}
			if s.Effect != nil && s.Duration != 0 {
				errs = append(errs, fmt.Errorf("phase %q step %d: effect with duration %v", p.Label, j, s.Duration))
			}
			for _, tw := range s.Tweens {
				if !tw.Curve.Known() {
					errs = append(errs, fmt.Errorf("phase %q step %d: unknown curve %q", p.Label, j, tw.Curve))
				}
			}
		}
	}
	return errors.Join(errs...)
}
