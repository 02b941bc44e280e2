package scrollstage

import (
	"math/rand/v2"
	"sort"
)

// Phase labels in sequence order.
const (
	PhaseIntro     = "intro"
	PhaseHeader    = "header"
	PhaseEntry     = "entry"
	PhaseFormation = "formation"
	PhaseSecondary = "secondary"
	PhaseSwap      = "swap"
	PhaseExpansion = "expansion"
	PhaseHold      = "hold"
)

// DefaultSeed seeds the entry jitter when no seed is given.
const DefaultSeed uint64 = 0x5eed

// Sequence timing in internal time units.
const (
	introDuration   = 2.0
	maskFadeOffset  = 1.2
	maskFadeLength  = 0.8
	maskFinalScale  = 6
	headerOverlap   = -0.4
	headerFade      = 1.0
	titleRise       = 1.2
	titleRiseOffset = 40

	entryStagger    = 0.15
	entryDuration   = 1.2
	entryFade       = 0.6
	entryMaxRotate  = 15
	entryMaxJitterX = 0.05

	formationGap      = 0.2
	formationDuration = 2.0
	formationExitFade = 0.6
	formationExit     = 1.0

	secondaryGap      = 3.0
	secondaryFade     = 0.6
	containerDuration = 2.0
	stackStart        = 0.8
	stackBaseDelay    = 0.4
	stackDelayGrowth  = 0.1
	stackReveal       = 0.6
	stackRise         = 0.15

	swapGap  = 0.4
	swapFade = 0.6

	expansionGap      = 0.4
	expansionDuration = 1.6
	surroundStart     = 0.4
	surroundStagger   = 0.1
	surroundReveal    = 0.8

	holdDuration = 1.7
)

// Builder constructs the hero timeline from a config.
type Builder struct {
	// Seed drives the per-build entry jitter. The same seed and config
	// always produce the same timeline.
	Seed uint64
}

// Build returns the timeline for cfg using DefaultSeed.
func Build(cfg ResponsiveConfig) *Timeline {
	return Builder{Seed: DefaultSeed}.Build(cfg)
}

// Build returns the timeline for cfg.
func (b Builder) Build(cfg ResponsiveConfig) *Timeline {
	bs := newBuildState(cfg, b.Seed)
	phases := []Phase{
		bs.intro(),
		bs.header(),
		bs.entry(),
		bs.formation(),
		bs.secondary(),
		bs.swap(),
		bs.expansion(),
		{Label: PhaseHold, Hold: holdDuration},
	}
	tl := NewTimeline(phases, bs.initial, cfg.ScrollLength)
	tl.Viewport = cfg.Viewport
	tl.Seed = b.Seed
	return tl
}

// to is one property target of a step.
type to struct {
	prop  Prop
	value float64
}

// buildState tracks the value each target holds at the end of the steps
// built so far, so every tween gets an explicit From.
type buildState struct {
	cfg     ResponsiveConfig
	rng     *rand.Rand
	initial map[TargetID]Base
	cur     map[TargetID]Style
}

func newBuildState(cfg ResponsiveConfig, seed uint64) *buildState {
	bs := &buildState{
		cfg:     cfg,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		initial: make(map[TargetID]Base),
		cur:     make(map[TargetID]Style),
	}
	bs.initialState()
	return bs
}

func (bs *buildState) base(id TargetID, b Base) {
	bs.initial[id] = b
	bs.cur[id] = b.Style
}

func (bs *buildState) initialState() {
	cfg := bs.cfg
	vw, vh := cfg.Viewport.Width, cfg.Viewport.Height
	cx := vw / 2
	st := cfg.Styling

	bs.base(TargetMask, Base{Style: DefaultStyle})
	bs.base(TargetHeader, Base{Style: Style{Scale: 1}})
	bs.base(TargetContainer, Base{Style: DefaultStyle})
	bs.base(TargetStackLayer, Base{Style: DefaultStyle})
	bs.base(TargetOverlay, Base{Style: Style{Y: vh, Scale: 1, Opacity: 1}})

	bs.base(TargetTitle, Base{
		Style: Style{X: cx, Y: bs.titleLine() + titleRiseOffset, Scale: 1},
		Text:  st.TitleText,
	})
	bs.base(TargetSubtitle, Base{
		Style: Style{X: cx, Y: bs.subtitleLine() + titleRiseOffset, Scale: 1},
		Text:  st.SubtitleText,
	})
	bs.base(TargetSecondaryTitle, Base{
		Style: Style{X: cx, Y: bs.subtitleLine(), Scale: 1},
		Text:  st.SecondaryText,
	})

	// Jitter is drawn once, in index order, so scrubbing replays it exactly.
	offscreen := vh + cfg.CardSize.Y
	for i := 0; i < cfg.EntryCount; i++ {
		rot := (bs.rng.Float64()*2 - 1) * entryMaxRotate
		dx := (bs.rng.Float64()*2 - 1) * entryMaxJitterX * vw
		bs.base(EntryCard(i), Base{
			Style: Style{
				X: cfg.EntrySlots[i].X + dx, Y: offscreen,
				Scale: 1, Rotation: rot, Radius: st.CardRadius,
			},
			Parent: TargetContainer,
		})
	}
	for k, c := range cfg.StackingCards {
		bs.base(StackCard(k), Base{
			Style: Style{
				X: c.Position.X, Y: c.Position.Y + stackRise*vh,
				Scale: c.Scale * 0.9, Rotation: c.Rotation, Radius: st.CardRadius,
			},
			Parent: TargetStackLayer,
		})
	}
	for i, c := range cfg.SurroundingCards {
		bs.base(SurroundCard(i), Base{Style: Style{
			X: c.Position.X + c.EntryOffset.X, Y: c.Position.Y + c.EntryOffset.Y,
			Scale: 1, Radius: st.CardRadius,
		}})
	}
}

// titleLine is the vertical lock of the primary title.
func (bs *buildState) titleLine() float64 {
	return bs.cfg.Viewport.Height/2 - bs.cfg.TitleOffset/2
}

// subtitleLine is the vertical lock shared by the subtitle and the
// secondary title, so one can replace the other in place.
func (bs *buildState) subtitleLine() float64 {
	return bs.cfg.Viewport.Height/2 + bs.cfg.TitleOffset
}

// step records tweens on id toward the given values, starting from whatever
// the target holds after previously built steps.
func (bs *buildState) step(id TargetID, offset, duration float64, curve Curve, targets ...to) Step {
	cur := bs.cur[id]
	tweens := make([]Tween, len(targets))
	for i, t := range targets {
		tweens[i] = Tween{Prop: t.prop, From: cur.Get(t.prop), To: t.value, Curve: curve}
		cur.Set(t.prop, t.value)
	}
	bs.cur[id] = cur
	return Step{Target: id, Tweens: tweens, Offset: offset, Duration: duration}
}

func effectStep(offset float64, e Effect) Step {
	return Step{Target: e.Target, Offset: offset, Effect: &e}
}

func (bs *buildState) intro() Phase {
	return Phase{Label: PhaseIntro, Steps: []Step{
		bs.step(TargetMask, 0, introDuration, Power2In, to{PropScale, maskFinalScale}),
		bs.step(TargetMask, maskFadeOffset, maskFadeLength, Power1Out, to{PropOpacity, 0}),
	}}
}

func (bs *buildState) header() Phase {
	return Phase{Label: PhaseHeader, Offset: headerOverlap, Barrier: true, Steps: []Step{
		bs.step(TargetHeader, 0, headerFade, Power1Out, to{PropOpacity, 1}),
		bs.step(TargetTitle, 0, titleRise, Power2Out, to{PropOpacity, 1}, to{PropY, bs.titleLine()}),
		bs.step(TargetSubtitle, 0, titleRise, Power2Out, to{PropOpacity, 1}, to{PropY, bs.subtitleLine()}),
	}}
}

func (bs *buildState) entry() Phase {
	cfg := bs.cfg
	steps := make([]Step, 0, cfg.EntryCount*2)
	for i := 0; i < cfg.EntryCount; i++ {
		id := EntryCard(i)
		delay := float64(i) * entryStagger
		slot := cfg.EntrySlots[i]
		steps = append(steps,
			bs.step(id, delay, entryDuration, Power3Out,
				to{PropX, slot.X}, to{PropY, slot.Y}, to{PropRotation, cfg.EntryRotations[i]}),
			bs.step(id, delay, entryFade, Power1Out, to{PropOpacity, 1}),
		)
	}
	return Phase{Label: PhaseEntry, Barrier: true, Steps: steps}
}

func (bs *buildState) formation() Phase {
	cfg := bs.cfg
	vw, vh := cfg.Viewport.Width, cfg.Viewport.Height
	var steps []Step
	for i := 0; i < cfg.EntryCount; i++ {
		id := EntryCard(i)
		if i < len(cfg.Formation) {
			f := cfg.Formation[i]
			steps = append(steps, bs.step(id, 0, formationDuration, Power2InOut,
				to{PropX, f.Left.Resolve(vw)}, to{PropY, f.Top.Resolve(vh)},
				to{PropRotation, f.Rotation}, to{PropScale, 1}))
			continue
		}
		steps = append(steps,
			bs.step(id, 0, formationExitFade, Power1Out, to{PropOpacity, 0}),
			bs.step(id, 0, formationExit, Power2In, to{PropY, vh + cfg.CardSize.Y}),
		)
	}
	return Phase{Label: PhaseFormation, Offset: formationGap, Barrier: true, Steps: steps}
}

// stackDelay is the reveal offset of stacking card k. The gap between
// consecutive cards grows by stackDelayGrowth each time.
func stackDelay(k int) float64 {
	fk := float64(k)
	return fk*stackBaseDelay + fk*(fk-1)/2*stackDelayGrowth
}

func (bs *buildState) secondary() Phase {
	cfg := bs.cfg
	x, y, scale := cfg.Container.Placement(cfg.Viewport)
	// The container is scaled as a whole, so divide the radius to keep the
	// visual corner constant.
	radius := cfg.Styling.ContainerRadius / scale

	steps := []Step{
		bs.step(TargetSubtitle, 0, secondaryFade, Power1Out, to{PropOpacity, 0}),
		// Barrier: nothing below starts before the subtitle is gone.
		effectStep(secondaryFade, Effect{
			Kind: EffectReparent, Target: TargetSecondaryTitle,
			Parent: TargetContainer, From: bs.initial[TargetSecondaryTitle].Parent,
		}),
		bs.step(TargetSecondaryTitle, secondaryFade, secondaryFade, Power1Out, to{PropOpacity, 1}),
		bs.step(TargetContainer, secondaryFade, containerDuration, Power2InOut,
			to{PropX, x}, to{PropY, y}, to{PropScale, scale}, to{PropRadius, radius}),
	}
	for k, c := range cfg.StackingCards {
		steps = append(steps, bs.step(StackCard(k), stackStart+stackDelay(k), stackReveal, Power2Out,
			to{PropOpacity, 1}, to{PropY, c.Position.Y}, to{PropScale, c.Scale}))
	}
	return Phase{Label: PhaseSecondary, Offset: secondaryGap, Barrier: true, Steps: steps}
}

func (bs *buildState) swap() Phase {
	return Phase{Label: PhaseSwap, Offset: swapGap, Barrier: true, Steps: []Step{
		bs.step(TargetTitle, 0, swapFade, Power1In, to{PropOpacity, 0}),
		bs.step(TargetSecondaryTitle, 0, swapFade, Power1In, to{PropOpacity, 0}),
		// Both texts reach zero opacity exactly here.
		effectStep(swapFade, Effect{Kind: EffectSwapText, Target: TargetTitle, Other: TargetSecondaryTitle}),
		bs.step(TargetTitle, swapFade, swapFade, Power1Out, to{PropOpacity, 1}),
		bs.step(TargetSecondaryTitle, swapFade, swapFade, Power1Out, to{PropOpacity, 1}),
	}}
}

// sideOrder is the reveal rank of each side.
var sideOrder = map[Side]int{SideTop: 0, SideLeft: 1, SideRight: 2, SideBottom: 3}

// SurroundOrder returns surrounding card indices in reveal order: top row
// right to left, left column, right column, bottom row right to left.
func SurroundOrder(cards []SurroundingCard) []int {
	order := make([]int, len(cards))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := cards[order[a]], cards[order[b]]
		if ca.Side != cb.Side {
			return sideOrder[ca.Side] < sideOrder[cb.Side]
		}
		switch ca.Side {
		case SideTop, SideBottom:
			return ca.Slot > cb.Slot
		default:
			return ca.Slot < cb.Slot
		}
	})
	return order
}

func (bs *buildState) expansion() Phase {
	cfg := bs.cfg
	steps := []Step{
		bs.step(TargetStackLayer, 0, expansionDuration, Power3InOut,
			to{PropScale, cfg.StackScale}, to{PropX, cfg.StackPosition.X}, to{PropY, cfg.StackPosition.Y}),
		bs.step(TargetOverlay, 0, expansionDuration, Power2Out, to{PropY, 0}),
	}
	for rank, i := range SurroundOrder(cfg.SurroundingCards) {
		c := cfg.SurroundingCards[i]
		steps = append(steps, bs.step(SurroundCard(i), surroundStart+float64(rank)*surroundStagger, surroundReveal, Power2Out,
			to{PropOpacity, 1}, to{PropX, c.Position.X}, to{PropY, c.Position.Y}))
	}
	return Phase{Label: PhaseExpansion, Offset: expansionGap, Barrier: true, Steps: steps}
}
