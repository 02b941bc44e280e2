package scrollstage

import "math"

// Resolver turns viewport geometry into a ResponsiveConfig. It is pure and
// safe to share.
type Resolver struct {
	design Design
}

// NewResolver validates d and returns a resolver for it.
func NewResolver(d Design) (*Resolver, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{design: d}, nil
}

var defaultResolver = &Resolver{design: DefaultDesign()}

// DefaultResolver returns the resolver for DefaultDesign.
func DefaultResolver() *Resolver {
	return defaultResolver
}

// Resolve returns the config for a viewport of the given width under the
// default design. The height follows the design aspect ratio.
func Resolve(viewportWidth float64) ResponsiveConfig {
	return defaultResolver.Resolve(viewportWidth)
}

// Design returns the design this resolver was built from.
func (r *Resolver) Design() Design {
	return r.design
}

// Resolve returns the config for a width, deriving the height from the
// design aspect ratio.
func (r *Resolver) Resolve(width float64) ResponsiveConfig {
	return r.ResolveViewport(Viewport{Width: width})
}

// ResolveViewport returns the config for vp. Out-of-range and non-finite
// sizes clamp to the design range; a non-positive height follows the design
// aspect ratio.
func (r *Resolver) ResolveViewport(vp Viewport) ResponsiveConfig {
	d := r.design
	w := sanitize(vp.Width, d.MinWidth)
	w = clamp(w, d.MinWidth, d.MaxWidth)
	h := vp.Height
	if math.IsNaN(h) || h <= 0 {
		h = w * d.BaseHeight / d.BaseWidth
	}
	h = clamp(sanitize(h, d.MinHeight), d.MinHeight, d.MaxHeight)

	scale := clamp(w/d.BaseWidth, d.MinScale, d.MaxScale)
	bp, bd := r.breakpoint(w)

	cfg := ResponsiveConfig{
		Viewport:    Viewport{Width: w, Height: h},
		Breakpoint:  bp,
		LayoutScale: scale,
		CardSize:    Vec2{X: d.CardWidth * scale, Y: d.CardHeight * scale},
		EntryCount:  EntryCount,
		TitleOffset: d.TitleOffset * scale,
		StackScale:  d.StackScale,
		Styling:     d.Styling,

		ScrollLength: h * d.ScrollMultiplier,
	}
	cfg.Styling.CardRadius *= scale
	cfg.Styling.ContainerRadius *= scale

	cfg.EntrySlots = make([]Vec2, EntryCount)
	cfg.EntryRotations = make([]float64, EntryCount)
	mid := (EntryCount - 1) / 2
	for i := range cfg.EntrySlots {
		cfg.EntrySlots[i] = Vec2{
			X: w * (50 + float64(i-mid)*d.EntrySpread) / 100,
			Y: h * d.EntryLine / 100,
		}
		cfg.EntryRotations[i] = float64((i*7)%5-2) * 2.5
	}

	cfg.Formation = make([]FormationPosition, FormationCount)
	center := (FormationCount - 1) / 2
	for i := range cfg.Formation {
		step := float64(i - center)
		cfg.Formation[i] = FormationPosition{
			Left:     Pct(50 + step*bd.Spread),
			Top:      Pct(bd.Base - math.Abs(step)*bd.Depth),
			Rotation: step * bd.RotationStep,
		}
	}

	switch {
	case bd.ContainerBox != nil:
		b := bd.ContainerBox
		cfg.Container = ContainerConstraints{Absolute: &AbsoluteRect{
			X:      b.X / 100 * w,
			Y:      b.Y / 100 * h,
			Width:  b.Width / 100 * w,
			Height: b.Height / 100 * h,
		}}
	default:
		in := bd.ContainerInsets
		cfg.Container = ContainerConstraints{Constrained: &ConstraintInsets{
			Left:   in.Left * scale,
			Right:  in.Right * scale,
			Bottom: in.Bottom * scale,
		}}
	}

	cfg.StackingCards = stackingCards(w, h)
	cfg.SurroundingCards = surroundingCards(w, h)
	cfg.StackPosition = Vec2{
		X: w * (1 - d.StackScale) / 2,
		Y: h * (1 - d.StackScale) / 2,
	}
	return cfg
}

func (r *Resolver) breakpoint(w float64) (Breakpoint, BreakpointDesign) {
	switch {
	case w >= r.design.DesktopWidth:
		return BreakpointDesktop, r.design.Desktop
	case w >= r.design.TabletWidth:
		return BreakpointTablet, r.design.Tablet
	default:
		return BreakpointMobile, r.design.Mobile
	}
}

var (
	stackRotations = [StackingCount]float64{-8, 5, -3, 6, 0}
	// rows and columns of the surrounding frame, percent of the viewport
	surroundRowX = [4]float64{8, 30, 52, 74}
	surroundColY = [2]float64{32, 54}
)

func stackingCards(w, h float64) []StackingCard {
	cards := make([]StackingCard, StackingCount)
	mid := (StackingCount - 1) / 2
	for k := range cards {
		step := float64(k - mid)
		cards[k] = StackingCard{
			Position: Vec2{X: w * (0.5 + step*0.06), Y: h * (0.5 + step*0.02)},
			Rotation: stackRotations[k],
			Scale:    1 - 0.05*float64(StackingCount-1-k),
		}
	}
	return cards
}

// surroundingCards lays out the frame in list order: top row, left column,
// right column, bottom row. Rows run left to right, columns top to bottom.
func surroundingCards(w, h float64) []SurroundingCard {
	size := Vec2{X: w * 0.18, Y: h * 0.14}
	cards := make([]SurroundingCard, 0, SurroundingCount)
	for slot, x := range surroundRowX {
		cards = append(cards, SurroundingCard{
			Side: SideTop, Slot: slot, Size: size,
			Position:    Vec2{X: w * x / 100, Y: h * 0.06},
			EntryOffset: Vec2{Y: -h * 0.3},
		})
	}
	for slot, y := range surroundColY {
		cards = append(cards, SurroundingCard{
			Side: SideLeft, Slot: slot, Size: size,
			Position:    Vec2{X: w * 0.02, Y: h * y / 100},
			EntryOffset: Vec2{X: -w * 0.3},
		})
	}
	for slot, y := range surroundColY {
		cards = append(cards, SurroundingCard{
			Side: SideRight, Slot: slot, Size: size,
			Position:    Vec2{X: w * 0.80, Y: h * y / 100},
			EntryOffset: Vec2{X: w * 0.3},
		})
	}
	for slot, x := range surroundRowX {
		cards = append(cards, SurroundingCard{
			Side: SideBottom, Slot: slot, Size: size,
			Position:    Vec2{X: w * x / 100, Y: h * 0.78},
			EntryOffset: Vec2{Y: h * 0.3},
		})
	}
	return cards
}

// sanitize replaces NaN and negative values with fallback and infinities
// with the matching extreme.
func sanitize(v, fallback float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return fallback
	case math.IsInf(v, 1):
		return math.MaxFloat64
	}
	return v
}
