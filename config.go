package scrollstage

// Fixed list lengths. Every resolved config has exactly these counts so a
// timeline built for one width stays index-compatible with any other.
const (
	FormationCount   = 7
	EntryCount       = 9
	StackingCount    = 5
	SurroundingCount = 12
)

// Breakpoint is the coarse layout class chosen from the viewport width.
type Breakpoint uint8

const (
	BreakpointMobile Breakpoint = iota
	BreakpointTablet
	BreakpointDesktop
)

func (b Breakpoint) String() string {
	switch b {
	case BreakpointMobile:
		return "mobile"
	case BreakpointTablet:
		return "tablet"
	case BreakpointDesktop:
		return "desktop"
	}
	return "unknown"
}

// FormationPosition is where one entry card sits in the V formation. Top and
// Left locate the card centre.
type FormationPosition struct {
	Top      Length
	Left     Length
	Rotation float64
}

// AbsoluteRect places the container inside an explicit box.
type AbsoluteRect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ConstraintInsets places the container by its distance from the viewport
// edges. Height follows from the width to keep the composition.
type ConstraintInsets struct {
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
}

// ContainerConstraints describes where the main container goes in the
// secondary phase. Exactly one of Absolute and Constrained is set.
type ContainerConstraints struct {
	Absolute    *AbsoluteRect
	Constrained *ConstraintInsets
}

// Valid reports whether exactly one positioning mode is set.
func (c ContainerConstraints) Valid() bool {
	return (c.Absolute == nil) != (c.Constrained == nil)
}

// Placement returns the top-left corner and uniform scale that fit a
// viewport-sized container into the constraint. The container is scaled as a
// whole, never resized, so its internal composition is preserved.
func (c ContainerConstraints) Placement(vp Viewport) (x, y, scale float64) {
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0, 1
	}
	switch {
	case c.Absolute != nil:
		a := c.Absolute
		scale = a.Width / vp.Width
		if s := a.Height / vp.Height; s < scale {
			scale = s
		}
		if scale <= 0 {
			scale = 1
		}
		x = a.X + (a.Width-vp.Width*scale)/2
		y = a.Y + (a.Height-vp.Height*scale)/2
	case c.Constrained != nil:
		in := c.Constrained
		w := vp.Width - in.Left - in.Right
		if w <= 0 {
			return 0, 0, 1
		}
		scale = w / vp.Width
		x = in.Left
		y = vp.Height - in.Bottom - vp.Height*scale
	default:
		return 0, 0, 1
	}
	return x, y, scale
}

// StackingCard is one card of the secondary group, positioned by its centre.
type StackingCard struct {
	Position Vec2
	Rotation float64
	Scale    float64
}

// Side is the edge of the final layout a surrounding card belongs to.
type Side uint8

const (
	SideTop Side = iota
	SideLeft
	SideRight
	SideBottom
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	}
	return "unknown"
}

// SurroundingCard is one card revealed around the shrunken stack layer.
// Slot orders cards along their side: left to right for rows, top to bottom
// for columns. EntryOffset is added to Position for the pre-reveal state.
type SurroundingCard struct {
	Side        Side
	Slot        int
	Position    Vec2
	Size        Vec2
	EntryOffset Vec2
}

// Styling carries cosmetic presets the core passes through untouched, plus
// the two radii the builder animates.
type Styling struct {
	CardRadius      float64 `yaml:"card_radius"`
	ContainerRadius float64 `yaml:"container_radius"`
	Shadow          string  `yaml:"shadow"`
	OverlayColor    string  `yaml:"overlay_color"`
	TitleText       string  `yaml:"title_text"`
	SubtitleText    string  `yaml:"subtitle_text"`
	SecondaryText   string  `yaml:"secondary_text"`
}

// ResponsiveConfig is an immutable layout snapshot for one viewport.
type ResponsiveConfig struct {
	Viewport    Viewport
	Breakpoint  Breakpoint
	LayoutScale float64

	CardSize   Vec2
	EntryCount int
	// EntrySlots are the resting centres of the entry cards after they rise.
	EntrySlots []Vec2
	// EntryRotations are the resting rotations of the entry cards.
	EntryRotations []float64

	// TitleOffset is the vertical offset, in pixels, that title texts are
	// locked to while they fade.
	TitleOffset float64

	Formation        []FormationPosition
	Container        ContainerConstraints
	StackingCards    []StackingCard
	SurroundingCards []SurroundingCard

	// StackScale is the uniform scale the stack layer settles at during
	// expansion.
	StackScale float64
	// StackPosition is the top-left corner that centres the scaled stack
	// layer in the frame of surrounding cards.
	StackPosition Vec2

	// ScrollLength is the virtual scroll distance the region stays pinned for.
	ScrollLength float64

	Styling Styling
}
