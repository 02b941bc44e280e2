package scrollstage

import (
	"math"
	"sort"
)

// Vec2 is a 2D vector used for positions, offsets and sizes in viewport
// pixels. The origin is the top-left of the pinned region, Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Viewport is the size of the host viewport in pixels.
type Viewport struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle in viewport pixels.
type Rect struct {
	X, Y, Width, Height float64
}

// Unit selects how a Length is interpreted.
type Unit uint8

const (
	UnitPixel   Unit = iota // absolute pixels
	UnitPercent             // percent of the matching viewport axis
)

// Length is a scalar that is either absolute or relative to the viewport.
type Length struct {
	Value float64
	Unit  Unit
}

// Px returns an absolute Length.
func Px(v float64) Length { return Length{Value: v, Unit: UnitPixel} }

// Pct returns a Length relative to the viewport axis it is resolved against.
func Pct(v float64) Length { return Length{Value: v, Unit: UnitPercent} }

// Resolve converts l to pixels against an axis of the given size.
func (l Length) Resolve(axis float64) float64 {
	if l.Unit == UnitPercent {
		return l.Value / 100 * axis
	}
	return l.Value
}

// Prop identifies one animatable style property.
type Prop uint8

const (
	PropX        Prop = iota // left edge, pixels
	PropY                    // top edge, pixels
	PropScale                // uniform scale, origin top-left
	PropRotation             // degrees, clockwise
	PropOpacity              // [0, 1]
	PropRadius               // border radius in local (pre-scale) pixels
	propCount
)

var propNames = [propCount]string{"x", "y", "scale", "rotation", "opacity", "radius"}

func (p Prop) String() string {
	if p < propCount {
		return propNames[p]
	}
	return "unknown"
}

// Style is the full visual state of one target at one instant.
type Style struct {
	X, Y     float64
	Scale    float64
	Rotation float64
	Opacity  float64
	Radius   float64
}

// DefaultStyle is the resting style of a target nothing has touched.
var DefaultStyle = Style{Scale: 1, Opacity: 1}

// Get returns the value of p.
func (s Style) Get(p Prop) float64 {
	switch p {
	case PropX:
		return s.X
	case PropY:
		return s.Y
	case PropScale:
		return s.Scale
	case PropRotation:
		return s.Rotation
	case PropOpacity:
		return s.Opacity
	case PropRadius:
		return s.Radius
	}
	return 0
}

// Set writes v into p.
func (s *Style) Set(p Prop, v float64) {
	switch p {
	case PropX:
		s.X = v
	case PropY:
		s.Y = v
	case PropScale:
		s.Scale = v
	case PropRotation:
		s.Rotation = v
	case PropOpacity:
		s.Opacity = v
	case PropRadius:
		s.Radius = v
	}
}

// Patch is the declarative state of one target for one frame.
// Text is empty for targets that carry no text. Parent is empty for targets
// attached to the stage root.
type Patch struct {
	Target TargetID
	Style  Style
	Text   string
	Parent TargetID
}

// Frame is everything a rendering layer needs for one animation frame.
type Frame struct {
	Progress float64
	Time     float64
	Patches  []Patch
	Events   []EffectEvent
}

// Lookup returns the patch for id, if the frame has one.
func (f Frame) Lookup(id TargetID) (Patch, bool) {
	i := sort.Search(len(f.Patches), func(i int) bool { return f.Patches[i].Target >= id })
	if i < len(f.Patches) && f.Patches[i].Target == id {
		return f.Patches[i], true
	}
	return Patch{}, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp01 clamps v to [0, 1]. NaN becomes 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clamp(v, 0, 1)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
