package scrollstage

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// BreakpointDesign holds the per-breakpoint layout tunables.
type BreakpointDesign struct {
	// Spread is the horizontal distance between neighbouring formation cards,
	// in percent of the viewport width.
	Spread float64 `yaml:"spread"`
	// Depth is how far each step away from the centre card rises, in percent
	// of the viewport height.
	Depth float64 `yaml:"depth"`
	// Base is the top of the centre formation card, in percent of height.
	Base float64 `yaml:"base"`
	// RotationStep is the rotation added per step away from the centre.
	RotationStep float64 `yaml:"rotation_step"`

	// ContainerBox is the absolute container box in percent of the viewport.
	ContainerBox *AbsoluteRect `yaml:"container_box,omitempty"`
	// ContainerInsets are edge insets in layout-scaled pixels.
	ContainerInsets *ConstraintInsets `yaml:"container_insets,omitempty"`
}

// Design is the tunable source of truth the resolver derives configs from.
// List lengths are not tunable.
type Design struct {
	BaseWidth  float64 `yaml:"base_width"`
	BaseHeight float64 `yaml:"base_height"`
	MinWidth   float64 `yaml:"min_width"`
	MaxWidth   float64 `yaml:"max_width"`
	MinHeight  float64 `yaml:"min_height"`
	MaxHeight  float64 `yaml:"max_height"`
	MinScale   float64 `yaml:"min_scale"`
	MaxScale   float64 `yaml:"max_scale"`

	TabletWidth  float64 `yaml:"tablet_width"`
	DesktopWidth float64 `yaml:"desktop_width"`

	CardWidth  float64 `yaml:"card_width"`
	CardHeight float64 `yaml:"card_height"`

	// EntrySpread is the horizontal gap between entry cards, percent of width.
	EntrySpread float64 `yaml:"entry_spread"`
	// EntryLine is the vertical centre of the entry row, percent of height.
	EntryLine float64 `yaml:"entry_line"`
	// TitleOffset is the locked title offset below centre, layout-scaled px.
	TitleOffset float64 `yaml:"title_offset"`

	StackScale       float64 `yaml:"stack_scale"`
	ScrollMultiplier float64 `yaml:"scroll_multiplier"`

	Mobile  BreakpointDesign `yaml:"mobile"`
	Tablet  BreakpointDesign `yaml:"tablet"`
	Desktop BreakpointDesign `yaml:"desktop"`

	Styling Styling `yaml:"styling"`
}

// DefaultDesign returns the design the hero sequence was laid out on.
func DefaultDesign() Design {
	return Design{
		BaseWidth:  1440,
		BaseHeight: 900,
		MinWidth:   320,
		MaxWidth:   2560,
		MinHeight:  480,
		MaxHeight:  1600,
		MinScale:   0.4,
		MaxScale:   1.2,

		TabletWidth:  640,
		DesktopWidth: 1024,

		CardWidth:  200,
		CardHeight: 280,

		EntrySpread: 9,
		EntryLine:   58,
		TitleOffset: 96,

		StackScale:       0.35,
		ScrollMultiplier: 8,

		Mobile: BreakpointDesign{
			Spread: 13, Depth: 5, Base: 66, RotationStep: -5,
			ContainerInsets: &ConstraintInsets{Left: 16, Right: 16, Bottom: 32},
		},
		Tablet: BreakpointDesign{
			Spread: 12, Depth: 6, Base: 64, RotationStep: -4,
			ContainerInsets: &ConstraintInsets{Left: 48, Right: 48, Bottom: 48},
		},
		Desktop: BreakpointDesign{
			Spread: 11, Depth: 7, Base: 62, RotationStep: -4,
			ContainerBox: &AbsoluteRect{X: 52, Y: 18, Width: 42, Height: 42},
		},

		Styling: Styling{
			CardRadius:      12,
			ContainerRadius: 24,
			Shadow:          "2xl",
			OverlayColor:    "#000000",
			TitleText:       "بس اصلي",
			SubtitleText:    "اهداء ليسري نصر الله",
			SecondaryText:   "النسخة",
		},
	}
}

// Validate reports the first problem that would make the design unusable.
func (d Design) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"base_width", d.BaseWidth}, {"base_height", d.BaseHeight},
		{"min_width", d.MinWidth}, {"max_width", d.MaxWidth},
		{"min_height", d.MinHeight}, {"max_height", d.MaxHeight},
		{"min_scale", d.MinScale}, {"max_scale", d.MaxScale},
		{"card_width", d.CardWidth}, {"card_height", d.CardHeight},
		{"stack_scale", d.StackScale}, {"scroll_multiplier", d.ScrollMultiplier},
	}
	for _, p := range positive {
		if !(p.v > 0) || math.IsInf(p.v, 0) {
			return fmt.Errorf("design: %s must be positive, got %v", p.name, p.v)
		}
	}
	if d.MinWidth > d.MaxWidth {
		return fmt.Errorf("design: min_width %v exceeds max_width %v", d.MinWidth, d.MaxWidth)
	}
	if d.MinHeight > d.MaxHeight {
		return fmt.Errorf("design: min_height %v exceeds max_height %v", d.MinHeight, d.MaxHeight)
	}
	if d.MinScale > d.MaxScale {
		return fmt.Errorf("design: min_scale %v exceeds max_scale %v", d.MinScale, d.MaxScale)
	}
	if d.TabletWidth > d.DesktopWidth {
		return fmt.Errorf("design: tablet_width %v exceeds desktop_width %v", d.TabletWidth, d.DesktopWidth)
	}
	if d.StackScale >= 1 {
		return fmt.Errorf("design: stack_scale must be below 1, got %v", d.StackScale)
	}
	for _, bp := range []struct {
		name string
		bd   BreakpointDesign
	}{{"mobile", d.Mobile}, {"tablet", d.Tablet}, {"desktop", d.Desktop}} {
		if (bp.bd.ContainerBox == nil) == (bp.bd.ContainerInsets == nil) {
			return fmt.Errorf("design: %s must set exactly one of container_box and container_insets", bp.name)
		}
	}
	return nil
}

// LoadDesign parses a YAML design. Keys that are absent keep their
// DefaultDesign value.
func LoadDesign(data []byte) (Design, error) {
	d := DefaultDesign()
	// Breakpoint container modes are replaced, not merged, so a file can
	// switch a breakpoint from box to insets.
	var probe struct {
		Mobile  map[string]any `yaml:"mobile"`
		Tablet  map[string]any `yaml:"tablet"`
		Desktop map[string]any `yaml:"desktop"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Design{}, fmt.Errorf("parse design: %w", err)
	}
	clearContainer(&d.Mobile, probe.Mobile)
	clearContainer(&d.Tablet, probe.Tablet)
	clearContainer(&d.Desktop, probe.Desktop)

	if err := yaml.Unmarshal(data, &d); err != nil {
		return Design{}, fmt.Errorf("parse design: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Design{}, err
	}
	return d, nil
}

func clearContainer(bd *BreakpointDesign, keys map[string]any) {
	_, box := keys["container_box"]
	_, insets := keys["container_insets"]
	if box || insets {
		bd.ContainerBox = nil
		bd.ContainerInsets = nil
	}
}
