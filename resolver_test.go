package scrollstage

import (
	"math"
	"testing"
)

var resolveWidths = []float64{0, -50, math.NaN(), math.Inf(1), 319, 320, 480, 640, 800, 1023, 1024, 1440, 1920, 2560, 4000}

func TestResolveListLengthsStable(t *testing.T) {
	for _, w := range resolveWidths {
		cfg := Resolve(w)
		if cfg.EntryCount != EntryCount || len(cfg.EntrySlots) != EntryCount || len(cfg.EntryRotations) != EntryCount {
			t.Errorf("width %v: entry lists = %d/%d/%d, want %d", w, cfg.EntryCount, len(cfg.EntrySlots), len(cfg.EntryRotations), EntryCount)
		}
		if len(cfg.Formation) != FormationCount {
			t.Errorf("width %v: formation = %d, want %d", w, len(cfg.Formation), FormationCount)
		}
		if len(cfg.StackingCards) != StackingCount {
			t.Errorf("width %v: stacking = %d, want %d", w, len(cfg.StackingCards), StackingCount)
		}
		if len(cfg.SurroundingCards) != SurroundingCount {
			t.Errorf("width %v: surrounding = %d, want %d", w, len(cfg.SurroundingCards), SurroundingCount)
		}
		if !cfg.Container.Valid() {
			t.Errorf("width %v: container constraints invalid", w)
		}
	}
}

func TestResolveClampsWidth(t *testing.T) {
	tests := []struct {
		name  string
		width float64
		want  float64
	}{
		{"zero", 0, 320},
		{"negative", -50, 320},
		{"nan", math.NaN(), 320},
		{"below min", 100, 320},
		{"in range", 1440, 1440},
		{"above max", 4000, 2560},
		{"infinite", math.Inf(1), 2560},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Resolve(tt.width)
			if cfg.Viewport.Width != tt.want {
				t.Errorf("Resolve(%v).Viewport.Width = %v, want %v", tt.width, cfg.Viewport.Width, tt.want)
			}
			if math.IsNaN(cfg.LayoutScale) || math.IsInf(cfg.LayoutScale, 0) {
				t.Errorf("LayoutScale = %v, want finite", cfg.LayoutScale)
			}
		})
	}
}

func TestResolveHeight(t *testing.T) {
	if h := Resolve(1440).Viewport.Height; h != 900 {
		t.Errorf("derived height = %v, want 900", h)
	}
	if h := Resolve(320).Viewport.Height; h != 480 {
		t.Errorf("derived height at 320 = %v, want clamp to 480", h)
	}
	cfg := DefaultResolver().ResolveViewport(Viewport{Width: 1440, Height: 700})
	if cfg.Viewport.Height != 700 {
		t.Errorf("explicit height = %v, want 700", cfg.Viewport.Height)
	}
	cfg = DefaultResolver().ResolveViewport(Viewport{Width: 1440, Height: math.NaN()})
	if cfg.Viewport.Height != 900 {
		t.Errorf("NaN height = %v, want derived 900", cfg.Viewport.Height)
	}
	if got := Resolve(1440).ScrollLength; got != 900*8 {
		t.Errorf("ScrollLength = %v, want %v", got, 900*8)
	}
}

func TestResolveBreakpoints(t *testing.T) {
	tests := []struct {
		width float64
		want  Breakpoint
	}{
		{320, BreakpointMobile},
		{639, BreakpointMobile},
		{640, BreakpointTablet},
		{1023, BreakpointTablet},
		{1024, BreakpointDesktop},
		{2560, BreakpointDesktop},
	}
	for _, tt := range tests {
		if got := Resolve(tt.width).Breakpoint; got != tt.want {
			t.Errorf("Resolve(%v).Breakpoint = %s, want %s", tt.width, got, tt.want)
		}
	}
}

func TestResolveLayoutScale(t *testing.T) {
	tests := []struct {
		width float64
		want  float64
	}{
		{320, 0.4},
		{720, 0.5},
		{1440, 1},
		{1728, 1.2},
		{2560, 1.2},
	}
	for _, tt := range tests {
		cfg := Resolve(tt.width)
		assertApprox(t, "LayoutScale", cfg.LayoutScale, tt.want)
		assertApprox(t, "CardSize.X", cfg.CardSize.X, 200*tt.want)
		assertApprox(t, "CardRadius", cfg.Styling.CardRadius, 12*tt.want)
	}
}

func TestResolveFormationCentre(t *testing.T) {
	cfg := Resolve(1440)
	f := cfg.Formation[3]
	if f.Left != Pct(50) || f.Top != Pct(62) || f.Rotation != 0 {
		t.Errorf("centre formation = %+v, want left 50%%, top 62%%, rotation 0", f)
	}
	// Neighbours mirror each other around the centre card.
	for i := 0; i < 3; i++ {
		l, r := cfg.Formation[i], cfg.Formation[6-i]
		if l.Top != r.Top {
			t.Errorf("formation %d and %d tops differ: %v vs %v", i, 6-i, l.Top, r.Top)
		}
		assertApprox(t, "mirrored left", l.Left.Value+r.Left.Value, 100)
		assertApprox(t, "mirrored rotation", l.Rotation+r.Rotation, 0)
	}
}

func TestResolveContainerModes(t *testing.T) {
	desk := Resolve(1440)
	if desk.Container.Absolute == nil {
		t.Fatal("desktop should use an absolute box")
	}
	assertApprox(t, "box x", desk.Container.Absolute.X, 748.8)
	assertApprox(t, "box width", desk.Container.Absolute.Width, 604.8)

	mob := Resolve(480)
	if mob.Container.Constrained == nil {
		t.Fatal("mobile should use constraint insets")
	}
	assertApprox(t, "mobile inset", mob.Container.Constrained.Left, 16*0.4)
}

func TestPlacement(t *testing.T) {
	tests := []struct {
		name             string
		c                ContainerConstraints
		vp               Viewport
		wantX, wantY, sc float64
	}{
		{
			name:  "insets",
			c:     ContainerConstraints{Constrained: &ConstraintInsets{Left: 40, Right: 40, Bottom: 20}},
			vp:    Viewport{Width: 800, Height: 600},
			wantX: 40, wantY: 40, sc: 0.9,
		},
		{
			name:  "box letterboxed",
			c:     ContainerConstraints{Absolute: &AbsoluteRect{X: 100, Y: 50, Width: 400, Height: 400}},
			vp:    Viewport{Width: 1000, Height: 500},
			wantX: 100, wantY: 150, sc: 0.4,
		},
		{
			name:  "insets wider than viewport",
			c:     ContainerConstraints{Constrained: &ConstraintInsets{Left: 500, Right: 500}},
			vp:    Viewport{Width: 800, Height: 600},
			wantX: 0, wantY: 0, sc: 1,
		},
		{
			name: "no mode",
			vp:   Viewport{Width: 800, Height: 600},
			sc:   1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, s := tt.c.Placement(tt.vp)
			if !approx(x, tt.wantX) || !approx(y, tt.wantY) || !approx(s, tt.sc) {
				t.Errorf("Placement = (%v, %v, %v), want (%v, %v, %v)", x, y, s, tt.wantX, tt.wantY, tt.sc)
			}
		})
	}
}

func TestResolveSurroundingLayout(t *testing.T) {
	cfg := Resolve(1440)
	sides := map[Side]int{}
	for _, c := range cfg.SurroundingCards {
		sides[c.Side]++
	}
	if sides[SideTop] != 4 || sides[SideBottom] != 4 || sides[SideLeft] != 2 || sides[SideRight] != 2 {
		t.Errorf("side counts = %v", sides)
	}
}

func TestResolveStackRestsCentred(t *testing.T) {
	for _, vp := range []Viewport{{Width: 1440, Height: 900}, {Width: 390, Height: 844}, {Width: 1024, Height: 600}} {
		cfg := DefaultResolver().ResolveViewport(vp)
		if cfg.StackScale != 0.35 {
			t.Errorf("%v: StackScale = %v, want 0.35", vp, cfg.StackScale)
		}
		w, h := cfg.Viewport.Width, cfg.Viewport.Height
		assertApprox(t, "scaled layer centre x", cfg.StackPosition.X+w*cfg.StackScale/2, w/2)
		assertApprox(t, "scaled layer centre y", cfg.StackPosition.Y+h*cfg.StackScale/2, h/2)
	}
}

func TestNewResolverRejectsInvalidDesign(t *testing.T) {
	d := DefaultDesign()
	d.MinWidth = 3000
	if _, err := NewResolver(d); err == nil {
		t.Error("expected error for min_width above max_width")
	}
	r, err := NewResolver(DefaultDesign())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Design().BaseWidth != 1440 {
		t.Errorf("Design().BaseWidth = %v", r.Design().BaseWidth)
	}
}
