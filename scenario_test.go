package scrollstage

import "testing"

// heroAt samples the default 1440-wide hero sequence at timeline time t.
func heroAt(t float64) (ResponsiveConfig, Frame) {
	cfg := Resolve(1440)
	tl := Build(cfg)
	return cfg, NewExecutor(tl, nil).Sample(tl.ProgressAt(t))
}

func mustLookup(t *testing.T, f Frame, id TargetID) Patch {
	t.Helper()
	p, ok := f.Lookup(id)
	if !ok {
		t.Fatalf("no patch for %q", id)
	}
	return p
}

func TestHeroStart(t *testing.T) {
	cfg, f := heroAt(0)
	mask := mustLookup(t, f, TargetMask)
	if mask.Style.Scale != 1 || mask.Style.Opacity != 1 {
		t.Errorf("mask = %+v, want full and unscaled", mask.Style)
	}
	if h := mustLookup(t, f, TargetHeader); h.Style.Opacity != 0 {
		t.Errorf("header opacity = %v, want 0", h.Style.Opacity)
	}
	for i := 0; i < EntryCount; i++ {
		c := mustLookup(t, f, EntryCard(i))
		assertApprox(t, "entry y", c.Style.Y, cfg.Viewport.Height+cfg.CardSize.Y)
		if c.Parent != TargetContainer {
			t.Errorf("entry %d parent = %q", i, c.Parent)
		}
	}
	title := mustLookup(t, f, TargetTitle)
	if title.Text != cfg.Styling.TitleText || title.Style.Opacity != 0 {
		t.Errorf("title = %q opacity %v", title.Text, title.Style.Opacity)
	}
	if o := mustLookup(t, f, TargetOverlay); o.Style.Y != cfg.Viewport.Height {
		t.Errorf("overlay y = %v, want below the viewport", o.Style.Y)
	}
}

func TestHeroIntroDone(t *testing.T) {
	_, f := heroAt(3)
	mask := mustLookup(t, f, TargetMask)
	if mask.Style.Opacity != 0 || mask.Style.Scale != maskFinalScale {
		t.Errorf("mask = %+v, want faded and scaled", mask.Style)
	}
	title := mustLookup(t, f, TargetTitle)
	assertApprox(t, "title opacity", title.Style.Opacity, 1)
	assertApprox(t, "title y", title.Style.Y, 450-48)
}

func TestHeroEntryRested(t *testing.T) {
	cfg, f := heroAt(5.3)
	for i := 0; i < EntryCount; i++ {
		c := mustLookup(t, f, EntryCard(i))
		assertApprox(t, "entry x", c.Style.X, cfg.EntrySlots[i].X)
		assertApprox(t, "entry y", c.Style.Y, cfg.EntrySlots[i].Y)
		assertApprox(t, "entry rotation", c.Style.Rotation, cfg.EntryRotations[i])
		assertApprox(t, "entry opacity", c.Style.Opacity, 1)
	}
}

func TestHeroFormation(t *testing.T) {
	cfg, f := heroAt(10)
	centre := mustLookup(t, f, EntryCard(3))
	assertApprox(t, "centre x", centre.Style.X, 720)
	assertApprox(t, "centre y", centre.Style.Y, 558)
	assertApprox(t, "centre rotation", centre.Style.Rotation, 0)
	for _, i := range []int{7, 8} {
		c := mustLookup(t, f, EntryCard(i))
		assertApprox(t, "extra opacity", c.Style.Opacity, 0)
		assertApprox(t, "extra y", c.Style.Y, cfg.Viewport.Height+cfg.CardSize.Y)
	}
	if st := mustLookup(t, f, TargetSecondaryTitle); st.Parent != "" {
		t.Errorf("secondary title reparented early: %q", st.Parent)
	}
}

func TestHeroSecondary(t *testing.T) {
	cfg, f := heroAt(14.2)
	ct := mustLookup(t, f, TargetContainer)
	assertApprox(t, "container scale", ct.Style.Scale, 0.42)
	assertApprox(t, "container x", ct.Style.X, 748.8)
	assertApprox(t, "container y", ct.Style.Y, 162)
	assertApprox(t, "visual container radius", ct.Style.Radius*ct.Style.Scale, 24)

	if sub := mustLookup(t, f, TargetSubtitle); sub.Style.Opacity != 0 {
		t.Errorf("subtitle opacity = %v, want 0", sub.Style.Opacity)
	}
	st := mustLookup(t, f, TargetSecondaryTitle)
	if st.Parent != TargetContainer || st.Style.Opacity != 1 {
		t.Errorf("secondary title parent %q opacity %v", st.Parent, st.Style.Opacity)
	}
	for k, sc := range cfg.StackingCards {
		p := mustLookup(t, f, StackCard(k))
		assertApprox(t, "stack opacity", p.Style.Opacity, 1)
		assertApprox(t, "stack y", p.Style.Y, sc.Position.Y)
		if p.Parent != TargetStackLayer {
			t.Errorf("stack %d parent = %q", k, p.Parent)
		}
	}
}

func TestHeroSwap(t *testing.T) {
	cfg, before := heroAt(14.9)
	if mustLookup(t, before, TargetTitle).Text != cfg.Styling.TitleText {
		t.Error("title swapped before its fade finished")
	}
	// Just past the instant, so float rounding cannot land before it.
	_, at := heroAt(15.0 + 1e-9)
	title := mustLookup(t, at, TargetTitle)
	if title.Text != cfg.Styling.SecondaryText {
		t.Errorf("title text at swap = %q", title.Text)
	}
	assertApprox(t, "title opacity at swap", title.Style.Opacity, 0)
	assertApprox(t, "secondary opacity at swap", mustLookup(t, at, TargetSecondaryTitle).Style.Opacity, 0)

	_, after := heroAt(17)
	title = mustLookup(t, after, TargetTitle)
	st := mustLookup(t, after, TargetSecondaryTitle)
	if title.Text != cfg.Styling.SecondaryText || st.Text != cfg.Styling.TitleText {
		t.Errorf("texts after swap = %q / %q", title.Text, st.Text)
	}
	assertApprox(t, "title opacity after swap", title.Style.Opacity, 1)
}

func TestHeroEnd(t *testing.T) {
	cfg, f := heroAt(20)
	layer := mustLookup(t, f, TargetStackLayer)
	assertApprox(t, "layer scale", layer.Style.Scale, 0.35)
	assertApprox(t, "layer x", layer.Style.X, cfg.StackPosition.X)
	assertApprox(t, "layer y", layer.Style.Y, cfg.StackPosition.Y)
	if o := mustLookup(t, f, TargetOverlay); o.Style.Y != 0 {
		t.Errorf("overlay y = %v, want 0", o.Style.Y)
	}
	for i, sc := range cfg.SurroundingCards {
		p := mustLookup(t, f, SurroundCard(i))
		assertApprox(t, "surround x", p.Style.X, sc.Position.X)
		assertApprox(t, "surround y", p.Style.Y, sc.Position.Y)
		assertApprox(t, "surround opacity", p.Style.Opacity, 1)
	}
}

func TestHeroSurroundReveal(t *testing.T) {
	_, f := heroAt(16.0 + surroundStart + 0.05)
	// The top-right card leads, the bottom-left card is still hidden.
	if first := mustLookup(t, f, SurroundCard(3)); first.Style.Opacity <= 0 {
		t.Error("first surround card has not started")
	}
	if last := mustLookup(t, f, SurroundCard(8)); last.Style.Opacity != 0 {
		t.Errorf("last surround card opacity = %v, want 0", last.Style.Opacity)
	}
}
