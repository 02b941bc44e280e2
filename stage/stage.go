package stage

import (
	"log"

	"github.com/phanxgames/scrollstage"
)

// Stage is a node tree addressed by target id. It implements
// scrollstage.Targets, so a coordinator only animates nodes that exist.
type Stage struct {
	root  *Node
	nodes map[scrollstage.TargetID]*Node

	// ClearColor fills the screen before the tree is drawn.
	ClearColor Color
}

// New returns an empty stage with a root layer of the viewport size.
func New(vp scrollstage.Viewport) *Stage {
	return &Stage{
		root:       NewGroup("", vp.Width, vp.Height),
		nodes:      make(map[scrollstage.TargetID]*Node),
		ClearColor: Color{0.06, 0.06, 0.08, 1},
	}
}

// Root returns the root layer.
func (s *Stage) Root() *Node { return s.root }

// Add registers n and attaches it under parent, or under the root when
// parent is empty or unknown.
func (s *Stage) Add(n *Node, parent scrollstage.TargetID) {
	if n.ID == "" {
		panic("stage: node needs a target id")
	}
	if old, ok := s.nodes[n.ID]; ok && old != n {
		old.RemoveFromParent()
	}
	s.nodes[n.ID] = n
	s.parentFor(parent).AddChild(n)
}

// Remove detaches the node of id. Its children go with it.
func (s *Stage) Remove(id scrollstage.TargetID) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	delete(s.nodes, id)
	n.RemoveFromParent()
}

// Node returns the node of id.
func (s *Stage) Node(id scrollstage.TargetID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Has reports whether the stage has a node for id.
func (s *Stage) Has(id scrollstage.TargetID) bool {
	_, ok := s.nodes[id]
	return ok
}

// Len returns the number of registered nodes.
func (s *Stage) Len() int { return len(s.nodes) }

func (s *Stage) parentFor(id scrollstage.TargetID) *Node {
	if id == "" {
		return s.root
	}
	if p, ok := s.nodes[id]; ok {
		return p
	}
	return s.root
}

// Apply copies a frame onto the tree: styles, texts and parents. Patches for
// unknown ids are ignored. World transforms are refreshed afterwards.
func (s *Stage) Apply(f scrollstage.Frame) {
	for _, p := range f.Patches {
		n, ok := s.nodes[p.Target]
		if !ok {
			continue
		}
		n.SetStyle(p.Style)
		n.SetText(p.Text)
		parent := s.parentFor(p.Parent)
		if n.Parent == parent {
			continue
		}
		if isAncestor(n, parent) {
			log.Printf("stage: refusing to move %q under its descendant %q", n.ID, p.Parent)
			continue
		}
		parent.AddChild(n)
	}
	for _, ev := range f.Events {
		if scrollstage.Debug() {
			log.Printf("stage: %s %s at %.2f on %q", ev.Direction, ev.Effect.Kind, ev.At, ev.Effect.Target)
		}
	}
	s.Update()
}

// Update recomputes world transforms of dirty nodes.
func (s *Stage) Update() {
	updateWorldTransform(s.root, identityTransform, 1, false)
}

var cardPalette = []Color{
	{0.93, 0.42, 0.36, 1},
	{0.98, 0.76, 0.33, 1},
	{0.45, 0.78, 0.62, 1},
	{0.36, 0.62, 0.93, 1},
	{0.67, 0.52, 0.90, 1},
}

// NewHeroStage builds the node tree for every target of cfg.
func NewHeroStage(cfg scrollstage.ResponsiveConfig) *Stage {
	vw, vh := cfg.Viewport.Width, cfg.Viewport.Height
	s := New(cfg.Viewport)
	dark := Color{0.1, 0.1, 0.12, 1}

	s.Add(NewGroup(scrollstage.TargetContainer, vw, vh), "")
	for i := 0; i < cfg.EntryCount; i++ {
		s.Add(NewCard(scrollstage.EntryCard(i), cfg.CardSize.X, cfg.CardSize.Y, cardPalette[i%len(cardPalette)]),
			scrollstage.TargetContainer)
	}

	s.Add(NewGroup(scrollstage.TargetStackLayer, vw, vh), "")
	for k := range cfg.StackingCards {
		s.Add(NewCard(scrollstage.StackCard(k), cfg.CardSize.X, cfg.CardSize.Y, cardPalette[(k+2)%len(cardPalette)]),
			scrollstage.TargetStackLayer)
	}

	s.Add(NewBox(scrollstage.TargetOverlay, vw, vh, dark), "")
	for i, c := range cfg.SurroundingCards {
		s.Add(NewBox(scrollstage.SurroundCard(i), c.Size.X, c.Size.Y, cardPalette[i%len(cardPalette)]), "")
	}

	s.Add(NewText(scrollstage.TargetTitle, cfg.Styling.TitleText), "")
	s.Add(NewText(scrollstage.TargetSubtitle, cfg.Styling.SubtitleText), "")
	s.Add(NewText(scrollstage.TargetSecondaryTitle, cfg.Styling.SecondaryText), "")

	s.Add(NewBox(scrollstage.TargetHeader, vw, 64*cfg.LayoutScale, dark), "")

	mask := NewBox(scrollstage.TargetMask, vw, vh, Color{0, 0, 0, 1})
	mask.SetPivot(vw/2, vh/2)
	s.Add(mask, "")

	s.Update()
	return s
}
