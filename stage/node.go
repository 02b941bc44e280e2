package stage

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/scrollstage"
)

// Kind distinguishes how a Node is drawn.
type Kind uint8

const (
	KindGroup Kind = iota // layer with no visual output
	KindBox               // filled rectangle
	KindText              // single text line
)

// Color is an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color.
var ColorWhite = Color{1, 1, 1, 1}

// Node is one element of the stage tree. Every render target of the
// sequence is a Node; the tree mirrors the Parent field of applied patches.
type Node struct {
	ID   scrollstage.TargetID
	Kind Kind

	Parent   *Node
	children []*Node

	// Local transform. Rotation is in degrees, clockwise.
	X, Y     float64
	Scale    float64
	Rotation float64
	Alpha    float64
	Radius   float64

	// Local box in pixels.
	Width, Height float64
	// Scale and rotation happen about the pivot. When PivotPositioned is
	// set X and Y locate the pivot, otherwise they locate the top-left.
	PivotX, PivotY  float64
	PivotPositioned bool

	Color   Color
	Text    string
	Visible bool

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	textImage *ebiten.Image
	textDirty bool
}

func nodeDefaults(n *Node) {
	n.Scale = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
}

// NewGroup creates a layer node of the given size.
func NewGroup(id scrollstage.TargetID, w, h float64) *Node {
	n := &Node{ID: id, Kind: KindGroup, Width: w, Height: h}
	nodeDefaults(n)
	return n
}

// NewBox creates a top-left positioned rectangle.
func NewBox(id scrollstage.TargetID, w, h float64, c Color) *Node {
	n := &Node{ID: id, Kind: KindBox, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// NewCard creates a rectangle positioned, scaled and rotated by its centre.
func NewCard(id scrollstage.TargetID, w, h float64, c Color) *Node {
	n := NewBox(id, w, h, c)
	n.PivotX, n.PivotY = w/2, h/2
	n.PivotPositioned = true
	return n
}

// NewText creates a text line positioned by its centre.
func NewText(id scrollstage.TargetID, content string) *Node {
	n := &Node{ID: id, Kind: KindText, PivotPositioned: true}
	nodeDefaults(n)
	n.SetText(content)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("stage: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("stage: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("stage: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetStyle copies a patch style into the node's local transform.
func (n *Node) SetStyle(s scrollstage.Style) {
	n.X, n.Y = s.X, s.Y
	n.Scale = s.Scale
	n.Rotation = s.Rotation
	n.Alpha = s.Opacity
	n.Radius = s.Radius
	n.transformDirty = true
}

// SetText replaces the text content. Text nodes size themselves to it.
func (n *Node) SetText(s string) {
	changed := s != n.Text
	n.Text = s
	if n.Kind != KindText || (!changed && n.Width != 0) {
		return
	}
	n.Width, n.Height = textSize(s)
	n.PivotX, n.PivotY = n.Width/2, n.Height/2
	n.textDirty = true
	n.transformDirty = true
}

// SetPivot sets the node's pivot and marks it dirty.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX, n.PivotY = px, py
	n.transformDirty = true
}

// MarkDirty forces recomputation of the world transform on the next update.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldAlpha returns the alpha accumulated from the root.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.worldTransform, lx, ly)
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
