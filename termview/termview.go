// Package termview renders scrollstage frames into a terminal through tcell.
//
// Each target becomes a box of shade runes whose density follows its
// opacity; text targets are printed at their centre. The view is a coarse
// preview for scrubbing a sequence over SSH or in CI logs, not a faithful
// renderer.
package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/scrollstage"
)

// DefaultWheelStep is the scroll distance of one wheel notch in viewport
// pixels.
const DefaultWheelStep = 120

var shades = []rune{' ', '░', '▒', '▓', '█'}

// shadeFor maps opacity in [0, 1] to a shade rune.
func shadeFor(opacity float64) rune {
	if !(opacity > 0) {
		return shades[0]
	}
	i := int(math.Ceil(opacity * float64(len(shades)-1)))
	if i >= len(shades) {
		i = len(shades) - 1
	}
	return shades[i]
}

// node is the flattened state of one target: its world box and alpha.
type node struct {
	x, y, scale, alpha float64
}

// Renderer draws frames onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	cfg    scrollstage.ResponsiveConfig

	// WheelStep scales wheel and arrow input. Zero selects DefaultWheelStep.
	WheelStep float64

	styles map[scrollstage.TargetID]tcell.Style
}

// New returns a renderer for screen. Call SetConfig once a config is bound.
func New(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		styles: map[scrollstage.TargetID]tcell.Style{
			scrollstage.TargetMask:    tcell.StyleDefault.Foreground(tcell.ColorGray),
			scrollstage.TargetHeader:  tcell.StyleDefault.Foreground(tcell.ColorDarkCyan),
			scrollstage.TargetOverlay: tcell.StyleDefault.Foreground(tcell.ColorNavy),
		},
	}
}

// SetConfig records the layout the next frames were built for.
func (r *Renderer) SetConfig(cfg scrollstage.ResponsiveConfig) {
	r.cfg = cfg
}

// Config returns the recorded layout.
func (r *Renderer) Config() scrollstage.ResponsiveConfig { return r.cfg }

// cell maps a viewport point to a screen cell.
func (r *Renderer) cell(x, y float64) (int, int) {
	cols, rows := r.screen.Size()
	vp := r.cfg.Viewport
	if vp.Width <= 0 || vp.Height <= 0 {
		return 0, 0
	}
	return int(math.Floor(x / vp.Width * float64(cols))), int(math.Floor(y / vp.Height * float64(rows)))
}

// size returns the local box of a target and whether it is centre-positioned.
func (r *Renderer) size(id scrollstage.TargetID) (w, h float64, centred bool) {
	vp := r.cfg.Viewport
	switch id {
	case scrollstage.TargetMask, scrollstage.TargetOverlay:
		return vp.Width, vp.Height, false
	case scrollstage.TargetHeader:
		return vp.Width, 64 * r.cfg.LayoutScale, false
	case scrollstage.TargetContainer, scrollstage.TargetStackLayer:
		return 0, 0, false
	}
	for i := range r.cfg.SurroundingCards {
		if id == scrollstage.SurroundCard(i) {
			s := r.cfg.SurroundingCards[i].Size
			return s.X, s.Y, false
		}
	}
	return r.cfg.CardSize.X, r.cfg.CardSize.Y, true
}

// flatten resolves every patch against its parent chain. Layers scale from
// their top-left, so a child at local (x, y) lands at parent + scale*(x, y).
func flatten(f scrollstage.Frame) map[scrollstage.TargetID]node {
	out := make(map[scrollstage.TargetID]node, len(f.Patches))
	var resolve func(id scrollstage.TargetID, depth int) node
	resolve = func(id scrollstage.TargetID, depth int) node {
		if n, ok := out[id]; ok {
			return n
		}
		p, ok := f.Lookup(id)
		if !ok {
			return node{scale: 1, alpha: 1}
		}
		n := node{x: p.Style.X, y: p.Style.Y, scale: p.Style.Scale, alpha: p.Style.Opacity}
		if p.Parent != "" && depth < 8 {
			parent := resolve(p.Parent, depth+1)
			n.x = parent.x + parent.scale*n.x
			n.y = parent.y + parent.scale*n.y
			n.scale *= parent.scale
			n.alpha *= parent.alpha
		}
		out[id] = n
		return n
	}
	for _, p := range f.Patches {
		resolve(p.Target, 0)
	}
	return out
}

// Draw clears the screen and renders f in patch order, texts last.
func (r *Renderer) Draw(f scrollstage.Frame) {
	r.screen.Clear()
	flat := flatten(f)
	var texts []scrollstage.Patch
	for _, p := range f.Patches {
		if p.Text != "" {
			texts = append(texts, p)
			continue
		}
		w, h, centred := r.size(p.Target)
		n := flat[p.Target]
		if w <= 0 || h <= 0 || n.alpha <= 0 {
			continue
		}
		w, h = w*n.scale, h*n.scale
		x, y := n.x, n.y
		if centred {
			x, y = x-w/2, y-h/2
		}
		r.fill(x, y, w, h, shadeFor(n.alpha), r.styleFor(p.Target))
	}
	for _, p := range texts {
		n := flat[p.Target]
		if n.alpha < 0.5 {
			continue
		}
		r.print(n.x, n.y, p.Text)
	}
	r.screen.Show()
}

func (r *Renderer) styleFor(id scrollstage.TargetID) tcell.Style {
	if s, ok := r.styles[id]; ok {
		return s
	}
	return tcell.StyleDefault
}

func (r *Renderer) fill(x, y, w, h float64, ch rune, style tcell.Style) {
	cols, rows := r.screen.Size()
	x0, y0 := r.cell(x, y)
	x1, y1 := r.cell(x+w, y+h)
	if x1 == x0 {
		x1++
	}
	if y1 == y0 {
		y1++
	}
	for cy := max(y0, 0); cy < min(y1, rows); cy++ {
		for cx := max(x0, 0); cx < min(x1, cols); cx++ {
			r.screen.SetContent(cx, cy, ch, nil, style)
		}
	}
}

// print writes s centred on the viewport point (x, y).
func (r *Renderer) print(x, y float64, s string) {
	cols, rows := r.screen.Size()
	cx, cy := r.cell(x, y)
	runes := []rune(s)
	cx -= len(runes) / 2
	if cy < 0 || cy >= rows {
		return
	}
	style := tcell.StyleDefault.Bold(true)
	for i, ch := range runes {
		if px := cx + i; px >= 0 && px < cols {
			r.screen.SetContent(px, cy, ch, nil, style)
		}
	}
}
