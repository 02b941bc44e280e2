package stage

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TextSize is the font size of text nodes before node scale.
const TextSize = 18

var (
	textFace   *text.GoTextFace
	lineHeight float64
)

// face returns the shared Go Regular face, parsing it on first use.
func face() *text.GoTextFace {
	if textFace != nil {
		return textFace
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Panicf("stage: parse embedded font: %v", err)
	}
	textFace = &text.GoTextFace{Source: src, Size: TextSize}
	m := textFace.Metrics()
	lineHeight = m.HAscent + m.HDescent + m.HLineGap
	return textFace
}

// --- White pixel singleton (no sync.Once, the stage is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

func textSize(s string) (float64, float64) {
	if s == "" {
		return 0, 0
	}
	f := face()
	return text.Measure(s, f, lineHeight)
}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(c.R*255 + 0.5),
		G: uint8(c.G*255 + 0.5),
		B: uint8(c.B*255 + 0.5),
		A: uint8(c.A*255 + 0.5),
	}
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// Draw renders the tree onto screen in child order.
func (s *Stage) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.toRGBA())
	var op ebiten.DrawImageOptions
	drawNode(screen, s.root, &op)
}

func drawNode(dst *ebiten.Image, n *Node, op *ebiten.DrawImageOptions) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}
	switch n.Kind {
	case KindBox:
		if n.Width > 0 && n.Height > 0 {
			op.GeoM.Reset()
			op.GeoM.Scale(n.Width, n.Height)
			op.GeoM.Concat(geoM(n.worldTransform))
			setColorScale(op, n.Color, n.worldAlpha)
			dst.DrawImage(ensureWhitePixel(), op)
		}
	case KindText:
		if img := n.renderText(); img != nil {
			op.GeoM.Reset()
			op.GeoM.Concat(geoM(n.worldTransform))
			setColorScale(op, n.Color, n.worldAlpha)
			dst.DrawImage(img, op)
		}
	}
	for _, child := range n.children {
		drawNode(dst, child, op)
	}
}

func setColorScale(op *ebiten.DrawImageOptions, c Color, alpha float64) {
	a := c.A * alpha
	op.ColorScale.Reset()
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
}

// renderText returns the cached text image, redrawing it when the text
// changed. The image is created on first draw.
func (n *Node) renderText() *ebiten.Image {
	if n.Text == "" {
		return nil
	}
	if n.textImage != nil && !n.textDirty {
		return n.textImage
	}
	w, h := int(n.Width+1), int(n.Height+1)
	if n.textImage != nil {
		if b := n.textImage.Bounds(); b.Dx() != w || b.Dy() != h {
			n.textImage.Deallocate()
			n.textImage = nil
		}
	}
	if n.textImage == nil {
		n.textImage = ebiten.NewImage(w, h)
	}
	n.textImage.Clear()
	op := &text.DrawOptions{}
	op.LineSpacing = lineHeight
	text.Draw(n.textImage, n.Text, face(), op)
	n.textDirty = false
	return n.textImage
}
