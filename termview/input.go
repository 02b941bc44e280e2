package termview

import (
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/scrollstage"
)

// CellSize is the number of viewport pixels one terminal cell stands for
// when a resize event is turned into a viewport.
var CellSize = scrollstage.Vec2{X: 12, Y: 24}

// HandleEvent routes a tcell event: wheel and arrow keys scroll src, resizes
// reach c as a new viewport. It returns false when the user asked to quit.
func (r *Renderer) HandleEvent(ev tcell.Event, src *scrollstage.ManualSource, c *scrollstage.Coordinator) bool {
	step := r.WheelStep
	if step == 0 {
		step = DefaultWheelStep
	}
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		switch {
		case ev.Buttons()&tcell.WheelDown != 0:
			src.InjectScrollBy(step)
		case ev.Buttons()&tcell.WheelUp != 0:
			src.InjectScrollBy(-step)
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			src.InjectScrollBy(step)
		case tcell.KeyUp:
			src.InjectScrollBy(-step)
		case tcell.KeyPgDn:
			src.InjectScrollBy(step * 5)
		case tcell.KeyPgUp:
			src.InjectScrollBy(-step * 5)
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		c.Resize(scrollstage.Viewport{Width: float64(cols) * CellSize.X, Height: float64(rows) * CellSize.Y})
	}
	return true
}
