package stage

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a resizable window and runs g until it terminates. The
// coordinator is unmounted when the loop exits.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1440
	}
	if cfg.Height <= 0 {
		cfg.Height = 900
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer g.coord.Unmount()
	return ebiten.RunGame(g)
}
