package stage

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/scrollstage"
)

// DefaultWheelSpeed is how many scroll pixels one wheel notch moves.
const DefaultWheelSpeed = 120

// GameOptions configures a Game.
type GameOptions struct {
	// Resolver defaults to scrollstage.DefaultResolver.
	Resolver *scrollstage.Resolver
	Seed     uint64
	Driver   scrollstage.DriverOptions
	// WheelSpeed scales wheel deltas. Zero selects DefaultWheelSpeed.
	WheelSpeed float64
	// KeySpeed is the scroll distance per tick while an arrow key is held.
	// Zero disables keyboard scrolling.
	KeySpeed float64
	ShowFPS  bool
	// OnFrame, if set, is called with every applied frame.
	OnFrame func(scrollstage.Frame)
}

// Game implements ebiten.Game around a scrollstage.Coordinator. Wheel input
// feeds the scroll source, Layout feeds viewport changes, and each tick the
// resulting frame is applied to a hero stage rebuilt with every timeline.
type Game struct {
	opts   GameOptions
	source *scrollstage.ManualSource
	coord  *scrollstage.Coordinator
	stage  *Stage

	width, height int
}

// NewGame returns a game with nothing bound until the first Layout call.
func NewGame(opts GameOptions) *Game {
	if opts.WheelSpeed == 0 {
		opts.WheelSpeed = DefaultWheelSpeed
	}
	g := &Game{opts: opts, source: scrollstage.NewManualSource()}
	g.coord = scrollstage.NewCoordinator(scrollstage.CoordinatorOptions{
		Resolver:  opts.Resolver,
		Seed:      opts.Seed,
		Source:    g.source,
		Targets:   g,
		Driver:    opts.Driver,
		OnRebuild: g.rebuild,
	})
	return g
}

// Coordinator returns the coordinator driving the game.
func (g *Game) Coordinator() *scrollstage.Coordinator { return g.coord }

// Source returns the scroll source fed by wheel input.
func (g *Game) Source() *scrollstage.ManualSource { return g.source }

// Stage returns the current stage, or nil before the first rebuild.
func (g *Game) Stage() *Stage { return g.stage }

// Has reports whether the current stage has a node for id.
func (g *Game) Has(id scrollstage.TargetID) bool {
	return g.stage != nil && g.stage.Has(id)
}

func (g *Game) rebuild(cfg scrollstage.ResponsiveConfig, tl *scrollstage.Timeline) {
	g.stage = NewHeroStage(cfg)
	// Room to scroll through the pin plus one viewport past it.
	g.source.SetBounds(0, tl.ScrollLength+cfg.Viewport.Height)
}

// Scroll moves the scroll position by dy pixels.
func (g *Game) Scroll(dy float64) {
	g.source.InjectScrollBy(dy)
}

// Step runs one coordinator frame of dt seconds and applies it.
func (g *Game) Step(dt float32) {
	f, ok := g.coord.Frame(dt)
	if !ok || g.stage == nil {
		return
	}
	g.stage.Apply(f)
	if g.opts.OnFrame != nil {
		g.opts.OnFrame(f)
	}
}

// Update reads input and advances one tick.
func (g *Game) Update() error {
	if g.coord.State() == scrollstage.StateUnmounted {
		return ebiten.Termination
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.Scroll(-dy * g.opts.WheelSpeed)
	}
	if g.opts.KeySpeed > 0 {
		switch {
		case ebiten.IsKeyPressed(ebiten.KeyArrowDown), ebiten.IsKeyPressed(ebiten.KeyPageDown):
			g.Scroll(g.opts.KeySpeed)
		case ebiten.IsKeyPressed(ebiten.KeyArrowUp), ebiten.IsKeyPressed(ebiten.KeyPageUp):
			g.Scroll(-g.opts.KeySpeed)
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		g.coord.Unmount()
		return ebiten.Termination
	}
	g.Step(float32(1.0 / float64(ebiten.TPS())))
	return nil
}

// Draw renders the stage.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.stage != nil {
		g.stage.Draw(screen)
	}
	if g.opts.ShowFPS {
		p := 0.0
		if b := g.coord.Binding(); b != nil {
			p = b.Progress()
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  progress: %.3f  %s",
			ebiten.ActualFPS(), p, g.coord.State()), 4, 4)
	}
}

// Layout reports the outside size as the logical screen and forwards size
// changes to the coordinator.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.coord.Resize(scrollstage.Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight)})
	}
	return outsideWidth, outsideHeight
}
