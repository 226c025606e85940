package nodeflow

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Runnable is anything Run can drive. GraphView and Editor both qualify.
type Runnable interface {
	Update()
	Draw(screen *ebiten.Image)
	SetSize(width, height int)
}

// RunConfig configures the window opened by Run. Zero fields take defaults.
type RunConfig struct {
	// Title is the window title. Default "nodeflow".
	Title string
	// Width and Height are the initial window size. Default 800x600.
	Width, Height int
	// ShowFPS draws FPS and TPS in the top-left corner.
	ShowFPS bool
	// OnUpdate, if set, runs once per tick before root.Update. Hosts bind
	// keys here, for example Escape to cancel a gesture.
	OnUpdate func()
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "nodeflow"
	}
	if c.Width <= 0 {
		c.Width = defaultViewWidth
	}
	if c.Height <= 0 {
		c.Height = defaultViewHeight
	}
	return c
}

// Run opens a resizable window and runs root as an ebiten.Game until the
// window closes. For full control, implement ebiten.Game yourself and call
// Update, Draw and SetSize directly.
func Run(root Runnable, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	root.SetSize(cfg.Width, cfg.Height)

	g := &game{root: root, cfg: cfg}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

type game struct {
	root Runnable
	cfg  RunConfig
	fps  fpsCounter
}

func (g *game) Update() error {
	if g.cfg.OnUpdate != nil {
		g.cfg.OnUpdate()
	}
	g.root.Update()
	if g.cfg.ShowFPS {
		g.fps.update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.root.Draw(screen)
	if g.cfg.ShowFPS {
		g.fps.draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.root.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
