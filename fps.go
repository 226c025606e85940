package nodeflow

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsCounter displays the current FPS and TPS. The text is refreshed every
// ~0.5 seconds so it stays readable.
type fpsCounter struct {
	elapsed float64
	text    string
}

func (f *fpsCounter) update(dt float64) {
	f.elapsed += dt
	if f.text != "" && f.elapsed < 0.5 {
		return
	}
	f.elapsed = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (f *fpsCounter) draw(screen *ebiten.Image) {
	if f.text == "" {
		return
	}
	ebitenutil.DebugPrintAt(screen, f.text, 4, 4)
}
