package nodeflow

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// labelFontSize matches the size used by Snapshot.
const labelFontSize = snapshotFontSize

// TTFFont wraps Ebitengine's text/v2 for TrueType label rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("load ttf font: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}

	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

var (
	labelFontOnce sync.Once
	labelFont     *TTFFont
)

// defaultLabelFont returns the Go Mono font used for on-screen labels, or
// nil if it failed to load.
func defaultLabelFont() *TTFFont {
	labelFontOnce.Do(func() {
		labelFont, _ = LoadTTFFont(gomono.TTF, labelFontSize)
	})
	return labelFont
}

// SetLabelFont replaces the font used for node and control labels. A nil
// font restores Go Mono.
func (v *GraphView) SetLabelFont(f *TTFFont) {
	v.labelFont = f
}

func (v *GraphView) font() *TTFFont {
	if v.labelFont != nil {
		return v.labelFont
	}
	return defaultLabelFont()
}

// drawLabel draws s at (x, y) with the given alignment. y is the top of the
// line for text.AlignStart and its middle for text.AlignCenter.
func drawLabel(screen *ebiten.Image, f *TTFFont, s string, x, y float64, clr Color, alignX, alignY text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr.toRGBA())
	op.LineSpacing = f.lh
	op.PrimaryAlign = alignX
	op.SecondaryAlign = alignY
	text.Draw(screen, s, f.face, op)
}
