package nodeflow

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const snapshotFontSize = 12.0

var (
	labelFaceOnce sync.Once
	labelFace     font.Face
	labelFaceErr  error
)

// LoadFontFace parses TrueType data into a face of the given point size at
// 72 DPI.
func LoadFontFace(ttf []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("load font face: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// defaultLabelFace returns the Go Mono face used for snapshot labels.
func defaultLabelFace() (font.Face, error) {
	labelFaceOnce.Do(func() {
		labelFace, labelFaceErr = LoadFontFace(gomono.TTF, snapshotFontSize)
	})
	return labelFace, labelFaceErr
}

// Snapshot renders cmds into a width x height image without a GPU. The
// output matches what submitCommands draws, with labels in Go Mono.
func Snapshot(cmds []RenderCommand, width, height int, clear Color) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("snapshot: invalid size %dx%d", width, height)
	}
	face, err := defaultLabelFace()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(clear.toRGBA())
	dc.Clear()
	dc.SetFontFace(face)

	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Type {
		case CommandBackground:
			snapshotBackground(dc, cmd)
		case CommandEdge, CommandConnection:
			if len(cmd.Points) < 2 {
				continue
			}
			dc.SetColor(cmd.Color.toRGBA())
			dc.SetLineWidth(cmd.Width)
			dc.MoveTo(cmd.Points[0].X, cmd.Points[0].Y)
			for _, p := range cmd.Points[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.Stroke()
		case CommandNode:
			snapshotNode(dc, cmd)
		case CommandHandle:
			dc.DrawCircle(cmd.Center.X, cmd.Center.Y, cmd.Radius)
			dc.SetColor(cmd.Color.toRGBA())
			dc.FillPreserve()
			dc.SetColor(handleBorder.toRGBA())
			dc.SetLineWidth(1)
			dc.Stroke()
		case CommandControl:
			b := cmd.Bounds
			dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
			dc.SetColor(cmd.Color.toRGBA())
			dc.FillPreserve()
			dc.SetColor(controlBorder.toRGBA())
			dc.SetLineWidth(1)
			dc.Stroke()
			dc.SetColor(RGB(0x000000).toRGBA())
			c := b.Center()
			dc.DrawStringAnchored(cmd.Label, c.X, c.Y, 0.5, 0.35)
		}
	}
	return dc.Image(), nil
}

func snapshotBackground(dc *gg.Context, cmd *RenderCommand) {
	dc.SetColor(cmd.Color.toRGBA())
	if cmd.Background == BackgroundDots {
		for _, p := range cmd.Points {
			dc.DrawCircle(p.X, p.Y, cmd.Radius)
		}
		dc.Fill()
		return
	}
	dc.SetLineWidth(cmd.Width)
	for j := 1; j < len(cmd.Points); j += 2 {
		a, b := cmd.Points[j-1], cmd.Points[j]
		dc.DrawLine(a.X, a.Y, b.X, b.Y)
	}
	dc.Stroke()
}

func snapshotNode(dc *gg.Context, cmd *RenderCommand) {
	b, s := cmd.Bounds, cmd.Style
	dc.SetColor(s.Fill.toRGBA())
	dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
	dc.Fill()

	header := math.Min(nodeHeaderHeight*cmd.Scale, b.Height)
	if s.Header != (Color{}) {
		dc.SetColor(s.Header.toRGBA())
		dc.DrawRectangle(b.X, b.Y, b.Width, header)
		dc.Fill()
	}
	if s.BorderWidth > 0 {
		dc.SetColor(s.Border.toRGBA())
		dc.SetLineWidth(s.BorderWidth)
		dc.DrawRectangle(b.X, b.Y, b.Width, b.Height)
		dc.Stroke()
	}

	dc.SetColor(ColorWhite.toRGBA())
	if header >= snapshotFontSize && s.Title != "" {
		dc.DrawStringAnchored(s.Title, b.X+4, b.Y+header/2, 0, 0.35)
	}
	if b.Height-header >= snapshotFontSize && s.Body != "" {
		dc.DrawStringAnchored(s.Body, b.X+4, b.Y+header+4, 0, 1)
	}
}

// Snapshot renders the current frame headlessly.
func (v *GraphView) Snapshot() (image.Image, error) {
	return Snapshot(v.frameCommands(), v.config.Width, v.config.Height, v.config.ClearColor)
}

// SavePNG writes the current frame to a PNG file.
func (v *GraphView) SavePNG(path string) error {
	img, err := v.Snapshot()
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
