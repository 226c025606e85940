package nodeflow

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandBackground CommandType = iota // grid marks behind everything
	CommandEdge                          // sampled edge curve
	CommandNode                          // node body, header and labels
	CommandHandle                        // handle marker
	CommandConnection                    // in-progress connection preview
	CommandControl                       // control bar button
)

// RenderCommand is a single draw instruction in screen space. Commands are
// emitted in painter order; later commands draw on top.
type RenderCommand struct {
	Type CommandType

	// Points is the polyline for edges and connections. For background
	// commands it holds dot centers (BackgroundDots) or segment endpoint
	// pairs (BackgroundLines, BackgroundCross).
	Points []Vec2
	// Bounds is the rectangle of a node or control button.
	Bounds Rect
	// Center and Radius place a handle marker or a background dot.
	Center Vec2
	Radius float64

	Color Color
	Width float64

	// Node and Style are set for CommandNode. Scale is the zoom the node
	// was laid out at.
	Node  *Node
	Style NodeStyle
	Scale float64

	// Label is the text of a control button.
	Label string
	// Background is set for CommandBackground.
	Background BackgroundVariant
}

// --- Node styles ---

// NodeStyle describes how a node body is drawn.
type NodeStyle struct {
	Fill   Color
	Border Color
	// Header is the title strip color. A zero Header draws no strip.
	Header      Color
	Title       string
	Body        string
	BorderWidth float64
}

// NodeRenderer computes the style for one node. It is called once per node
// each time the view rebuilds its commands.
type NodeRenderer func(n *Node) NodeStyle

const nodeHeaderHeight = 24.0

// DefaultNodeRenderer draws a dark box with a header strip. A string or
// fmt.Stringer Data becomes the body text.
func DefaultNodeRenderer(n *Node) NodeStyle {
	s := NodeStyle{
		Fill:        RGB(0x303030),
		Border:      RGB(0x000000),
		Header:      RGB(0x404040),
		Title:       "Node Title",
		Body:        "Content",
		BorderWidth: 1,
	}
	switch d := n.Data.(type) {
	case string:
		s.Body = d
	case fmt.Stringer:
		s.Body = d.String()
	}
	return s
}

// --- Background ---

// BackgroundVariant selects the grid pattern.
type BackgroundVariant uint8

const (
	BackgroundDots  BackgroundVariant = iota // dot at every grid point
	BackgroundLines                          // full-height and full-width grid lines
	BackgroundCross                          // small plus sign at every grid point
	BackgroundNone                           // no pattern
)

// String returns the variant name.
func (b BackgroundVariant) String() string {
	switch b {
	case BackgroundDots:
		return "dots"
	case BackgroundLines:
		return "lines"
	case BackgroundCross:
		return "cross"
	case BackgroundNone:
		return "none"
	default:
		return "unknown"
	}
}

// BackgroundStyle configures the grid drawn behind the graph. The grid is
// fixed to the screen and does not follow pan or zoom.
type BackgroundStyle struct {
	Variant BackgroundVariant
	// Gap is the grid spacing in screen pixels. Default 20.
	Gap float64
	// Size is the dot radius or stroke width. Crosses have arms of 3*Size.
	// Default 1.
	Size float64
	// Color defaults to #666666.
	Color Color
}

// DefaultBackground returns the dotted grid used when no style is set.
func DefaultBackground() BackgroundStyle {
	return BackgroundStyle{}.withDefaults()
}

func (b BackgroundStyle) withDefaults() BackgroundStyle {
	if b.Gap <= 0 {
		b.Gap = 20
	}
	if b.Size <= 0 {
		b.Size = 1
	}
	if b.Color == (Color{}) {
		b.Color = RGB(0x666666)
	}
	return b
}

// backgroundMarks returns the grid points of b over a w x h screen. Dots
// yield one point per mark; lines and crosses yield segment pairs.
func backgroundMarks(b BackgroundStyle, w, h float64) []Vec2 {
	if b.Gap <= 0 || b.Variant == BackgroundNone || w <= 0 || h <= 0 {
		return nil
	}
	var pts []Vec2
	switch b.Variant {
	case BackgroundLines:
		for x := 0.0; x <= w; x += b.Gap {
			pts = append(pts, Vec2{x, 0}, Vec2{x, h})
		}
		for y := 0.0; y <= h; y += b.Gap {
			pts = append(pts, Vec2{0, y}, Vec2{w, y})
		}
	case BackgroundDots:
		for y := 0.0; y <= h; y += b.Gap {
			for x := 0.0; x <= w; x += b.Gap {
				pts = append(pts, Vec2{x, y})
			}
		}
	case BackgroundCross:
		arm := b.Size * 3
		for y := 0.0; y <= h; y += b.Gap {
			for x := 0.0; x <= w; x += b.Gap {
				pts = append(pts,
					Vec2{x - arm, y}, Vec2{x + arm, y},
					Vec2{x, y - arm}, Vec2{x, y + arm})
			}
		}
	}
	return pts
}

// --- Edges ---

const (
	edgeSegments = 20
	edgeWidth    = 2.0
)

var (
	edgeColor       = RGB(0xaaaaaa)
	connectionColor = ColorWhite
	handleColor     = RGB(0xffffff)
	handleBorder    = RGB(0x1a1a1a)
	controlFill     = RGB(0xffffff)
	controlBorder   = RGB(0xeeeeee)
)

// edgeCurve samples the cubic Bézier from a to b whose control points sit
// at the vertical midpoint directly above and below the ends. It returns
// edgeSegments+1 points, or nil if either end is not finite.
func edgeCurve(a, b Vec2) []Vec2 {
	if !a.finite() || !b.finite() {
		return nil
	}
	midY := (b.Y - a.Y) / 2
	c1 := Vec2{a.X, a.Y + midY}
	c2 := Vec2{b.X, b.Y - midY}

	pts := make([]Vec2, 0, edgeSegments+1)
	pts = append(pts, a)
	for i := 1; i <= edgeSegments; i++ {
		t := float64(i) / edgeSegments
		u := 1 - t
		w0 := u * u * u
		w1 := 3 * u * u * t
		w2 := 3 * u * t * t
		w3 := t * t * t
		pts = append(pts, Vec2{
			X: w0*a.X + w1*c1.X + w2*c2.X + w3*b.X,
			Y: w0*a.Y + w1*c1.Y + w2*c2.Y + w3*b.Y,
		})
	}
	return pts
}

// --- Emission ---

// emitCommands appends this frame's commands to buf in painter order:
// background, edges, nodes, handles, connection preview, controls.
func (v *GraphView) emitCommands(buf []RenderCommand) []RenderCommand {
	vs := v.viewport.State()
	w, h := float64(v.config.Width), float64(v.config.Height)

	bg := v.config.Background
	if pts := backgroundMarks(bg, w, h); len(pts) > 0 {
		buf = append(buf, RenderCommand{
			Type:       CommandBackground,
			Points:     pts,
			Radius:     bg.Size,
			Width:      bg.Size,
			Color:      bg.Color,
			Background: bg.Variant,
		})
	}

	for _, e := range v.graph.Edges() {
		src, tgt, ok := EdgeAnchors(v.graph, e)
		if !ok {
			continue
		}
		pts := edgeCurve(vs.ToScreen(src), vs.ToScreen(tgt))
		if len(pts) < 2 {
			continue
		}
		buf = append(buf, RenderCommand{Type: CommandEdge, Points: pts, Color: edgeColor, Width: edgeWidth})
	}

	for _, n := range v.graph.Nodes() {
		b := n.Bounds()
		tl := vs.ToScreen(Vec2{b.X, b.Y})
		if !tl.finite() {
			continue
		}
		buf = append(buf, RenderCommand{
			Type:   CommandNode,
			Bounds: Rect{X: tl.X, Y: tl.Y, Width: b.Width * vs.Zoom, Height: b.Height * vs.Zoom},
			Node:   n,
			Style:  v.rendererFor(n)(n),
			Scale:  vs.Zoom,
		})
	}

	for _, n := range v.graph.Nodes() {
		for _, hd := range n.Handles {
			c := vs.ToScreen(GraphAnchor(n, hd.ID, Vec2{}))
			if !c.finite() {
				continue
			}
			buf = append(buf, RenderCommand{
				Type:   CommandHandle,
				Center: c,
				Radius: v.config.HandleRadius,
				Color:  handleColor,
			})
		}
	}

	if v.overlay != nil {
		if from, to, ok := v.overlay(); ok && from.finite() && to.finite() {
			buf = append(buf, RenderCommand{
				Type:   CommandConnection,
				Points: []Vec2{from, to},
				Color:  connectionColor,
				Width:  edgeWidth,
			})
		}
	}

	if !v.config.HideControls {
		for i, r := range v.controlBar() {
			buf = append(buf, RenderCommand{
				Type:   CommandControl,
				Bounds: r,
				Label:  v.controlLabel(ControlIntent(i)),
				Color:  controlFill,
			})
		}
	}
	return buf
}

// --- Submission ---

const debugGlyphW, debugGlyphH = 6.0, 16.0

// submitCommands draws cmds onto screen with ebiten vector primitives.
// Labels are drawn with f, or with the ebitenutil debug font if f is nil.
func submitCommands(screen *ebiten.Image, cmds []RenderCommand, f *TTFFont) {
	for i := range cmds {
		cmd := &cmds[i]
		switch cmd.Type {
		case CommandBackground:
			submitBackground(screen, cmd)
		case CommandEdge, CommandConnection:
			clr := cmd.Color.toRGBA()
			for j := 1; j < len(cmd.Points); j++ {
				a, b := cmd.Points[j-1], cmd.Points[j]
				vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
					float32(cmd.Width), clr, true)
			}
		case CommandNode:
			submitNode(screen, cmd, f)
		case CommandHandle:
			x, y, r := float32(cmd.Center.X), float32(cmd.Center.Y), float32(cmd.Radius)
			vector.DrawFilledCircle(screen, x, y, r, cmd.Color.toRGBA(), true)
			vector.StrokeCircle(screen, x, y, r, 1, handleBorder.toRGBA(), true)
		case CommandControl:
			b := cmd.Bounds
			vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height),
				cmd.Color.toRGBA(), false)
			vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height),
				1, controlBorder.toRGBA(), false)
			c := b.Center()
			if f == nil {
				tx := c.X - float64(len(cmd.Label))*debugGlyphW/2
				ebitenutil.DebugPrintAt(screen, cmd.Label, int(tx), int(c.Y-debugGlyphH/2))
				continue
			}
			drawLabel(screen, f, cmd.Label, c.X, c.Y, RGB(0x000000), text.AlignCenter, text.AlignCenter)
		}
	}
}

func submitBackground(screen *ebiten.Image, cmd *RenderCommand) {
	clr := cmd.Color.toRGBA()
	if cmd.Background == BackgroundDots {
		for _, p := range cmd.Points {
			vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), float32(cmd.Radius), clr, false)
		}
		return
	}
	for j := 1; j < len(cmd.Points); j += 2 {
		a, b := cmd.Points[j-1], cmd.Points[j]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
			float32(cmd.Width), clr, false)
	}
}

func submitNode(screen *ebiten.Image, cmd *RenderCommand, f *TTFFont) {
	b, s := cmd.Bounds, cmd.Style
	x, y, w, h := float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height)
	vector.DrawFilledRect(screen, x, y, w, h, s.Fill.toRGBA(), false)

	header := math.Min(nodeHeaderHeight*cmd.Scale, b.Height)
	if s.Header != (Color{}) {
		vector.DrawFilledRect(screen, x, y, w, float32(header), s.Header.toRGBA(), false)
	}
	if s.BorderWidth > 0 {
		vector.StrokeRect(screen, x, y, w, h, float32(s.BorderWidth), s.Border.toRGBA(), false)
	}

	// Labels keep a fixed size, so they are skipped once the node is too
	// small to hold them.
	if f == nil {
		if header >= debugGlyphH && s.Title != "" {
			ebitenutil.DebugPrintAt(screen, s.Title, int(b.X+4), int(b.Y+(header-debugGlyphH)/2))
		}
		if b.Height-header >= debugGlyphH && s.Body != "" {
			ebitenutil.DebugPrintAt(screen, s.Body, int(b.X+4), int(b.Y+header+4))
		}
		return
	}
	lh := f.LineHeight()
	if header >= lh && s.Title != "" {
		drawLabel(screen, f, s.Title, b.X+4, b.Y+header/2, ColorWhite, text.AlignStart, text.AlignCenter)
	}
	if b.Height-header >= lh && s.Body != "" {
		drawLabel(screen, f, s.Body, b.X+4, b.Y+header+4, ColorWhite, text.AlignStart, text.AlignStart)
	}
}
