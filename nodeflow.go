package nodeflow

import (
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default stroke color for connection previews.
var ColorWhite = Color{1, 1, 1, 1}

// RGB returns an opaque Color from a 0xRRGGBB hex value.
func RGB(hex uint32) Color {
	return Color{
		R: float64((hex>>16)&0xff) / 255,
		G: float64((hex>>8)&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Vec2 is a 2D vector used for positions, offsets, and deltas throughout the
// API. Whether a Vec2 is in graph space or screen space is stated by the
// function that produces or consumes it.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// finite reports whether both components are neither NaN nor Inf.
func (v Vec2) finite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// Size is a width/height pair.
type Size struct {
	Width, Height float64
}

// IsZero reports whether both dimensions are zero.
func (s Size) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	minX := math.Min(r.X, other.X)
	minY := math.Min(r.Y, other.Y)
	maxX := math.Max(r.X+r.Width, other.X+other.Width)
	maxY := math.Max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Side identifies which edge of a node a handle sits on.
type Side uint8

const (
	SideTop    Side = iota // horizontal center of the top edge
	SideBottom             // horizontal center of the bottom edge
	SideLeft               // vertical center of the left edge
	SideRight              // vertical center of the right edge
)

// String returns the lowercase side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// HandleType marks a handle as a connection source or target. It is advisory
// only and is not checked against edge direction.
type HandleType uint8

const (
	HandleSource HandleType = iota // connections start here
	HandleTarget                   // connections end here
)

// EventType identifies a kind of graph interaction event.
type EventType uint8

const (
	EventHandleClicked  EventType = iota // fires when a press lands on a handle marker
	EventNodeDragStart                   // fires when a press lands on a node body
	EventNodeDrag                        // fires on each move while dragging a node
	EventNodeDragEnd                     // fires when the node drag is released
	EventPanStart                        // fires when a press lands on empty canvas
	EventPanEnd                          // fires when the pan is released
	EventZoom                            // fires when the zoom factor changes
	EventConnectStart                    // fires when a connection gesture begins
	EventConnectEnd                      // fires when a connection gesture is released
	EventGestureCancel                   // fires when the host cancels a gesture
)

// String returns a short event name used in debug output.
func (e EventType) String() string {
	switch e {
	case EventHandleClicked:
		return "handle-clicked"
	case EventNodeDragStart:
		return "node-drag-start"
	case EventNodeDrag:
		return "node-drag"
	case EventNodeDragEnd:
		return "node-drag-end"
	case EventPanStart:
		return "pan-start"
	case EventPanEnd:
		return "pan-end"
	case EventZoom:
		return "zoom"
	case EventConnectStart:
		return "connect-start"
	case EventConnectEnd:
		return "connect-end"
	case EventGestureCancel:
		return "gesture-cancel"
	default:
		return "unknown"
	}
}
