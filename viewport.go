package nodeflow

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// MinZoom and MaxZoom bound the zoom factor. Out-of-range values are
	// clamped, never rejected.
	MinZoom = 0.1
	MaxZoom = 5.0

	// ZoomStep is the factor applied by ZoomIn and ZoomOut.
	ZoomStep = 1.2
	// WheelZoomStep is the factor applied per vertical wheel event. It is
	// smaller than ZoomStep because wheels fire many events per gesture.
	WheelZoomStep = 1.1
	// WheelLinePixels converts wheel line units into pan pixels.
	WheelLinePixels = 20.0
)

// fitAnim holds active tweens for an animated fit-view.
type fitAnim struct {
	tweenX, tweenY, tweenZoom *gween.Tween
	doneX, doneY, doneZoom    bool
}

// ViewportState is a read-only copy of the pan and zoom at one instant.
type ViewportState struct {
	// Pan is the graph-to-screen translation in screen pixels.
	Pan Vec2
	// Zoom is the uniform scale from graph units to screen pixels.
	Zoom float64
}

// ToGraph converts a screen-space point to graph space.
func (s ViewportState) ToGraph(p Vec2) Vec2 {
	return Vec2{(p.X - s.Pan.X) / s.Zoom, (p.Y - s.Pan.Y) / s.Zoom}
}

// ToScreen converts a graph-space point to screen space.
func (s ViewportState) ToScreen(p Vec2) Vec2 {
	return Vec2{p.X*s.Zoom + s.Pan.X, p.Y*s.Zoom + s.Pan.Y}
}

// Viewport holds the pan offset and zoom factor of a graph view.
type Viewport struct {
	// Pan is the graph-to-screen translation in screen pixels.
	Pan Vec2
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	// Always within [MinZoom, MaxZoom] when set through methods.
	Zoom float64
	// Locked suppresses ZoomIn, ZoomOut, FitView and AnimateFit. Wheel zoom
	// and panning are not affected.
	Locked bool

	anim *fitAnim
}

// NewViewport creates a Viewport with no pan and zoom 1.
func NewViewport() *Viewport {
	return &Viewport{Zoom: 1.0}
}

func clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return 1.0
	}
	return math.Max(MinZoom, math.Min(z, MaxZoom))
}

// State returns a snapshot of the current pan and zoom.
func (v *Viewport) State() ViewportState {
	return ViewportState{Pan: v.Pan, Zoom: clampZoom(v.Zoom)}
}

// ToGraph converts a screen-space point to graph space.
func (v *Viewport) ToGraph(p Vec2) Vec2 {
	return v.State().ToGraph(p)
}

// ToScreen converts a graph-space point to screen space.
func (v *Viewport) ToScreen(p Vec2) Vec2 {
	return v.State().ToScreen(p)
}

// SetZoom sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (v *Viewport) SetZoom(z float64) {
	v.Zoom = clampZoom(z)
}

// ZoomIn multiplies the zoom by ZoomStep. No-op while locked.
func (v *Viewport) ZoomIn() {
	if v.Locked {
		return
	}
	v.anim = nil
	v.SetZoom(v.Zoom * ZoomStep)
}

// ZoomOut divides the zoom by ZoomStep. No-op while locked.
func (v *Viewport) ZoomOut() {
	if v.Locked {
		return
	}
	v.anim = nil
	v.SetZoom(v.Zoom / ZoomStep)
}

// ToggleLock flips Locked.
func (v *Viewport) ToggleLock() {
	v.Locked = !v.Locked
}

// PanBy adds a screen-space delta to the pan offset.
func (v *Viewport) PanBy(d Vec2) {
	v.anim = nil
	v.Pan = v.Pan.Add(d)
}

// Scroll applies one wheel event. A vertical delta zooms by WheelZoomStep,
// in when dy > 0 and out when dy < 0. Input with dy == 0, or with a larger
// horizontal than vertical component, pans by the delta in pixels instead.
// Scroll ignores Locked. It reports whether the zoom changed.
func (v *Viewport) Scroll(delta Vec2) (zoomed bool) {
	v.anim = nil
	if delta.Y == 0 || math.Abs(delta.X) > math.Abs(delta.Y) {
		v.Pan = v.Pan.Add(delta.Scale(WheelLinePixels))
		return false
	}
	prev := v.Zoom
	if delta.Y > 0 {
		v.SetZoom(v.Zoom * WheelZoomStep)
	} else {
		v.SetZoom(v.Zoom / WheelZoomStep)
	}
	return v.Zoom != prev
}

// nodesBounds returns the union of nodes' graph-space rectangles.
func nodesBounds(nodes []*Node) (Rect, bool) {
	if len(nodes) == 0 {
		return Rect{}, false
	}
	b := nodes[0].Bounds()
	for _, n := range nodes[1:] {
		b = b.Union(n.Bounds())
	}
	return b, true
}

// fitPan returns the pan that centers nodes in a viewport of the given size
// at zoom 1.
func fitPan(nodes []*Node, size Size) (Vec2, bool) {
	b, ok := nodesBounds(nodes)
	if !ok {
		return Vec2{}, false
	}
	c := b.Center()
	return Vec2{size.Width/2 - c.X, size.Height/2 - c.Y}, true
}

// FitView centers the bounding box of nodes in a viewport of the given
// screen size and resets zoom to 1. No-op while locked or when nodes is
// empty.
func (v *Viewport) FitView(nodes []*Node, size Size) {
	if v.Locked {
		return
	}
	pan, ok := fitPan(nodes, size)
	if !ok {
		return
	}
	v.anim = nil
	v.Pan = pan
	v.Zoom = 1.0
}

// AnimateFit tweens to the FitView result over duration seconds. Any pan or
// zoom input drops the animation where it is.
func (v *Viewport) AnimateFit(nodes []*Node, size Size, duration float32, easeFn ease.TweenFunc) {
	if v.Locked {
		return
	}
	pan, ok := fitPan(nodes, size)
	if !ok {
		return
	}
	if duration <= 0 {
		v.FitView(nodes, size)
		return
	}
	v.anim = &fitAnim{
		tweenX:    gween.New(float32(v.Pan.X), float32(pan.X), duration, easeFn),
		tweenY:    gween.New(float32(v.Pan.Y), float32(pan.Y), duration, easeFn),
		tweenZoom: gween.New(float32(v.Zoom), 1.0, duration, easeFn),
	}
}

// Animating reports whether an AnimateFit tween is in progress.
func (v *Viewport) Animating() bool {
	return v.anim != nil
}

// update advances an active fit animation. It reports whether pan or zoom
// changed. Called from GraphView.Update.
func (v *Viewport) update(dt float32) bool {
	a := v.anim
	if a == nil {
		return false
	}
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		v.Pan.X = float64(val)
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		v.Pan.Y = float64(val)
		a.doneY = done
	}
	if !a.doneZoom {
		val, done := a.tweenZoom.Update(dt)
		v.Zoom = clampZoom(float64(val))
		a.doneZoom = done
	}
	if a.doneX && a.doneY && a.doneZoom {
		v.anim = nil
	}
	return true
}
