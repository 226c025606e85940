package nodeflow

import (
	"io"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

const (
	defaultViewWidth    = 800
	defaultViewHeight   = 600
	defaultHandleRadius = 5.0
	defaultCommandCap   = 256
)

// ViewConfig configures a GraphView. Zero fields take defaults.
type ViewConfig struct {
	// Width and Height are the viewport size in screen pixels. Layout keeps
	// them current when the view runs under Run. Default 800x600.
	Width, Height int
	// ClearColor fills the view before the background pattern. Default #202020.
	ClearColor Color
	// Background is the grid pattern drawn behind the graph.
	Background BackgroundStyle
	// HideControls removes the zoom/fit/lock button bar.
	HideControls bool
	// HandleRadius is the screen-space radius of handle markers, used both
	// for drawing and for press detection. Default 5.
	HandleRadius float64
}

func (c ViewConfig) withDefaults() ViewConfig {
	if c.Width <= 0 {
		c.Width = defaultViewWidth
	}
	if c.Height <= 0 {
		c.Height = defaultViewHeight
	}
	if c.ClearColor == (Color{}) {
		c.ClearColor = RGB(0x202020)
	}
	c.Background = c.Background.withDefaults()
	if c.HandleRadius <= 0 {
		c.HandleRadius = defaultHandleRadius
	}
	return c
}

// PointerHandler receives pointer transitions in screen space. GraphView
// implements it; an Editor wraps it to layer connection gestures on top.
type PointerHandler interface {
	Press(screen Vec2)
	Move(screen Vec2)
	Release(screen Vec2)
}

// GraphView owns a graph, its viewport, and all gesture state. Every method
// must be called from the Ebitengine update/draw goroutine.
type GraphView struct {
	graph     *Graph
	viewport  *Viewport
	config    ViewConfig
	renderers map[string]NodeRenderer

	// Gesture state
	gesture gestureState
	pointer pointerState
	target  PointerHandler
	// overlay reports the connection preview line, if any.
	overlay func() (from, to Vec2, ok bool)

	// Events
	handlers handlerRegistry
	sink     EventSink

	// Render state
	commands  []RenderCommand
	dirty     bool
	labelFont *TTFFont

	// Debug
	debug  bool
	logOut io.Writer

	// Testing
	injectQueue     []syntheticEvent
	testRunner      *TestRunner
	screenshotQueue []string
	// ScreenshotDir is where queued screenshots are written. Default "screenshots".
	ScreenshotDir string
}

// NewGraphView creates a view over an empty graph with the default node
// renderer registered.
func NewGraphView(cfg ViewConfig) *GraphView {
	v := &GraphView{
		graph:         NewGraph(),
		viewport:      NewViewport(),
		config:        cfg.withDefaults(),
		renderers:     map[string]NodeRenderer{DefaultNodeType: DefaultNodeRenderer},
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		dirty:         true,
		logOut:        os.Stderr,
		ScreenshotDir: "screenshots",
	}
	return v
}

// Graph returns the view's graph. Node positions may be changed through the
// returned nodes; call Notify afterwards.
func (v *GraphView) Graph() *Graph {
	return v.graph
}

// AddNode appends a node to the graph.
func (v *GraphView) AddNode(n *Node) {
	v.graph.AddNode(n)
	v.Notify()
}

// AddEdge appends an edge to the graph.
func (v *GraphView) AddEdge(e *Edge) {
	v.graph.AddEdge(e)
	v.Notify()
}

// ViewportState returns a read-only snapshot of the current pan and zoom.
func (v *GraphView) ViewportState() ViewportState {
	return v.viewport.State()
}

// Size returns the current viewport size in screen pixels.
func (v *GraphView) Size() Size {
	return Size{Width: float64(v.config.Width), Height: float64(v.config.Height)}
}

// SetSize updates the viewport size used by FitView and the control bar.
func (v *GraphView) SetSize(width, height int) {
	if width == v.config.Width && height == v.config.Height {
		return
	}
	if width > 0 {
		v.config.Width = width
	}
	if height > 0 {
		v.config.Height = height
	}
	v.Notify()
}

// Background returns the current grid pattern.
func (v *GraphView) Background() BackgroundStyle {
	return v.config.Background
}

// SetBackground replaces the grid pattern. Zero fields take defaults.
func (v *GraphView) SetBackground(b BackgroundStyle) {
	v.config.Background = b.withDefaults()
	v.Notify()
}

// Locked reports whether the explicit zoom/fit API is locked.
func (v *GraphView) Locked() bool {
	return v.viewport.Locked
}

// Notify marks the view as needing its render commands rebuilt. Mutating
// methods call it; hosts call it after changing nodes directly.
func (v *GraphView) Notify() {
	v.dirty = true
}

// RegisterNodeType installs the renderer used for nodes whose Type is tag.
// Registering DefaultNodeType replaces the default; a nil renderer for it
// is ignored so the default entry always exists.
func (v *GraphView) RegisterNodeType(tag string, r NodeRenderer) {
	if r == nil {
		if tag != DefaultNodeType {
			delete(v.renderers, tag)
			v.Notify()
		}
		return
	}
	v.renderers[tag] = r
	v.Notify()
}

// rendererFor returns the renderer for n's type, falling back to the default.
func (v *GraphView) rendererFor(n *Node) NodeRenderer {
	if r, ok := v.renderers[n.typeTag()]; ok {
		return r
	}
	return v.renderers[DefaultNodeType]
}

// --- Explicit viewport API ---

// ZoomIn zooms in by ZoomStep. No-op while locked.
func (v *GraphView) ZoomIn() {
	v.changeViewport(v.viewport.ZoomIn)
}

// ZoomOut zooms out by ZoomStep. No-op while locked.
func (v *GraphView) ZoomOut() {
	v.changeViewport(v.viewport.ZoomOut)
}

// FitView centers all nodes in the current viewport size at zoom 1. No-op
// while locked.
func (v *GraphView) FitView() {
	v.changeViewport(func() {
		v.viewport.FitView(v.graph.Nodes(), v.Size())
	})
}

// AnimateFitView tweens to the FitView result over duration seconds with
// the given easing. No-op while locked.
func (v *GraphView) AnimateFitView(duration float32, easeFn ease.TweenFunc) {
	v.viewport.AnimateFit(v.graph.Nodes(), v.Size(), duration, easeFn)
	v.Notify()
}

// ToggleLock flips the lock on ZoomIn, ZoomOut and FitView.
func (v *GraphView) ToggleLock() {
	v.viewport.ToggleLock()
	v.debugf("lock=%v", v.viewport.Locked)
	v.Notify()
}

// changeViewport runs fn and emits EventZoom if the zoom changed.
func (v *GraphView) changeViewport(fn func()) {
	before := v.viewport.State()
	fn()
	after := v.viewport.State()
	if after == before {
		return
	}
	v.Notify()
	if after.Zoom != before.Zoom {
		v.emit(GraphEvent{Type: EventZoom})
	}
}

// --- Frame loop ---

// Update processes input and advances viewport animation.
func (v *GraphView) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	if v.viewport.update(dt) {
		v.Notify()
	}
	if v.testRunner != nil {
		v.testRunner.step(v)
	}
	v.processInput()
}

// Draw renders the graph into screen.
func (v *GraphView) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if v.debug {
		t0 = time.Now()
		stats.rebuilt = v.dirty
	}

	cmds := v.frameCommands()

	if v.debug {
		stats.emitTime = time.Since(t0)
		t0 = time.Now()
	}

	screen.Fill(v.config.ClearColor.toRGBA())
	submitCommands(screen, cmds, v.font())

	if v.debug {
		stats.submitTime = time.Since(t0)
		stats.commandCount = len(cmds)
		stats.edgeCount, stats.nodeCount = countCommands(cmds)
		v.debugLog(stats)
	}

	v.flushScreenshots(cmds)
}

// frameCommands returns this frame's render commands, rebuilding them only
// when the view is dirty.
func (v *GraphView) frameCommands() []RenderCommand {
	if v.dirty {
		v.commands = v.emitCommands(v.commands[:0])
		v.dirty = false
	}
	return v.commands
}
