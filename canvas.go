package nodeflow

import (
	"math"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Gesture state ---

type gestureKind uint8

const (
	gestureIdle gestureKind = iota
	gestureDragNode
	gesturePan
)

func (k gestureKind) String() string {
	switch k {
	case gestureIdle:
		return "idle"
	case gestureDragNode:
		return "drag-node"
	case gesturePan:
		return "pan"
	default:
		return "unknown"
	}
}

// gestureState is the canvas half of the pointer state machine. The zero
// value is Idle.
type gestureState struct {
	kind gestureKind
	// nodeID and grabOffset are set while dragging a node. grabOffset is the
	// graph-space distance from the node origin to the press point.
	nodeID     uuid.UUID
	grabOffset Vec2
	// last is the previous screen position while panning.
	last Vec2
}

// pointerState tracks the physical pointer so level-triggered input can be
// turned into press/move/release edges.
type pointerState struct {
	down bool
	last Vec2
}

// --- Hit testing ---

// hitTest returns the topmost node whose rectangle contains the graph-space
// point, or nil. Later nodes are drawn on top, so the scan runs backwards.
func (v *GraphView) hitTest(p Vec2) *Node {
	nodes := v.graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].Bounds().Contains(p.X, p.Y) {
			return nodes[i]
		}
	}
	return nil
}

// hitHandle returns the topmost handle marker within HandleRadius screen
// pixels of screen. Markers keep a constant screen size at every zoom.
func (v *GraphView) hitHandle(screen Vec2) (*Node, Handle, bool) {
	vs := v.viewport.State()
	r2 := v.config.HandleRadius * v.config.HandleRadius
	nodes := v.graph.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		for j := len(n.Handles) - 1; j >= 0; j-- {
			h := n.Handles[j]
			p := vs.ToScreen(GraphAnchor(n, h.ID, Vec2{}))
			dx, dy := screen.X-p.X, screen.Y-p.Y
			if dx*dx+dy*dy <= r2 {
				return n, h, true
			}
		}
	}
	return nil, Handle{}, false
}

// --- Pointer transitions ---

// Press starts a gesture at a screen position. Any gesture still in progress
// is discarded first. In order, the press is offered to the control bar, to
// the handle markers and then to the node bodies; a press on empty canvas
// starts a pan.
func (v *GraphView) Press(screen Vec2) {
	if v.gesture.kind != gestureIdle {
		v.debugf("press while %s, resetting", v.gesture.kind)
	}
	v.gesture = gestureState{}

	if !v.config.HideControls {
		if intent, ok := v.controlAt(screen); ok {
			v.applyIntent(intent)
			return
		}
	}

	if n, h, ok := v.hitHandle(screen); ok {
		v.ClickHandle(n.ID, h.ID)
		return
	}

	p := v.viewport.ToGraph(screen)
	if n := v.hitTest(p); n != nil {
		v.gesture = gestureState{
			kind:       gestureDragNode,
			nodeID:     n.ID,
			grabOffset: p.Sub(n.Position),
		}
		v.emit(GraphEvent{Type: EventNodeDragStart, NodeID: n.ID, Graph: p, Screen: screen})
		return
	}

	v.gesture = gestureState{kind: gesturePan, last: screen}
	v.emit(GraphEvent{Type: EventPanStart, Graph: p, Screen: screen})
}

// Move updates the active gesture. Node positions are not clamped. Move
// while Idle does nothing.
func (v *GraphView) Move(screen Vec2) {
	switch v.gesture.kind {
	case gestureDragNode:
		n := v.graph.Node(v.gesture.nodeID)
		if n == nil {
			return
		}
		p := v.viewport.ToGraph(screen)
		next := p.Sub(v.gesture.grabOffset)
		if !next.finite() {
			return
		}
		n.Position = next
		v.Notify()
		v.emit(GraphEvent{Type: EventNodeDrag, NodeID: n.ID, Graph: p, Screen: screen})
	case gesturePan:
		d := screen.Sub(v.gesture.last)
		v.gesture.last = screen
		if d == (Vec2{}) || !d.finite() {
			return
		}
		v.viewport.PanBy(d)
		v.Notify()
	}
}

// Release ends the active gesture and returns to Idle. Releasing with no
// gesture in progress is a no-op.
func (v *GraphView) Release(screen Vec2) {
	g := v.gesture
	v.gesture = gestureState{}
	p := v.viewport.ToGraph(screen)
	switch g.kind {
	case gestureDragNode:
		v.emit(GraphEvent{Type: EventNodeDragEnd, NodeID: g.nodeID, Graph: p, Screen: screen})
	case gesturePan:
		v.emit(GraphEvent{Type: EventPanEnd, Graph: p, Screen: screen})
	}
}

// Scroll applies one wheel event in wheel line units. See Viewport.Scroll.
// Wheel input works while the viewport is locked.
func (v *GraphView) Scroll(delta Vec2) {
	if delta == (Vec2{}) || !delta.finite() {
		return
	}
	zoomed := v.viewport.Scroll(delta)
	v.Notify()
	if zoomed {
		v.emit(GraphEvent{Type: EventZoom})
	}
}

// ClickHandle reports a click on a node's handle to handle-click
// subscribers, as a press on its marker would. The anchor is resolved in
// graph space with the node-local origin as fallback for unknown handle
// ids. The canvas gesture is left as it is. It reports false if the node
// is not in the graph.
func (v *GraphView) ClickHandle(nodeID uuid.UUID, handleID string) bool {
	n := v.graph.Node(nodeID)
	if n == nil {
		return false
	}
	anchor := GraphAnchor(n, handleID, Vec2{})
	v.fireHandleClicked(HandleClickedEvent{
		NodeID:   nodeID,
		HandleID: handleID,
		Anchor:   anchor,
	}, v.viewport.ToScreen(anchor))
	return true
}

// CancelGesture abandons a node drag or pan in progress. The node keeps the
// position it was last moved to. No-op while Idle.
func (v *GraphView) CancelGesture() {
	if v.gesture.kind == gestureIdle {
		return
	}
	g := v.gesture
	v.gesture = gestureState{}
	v.emit(GraphEvent{Type: EventGestureCancel, NodeID: g.nodeID})
}

// Dragging returns the id of the node being dragged.
func (v *GraphView) Dragging() (uuid.UUID, bool) {
	if v.gesture.kind != gestureDragNode {
		return uuid.Nil, false
	}
	return v.gesture.nodeID, true
}

// Panning reports whether a canvas pan is in progress.
func (v *GraphView) Panning() bool {
	return v.gesture.kind == gesturePan
}

// --- Input processing ---

// SetPointerHandler routes pointer transitions to h instead of the view
// itself. NewEditor installs the editor here. A nil h restores the view.
func (v *GraphView) SetPointerHandler(h PointerHandler) {
	v.target = h
}

func (v *GraphView) pointerHandler() PointerHandler {
	if v.target != nil {
		return v.target
	}
	return v
}

// processInput is called from GraphView.Update. Injected events take
// priority; real mouse input is read only on frames with no injection.
func (v *GraphView) processInput() {
	if v.processInjectedInput() {
		return
	}
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	v.processPointer(Vec2{float64(mx), float64(my)}, pressed)

	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		v.Scroll(Vec2{dx, dy})
	}
}

// processPointer turns the current pointer position and button level into
// press, move and release transitions on the active pointer handler.
func (v *GraphView) processPointer(screen Vec2, pressed bool) {
	if math.IsNaN(screen.X) || math.IsNaN(screen.Y) {
		return
	}
	ps := &v.pointer
	h := v.pointerHandler()

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.last = screen
		h.Press(screen)
	case !pressed && ps.down:
		ps.down = false
		if screen != ps.last {
			h.Move(screen)
		}
		ps.last = screen
		h.Release(screen)
	case screen != ps.last:
		ps.last = screen
		h.Move(screen)
	}
}
