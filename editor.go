package nodeflow

import (
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// ConnectEndFunc is called when a connection gesture is released. drop is
// the release position in graph space. The callback may add nodes and edges
// to g; the view is redrawn afterwards.
type ConnectEndFunc func(sourceNode uuid.UUID, sourceHandle string, drop Vec2, g *Graph)

// connectingState is the session between a handle click and the release.
// current is always in screen space.
type connectingState struct {
	sourceNode   uuid.UUID
	sourceHandle string
	current      Vec2
}

// Editor layers connection gestures on top of a GraphView. A press on a
// handle marker starts a session; moving drags the preview line and the
// release hands the drop point to the ConnectEndFunc. At most one session
// is in flight; a second handle click replaces it.
type Editor struct {
	view         *GraphView
	onConnectEnd ConnectEndFunc
	connecting   *connectingState
	sub          CallbackHandle
}

// NewEditor attaches an editor to view. The editor becomes the view's
// pointer handler and draws the connection preview.
func NewEditor(view *GraphView) *Editor {
	e := &Editor{view: view}
	e.sub = view.OnHandleClicked(e.handleClicked)
	view.SetPointerHandler(e)
	view.overlay = e.ConnectionLine
	return e
}

// OnConnectEnd sets the completion callback and returns the editor.
// Passing nil removes it; releases then only clear the session.
func (e *Editor) OnConnectEnd(fn ConnectEndFunc) *Editor {
	e.onConnectEnd = fn
	return e
}

// View returns the underlying view.
func (e *Editor) View() *GraphView {
	return e.view
}

// Detach unsubscribes the editor and restores the view's own pointer
// handling. Any session in progress is dropped without a callback.
func (e *Editor) Detach() {
	e.sub.Remove()
	e.connecting = nil
	if e.view.target == PointerHandler(e) {
		e.view.SetPointerHandler(nil)
	}
	e.view.overlay = nil
	e.view.Notify()
}

// Connecting reports whether a connection gesture is in progress.
func (e *Editor) Connecting() bool {
	return e.connecting != nil
}

// handleClicked starts (or replaces) a session anchored at the clicked
// handle. The anchor's screen position is taken from the viewport at this
// instant.
func (e *Editor) handleClicked(evt HandleClickedEvent) {
	if e.connecting != nil {
		e.view.debugf("connect: replacing session from %s", shortID(e.connecting.sourceNode))
	}
	vs := e.view.ViewportState()
	e.connecting = &connectingState{
		sourceNode:   evt.NodeID,
		sourceHandle: evt.HandleID,
		current:      vs.ToScreen(evt.Anchor),
	}
	e.view.Notify()
	e.view.emit(GraphEvent{
		Type:     EventConnectStart,
		NodeID:   evt.NodeID,
		HandleID: evt.HandleID,
		Graph:    evt.Anchor,
		Screen:   e.connecting.current,
	})
}

// Press drops any session left over from an unfinished gesture, then
// forwards to the view, which may start a new one.
func (e *Editor) Press(screen Vec2) {
	if e.connecting != nil {
		e.view.debugf("connect: press while connecting, resetting")
		e.connecting = nil
		e.view.Notify()
	}
	e.view.Press(screen)
}

// Move updates the preview end point while connecting, otherwise forwards
// to the view.
func (e *Editor) Move(screen Vec2) {
	if e.connecting == nil {
		e.view.Move(screen)
		return
	}
	e.connecting.current = screen
	e.view.Notify()
}

// Release completes a session: the end point is converted to graph space
// with the current viewport and passed to the callback. The session is
// cleared before the callback runs, whether or not one is registered.
func (e *Editor) Release(screen Vec2) {
	c := e.connecting
	if c == nil {
		e.view.Release(screen)
		return
	}
	e.connecting = nil
	c.current = screen
	drop := e.view.ViewportState().ToGraph(c.current)

	if e.onConnectEnd != nil {
		e.onConnectEnd(c.sourceNode, c.sourceHandle, drop, e.view.Graph())
	}
	e.view.Release(screen)
	e.view.Notify()
	e.view.emit(GraphEvent{
		Type:     EventConnectEnd,
		NodeID:   c.sourceNode,
		HandleID: c.sourceHandle,
		Graph:    drop,
		Screen:   screen,
	})
}

// Cancel abandons any gesture in progress without calling the completion
// callback. No key is bound to it; hosts decide when to cancel.
func (e *Editor) Cancel() {
	if c := e.connecting; c != nil {
		e.connecting = nil
		e.view.Notify()
		e.view.emit(GraphEvent{Type: EventGestureCancel, NodeID: c.sourceNode, HandleID: c.sourceHandle})
		return
	}
	e.view.CancelGesture()
}

// ConnectionLine returns the preview line in screen space, from the source
// handle's anchor to the pointer. A source node that has left the graph is
// anchored at the graph origin.
func (e *Editor) ConnectionLine() (from, to Vec2, ok bool) {
	c := e.connecting
	if c == nil {
		return Vec2{}, Vec2{}, false
	}
	var anchor Vec2
	if n := e.view.Graph().Node(c.sourceNode); n != nil {
		anchor = GraphAnchor(n, c.sourceHandle, Vec2{})
	}
	return e.view.ViewportState().ToScreen(anchor), c.current, true
}

// Update advances the view one frame.
func (e *Editor) Update() {
	e.view.Update()
}

// Draw renders the view, including the connection preview.
func (e *Editor) Draw(screen *ebiten.Image) {
	e.view.Draw(screen)
}

// SetSize forwards the window size to the view.
func (e *Editor) SetSize(width, height int) {
	e.view.SetSize(width, height)
}
