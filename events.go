package nodeflow

import "github.com/google/uuid"

// HandleClickedEvent is sent when a press lands on a handle marker. Anchor
// is the handle's anchor in graph space.
type HandleClickedEvent struct {
	NodeID   uuid.UUID
	HandleID string
	Anchor   Vec2
}

// GraphEvent carries interaction data to view-level callbacks and to an
// EventSink. Fields not meaningful for Type are zero.
type GraphEvent struct {
	Type     EventType
	NodeID   uuid.UUID
	HandleID string
	// Graph is the pointer position (or handle anchor) in graph space.
	Graph Vec2
	// Screen is the pointer position in screen space.
	Screen Vec2
	// Zoom is the viewport zoom when the event fired.
	Zoom float64
}

// EventSink is the interface for optional ECS integration. When set on a
// GraphView, every GraphEvent is forwarded to it.
type EventSink interface {
	EmitEvent(event GraphEvent)
}

// --- Handler registry ---

type handleClickHandler struct {
	id uint32
	fn func(HandleClickedEvent)
}

type eventHandler struct {
	id  uint32
	typ EventType
	fn  func(GraphEvent)
}

type handlerRegistry struct {
	handleClicked []handleClickHandler
	events        []eventHandler
	nextID        uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id     uint32
	reg    *handlerRegistry
	handle bool
}

// Remove unregisters this callback so it no longer fires. Removing twice, or
// removing a zero CallbackHandle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.handle {
		h.reg.handleClicked = removeHandleClickHandler(h.reg.handleClicked, h.id)
		return
	}
	h.reg.events = removeEventHandler(h.reg.events, h.id)
}

func removeHandleClickHandler(s []handleClickHandler, id uint32) []handleClickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handleClickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeEventHandler(s []eventHandler, id uint32) []eventHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// OnHandleClicked subscribes to handle-click notifications. The Editor uses
// this to start connection gestures.
func (v *GraphView) OnHandleClicked(fn func(HandleClickedEvent)) CallbackHandle {
	v.handlers.nextID++
	id := v.handlers.nextID
	v.handlers.handleClicked = append(v.handlers.handleClicked, handleClickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &v.handlers, handle: true}
}

// OnEvent registers a callback for one event type.
func (v *GraphView) OnEvent(typ EventType, fn func(GraphEvent)) CallbackHandle {
	v.handlers.nextID++
	id := v.handlers.nextID
	v.handlers.events = append(v.handlers.events, eventHandler{id: id, typ: typ, fn: fn})
	return CallbackHandle{id: id, reg: &v.handlers}
}

// SetEventSink sets the optional ECS bridge.
func (v *GraphView) SetEventSink(sink EventSink) {
	v.sink = sink
}

// --- Event dispatch ---

// fireHandleClicked emits the generic event, then notifies handle-click
// subscribers.
func (v *GraphView) fireHandleClicked(evt HandleClickedEvent, screen Vec2) {
	v.emit(GraphEvent{
		Type:     EventHandleClicked,
		NodeID:   evt.NodeID,
		HandleID: evt.HandleID,
		Graph:    evt.Anchor,
		Screen:   screen,
	})
	for _, h := range v.handlers.handleClicked {
		h.fn(evt)
	}
}

// emit fills in Zoom, then dispatches to callbacks and the sink.
func (v *GraphView) emit(evt GraphEvent) {
	evt.Zoom = v.viewport.State().Zoom
	v.debugf("event %s node=%s handle=%q graph=(%.1f,%.1f)",
		evt.Type, shortID(evt.NodeID), evt.HandleID, evt.Graph.X, evt.Graph.Y)
	for _, h := range v.handlers.events {
		if h.typ == evt.Type {
			h.fn(evt)
		}
	}
	if v.sink != nil {
		v.sink.EmitEvent(evt)
	}
}
