package nodeflow

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

// newTestView returns a view with the control bar hidden so presses near
// the bottom-left corner reach the canvas.
func newTestView() *GraphView {
	return NewGraphView(ViewConfig{HideControls: true})
}

func TestHitTestTopmostWins(t *testing.T) {
	v := newTestView()
	a := NewNode(nil, Vec2{0, 0})
	b := NewNode(nil, Vec2{100, 40})
	v.AddNode(a)
	v.AddNode(b)

	tests := []struct {
		name string
		p    Vec2
		want *Node
	}{
		{"only a", Vec2{10, 10}, a},
		{"overlap picks later node", Vec2{120, 60}, b},
		{"only b", Vec2{240, 110}, b},
		{"a edge inclusive", Vec2{150, 0}, a},
		{"empty", Vec2{400, 400}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.hitTest(tt.p); got != tt.want {
				t.Errorf("hitTest(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestDragScenario(t *testing.T) {
	v := newTestView()
	n1 := NewNode(nil, Vec2{0, 0})
	n2 := NewNode(nil, Vec2{300, 0})
	v.AddNode(n1)
	v.AddNode(n2)

	v.Press(Vec2{50, 40})
	id, ok := v.Dragging()
	if !ok || id != n1.ID {
		t.Fatalf("press should start dragging N1, got %v %v", id, ok)
	}
	if v.gesture.grabOffset != (Vec2{50, 40}) {
		t.Errorf("grab offset = %v, want (50,40)", v.gesture.grabOffset)
	}

	v.Move(Vec2{250, 40})
	if n1.Position != (Vec2{200, 0}) {
		t.Errorf("N1 origin = %v, want (200,0)", n1.Position)
	}
	if n2.Position != (Vec2{300, 0}) {
		t.Errorf("N2 moved to %v", n2.Position)
	}

	v.Release(Vec2{250, 40})
	if _, ok := v.Dragging(); ok {
		t.Error("release should end the drag")
	}
}

func TestDragPreservesGrabOffsetUnderZoom(t *testing.T) {
	v := newTestView()
	v.viewport.Pan = Vec2{40, 20}
	v.viewport.Zoom = 2
	n := NewNode(nil, Vec2{10, 10})
	v.AddNode(n)

	// Graph (30,30) is screen (100,80).
	v.Press(Vec2{100, 80})
	for _, p := range []Vec2{{120, 80}, {160, 140}, {-300, 500}} {
		v.Move(p)
		g := v.viewport.ToGraph(p)
		if got := g.Sub(n.Position); !vecNear(got, Vec2{20, 20}, 1e-9) {
			t.Errorf("after move to %v: pointer-origin = %v, want (20,20)", p, got)
		}
	}
	v.Release(Vec2{-300, 500})
}

func TestPanOnEmptyCanvas(t *testing.T) {
	v := newTestView()
	v.AddNode(NewNode(nil, Vec2{0, 0}))

	v.Press(Vec2{500, 500})
	if !v.Panning() {
		t.Fatal("press on empty canvas should pan")
	}
	v.Move(Vec2{510, 495})
	v.Move(Vec2{530, 505})
	if got := v.ViewportState().Pan; got != (Vec2{30, 5}) {
		t.Errorf("Pan = %v, want (30,5)", got)
	}
	v.Release(Vec2{530, 505})
	if v.Panning() {
		t.Error("release should end the pan")
	}
	v.Move(Vec2{600, 600})
	if got := v.ViewportState().Pan; got != (Vec2{30, 5}) {
		t.Errorf("move after release changed pan to %v", got)
	}
}

func TestPanWorksWhileLocked(t *testing.T) {
	v := newTestView()
	v.ToggleLock()
	v.Press(Vec2{300, 300})
	v.Move(Vec2{310, 300})
	v.Release(Vec2{310, 300})
	if got := v.ViewportState().Pan; got != (Vec2{10, 0}) {
		t.Errorf("Pan = %v, want (10,0)", got)
	}
}

func TestReleaseIdempotent(t *testing.T) {
	v := newTestView()
	n := NewNode(nil, Vec2{0, 0})
	v.AddNode(n)

	var ends int
	v.OnEvent(EventNodeDragEnd, func(GraphEvent) { ends++ })
	v.OnEvent(EventPanEnd, func(GraphEvent) { ends++ })

	v.Release(Vec2{10, 10})
	if v.gesture.kind != gestureIdle || ends != 0 {
		t.Error("release while idle should be a no-op")
	}

	v.Press(Vec2{10, 10})
	v.Release(Vec2{10, 10})
	v.Release(Vec2{10, 10})
	if ends != 1 {
		t.Errorf("drag end fired %d times, want 1", ends)
	}
	if n.Position != (Vec2{0, 0}) {
		t.Errorf("node moved to %v", n.Position)
	}
}

func TestPressResetsGesture(t *testing.T) {
	v := newTestView()
	n := NewNode(nil, Vec2{0, 0})
	v.AddNode(n)

	v.Press(Vec2{400, 400})
	if !v.Panning() {
		t.Fatal("expected pan")
	}
	// A missed release followed by a press on the node starts a fresh drag.
	v.Press(Vec2{10, 10})
	if v.Panning() {
		t.Error("pan should be discarded by a new press")
	}
	if id, ok := v.Dragging(); !ok || id != n.ID {
		t.Error("new press should start a drag")
	}
}

func TestDragOfRemovedNodeIsIgnored(t *testing.T) {
	v := newTestView()
	n := NewNode(nil, Vec2{0, 0})
	v.AddNode(n)
	v.Press(Vec2{10, 10})

	// Swap the graph out from under the gesture.
	v.graph = NewGraph()
	v.Move(Vec2{100, 100})
	if n.Position != (Vec2{0, 0}) {
		t.Errorf("detached node moved to %v", n.Position)
	}
	v.Release(Vec2{100, 100})
	if _, ok := v.Dragging(); ok {
		t.Error("release should clear the drag")
	}
}

func TestMoveRejectsNonFinite(t *testing.T) {
	v := newTestView()
	n := NewNode(nil, Vec2{0, 0})
	v.AddNode(n)
	v.Press(Vec2{10, 10})
	v.Move(Vec2{math.Inf(1), 0})
	if n.Position != (Vec2{0, 0}) {
		t.Errorf("non-finite move applied: %v", n.Position)
	}
}

func TestHandleMarkerPress(t *testing.T) {
	v := newTestView()
	n := NewNode(nil, Vec2{0, 0}).WithHandles(NewHandle("right", HandleSource, SideRight))
	v.AddNode(n)

	var got []HandleClickedEvent
	v.OnHandleClicked(func(evt HandleClickedEvent) { got = append(got, evt) })

	// Right anchor is (150,40); within the 5px radius.
	v.Press(Vec2{147, 42})
	if len(got) != 1 {
		t.Fatalf("handle clicks = %d, want 1", len(got))
	}
	if got[0].NodeID != n.ID || got[0].HandleID != "right" || got[0].Anchor != (Vec2{150, 40}) {
		t.Errorf("event = %+v", got[0])
	}
	if v.gesture.kind != gestureIdle {
		t.Errorf("handle press started %s", v.gesture.kind)
	}

	// Outside the radius but inside the body: a normal drag.
	v.Release(Vec2{147, 42})
	v.Press(Vec2{140, 40})
	if len(got) != 1 {
		t.Error("press outside marker should not click the handle")
	}
	if _, ok := v.Dragging(); !ok {
		t.Error("press on body should drag")
	}
}

func TestHandleMarkerRadiusIsScreenSpace(t *testing.T) {
	v := newTestView()
	v.viewport.Zoom = 4
	n := NewNode(nil, Vec2{0, 0}).WithHandles(NewHandle("top", HandleTarget, SideTop))
	v.AddNode(n)

	var clicks int
	v.OnHandleClicked(func(HandleClickedEvent) { clicks++ })

	// Top anchor (75,0) is screen (300,0) at zoom 4.
	v.Press(Vec2{306, 0})
	if clicks != 0 {
		t.Error("6px away should miss a 5px marker regardless of zoom")
	}
	v.Release(Vec2{306, 0})
	v.Press(Vec2{304, 3})
	if clicks != 1 {
		t.Error("5px away should hit")
	}
}

func TestClickHandleLeavesDragAlone(t *testing.T) {
	v := newTestView()
	a := NewNode(nil, Vec2{0, 0})
	b := NewNode(nil, Vec2{300, 0}).WithHandles(NewHandle("left", HandleTarget, SideLeft))
	v.AddNode(a)
	v.AddNode(b)

	v.Press(Vec2{10, 10})
	if !v.ClickHandle(b.ID, "left") {
		t.Fatal("ClickHandle should find node b")
	}
	if id, ok := v.Dragging(); !ok || id != a.ID {
		t.Error("handle click must not alter the drag")
	}
	v.Move(Vec2{20, 10})
	if a.Position != (Vec2{10, 0}) {
		t.Errorf("drag after handle click moved a to %v", a.Position)
	}
}

func TestClickHandleUnknownNode(t *testing.T) {
	v := newTestView()
	var clicks int
	v.OnHandleClicked(func(HandleClickedEvent) { clicks++ })
	if v.ClickHandle(uuid.New(), "x") {
		t.Error("ClickHandle on missing node should report false")
	}
	if clicks != 0 {
		t.Error("no event for missing node")
	}
}

func TestCancelGesture(t *testing.T) {
	v := newTestView()
	n := NewNode(nil, Vec2{0, 0})
	v.AddNode(n)

	var cancels []GraphEvent
	v.OnEvent(EventGestureCancel, func(evt GraphEvent) { cancels = append(cancels, evt) })

	v.CancelGesture()
	if len(cancels) != 0 {
		t.Error("cancel while idle should not emit")
	}

	v.Press(Vec2{10, 10})
	v.Move(Vec2{30, 10})
	v.CancelGesture()
	if len(cancels) != 1 || cancels[0].NodeID != n.ID {
		t.Fatalf("cancel events = %+v", cancels)
	}
	v.Move(Vec2{90, 10})
	if n.Position != (Vec2{20, 0}) {
		t.Errorf("node at %v, want (20,0) after cancel", n.Position)
	}
}

func TestScrollEmitsZoom(t *testing.T) {
	v := newTestView()
	var zooms []float64
	v.OnEvent(EventZoom, func(evt GraphEvent) { zooms = append(zooms, evt.Zoom) })

	v.Scroll(Vec2{0, 1})
	v.Scroll(Vec2{3, 0})
	v.Scroll(Vec2{})
	if len(zooms) != 1 || !approxEqual(zooms[0], 1.1, epsilon) {
		t.Errorf("zoom events = %v, want [1.1]", zooms)
	}
}

func TestProcessPointerEdges(t *testing.T) {
	v := newTestView()
	rec := &recordingHandler{}
	v.SetPointerHandler(rec)

	v.processPointer(Vec2{1, 1}, false) // hover move
	v.processPointer(Vec2{1, 1}, false) // no change
	v.processPointer(Vec2{1, 1}, true)  // press
	v.processPointer(Vec2{2, 2}, true)  // move
	v.processPointer(Vec2{2, 2}, true)  // held, no change
	v.processPointer(Vec2{3, 3}, false) // move then release

	want := []string{"move", "press", "move", "move", "release"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call %d = %s, want %s", i, rec.calls[i], want[i])
		}
	}

	v.SetPointerHandler(nil)
	if v.pointerHandler() != PointerHandler(v) {
		t.Error("nil handler should restore the view")
	}
}

type recordingHandler struct {
	calls []string
}

func (r *recordingHandler) Press(Vec2)   { r.calls = append(r.calls, "press") }
func (r *recordingHandler) Move(Vec2)    { r.calls = append(r.calls, "move") }
func (r *recordingHandler) Release(Vec2) { r.calls = append(r.calls, "release") }
