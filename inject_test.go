package nodeflow

import "testing"

func TestInjectClick(t *testing.T) {
	v := NewGraphView(ViewConfig{})
	n := NewNode(nil, Vec2{0, 0})
	v.AddNode(n)

	var started, ended bool
	v.OnEvent(EventNodeDragStart, func(GraphEvent) { started = true })
	v.OnEvent(EventNodeDragEnd, func(GraphEvent) { ended = true })

	v.InjectClick(50, 40)
	if len(v.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(v.injectQueue))
	}

	// Frame 1: press
	v.processInjectedInput()
	if len(v.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(v.injectQueue))
	}
	if !started || ended {
		t.Errorf("after press: started=%v ended=%v, want true false", started, ended)
	}

	// Frame 2: release
	v.processInjectedInput()
	if len(v.injectQueue) != 0 {
		t.Fatalf("expected 0 remaining events after frame 2, got %d", len(v.injectQueue))
	}
	if !ended {
		t.Error("drag end should fire on release frame")
	}
}

func TestInjectDrag(t *testing.T) {
	v := NewGraphView(ViewConfig{})
	n := NewNode(nil, Vec2{0, 0})
	v.AddNode(n)

	var events []string
	v.OnEvent(EventNodeDragStart, func(GraphEvent) { events = append(events, "dragstart") })
	v.OnEvent(EventNodeDrag, func(GraphEvent) { events = append(events, "drag") })
	v.OnEvent(EventNodeDragEnd, func(GraphEvent) { events = append(events, "dragend") })

	// Drag from (10,10) to (210,110) over 5 frames:
	// frame 0: press at (10,10)
	// frames 1-3: moves at 1/4, 2/4, 3/4 of the way
	// frame 4: release at (210,110), preceded by a final move
	v.InjectDrag(10, 10, 210, 110, 5)
	if len(v.injectQueue) != 5 {
		t.Fatalf("expected 5 queued events, got %d", len(v.injectQueue))
	}

	for i := 0; i < 5; i++ {
		v.processInjectedInput()
	}

	if len(events) != 6 {
		t.Fatalf("expected dragstart, 4 drags, dragend; got %v", events)
	}
	if events[0] != "dragstart" {
		t.Errorf("first event should be dragstart, got %s", events[0])
	}
	if events[len(events)-1] != "dragend" {
		t.Errorf("last event should be dragend, got %s", events[len(events)-1])
	}
	if n.Position != (Vec2{200, 100}) {
		t.Errorf("node at %v, want (200,100)", n.Position)
	}
}

func TestInjectDrag_MinFrames(t *testing.T) {
	v := NewGraphView(ViewConfig{})
	v.InjectDrag(0, 0, 100, 100, 1) // should clamp to 2
	if len(v.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events (clamped), got %d", len(v.injectQueue))
	}
}

func TestInjectQueueOrder(t *testing.T) {
	v := NewGraphView(ViewConfig{})

	v.InjectPress(10, 20)
	v.InjectMove(30, 40)
	v.InjectRelease(50, 60)
	v.InjectScroll(0, 1)

	if len(v.injectQueue) != 4 {
		t.Fatalf("expected 4 events, got %d", len(v.injectQueue))
	}

	q := v.injectQueue
	if !q[0].pressed || q[0].screen != (Vec2{10, 20}) {
		t.Error("first event should be press at (10,20)")
	}
	if !q[1].pressed || q[1].screen != (Vec2{30, 40}) {
		t.Error("second event should be move at (30,40)")
	}
	if q[2].pressed || q[2].screen != (Vec2{50, 60}) {
		t.Error("third event should be release at (50,60)")
	}
	if q[3].scroll != (Vec2{0, 1}) {
		t.Error("fourth event should be scroll (0,1)")
	}
}

func TestInjectScrollZeroIgnored(t *testing.T) {
	v := NewGraphView(ViewConfig{})
	v.InjectScroll(0, 0)
	if len(v.injectQueue) != 0 {
		t.Errorf("zero scroll should not be queued, got %d", len(v.injectQueue))
	}
}

func TestInjectScroll(t *testing.T) {
	v := NewGraphView(ViewConfig{})
	var zooms int
	v.OnEvent(EventZoom, func(GraphEvent) { zooms++ })

	v.InjectScroll(0, 1)
	v.InjectScroll(1, 0)
	v.processInjectedInput()
	v.processInjectedInput()

	vs := v.ViewportState()
	if !approxEqual(vs.Zoom, 1.1, epsilon) {
		t.Errorf("Zoom = %f, want 1.1", vs.Zoom)
	}
	if vs.Pan != (Vec2{20, 0}) {
		t.Errorf("Pan = %v, want (20,0)", vs.Pan)
	}
	if zooms != 1 {
		t.Errorf("zoom events = %d, want 1", zooms)
	}
}

func TestProcessInjectedInput(t *testing.T) {
	v := NewGraphView(ViewConfig{})
	v.viewport.Pan = Vec2{100, 100}
	v.viewport.Zoom = 2
	n := NewNode(nil, Vec2{0, 0})
	v.AddNode(n)

	var got GraphEvent
	v.OnEvent(EventNodeDragStart, func(evt GraphEvent) { got = evt })

	// Screen (200,180) is graph (50,40) under pan (100,100), zoom 2.
	v.InjectPress(200, 180)
	if !v.processInjectedInput() {
		t.Error("expected processInjectedInput to consume an event")
	}
	if got.NodeID != n.ID {
		t.Fatalf("drag start node = %v, want %v", got.NodeID, n.ID)
	}
	if got.Graph != (Vec2{50, 40}) || got.Screen != (Vec2{200, 180}) {
		t.Errorf("event positions graph=%v screen=%v", got.Graph, got.Screen)
	}
	if got.Zoom != 2 {
		t.Errorf("event zoom = %f, want 2", got.Zoom)
	}
	if len(v.injectQueue) != 0 {
		t.Errorf("queue should be empty, got %d", len(v.injectQueue))
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	v := NewGraphView(ViewConfig{})
	if v.processInjectedInput() {
		t.Error("should not consume when queue is empty")
	}
}
