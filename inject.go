package nodeflow

// syntheticEvent represents a single injected input event. Screen
// coordinates are used (matching what a tester sees in screenshots) and go
// through the same pointer handler as real mouse input.
type syntheticEvent struct {
	screen  Vec2
	pressed bool
	// scroll, when non-zero, makes this a wheel event; screen and pressed
	// are ignored.
	scroll Vec2
}

// InjectPress queues a pointer press at the given screen coordinates. The
// event is consumed on the next frame's processInput call.
func (v *GraphView) InjectPress(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{screen: Vec2{x, y}, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (v *GraphView) InjectMove(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{screen: Vec2{x, y}, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (v *GraphView) InjectRelease(x, y float64) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{screen: Vec2{x, y}})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (v *GraphView) InjectClick(x, y float64) {
	v.InjectPress(x, y)
	v.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 2 (press + release).
func (v *GraphView) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	v.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		v.InjectMove(x, y)
	}
	v.InjectRelease(toX, toY)
}

// InjectScroll queues one wheel event in wheel line units. A zero delta is
// ignored.
func (v *GraphView) InjectScroll(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	v.injectQueue = append(v.injectQueue, syntheticEvent{scroll: Vec2{dx, dy}})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer or Scroll. Returns true if an event was consumed
// (real mouse input should be skipped).
func (v *GraphView) processInjectedInput() bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	evt := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	if evt.scroll != (Vec2{}) {
		v.Scroll(evt.scroll)
		return true
	}
	v.processPointer(evt.screen, evt.pressed)
	return true
}
