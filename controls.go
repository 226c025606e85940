package nodeflow

// ControlIntent is an action requested through the control bar.
type ControlIntent uint8

const (
	IntentZoomIn     ControlIntent = iota // "+" button
	IntentZoomOut                         // "-" button
	IntentFitView                         // "[]" button
	IntentToggleLock                      // "L" / "U" button
)

const (
	controlButtonSize = 24.0
	controlMargin     = 10.0
	controlCount      = 4
)

// controlBar returns the screen rectangles of the four buttons, stacked
// vertically in the bottom-left corner, top to bottom.
func (v *GraphView) controlBar() [controlCount]Rect {
	var out [controlCount]Rect
	top := float64(v.config.Height) - controlMargin - controlCount*controlButtonSize
	for i := range out {
		out[i] = Rect{
			X:      controlMargin,
			Y:      top + float64(i)*controlButtonSize,
			Width:  controlButtonSize,
			Height: controlButtonSize,
		}
	}
	return out
}

// controlAt returns the intent of the button under a screen position.
func (v *GraphView) controlAt(screen Vec2) (ControlIntent, bool) {
	for i, r := range v.controlBar() {
		if r.Contains(screen.X, screen.Y) {
			return ControlIntent(i), true
		}
	}
	return 0, false
}

// controlLabel is the text drawn on a button. The lock button shows the
// action it performs next.
func (v *GraphView) controlLabel(intent ControlIntent) string {
	switch intent {
	case IntentZoomIn:
		return "+"
	case IntentZoomOut:
		return "-"
	case IntentFitView:
		return "[]"
	case IntentToggleLock:
		if v.viewport.Locked {
			return "U"
		}
		return "L"
	}
	return ""
}

// applyIntent performs a control bar action.
func (v *GraphView) applyIntent(intent ControlIntent) {
	v.debugf("control %s", v.controlLabel(intent))
	switch intent {
	case IntentZoomIn:
		v.ZoomIn()
	case IntentZoomOut:
		v.ZoomOut()
	case IntentFitView:
		v.FitView()
	case IntentToggleLock:
		v.ToggleLock()
	}
}
