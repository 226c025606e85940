package nodeflow

import (
	"encoding/json"
	"fmt"
)

// testStep is one scripted action. Coordinates are in screen space.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DX     float64 `json:"dx,omitempty"`
	DY     float64 `json:"dy,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// scriptActions maps each action name to the function that queues it.
// wait is handled by the runner itself.
var scriptActions = map[string]func(v *GraphView, st testStep){
	"click": func(v *GraphView, st testStep) {
		v.InjectClick(st.X, st.Y)
	},
	"drag": func(v *GraphView, st testStep) {
		v.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	},
	"scroll": func(v *GraphView, st testStep) {
		v.InjectScroll(st.DX, st.DY)
	},
	"screenshot": func(v *GraphView, st testStep) {
		v.Screenshot(st.Label)
	},
	"wait": nil,
}

// TestRunner replays a script of input and screenshot steps, one step per
// frame once the previous step's injected events have drained.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON script of the form {"steps": [...]}.
//
// Actions: "click" (x, y), "drag" (fromX, fromY, toX, toY, frames),
// "scroll" (dx, dy in wheel lines), "wait" (frames) and "screenshot"
// (label). A drag that starts on a handle marker is a connection gesture
// when an Editor is attached.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script struct {
		Steps []testStep `json:"steps"`
	}
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		if _, ok := scriptActions[st.Action]; !ok {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Frames < 0 {
			return nil, fmt.Errorf("parse test script: step %d: negative frames", i)
		}
		if st.Action == "drag" && st.Frames < 2 {
			st.Frames = 2
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the view. GraphView.Update steps it
// before reading input each frame.
func (v *GraphView) SetTestRunner(runner *TestRunner) {
	v.testRunner = runner
}

// Done reports whether every step has run and its input has drained.
func (r *TestRunner) Done() bool {
	return r.done
}

func (r *TestRunner) step(v *GraphView) {
	switch {
	case r.done, len(v.injectQueue) > 0:
		return
	case r.waitCount > 0:
		r.waitCount--
		return
	case r.cursor >= len(r.steps):
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	if queue := scriptActions[st.Action]; queue != nil {
		queue(v, st)
	} else if st.Frames > 0 {
		// The current frame is the first one waited.
		r.waitCount = st.Frames - 1
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(v.injectQueue) == 0 {
		r.done = true
	}
}
