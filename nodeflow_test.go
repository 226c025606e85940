package nodeflow

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecNear(a, b Vec2, eps float64) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps)
}

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left edge", 10, 40, true},
		{"right edge", 110, 40, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{0, 0, 150, 80}
	b := Rect{300, -20, 150, 80}
	u := a.Union(b)
	want := Rect{0, -20, 450, 100}
	if u != want {
		t.Errorf("Union = %v, want %v", u, want)
	}
	if c := u.Center(); c != (Vec2{225, 30}) {
		t.Errorf("Center = %v, want (225,30)", c)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Add(Vec2{1, 1}); got != (Vec2{4, 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := v.Sub(Vec2{1, 1}); got != (Vec2{2, 3}) {
		t.Errorf("Sub = %v", got)
	}
	if got := v.Scale(2); got != (Vec2{6, 8}) {
		t.Errorf("Scale = %v", got)
	}
	if !v.finite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec2{math.NaN(), 0}).finite() || (Vec2{0, math.Inf(1)}).finite() {
		t.Error("NaN/Inf vector reported as finite")
	}
}

func TestRGB(t *testing.T) {
	c := RGB(0xff8000)
	if !approxEqual(c.R, 1, epsilon) || !approxEqual(c.G, 128.0/255, epsilon) || c.B != 0 || c.A != 1 {
		t.Errorf("RGB(0xff8000) = %+v", c)
	}
	rgba := Color{1, 1, 1, 0.5}.toRGBA()
	if rgba.A != 127 || rgba.R != 127 {
		t.Errorf("toRGBA premultiply = %+v, want R=127 A=127", rgba)
	}
}

func TestSideString(t *testing.T) {
	tests := map[Side]string{
		SideTop: "top", SideBottom: "bottom", SideLeft: "left", SideRight: "right", Side(99): "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("Side(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestEventTypeString(t *testing.T) {
	if EventHandleClicked.String() != "handle-clicked" {
		t.Errorf("got %q", EventHandleClicked.String())
	}
	if EventGestureCancel.String() != "gesture-cancel" {
		t.Errorf("got %q", EventGestureCancel.String())
	}
	if EventType(200).String() != "unknown" {
		t.Errorf("got %q", EventType(200).String())
	}
}
