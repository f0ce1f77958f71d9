package plot

import (
	"image"
	"math"
	"testing"
)

func TestViewport_RoundTrip(t *testing.T) {
	v := NewViewport(800, 600, -10, 10, -5, 15)
	for _, x := range []float64{-10, -3.3, 0, 0.01, 7.25, 10} {
		px := v.PxFromX(x)
		back := v.XFromPx(px)
		if math.Abs(back-x) > (v.XMax-v.XMin)/float64(v.PixelWidth) {
			t.Fatalf("x=%v -> px=%d -> %v, more than one pixel off", x, px, back)
		}
	}
	for _, y := range []float64{-5, 0, 2.2, 14.9, 15} {
		py := v.PxFromY(y)
		back := v.YFromPx(py)
		if math.Abs(back-y) > (v.YMax-v.YMin)/float64(v.PixelHeight) {
			t.Fatalf("y=%v -> py=%d -> %v, more than one pixel off", y, py, back)
		}
	}
}

func TestViewport_Transforms(t *testing.T) {
	v := NewViewport(800, 600, -10, 10, -10, 10)
	if got := v.PxFromX(-10); got != 0 {
		t.Fatalf("PxFromX(-10)=%d, want 0", got)
	}
	if got := v.PxFromX(10); got != 800 {
		t.Fatalf("PxFromX(10)=%d, want 800", got)
	}
	if got := v.PxFromY(10); got != 0 {
		t.Fatalf("PxFromY(10)=%d, want 0", got)
	}
	if got := v.PxFromY(-10); got != 600 {
		t.Fatalf("PxFromY(-10)=%d, want 600", got)
	}
	if got := v.Origin(); got != image.Pt(400, 300) {
		t.Fatalf("Origin()=%v, want (400,300)", got)
	}
}

func TestViewport_HugeValuesClamp(t *testing.T) {
	v := NewViewport(800, 600, -10, 10, -10, 10)
	if got := v.PxFromY(1e300); got != -pixelLimit {
		t.Fatalf("PxFromY(1e300)=%d, want %d", got, -pixelLimit)
	}
	if got := v.PxFromY(math.Inf(-1)); got != pixelLimit {
		t.Fatalf("PxFromY(-Inf)=%d, want %d", got, pixelLimit)
	}
	if got := v.PxFromX(math.NaN()); got != 0 {
		t.Fatalf("PxFromX(NaN)=%d, want 0", got)
	}
}

func TestViewport_Move(t *testing.T) {
	v := NewViewport(800, 600, -10, 10, -10, 10)
	v.Move(40, 30)
	// 40px of 800 over a span of 20 is 1; 30px of 600 is 1.
	if v.XMin != -9 || v.XMax != 11 {
		t.Fatalf("x=[%v,%v], want [-9,11]", v.XMin, v.XMax)
	}
	if v.YMin != -11 || v.YMax != 9 {
		t.Fatalf("y=[%v,%v], want [-11,9]", v.YMin, v.YMax)
	}
}

func TestViewport_ZoomAtCentre(t *testing.T) {
	v := NewViewport(800, 600, -10, 10, -10, 10)
	v.Zoom(1, -1, -1)
	if v.XMin != -5 || v.XMax != 5 || v.YMin != -5 || v.YMax != 5 {
		t.Fatalf("zoom in: %+v, want ±5", v)
	}
	v.Zoom(-1, -1, -1)
	if v.XMin != -7.5 || v.XMax != 7.5 || v.YMin != -7.5 || v.YMax != 7.5 {
		t.Fatalf("zoom out: %+v, want ±7.5", v)
	}
	before := v
	v.Zoom(0, 10, 10)
	if v != before {
		t.Fatalf("zero steps changed the viewport")
	}
}

func TestViewport_ZoomAtCorner(t *testing.T) {
	v := NewViewport(800, 600, -10, 10, -10, 10)
	v.Zoom(1, 0, 0)
	// Zooming in at the top left corner keeps XMin and YMax fixed.
	if v.XMin != -10 || v.XMax != 0 || v.YMin != 0 || v.YMax != 10 {
		t.Fatalf("got x=[%v,%v] y=[%v,%v]", v.XMin, v.XMax, v.YMin, v.YMax)
	}
}

func TestViewport_CenterOrigin(t *testing.T) {
	v := NewViewport(800, 600, 2, 12, -1, 3)
	v.CenterOrigin()
	if v.XMin != -5 || v.XMax != 5 || v.YMin != -2 || v.YMax != 2 {
		t.Fatalf("got x=[%v,%v] y=[%v,%v]", v.XMin, v.XMax, v.YMin, v.YMax)
	}
}

func TestViewport_SetBounds(t *testing.T) {
	v := NewViewport(800, 600, -10, 10, -10, 10)
	if err := v.SetBounds(1, 1, 0, 1); err != ErrBounds {
		t.Fatalf("empty span err=%v, want ErrBounds", err)
	}
	if err := v.SetBounds(0, math.Inf(1), 0, 1); err != ErrBounds {
		t.Fatalf("infinite span err=%v, want ErrBounds", err)
	}
	if err := v.SetBounds(-1, 1, -2, 2); err != nil {
		t.Fatalf("SetBounds: %v", err)
	}
	if !v.Valid() {
		t.Fatalf("viewport not valid after SetBounds")
	}
}

func TestViewport_SetPixelBounds(t *testing.T) {
	v := NewViewport(800, 600, -10, 10, -10, 10)
	if v.SetPixelBounds(100, 100, 0, 50) {
		t.Fatalf("degenerate rectangle accepted")
	}
	// Corners given bottom-right first.
	if !v.SetPixelBounds(600, 200, 450, 150) {
		t.Fatalf("SetPixelBounds=false")
	}
	if v.XMin != -5 || v.XMax != 5 || v.YMin != -5 || v.YMax != 5 {
		t.Fatalf("got x=[%v,%v] y=[%v,%v], want ±5", v.XMin, v.XMax, v.YMin, v.YMax)
	}
}

func TestViewport_SetSamplingRate(t *testing.T) {
	v := NewViewport(800, 600, -10, 10, -10, 10)
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := v.SetSamplingRate(r); err != ErrSamplingRate {
			t.Fatalf("SetSamplingRate(%v) err=%v, want ErrSamplingRate", r, err)
		}
	}
	if err := v.SetSamplingRate(0.5); err != nil || v.SamplingRate != 0.5 {
		t.Fatalf("SetSamplingRate(0.5): err=%v rate=%v", err, v.SamplingRate)
	}
}
