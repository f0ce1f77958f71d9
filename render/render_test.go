package render

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"mathgraph/expr"
	"mathgraph/hal"
	"mathgraph/plot"
)

func rgb(c color.RGBA) uint16 { return hal.RGB565(c.R, c.G, c.B) }

func countColor(fb *hal.HostFramebuffer, r image.Rectangle, c color.RGBA) int {
	want := rgb(c)
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if fb.At(x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestCanvas_RegionClips(t *testing.T) {
	fb := hal.NewFramebuffer(20, 10)
	c := NewCanvas(fb)
	red := color.RGBA{R: 0xFF, A: 0xFF}

	r := c.Region(image.Rect(5, 2, 10, 6))
	if w, h := r.Size(); w != 5 || h != 4 {
		t.Fatalf("region size=%dx%d, want 5x4", w, h)
	}
	r.Fill(red)
	if got := countColor(fb, fb.Image().Bounds(), red); got != 20 {
		t.Fatalf("filled %d pixels, want 20", got)
	}
	if fb.At(5, 2) != rgb(red) || fb.At(4, 2) == rgb(red) || fb.At(10, 2) == rgb(red) {
		t.Fatalf("fill escaped or missed the region")
	}

	blue := color.RGBA{B: 0xFF, A: 0xFF}
	r.SetPixel(0, 0, blue)
	r.SetPixel(5, 0, blue)
	r.SetPixel(-1, 0, blue)
	if fb.At(5, 2) != rgb(blue) {
		t.Fatalf("SetPixel not translated")
	}
	if got := countColor(fb, fb.Image().Bounds(), blue); got != 1 {
		t.Fatalf("blue pixels=%d, want 1", got)
	}

	outside := c.Region(image.Rect(30, 30, 40, 40))
	if w, h := outside.Size(); w != 0 || h != 0 {
		t.Fatalf("outside region size=%dx%d, want empty", w, h)
	}
}

func TestCanvas_ScrollUp(t *testing.T) {
	fb := hal.NewFramebuffer(10, 10)
	c := NewCanvas(fb)
	red := color.RGBA{R: 0xFF, A: 0xFF}
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	green := color.RGBA{G: 0xFF, A: 0xFF}

	r := c.Region(image.Rect(2, 2, 6, 8))
	r.SetPixel(1, 4, red)
	c.SetPixel(0, 0, blue)
	c.SetPixel(3, 1, blue)

	if err := r.ScrollUp(3, green); err != nil {
		t.Fatalf("ScrollUp: %v", err)
	}
	if fb.At(3, 3) != rgb(red) || fb.At(3, 6) == rgb(red) {
		t.Fatalf("content not moved up by 3 rows")
	}
	if got := countColor(fb, fb.Image().Bounds(), green); got != 12 {
		t.Fatalf("exposed pixels=%d, want 12", got)
	}
	if fb.At(0, 0) != rgb(blue) || fb.At(3, 1) != rgb(blue) {
		t.Fatalf("scroll touched pixels outside the region")
	}

	if err := r.ScrollUp(10, green); err != nil {
		t.Fatalf("ScrollUp: %v", err)
	}
	if got := countColor(fb, fb.Image().Bounds(), green); got != 24 {
		t.Fatalf("green pixels=%d, want the whole region", got)
	}
}

func TestCanvas_LineIsClipped(t *testing.T) {
	fb := hal.NewFramebuffer(10, 10)
	c := NewCanvas(fb)
	black := color.RGBA{A: 0xFF}
	c.Fill(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})

	c.Line(-100, 5, 100, 5, black)
	if got := countColor(fb, image.Rect(0, 0, 10, 10), black); got != 10 {
		t.Fatalf("horizontal line pixels=%d, want 10", got)
	}
	c.Line(-1<<24, -1<<24, -5, -5, black)
	if got := countColor(fb, image.Rect(0, 0, 10, 10), black); got != 10 {
		t.Fatalf("off-canvas line drew %d extra pixels", got-10)
	}
}

func TestFont_DrawsWithinCell(t *testing.T) {
	fb := hal.NewFramebuffer(20, 20)
	c := NewCanvas(fb)
	ink := color.RGBA{G: 0xFF, A: 0xFF}
	c.Text(2, 3, "A", ink)

	inCell := countColor(fb, image.Rect(2, 3, 2+glyphWidth, 3+lineHeight), ink)
	total := countColor(fb, image.Rect(0, 0, 20, 20), ink)
	if inCell == 0 {
		t.Fatalf("glyph drew nothing")
	}
	if inCell != total {
		t.Fatalf("glyph drew %d pixels outside its cell", total-inCell)
	}
	if Font.GetYAdvance() != lineHeight {
		t.Fatalf("YAdvance=%d, want %d", Font.GetYAdvance(), lineHeight)
	}
	if TextWidth("abc") <= TextWidth("a") || TextWidth("") != 0 {
		t.Fatalf("TextWidth not increasing: %d %d", TextWidth("a"), TextWidth("abc"))
	}
}

func newPlot(t *testing.T, w, h int, exprs ...string) *plot.Plotter {
	t.Helper()
	p := plot.New(expr.NewContext(), plot.Config{Width: w, Height: h})
	for _, s := range exprs {
		if _, err := p.AddExpression(s); err != nil {
			t.Fatalf("AddExpression(%q): %v", s, err)
		}
	}
	return p
}

func TestDraw_AxesAndCurves(t *testing.T) {
	fb := hal.NewFramebuffer(200, 200)
	p := newPlot(t, 200, 200, "x", "0-x")
	st := DefaultStyle()
	if err := Draw(NewCanvas(fb), p, st, nil); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// x axis row and y axis column through the centred origin.
	if fb.At(40, 100) != rgb(st.Axis) {
		t.Fatalf("x axis missing at (40,100)")
	}
	if fb.At(100, 160) != rgb(st.Axis) {
		t.Fatalf("y axis missing at (100,160)")
	}
	if n := countColor(fb, image.Rect(147, 47, 154, 54), st.CurveColor(0)); n == 0 {
		t.Fatalf("curve 0 not drawn near (150,50)")
	}
	if n := countColor(fb, image.Rect(147, 147, 154, 154), st.CurveColor(1)); n == 0 {
		t.Fatalf("curve 1 not drawn near (150,150)")
	}
	if n := countColor(fb, image.Rect(0, 0, 200, 200), st.Label); n == 0 {
		t.Fatalf("no marker labels drawn")
	}
}

func TestDraw_SelectedAndHidden(t *testing.T) {
	fb := hal.NewFramebuffer(200, 200)
	p := newPlot(t, 200, 200, "x", "x^2")
	st := DefaultStyle()
	p.SetHidden(1, true)
	p.Select(0)

	if err := Draw(NewCanvas(fb), p, st, nil); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	all := image.Rect(0, 0, 200, 200)
	if countColor(fb, all, st.Selected) == 0 {
		t.Fatalf("selected curve not highlighted")
	}
	if countColor(fb, all, st.CurveColor(0)) != 0 {
		t.Fatalf("selected curve also drawn in its normal colour")
	}
	if countColor(fb, all, st.CurveColor(1)) != 0 {
		t.Fatalf("hidden curve drawn")
	}
}

func TestDraw_Probe(t *testing.T) {
	fb := hal.NewFramebuffer(200, 200)
	p := newPlot(t, 200, 200, "x")
	p.Select(0)
	pt, text, err := p.PointFromSelected(150)
	if err != nil {
		t.Fatalf("PointFromSelected: %v", err)
	}
	st := DefaultStyle()
	probe := &Probe{Pixel: pt, Text: text}
	if probe.Label() != "(5, 5)" {
		t.Fatalf("label=%q, want (5, 5)", probe.Label())
	}
	if err := Draw(NewCanvas(fb), p, st, probe); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if fb.At(150, 190) != rgb(st.Crosshair) {
		t.Fatalf("vertical crosshair missing")
	}
}

func TestDraw_ReportsEvalErrors(t *testing.T) {
	ctx := expr.NewContext()
	ctx.AddVariable("k", 1)
	p := plot.New(ctx, plot.Config{Width: 50, Height: 50})
	p.AddExpression("k*x")
	p.AddExpression("x")
	ctx.RemoveVariable("k")

	fb := hal.NewFramebuffer(50, 50)
	st := DefaultStyle()
	err := Draw(NewCanvas(fb), p, st, nil)
	if !errors.Is(err, expr.ErrUnboundName) {
		t.Fatalf("err=%v, want ErrUnboundName", err)
	}
	if countColor(fb, image.Rect(0, 0, 50, 50), st.CurveColor(1)) == 0 {
		t.Fatalf("healthy curve not drawn after a failing one")
	}
}

func TestWriteSVG(t *testing.T) {
	p := newPlot(t, 300, 200, "x", "x^2", "sqrt(x^2-1)")
	p.SetHidden(1, true)
	p.Select(0)
	pt, text, err := p.PointFromSelected(200)
	if err != nil {
		t.Fatalf("PointFromSelected: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSVG(&buf, p, DefaultStyle(), &Probe{Pixel: pt, Text: text}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("not an svg document: %.80q", out)
	}
	// One polyline for x, two for the split sqrt curve, none for the hidden one.
	if n := strings.Count(out, "<polyline"); n != 3 {
		t.Fatalf("polylines=%d, want 3", n)
	}
	if !strings.Contains(out, ">-10<") || !strings.Contains(out, "#e04000") {
		t.Fatalf("missing marker label or selection colour")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSVG_WriteError(t *testing.T) {
	p := newPlot(t, 100, 100, "x")
	if err := WriteSVG(failWriter{}, p, DefaultStyle(), nil); err == nil || err.Error() != "disk full" {
		t.Fatalf("err=%v, want disk full", err)
	}
}
