package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"mathgraph/hal"
	"mathgraph/plot"

	"tinygo.org/x/tinyfont"
)

// Style holds the colours and sizes used to draw a plot.
type Style struct {
	Background color.RGBA
	Axis       color.RGBA
	Label      color.RGBA
	Selected   color.RGBA
	Crosshair  color.RGBA
	// Curves cycle by expression index.
	Curves []color.RGBA

	TickLen  int
	ArrowLen int
}

func DefaultStyle() Style {
	return Style{
		Background: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Axis:       color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
		Label:      color.RGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xFF},
		Selected:   color.RGBA{R: 0xE0, G: 0x40, B: 0x00, A: 0xFF},
		Crosshair:  color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xFF},
		Curves: []color.RGBA{
			{R: 0x00, G: 0x55, B: 0xD4, A: 0xFF},
			{R: 0x00, G: 0x99, B: 0x44, A: 0xFF},
			{R: 0xA0, G: 0x00, B: 0xA0, A: 0xFF},
			{R: 0x00, G: 0x88, B: 0xA0, A: 0xFF},
			{R: 0x88, G: 0x66, B: 0x00, A: 0xFF},
		},
		TickLen:  3,
		ArrowLen: 6,
	}
}

// CurveColor returns the colour of expression i.
func (s Style) CurveColor(i int) color.RGBA {
	if len(s.Curves) == 0 {
		return s.Axis
	}
	return s.Curves[i%len(s.Curves)]
}

// Probe is a queried point drawn as a crosshair with its coordinates.
type Probe struct {
	Pixel image.Point
	Text  plot.TextPoint
}

// Label formats the probe coordinates as "(x, y)".
func (p Probe) Label() string {
	return fmt.Sprintf("(%s, %s)", p.Text.X, p.Text.Y)
}

// Draw paints p onto c: background, axes with arrows, labelled markers, every
// visible curve and the optional probe. The plotter's viewport should match
// the canvas size. Curves that fail to evaluate are skipped and their errors
// returned together once everything else is drawn.
func Draw(c *Canvas, p *plot.Plotter, st Style, probe *Probe) error {
	c.Fill(st.Background)
	w, h := c.Width(), c.Height()
	if w <= 0 || h <= 0 {
		return nil
	}

	ax, ay := axisPosition(p.Origin(), w, h)
	drawAxes(c, ax, ay, st)
	drawMarkers(c, p, ax, ay, st)

	var errs []error
	sel, hasSel := p.Selected()
	for i := 0; i < p.Len(); i++ {
		if hasSel && i == sel {
			continue
		}
		if err := drawCurve(c, p, i, st.CurveColor(i), 1); err != nil {
			errs = append(errs, err)
		}
	}
	// The selection is drawn last so it stays on top.
	if hasSel {
		if err := drawCurve(c, p, sel, st.Selected, 2); err != nil {
			errs = append(errs, err)
		}
	}

	if probe != nil {
		drawProbe(c, *probe, st)
	}
	return errors.Join(errs...)
}

// axisPosition clamps the origin into the canvas so that axes and their
// labels stay on the edge when the origin is off screen.
func axisPosition(o image.Point, w, h int) (x, y int) {
	return clampInt(o.X, 0, w-1), clampInt(o.Y, 0, h-1)
}

func drawAxes(c *Canvas, ax, ay int, st Style) {
	w, h := c.Width(), c.Height()
	a := st.ArrowLen

	c.Line(0, ay, w-1, ay, st.Axis)
	c.Line(w-1, ay, w-1-a, ay-a, st.Axis)
	c.Line(w-1, ay, w-1-a, ay+a, st.Axis)

	c.Line(ax, 0, ax, h-1, st.Axis)
	c.Line(ax, 0, ax-a, a, st.Axis)
	c.Line(ax, 0, ax+a, a, st.Axis)
}

func drawMarkers(c *Canvas, p *plot.Plotter, ax, ay int, st Style) {
	w, h := c.Width(), c.Height()
	t := st.TickLen

	for _, m := range p.XMarkers() {
		c.Line(m.Pixel, ay-t, m.Pixel, ay+t, st.Axis)
		lw := TextWidth(m.Label)
		x := clampInt(m.Pixel-lw/2, 0, w-lw)
		top := ay + t + 2
		if top+lineHeight > h {
			top = ay - t - 2 - lineHeight
		}
		c.Text(x, top, m.Label, st.Label)
	}

	for _, m := range p.YMarkers() {
		c.Line(ax-t, m.Pixel, ax+t, m.Pixel, st.Axis)
		lw := TextWidth(m.Label)
		x := ax + t + 3
		if x+lw > w {
			x = ax - t - 3 - lw
		}
		c.Text(x, m.Pixel-lineHeight/2, m.Label, st.Label)
	}
}

func drawCurve(c *Canvas, p *plot.Plotter, i int, col color.RGBA, thickness int) error {
	segs, err := p.Segments(i)
	if err != nil {
		return fmt.Errorf("expression %d: %w", i, err)
	}
	for _, seg := range segs {
		for k := 0; k < thickness; k++ {
			c.Polyline(seg, image.Pt(0, k), col)
		}
	}
	return nil
}

func drawProbe(c *Canvas, pr Probe, st Style) {
	w, h := c.Width(), c.Height()
	x, y := pr.Pixel.X, pr.Pixel.Y
	c.Line(x, 0, x, h-1, st.Crosshair)
	if y >= 0 && y < h {
		c.Line(0, y, w-1, y, st.Crosshair)
		c.FillRectangle(int16(x-2), int16(y-2), 5, 5, st.Selected)
	}

	label := pr.Label()
	lw := TextWidth(label)
	tx := clampInt(x+6, 0, w-lw)
	ty := clampInt(y-6-lineHeight, 0, h-lineHeight)
	c.FillRectangle(int16(tx-1), int16(ty), int16(lw+2), lineHeight, st.Background)
	c.Text(tx, ty, label, st.Label)
}

// Text draws s with its top-left corner at (x, y).
func (c *Canvas) Text(x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(c, Font, int16(x), int16(y+glyphAscent), s, col)
}

// Polyline joins consecutive points, shifted by off. A single point is drawn as a dot.
func (c *Canvas) Polyline(pts []image.Point, off image.Point, col color.RGBA) {
	if len(pts) == 1 {
		q := pts[0].Add(off)
		c.SetPixel(int16(clampInt(q.X, -1, c.Width())), int16(clampInt(q.Y, -1, c.Height())), col)
		return
	}
	for k := 1; k < len(pts); k++ {
		a, b := pts[k-1].Add(off), pts[k].Add(off)
		c.Line(a.X, a.Y, b.X, b.Y, col)
	}
}

// Line draws a clipped line between two points in canvas coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 int, col color.RGBA) {
	w, h := c.Width(), c.Height()
	if w <= 0 || h <= 0 {
		return
	}
	cx0, cy0, cx1, cy1, ok := clipLineToRect(
		float64(x0), float64(y0), float64(x1), float64(y1),
		0, 0, float64(w-1), float64(h-1),
	)
	if !ok {
		return
	}
	c.bresenham(roundInt(cx0), roundInt(cy0), roundInt(cx1), roundInt(cy1), hal.RGB565(col.R, col.G, col.B))
}

func (c *Canvas) bresenham(x0, y0, x1, y1 int, pixel uint16) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.set(x0, y0, pixel)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// clipLineToRect is Liang-Barsky clipping against [xmin,xmax]x[ymin,ymax].
func clipLineToRect(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	dx := x1 - x0
	dy := y1 - y0
	u1 := 0.0
	u2 := 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := 0; i < 4; i++ {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > u2 {
				return 0, 0, 0, 0, false
			}
			if t > u1 {
				u1 = t
			}
		} else {
			if t < u1 {
				return 0, 0, 0, 0, false
			}
			if t < u2 {
				u2 = t
			}
		}
	}

	cx0 = clampFloat(x0+u1*dx, xmin, xmax)
	cy0 = clampFloat(y0+u1*dy, ymin, ymax)
	cx1 = clampFloat(x0+u2*dx, xmin, xmax)
	cy1 = clampFloat(y0+u2*dy, ymin, ymax)
	return cx0, cy0, cx1, cy1, true
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
