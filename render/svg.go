package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"mathgraph/plot"
)

// WriteSVG writes the same picture Draw produces as an SVG document sized to
// the plotter's viewport.
func WriteSVG(w io.Writer, p *plot.Plotter, st Style, probe *Probe) error {
	ew := &errWriter{w: w}
	v := p.Viewport()
	width, height := v.PixelWidth, v.PixelHeight

	doc := svg.New(ew)
	doc.Start(width, height)
	doc.Title("mathgraph")
	doc.Rect(0, 0, width, height, "fill:"+hexColor(st.Background))

	ax, ay := axisPosition(p.Origin(), width, height)
	a, t := st.ArrowLen, st.TickLen

	doc.Gstyle("stroke:" + hexColor(st.Axis) + ";stroke-width:1;fill:none")
	doc.Line(0, ay, width-1, ay)
	doc.Line(width-1, ay, width-1-a, ay-a)
	doc.Line(width-1, ay, width-1-a, ay+a)
	doc.Line(ax, 0, ax, height-1)
	doc.Line(ax, 0, ax-a, a)
	doc.Line(ax, 0, ax+a, a)
	xms, yms := p.XMarkers(), p.YMarkers()
	for _, m := range xms {
		doc.Line(m.Pixel, ay-t, m.Pixel, ay+t)
	}
	for _, m := range yms {
		doc.Line(ax-t, m.Pixel, ax+t, m.Pixel)
	}
	doc.Gend()

	doc.Gstyle("font-family:monospace;font-size:11px;fill:" + hexColor(st.Label))
	for _, m := range xms {
		doc.Text(m.Pixel, ay+t+lineHeight, m.Label, "text-anchor:middle")
	}
	for _, m := range yms {
		doc.Text(ax+t+3, m.Pixel+glyphAscent/2, m.Label)
	}
	doc.Gend()

	var errs []error
	sel, hasSel := p.Selected()
	for i := 0; i < p.Len(); i++ {
		if hasSel && i == sel {
			continue
		}
		if err := svgCurve(doc, p, i, st.CurveColor(i), 1); err != nil {
			errs = append(errs, err)
		}
	}
	if hasSel {
		if err := svgCurve(doc, p, sel, st.Selected, 2); err != nil {
			errs = append(errs, err)
		}
	}

	if probe != nil {
		x, y := probe.Pixel.X, probe.Pixel.Y
		cross := "stroke:" + hexColor(st.Crosshair) + ";stroke-dasharray:4,3"
		doc.Line(x, 0, x, height-1, cross)
		doc.Line(0, y, width-1, y, cross)
		doc.Circle(x, y, 3, "fill:"+hexColor(st.Selected))
		doc.Text(x+6, y-6, probe.Label(), "font-family:monospace;font-size:11px;fill:"+hexColor(st.Label))
	}

	doc.End()
	if ew.err != nil {
		return ew.err
	}
	return errors.Join(errs...)
}

func svgCurve(doc *svg.SVG, p *plot.Plotter, i int, col color.RGBA, width int) error {
	segs, err := p.Segments(i)
	if err != nil {
		return fmt.Errorf("expression %d: %w", i, err)
	}
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d", hexColor(col), width)
	for _, seg := range segs {
		xs := make([]int, len(seg))
		ys := make([]int, len(seg))
		for k, pt := range seg {
			xs[k], ys[k] = pt.X, pt.Y
		}
		doc.Polyline(xs, ys, style)
	}
	return nil
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
