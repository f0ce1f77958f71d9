package app

import (
	"image"

	"mathgraph/hal"
	"mathgraph/render"
)

type tool uint8

const (
	toolMove tool = iota
	toolZoom
	toolSelect
	numTools
)

func (t tool) String() string {
	switch t {
	case toolMove:
		return "move"
	case toolZoom:
		return "zoom"
	case toolSelect:
		return "select"
	}
	return "unknown"
}

func (t tool) next() tool { return (t + 1) % numTools }

// A press that moves less than this is a click.
const clickSlop = 3

// drag tracks a left-button gesture that started inside the plot, in plot coordinates.
type drag struct {
	active bool
	start  image.Point
	last   image.Point
}

func (d drag) rect() image.Rectangle {
	return image.Rectangle{Min: d.start, Max: d.last}.Canon()
}

func (d drag) click() bool {
	dx, dy := d.last.X-d.start.X, d.last.Y-d.start.Y
	return absInt(dx) < clickSlop && absInt(dy) < clickSlop
}

func (a *app) handlePointer(ev hal.PointerEvent) {
	at := image.Pt(ev.X, ev.Y)
	inPlot := at.In(a.layout.plot)
	pt := at.Sub(a.layout.plot.Min)

	switch ev.Kind {
	case hal.PointerWheel:
		if !inPlot || ev.Wheel == 0 {
			return
		}
		steps := 1
		if ev.Wheel < 0 {
			steps = -1
		}
		a.plot.Zoom(steps, pt.X, pt.Y)
		a.probe = nil
		a.dirty = true

	case hal.PointerDown:
		if ev.Button != hal.ButtonLeft {
			return
		}
		if at.In(a.layout.sidebar) {
			a.clickSidebar(at.Sub(a.layout.sidebar.Min))
			return
		}
		if inPlot {
			a.drag = drag{active: true, start: pt, last: pt}
		}

	case hal.PointerMove:
		if !a.drag.active {
			return
		}
		dx, dy := pt.X-a.drag.last.X, pt.Y-a.drag.last.Y
		if dx == 0 && dy == 0 {
			return
		}
		if a.tool == toolMove {
			a.plot.Move(-dx, -dy)
			a.probe = nil
		}
		a.drag.last = pt
		a.dirty = true

	case hal.PointerUp:
		if !a.drag.active || ev.Button != hal.ButtonLeft {
			return
		}
		a.drag.last = pt
		a.release(a.drag)
		a.drag = drag{}
		a.dirty = true
	}
}

func (a *app) release(d drag) {
	switch a.tool {
	case toolZoom:
		if d.click() {
			a.plot.Zoom(1, d.last.X, d.last.Y)
		} else {
			r := d.rect()
			a.plot.SetPixelBounds(r.Min.X, r.Max.X, r.Min.Y, r.Max.Y)
		}
		a.probe = nil
	case toolSelect:
		if !d.click() {
			return
		}
		pt, text, err := a.plot.PointFromSelected(d.last.X)
		if err != nil {
			a.probe = nil
			a.report(err)
			return
		}
		a.probe = &render.Probe{Pixel: pt, Text: text}
		a.printf("%s", a.probe.Label())
	}
}

func (a *app) clickSidebar(pt image.Point) {
	row := pt.Y/render.LineHeight - sidebarHeaderRows
	if row < 0 || row >= a.plot.Len() {
		return
	}
	a.plot.Select(row)
	a.probe = nil
	a.dirty = true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
