package app

import (
	"fmt"
	"image/color"

	"mathgraph/hal"
	"mathgraph/render"
)

const sidebarHeaderRows = 1

var (
	colorPanel  = color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF}
	colorText   = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	colorDim    = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xFF}
	colorWhite  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorBorder = color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF}
)

func (a *app) render() {
	c := render.NewCanvas(a.fb)

	err := render.Draw(c.Region(a.layout.plot), a.plot, a.style, a.probe)
	// Curves that cannot be evaluated fail on every frame; report each distinct failure once.
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg != a.drawErr {
		a.drawErr = msg
		if err != nil {
			a.println(msg)
			hal.Logf(a.log, "mathgraph: draw: %v", err)
		}
	}
	if a.drag.active && a.tool == toolZoom {
		a.drawRubberBand(c.Region(a.layout.plot))
	}

	a.drawSidebar(c.Region(a.layout.sidebar))
	a.drawConsole(c.Region(a.layout.console))
	a.drawInput(c.Region(a.layout.input))
}

func (a *app) drawRubberBand(c *render.Canvas) {
	r := a.drag.rect()
	col := a.style.Selected
	c.Line(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y, col)
	c.Line(r.Max.X, r.Min.Y, r.Max.X, r.Max.Y, col)
	c.Line(r.Max.X, r.Max.Y, r.Min.X, r.Max.Y, col)
	c.Line(r.Min.X, r.Max.Y, r.Min.X, r.Min.Y, col)
}

func (a *app) drawSidebar(c *render.Canvas) {
	c.Fill(colorPanel)
	w, h := c.Width(), c.Height()
	c.Line(w-1, 0, w-1, h-1, colorBorder)

	cols := (w - 4) / render.TextWidth("0")
	c.Text(2, 0, clipRunes(fmt.Sprintf("f(%s)  [%s]", a.plot.Variable(), a.tool), cols), colorText)

	for i := 0; i < a.plot.Len(); i++ {
		y := (sidebarHeaderRows + i) * render.LineHeight
		if y+render.LineHeight > h {
			break
		}
		e, _ := a.plot.Entry(i)
		fg := a.style.CurveColor(i)
		mark := " "
		if e.Hidden {
			fg = colorDim
			mark = "-"
		}
		if a.plot.IsSelected(i) {
			c.FillRectangle(0, int16(y), int16(w-1), render.LineHeight, a.style.Selected)
			fg = colorWhite
		}
		c.Text(2, y, clipRunes(fmt.Sprintf("%s%d %s", mark, i, e.Expr.Source()), cols), fg)
	}
}

// drawConsole paints the margin above the terminal rows; the terminal draws
// its own text as lines are written.
func (a *app) drawConsole(c *render.Canvas) {
	w := c.Width()
	c.FillRectangle(0, 0, int16(w), consoleMargin, colorWhite)
	c.Line(0, 0, w-1, 0, colorBorder)
}

func (a *app) drawInput(c *render.Canvas) {
	c.Fill(colorPanel)
	prompt := "> "
	cw := render.TextWidth("0")
	cols := (c.Width()-4)/cw - len(prompt)

	// Scroll so the cursor stays visible.
	first := 0
	if cols > 0 && a.cursor > cols-1 {
		first = a.cursor - cols + 1
	}
	visible := a.input[first:]
	if cols > 0 && len(visible) > cols {
		visible = visible[:cols]
	}
	c.Text(2, 1, prompt+string(visible), colorText)

	x := 2 + render.TextWidth(prompt+string(a.input[first:a.cursor]))
	c.FillRectangle(int16(x), 1, 1, render.LineHeight, colorText)
}

func clipRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max == 1 {
		return string(rs[:1])
	}
	return string(rs[:max-1]) + "~"
}
