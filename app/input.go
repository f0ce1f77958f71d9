package app

import (
	"errors"
	"fmt"
	"strings"

	"mathgraph/expr"
	"mathgraph/hal"
	"mathgraph/internal/session"
	"mathgraph/plot"
)

// Sampling rates F3 cycles through, in pixels per sample.
var samplingRates = [...]float64{1, 2, 4, 8}

const (
	ctrlA = 0x01
	ctrlC = 0x03
	ctrlE = 0x05
	ctrlS = 0x13
	ctrlU = 0x15
	ctrlW = 0x17
)

func (a *app) handleKey(ev hal.KeyEvent) {
	a.dirty = true

	switch ev.Code {
	case hal.KeyEnter:
		a.submit()
	case hal.KeyUp:
		a.moveSelection(-1)
	case hal.KeyDown:
		a.moveSelection(1)
	case hal.KeyEscape:
		a.plot.ClearSelection()
		a.probe = nil
	case hal.KeyDelete:
		if len(a.input) > 0 {
			a.deleteForward()
			return
		}
		a.removeSelected()
	case hal.KeyBackspace:
		a.backspace()
	case hal.KeyTab:
		a.tool = a.tool.next()
		a.drag = drag{}
		a.printf("tool: %s", a.tool)
	case hal.KeyLeft:
		if len(a.input) == 0 {
			a.pan(-1)
		} else if a.cursor > 0 {
			a.cursor--
		}
	case hal.KeyRight:
		if len(a.input) == 0 {
			a.pan(1)
		} else if a.cursor < len(a.input) {
			a.cursor++
		}
	case hal.KeyHome:
		if len(a.input) == 0 {
			a.zoomCentre(1)
		} else {
			a.cursor = 0
		}
	case hal.KeyEnd:
		if len(a.input) == 0 {
			a.zoomCentre(-1)
		} else {
			a.cursor = len(a.input)
		}
	case hal.KeyF1:
		a.toggleHidden()
	case hal.KeyF2:
		a.plot.CenterOrigin()
		a.probe = nil
	case hal.KeyF3:
		a.cycleSampling()
	case hal.KeyF4:
		a.resetView()
	case hal.KeyUnknown:
		a.handleRune(ev.Rune)
	default:
		a.dirty = false
	}
}

func (a *app) handleRune(r rune) {
	switch r {
	case ctrlA:
		a.cursor = 0
	case ctrlE:
		a.cursor = len(a.input)
	case ctrlC, ctrlU:
		a.setInput("")
	case ctrlW:
		a.deleteWord()
	case ctrlS:
		a.save()
	default:
		if r >= 0x20 && r != 0x7f {
			a.insertRune(r)
		}
	}
}

func (a *app) insertRune(r rune) {
	if len(a.input) >= maxInputRunes {
		return
	}
	a.input = append(a.input, 0)
	copy(a.input[a.cursor+1:], a.input[a.cursor:])
	a.input[a.cursor] = r
	a.cursor++
}

func (a *app) backspace() {
	if a.cursor <= 0 || len(a.input) == 0 {
		return
	}
	copy(a.input[a.cursor-1:], a.input[a.cursor:])
	a.input = a.input[:len(a.input)-1]
	a.cursor--
}

func (a *app) deleteForward() {
	if a.cursor < 0 || a.cursor >= len(a.input) {
		return
	}
	copy(a.input[a.cursor:], a.input[a.cursor+1:])
	a.input = a.input[:len(a.input)-1]
}

func (a *app) deleteWord() {
	start := a.cursor
	for start > 0 && a.input[start-1] == ' ' {
		start--
	}
	for start > 0 && a.input[start-1] != ' ' {
		start--
	}
	a.input = append(a.input[:start], a.input[a.cursor:]...)
	a.cursor = start
}

func (a *app) setInput(s string) {
	a.input = []rune(s)
	a.cursor = len(a.input)
}

// submit compiles the input line. On failure the text stays so it can be fixed.
func (a *app) submit() {
	line := strings.TrimSpace(string(a.input))
	if line == "" {
		return
	}
	if a.addExpression(line) {
		a.setInput("")
	}
}

func (a *app) addExpression(src string) bool {
	i, err := a.plot.AddExpression(src)
	if err != nil {
		a.report(err)
		return false
	}
	a.printf("[%d] %s", i, src)
	hal.Logf(a.log, "mathgraph: added %d: %s", i, src)
	return true
}

func (a *app) moveSelection(d int) {
	n := a.plot.Len()
	if n == 0 {
		return
	}
	i, ok := a.plot.Selected()
	switch {
	case !ok && d < 0:
		i = n - 1
	case !ok:
		i = 0
	default:
		i = clampInt(i+d, 0, n-1)
	}
	a.plot.Select(i)
	a.probe = nil
}

func (a *app) removeSelected() {
	i, ok := a.plot.Selected()
	if !ok {
		a.report(plot.ErrInvalidSelection)
		return
	}
	e, _ := a.plot.Entry(i)
	if err := a.plot.RemoveExpression(i); err != nil {
		a.report(err)
		return
	}
	a.probe = nil
	a.printf("removed %s", e.Expr.Source())
}

func (a *app) toggleHidden() {
	i, ok := a.plot.Selected()
	if !ok {
		a.report(plot.ErrInvalidSelection)
		return
	}
	a.plot.SetHidden(i, !a.plot.IsHidden(i))
	a.probe = nil
}

// pan shifts the view a tenth of the plot width.
func (a *app) pan(dir int) {
	a.plot.Move(dir*a.layout.plot.Dx()/10, 0)
	a.probe = nil
}

func (a *app) zoomCentre(steps int) {
	a.plot.Zoom(steps, -1, -1)
	a.probe = nil
}

func (a *app) cycleSampling() {
	cur := a.plot.Viewport().SamplingRate
	next := samplingRates[0]
	for k, r := range samplingRates {
		if r == cur {
			next = samplingRates[(k+1)%len(samplingRates)]
			break
		}
	}
	if err := a.plot.SetSamplingRate(next); err != nil {
		a.report(err)
		return
	}
	a.printf("sampling: %s px", plot.FormatReal(next))
}

func (a *app) resetView() {
	b := a.home
	if err := a.plot.SetBounds(b.XMin, b.XMax, b.YMin, b.YMax); err != nil {
		a.report(err)
		return
	}
	a.probe = nil
}

func (a *app) save() {
	if a.cfg.SessionPath == "" {
		a.printf("no session file")
		return
	}
	if err := session.FromPlotter(a.plot).Save(a.cfg.SessionPath); err != nil {
		a.report(err)
		return
	}
	a.printf("saved %s", a.cfg.SessionPath)
	hal.Logf(a.log, "mathgraph: saved session to %s", a.cfg.SessionPath)
}

// report prints err to the console. Compile errors show the source with a
// caret run under the failing span.
func (a *app) report(err error) {
	var ce *expr.CompileError
	if errors.As(err, &ce) {
		a.println(ce.Source)
		a.println(ce.Caret())
	}
	a.writeConsole(err.Error(), sgrError)
	hal.Logf(a.log, "mathgraph: %v", err)
}

func (a *app) printf(format string, args ...any) {
	a.println(fmt.Sprintf(format, args...))
}

func (a *app) println(s string) { a.writeConsole(s, "") }

// SGR sequences for console text.
const (
	sgrError = "\x1b[31m"
	sgrReset = "\x1b[0m"
)

// writeConsole appends s to the console history and the terminal. The
// terminal cursor stays at the end of the last line so no blank row is
// left at the bottom.
func (a *app) writeConsole(s, sgr string) {
	a.dirty = true
	if a.term != nil {
		if len(a.console) > 0 {
			_ = a.term.WriteByte('\n')
		}
		if sgr != "" {
			fmt.Fprint(a.term, sgr, s, sgrReset)
		} else {
			fmt.Fprint(a.term, s)
		}
	}
	if len(a.console) >= maxConsoleLines {
		copy(a.console, a.console[1:])
		a.console[len(a.console)-1] = s
		return
	}
	a.console = append(a.console, s)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
