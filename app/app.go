package app

import (
	"errors"
	"image"

	"mathgraph/expr"
	"mathgraph/hal"
	"mathgraph/internal/session"
	"mathgraph/plot"
	"mathgraph/render"

	"tinygo.org/x/tinyterm"
)

const (
	defaultSidebarWidth = 180
	defaultConsoleRows  = 4

	maxConsoleLines = 200
	consoleMargin   = 2
	maxInputRunes   = 256
)

var ErrNoDisplay = errors.New("app: no framebuffer")

// Config configures the interactive plotter.
type Config struct {
	// Session is the initial state. Nil starts empty with default bounds.
	Session *session.Session
	// SessionPath is where Ctrl+S saves. Empty disables saving.
	SessionPath string
	// Expressions are appended after the session's own.
	Expressions []string

	SidebarWidth int
	ConsoleRows  int
}

type app struct {
	log   hal.Logger
	fb    hal.Framebuffer
	keys  <-chan hal.KeyEvent
	ptr   <-chan hal.PointerEvent
	cfg   Config
	style render.Style

	layout layout
	plot   *plot.Plotter
	home   session.Bounds

	input  []rune
	cursor int

	term    *tinyterm.Terminal
	console []string
	drawErr string

	tool  tool
	drag  drag
	probe *render.Probe

	dirty bool
	err   error
}

// New builds the application on h and returns its step function. The host
// runner calls it once per frame; it handles pending input and redraws when
// something changed.
func New(h hal.HAL, cfg Config) func() error {
	a, err := newApp(h, cfg)
	if err != nil {
		hal.Logf(h.Logger(), "mathgraph: %v", err)
		return func() error { return err }
	}
	return a.step
}

func newApp(h hal.HAL, cfg Config) (*app, error) {
	if cfg.SidebarWidth <= 0 {
		cfg.SidebarWidth = defaultSidebarWidth
	}
	if cfg.ConsoleRows <= 0 {
		cfg.ConsoleRows = defaultConsoleRows
	}
	a := &app{
		log:   h.Logger(),
		cfg:   cfg,
		style: render.DefaultStyle(),
		dirty: true,
	}

	if d := h.Display(); d != nil {
		a.fb = d.Framebuffer()
	}
	if a.fb == nil {
		return nil, ErrNoDisplay
	}
	if in := h.Input(); in != nil {
		if k := in.Keyboard(); k != nil {
			a.keys = k.Events()
		}
		if p := in.Pointer(); p != nil {
			a.ptr = p.Events()
		}
	}

	a.layout = newLayout(a.fb.Width(), a.fb.Height(), cfg.SidebarWidth, cfg.ConsoleRows)
	a.term = newTerminal(render.NewCanvas(a.fb).Region(a.layout.terminal()))

	s := cfg.Session
	if s == nil {
		s = session.Default()
	}
	a.plot = plot.New(expr.NewContext(), s.Config())
	if err := s.Apply(a.plot); err != nil {
		a.report(err)
	}
	a.plot.Resize(a.layout.plot.Dx(), a.layout.plot.Dy())
	v := a.plot.Viewport()
	a.home = session.Bounds{XMin: v.XMin, XMax: v.XMax, YMin: v.YMin, YMax: v.YMax}

	for _, src := range cfg.Expressions {
		a.addExpression(src)
	}

	hal.Logf(a.log, "mathgraph: %dx%d, %d expressions", a.fb.Width(), a.fb.Height(), a.plot.Len())
	return a, nil
}

func (a *app) step() (err error) {
	if a.err != nil {
		return a.err
	}
	defer a.recoverPanic(&err)

	a.pollKeys()
	a.pollPointer()

	if !a.dirty {
		return nil
	}
	a.dirty = false
	a.render()
	return a.fb.Present()
}

func (a *app) pollKeys() {
	if a.keys == nil {
		return
	}
	for {
		select {
		case ev := <-a.keys:
			if ev.Press {
				a.handleKey(ev)
			}
		default:
			return
		}
	}
}

func (a *app) pollPointer() {
	if a.ptr == nil {
		return
	}
	for {
		select {
		case ev := <-a.ptr:
			a.handlePointer(ev)
		default:
			return
		}
	}
}

// layout splits the framebuffer into the sidebar and plot on top and the
// console with the input line underneath.
type layout struct {
	sidebar image.Rectangle
	plot    image.Rectangle
	console image.Rectangle
	input   image.Rectangle
}

func newLayout(w, h, sidebar, rows int) layout {
	if sidebar > w/2 {
		sidebar = w / 2
	}
	line := render.LineHeight + 2
	inputTop := h - line
	consoleTop := inputTop - rows*render.LineHeight - consoleMargin
	if consoleTop < 0 {
		consoleTop = 0
	}
	return layout{
		sidebar: image.Rect(0, 0, sidebar, consoleTop),
		plot:    image.Rect(sidebar, 0, w, consoleTop),
		console: image.Rect(0, consoleTop, w, inputTop),
		input:   image.Rect(0, inputTop, w, h),
	}
}

// terminal is the part of the console below its top margin.
func (l layout) terminal() image.Rectangle {
	r := l.console
	r.Min.Y += consoleMargin
	return r
}

func newTerminal(c *render.Canvas) *tinyterm.Terminal {
	c.Fill(tinyterm.ColorBlack.RGBA())
	t := tinyterm.NewTerminal(c)
	t.Configure(&tinyterm.Config{
		Font:              render.Font,
		FontHeight:        render.LineHeight,
		FontOffset:        render.Ascent,
		UseSoftwareScroll: true,
	})
	return t
}
