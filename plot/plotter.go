package plot

import (
	"errors"
	"fmt"
	"image"

	"mathgraph/expr"
)

var (
	ErrInvalidSelection = errors.New("plot: no expression selected")
	ErrIndex            = errors.New("plot: expression index out of range")
)

// NoSelection is the selection index when nothing is selected.
const NoSelection = -1

const (
	defaultSpan         = 10
	defaultSamplingRate = 2
	defaultMarkerGap    = 100
	defaultVariable     = "x"
)

// Config describes a new plotter. Zero bounds default to [-10, 10] on both
// axes; zero sampling rate, marker gap and variable take their defaults.
type Config struct {
	Width, Height int

	XMin, XMax float64
	YMin, YMax float64

	SamplingRate float64
	MarkerGap    int

	// Variable is the name bound to x while sampling.
	Variable string
}

func (c Config) withDefaults() Config {
	if c.XMin == 0 && c.XMax == 0 {
		c.XMin, c.XMax = -defaultSpan, defaultSpan
	}
	if c.YMin == 0 && c.YMax == 0 {
		c.YMin, c.YMax = -defaultSpan, defaultSpan
	}
	if c.SamplingRate <= 0 {
		c.SamplingRate = defaultSamplingRate
	}
	if c.MarkerGap <= 0 {
		c.MarkerGap = defaultMarkerGap
	}
	if c.Variable == "" {
		c.Variable = defaultVariable
	}
	return c
}

// Entry is one plotted expression.
type Entry struct {
	Expr   *expr.Compiled
	Hidden bool
}

// TextPoint is a point formatted for display.
type TextPoint struct {
	X, Y string
}

// Plotter owns an ordered list of expressions together with their visibility,
// the current selection and the viewport they are drawn into.
type Plotter struct {
	ctx      *expr.Context
	variable string
	view     Viewport
	entries  []Entry
	selected int
}

// New creates a plotter whose expressions compile against ctx. The plot
// variable is added to ctx with value 0 unless it already exists.
func New(ctx *expr.Context, cfg Config) *Plotter {
	if ctx == nil {
		ctx = expr.NewContext()
	}
	cfg = cfg.withDefaults()
	ctx.AddVariable(cfg.Variable, 0)

	view := NewViewport(cfg.Width, cfg.Height, cfg.XMin, cfg.XMax, cfg.YMin, cfg.YMax)
	view.SamplingRate = cfg.SamplingRate
	view.MarkerGap = cfg.MarkerGap

	return &Plotter{
		ctx:      ctx,
		variable: cfg.Variable,
		view:     view,
		selected: NoSelection,
	}
}

func (p *Plotter) Context() *expr.Context { return p.ctx }
func (p *Plotter) Variable() string       { return p.variable }

// Viewport returns a copy of the current viewport.
func (p *Plotter) Viewport() Viewport { return p.view }

// AddExpression compiles text and appends it, returning its index.
func (p *Plotter) AddExpression(text string) (int, error) {
	c, err := expr.Compile(text, p.ctx)
	if err != nil {
		return -1, err
	}
	return p.AddCompiled(c), nil
}

// AddCompiled appends an already compiled expression and returns its index.
func (p *Plotter) AddCompiled(c *expr.Compiled) int {
	p.entries = append(p.entries, Entry{Expr: c})
	return len(p.entries) - 1
}

// RemoveExpression deletes entry i. Later entries shift down by one and the
// selection follows its entry; removing the selected entry clears it.
func (p *Plotter) RemoveExpression(i int) error {
	if err := p.check(i); err != nil {
		return err
	}
	p.entries = append(p.entries[:i], p.entries[i+1:]...)
	switch {
	case p.selected == i:
		p.selected = NoSelection
	case p.selected > i:
		p.selected--
	}
	return nil
}

// Len returns the number of entries.
func (p *Plotter) Len() int { return len(p.entries) }

// Entry returns entry i, or ErrIndex if i is out of range.
func (p *Plotter) Entry(i int) (Entry, error) {
	if err := p.check(i); err != nil {
		return Entry{}, err
	}
	return p.entries[i], nil
}

// SetHidden hides or shows entry i. Hidden entries keep their index.
func (p *Plotter) SetHidden(i int, hidden bool) error {
	if err := p.check(i); err != nil {
		return err
	}
	p.entries[i].Hidden = hidden
	return nil
}

// IsHidden reports whether entry i is hidden. Out of range indices report false
// rather than ErrIndex.
func (p *Plotter) IsHidden(i int) bool {
	return i >= 0 && i < len(p.entries) && p.entries[i].Hidden
}

// Select makes entry i the selected one, or returns ErrIndex.
func (p *Plotter) Select(i int) error {
	if err := p.check(i); err != nil {
		return err
	}
	p.selected = i
	return nil
}

func (p *Plotter) ClearSelection() { p.selected = NoSelection }

// IsSelected reports whether entry i is selected. Out of range indices report
// false rather than ErrIndex.
func (p *Plotter) IsSelected(i int) bool {
	return i != NoSelection && i == p.selected
}

// Selected returns the selected index; ok is false when nothing is selected.
func (p *Plotter) Selected() (int, bool) {
	return p.selected, p.selected != NoSelection
}

func (p *Plotter) check(i int) error {
	if i < 0 || i >= len(p.entries) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndex, i, len(p.entries))
	}
	return nil
}

// Samples returns the finite samples of entry i in pixel space. Hidden
// entries have none.
func (p *Plotter) Samples(i int) ([]image.Point, error) {
	if err := p.check(i); err != nil {
		return nil, err
	}
	e := p.entries[i]
	if e.Hidden {
		return nil, nil
	}
	return p.view.Samples(e.Expr, p.ctx, p.variable)
}

// Segments returns entry i split into continuous polylines. Hidden entries have none.
func (p *Plotter) Segments(i int) ([][]image.Point, error) {
	if err := p.check(i); err != nil {
		return nil, err
	}
	e := p.entries[i]
	if e.Hidden {
		return nil, nil
	}
	return p.view.Segments(e.Expr, p.ctx, p.variable)
}

// PointFromSelected evaluates the selected expression at pixel column px.
func (p *Plotter) PointFromSelected(px int) (image.Point, TextPoint, error) {
	if p.selected == NoSelection {
		return image.Point{}, TextPoint{}, ErrInvalidSelection
	}
	x := p.view.XFromPx(px)
	y, err := p.entries[p.selected].Expr.EvalAt(p.ctx, p.variable, x)
	if err != nil {
		return image.Point{}, TextPoint{}, err
	}
	return image.Pt(px, p.view.PxFromY(y)), TextPoint{X: FormatReal(x), Y: FormatReal(y)}, nil
}

// XMarkers and the view methods below forward to the viewport.
func (p *Plotter) XMarkers() []Marker     { return p.view.XMarkers() }
func (p *Plotter) YMarkers() []Marker     { return p.view.YMarkers() }
func (p *Plotter) Origin() image.Point    { return p.view.Origin() }
func (p *Plotter) Move(dx, dy int)        { p.view.Move(dx, dy) }
func (p *Plotter) Zoom(steps, px, py int) { p.view.Zoom(steps, px, py) }
func (p *Plotter) CenterOrigin()          { p.view.CenterOrigin() }
func (p *Plotter) Resize(w, h int)        { p.view.Resize(w, h) }

func (p *Plotter) SetBounds(xMin, xMax, yMin, yMax float64) error {
	return p.view.SetBounds(xMin, xMax, yMin, yMax)
}

func (p *Plotter) SetPixelBounds(x0, x1, y0, y1 int) bool {
	return p.view.SetPixelBounds(x0, x1, y0, y1)
}

func (p *Plotter) SetSamplingRate(r float64) error {
	return p.view.SetSamplingRate(r)
}

// SetMarkerGap sets the approximate pixel distance between axis markers.
// Non-positive values are ignored.
func (p *Plotter) SetMarkerGap(px int) {
	if px > 0 {
		p.view.MarkerGap = px
	}
}
