// Package session persists a plotter's expressions and viewport as YAML.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"mathgraph/expr"
	"mathgraph/plot"
)

const (
	DefaultWidth        = 800
	DefaultHeight       = 600
	DefaultSpan         = 10
	DefaultSamplingRate = 2
	DefaultMarkerGap    = 100
	DefaultVariable     = "x"
)

// Session is the on-disk form of a plot.
type Session struct {
	Width        int     `yaml:"width,omitempty"`
	Height       int     `yaml:"height,omitempty"`
	Bounds       *Bounds `yaml:"bounds,omitempty"`
	SamplingRate float64 `yaml:"sampling_rate,omitempty"`
	MarkerGap    int     `yaml:"marker_gap,omitempty"`
	Variable     string  `yaml:"variable,omitempty"`

	// Variables are extra context variables the expressions may refer to.
	Variables   map[string]float64 `yaml:"variables,omitempty"`
	Expressions []Expression       `yaml:"expressions"`
	Selected    *int               `yaml:"selected,omitempty"`
}

type Bounds struct {
	XMin float64 `yaml:"x_min"`
	XMax float64 `yaml:"x_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`
}

type Expression struct {
	Expr   string `yaml:"expr"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// ExprError reports an expression that failed to compile while applying a session.
type ExprError struct {
	Index int
	Expr  string
	Err   error
}

func (e *ExprError) Error() string {
	return fmt.Sprintf("session: expression %d %q: %v", e.Index, e.Expr, e.Err)
}

func (e *ExprError) Unwrap() error { return e.Err }

var ErrInvalid = errors.New("session: invalid")

// Default returns an empty session with every default filled in.
func Default() *Session {
	s := &Session{}
	s.fillDefaults()
	return s
}

func (s *Session) fillDefaults() {
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	if s.Bounds == nil {
		s.Bounds = &Bounds{XMin: -DefaultSpan, XMax: DefaultSpan, YMin: -DefaultSpan, YMax: DefaultSpan}
	}
	if s.SamplingRate <= 0 {
		s.SamplingRate = DefaultSamplingRate
	}
	if s.MarkerGap <= 0 {
		s.MarkerGap = DefaultMarkerGap
	}
	if s.Variable == "" {
		s.Variable = DefaultVariable
	}
}

// Decode reads a session from r. Missing fields take their defaults and an
// empty document yields Default(). Unknown keys are rejected.
func Decode(r io.Reader) (*Session, error) {
	var s Session
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	s.fillDefaults()
	return &s, nil
}

func Load(path string) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Config returns the plot configuration the session describes.
func (s *Session) Config() plot.Config {
	s.fillDefaults()
	return plot.Config{
		Width:        s.Width,
		Height:       s.Height,
		XMin:         s.Bounds.XMin,
		XMax:         s.Bounds.XMax,
		YMin:         s.Bounds.YMin,
		YMax:         s.Bounds.YMax,
		SamplingRate: s.SamplingRate,
		MarkerGap:    s.MarkerGap,
		Variable:     s.Variable,
	}
}

// NewPlotter builds a plotter from the session against ctx.
func (s *Session) NewPlotter(ctx *expr.Context) (*plot.Plotter, error) {
	if ctx == nil {
		ctx = expr.NewContext()
	}
	p := plot.New(ctx, s.Config())
	if err := s.Apply(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Apply defines the session variables in p's context, sets the viewport and
// appends the session's expressions. It stops at the first expression that
// fails to compile and returns an *ExprError for it.
func (s *Session) Apply(p *plot.Plotter) error {
	s.fillDefaults()
	ctx := p.Context()
	for name, v := range s.Variables {
		if !ctx.AddVariable(name, v) {
			ctx.SetVariable(name, v)
		}
	}

	b := s.Bounds
	if err := p.SetBounds(b.XMin, b.XMax, b.YMin, b.YMax); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := p.SetSamplingRate(s.SamplingRate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	p.SetMarkerGap(s.MarkerGap)

	base := p.Len()
	for i, e := range s.Expressions {
		idx, err := p.AddExpression(e.Expr)
		if err != nil {
			return &ExprError{Index: i, Expr: e.Expr, Err: err}
		}
		if e.Hidden {
			p.SetHidden(idx, true)
		}
	}
	if s.Selected != nil {
		if err := p.Select(base + *s.Selected); err != nil {
			return fmt.Errorf("%w: selected: %v", ErrInvalid, err)
		}
	}
	return nil
}

// FromPlotter captures p's viewport, expressions, selection and the context
// variables other than the plot variable.
func FromPlotter(p *plot.Plotter) *Session {
	v := p.Viewport()
	s := &Session{
		Width:        v.PixelWidth,
		Height:       v.PixelHeight,
		Bounds:       &Bounds{XMin: v.XMin, XMax: v.XMax, YMin: v.YMin, YMax: v.YMax},
		SamplingRate: v.SamplingRate,
		MarkerGap:    v.MarkerGap,
		Variable:     p.Variable(),
	}

	ctx := p.Context()
	for _, name := range ctx.Variables() {
		if name == p.Variable() {
			continue
		}
		if s.Variables == nil {
			s.Variables = make(map[string]float64)
		}
		s.Variables[name], _ = ctx.Variable(name)
	}

	for i := 0; i < p.Len(); i++ {
		e, _ := p.Entry(i)
		s.Expressions = append(s.Expressions, Expression{Expr: e.Expr.Source(), Hidden: e.Hidden})
	}
	if i, ok := p.Selected(); ok {
		s.Selected = &i
	}
	return s
}

func (s *Session) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	return enc.Close()
}

// Save writes the session to path, replacing it atomically.
func (s *Session) Save(path string) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}
