// Command mgplot renders expressions to a PNG or SVG file without opening a window.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mathgraph/expr"
	"mathgraph/hal"
	"mathgraph/internal/buildinfo"
	"mathgraph/internal/flagvals"
	"mathgraph/internal/session"
	"mathgraph/plot"
	"mathgraph/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	session  string
	exprs    flagvals.Strings
	size     flagvals.Size
	bounds   flagvals.Bounds
	sampling float64
	gap      int
	variable string
	selected int
	at       int
	out      string
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mgplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var o options
	fs.StringVar(&o.session, "session", "", "Session file to start from.")
	fs.Var(&o.exprs, "expr", "Expression to plot (repeatable).")
	fs.Var(&o.size, "size", "Image size WxH (default from the session, 800x600).")
	fs.Var(&o.bounds, "bounds", "View bounds xmin,xmax,ymin,ymax.")
	fs.Float64Var(&o.sampling, "sampling", 0, "Pixels per sample.")
	fs.IntVar(&o.gap, "gap", 0, "Approximate pixels between axis markers.")
	fs.StringVar(&o.variable, "var", "", "Plot variable name.")
	fs.IntVar(&o.selected, "select", -1, "Index of the expression to highlight.")
	fs.IntVar(&o.at, "at", -1, "Probe the selected expression at this pixel column.")
	fs.StringVar(&o.out, "o", "plot.png", "Output file, .png or .svg.")
	version := fs.Bool("version", false, "Print the version and exit.")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *version {
		fmt.Fprintln(stdout, buildinfo.String())
		return 0
	}

	if err := plotFile(o, stdout, stderr); err != nil {
		var se *session.ExprError
		var ce *expr.CompileError
		if errors.As(err, &se) && errors.As(err, &ce) {
			fmt.Fprintf(stderr, "  %s\n  %s\n", ce.Source, ce.Caret())
		}
		fmt.Fprintf(stderr, "mgplot: %v\n", err)
		return 1
	}
	return 0
}

func plotFile(o options, stdout, stderr io.Writer) error {
	if ext := strings.ToLower(filepath.Ext(o.out)); ext != ".png" && ext != ".svg" {
		return fmt.Errorf("unsupported output format %q", ext)
	}

	s := session.Default()
	if o.session != "" {
		var err error
		if s, err = session.Load(o.session); err != nil {
			return err
		}
	}
	if o.size.W > 0 {
		s.Width, s.Height = o.size.W, o.size.H
	}
	if o.bounds.Given {
		s.Bounds = &session.Bounds{XMin: o.bounds.XMin, XMax: o.bounds.XMax, YMin: o.bounds.YMin, YMax: o.bounds.YMax}
	}
	if o.sampling > 0 {
		s.SamplingRate = o.sampling
	}
	if o.gap > 0 {
		s.MarkerGap = o.gap
	}
	if o.variable != "" {
		s.Variable = o.variable
	}
	for _, e := range o.exprs {
		s.Expressions = append(s.Expressions, session.Expression{Expr: e})
	}

	p, err := s.NewPlotter(nil)
	if err != nil {
		return err
	}
	if o.selected >= 0 {
		if err := p.Select(o.selected); err != nil {
			return err
		}
	}

	var probe *render.Probe
	if o.at >= 0 {
		pt, text, err := p.PointFromSelected(o.at)
		if err != nil {
			return fmt.Errorf("probe at %d: %w", o.at, err)
		}
		probe = &render.Probe{Pixel: pt, Text: text}
		fmt.Fprintln(stdout, probe.Label())
	}

	f, err := os.Create(o.out)
	if err != nil {
		return err
	}
	werr := write(f, o.out, p, probe, stderr)
	if err := f.Close(); werr == nil {
		werr = err
	}
	return werr
}

// write renders into w in the format the file extension names. Curves that
// fail to evaluate are reported and left out of the picture.
func write(w io.Writer, name string, p *plot.Plotter, probe *render.Probe, stderr io.Writer) error {
	st := render.DefaultStyle()
	warn := func(err error) {
		if err != nil {
			fmt.Fprintf(stderr, "mgplot: warning: %v\n", err)
		}
	}

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".svg":
		err := render.WriteSVG(w, p, st, probe)
		if isWriteError(err) {
			return err
		}
		warn(err)
		return nil
	case ".png":
		v := p.Viewport()
		fb := hal.NewFramebuffer(v.PixelWidth, v.PixelHeight)
		warn(render.Draw(render.NewCanvas(fb), p, st, probe))
		return png.Encode(w, fb.Image())
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}

// isWriteError reports whether err carries something other than curve evaluation failures.
func isWriteError(err error) bool {
	return err != nil && !errors.Is(err, expr.ErrEval)
}
