// Package flagvals holds flag.Value types shared by the command-line tools.
package flagvals

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is a "WxH" pixel size.
type Size struct {
	W, H int
}

func (s *Size) String() string {
	if s == nil {
		return ""
	}
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

func (s *Size) Set(v string) error {
	ws, hs, ok := strings.Cut(strings.ToLower(v), "x")
	if !ok {
		return fmt.Errorf("size %q: want WxH", v)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return fmt.Errorf("size %q: %w", v, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return fmt.Errorf("size %q: %w", v, err)
	}
	if w <= 0 || h <= 0 {
		return fmt.Errorf("size %q: must be positive", v)
	}
	s.W, s.H = w, h
	return nil
}

// Bounds is "xmin,xmax,ymin,ymax". Set marks it as given.
type Bounds struct {
	XMin, XMax, YMin, YMax float64
	Given                  bool
}

func (b *Bounds) String() string {
	if b == nil || !b.Given {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g,%g", b.XMin, b.XMax, b.YMin, b.YMax)
}

func (b *Bounds) Set(v string) error {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return fmt.Errorf("bounds %q: want xmin,xmax,ymin,ymax", v)
	}
	var f [4]float64
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("bounds %q: %w", v, err)
		}
		f[i] = x
	}
	if !(f[0] < f[1]) || !(f[2] < f[3]) {
		return fmt.Errorf("bounds %q: min must be below max", v)
	}
	b.XMin, b.XMax, b.YMin, b.YMax = f[0], f[1], f[2], f[3]
	b.Given = true
	return nil
}

// Strings collects every occurrence of a repeatable flag.
type Strings []string

func (s *Strings) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, "; ")
}

func (s *Strings) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Floats is a comma-separated list of numbers.
type Floats []float64

func (f *Floats) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(*f))
	for i, v := range *f {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (f *Floats) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		x, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return fmt.Errorf("number %q: %w", p, err)
		}
		*f = append(*f, x)
	}
	return nil
}
