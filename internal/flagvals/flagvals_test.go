package flagvals

import (
	"flag"
	"io"
	"testing"
)

func TestSize(t *testing.T) {
	var s Size
	if err := s.Set("640x480"); err != nil || s.W != 640 || s.H != 480 {
		t.Fatalf("got=%v err=%v, want 640x480", s, err)
	}
	for _, bad := range []string{"640", "0x10", "ax3", "10x-1"} {
		if err := s.Set(bad); err == nil {
			t.Fatalf("Set(%q) accepted", bad)
		}
	}
	if s.String() != "640x480" {
		t.Fatalf("String()=%q", s.String())
	}
}

func TestBounds(t *testing.T) {
	var b Bounds
	if b.String() != "" {
		t.Fatalf("unset bounds String()=%q", b.String())
	}
	if err := b.Set("-1, 2.5,-3,4"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !b.Given || b.XMin != -1 || b.XMax != 2.5 || b.YMin != -3 || b.YMax != 4 {
		t.Fatalf("got=%+v", b)
	}
	for _, bad := range []string{"1,2,3", "2,1,0,1", "a,b,c,d"} {
		if err := b.Set(bad); err == nil {
			t.Fatalf("Set(%q) accepted", bad)
		}
	}
}

func TestRepeatable(t *testing.T) {
	fs := flag.NewFlagSet("t", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var exprs Strings
	var xs Floats
	fs.Var(&exprs, "expr", "")
	fs.Var(&xs, "x", "")
	if err := fs.Parse([]string{"-expr", "x^2", "-expr", "sin(x)", "-x", "1,2", "-x", "3"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(exprs) != 2 || exprs[1] != "sin(x)" {
		t.Fatalf("exprs=%q", exprs)
	}
	if len(xs) != 3 || xs[2] != 3 {
		t.Fatalf("xs=%v", xs)
	}
	if err := xs.Set("1,z"); err == nil {
		t.Fatalf("bad number accepted")
	}
}
