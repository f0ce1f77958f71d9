package expr

import (
	"errors"
	"math"
	"testing"
)

func mustCompile(t *testing.T, src string, ctx *Context) *Compiled {
	t.Helper()
	c, err := Compile(src, ctx)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return c
}

func TestCompile_Values(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable("x", 5)

	tests := []struct {
		src  string
		want float64
	}{
		{"2+3*4", 14},
		{"(2+3)*4", 20},
		{"2^3^2", 512},
		{"-x", -5},
		{"-x^2", -25},
		{"2^-1", 0.5},
		{"-2*3", -6},
		{"-2-3", -5},
		{"+4", 4},
		{"10-4-3", 3},
		{"16/4/2", 2},
		{"sqrt(16)+floor(2.7)", 6},
		{"cos(0)", 1},
		{"sin(pi/2)", 1},
		{"ln(e)", 1},
		{"log10(1000)", 3},
		{"2*(x-1)", 8},
		{".5+1.", 1.5},
		{"ceil(-0.5)", 0},
	}
	for _, tt := range tests {
		c := mustCompile(t, tt.src, ctx)
		got, err := c.Eval(ctx)
		if err != nil {
			t.Fatalf("Eval(%q): %v", tt.src, err)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("%q = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestCompile_Postfix(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable("x", 0)

	tests := []struct {
		src  string
		want string
	}{
		{"2+3*4", "2 3 4 * +"},
		{"-x^2", "x 2 ^ neg"},
		{"sin(2*x)", "2 x * sin"},
		{"2^3^2", "2 3 2 ^ ^"},
		{"1-2+3", "1 2 - 3 +"},
	}
	for _, tt := range tests {
		if got := mustCompile(t, tt.src, ctx).String(); got != tt.want {
			t.Fatalf("%q postfix=%q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestCompile_ConstantsInlinedAtFullPrecision(t *testing.T) {
	c := mustCompile(t, "pi", nil)
	got, err := c.Eval(nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != math.Pi {
		t.Fatalf("pi=%v, want %v", got, math.Pi)
	}
}

func TestCompile_Errors(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable("x", 1)

	tests := []struct {
		src      string
		kind     ErrorKind
		sentinel error
		pos, len int
	}{
		{"foo(2)", UndefinedName, ErrUndefinedName, 0, 3},
		{"1 + bar", UndefinedName, ErrUndefinedName, 4, 3},
		{"2 3", OperandOverflow, ErrOperandOverflow, 0, 3},
		{"2(3)", OperandOverflow, ErrOperandOverflow, 0, 4},
		{"2+", OperandUnderflow, ErrOperandUnderflow, 0, 2},
		{"", OperandUnderflow, ErrOperandUnderflow, 0, 0},
		{"sin()", OperandUnderflow, ErrOperandUnderflow, 0, 5},
		{"(-)2", OperandUnderflow, ErrOperandUnderflow, 0, 4},
		{"(2+3", ParenthesisMismatch, ErrParenthesisMismatch, 0, 4},
		{"2+3)", ParenthesisMismatch, ErrParenthesisMismatch, 3, 1},
		{"*2", InvalidUnaryOperator, ErrInvalidUnaryOperator, 0, 1},
		{"2*/3", InvalidUnaryOperator, ErrInvalidUnaryOperator, 2, 1},
		{"~2", InvalidCharacter, ErrInvalidCharacter, 0, 1},
		{"2 $ 3", InvalidCharacter, ErrInvalidCharacter, 2, 1},
		{"1.2.3", InvalidNumber, ErrInvalidNumber, 0, 5},
		{"x + .", InvalidNumber, ErrInvalidNumber, 4, 1},
	}
	for _, tt := range tests {
		c, err := Compile(tt.src, ctx)
		if c != nil {
			t.Fatalf("%q: got a program on error", tt.src)
		}
		var ce *CompileError
		if !errors.As(err, &ce) {
			t.Fatalf("%q: err=%v, want *CompileError", tt.src, err)
		}
		if ce.Kind != tt.kind {
			t.Fatalf("%q: kind=%v, want %v", tt.src, ce.Kind, tt.kind)
		}
		if pos, n := ce.Span(); pos != tt.pos || n != tt.len {
			t.Fatalf("%q: span=(%d,%d), want (%d,%d)", tt.src, pos, n, tt.pos, tt.len)
		}
		if !errors.Is(err, ErrInvalidExpression) {
			t.Fatalf("%q: errors.Is(ErrInvalidExpression)=false", tt.src)
		}
		if !errors.Is(err, tt.sentinel) {
			t.Fatalf("%q: errors.Is(%v)=false", tt.src, tt.sentinel)
		}
	}
}

func TestCompile_UndefinedNameHint(t *testing.T) {
	_, err := Compile("foo(2)", nil)
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("err=%v, want *CompileError", err)
	}
	if ce.Hint != "floor" {
		t.Fatalf("hint=%q, want %q", ce.Hint, "floor")
	}
	if ce.Text() != "foo" {
		t.Fatalf("text=%q, want %q", ce.Text(), "foo")
	}
	want := `undefined name "foo" at 0 (did you mean "floor"?)`
	if ce.Error() != want {
		t.Fatalf("Error()=%q, want %q", ce.Error(), want)
	}
}

func TestCompileError_Caret(t *testing.T) {
	_, err := Compile("1 + bar", nil)
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("err=%v, want *CompileError", err)
	}
	if got := ce.Caret(); got != "    ^^^" {
		t.Fatalf("caret=%q, want %q", got, "    ^^^")
	}
}

func TestCompile_TildeIsNotUnaryMinus(t *testing.T) {
	if _, err := Compile("~3", nil); !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("err=%v, want ErrInvalidCharacter", err)
	}
}
