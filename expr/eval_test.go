package expr

import (
	"errors"
	"math"
	"testing"
)

func TestEval_Idempotent(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable("x", 3)
	c := mustCompile(t, "x^2 + sin(x)", ctx)

	first, err := c.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := c.Eval(ctx)
		if err != nil {
			t.Fatalf("Eval #%d: %v", i, err)
		}
		if got != first {
			t.Fatalf("Eval #%d = %v, want %v", i, got, first)
		}
	}
}

func TestEval_ReadsVariablesAtEvalTime(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable("a", 1)
	c := mustCompile(t, "a*10", ctx)

	ctx.SetVariable("a", 4)
	got, err := c.Eval(ctx)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != 40 {
		t.Fatalf("got %v, want 40", got)
	}
}

func TestEval_RemovedVariableFails(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable("k", 2)
	c := mustCompile(t, "k+1", ctx)

	ctx.RemoveVariable("k")
	_, err := c.Eval(ctx)
	if !errors.Is(err, ErrUnboundName) {
		t.Fatalf("err=%v, want ErrUnboundName", err)
	}
	if !errors.Is(err, ErrEval) {
		t.Fatalf("err=%v, want ErrEval", err)
	}
}

func TestEval_RemovedFunctionFails(t *testing.T) {
	ctx := NewContext()
	ctx.AddFunction("twice", func(v float64) float64 { return 2 * v })
	c := mustCompile(t, "twice(4)", ctx)
	if got, err := c.Eval(ctx); err != nil || got != 8 {
		t.Fatalf("Eval=%v,%v, want 8", got, err)
	}

	ctx.RemoveFunction("twice")
	if _, err := c.Eval(ctx); !errors.Is(err, ErrUnboundName) {
		t.Fatalf("err=%v, want ErrUnboundName", err)
	}
}

func TestEval_BindDoesNotMutateContext(t *testing.T) {
	ctx := NewContext()
	ctx.AddVariable("x", 0)
	c := mustCompile(t, "x*x", ctx)

	got, err := c.EvalAt(ctx, "x", 3)
	if err != nil {
		t.Fatalf("EvalAt: %v", err)
	}
	if got != 9 {
		t.Fatalf("got %v, want 9", got)
	}
	if v, _ := ctx.Variable("x"); v != 0 {
		t.Fatalf("x=%v after EvalAt, want 0", v)
	}
}

func TestEval_NilAndEmptyProgram(t *testing.T) {
	var c *Compiled
	if _, err := c.Eval(nil); !errors.Is(err, ErrMalformed) {
		t.Fatalf("nil program err=%v, want ErrMalformed", err)
	}
	if _, err := (&Compiled{}).Eval(nil); !errors.Is(err, ErrMalformed) {
		t.Fatalf("empty program err=%v, want ErrMalformed", err)
	}
}

func TestEval_MalformedProgram(t *testing.T) {
	bad := &Compiled{code: []instr{{op: opNumber, num: 1}, {op: opAdd}}}
	if _, err := bad.Eval(nil); !errors.Is(err, ErrMalformed) {
		t.Fatalf("err=%v, want ErrMalformed", err)
	}
	extra := &Compiled{code: []instr{{op: opNumber, num: 1}, {op: opNumber, num: 2}}}
	if _, err := extra.Eval(nil); !errors.Is(err, ErrMalformed) {
		t.Fatalf("err=%v, want ErrMalformed", err)
	}
}

func TestEval_DeepProgram(t *testing.T) {
	// Right-nested additions keep every left operand on the stack.
	src := "1"
	for i := 0; i < 19; i++ {
		src = "1+(" + src + ")"
	}
	c := mustCompile(t, src, nil)
	if c.depth <= 16 {
		t.Fatalf("depth=%d, want > 16", c.depth)
	}
	got, err := c.Eval(nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != 20 {
		t.Fatalf("got %v, want 20", got)
	}
}

func TestEval_DomainErrorsAreNaN(t *testing.T) {
	c := mustCompile(t, "sqrt(-1)", nil)
	got, err := c.Eval(nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !math.IsNaN(got) {
		t.Fatalf("got %v, want NaN", got)
	}
}
