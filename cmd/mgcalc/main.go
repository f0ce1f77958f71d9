// Command mgcalc compiles and evaluates expressions from the command line or
// an interactive prompt.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"mathgraph/expr"
	"mathgraph/internal/buildinfo"
	"mathgraph/internal/flagvals"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mgcalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		src     = fs.String("e", "", "Expression to evaluate once. Without it, lines are read from stdin.")
		name    = fs.String("var", "x", "Variable bound to each -x value.")
		postfix = fs.Bool("postfix", false, "Print the compiled postfix form.")
		quiet   = fs.Bool("q", false, "No prompt in interactive mode.")
		version = fs.Bool("version", false, "Print the version and exit.")
		xs      flagvals.Floats
	)
	fs.Var(&xs, "x", "Comma-separated values for -var (repeatable).")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *version {
		fmt.Fprintln(stdout, buildinfo.String())
		return 0
	}

	c := &calc{ctx: expr.NewContext(), out: stdout, errOut: stderr, postfix: *postfix}
	if *src == "" {
		prompt := "mgcalc> "
		if *quiet {
			prompt = ""
		}
		return c.repl(stdin, prompt)
	}

	if len(xs) == 0 {
		if !c.line(*src) {
			return 1
		}
		return 0
	}

	c.ctx.AddVariable(*name, 0)
	prog, ok := c.compile(*src)
	if !ok {
		return 1
	}
	status := 0
	for _, x := range xs {
		y, err := prog.EvalAt(c.ctx, *name, x)
		if err != nil {
			fmt.Fprintf(stderr, "mgcalc: %s=%s: %v\n", *name, formatValue(x), err)
			status = 1
			continue
		}
		fmt.Fprintf(stdout, "%s\t%s\n", formatValue(x), formatValue(y))
	}
	return status
}

type calc struct {
	ctx     *expr.Context
	out     io.Writer
	errOut  io.Writer
	postfix bool
}

func (c *calc) repl(r io.Reader, prompt string) int {
	sc := bufio.NewScanner(r)
	status := 0
	for {
		fmt.Fprint(c.out, prompt)
		if !sc.Scan() {
			break
		}
		if !c.line(sc.Text()) {
			status = 1
		}
	}
	if prompt != "" {
		fmt.Fprintln(c.out)
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(c.errOut, "mgcalc: %v\n", err)
		return 1
	}
	return status
}

// line evaluates one input line: an expression, or "name = expression" to
// define or update a variable.
func (c *calc) line(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "#") {
		return true
	}

	target := ""
	if lhs, rhs, ok := strings.Cut(s, "="); ok {
		target = strings.TrimSpace(lhs)
		if !isName(target) {
			fmt.Fprintf(c.errOut, "mgcalc: invalid assignment target %q\n", target)
			return false
		}
		if _, isConst := c.ctx.Constant(target); isConst {
			fmt.Fprintf(c.errOut, "mgcalc: %q is a constant\n", target)
			return false
		}
		if _, isFunc := c.ctx.Function(target); isFunc {
			fmt.Fprintf(c.errOut, "mgcalc: %q is a function\n", target)
			return false
		}
		s = strings.TrimSpace(rhs)
	}

	prog, ok := c.compile(s)
	if !ok {
		return false
	}
	v, err := prog.Eval(c.ctx)
	if err != nil {
		fmt.Fprintf(c.errOut, "mgcalc: %v\n", err)
		return false
	}

	if target == "" {
		fmt.Fprintln(c.out, formatValue(v))
		return true
	}
	if !c.ctx.SetVariable(target, v) {
		c.ctx.AddVariable(target, v)
	}
	fmt.Fprintf(c.out, "%s = %s\n", target, formatValue(v))
	return true
}

func (c *calc) compile(s string) (*expr.Compiled, bool) {
	prog, err := expr.Compile(s, c.ctx)
	if err != nil {
		var ce *expr.CompileError
		if errors.As(err, &ce) {
			fmt.Fprintf(c.errOut, "  %s\n  %s\n", ce.Source, ce.Caret())
		}
		fmt.Fprintf(c.errOut, "mgcalc: %v\n", err)
		return nil, false
	}
	if c.postfix {
		fmt.Fprintf(c.out, "postfix: %s\n", prog)
	}
	return prog, true
}

func isName(s string) bool {
	tk := expr.NewTokenizer(s)
	t := tk.Read()
	return t.Kind == expr.KindName && t.Len == len(s)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
