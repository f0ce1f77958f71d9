package main

import (
	"bytes"
	"strings"
	"testing"
)

func runCalc(t *testing.T, stdin string, args ...string) (code int, out, errOut string) {
	t.Helper()
	var o, e bytes.Buffer
	code = run(args, strings.NewReader(stdin), &o, &e)
	return code, o.String(), e.String()
}

func TestRun_Once(t *testing.T) {
	code, out, _ := runCalc(t, "", "-e", "2*(3+4)^2")
	if code != 0 || out != "98\n" {
		t.Fatalf("code=%d out=%q, want 98", code, out)
	}
}

func TestRun_Postfix(t *testing.T) {
	code, out, _ := runCalc(t, "", "-postfix", "-e", "-x^2", "-x", "3")
	if code != 0 {
		t.Fatalf("code=%d", code)
	}
	want := "postfix: x 2 ^ neg\n3\t-9\n"
	if out != want {
		t.Fatalf("out=%q, want %q", out, want)
	}
}

func TestRun_Table(t *testing.T) {
	code, out, _ := runCalc(t, "", "-e", "t/2", "-var", "t", "-x", "1,2", "-x", "4")
	if code != 0 || out != "1\t0.5\n2\t1\n4\t2\n" {
		t.Fatalf("code=%d out=%q", code, out)
	}
}

func TestRun_CompileErrorCaret(t *testing.T) {
	code, out, errOut := runCalc(t, "", "-e", "1 + foo(2)")
	if code != 1 || out != "" {
		t.Fatalf("code=%d out=%q", code, out)
	}
	lines := strings.Split(errOut, "\n")
	if len(lines) < 3 || lines[0] != "  1 + foo(2)" || lines[1] != "      ^^^" {
		t.Fatalf("diagnostic=%q", errOut)
	}
	if !strings.Contains(lines[2], `did you mean "floor"?`) {
		t.Fatalf("no hint in %q", lines[2])
	}
}

func TestRun_REPL(t *testing.T) {
	in := strings.Join([]string{
		"a = 3",
		"a * 2",
		"# comment",
		"",
		"a = a + 1",
		"pi = 3",
		"sin = 1",
		"2 + = 1",
		"a",
	}, "\n")
	code, out, errOut := runCalc(t, in, "-q")
	if code != 1 {
		t.Fatalf("code=%d, want 1 after failed lines", code)
	}
	want := "a = 3\n6\na = 4\n4\n"
	if out != want {
		t.Fatalf("out=%q, want %q", out, want)
	}
	for _, msg := range []string{`"pi" is a constant`, `"sin" is a function`, `invalid assignment target "2 +"`} {
		if !strings.Contains(errOut, msg) {
			t.Fatalf("stderr missing %q:\n%s", msg, errOut)
		}
	}
}

func TestRun_BadFlag(t *testing.T) {
	if code, _, _ := runCalc(t, "", "-nope"); code != 2 {
		t.Fatalf("code=%d, want 2", code)
	}
}
