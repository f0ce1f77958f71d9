package app

import (
	"errors"
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"mathgraph/hal"
	"mathgraph/render"
)

var ErrPanic = errors.New("app: panic")

// recoverPanic turns a panic inside the step function into a logged stack, a
// panic screen on the framebuffer and a permanent step error.
func (a *app) recoverPanic(errp *error) {
	v := recover()
	if v == nil {
		return
	}
	stack := string(debug.Stack())

	hal.Logf(a.log, "mathgraph panic: %v", v)
	for _, line := range strings.Split(stack, "\n") {
		if line != "" {
			hal.Logf(a.log, "%s", line)
		}
	}

	lines := []string{"mathgraph panic:", fmt.Sprintf("panic: %v", v), "stack:"}
	for _, line := range strings.Split(stack, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	drawPanic(a.fb, lines)

	a.err = fmt.Errorf("%w: %v", ErrPanic, v)
	*errp = a.err
}

func drawPanic(fb hal.Framebuffer, lines []string) {
	c := render.NewCanvas(fb)
	c.Fill(color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	fg := color.RGBA{A: 0xFF}

	cols := c.Width() / render.TextWidth("0")
	if cols <= 0 {
		cols = 1
	}
	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+render.LineHeight > c.Height() {
				fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			c.Text(0, y, chunk, fg)
			y += render.LineHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	fb.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
