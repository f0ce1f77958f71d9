package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Font is the X11 7x13 fixed bitmap font exposed as a tinyfont.Fonter.
var Font tinyfont.Fonter = face7x13{}

// Metrics of basicfont.Face7x13.
const (
	glyphWidth   = 6
	glyphAdvance = 7
	glyphAscent  = 11
	glyphDescent = 2
	lineHeight   = glyphAscent + glyphDescent
)

type face7x13 struct{}

func (face7x13) GetYAdvance() uint8 { return lineHeight }

func (face7x13) GetGlyph(r rune) tinyfont.Glypher {
	return glyph{r: r}
}

type glyph struct {
	r rune
}

// Draw paints the glyph with its baseline at y.
func (g glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	dr, mask, maskp, _, ok := basicfont.Face7x13.Glyph(fixed.P(0, 0), g.r)
	if !ok || mask == nil {
		return
	}
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		for px := dr.Min.X; px < dr.Max.X; px++ {
			mp := maskp.Add(image.Pt(px-dr.Min.X, py-dr.Min.Y))
			if _, _, _, a := mask.At(mp.X, mp.Y).RGBA(); a < 0x8000 {
				continue
			}
			display.SetPixel(x+int16(px), y+int16(py), c)
		}
	}
}

func (g glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    glyphWidth,
		Height:   lineHeight,
		XAdvance: glyphAdvance,
		XOffset:  0,
		YOffset:  -glyphAscent,
	}
}

// TextWidth returns the pixel width of s in Font.
func TextWidth(s string) int {
	_, outbox := tinyfont.LineWidth(Font, s)
	return int(outbox)
}

// LineHeight is the pixel height of one line of Font text.
const LineHeight = lineHeight

// Ascent is the distance from the top of a Font line to its baseline.
const Ascent = glyphAscent
