package render

import (
	"image"
	"image/color"

	"mathgraph/hal"

	"tinygo.org/x/drivers"
)

// Canvas draws into a rectangle of an RGB565 framebuffer. Coordinates are
// relative to the rectangle and everything outside it is clipped.
//
// Canvas implements drivers.Displayer so tinyfont can render onto it.
type Canvas struct {
	fb   hal.Framebuffer
	rect image.Rectangle
}

var _ drivers.Displayer = (*Canvas)(nil)

func NewCanvas(fb hal.Framebuffer) *Canvas {
	c := &Canvas{fb: fb}
	if fb != nil {
		c.rect = image.Rect(0, 0, fb.Width(), fb.Height())
	}
	return c
}

// Region returns a canvas for r, given in this canvas's coordinates.
func (c *Canvas) Region(r image.Rectangle) *Canvas {
	return &Canvas{fb: c.fb, rect: r.Add(c.rect.Min).Intersect(c.rect)}
}

// Bounds returns the canvas rectangle in framebuffer coordinates.
func (c *Canvas) Bounds() image.Rectangle { return c.rect }

func (c *Canvas) Width() int  { return c.rect.Dx() }
func (c *Canvas) Height() int { return c.rect.Dy() }

func (c *Canvas) Size() (x, y int16) {
	return int16(c.rect.Dx()), int16(c.rect.Dy())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.set(int(x), int(y), hal.RGB565(col.R, col.G, col.B))
}

func (c *Canvas) set(x, y int, pixel uint16) {
	buf := c.buffer()
	if buf == nil {
		return
	}
	fx := c.rect.Min.X + x
	fy := c.rect.Min.Y + y
	if !(image.Point{X: fx, Y: fy}).In(c.rect) {
		return
	}
	off := fy*c.fb.StrideBytes() + fx*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (c *Canvas) buffer() []byte {
	if c.fb == nil || c.fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	return c.fb.Buffer()
}

func (c *Canvas) Display() error {
	if c.fb == nil {
		return nil
	}
	return c.fb.Present()
}

func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	c.fill(image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)), col)
	return nil
}

// Fill paints the whole canvas.
func (c *Canvas) Fill(col color.RGBA) {
	c.fill(image.Rect(0, 0, c.rect.Dx(), c.rect.Dy()), col)
}

func (c *Canvas) fill(r image.Rectangle, col color.RGBA) {
	buf := c.buffer()
	if buf == nil {
		return
	}
	r = r.Add(c.rect.Min).Intersect(c.rect)
	if r.Empty() {
		return
	}

	pixel := hal.RGB565(col.R, col.G, col.B)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := c.fb.StrideBytes()
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := py * stride
		for px := r.Min.X; px < r.Max.X; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// SetScroll is a no-op; Canvas has no hardware scrolling.
func (c *Canvas) SetScroll(line int16) {}

// SetRotation is a no-op; only the default rotation is supported.
func (c *Canvas) SetRotation(rotation drivers.Rotation) error { return nil }

// ScrollUp moves the canvas content up by lines pixel rows and paints the
// exposed rows at the bottom with bg.
func (c *Canvas) ScrollUp(lines int16, bg color.RGBA) error {
	if lines <= 0 {
		return nil
	}
	buf := c.buffer()
	if buf == nil {
		return nil
	}
	w, h := c.rect.Dx(), c.rect.Dy()
	n := int(lines)
	if n >= h {
		c.Fill(bg)
		return nil
	}

	stride := c.fb.StrideBytes()
	x0 := c.rect.Min.X * 2
	for y := 0; y < h-n; y++ {
		dst := (c.rect.Min.Y+y)*stride + x0
		src := dst + n*stride
		if dst < 0 || src+w*2 > len(buf) {
			continue
		}
		copy(buf[dst:dst+w*2], buf[src:src+w*2])
	}
	c.fill(image.Rect(0, h-n, w, h), bg)
	return nil
}
