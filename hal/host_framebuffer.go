//go:build !tinygo

package hal

import (
	"image"
	"sync"
)

// HostFramebuffer is an in-memory RGB565 framebuffer. It backs the desktop
// window and offscreen rendering.
type HostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
}

func NewFramebuffer(width, height int) *HostFramebuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := width * 2
	return &HostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *HostFramebuffer) Width() int          { return f.width }
func (f *HostFramebuffer) Height() int         { return f.height }
func (f *HostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *HostFramebuffer) StrideBytes() int    { return f.stride }
func (f *HostFramebuffer) Buffer() []byte      { return f.buf }
func (f *HostFramebuffer) Present() error      { return nil }

func (f *HostFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := RGB565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

// At returns the packed pixel at (x, y), or 0 outside the buffer.
func (f *HostFramebuffer) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0
	}
	off := y*f.stride + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

// Image returns a copy of the framebuffer as RGBA.
func (f *HostFramebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	f.mu.Lock()
	defer f.mu.Unlock()
	expandRGB565(img.Pix, f.buf)
	return img
}

func (f *HostFramebuffer) snapshotRGB565(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}
