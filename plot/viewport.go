package plot

import (
	"errors"
	"image"
	"math"
)

var (
	ErrBounds       = errors.New("plot: invalid bounds")
	ErrSamplingRate = errors.New("plot: sampling rate must be positive")
)

// pixelLimit bounds converted coordinates so that far off-screen points
// stay representable after integer conversion.
const pixelLimit = 1 << 24

// Viewport maps the point rectangle [XMin,XMax]x[YMin,YMax] onto a
// PixelWidth x PixelHeight raster whose y axis grows downwards.
type Viewport struct {
	PixelWidth  int
	PixelHeight int

	XMin, XMax float64
	YMin, YMax float64

	// SamplingRate is the pixel distance between curve samples.
	SamplingRate float64
	// MarkerGap is the approximate pixel distance between axis markers.
	MarkerGap int
}

func NewViewport(w, h int, xMin, xMax, yMin, yMax float64) Viewport {
	return Viewport{
		PixelWidth:   w,
		PixelHeight:  h,
		XMin:         xMin,
		XMax:         xMax,
		YMin:         yMin,
		YMax:         yMax,
		SamplingRate: defaultSamplingRate,
		MarkerGap:    defaultMarkerGap,
	}
}

// Valid reports whether both the raster and the point spans are non-empty and finite.
func (v *Viewport) Valid() bool {
	return v.PixelWidth > 0 && v.PixelHeight > 0 &&
		finiteSpan(v.XMin, v.XMax) && finiteSpan(v.YMin, v.YMax)
}

func finiteSpan(lo, hi float64) bool {
	return !math.IsNaN(lo) && !math.IsNaN(hi) && !math.IsInf(lo, 0) && !math.IsInf(hi, 0) && hi > lo
}

func toPixel(p float64) int {
	switch {
	case math.IsNaN(p):
		return 0
	case p > pixelLimit:
		return pixelLimit
	case p < -pixelLimit:
		return -pixelLimit
	}
	return int(p)
}

func (v *Viewport) PxFromX(x float64) int {
	return toPixel(float64(v.PixelWidth) * (x - v.XMin) / (v.XMax - v.XMin))
}

func (v *Viewport) PxFromY(y float64) int {
	return toPixel(float64(v.PixelHeight) * (1 - (y-v.YMin)/(v.YMax-v.YMin)))
}

func (v *Viewport) XFromPx(px int) float64 {
	return float64(px)*(v.XMax-v.XMin)/float64(v.PixelWidth) + v.XMin
}

func (v *Viewport) YFromPx(py int) float64 {
	return float64(v.PixelHeight-py)*(v.YMax-v.YMin)/float64(v.PixelHeight) + v.YMin
}

// Origin returns the pixel position of (0, 0). It may lie outside the raster.
func (v *Viewport) Origin() image.Point {
	dx := v.XMax - v.XMin
	dy := v.YMax - v.YMin
	return image.Pt(
		toPixel(-v.XMin*float64(v.PixelWidth)/dx),
		toPixel(v.YMax*float64(v.PixelHeight)/dy),
	)
}

// Move pans by a pixel delta. Positive dx moves the view right, positive dy moves it down.
func (v *Viewport) Move(dx, dy int) {
	if v.PixelWidth > 0 {
		sx := float64(dx) * (v.XMax - v.XMin) / float64(v.PixelWidth)
		v.XMin += sx
		v.XMax += sx
	}
	if v.PixelHeight > 0 {
		sy := float64(dy) * (v.YMax - v.YMin) / float64(v.PixelHeight)
		v.YMin -= sy
		v.YMax -= sy
	}
}

// Zoom applies a single zoom step about pixel (px, py): in when steps > 0, out
// when steps < 0. A negative px or py stands for the centre of that axis.
func (v *Viewport) Zoom(steps, px, py int) {
	if steps == 0 || v.PixelWidth <= 0 || v.PixelHeight <= 0 {
		return
	}
	if px < 0 {
		px = v.PixelWidth / 2
	}
	if py < 0 {
		py = v.PixelHeight / 2
	}

	hx := (v.XMax - v.XMin) / 2
	hy := (v.YMax - v.YMin) / 2

	left := float64(px) / float64(v.PixelWidth)
	right := 1 - left
	top := float64(py) / float64(v.PixelHeight)
	bottom := 1 - top

	if steps < 0 {
		v.XMin -= hx * right
		v.XMax += hx * left
		v.YMin -= hy * top
		v.YMax += hy * bottom
		return
	}
	v.XMin += hx * left
	v.XMax -= hx * right
	v.YMin += hy * bottom
	v.YMax -= hy * top
}

// CenterOrigin keeps both spans and puts (0, 0) in the middle of the raster.
func (v *Viewport) CenterOrigin() {
	x := (v.XMax - v.XMin) / 2
	y := (v.YMax - v.YMin) / 2
	v.XMin, v.XMax = -x, x
	v.YMin, v.YMax = -y, y
}

func (v *Viewport) SetBounds(xMin, xMax, yMin, yMax float64) error {
	if !finiteSpan(xMin, xMax) || !finiteSpan(yMin, yMax) {
		return ErrBounds
	}
	v.XMin, v.XMax = xMin, xMax
	v.YMin, v.YMax = yMin, yMax
	return nil
}

// SetPixelBounds zooms to the pixel rectangle spanned by (x0, y0) and (x1, y1).
// Corners may be given in any order. Degenerate rectangles are ignored and
// reported as false.
func (v *Viewport) SetPixelBounds(x0, x1, y0, y1 int) bool {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if x0 == x1 || y0 == y1 {
		return false
	}
	// y0 is the top edge and therefore the larger y value.
	return v.SetBounds(v.XFromPx(x0), v.XFromPx(x1), v.YFromPx(y1), v.YFromPx(y0)) == nil
}

func (v *Viewport) Resize(w, h int) {
	v.PixelWidth = w
	v.PixelHeight = h
}

func (v *Viewport) SetSamplingRate(r float64) error {
	if !(r > 0) || math.IsInf(r, 0) {
		return ErrSamplingRate
	}
	v.SamplingRate = r
	return nil
}
