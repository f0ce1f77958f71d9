package plot

import "math"

// maxMarkers caps the label count for pathological spans.
const maxMarkers = 1000

// Marker is an axis tick: a pixel offset along the axis and its label.
type Marker struct {
	Pixel int
	Label string
}

// MarkerStep truncates raw to its leading significant digit: 2.5 becomes 2,
// 0.37 becomes 0.3, 140 becomes 100. Non-finite or non-positive input yields 0.
func MarkerStep(raw float64) float64 {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return 0
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	// 0.3/0.1 is 2.9999999999999996; the epsilon keeps it at 3.
	return math.Trunc(raw/mag+1e-9) * mag
}

// XMarkers places labelled ticks along the x axis roughly MarkerGap pixels apart.
func (v *Viewport) XMarkers() []Marker {
	if v.PixelWidth <= 0 {
		return nil
	}
	raw := float64(v.MarkerGap) * (v.XMax - v.XMin) / float64(v.PixelWidth)
	return markers(v.XMin, v.XMax, raw, v.PxFromX)
}

// YMarkers places labelled ticks along the y axis roughly MarkerGap pixels apart.
func (v *Viewport) YMarkers() []Marker {
	if v.PixelHeight <= 0 {
		return nil
	}
	raw := float64(v.MarkerGap) * (v.YMax - v.YMin) / float64(v.PixelHeight)
	return markers(v.YMin, v.YMax, raw, v.PxFromY)
}

func markers(lo, hi, raw float64, toPx func(float64) int) []Marker {
	step := MarkerStep(raw)
	if step == 0 || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}

	var out []Marker
	// Labels sit at integer multiples of step.
	k := math.Ceil(lo / step)
	prev := math.Inf(-1)
	for i := 0; i < maxMarkers && k*step <= hi; i, k = i+1, k+1 {
		p := k * step
		// Past 2^53 k+1 rounds back to k.
		if !(p > prev) {
			break
		}
		prev = p
		if k == 0 {
			continue
		}
		out = append(out, Marker{Pixel: toPx(p), Label: FormatReal(p)})
	}
	return out
}
