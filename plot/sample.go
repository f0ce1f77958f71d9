package plot

import (
	"image"
	"math"

	"mathgraph/expr"
)

const maxSamples = 1 << 16

// eachSample evaluates prog across the x span, one call per sample, with name
// bound to the sample's x value on top of scope.
func (v *Viewport) eachSample(prog *expr.Compiled, scope expr.Scope, name string, fn func(x, y float64)) error {
	if v.PixelWidth <= 0 || !(v.XMax > v.XMin) {
		return nil
	}
	span := v.XMax - v.XMin
	step := span * v.SamplingRate / float64(v.PixelWidth)
	if !(step > 0) || math.IsInf(step, 0) {
		return nil
	}
	// Very fine sampling rates are coarsened so the capped count still reaches XMax.
	step = math.Max(step, span/(maxSamples-1))

	// Sample indices 0..n cover [XMin, XMax]; the last one may overshoot XMax
	// by less than a step. The epsilon keeps an exact multiple from adding one more.
	n := int(math.Min(math.Ceil(span/step-1e-9), maxSamples-1))
	for i := 0; i <= n; i++ {
		x := v.XMin + float64(i)*step
		y, err := prog.EvalAt(scope, name, x)
		if err != nil {
			return err
		}
		fn(x, y)
	}
	return nil
}

// Samples returns the pixel polyline of prog over the viewport. Samples where
// prog is not finite are left out.
func (v *Viewport) Samples(prog *expr.Compiled, scope expr.Scope, name string) ([]image.Point, error) {
	var out []image.Point
	err := v.eachSample(prog, scope, name, func(x, y float64) {
		if finite(y) {
			out = append(out, image.Pt(v.PxFromX(x), v.PxFromY(y)))
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Segments is like Samples but starts a new polyline after every non-finite
// sample, so poles and domain gaps are not bridged.
func (v *Viewport) Segments(prog *expr.Compiled, scope expr.Scope, name string) ([][]image.Point, error) {
	var (
		out [][]image.Point
		cur []image.Point
	)
	err := v.eachSample(prog, scope, name, func(x, y float64) {
		if !finite(y) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			return
		}
		cur = append(cur, image.Pt(v.PxFromX(x), v.PxFromY(y)))
	})
	if err != nil {
		return nil, err
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
