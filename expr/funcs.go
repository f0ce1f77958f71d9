package expr

import "math"

// Func is a native unary function callable from expressions.
type Func func(float64) float64

// Builtin enumerates the functions every Context starts with.
type Builtin uint8

const (
	BuiltinSin Builtin = iota
	BuiltinCos
	BuiltinTan
	BuiltinAsin
	BuiltinAcos
	BuiltinAtan
	BuiltinSqrt
	BuiltinFloor
	BuiltinCeil
	BuiltinLn
	BuiltinLog10

	numBuiltins
)

var builtinNames = [numBuiltins]string{
	BuiltinSin:   "sin",
	BuiltinCos:   "cos",
	BuiltinTan:   "tan",
	BuiltinAsin:  "asin",
	BuiltinAcos:  "acos",
	BuiltinAtan:  "atan",
	BuiltinSqrt:  "sqrt",
	BuiltinFloor: "floor",
	BuiltinCeil:  "ceil",
	BuiltinLn:    "ln",
	BuiltinLog10: "log10",
}

// Builtins returns every builtin in declaration order.
func Builtins() []Builtin {
	out := make([]Builtin, 0, numBuiltins)
	for b := Builtin(0); b < numBuiltins; b++ {
		out = append(out, b)
	}
	return out
}

// Name returns the identifier the builtin is registered under.
func (b Builtin) Name() string {
	if b < numBuiltins {
		return builtinNames[b]
	}
	return ""
}

// Apply evaluates the builtin at x. Unknown values yield NaN.
func (b Builtin) Apply(x float64) float64 {
	switch b {
	case BuiltinSin:
		return math.Sin(x)
	case BuiltinCos:
		return math.Cos(x)
	case BuiltinTan:
		return math.Tan(x)
	case BuiltinAsin:
		return math.Asin(x)
	case BuiltinAcos:
		return math.Acos(x)
	case BuiltinAtan:
		return math.Atan(x)
	case BuiltinSqrt:
		return math.Sqrt(x)
	case BuiltinFloor:
		return math.Floor(x)
	case BuiltinCeil:
		return math.Ceil(x)
	case BuiltinLn:
		return math.Log(x)
	case BuiltinLog10:
		return math.Log10(x)
	}
	return math.NaN()
}

// Func returns the builtin as a plain function value.
func (b Builtin) Func() Func {
	return b.Apply
}
