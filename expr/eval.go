package expr

import (
	"fmt"
	"math"
)

// Eval runs the program against s. Variables and functions are resolved through s on
// every call, so a name removed after compilation fails with ErrUnboundName.
func (c *Compiled) Eval(s Scope) (float64, error) {
	if c == nil || len(c.code) == 0 {
		return 0, ErrMalformed
	}
	if s == nil {
		s = emptyScope{}
	}

	var buf [16]float64
	stack := buf[:0]
	if c.depth > len(buf) {
		stack = make([]float64, 0, c.depth)
	}

	for _, in := range c.code {
		n := len(stack)
		switch in.op {
		case opNumber:
			stack = append(stack, in.num)
		case opVariable:
			v, ok := s.Variable(in.name)
			if !ok {
				return 0, fmt.Errorf("%w: variable %q", ErrUnboundName, in.name)
			}
			stack = append(stack, v)
		case opNeg:
			if n < 1 {
				return 0, ErrMalformed
			}
			stack[n-1] = -stack[n-1]
		case opCall:
			if n < 1 {
				return 0, ErrMalformed
			}
			fn, ok := s.Function(in.name)
			if !ok || fn == nil {
				return 0, fmt.Errorf("%w: function %q", ErrUnboundName, in.name)
			}
			stack[n-1] = fn(stack[n-1])
		default:
			if n < 2 {
				return 0, ErrMalformed
			}
			stack[n-2] = apply(in.op, stack[n-2], stack[n-1])
			stack = stack[:n-1]
		}
	}

	if len(stack) != 1 {
		return 0, ErrMalformed
	}
	return stack[0], nil
}

// EvalAt evaluates with name bound to v on top of s.
func (c *Compiled) EvalAt(s Scope, name string, v float64) (float64, error) {
	return c.Eval(Bind(s, name, v))
}

func apply(op opcode, l, r float64) float64 {
	switch op {
	case opAdd:
		return l + r
	case opSub:
		return l - r
	case opMul:
		return l * r
	case opDiv:
		return l / r
	case opPow:
		return math.Pow(l, r)
	}
	return math.NaN()
}
