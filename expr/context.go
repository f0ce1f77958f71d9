package expr

import (
	"math"
	"sort"
)

// Scope resolves names while a compiled expression runs.
type Scope interface {
	Variable(name string) (float64, bool)
	Function(name string) (Func, bool)
}

// Context is the symbol table shared by the compiler and the evaluator:
// read-only constants, mutable variables and unary functions.
//
// Compilation resolves a name as a constant first, then a variable, then a function.
// A Context is not safe for concurrent mutation.
type Context struct {
	constants map[string]float64
	variables map[string]float64
	functions map[string]Func
}

// NewContext returns a context seeded with pi, e and the builtin functions.
func NewContext() *Context {
	c := &Context{
		constants: map[string]float64{
			"pi": math.Pi,
			"e":  math.E,
		},
		variables: make(map[string]float64),
		functions: make(map[string]Func, numBuiltins),
	}
	for _, b := range Builtins() {
		c.functions[b.Name()] = b.Func()
	}
	return c
}

// Constant returns the value of a named constant such as pi.
func (c *Context) Constant(name string) (float64, bool) {
	v, ok := c.constants[name]
	return v, ok
}

// Variable returns the current value of a variable.
func (c *Context) Variable(name string) (float64, bool) {
	v, ok := c.variables[name]
	return v, ok
}

// Function returns the function registered under name.
func (c *Context) Function(name string) (Func, bool) {
	fn, ok := c.functions[name]
	return fn, ok
}

// AddVariable creates a variable. It never overwrites: it returns false if name exists.
func (c *Context) AddVariable(name string, initial float64) bool {
	if _, ok := c.variables[name]; ok {
		return false
	}
	c.variables[name] = initial
	return true
}

// SetVariable updates an existing variable and reports whether it existed.
func (c *Context) SetVariable(name string, value float64) bool {
	if _, ok := c.variables[name]; !ok {
		return false
	}
	c.variables[name] = value
	return true
}

// RemoveVariable deletes a variable. Expressions compiled against it fail to evaluate afterwards.
func (c *Context) RemoveVariable(name string) bool {
	if _, ok := c.variables[name]; !ok {
		return false
	}
	delete(c.variables, name)
	return true
}

// AddFunction registers fn under name, replacing any previous registration.
// A nil fn is ignored.
func (c *Context) AddFunction(name string, fn Func) {
	if fn == nil {
		return
	}
	c.functions[name] = fn
}

// RemoveFunction unregisters name. It returns false if no such function exists.
func (c *Context) RemoveFunction(name string) bool {
	if _, ok := c.functions[name]; !ok {
		return false
	}
	delete(c.functions, name)
	return true
}

// Names returns every known constant, variable and function name, sorted.
func (c *Context) Names() []string {
	out := make([]string, 0, len(c.constants)+len(c.variables)+len(c.functions))
	for k := range c.constants {
		out = append(out, k)
	}
	for k := range c.variables {
		out = append(out, k)
	}
	for k := range c.functions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Variables returns the variable names, sorted.
func (c *Context) Variables() []string {
	out := make([]string, 0, len(c.variables))
	for k := range c.variables {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Bind returns a scope in which name reads as value and every other lookup goes to parent.
// The parent is not modified, so concurrent evaluations may bind the same name independently.
func Bind(parent Scope, name string, value float64) Scope {
	if parent == nil {
		parent = emptyScope{}
	}
	return binding{parent: parent, name: name, value: value}
}

type binding struct {
	parent Scope
	name   string
	value  float64
}

func (b binding) Variable(name string) (float64, bool) {
	if name == b.name {
		return b.value, true
	}
	return b.parent.Variable(name)
}

func (b binding) Function(name string) (Func, bool) {
	return b.parent.Function(name)
}

type emptyScope struct{}

func (emptyScope) Variable(string) (float64, bool) { return 0, false }
func (emptyScope) Function(string) (Func, bool)    { return nil, false }
