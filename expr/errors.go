package expr

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies why an expression failed to compile.
type ErrorKind uint8

const (
	UndefinedName ErrorKind = iota + 1
	InvalidUnaryOperator
	ParenthesisMismatch
	InvalidCharacter
	OperandUnderflow
	OperandOverflow
	InvalidNumber
)

var (
	ErrInvalidExpression = errors.New("invalid expression")

	ErrUndefinedName        = errors.New("undefined name")
	ErrInvalidUnaryOperator = errors.New("invalid unary operator")
	ErrParenthesisMismatch  = errors.New("parenthesis mismatch")
	ErrInvalidCharacter     = errors.New("invalid character")
	ErrOperandUnderflow     = errors.New("operand underflow")
	ErrOperandOverflow      = errors.New("operand overflow")
	ErrInvalidNumber        = errors.New("invalid number")
)

// Evaluation errors. They indicate a program that no longer matches its scope
// or was never produced by Compile.
var (
	ErrEval        = errors.New("evaluation failed")
	ErrMalformed   = fmt.Errorf("%w: malformed program", ErrEval)
	ErrUnboundName = fmt.Errorf("%w: unbound name", ErrEval)
)

func (k ErrorKind) sentinel() error {
	switch k {
	case UndefinedName:
		return ErrUndefinedName
	case InvalidUnaryOperator:
		return ErrInvalidUnaryOperator
	case ParenthesisMismatch:
		return ErrParenthesisMismatch
	case InvalidCharacter:
		return ErrInvalidCharacter
	case OperandUnderflow:
		return ErrOperandUnderflow
	case OperandOverflow:
		return ErrOperandOverflow
	case InvalidNumber:
		return ErrInvalidNumber
	}
	return nil
}

func (k ErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("error kind %d", uint8(k))
}

// CompileError reports a rejected expression and the byte span responsible.
type CompileError struct {
	Kind   ErrorKind
	Pos    int
	Len    int
	Source string
	// Hint is a close known name for UndefinedName errors, if any.
	Hint string
}

func (e *CompileError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if text := e.Text(); text != "" && e.Kind != OperandUnderflow && e.Kind != OperandOverflow {
		fmt.Fprintf(&b, " %q", text)
	}
	fmt.Fprintf(&b, " at %d", e.Pos)
	if e.Hint != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Hint)
	}
	return b.String()
}

// Unwrap exposes both ErrInvalidExpression and the per-kind sentinel.
func (e *CompileError) Unwrap() []error {
	errs := []error{ErrInvalidExpression}
	if k := e.Kind.sentinel(); k != nil {
		errs = append(errs, k)
	}
	return errs
}

func (e *CompileError) Span() (pos, length int) {
	return e.Pos, e.Len
}

// Text returns the offending slice of Source, clamped to its bounds.
func (e *CompileError) Text() string {
	start, end := e.Pos, e.Pos+e.Len
	if start < 0 {
		start = 0
	}
	if end > len(e.Source) {
		end = len(e.Source)
	}
	if start >= end {
		return ""
	}
	return e.Source[start:end]
}

// Caret returns a line that underlines the span when printed below Source.
func (e *CompileError) Caret() string {
	n := e.Len
	if n < 1 {
		n = 1
	}
	pos := e.Pos
	if pos < 0 {
		pos = 0
	}
	return strings.Repeat(" ", pos) + strings.Repeat("^", n)
}

func newCompileError(kind ErrorKind, src string, pos, length int) *CompileError {
	return &CompileError{Kind: kind, Pos: pos, Len: length, Source: src}
}
