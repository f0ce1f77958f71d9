package expr

import (
	"strconv"
	"strings"
)

type opcode uint8

const (
	opNumber opcode = iota
	opVariable
	opNeg
	opAdd
	opSub
	opMul
	opDiv
	opPow
	opCall
)

type instr struct {
	op   opcode
	num  float64
	name string
}

// Compiled is an expression in postfix form, ready to be evaluated any number of times.
type Compiled struct {
	src   string
	code  []instr
	depth int
}

// Source returns the text the expression was compiled from.
func (c *Compiled) Source() string {
	if c == nil {
		return ""
	}
	return c.src
}

// String renders the postfix program, e.g. "2 x * sin".
func (c *Compiled) String() string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	for i, in := range c.code {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch in.op {
		case opNumber:
			b.WriteString(strconv.FormatFloat(in.num, 'g', -1, 64))
		case opVariable, opCall:
			b.WriteString(in.name)
		case opNeg:
			b.WriteString("neg")
		default:
			b.WriteByte(binarySymbol(in.op))
		}
	}
	return b.String()
}

func binaryOp(ch byte) opcode {
	switch ch {
	case '+':
		return opAdd
	case '-':
		return opSub
	case '*':
		return opMul
	case '/':
		return opDiv
	}
	return opPow
}

func binarySymbol(op opcode) byte {
	switch op {
	case opAdd:
		return '+'
	case opSub:
		return '-'
	case opMul:
		return '*'
	case opDiv:
		return '/'
	}
	return '^'
}

func precedence(op opcode) int {
	switch op {
	case opAdd, opSub:
		return 2
	case opMul, opDiv:
		return 3
	case opNeg:
		return 4
	case opPow:
		return 5
	}
	return 0
}

func rightAssoc(op opcode) bool {
	return op == opPow
}

type itemKind uint8

const (
	itemParen itemKind = iota
	itemOp
	itemFunc
)

type stackItem struct {
	kind itemKind
	op   opcode
	name string
}

type compiler struct {
	src   string
	ctx   *Context
	tok   *Tokenizer
	stack []stackItem
	out   []instr

	expecting bool
	balance   int
}

// Compile turns infix source into a postfix program, resolving names against ctx.
// Constants are folded in by value; variables and functions are looked up again at
// evaluation time. A nil ctx compiles against NewContext().
//
// Any failure is returned as a *CompileError and no program is produced.
func Compile(src string, ctx *Context) (*Compiled, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	c := &compiler{
		src:       src,
		ctx:       ctx,
		tok:       NewTokenizer(src),
		expecting: true,
	}
	if err := c.run(); err != nil {
		return nil, err
	}
	depth, ok := stackDepth(c.out)
	if !ok {
		return nil, c.whole(OperandUnderflow)
	}
	return &Compiled{src: src, code: c.out, depth: depth}, nil
}

func (c *compiler) run() error {
	for {
		t := c.tok.Read()
		switch t.Kind {
		case KindEnd:
			return c.finish()
		case KindNumber:
			v, err := strconv.ParseFloat(t.Text, 64)
			if err != nil {
				return newCompileError(InvalidNumber, c.src, t.Pos, t.Len)
			}
			c.operand(instr{op: opNumber, num: v})
		case KindName:
			if err := c.name(t); err != nil {
				return err
			}
		case KindOperator:
			if err := c.operator(t); err != nil {
				return err
			}
		case KindParenOpen:
			c.stack = append(c.stack, stackItem{kind: itemParen})
			c.expecting = true
		case KindParenClose:
			if err := c.closeParen(t); err != nil {
				return err
			}
		default:
			return newCompileError(InvalidCharacter, c.src, t.Pos, 1)
		}

		if c.balance > 1 {
			return c.whole(OperandOverflow)
		}
	}
}

func (c *compiler) operand(in instr) {
	c.out = append(c.out, in)
	c.balance++
	c.expecting = false
}

func (c *compiler) name(t Token) error {
	if v, ok := c.ctx.Constant(t.Text); ok {
		c.operand(instr{op: opNumber, num: v})
		return nil
	}
	if _, ok := c.ctx.Variable(t.Text); ok {
		c.operand(instr{op: opVariable, name: t.Text})
		return nil
	}
	if _, ok := c.ctx.Function(t.Text); ok {
		c.stack = append(c.stack, stackItem{kind: itemFunc, name: t.Text})
		return nil
	}
	err := newCompileError(UndefinedName, c.src, t.Pos, t.Len)
	err.Hint = c.ctx.Suggest(t.Text)
	return err
}

func (c *compiler) operator(t Token) error {
	ch := t.Text[0]
	if c.expecting {
		switch ch {
		case '-':
			c.stack = append(c.stack, stackItem{kind: itemOp, op: opNeg})
			return nil
		case '+':
			return nil
		}
		return newCompileError(InvalidUnaryOperator, c.src, t.Pos, 1)
	}

	op := binaryOp(ch)
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		if top.kind != itemOp {
			break
		}
		p, tp := precedence(op), precedence(top.op)
		if !(p < tp || (p == tp && !rightAssoc(op))) {
			break
		}
		c.pop()
	}
	c.stack = append(c.stack, stackItem{kind: itemOp, op: op})
	c.balance--
	c.expecting = true
	return nil
}

func (c *compiler) closeParen(t Token) error {
	for {
		if len(c.stack) == 0 {
			return newCompileError(ParenthesisMismatch, c.src, t.Pos, t.Len)
		}
		if c.stack[len(c.stack)-1].kind == itemParen {
			c.stack = c.stack[:len(c.stack)-1]
			break
		}
		c.pop()
	}
	if n := len(c.stack); n > 0 && c.stack[n-1].kind == itemFunc {
		c.pop()
	}
	c.expecting = false
	return nil
}

func (c *compiler) finish() error {
	if c.balance != 1 {
		return c.whole(OperandUnderflow)
	}
	for len(c.stack) > 0 {
		if c.stack[len(c.stack)-1].kind == itemParen {
			return c.whole(ParenthesisMismatch)
		}
		c.pop()
	}
	return nil
}

// pop moves the top of the operator stack to the output.
func (c *compiler) pop() {
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	switch top.kind {
	case itemFunc:
		c.out = append(c.out, instr{op: opCall, name: top.name})
	case itemOp:
		c.out = append(c.out, instr{op: top.op})
	}
}

func (c *compiler) whole(kind ErrorKind) *CompileError {
	return newCompileError(kind, c.src, 0, len(c.src))
}

// stackDepth replays the program's stack effects. It reports the peak depth and
// whether every instruction finds enough operands and exactly one value remains.
func stackDepth(code []instr) (int, bool) {
	depth, peak := 0, 0
	for _, in := range code {
		switch in.op {
		case opNumber, opVariable:
			depth++
		case opNeg, opCall:
			if depth < 1 {
				return 0, false
			}
		default:
			if depth < 2 {
				return 0, false
			}
			depth--
		}
		if depth > peak {
			peak = depth
		}
	}
	return peak, depth == 1
}
