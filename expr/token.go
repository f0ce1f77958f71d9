package expr

// Kind classifies a token read from expression source.
type Kind uint8

const (
	KindEnd Kind = iota
	KindNumber
	KindOperator
	KindName
	KindParenOpen
	KindParenClose
	KindBad
)

var kindNames = [...]string{
	KindEnd:        "end",
	KindNumber:     "number",
	KindOperator:   "operator",
	KindName:       "name",
	KindParenOpen:  "(",
	KindParenClose: ")",
	KindBad:        "bad",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Token is a lexical unit together with its byte span in the source.
type Token struct {
	Kind Kind
	Text string
	Pos  int
	Len  int
}

// Tokenizer splits an expression into tokens, one per Read.
type Tokenizer struct {
	src string
	pos int
}

func NewTokenizer(src string) *Tokenizer {
	return &Tokenizer{src: src}
}

// Reset re-initializes the tokenizer with new source.
func (t *Tokenizer) Reset(src string) {
	t.src = src
	t.pos = 0
}

// Pos returns the byte offset of the next unread character.
func (t *Tokenizer) Pos() int { return t.pos }

// Read returns the next token. Once the source is exhausted it keeps returning KindEnd.
func (t *Tokenizer) Read() Token {
	for t.pos < len(t.src) && isSpace(t.src[t.pos]) {
		t.pos++
	}
	if t.pos >= len(t.src) {
		return Token{Kind: KindEnd, Pos: t.pos}
	}

	start := t.pos
	ch := t.src[t.pos]
	t.pos++

	switch {
	case isDigit(ch) || ch == '.':
		// Multiple decimal points are left for the number parser to reject.
		for t.pos < len(t.src) && (isDigit(t.src[t.pos]) || t.src[t.pos] == '.') {
			t.pos++
		}
		return t.token(KindNumber, start)
	case isAlpha(ch):
		for t.pos < len(t.src) && (isAlpha(t.src[t.pos]) || isDigit(t.src[t.pos])) {
			t.pos++
		}
		return t.token(KindName, start)
	}

	switch ch {
	case '+', '-', '*', '/', '^':
		return t.token(KindOperator, start)
	case '(':
		return t.token(KindParenOpen, start)
	case ')':
		return t.token(KindParenClose, start)
	}

	// Swallow the rest of a multi-byte character so it is reported once.
	for t.pos < len(t.src) && t.src[t.pos]&0xC0 == 0x80 {
		t.pos++
	}
	return t.token(KindBad, start)
}

func (t *Tokenizer) token(kind Kind, start int) Token {
	return Token{Kind: kind, Text: t.src[start:t.pos], Pos: start, Len: t.pos - start}
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
