package expr

import "testing"

func TestTokenizer_Sequence(t *testing.T) {
	tz := NewTokenizer("  sin(x1) ^ 2.5*  -pi")
	want := []Token{
		{Kind: KindName, Text: "sin", Pos: 2, Len: 3},
		{Kind: KindParenOpen, Text: "(", Pos: 5, Len: 1},
		{Kind: KindName, Text: "x1", Pos: 6, Len: 2},
		{Kind: KindParenClose, Text: ")", Pos: 8, Len: 1},
		{Kind: KindOperator, Text: "^", Pos: 10, Len: 1},
		{Kind: KindNumber, Text: "2.5", Pos: 12, Len: 3},
		{Kind: KindOperator, Text: "*", Pos: 15, Len: 1},
		{Kind: KindOperator, Text: "-", Pos: 18, Len: 1},
		{Kind: KindName, Text: "pi", Pos: 19, Len: 2},
	}
	for i, w := range want {
		got := tz.Read()
		if got != w {
			t.Fatalf("token %d = %+v, want %+v", i, got, w)
		}
	}
	for i := 0; i < 2; i++ {
		if got := tz.Read(); got.Kind != KindEnd {
			t.Fatalf("after input: kind=%v, want end", got.Kind)
		}
	}
}

func TestTokenizer_NumberIsNotValidated(t *testing.T) {
	tz := NewTokenizer("1.2.3")
	got := tz.Read()
	if got.Kind != KindNumber || got.Text != "1.2.3" {
		t.Fatalf("got %+v, want number 1.2.3", got)
	}
}

func TestTokenizer_BadCharacters(t *testing.T) {
	for _, src := range []string{"~", "$", "é", ","} {
		tz := NewTokenizer(src)
		got := tz.Read()
		if got.Kind != KindBad {
			t.Fatalf("%q: kind=%v, want bad", src, got.Kind)
		}
		if got.Pos != 0 || got.Len != len(src) {
			t.Fatalf("%q: span=(%d,%d), want (0,%d)", src, got.Pos, got.Len, len(src))
		}
		if next := tz.Read(); next.Kind != KindEnd {
			t.Fatalf("%q: next kind=%v, want end", src, next.Kind)
		}
	}
}

func TestTokenizer_Reset(t *testing.T) {
	tz := NewTokenizer("a")
	tz.Read()
	if tz.Pos() != 1 {
		t.Fatalf("pos=%d, want 1", tz.Pos())
	}
	tz.Reset(" 7")
	got := tz.Read()
	if got.Kind != KindNumber || got.Pos != 1 {
		t.Fatalf("got %+v, want number at 1", got)
	}
}
