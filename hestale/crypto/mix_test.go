package crypto

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestMixVectors(t *testing.T) {
	tests := []struct {
		word1, word2, key string
		want              string
	}{
		{"static", "12345678", "8d0877d0e097d391f5bb", "z\"bxkb |5vc`\"qo}>d\"\""},
		{"example", "qwerty", "17aa1b7e961e9f7c1cce", "%8e~5w#w$%(l$t7i$wb~"},
		{"any", "litepass", "951ae4412a820a248a96", "42<e{,&,'i\".!n8&:q,="},
		{"github", "hunter2", "2cec71ecf27a78e25ccb", "=\x7f\x7f\x7f'!0bg46f\"cy/.uay"},
	}
	for _, tt := range tests {
		got, err := Mix(tt.word1, tt.word2, tt.key)
		if err != nil {
			t.Fatalf("Mix(%q, %q): %v", tt.word1, tt.word2, err)
		}
		if got != tt.want {
			t.Fatalf("Mix(%q, %q, %q) = %q, want %q", tt.word1, tt.word2, tt.key, got, tt.want)
		}
	}
}

func TestMixLatin1(t *testing.T) {
	got, err := Mix("café", "päss", "8d0877d0e097d391f5bb")
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	want := []rune{
		0x2b, 0xe1, 0x25, 0xa2, 0x24, 0xb2, 0x71, 0xaa, 0x76, 0xb5,
		0x2c, 0xad, 0x77, 0xb6, 0x2c, 0xab, 0x75, 0xb0, 0x77, 0xf8,
	}
	if string(want) != got {
		t.Fatalf("Mix = %q, want %q", got, string(want))
	}
}

func TestMixLengthInvariant(t *testing.T) {
	key := "8d0877d0e097d391f5bb"
	words := []string{"a", "ab", "static", "exactly-twenty-chars", "a much longer word than the key itself"}
	for _, w1 := range words {
		for _, w2 := range words {
			out, err := Mix(w1, w2, key)
			if err != nil {
				t.Fatalf("Mix(%q, %q): %v", w1, w2, err)
			}
			if n := utf8.RuneCountInString(out); n != len(key) {
				t.Fatalf("Mix(%q, %q) has %d characters, want %d", w1, w2, n, len(key))
			}
		}
	}
}

func TestMixDeterministic(t *testing.T) {
	first, _ := Mix("static", "12345678", "8d0877d0e097d391f5bb")
	for i := 0; i < 10; i++ {
		again, _ := Mix("static", "12345678", "8d0877d0e097d391f5bb")
		if again != first {
			t.Fatalf("Mix is not deterministic: %q != %q", again, first)
		}
	}
}

func TestMixEmptyOperand(t *testing.T) {
	key := "8d0877d0e097d391f5bb"
	if _, err := Mix("", "x", key); err != ErrEmptyOperand {
		t.Fatalf("expected ErrEmptyOperand for empty word1, got %v", err)
	}
	if _, err := Mix("x", "", key); err != ErrEmptyOperand {
		t.Fatalf("expected ErrEmptyOperand for empty word2, got %v", err)
	}
}

func TestMixEmptyKey(t *testing.T) {
	out, err := Mix("static", "password", "")
	if err != nil {
		t.Fatalf("Mix: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output for empty key, got %q", out)
	}
}

func TestMixUnsupportedCharacter(t *testing.T) {
	key := "8d0877d0e097d391f5bb"
	cases := []struct {
		word1, word2 string
		operand      string
		index        int
		r            rune
	}{
		{"пароль", "x", "word1", 0, 'п'},
		{"static", "pass€", "word2", 4, '€'},
		{"static", "ok\xff", "word2", 2, utf8.RuneError},
	}
	for _, c := range cases {
		_, err := Mix(c.word1, c.word2, key)
		if !errors.Is(err, ErrUnsupportedCharacter) {
			t.Fatalf("Mix(%q, %q): expected ErrUnsupportedCharacter, got %v", c.word1, c.word2, err)
		}
		var ce *CharacterError
		if !errors.As(err, &ce) {
			t.Fatalf("expected *CharacterError, got %T", err)
		}
		if ce.Operand != c.operand || ce.Index != c.index || ce.Rune != c.r {
			t.Fatalf("unexpected error detail: %+v", ce)
		}
	}
}

func TestMixRejectsCharacterPastKeyLength(t *testing.T) {
	// Characters that would be truncated away are still validated.
	_, err := Mix("static", "abcdefghijklmnopqrstuvwxyz✓", "8d0877d0e097d391f5bb")
	if !errors.Is(err, ErrUnsupportedCharacter) {
		t.Fatalf("expected ErrUnsupportedCharacter, got %v", err)
	}
}

func TestMixSensitivity(t *testing.T) {
	key := "8d0877d0e097d391f5bb"
	base, _ := Mix("static", "12345678", key)
	changed, _ := Mix("statid", "12345678", key)
	if base == changed {
		t.Fatalf("changing the label did not change the output")
	}
}

func BenchmarkMix(b *testing.B) {
	key := "8d0877d0e097d391f5bb"
	b.SetBytes(int64(len(key)))
	for i := 0; i < b.N; i++ {
		_, _ = Mix("static", "12345678", key)
	}
}
