package crypto

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyOperand         = errors.New("crypto: mix operand is empty")
	ErrUnsupportedCharacter = errors.New("crypto: character outside the 8-bit range")
)

// CharacterError reports the first character of an operand whose code point
// does not fit in 8 bits. It unwraps to ErrUnsupportedCharacter.
type CharacterError struct {
	Operand string // "word1", "word2" or "key"
	Index   int    // character index, not byte offset
	Rune    rune
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("crypto: %s[%d] %U is outside the 8-bit range", e.Operand, e.Index, e.Rune)
}

func (e *CharacterError) Unwrap() error { return ErrUnsupportedCharacter }

// Mix combines word1 and word2 with key.
//
// Both words are doubled until they reach the key length and then truncated
// to it. The three strings are XORed code point by code point, which is the
// same as XORing their 8-bit expansions bit by bit. The result has exactly as
// many characters as key and may contain non-printable characters.
//
// Every character of every input must be at most U+00FF.
func Mix(word1, word2, key string) (string, error) {
	if word1 == "" || word2 == "" {
		return "", ErrEmptyOperand
	}
	k, err := octets("key", key)
	if err != nil {
		return "", err
	}
	a, err := octets("word1", word1)
	if err != nil {
		return "", err
	}
	b, err := octets("word2", word2)
	if err != nil {
		return "", err
	}

	a = stretch(a, len(k))
	b = stretch(b, len(k))

	mixed := make([]rune, len(k))
	for i := range k {
		mixed[i] = rune(a[i] ^ b[i] ^ k[i])
	}
	return string(mixed), nil
}

// stretch self-concatenates word until it holds at least n octets, then
// truncates it to n. word must not be empty.
func stretch(word []byte, n int) []byte {
	for len(word) < n {
		word = append(word, word...)
	}
	return word[:n]
}

// octets returns the code points of s as bytes.
func octets(operand, s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	i := 0
	for _, r := range s {
		if r > 0xFF {
			return nil, &CharacterError{Operand: operand, Index: i, Rune: r}
		}
		out = append(out, byte(r))
		i++
	}
	return out, nil
}
