package typewriter

import (
	"context"
	"io"
	"iter"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// Frame is one unit of output.
type Frame struct {
	Text  string
	Delay time.Duration
}

// Serial writes text one character at a time.
func Serial(text string, style lipgloss.Style, interval time.Duration) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for _, r := range text {
			if !yield(Frame{Text: paint(style, string(r)), Delay: interval}) {
				return
			}
		}
	}
}

// Shuffle reveals text one character at a time. Before each character it
// flashes two to five random letters in the noise style, redrawing the line
// with a carriage return. The last frame holds the complete text.
// Text for which CanRedraw is false comes out garbled; use Serial for it.
func Shuffle(text string, style, noise lipgloss.Style, interval time.Duration, rng *rand.Rand) iter.Seq[Frame] {
	runes := []rune(text)
	return func(yield func(Frame) bool) {
		letters := []rune(asciiLetters)
		for i := 0; i <= len(runes); i++ {
			rng.Shuffle(len(letters), func(a, b int) { letters[a], letters[b] = letters[b], letters[a] })
			flashes := 2 + rng.IntN(4)
			prefix := "\r" + paint(style, string(runes[:i]))
			for _, c := range letters[:flashes] {
				line := prefix
				if i < len(runes) {
					line += paint(noise, string(c))
				}
				if !yield(Frame{Text: line, Delay: interval}) {
					return
				}
			}
		}
	}
}

// CanRedraw reports whether text stays on one line, so that Shuffle can
// redraw it with carriage returns.
func CanRedraw(text string) bool {
	return !strings.ContainsAny(text, "\r\n\v\f")
}

// paint styles the printable runs of text and copies control characters
// through untouched, so tabs and line breaks reach the output as they are.
func paint(style lipgloss.Style, text string) string {
	var b strings.Builder
	start := 0
	for i, r := range text {
		if !unicode.IsControl(r) {
			continue
		}
		if start < i {
			b.WriteString(style.Render(text[start:i]))
		}
		b.WriteRune(r)
		start = i + len(string(r))
	}
	if start < len(text) {
		b.WriteString(style.Render(text[start:]))
	}
	return b.String()
}

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Instant strips the delays from frames.
func Instant(frames iter.Seq[Frame]) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		for f := range frames {
			f.Delay = 0
			if !yield(f) {
				return
			}
		}
	}
}

// Play writes every frame to w after waiting for its delay.
// It returns ctx.Err() if the context is cancelled while waiting.
func Play(ctx context.Context, w io.Writer, frames iter.Seq[Frame]) error {
	for f := range frames {
		if f.Delay > 0 {
			timer := time.NewTimer(f.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(w, f.Text); err != nil {
			return err
		}
	}
	return nil
}
