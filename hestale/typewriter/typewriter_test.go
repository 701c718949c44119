package typewriter

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
)

func plainPalette(t *testing.T) *Palette {
	t.Helper()
	return NewPalette(&bytes.Buffer{}, false)
}

func TestSerialFrames(t *testing.T) {
	style, err := plainPalette(t).Style("green")
	if err != nil {
		t.Fatalf("Style: %v", err)
	}

	var texts []string
	for f := range Serial("héllo", style, 10*time.Millisecond) {
		if f.Delay != 10*time.Millisecond {
			t.Fatalf("unexpected delay %v", f.Delay)
		}
		texts = append(texts, f.Text)
	}
	if strings.Join(texts, "") != "héllo" {
		t.Fatalf("unexpected frames %q", texts)
	}
	if len(texts) != 5 {
		t.Fatalf("expected one frame per character, got %d", len(texts))
	}
}

func TestShuffleEndsWithFullText(t *testing.T) {
	p := plainPalette(t)
	style, _ := p.Style("green")
	noise, _ := p.Style("red")
	rng := rand.New(rand.NewPCG(1, 2))

	var frames []Frame
	for f := range Shuffle("secret", style, noise, 0, rng) {
		frames = append(frames, f)
	}
	// 7 steps (0..6 characters) of 2 to 5 flashes each.
	if len(frames) < 14 || len(frames) > 35 {
		t.Fatalf("unexpected frame count %d", len(frames))
	}
	last := frames[len(frames)-1].Text
	if last != "\rsecret" {
		t.Fatalf("last frame = %q", last)
	}
	for _, f := range frames {
		if !strings.HasPrefix(f.Text, "\r") {
			t.Fatalf("frame %q does not redraw the line", f.Text)
		}
	}
	// Intermediate frames carry one noise letter after the prefix.
	if first := frames[0].Text; len(first) != 2 || !strings.ContainsAny(first[1:], asciiLetters) {
		t.Fatalf("first frame = %q", first)
	}
}

func TestShuffleStopsEarly(t *testing.T) {
	p := plainPalette(t)
	style, _ := p.Style("")
	rng := rand.New(rand.NewPCG(3, 4))

	n := 0
	for range Shuffle("abcdef", style, style, 0, rng) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("iteration did not stop, n=%d", n)
	}
}

func TestPlayWritesFrames(t *testing.T) {
	style, _ := plainPalette(t).Style("")
	var out bytes.Buffer
	if err := Play(context.Background(), &out, Serial("abc", style, time.Millisecond)); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if out.String() != "abc" {
		t.Fatalf("Play wrote %q", out.String())
	}
}

func TestPlayCancelled(t *testing.T) {
	style, _ := plainPalette(t).Style("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := Play(ctx, &out, Serial("abc", style, time.Hour))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written, got %q", out.String())
	}

	err = Play(ctx, &out, Instant(Serial("abc", style, time.Hour)))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled for instant frames, got %v", err)
	}
}

func TestInstant(t *testing.T) {
	style, _ := plainPalette(t).Style("")
	for f := range Instant(Serial("abc", style, time.Hour)) {
		if f.Delay != 0 {
			t.Fatalf("Instant left delay %v", f.Delay)
		}
	}
}

func TestPaletteUnknownColor(t *testing.T) {
	if _, err := plainPalette(t).Style("ultraviolet"); !errors.Is(err, ErrUnknownColor) {
		t.Fatalf("expected ErrUnknownColor, got %v", err)
	}
	if err := ValidColor("magenta"); err != nil {
		t.Fatalf("ValidColor: %v", err)
	}
	if err := ValidColor(""); err != nil {
		t.Fatalf("ValidColor empty: %v", err)
	}
	if err := ValidColor("pink"); !errors.Is(err, ErrUnknownColor) {
		t.Fatalf("expected ErrUnknownColor, got %v", err)
	}
}

func TestSerialKeepsControlCharacters(t *testing.T) {
	style, _ := plainPalette(t).Style("green")
	text := "\ta b\n\r\x7fc"

	var out strings.Builder
	for f := range Serial(text, style, 0) {
		out.WriteString(f.Text)
	}
	if out.String() != text {
		t.Fatalf("Serial wrote %q, want %q", out.String(), text)
	}
}

func TestShuffleKeepsTabs(t *testing.T) {
	p := plainPalette(t)
	style, _ := p.Style("green")
	noise, _ := p.Style("red")

	var last string
	for f := range Shuffle("\tx\t y", style, noise, 0, rand.New(rand.NewPCG(5, 6))) {
		last = f.Text
	}
	if last != "\r\tx\t y" {
		t.Fatalf("last frame = %q", last)
	}
}

func TestPaintColorsOnlyPrintableRuns(t *testing.T) {
	p := NewPalette(&bytes.Buffer{}, true)
	p.renderer.SetColorProfile(termenv.ANSI)
	style, err := p.Style("green")
	if err != nil {
		t.Fatalf("Style: %v", err)
	}

	got := paint(style, "ab\tc\n")
	want := style.Render("ab") + "\t" + style.Render("c") + "\n"
	if got != want {
		t.Fatalf("paint = %q, want %q", got, want)
	}
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected color escapes in %q", got)
	}
}

func TestCanRedraw(t *testing.T) {
	for text, want := range map[string]bool{
		"plain":   true,
		"tab\tok": true,
		"":        true,
		"a\nb":    false,
		"a\rb":    false,
		"a\fb":    false,
	} {
		if got := CanRedraw(text); got != want {
			t.Fatalf("CanRedraw(%q) = %v, want %v", text, got, want)
		}
	}
}
