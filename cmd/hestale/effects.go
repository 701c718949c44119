package main

import (
	"context"
	"io"
	"iter"
	"math/rand/v2"
	"time"

	"github.com/TheusHen/hestale/hestale/config"
	"github.com/TheusHen/hestale/hestale/typewriter"
)

// effects renders the decorative output of one invocation.
type effects struct {
	out      io.Writer
	palette  *typewriter.Palette
	colors   config.EffectsConfig
	interval time.Duration
	rng      *rand.Rand
	tty      bool
}

// newEffects builds the renderer for out. Delays are dropped when effects
// are disabled or out is not a terminal.
func newEffects(out io.Writer, cfg config.EffectsConfig, tty bool) *effects {
	interval := cfg.Interval
	if !cfg.Enabled || !tty {
		interval = 0
	}
	return &effects{
		out:      out,
		palette:  typewriter.NewPalette(out, tty),
		colors:   cfg,
		interval: interval,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		tty:      tty,
	}
}

// serial types text in the named color.
func (e *effects) serial(ctx context.Context, text, color string) error {
	style, err := e.palette.Style(color)
	if err != nil {
		return err
	}
	return e.play(ctx, typewriter.Serial(text, style, e.interval))
}

// reveal shows the derived password with the shuffle effect, which redraws
// over the banner. Off a terminal, or when the password holds a line break,
// the password is written as is on the line after the banner.
func (e *effects) reveal(ctx context.Context, text string) error {
	style, err := e.palette.Style(e.colors.OutputColor)
	if err != nil {
		return err
	}
	if !e.tty || !typewriter.CanRedraw(text) {
		if _, err := io.WriteString(e.out, "\n"); err != nil {
			return err
		}
		return e.play(ctx, typewriter.Serial(text, style, e.interval))
	}
	noise, err := e.palette.Style(e.colors.NoiseColor)
	if err != nil {
		return err
	}
	return e.play(ctx, typewriter.Shuffle(text, style, noise, e.interval, e.rng))
}

func (e *effects) play(ctx context.Context, frames iter.Seq[typewriter.Frame]) error {
	if e.interval == 0 {
		frames = typewriter.Instant(frames)
	}
	return typewriter.Play(ctx, e.out, frames)
}
