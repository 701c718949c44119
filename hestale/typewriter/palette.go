package typewriter

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var ErrUnknownColor = errors.New("typewriter: unknown color")

// colors maps the basic terminal color names to ANSI indexes.
var colors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
}

// ValidColor reports whether name is a known color. The empty name means
// no color.
func ValidColor(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := colors[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return nil
}

// Palette builds styles bound to one output.
type Palette struct {
	renderer *lipgloss.Renderer
}

// NewPalette detects the color profile of w. When color is false all
// styles render plain text.
func NewPalette(w io.Writer, color bool) *Palette {
	renderer := lipgloss.NewRenderer(w)
	if !color {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Palette{renderer: renderer}
}

// Style returns a style with the named foreground color.
func (p *Palette) Style(name string) (lipgloss.Style, error) {
	style := p.renderer.NewStyle()
	if name == "" {
		return style, nil
	}
	code, ok := colors[name]
	if !ok {
		return style, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return style.Foreground(lipgloss.Color(code)), nil
}
