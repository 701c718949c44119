// Package clipboard copies text to the system clipboard through the
// terminal, using the OSC 52 escape sequence.
//
// OSC 52 works over SSH and inside tmux or screen as long as the outer
// terminal supports it. There is no read-back: a terminal that ignores the
// sequence fails silently.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// Copy writes the OSC 52 sequence for text to w, wrapped for tmux or
// screen when getenv reports one of them.
func Copy(w io.Writer, text string, getenv func(string) string) error {
	seq := osc52.New(text)
	switch multiplexer(getenv) {
	case "tmux":
		seq = seq.Tmux()
	case "screen":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(w); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// CopyToTerminal writes the sequence directly to the controlling terminal so
// that redirected stdout or stderr do not swallow it.
func CopyToTerminal(text string) error {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	defer tty.Close()
	return Copy(tty, text, os.Getenv)
}

func multiplexer(getenv func(string) string) string {
	term := getenv("TERM")
	switch {
	case getenv("TMUX") != "" || strings.HasPrefix(term, "tmux"):
		return "tmux"
	case getenv("STY") != "" || strings.HasPrefix(term, "screen"):
		return "screen"
	default:
		return ""
	}
}
