// hestale derives a reproducible password from a memorable password, a
// static label and a secret passphrase, prints it with a typewriter effect
// and copies it to the clipboard.
//
// Usage:
//
//	hestale [-p password] [-s static] [-c passphrase] [-S] [-b]
//	hestale backup [--data N] [--parity M]
//	hestale recover [-S] [share...]
//	hestale version
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/TheusHen/hestale/hestale/clipboard"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdin, os.Stdout, os.Stderr).run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var usage *usageError
		if errors.As(err, &usage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// app carries the process I/O so that tests can drive the CLI in memory.
type app struct {
	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer

	// stdinFD is the terminal file descriptor of stdin, or -1.
	stdinFD    int
	stdoutTTY  bool
	stderrTTY  bool
	getenv     func(string) string
	copyToClip func(string) error
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	a := &app{
		stdin:      bufio.NewReader(stdin),
		stdout:     stdout,
		stderr:     stderr,
		stdinFD:    -1,
		stdoutTTY:  isTerminal(stdout),
		stderrTTY:  isTerminal(stderr),
		getenv:     os.Getenv,
		copyToClip: clipboard.CopyToTerminal,
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		a.stdinFD = int(f.Fd())
	}
	return a
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "backup":
			return a.runBackup(ctx, args[1:])
		case "recover":
			return a.runRecover(ctx, args[1:])
		case "version":
			fmt.Fprintf(a.stdout, "hestale %s\n", version)
			return nil
		}
	}
	return a.runDerive(ctx, args)
}

func (a *app) interactive() bool { return a.stdinFD >= 0 }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// usageError marks errors caused by bad invocation. They exit with status 2.
type usageError struct {
	err error
}

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }
