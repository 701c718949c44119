package main

import (
	"log/slog"
)

// logger builds the command logger. When stderr is a terminal it uses
// slog.TextHandler for human-readable output, otherwise slog.JSONHandler.
// Records never carry the passphrase, the password or the derived output.
func (a *app) logger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if a.stderrTTY {
		handler = slog.NewTextHandler(a.stderr, options)
	} else {
		handler = slog.NewJSONHandler(a.stderr, options)
	}
	return slog.New(handler).With("command", "hestale")
}
