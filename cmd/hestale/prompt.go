package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// readLine reads one line from stdin without its line terminator.
// A final line without a newline is returned; a bare EOF is an error.
func (a *app) readLine() (string, error) {
	line, err := a.stdin.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSecret reads a line with echo disabled when stdin is a terminal.
func (a *app) readSecret() (string, error) {
	if !a.interactive() {
		return a.readLine()
	}
	secret, err := term.ReadPassword(a.stdinFD)
	fmt.Fprintln(a.stdout)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// ask types the prompt and reads the answer.
func (a *app) ask(ctx context.Context, fx *effects, name string, hidden bool) (string, error) {
	if err := fx.serial(ctx, name+": ", fx.colors.PromptColor); err != nil {
		return "", err
	}
	var answer string
	var err error
	if hidden {
		answer, err = a.readSecret()
	} else {
		answer, err = a.readLine()
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", strings.ToLower(name), err)
	}
	return answer, nil
}
