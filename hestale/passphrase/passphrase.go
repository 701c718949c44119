// Package passphrase normalizes, loads and stores the hestale passphrase.
//
// The store is a plain-text file whose first line is the passphrase. It is
// overwritten wholesale on every Store and has no locking: concurrent writers
// race and the last one wins.
package passphrase

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// DefaultPath is the store location used when none is configured.
const DefaultPath = "passphrase.txt"

var (
	ErrNotFound  = errors.New("passphrase: no saved passphrase")
	ErrEmpty     = errors.New("passphrase: saved passphrase is empty")
	ErrMultiline = errors.New("passphrase: passphrase spans multiple lines")
)

// Normalize lowercases s and strips surrounding whitespace.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Load reads the first line of the file at path and returns it normalized.
// A missing file yields ErrNotFound. A blank first line returns "" together
// with ErrEmpty so the caller can decide whether to continue.
func Load(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	phrase := Normalize(line)
	if phrase == "" {
		return "", ErrEmpty
	}
	return phrase, nil
}

// Store overwrites the file at path with phrase followed by a newline.
// The file is created with mode 0600.
func Store(path, phrase string) error {
	if strings.ContainsAny(strings.TrimSpace(phrase), "\r\n") {
		return ErrMultiline
	}
	if err := os.WriteFile(path, []byte(phrase+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
