package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/hkdf"
)

// KeyLength is the number of hex characters in a derived key.
const KeyLength = 20

var (
	ErrHashFailure   = errors.New("crypto: digest shorter than key length")
	ErrInvalidParams = errors.New("crypto: invalid argon2 parameters")
)

// DeriveKey hashes the passphrase with SHA-256 and returns the first
// KeyLength characters of the lowercase hex digest.
// The passphrase is expected to be normalized by the caller; an empty
// passphrase is accepted and yields the key of the empty string.
func DeriveKey(passphrase string) (string, error) {
	sum := sha256.Sum256([]byte(passphrase))
	return truncateHex(sum[:])
}

// StretchParams configures the Argon2id pass of DeriveStretchedKey.
type StretchParams struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
}

// DefaultStretchParams returns time=1, 64 MiB, 4 threads.
func DefaultStretchParams() StretchParams {
	return StretchParams{Time: 1, MemoryKiB: 64 * 1024, Threads: 4}
}

// Validate reports whether every parameter is non-zero.
func (p StretchParams) Validate() error {
	if p.Time == 0 || p.MemoryKiB == 0 || p.Threads == 0 {
		return ErrInvalidParams
	}
	return nil
}

// DeriveStretchedKey derives a KeyLength hex key with Argon2id, salted by the
// label, then expanded through HKDF-SHA256.
// The same (passphrase, label, params) always produce the same key.
func DeriveStretchedKey(passphrase, label string, params StretchParams) (string, error) {
	if err := params.Validate(); err != nil {
		return "", err
	}
	salt := sha256.Sum256([]byte("hestale/" + label))
	stretched := argon2.IDKey([]byte(passphrase), salt[:16], params.Time, params.MemoryKiB, params.Threads, 32)

	key, err := expand(stretched, []byte("hestale-experimental-key"), KeyLength/2)
	if err != nil {
		return "", err
	}
	return truncateHex(key)
}

// expand derives length bytes from secret using HKDF-SHA256 with a zero salt.
func expand(secret, info []byte, length int) ([]byte, error) {
	hk := hkdf.New(sha256.New, secret, nil, info)
	key := make([]byte, length)
	if _, err := io.ReadFull(hk, key); err != nil {
		return nil, err
	}
	return key, nil
}

func truncateHex(digest []byte) (string, error) {
	h := hex.EncodeToString(digest)
	if len(h) < KeyLength {
		return "", ErrHashFailure
	}
	return h[:KeyLength], nil
}
