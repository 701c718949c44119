package hestale

import (
	"strings"

	"github.com/TheusHen/hestale/hestale/crypto"
	"github.com/TheusHen/hestale/hestale/passphrase"
)

// DeriveOutput mixes static and password with the key derived from
// passphrase. The passphrase must already be normalized.
func DeriveOutput(static, password, passphrase string) (string, error) {
	key, err := crypto.DeriveKey(passphrase)
	if err != nil {
		return "", err
	}
	return crypto.Mix(static, password, key)
}

// Request holds the raw inputs of a single derivation.
type Request struct {
	Static     string
	Password   string
	Passphrase string
}

// Normalized returns a copy of r with the label lowercased and the
// passphrase normalized. The password is left untouched.
func (r Request) Normalized() Request {
	return Request{
		Static:     NormalizeLabel(r.Static),
		Password:   r.Password,
		Passphrase: passphrase.Normalize(r.Passphrase),
	}
}

// NormalizeLabel lowercases a static label.
func NormalizeLabel(label string) string {
	return strings.ToLower(label)
}
