package hestale

import (
	"errors"
	"fmt"

	"github.com/TheusHen/hestale/hestale/crypto"
)

var ErrUnknownStrategy = errors.New("hestale: unknown strategy")

// Kind selects a derivation strategy.
type Kind uint8

const (
	Standard Kind = iota
	Experimental
)

func (k Kind) String() string {
	switch k {
	case Standard:
		return "standard"
	case Experimental:
		return "experimental"
	default:
		return "unknown"
	}
}

// ParseKind parses the name returned by Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "standard":
		return Standard, nil
	case "experimental", "beta":
		return Experimental, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Strategy turns a request into a derived password.
// Implementations normalize the request themselves and hold no mutable state.
type Strategy interface {
	Kind() Kind
	Derive(req Request) (string, error)
}

// NewStrategy returns the strategy for kind. params are only used by
// Experimental.
func NewStrategy(kind Kind, params crypto.StretchParams) (Strategy, error) {
	switch kind {
	case Standard:
		return standardStrategy{}, nil
	case Experimental:
		if err := params.Validate(); err != nil {
			return nil, err
		}
		return experimentalStrategy{params: params}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, kind)
	}
}

// standardStrategy is the SHA-256 key followed by Mix.
type standardStrategy struct{}

func (standardStrategy) Kind() Kind { return Standard }

func (standardStrategy) Derive(req Request) (string, error) {
	req = req.Normalized()
	return DeriveOutput(req.Static, req.Password, req.Passphrase)
}

// experimentalStrategy stretches the passphrase with Argon2id salted by the
// label before mixing. Its outputs differ from Standard for the same inputs.
type experimentalStrategy struct {
	params crypto.StretchParams
}

func (experimentalStrategy) Kind() Kind { return Experimental }

func (s experimentalStrategy) Derive(req Request) (string, error) {
	req = req.Normalized()
	key, err := crypto.DeriveStretchedKey(req.Passphrase, req.Static, s.params)
	if err != nil {
		return "", err
	}
	return crypto.Mix(req.Static, req.Password, key)
}
