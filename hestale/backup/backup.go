package backup

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"strings"
)

// MaxPayload is the largest passphrase, in bytes, that fits in a share set.
const MaxPayload = 1<<16 - 1

var (
	ErrEmptySecret    = errors.New("backup: nothing to back up")
	ErrSecretTooLarge = errors.New("backup: passphrase too large")
	ErrShareMismatch  = errors.New("backup: shares belong to different backups")
	ErrChecksum       = errors.New("backup: recovered passphrase failed checksum")
	ErrDuplicateShare = errors.New("backup: conflicting shares with the same index")
	ErrNoShares       = errors.New("backup: no shares provided")
)

// Split packs secret and splits it into dataShards+parityShards shares.
func Split(secret string, dataShards, parityShards int) ([]Share, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	payload := []byte(secret)
	if len(payload) > MaxPayload {
		return nil, ErrSecretTooLarge
	}
	codec, err := NewCodec(dataShards, parityShards)
	if err != nil {
		return nil, err
	}

	packed, compressed := pack(payload)
	shards, err := codec.EncodeData(packed)
	if err != nil {
		return nil, err
	}

	sum := checksum(payload)
	shares := make([]Share, len(shards))
	for i, shard := range shards {
		shares[i] = Share{
			DataShards:   dataShards,
			ParityShards: parityShards,
			Index:        i,
			Compressed:   compressed,
			PackedLen:    len(packed),
			Checksum:     sum,
			Data:         shard,
		}
	}
	return shares, nil
}

// Combine recovers the secret from any DataShards of a share set.
// Repeated copies of the same share are tolerated. When the whole set is
// given, the parity is checked and a mismatch yields ErrCorruptShare.
func Combine(shares []Share) (string, error) {
	if len(shares) == 0 {
		return "", ErrNoShares
	}
	first := shares[0]
	codec, err := NewCodec(first.DataShards, first.ParityShards)
	if err != nil {
		return "", err
	}

	shards := make([][]byte, codec.TotalShards())
	for _, s := range shares {
		if !first.compatible(s) {
			return "", ErrShareMismatch
		}
		if s.Index < 0 || s.Index >= len(shards) {
			return "", ErrShareFormat
		}
		if prev := shards[s.Index]; prev != nil {
			if !bytes.Equal(prev, s.Data) {
				return "", ErrDuplicateShare
			}
			continue
		}
		shards[s.Index] = append([]byte(nil), s.Data...)
	}

	if complete(shards) {
		ok, err := codec.Verify(shards)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", ErrCorruptShare
		}
	} else if err := codec.ReconstructData(shards); err != nil {
		return "", err
	}

	payload := codec.Join(shards, first.PackedLen)
	if first.Compressed {
		payload, err = Decompress(payload)
		if err != nil {
			return "", err
		}
	}
	if checksum(payload) != first.Checksum {
		return "", ErrChecksum
	}
	return string(payload), nil
}

// complete reports whether every shard of the set is present.
func complete(shards [][]byte) bool {
	for _, shard := range shards {
		if shard == nil {
			return false
		}
	}
	return true
}

// DecodeShares parses every line, skipping blank ones.
func DecodeShares(lines []string) ([]Share, error) {
	var shares []Share
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		s, err := DecodeShare(line)
		if err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	if len(shares) == 0 {
		return nil, ErrNoShares
	}
	return shares, nil
}

func checksum(payload []byte) [8]byte {
	sum := sha256.Sum256(payload)
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}
