package backup

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// SharePrefix starts every encoded share.
	SharePrefix = "hst1-"

	shareVersion = 1

	// Header format:
	//
	//	1 byte:  version
	//	1 byte:  data shards
	//	1 byte:  parity shards
	//	1 byte:  shard index
	//	1 byte:  flags
	//	2 bytes: packed payload length (big endian)
	//	8 bytes: SHA-256 prefix of the unpacked payload
	headerSize = 15

	flagCompressed = 1 << 0
)

var (
	ErrShareFormat  = errors.New("backup: malformed share")
	ErrShareVersion = errors.New("backup: unsupported share version")
)

// Share is one Reed-Solomon shard together with everything needed to place
// it and to check the recovered payload.
type Share struct {
	DataShards   int
	ParityShards int
	Index        int
	Compressed   bool
	PackedLen    int
	Checksum     [8]byte
	Data         []byte
}

// Encode renders the share as a single line of text.
func (s Share) Encode() string {
	buf := make([]byte, headerSize+len(s.Data))
	buf[0] = shareVersion
	buf[1] = byte(s.DataShards)
	buf[2] = byte(s.ParityShards)
	buf[3] = byte(s.Index)
	if s.Compressed {
		buf[4] |= flagCompressed
	}
	binary.BigEndian.PutUint16(buf[5:7], uint16(s.PackedLen))
	copy(buf[7:15], s.Checksum[:])
	copy(buf[headerSize:], s.Data)
	return SharePrefix + hex.EncodeToString(buf)
}

// String identifies the share without revealing its data.
func (s Share) String() string {
	return fmt.Sprintf("share %d/%d (%d data, %d parity)", s.Index+1, s.DataShards+s.ParityShards, s.DataShards, s.ParityShards)
}

// DecodeShare parses a line produced by Share.Encode.
// Surrounding whitespace is ignored.
func DecodeShare(line string) (Share, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, SharePrefix) {
		return Share{}, fmt.Errorf("%w: missing %q prefix", ErrShareFormat, SharePrefix)
	}
	buf, err := hex.DecodeString(line[len(SharePrefix):])
	if err != nil {
		return Share{}, fmt.Errorf("%w: %v", ErrShareFormat, err)
	}
	if len(buf) <= headerSize {
		return Share{}, fmt.Errorf("%w: share too short", ErrShareFormat)
	}
	if buf[0] != shareVersion {
		return Share{}, fmt.Errorf("%w: %d", ErrShareVersion, buf[0])
	}

	s := Share{
		DataShards:   int(buf[1]),
		ParityShards: int(buf[2]),
		Index:        int(buf[3]),
		Compressed:   buf[4]&flagCompressed != 0,
		PackedLen:    int(binary.BigEndian.Uint16(buf[5:7])),
		Data:         buf[headerSize:],
	}
	copy(s.Checksum[:], buf[7:15])

	if s.DataShards == 0 || s.ParityShards == 0 || s.Index >= s.DataShards+s.ParityShards {
		return Share{}, fmt.Errorf("%w: bad shard layout", ErrShareFormat)
	}
	if s.PackedLen == 0 || s.PackedLen > s.DataShards*len(s.Data) {
		return Share{}, fmt.Errorf("%w: bad payload length", ErrShareFormat)
	}
	return s, nil
}

// compatible reports whether s and o belong to the same backup.
func (s Share) compatible(o Share) bool {
	return s.DataShards == o.DataShards &&
		s.ParityShards == o.ParityShards &&
		s.Compressed == o.Compressed &&
		s.PackedLen == o.PackedLen &&
		s.Checksum == o.Checksum &&
		len(s.Data) == len(o.Data)
}
