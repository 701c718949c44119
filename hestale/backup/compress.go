package backup

import (
	"bytes"
	"errors"
	"io"

	"github.com/pierrec/lz4/v4"
)

var (
	ErrCompressionFailed   = errors.New("backup: compression failed")
	ErrDecompressionFailed = errors.New("backup: decompression failed")
)

// Compress compresses data as an LZ4 frame at the highest level.
// Shares are written down by hand, so ratio matters more than speed.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if err := w.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
		return nil, ErrCompressionFailed
	}
	if _, err := w.Write(data); err != nil {
		return nil, ErrCompressionFailed
	}
	if err := w.Close(); err != nil {
		return nil, ErrCompressionFailed
	}
	return buf.Bytes(), nil
}

// Decompress decompresses an LZ4 frame of at most MaxPayload bytes.
func Decompress(data []byte) ([]byte, error) {
	r := lz4.NewReader(bytes.NewReader(data))

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, MaxPayload+1))
	if err != nil || n > MaxPayload {
		return nil, ErrDecompressionFailed
	}
	return buf.Bytes(), nil
}

// pack compresses payload if that makes it smaller and reports whether it did.
func pack(payload []byte) ([]byte, bool) {
	compressed, err := Compress(payload)
	if err != nil || len(compressed) >= len(payload) {
		return payload, false
	}
	return compressed, true
}
