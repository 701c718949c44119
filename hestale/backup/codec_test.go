package backup

import (
	"bytes"
	"strings"
	"testing"
)

func TestCodecRoundTrip(t *testing.T) {
	codec, err := NewCodec(4, 2)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	data := []byte("correct horse battery staple")
	shards, err := codec.EncodeData(data)
	if err != nil {
		t.Fatalf("EncodeData: %v", err)
	}
	if len(shards) != codec.TotalShards() {
		t.Fatalf("expected %d shards, got %d", codec.TotalShards(), len(shards))
	}
	if want := (len(data) + 3) / 4; len(shards[0]) != want {
		t.Fatalf("unexpected shard size %d, want %d", len(shards[0]), want)
	}

	ok, err := codec.Verify(shards)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("verification failed")
	}

	shards[0] = nil
	shards[3] = nil
	if err := codec.ReconstructData(shards); err != nil {
		t.Fatalf("ReconstructData: %v", err)
	}
	if got := codec.Join(shards, len(data)); !bytes.Equal(got, data) {
		t.Fatalf("recovered data does not match original")
	}
}

func TestCodecTooManyLost(t *testing.T) {
	codec, _ := NewCodec(4, 2)
	shards, _ := codec.EncodeData(make([]byte, 64))
	shards[0], shards[1], shards[2] = nil, nil, nil
	if err := codec.ReconstructData(shards); err != ErrTooManyLost {
		t.Fatalf("expected ErrTooManyLost, got %v", err)
	}
}

func TestCompressRoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("never say never ", 32))
	compressed, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(compressed) >= len(data) {
		t.Fatalf("expected compression, got %d >= %d", len(compressed), len(data))
	}
	out, err := Decompress(compressed)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("decompressed data mismatch")
	}
}

func TestDecompressGarbage(t *testing.T) {
	if _, err := Decompress([]byte("not an lz4 frame")); err != ErrDecompressionFailed {
		t.Fatalf("expected ErrDecompressionFailed, got %v", err)
	}
}

func BenchmarkSplit(b *testing.B) {
	secret := "correct horse battery staple"
	b.SetBytes(int64(len(secret)))
	for i := 0; i < b.N; i++ {
		_, _ = Split(secret, 3, 2)
	}
}
