package compression

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestSnappyCompressor_RoundTrip(t *testing.T) {
	compressor := NewSnappyCompressor()

	rng := rand.New(rand.NewSource(7))
	random := make([]byte, 4096)
	rng.Read(random)

	inputs := map[string][]byte{
		"json":   []byte(`{"path":"a.parquet","columns":[{"min":"0001","max":"00ff"}]}`),
		"binary": random,
		"repeat": bytes.Repeat([]byte{0x00, 0x01}, 10000),
	}

	for name, original := range inputs {
		t.Run(name, func(t *testing.T) {
			compressed, err := compressor.Compress(original)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}

			decompressed, err := compressor.Decompress(compressed)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(original, decompressed) {
				t.Errorf("Decompressed data does not match original")
			}
		})
	}
}

func TestSnappyCompressor_EmptyData(t *testing.T) {
	compressor := NewSnappyCompressor()

	compressed, err := compressor.Compress([]byte{})
	if err != nil {
		t.Fatalf("Compress empty data failed: %v", err)
	}
	if len(compressed) != 0 {
		t.Errorf("Expected empty compressed data, got length %d", len(compressed))
	}

	decompressed, err := compressor.Decompress([]byte{})
	if err != nil {
		t.Fatalf("Decompress empty data failed: %v", err)
	}
	if len(decompressed) != 0 {
		t.Errorf("Expected empty decompressed data, got length %d", len(decompressed))
	}
}

func TestSnappyCompressor_InvalidCompressedData(t *testing.T) {
	compressor := NewSnappyCompressor()

	if _, err := compressor.Decompress([]byte{0xFF, 0xFF, 0xFF, 0xFF}); err == nil {
		t.Error("Expected error when decompressing invalid data")
	}
}

func TestSnappyCompressor_DecodedSizeLimit(t *testing.T) {
	compressor := &SnappyCompressor{maxDecoded: 16}

	compressed, err := compressor.Compress(bytes.Repeat([]byte{'x'}, 64))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if _, err := compressor.Decompress(compressed); err == nil {
		t.Error("Expected error when decoded size exceeds the limit")
	}

	small, err := compressor.Compress([]byte("0123456789"))
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	out, err := compressor.Decompress(small)
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if string(out) != "0123456789" {
		t.Errorf("Unexpected output %q", out)
	}
}
