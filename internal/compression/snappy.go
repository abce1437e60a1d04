package compression

import (
	"fmt"

	"github.com/golang/snappy"
)

// MaxDecodedSize bounds the output of a single Snappy block. Statistics snapshots are small;
// anything larger is a corrupt or foreign file.
const MaxDecodedSize = 64 << 20

// SnappyCompressor compresses statistics snapshots as a single Snappy block
type SnappyCompressor struct {
	maxDecoded int
}

// NewSnappyCompressor creates a Snappy compressor limited to MaxDecodedSize
func NewSnappyCompressor() *SnappyCompressor {
	return &SnappyCompressor{maxDecoded: MaxDecodedSize}
}

func (s *SnappyCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	dst := make([]byte, snappy.MaxEncodedLen(len(data)))
	return snappy.Encode(dst, data), nil
}

// Decompress checks the declared length before allocating
func (s *SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, fmt.Errorf("snappy header: %w", err)
	}
	if s.maxDecoded > 0 && n > s.maxDecoded {
		return nil, fmt.Errorf("snappy block decodes to %d bytes, limit is %d", n, s.maxDecoded)
	}

	out, err := snappy.Decode(make([]byte, n), data)
	if err != nil {
		return nil, fmt.Errorf("snappy decompress failed: %w", err)
	}
	return out, nil
}

func (s *SnappyCompressor) Algorithm() Algorithm {
	return Snappy
}
