package statistics

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/soltixdb/colstats/internal/datatypes"
	"github.com/soltixdb/colstats/internal/decimal128"
	"github.com/soltixdb/colstats/internal/physical"
)

// maxDecimalBytes is the widest fixed-len array a 128-bit decimal can be read from
const maxDecimalBytes = 16

// Padding selects how a fixed-len decimal narrower than 16 bytes is widened
type Padding uint8

const (
	// PaddingZero prepends zero bytes. Negative values narrower than 16 bytes
	// decode as large positive numbers under this mode.
	PaddingZero Padding = iota
	// PaddingSignExtend prepends copies of the sign bit (two's complement widening)
	PaddingSignExtend
)

func (p Padding) String() string {
	switch p {
	case PaddingZero:
		return "zero"
	case PaddingSignExtend:
		return "sign"
	default:
		return fmt.Sprintf("padding(%d)", uint8(p))
	}
}

// ParsePadding parses "zero" or "sign"
func ParsePadding(s string) (Padding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero":
		return PaddingZero, nil
	case "sign", "sign_extend":
		return PaddingSignExtend, nil
	}
	return PaddingZero, fmt.Errorf("unknown decimal padding %q (expected zero or sign)", s)
}

// Options tune fixed-len reconstruction
type Options struct {
	Padding Padding
}

// DefaultOptions returns the zero-padding behavior
func DefaultOptions() Options {
	return Options{Padding: PaddingZero}
}

// FromFixedLen reconstructs the statistics of a FIXED_LEN_BYTE_ARRAY column chunk as dataType,
// using DefaultOptions.
func FromFixedLen(stats *physical.FixedLenStatistics, dataType datatypes.DataType) (Statistics, error) {
	return FromFixedLenWithOptions(stats, dataType, DefaultOptions())
}

// FromFixedLenWithOptions is the single entry point for fixed-len column chunks:
// Decimal reads the bounds as 128-bit integers, FixedSizeBinary keeps them verbatim,
// and any other logical type fails with ErrorKindNotYetImplemented.
func FromFixedLenWithOptions(stats *physical.FixedLenStatistics, dataType datatypes.DataType, opts Options) (Statistics, error) {
	switch dataType.ID {
	case datatypes.DecimalID:
		s, err := DecimalFromFixedLen(stats, dataType, opts)
		if err != nil {
			return nil, err
		}
		return s, nil
	case datatypes.FixedSizeBinaryID:
		return NewFixedLenStatistics(stats), nil
	default:
		return nil, NewErrorWithDetails(ErrorKindNotYetImplemented,
			fmt.Sprintf("can't read %s from parquet fixed len byte array", dataType),
			map[string]interface{}{"data_type": dataType.String()})
	}
}

// NewFixedLenStatistics copies stats verbatim and types them as FixedSizeBinary
// of the stored byte width. It never fails.
func NewFixedLenStatistics(stats *physical.FixedLenStatistics) *FixedLenStatistics {
	return &FixedLenStatistics{
		Type:     datatypes.FixedSizeBinary(stats.ByteWidth),
		Nulls:    cloneCount(stats.NullCount),
		Distinct: cloneCount(stats.DistinctCount),
		MinValue: cloneBytes(stats.MinValue),
		MaxValue: cloneBytes(stats.MaxValue),
	}
}

// DecimalFromFixedLen reads the bounds of stats as big-endian 128-bit integers.
// Widths above 16 bytes fail with ErrorKindExternalFormat. A bound that does not
// widen to exactly 16 bytes is left absent.
func DecimalFromFixedLen(stats *physical.FixedLenStatistics, dataType datatypes.DataType, opts Options) (*DecimalStatistics, error) {
	width := stats.ByteWidth
	if width > maxDecimalBytes {
		return nil, NewErrorWithDetails(ErrorKindExternalFormat,
			fmt.Sprintf("can't deserialize i128 from fixed len byte array with length %d", width),
			map[string]interface{}{"byte_width": width, "data_type": dataType.String()})
	}

	pad := maxDecimalBytes - width
	return &DecimalStatistics{
		Type:     dataType,
		Nulls:    cloneCount(stats.NullCount),
		Distinct: cloneCount(stats.DistinctCount),
		MinValue: widenDecimal(stats.MinValue, pad, opts.Padding),
		MaxValue: widenDecimal(stats.MaxValue, pad, opts.Padding),
	}, nil
}

func widenDecimal(value []byte, pad int, mode Padding) *decimal128.Num {
	if value == nil {
		return nil
	}

	fill := byte(0x00)
	if mode == PaddingSignExtend && len(value) > 0 && value[0]&0x80 != 0 {
		fill = 0xFF
	}

	buf := make([]byte, 0, maxDecimalBytes)
	for i := 0; i < pad; i++ {
		buf = append(buf, fill)
	}
	buf = append(buf, value...)
	if len(buf) != maxDecimalBytes {
		return nil
	}

	var be [maxDecimalBytes]byte
	copy(be[:], buf)
	n := decimal128.FromBigEndian(be)
	return &n
}

func cloneCount(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return bytes.Clone(b)
}
