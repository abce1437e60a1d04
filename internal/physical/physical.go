// Package physical holds column-chunk statistics as a Parquet decoder hands them
// over: counts plus raw, untyped min/max bytes.
package physical

import "fmt"

// FixedLenStatistics are the stored statistics of a FIXED_LEN_BYTE_ARRAY column chunk.
// A nil pointer or slice means the writer omitted that value.
type FixedLenStatistics struct {
	NullCount     *int64 `json:"null_count,omitempty"`
	DistinctCount *int64 `json:"distinct_count,omitempty"`
	MinValue      []byte `json:"min_value,omitempty"`
	MaxValue      []byte `json:"max_value,omitempty"`
	ByteWidth     int    `json:"byte_width"`
}

// Validate checks that the byte width is positive and that present bounds match it
func (s *FixedLenStatistics) Validate() error {
	if s.ByteWidth <= 0 {
		return fmt.Errorf("invalid fixed len byte width: %d", s.ByteWidth)
	}
	if s.MinValue != nil && len(s.MinValue) != s.ByteWidth {
		return fmt.Errorf("min value has %d bytes, expected %d", len(s.MinValue), s.ByteWidth)
	}
	if s.MaxValue != nil && len(s.MaxValue) != s.ByteWidth {
		return fmt.Errorf("max value has %d bytes, expected %d", len(s.MaxValue), s.ByteWidth)
	}
	return nil
}

// Int64 returns a pointer to v, for filling the optional counts
func Int64(v int64) *int64 {
	return &v
}
