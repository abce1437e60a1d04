package statistics

import (
	"encoding/hex"
	"fmt"

	"github.com/soltixdb/colstats/internal/datatypes"
)

// Summary is a display form of any statistics variant; bounds are rendered as strings
type Summary struct {
	Kind          string             `json:"kind"`
	DataType      datatypes.DataType `json:"data_type"`
	NullCount     *int64             `json:"null_count,omitempty"`
	DistinctCount *int64             `json:"distinct_count,omitempty"`
	Min           *string            `json:"min,omitempty"`
	Max           *string            `json:"max,omitempty"`
}

// Summarize renders s for display. Fixed-size binary bounds are hex encoded and
// decimal bounds are formatted with the type's scale.
func Summarize(s Statistics) Summary {
	out := Summary{
		Kind:      s.Kind().String(),
		DataType:  s.DataType(),
		NullCount: s.NullCount(),
	}

	switch v := s.(type) {
	case *FixedLenStatistics:
		out.DistinctCount = v.Distinct
		out.Min = hexBound(v.MinValue)
		out.Max = hexBound(v.MaxValue)
	case *DecimalStatistics:
		out.DistinctCount = v.Distinct
		scale := v.Type.Scale
		if v.MinValue != nil {
			str := v.MinValue.FormatScaled(scale)
			out.Min = &str
		}
		if v.MaxValue != nil {
			str := v.MaxValue.FormatScaled(scale)
			out.Max = &str
		}
	case *PrimitiveStatistics[int32]:
		out.DistinctCount = v.Distinct
		out.Min, out.Max = formatBound(v.MinValue), formatBound(v.MaxValue)
	case *PrimitiveStatistics[int64]:
		out.DistinctCount = v.Distinct
		out.Min, out.Max = formatBound(v.MinValue), formatBound(v.MaxValue)
	case *PrimitiveStatistics[float32]:
		out.DistinctCount = v.Distinct
		out.Min, out.Max = formatBound(v.MinValue), formatBound(v.MaxValue)
	case *PrimitiveStatistics[float64]:
		out.DistinctCount = v.Distinct
		out.Min, out.Max = formatBound(v.MinValue), formatBound(v.MaxValue)
	}
	return out
}

func hexBound(b []byte) *string {
	if b == nil {
		return nil
	}
	str := hex.EncodeToString(b)
	return &str
}

func formatBound[T int32 | int64 | float32 | float64](v *T) *string {
	if v == nil {
		return nil
	}
	str := fmt.Sprint(*v)
	return &str
}
