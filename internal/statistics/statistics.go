// Package statistics reconstructs logically typed column-chunk statistics from the
// physical statistics stored in Parquet files.
//
// Every variant implements Statistics. The variant set is closed: callers either switch on
// Kind or use As to get the concrete type, and must handle a mismatch.
package statistics

import (
	"github.com/soltixdb/colstats/internal/datatypes"
	"github.com/soltixdb/colstats/internal/decimal128"
)

// Kind tags the concrete statistics variant
type Kind uint8

const (
	KindFixedLen Kind = iota
	KindPrimitive
)

func (k Kind) String() string {
	switch k {
	case KindFixedLen:
		return "fixed_len"
	case KindPrimitive:
		return "primitive"
	default:
		return "unknown"
	}
}

// Statistics is the read-only view shared by all statistics variants
type Statistics interface {
	// DataType returns the logical type the statistics describe
	DataType() datatypes.DataType
	// NullCount returns the stored null count, nil if the file omitted it
	NullCount() *int64
	// Kind returns the variant tag
	Kind() Kind

	sealed()
}

// As returns s as the concrete variant T, or false if s is a different variant
func As[T Statistics](s Statistics) (T, bool) {
	v, ok := s.(T)
	return v, ok
}

// Native is the set of value types a PrimitiveStatistics can hold
type Native interface {
	~int32 | ~int64 | ~float32 | ~float64 | decimal128.Num
}

// PrimitiveStatistics holds typed min/max bounds of a numeric column chunk
type PrimitiveStatistics[T Native] struct {
	Type     datatypes.DataType `json:"data_type"`
	Nulls    *int64             `json:"null_count,omitempty"`
	Distinct *int64             `json:"distinct_count,omitempty"`
	MinValue *T                 `json:"min_value,omitempty"`
	MaxValue *T                 `json:"max_value,omitempty"`
}

// DecimalStatistics are the statistics of a decimal column, bounds held as 128-bit integers
type DecimalStatistics = PrimitiveStatistics[decimal128.Num]

func (s *PrimitiveStatistics[T]) DataType() datatypes.DataType { return s.Type }
func (s *PrimitiveStatistics[T]) NullCount() *int64            { return s.Nulls }
func (s *PrimitiveStatistics[T]) Kind() Kind                   { return KindPrimitive }
func (s *PrimitiveStatistics[T]) sealed()                      {}

// DistinctCount returns the stored distinct count, nil if absent
func (s *PrimitiveStatistics[T]) DistinctCount() *int64 {
	return s.Distinct
}

// FixedLenStatistics are fixed-size binary statistics, bounds kept verbatim
type FixedLenStatistics struct {
	Type     datatypes.DataType `json:"data_type"`
	Nulls    *int64             `json:"null_count,omitempty"`
	Distinct *int64             `json:"distinct_count,omitempty"`
	MinValue []byte             `json:"min_value,omitempty"`
	MaxValue []byte             `json:"max_value,omitempty"`
}

func (s *FixedLenStatistics) DataType() datatypes.DataType { return s.Type }
func (s *FixedLenStatistics) NullCount() *int64            { return s.Nulls }
func (s *FixedLenStatistics) Kind() Kind                   { return KindFixedLen }
func (s *FixedLenStatistics) sealed()                      {}

// DistinctCount returns the stored distinct count, nil if absent
func (s *FixedLenStatistics) DistinctCount() *int64 {
	return s.Distinct
}
