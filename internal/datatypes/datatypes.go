// Package datatypes defines the logical column types statistics are reconstructed into.
package datatypes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TypeID identifies a logical type variant
type TypeID uint8

const (
	Null TypeID = iota
	Boolean
	Int8
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Float16
	Float32
	Float64
	Utf8
	Binary
	Date32
	Date64
	Timestamp
	Interval
	FixedSizeBinaryID
	DecimalID
)

var typeNames = map[TypeID]string{
	Null:              "Null",
	Boolean:           "Boolean",
	Int8:              "Int8",
	Int16:             "Int16",
	Int32:             "Int32",
	Int64:             "Int64",
	UInt8:             "UInt8",
	UInt16:            "UInt16",
	UInt32:            "UInt32",
	UInt64:            "UInt64",
	Float16:           "Float16",
	Float32:           "Float32",
	Float64:           "Float64",
	Utf8:              "Utf8",
	Binary:            "Binary",
	Date32:            "Date32",
	Date64:            "Date64",
	Timestamp:         "Timestamp",
	Interval:          "Interval",
	FixedSizeBinaryID: "FixedSizeBinary",
	DecimalID:         "Decimal",
}

// DataType is a logical type. Only the parameters relevant to ID are set:
// ByteWidth for FixedSizeBinary, Precision and Scale for Decimal.
type DataType struct {
	ID        TypeID
	ByteWidth int
	Precision int
	Scale     int
}

// Of returns a parameterless type
func Of(id TypeID) DataType {
	return DataType{ID: id}
}

// FixedSizeBinary returns a fixed-size binary type of the given width
func FixedSizeBinary(width int) DataType {
	return DataType{ID: FixedSizeBinaryID, ByteWidth: width}
}

// Decimal returns a fixed-precision decimal type
func Decimal(precision, scale int) DataType {
	return DataType{ID: DecimalID, Precision: precision, Scale: scale}
}

// IsDecimal reports whether t is a Decimal type
func (t DataType) IsDecimal() bool {
	return t.ID == DecimalID
}

// IsFixedSizeBinary reports whether t is a FixedSizeBinary type
func (t DataType) IsFixedSizeBinary() bool {
	return t.ID == FixedSizeBinaryID
}

// Equal compares two types including their parameters
func (t DataType) Equal(other DataType) bool {
	return t == other
}

func (t DataType) String() string {
	switch t.ID {
	case FixedSizeBinaryID:
		return fmt.Sprintf("FixedSizeBinary(%d)", t.ByteWidth)
	case DecimalID:
		return fmt.Sprintf("Decimal(%d, %d)", t.Precision, t.Scale)
	}
	if name, ok := typeNames[t.ID]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", t.ID)
}

// MarshalText encodes the type as its String form
func (t DataType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses the String form
func (t *DataType) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

var paramPattern = regexp.MustCompile(`^(\w+)\(\s*(\d+)\s*(?:,\s*(-?\d+)\s*)?\)$`)

// Parse parses a type name such as "Int32", "FixedSizeBinary(16)" or "Decimal(9, 2)".
// Matching is case-insensitive.
func Parse(s string) (DataType, error) {
	s = strings.TrimSpace(s)
	if m := paramPattern.FindStringSubmatch(s); m != nil {
		first, _ := strconv.Atoi(m[2])
		switch strings.ToLower(m[1]) {
		case "fixedsizebinary":
			if m[3] != "" {
				return DataType{}, fmt.Errorf("FixedSizeBinary takes one parameter: %q", s)
			}
			if first <= 0 {
				return DataType{}, fmt.Errorf("FixedSizeBinary width must be positive: %q", s)
			}
			return FixedSizeBinary(first), nil
		case "decimal":
			if m[3] == "" {
				return Decimal(first, 0), nil
			}
			scale, _ := strconv.Atoi(m[3])
			return Decimal(first, scale), nil
		}
		return DataType{}, fmt.Errorf("unknown parameterized type: %q", s)
	}

	for id, name := range typeNames {
		if id == FixedSizeBinaryID || id == DecimalID {
			continue
		}
		if strings.EqualFold(name, s) {
			return Of(id), nil
		}
	}
	return DataType{}, fmt.Errorf("unknown data type: %q", s)
}
