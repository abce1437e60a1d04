// Package testutil builds Parquet fixtures for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

// Fixture column indexes. parquet.Group orders fields by name.
const (
	ColHash  = 0 // hash: FIXED_LEN_BYTE_ARRAY(8), no logical type
	ColID    = 1 // id: INT64
	ColOpt   = 2 // opt: optional FIXED_LEN_BYTE_ARRAY(2)
	ColPrice = 3 // price: DECIMAL(9, 2) on FIXED_LEN_BYTE_ARRAY(4)
	ColWide  = 4 // wide: DECIMAL(38, 0) on FIXED_LEN_BYTE_ARRAY(20)
)

// FixtureSchema is the schema of the fixture file
func FixtureSchema() *parquet.Schema {
	return parquet.NewSchema("fixture", parquet.Group{
		"hash":  parquet.Leaf(parquet.FixedLenByteArrayType(8)),
		"id":    parquet.Leaf(parquet.Int64Type),
		"opt":   parquet.Optional(parquet.Leaf(parquet.FixedLenByteArrayType(2))),
		"price": parquet.Decimal(2, 9, parquet.FixedLenByteArrayType(4)),
		"wide":  parquet.Decimal(0, 38, parquet.FixedLenByteArrayType(20)),
	})
}

// FixtureRow is one row of the fixture file
type FixtureRow struct {
	Hash  uint64
	ID    int64
	Opt   []byte // nil writes a null
	Price int32  // unscaled
	Wide  byte   // last byte of the 20-byte value
}

// Row converts r to a parquet.Row in FixtureSchema column order
func (r FixtureRow) Row() parquet.Row {
	hash := make([]byte, 8)
	binary.BigEndian.PutUint64(hash, r.Hash)

	price := make([]byte, 4)
	binary.BigEndian.PutUint32(price, uint32(r.Price))

	wide := make([]byte, 20)
	wide[19] = r.Wide

	opt := parquet.Value{}.Level(0, 0, ColOpt)
	if r.Opt != nil {
		opt = parquet.FixedLenByteArrayValue(r.Opt).Level(0, 1, ColOpt)
	}

	return parquet.Row{
		parquet.FixedLenByteArrayValue(hash).Level(0, 0, ColHash),
		parquet.Int64Value(r.ID).Level(0, 0, ColID),
		opt,
		parquet.FixedLenByteArrayValue(price).Level(0, 0, ColPrice),
		parquet.FixedLenByteArrayValue(wide).Level(0, 0, ColWide),
	}
}

// DefaultRowGroups are the rows written by ParquetFixture, one slice per row group
var DefaultRowGroups = [][]FixtureRow{
	{
		{Hash: 0x0102030405060708, ID: 1, Opt: []byte{0x00, 0x10}, Price: 15000, Wide: 3},
		{Hash: 0x0000000000000001, ID: 2, Opt: nil, Price: 100, Wide: 1},
		{Hash: 0x00000000000000FF, ID: 3, Opt: []byte{0x00, 0x20}, Price: 250, Wide: 2},
	},
	{
		{Hash: 0x1000000000000000, ID: 4, Opt: []byte{0x01, 0x00}, Price: 1, Wide: 9},
		{Hash: 0x2000000000000000, ID: 5, Opt: []byte{0x02, 0x00}, Price: 99999, Wide: 7},
	},
}

// ParquetFixture encodes rowGroups as a Parquet file, flushing a row group per slice
func ParquetFixture(t testing.TB, rowGroups [][]FixtureRow) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := parquet.NewWriter(&buf, FixtureSchema())
	for _, group := range rowGroups {
		rows := make([]parquet.Row, 0, len(group))
		for _, r := range group {
			rows = append(rows, r.Row())
		}
		if _, err := w.WriteRows(rows); err != nil {
			t.Fatalf("failed to write rows: %v", err)
		}
		if err := w.Flush(); err != nil {
			t.Fatalf("failed to flush row group: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return buf.Bytes()
}

// WriteParquetFixture writes the default fixture to dir/name and returns its path
func WriteParquetFixture(t testing.TB, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, ParquetFixture(t, DefaultRowGroups), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}
