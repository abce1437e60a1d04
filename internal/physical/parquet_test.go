package physical

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
	"github.com/soltixdb/colstats/internal/datatypes"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T) *Reader {
	t.Helper()
	data := testutil.ParquetFixture(t, testutil.DefaultRowGroups)
	r, err := NewReader(bytes.NewReader(data), int64(len(data)), logging.NewNop())
	require.NoError(t, err)
	return r
}

func findChunk(chunks []ColumnChunk, rowGroup, column int) *ColumnChunk {
	for i := range chunks {
		if chunks[i].RowGroup == rowGroup && chunks[i].Column == column {
			return &chunks[i]
		}
	}
	return nil
}

func TestReader_Layout(t *testing.T) {
	r := openFixture(t)
	defer r.Close()

	assert.Equal(t, 2, r.NumRowGroups())
	assert.Equal(t, int64(5), r.NumRows())

	var names []string
	for _, c := range r.FixedLenColumns() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"hash", "opt", "price", "wide"}, names)
}

func TestReader_FixedLenChunks(t *testing.T) {
	r := openFixture(t)
	defer r.Close()

	chunks := r.FixedLenChunks()
	require.Len(t, chunks, 8)

	// Ordered by row group, then column.
	assert.Equal(t, 0, chunks[0].RowGroup)
	assert.Equal(t, 1, chunks[len(chunks)-1].RowGroup)
	for _, c := range chunks {
		assert.NotEqual(t, testutil.ColID, c.Column, "int64 column must be skipped")
	}

	t.Run("plain fixed len", func(t *testing.T) {
		c := findChunk(chunks, 0, testutil.ColHash)
		require.NotNil(t, c)
		assert.Equal(t, []string{"hash"}, c.Path)
		assert.Equal(t, int64(3), c.NumValues)
		assert.True(t, c.DataType.Equal(datatypes.FixedSizeBinary(8)))
		assert.Equal(t, 8, c.Physical.ByteWidth)
		assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, c.Physical.MinValue)
		assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, c.Physical.MaxValue)
		require.NotNil(t, c.Physical.NullCount)
		assert.Equal(t, int64(0), *c.Physical.NullCount)
		assert.Nil(t, c.Physical.DistinctCount)
		assert.NoError(t, c.Physical.Validate())
	})

	t.Run("decimal", func(t *testing.T) {
		c := findChunk(chunks, 1, testutil.ColPrice)
		require.NotNil(t, c)
		assert.True(t, c.DataType.Equal(datatypes.Decimal(9, 2)))
		assert.Equal(t, []byte{0, 0, 0, 1}, c.Physical.MinValue)
		assert.Equal(t, []byte{0, 0x01, 0x86, 0x9F}, c.Physical.MaxValue)
	})

	t.Run("wide decimal", func(t *testing.T) {
		c := findChunk(chunks, 0, testutil.ColWide)
		require.NotNil(t, c)
		assert.True(t, c.DataType.Equal(datatypes.Decimal(38, 0)))
		assert.Equal(t, 20, c.Physical.ByteWidth)
		require.Len(t, c.Physical.MinValue, 20)
		assert.Equal(t, byte(1), c.Physical.MinValue[19])
		assert.Equal(t, byte(3), c.Physical.MaxValue[19])
	})

	t.Run("optional with nulls", func(t *testing.T) {
		c := findChunk(chunks, 0, testutil.ColOpt)
		require.NotNil(t, c)
		require.NotNil(t, c.Physical.NullCount)
		assert.Equal(t, int64(1), *c.Physical.NullCount)
		assert.Equal(t, []byte{0x00, 0x10}, c.Physical.MinValue)
		assert.Equal(t, []byte{0x00, 0x20}, c.Physical.MaxValue)
	})
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteParquetFixture(t, dir, "fixture.parquet")

	r, err := Open(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, r.NumRowGroups())
	assert.NoError(t, r.Close())

	_, err = Open(filepath.Join(dir, "missing.parquet"), nil)
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.parquet")
	require.NoError(t, os.WriteFile(garbage, []byte("not a parquet file"), 0644))
	_, err = Open(garbage, nil)
	assert.Error(t, err)
}

func TestReader_FromFormat(t *testing.T) {
	r := &Reader{logger: logging.NewNop()}

	t.Run("prefers min_value and max_value", func(t *testing.T) {
		s := r.fromFormat(format.Statistics{
			Min:       []byte{9, 9},
			Max:       []byte{9, 9},
			MinValue:  []byte{0, 1},
			MaxValue:  []byte{0, 2},
			NullCount: 4,
		}, 2, 0, []string{"c"})
		assert.Equal(t, []byte{0, 1}, s.MinValue)
		assert.Equal(t, []byte{0, 2}, s.MaxValue)
		assert.Equal(t, int64(4), *s.NullCount)
		assert.Nil(t, s.DistinctCount)
	})

	t.Run("falls back to deprecated fields", func(t *testing.T) {
		s := r.fromFormat(format.Statistics{Min: []byte{1}, Max: []byte{2}, DistinctCount: 2}, 1, 0, []string{"c"})
		assert.Equal(t, []byte{1}, s.MinValue)
		assert.Equal(t, []byte{2}, s.MaxValue)
		require.NotNil(t, s.DistinctCount)
		assert.Equal(t, int64(2), *s.DistinctCount)
	})

	t.Run("drops bounds with the wrong length", func(t *testing.T) {
		s := r.fromFormat(format.Statistics{MinValue: []byte{1, 2, 3}, MaxValue: []byte{0, 0, 0, 9}}, 4, 1, []string{"c"})
		assert.Nil(t, s.MinValue)
		assert.Equal(t, []byte{0, 0, 0, 9}, s.MaxValue)
		assert.NoError(t, s.Validate())
	})

	t.Run("copies bounds", func(t *testing.T) {
		src := []byte{5}
		s := r.fromFormat(format.Statistics{MinValue: src}, 1, 0, []string{"c"})
		src[0] = 6
		assert.Equal(t, []byte{5}, s.MinValue)
		assert.Nil(t, s.MaxValue)
	})
}

func TestResolveDataType(t *testing.T) {
	tests := []struct {
		name string
		typ  parquet.Type
		want datatypes.DataType
	}{
		{"plain", parquet.FixedLenByteArrayType(12), datatypes.FixedSizeBinary(12)},
		{"uuid", parquet.UUID().Type(), datatypes.FixedSizeBinary(16)},
		{"decimal", parquet.Decimal(3, 18, parquet.FixedLenByteArrayType(8)).Type(), datatypes.Decimal(18, 3)},
		{"utf8", parquet.String().Type(), datatypes.Of(datatypes.Utf8)},
		{"json", parquet.JSON().Type(), datatypes.Of(datatypes.Utf8)},
		{"bson", parquet.BSON().Type(), datatypes.Of(datatypes.Binary)},
		{"date", parquet.Date().Type(), datatypes.Of(datatypes.Date32)},
		{"timestamp", parquet.Timestamp(parquet.Millisecond).Type(), datatypes.Of(datatypes.Timestamp)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDataType(tt.typ)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}
