package physical

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
	"github.com/soltixdb/colstats/internal/datatypes"
	"github.com/soltixdb/colstats/internal/logging"
)

// ColumnChunk is the stored statistics of one FIXED_LEN_BYTE_ARRAY column in one row group,
// together with the logical type resolved from the file schema.
type ColumnChunk struct {
	RowGroup  int
	Column    int
	Path      []string
	NumValues int64
	Physical  *FixedLenStatistics
	DataType  datatypes.DataType
}

// Reader exposes the fixed-len column chunk statistics of a Parquet file
type Reader struct {
	file   *parquet.File
	closer io.Closer
	logger *logging.Logger
}

// Open opens a Parquet file from disk
func Open(path string, logger *logging.Logger) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	r, err := NewReader(f, stat.Size(), logger)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read parquet footer of %s: %w", path, err)
	}
	r.closer = f
	return r, nil
}

// NewReader reads the footer of a Parquet file held by r.
// Page indexes and bloom filters are not loaded; only footer statistics are used.
func NewReader(r io.ReaderAt, size int64, logger *logging.Logger) (*Reader, error) {
	file, err := parquet.OpenFile(r, size,
		parquet.SkipPageIndex(true),
		parquet.SkipBloomFilters(true),
	)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Global()
	}
	return &Reader{file: file, logger: logger}, nil
}

// NumRowGroups returns the number of row groups in the file
func (r *Reader) NumRowGroups() int {
	return len(r.file.Metadata().RowGroups)
}

// NumRows returns the total row count recorded in the footer
func (r *Reader) NumRows() int64 {
	return r.file.NumRows()
}

// FixedLenColumns returns the leaf columns whose physical type is FIXED_LEN_BYTE_ARRAY
func (r *Reader) FixedLenColumns() []*parquet.Column {
	var out []*parquet.Column
	var walk func(c *parquet.Column)
	walk = func(c *parquet.Column) {
		if c.Leaf() {
			if c.Type().Kind() == parquet.FixedLenByteArray {
				out = append(out, c)
			}
			return
		}
		for _, child := range c.Columns() {
			walk(child)
		}
	}
	walk(r.file.Root())
	return out
}

// FixedLenChunks returns the statistics of every fixed-len column chunk, ordered by
// row group then column index. Other physical types are skipped.
func (r *Reader) FixedLenChunks() []ColumnChunk {
	columns := r.FixedLenColumns()
	rowGroups := r.file.Metadata().RowGroups

	chunks := make([]ColumnChunk, 0, len(columns)*len(rowGroups))
	for rg := range rowGroups {
		for _, col := range columns {
			idx := col.Index()
			if idx < 0 || idx >= len(rowGroups[rg].Columns) {
				r.logger.Warn("Column chunk missing from row group",
					"row_group", rg, "column", idx)
				continue
			}
			meta := rowGroups[rg].Columns[idx].MetaData
			width := col.Type().Length()

			chunks = append(chunks, ColumnChunk{
				RowGroup:  rg,
				Column:    idx,
				Path:      col.Path(),
				NumValues: meta.NumValues,
				Physical:  r.fromFormat(meta.Statistics, width, rg, col.Path()),
				DataType:  ResolveDataType(col.Type()),
			})
		}
	}
	return chunks
}

// Close releases the underlying file, if Open created it
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func (r *Reader) fromFormat(s format.Statistics, width, rowGroup int, path []string) *FixedLenStatistics {
	minValue, maxValue := s.MinValue, s.MaxValue
	if len(minValue) == 0 && len(maxValue) == 0 {
		// Files written before MinValue/MaxValue existed only carry the deprecated fields.
		minValue, maxValue = s.Min, s.Max
	}

	out := &FixedLenStatistics{
		NullCount: Int64(s.NullCount),
		MinValue:  cloneBound(minValue),
		MaxValue:  cloneBound(maxValue),
		ByteWidth: width,
	}
	if s.DistinctCount > 0 {
		out.DistinctCount = Int64(s.DistinctCount)
	}

	if out.MinValue != nil && len(out.MinValue) != width {
		r.logger.Warn("Dropping min value with unexpected length",
			"row_group", rowGroup, "column", path, "length", len(out.MinValue), "byte_width", width)
		out.MinValue = nil
	}
	if out.MaxValue != nil && len(out.MaxValue) != width {
		r.logger.Warn("Dropping max value with unexpected length",
			"row_group", rowGroup, "column", path, "length", len(out.MaxValue), "byte_width", width)
		out.MaxValue = nil
	}
	return out
}

func cloneBound(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return bytes.Clone(b)
}

// ResolveDataType maps the Parquet logical annotation of a fixed-len column to a logical type.
// Columns without annotation, and UUID columns, read as FixedSizeBinary.
func ResolveDataType(t parquet.Type) datatypes.DataType {
	lt := t.LogicalType()
	switch {
	case lt == nil:
		return datatypes.FixedSizeBinary(t.Length())
	case lt.Decimal != nil:
		return datatypes.Decimal(int(lt.Decimal.Precision), int(lt.Decimal.Scale))
	case lt.UUID != nil:
		return datatypes.FixedSizeBinary(t.Length())
	case lt.UTF8 != nil, lt.Enum != nil, lt.Json != nil:
		return datatypes.Of(datatypes.Utf8)
	case lt.Bson != nil:
		return datatypes.Of(datatypes.Binary)
	case lt.Date != nil:
		return datatypes.Of(datatypes.Date32)
	case lt.Timestamp != nil:
		return datatypes.Of(datatypes.Timestamp)
	}
	return datatypes.FixedSizeBinary(t.Length())
}
