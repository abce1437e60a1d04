package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soltixdb/colstats/internal/compression"
	"github.com/soltixdb/colstats/internal/datatypes"
	"github.com/soltixdb/colstats/internal/physical"
)

const recordVersion = 1

// Snapshot is the persisted footer snapshot of one Parquet file. Only physical
// statistics are stored; logical statistics are rebuilt on load so a padding
// change never serves stale values.
type Snapshot struct {
	Version   int             `json:"version"`
	Path      string          `json:"path"`
	Size      int64           `json:"size"`
	ModTime   int64           `json:"mod_time_ns"`
	NumRows   int64           `json:"num_rows"`
	RowGroups int             `json:"row_groups"`
	Chunks    []ChunkSnapshot `json:"chunks"`
}

// ChunkSnapshot is one persisted column chunk
type ChunkSnapshot struct {
	RowGroup  int                          `json:"row_group"`
	Column    int                          `json:"column"`
	Path      []string                     `json:"path"`
	NumValues int64                        `json:"num_values"`
	DataType  datatypes.DataType           `json:"data_type"`
	Physical  *physical.FixedLenStatistics `json:"physical"`
}

// Store persists footer snapshots under a directory, one framed file per Parquet file
type Store struct {
	dir        string
	compressor compression.Compressor
}

// NewStore creates dir if needed and returns a store writing with algo
func NewStore(dir string, algo compression.Algorithm) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	c, err := compression.GetCompressor(algo)
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, compressor: c}, nil
}

func (s *Store) fileName(path string) string {
	sum := sha256.Sum256([]byte(path))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:16])+".stats")
}

// Load returns the snapshot of path if one exists and matches size and modTime.
// A missing or stale snapshot returns nil without error.
func (s *Store) Load(path string, size, modTime int64) (*Snapshot, error) {
	framed, err := os.ReadFile(s.fileName(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	data, err := compression.Unframe(framed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	var rec Snapshot
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if rec.Version != recordVersion || rec.Path != path || rec.Size != size || rec.ModTime != modTime {
		return nil, nil
	}
	return &rec, nil
}

// Save writes rec, replacing any previous snapshot of the same file
func (s *Store) Save(rec *Snapshot) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	framed, err := compression.Frame(s.compressor, data)
	if err != nil {
		return fmt.Errorf("failed to compress snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(framed); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.fileName(rec.Path)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename snapshot: %w", err)
	}
	return nil
}

// Remove deletes the snapshot of path, if any
func (s *Store) Remove(path string) error {
	err := os.Remove(s.fileName(path))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
