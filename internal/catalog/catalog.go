// Package catalog collects and caches the reconstructed fixed-len column statistics
// of Parquet files.
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/soltixdb/colstats/internal/compression"
	"github.com/soltixdb/colstats/internal/config"
	"github.com/soltixdb/colstats/internal/datatypes"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/physical"
	"github.com/soltixdb/colstats/internal/statistics"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

// Entry is the outcome of reconstructing one column chunk. Exactly one of
// Statistics and Error is set.
type Entry struct {
	RowGroup   int                   `json:"row_group"`
	Column     int                   `json:"column"`
	Path       []string              `json:"path"`
	NumValues  int64                 `json:"num_values"`
	DataType   datatypes.DataType    `json:"data_type"`
	Statistics statistics.Statistics `json:"-"`
	Summary    *statistics.Summary   `json:"statistics,omitempty"`
	Error      string                `json:"error,omitempty"`
	ErrorKind  string                `json:"error_kind,omitempty"`

	physical *physical.FixedLenStatistics
}

// ColumnPath returns the dotted column path
func (e *Entry) ColumnPath() string {
	return strings.Join(e.Path, ".")
}

// FileStatistics holds every fixed-len column chunk entry of one Parquet file,
// ordered by row group then column
type FileStatistics struct {
	Path      string  `json:"path"`
	Size      int64   `json:"size"`
	NumRows   int64   `json:"num_rows"`
	RowGroups int     `json:"row_groups"`
	Columns   []Entry `json:"columns"`
}

// Column returns the entries of the column with the given dotted path, one per row group
func (fs *FileStatistics) Column(path string) []Entry {
	var out []Entry
	for i := range fs.Columns {
		if fs.Columns[i].ColumnPath() == path {
			out = append(out, fs.Columns[i])
		}
	}
	return out
}

// Failed returns the number of entries whose reconstruction failed
func (fs *FileStatistics) Failed() int {
	n := 0
	for i := range fs.Columns {
		if fs.Columns[i].Error != "" {
			n++
		}
	}
	return n
}

// Catalog collects file statistics through an in-memory cache and an optional
// on-disk snapshot store
type Catalog struct {
	workers int
	opts    statistics.Options
	cache   *Cache
	store   *Store
	logger  *logging.Logger

	collected  atomic.Int64
	cacheHits  atomic.Int64
	storeHits  atomic.Int64
	chunkFails atomic.Int64
}

// New creates a catalog. Persistence is enabled when cfg.CacheDir is set.
func New(cfg config.CatalogConfig, opts statistics.Options, logger *logging.Logger) (*Catalog, error) {
	if logger == nil {
		logger = logging.Global()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	c := &Catalog{
		workers: workers,
		opts:    opts,
		cache:   NewCache(cfg.CacheTTL),
		logger:  logger.With("component", "catalog"),
	}

	if cfg.CacheDir != "" {
		algo, err := compression.ParseAlgorithm(cfg.Compression)
		if err != nil {
			c.cache.Stop()
			return nil, err
		}
		store, err := NewStore(cfg.CacheDir, algo)
		if err != nil {
			c.cache.Stop()
			return nil, err
		}
		c.store = store
	}

	return c, nil
}

func cacheKey(path string, size, modTime int64) string {
	return fmt.Sprintf("%s|%d|%d", path, size, modTime)
}

// Collect returns the reconstructed statistics of every fixed-len column chunk of the
// Parquet file at path. Failures of individual chunks are recorded on their entries;
// only I/O, footer and cancellation errors fail the call.
func (c *Catalog) Collect(ctx context.Context, path string) (*FileStatistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", abs)
	}

	size, modTime := info.Size(), info.ModTime().UnixNano()
	key := cacheKey(abs, size, modTime)

	if fs, ok := c.cache.Get(key); ok {
		c.cacheHits.Add(1)
		c.logger.WithContext(ctx).Debug("Statistics served from cache", "file", abs)
		return fs, nil
	}

	snapshot := c.loadSnapshot(abs, size, modTime)
	if snapshot != nil {
		c.storeHits.Add(1)
	} else {
		snapshot, err = c.readFooter(abs, size, modTime)
		if err != nil {
			return nil, err
		}
	}

	fs := &FileStatistics{
		Path:      abs,
		Size:      size,
		NumRows:   snapshot.NumRows,
		RowGroups: snapshot.RowGroups,
		Columns:   make([]Entry, len(snapshot.Chunks)),
	}
	for i, chunk := range snapshot.Chunks {
		fs.Columns[i] = Entry{
			RowGroup:  chunk.RowGroup,
			Column:    chunk.Column,
			Path:      chunk.Path,
			NumValues: chunk.NumValues,
			DataType:  chunk.DataType,
			physical:  chunk.Physical,
		}
	}

	if err := c.reconstructAll(ctx, fs.Columns); err != nil {
		return nil, err
	}

	c.collected.Add(1)
	c.cache.Set(key, fs)

	c.logger.WithContext(ctx).Info("Collected file statistics",
		"file", abs,
		"row_groups", fs.RowGroups,
		"chunks", len(fs.Columns),
		"failed", fs.Failed())

	return fs, nil
}

func (c *Catalog) loadSnapshot(path string, size, modTime int64) *Snapshot {
	if c.store == nil {
		return nil
	}
	snapshot, err := c.store.Load(path, size, modTime)
	if err != nil {
		c.logger.Warn("Ignoring unreadable statistics snapshot", "file", path, "error", err)
		return nil
	}
	return snapshot
}

func (c *Catalog) readFooter(path string, size, modTime int64) (*Snapshot, error) {
	r, err := physical.Open(path, c.logger)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	chunks := r.FixedLenChunks()
	snapshot := &Snapshot{
		Version:   recordVersion,
		Path:      path,
		Size:      size,
		ModTime:   modTime,
		NumRows:   r.NumRows(),
		RowGroups: r.NumRowGroups(),
		Chunks:    make([]ChunkSnapshot, len(chunks)),
	}
	for i, chunk := range chunks {
		snapshot.Chunks[i] = ChunkSnapshot{
			RowGroup:  chunk.RowGroup,
			Column:    chunk.Column,
			Path:      chunk.Path,
			NumValues: chunk.NumValues,
			DataType:  chunk.DataType,
			Physical:  chunk.Physical,
		}
	}

	if c.store != nil {
		if err := c.store.Save(snapshot); err != nil {
			c.logger.Warn("Failed to persist statistics snapshot", "file", path, "error", err)
		}
	}
	return snapshot, nil
}

// reconstructAll runs reconstruction for every entry on at most c.workers goroutines
func (c *Catalog) reconstructAll(ctx context.Context, entries []Entry) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i := range entries {
		if gctx.Err() != nil {
			break
		}
		e := &entries[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.reconstruct(e)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (c *Catalog) reconstruct(e *Entry) {
	if e.physical == nil {
		e.Error = "column chunk has no statistics"
		c.chunkFails.Add(1)
		return
	}

	s, err := statistics.FromFixedLenWithOptions(e.physical, e.DataType, c.opts)
	if err != nil {
		e.Error = err.Error()
		if kind, ok := statistics.KindOf(err); ok {
			e.ErrorKind = string(kind)
		}
		c.chunkFails.Add(1)
		c.logger.Warn("Skipping column chunk statistics",
			"row_group", e.RowGroup,
			"column", e.ColumnPath(),
			"data_type", e.DataType.String(),
			"error", err)
		return
	}

	summary := statistics.Summarize(s)
	e.Statistics = s
	e.Summary = &summary
}

// Invalidate drops every cached result and the persisted snapshot of path
func (c *Catalog) Invalidate(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	c.cache.DeletePath(abs)
	if c.store != nil {
		return c.store.Remove(abs)
	}
	return nil
}

// Stats returns catalog counters
func (c *Catalog) Stats() map[string]interface{} {
	return map[string]interface{}{
		"collected":     c.collected.Load(),
		"cache_hits":    c.cacheHits.Load(),
		"snapshot_hits": c.storeHits.Load(),
		"failed_chunks": c.chunkFails.Load(),
		"persistence":   c.store != nil,
		"workers":       c.workers,
		"cache":         c.cache.Stats(),
	}
}

// Close stops background work
func (c *Catalog) Close() error {
	c.cache.Stop()
	return nil
}
