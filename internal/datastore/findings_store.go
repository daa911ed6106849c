// Package datastore persists findings as Parquet files.
package datastore

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// DefaultFindingsFileName is the file StoreResults appends to.
const DefaultFindingsFileName = "findings.parquet"

const readBatchSize = 100

// FindingsStoreConfig holds storage settings
type FindingsStoreConfig struct {
	BasePath         string
	CompressionCodec string
}

// DefaultFindingsStoreConfig returns zstd compression under ./database.
func DefaultFindingsStoreConfig() FindingsStoreConfig {
	return FindingsStoreConfig{
		BasePath:         "database",
		CompressionCodec: "zstd",
	}
}

// FindingsStore writes and reads finding records.
type FindingsStore struct {
	config FindingsStoreConfig
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewFindingsStore creates a new FindingsStore.
func NewFindingsStore(cfg FindingsStoreConfig, logger zerolog.Logger) *FindingsStore {
	return &FindingsStore{
		config: cfg,
		logger: logger.With().Str("module", "FindingsStore").Logger(),
	}
}

// DefaultPath is the accumulating findings file under BasePath.
func (fs *FindingsStore) DefaultPath() string {
	return filepath.Join(fs.config.BasePath, DefaultFindingsFileName)
}

// StoreResults appends the findings of results to the default file and
// returns its path.
func (fs *FindingsStore) StoreResults(ctx context.Context, results []*models.ScanResult) (string, error) {
	if fs.config.BasePath == "" {
		return "", common.NewValidationError("base_path", fs.config.BasePath, "parquet base path is not configured")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := fs.DefaultPath()
	existing, err := fs.readRecords(ctx, path)
	if err != nil {
		return "", err
	}

	records := append(existing, flatten(results)...)
	if err := fs.writeRecords(path, records); err != nil {
		return "", err
	}

	fs.logger.Info().Str("file_path", path).Int("records_total", len(records)).Int("records_added", len(records)-len(existing)).Msg("Stored findings")
	return path, nil
}

// WriteFile replaces path with the findings of results.
func (fs *FindingsStore) WriteFile(ctx context.Context, path string, results []*models.ScanResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	records := flatten(results)
	if err := fs.writeRecords(path, records); err != nil {
		return err
	}

	fs.logger.Info().Str("file_path", path).Int("records_written", len(records)).Msg("Wrote findings to Parquet file")
	return nil
}

// LoadRecords reads every record in path. A missing file yields no records.
func (fs *FindingsStore) LoadRecords(ctx context.Context, path string) ([]FindingRecord, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.readRecords(ctx, path)
}

// LoadFindingsForTarget returns the findings stored for target.
func (fs *FindingsStore) LoadFindingsForTarget(ctx context.Context, path, target string) ([]models.Finding, error) {
	records, err := fs.LoadRecords(ctx, path)
	if err != nil {
		return nil, err
	}

	var findings []models.Finding
	for _, rec := range records {
		if rec.Target == target {
			findings = append(findings, rec.ToFinding())
		}
	}
	return findings, nil
}

// NewFindings returns the findings of result that the default file does not
// already hold for the same target, compared by kind and value.
func (fs *FindingsStore) NewFindings(ctx context.Context, result *models.ScanResult) ([]models.Finding, error) {
	stored, err := fs.LoadFindingsForTarget(ctx, fs.DefaultPath(), result.Target)
	if err != nil {
		return nil, err
	}

	known := make(map[models.FindingKey]struct{}, len(stored))
	for _, f := range stored {
		known[f.Key()] = struct{}{}
	}

	var fresh []models.Finding
	for _, f := range result.Findings {
		if _, ok := known[f.Key()]; !ok {
			fresh = append(fresh, f)
		}
	}
	return fresh, nil
}

func flatten(results []*models.ScanResult) []FindingRecord {
	var records []FindingRecord
	for _, r := range results {
		records = append(records, RecordsFromResult(r)...)
	}
	return records
}

func (fs *FindingsStore) readRecords(ctx context.Context, path string) ([]FindingRecord, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		fs.logger.Debug().Str("file_path", path).Msg("Findings file does not exist yet")
		return []FindingRecord{}, nil
	}
	if err != nil {
		return nil, common.WrapError(err, "failed to open findings parquet file: "+path)
	}
	defer file.Close()

	reader := parquet.NewGenericReader[FindingRecord](file)
	defer reader.Close()

	records := make([]FindingRecord, 0, reader.NumRows())
	batch := make([]FindingRecord, readBatchSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, common.WrapError(err, "load findings cancelled")
		}

		n, err := reader.Read(batch)
		records = append(records, batch[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.WrapError(err, "failed to read findings from parquet file")
		}
	}
	return records, nil
}

// writeRecords writes to a temporary file next to path and renames it
// into place, so readers never see a partial file.
func (fs *FindingsStore) writeRecords(path string, records []FindingRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return common.WrapError(err, "failed to create parquet directory: "+dir)
	}

	tmp, err := os.CreateTemp(dir, ".findings-*.parquet")
	if err != nil {
		return common.WrapError(err, "failed to create temporary parquet file")
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	writer := parquet.NewGenericWriter[FindingRecord](tmp, fs.compressionOption())
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		_ = tmp.Close()
		return common.WrapError(err, "failed to write findings to parquet file")
	}
	if err := writer.Close(); err != nil {
		_ = tmp.Close()
		return common.WrapError(err, "failed to finalize parquet file")
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return common.WrapError(err, "failed to set parquet file permissions")
	}
	if err := tmp.Close(); err != nil {
		return common.WrapError(err, "failed to close parquet file")
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return common.WrapError(err, "failed to move parquet file into place: "+path)
	}
	return nil
}

func (fs *FindingsStore) compressionOption() parquet.WriterOption {
	switch strings.ToLower(fs.config.CompressionCodec) {
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "none", "uncompressed", "":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		fs.logger.Warn().Str("codec", fs.config.CompressionCodec).Msg("Unsupported compression codec string, defaulting to Uncompressed")
		return parquet.Compression(&parquet.Uncompressed)
	}
}
