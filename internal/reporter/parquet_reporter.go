package reporter

import (
	"context"

	"github.com/aleister1102/jsmonster/internal/datastore"
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/rs/zerolog"
)

// ParquetReporter writes one row per finding through the findings store.
type ParquetReporter struct {
	store *datastore.FindingsStore
}

// NewParquetReporter creates a zstd-compressed Parquet reporter.
func NewParquetReporter(logger zerolog.Logger) *ParquetReporter {
	return &ParquetReporter{
		store: datastore.NewFindingsStore(datastore.DefaultFindingsStoreConfig(), logger),
	}
}

// WriteReport implements Reporter.
func (r *ParquetReporter) WriteReport(results []*models.ScanResult, outputPath string) error {
	return r.store.WriteFile(context.Background(), outputPath, results)
}
