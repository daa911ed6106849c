// Package reporter writes scan results as HTML, JSON or Parquet files.
package reporter

import (
	"path/filepath"
	"strings"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/aleister1102/jsmonster/internal/config"
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/rs/zerolog"
)

// Reporter writes a set of scan results to outputPath.
type Reporter interface {
	WriteReport(results []*models.ScanResult, outputPath string) error
}

// FormatForPath picks the output format: JSON when forced, otherwise by
// extension, falling back to HTML.
func FormatForPath(outputPath string, forceJSON bool) string {
	if forceJSON {
		return FormatJSON
	}
	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".json":
		return FormatJSON
	case ".parquet":
		return FormatParquet
	default:
		return FormatHTML
	}
}

// NewReporter builds the reporter for format.
func NewReporter(format string, cfg config.ReporterConfig, logger zerolog.Logger) (Reporter, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return NewJSONReporter(logger), nil
	case FormatParquet:
		return NewParquetReporter(logger), nil
	case FormatHTML, "":
		return NewHtmlReporter(cfg, logger)
	default:
		return nil, common.NewValidationError("format", format, "unsupported report format")
	}
}
