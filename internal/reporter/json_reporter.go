package reporter

import (
	"encoding/json"
	"os"
	"time"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/rs/zerolog"
)

type assetDocument struct {
	URL     string `json:"url"`
	Size    int    `json:"size"`
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type scanDocument struct {
	Target   string           `json:"target"`
	ScanTime string           `json:"scan_time"`
	Stats    models.ScanStats `json:"stats"`
	JSFiles  []assetDocument  `json:"js_files"`
	Findings []models.Finding `json:"findings"`
	Errors   []string         `json:"errors"`
}

type multiScanDocument struct {
	Scans   []scanDocument `json:"scans"`
	Summary Summary        `json:"summary"`
}

// JSONReporter writes results as indented JSON. A single result is written
// as one scan document, several as {scans, summary}.
type JSONReporter struct {
	logger    zerolog.Logger
	directory *DirectoryManager
}

// NewJSONReporter creates a JSON reporter
func NewJSONReporter(logger zerolog.Logger) *JSONReporter {
	moduleLogger := logger.With().Str("module", "JSONReporter").Logger()
	return &JSONReporter{
		logger:    moduleLogger,
		directory: NewDirectoryManager(moduleLogger),
	}
}

// WriteReport implements Reporter.
func (r *JSONReporter) WriteReport(results []*models.ScanResult, outputPath string) error {
	if len(results) == 0 {
		return common.NewValidationError("results", 0, "nothing to report")
	}

	var doc interface{}
	if len(results) == 1 {
		doc = toScanDocument(results[0])
	} else {
		scans := make([]scanDocument, 0, len(results))
		for _, res := range results {
			scans = append(scans, toScanDocument(res))
		}
		doc = multiScanDocument{Scans: scans, Summary: BuildSummary(results)}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return common.WrapError(err, "failed to encode JSON report")
	}

	if err := r.directory.EnsureParentDirectory(outputPath); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, FilePermissions); err != nil {
		return common.WrapError(err, "failed to write JSON report "+outputPath)
	}

	r.logger.Info().Str("path", outputPath).Int("targets", len(results)).Msg("JSON report generated")
	return nil
}

func toScanDocument(r *models.ScanResult) scanDocument {
	files := make([]assetDocument, 0, len(r.Assets))
	for _, a := range r.Assets {
		files = append(files, assetDocument{
			URL:     a.URL,
			Size:    a.Size,
			Status:  a.StatusCode,
			Success: a.Success(),
			Error:   a.Error,
		})
	}

	findings := r.Findings
	if findings == nil {
		findings = []models.Finding{}
	}
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}

	return scanDocument{
		Target:   r.Target,
		ScanTime: r.ScanTime.Format(time.RFC3339),
		Stats:    r.Stats(),
		JSFiles:  files,
		Findings: findings,
		Errors:   errs,
	}
}
