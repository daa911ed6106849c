package reporter

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/aleister1102/jsmonster/internal/config"
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/rs/zerolog"
)

// HtmlReporter renders results into one self-contained HTML page
type HtmlReporter struct {
	cfg          config.ReporterConfig
	logger       zerolog.Logger
	template     *template.Template
	assetManager *AssetManager
	directoryMgr *DirectoryManager
}

// NewHtmlReporter parses the embedded template.
func NewHtmlReporter(cfg config.ReporterConfig, appLogger zerolog.Logger) (*HtmlReporter, error) {
	moduleLogger := appLogger.With().Str("module", "HtmlReporter").Logger()

	reporter := &HtmlReporter{
		cfg:          cfg,
		logger:       moduleLogger,
		assetManager: NewAssetManager(moduleLogger),
		directoryMgr: NewDirectoryManager(moduleLogger),
	}

	if err := reporter.loadEmbeddedTemplate(); err != nil {
		return nil, err
	}
	return reporter, nil
}

// loadEmbeddedTemplate loads the default embedded template
func (r *HtmlReporter) loadEmbeddedTemplate() error {
	templateContent, err := templatesFS.ReadFile("templates/" + DefaultReportTemplateName)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to read embedded default report template.")
		return fmt.Errorf("failed to load embedded default report template: %w", err)
	}

	tmpl := template.New(DefaultReportTemplateName).Funcs(GetCommonTemplateFunctions())
	cleanedContent := strings.ReplaceAll(string(templateContent), "\r\n", "\n")
	if _, err := tmpl.Parse(cleanedContent); err != nil {
		r.logger.Error().Err(err).Msg("Failed to parse embedded report template.")
		return fmt.Errorf("failed to parse embedded report template: %w", err)
	}

	r.template = tmpl
	return nil
}

// WriteReport implements Reporter.
func (r *HtmlReporter) WriteReport(results []*models.ScanResult, outputPath string) error {
	if len(results) == 0 {
		return common.NewValidationError("results", 0, "nothing to report")
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, results); err != nil {
		return err
	}

	if err := r.directoryMgr.EnsureParentDirectory(outputPath); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), FilePermissions); err != nil {
		return common.WrapError(err, "failed to write HTML report "+outputPath)
	}

	r.logger.Info().Str("path", outputPath).Int("targets", len(results)).Msg("HTML report generated")
	return nil
}

// Render executes the template for results into buf.
func (r *HtmlReporter) Render(buf *bytes.Buffer, results []*models.ScanResult) error {
	pageData := r.prepareReportData(results)
	if err := r.template.Execute(buf, pageData); err != nil {
		return common.WrapError(err, "failed to execute report template")
	}
	return nil
}

// prepareReportData sets up page data structure
func (r *HtmlReporter) prepareReportData(results []*models.ScanResult) ReportPageData {
	pageData := ReportPageData{
		ReportTitle: r.cfg.ReportTitle,
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05"),
		IsSingle:    len(results) == 1,
		Summary:     BuildSummary(results),
		Scans:       make([]ScanSection, 0, len(results)),
	}
	if pageData.ReportTitle == "" {
		pageData.ReportTitle = DefaultReportTitle
	}

	for _, res := range results {
		pageData.Scans = append(pageData.Scans, newScanSection(res))
	}

	r.assetManager.EmbedAssetsIntoPageData(&pageData, assetsFS)
	return pageData
}
