package reporter

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/rs/zerolog"
)

// AssetManager inlines the embedded stylesheet and script into reports
type AssetManager struct {
	logger zerolog.Logger
}

// NewAssetManager creates a new AssetManager
func NewAssetManager(logger zerolog.Logger) *AssetManager {
	return &AssetManager{
		logger: logger,
	}
}

// EmbedAssetContent reads one embedded asset.
func (am *AssetManager) EmbedAssetContent(efs embed.FS, path string) (string, error) {
	data, err := efs.ReadFile(path)
	if err != nil {
		am.logger.Error().Err(err).Str("asset", path).Msg("Failed to read embedded asset")
		return "", fmt.Errorf("failed to read embedded asset '%s': %w", path, err)
	}
	return string(data), nil
}

// EmbedAssetsIntoPageData fills the page's inline CSS and JS. A missing
// asset leaves the report unstyled rather than failing it.
func (am *AssetManager) EmbedAssetsIntoPageData(pageData *ReportPageData, efs embed.FS) {
	css, err := am.EmbedAssetContent(efs, EmbeddedCSSPath)
	if err != nil {
		am.logger.Warn().Err(err).Msg("Failed to embed CSS, report styling might be affected.")
	}
	pageData.CustomCSS = template.CSS(css)

	js, err := am.EmbedAssetContent(efs, EmbeddedJSPath)
	if err != nil {
		am.logger.Warn().Err(err).Msg("Failed to embed JS, report filtering might be affected.")
	}
	pageData.ReportJS = template.JS(js)
}
