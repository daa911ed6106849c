// Package analyzer runs the crawl, fetch and extraction pipeline for one
// target and assembles the scan result.
package analyzer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/aleister1102/jsmonster/internal/crawler"
	"github.com/aleister1102/jsmonster/internal/extractor"
	"github.com/aleister1102/jsmonster/internal/fetcher"
	"github.com/aleister1102/jsmonster/internal/httpclient"
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/rs/zerolog"
)

// NoJavaScriptFound is recorded when page mode discovers no assets.
const NoJavaScriptFound = "No JavaScript files found"

var directAssetSuffixes = []string{".js", ".mjs", ".jsx"}

// Analyzer owns the HTTP client shared by its fetcher and crawler. Close
// must be called once the analyzer is no longer needed.
type Analyzer struct {
	client     *httpclient.HTTPClient
	fetcher    *fetcher.Fetcher
	crawler    *crawler.Crawler
	extractors []extractor.Extractor
	logger     zerolog.Logger
	closeOnce  sync.Once
}

func newAnalyzer(client *httpclient.HTTPClient, f *fetcher.Fetcher, c *crawler.Crawler, extractors []extractor.Extractor, logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		client:     client,
		fetcher:    f,
		crawler:    c,
		extractors: extractors,
		logger:     logger.With().Str("component", "Analyzer").Logger(),
	}
}

// AnalyzeURL crawls pageURL for script references, fetches every discovered
// asset and extracts findings from those with content.
func (a *Analyzer) AnalyzeURL(ctx context.Context, pageURL string) (result *models.ScanResult) {
	result = models.NewScanResult(pageURL)
	defer a.recoverInto(result)

	if err := ctx.Err(); err != nil {
		result.AddError(analysisError(err))
		return result
	}

	started := time.Now()
	jsURLs := a.crawler.Crawl(ctx, pageURL)
	if len(jsURLs) == 0 {
		result.AddError(NoJavaScriptFound)
		return result
	}

	a.logger.Info().Str("target", pageURL).Int("assets", len(jsURLs)).Msg("Fetching discovered assets")
	result.Assets = a.fetcher.FetchMany(ctx, jsURLs)

	var findings []models.Finding
	for _, asset := range result.Assets {
		if err := ctx.Err(); err != nil {
			result.AddError(analysisError(err))
			break
		}
		findings = a.collect(result, asset, findings)
	}
	result.Findings = models.Deduplicate(findings)

	a.logger.Info().
		Str("target", pageURL).
		Int("findings", len(result.Findings)).
		Int("errors", len(result.Errors)).
		Dur("elapsed", time.Since(started)).
		Msg("Page analysis complete")
	return result
}

// AnalyzeJSURL fetches jsURL as a known asset, skipping the crawl.
func (a *Analyzer) AnalyzeJSURL(ctx context.Context, jsURL string) (result *models.ScanResult) {
	result = models.NewScanResult(jsURL)
	defer a.recoverInto(result)

	if err := ctx.Err(); err != nil {
		result.AddError(analysisError(err))
		return result
	}

	asset := a.fetcher.Fetch(ctx, jsURL)
	result.Assets = []models.Asset{asset}
	result.Findings = models.Deduplicate(a.collect(result, asset, nil))
	return result
}

// AnalyzeContent scans in-hand text without any network access.
func (a *Analyzer) AnalyzeContent(content, source string) (result *models.ScanResult) {
	if source == "" {
		source = "local"
	}
	result = models.NewScanResult(source)
	defer a.recoverInto(result)

	asset := models.NewLocalAsset(source, content)
	result.Assets = []models.Asset{asset}
	result.Findings = models.Deduplicate(a.extract(content, source))
	return result
}

// AnalyzeTargets scans each target in turn. Targets ending in .js, .mjs
// or .jsx are fetched directly, everything else is crawled as a page.
func (a *Analyzer) AnalyzeTargets(ctx context.Context, targets []string) []*models.ScanResult {
	results := make([]*models.ScanResult, 0, len(targets))
	for i, target := range targets {
		a.logger.Debug().Int("index", i+1).Int("total", len(targets)).Str("target", target).Msg("Analyzing target")
		if IsDirectAsset(target) {
			results = append(results, a.AnalyzeJSURL(ctx, target))
		} else {
			results = append(results, a.AnalyzeURL(ctx, target))
		}
	}
	return results
}

// Close releases pooled connections. It is safe to call more than once.
func (a *Analyzer) Close() {
	a.closeOnce.Do(func() {
		if a.client != nil {
			a.client.Close()
		}
		a.logger.Debug().Msg("Analyzer closed")
	})
}

// IsDirectAsset reports whether target names a JavaScript file.
func IsDirectAsset(target string) bool {
	lower := strings.ToLower(target)
	for _, suffix := range directAssetSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// collect folds one asset into the running findings, or its failure into
// the result's error list.
func (a *Analyzer) collect(result *models.ScanResult, asset models.Asset, findings []models.Finding) []models.Finding {
	switch {
	case asset.Success() && asset.HasContent():
		return append(findings, a.extract(asset.Body(), asset.URL)...)
	case asset.Error != "":
		result.AddError(fmt.Sprintf("%s: %s", asset.URL, asset.Error))
	}
	return findings
}

// extract runs every extractor in order. A failing extractor contributes
// nothing for this content.
func (a *Analyzer) extract(content, source string) []models.Finding {
	var findings []models.Finding
	for _, ex := range a.extractors {
		found, err := safeExtract(ex, content, source)
		if err != nil {
			a.logger.Warn().Err(err).Str("extractor", ex.Name()).Str("source", source).Msg("Extractor failed, skipping its findings")
			continue
		}
		findings = append(findings, found...)
	}
	return findings
}

func safeExtract(ex extractor.Extractor, content, source string) (findings []models.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			findings = nil
			err = common.NewError("extractor %s panicked: %v", ex.Name(), r)
		}
	}()
	return ex.Extract(content, source)
}

func (a *Analyzer) recoverInto(result *models.ScanResult) {
	if r := recover(); r != nil {
		a.logger.Error().Interface("panic", r).Str("target", result.Target).Msg("Analysis aborted")
		result.AddError(fmt.Sprintf("Analysis error: %v", r))
	}
}

func analysisError(err error) string {
	return "Analysis error: " + err.Error()
}

func secs(n int) time.Duration {
	return time.Duration(n) * time.Second
}
