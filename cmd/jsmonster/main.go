package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/aleister1102/jsmonster/internal/analyzer"
	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/aleister1102/jsmonster/internal/config"
	"github.com/aleister1102/jsmonster/internal/datastore"
	"github.com/aleister1102/jsmonster/internal/logger"
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/aleister1102/jsmonster/internal/reporter"
	"github.com/aleister1102/jsmonster/internal/rslimiter"
	"github.com/aleister1102/jsmonster/internal/urlhandler"
	"github.com/rs/zerolog"
)

const version = "0.1.0"

// Most critical/high findings listed per target without -v.
const maxImportantFindings = 20

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags, err := ParseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "[FATAL] %v\n", err)
		return 2
	}
	if flags.ShowVersion {
		fmt.Fprintf(stdout, "jsmonster %s\n", version)
		return 0
	}

	gCfg, err := config.LoadGlobalConfig(flags.ConfigFile, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(stderr, "[FATAL] Could not load config: %v\n", err)
		return 1
	}
	applyFlagOverrides(gCfg, flags)
	if err := config.ValidateConfig(gCfg); err != nil {
		fmt.Fprintf(stderr, "[FATAL] Configuration validation failed: %v\n", err)
		return 1
	}

	scanID := time.Now().Format("20060102-150405")
	zLogger, err := logger.NewWithScanID(gCfg.LogConfig, scanID)
	if err != nil {
		fmt.Fprintf(stderr, "[FATAL] Could not initialize logger: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := scan(ctx, gCfg, flags, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Scan failed")
		fmt.Fprintf(stderr, "[ERROR] %v\n", err)
		if errors.Is(err, common.ErrInvalidInput) {
			return 2
		}
		return 1
	}

	for _, r := range results {
		displayResult(stdout, r, flags.Verbose)
	}

	if err := export(ctx, gCfg, flags, results, stdout, zLogger); err != nil {
		zLogger.Error().Err(err).Msg("Export failed")
		fmt.Fprintf(stderr, "[ERROR] %v\n", err)
		return 1
	}

	if flags.Verbose {
		usage := rslimiter.GetResourceUsage()
		zLogger.Debug().
			Int64("alloc_mb", usage.AllocMB).
			Int("goroutines", usage.Goroutines).
			Float64("system_mem_percent", usage.SystemMemUsedPercent).
			Msg("Resource usage at exit")
	}

	if ctx.Err() != nil {
		zLogger.Warn().Msg("Scan interrupted by signal")
		return 130
	}
	return 0
}

// applyFlagOverrides copies explicitly given flags over the loaded config.
func applyFlagOverrides(cfg *config.GlobalConfig, f AppFlags) {
	if f.IsSet("concurrent") {
		cfg.ScannerConfig.MaxConcurrent = f.Concurrent
	}
	if f.IsSet("delay") {
		cfg.ScannerConfig.DelaySecs = f.Delay
	}
	if f.IsSet("timeout") {
		cfg.ScannerConfig.TimeoutSecs = f.Timeout
	}
	if f.IsSet("depth") {
		cfg.ScannerConfig.CrawlDepth = f.Depth
	}
	if f.NoEndpoints {
		cfg.ExtractorConfig.ExtractEndpoints = false
	}
	if f.NoSecrets {
		cfg.ExtractorConfig.ExtractSecrets = false
	}
	if f.NoURLs {
		cfg.ExtractorConfig.ExtractURLs = false
	}
	if f.Verbose {
		cfg.LogConfig.LogLevel = "debug"
	}
	if f.OutputFile != "" {
		cfg.ReporterConfig.OutputFile = f.OutputFile
	}
	if f.ForceJSON {
		cfg.ReporterConfig.Format = reporter.FormatJSON
	}
}

func scan(ctx context.Context, gCfg *config.GlobalConfig, flags AppFlags, zLogger zerolog.Logger) ([]*models.ScanResult, error) {
	a, err := analyzer.NewAnalyzerBuilder(zLogger).WithConfig(gCfg).Build()
	if err != nil {
		return nil, err
	}
	defer a.Close()

	if flags.LocalFile != "" {
		data, err := os.ReadFile(flags.LocalFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", flags.LocalFile, err)
		}
		content := strings.ToValidUTF8(string(data), "")
		return []*models.ScanResult{a.AnalyzeContent(content, flags.LocalFile)}, nil
	}

	targets, source, err := urlhandler.NewTargetManager(zLogger).LoadTargets(flags.URL, flags.ListFile)
	if err != nil {
		return nil, err
	}
	zLogger.Info().Int("targets", len(targets)).Str("source", source).Msg("Starting scan")
	return a.AnalyzeTargets(ctx, targets), nil
}

func export(ctx context.Context, gCfg *config.GlobalConfig, flags AppFlags, results []*models.ScanResult, stdout io.Writer, zLogger zerolog.Logger) error {
	if flags.Store {
		store := datastore.NewFindingsStore(datastore.FindingsStoreConfig{
			BasePath:         gCfg.ReporterConfig.ParquetDir,
			CompressionCodec: "zstd",
		}, zLogger)
		for _, r := range results {
			fresh, err := store.NewFindings(ctx, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "\nNew since last stored scan of %s: %d\n", r.Target, len(fresh))
		}
		path, err := store.StoreResults(ctx, results)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "\nFindings stored in: %s\n", path)
	}

	outputPath := gCfg.ReporterConfig.OutputFile
	if outputPath == "" || len(results) == 0 {
		return nil
	}

	format := reporter.FormatForPath(outputPath, gCfg.ReporterConfig.Format == reporter.FormatJSON)
	if filepath.Ext(outputPath) == "" && gCfg.ReporterConfig.Format != "" {
		format = strings.ToLower(gCfg.ReporterConfig.Format)
	}

	rep, err := reporter.NewReporter(format, gCfg.ReporterConfig, zLogger)
	if err != nil {
		return err
	}
	if err := rep.WriteReport(results, outputPath); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nReport saved to: %s\n", outputPath)
	return nil
}

func displayResult(w io.Writer, r *models.ScanResult, verbose bool) {
	stats := r.Stats()

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Target:         %s\n", r.Target)
	fmt.Fprintf(w, "JS Files:       %d (%d successful)\n", stats.JSFiles, stats.JSFilesSuccess)
	fmt.Fprintf(w, "Total Findings: %d\n", stats.TotalFindings)
	fmt.Fprintf(w, "Critical:       %d\n", stats.Critical)
	fmt.Fprintf(w, "High:           %d\n", stats.High)
	fmt.Fprintf(w, "Endpoints:      %d\n", stats.Endpoints)
	fmt.Fprintf(w, "API Keys:       %d\n", stats.APIKeys)
	fmt.Fprintf(w, "Secrets:        %d\n", stats.Secrets)
	fmt.Fprintf(w, "URLs:           %d\n", stats.URLs)

	var important []models.Finding
	for _, f := range r.Findings {
		if f.Severity == models.SeverityCritical || f.Severity == models.SeverityHigh {
			important = append(important, f)
		}
	}
	if len(important) > 0 {
		fmt.Fprintln(w, "\nCritical & High Findings:")
		for i, f := range important {
			if i == maxImportantFindings {
				fmt.Fprintf(w, "  ... %d more\n", len(important)-maxImportantFindings)
				break
			}
			fmt.Fprintf(w, "  [%-8s] %-12s %s  (%s)\n", f.Severity, f.Kind, shorten(f.Value, 60), shorten(filepath.Base(f.Source), 30))
		}
	}

	if verbose && len(r.Findings) > 0 {
		fmt.Fprintln(w, "\nAll Findings:")
		for _, f := range r.Findings {
			fmt.Fprintf(w, "  %-12s %s\n", f.Kind, shorten(f.Value, 80))
		}
	}

	if verbose && len(r.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors (%d):\n", len(r.Errors))
		for i, e := range r.Errors {
			if i == 10 {
				break
			}
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
}

func shorten(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
