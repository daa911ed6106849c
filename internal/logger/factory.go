package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/aleister1102/jsmonster/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// fileWriter returns a rotating writer for cfg.LogFile. Console format is
// written without color codes.
func fileWriter(cfg config.LogConfig, format Format, scanID string) io.Writer {
	path := logPath(cfg, scanID)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		path = cfg.LogFile
	}

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    positiveOr(cfg.MaxLogSizeMB, config.DefaultMaxLogSizeMB),
		MaxBackups: positiveOr(cfg.MaxLogBackups, config.DefaultMaxLogBackups),
		LocalTime:  true,
	}
	return formatWriter(format, rotating, true)
}

// logPath places the log file under scans/<scan id> when subdirectories
// are enabled and a scan ID is set.
func logPath(cfg config.LogConfig, scanID string) string {
	if !cfg.UseScanSubdirs || scanID == "" {
		return cfg.LogFile
	}
	return filepath.Join(filepath.Dir(cfg.LogFile), "scans", scanID, filepath.Base(cfg.LogFile))
}

func positiveOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
