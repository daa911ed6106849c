package logger

import (
	"io"
	stdlog "log"
	"os"

	"github.com/aleister1102/jsmonster/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	cfg     config.LogConfig
	scanID  string
	console io.Writer
}

// NewLoggerBuilder creates a builder with the default log configuration
// writing to stderr.
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		cfg:     config.NewDefaultLogConfig(),
		console: os.Stderr,
	}
}

// WithConfig sets the log configuration
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	lb.cfg = cfg
	return lb
}

// WithScanID tags every entry with scan_id and, with use_scan_subdirs,
// moves the log file under scans/<scan id>.
func (lb *LoggerBuilder) WithScanID(scanID string) *LoggerBuilder {
	lb.scanID = scanID
	return lb
}

// WithConsoleOutput redirects console output
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.console = w
	return lb
}

// Build creates the logger and routes the standard library logger, used by
// net/http and colly internals, through it.
func (lb *LoggerBuilder) Build() (zerolog.Logger, error) {
	level, err := ParseLevel(lb.cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}
	format := ParseFormat(lb.cfg.LogFormat)

	writers := []io.Writer{formatWriter(format, lb.console, false)}
	if lb.cfg.LogFile != "" {
		writers = append(writers, fileWriter(lb.cfg, format, lb.scanID))
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp()
	if lb.scanID != "" {
		ctx = ctx.Str("scan_id", lb.scanID)
	}
	logger := ctx.Logger()

	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
	return logger, nil
}
