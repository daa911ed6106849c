package config

const (
	// Scanner Defaults
	DefaultScannerTimeoutSecs      = 30
	DefaultScannerMaxConcurrent    = 10
	DefaultScannerDelaySecs        = 0.5
	DefaultScannerFollowRedirects  = true
	DefaultScannerMaxRedirects     = 10
	DefaultScannerMaxJSSize        = 10 * 1024 * 1024
	DefaultScannerCrawlDepth       = 1
	DefaultScannerMaxMemoryPercent = 0
	DefaultScannerUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// Retry Defaults
	DefaultRetryMaxRetries    = 0
	DefaultRetryBaseDelaySecs = 1
	DefaultRetryMaxDelaySecs  = 30

	// Extractor Defaults
	DefaultExtractorMinConfidence       = 0.5
	DefaultExtractorCustomRuleTimeoutMs = 250

	// Reporter Defaults
	DefaultReporterFormat     = "html"
	DefaultReporterTitle      = "JSMonster Scan Report"
	DefaultReporterParquetDir = "database"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// ConfigPathEnv names the environment variable consulted for the config file.
	ConfigPathEnv = "JSMONSTER_CONFIG_PATH"

	maxConfigFileSize = 10 * 1024 * 1024
)

// DefaultRequestHeaders are sent with every fetch unless overridden.
// Accept-Encoding is left to the transport so compressed bodies are decoded.
func DefaultRequestHeaders() map[string]string {
	return map[string]string{
		"Accept":          "*/*",
		"Accept-Language": "en-US,en;q=0.9",
		"Connection":      "keep-alive",
	}
}
