package config

import "time"

// ScannerConfig defines how pages and JavaScript assets are retrieved
type ScannerConfig struct {
	TimeoutSecs        int               `json:"timeout,omitempty" yaml:"timeout,omitempty" validate:"omitempty,min=1"`
	MaxConcurrent      int               `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty" validate:"omitempty,min=1,max=1000"`
	DelaySecs          float64           `json:"delay" yaml:"delay" validate:"min=0"`
	FollowRedirects    bool              `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"omitempty,min=1"`
	MaxJSSize          int64             `json:"max_js_size,omitempty" yaml:"max_js_size,omitempty" validate:"omitempty,min=1"`
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	Headers            map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	CrawlDepth         int               `json:"crawl_depth,omitempty" yaml:"crawl_depth,omitempty" validate:"omitempty,min=1,max=10"`
	MaxMemoryPercent   float64           `json:"max_memory_percent" yaml:"max_memory_percent" validate:"min=0,max=100"`
	Retry              RetryConfig       `json:"retry,omitempty" yaml:"retry,omitempty"`
}

// NewDefaultScannerConfig creates default scanner configuration
func NewDefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		TimeoutSecs:      DefaultScannerTimeoutSecs,
		MaxConcurrent:    DefaultScannerMaxConcurrent,
		DelaySecs:        DefaultScannerDelaySecs,
		FollowRedirects:  DefaultScannerFollowRedirects,
		MaxRedirects:     DefaultScannerMaxRedirects,
		MaxJSSize:        DefaultScannerMaxJSSize,
		UserAgent:        DefaultScannerUserAgent,
		Headers:          DefaultRequestHeaders(),
		EnableHTTP2:      true,
		CrawlDepth:       DefaultScannerCrawlDepth,
		MaxMemoryPercent: DefaultScannerMaxMemoryPercent,
		Retry:            NewDefaultRetryConfig(),
	}
}

// Timeout returns the per-request timeout.
func (sc ScannerConfig) Timeout() time.Duration {
	return time.Duration(sc.TimeoutSecs) * time.Second
}

// Delay returns the politeness delay held after each request.
func (sc ScannerConfig) Delay() time.Duration {
	return time.Duration(sc.DelaySecs * float64(time.Second))
}

// RetryConfig defines configuration for HTTP request retries
type RetryConfig struct {
	// Zero disables retries.
	MaxRetries    int  `json:"max_retries" yaml:"max_retries" validate:"min=0,max=10"`
	BaseDelaySecs int  `json:"base_delay_secs,omitempty" yaml:"base_delay_secs,omitempty" validate:"omitempty,min=1,max=300"`
	MaxDelaySecs  int  `json:"max_delay_secs,omitempty" yaml:"max_delay_secs,omitempty" validate:"omitempty,min=1,max=3600"`
	EnableJitter  bool `json:"enable_jitter" yaml:"enable_jitter"`
	// HTTP status codes that should trigger retries
	RetryStatusCodes []int `json:"retry_status_codes,omitempty" yaml:"retry_status_codes,omitempty"`
}

// NewDefaultRetryConfig creates default retry configuration
func NewDefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:       DefaultRetryMaxRetries,
		BaseDelaySecs:    DefaultRetryBaseDelaySecs,
		MaxDelaySecs:     DefaultRetryMaxDelaySecs,
		EnableJitter:     true,
		RetryStatusCodes: []int{429, 503},
	}
}
