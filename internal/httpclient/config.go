package httpclient

import "time"

// HTTPClientConfig holds transport and request settings
type HTTPClientConfig struct {
	Timeout               time.Duration
	InsecureSkipVerify    bool
	FollowRedirects       bool
	MaxRedirects          int
	UserAgent             string
	CustomHeaders         map[string]string
	Proxy                 string
	EnableHTTP2           bool
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	MaxConnsPerHost       int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ExpectContinueTimeout time.Duration
	DialTimeout           time.Duration
	KeepAlive             time.Duration
	Retry                 RetryHandlerConfig
}

// DefaultHTTPClientConfig returns the default client configuration.
// Retries are disabled.
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               30 * time.Second,
		FollowRedirects:       true,
		MaxRedirects:          10,
		CustomHeaders:         map[string]string{},
		EnableHTTP2:           true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
		Retry: RetryHandlerConfig{
			BaseDelay:        time.Second,
			MaxDelay:         30 * time.Second,
			EnableJitter:     true,
			RetryStatusCodes: []int{429, 503},
		},
	}
}
