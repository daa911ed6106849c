// Package httpclient provides the shared HTTP transport used by the fetcher
// and the crawler.
package httpclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
)

// HTTPClient wraps net/http.Client with default headers, redirect policy
// and status-code retries.
type HTTPClient struct {
	client       *http.Client
	transport    *http.Transport
	config       HTTPClientConfig
	logger       zerolog.Logger
	retryHandler *RetryHandler
}

// NewHTTPClient creates a new HTTP client with the given configuration
func NewHTTPClient(config HTTPClientConfig, logger zerolog.Logger) (*HTTPClient, error) {
	logger = logger.With().Str("component", "HTTPClient").Logger()

	transport := &http.Transport{
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		MaxConnsPerHost:       config.MaxConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ExpectContinueTimeout: config.ExpectContinueTimeout,
		DialContext: (&net.Dialer{
			Timeout:   config.DialTimeout,
			KeepAlive: config.KeepAlive,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: config.InsecureSkipVerify,
		},
		Proxy: http.ProxyFromEnvironment,
	}

	if config.EnableHTTP2 {
		if err := http2.ConfigureTransport(transport); err != nil {
			logger.Warn().Err(err).Msg("Failed to configure HTTP/2, falling back to HTTP/1.1")
		} else {
			logger.Debug().Msg("HTTP/2 support enabled")
		}
	}

	if config.Proxy != "" {
		proxyURL, err := url.Parse(config.Proxy)
		if err != nil {
			return nil, common.WrapError(err, "failed to parse proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
		logger.Info().Str("proxy", config.Proxy).Msg("HTTP client configured with proxy")
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	if !config.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if config.MaxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= config.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", config.MaxRedirects)
			}
			return nil
		}
	}

	logger.Debug().
		Dur("timeout", config.Timeout).
		Bool("insecure_skip_verify", config.InsecureSkipVerify).
		Bool("follow_redirects", config.FollowRedirects).
		Int("max_redirects", config.MaxRedirects).
		Bool("http2_enabled", config.EnableHTTP2).
		Int("max_retries", config.Retry.MaxRetries).
		Msg("HTTP client created")

	hc := &HTTPClient{
		client:    client,
		transport: transport,
		config:    config,
		logger:    logger,
	}
	if config.Retry.MaxRetries > 0 {
		hc.retryHandler = NewRetryHandler(config.Retry, logger)
	}
	return hc, nil
}

// Get issues a GET request. The caller owns and must close the response
// body. Non-2xx statuses are not errors.
func (c *HTTPClient) Get(ctx context.Context, rawURL string) (*http.Response, error) {
	if c.retryHandler != nil {
		return c.retryHandler.DoWithRetry(ctx, rawURL, c.get)
	}
	return c.get(ctx, rawURL)
}

func (c *HTTPClient) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, common.WrapError(err, "failed to create HTTP request")
	}
	c.applyHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, common.NewNetworkError(rawURL, "request failed", err)
	}
	return resp, nil
}

func (c *HTTPClient) applyHeaders(req *http.Request) {
	for key, value := range c.config.CustomHeaders {
		req.Header.Set(key, value)
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "*/*")
	}
}

// Transport returns the shared round tripper so other HTTP consumers reuse
// its connection pool, proxy and TLS settings.
func (c *HTTPClient) Transport() *http.Transport {
	return c.transport
}

// Headers returns the default request headers, User-Agent included.
func (c *HTTPClient) Headers() http.Header {
	h := make(http.Header, len(c.config.CustomHeaders)+1)
	for key, value := range c.config.CustomHeaders {
		h.Set(key, value)
	}
	if c.config.UserAgent != "" {
		h.Set("User-Agent", c.config.UserAgent)
	}
	return h
}

// Config returns the client configuration.
func (c *HTTPClient) Config() HTTPClientConfig {
	return c.config
}

// Close releases idle connections. The client remains usable.
func (c *HTTPClient) Close() {
	c.transport.CloseIdleConnections()
}
