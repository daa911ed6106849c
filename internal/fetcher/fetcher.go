// Package fetcher retrieves JavaScript assets with bounded concurrency.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/aleister1102/jsmonster/internal/httpclient"
	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/aleister1102/jsmonster/internal/rslimiter"
	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

const timeoutMarker = "Timeout"

// Config holds the fetch limits
type Config struct {
	MaxConcurrent int
	// Held after each request, inside its concurrency slot.
	Delay   time.Duration
	MaxSize int64
}

// Fetcher retrieves single URLs into Assets. Failures never surface as Go
// errors; they are recorded on the Asset.
type Fetcher struct {
	client  *httpclient.HTTPClient
	limiter *rslimiter.ResourceLimiter
	sem     *semaphore.Weighted
	config  Config
	logger  zerolog.Logger
}

// NewFetcher creates a fetcher. limiter may be nil.
func NewFetcher(client *httpclient.HTTPClient, limiter *rslimiter.ResourceLimiter, config Config, logger zerolog.Logger) *Fetcher {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 1
	}
	return &Fetcher{
		client:  client,
		limiter: limiter,
		sem:     semaphore.NewWeighted(int64(config.MaxConcurrent)),
		config:  config,
		logger:  logger.With().Str("component", "Fetcher").Logger(),
	}
}

// Fetch performs one GET and classifies the outcome.
func (f *Fetcher) Fetch(ctx context.Context, url string) models.Asset {
	asset := models.Asset{URL: url}

	if err := f.limiter.Acquire(ctx); err != nil {
		asset.Error = describeError(err)
		return asset
	}

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		asset.Error = describeError(err)
		f.logger.Debug().Str("url", url).Err(err).Msg("Fetch failed")
		return asset
	}
	defer resp.Body.Close()

	asset.StatusCode = resp.StatusCode
	if resp.StatusCode != http.StatusOK {
		asset.Error = common.NewHTTPError(resp.StatusCode, url).Error()
		f.logger.Debug().Str("url", url).Int("status_code", resp.StatusCode).Msg("Received non-OK HTTP status")
		return asset
	}

	if f.config.MaxSize > 0 && resp.ContentLength > f.config.MaxSize {
		asset.Error = fmt.Sprintf("File too large: %d bytes", resp.ContentLength)
		f.logger.Warn().
			Str("url", url).
			Int64("content_length", resp.ContentLength).
			Int64("max_size", f.config.MaxSize).
			Msg("Declared size exceeds limit, body not read")
		return asset
	}

	body, err := f.readBody(resp.Body)
	if err != nil {
		asset.Error = describeError(err)
		return asset
	}

	content := string(body)
	asset.Content = &content
	asset.Size = len(body)

	f.logger.Debug().Str("url", url).Int("size", asset.Size).Msg("Fetched asset")
	return asset
}

// readBody enforces MaxSize for bodies without a Content-Length.
func (f *Fetcher) readBody(r io.Reader) ([]byte, error) {
	if f.config.MaxSize <= 0 {
		return io.ReadAll(r)
	}
	body, err := io.ReadAll(io.LimitReader(r, f.config.MaxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.config.MaxSize {
		return nil, tooLargeError{max: f.config.MaxSize}
	}
	return body, nil
}

// FetchMany fetches all URLs, at most MaxConcurrent at a time, and returns
// the Assets in input order. A URL whose slot could not be acquired because
// ctx ended is returned with the context error.
func (f *Fetcher) FetchMany(ctx context.Context, urls []string) []models.Asset {
	assets := make([]models.Asset, len(urls))
	var wg sync.WaitGroup

	for i, url := range urls {
		if err := f.sem.Acquire(ctx, 1); err != nil {
			for j := i; j < len(urls); j++ {
				assets[j] = models.Asset{URL: urls[j], Error: describeError(err)}
			}
			break
		}

		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			defer f.sem.Release(1)

			assets[i] = f.Fetch(ctx, url)
			f.politenessDelay(ctx)
		}(i, url)
	}

	wg.Wait()

	f.logger.Debug().Int("count", len(urls)).Msg("Batch fetch completed")
	return assets
}

func (f *Fetcher) politenessDelay(ctx context.Context) {
	if f.config.Delay <= 0 {
		return
	}
	timer := time.NewTimer(f.config.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

type tooLargeError struct {
	max int64
}

func (e tooLargeError) Error() string {
	return fmt.Sprintf("File too large: exceeds %d bytes", e.max)
}

func (e tooLargeError) Unwrap() error {
	return common.ErrContentTooLarge
}

// describeError maps transport failures to the Asset error vocabulary.
func describeError(err error) string {
	if common.IsTimeout(err) {
		return timeoutMarker
	}
	return common.TransportCause(err).Error()
}
