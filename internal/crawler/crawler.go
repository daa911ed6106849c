// Package crawler discovers JavaScript assets referenced by HTML pages.
package crawler

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/jsmonster/internal/httpclient"
	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
)

// Config holds crawl settings
type Config struct {
	Timeout         time.Duration
	FollowRedirects bool
	// 1 scans only the given page. Higher values follow same-site links.
	MaxDepth    int
	MaxBodySize int
}

// Crawler fetches pages through the shared HTTP transport and collects
// script URLs from them. Failures yield an empty or partial result.
type Crawler struct {
	client *httpclient.HTTPClient
	config Config
	logger zerolog.Logger
}

// NewCrawler creates a new crawler.
func NewCrawler(client *httpclient.HTTPClient, config Config, logger zerolog.Logger) *Crawler {
	if config.MaxDepth <= 0 {
		config.MaxDepth = 1
	}
	return &Crawler{
		client: client,
		config: config,
		logger: logger.With().Str("component", "Crawler").Logger(),
	}
}

// Crawl returns the absolute JavaScript asset URLs found on pageURL, and on
// same-site pages linked from it up to MaxDepth, in discovery order.
func (cr *Crawler) Crawl(ctx context.Context, pageURL string) []string {
	var (
		mu      sync.Mutex
		found   = newURLSet()
		visited int
	)

	collector := cr.newCollector(ctx)

	collector.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			cr.logger.Debug().Str("url", r.URL.String()).Msg("Context cancelled, aborting request")
			r.Abort()
			return
		}
		for key, values := range cr.client.Headers() {
			for _, v := range values {
				r.Headers.Set(key, v)
			}
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		cr.logger.Debug().
			Str("url", r.Request.URL.String()).
			Int("status", r.StatusCode).
			Err(err).
			Msg("Page request failed")
	})

	collector.OnResponse(func(r *colly.Response) {
		if r.StatusCode != http.StatusOK {
			cr.logger.Debug().Str("url", r.Request.URL.String()).Int("status", r.StatusCode).Msg("Skipping non-OK page")
			return
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			cr.logger.Debug().Str("url", r.Request.URL.String()).Err(err).Msg("Failed to parse page")
			return
		}

		// After redirects this is the final URL, the base the browser uses.
		base := r.Request.URL
		page := newURLSet()
		discoverFromDocument(doc, base, page)

		mu.Lock()
		visited++
		for _, u := range page.list() {
			found.add(u)
		}
		mu.Unlock()

		cr.logger.Debug().
			Str("url", base.String()).
			Int("depth", r.Request.Depth).
			Int("scripts", len(page.list())).
			Msg("Page parsed")

		if r.Request.Depth >= cr.config.MaxDepth {
			return
		}
		for _, link := range sameSiteLinks(doc, base) {
			if err := r.Request.Visit(link); err != nil {
				cr.logger.Trace().Str("url", link).Err(err).Msg("Link not queued")
			}
		}
	})

	if err := collector.Visit(pageURL); err != nil {
		cr.logger.Warn().Str("url", pageURL).Err(err).Msg("Crawl failed")
		return nil
	}
	collector.Wait()

	mu.Lock()
	defer mu.Unlock()
	cr.logger.Info().
		Str("url", pageURL).
		Int("pages", visited).
		Int("scripts", len(found.list())).
		Msg("Crawl completed")
	return found.list()
}

func (cr *Crawler) newCollector(ctx context.Context) *colly.Collector {
	options := []colly.CollectorOption{
		colly.MaxDepth(cr.config.MaxDepth),
		colly.IgnoreRobotsTxt(),
		colly.StdlibContext(ctx),
	}
	if cr.config.MaxBodySize > 0 {
		options = append(options, colly.MaxBodySize(cr.config.MaxBodySize))
	}

	collector := colly.NewCollector(options...)
	collector.WithTransport(cr.client.Transport())
	if cr.config.Timeout > 0 {
		collector.SetRequestTimeout(cr.config.Timeout)
	}
	if !cr.config.FollowRedirects {
		collector.SetRedirectHandler(func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		})
	}
	return collector
}
