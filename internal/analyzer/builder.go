package analyzer

import (
	"github.com/aleister1102/jsmonster/internal/common"
	"github.com/aleister1102/jsmonster/internal/config"
	"github.com/aleister1102/jsmonster/internal/crawler"
	"github.com/aleister1102/jsmonster/internal/extractor"
	"github.com/aleister1102/jsmonster/internal/fetcher"
	"github.com/aleister1102/jsmonster/internal/httpclient"
	"github.com/aleister1102/jsmonster/internal/patterns"
	"github.com/aleister1102/jsmonster/internal/rslimiter"
	"github.com/rs/zerolog"
)

// AnalyzerBuilder assembles an Analyzer from configuration
type AnalyzerBuilder struct {
	cfg        *config.GlobalConfig
	logger     zerolog.Logger
	extractors []extractor.Extractor
}

// NewAnalyzerBuilder creates a builder using the default configuration.
func NewAnalyzerBuilder(logger zerolog.Logger) *AnalyzerBuilder {
	return &AnalyzerBuilder{
		cfg:    config.NewDefaultGlobalConfig(),
		logger: logger,
	}
}

// WithConfig sets the configuration bundle
func (b *AnalyzerBuilder) WithConfig(cfg *config.GlobalConfig) *AnalyzerBuilder {
	if cfg != nil {
		b.cfg = cfg
	}
	return b
}

// WithExtractors replaces the configuration-driven extractor set.
func (b *AnalyzerBuilder) WithExtractors(extractors ...extractor.Extractor) *AnalyzerBuilder {
	b.extractors = extractors
	return b
}

// Build creates the shared HTTP client and every component that uses it.
func (b *AnalyzerBuilder) Build() (*Analyzer, error) {
	sc := b.cfg.ScannerConfig

	extractors := b.extractors
	if extractors == nil {
		var err error
		extractors, err = BuildExtractors(b.cfg.ExtractorConfig, b.logger)
		if err != nil {
			return nil, err
		}
	}

	client, err := httpclient.NewHTTPClientBuilder(b.logger).
		WithTimeout(sc.Timeout()).
		WithFollowRedirects(sc.FollowRedirects).
		WithMaxRedirects(sc.MaxRedirects).
		WithUserAgent(sc.UserAgent).
		WithHeaders(sc.Headers).
		WithInsecureSkipVerify(sc.InsecureSkipVerify).
		WithHTTP2(sc.EnableHTTP2).
		WithProxy(sc.Proxy).
		WithRetry(retryConfig(sc.Retry)).
		WithConnectionPooling(100, sc.MaxConcurrent, 0).
		Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to create HTTP client")
	}

	limiterCfg := rslimiter.DefaultResourceLimiterConfig()
	limiterCfg.MaxMemoryPercent = sc.MaxMemoryPercent
	limiter := rslimiter.NewResourceLimiter(limiterCfg, b.logger)

	f := fetcher.NewFetcher(client, limiter, fetcher.Config{
		MaxConcurrent: sc.MaxConcurrent,
		Delay:         sc.Delay(),
		MaxSize:       sc.MaxJSSize,
	}, b.logger)

	c := crawler.NewCrawler(client, crawler.Config{
		Timeout:         sc.Timeout(),
		FollowRedirects: sc.FollowRedirects,
		MaxDepth:        sc.CrawlDepth,
		MaxBodySize:     int(sc.MaxJSSize),
	}, b.logger)

	return newAnalyzer(client, f, c, extractors, b.logger), nil
}

// BuildExtractors returns the enabled extractors in their fixed order:
// secrets, endpoints, urls.
func BuildExtractors(ec config.ExtractorConfig, logger zerolog.Logger) ([]extractor.Extractor, error) {
	catalog := patterns.Default()
	if ec.CustomRulesFile != "" {
		custom, err := patterns.LoadCustomRules(ec.CustomRulesFile, ec.CustomRuleTimeout())
		if err != nil {
			return nil, common.WrapError(err, "failed to load custom rules")
		}
		catalog = catalog.Extend(custom)
		logger.Info().Int("rules", len(custom)).Str("file", ec.CustomRulesFile).Msg("Loaded custom rules")
	}

	var extractors []extractor.Extractor
	if ec.ExtractSecrets {
		extractors = append(extractors, extractor.NewSecretExtractor(catalog, ec.MinConfidence, logger))
	}
	if ec.ExtractEndpoints {
		var jsl *extractor.JSluiceAnalyzer
		if ec.EnableJSluice {
			jsl = extractor.NewJSluiceAnalyzer(logger)
		}
		extractors = append(extractors, extractor.NewEndpointExtractor(catalog, jsl, logger))
	}
	if ec.ExtractURLs {
		extractors = append(extractors, extractor.NewURLExtractor(catalog, ec.SkipDomains, logger))
	}
	return extractors, nil
}

func retryConfig(rc config.RetryConfig) httpclient.RetryHandlerConfig {
	return httpclient.RetryHandlerConfig{
		MaxRetries:       rc.MaxRetries,
		BaseDelay:        secs(rc.BaseDelaySecs),
		MaxDelay:         secs(rc.MaxDelaySecs),
		EnableJitter:     rc.EnableJitter,
		RetryStatusCodes: rc.RetryStatusCodes,
	}
}
