package extractor

import (
	"strings"

	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/aleister1102/jsmonster/internal/patterns"
	"github.com/rs/zerolog"
)

const endpointConfidence = 0.8

var (
	endpointFalsePositives = []string{
		"/static/", "/assets/", "/images/", "/img/", "/css/", "/js/", "/fonts/", "/favicon",
		".png", ".jpg", ".gif", ".svg", ".css", ".js", ".map", ".woff", ".ttf", ".ico",
		"node_modules",
	}

	endpointHighKeywords = []string{"admin", "internal", "debug", "backup", "config"}

	endpointMediumKeywords = []string{
		"admin", "auth", "login", "token", "oauth", "api/v", "graphql", "internal",
		"debug", "backup", "config", "upload", "download", "export", "user", "account",
		"password", "reset", "verify", "webhook", "callback",
	}
)

// EndpointExtractor finds relative API paths. Severity is derived from the
// path vocabulary.
type EndpointExtractor struct {
	catalog    *patterns.Catalog
	jsluice    *JSluiceAnalyzer
	contextExt *ContextExtractor
	logger     zerolog.Logger
}

// NewEndpointExtractor creates an endpoint extractor. A nil jsluice analyzer
// disables the AST pass.
func NewEndpointExtractor(catalog *patterns.Catalog, jsluice *JSluiceAnalyzer, logger zerolog.Logger) *EndpointExtractor {
	return &EndpointExtractor{
		catalog:    catalog,
		jsluice:    jsluice,
		contextExt: NewContextExtractor(DefaultSnippetSize),
		logger:     logger.With().Str("component", "EndpointExtractor").Logger(),
	}
}

func (ee *EndpointExtractor) Name() string { return "endpoints" }

func (ee *EndpointExtractor) Extract(content, source string) ([]models.Finding, error) {
	seen := make(map[string]struct{})
	var findings []models.Finding

	for _, m := range ee.catalog.Endpoints {
		for _, match := range findAll(ee.logger, m, m.String(), content, source) {
			if f, ok := ee.classify(match.Value, match.Start, match.End, content, source, seen); ok {
				findings = append(findings, f)
			}
		}
	}

	if ee.jsluice != nil {
		for _, c := range ee.jsluice.Candidates(content, source) {
			if f, ok := ee.classify(c.Raw, c.Start, c.End, content, source, seen); ok {
				findings = append(findings, f)
			}
		}
	}

	ee.logger.Debug().Str("source", source).Int("findings", len(findings)).Msg("Endpoint extraction completed")
	return findings, nil
}

func (ee *EndpointExtractor) classify(raw string, start, end int, content, source string, seen map[string]struct{}) (models.Finding, bool) {
	endpoint, ok := NormalizeEndpoint(raw)
	if !ok {
		return models.Finding{}, false
	}
	if _, dup := seen[endpoint]; dup {
		return models.Finding{}, false
	}
	if isEndpointFalsePositive(endpoint) {
		return models.Finding{}, false
	}
	seen[endpoint] = struct{}{}

	return models.Finding{
		Kind:       models.KindEndpoint,
		Value:      endpoint,
		Severity:   EndpointSeverity(endpoint),
		Source:     source,
		Line:       ee.contextExt.LineNumber(content, start),
		Context:    ee.contextExt.ExtractContext(content, start, end),
		Confidence: endpointConfidence,
	}, true
}

// NormalizeEndpoint trims quoting, drops the query string and trailing
// slashes, and rejects anything that is not a rooted path of length >= 3.
func NormalizeEndpoint(raw string) (string, bool) {
	endpoint := strings.Trim(raw, "\"'`\n\r\t ")
	if !strings.HasPrefix(endpoint, "/") || len(endpoint) < 3 {
		return "", false
	}
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}
	endpoint = strings.TrimRight(endpoint, "/")
	return endpoint, endpoint != ""
}

func isEndpointFalsePositive(endpoint string) bool {
	return containsAny(strings.ToLower(endpoint), endpointFalsePositives)
}

// EndpointSeverity classifies a normalized endpoint.
func EndpointSeverity(endpoint string) models.Severity {
	lower := strings.ToLower(endpoint)
	switch {
	case containsAny(lower, endpointHighKeywords):
		return models.SeverityHigh
	case containsAny(lower, endpointMediumKeywords):
		return models.SeverityMedium
	default:
		return models.SeverityInfo
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
