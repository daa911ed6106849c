package extractor

import (
	"strings"

	"github.com/aleister1102/jsmonster/internal/models"
	"github.com/aleister1102/jsmonster/internal/patterns"
	"github.com/rs/zerolog"
)

const urlConfidence = 0.9

// DefaultSkipDomains are third-party hosts whose URLs are noise in almost
// every bundle. Subdomains are skipped too.
var DefaultSkipDomains = []string{
	"google.com", "googleapis.com", "gstatic.com", "google-analytics.com",
	"facebook.com", "fbcdn.net", "twitter.com", "twimg.com",
	"cloudflare.com", "jsdelivr.net", "unpkg.com", "cdnjs.cloudflare.com",
	"jquery.com", "bootstrapcdn.com", "fontawesome.com",
	"w3.org", "schema.org", "mozilla.org", "github.com",
}

var (
	urlHighMarkers   = []string{"localhost", "127.0.0.1", "0.0.0.0", "192.168", "10.", "172.16"}
	urlEnvMarkers    = []string{"staging", "dev", "test", "uat", "qa", "preprod", ".local", ".internal"}
	urlMediumMarkers = []string{"admin", "api", "debug"}
)

// URLExtractor finds absolute http(s) URLs and flags internal or
// non-production hosts.
type URLExtractor struct {
	catalog     *patterns.Catalog
	skipDomains []string
	contextExt  *ContextExtractor
	logger      zerolog.Logger
}

// NewURLExtractor creates a URL extractor. extraSkip is appended to
// DefaultSkipDomains.
func NewURLExtractor(catalog *patterns.Catalog, extraSkip []string, logger zerolog.Logger) *URLExtractor {
	skip := make([]string, 0, len(DefaultSkipDomains)+len(extraSkip))
	for _, d := range append(append([]string{}, DefaultSkipDomains...), extraSkip...) {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			skip = append(skip, d)
		}
	}
	return &URLExtractor{
		catalog:     catalog,
		skipDomains: skip,
		contextExt:  NewContextExtractor(DefaultSnippetSize),
		logger:      logger.With().Str("component", "URLExtractor").Logger(),
	}
}

func (ue *URLExtractor) Name() string { return "urls" }

func (ue *URLExtractor) Extract(content, source string) ([]models.Finding, error) {
	seen := make(map[string]struct{})
	var findings []models.Finding

	for _, m := range ue.catalog.URLs {
		for _, match := range findAll(ue.logger, m, m.String(), content, source) {
			u, ok := NormalizeURL(match.Text)
			if !ok {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			if ue.shouldSkip(u) {
				continue
			}
			seen[u] = struct{}{}

			findings = append(findings, models.Finding{
				Kind:       models.KindURL,
				Value:      u,
				Severity:   URLSeverity(u),
				Source:     source,
				Line:       ue.contextExt.LineNumber(content, match.Start),
				Context:    ue.contextExt.ExtractContext(content, match.Start, match.End),
				Confidence: urlConfidence,
			})
		}
	}

	ue.logger.Debug().Str("source", source).Int("findings", len(findings)).Msg("URL extraction completed")
	return findings, nil
}

// NormalizeURL strips quoting and trailing punctuation and requires a scheme
// and an authority. The path is left as written, so templated text such as
// "/%s/keys" survives.
func NormalizeURL(raw string) (string, bool) {
	u := strings.Trim(raw, "\"'`\n\r\t ,;")
	for u != "" && strings.ContainsRune(".,;:!?)>]}'\"", rune(u[len(u)-1])) {
		u = u[:len(u)-1]
	}
	if u == "" {
		return "", false
	}
	if _, ok := splitAuthority(u); !ok {
		return "", false
	}
	return u, true
}

// splitAuthority returns the authority of raw, which ends at the first '/',
// '?' or '#' after "//". The scheme before it must be well formed.
func splitAuthority(raw string) (string, bool) {
	i := strings.Index(raw, "://")
	if i <= 0 || !validScheme(raw[:i]) {
		return "", false
	}
	authority := raw[i+3:]
	if end := strings.IndexAny(authority, "/?#"); end >= 0 {
		authority = authority[:end]
	}
	return authority, authority != ""
}

func validScheme(s string) bool {
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// authorityHost drops userinfo and port from an authority.
func authorityHost(authority string) string {
	if at := strings.LastIndex(authority, "@"); at >= 0 {
		authority = authority[at+1:]
	}
	if strings.HasPrefix(authority, "[") {
		if end := strings.Index(authority, "]"); end > 0 {
			return strings.ToLower(authority[1:end])
		}
	}
	if colon := strings.LastIndex(authority, ":"); colon >= 0 {
		authority = authority[:colon]
	}
	return strings.ToLower(authority)
}

func (ue *URLExtractor) shouldSkip(raw string) bool {
	authority, ok := splitAuthority(raw)
	if !ok {
		return true
	}
	host := authorityHost(authority)
	for _, d := range ue.skipDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// URLSeverity classifies a normalized URL by its text.
func URLSeverity(u string) models.Severity {
	lower := strings.ToLower(u)
	switch {
	case containsAny(lower, urlHighMarkers):
		return models.SeverityHigh
	case containsAny(lower, urlEnvMarkers), containsAny(lower, urlMediumMarkers):
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
